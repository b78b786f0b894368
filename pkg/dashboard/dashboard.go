package dashboard

import (
	"context"
	"io"
	"sync"

	"github.com/activecm/idsdash/parser"
	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/dispatch"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/activecm/idsdash/pkg/live"
	"github.com/activecm/idsdash/resources"
	log "github.com/sirupsen/logrus"
)

type (
	// Dashboard is the top level controller of a session. It routes user
	// actions to the dispatcher and the live controller and feeds their
	// output into the State.
	Dashboard struct {
		state  *State
		client *dispatch.Client
		live   *live.Controller
		csv    *parser.CSVReader
		log    *log.Entry

		mu        sync.Mutex
		listeners []live.Sink
	}

	// stateSink forwards live events to the state and then to listeners
	stateSink struct {
		d *Dashboard
	}
)

//New creates a dashboard session talking to the configured backend
func New(res *resources.Resources, dialer live.Dialer) *Dashboard {
	d := &Dashboard{
		state:  NewState(res.Config.S.Live.BufferSize),
		client: dispatch.NewClient(res),
		csv:    parser.NewCSVReader(res.Logger()),
		log:    res.Logger(),
	}
	d.live = live.NewController(res, dialer, stateSink{d})
	return d
}

//State returns the session state
func (d *Dashboard) State() *State {
	return d.state
}

//Live returns the live feed controller
func (d *Dashboard) Live() *live.Controller {
	return d.live
}

//CSV returns the reader used for batch uploads
func (d *Dashboard) CSV() *parser.CSVReader {
	return d.csv
}

//Client returns the backend client
func (d *Dashboard) Client() *dispatch.Client {
	return d.client
}

// Listen registers l to observe live events after the state has applied
// them. Listeners must not call back into the live controller.
func (d *Dashboard) Listen(l live.Sink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, l)
}

// Predict classifies the record described by the form. The trend always
// gains one entry: a failed request shows the zero result and counts as 0.
func (d *Dashboard) Predict(ctx context.Context) classification.Result {
	res, _ := d.client.PredictOne(ctx, d.state.Record())
	d.state.ReceivePrediction(res)
	return res
}

// PredictBatch classifies records and shows them in the batch table. A
// failed request clears the table instead of showing partial results.
func (d *Dashboard) PredictBatch(ctx context.Context, recs []features.Record) (classification.BatchResult, error) {
	batch, err := d.client.PredictBatch(ctx, recs)
	if err != nil {
		d.state.ClearBatch()
		return batch, err
	}
	d.state.ReceiveBatch(batch)
	return batch, nil
}

//UploadCSV reads a batch CSV stream and classifies its rows
func (d *Dashboard) UploadCSV(ctx context.Context, r io.Reader) (classification.BatchResult, error) {
	recs, err := d.csv.Read(r, features.Default())
	if err != nil {
		d.log.WithField("error", err.Error()).Error("Could not read batch csv")
		d.state.ClearBatch()
		return classification.BatchResult{}, err
	}
	return d.PredictBatch(ctx, recs)
}

//UploadFile reads a .csv or .csv.gz file and classifies its rows
func (d *Dashboard) UploadFile(ctx context.Context, path string) (classification.BatchResult, error) {
	recs, err := d.csv.ReadFile(path, features.Default())
	if err != nil {
		d.log.WithFields(log.Fields{
			"error": err.Error(),
			"path":  path,
		}).Error("Could not read batch file")
		d.state.ClearBatch()
		return classification.BatchResult{}, err
	}
	return d.PredictBatch(ctx, recs)
}

//StartLive opens the live feed; it is a no-op when already connected
func (d *Dashboard) StartLive(ctx context.Context) error {
	return d.live.Start(ctx)
}

//StopLive closes the live feed
func (d *Dashboard) StopLive() {
	d.live.Stop()
}

func (s stateSink) OnLiveResult(r classification.Result) {
	s.d.state.OnLiveResult(r)
	for _, l := range s.d.snapshotListeners() {
		l.OnLiveResult(r)
	}
}

func (s stateSink) OnLiveStatus(st live.Status) {
	s.d.state.OnLiveStatus(st)
	for _, l := range s.d.snapshotListeners() {
		l.OnLiveStatus(st)
	}
}

func (d *Dashboard) snapshotListeners() []live.Sink {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]live.Sink(nil), d.listeners...)
}
