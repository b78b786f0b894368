package dashboard

import (
	"sync"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/activecm/idsdash/pkg/live"
)

type (
	// State is everything one dashboard session shows. It is changed only
	// through the named transitions below; each one takes the lock, so user
	// actions, HTTP responses and live messages apply in arrival order and
	// the last write wins.
	State struct {
		mu         sync.Mutex
		form       features.Fields
		preset     features.PresetName
		last       *classification.Result
		liveBuffer *LiveBuffer
		trend      Trend
		batch      *classification.BatchResult
		status     live.Status
	}

	//View is a copy of the State for rendering
	View struct {
		Form       features.Fields
		Preset     features.PresetName
		Last       *classification.Result
		Live       []classification.Result
		Trend      []Point
		Batch      *classification.BatchResult
		LiveStatus live.Status
	}
)

// NewState creates an empty session with the default form. The form starts
// with the six fields the dashboard exposes; everything else is defaulted
// when a record is built.
func NewState(liveBufferSize int) *State {
	def := features.Default()
	form := features.Fields{}
	for _, name := range FormFields {
		form[name], _ = def.Get(name)
	}
	return &State{
		form:       form,
		preset:     features.PresetCustom,
		liveBuffer: NewLiveBuffer(liveBufferSize),
		status:     live.Disconnected,
	}
}

//FormFields are the fields an operator edits directly
var FormFields = []string{"duration", "protocol_type", "service", "flag", "src_bytes", "dst_bytes"}

// SetField records one edit of the form. Unknown field names are rejected
// so typos do not silently vanish.
func (s *State) SetField(name, value string) bool {
	if !features.Has(name) {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.form[name] = value
	s.preset = features.PresetCustom
	return true
}

// ApplyPreset overwrites the whole form with a preset. Selecting custom
// keeps the form untouched.
func (s *State) ApplyPreset(name features.PresetName) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.preset = name
	rec, ok := features.Preset(name)
	if !ok {
		return
	}
	s.form = rec.Fields()
}

//Record builds the feature record the form currently describes
func (s *State) Record() features.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return features.Build(s.form)
}

// ReceivePrediction shows a single prediction and adds its flag to the
// trend. Failed requests arrive here as the zero result and count as 0.
func (s *State) ReceivePrediction(r classification.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &r
	s.trend.Append(r)
}

//ReceiveBatch replaces the batch table. The trend is not touched.
func (s *State) ReceiveBatch(b classification.BatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = &b
}

//ClearBatch removes the batch table after a failed batch request
func (s *State) ClearBatch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = nil
}

//OnLiveResult adds a streamed result to the live table and the trend
func (s *State) OnLiveResult(r classification.Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.liveBuffer.Push(r)
	s.trend.Append(r)
}

//OnLiveStatus records the live connection state
func (s *State) OnLiveStatus(st live.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = st
}

//Snapshot copies the state for rendering
func (s *State) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Form:       s.form.Clone(),
		Preset:     s.preset,
		Live:       s.liveBuffer.Items(),
		Trend:      s.trend.Points(),
		LiveStatus: s.status,
	}
	if s.last != nil {
		last := *s.last
		v.Last = &last
	}
	if s.batch != nil {
		batch := *s.batch
		batch.Results = append([]classification.Result(nil), s.batch.Results...)
		v.Batch = &batch
	}
	return v
}
