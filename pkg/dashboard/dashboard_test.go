package dashboard

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/activecm/idsdash/pkg/backendtest"
	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/activecm/idsdash/pkg/live"
	"github.com/activecm/idsdash/resources"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSink struct {
	mu       sync.Mutex
	results  int
	statuses []live.Status
}

func (c *countingSink) OnLiveResult(classification.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.results++
}

func (c *countingSink) OnLiveStatus(st live.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statuses = append(c.statuses, st)
}

func (c *countingSink) Results() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.results
}

func waitFor(t *testing.T, msg string, cond func() bool) {
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", msg)
}

func newTestDashboard(t *testing.T) (*Dashboard, *backendtest.Server) {
	backend := backendtest.New()
	res := resources.InitTestingResources(t, backend.URL)
	return New(res, live.NewWebsocketDialer()), backend
}

func TestPredictAttackScenario(t *testing.T) {
	d, backend := newTestDashboard(t)
	defer backend.Close()
	backend.SetPredictResponse(http.StatusOK, `{"is_intrusion":true,"confidence":96.4}`)

	state := d.State()
	require.True(t, state.SetField("protocol_type", "icmp"))
	require.True(t, state.SetField("service", "ecr_i"))
	require.True(t, state.SetField("flag", "REJ"))
	require.True(t, state.SetField("src_bytes", "0"))
	require.True(t, state.SetField("dst_bytes", "0"))

	res := d.Predict(context.Background())
	assert.Equal(t, "Attack", res.Prediction)
	assert.Equal(t, "96.40%", classification.FormatConfidence(res.Confidence))

	bodies := backend.PredictBodies()
	require.Len(t, bodies, 1)
	var sent map[string]interface{}
	require.Nil(t, jsoniter.Unmarshal(bodies[0], &sent))
	assert.Len(t, sent, len(features.Names()))
	assert.Equal(t, "icmp", sent["protocol_type"])
	assert.Equal(t, 1.0, sent["same_srv_rate"])

	v := state.Snapshot()
	assert.Equal(t, []int{1}, flags(v.Trend))
	require.NotNil(t, v.Last)
	assert.Equal(t, "Attack", v.Last.Prediction)
}

func TestPredictFailureShowsZeroResult(t *testing.T) {
	d, backend := newTestDashboard(t)
	defer backend.Close()
	backend.SetPredictResponse(http.StatusInternalServerError, `{"detail":"model not loaded"}`)

	res := d.Predict(context.Background())
	assert.Equal(t, classification.Zero(), res)

	v := d.State().Snapshot()
	assert.Equal(t, []int{0}, flags(v.Trend))
	require.NotNil(t, v.Last)
	assert.Equal(t, classification.PredictionUnknown, v.Last.Prediction)
}

func TestUploadCSV(t *testing.T) {
	d, backend := newTestDashboard(t)
	defer backend.Close()
	backend.SetBatchResponse(http.StatusOK, `{"results":[{"prediction":"Normal","is_intrusion":false,"confidence":91},{"prediction":"Attack","is_intrusion":true,"confidence":99}],"total_count":2,"intrusion_count":1,"normal_count":1}`)

	batch, err := d.UploadCSV(context.Background(), strings.NewReader("service,src_bytes\nhttp,181\necr_i,1032\n"))
	require.Nil(t, err)
	assert.Equal(t, 2, batch.TotalCount)
	require.Len(t, backend.BatchBodies(), 1)

	v := d.State().Snapshot()
	require.NotNil(t, v.Batch)
	assert.Equal(t, 1, v.Batch.IntrusionCount)
	assert.Empty(t, v.Trend, "batches do not feed the trend")
}

func TestBatchFailureClearsTable(t *testing.T) {
	d, backend := newTestDashboard(t)
	defer backend.Close()

	backend.SetPredictResponse(http.StatusOK, `{"prediction":"Attack","is_intrusion":true,"confidence":80}`)
	d.Predict(context.Background())

	backend.SetBatchResponse(http.StatusOK, `{"results":[{"prediction":"Normal"}],"total_count":1,"intrusion_count":0,"normal_count":1}`)
	_, err := d.PredictBatch(context.Background(), []features.Record{features.Default()})
	require.Nil(t, err)
	require.NotNil(t, d.State().Snapshot().Batch)

	backend.SetBatchResponse(http.StatusBadGateway, `upstream down`)
	batch, err := d.PredictBatch(context.Background(), []features.Record{features.Default()})
	assert.NotNil(t, err)
	assert.True(t, batch.Empty())

	v := d.State().Snapshot()
	assert.Nil(t, v.Batch)
	assert.Equal(t, []int{1}, flags(v.Trend), "trend untouched by the failed batch")
}

func TestUploadCSVWithoutHeader(t *testing.T) {
	d, backend := newTestDashboard(t)
	defer backend.Close()

	_, err := d.UploadCSV(context.Background(), strings.NewReader(""))
	assert.NotNil(t, err)
	assert.Nil(t, d.State().Snapshot().Batch)
	assert.Len(t, backend.BatchBodies(), 0)
}

func TestLiveFeedReachesState(t *testing.T) {
	d, backend := newTestDashboard(t)
	defer backend.Close()
	listener := &countingSink{}
	d.Listen(listener)

	require.Nil(t, d.StartLive(context.Background()))
	require.True(t, backend.WaitLive(3*time.Second))
	require.Nil(t, d.StartLive(context.Background()), "starting twice is a no-op")
	assert.Equal(t, live.Connected, d.State().Snapshot().LiveStatus)

	for i := 0; i < 60; i++ {
		if i%3 == 0 {
			backend.Push(`{"prediction":"Attack","is_intrusion":true,"confidence":90}`)
		} else {
			backend.Push(`{"prediction":"Normal","is_intrusion":false,"confidence":90}`)
		}
	}
	backend.Push(`{not json`)
	waitFor(t, "live results", func() bool { return listener.Results() == 60 })

	v := d.State().Snapshot()
	assert.Len(t, v.Live, 50)
	assert.Len(t, v.Trend, 60)
	assert.Equal(t, "Normal", v.Live[0].Prediction, "newest first")
	assert.Equal(t, 1, backend.LiveConnections())

	d.StopLive()
	assert.Equal(t, live.Disconnected, d.State().Snapshot().LiveStatus)
	assert.Equal(t, live.Disconnected, d.Live().Status())
}

func flags(points []Point) []int {
	out := make([]int, len(points))
	for i, p := range points {
		out[i] = p.Flag
	}
	return out
}
