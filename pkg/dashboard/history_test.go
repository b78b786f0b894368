package dashboard

import (
	"testing"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/stretchr/testify/assert"
)

func TestLiveBufferBounded(t *testing.T) {
	buf := NewLiveBuffer(DefaultLiveBufferSize)
	for i := 1; i <= 120; i++ {
		buf.Push(classification.Result{Confidence: float64(i)})
		assert.True(t, buf.Len() <= 50)
	}
	items := buf.Items()
	assert.Len(t, items, 50)
	assert.Equal(t, 120.0, items[0].Confidence, "newest first")
	assert.Equal(t, 71.0, items[49].Confidence, "oldest kept")
}

func TestLiveBufferSizeFallback(t *testing.T) {
	assert.Equal(t, DefaultLiveBufferSize, NewLiveBuffer(0).Cap())
	assert.Equal(t, 3, NewLiveBuffer(3).Cap())
}

func TestLiveBufferItemsIsCopy(t *testing.T) {
	buf := NewLiveBuffer(2)
	buf.Push(classification.Result{Prediction: classification.PredictionNormal})
	items := buf.Items()
	items[0].Prediction = "changed"
	assert.Equal(t, classification.PredictionNormal, buf.Items()[0].Prediction)
}

func TestTrendPoints(t *testing.T) {
	var trend Trend
	trend.Append(classification.Result{IsIntrusion: true})
	trend.Append(classification.Zero())
	trend.Append(classification.Result{IsIntrusion: true})

	assert.Equal(t, []int{1, 0, 1}, trend.Flags())
	assert.Equal(t, []Point{{1, 1}, {2, 0}, {3, 1}}, trend.Points())
	assert.Equal(t, 3, trend.Len())
}
