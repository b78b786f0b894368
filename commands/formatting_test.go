package commands

import (
	"bytes"
	"testing"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/dashboard"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteResultsCsv(t *testing.T) {
	var buf bytes.Buffer
	err := writeResults(&buf, []classification.Result{
		{Prediction: "Attack", IsIntrusion: true, Confidence: 96.4, AttackProbability: 96.4, NormalProbability: 3.6},
		classification.Zero(),
	}, false)
	require.Nil(t, err)

	assert.Equal(t,
		"Prediction,Intrusion,Confidence,Attack Prob.,Normal Prob.\n"+
			"Attack,yes,96.40%,96.4,3.6\n"+
			"Unknown,no,0.00%,0,0\n",
		buf.String())
}

func TestWriteResultsTable(t *testing.T) {
	var buf bytes.Buffer
	err := writeResults(&buf, []classification.Result{{Prediction: "Normal", Confidence: 12.346}}, true)
	require.Nil(t, err)
	assert.Contains(t, buf.String(), "PREDICTION")
	assert.Contains(t, buf.String(), "12.35%")
}

func TestWriteBatchSummaryAndTrend(t *testing.T) {
	var buf bytes.Buffer
	require.Nil(t, writeBatchSummary(&buf, classification.BatchResult{TotalCount: 3, IntrusionCount: 1, NormalCount: 2}, false))
	assert.Equal(t, "Total,Intrusions,Normal\n3,1,2\n", buf.String())

	buf.Reset()
	require.Nil(t, writeTrend(&buf, []dashboard.Point{{Index: 1, Flag: 1}, {Index: 2, Flag: 0}}, false))
	assert.Equal(t, "Index,Intrusion\n1,1\n2,0\n", buf.String())
}

func TestSortedFields(t *testing.T) {
	form := features.Fields{"src_bytes": "1", "zzz": "", "duration": "0", "aaa": "", "service": "http"}
	assert.Equal(t, []string{"duration", "service", "src_bytes", "aaa", "zzz"}, sortedFields(form))
}

func TestParseFieldArg(t *testing.T) {
	name, value, err := parseFieldArg(" count = 12 ")
	require.Nil(t, err)
	assert.Equal(t, "count", name)
	assert.Equal(t, "12", value)

	name, value, err = parseFieldArg("service=")
	require.Nil(t, err)
	assert.Equal(t, "service", name)
	assert.Equal(t, "", value)

	for _, bad := range []string{"count", "=5", ""} {
		_, _, err = parseFieldArg(bad)
		assert.NotNil(t, err, bad)
	}
}
