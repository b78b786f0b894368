package commands

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/activecm/idsdash/pkg/backendtest"
	"github.com/activecm/idsdash/pkg/dashboard"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/activecm/idsdash/pkg/live"
	"github.com/activecm/idsdash/resources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConsole(t *testing.T) (*console, *bytes.Buffer, *backendtest.Server) {
	backend := backendtest.New()
	res := resources.InitTestingResources(t, backend.URL)
	dash := dashboard.New(res, live.NewWebsocketDialer())
	out := &bytes.Buffer{}
	return newConsole(dash, out), out, backend
}

func TestConsoleSession(t *testing.T) {
	con, out, backend := newTestConsole(t)
	defer backend.Close()
	backend.SetPredictResponse(http.StatusOK, `{"is_intrusion":true,"confidence":96.4}`)

	script := strings.Join([]string{
		"set protocol_type icmp",
		"set bogus 1",
		"preset attack",
		"predict",
		"show",
		"trend",
		"frobnicate",
		"quit",
		"set service ftp",
	}, "\n")

	require.Nil(t, con.Run(context.Background(), strings.NewReader(script)))

	text := out.String()
	assert.Contains(t, text, `unknown feature "bogus"`)
	assert.Contains(t, text, "96.40%")
	assert.Contains(t, text, "preset: attack")
	assert.Contains(t, text, `unknown command "frobnicate"`)

	view := con.dash.State().Snapshot()
	assert.Equal(t, features.PresetAttack, view.Preset)
	assert.Equal(t, "ecr_i", view.Form["service"], "commands after quit are ignored")
	require.Len(t, view.Trend, 1)
	assert.Equal(t, 1, view.Trend[0].Flag)

	bodies := backend.PredictBodies()
	require.Len(t, bodies, 1)
	assert.Contains(t, string(bodies[0]), `"service":"ecr_i"`)
}

func TestConsoleLive(t *testing.T) {
	con, out, backend := newTestConsole(t)
	defer backend.Close()

	require.False(t, con.exec(context.Background(), []string{"live", "start"}, &bytes.Buffer{}))
	require.True(t, backend.WaitLive(3*time.Second))
	assert.Equal(t, live.Connected, con.dash.Live().Status())

	var buf bytes.Buffer
	con.exec(context.Background(), []string{"live", "sideways"}, &buf)
	assert.Contains(t, buf.String(), "usage: live start|stop")

	con.exec(context.Background(), []string{"live", "stop"}, &bytes.Buffer{})
	assert.Equal(t, live.Disconnected, con.dash.Live().Status())

	con.mu.Lock()
	defer con.mu.Unlock()
	assert.Contains(t, out.String(), "[live] connected")
	assert.Contains(t, out.String(), "[live] disconnected")
}

func TestConsoleBatchMissingFile(t *testing.T) {
	con, _, backend := newTestConsole(t)
	defer backend.Close()

	var buf bytes.Buffer
	con.exec(context.Background(), []string{"batch", "/nonexistent/batch.csv"}, &buf)
	assert.Contains(t, buf.String(), "batch failed")
	assert.Len(t, backend.BatchBodies(), 0)
}
