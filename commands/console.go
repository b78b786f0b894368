package commands

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/dashboard"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/activecm/idsdash/pkg/live"
	"github.com/activecm/idsdash/resources"
	"github.com/urfave/cli"
)

const consoleHelp = `Commands:
  set NAME VALUE     change one feature of the form
  preset NAME        load the normal, attack or custom preset
  show               print the form, last result and live status
  predict            classify the form
  batch FILE         classify a .csv or .csv.gz file
  live start|stop    connect or disconnect the live feed
  results            print the live table
  trend              print the intrusion trend
  help               print this message
  quit               leave the console
`

func init() {
	command := cli.Command{
		Name:  "console",
		Usage: "Start an interactive dashboard session",
		Flags: []cli.Flag{
			configFlag,
			cli.BoolFlag{
				Name:  "quiet-live, q",
				Usage: "Do not echo live results as they arrive",
			},
		},
		Action: func(c *cli.Context) error {
			res := resources.InitResources(c.String("config"))
			dash := dashboard.New(res, live.NewWebsocketDialer())
			con := newConsole(dash, os.Stdout)
			con.echoLive = !c.Bool("quiet-live")
			if err := con.Run(context.Background(), os.Stdin); err != nil {
				return cli.NewExitError(err.Error(), -1)
			}
			return nil
		},
	}

	bootstrapCommands(command)
}

type (
	// console drives one dashboard session from line based input. Live
	// events are written from the feed's goroutine, so all output goes
	// through the same lock.
	console struct {
		dash     *dashboard.Dashboard
		mu       sync.Mutex
		out      io.Writer
		echoLive bool
	}
)

func newConsole(dash *dashboard.Dashboard, out io.Writer) *console {
	con := &console{dash: dash, out: out, echoLive: true}
	dash.Listen(con)
	return con
}

func (con *console) write(b []byte) {
	con.mu.Lock()
	defer con.mu.Unlock()
	con.out.Write(b)
}

func (con *console) OnLiveResult(r classification.Result) {
	if !con.echoLive {
		return
	}
	con.write([]byte(fmt.Sprintf("[live] %s %s\n", r.Prediction, classification.FormatConfidence(r.Confidence))))
}

func (con *console) OnLiveStatus(st live.Status) {
	con.write([]byte("[live] " + st.String() + "\n"))
}

// Run reads commands until quit or the end of input. The live feed is
// always closed on return.
func (con *console) Run(ctx context.Context, in io.Reader) error {
	defer con.dash.StopLive()

	scanner := bufio.NewScanner(in)
	con.write([]byte("idsdash console, type help for a list of commands\n> "))
	for scanner.Scan() {
		var buf bytes.Buffer
		quit := con.exec(ctx, strings.Fields(scanner.Text()), &buf)
		if !quit {
			buf.WriteString("> ")
		}
		con.write(buf.Bytes())
		if quit {
			return nil
		}
	}
	return scanner.Err()
}

// exec runs one command line and reports whether the console should exit
func (con *console) exec(ctx context.Context, args []string, out *bytes.Buffer) bool {
	if len(args) == 0 {
		return false
	}
	state := con.dash.State()

	switch args[0] {
	case "quit", "exit":
		return true
	case "help":
		out.WriteString(consoleHelp)
	case "set":
		if len(args) < 2 {
			out.WriteString("usage: set NAME VALUE\n")
			break
		}
		if !state.SetField(args[1], strings.Join(args[2:], " ")) {
			fmt.Fprintf(out, "unknown feature %q\n", args[1])
		}
	case "preset":
		if len(args) != 2 {
			out.WriteString("usage: preset normal|attack|custom\n")
			break
		}
		preset, err := features.ParsePreset(args[1])
		if err != nil {
			fmt.Fprintln(out, err.Error())
			break
		}
		state.ApplyPreset(preset)
	case "show":
		con.show(out)
	case "predict":
		result := con.dash.Predict(ctx)
		writeResults(out, []classification.Result{result}, true)
	case "batch":
		if len(args) != 2 {
			out.WriteString("usage: batch FILE\n")
			break
		}
		result, err := con.dash.UploadFile(ctx, args[1])
		if err != nil {
			fmt.Fprintf(out, "batch failed: %s\n", err.Error())
			break
		}
		writeBatchSummary(out, result, true)
		writeResults(out, result.Results, true)
	case "live":
		con.live(ctx, args[1:], out)
	case "results":
		writeResults(out, state.Snapshot().Live, true)
	case "trend":
		writeTrend(out, state.Snapshot().Trend, true)
	default:
		fmt.Fprintf(out, "unknown command %q, type help for a list of commands\n", args[0])
	}
	return false
}

func (con *console) live(ctx context.Context, args []string, out *bytes.Buffer) {
	if len(args) != 1 {
		out.WriteString("usage: live start|stop\n")
		return
	}
	switch args[0] {
	case "start":
		if err := con.dash.StartLive(ctx); err != nil {
			fmt.Fprintf(out, "could not connect: %s\n", err.Error())
		}
	case "stop":
		con.dash.StopLive()
	default:
		out.WriteString("usage: live start|stop\n")
	}
}

func (con *console) show(out *bytes.Buffer) {
	view := con.dash.State().Snapshot()
	fmt.Fprintf(out, "preset: %s\n", view.Preset)
	writeForm(out, view.Form)
	if view.Last != nil {
		writeResults(out, []classification.Result{*view.Last}, true)
	}
	if view.Batch != nil {
		writeBatchSummary(out, *view.Batch, true)
	}
	fmt.Fprintf(out, "live: %s, %d buffered, %d trend points\n",
		view.LiveStatus, len(view.Live), len(view.Trend))
}
