package commands

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/dashboard"
	"github.com/activecm/idsdash/pkg/live"
	"github.com/activecm/idsdash/resources"
	"github.com/activecm/idsdash/util"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "live",
		Usage: "Stream classifications from the backend's live feed",
		UsageText: "idsdash live [command-options]\n\n" +
			"Streams until interrupted, the feed closes, or --count results arrived.\n" +
			"The most recent results are printed when the stream ends.",
		Flags: []cli.Flag{
			configFlag,
			humanFlag,
			cli.IntFlag{
				Name:  "count, n",
				Usage: "Stop after `N` results, 0 streams until interrupted",
				Value: 0,
			},
			cli.BoolFlag{
				Name:  "trend, t",
				Usage: "Print the intrusion trend when the stream ends",
			},
		},
		Action: streamLive,
	}

	bootstrapCommands(command)
}

type (
	// streamPrinter echoes live events as they arrive and reports when the
	// requested number of results has been seen
	streamPrinter struct {
		mu      sync.Mutex
		out     *csv.Writer
		limit   int
		seen    int
		reached chan struct{}
	}
)

func newStreamPrinter(w io.Writer, limit int) *streamPrinter {
	return &streamPrinter{
		out:     csv.NewWriter(w),
		limit:   limit,
		reached: make(chan struct{}),
	}
}

func (p *streamPrinter) OnLiveResult(r classification.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Write(resultRow(r))
	p.out.Flush()
	p.seen++
	if p.limit > 0 && p.seen == p.limit {
		close(p.reached)
	}
}

func (p *streamPrinter) OnLiveStatus(st live.Status) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Write([]string{"#", "live feed " + st.String()})
	p.out.Flush()
}

func streamLive(c *cli.Context) error {
	if c.Int("count") < 0 {
		return cli.NewExitError("--count must not be negative", -1)
	}
	human := c.Bool("human-readable")

	res := resources.InitResources(c.String("config"))
	dash := dashboard.New(res, live.NewWebsocketDialer())
	printer := newStreamPrinter(os.Stdout, c.Int("count"))
	dash.Listen(printer)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigs)

	if err := dash.StartLive(context.Background()); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	start := time.Now()

	select {
	case <-sigs:
	case <-printer.reached:
	case <-dash.Live().Done():
		fmt.Fprintln(os.Stderr, "[!] The live feed was closed by the backend")
	}
	dash.StopLive()

	view := dash.State().Snapshot()
	fmt.Printf("\n[-] Streamed for %s, last %d live results\n",
		util.FormatDuration(time.Since(start)), len(view.Live))
	if err := writeResults(os.Stdout, view.Live, human); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	if c.Bool("trend") {
		if err := writeTrend(os.Stdout, view.Trend, human); err != nil {
			return cli.NewExitError(err.Error(), -1)
		}
	}
	return nil
}
