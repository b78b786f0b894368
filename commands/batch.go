package commands

import (
	"context"
	"os"

	"github.com/activecm/idsdash/pkg/dashboard"
	"github.com/activecm/idsdash/pkg/live"
	"github.com/activecm/idsdash/reporting"
	"github.com/activecm/idsdash/resources"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "batch",
		Usage: "Classify every row of a csv file",
		UsageText: "idsdash batch [command-options] [FILE]\n\n" +
			"FILE is a .csv or .csv.gz file with a header row naming features.\n" +
			"Columns that are not features are ignored.",
		Flags: []cli.Flag{
			configFlag,
			humanFlag,
			dirFlag,
			cli.StringFlag{
				Name:  "file, f",
				Usage: "Classify the rows of `FILE`",
			},
			cli.BoolFlag{
				Name:  "report, r",
				Usage: "Write an html report and open it in a browser",
			},
			cli.BoolFlag{
				Name:  "no-browser",
				Usage: "Do not open the html report",
			},
		},
		Action: batch,
	}

	bootstrapCommands(command)
}

func batch(c *cli.Context) error {
	file := c.String("file")
	if file == "" {
		file = c.Args().Get(0)
	}
	if file == "" {
		return cli.NewExitError("Specify a csv file to classify", -1)
	}
	human := c.Bool("human-readable")

	res := resources.InitResources(c.String("config"))
	dash := dashboard.New(res, live.NewWebsocketDialer())
	// the bar shares stdout with csv output
	dash.CSV().ShowProgress = human

	result, err := dash.UploadFile(context.Background(), file)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	if err := writeBatchSummary(os.Stdout, result, human); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	if err := writeResults(os.Stdout, result.Results, human); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	if !c.Bool("report") {
		return nil
	}
	index, err := reporting.PrintHTML(result, file, c.String("directory"), res)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	if !c.Bool("no-browser") {
		if err := reporting.Open(index); err != nil {
			res.Logger().WithField("error", err.Error()).Warn("Could not open the report")
		}
	}
	return nil
}
