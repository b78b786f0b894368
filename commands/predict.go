package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/activecm/idsdash/pkg/classification"
	"github.com/activecm/idsdash/pkg/dashboard"
	"github.com/activecm/idsdash/pkg/features"
	"github.com/activecm/idsdash/pkg/live"
	"github.com/activecm/idsdash/resources"
	"github.com/urfave/cli"
)

func init() {
	flags := []cli.Flag{
		configFlag,
		humanFlag,
		presetFlag,
		cli.StringSliceFlag{
			Name:  "field, f",
			Usage: "Set any feature with `NAME=VALUE`, may be repeated",
		},
	}
	for _, name := range dashboard.FormFields {
		flags = append(flags, cli.StringFlag{
			Name:  name,
			Usage: "Set the " + name + " feature",
		})
	}

	command := cli.Command{
		Name:      "predict",
		Usage:     "Classify a single connection record",
		UsageText: "idsdash predict [command-options]\n\n" +
			"Features that are not given keep their defaults.",
		Flags:  flags,
		Action: predict,
	}

	bootstrapCommands(command)
}

func predict(c *cli.Context) error {
	res := resources.InitResources(c.String("config"))
	dash := dashboard.New(res, live.NewWebsocketDialer())

	if err := fillForm(dash.State(), c); err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	result := dash.Predict(context.Background())

	err := writeResults(os.Stdout, []classification.Result{result}, c.Bool("human-readable"))
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}
	return nil
}

// fillForm applies the preset and then the individual feature flags
func fillForm(state *dashboard.State, c *cli.Context) error {
	preset, err := features.ParsePreset(c.String("preset"))
	if err != nil {
		return err
	}
	state.ApplyPreset(preset)

	for _, name := range dashboard.FormFields {
		if c.IsSet(name) {
			state.SetField(name, c.String(name))
		}
	}

	for _, arg := range c.StringSlice("field") {
		name, value, err := parseFieldArg(arg)
		if err != nil {
			return err
		}
		if !state.SetField(name, value) {
			return fmt.Errorf("unknown feature %q", name)
		}
	}
	return nil
}

// parseFieldArg splits a NAME=VALUE argument
func parseFieldArg(arg string) (string, string, error) {
	parts := strings.SplitN(arg, "=", 2)
	name := strings.TrimSpace(parts[0])
	if len(parts) != 2 || name == "" {
		return "", "", fmt.Errorf("expected NAME=VALUE, got %q", arg)
	}
	return name, strings.TrimSpace(parts[1]), nil
}
