package commands

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/activecm/idsdash/pkg/dispatch"
	"github.com/activecm/idsdash/resources"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

func init() {
	health := cli.Command{
		Name:   "health",
		Usage:  "Check that the backend is up and has a model loaded",
		Flags:  []cli.Flag{configFlag},
		Action: checkHealth,
	}

	modelInfo := cli.Command{
		Name:   "model-info",
		Usage:  "Describe the classifier loaded by the backend",
		Flags:  []cli.Flag{configFlag},
		Action: showModelInfo,
	}

	bootstrapCommands(health, modelInfo)
}

func checkHealth(c *cli.Context) error {
	res := resources.InitResources(c.String("config"))
	client := dispatch.NewClient(res)

	health, err := client.Health(context.Background())
	if err != nil {
		return cli.NewExitError("Backend unreachable: "+err.Error(), -1)
	}
	fmt.Printf("status: %s\nmodel loaded: %t\n", health.Status, health.ModelLoaded)
	if !health.ModelLoaded {
		return cli.NewExitError("The backend has no model loaded", -1)
	}
	return nil
}

func showModelInfo(c *cli.Context) error {
	res := resources.InitResources(c.String("config"))
	client := dispatch.NewClient(res)

	info, err := client.ModelInfo(context.Background())
	if err != nil {
		return cli.NewExitError("Backend unreachable: "+err.Error(), -1)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Model", "Features", "Loaded", "Classes"})
	table.Append([]string{
		info.ModelType, i(int64(info.FeaturesCount)),
		strconv.FormatBool(info.IsLoaded), strings.Join(info.Classes, ", "),
	})
	table.Render()
	return nil
}
