package commands

import (
	"fmt"
	"os"

	"github.com/activecm/idsdash/config"
	"github.com/urfave/cli"
	yaml "gopkg.in/yaml.v2"
)

func init() {
	command := cli.Command{
		Name:   "test-config",
		Usage:  "Check the configuration file for validity",
		Flags:  []cli.Flag{configFlag},
		Action: testConfiguration,
	}

	bootstrapCommands(command)
}

// testConfiguration prints out the result of parsing the config file
func testConfiguration(c *cli.Context) error {
	conf, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError("Failed to config: "+err.Error(), -1)
	}

	staticConfig, err := yaml.Marshal(conf.S)
	if err != nil {
		return cli.NewExitError(err.Error(), -1)
	}

	fmt.Fprintf(os.Stdout, "\n%s\n", string(staticConfig))
	fmt.Fprintf(os.Stdout, "predict:    %s\n", conf.R.Backend.PredictURL)
	fmt.Fprintf(os.Stdout, "batch:      %s\n", conf.R.Backend.BatchURL)
	fmt.Fprintf(os.Stdout, "live:       %s\n", conf.R.Backend.LiveURL)
	fmt.Fprintf(os.Stdout, "health:     %s\n", conf.R.Backend.HealthURL)
	fmt.Fprintf(os.Stdout, "model info: %s\n", conf.R.Backend.ModelInfoURL)
	return nil
}
