package commands

import (
	"context"
	"fmt"

	"github.com/activecm/idsdash/config"
	"github.com/activecm/idsdash/resources"
	"github.com/google/go-github/github"
	"github.com/urfave/cli"
)

func init() {
	command := cli.Command{
		Name:  "version",
		Usage: "Show idsdash version",
		Flags: []cli.Flag{
			configFlag,
			cli.BoolFlag{
				Name:  "check-update, u",
				Usage: "Look for a newer release on GitHub",
			},
		},
		Action: showVersion,
	}

	bootstrapCommands(command)
}

func showVersion(c *cli.Context) error {
	fmt.Printf("%s version %s\n", c.App.Name, config.ExactVersion)
	if !c.Bool("check-update") {
		return nil
	}

	res := resources.InitResources(c.String("config"))
	notice, err := updateCheck(context.Background(), res, github.NewClient(nil))
	if err != nil {
		return cli.NewExitError("Could not check for updates: "+err.Error(), -1)
	}
	if notice == "" {
		fmt.Println("You are running the latest version")
		return nil
	}
	fmt.Print(notice)
	return nil
}
