package commands

import (
	"github.com/urfave/cli"
)

var (
	allCommands []cli.Command

	// below are some prebuilt flags that get used often in various commands

	// configFlag allows users to specify an alternate config file to use
	configFlag = cli.StringFlag{
		Name:  "config, c",
		Usage: "Use a given `CONFIG_FILE` when running this command",
		Value: "",
	}

	// humanFlag switches result output from csv to tables
	humanFlag = cli.BoolFlag{
		Name:  "human-readable, H",
		Usage: "Print a report instead of csv",
	}

	presetFlag = cli.StringFlag{
		Name:  "preset, p",
		Usage: "Start from the `PRESET` record (normal, attack or custom)",
		Value: "",
	}

	dirFlag = cli.StringFlag{
		Name:  "directory, d",
		Usage: "Write the report into `DIRECTORY`",
		Value: ".",
	}
)

// bootstrapCommands simply adds a given command to the allCommands array
func bootstrapCommands(commands ...cli.Command) {
	allCommands = append(allCommands, commands...)
}

// Commands provides all of the defined commands to the front end
func Commands() []cli.Command {
	return allCommands
}
