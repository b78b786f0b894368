package main

import (
	"os"
	"runtime"

	"github.com/activecm/idsdash/commands"
	"github.com/activecm/idsdash/config"
	"github.com/urfave/cli"
)

// Entry point of idsdash
func main() {
	app := cli.NewApp()
	app.Name = "idsdash"
	app.Usage = "Classify network connections against an intrusion detection backend."

	// Change the version string with updates so that a quick help command will
	// let the testers know what version of idsdash they're on
	app.Version = config.Version

	// Define commands used with this application
	app.Commands = commands.Commands()
	app.EnableBashCompletion = true

	runtime.GOMAXPROCS(runtime.NumCPU())
	app.Run(os.Args)
}
