package resources

import (
	"fmt"
	"os"

	"github.com/activecm/idsdash/config"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type (
	// Resources provides a data structure for passing system Resources
	Resources struct {
		Config    *config.Config
		Log       *log.Logger
		SessionID string
	}
)

// InitResources grabs the configuration file and intitializes the configuration data
// returning a *Resources object which has all of the necessary configuration information
func InitResources(userConfig string) *Resources {
	conf, err := config.LoadConfig(userConfig)
	if err != nil {
		fmt.Fprintf(os.Stdout, "Failed to config: %s\n", err.Error())
		os.Exit(-1)
	}

	// Fire up the logging system
	log := initLogger(&conf.S.Log)

	if conf.S.Log.LogToFile {
		if err := addFileLogger(log, conf.S.Log.LogPath); err != nil {
			fmt.Fprintf(os.Stdout, "Failed to set up file logging: %s\n", err.Error())
			os.Exit(-1)
		}
	}

	//bundle up the system resources
	r := &Resources{
		Config:    conf,
		Log:       log,
		SessionID: uuid.New().String(),
	}
	return r
}

// Logger returns a log entry tagged with the session id
func (r *Resources) Logger() *log.Entry {
	return r.Log.WithField("session", r.SessionID)
}
