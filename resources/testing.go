package resources

import (
	"io/ioutil"
	"testing"

	"github.com/activecm/idsdash/config"
	"github.com/google/uuid"
)

//InitTestingResources creates a default testing resource bundle
//pointed at the backend listening on backendURL, typically an
//httptest server. Log output is discarded.
func InitTestingResources(t *testing.T, backendURL string) *Resources {
	conf, err := config.LoadTestingConfig(backendURL)
	if err != nil {
		t.Fatal(err)
	}

	// Fire up the logging system
	log := initLogger(&conf.S.Log)
	log.Out = ioutil.Discard

	//bundle up the system resources
	r := &Resources{
		Config:    conf,
		Log:       log,
		SessionID: uuid.New().String(),
	}
	return r
}
