package commands

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/activecm/idsdash/resources"
	"github.com/blang/semver"
	"github.com/google/go-github/github"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionCompare(t *testing.T) {

	Base, _ := semver.Parse("1.1.1")
	Major, _ := semver.Parse("2.3.4")
	Minor, _ := semver.Parse("1.2.3")
	Patch, _ := semver.Parse("1.1.9")

	assert.Equal(t, 0, versionDiffIndex(Major, Base),
		"Should return new Major")
	assert.Equal(t, 1, versionDiffIndex(Minor, Base),
		"Should return new Minor")
	assert.Equal(t, 2, versionDiffIndex(Patch, Base),
		"Should return new Patch")

}

func TestInformUser(t *testing.T) {

	Base, _ := semver.Parse("1.1.1")
	Major, _ := semver.Parse("2.3.4")
	assert.Equal(t,
		fmt.Sprintf(informFmtStr, "Major", "2.3.4", "activecm", "idsdash"),
		informUser(Base, Major, "activecm", "idsdash"),
		"Should be identical strings")
}

// newTagServer answers the GitHub refs endpoint with body
func newTagServer(t *testing.T, body string) (*httptest.Server, *github.Client) {
	r := mux.NewRouter()
	r.PathPrefix("/repos/activecm/idsdash/git/refs/").HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})
	server := httptest.NewServer(r)

	client := github.NewClient(nil)
	base, err := url.Parse(server.URL + "/")
	require.Nil(t, err)
	client.BaseURL = base
	return server, client
}

func TestUpdateCheck(t *testing.T) {
	server, client := newTagServer(t, `[{"ref":"refs/tags/v1.0.0"},{"ref":"refs/tags/v1.2.0"}]`)
	defer server.Close()
	res := resources.InitTestingResources(t, "http://127.0.0.1:8000")

	res.Config.R.Version = semver.MustParse("1.1.5")
	notice, err := updateCheck(context.Background(), res, client)
	require.Nil(t, err)
	assert.Equal(t, fmt.Sprintf(informFmtStr, "Minor", "1.2.0", "activecm", "idsdash"), notice)

	res.Config.R.Version = semver.MustParse("1.2.0")
	notice, err = updateCheck(context.Background(), res, client)
	require.Nil(t, err)
	assert.Equal(t, "", notice)
}

func TestUpdateCheckNoTags(t *testing.T) {
	server, client := newTagServer(t, `[]`)
	defer server.Close()
	res := resources.InitTestingResources(t, "http://127.0.0.1:8000")

	_, err := updateCheck(context.Background(), res, client)
	assert.NotNil(t, err)
}
