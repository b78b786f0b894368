package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/activecm/idsdash/resources"
	"github.com/blang/semver"
	"github.com/google/go-github/github"
	log "github.com/sirupsen/logrus"
)

//Strings used for informing the user of a new version.
var informFmtStr = "\nThere's a new %s version of idsdash %s available at:\nhttps://github.com/%s/%s/releases\n"
var versions = []string{"Major", "Minor", "Patch"}

// updateCheck compares the running version against the newest release tag
// and returns a notice for the user, or "" when nothing newer exists
func updateCheck(ctx context.Context, res *resources.Resources, client *github.Client) (string, error) {
	owner := res.Config.S.UserConfig.UpdateCheckOwner
	repo := res.Config.S.UserConfig.UpdateCheckRepo

	newVersion, err := getRemoteVersion(ctx, client, owner, repo)
	if err != nil {
		return "", err
	}

	res.Logger().WithFields(log.Fields{
		"Message":       "Checking versions...",
		"NewestVersion": fmt.Sprint(newVersion),
	}).Info("Checking for new version")

	configVersion := res.Config.R.Version
	if newVersion.GT(configVersion) {
		return informUser(configVersion, newVersion, owner, repo), nil
	}
	return "", nil
}

// Returns the first index where v1 is greater than v2
func versionDiffIndex(v1 semver.Version, v2 semver.Version) int {
	if v1.Major > v2.Major {
		return 0
	}
	if v1.Minor > v2.Minor {
		return 1
	}
	return 2
}

func getRemoteVersion(ctx context.Context, client *github.Client, owner, repo string) (semver.Version, error) {
	refs, _, err := client.Git.GetRefs(ctx, owner, repo, "refs/tags/v")
	if err != nil {
		return semver.Version{}, err
	}
	if len(refs) == 0 {
		return semver.Version{}, errors.New("no release tags found for " + owner + "/" + repo)
	}

	s := strings.TrimPrefix(refs[len(refs)-1].GetRef(), "refs/tags/")
	return semver.ParseTolerant(s)
}

// Assembles a notice for the user informing them of an upgrade.
func informUser(local semver.Version, remote semver.Version, owner, repo string) string {
	return fmt.Sprintf(informFmtStr,
		versions[versionDiffIndex(remote, local)],
		fmt.Sprint(remote), owner, repo)
}
