// Package github fetches latest-release information from the GitHub API.
//
// # Usage
//
//	client := github.NewReleaseClient(github.CredentialsFromEnv(), 5*time.Second)
//	resp, err := client.FetchLatestRelease(ctx,
//	    "https://api.github.com/repos/gusztavj/T1nkR-Mesh-Name-Synchronizer/releases/latest")
//	if err != nil {
//	    return err // transport failure, wraps integrations.ErrNetwork
//	}
//	if resp.OK() {
//	    rel, err := github.ParseRelease(resp.Body)
//	    ...
//	}
//
// # Authentication
//
// Credentials come from GITHUB_UPDATE_CHECKER_GITHUB_USER_NAME and
// GITHUB_UPDATE_CHECKER_GITHUB_API_TOKEN. With both set, requests use basic
// auth; with only a token, bearer auth; with neither, requests are anonymous
// and limited to 60 per hour.
package github
