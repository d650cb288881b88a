// Package common holds small URL helpers shared by the scanner and the views.
package common

import (
	"net/url"
	"path"
	"strings"
)

// Domain extracts the hostname from a URL and strips a leading "www." so
// www.example.com and example.com aggregate together. Unparseable URLs yield
// an empty domain, which groups them with other malformed entries.
func Domain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

// SourceFileURL converts a repository URL and a repo-relative file path into a
// browsable file URL. The hosting convention is fixed: trailing ".git" is
// dropped and the file is assumed to live on the master branch.
func SourceFileURL(repoURL, relativePath string) string {
	base := strings.TrimSuffix(strings.TrimSuffix(repoURL, "/"), ".git")
	return base + "/blob/master/" + strings.TrimPrefix(relativePath, "/")
}

// RepoDirName derives a local directory name for a cloned repository from the
// last segment of its URL.
func RepoDirName(repoURL string) string {
	name := path.Base(strings.TrimSuffix(repoURL, "/"))
	return strings.TrimSuffix(name, ".git")
}
