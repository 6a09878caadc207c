package core

import (
	"fmt"

	"github.com/smarty/restock/contracts"
)

// DefaultRef stands in when a plugin omits its Git reference. Every supported
// provider serves the repository's default branch for HEAD, regardless of
// what that branch is named.
const DefaultRef = "HEAD"

// Resolve maps a plugin spec to its archive URL and destination directory
// name. It is pure: malformed specs are a parse-time concern, so resolution
// never fails.
func Resolve(spec contracts.PluginSpec) contracts.ResolvedPlugin {
	return contracts.ResolvedPlugin{
		ArchiveURL:      archiveURL(spec),
		DestinationName: spec.DestinationName(),
	}
}

func archiveURL(spec contracts.PluginSpec) string {
	if spec.Archive != nil {
		return spec.Archive.URL
	}
	git := spec.Git
	ref := git.Ref
	if ref == "" {
		ref = DefaultRef
	}
	switch git.Provider {
	case contracts.GitLab:
		return fmt.Sprintf("https://gitlab.com/%s/%s/-/archive/%s/%s-%s.tar.gz",
			git.Owner, git.Repo, ref, git.Repo, ref)
	case contracts.Bitbucket:
		return fmt.Sprintf("https://bitbucket.org/%s/%s/get/%s.tar.gz",
			git.Owner, git.Repo, ref)
	default:
		return fmt.Sprintf("https://codeload.github.com/%s/%s/tar.gz/%s",
			git.Owner, git.Repo, ref)
	}
}
