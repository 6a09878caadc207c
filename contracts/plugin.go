package contracts

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"gopkg.in/yaml.v3"
)

type GitProvider int

const (
	GitHub GitProvider = iota
	GitLab
	Bitbucket
)

func ParseGitProvider(name string) (GitProvider, error) {
	switch name {
	case "github":
		return GitHub, nil
	case "gitlab":
		return GitLab, nil
	case "bitbucket":
		return Bitbucket, nil
	default:
		return GitHub, fmt.Errorf(
			"git provider %q not recognized (try 'github', 'gitlab', or 'bitbucket')", name)
	}
}

func (this GitProvider) String() string {
	switch this {
	case GitLab:
		return "gitlab"
	case Bitbucket:
		return "bitbucket"
	default:
		return "github"
	}
}

// GitPlugin identifies a repository hosted by a Git provider. Ref may be a
// branch name, tag name, or commit hash; blank means the default branch.
type GitPlugin struct {
	Provider GitProvider
	Owner    string
	Repo     string
	Ref      string
}

// ArchivePlugin identifies a tar.gz archive by direct URL.
type ArchivePlugin struct {
	URL string
}

// PluginSpec is a tagged union: exactly one of Git or Archive is populated.
type PluginSpec struct {
	Git     *GitPlugin
	Archive *ArchivePlugin
}

// ParsePluginSpec accepts either a URL ("https://host/path/name.tar.gz") or
// the shorthand "provider@owner/repo:ref" where the provider (GitHub when
// elided) and the ref are optional.
func ParsePluginSpec(value string) (PluginSpec, error) {
	if strings.Contains(value, "://") {
		return parseArchivePlugin(value)
	}
	return parseGitPlugin(value)
}

func parseArchivePlugin(value string) (PluginSpec, error) {
	parsed, err := url.Parse(value)
	if err != nil {
		return PluginSpec{}, fmt.Errorf("malformed archive plugin URL %q: %w", value, err)
	}
	if parsed.Host == "" || archiveBaseName(parsed.Path) == "" {
		return PluginSpec{}, fmt.Errorf("malformed archive plugin URL %q", value)
	}
	return PluginSpec{Archive: &ArchivePlugin{URL: value}}, nil
}

func parseGitPlugin(value string) (PluginSpec, error) {
	remainder := value
	provider := GitHub
	if at := strings.Index(remainder, "@"); at >= 0 {
		parsed, err := ParseGitProvider(remainder[:at])
		if err != nil {
			return PluginSpec{}, err
		}
		provider = parsed
		remainder = remainder[at+1:]
	}
	slash := strings.Index(remainder, "/")
	if slash < 0 {
		return PluginSpec{}, fmt.Errorf("no owner found in plugin %q", value)
	}
	owner := remainder[:slash]
	repo, ref := remainder[slash+1:], ""
	if colon := strings.Index(repo, ":"); colon >= 0 {
		repo, ref = repo[:colon], repo[colon+1:]
	}
	if owner == "" || repo == "" {
		return PluginSpec{}, fmt.Errorf("blank owner or repo in plugin %q", value)
	}
	return PluginSpec{Git: &GitPlugin{Provider: provider, Owner: owner, Repo: repo, Ref: ref}}, nil
}

// DestinationName is the directory name the plugin installs under. Two specs
// with the same destination would silently overwrite each other, which is why
// PluginListing.Validate treats duplicates as a configuration error.
func (this PluginSpec) DestinationName() string {
	if this.Git != nil {
		return this.Git.Repo
	}
	parsed, err := url.Parse(this.Archive.URL)
	if err != nil {
		return ""
	}
	return archiveBaseName(parsed.Path)
}

func archiveBaseName(urlPath string) string {
	base := path.Base(urlPath)
	if base == "." || base == "/" {
		return ""
	}
	for _, extension := range []string{".tar.gz", ".tgz", ".tar"} {
		if strings.HasSuffix(base, extension) {
			return strings.TrimSuffix(base, extension)
		}
	}
	return base
}

func (this PluginSpec) Title() string {
	if this.Archive != nil {
		return this.Archive.URL
	}
	if this.Git.Ref == "" {
		return fmt.Sprintf("%s/%s", this.Git.Owner, this.Git.Repo)
	}
	return fmt.Sprintf("%s/%s:%s", this.Git.Owner, this.Git.Repo, this.Git.Ref)
}

func (this *PluginSpec) UnmarshalYAML(node *yaml.Node) error {
	var value string
	err := node.Decode(&value)
	if err != nil {
		return err
	}
	parsed, err := ParsePluginSpec(value)
	if err != nil {
		return err
	}
	*this = parsed
	return nil
}
