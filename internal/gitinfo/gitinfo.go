// Package gitinfo reads repository metadata used to prefill a new site
// configuration.
package gitinfo

import (
	"errors"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

// ErrNoOrigin is returned when the repository has no usable origin remote.
var ErrNoOrigin = errors.New("no origin remote")

// Origin identifies the hosted repository a site is published from.
type Origin struct {
	Host         string
	Organization string
	Project      string
	URL          string
}

// DetectOrigin opens the repository containing dir and parses its origin remote.
func DetectOrigin(dir string) (*Origin, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, ferrors.GitError("failed to open repository").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}
	remote, err := repo.Remote(git.DefaultRemoteName)
	if err != nil {
		if errors.Is(err, git.ErrRemoteNotFound) {
			return nil, ErrNoOrigin
		}
		return nil, ferrors.GitError("failed to read origin remote").
			WithCause(err).
			WithContext("path", dir).
			Build()
	}
	return originFromConfig(remote.Config())
}

func originFromConfig(rc *config.RemoteConfig) (*Origin, error) {
	for _, u := range rc.URLs {
		if o, ok := ParseRemoteURL(u); ok {
			return o, nil
		}
	}
	return nil, ErrNoOrigin
}

// ParseRemoteURL extracts host, organization and project from an https, ssh
// or scp-style remote URL ("git@github.com:org/project.git").
func ParseRemoteURL(raw string) (*Origin, bool) {
	raw = strings.TrimSpace(raw)
	var host, p string
	switch {
	case strings.Contains(raw, "://"):
		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, false
		}
		host, p = u.Hostname(), u.Path
	case strings.Contains(raw, ":"):
		userHost, rest, _ := strings.Cut(raw, ":")
		if i := strings.LastIndex(userHost, "@"); i >= 0 {
			userHost = userHost[i+1:]
		}
		host, p = userHost, rest
	default:
		return nil, false
	}

	segs := strings.Split(strings.Trim(p, "/"), "/")
	if len(segs) < 2 || host == "" {
		return nil, false
	}
	org := segs[len(segs)-2]
	project := strings.TrimSuffix(segs[len(segs)-1], ".git")
	if org == "" || project == "" {
		return nil, false
	}
	return &Origin{Host: host, Organization: org, Project: project, URL: raw}, true
}

// Detector adapts DetectOrigin to the callback used by config.Init.
func Detector(dir string) func() (string, string, bool) {
	return func() (string, string, bool) {
		o, err := DetectOrigin(dir)
		if err != nil {
			return "", "", false
		}
		return o.Organization, o.Project, true
	}
}
