package gitinfo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

func TestParseRemoteURL(t *testing.T) {
	tests := []struct {
		raw     string
		org     string
		project string
		ok      bool
	}{
		{"https://github.com/Override-6/Linkit.git", "Override-6", "Linkit", true},
		{"https://github.com/Override-6/Linkit/", "Override-6", "Linkit", true},
		{"ssh://git@github.com/Override-6/Linkit.git", "Override-6", "Linkit", true},
		{"git@github.com:Override-6/Linkit.git", "Override-6", "Linkit", true},
		{"https://git.example.com/group/sub/project", "sub", "project", true},
		{"https://github.com/solo", "", "", false},
		{"/srv/git/linkit.git", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			o, ok := ParseRemoteURL(tt.raw)
			require.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.org, o.Organization)
			assert.Equal(t, tt.project, o.Project)
		})
	}
}

func TestDetectOrigin(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	sub := filepath.Join(dir, "website")
	require.NoError(t, os.MkdirAll(sub, 0o750))

	_, err = DetectOrigin(sub)
	require.ErrorIs(t, err, ErrNoOrigin)

	_, err = repo.CreateRemote(&config.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@github.com:Override-6/Linkit.git"},
	})
	require.NoError(t, err)

	o, err := DetectOrigin(sub)
	require.NoError(t, err)
	assert.Equal(t, "github.com", o.Host)
	assert.Equal(t, "Override-6", o.Organization)
	assert.Equal(t, "Linkit", o.Project)

	org, project, ok := Detector(sub)()
	assert.True(t, ok)
	assert.Equal(t, "Override-6", org)
	assert.Equal(t, "Linkit", project)
}

func TestDetectOrigin_NotARepository(t *testing.T) {
	_, err := DetectOrigin(t.TempDir())
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryGit))
	_, _, ok := Detector(t.TempDir())()
	assert.False(t, ok)
}
