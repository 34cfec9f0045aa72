package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitecfg/internal/config"
	ferrors "git.home.luguber.info/inful/sitecfg/internal/foundation/errors"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	stdout = &out
	t.Cleanup(func() { stdout = os.Stdout })

	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	ctx, err := parser.Parse(args)
	if err != nil {
		return "", err
	}
	err = ctx.Run(&Global{Logger: slog.Default()}, cli)
	return out.String(), err
}

func newSite(t *testing.T) (dir, cfg string) {
	t.Helper()
	dir = t.TempDir()
	cfg = filepath.Join(dir, "sitecfg.yaml")
	_, err := run(t, "-c", cfg, "init", "--no-detect")
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "docs"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "docs", "intro.md"), []byte("# Intro\n"), 0o600))
	return dir, cfg
}

func TestInit_RefusesOverwrite(t *testing.T) {
	_, cfg := newSite(t)
	_, err := run(t, "-c", cfg, "init", "--no-detect")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))

	_, err = run(t, "-c", cfg, "init", "--no-detect", "--force")
	require.NoError(t, err)
}

func TestValidateAndShow(t *testing.T) {
	_, cfg := newSite(t)

	out, err := run(t, "-c", cfg, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "https://linkit-wiki.com/Linkit/")

	out, err = run(t, "-c", cfg, "show", "-f", "json")
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, "Linkit", doc["title"])

	out, err = run(t, "-c", cfg, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "baseUrl: /Linkit/")
}

func TestGenerate(t *testing.T) {
	dir, cfg := newSite(t)
	out, err := run(t, "-c", cfg, "generate", "-f", "hugo", "-f", "docusaurus")
	require.NoError(t, err)
	assert.Contains(t, out, "2 written")

	_, err = os.Stat(filepath.Join(dir, "build-config", "hugo.yaml"))
	require.NoError(t, err)

	out, err = run(t, "-c", cfg, "generate", "-f", "hugo", "-f", "docusaurus")
	require.NoError(t, err)
	assert.Contains(t, out, "0 written, 2 unchanged")
}

func TestGenerate_OutputFlagKeepsConfiguredDirectory(t *testing.T) {
	dir, cfg := newSite(t)
	out := filepath.Join(t.TempDir(), "elsewhere")
	_, err := run(t, "-c", cfg, "generate", "-f", "json", "-o", out, "--clean")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(out, "site.config.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "build-config"))
	assert.True(t, os.IsNotExist(err), "nothing is written to the configured directory")
}

func TestGenerate_CanceledContext(t *testing.T) {
	_, cfg := newSite(t)
	site, err := config.Load(cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	cmd := &GenerateCmd{}
	err = cmd.run(ctx, &Global{Logger: slog.Default()}, site)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryRuntime))
	assert.Equal(t, ferrors.ExitRuntime, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestCheck_Policies(t *testing.T) {
	dir, cfg := newSite(t)

	out, err := run(t, "-c", cfg, "check")
	require.NoError(t, err)
	assert.Contains(t, out, "0 broken")

	require.NoError(t, os.Remove(filepath.Join(dir, "docs", "intro.md")))
	out, err = run(t, "-c", cfg, "check")
	require.NoError(t, err, "warn reports without failing")
	assert.Contains(t, out, "1 broken, 0 failing")

	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg, []byte(strings.Replace(string(data), "onBrokenLinks: warn", "onBrokenLinks: throw", 1)), 0o600))

	out, err = run(t, "-c", cfg, "check")
	require.Error(t, err)
	assert.Contains(t, out, "1 failing")
	assert.Equal(t, ferrors.ExitLinks, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestValidate_InvalidConfig(t *testing.T) {
	_, cfg := newSite(t)
	data, err := os.ReadFile(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(cfg, []byte(strings.Replace(string(data), "baseUrl: /Linkit/", "baseUrl: Linkit", 1)), 0o600))

	_, err = run(t, "-c", cfg, "validate")
	require.Error(t, err)
	assert.Equal(t, ferrors.ExitValidation, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}
