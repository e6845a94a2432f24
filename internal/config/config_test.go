package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pagewright.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.Equal(t, ".", cfg.Project.Root)
	require.Equal(t, ProfileStaticSite, cfg.Output.Profile)
	require.Equal(t, "static_site", cfg.Output.Directory)
	require.Equal(t, "posts", cfg.Output.PostsSubdir)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 8000, cfg.Server.Port)
	require.Equal(t, 5*time.Second, cfg.Server.StopTimeout)
	require.Equal(t, 500*time.Millisecond, cfg.Watch.Debounce)
	require.Equal(t, LogLevelInfo, cfg.Logging.Level)
	require.Equal(t, LogFormatText, cfg.Logging.Format)
	require.NoError(t, Validate(cfg))
}

func TestLoad_DocsProfile(t *testing.T) {
	path := writeConfig(t, `
output:
  profile: docs
server:
  port: 9000
  stop_timeout: 2s
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ProfileDocs, cfg.Output.Profile)
	require.Equal(t, "docs", cfg.Output.Directory)
	require.Equal(t, time.Second, cfg.Watch.Debounce)
	require.Equal(t, 9000, cfg.Server.Port)
	require.Equal(t, 2*time.Second, cfg.Server.StopTimeout)
}

func TestLoad_ExplicitDirectoryAndDebounceWin(t *testing.T) {
	path := writeConfig(t, `
output:
  profile: docs
  directory: public_html
watch:
  debounce: 250ms
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "public_html", cfg.Output.Directory)
	require.Equal(t, 250*time.Millisecond, cfg.Watch.Debounce)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	t.Setenv("SITE_OUT", "build_out")
	path := writeConfig(t, "output:\n  directory: ${SITE_OUT}\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "build_out", cfg.Output.Directory)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPort, "8123")
	t.Setenv(EnvHost, "0.0.0.0")
	t.Setenv(EnvLogLevel, "DEBUG")
	t.Setenv(EnvProfile, "docs")
	path := writeConfig(t, "server:\n  port: 9000\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 8123, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, LogLevelDebug, cfg.Logging.Level)
	require.Equal(t, "docs", cfg.Output.Directory)
}

func TestLoad_InvalidPortEnv(t *testing.T) {
	t.Setenv(EnvPort, "eighty")
	_, err := Load(writeConfig(t, ""))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	// No pagewright.yaml in the package directory.
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "static_site", cfg.Output.Directory)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [unterminated"))
	require.Error(t, err)
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestLoad_UnknownProfile(t *testing.T) {
	_, err := Load(writeConfig(t, "output:\n  profile: gh-pages\n"))
	require.Error(t, err)
}

func TestSetProfile(t *testing.T) {
	cfg := Default()
	cfg.SetProfile(ProfileDocs)
	require.Equal(t, "docs", cfg.Output.Directory)
	require.Equal(t, time.Second, cfg.Watch.Debounce)

	cfg = Default()
	cfg.Output.Directory = "custom"
	cfg.Watch.Debounce = 100 * time.Millisecond
	cfg.SetProfile(ProfileDocs)
	require.Equal(t, "custom", cfg.Output.Directory)
	require.Equal(t, 100*time.Millisecond, cfg.Watch.Debounce)
}

func TestPaths(t *testing.T) {
	cfg := Default()
	cfg.Project.Root = "site-src"
	p := cfg.Paths()

	require.Equal(t, filepath.Join("site-src", "layout", "head.html"), p.Head)
	require.Equal(t, filepath.Join("site-src", "layout", "foot.html"), p.Foot)
	require.Equal(t, filepath.Join("site-src", "pages"), p.Pages)
	require.Equal(t, filepath.Join("site-src", "public"), p.Public)
	require.Equal(t, filepath.Join("site-src", "static_site"), p.Output)

	abs := filepath.Join(t.TempDir(), "out")
	cfg.Output.Directory = abs
	require.Equal(t, abs, cfg.Paths().Output)
	require.Equal(t, "127.0.0.1:8000", cfg.Addr())
}
