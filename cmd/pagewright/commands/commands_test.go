package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/pagewright/internal/config"
	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/site"
	"git.home.luguber.info/inful/pagewright/internal/watch"
)

// newProject scaffolds a project in a temp dir and writes a config that points at it.
func newProject(t *testing.T) (*CLI, string) {
	t.Helper()
	dir := t.TempDir()
	_, err := config.Scaffold(dir)
	require.NoError(t, err)

	cfgPath := filepath.Join(dir, config.DefaultFile)
	require.NoError(t, os.WriteFile(cfgPath, []byte(fmt.Sprintf("project:\n  root: %s\n", dir)), 0o644))
	return &CLI{Config: cfgPath}, dir
}

func TestParseCommands(t *testing.T) {
	cli := &CLI{}
	parser, err := kong.New(cli, kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)

	ctx, err := parser.Parse([]string{"build", "--strict", "--profile", "docs"})
	require.NoError(t, err)
	assert.Equal(t, "build", ctx.Command())
	assert.True(t, cli.Build.Strict)
	assert.Equal(t, "docs", cli.Build.Profile)

	_, err = parser.Parse([]string{"watch", "--port", "9000", "--debounce", "1s"})
	require.NoError(t, err)
	assert.Equal(t, 9000, cli.Watch.Port)
	assert.Equal(t, time.Second, cli.Watch.Debounce)
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	root, dir := newProject(t)

	cfg, err := loadConfig(root, overrides{profile: "docs", host: "0.0.0.0", port: 9000})
	require.NoError(t, err)
	assert.Equal(t, config.ProfileDocs, cfg.Output.Profile)
	assert.Equal(t, filepath.Join(dir, "docs"), cfg.Paths().Output)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
	assert.Equal(t, "0.0.0.0:9000", cfg.Addr())
}

func TestLoadConfigRejectsOutputOverlappingSources(t *testing.T) {
	root, _ := newProject(t)

	_, err := loadConfig(root, overrides{output: "pages"})
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
}

func TestRunBuild(t *testing.T) {
	root, dir := newProject(t)
	cfg, err := loadConfig(root, overrides{})
	require.NoError(t, err)

	require.NoError(t, RunBuild(t.Context(), site.NewBuilder(builderOptions(cfg.Paths())), false))
	assert.FileExists(t, filepath.Join(dir, "static_site", "index.html"))
	assert.DirExists(t, filepath.Join(dir, "static_site", "public"))
}

func TestRunBuildStrict(t *testing.T) {
	root, dir := newProject(t)
	require.NoError(t, os.RemoveAll(filepath.Join(dir, config.PublicDir)))
	cfg, err := loadConfig(root, overrides{})
	require.NoError(t, err)
	builder := site.NewBuilder(builderOptions(cfg.Paths()))

	require.NoError(t, RunBuild(t.Context(), builder, false))
	err = RunBuild(t.Context(), builder, true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryBuild))
}

func TestRunInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.DefaultFile)

	require.NoError(t, RunInit(path, false, true))
	assert.FileExists(t, path)
	assert.FileExists(t, filepath.Join(dir, config.LayoutDir, config.HeadFile))
	assert.DirExists(t, filepath.Join(dir, config.PostsDir))

	require.Error(t, RunInit(path, false, false))
	require.NoError(t, RunInit(path, true, false))
}

func TestNewSessionWiresComponents(t *testing.T) {
	root, dir := newProject(t)
	cfg, err := loadConfig(root, overrides{})
	require.NoError(t, err)
	cfg.Metrics.Address = "127.0.0.1:0"

	session, err := newSession(cfg, root)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "static_site"), session.Dir)
	assert.Equal(t, config.DefaultPort, session.Port)
	assert.NotNil(t, session.Registry)
	assert.IsType(t, &site.Builder{}, session.Builder)

	cfg.Watch.BuildCommand = []string{"make", "site"}
	session, err = newSession(cfg, &CLI{})
	require.NoError(t, err)
	assert.IsType(t, watch.CommandRunner{}, session.Builder)
}

func TestNewLauncherForwardsConfig(t *testing.T) {
	root, _ := newProject(t)
	cfg, err := loadConfig(root, overrides{})
	require.NoError(t, err)

	assert.Equal(t, root.Config, newLauncher(cfg, root).ConfigPath)
	assert.Empty(t, newLauncher(cfg, &CLI{}).ConfigPath)
}
