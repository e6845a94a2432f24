package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

const initHeader = `# pagewright configuration
#
# Inputs are fixed: layout/{head,header,footer,foot}.html, pages/, posts/, public/
# under project.root. output.profile picks the output root (static_site or docs)
# and the default watch.debounce (500ms or 1s).
`

// Init writes a starter configuration file to configPath.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return ferrors.NewError(ferrors.CategoryConfig, "configuration file already exists (use --force to overwrite)").
			WithContext("path", configPath).Build()
	}

	starter := Config{
		Project: ProjectConfig{Root: "."},
		Output:  OutputConfig{Profile: ProfileStaticSite, PostsSubdir: DefaultPostsSubdir},
		Server:  ServerConfig{Host: DefaultHost, Port: DefaultPort, StopTimeout: DefaultStopTimeout},
		Watch:   WatchConfig{Root: "."},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
	}
	data, err := yaml.Marshal(&starter)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(configPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return ferrors.WrapError(err, ferrors.CategoryFileSystem, "create config directory").Build()
		}
	}
	if err := os.WriteFile(configPath, append([]byte(initHeader), data...), 0o644); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "write config file").
			WithContext("path", configPath).Build()
	}
	return nil
}

var scaffoldFiles = map[string]string{
	filepath.Join(LayoutDir, HeadFile):    "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\">\n<title>My site</title>\n</head>\n<body>",
	filepath.Join(LayoutDir, HeaderFile):  "<header><a href=\"/index.html\">Home</a></header>",
	filepath.Join(LayoutDir, FooterFile):  "<footer>Built with pagewright</footer>",
	filepath.Join(LayoutDir, FootFile):    "</body>\n</html>",
	filepath.Join(PagesDir, "index.html"): "<main>\n<h1>Hello</h1>\n</main>",
}

// Scaffold creates the fixed source layout under root. Existing files are left untouched.
// It returns the paths it created.
func Scaffold(root string) ([]string, error) {
	var created []string
	for _, dir := range []string{LayoutDir, PagesDir, PostsDir, PublicDir} {
		if err := os.MkdirAll(filepath.Join(root, dir), 0o755); err != nil {
			return created, ferrors.WrapError(err, ferrors.CategoryFileSystem, "create source directory").
				WithContext("path", dir).Build()
		}
	}
	for rel, content := range scaffoldFiles {
		path := filepath.Join(root, rel)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return created, ferrors.WrapError(err, ferrors.CategoryFileSystem, "stat scaffold file").
				WithContext("path", path).Build()
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return created, ferrors.WrapError(err, ferrors.CategoryFileSystem, "write scaffold file").
				WithContext("path", path).Build()
		}
		slog.Debug("Scaffolded file", "path", path)
		created = append(created, path)
	}
	return created, nil
}
