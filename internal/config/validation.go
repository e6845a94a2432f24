package config

import (
	"fmt"
	"path/filepath"
	"strings"

	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
)

// Validate checks a defaulted configuration. The output root is removed
// recursively before every build, so it must never overlap the sources.
func Validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return ferrors.ValidationError(fmt.Sprintf("server.port must be within 1..65535, got %d", cfg.Server.Port)).Build()
	}
	if cfg.Server.StopTimeout <= 0 {
		return ferrors.ValidationError("server.stop_timeout must be > 0").Build()
	}
	if cfg.Watch.Debounce <= 0 {
		return ferrors.ValidationError("watch.debounce must be > 0").Build()
	}
	if cfg.Watch.RebuildInterval < 0 {
		return ferrors.ValidationError("watch.rebuild_interval must not be negative").Build()
	}
	if err := validatePostsSubdir(cfg.Output.PostsSubdir); err != nil {
		return err
	}
	return validateOutputPlacement(cfg.Paths())
}

func validatePostsSubdir(sub string) error {
	clean := filepath.Clean(sub)
	if sub == "" || clean == "." || filepath.IsAbs(sub) || clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return ferrors.ValidationError("output.posts_subdir must be a relative path inside the output root").
			WithContext("posts_subdir", sub).Build()
	}
	if clean == PublicDir {
		return ferrors.ValidationError("output.posts_subdir collides with the public asset copy").
			WithContext("posts_subdir", sub).Build()
	}
	return nil
}

func validateOutputPlacement(p Paths) error {
	out, err := filepath.Abs(p.Output)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryConfig, "resolve output directory").Fatal().Build()
	}
	sources := map[string]string{
		"project root": p.Root,
		"layout":       filepath.Dir(p.Head),
		PagesDir:       p.Pages,
		PostsDir:       p.Posts,
		PublicDir:      p.Public,
	}
	for name, src := range sources {
		abs, err := filepath.Abs(src)
		if err != nil {
			return ferrors.WrapError(err, ferrors.CategoryConfig, "resolve "+name).Fatal().Build()
		}
		if within(abs, out) {
			return ferrors.ValidationError("output directory would delete the " + name).
				WithContext("output", out).WithContext("source", abs).Build()
		}
		if name != "project root" && within(out, abs) {
			return ferrors.ValidationError("output directory must not live inside " + name).
				WithContext("output", out).WithContext("source", abs).Build()
		}
	}
	return nil
}

// within reports whether path equals dir or lies below it.
func within(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
