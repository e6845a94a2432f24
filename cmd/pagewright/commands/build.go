package commands

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/pagewright/internal/site"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output  string `short:"o" help:"Output root (overrides output.directory and the profile)"`
	Profile string `short:"p" help:"Deployment profile (static_site|docs)"`
	Strict  bool   `help:"Exit non-zero when any entry or the public copy failed"`
}

func (b *BuildCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, overrides{profile: b.Profile, output: b.Output})
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return RunBuild(ctx, site.NewBuilder(builderOptions(cfg.Paths())), b.Strict)
}

// RunBuild runs one build and prints a summary.
func RunBuild(ctx context.Context, builder *site.Builder, strict bool) error {
	// Provide friendly user-facing messages on stdout.
	fmt.Println("Starting pagewright build")
	report, err := builder.Build(ctx)
	if err != nil {
		fmt.Println("Build failed")
		return err
	}

	fmt.Printf("Rendered %d pages and %d posts, copied %d files\n",
		report.Pages.Rendered, report.Posts.Rendered, report.Pages.Copied+report.Posts.Copied)
	if n := report.Failed(); n > 0 {
		fmt.Printf("%d entries failed (see log)\n", n)
	}
	if report.PublicErr != nil {
		fmt.Printf("Public assets not copied: %v\n", report.PublicErr)
	}
	if strict {
		if err := report.Err(); err != nil {
			return err
		}
	}
	fmt.Println("Build complete")
	return nil
}
