package commands

import (
	"fmt"

	"git.home.luguber.info/inful/pagewright/internal/linkcheck"
)

// CheckCmd verifies internal links in the built site.
type CheckCmd struct {
	Output  string `short:"o" help:"Output root to check (overrides output.directory and the profile)"`
	Profile string `short:"p" help:"Deployment profile (static_site|docs)"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	cfg, err := loadConfig(root, overrides{profile: c.Profile, output: c.Output})
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	out := cfg.Paths().Output
	report, err := linkcheck.Check(ctx, out)
	if err != nil {
		return err
	}
	for _, b := range report.Broken {
		fmt.Printf("%s: %s %s=%q does not resolve\n", b.Source, b.Link.Tag, b.Link.Attribute, b.Link.URL)
	}
	fmt.Printf("Checked %d links in %d files under %s: %d broken\n", report.Links, report.Files, out, len(report.Broken))
	return report.Err()
}
