package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/pagewright/cmd/pagewright/commands"
	ferrors "git.home.luguber.info/inful/pagewright/internal/foundation/errors"
	"git.home.luguber.info/inful/pagewright/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("pagewright"),
		kong.Description("Assemble a static site from layout fragments, pages, posts and public assets."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := parser.Run(&commands.Global{Logger: slog.Default()}, cli); err != nil {
		ferrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
