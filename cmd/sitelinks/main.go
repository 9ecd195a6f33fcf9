package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitelinks/cmd/sitelinks/commands"
	"git.home.luguber.info/inful/sitelinks/internal/foundation/errors"
	"git.home.luguber.info/inful/sitelinks/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{Stdout: os.Stdout}

	ctx := kong.Parse(&cli,
		kong.Name("sitelinks"),
		kong.Description("Rewrite relative markdown links into site permalinks and build tables of contents."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	if err := ctx.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
