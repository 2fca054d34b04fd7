package main

import (
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitesmith/cmd/sitesmith/commands"
	"git.home.luguber.info/inful/sitesmith/internal/version"
)

func main() {
	cli := &commands.CLI{}
	kong.Parse(cli,
		kong.Name("sitesmith"),
		kong.Description("Render every site under the sites directory into the deploy directory."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	os.Exit(cli.Run(os.Stderr))
}
