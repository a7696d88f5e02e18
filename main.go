package main

import (
	"os"

	"github.com/alecthomas/kong"

	"pixelart/config"
	"pixelart/convert"
	"pixelart/inspect"
	"pixelart/server"
)

type cli struct {
	config.Logging

	Config kong.ConfigFlag `help:"Load flag defaults from a JSON file"`

	Convert convert.CLICmd `cmd:"" help:"Convert images into numbered pixel art charts"`
	Info    inspect.CLICmd `cmd:"" help:"Show the grid each image would produce"`
	Serve   server.CLICmd  `cmd:"" help:"Serve the conversion API over HTTP"`
}

func main() {
	var c cli
	kctx := kong.Parse(&c,
		kong.Name("pixelart"),
		kong.Description("Turn pictures into paint-by-number pixel art charts."),
		kong.UsageOnError(),
		kong.Configuration(kong.JSON, "/etc/pixelart.json", "~/.config/pixelart.json"),
	)

	logger := c.Logging.Logger(os.Stderr)
	err := kctx.Run(logger)
	if err != nil {
		logger.Error("failed", "command", kctx.Command(), "error", err)
		os.Exit(1)
	}
}
