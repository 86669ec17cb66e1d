package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

var (
	verboseFlag = false
	debugFlag   = false
	appVersion  string
)

func main() {
	app := cli.NewApp()
	app.Name = "thermaltyper"
	app.Version = appVersion
	app.Usage = "typewriter for ESC/POS thermal receipt printers"
	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   defaultConfigFile,
			Usage:   "Path to the configuration file",
		},
		&cli.BoolFlag{
			Name:        "force",
			Aliases:     []string{"f"},
			Usage:       "Overwrite output files without asking",
			Destination: &forceFlag,
		},
		&cli.BoolFlag{
			Name:        "verbose",
			Aliases:     []string{"v"},
			Usage:       "Enable verbose output",
			Destination: &verboseFlag,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Aliases:     []string{"d"},
			Usage:       "Print debug messages",
			Destination: &debugFlag,
		},
	}
	app.Commands = []*cli.Command{
		{
			Name:   "run",
			Usage:  "Start the interactive terminal session (and the web UI if enabled)",
			Action: runAction,
		},
		{
			Name:   "serve",
			Usage:  "Start the web UI only",
			Action: serveAction,
		},
		{
			Name:      "print",
			Usage:     "Print the given text (or stdin with no arguments) and exit",
			ArgsUsage: "[text...]",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "raw",
					Aliases: []string{"r"},
					Usage:   "Preserve spacing, no word-wrap",
				},
				&cli.BoolFlag{
					Name:  "cut",
					Usage: "Cut the paper after printing",
				},
			},
			Action: printAction,
		},
		{
			Name:      "art",
			Usage:     "Print an ASCII art file or PNG image as raster graphics",
			ArgsUsage: "<input.txt|input.png>",
			Action:    artAction,
		},
		{
			Name:   "cut",
			Usage:  "Feed the bottom margin and cut the paper",
			Action: cutAction,
		},
		{
			Name:   "shortcuts",
			Usage:  "List the available shortcuts",
			Action: shortcutsAction,
		},
		{
			Name:      "encode",
			Usage:     "Render a text file to an ESC/POS byte file instead of the printer",
			ArgsUsage: "<input.txt> <output.bin>",
			Action:    encodeAction,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the configuration and shortcut registries and returns
// the shared printer front.
func setup(ctx *cli.Context) (*config, *Printer, error) {
	cfg, err := loadConfig(ctx.String("config"))
	if err != nil {
		return nil, nil, err
	}
	if err := loadShortcutFiles(cfg.Shortcuts.Files); err != nil {
		return nil, nil, err
	}
	return cfg, newPrinter(cfg), nil
}
