package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v2"
)

// printAction prints its arguments (joined by spaces) or stdin.
func printAction(ctx *cli.Context) error {
	_, p, err := setup(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	var text string
	if ctx.NArg() > 0 {
		text = strings.Join(ctx.Args().Slice(), " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return err
		}
		text = string(data)
	}
	if ctx.Bool("raw") {
		err = p.PrintRaw(text)
	} else {
		err = p.PrintText(text)
	}
	if err != nil {
		return err
	}
	if ctx.Bool("cut") {
		return p.Cut()
	}
	return nil
}

// artAction prints a file as raster graphics: PNG images pixel for
// pixel, anything else as ASCII art scaled to character cells.
func artAction(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("art requires 1 argument, see help art")
	}
	_, p, err := setup(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	input := ctx.Args().Get(0)
	if strings.EqualFold(filepath.Ext(input), ".png") {
		f, err := os.Open(input)
		if err != nil {
			return err
		}
		defer f.Close()
		im, err := png.Decode(f)
		if err != nil {
			return fmt.Errorf("error decoding %s: %v", input, err)
		}
		return p.PrintImage(im)
	}
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	lines := strings.Split(strings.Trim(string(data), "\n"), "\n")
	return p.PrintArt(lines)
}

// cutAction feeds the bottom margin and cuts.
func cutAction(ctx *cli.Context) error {
	_, p, err := setup(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	return p.Cut()
}

// shortcutsAction lists the registry.
func shortcutsAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx.String("config"))
	if err != nil {
		return err
	}
	if err := loadShortcutFiles(cfg.Shortcuts.Files); err != nil {
		return err
	}
	for _, name := range listShortcuts() {
		fmt.Printf("!%s\n", name)
	}
	return nil
}
