package main

import (
	"errors"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/ttycat/thermaltyper/escpos"
)

// encodeAction runs the full wrap/encode pipeline against a text
// file, writing the resulting ESC/POS byte stream to a file instead
// of a printer. Useful for inspecting exactly what a job would send,
// or for piping to a device later.
func encodeAction(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return errors.New("encode requires 2 arguments, see help encode")
	}
	cfg, err := loadConfig(ctx.String("config"))
	if err != nil {
		return err
	}
	data, err := os.ReadFile(ctx.Args().Get(0))
	if err != nil {
		return err
	}
	output := ctx.Args().Get(1)
	f, err := openOutputFile(output)
	if err != nil {
		return err
	}
	table := escpos.NewWidthTable()
	ecfg := cfg.escposConfig()
	if _, err := f.Write(escpos.Setup(ecfg, cfg.Printer.MarginUnits)); err != nil {
		f.Close()
		return err
	}
	job := &escpos.Job{
		Enc:        escpos.NewEncoder(table),
		Transport:  f,
		Policy:     escpos.GlyphSubstitute,
		Substitute: cfg.substituteRune(),
		FeedLines:  cfg.Printer.BottomMarginLines,
		Cut:        true,
	}
	buf, err := escpos.NewLineBuffer(ecfg, table, job, nil)
	if err != nil {
		f.Close()
		return err
	}
	encode := func() error {
		for _, tok := range escpos.Tokenize(string(data), cfg.Printer.ArtFence) {
			if err := buf.Feed(tok); err != nil {
				return err
			}
		}
		if err := buf.Flush(); err != nil {
			return err
		}
		return job.End()
	}
	if err := encode(); err != nil {
		// Not a usable byte stream at this point.
		f.Close()
		os.Remove(output)
		return err
	}
	sent, _ := job.Delivered()
	logVerbose("encoded %d lines to %s", sent, output)
	return f.Close()
}
