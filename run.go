package main

import (
	"github.com/urfave/cli/v2"
)

// runAction starts the interactive terminal session. If the web UI
// is enabled, it serves in the background sharing the same printer.
func runAction(ctx *cli.Context) error {
	cfg, p, err := setup(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	if cfg.Web.Enabled {
		go func() {
			if err := runWeb(p, cfg); err != nil {
				logger.Printf("web server stopped: %v", err)
			}
		}()
	}
	return runCLI(p, cfg)
}

// serveAction runs the web UI in the foreground, no terminal session.
func serveAction(ctx *cli.Context) error {
	cfg, p, err := setup(ctx)
	if err != nil {
		return err
	}
	defer p.Close()
	return runWeb(p, cfg)
}
