package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/ttycat/thermaltyper/escpos"
)

const banner = `
+--------------------------------------+
|      Thermal Typer                   |
|  ----------------------------------  |
|  type    ->  prints                  |
|  !name   ->  shortcut                |
|  cut     ->  cut paper               |
|  help    ->  list shortcuts          |
|  exit    ->  quit                    |
|  /live   ->  live mode (per key)     |
|  /line   ->  line mode (per Enter)   |
+--------------------------------------+
`

// terminalEcho is the display sink for line mode: committed lines
// are mirrored to the terminal as they go to the printer. Best
// effort by design, the print path never waits for it.
type terminalEcho struct{}

func (terminalEcho) Echo(l escpos.Line) {
	if l.IsRaster() {
		fmt.Printf("| [graphics %dx%d]\r\n", l.Raster.Width(), l.Raster.Height())
		return
	}
	fmt.Printf("| %s\r\n", l.Text)
}

// runCLI drives the interactive terminal session, switching between
// live and line mode until the user exits.
func runCLI(p *Printer, cfg *config) error {
	fmt.Print(banner)

	mode := "line"
	if cfg.CLI.LiveMode {
		mode = "live"
	}
	for {
		var next string
		var err error
		if mode == "live" {
			next, err = runLive(p, cfg)
		} else {
			next, err = runLine(p)
		}
		if err != nil {
			return err
		}
		switch next {
		case "exit":
			fmt.Println("Goodbye!")
			return nil
		case "live", "line":
			mode = next
			fmt.Printf("[Switched to %s mode]\n", next)
		}
	}
}

// runLive reads raw keystrokes and auto-prints whenever the typed
// buffer fills the line width, breaking at the last space. Enter is
// only used to submit commands. The on-screen text is a best-effort
// mirror; the printed output is authoritative.
func runLive(p *Printer, cfg *config) (string, error) {
	fmt.Print("[LIVE MODE] Prints automatically as you type.\n")
	fmt.Print("Press Enter after a command (exit, cut, !shortcut, /line).\n\n")

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return "", fmt.Errorf("cannot set raw terminal mode: %v", err)
	}
	defer term.Restore(fd, oldState)

	width := cfg.Printer.CharsPerLine
	rd := bufio.NewReader(os.Stdin)
	var buf []byte

	for {
		c, err := rd.ReadByte()
		if err != nil {
			return "exit", nil
		}
		switch {
		case c == 3 || c == 4: // Ctrl-C, Ctrl-D
			fmt.Print("\r\n")
			return "exit", nil

		case c == '\r' || c == '\n':
			line := strings.TrimSpace(string(buf))
			buf = buf[:0]
			fmt.Print("\r\n")
			if line == "" {
				if err := p.PrintChar('\n'); err != nil {
					fmt.Printf("[Printer error: %v]\r\n", err)
				}
				continue
			}
			if strings.ToLower(line) == "/line" {
				fmt.Print("[Switching to line mode]\r\n")
				return "line", nil
			}
			resp := dispatch(line, p)
			if resp.Exit {
				return "exit", nil
			}
			if resp.Err || (resp.Message != "" && !resp.Printed) {
				printIndented(resp.Message)
			}

		case c == 127 || c == 8: // backspace fixes the screen only
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
				fmt.Print("\b \b")
			}

		case c == 27: // swallow arrow keys and friends
			rd.ReadByte()
			rd.ReadByte()

		case c >= 0x20:
			buf = append(buf, c)
			fmt.Print(string(rune(c)))
			if len(buf) < width {
				continue
			}
			// Buffer hit the line width: break at the last
			// space, keep the partial word on screen.
			line := string(buf)
			toPrint := line
			leftover := ""
			if cut := strings.LastIndexByte(line, ' '); cut > 0 {
				toPrint = line[:cut]
				leftover = line[cut+1:]
			}
			buf = append(buf[:0], leftover...)
			fmt.Print("\r\n")
			if leftover != "" {
				fmt.Print(leftover)
			}
			if err := p.PrintText(toPrint); err != nil {
				fmt.Printf("\r\n[Printer error: %v]\r\n", err)
			}
		}
	}
}

// runLine reads full lines, printing each on Enter. Committed lines
// are mirrored back through the display sink.
func runLine(p *Printer) (string, error) {
	fmt.Print("[LINE MODE] Press Enter to print each line.\n")
	fmt.Print("Type '/live' to switch to live mode.\n\n")

	p.SetEcho(terminalEcho{})
	defer p.SetEcho(nil)

	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !sc.Scan() {
			fmt.Print("\n")
			return "exit", sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if strings.ToLower(line) == "/live" {
			return "live", nil
		}
		resp := dispatch(line, p)
		if resp.Exit {
			return "exit", nil
		}
		if resp.Err || (resp.Message != "" && !resp.Printed) {
			printIndented(resp.Message)
		}
	}
}

func printIndented(msg string) {
	for _, l := range strings.Split(msg, "\n") {
		fmt.Printf("  %s\r\n", l)
	}
}
