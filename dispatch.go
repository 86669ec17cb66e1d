package main

import (
	"fmt"
	"strings"
)

// printSurface is what the dispatcher needs from the printer. Both
// interfaces (CLI and web) share one Printer behind this.
type printSurface interface {
	PrintText(text string) error
	PrintArt(lines []string) error
	Cut() error
}

// response is the dispatcher's answer to one piece of input, shared
// by every interface.
type response struct {
	// Printed is true if something went to the printer.
	Printed bool
	// Message is feedback to show the user.
	Message string
	// Err is true if something went wrong.
	Err bool
	// Exit is true when the user asked to quit the session.
	Exit bool
}

func okResponse(msg string, printed bool) response {
	return response{Printed: printed, Message: msg}
}

func errResponse(msg string) response {
	return response{Message: msg, Err: true}
}

// dispatch parses one piece of input from any interface and acts on
// it: built-in commands, shortcut lookup, then plain text to print.
func dispatch(text string, p printSurface) response {
	raw := strings.TrimSpace(text)
	lower := strings.ToLower(raw)

	if raw == "" {
		if err := p.PrintText("\n"); err != nil {
			return errResponse(fmt.Sprintf("Printer error: %v", err))
		}
		return okResponse("(blank line printed)", true)
	}

	switch lower {
	case "cut":
		if err := p.Cut(); err != nil {
			return errResponse(fmt.Sprintf("Printer error: %v", err))
		}
		return okResponse("Paper cut.", true)
	case "exit", "quit":
		return response{Exit: true}
	case "help", "shortcuts":
		var b strings.Builder
		b.WriteString("Available shortcuts:\n")
		for _, name := range listShortcuts() {
			fmt.Fprintf(&b, "  !%s\n", name)
		}
		b.WriteString("\nCommands: cut, exit, help")
		return okResponse(b.String(), false)
	}

	if body, rawArt, ok := resolveShortcut(lower); ok {
		var err error
		if rawArt {
			err = p.PrintArt(strings.Split(strings.Trim(body, "\n"), "\n"))
		} else {
			err = p.PrintText(body)
		}
		if err != nil {
			return errResponse(fmt.Sprintf("Printer error: %v", err))
		}
		return okResponse(fmt.Sprintf("Shortcut %q printed.", strings.TrimLeft(lower, "!")), true)
	}

	if err := p.PrintText(raw); err != nil {
		return errResponse(fmt.Sprintf("Printer error: %v", err))
	}
	return okResponse("Printed.", true)
}
