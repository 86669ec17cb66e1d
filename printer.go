package main

import (
	"errors"
	"fmt"
	"image"
	"io"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/ttycat/thermaltyper/escpos"
)

// Printer is the shared front for the physical device. It owns the
// transport connection and serializes sessions: the CLI and the web
// form print through the same instance, one job at a time. The
// connection is lazy, nothing touches the device until the first
// print, and a printer that disappears mid-session is redialed on
// the next call.
type Printer struct {
	mu    sync.Mutex
	cfg   *config
	table *escpos.WidthTable
	enc   *escpos.Encoder

	// echo, when set, mirrors committed lines to the terminal.
	// Best effort; the print path does not depend on it.
	echo escpos.DisplaySink

	dev         io.WriteCloser
	lastAttempt time.Time
	lastErr     error
}

func newPrinter(cfg *config) *Printer {
	table := escpos.NewWidthTable()
	return &Printer{
		cfg:   cfg,
		table: table,
		enc:   escpos.NewEncoder(table),
	}
}

// PrintText word-wraps text to the configured width and prints it.
// Art fence markers inside the text delimit blocks printed as raster
// graphics instead of wrapped text.
func (p *Printer) PrintText(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	dev, err := p.connection()
	if err != nil {
		return err
	}
	job := p.newJob(dev)
	buf, err := escpos.NewLineBuffer(p.cfg.escposConfig(), p.table, job, p.echo)
	if err != nil {
		return err
	}
	for _, tok := range escpos.Tokenize(text, p.cfg.Printer.ArtFence) {
		if err := buf.Feed(tok); err != nil {
			return p.fail(err)
		}
	}
	if err := buf.Flush(); err != nil {
		return p.fail(err)
	}
	return p.fail(job.End())
}

// PrintRaw prints text line by line with spacing preserved and no
// word-wrap. Lines wider than the printhead are left to the printer,
// which wraps them mid-character-cell.
func (p *Printer) PrintRaw(text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	dev, err := p.connection()
	if err != nil {
		return err
	}
	job := p.newJob(dev)
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		l := escpos.Line{Text: line, Width: p.table.StringWidth(line)}
		if err := job.Commit(l); err != nil {
			return p.fail(err)
		}
	}
	return p.fail(job.End())
}

// PrintArt converts ASCII art lines to a raster block and prints it.
func (p *Printer) PrintArt(lines []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	region := escpos.NewTextRegion(lines, p.cfg.Printer.CellWidth, p.cfg.Printer.CellHeight)
	return p.printRegion(region)
}

// PrintImage converts an image to a raster block and prints it.
func (p *Printer) PrintImage(im image.Image) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.printRegion(escpos.NewImageRegion(im))
}

// PrintChar prints a single character immediately, without a line
// feed. Used by the live typewriter modes.
func (p *Printer) PrintChar(r rune) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	dev, err := p.connection()
	if err != nil {
		return err
	}
	var b []byte
	switch {
	case r == '\n' || r == '\r':
		b = []byte{'\n'}
	default:
		code, _, ok := p.table.Lookup(r)
		if !ok {
			code, _, _ = p.table.Lookup(p.cfg.substituteRune())
		}
		b = []byte{code}
	}
	if _, err := dev.Write(b); err != nil {
		p.markDisconnected()
		return fmt.Errorf("printer write failed: %v", err)
	}
	return nil
}

// Cut feeds the bottom margin and cuts the paper.
func (p *Printer) Cut() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	dev, err := p.connection()
	if err != nil {
		return err
	}
	job := p.newJob(dev)
	job.FeedLines = p.cfg.Printer.BottomMarginLines
	job.Cut = true
	return p.fail(job.End())
}

// SetEcho installs or removes the display sink for committed lines.
func (p *Printer) SetEcho(echo escpos.DisplaySink) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.echo = echo
}

// IsConnected reports whether a live transport handle exists.
func (p *Printer) IsConnected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dev != nil
}

// Close drops the transport connection.
func (p *Printer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dev == nil {
		return nil
	}
	err := p.dev.Close()
	p.dev = nil
	return err
}

func (p *Printer) newJob(dev io.Writer) *escpos.Job {
	return &escpos.Job{
		Enc:        p.enc,
		Transport:  dev,
		Policy:     escpos.GlyphSubstitute,
		Substitute: p.cfg.substituteRune(),
	}
}

func (p *Printer) printRegion(region *escpos.Region) error {
	dev, err := p.connection()
	if err != nil {
		return err
	}
	raster, err := escpos.NewConverter(p.cfg.escposConfig()).Convert(region)
	if err != nil {
		return err
	}
	job := p.newJob(dev)
	if err := job.Commit(escpos.Line{Raster: raster}); err != nil {
		return p.fail(err)
	}
	return p.fail(job.End())
}

// fail inspects a job error. A transport failure drops the cached
// connection so the next print redials.
func (p *Printer) fail(err error) error {
	if err == nil {
		return nil
	}
	var terr *escpos.TransportError
	if errors.As(err, &terr) {
		p.markDisconnected()
	}
	return err
}

// connection returns a live transport, dialing if needed. Redial
// attempts are rate limited to the configured reconnect interval so
// a powered-off printer doesn't stall every keystroke. Must be
// called with the mutex held.
func (p *Printer) connection() (io.Writer, error) {
	if p.dev != nil {
		return p.dev, nil
	}
	if p.lastErr != nil && time.Since(p.lastAttempt) < p.cfg.reconnectInterval() {
		return nil, p.lastErr
	}
	p.lastAttempt = time.Now()
	dev, err := dialDevice(p.cfg.Printer.Device)
	if err != nil {
		p.lastErr = fmt.Errorf("printer not reachable: %v", err)
		logVerbose("printer not reachable: %v", err)
		return nil, p.lastErr
	}
	// Session prelude: init, code page, hardware left margin.
	setup := escpos.Setup(p.cfg.escposConfig(), p.cfg.Printer.MarginUnits)
	logDebug("session prelude: % x", setup)
	if _, err := dev.Write(setup); err != nil {
		dev.Close()
		p.lastErr = fmt.Errorf("printer setup failed: %v", err)
		return nil, p.lastErr
	}
	logVerbose("printer connected on %s", p.cfg.Printer.Device)
	p.dev = dev
	p.lastErr = nil
	return p.dev, nil
}

func (p *Printer) markDisconnected() {
	if p.dev != nil {
		p.dev.Close()
		p.dev = nil
	}
}

// dialDevice opens the print transport: a host:port address dials
// TCP (port 9100 raw printing), anything else opens as a character
// device.
func dialDevice(device string) (io.WriteCloser, error) {
	if !strings.HasPrefix(device, "/") && strings.Contains(device, ":") {
		conn, err := net.DialTimeout("tcp", device, 5*time.Second)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	return os.OpenFile(device, os.O_WRONLY, 0)
}
