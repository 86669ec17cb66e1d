package escpos

import "strings"

// LineSink receives committed lines on the authoritative print path.
// Commit errors propagate straight back to the feeder; the buffer
// never swallows them.
type LineSink interface {
	Commit(Line) error
}

// DisplaySink mirrors committed lines for display, best effort. It
// is independent of the print path: delivery failure or lag is not
// an error condition for the buffer, and the print path is never
// delayed to keep a display in sync.
type DisplaySink interface {
	Echo(Line)
}

// Wrap decisions per fed token, a pure function of the accumulated
// width, the token width and the limit.
type wrapAction int

const (
	// actAppend: the token fits on the pending line.
	actAppend wrapAction = iota
	// actWrap: the pending line is committed first, the token
	// seeds the next line.
	actWrap
	// actSplit: the token alone is wider than the limit and must
	// be hard-split at column boundaries.
	actSplit
)

func decideWrap(width, tokenWidth, limit int) wrapAction {
	switch {
	case tokenWidth > limit:
		return actSplit
	case width+tokenWidth > limit:
		return actWrap
	default:
		return actAppend
	}
}

// LineBuffer accumulates input tokens and emits committed lines no
// wider than the configured column limit. An explicit newline forces
// emission; overflow triggers an auto-wrap; a single token wider
// than the limit is hard-split rather than dropped. Between a
// RegionStart and RegionEnd token the buffer collects graphics
// source instead and hands it to the converter as one atomic raster
// line.
//
// A LineBuffer serves a single input stream and is not safe for
// concurrent feeding.
type LineBuffer struct {
	limit int
	table *WidthTable
	conv  *Converter
	cellW int
	cellH int
	sink  LineSink
	echo  DisplaySink

	pending strings.Builder
	width   int

	inRegion   bool
	regionRows []string
	regionRow  strings.Builder
}

// NewLineBuffer returns a buffer for one print session. sink is the
// authoritative print pipeline and must not be nil; echo is the
// optional display mirror. An out-of-range column limit is a
// configuration error, rejected here rather than detected mid-job.
func NewLineBuffer(cfg Config, table *WidthTable, sink LineSink, echo DisplaySink) (*LineBuffer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		return nil, errNilSink
	}
	return &LineBuffer{
		limit: cfg.Columns,
		table: table,
		conv:  NewConverter(cfg),
		cellW: cfg.cellWidth(),
		cellH: cfg.cellHeight(),
		sink:  sink,
		echo:  echo,
	}, nil
}

// Feed appends one token to the pending buffer, committing lines as
// the wrap rules dictate.
func (b *LineBuffer) Feed(tok Token) error {
	if b.inRegion {
		return b.feedRegion(tok)
	}
	switch tok.Kind {
	case Newline:
		// Forced emission, even of an empty or under-width line.
		return b.commit()
	case RegionStart:
		// Art starts on a fresh line.
		if b.width > 0 {
			if err := b.commit(); err != nil {
				return err
			}
		}
		b.inRegion = true
		return nil
	case RegionEnd:
		// Stray terminator with no open region, nothing to do.
		return nil
	}
	w := b.table.StringWidth(tok.Text)
	switch decideWrap(b.width, w, b.limit) {
	case actAppend:
		b.append(tok.Text, w)
	case actWrap:
		if err := b.commit(); err != nil {
			return err
		}
		if tok.Kind == Space {
			// The wrap consumed the separator; a fresh line
			// never starts with the space that triggered it.
			return nil
		}
		b.append(tok.Text, w)
	case actSplit:
		return b.hardSplit(tok.Text)
	}
	return nil
}

// Flush force-emits any remaining pending content. Flushing an empty
// buffer is a no-op. An open graphics region is converted as-is,
// input having ended.
func (b *LineBuffer) Flush() error {
	if b.inRegion {
		return b.closeRegion()
	}
	if b.width == 0 && b.pending.Len() == 0 {
		return nil
	}
	return b.commit()
}

func (b *LineBuffer) append(text string, width int) {
	b.pending.WriteString(text)
	b.width += width
}

// hardSplit breaks a token wider than the limit at exact column
// boundaries. Full-width pieces are committed immediately; the final
// piece seeds the pending buffer so following tokens can join it.
func (b *LineBuffer) hardSplit(text string) error {
	if b.width > 0 {
		if err := b.commit(); err != nil {
			return err
		}
	}
	for _, r := range text {
		w := b.table.RuneWidth(r)
		if b.width+w > b.limit {
			if err := b.commit(); err != nil {
				return err
			}
		}
		b.pending.WriteRune(r)
		b.width += w
	}
	return nil
}

// commit emits the pending buffer as one committed line and resets.
// The print pipeline send is unconditional; the display echo rides
// on the same emission event but its delivery is independent.
func (b *LineBuffer) commit() error {
	line := Line{Text: b.pending.String(), Width: b.width}
	b.pending.Reset()
	b.width = 0
	if b.echo != nil {
		b.echo.Echo(line)
	}
	return b.sink.Commit(line)
}

func (b *LineBuffer) feedRegion(tok Token) error {
	switch tok.Kind {
	case RegionEnd:
		return b.closeRegion()
	case Newline:
		b.regionRows = append(b.regionRows, b.regionRow.String())
		b.regionRow.Reset()
	case RegionStart:
		// Nested markers are not a thing; treat as content-free.
	default:
		b.regionRow.WriteString(tok.Text)
	}
	return nil
}

// closeRegion converts the collected rows once and emits the result
// as a single atomic graphics line.
func (b *LineBuffer) closeRegion() error {
	if b.regionRow.Len() > 0 {
		b.regionRows = append(b.regionRows, b.regionRow.String())
	}
	rows := b.regionRows
	b.inRegion = false
	b.regionRows = nil
	b.regionRow.Reset()
	if len(rows) == 0 {
		return nil
	}
	raster, err := b.conv.Convert(NewTextRegion(rows, b.cellW, b.cellH))
	if err != nil {
		return err
	}
	line := Line{Raster: raster}
	if b.echo != nil {
		b.echo.Echo(line)
	}
	return b.sink.Commit(line)
}
