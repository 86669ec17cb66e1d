package escpos

import "io"

// GlyphPolicy decides what the job driver does when the encoder
// rejects a character with UnsupportedGlyphError. The policy lives
// here, not in the encoder.
type GlyphPolicy int

const (
	// GlyphSubstitute replaces unsupported characters with the
	// job's substitute glyph and prints the line.
	GlyphSubstitute GlyphPolicy = iota
	// GlyphSkip drops the offending line from the job.
	GlyphSkip
	// GlyphAbort fails the job on the first unsupported character.
	GlyphAbort
)

const defaultSubstitute = '?'

// Job drives one print job: it accepts committed lines as the line
// buffer emits them, encodes each immediately and writes the bytes
// to the transport. It streams, never waiting for the whole input
// before the first line goes out. A transport write failure fails
// the job as a whole; bytes already sent to the printer cannot be
// retracted, so the resulting TransportError reports how many lines
// were delivered. A failed or ended job accepts no further lines.
type Job struct {
	Enc       *Encoder
	Transport io.Writer
	// Policy controls unsupported glyph handling, Substitute
	// replacing them with Substitute (default '?').
	Policy     GlyphPolicy
	Substitute rune
	// FeedLines blank lines are fed at job end, before the cut.
	FeedLines int
	// Cut appends a paper cut command at job end.
	Cut bool

	delivered int
	total     int
	err       error
	ended     bool
}

// Commit encodes one line and writes it to the transport. It
// implements LineSink so a Job can sit directly behind a LineBuffer.
func (j *Job) Commit(l Line) error {
	if j.err != nil {
		return j.err
	}
	if j.ended {
		return errJobEnded
	}
	j.total++
	data, err := j.Enc.Encode(l)
	if err != nil {
		var handled bool
		if data, handled, err = j.applyGlyphPolicy(l, err); err != nil {
			j.err = err
			return err
		}
		if !handled {
			// Line skipped, not part of the job after all.
			j.total--
			return nil
		}
	}
	return j.write(data)
}

// End writes the job trailer (feed and cut) and closes the job. A
// job that already failed reports the same error again without
// touching the transport.
func (j *Job) End() error {
	if j.err != nil {
		return j.err
	}
	if j.ended {
		return errJobEnded
	}
	j.ended = true
	var trailer []byte
	if j.FeedLines > 0 {
		trailer = append(trailer, feedCommand(j.FeedLines)...)
	}
	if j.Cut {
		trailer = append(trailer, cmdCut...)
	}
	if len(trailer) == 0 {
		return nil
	}
	if _, err := j.Transport.Write(trailer); err != nil {
		j.err = &TransportError{Delivered: j.delivered, Total: j.total, Err: err}
		return j.err
	}
	return nil
}

// Delivered returns how many lines reached the transport and how
// many the job attempted.
func (j *Job) Delivered() (sent, total int) {
	return j.delivered, j.total
}

func (j *Job) write(data []byte) error {
	if _, err := j.Transport.Write(data); err != nil {
		j.err = &TransportError{Delivered: j.delivered, Total: j.total, Err: err}
		return j.err
	}
	j.delivered++
	return nil
}

// applyGlyphPolicy resolves an encode failure. handled is false when
// the policy is to skip the line.
func (j *Job) applyGlyphPolicy(l Line, encErr error) (data []byte, handled bool, err error) {
	if _, ok := encErr.(*UnsupportedGlyphError); !ok {
		return nil, false, encErr
	}
	switch j.Policy {
	case GlyphSubstitute:
		sub := j.Substitute
		if sub == 0 {
			sub = defaultSubstitute
		}
		l.Text = j.Enc.Table.Sanitize(l.Text, sub)
		data, err = j.Enc.Encode(l)
		if err != nil {
			// The substitute itself has no encoding; nothing
			// sensible left to print.
			return nil, false, err
		}
		return data, true, nil
	case GlyphSkip:
		return nil, false, nil
	default:
		return nil, false, encErr
	}
}
