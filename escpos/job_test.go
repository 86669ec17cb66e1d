package escpos

import (
	"bytes"
	"encoding/hex"
	"errors"
	"strings"
	"testing"
)

// flakyTransport accepts failAfter writes, then fails every write.
type flakyTransport struct {
	bytes.Buffer
	failAfter int
	writes    int
}

var errUnplugged = errors.New("device unplugged")

func (w *flakyTransport) Write(p []byte) (int, error) {
	if w.writes >= w.failAfter {
		return 0, errUnplugged
	}
	w.writes++
	return w.Buffer.Write(p)
}

func newTestJob(w *flakyTransport) *Job {
	return &Job{
		Enc:       NewEncoder(NewWidthTable()),
		Transport: w,
	}
}

func TestCallOrderEqualsOutputOrder(t *testing.T) {
	// Encoding lines [A, B, C] through a job yields exactly
	// encode(A) + encode(B) + encode(C).
	lines := []Line{{Text: "first"}, {Text: "second"}, {Text: "third"}}
	var expected []byte
	ref := NewEncoder(NewWidthTable())
	for _, l := range lines {
		data, err := ref.Encode(l)
		if err != nil {
			t.Fatal(err)
		}
		expected = append(expected, data...)
	}
	w := &flakyTransport{failAfter: 10}
	job := newTestJob(w)
	for _, l := range lines {
		if err := job.Commit(l); err != nil {
			t.Fatal(err)
		}
	}
	if !bytes.Equal(w.Bytes(), expected) {
		t.Fatalf("expecting %s, got %s",
			hex.EncodeToString(expected), hex.EncodeToString(w.Bytes()))
	}
}

func TestTransportFailureReportsPartialDelivery(t *testing.T) {
	w := &flakyTransport{failAfter: 2}
	job := newTestJob(w)
	if err := job.Commit(Line{Text: "one"}); err != nil {
		t.Fatal(err)
	}
	if err := job.Commit(Line{Text: "two"}); err != nil {
		t.Fatal(err)
	}
	err := job.Commit(Line{Text: "three"})
	var terr *TransportError
	if !errors.As(err, &terr) {
		t.Fatalf("expecting TransportError, got %v", err)
	}
	if terr.Delivered != 2 || terr.Total != 3 {
		t.Fatalf("expecting 2 of 3 delivered, got %d of %d", terr.Delivered, terr.Total)
	}
	if !strings.Contains(terr.Error(), "2 of 3") {
		t.Fatalf("error message must report partial delivery: %q", terr.Error())
	}
	if !errors.Is(err, errUnplugged) {
		t.Fatal("transport cause not wrapped")
	}

	// The job is dead: no retry of already-sent lines, no further
	// transport writes.
	writesBefore := w.writes
	if err := job.Commit(Line{Text: "four"}); !errors.As(err, &terr) {
		t.Fatalf("expecting the job failure again, got %v", err)
	}
	if err := job.End(); !errors.As(err, &terr) {
		t.Fatalf("expecting the job failure from End, got %v", err)
	}
	if w.writes != writesBefore {
		t.Fatal("failed job touched the transport again")
	}
}

func TestEndTrailer(t *testing.T) {
	w := &flakyTransport{failAfter: 10}
	job := newTestJob(w)
	job.FeedLines = 4
	job.Cut = true
	if err := job.Commit(Line{Text: "x"}); err != nil {
		t.Fatal(err)
	}
	if err := job.End(); err != nil {
		t.Fatal(err)
	}
	// payload + LF, ESC d 4, GS V 1.
	expected := mustHex(t, "780a"+"1b6404"+"1d5601")
	if !bytes.Equal(w.Bytes(), expected) {
		t.Fatalf("expecting %s, got %s",
			hex.EncodeToString(expected), hex.EncodeToString(w.Bytes()))
	}
	if err := job.Commit(Line{Text: "late"}); err == nil {
		t.Fatal("ended job accepted a line")
	}
}

func TestGlyphSubstitutePolicy(t *testing.T) {
	w := &flakyTransport{failAfter: 10}
	job := newTestJob(w)
	job.Substitute = '?'
	if err := job.Commit(Line{Text: "a→b"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.Bytes(), []byte("a?b\n")) {
		t.Fatalf("expecting substituted payload, got %q", w.Bytes())
	}
	if sent, total := job.Delivered(); sent != 1 || total != 1 {
		t.Fatalf("expecting 1 of 1, got %d of %d", sent, total)
	}
}

func TestGlyphSkipPolicy(t *testing.T) {
	w := &flakyTransport{failAfter: 10}
	job := newTestJob(w)
	job.Policy = GlyphSkip
	if err := job.Commit(Line{Text: "a→b"}); err != nil {
		t.Fatal(err)
	}
	if err := job.Commit(Line{Text: "ok"}); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(w.Bytes(), []byte("ok\n")) {
		t.Fatalf("skipped line leaked into output: %q", w.Bytes())
	}
	if sent, total := job.Delivered(); sent != 1 || total != 1 {
		t.Fatalf("skipped line still counted: %d of %d", sent, total)
	}
}

func TestGlyphAbortPolicy(t *testing.T) {
	w := &flakyTransport{failAfter: 10}
	job := newTestJob(w)
	job.Policy = GlyphAbort
	err := job.Commit(Line{Text: "a→b"})
	var ug *UnsupportedGlyphError
	if !errors.As(err, &ug) {
		t.Fatalf("expecting UnsupportedGlyphError, got %v", err)
	}
	if w.Buffer.Len() != 0 {
		t.Fatal("aborted job wrote to the transport")
	}
	if err := job.Commit(Line{Text: "ok"}); err == nil {
		t.Fatal("aborted job accepted another line")
	}
}
