package escpos

import "strings"

// TokenKind discriminates the units of input the line buffer
// understands. Region boundaries are first-class tokens so the
// buffer can hand a graphics block to the converter without
// re-parsing text it has already consumed.
type TokenKind int

const (
	// Word is a run of non-whitespace characters, treated as
	// unbreakable unless it is wider than the line limit.
	Word TokenKind = iota
	// Space is a run of spaces or tabs, preserved verbatim.
	Space
	// Newline forces emission of the pending line.
	Newline
	// RegionStart opens a graphics region. Tokens up to the
	// matching RegionEnd are collected as raster source.
	RegionStart
	// RegionEnd closes a graphics region.
	RegionEnd
)

// Token is one unit of input for LineBuffer.Feed. Text is empty for
// Newline, RegionStart and RegionEnd.
type Token struct {
	Kind TokenKind
	Text string
}

// Tokenize splits raw input into word, space and newline tokens. If
// fence is non-empty, any line consisting solely of the fence marker
// becomes a RegionStart/RegionEnd pair boundary instead of text;
// markers alternate, the first opens a region. Spacing inside the
// input is preserved exactly across tokens, so a graphics region's
// source reassembles losslessly.
func Tokenize(input, fence string) []Token {
	var toks []Token
	inRegion := false
	for len(input) > 0 {
		line := input
		rest := ""
		if i := indexNewline(input); i >= 0 {
			line = input[:i]
			rest = input[i:]
		}
		if fence != "" && strings.Trim(line, " \t") == fence {
			if inRegion {
				toks = append(toks, Token{Kind: RegionEnd})
			} else {
				toks = append(toks, Token{Kind: RegionStart})
			}
			inRegion = !inRegion
			input = consumeNewline(rest)
			continue
		}
		toks = append(toks, tokenizeLine(line)...)
		if rest != "" {
			toks = append(toks, Token{Kind: Newline})
		}
		input = consumeNewline(rest)
	}
	return toks
}

func tokenizeLine(line string) []Token {
	var toks []Token
	start := 0
	space := false
	flush := func(end int) {
		if end == start {
			return
		}
		kind := Word
		if space {
			kind = Space
		}
		toks = append(toks, Token{Kind: kind, Text: line[start:end]})
		start = end
	}
	for i, r := range line {
		isSpace := r == ' ' || r == '\t'
		if isSpace != space {
			flush(i)
			space = isSpace
		}
	}
	flush(len(line))
	return toks
}

func indexNewline(s string) int {
	return strings.IndexAny(s, "\r\n")
}

func consumeNewline(s string) string {
	if len(s) > 0 && s[0] == '\r' {
		s = s[1:]
	}
	if len(s) > 0 && s[0] == '\n' {
		s = s[1:]
	}
	return s
}
