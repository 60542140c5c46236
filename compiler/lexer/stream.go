package lexer

import "github.com/kush-lang/kushc/compiler/token"

// Stream is a channel-filtered, buffered view over a token slice
// (component C, spec §4.2). The parser only ever sees ChannelDefault
// tokens through La/Lt/Consume; hidden-channel tokens (whitespace,
// newlines, comments) stay addressable for tooling (e.g. --tokens) but
// never participate in lookahead.
type Stream struct {
	all     []token.Token
	visible []int // indices into all, default-channel only
	cursor  int   // index into visible
}

// NewStream buffers every token up front (the lexer already scans the
// whole file per spec §4.1, so there is no incremental fetch to defer)
// and assigns each token's absolute StreamIndex.
func NewStream(tokens []token.Token) *Stream {
	s := &Stream{all: tokens}
	for i := range s.all {
		s.all[i].StreamIndex = i
		if s.all[i].Channel == token.ChannelDefault {
			s.visible = append(s.visible, i)
		}
	}
	return s
}

// La returns the kind of the k-th default-channel token from the
// cursor (k=1 is the current token), or token.EndOfStream past the end.
func (s *Stream) La(k int) token.Kind {
	return s.Lt(k).Kind
}

// Lt returns the k-th default-channel token from the cursor (k=1 is
// current); returns the trailing EndOfStream sentinel once exhausted.
func (s *Stream) Lt(k int) token.Token {
	idx := s.cursor + k - 1
	if idx < 0 || idx >= len(s.visible) {
		return s.all[len(s.all)-1]
	}
	return s.all[s.visible[idx]]
}

// Consume returns the current default-channel token and advances the
// cursor past it; consuming past EndOfStream is a no-op so callers that
// over-consume during error recovery cannot run the cursor negative.
func (s *Stream) Consume() token.Token {
	tok := s.Lt(1)
	if s.cursor < len(s.visible) {
		s.cursor++
	}
	return tok
}

// Mark returns an opaque cursor position for backtracking.
func (s *Stream) Mark() int {
	return s.cursor
}

// Reset restores the cursor to a position previously returned by Mark.
func (s *Stream) Reset(mark int) {
	s.cursor = mark
}

// All returns every token (both channels) in source order, for
// tooling dumps such as --tokens.
func (s *Stream) All() []token.Token {
	return s.all
}
