package replay

import (
	"fmt"
	"strings"

	"github.com/milk9111/rollcube/common"
)

// Script replays a fixed sequence of moves for headless runs. Each move is
// held until Accept is called, which the runner does when a roll starts.
type Script struct {
	moves []common.Direction
	next  int
	loop  bool
}

// ParseScript reads moves written as U, D, L, R in either case. Spaces and
// commas are ignored.
func ParseScript(s string, loop bool) (*Script, error) {
	sc := &Script{loop: loop}
	for i, r := range s {
		switch r {
		case ' ', ',', '\n', '\t':
			continue
		}
		d, err := common.ParseDirection(string(r))
		if err != nil || !d.Cardinal() {
			return nil, fmt.Errorf("replay: move %d: %w %q", i, common.ErrUnknownDirection, r)
		}
		sc.moves = append(sc.moves, d)
	}
	return sc, nil
}

// Held reports whether d is the pending move.
func (s *Script) Held(d common.Direction) bool {
	cur, ok := s.Current()
	return ok && cur == d
}

func (s *Script) Current() (common.Direction, bool) {
	if s.next >= len(s.moves) {
		return 0, false
	}
	return s.moves[s.next], true
}

// Accept consumes the pending move.
func (s *Script) Accept() {
	if s.next >= len(s.moves) {
		return
	}
	s.next++
	if s.loop && s.next == len(s.moves) {
		s.next = 0
	}
}

// Done reports whether every move was consumed.
func (s *Script) Done() bool {
	return s.next >= len(s.moves)
}

func (s *Script) Len() int {
	return len(s.moves)
}

func (s *Script) String() string {
	var b strings.Builder
	for i, d := range s.moves {
		if i == s.next {
			b.WriteByte('|')
		}
		b.WriteString(strings.ToUpper(d.String()[:1]))
	}
	return b.String()
}
