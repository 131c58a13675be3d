package command

import "refactor/internal/ast"

// State owns the identifier allocator for one invocation. Every fresh
// DeclID a transform mints comes from here, so uniqueness holds across the
// whole run. One State serves one tree; a new tree gets a new State seeded
// past the largest ID the tree already uses.
type State struct {
	last uint32
}

// NewState returns an allocator that hands out IDs strictly greater than
// seed.
func NewState(seed ast.DeclID) *State {
	return &State{last: uint32(seed)}
}

// NextDeclID mints a fresh identifier.
func (s *State) NextDeclID() ast.DeclID {
	s.last++
	if s.last == 0 {
		panic("command: DeclID space exhausted")
	}
	return ast.DeclID(s.last)
}
