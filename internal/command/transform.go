package command

import "refactor/internal/ast"

// Phase records how far the producing toolchain has taken a tree. A
// transform declares the minimum phase it needs; the driver rejects
// snapshots that have not reached it.
type Phase uint8

const (
	PhaseParsed Phase = iota + 1
	PhaseExpanded
	PhaseResolved
)

func (p Phase) String() string {
	switch p {
	case PhaseParsed:
		return "parsed"
	case PhaseExpanded:
		return "expanded"
	case PhaseResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Transform rewrites one whole declaration tree. Apply never mutates its
// input: it returns a new tree, or an error, in which case the invocation
// is abandoned as a whole — there is no partially applied result.
type Transform interface {
	Name() string
	MinPhase() Phase
	Apply(crate *ast.Crate, st *State, sess *Session) (*ast.Crate, error)
}
