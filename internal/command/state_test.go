package command

import (
	"testing"

	"refactor/internal/ast"
)

func TestStateSeed(t *testing.T) {
	st := NewState(10)
	if got := st.NextDeclID(); got != 11 {
		t.Fatalf("first ID after seed 10 = %d, want 11", got)
	}
}

func TestStateMonotonic(t *testing.T) {
	st := NewState(ast.NoDeclID)
	var prev ast.DeclID
	for i := 0; i < 100; i++ {
		id := st.NextDeclID()
		if id <= prev {
			t.Fatalf("IDs not strictly increasing: %d after %d", id, prev)
		}
		prev = id
	}
}
