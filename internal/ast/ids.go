package ast

// DeclID identifies a declaration for the lifetime of one transform
// invocation. Clones keep the ID of the original, so identity is carried by
// the ID alone, never by pointer.
type DeclID uint32

// NoDeclID is the zero ID; it never names a real declaration.
const NoDeclID DeclID = 0

func (id DeclID) IsValid() bool { return id != NoDeclID }
