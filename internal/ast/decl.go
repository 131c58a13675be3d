package ast

import "fmt"

// DeclKind tags the payload carried by a Decl.
type DeclKind uint8

const (
	DeclOther DeclKind = iota
	DeclNamespace
	DeclUse
	DeclForeign
	DeclTypeAlias
	DeclConst
)

func (k DeclKind) String() string {
	switch k {
	case DeclNamespace:
		return "namespace"
	case DeclUse:
		return "use"
	case DeclForeign:
		return "foreign"
	case DeclTypeAlias:
		return "type_alias"
	case DeclConst:
		return "const"
	default:
		return "other"
	}
}

func (k DeclKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *DeclKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "namespace":
		*k = DeclNamespace
	case "use":
		*k = DeclUse
	case "foreign":
		*k = DeclForeign
	case "type_alias":
		*k = DeclTypeAlias
	case "const":
		*k = DeclConst
	case "other":
		*k = DeclOther
	default:
		return fmt.Errorf("unknown decl kind %q", text)
	}
	return nil
}

// Decl is one node of the declaration tree. Exactly one payload field is
// set, matching Kind; DeclOther carries the translator's rendered text
// verbatim.
type Decl struct {
	ID     DeclID
	Kind   DeclKind
	Name   string `json:",omitempty"`
	Public bool   `json:",omitempty"`
	Attrs  []Attr `json:",omitempty"`

	Ns      *Namespace    `json:",omitempty"`
	Use     *UseTree      `json:",omitempty"`
	Foreign *ForeignBlock `json:",omitempty"`
	Alias   *AliasDef     `json:",omitempty"`
	Const   *ConstDef     `json:",omitempty"`
	Text    string        `json:",omitempty"`
}

// Namespace is the body of a DeclNamespace: an ordered list of children.
// Inline distinguishes `mod x { ... }` from a file-backed `mod x;`.
type Namespace struct {
	Decls  []*Decl
	Inline bool
}

// UseTreeKind distinguishes the import statement forms.
type UseTreeKind uint8

const (
	UseSimple UseTreeKind = iota
	UseNested
	UseGlob
)

func (k UseTreeKind) String() string {
	switch k {
	case UseNested:
		return "nested"
	case UseGlob:
		return "glob"
	default:
		return "simple"
	}
}

func (k UseTreeKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *UseTreeKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "simple":
		*k = UseSimple
	case "nested":
		*k = UseNested
	case "glob":
		*k = UseGlob
	default:
		return fmt.Errorf("unknown use tree kind %q", text)
	}
	return nil
}

// UseTree is an import: a single path (simple), a set of sub-trees sharing a
// common prefix (nested), or a glob.
type UseTree struct {
	Kind     UseTreeKind
	Prefix   Path
	Alias    string    `json:",omitempty"`
	Children []UseTree `json:",omitempty"`
}

// ForeignBlock groups externally linked symbols. Items carry their own IDs
// so merges can drop individual symbols instead of whole blocks.
type ForeignBlock struct {
	ABI   string
	Items []ForeignItem
}

// ForeignItem is one symbol inside a foreign block. Sig is the rendered
// signature, e.g. `fn malloc(size: usize) -> *mut c_void`.
type ForeignItem struct {
	ID   DeclID
	Name string
	Sig  string
}

// AliasDef is the payload of a type alias declaration.
type AliasDef struct {
	Target string
}

// ConstDef is the payload of a constant declaration.
type ConstDef struct {
	Type  string
	Value string
}

// Crate is the root of one declaration tree.
type Crate struct {
	Decls []*Decl
}
