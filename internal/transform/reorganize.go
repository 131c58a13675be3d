package transform

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"refactor/internal/ast"
	"refactor/internal/command"
)

// ErrUnresolvedDestination reports a declaration for which no destination
// namespace could be decided. With the current resolution rules the state
// is unreachable; reporting it beats handing back an invalid mapping.
var ErrUnresolvedDestination = errors.New("unresolved destination namespace")

// stdNamespace collects every declaration that originated from a standard
// library header, no matter which synthetic namespace declared it.
const stdNamespace = "stdlib"

// ReorganizeNamespaces collapses the per-header namespaces a
// source-to-source translator nests into its output.
//
// Translated projects arrive shaped like:
//
//	mod buffer {
//	    #[header_src = "/some/path/buffer.h"]
//	    mod buffer_h {
//	        struct buffer_t { data: i32 }
//	    }
//	}
//
// and leave as:
//
//	mod buffer {
//	    struct buffer_t { data: i32 }
//	}
//
// Every declaration owned by a synthetic namespace is assigned one real
// destination namespace, duplicates introduced by repeated header inclusion
// are merged, and imports are rewritten to match the new layout.
type ReorganizeNamespaces struct{}

func (ReorganizeNamespaces) Name() string { return "reorganize_namespaces" }

// MinPhase requires resolved trees: the heuristics below trust the names in
// the tree, they do not re-check them.
func (ReorganizeNamespaces) MinPhase() command.Phase { return command.PhaseResolved }

func (ReorganizeNamespaces) Apply(crate *ast.Crate, st *command.State, sess *command.Session) (*ast.Crate, error) {
	info := newCrateInfo(st, sess)

	info.discover(crate)
	if err := info.resolve(crate); err != nil {
		return nil, err
	}
	plan := info.destinationPlan()
	crate = info.extend(crate, plan)
	crate = info.insert(crate, plan)
	return info.cleanup(crate), nil
}

// pathRecord tracks one import whose target may move. dest starts as
// NoDeclID and is back-patched during resolution once the destination
// namespace is known; records are only ever addressed through the map,
// never through pointers into the tree.
type pathRecord struct {
	prefix ast.Path
	dest   ast.DeclID
}

// crateInfo is the mutable context threaded through the pipeline stages.
type crateInfo struct {
	// decls is the flat catalog of the current tree keyed by stable ID. It
	// is rebuilt, never merged, when a stage invalidates it. A missing
	// entry means "no such declaration" and callers treat it as a no-op.
	decls map[ast.DeclID]*ast.Decl

	// destOf assigns each relocating declaration its destination namespace.
	destOf map[ast.DeclID]ast.DeclID

	// newNamespaces maps a namespace name to the ID minted for it, so a
	// destination synthesized once is reused by every later declaration
	// from a namespace of the same name.
	newNamespaces map[string]ast.DeclID

	// candidates holds namespaces that may serve as destinations: anything
	// not generated from a header.
	candidates map[ast.DeclID]bool

	pathMap map[ast.DeclID]*pathRecord

	st   *command.State
	sess *command.Session
}

func newCrateInfo(st *command.State, sess *command.Session) *crateInfo {
	info := &crateInfo{
		decls:         make(map[ast.DeclID]*ast.Decl),
		destOf:        make(map[ast.DeclID]ast.DeclID),
		newNamespaces: make(map[string]ast.DeclID),
		candidates:    make(map[ast.DeclID]bool),
		pathMap:       make(map[ast.DeclID]*pathRecord),
		st:            st,
		sess:          sess,
	}
	info.newNamespaces[stdNamespace] = st.NextDeclID()
	return info
}

// discover walks the tree once, cataloguing every declaration, collecting
// destination candidates, and opening a path record for every import.
func (info *crateInfo) discover(crate *ast.Crate) {
	ast.Walk(crate, func(d *ast.Decl) {
		switch d.Kind {
		case ast.DeclNamespace:
			if !ast.HasOriginHeader(d.Attrs) && !ast.IsStdOrigin(d.Attrs, info.sess.StdPrefixes()) {
				info.candidates[d.ID] = true
			}
		case ast.DeclUse:
			if d.Use != nil {
				info.pathMap[d.ID] = &pathRecord{
					prefix: d.Use.Prefix.Normalize(),
					dest:   ast.NoDeclID,
				}
			}
		}
		info.decls[d.ID] = d.Clone()
	})
}

// resolve decides a destination namespace for every declaration owned by a
// namespace, patching pending path records as the decisions land.
func (info *crateInfo) resolve(crate *ast.Crate) error {
	var resolveErr error
	ast.WalkNamespaces(crate, func(owner *ast.Decl) {
		if resolveErr != nil || owner.Ns == nil {
			return
		}
		for _, child := range owner.Ns.Decls {
			dest, name, err := info.findDestination(child.ID, owner)
			if err != nil {
				resolveErr = fmt.Errorf("resolving %q in namespace %q: %w", child.Name, owner.Name, err)
				return
			}
			info.destOf[child.ID] = dest
			info.patchPaths(owner.Name, name, dest)
		}
	})
	return resolveErr
}

// findDestination picks the namespace a declaration moves to: the stdlib
// singleton for standard-library headers, else the first candidate whose
// display name occurs in the owning namespace's name, else a namespace
// synthesized under the owner's own name.
//
// The substring match is a naive heuristic inherited from the translator
// toolchain. Candidates are scanned in ascending ID order so that the
// first match, arbitrary as it is, stays reproducible.
func (info *crateInfo) findDestination(child ast.DeclID, owner *ast.Decl) (ast.DeclID, string, error) {
	if ast.IsStdOrigin(owner.Attrs, info.sess.StdPrefixes()) {
		return info.newNamespaces[stdNamespace], stdNamespace, nil
	}

	for _, id := range sortedKeys(info.candidates) {
		cand, ok := info.decls[id]
		if !ok {
			continue
		}
		name := cand.Name
		if name == "" {
			name = info.sess.SourceName()
		}
		if name == "" {
			continue
		}
		if strings.Contains(owner.Name, name) {
			return cand.ID, name, nil
		}
	}

	if _, done := info.destOf[child]; !done {
		id, ok := info.newNamespaces[owner.Name]
		if !ok {
			id = info.st.NextDeclID()
			info.newNamespaces[owner.Name] = id
		}
		return id, owner.Name, nil
	}
	return ast.NoDeclID, "", ErrUnresolvedDestination
}

// patchPaths rewrites pending import records: any segment naming the old
// namespace now names its destination, and the record's placeholder is
// replaced by the real destination ID.
func (info *crateInfo) patchPaths(oldName, newName string, dest ast.DeclID) {
	if oldName == "" {
		return
	}
	for _, rec := range info.pathMap {
		for i, seg := range rec.prefix.Segments {
			if seg == oldName {
				rec.prefix.Segments[i] = newName
				rec.dest = dest
			}
		}
	}
}

// destinationPlan inverts destOf: destination namespace to the declarations
// that move into it, each list in ascending ID order.
func (info *crateInfo) destinationPlan() map[ast.DeclID][]ast.DeclID {
	plan := make(map[ast.DeclID][]ast.DeclID)
	for id, dest := range info.destOf {
		plan[dest] = append(plan[dest], id)
	}
	for _, ids := range plan {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return plan
}

// extend appends a top-level namespace for every destination that was
// synthesized rather than found, with its assigned declarations as the
// body. The body entries are catalog clones; the originals stay in place
// until the insert pass drops their synthetic parents.
func (info *crateInfo) extend(crate *ast.Crate, plan map[ast.DeclID][]ast.DeclID) *ast.Crate {
	nameOf := make(map[ast.DeclID]string, len(info.newNamespaces))
	for name, id := range info.newNamespaces {
		nameOf[id] = name
	}

	out := crate.Clone()
	for _, dest := range sortedKeys(plan) {
		name, synthesized := nameOf[dest]
		if !synthesized {
			continue
		}
		var body []*ast.Decl
		for _, id := range plan[dest] {
			if d, ok := info.decls[id]; ok {
				body = append(body, d.Clone())
			}
		}
		out.Decls = append(out.Decls, ast.NewNamespaceDecl(dest, name, body))
	}
	return out
}

// insert moves each relocated declaration into its destination namespace.
// Declarations generated from headers are dropped at their original spot,
// and a declaration is only appended when no equivalent child exists yet.
// The catalog is rebuilt during the fold: a synthetic namespace dropped
// here never makes it back in, because by the time its destination is
// processed the catalog no longer knows it.
func (info *crateInfo) insert(crate *ast.Crate, plan map[ast.DeclID][]ast.DeclID) *ast.Crate {
	info.decls = make(map[ast.DeclID]*ast.Decl)
	return ast.Fold(crate, func(d *ast.Decl) []*ast.Decl {
		if ast.HasOriginHeader(d.Attrs) || ast.IsStdOrigin(d.Attrs, info.sess.StdPrefixes()) {
			return nil
		}
		if d.Kind == ast.DeclNamespace && d.Ns != nil {
			for _, id := range plan[d.ID] {
				incoming, ok := info.decls[id]
				if !ok {
					continue
				}
				incoming = incoming.Clone()
				found := false
				for _, existing := range d.Ns.Decls {
					if compareDecls(incoming, existing) {
						found = true
					}
					// Foreign blocks merge at symbol granularity: an
					// incoming block sheds every symbol whose name is
					// already declared here.
					if incoming.Kind == ast.DeclForeign && incoming.Foreign != nil {
						name := existing.Name
						incoming.Foreign.Items = retainForeignItems(incoming.Foreign.Items, func(item ast.ForeignItem) bool {
							return item.Name != name
						})
					}
				}
				if !found {
					d.Ns.Decls = append(d.Ns.Decls, incoming)
				}
			}
		}
		info.decls[d.ID] = d.Clone()
		return []*ast.Decl{d}
	})
}

// cleanup is the final pass over every namespace: imports whose target
// became local are dropped, the rest are rewritten to their recorded
// prefixes and coalesced into one grouped import per destination, and
// declarations duplicated elsewhere in the namespace are removed.
func (info *crateInfo) cleanup(crate *ast.Crate) *ast.Crate {
	info.decls = make(map[ast.DeclID]*ast.Decl)
	ast.Walk(crate, func(d *ast.Decl) { info.decls[d.ID] = d.Clone() })

	return ast.Fold(crate, func(d *ast.Decl) []*ast.Decl {
		if d.Kind != ast.DeclNamespace || d.Ns == nil {
			return []*ast.Decl{d}
		}

		seenPaths := make(map[string]map[string]bool)
		kept := make([]*ast.Decl, 0, len(d.Ns.Decls))
		for _, child := range d.Ns.Decls {
			rec := info.pathMap[child.ID]
			if rec != nil && rec.dest == d.ID {
				// The import now refers to something local.
				continue
			}
			if child.Kind == ast.DeclUse && child.Use != nil && rec != nil {
				use := child.Use.Clone()
				use.Prefix = rec.prefix.Clone()
				switch use.Kind {
				case ast.UseNested:
					set := ensureSet(seenPaths, use.Prefix.String())
					for _, sub := range use.Children {
						set[sub.Prefix.String()] = true
					}
				case ast.UseSimple:
					if len(use.Prefix.Segments) > 1 {
						set := ensureSet(seenPaths, use.Prefix.Segments[0])
						set[use.Prefix.Segments[len(use.Prefix.Segments)-1]] = true
					} else {
						// A bare namespace import (`use libc;`) has nothing
						// to group; keep it with the rewritten prefix.
						rewritten := child.Clone()
						rewritten.Use = &use
						kept = append(kept, rewritten)
					}
				}
				continue
			}
			kept = append(kept, child)
		}

		kept = info.dropDuplicates(kept)

		// One grouped import per destination namespace, minus any symbol
		// the namespace now declares itself.
		local := make(map[string]bool, len(kept))
		for _, child := range kept {
			if child.Name != "" {
				local[child.Name] = true
			}
		}
		for _, prefix := range sortedStrings(seenPaths) {
			leaves := make([]string, 0, len(seenPaths[prefix]))
			for leaf := range seenPaths[prefix] {
				if !local[leaf] {
					leaves = append(leaves, leaf)
				}
			}
			if len(leaves) == 0 {
				continue
			}
			sort.Strings(leaves)
			kept = append(kept, ast.NewGroupedUse(info.st.NextDeclID(), ast.ParsePath(prefix), leaves))
		}

		d.Ns.Decls = kept
		return []*ast.Decl{d}
	})
}

// dropDuplicates removes declarations equivalent to another catalogued
// declaration of the same namespace, keeping exactly one copy. Foreign
// blocks are thinned symbol by symbol instead of dropped whole.
func (info *crateInfo) dropDuplicates(children []*ast.Decl) []*ast.Decl {
	ids := make([]ast.DeclID, 0, len(children))
	for _, child := range children {
		ids = append(ids, child.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	deleted := make(map[ast.DeclID]bool)
	kept := children[:0]
	for _, child := range children {
		removed := false
		for _, otherID := range ids {
			if otherID == child.ID {
				continue
			}
			other, ok := info.decls[otherID]
			if !ok {
				continue
			}
			if child.Kind == ast.DeclForeign && child.Foreign != nil {
				if other.Kind == ast.DeclForeign && other.Foreign != nil {
					dups := other.Foreign.Items
					child.Foreign.Items = retainForeignItems(child.Foreign.Items, func(item ast.ForeignItem) bool {
						for _, dup := range dups {
							if sameForeignItem(item, dup) && !deleted[dup.ID] {
								deleted[item.ID] = true
								return false
							}
						}
						return true
					})
				}
			} else if compareDecls(other, child) && !deleted[other.ID] {
				deleted[child.ID] = true
				removed = true
				break
			}
		}
		if !removed {
			kept = append(kept, child)
		}
	}
	return kept
}

// compareDecls is the duplicate relation. Structural equivalence is the
// base case; on top of it, type aliases and constants match on name alone,
// and imports match after stripping relative path segments.
//
// The name-only rules exist because the translator gives compiler-generated
// unnamed types deterministic suffixed names (`unnamed`, `unnamed_0`, ...),
// so the same alias translated through two headers differs only in that
// suffix. The underlying types are assumed compatible, not verified.
func compareDecls(a, b *ast.Decl) bool {
	if ast.Equiv(a, b) {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case ast.DeclTypeAlias, ast.DeclConst:
		return a.Name != "" && a.Name == b.Name
	case ast.DeclUse:
		if a.Use == nil || b.Use == nil {
			return false
		}
		na := a.Use.Clone()
		nb := b.Use.Clone()
		na.Prefix = na.Prefix.Normalize()
		nb.Prefix = nb.Prefix.Normalize()
		return ast.UseTreeEqual(na, nb)
	default:
		return false
	}
}

func sameForeignItem(a, b ast.ForeignItem) bool {
	return a.Name == b.Name && a.Sig == b.Sig
}

func retainForeignItems(items []ast.ForeignItem, keep func(ast.ForeignItem) bool) []ast.ForeignItem {
	out := items[:0]
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func ensureSet(m map[string]map[string]bool, key string) map[string]bool {
	set, ok := m[key]
	if !ok {
		set = make(map[string]bool)
		m[key] = set
	}
	return set
}

func sortedKeys[V any](m map[ast.DeclID]V) []ast.DeclID {
	keys := make([]ast.DeclID, 0, len(m))
	for id := range m {
		keys = append(keys, id)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func sortedStrings[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
