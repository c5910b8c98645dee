package symbol

import (
	"errors"

	"github.com/birendpatel/lemon/pkg/arena"
)

// Tag classifies what kind of lexical scope a SymTable represents.
type Tag int

const (
	Global Tag = iota
	ModuleTag
	FunctionTag
	MethodTag
	UdtTag
	BlockTag
)

func (t Tag) String() string {
	switch t {
	case Global:
		return "global"
	case ModuleTag:
		return "module"
	case FunctionTag:
		return "function"
	case MethodTag:
		return "method"
	case UdtTag:
		return "udt"
	case BlockTag:
		return "block"
	default:
		return "unknown"
	}
}

// ErrAlreadyExists is returned by Insert when key is already bound in
// table.
var ErrAlreadyExists = errors.New("already exists")

// ErrNotFound is returned by Lookup when key is unbound in table or any
// of its ancestors.
var ErrNotFound = errors.New("not found")

// SymTable is one node of the n-ary scope tree. Every table but the root
// has a parent; entries are unique within a table but may shadow an entry
// of the same name in an ancestor. Every Symbol a table binds lives in
// that table's own arena pool, per spec.md §4.5 -- the hash map only
// ever stores pointers into it, never owns a Symbol directly.
type SymTable struct {
	Tag     Tag
	Parent  *SymTable
	entries *hashMap
	pool    *arena.Pool[Symbol]
}

// Spawn creates a child of parent with the given tag, pre-sized for
// capacity insertions. Passing a nil parent requires tag == Global and
// constructs the root of the tree.
func Spawn(parent *SymTable, tag Tag, capacity uint) *SymTable {
	if parent == nil && tag != Global {
		panic("symbol: only the Global table may have a nil parent")
	}

	if parent != nil && tag == Global {
		panic("symbol: Global table must be the tree root")
	}

	if capacity == 0 {
		capacity = 1
	}

	return &SymTable{
		Tag:     tag,
		Parent:  parent,
		entries: newHashMap(capacity),
		pool:    arena.NewPool[Symbol](capacity),
	}
}

// Insert binds key to sym within table only (never its ancestors),
// copying sym into table's arena pool and handing back the pool's own
// stable pointer -- the one pointer callers should keep around (in an
// ast.Node's Entry field, say), since it never moves for the table's
// lifetime. Returns ErrAlreadyExists if table already binds key, in
// which case sym is never allocated out of the pool.
func Insert(table *SymTable, key string, sym Symbol) (*Symbol, error) {
	if _, ok := table.entries.lookup(key); ok {
		return nil, ErrAlreadyExists
	}

	stored := table.pool.Put(sym)

	if _, err := table.entries.insert(key, stored); err != nil {
		return nil, ErrAlreadyExists
	}

	return stored, nil
}

// Lookup searches table, then table.Parent, transitively up to the
// global root, returning the first binding found along with the table
// that owns it.
func Lookup(table *SymTable, key string) (*Symbol, *SymTable, error) {
	for t := table; t != nil; t = t.Parent {
		if sym, ok := t.entries.lookup(key); ok {
			return sym, t, nil
		}
	}

	return nil, nil, ErrNotFound
}

// Remove deletes key's binding from table only, leaving a tombstone so
// probe chains for other keys remain intact. Reports whether key was
// bound in table.
func Remove(table *SymTable, key string) bool {
	return table.entries.remove(key)
}
