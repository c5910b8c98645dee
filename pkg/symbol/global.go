package symbol

// nativeSizes pairs every built-in type name with its size in bytes,
// matching the symbol-table engine's contract (§4.5): the global table is
// configured once, before any module is processed, with these native
// types plus the assert/print/sizeof built-in functions.
var nativeSizes = map[string]int{
	"bool":       1,
	"byte":       1,
	"addr":       8,
	"int8":       1,
	"int16":      2,
	"int32":      4,
	"int64":      8,
	"uint8":      1,
	"uint16":     2,
	"uint32":     4,
	"uint64":     8,
	"float32":    4,
	"float64":    8,
	"complex64":  8,
	"complex128": 16,
	"string":     8,
}

// builtinFunctions lists the built-in callables every module can resolve
// without an import.
var builtinFunctions = []string{"assert", "print", "sizeof"}

// NewGlobal constructs the global SymTable, pre-populated with every
// native type and built-in function. resolve.Resolve calls it once per
// call, after parsing and before walking any module, and returns the
// result as the root of the scope tree.
func NewGlobal() *SymTable {
	capacity := uint(len(nativeSizes) + len(builtinFunctions))
	global := Spawn(nil, Global, capacity)

	for name, size := range nativeSizes {
		if _, err := Insert(global, name, NewNative(size)); err != nil {
			panic("symbol: duplicate native type " + name)
		}
	}

	for _, name := range builtinFunctions {
		// Built-ins carry no parameter/body table of their own; the
		// resolver binds a call's callee by Lookup alone and never walks
		// into a Function symbol's Table.
		if _, err := Insert(global, name, NewFunction(nil, 0)); err != nil {
			panic("symbol: duplicate builtin function " + name)
		}
	}

	return global
}
