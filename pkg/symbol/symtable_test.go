package symbol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpawn_RootMustBeGlobal(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic spawning non-global root")
		}
	}()

	Spawn(nil, ModuleTag, 1)
}

func TestInsert_RejectsDuplicateInSameTable(t *testing.T) {
	table := Spawn(nil, Global, 4)

	_, err := Insert(table, "x", NewVariable(false, 1))
	assert.NoError(t, err)

	_, err = Insert(table, "x", NewVariable(false, 2))
	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestInsert_AllowsShadowingAcrossTables(t *testing.T) {
	root := Spawn(nil, Global, 4)
	child := Spawn(root, BlockTag, 4)

	_, err := Insert(root, "x", NewVariable(false, 1))
	assert.NoError(t, err)

	_, err = Insert(child, "x", NewVariable(false, 2))
	assert.NoError(t, err, "a child table may shadow a parent's binding")
}

func TestLookup_WalksUpToRoot(t *testing.T) {
	root := Spawn(nil, Global, 4)
	mid := Spawn(root, ModuleTag, 4)
	leaf := Spawn(mid, BlockTag, 4)

	want, err := Insert(root, "x", NewVariable(true, 7))
	assert.NoError(t, err)

	got, owner, err := Lookup(leaf, "x")
	assert.NoError(t, err)
	assert.Same(t, want, got)
	assert.Same(t, root, owner)
}

func TestLookup_InnermostWins(t *testing.T) {
	root := Spawn(nil, Global, 4)
	child := Spawn(root, BlockTag, 4)

	_, err := Insert(root, "x", NewVariable(false, 1))
	assert.NoError(t, err)

	inner, err := Insert(child, "x", NewVariable(false, 2))
	assert.NoError(t, err)

	got, owner, err := Lookup(child, "x")
	assert.NoError(t, err)
	assert.Same(t, inner, got)
	assert.Same(t, child, owner)
}

func TestLookup_NotFound(t *testing.T) {
	root := Spawn(nil, Global, 4)

	_, _, err := Lookup(root, "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRemove_LeavesTombstoneButLookupFails(t *testing.T) {
	root := Spawn(nil, Global, 4)
	_, err := Insert(root, "x", NewVariable(false, 1))
	assert.NoError(t, err)

	assert.True(t, Remove(root, "x"))

	_, _, err = Lookup(root, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSymTable_ManyInsertionsKeepStablePointers(t *testing.T) {
	root := Spawn(nil, Global, 200)

	var want []*Symbol
	for i := 0; i < 200; i++ {
		key := string(rune('a' + (i % 26)))
		key += string(rune('A' + (i / 26)))

		stored, err := Insert(root, key, NewVariable(false, i))
		assert.NoError(t, err)

		want = append(want, stored)
	}

	for i := 0; i < 200; i++ {
		key := string(rune('a' + (i % 26)))
		key += string(rune('A' + (i / 26)))

		got, _, err := Lookup(root, key)
		assert.NoError(t, err)
		assert.Same(t, want[i], got)
	}
}

func TestNewGlobal_ContainsNativesAndBuiltins(t *testing.T) {
	global := NewGlobal()

	natives := []string{"bool", "int32", "string", "complex128"}
	for _, name := range natives {
		sym, _, err := Lookup(global, name)
		assert.NoError(t, err)
		assert.Equal(t, Native, sym.Kind)
	}

	for _, name := range builtinFunctions {
		sym, _, err := Lookup(global, name)
		assert.NoError(t, err)
		assert.Equal(t, FunctionSym, sym.Kind)
	}
}
