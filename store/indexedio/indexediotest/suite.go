// Copyright 2026 Dolthub, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package indexediotest holds a behavioral suite that every IndexedIO device must pass.
package indexediotest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/cortex/store/indexedio"
)

// Factory returns the root handle of a new, empty container opened in Write mode. The suite
// closes the handle it is given.
type Factory func(t *testing.T) indexedio.IndexedIO

// LeafValues holds one value of every supported leaf type.
var LeafValues = map[string]any{
	"i8":    int8(-8),
	"i8s":   []int8{-1, 0, 1},
	"u8":    uint8(8),
	"u8s":   []uint8{0, 1, 255},
	"i16":   int16(-16),
	"i16s":  []int16{-300, 300},
	"u16":   uint16(16),
	"u16s":  []uint16{0, 65535},
	"i32":   int32(-32),
	"i32s":  []int32{-1 << 30, 1 << 30},
	"u32":   uint32(32),
	"u32s":  []uint32{1, 2, 3},
	"i64":   int64(-64),
	"i64s":  []int64{-1 << 60, 1 << 60},
	"u64":   uint64(64),
	"u64s":  []uint64{1 << 63},
	"f32":   float32(3.25),
	"f32s":  []float32{0.5, -1.5},
	"f64":   float64(6.125),
	"f64s":  []float64{1e-300, 1e300},
	"str":   "hello, wörld",
	"strs":  []string{"a", "", "ccc"},
	"empty": "",
}

// Run runs every test of the suite against containers built by |newContainer|.
func Run(t *testing.T, newContainer Factory) {
	t.Run("LeafRoundTrip", func(t *testing.T) { testLeafRoundTrip(t, newContainer(t)) })
	t.Run("Entries", func(t *testing.T) { testEntries(t, newContainer(t)) })
	t.Run("DuplicateNames", func(t *testing.T) { testDuplicateNames(t, newContainer(t)) })
	t.Run("MissingBehaviour", func(t *testing.T) { testMissingBehaviour(t, newContainer(t)) })
	t.Run("TypeMismatch", func(t *testing.T) { testTypeMismatch(t, newContainer(t)) })
	t.Run("Remove", func(t *testing.T) { testRemove(t, newContainer(t)) })
	t.Run("Navigation", func(t *testing.T) { testNavigation(t, newContainer(t)) })
	t.Run("InvalidNames", func(t *testing.T) { testInvalidNames(t, newContainer(t)) })
	t.Run("ClosedHandle", func(t *testing.T) { testClosedHandle(t, newContainer(t)) })
}

func testLeafRoundTrip(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	for name, v := range LeafValues {
		require.NoError(t, root.Write(name, v), name)
	}
	for name, v := range LeafValues {
		got, err := root.Read(name)
		require.NoError(t, err, name)
		assert.Equal(t, v, got, name)
	}

	// mutating the source slice after writing must not change the stored leaf
	src := []float64{1, 2, 3}
	require.NoError(t, root.Write("mutable", src))
	src[0] = 100
	got, err := indexedio.ReadAs[[]float64](root, "mutable")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func testEntries(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	require.NoError(t, root.Write("leaf", []int32{1, 2, 3, 4}))
	sub, err := root.CreateSubdirectory("dir")
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	e, err := root.Entry("leaf")
	require.NoError(t, err)
	assert.Equal(t, indexedio.Entry{ID: "leaf", EntryType: indexedio.File, DataType: indexedio.Int32Array, ArrayLength: 4}, e)
	assert.True(t, e.IsArray())

	e, err = root.Entry("dir")
	require.NoError(t, err)
	assert.Equal(t, indexedio.Directory, e.EntryType)

	ids, err := root.EntryIDs()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"leaf", "dir"}, ids)

	files, err := root.EntryIDsOfType(indexedio.File)
	require.NoError(t, err)
	assert.Equal(t, []string{"leaf"}, files)

	dirs, err := root.EntryIDsOfType(indexedio.Directory)
	require.NoError(t, err)
	assert.Equal(t, []string{"dir"}, dirs)

	assert.True(t, root.HasEntry("leaf"))
	assert.False(t, root.HasEntry("nope"))

	_, err = root.Entry("nope")
	assert.True(t, indexedio.ErrPathNotFound.Is(err))
}

func testDuplicateNames(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	require.NoError(t, root.Write("a", int32(1)))
	err := root.Write("a", int32(2))
	assert.True(t, indexedio.ErrDuplicateName.Is(err), "%v", err)

	_, err = root.CreateSubdirectory("a")
	assert.True(t, indexedio.ErrDuplicateName.Is(err), "%v", err)

	sub, err := root.CreateSubdirectory("b")
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	_, err = root.CreateSubdirectory("b")
	assert.True(t, indexedio.ErrDuplicateName.Is(err), "%v", err)

	err = root.Write("b", "leaf over dir")
	assert.True(t, indexedio.ErrDuplicateName.Is(err), "%v", err)

	// the failed writes leave the original value in place
	v, err := indexedio.ReadAs[int32](root, "a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)
}

func testMissingBehaviour(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	_, err := root.Subdirectory("missing", indexedio.ThrowIfMissing)
	assert.True(t, indexedio.ErrPathNotFound.Is(err), "%v", err)

	sub, err := root.Subdirectory("missing", indexedio.NullIfMissing)
	assert.NoError(t, err)
	assert.Nil(t, sub)

	sub, err = root.Subdirectory("created", indexedio.CreateIfMissing)
	require.NoError(t, err)
	require.NotNil(t, sub)
	assert.Equal(t, indexedio.Path{"created"}, sub.Path())
	require.NoError(t, sub.Close())

	sub, err = root.Subdirectory("created", indexedio.ThrowIfMissing)
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	_, err = root.Read("missing")
	assert.True(t, indexedio.ErrPathNotFound.Is(err), "%v", err)
}

func testTypeMismatch(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	require.NoError(t, root.Write("leaf", int32(5)))
	sub, err := root.CreateSubdirectory("dir")
	require.NoError(t, err)
	require.NoError(t, sub.Close())

	_, err = indexedio.ReadAs[float64](root, "leaf")
	assert.True(t, indexedio.ErrTypeMismatch.Is(err), "%v", err)

	_, err = root.Read("dir")
	assert.True(t, indexedio.ErrTypeMismatch.Is(err), "%v", err)

	_, err = root.Subdirectory("leaf", indexedio.ThrowIfMissing)
	assert.True(t, indexedio.ErrTypeMismatch.Is(err), "%v", err)

	err = root.Write("bad", struct{}{})
	assert.True(t, indexedio.ErrUnsupportedValue.Is(err), "%v", err)
	assert.False(t, root.HasEntry("bad"))
}

func testRemove(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	require.NoError(t, root.Write("leaf", "x"))
	sub, err := root.CreateSubdirectory("dir")
	require.NoError(t, err)
	require.NoError(t, sub.Write("inner", int64(1)))
	require.NoError(t, sub.Close())

	require.NoError(t, root.Remove("leaf"))
	require.NoError(t, root.Remove("dir"))
	assert.False(t, root.HasEntry("leaf"))
	assert.False(t, root.HasEntry("dir"))

	err = root.Remove("dir")
	assert.True(t, indexedio.ErrPathNotFound.Is(err), "%v", err)

	// names are free again after removal
	require.NoError(t, root.Write("leaf", "y"))
	v, err := indexedio.ReadAs[string](root, "leaf")
	require.NoError(t, err)
	assert.Equal(t, "y", v)
}

func testNavigation(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	a, err := root.CreateSubdirectory("a")
	require.NoError(t, err)
	b, err := a.CreateSubdirectory("b")
	require.NoError(t, err)
	require.NoError(t, b.Write("v", uint16(7)))
	assert.Equal(t, "/a/b", b.Path().String())

	parent, err := b.ParentDirectory()
	require.NoError(t, err)
	assert.Equal(t, indexedio.Path{"a"}, parent.Path())
	require.NoError(t, parent.Close())

	top, err := root.ParentDirectory()
	assert.NoError(t, err)
	assert.Nil(t, top)

	fromB, err := b.Directory(indexedio.ParsePath("/a/b"), indexedio.ThrowIfMissing)
	require.NoError(t, err)
	v, err := indexedio.ReadAs[uint16](fromB, "v")
	require.NoError(t, err)
	assert.Equal(t, uint16(7), v)
	require.NoError(t, fromB.Close())

	_, err = root.Directory(indexedio.Path{"a", "zz"}, indexedio.ThrowIfMissing)
	assert.True(t, indexedio.ErrPathNotFound.Is(err), "%v", err)

	deep, err := root.Directory(indexedio.Path{"x", "y", "z"}, indexedio.CreateIfMissing)
	require.NoError(t, err)
	assert.Equal(t, "/x/y/z", deep.Path().String())
	require.NoError(t, deep.Close())

	var seen []string
	err = indexedio.WalkEntries(root, func(p indexedio.Path, e indexedio.Entry) error {
		seen = append(seen, p.String())
		return nil
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"/a", "/a/b", "/a/b/v", "/x", "/x/y", "/x/y/z"}, seen)

	require.NoError(t, b.Close())
	require.NoError(t, a.Close())
}

func testInvalidNames(t *testing.T, root indexedio.IndexedIO) {
	defer root.Close()

	for _, name := range []string{"", "a/b", "/"} {
		err := root.Write(name, int8(1))
		assert.True(t, indexedio.ErrInvalidName.Is(err), "%q: %v", name, err)
		_, err = root.CreateSubdirectory(name)
		assert.True(t, indexedio.ErrInvalidName.Is(err), "%q: %v", name, err)
	}
}

func testClosedHandle(t *testing.T, root indexedio.IndexedIO) {
	sub, err := root.CreateSubdirectory("dir")
	require.NoError(t, err)
	require.NoError(t, sub.Close())
	require.NoError(t, sub.Close())

	err = sub.Write("x", int8(1))
	assert.True(t, indexedio.ErrHandleClosed.Is(err), "%v", err)
	_, err = sub.EntryIDs()
	assert.True(t, indexedio.ErrHandleClosed.Is(err), "%v", err)

	require.NoError(t, root.Close())
}
