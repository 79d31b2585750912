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

package indexedio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/indexedio/indexediotest"
)

func TestMemoryIndexedIO(t *testing.T) {
	indexediotest.Run(t, func(t *testing.T) indexedio.IndexedIO {
		return indexedio.NewMemory(indexedio.Write)
	})
}

func TestMemoryReadModeRejectsMutation(t *testing.T) {
	w := indexedio.NewMemory(indexedio.Write)
	require.NoError(t, w.Write("a", int32(1)))
	root := indexedio.MemoryRoot(w)
	require.NotNil(t, root)
	require.NoError(t, w.Close())

	r := indexedio.OpenMemory(root, indexedio.Read)
	defer r.Close()

	v, err := indexedio.ReadAs[int32](r, "a")
	require.NoError(t, err)
	assert.Equal(t, int32(1), v)

	err = r.Write("b", int32(2))
	assert.True(t, indexedio.ErrInvalidMode.Is(err), "%v", err)
	err = r.Remove("a")
	assert.True(t, indexedio.ErrInvalidMode.Is(err), "%v", err)
	_, err = r.CreateSubdirectory("d")
	assert.True(t, indexedio.ErrInvalidMode.Is(err), "%v", err)
	_, err = r.Subdirectory("d", indexedio.CreateIfMissing)
	assert.True(t, indexedio.ErrInvalidMode.Is(err), "%v", err)
}

func TestMemoryAppendExtendsDirectories(t *testing.T) {
	w := indexedio.NewMemory(indexedio.Write)
	d, err := w.CreateSubdirectory("d")
	require.NoError(t, err)
	require.NoError(t, d.Write("old", "kept"))
	require.NoError(t, d.Close())
	root := indexedio.MemoryRoot(w)
	require.NoError(t, w.Close())

	a := indexedio.OpenMemory(root, indexedio.Append)
	defer a.Close()
	d, err = a.CreateSubdirectory("d")
	require.NoError(t, err)
	require.NoError(t, d.Write("new", "added"))
	ids, err := d.EntryIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"old", "new"}, ids)
	require.NoError(t, d.Close())
}

func TestMemoryDiscardDropsContents(t *testing.T) {
	w := indexedio.NewMemory(indexedio.Write)
	require.NoError(t, w.Write("a", int32(1)))
	root := indexedio.MemoryRoot(w)
	w.Discard()
	require.NoError(t, w.Close())
	assert.Equal(t, 0, root.NumChildren())
}

func TestPath(t *testing.T) {
	assert.Equal(t, "/", indexedio.Path{}.String())
	assert.Equal(t, "/a/b", indexedio.ParsePath("a//b/").String())
	p := indexedio.Path{"a"}
	c := p.Child("b")
	assert.Equal(t, indexedio.Path{"a"}, p)
	assert.Equal(t, indexedio.Path{"a", "b"}, c)
}

func TestDataTypes(t *testing.T) {
	for name, v := range indexediotest.LeafValues {
		dt, _, err := indexedio.DataTypeOf(v)
		require.NoError(t, err, name)
		assert.True(t, dt.IsValid(), name)
		_, isSlice := v.([]string)
		if isSlice {
			assert.True(t, dt.IsArray())
		}
	}
	assert.Equal(t, 4, indexedio.Float32Array.ElementSize())
	assert.Equal(t, 0, indexedio.StringArray.ElementSize())
	assert.Equal(t, "Uint8Array", indexedio.Uint8Array.String())
	assert.False(t, indexedio.InvalidDataType.IsValid())
}

func TestCreateDirectoryUndo(t *testing.T) {
	root := indexedio.NewMemory(indexedio.Write)
	defer root.Close()

	a, err := root.CreateSubdirectory("a")
	require.NoError(t, err)
	require.NoError(t, a.Write("keep", int32(1)))
	require.NoError(t, a.Close())

	d, undo, err := indexedio.CreateDirectory(root, indexedio.Path{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, indexedio.Path{"a", "b", "c"}, d.Path())
	require.NoError(t, d.Write("partial", int32(2)))
	require.NoError(t, d.Close())

	require.NoError(t, undo())
	a, err = root.Subdirectory("a", indexedio.ThrowIfMissing)
	require.NoError(t, err)
	ids, err := a.EntryIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"keep"}, ids)
	require.NoError(t, a.Close())

	// nothing was created, so undo leaves the existing directory alone
	d, undo, err = indexedio.CreateDirectory(root, indexedio.Path{"a"})
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, undo())
	assert.True(t, root.HasEntry("a"))
}
