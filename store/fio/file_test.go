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

package fio

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/indexedio/indexediotest"
)

func testOptions() Options {
	return Options{LockWriters: true}
}

func TestFileIndexedIO(t *testing.T) {
	indexediotest.Run(t, func(t *testing.T) indexedio.IndexedIO {
		root, err := OpenWithOptions(filepath.Join(t.TempDir(), "suite.fio"), indexedio.Write, testOptions())
		require.NoError(t, err)
		return root
	})
}

func writeSample(t *testing.T, path string) {
	root, err := OpenWithOptions(path, indexedio.Write, testOptions())
	require.NoError(t, err)

	for name, v := range indexediotest.LeafValues {
		require.NoError(t, root.Write(name, v))
	}
	a, err := root.CreateSubdirectory("a")
	require.NoError(t, err)
	b, err := a.CreateSubdirectory("b")
	require.NoError(t, err)
	require.NoError(t, b.Write("deep", []float64{1, 2, 3}))
	require.NoError(t, b.Close())
	require.NoError(t, a.Close())
	require.NoError(t, root.Close())
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rt.fio")
	writeSample(t, path)

	root, err := OpenWithOptions(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer root.Close()

	for name, v := range indexediotest.LeafValues {
		got, err := root.Read(name)
		require.NoError(t, err, name)
		assert.Equal(t, v, got, name)

		e, err := root.Entry(name)
		require.NoError(t, err)
		dt, arrayLen, err := indexedio.DataTypeOf(v)
		require.NoError(t, err)
		assert.Equal(t, dt, e.DataType)
		assert.Equal(t, arrayLen, e.ArrayLength)
	}

	deep, err := root.Directory(indexedio.Path{"a", "b"}, indexedio.ThrowIfMissing)
	require.NoError(t, err)
	v, err := indexedio.ReadAs[[]float64](deep, "deep")
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, v)
	require.NoError(t, deep.Close())

	err = root.Write("x", int8(1))
	assert.True(t, indexedio.ErrInvalidMode.Is(err), "%v", err)
}

func TestLayout(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.fio")
	writeSample(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fileMagic, string(data[:len(fileMagic)]))
	assert.Equal(t, fileSignature, string(data[len(data)-len(fileSignature):]))

	version, err := parseHeader(data)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, version)

	ftr, err := parseFooter(data[len(data)-footerSize:], uint64(len(data)))
	require.NoError(t, err)
	assert.Equal(t, uint64(len(data)-footerSize), ftr.indexOffset+ftr.indexLength)
}

func TestLayoutSizes(t *testing.T) {
	var minFileSize int64 = headerSize + footerSize
	var footerStart uint64 = 100 - footerSize
	assert.Equal(t, int64(48), minFileSize)
	assert.Equal(t, uint64(68), footerStart)

	assert.Len(t, fileMagic, magicSize)
	assert.Len(t, fileSignature, signatureSize)
	assert.Len(t, encodeHeader(FormatVersion), headerSize)
	assert.Len(t, footer{formatVersion: FormatVersion}.encode(), footerSize)
}

func TestFinalizeWaitsForAllHandles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.fio")
	root, err := OpenWithOptions(path, indexedio.Write, testOptions())
	require.NoError(t, err)

	child, err := root.CreateSubdirectory("child")
	require.NoError(t, err)
	require.NoError(t, child.Write("v", int32(3)))

	require.NoError(t, root.Close())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "container must not exist while a handle is open")

	require.NoError(t, child.Write("w", int32(4)))
	require.NoError(t, child.Close())

	r, err := OpenWithOptions(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer r.Close()
	c, err := r.Subdirectory("child", indexedio.ThrowIfMissing)
	require.NoError(t, err)
	defer c.Close()
	ids, err := c.EntryIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"v", "w"}, ids)
}

func assertNoScratchFiles(t *testing.T, path string) {
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, isScratchFile(e.Name(), path), "leftover scratch file %s", e.Name())
	}
}

func TestDiscardKeepsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discard.fio")
	writeSample(t, path)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	root, err := OpenWithOptions(path, indexedio.Write, testOptions())
	require.NoError(t, err)
	require.NoError(t, root.Write("replacement", "nope"))
	root.Discard()
	require.NoError(t, root.Close())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assertNoScratchFiles(t, path)
}

func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	p1 := filepath.Join(dir, "one.fio")
	p2 := filepath.Join(dir, "two.fio")

	write := func(path string) {
		root, err := OpenWithOptions(path, indexedio.Write, testOptions())
		require.NoError(t, err)
		require.NoError(t, root.Write("s", "value"))
		sub, err := root.CreateSubdirectory("sub")
		require.NoError(t, err)
		require.NoError(t, sub.Write("arr", []int64{1, 2}))
		require.NoError(t, sub.Close())
		require.NoError(t, root.Close())
	}
	write(p1)
	write(p2)

	b1, err := os.ReadFile(p1)
	require.NoError(t, err)
	b2, err := os.ReadFile(p2)
	require.NoError(t, err)
	assert.Equal(t, b1, b2)
}

func TestSecondWriterIsLocked(t *testing.T) {
	path := filepath.Join(t.TempDir(), "locked.fio")
	first, err := OpenWithOptions(path, indexedio.Write, testOptions())
	require.NoError(t, err)

	_, err = OpenWithOptions(path, indexedio.Write, testOptions())
	assert.True(t, ErrLocked.Is(err), "%v", err)
	_, err = OpenWithOptions(path, indexedio.Append, testOptions())
	assert.True(t, ErrLocked.Is(err), "%v", err)

	require.NoError(t, first.Close())

	second, err := OpenWithOptions(path, indexedio.Write, testOptions())
	require.NoError(t, err)
	require.NoError(t, second.Close())
}

func TestAppend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "append.fio")
	writeSample(t, path)
	before, err := os.ReadFile(path)
	require.NoError(t, err)
	ftr, err := parseFooter(before[len(before)-footerSize:], uint64(len(before)))
	require.NoError(t, err)

	root, err := OpenWithOptions(path, indexedio.Append, testOptions())
	require.NoError(t, err)
	a, err := root.CreateSubdirectory("a")
	require.NoError(t, err)
	require.NoError(t, a.Write("added", "new"))
	require.NoError(t, a.Close())

	err = root.Write("str", "clobber")
	assert.True(t, indexedio.ErrDuplicateName.Is(err), "%v", err)

	v, err := indexedio.ReadAs[string](root, "str")
	require.NoError(t, err)
	assert.Equal(t, indexediotest.LeafValues["str"], v)
	require.NoError(t, root.Close())

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(before[:ftr.indexOffset], after[:ftr.indexOffset]), "data segment must be preserved")

	r, err := OpenWithOptions(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer r.Close()
	a, err = r.Subdirectory("a", indexedio.ThrowIfMissing)
	require.NoError(t, err)
	defer a.Close()
	ids, err := a.EntryIDs()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "added"}, ids)
	s, err := indexedio.ReadAs[string](a, "added")
	require.NoError(t, err)
	assert.Equal(t, "new", s)
}

func TestAppendToMissingFileCreatesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.fio")
	root, err := OpenWithOptions(path, indexedio.Append, testOptions())
	require.NoError(t, err)
	require.NoError(t, root.Write("v", uint32(1)))
	require.NoError(t, root.Close())

	r, err := OpenWithOptions(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer r.Close()
	assert.True(t, r.HasEntry("v"))
}

func TestReadMissingFile(t *testing.T) {
	_, err := OpenWithOptions(filepath.Join(t.TempDir(), "missing.fio"), indexedio.Read, testOptions())
	assert.True(t, indexedio.ErrIO.Is(err), "%v", err)
}

func TestCorruption(t *testing.T) {
	path := filepath.Join(t.TempDir(), "good.fio")
	writeSample(t, path)
	good, err := os.ReadFile(path)
	require.NoError(t, err)
	ftr, err := parseFooter(good[len(good)-footerSize:], uint64(len(good)))
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(b []byte) []byte
	}{
		{"bad magic", func(b []byte) []byte { b[0] = 'X'; return b }},
		{"bad header version", func(b []byte) []byte { b[len(fileMagic)+3] = 99; return b }},
		{"bad footer signature", func(b []byte) []byte { b[len(b)-1] = 'Z'; return b }},
		{"index checksum", func(b []byte) []byte { b[ftr.indexOffset+1] ^= 0xff; return b }},
		{"truncated", func(b []byte) []byte { return b[:len(b)-3] }},
		{"too small", func(b []byte) []byte { return b[:headerSize] }},
		{"index offset", func(b []byte) []byte { b[len(b)-footerSize+7]++; return b }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "bad.fio")
			b := append([]byte(nil), good...)
			require.NoError(t, os.WriteFile(p, test.mutate(b), 0644))
			_, err := OpenWithOptions(p, indexedio.Read, testOptions())
			assert.True(t, ErrFormat.Is(err), "%v", err)
		})
	}
}

func TestConcurrentReaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shared.fio")
	writeSample(t, path)

	root, err := OpenWithOptions(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer root.Close()

	var eg errgroup.Group
	for i := 0; i < 8; i++ {
		eg.Go(func() error {
			for j := 0; j < 50; j++ {
				v, err := indexedio.ReadAs[[]string](root, "strs")
				if err != nil {
					return err
				}
				if len(v) != 3 {
					return ErrFormat.New("short read")
				}
			}
			return nil
		})
	}
	assert.NoError(t, eg.Wait())
}

func TestCodecRejectsMalformedLeaves(t *testing.T) {
	_, err := decodeLeaf(indexedio.Int32, 0, []byte{1, 2})
	assert.True(t, ErrFormat.Is(err), "%v", err)

	b, err := encodeLeaf([]int32{1, 2, 3})
	require.NoError(t, err)
	_, err = decodeLeaf(indexedio.Int32Array, 4, b)
	assert.True(t, ErrFormat.Is(err), "%v", err)
	_, err = decodeLeaf(indexedio.Int32Array, 3, b[:len(b)-1])
	assert.True(t, ErrFormat.Is(err), "%v", err)

	b, err = encodeLeaf([]string{"ab", "c"})
	require.NoError(t, err)
	v, err := decodeLeaf(indexedio.StringArray, 2, b)
	require.NoError(t, err)
	assert.Equal(t, []string{"ab", "c"}, v)
	_, err = decodeLeaf(indexedio.StringArray, 2, b[:len(b)-1])
	assert.True(t, ErrFormat.Is(err), "%v", err)

	_, err = encodeLeaf(map[string]int{})
	assert.True(t, indexedio.ErrUnsupportedValue.Is(err), "%v", err)
}

func TestLeafEncodingIsBigEndian(t *testing.T) {
	b, err := encodeLeaf(int32(1))
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 1}, b)

	b, err = encodeLeaf([]uint16{0x0102})
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1, 1, 2}, b)

	b, err = encodeLeaf("hi")
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0, 2, 'h', 'i'}, b)
}
