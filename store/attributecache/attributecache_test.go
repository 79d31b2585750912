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

package attributecache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/object"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.File.SyncOnCommit = false
	return opts
}

func writeCache(t *testing.T, path string) {
	ac, err := Open(path, indexedio.Write, testOptions())
	require.NoError(t, err)

	require.NoError(t, ac.WriteHeader("frameRate", object.NewData(24.0)))
	require.NoError(t, ac.WriteHeader("artist", object.NewData("jo")))

	require.NoError(t, ac.Write("ball", "P", object.NewVectorData(object.V3f{X: 1})))
	require.NoError(t, ac.Write("ball", "user:mass", object.NewData(float32(2))))
	require.NoError(t, ac.Write("ball", "user:color:r", object.NewData(float32(1))))
	require.NoError(t, ac.Write("ball", "radius", object.NewData(float32(0.5))))
	require.NoError(t, ac.Write("cube", "P", object.NewVectorData[object.V3f]()))

	// rewriting replaces
	require.NoError(t, ac.Write("ball", "radius", object.NewData(float32(0.75))))
	require.NoError(t, ac.Close())
}

func TestAttributeCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.fio")
	writeCache(t, path)

	ac, err := Open(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer ac.Close()

	objs, err := ac.Objects()
	require.NoError(t, err)
	assert.Equal(t, []string{"ball", "cube"}, objs)

	headers, err := ac.Headers()
	require.NoError(t, err)
	assert.Equal(t, []string{"artist", "frameRate"}, headers)

	attrs, err := ac.Attributes("ball")
	require.NoError(t, err)
	assert.Equal(t, []string{"P", "radius", "user:color:r", "user:mass"}, attrs)

	r, err := ac.Read("ball", "radius")
	require.NoError(t, err)
	assert.True(t, object.NewData(float32(0.75)).IsEqualTo(r))

	h, err := ac.ReadHeader("frameRate")
	require.NoError(t, err)
	assert.True(t, object.NewData(24.0).IsEqualTo(h))

	all, err := ac.ReadAll("ball")
	require.NoError(t, err)
	assert.Equal(t, attrs, all.Keys())

	hs, err := ac.ReadHeaders()
	require.NoError(t, err)
	assert.Equal(t, headers, hs.Keys())

	assert.True(t, ac.Contains("ball"))
	assert.False(t, ac.Contains("sphere"))
	assert.True(t, ac.ContainsAttribute("cube", "P"))
	assert.False(t, ac.ContainsAttribute("cube", "radius"))

	_, err = ac.Read("cube", "radius")
	assert.True(t, indexedio.ErrPathNotFound.Is(err), "%v", err)
	_, err = ac.Attributes("sphere")
	assert.True(t, indexedio.ErrPathNotFound.Is(err), "%v", err)

	err = ac.Remove("ball")
	assert.True(t, indexedio.ErrInvalidMode.Is(err), "%v", err)
}

func TestAttributesMatching(t *testing.T) {
	path := filepath.Join(t.TempDir(), "match.fio")
	writeCache(t, path)

	ac, err := Open(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer ac.Close()

	tests := []struct {
		pattern  string
		expected []string
	}{
		{"*", []string{"P", "radius"}},
		{"user:*", []string{"user:mass"}},
		{"user:**", []string{"user:color:r", "user:mass"}},
		{"{P,radius}", []string{"P", "radius"}},
		{"r?dius", []string{"radius"}},
		{"nothing*", []string{}},
	}
	for _, test := range tests {
		t.Run(test.pattern, func(t *testing.T) {
			got, err := ac.AttributesMatching("ball", test.pattern)
			require.NoError(t, err)
			assert.ElementsMatch(t, test.expected, got)
		})
	}

	_, err = ac.AttributesMatching("ball", "[")
	assert.True(t, ErrInvalidPattern.Is(err), "%v", err)
}

func TestAttributeCacheRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "remove.fio")
	writeCache(t, path)

	ac, err := Open(path, indexedio.Append, testOptions())
	require.NoError(t, err)
	require.NoError(t, ac.RemoveAttribute("ball", "radius"))
	require.NoError(t, ac.Remove("cube"))
	require.NoError(t, ac.RemoveHeader("artist"))
	require.NoError(t, ac.Write("cone", "height", object.NewData(int32(3))))

	err = ac.Remove("cube")
	assert.True(t, indexedio.ErrPathNotFound.Is(err), "%v", err)
	require.NoError(t, ac.Close())

	r, err := Open(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer r.Close()

	objs, err := r.Objects()
	require.NoError(t, err)
	assert.Equal(t, []string{"ball", "cone"}, objs)
	assert.False(t, r.ContainsAttribute("ball", "radius"))
	headers, err := r.Headers()
	require.NoError(t, err)
	assert.Equal(t, []string{"frameRate"}, headers)
}

func TestAttributeCacheFailedWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "failed.fio")
	ac, err := Open(path, indexedio.Write, testOptions())
	require.NoError(t, err)

	bad := object.NewCompoundData()
	bad.Set("a", object.NewData(int32(1)))
	bad.Set("b/c", object.NewData(int32(2)))
	err = ac.Write("ball", "attr", bad)
	assert.True(t, indexedio.ErrInvalidName.Is(err), "%v", err)
	err = ac.WriteHeader("hdr", bad)
	assert.True(t, indexedio.ErrInvalidName.Is(err), "%v", err)
	require.NoError(t, ac.Close())

	r, err := Open(path, indexedio.Read, testOptions())
	require.NoError(t, err)
	defer r.Close()

	assert.False(t, r.Contains("ball"))
	objs, err := r.Objects()
	require.NoError(t, err)
	assert.Empty(t, objs)
	headers, err := r.Headers()
	require.NoError(t, err)
	assert.Empty(t, headers)
}
