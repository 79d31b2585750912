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

package scene

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/dolthub/cortex/store/indexedio"
)

func writeScenes(t *testing.T, n int) []string {
	dir := t.TempDir()
	paths := make([]string, n)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("scene%d.scc", i))
		writeScene(t, paths[i])
	}
	return paths
}

func newTestShared(maxScenes int) *SharedSceneInterfaces {
	return NewSharedSceneInterfaces(SharedOptions{MaxScenes: maxScenes, Scene: testOptions()})
}

func TestSharedReturnsSameHandle(t *testing.T) {
	paths := writeScenes(t, 1)
	s := newTestShared(4)
	defer s.Clear()

	a, err := s.Get(paths[0])
	require.NoError(t, err)
	defer a.Close()
	b, err := s.CreateShared(paths[0])
	require.NoError(t, err)
	defer b.Close()
	assert.Same(t, a, b)
	assert.Equal(t, 1, s.NumScenes())

	names, err := b.ChildNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, names)

	// unshared opens are always independent
	c, err := CreateWithOptions(paths[0], indexedio.Read, testOptions())
	require.NoError(t, err)
	defer c.Close()
	d, err := CreateWithOptions(paths[0], indexedio.Read, testOptions())
	require.NoError(t, err)
	defer d.Close()
	assert.NotSame(t, c, d)
	assert.Equal(t, 1, s.NumScenes())
}

func TestSharedLRUEviction(t *testing.T) {
	const k = 3
	paths := writeScenes(t, k+1)
	s := newTestShared(k)
	defer s.Clear()

	first, err := s.Get(paths[0])
	require.NoError(t, err)
	require.NoError(t, first.Close())

	for _, p := range paths[1:k] {
		h, err := s.Get(p)
		require.NoError(t, err)
		require.NoError(t, h.Close())
	}
	assert.Equal(t, k, s.NumScenes())

	// paths[0] is the least recently used and is evicted by the k+1th scene
	h, err := s.Get(paths[k])
	require.NoError(t, err)
	require.NoError(t, h.Close())
	assert.Equal(t, k, s.NumScenes())

	again, err := s.Get(paths[0])
	require.NoError(t, err)
	defer again.Close()
	assert.NotSame(t, first, again)
	assert.Equal(t, k, s.NumScenes())
}

func TestSharedHandleOutlivesEviction(t *testing.T) {
	paths := writeScenes(t, 2)
	s := newTestShared(1)
	defer s.Clear()

	a, err := s.Get(paths[0])
	require.NoError(t, err)
	b, err := s.Get(paths[1])
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, 1, s.NumScenes())

	// a was evicted but this caller still holds it
	names, err := a.ChildNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, names)
	require.NoError(t, a.Close())
}

func TestSharedRepeatedClose(t *testing.T) {
	paths := writeScenes(t, 2)
	s := newTestShared(1)
	defer s.Clear()

	a, err := s.Get(paths[0])
	require.NoError(t, err)
	require.NoError(t, a.Close())
	require.NoError(t, a.Close())

	// still cached and still open
	again, err := s.Get(paths[0])
	require.NoError(t, err)
	assert.Same(t, a, again)
	names, err := again.ChildNames()
	require.NoError(t, err)
	assert.Equal(t, []string{"t"}, names)

	// evicted while held, the scene stays open until its holder closes it
	b, err := s.Get(paths[1])
	require.NoError(t, err)
	defer b.Close()
	_, err = again.ChildNames()
	require.NoError(t, err)

	require.NoError(t, again.Close())
	require.NoError(t, again.Close())
	_, err = again.ChildNames()
	assert.True(t, indexedio.ErrHandleClosed.Is(err), "%v", err)
}

func TestSharedSetMaxScenes(t *testing.T) {
	paths := writeScenes(t, 4)
	s := newTestShared(4)
	defer s.Clear()

	for _, p := range paths {
		h, err := s.Get(p)
		require.NoError(t, err)
		require.NoError(t, h.Close())
	}
	assert.Equal(t, 4, s.NumScenes())

	s.SetMaxScenes(2)
	assert.Equal(t, 2, s.MaxScenes())
	assert.Equal(t, 2, s.NumScenes())

	s.SetMaxScenes(0)
	assert.Equal(t, 1, s.MaxScenes())
	assert.Equal(t, 1, s.NumScenes())
}

func TestSharedEraseAndClear(t *testing.T) {
	paths := writeScenes(t, 2)
	s := newTestShared(4)

	a, err := s.Get(paths[0])
	require.NoError(t, err)
	require.NoError(t, a.Close())
	b, err := s.Get(paths[1])
	require.NoError(t, err)
	require.NoError(t, b.Close())

	assert.True(t, s.Erase(paths[0]))
	assert.False(t, s.Erase(paths[0]))
	assert.Equal(t, 1, s.NumScenes())

	s.Clear()
	assert.Equal(t, 0, s.NumScenes())

	c, err := s.Get(paths[1])
	require.NoError(t, err)
	defer c.Close()
	assert.NotSame(t, b, c)
	s.Clear()
}

func TestSharedOpenErrors(t *testing.T) {
	s := newTestShared(2)
	defer s.Clear()

	_, err := s.Get(filepath.Join(t.TempDir(), "missing.scc"))
	assert.True(t, indexedio.ErrIO.Is(err), "%v", err)

	_, err = s.Get(filepath.Join(t.TempDir(), "scene.unknown"))
	assert.True(t, ErrUnknownFormat.Is(err), "%v", err)
	assert.Equal(t, 0, s.NumScenes())
}

func TestSharedConcurrentGet(t *testing.T) {
	paths := writeScenes(t, 3)
	s := newTestShared(2)
	defer s.Clear()

	var eg errgroup.Group
	for i := 0; i < 16; i++ {
		eg.Go(func() error {
			for j := 0; j < 20; j++ {
				h, err := s.Get(paths[(i+j)%len(paths)])
				if err != nil {
					return err
				}
				if _, err := h.ReadBound(0); err != nil {
					_ = h.Close()
					return err
				}
				if err := h.Close(); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, eg.Wait())
	assert.LessOrEqual(t, s.NumScenes(), 2)

	// concurrent Gets of a live path share one handle
	var shared errgroup.Group
	handles := make([]*SharedScene, 8)
	for i := range handles {
		shared.Go(func() error {
			h, err := s.Get(paths[0])
			handles[i] = h
			return err
		})
	}
	require.NoError(t, shared.Wait())
	for _, h := range handles {
		assert.Same(t, handles[0], h)
		require.NoError(t, h.Close())
	}
}

func TestFormatRegistry(t *testing.T) {
	paths := writeScenes(t, 1)

	sc, err := Create(paths[0], indexedio.Read)
	require.NoError(t, err)
	assert.IsType(t, &SceneCache{}, sc)
	require.NoError(t, sc.Close())

	_, err = Create("x.abc", indexedio.Read)
	assert.True(t, ErrUnknownFormat.Is(err), "%v", err)

	err = RegisterFormat(".SCC", nil)
	assert.True(t, ErrDuplicateFormat.Is(err), "%v", err)
	assert.Contains(t, SupportedExtensions(), SceneCacheExtension)
}

func TestSharedScenesDefault(t *testing.T) {
	s := SharedScenes()
	assert.Same(t, s, SharedScenes())
	assert.Equal(t, DefaultMaxScenes, s.MaxScenes())

	path := filepath.Join(t.TempDir(), "default.scc")
	writeScene(t, path)

	h, err := s.Get(path)
	require.NoError(t, err)
	require.NoError(t, h.Close())
	assert.Equal(t, 1, s.NumScenes())
	s.Clear()
	assert.Equal(t, 0, s.NumScenes())
}
