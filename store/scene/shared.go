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
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/cortex/store/indexedio"
)

// DefaultMaxScenes is the capacity of a SharedSceneInterfaces built from DefaultSharedOptions.
const DefaultMaxScenes = 200

type SharedOptions struct {
	// MaxScenes bounds the number of cached scenes. Values below 1 are treated as 1.
	MaxScenes int

	// Scene configures how cached scenes are opened.
	Scene Options
}

func DefaultSharedOptions() SharedOptions {
	return SharedOptions{MaxScenes: DefaultMaxScenes, Scene: DefaultOptions()}
}

// SharedScene is a read only scene handle shared between every caller of
// SharedSceneInterfaces.Get for the same path. Each Get must be paired with a Close. The cache's
// own reference is tracked apart from the callers', so extra Close calls never close a scene
// that is still cached; the underlying scene is closed once it has been evicted and every
// caller has let go of it.
type SharedScene struct {
	SceneInterface
	path string

	mu     sync.Mutex
	refs   int
	cached bool
	closed bool
}

func newSharedScene(path string, si SceneInterface) *SharedScene {
	return &SharedScene{SceneInterface: si, path: path, refs: 1, cached: true}
}

func (s *SharedScene) retain() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refs++
}

// evict drops the cache's reference.
func (s *SharedScene) evict() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cached = false
	return s.closeIfUnused()
}

// Close releases the caller's reference. Closing more often than Get was called is a no-op.
func (s *SharedScene) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.refs > 0 {
		s.refs--
	}
	return s.closeIfUnused()
}

func (s *SharedScene) closeIfUnused() error {
	if s.refs > 0 || s.cached || s.closed {
		return nil
	}
	s.closed = true
	return s.SceneInterface.Close()
}

// SharedSceneInterfaces is an LRU cache of read only scene handles keyed by file path. It is
// safe for concurrent use.
type SharedSceneInterfaces struct {
	// mu makes lookup, open, insert and evict a single step, so concurrent Gets for one path
	// never open the file twice.
	mu        sync.Mutex
	cache     *lru.Cache[string, *SharedScene]
	maxScenes int
	opts      Options
	log       *logrus.Entry
}

func NewSharedSceneInterfaces(opts SharedOptions) *SharedSceneInterfaces {
	s := &SharedSceneInterfaces{
		maxScenes: max(opts.MaxScenes, 1),
		opts:      opts.Scene,
		log:       opts.Scene.logger().WithField("component", "shared_scenes"),
	}

	cache, err := lru.NewWithEvict[string, *SharedScene](s.maxScenes, s.onEvict)
	if err != nil {
		// only fails for a non positive size
		panic(err)
	}
	s.cache = cache
	return s
}

var sharedScenes = sync.OnceValue(func() *SharedSceneInterfaces {
	return NewSharedSceneInterfaces(DefaultSharedOptions())
})

// SharedScenes returns the process wide cache. Call Clear to release everything it holds.
func SharedScenes() *SharedSceneInterfaces {
	return sharedScenes()
}

func (s *SharedSceneInterfaces) onEvict(path string, scene *SharedScene) {
	s.log.WithField("path", path).Debug("evicted scene")
	if err := scene.evict(); err != nil {
		s.log.WithError(err).WithField("path", path).Warn("failed to close evicted scene")
	}
}

// Get returns the shared handle for |path|, opening it for reading on a miss. The caller must
// Close the returned handle. Errors opening the file are returned and nothing is cached.
func (s *SharedSceneInterfaces) Get(path string) (*SharedScene, error) {
	key := filepath.Clean(path)

	s.mu.Lock()
	defer s.mu.Unlock()

	if scene, ok := s.cache.Get(key); ok {
		scene.retain()
		s.log.WithField("path", key).Debug("scene cache hit")
		return scene, nil
	}

	opened, err := CreateWithOptions(key, indexedio.Read, s.opts)
	if err != nil {
		return nil, err
	}

	scene := newSharedScene(key, opened)
	s.cache.Add(key, scene)
	s.log.WithField("path", key).Debug("scene cache miss")
	return scene, nil
}

// CreateShared is Get.
func (s *SharedSceneInterfaces) CreateShared(path string) (*SharedScene, error) {
	return s.Get(path)
}

// SetMaxScenes changes the capacity, evicting least recently used scenes if needed.
func (s *SharedSceneInterfaces) SetMaxScenes(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.maxScenes = max(n, 1)
	s.cache.Resize(s.maxScenes)
}

func (s *SharedSceneInterfaces) MaxScenes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxScenes
}

func (s *SharedSceneInterfaces) NumScenes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Len()
}

// Erase drops |path| from the cache. Handles already returned for it stay usable.
func (s *SharedSceneInterfaces) Erase(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(filepath.Clean(path))
}

// Clear drops every cached scene.
func (s *SharedSceneInterfaces) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache.Purge()
}
