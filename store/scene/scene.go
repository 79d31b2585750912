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

// Package scene implements scene hierarchy schemas over IndexedIO containers: SceneCache for
// time sampled hierarchies, ModelCache for static ones, and a process wide cache of shared read
// handles.
package scene

import (
	"path/filepath"
	"strings"
	"sync"

	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/object"
)

// SceneInterface is one location of a scene hierarchy. Every SceneInterface returned by a method
// of another must be closed independently; a file opened for writing is committed once its root
// and every location obtained from it have been closed.
type SceneInterface interface {
	FileName() string
	Mode() indexedio.OpenMode

	// Name is the last element of Path, or "/" at the root.
	Name() string
	Path() []string

	ChildNames() ([]string, error)
	HasChild(name string) bool
	Child(name string, mb indexedio.MissingBehaviour) (SceneInterface, error)
	ReadableChild(name string) (SceneInterface, error)
	CreateChild(name string) (SceneInterface, error)
	Scene(path []string, mb indexedio.MissingBehaviour) (SceneInterface, error)

	WriteTransform(m object.M44d, time float64) error
	ReadTransform(time float64) (object.M44d, error)
	TransformSampleTimes() ([]float64, error)

	WriteAttribute(name string, o object.Object, time float64) error
	ReadAttribute(name string, time float64) (object.Object, error)
	HasAttribute(name string) bool
	AttributeNames() ([]string, error)
	AttributeSampleTimes(name string) ([]float64, error)

	WriteObject(o object.Object, time float64) error
	ReadObject(time float64) (object.Object, error)
	HasObject() bool
	ObjectSampleTimes() ([]float64, error)

	WriteBound(b object.Box3d, time float64) error
	ReadBound(time float64) (object.Box3d, error)
	BoundSampleTimes() ([]float64, error)

	WriteTags(tags ...string) error
	ReadTags() ([]string, error)
	HasTag(tag string) bool

	Close() error
}

// Format opens a scene file of one particular kind.
type Format func(path string, mode indexedio.OpenMode, opts Options) (SceneInterface, error)

var formats = struct {
	mu sync.RWMutex
	m  map[string]Format
}{m: map[string]Format{
	SceneCacheExtension: func(path string, mode indexedio.OpenMode, opts Options) (SceneInterface, error) {
		sc, err := OpenSceneCache(path, mode, opts)
		if err != nil {
			return nil, err
		}
		return sc, nil
	},
	ModelCacheExtension: openModelScene,
}}

// RegisterFormat makes Create open files with extension |ext| (including the leading dot) using
// |f|.
func RegisterFormat(ext string, f Format) error {
	ext = strings.ToLower(ext)

	formats.mu.Lock()
	defer formats.mu.Unlock()
	if _, ok := formats.m[ext]; ok {
		return ErrDuplicateFormat.New(ext)
	}
	formats.m[ext] = f
	return nil
}

// SupportedExtensions returns the extensions Create can open, in no particular order.
func SupportedExtensions() []string {
	formats.mu.RLock()
	defer formats.mu.RUnlock()

	exts := make([]string, 0, len(formats.m))
	for ext := range formats.m {
		exts = append(exts, ext)
	}
	return exts
}

// Create opens an independent handle on the scene file at |path|, choosing the format from the
// file extension. Each call returns a new handle.
func Create(path string, mode indexedio.OpenMode) (SceneInterface, error) {
	return CreateWithOptions(path, mode, DefaultOptions())
}

func CreateWithOptions(path string, mode indexedio.OpenMode, opts Options) (SceneInterface, error) {
	ext := strings.ToLower(filepath.Ext(path))

	formats.mu.RLock()
	f, ok := formats.m[ext]
	formats.mu.RUnlock()
	if !ok {
		return nil, ErrUnknownFormat.New(ext)
	}
	return f(path, mode, opts)
}
