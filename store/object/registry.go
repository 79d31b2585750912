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

package object

import (
	"maps"
	"slices"
	"strconv"
	"sync"
)

// Factory constructs an empty Object ready to have Load called on it.
type Factory func() Object

type typeInfo struct {
	name      string
	factories map[uint32]Factory
	current   uint32
}

// Registry maps type ids and versions to factories. A type registers one factory per version
// it has ever written, so that old records remain loadable. Registry is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	types map[TypeID]*typeInfo
	names map[string]TypeID
}

// NewRegistry returns an empty Registry. Use RegisterBuiltins to add the types defined by this
// package.
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[TypeID]*typeInfo),
		names: make(map[string]TypeID),
	}
}

var defaultRegistry = NewRegistry()

func init() {
	if err := RegisterBuiltins(defaultRegistry); err != nil {
		panic(err)
	}
}

// DefaultRegistry returns the process wide registry, populated with the built in types.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// Register adds |factory| as the constructor for |id| at |version|. The highest registered
// version of a type is the one written by Save.
func (r *Registry) Register(id TypeID, name string, version uint32, factory Factory) error {
	if id == InvalidTypeID || name == "" {
		return ErrUnknownType.New(id)
	}
	if version == 0 {
		return ErrUnsupportedVersion.New(name, version)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if other, ok := r.names[name]; ok && other != id {
		return ErrTypeNameConflict.New(id, name, "name is used by "+other.String())
	}

	ti, ok := r.types[id]
	if !ok {
		ti = &typeInfo{name: name, factories: make(map[uint32]Factory)}
		r.types[id] = ti
		r.names[name] = id
	} else if ti.name != name {
		return ErrTypeNameConflict.New(id, name, "already registered as "+strconv.Quote(ti.name))
	}

	if _, ok := ti.factories[version]; ok {
		return ErrDuplicateRegistration.New(name, version)
	}
	ti.factories[version] = factory
	ti.current = max(ti.current, version)
	return nil
}

// lookup returns a snapshot of the name and current version of |id|.
func (r *Registry) lookup(id TypeID) (typeInfo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ti, ok := r.types[id]
	if !ok {
		return typeInfo{}, ErrUnknownType.New(id)
	}
	return typeInfo{name: ti.name, current: ti.current}, nil
}

// Create constructs an empty object of type |id| able to load records written at |version|.
func (r *Registry) Create(id TypeID, version uint32) (Object, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ti, ok := r.types[id]
	if !ok {
		return nil, ErrUnknownType.New(id)
	}
	f, ok := ti.factories[version]
	if !ok {
		return nil, ErrUnsupportedVersion.New(ti.name, version)
	}
	return f(), nil
}

// CurrentVersion returns the version written when saving objects of type |id|.
func (r *Registry) CurrentVersion(id TypeID) (uint32, error) {
	ti, err := r.lookup(id)
	if err != nil {
		return 0, err
	}
	return ti.current, nil
}

func (r *Registry) TypeName(id TypeID) (string, error) {
	ti, err := r.lookup(id)
	if err != nil {
		return "", err
	}
	return ti.name, nil
}

func (r *Registry) TypeIDFromName(name string) (TypeID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.names[name]
	if !ok {
		return InvalidTypeID, ErrUnknownType.New(name)
	}
	return id, nil
}

func (r *Registry) IsRegistered(id TypeID) bool {
	_, err := r.lookup(id)
	return err == nil
}

// RegisteredTypes returns every registered type id in ascending order.
func (r *Registry) RegisteredTypes() []TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.types))
}

// Versions returns every version registered for |id| in ascending order.
func (r *Registry) Versions(id TypeID) ([]uint32, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ti, ok := r.types[id]
	if !ok {
		return nil, ErrUnknownType.New(id)
	}
	return slices.Sorted(maps.Keys(ti.factories)), nil
}
