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

// Package object implements the versioned object model stored in IndexedIO containers.
//
// Every object is saved as a directory holding two header leaves, |type| and |version|,
// followed by the fields of the concrete type:
//
//	<name>/type     u32 type id
//	<name>/version  u32 version the record was written at
//	<name>/...      type specific entries
//
// Loading reads the header, asks a Registry for a factory able to read that version, and hands
// the directory to the new object's Load method, which migrates older layouts as it reads them.
package object

import (
	"github.com/dolthub/cortex/store/hash"
	"github.com/dolthub/cortex/store/indexedio"
)

const (
	typeEntry    = "type"
	versionEntry = "version"
)

// Object is anything that can be stored in and restored from an IndexedIO container.
type Object interface {
	TypeID() TypeID
	TypeName() string

	// Copy returns a deep copy. Mutating the copy never affects the original.
	Copy() Object

	// IsEqualTo reports structural equality.
	IsEqualTo(other Object) bool

	// Hash returns a content hash of the object, stable across processes and hosts.
	Hash() hash.Hash

	// HashInto appends the object's contents, excluding its type id, to |h|.
	HashInto(h *hash.Hasher)

	Save(ctx *SaveContext) error
	Load(ctx *LoadContext) error
}

// Data is an Object holding a plain value rather than geometry.
type Data interface {
	Object
	isData()
}

// Bounded is implemented by objects that occupy space.
type Bounded interface {
	Bound() Box3d
}

// SaveContext is passed to Object.Save. Its container is the object's own record directory.
type SaveContext struct {
	container indexedio.IndexedIO
	registry  *Registry
}

func (sc *SaveContext) Container() indexedio.IndexedIO {
	return sc.container
}

func (sc *SaveContext) Registry() *Registry {
	return sc.registry
}

// SaveObject saves a nested object as the child |name| of this object's record.
func (sc *SaveContext) SaveObject(name string, o Object) error {
	return sc.registry.Save(o, sc.container, name)
}

// LoadContext is passed to Object.Load. Version is the version the record was written at.
type LoadContext struct {
	container indexedio.IndexedIO
	registry  *Registry
	version   uint32
}

func (lc *LoadContext) Container() indexedio.IndexedIO {
	return lc.container
}

func (lc *LoadContext) Registry() *Registry {
	return lc.registry
}

func (lc *LoadContext) Version() uint32 {
	return lc.version
}

// LoadObject loads the nested object stored as the child |name| of this object's record.
func (lc *LoadContext) LoadObject(name string) (Object, error) {
	return lc.registry.Load(lc.container, name)
}

// Save writes |o| as the child |name| of |parent|. If saving fails, a record created by this call
// is removed again so that no partial object is left behind.
func (r *Registry) Save(o Object, parent indexedio.IndexedIO, name string) (err error) {
	if o == nil {
		return indexedio.ErrTypeMismatch.New(parent.Path().Child(name), "cannot save a nil object")
	}
	version, err := r.CurrentVersion(o.TypeID())
	if err != nil {
		return err
	}

	existed := parent.HasEntry(name)
	dir, err := parent.CreateSubdirectory(name)
	if err != nil {
		return err
	}
	defer func() {
		cerr := dir.Close()
		if err == nil {
			err = cerr
		}
		if err != nil && !existed {
			_ = parent.Remove(name)
		}
	}()

	err = dir.Write(typeEntry, uint32(o.TypeID()))
	if err != nil {
		return err
	}
	err = dir.Write(versionEntry, version)
	if err != nil {
		return err
	}
	return o.Save(&SaveContext{container: dir, registry: r})
}

// Load reads the object stored as the child |name| of |parent|.
func (r *Registry) Load(parent indexedio.IndexedIO, name string) (_ Object, err error) {
	dir, err := parent.Subdirectory(name, indexedio.ThrowIfMissing)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := dir.Close()
		if err == nil {
			err = cerr
		}
	}()

	id, version, err := readRecordHeader(dir)
	if err != nil {
		return nil, err
	}

	o, err := r.Create(id, version)
	if err != nil {
		return nil, err
	}
	err = o.Load(&LoadContext{container: dir, registry: r, version: version})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// LoadData loads the object stored as |name| and requires it to be Data.
func (r *Registry) LoadData(parent indexedio.IndexedIO, name string) (Data, error) {
	o, err := r.Load(parent, name)
	if err != nil {
		return nil, err
	}
	d, ok := o.(Data)
	if !ok {
		return nil, indexedio.ErrTypeMismatch.New(parent.Path().Child(name), o.TypeName()+" is not Data")
	}
	return d, nil
}

// RecordType returns the type id and version of the object stored as |name| without loading it.
func RecordType(parent indexedio.IndexedIO, name string) (TypeID, uint32, error) {
	dir, err := parent.Subdirectory(name, indexedio.ThrowIfMissing)
	if err != nil {
		return InvalidTypeID, 0, err
	}
	defer dir.Close()
	return readRecordHeader(dir)
}

func readRecordHeader(dir indexedio.IndexedIO) (TypeID, uint32, error) {
	id, err := indexedio.ReadAs[uint32](dir, typeEntry)
	if err != nil {
		return InvalidTypeID, 0, err
	}
	version, err := indexedio.ReadAs[uint32](dir, versionEntry)
	if err != nil {
		return InvalidTypeID, 0, err
	}
	return TypeID(id), version, nil
}

// Save writes |o| as the child |name| of |parent| using the default registry.
func Save(o Object, parent indexedio.IndexedIO, name string) error {
	return defaultRegistry.Save(o, parent, name)
}

// Load reads the child |name| of |parent| using the default registry.
func Load(parent indexedio.IndexedIO, name string) (Object, error) {
	return defaultRegistry.Load(parent, name)
}

func hashObject(o Object) hash.Hash {
	h := hash.NewHasher()
	hashMember(h, o)
	return h.Sum()
}

func hashMember(h *hash.Hasher, o Object) {
	h.AppendUint32(uint32(o.TypeID()))
	o.HashInto(h)
}
