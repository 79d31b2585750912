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

// Package attributecache stores named attributes of named objects, plus file level headers, in
// an IndexedIO container:
//
//	/headers/<header>/            Object record
//	/objects/<object>/<attr>/     Object record
//
// Writing an attribute or header that already exists replaces it.
package attributecache

import (
	"slices"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
	errors "gopkg.in/src-d/go-errors.v1"

	"github.com/dolthub/cortex/store/fio"
	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/object"
)

const (
	headersEntry = "headers"
	objectsEntry = "objects"
)

var ErrInvalidPattern = errors.NewKind("attributecache: invalid attribute pattern %q")

type Options struct {
	File     fio.Options
	Registry *object.Registry
	Logger   *logrus.Entry
}

func DefaultOptions() Options {
	return Options{File: fio.DefaultOptions(), Registry: object.DefaultRegistry()}
}

type AttributeCache struct {
	path     string
	root     indexedio.IndexedIO
	registry *object.Registry
	log      *logrus.Entry
}

// Open opens the attribute cache at |path|. Writes are committed when the cache is closed.
func Open(path string, mode indexedio.OpenMode, opts Options) (*AttributeCache, error) {
	fo := opts.File
	if fo.Logger == nil {
		fo.Logger = opts.Logger
	}
	root, err := fio.OpenWithOptions(path, mode, fo)
	if err != nil {
		return nil, err
	}

	registry := opts.Registry
	if registry == nil {
		registry = object.DefaultRegistry()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &AttributeCache{
		path:     path,
		root:     root,
		registry: registry,
		log:      log.WithField("path", path),
	}, nil
}

func (ac *AttributeCache) FileName() string {
	return ac.path
}

// Write stores |o| as attribute |attr| of |obj|.
func (ac *AttributeCache) Write(obj, attr string, o object.Object) error {
	return ac.write(o, objectsEntry, obj, attr)
}

// WriteHeader stores |o| as the file level header |name|.
func (ac *AttributeCache) WriteHeader(name string, o object.Object) error {
	return ac.write(o, headersEntry, name)
}

func (ac *AttributeCache) write(o object.Object, names ...string) error {
	parent, undo, err := indexedio.CreateDirectory(ac.root, names[:len(names)-1])
	if err != nil {
		return err
	}

	name := names[len(names)-1]
	if parent.HasEntry(name) {
		err = parent.Remove(name)
	}
	if err == nil {
		err = ac.registry.Save(o, parent, name)
	}
	cerr := parent.Close()
	if err != nil {
		_ = undo()
		return err
	}
	return cerr
}

func (ac *AttributeCache) Read(obj, attr string) (object.Object, error) {
	return ac.read(objectsEntry, obj, attr)
}

func (ac *AttributeCache) ReadHeader(name string) (object.Object, error) {
	return ac.read(headersEntry, name)
}

func (ac *AttributeCache) read(names ...string) (object.Object, error) {
	parent, err := ac.root.Directory(names[:len(names)-1], indexedio.ThrowIfMissing)
	if err != nil {
		return nil, err
	}
	defer parent.Close()
	return ac.registry.Load(parent, names[len(names)-1])
}

// ReadAll returns every attribute of |obj| as the members of a CompoundObject.
func (ac *AttributeCache) ReadAll(obj string) (*object.CompoundObject, error) {
	return ac.readAll(objectsEntry, obj)
}

// ReadHeaders returns every header as the members of a CompoundObject.
func (ac *AttributeCache) ReadHeaders() (*object.CompoundObject, error) {
	return ac.readAll(headersEntry)
}

func (ac *AttributeCache) readAll(names ...string) (*object.CompoundObject, error) {
	keys, err := ac.list(names...)
	if err != nil {
		return nil, err
	}

	c := object.NewCompoundObject()
	for _, k := range keys {
		o, err := ac.read(append(names, k)...)
		if err != nil {
			return nil, err
		}
		c.Set(k, o)
	}
	return c, nil
}

// list returns the sorted entries of the directory at |names|, or nothing if it is missing.
func (ac *AttributeCache) list(names ...string) ([]string, error) {
	d, err := ac.root.Directory(names, indexedio.NullIfMissing)
	if err != nil || d == nil {
		return nil, err
	}
	defer d.Close()

	ids, err := d.EntryIDs()
	if err != nil {
		return nil, err
	}
	slices.Sort(ids)
	return ids, nil
}

// Objects returns the names of every object with attributes, in sorted order.
func (ac *AttributeCache) Objects() ([]string, error) {
	return ac.list(objectsEntry)
}

func (ac *AttributeCache) Headers() ([]string, error) {
	return ac.list(headersEntry)
}

// Attributes returns the attribute names of |obj| in sorted order.
func (ac *AttributeCache) Attributes(obj string) ([]string, error) {
	if !ac.Contains(obj) {
		return nil, indexedio.ErrPathNotFound.New(indexedio.Path{objectsEntry, obj})
	}
	return ac.list(objectsEntry, obj)
}

// AttributesMatching returns the attribute names of |obj| matching the glob |pattern|, where
// "*" does not match across ':' separated namespaces, "**" does, and {a,b} lists alternatives.
func (ac *AttributeCache) AttributesMatching(obj, pattern string) ([]string, error) {
	g, err := glob.Compile(pattern, ':')
	if err != nil {
		return nil, ErrInvalidPattern.Wrap(err, pattern)
	}

	attrs, err := ac.Attributes(obj)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(attrs, func(a string) bool { return !g.Match(a) }), nil
}

func (ac *AttributeCache) Contains(obj string) bool {
	return ac.exists(objectsEntry, obj)
}

func (ac *AttributeCache) ContainsAttribute(obj, attr string) bool {
	return ac.exists(objectsEntry, obj, attr)
}

func (ac *AttributeCache) exists(names ...string) bool {
	d, err := ac.root.Directory(names, indexedio.NullIfMissing)
	if err != nil || d == nil {
		return false
	}
	_ = d.Close()
	return true
}

// Remove deletes |obj| and all of its attributes.
func (ac *AttributeCache) Remove(obj string) error {
	return ac.remove(objectsEntry, obj)
}

func (ac *AttributeCache) RemoveAttribute(obj, attr string) error {
	return ac.remove(objectsEntry, obj, attr)
}

func (ac *AttributeCache) RemoveHeader(name string) error {
	return ac.remove(headersEntry, name)
}

func (ac *AttributeCache) remove(names ...string) error {
	parent, err := ac.root.Directory(names[:len(names)-1], indexedio.ThrowIfMissing)
	if err != nil {
		return err
	}
	defer parent.Close()
	return parent.Remove(names[len(names)-1])
}

// Close releases the cache, committing the file if it was opened for writing.
func (ac *AttributeCache) Close() error {
	err := ac.root.Close()
	if err != nil {
		ac.log.WithError(err).Warn("failed to close attribute cache")
	}
	return err
}
