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
	"github.com/dolthub/cortex/store/fio"
	"github.com/dolthub/cortex/store/indexedio"
)

const (
	headerEntry   = "header"
	typeNameEntry = "typeName"
	typeIDEntry   = "typeID"

	// ObjectEntry is the name of the single object record in an object file.
	ObjectEntry = "object"
)

// Header describes the object held in an object file.
type Header struct {
	TypeName string
	TypeID   TypeID
}

// Writer writes a single Object to a new container file. The file only replaces an existing one
// once the object has been written completely.
type Writer struct {
	Object   Object
	Path     string
	Registry *Registry
	Options  fio.Options
}

func NewWriter(o Object, path string) *Writer {
	return &Writer{
		Object:   o,
		Path:     path,
		Registry: defaultRegistry,
		Options:  fio.DefaultOptions(),
	}
}

func (w *Writer) Write() (err error) {
	root, err := fio.OpenWithOptions(w.Path, indexedio.Write, w.Options)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			root.Discard()
		}
		cerr := root.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = writeHeader(root, w.Object)
	if err != nil {
		return err
	}
	return w.Registry.Save(w.Object, root, ObjectEntry)
}

func writeHeader(root indexedio.IndexedIO, o Object) (err error) {
	dir, err := root.CreateSubdirectory(headerEntry)
	if err != nil {
		return err
	}
	defer func() {
		cerr := dir.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = dir.Write(typeNameEntry, o.TypeName())
	if err != nil {
		return err
	}
	return dir.Write(typeIDEntry, uint32(o.TypeID()))
}

// Reader reads the Object held in a container file written by Writer.
type Reader struct {
	Path     string
	Registry *Registry
	Options  fio.Options
}

func NewReader(path string) *Reader {
	return &Reader{
		Path:     path,
		Registry: defaultRegistry,
		Options:  fio.DefaultOptions(),
	}
}

func (r *Reader) Read() (_ Object, err error) {
	root, err := fio.OpenWithOptions(r.Path, indexedio.Read, r.Options)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := root.Close()
		if err == nil {
			err = cerr
		}
	}()
	return r.Registry.Load(root, ObjectEntry)
}

// ReadHeader returns the type of the stored object without loading it.
func (r *Reader) ReadHeader() (_ Header, err error) {
	root, err := fio.OpenWithOptions(r.Path, indexedio.Read, r.Options)
	if err != nil {
		return Header{}, err
	}
	defer func() {
		cerr := root.Close()
		if err == nil {
			err = cerr
		}
	}()

	dir, err := root.Subdirectory(headerEntry, indexedio.ThrowIfMissing)
	if err != nil {
		return Header{}, err
	}
	defer dir.Close()

	name, err := indexedio.ReadAs[string](dir, typeNameEntry)
	if err != nil {
		return Header{}, err
	}
	id, err := indexedio.ReadAs[uint32](dir, typeIDEntry)
	if err != nil {
		return Header{}, err
	}
	return Header{TypeName: name, TypeID: TypeID(id)}, nil
}
