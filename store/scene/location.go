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
	"math"
	"slices"
	"strconv"

	"github.com/dolthub/cortex/store/fio"
	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/object"
)

const (
	headerEntry        = "header"
	schemaEntry        = "schema"
	schemaVersionEntry = "version"
	rootEntry          = "root"
	childrenEntry      = "children"
)

// location is one node of a scene hierarchy inside an open container. It owns one handle on the
// container; the container is finalized once every location opened from it is closed.
type location struct {
	file string
	dir  indexedio.IndexedIO
	path []string
	opts Options
}

// openLocation opens |file| and returns its root location, writing or checking the schema header.
func openLocation(file string, mode indexedio.OpenMode, schema string, version uint32, opts Options) (_ location, err error) {
	root, err := fio.OpenWithOptions(file, mode, opts.fileOptions())
	if err != nil {
		return location{}, err
	}
	defer func() {
		if err != nil && mode.CanWrite() {
			root.Discard()
		}
		cerr := root.Close()
		if err == nil {
			err = cerr
		}
	}()

	switch {
	case mode == indexedio.Write, mode == indexedio.Append && !root.HasEntry(headerEntry):
		err = writeSchema(root, schema, version)
	default:
		err = checkSchema(file, root, schema, version)
	}
	if err != nil {
		return location{}, err
	}

	mb := indexedio.ThrowIfMissing
	if mode.CanWrite() {
		mb = indexedio.CreateIfMissing
	}
	dir, err := root.Subdirectory(rootEntry, mb)
	if err != nil {
		return location{}, err
	}

	opts.logger().WithField("path", file).WithField("schema", schema).Debug("opened scene")
	return location{file: file, dir: dir, opts: opts}, nil
}

func writeSchema(root indexedio.IndexedIO, schema string, version uint32) (err error) {
	hdr, err := root.CreateSubdirectory(headerEntry)
	if err != nil {
		return err
	}
	defer func() {
		cerr := hdr.Close()
		if err == nil {
			err = cerr
		}
	}()

	err = hdr.Write(schemaEntry, schema)
	if err != nil {
		return err
	}
	return hdr.Write(schemaVersionEntry, version)
}

func checkSchema(file string, root indexedio.IndexedIO, schema string, version uint32) error {
	hdr, err := root.Subdirectory(headerEntry, indexedio.ThrowIfMissing)
	if err != nil {
		return err
	}
	defer hdr.Close()

	got, err := indexedio.ReadAs[string](hdr, schemaEntry)
	if err != nil {
		return err
	}
	if got != schema {
		return ErrSchemaMismatch.New(file, got, schema)
	}
	gotVersion, err := indexedio.ReadAs[uint32](hdr, schemaVersionEntry)
	if err != nil {
		return err
	}
	if gotVersion > version {
		return ErrSchemaVersion.New(file, schema, gotVersion, version)
	}
	return nil
}

func (l location) name() string {
	if len(l.path) == 0 {
		return "/"
	}
	return l.path[len(l.path)-1]
}

func (l location) scenePath() []string {
	return slices.Clone(l.path)
}

func (l location) mode() indexedio.OpenMode {
	return l.dir.Mode()
}

func (l location) close() error {
	return l.dir.Close()
}

// subdir navigates to a directory below this location.
func (l location) subdir(mb indexedio.MissingBehaviour, names ...string) (indexedio.IndexedIO, error) {
	return l.dir.Directory(append(l.dir.Path(), names...), mb)
}

func (l location) has(names ...string) bool {
	d, err := l.subdir(indexedio.NullIfMissing, names...)
	if err != nil || d == nil {
		return false
	}
	_ = d.Close()
	return true
}

// entries lists the entries of the directory |names| below this location in sorted order. A
// missing directory has no entries.
func (l location) entries(names ...string) ([]string, error) {
	d, err := l.subdir(indexedio.NullIfMissing, names...)
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

func (l location) childNames() ([]string, error) {
	return l.entries(childrenEntry)
}

func (l location) hasChild(name string) bool {
	return l.has(childrenEntry, name)
}

// child returns the named child location. With NullIfMissing, a missing child is reported by
// ok == false.
func (l location) child(name string, mb indexedio.MissingBehaviour) (_ location, ok bool, err error) {
	d, err := l.subdir(mb, childrenEntry, name)
	if err != nil || d == nil {
		return location{}, false, err
	}
	return l.at(d, name), true, nil
}

// createChild adds a new child location. The child must not exist yet.
func (l location) createChild(name string) (location, error) {
	children, err := l.subdir(indexedio.CreateIfMissing, childrenEntry)
	if err != nil {
		return location{}, err
	}
	defer children.Close()

	if children.HasEntry(name) {
		return location{}, indexedio.ErrDuplicateName.New(children.Path().Child(name))
	}
	d, err := children.CreateSubdirectory(name)
	if err != nil {
		return location{}, err
	}
	return l.at(d, name), nil
}

// descendant navigates |path| relative to the root location.
func (l location) descendant(path []string, mb indexedio.MissingBehaviour) (_ location, ok bool, err error) {
	p := indexedio.Path{rootEntry}
	for _, name := range path {
		p = append(p, childrenEntry, name)
	}
	d, err := l.dir.Directory(p, mb)
	if err != nil || d == nil {
		return location{}, false, err
	}
	return location{file: l.file, dir: d, path: slices.Clone(path), opts: l.opts}, true, nil
}

func (l location) at(d indexedio.IndexedIO, name string) location {
	return location{
		file: l.file,
		dir:  d,
		path: append(slices.Clone(l.path), name),
		opts: l.opts,
	}
}

// writeRecord saves |o| below this location. On failure, group directories created for the
// record are removed again.
func (l location) writeRecord(o object.Object, names ...string) error {
	parent, undo, err := indexedio.CreateDirectory(l.dir, append(l.dir.Path(), names[:len(names)-1]...))
	if err != nil {
		return err
	}

	err = l.opts.registry().Save(o, parent, names[len(names)-1])
	cerr := parent.Close()
	if err != nil {
		_ = undo()
		return err
	}
	return cerr
}

func (l location) readRecord(names ...string) (object.Object, error) {
	parent, err := l.subdir(indexedio.ThrowIfMissing, names[:len(names)-1]...)
	if err != nil {
		return nil, err
	}
	defer parent.Close()
	return l.opts.registry().Load(parent, names[len(names)-1])
}

func (l location) writeSample(o object.Object, time float64, group ...string) error {
	key, err := timeKey(time)
	if err != nil {
		return err
	}
	return l.writeRecord(o, append(group, key)...)
}

func (l location) readSample(time float64, group ...string) (object.Object, error) {
	key, err := timeKey(time)
	if err != nil {
		return nil, err
	}
	return l.readRecord(append(group, key)...)
}

func (l location) hasSample(time float64, group ...string) bool {
	key, err := timeKey(time)
	if err != nil {
		return false
	}
	return l.has(append(group, key)...)
}

// sampleTimes returns the times sampled in |group| in ascending order.
func (l location) sampleTimes(group ...string) ([]float64, error) {
	keys, err := l.entries(group...)
	if err != nil {
		return nil, err
	}

	times := make([]float64, 0, len(keys))
	for _, k := range keys {
		t, err := strconv.ParseFloat(k, 64)
		if err != nil {
			return nil, fio.ErrFormat.New("sample " + k + " of " + l.file + " is not a time")
		}
		times = append(times, t)
	}
	slices.Sort(times)
	return times, nil
}

// writeTags merges |tags| into the sorted tag list of this location.
func (l location) writeTags(tags []string) error {
	existing, err := l.readTags()
	if err != nil {
		return err
	}
	merged := slices.Compact(slices.Sorted(slices.Values(append(existing, tags...))))
	if l.dir.HasEntry(tagsEntry) {
		if err := l.dir.Remove(tagsEntry); err != nil {
			return err
		}
	}
	return l.dir.Write(tagsEntry, merged)
}

func (l location) readTags() ([]string, error) {
	if !l.dir.HasEntry(tagsEntry) {
		return nil, nil
	}
	return indexedio.ReadAs[[]string](l.dir, tagsEntry)
}

func (l location) hasTag(tag string) bool {
	tags, err := l.readTags()
	if err != nil {
		return false
	}
	_, found := slices.BinarySearch(tags, tag)
	return found
}

// timeKey returns the shortest decimal string that parses back to |t|.
func timeKey(t float64) (string, error) {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return "", ErrInvalidTime.New(t)
	}
	if t == 0 {
		// fold -0 into 0
		t = 0
	}
	return strconv.FormatFloat(t, 'g', -1, 64), nil
}
