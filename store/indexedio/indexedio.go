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

// Package indexedio defines IndexedIO, a hierarchical container of named entries. Each entry
// is either a directory holding further entries, or a leaf holding a typed scalar or array.
//
// Handles to directories are reference counted against the Device that stores the tree. Every
// handle returned by this package, including those returned by Subdirectory, Directory and
// ParentDirectory, must be closed. When the last handle of a device is closed the device is
// finalized, which for file backed devices is what makes written data durable.
package indexedio

import (
	"fmt"
)

// OpenMode determines what operations are permitted on a container.
type OpenMode uint8

const (
	// Read opens an existing container. No mutations are permitted.
	Read OpenMode = iota + 1
	// Write creates a new container, replacing any existing one.
	Write
	// Append opens an existing container for adding entries. Existing entries are kept.
	Append
)

func (m OpenMode) String() string {
	switch m {
	case Read:
		return "Read"
	case Write:
		return "Write"
	case Append:
		return "Append"
	default:
		return "Invalid"
	}
}

// CanWrite returns true for modes that allow mutation.
func (m OpenMode) CanWrite() bool {
	return m == Write || m == Append
}

// MissingBehaviour determines what navigation does when an entry does not exist.
type MissingBehaviour uint8

const (
	// ThrowIfMissing returns ErrPathNotFound.
	ThrowIfMissing MissingBehaviour = iota
	// NullIfMissing returns a nil handle and a nil error.
	NullIfMissing
	// CreateIfMissing creates the directory. Only valid in Write and Append modes.
	CreateIfMissing
)

// IndexedIO is a handle to one directory of a container.
type IndexedIO interface {
	// Path returns the path of this directory from the container root.
	Path() Path

	// Mode returns the mode the container was opened with.
	Mode() OpenMode

	// EntryIDs returns the names of all entries of this directory. Callers must not depend on
	// the order unless a schema built on top of this package says otherwise.
	EntryIDs() ([]string, error)

	// EntryIDsOfType returns the names of all entries of the given type.
	EntryIDsOfType(et EntryType) ([]string, error)

	// HasEntry returns true if an entry named |name| exists in this directory.
	HasEntry(name string) bool

	// Entry describes the named entry.
	Entry(name string) (Entry, error)

	// Subdirectory opens the named child directory.
	Subdirectory(name string, mb MissingBehaviour) (IndexedIO, error)

	// CreateSubdirectory creates a new child directory. It is an error if an entry of that
	// name already exists, except in Append mode where an existing directory is returned.
	CreateSubdirectory(name string) (IndexedIO, error)

	// Directory opens the directory at the absolute path |p|.
	Directory(p Path, mb MissingBehaviour) (IndexedIO, error)

	// ParentDirectory opens the parent of this directory, or returns nil at the root.
	ParentDirectory() (IndexedIO, error)

	// Remove deletes the named entry and, for directories, everything below it.
	Remove(name string) error

	// Write stores |v| in a new leaf named |name|. Writing over an existing entry is an error.
	Write(name string, v any) error

	// Read returns the value of the named leaf.
	Read(name string) (any, error)

	// Discard marks the container so that finalization abandons everything written through
	// it. The handle must still be closed.
	Discard()

	// Close releases this handle. Closing an already closed handle is a no-op.
	Close() error
}

// Device stores the tree behind a family of handles.
type Device interface {
	Mode() OpenMode

	// ReadLeaf returns the value stored for the leaf |n|.
	ReadLeaf(n *Node) (any, error)

	// WriteLeaf stores |v| for the newly created leaf |n|, usually by setting n.Payload.
	WriteLeaf(n *Node, v any) error

	// Retain adds a reference.
	Retain()

	// Release drops a reference. The release of the last reference finalizes the device and
	// returns any error that occurred doing so.
	Release() error

	// Discard marks the device so that finalization abandons pending writes.
	Discard()
}

// NewHandle returns a handle to |n|, retaining |dev|.
func NewHandle(dev Device, n *Node) IndexedIO {
	dev.Retain()
	return &handle{dev: dev, node: n}
}

type handle struct {
	dev    Device
	node   *Node
	closed bool
}

var _ IndexedIO = (*handle)(nil)

func (h *handle) Path() Path {
	return h.node.Path()
}

func (h *handle) Mode() OpenMode {
	return h.dev.Mode()
}

func (h *handle) checkOpen() error {
	if h.closed {
		return ErrHandleClosed.New(h.node.Path())
	}
	return nil
}

func (h *handle) checkWritable(op string) error {
	if err := h.checkOpen(); err != nil {
		return err
	}
	if !h.dev.Mode().CanWrite() {
		return ErrInvalidMode.New(op, h.dev.Mode())
	}
	return nil
}

func (h *handle) EntryIDs() ([]string, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}
	return h.node.ChildNames(), nil
}

func (h *handle) EntryIDsOfType(et EntryType) ([]string, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}
	var ids []string
	for _, name := range h.node.order {
		if h.node.children[name].entry.EntryType == et {
			ids = append(ids, name)
		}
	}
	return ids, nil
}

func (h *handle) HasEntry(name string) bool {
	return !h.closed && h.node.Child(name) != nil
}

func (h *handle) Entry(name string) (Entry, error) {
	if err := h.checkOpen(); err != nil {
		return Entry{}, err
	}
	child := h.node.Child(name)
	if child == nil {
		return Entry{}, ErrPathNotFound.New(h.node.Path().Child(name))
	}
	return child.entry, nil
}

func (h *handle) Subdirectory(name string, mb MissingBehaviour) (IndexedIO, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}
	child, err := h.navigate(h.node, name, mb)
	if err != nil || child == nil {
		return nil, err
	}
	return NewHandle(h.dev, child), nil
}

func (h *handle) navigate(from *Node, name string, mb MissingBehaviour) (*Node, error) {
	child := from.Child(name)
	if child != nil {
		if !child.IsDirectory() {
			return nil, ErrTypeMismatch.New(child.Path(), "not a directory")
		}
		return child, nil
	}

	switch mb {
	case NullIfMissing:
		return nil, nil
	case CreateIfMissing:
		if !h.dev.Mode().CanWrite() {
			return nil, ErrInvalidMode.New("creating "+from.Path().Child(name).String(), h.dev.Mode())
		}
		return from.AddDirectory(name)
	default:
		return nil, ErrPathNotFound.New(from.Path().Child(name))
	}
}

func (h *handle) CreateSubdirectory(name string) (IndexedIO, error) {
	if err := h.checkWritable("creating " + h.node.Path().Child(name).String()); err != nil {
		return nil, err
	}

	if existing := h.node.Child(name); existing != nil {
		if h.dev.Mode() == Append && existing.IsDirectory() {
			return NewHandle(h.dev, existing), nil
		}
		return nil, ErrDuplicateName.New(existing.Path())
	}

	child, err := h.node.AddDirectory(name)
	if err != nil {
		return nil, err
	}
	return NewHandle(h.dev, child), nil
}

func (h *handle) Directory(p Path, mb MissingBehaviour) (IndexedIO, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}

	curr := h.node.Root()
	for _, name := range p {
		next, err := h.navigate(curr, name, mb)
		if err != nil || next == nil {
			return nil, err
		}
		curr = next
	}
	return NewHandle(h.dev, curr), nil
}

func (h *handle) ParentDirectory() (IndexedIO, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}
	if h.node.parent == nil {
		return nil, nil
	}
	return NewHandle(h.dev, h.node.parent), nil
}

func (h *handle) Remove(name string) error {
	if err := h.checkWritable("removing " + h.node.Path().Child(name).String()); err != nil {
		return err
	}
	return h.node.RemoveChild(name)
}

func (h *handle) Write(name string, v any) error {
	if err := h.checkWritable("writing " + h.node.Path().Child(name).String()); err != nil {
		return err
	}

	dt, arrayLen, err := DataTypeOf(v)
	if err != nil {
		return err
	}

	child, err := h.node.AddFile(name, dt, arrayLen)
	if err != nil {
		return err
	}

	err = h.dev.WriteLeaf(child, v)
	if err != nil {
		_ = h.node.RemoveChild(name)
		return err
	}
	return nil
}

func (h *handle) Read(name string) (any, error) {
	if err := h.checkOpen(); err != nil {
		return nil, err
	}

	child := h.node.Child(name)
	if child == nil {
		return nil, ErrPathNotFound.New(h.node.Path().Child(name))
	}
	if child.IsDirectory() {
		return nil, ErrTypeMismatch.New(child.Path(), "is a directory")
	}
	return h.dev.ReadLeaf(child)
}

func (h *handle) Discard() {
	h.dev.Discard()
}

func (h *handle) Close() error {
	if h.closed {
		return nil
	}
	h.closed = true
	return h.dev.Release()
}

// ReadAs reads the named leaf and asserts it holds a T, returning ErrTypeMismatch otherwise.
func ReadAs[T any](d IndexedIO, name string) (T, error) {
	var zero T
	v, err := d.Read(name)
	if err != nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, ErrTypeMismatch.New(d.Path().Child(name), fmt.Sprintf("stored %T, requested %T", v, zero))
	}
	return t, nil
}

// WalkEntries calls |cb| for every entry below |d|, depth first. Paths passed to |cb| are
// absolute.
func WalkEntries(d IndexedIO, cb func(p Path, e Entry) error) error {
	ids, err := d.EntryIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		e, err := d.Entry(id)
		if err != nil {
			return err
		}
		if err := cb(d.Path().Child(id), e); err != nil {
			return err
		}
		if e.EntryType != Directory {
			continue
		}

		sub, err := d.Subdirectory(id, ThrowIfMissing)
		if err != nil {
			return err
		}
		err = WalkEntries(sub, cb)
		cerr := sub.Close()
		if err != nil {
			return err
		}
		if cerr != nil {
			return cerr
		}
	}
	return nil
}

// CreateDirectory opens the directory at the absolute path |p| below the root of |d|, creating
// any missing directories along the way. The returned undo func removes the outermost directory
// created by this call, and with it everything written below it since. It does nothing if every
// directory already existed.
func CreateDirectory(d IndexedIO, p Path) (_ IndexedIO, undo func() error, err error) {
	depth := 0
	for ; depth < len(p); depth++ {
		sub, err := d.Directory(p[:depth+1], NullIfMissing)
		if err != nil {
			return nil, nil, err
		}
		if sub == nil {
			break
		}
		_ = sub.Close()
	}

	dir, err := d.Directory(p, CreateIfMissing)
	if err != nil {
		return nil, nil, err
	}

	undo = func() error {
		if depth == len(p) {
			return nil
		}
		parent, err := d.Directory(p[:depth], ThrowIfMissing)
		if err != nil {
			return err
		}
		defer parent.Close()
		return parent.Remove(p[depth])
	}
	return dir, undo, nil
}
