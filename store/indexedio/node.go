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

package indexedio

import (
	"slices"
	"strings"
)

// Separator separates entry names in a Path's string form.
const Separator = "/"

// Path is a sequence of entry names from the root of a container.
type Path []string

// String returns the slash separated form of the path, "/" for the root.
func (p Path) String() string {
	return Separator + strings.Join(p, Separator)
}

// Child returns a new path with |name| appended.
func (p Path) Child(name string) Path {
	c := make(Path, len(p), len(p)+1)
	copy(c, p)
	return append(c, name)
}

// ParsePath splits a slash separated path, ignoring empty components.
func ParsePath(s string) Path {
	p := Path{}
	for _, part := range strings.Split(s, Separator) {
		if part != "" {
			p = append(p, part)
		}
	}
	return p
}

// ValidateName returns ErrInvalidName for names that cannot be stored.
func ValidateName(name string) error {
	if name == "" || strings.Contains(name, Separator) || len(name) > maxNameLen {
		return ErrInvalidName.New(name)
	}
	return nil
}

// names are stored with a 16 bit length
const maxNameLen = 1<<16 - 1

// Node is one entry of a container's in-memory index. A Node owns its children and holds a
// back reference to its parent. Leaves carry a device specific Payload describing where, or
// how, their data is stored.
type Node struct {
	entry    Entry
	parent   *Node
	children map[string]*Node
	order    []string

	Payload any
}

// NewRoot returns an empty root directory node.
func NewRoot() *Node {
	return &Node{entry: Entry{EntryType: Directory}}
}

func (n *Node) Name() string {
	return n.entry.ID
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Entry() Entry {
	return n.entry
}

func (n *Node) IsDirectory() bool {
	return n.entry.EntryType == Directory
}

// Child returns the named child, or nil.
func (n *Node) Child(name string) *Node {
	return n.children[name]
}

// ChildNames returns the names of all children in the order they were added.
func (n *Node) ChildNames() []string {
	return slices.Clone(n.order)
}

func (n *Node) NumChildren() int {
	return len(n.order)
}

// Path returns the path of this node from the root.
func (n *Node) Path() Path {
	var p Path
	for curr := n; curr.parent != nil; curr = curr.parent {
		p = append(p, curr.entry.ID)
	}
	slices.Reverse(p)
	return p
}

// Root walks parent references up to the root of the tree.
func (n *Node) Root() *Node {
	curr := n
	for curr.parent != nil {
		curr = curr.parent
	}
	return curr
}

// AddDirectory adds a new child directory.
func (n *Node) AddDirectory(name string) (*Node, error) {
	return n.add(Entry{ID: name, EntryType: Directory})
}

// AddFile adds a new leaf of the given data type.
func (n *Node) AddFile(name string, dt DataType, arrayLength uint64) (*Node, error) {
	if !dt.IsValid() {
		return nil, ErrTypeMismatch.New(n.Path().Child(name), "invalid data type "+dt.String())
	}
	return n.add(Entry{ID: name, EntryType: File, DataType: dt, ArrayLength: arrayLength})
}

func (n *Node) add(e Entry) (*Node, error) {
	if !n.IsDirectory() {
		return nil, ErrTypeMismatch.New(n.Path(), "not a directory")
	}
	if err := ValidateName(e.ID); err != nil {
		return nil, err
	}
	if _, ok := n.children[e.ID]; ok {
		return nil, ErrDuplicateName.New(n.Path().Child(e.ID))
	}

	child := &Node{entry: e, parent: n}
	if n.children == nil {
		n.children = make(map[string]*Node)
	}
	n.children[e.ID] = child
	n.order = append(n.order, e.ID)
	return child, nil
}

// RemoveChild detaches the named child and its subtree.
func (n *Node) RemoveChild(name string) error {
	child, ok := n.children[name]
	if !ok {
		return ErrPathNotFound.New(n.Path().Child(name))
	}
	delete(n.children, name)
	n.order = slices.DeleteFunc(n.order, func(s string) bool { return s == name })
	child.parent = nil
	return nil
}

// Walk visits this node and its descendants depth first, children in insertion order. Walk
// stops at the first error returned by |cb|.
func (n *Node) Walk(cb func(n *Node) error) error {
	if err := cb(n); err != nil {
		return err
	}
	for _, name := range n.order {
		if err := n.children[name].Walk(cb); err != nil {
			return err
		}
	}
	return nil
}
