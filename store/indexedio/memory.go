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
	"sync/atomic"
)

// MemoryDevice keeps a container entirely in memory. Leaf payloads are copies of the values
// written, so callers may reuse their slices.
type MemoryDevice struct {
	mode      OpenMode
	root      *Node
	refs      atomic.Int32
	discarded atomic.Bool
}

var _ Device = (*MemoryDevice)(nil)

// NewMemory returns the root handle of a new, empty in-memory container.
func NewMemory(mode OpenMode) IndexedIO {
	return OpenMemory(NewRoot(), mode)
}

// OpenMemory returns a root handle over an existing tree, such as one built by an earlier
// in-memory container. Payloads of the tree's leaves must be leaf values.
func OpenMemory(root *Node, mode OpenMode) IndexedIO {
	dev := &MemoryDevice{mode: mode, root: root}
	return NewHandle(dev, root)
}

// MemoryRoot returns the tree behind an in-memory handle, or nil for handles of other devices.
func MemoryRoot(d IndexedIO) *Node {
	h, ok := d.(*handle)
	if !ok {
		return nil
	}
	if md, ok := h.dev.(*MemoryDevice); ok {
		return md.root
	}
	return nil
}

func (md *MemoryDevice) Mode() OpenMode {
	return md.mode
}

func (md *MemoryDevice) ReadLeaf(n *Node) (any, error) {
	return CopyValue(n.Payload), nil
}

func (md *MemoryDevice) WriteLeaf(n *Node, v any) error {
	n.Payload = CopyValue(v)
	return nil
}

func (md *MemoryDevice) Retain() {
	md.refs.Add(1)
}

func (md *MemoryDevice) Release() error {
	if md.refs.Add(-1) == 0 && md.discarded.Load() {
		for _, name := range md.root.ChildNames() {
			_ = md.root.RemoveChild(name)
		}
	}
	return nil
}

func (md *MemoryDevice) Discard() {
	md.discarded.Store(true)
}
