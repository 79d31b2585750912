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

	"github.com/dolthub/cortex/store/hash"
	"github.com/dolthub/cortex/store/indexedio"
)

const membersEntry = "members"

// CompoundData maps names to Data. It owns its members: Copy clones every member.
type CompoundData struct {
	Members map[string]Data
}

func NewCompoundData() *CompoundData {
	return &CompoundData{Members: make(map[string]Data)}
}

func (c *CompoundData) TypeID() TypeID {
	return CompoundDataTypeID
}

func (c *CompoundData) TypeName() string {
	return c.TypeID().String()
}

func (c *CompoundData) Get(key string) (Data, bool) {
	d, ok := c.Members[key]
	return d, ok
}

// Set stores |d| as the member |key|. Setting a nil member removes |key|.
func (c *CompoundData) Set(key string, d Data) {
	if d == nil {
		delete(c.Members, key)
		return
	}
	if c.Members == nil {
		c.Members = make(map[string]Data)
	}
	c.Members[key] = d
}

func (c *CompoundData) Delete(key string) {
	delete(c.Members, key)
}

// Keys returns the member names in sorted order.
func (c *CompoundData) Keys() []string {
	return slices.Sorted(maps.Keys(c.Members))
}

func (c *CompoundData) Len() int {
	return len(c.Members)
}

func (c *CompoundData) Copy() Object {
	return &CompoundData{Members: copyMembers(c.Members)}
}

func (c *CompoundData) IsEqualTo(other Object) bool {
	o, ok := other.(*CompoundData)
	return ok && membersEqual(c.Members, o.Members)
}

func (c *CompoundData) Hash() hash.Hash {
	return hashObject(c)
}

func (c *CompoundData) HashInto(h *hash.Hasher) {
	hashMembers(h, c.Members)
}

func (c *CompoundData) Save(ctx *SaveContext) error {
	return saveMembers(ctx, c.Members)
}

func (c *CompoundData) Load(ctx *LoadContext) error {
	members, err := loadMembers(ctx, func(o Object) (Data, bool) {
		d, ok := o.(Data)
		return d, ok
	})
	if err != nil {
		return err
	}
	c.Members = members
	return nil
}

func (c *CompoundData) isData() {}

// CompoundObject maps names to arbitrary Objects, including geometry and other compounds.
type CompoundObject struct {
	Members map[string]Object
}

func NewCompoundObject() *CompoundObject {
	return &CompoundObject{Members: make(map[string]Object)}
}

func (c *CompoundObject) TypeID() TypeID {
	return CompoundObjectTypeID
}

func (c *CompoundObject) TypeName() string {
	return c.TypeID().String()
}

func (c *CompoundObject) Get(key string) (Object, bool) {
	o, ok := c.Members[key]
	return o, ok
}

// Set stores |o| as the member |key|. Setting a nil member removes |key|.
func (c *CompoundObject) Set(key string, o Object) {
	if o == nil {
		delete(c.Members, key)
		return
	}
	if c.Members == nil {
		c.Members = make(map[string]Object)
	}
	c.Members[key] = o
}

func (c *CompoundObject) Delete(key string) {
	delete(c.Members, key)
}

// Keys returns the member names in sorted order.
func (c *CompoundObject) Keys() []string {
	return slices.Sorted(maps.Keys(c.Members))
}

func (c *CompoundObject) Len() int {
	return len(c.Members)
}

func (c *CompoundObject) Copy() Object {
	return &CompoundObject{Members: copyMembers(c.Members)}
}

func (c *CompoundObject) IsEqualTo(other Object) bool {
	o, ok := other.(*CompoundObject)
	return ok && membersEqual(c.Members, o.Members)
}

func (c *CompoundObject) Hash() hash.Hash {
	return hashObject(c)
}

func (c *CompoundObject) HashInto(h *hash.Hasher) {
	hashMembers(h, c.Members)
}

func (c *CompoundObject) Save(ctx *SaveContext) error {
	return saveMembers(ctx, c.Members)
}

func (c *CompoundObject) Load(ctx *LoadContext) error {
	members, err := loadMembers(ctx, func(o Object) (Object, bool) { return o, true })
	if err != nil {
		return err
	}
	c.Members = members
	return nil
}

func copyMembers[T Object](members map[string]T) map[string]T {
	out := make(map[string]T, len(members))
	for k, v := range members {
		out[k] = v.Copy().(T)
	}
	return out
}

func membersEqual[T Object](a, b map[string]T) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !av.IsEqualTo(bv) {
			return false
		}
	}
	return true
}

func hashMembers[T Object](h *hash.Hasher, members map[string]T) {
	h.AppendUint64(uint64(len(members)))
	for _, k := range slices.Sorted(maps.Keys(members)) {
		h.AppendString(k)
		hashMember(h, members[k])
	}
}

// saveMembers writes each member under members/<key>, in key order so that equal compounds
// produce identical containers.
func saveMembers[T Object](ctx *SaveContext, members map[string]T) (err error) {
	dir, err := ctx.Container().CreateSubdirectory(membersEntry)
	if err != nil {
		return err
	}
	defer func() {
		cerr := dir.Close()
		if err == nil {
			err = cerr
		}
	}()

	for _, k := range slices.Sorted(maps.Keys(members)) {
		err = ctx.Registry().Save(members[k], dir, k)
		if err != nil {
			return err
		}
	}
	return nil
}

func loadMembers[T Object](ctx *LoadContext, convert func(Object) (T, bool)) (_ map[string]T, err error) {
	dir, err := ctx.Container().Subdirectory(membersEntry, indexedio.ThrowIfMissing)
	if err != nil {
		return nil, err
	}
	defer func() {
		cerr := dir.Close()
		if err == nil {
			err = cerr
		}
	}()

	keys, err := dir.EntryIDs()
	if err != nil {
		return nil, err
	}

	members := make(map[string]T, len(keys))
	for _, k := range keys {
		o, err := ctx.Registry().Load(dir, k)
		if err != nil {
			return nil, err
		}
		t, ok := convert(o)
		if !ok {
			return nil, indexedio.ErrTypeMismatch.New(dir.Path().Child(k), o.TypeName()+" cannot be a member of "+ctx.Container().Path().String())
		}
		members[k] = t
	}
	return members, nil
}
