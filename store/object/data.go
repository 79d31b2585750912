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
	"fmt"
	"slices"

	"github.com/dolthub/cortex/store/hash"
	"github.com/dolthub/cortex/store/indexedio"
)

const valueEntry = "value"

// SimpleData holds a single value.
type SimpleData[T elem] struct {
	Value T
}

type (
	BoolData   = SimpleData[bool]
	IntData    = SimpleData[int32]
	UIntData   = SimpleData[uint32]
	Int64Data  = SimpleData[int64]
	UInt64Data = SimpleData[uint64]
	FloatData  = SimpleData[float32]
	DoubleData = SimpleData[float64]
	StringData = SimpleData[string]
	V3fData    = SimpleData[V3f]
	V3dData    = SimpleData[V3d]
	Box3dData  = SimpleData[Box3d]
	M44dData   = SimpleData[M44d]
)

// NewData wraps |v| in its SimpleData type.
func NewData[T elem](v T) *SimpleData[T] {
	return &SimpleData[T]{Value: v}
}

func (d *SimpleData[T]) TypeID() TypeID {
	return codecFor[T]().dataID
}

func (d *SimpleData[T]) TypeName() string {
	return d.TypeID().String()
}

func (d *SimpleData[T]) Copy() Object {
	return &SimpleData[T]{Value: d.Value}
}

func (d *SimpleData[T]) IsEqualTo(other Object) bool {
	o, ok := other.(*SimpleData[T])
	return ok && o.Value == d.Value
}

func (d *SimpleData[T]) Hash() hash.Hash {
	return hashObject(d)
}

func (d *SimpleData[T]) HashInto(h *hash.Hasher) {
	codecFor[T]().hashInto(h, d.Value)
}

func (d *SimpleData[T]) Save(ctx *SaveContext) error {
	return ctx.Container().Write(valueEntry, codecFor[T]().toLeaf(d.Value))
}

func (d *SimpleData[T]) Load(ctx *LoadContext) error {
	v, err := ctx.Container().Read(valueEntry)
	if err != nil {
		return err
	}
	t, ok := codecFor[T]().fromLeaf(v)
	if !ok {
		return indexedio.ErrTypeMismatch.New(ctx.Container().Path().Child(valueEntry), fmt.Sprintf("cannot load %T into %s", v, d.TypeName()))
	}
	d.Value = t
	return nil
}

func (d *SimpleData[T]) String() string {
	return fmt.Sprintf("%s(%v)", d.TypeName(), d.Value)
}

func (d *SimpleData[T]) isData() {}

// VectorData holds a homogeneous array of values.
type VectorData[T elem] struct {
	Values []T
}

type (
	BoolVectorData   = VectorData[bool]
	IntVectorData    = VectorData[int32]
	UIntVectorData   = VectorData[uint32]
	Int64VectorData  = VectorData[int64]
	UInt64VectorData = VectorData[uint64]
	FloatVectorData  = VectorData[float32]
	DoubleVectorData = VectorData[float64]
	StringVectorData = VectorData[string]
	V3fVectorData    = VectorData[V3f]
	V3dVectorData    = VectorData[V3d]
)

// NewVectorData wraps a copy of |vs| in its VectorData type.
func NewVectorData[T elem](vs ...T) *VectorData[T] {
	return &VectorData[T]{Values: slices.Clone(vs)}
}

func (d *VectorData[T]) TypeID() TypeID {
	return codecFor[T]().vectorID
}

func (d *VectorData[T]) TypeName() string {
	return d.TypeID().String()
}

func (d *VectorData[T]) Copy() Object {
	return &VectorData[T]{Values: slices.Clone(d.Values)}
}

func (d *VectorData[T]) IsEqualTo(other Object) bool {
	o, ok := other.(*VectorData[T])
	return ok && slices.Equal(o.Values, d.Values)
}

func (d *VectorData[T]) Hash() hash.Hash {
	return hashObject(d)
}

func (d *VectorData[T]) HashInto(h *hash.Hasher) {
	c := codecFor[T]()
	h.AppendUint64(uint64(len(d.Values)))
	for _, v := range d.Values {
		c.hashInto(h, v)
	}
}

func (d *VectorData[T]) Save(ctx *SaveContext) error {
	return ctx.Container().Write(valueEntry, codecFor[T]().toArray(d.Values))
}

func (d *VectorData[T]) Load(ctx *LoadContext) error {
	v, err := ctx.Container().Read(valueEntry)
	if err != nil {
		return err
	}
	vs, ok := codecFor[T]().fromArray(v)
	if !ok {
		return indexedio.ErrTypeMismatch.New(ctx.Container().Path().Child(valueEntry), fmt.Sprintf("cannot load %T into %s", v, d.TypeName()))
	}
	d.Values = vs
	return nil
}

func (d *VectorData[T]) Len() int {
	return len(d.Values)
}

func (d *VectorData[T]) isData() {}
