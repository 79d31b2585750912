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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/cortex/store/indexedio"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.IsRegistered(IntDataTypeID))

	_, err := r.Create(IntDataTypeID, 1)
	assert.True(t, ErrUnknownType.Is(err), "%v", err)

	require.NoError(t, r.Register(IntDataTypeID, "IntData", 1, func() Object { return &IntData{} }))
	assert.True(t, r.IsRegistered(IntDataTypeID))

	o, err := r.Create(IntDataTypeID, 1)
	require.NoError(t, err)
	assert.IsType(t, &IntData{}, o)

	_, err = r.Create(IntDataTypeID, 2)
	assert.True(t, ErrUnsupportedVersion.Is(err), "%v", err)

	err = r.Register(IntDataTypeID, "IntData", 1, func() Object { return &IntData{} })
	assert.True(t, ErrDuplicateRegistration.Is(err), "%v", err)

	err = r.Register(UIntDataTypeID, "IntData", 1, func() Object { return &UIntData{} })
	assert.True(t, ErrTypeNameConflict.Is(err), "%v", err)
	assert.Contains(t, err.Error(), `"IntData"`)
	assert.Contains(t, err.Error(), "used by "+IntDataTypeID.String())

	err = r.Register(IntDataTypeID, "Renamed", 2, func() Object { return &IntData{} })
	assert.True(t, ErrTypeNameConflict.Is(err), "%v", err)
	assert.Contains(t, err.Error(), `"Renamed"`)
	assert.Contains(t, err.Error(), `already registered as "IntData"`)

	err = r.Register(IntDataTypeID, "IntData", 0, func() Object { return &IntData{} })
	assert.True(t, ErrUnsupportedVersion.Is(err), "%v", err)

	name, err := r.TypeName(IntDataTypeID)
	require.NoError(t, err)
	assert.Equal(t, "IntData", name)

	id, err := r.TypeIDFromName("IntData")
	require.NoError(t, err)
	assert.Equal(t, IntDataTypeID, id)

	_, err = r.TypeIDFromName("Nope")
	assert.True(t, ErrUnknownType.Is(err), "%v", err)
}

func TestRegistryCurrentVersion(t *testing.T) {
	r := NewRegistry()
	f := func() Object { return NewSpherePrimitive(1) }
	require.NoError(t, r.Register(SpherePrimitiveTypeID, "SpherePrimitive", 2, f))
	require.NoError(t, r.Register(SpherePrimitiveTypeID, "SpherePrimitive", 1, f))

	v, err := r.CurrentVersion(SpherePrimitiveTypeID)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), v)

	versions, err := r.Versions(SpherePrimitiveTypeID)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 2}, versions)
}

func TestDefaultRegistry(t *testing.T) {
	r := DefaultRegistry()
	types := r.RegisteredTypes()
	assert.Len(t, types, len(TypeIDToString)-1)
	assert.NotContains(t, types, InvalidTypeID)
	for _, id := range types {
		name, err := r.TypeName(id)
		require.NoError(t, err)
		assert.Equal(t, id.String(), name)
	}

	assert.True(t, RegisterBuiltins(NewRegistry()) == nil)
	err := RegisterBuiltins(r)
	assert.True(t, ErrDuplicateRegistration.Is(err), "%v", err)
}

type customObject struct {
	NullObject
	label string
}

const customTypeID TypeID = 1000

func (c *customObject) TypeID() TypeID {
	return customTypeID
}

func (c *customObject) TypeName() string {
	return "Custom"
}

func (c *customObject) Copy() Object {
	return &customObject{label: c.label}
}

func (c *customObject) Save(ctx *SaveContext) error {
	return ctx.Container().Write("label", c.label)
}

func (c *customObject) IsEqualTo(other Object) bool {
	o, ok := other.(*customObject)
	return ok && o.label == c.label
}

func (c *customObject) Load(ctx *LoadContext) (err error) {
	c.label, err = indexedio.ReadAs[string](ctx.Container(), "label")
	return err
}

func TestRegistryIsolation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterBuiltins(r))
	require.NoError(t, r.Register(customTypeID, "Custom", 1, func() Object { return &customObject{} }))

	root := indexedio.NewMemory(indexedio.Write)
	defer root.Close()

	c := NewCompoundObject()
	c.Set("custom", &customObject{label: "x"})
	require.NoError(t, r.Save(c, root, "c"))

	out, err := r.Load(root, "c")
	require.NoError(t, err)
	assert.True(t, c.IsEqualTo(out))

	// the default registry never heard of the custom type
	_, err = Load(root, "c")
	assert.True(t, ErrUnknownType.Is(err), "%v", err)

	err = Save(&customObject{}, root, "d")
	assert.True(t, ErrUnknownType.Is(err), "%v", err)
	assert.False(t, root.HasEntry("d"))
}
