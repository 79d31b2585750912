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

// RegisterBuiltins registers every type defined by this package with |r|.
func RegisterBuiltins(r *Registry) error {
	regs := []struct {
		id       TypeID
		versions []uint32
		factory  Factory
	}{
		{NullObjectTypeID, []uint32{1}, func() Object { return &NullObject{} }},

		{BoolDataTypeID, []uint32{1}, func() Object { return &BoolData{} }},
		{IntDataTypeID, []uint32{1}, func() Object { return &IntData{} }},
		{UIntDataTypeID, []uint32{1}, func() Object { return &UIntData{} }},
		{Int64DataTypeID, []uint32{1}, func() Object { return &Int64Data{} }},
		{UInt64DataTypeID, []uint32{1}, func() Object { return &UInt64Data{} }},
		{FloatDataTypeID, []uint32{1}, func() Object { return &FloatData{} }},
		{DoubleDataTypeID, []uint32{1}, func() Object { return &DoubleData{} }},
		{StringDataTypeID, []uint32{1}, func() Object { return &StringData{} }},
		{V3fDataTypeID, []uint32{1}, func() Object { return &V3fData{} }},
		{V3dDataTypeID, []uint32{1}, func() Object { return &V3dData{} }},
		{Box3dDataTypeID, []uint32{1}, func() Object { return &Box3dData{} }},
		{M44dDataTypeID, []uint32{1}, func() Object { return &M44dData{} }},

		{BoolVectorDataTypeID, []uint32{1}, func() Object { return &BoolVectorData{} }},
		{IntVectorDataTypeID, []uint32{1}, func() Object { return &IntVectorData{} }},
		{UIntVectorDataTypeID, []uint32{1}, func() Object { return &UIntVectorData{} }},
		{Int64VectorDataTypeID, []uint32{1}, func() Object { return &Int64VectorData{} }},
		{UInt64VectorDataTypeID, []uint32{1}, func() Object { return &UInt64VectorData{} }},
		{FloatVectorDataTypeID, []uint32{1}, func() Object { return &FloatVectorData{} }},
		{DoubleVectorDataTypeID, []uint32{1}, func() Object { return &DoubleVectorData{} }},
		{StringVectorDataTypeID, []uint32{1}, func() Object { return &StringVectorData{} }},
		{V3fVectorDataTypeID, []uint32{1}, func() Object { return &V3fVectorData{} }},
		{V3dVectorDataTypeID, []uint32{1}, func() Object { return &V3dVectorData{} }},

		{CompoundDataTypeID, []uint32{1}, func() Object { return NewCompoundData() }},
		{CompoundObjectTypeID, []uint32{1}, func() Object { return NewCompoundObject() }},

		{SpherePrimitiveTypeID, []uint32{sphereVersion1, sphereVersion2}, func() Object { return NewSpherePrimitive(1) }},
		{PointsPrimitiveTypeID, []uint32{1}, func() Object { return NewPointsPrimitive(nil) }},
	}

	for _, reg := range regs {
		for _, v := range reg.versions {
			if err := r.Register(reg.id, reg.id.String(), v, reg.factory); err != nil {
				return err
			}
		}
	}
	return nil
}
