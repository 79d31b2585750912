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

import "strconv"

// TypeID is the stable numeric identifier stored in the header of every serialized Object.
// Values are part of the file format and must never be renumbered.
type TypeID uint32

const (
	InvalidTypeID TypeID = 0

	NullObjectTypeID TypeID = 1

	BoolDataTypeID   TypeID = 2
	IntDataTypeID    TypeID = 3
	UIntDataTypeID   TypeID = 4
	Int64DataTypeID  TypeID = 5
	UInt64DataTypeID TypeID = 6
	FloatDataTypeID  TypeID = 7
	DoubleDataTypeID TypeID = 8
	StringDataTypeID TypeID = 9
	V3fDataTypeID    TypeID = 10
	V3dDataTypeID    TypeID = 11
	Box3dDataTypeID  TypeID = 12
	M44dDataTypeID   TypeID = 13

	BoolVectorDataTypeID   TypeID = 20
	IntVectorDataTypeID    TypeID = 21
	UIntVectorDataTypeID   TypeID = 22
	Int64VectorDataTypeID  TypeID = 23
	UInt64VectorDataTypeID TypeID = 24
	FloatVectorDataTypeID  TypeID = 25
	DoubleVectorDataTypeID TypeID = 26
	StringVectorDataTypeID TypeID = 27
	V3fVectorDataTypeID    TypeID = 28
	V3dVectorDataTypeID    TypeID = 29

	CompoundDataTypeID   TypeID = 40
	CompoundObjectTypeID TypeID = 41

	SpherePrimitiveTypeID TypeID = 50
	PointsPrimitiveTypeID TypeID = 51
)

var TypeIDToString = map[TypeID]string{
	InvalidTypeID:          "Invalid",
	NullObjectTypeID:       "NullObject",
	BoolDataTypeID:         "BoolData",
	IntDataTypeID:          "IntData",
	UIntDataTypeID:         "UIntData",
	Int64DataTypeID:        "Int64Data",
	UInt64DataTypeID:       "UInt64Data",
	FloatDataTypeID:        "FloatData",
	DoubleDataTypeID:       "DoubleData",
	StringDataTypeID:       "StringData",
	V3fDataTypeID:          "V3fData",
	V3dDataTypeID:          "V3dData",
	Box3dDataTypeID:        "Box3dData",
	M44dDataTypeID:         "M44dData",
	BoolVectorDataTypeID:   "BoolVectorData",
	IntVectorDataTypeID:    "IntVectorData",
	UIntVectorDataTypeID:   "UIntVectorData",
	Int64VectorDataTypeID:  "Int64VectorData",
	UInt64VectorDataTypeID: "UInt64VectorData",
	FloatVectorDataTypeID:  "FloatVectorData",
	DoubleVectorDataTypeID: "DoubleVectorData",
	StringVectorDataTypeID: "StringVectorData",
	V3fVectorDataTypeID:    "V3fVectorData",
	V3dVectorDataTypeID:    "V3dVectorData",
	CompoundDataTypeID:     "CompoundData",
	CompoundObjectTypeID:   "CompoundObject",
	SpherePrimitiveTypeID:  "SpherePrimitive",
	PointsPrimitiveTypeID:  "PointsPrimitive",
}

// String returns the name of a built in type, or a numeric form for ids this package does not
// define itself.
func (id TypeID) String() string {
	if s, ok := TypeIDToString[id]; ok {
		return s
	}
	return "TypeID(" + strconv.FormatUint(uint64(id), 10) + ")"
}
