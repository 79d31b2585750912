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
)

// EntryType distinguishes directories from leaves.
type EntryType uint8

const (
	Directory EntryType = 1
	File      EntryType = 2
)

func (et EntryType) String() string {
	switch et {
	case Directory:
		return "Directory"
	case File:
		return "File"
	default:
		return "Invalid"
	}
}

// DataType is the primitive kind stored in a leaf. The numeric values are part of the on-disk
// format of every container and must never be reassigned.
type DataType uint8

const (
	InvalidDataType  DataType = 0
	Int8             DataType = 1
	Int8Array        DataType = 2
	Uint8            DataType = 3
	Uint8Array       DataType = 4
	Int16            DataType = 5
	Int16Array       DataType = 6
	Uint16           DataType = 7
	Uint16Array      DataType = 8
	Int32            DataType = 9
	Int32Array       DataType = 10
	Uint32           DataType = 11
	Uint32Array      DataType = 12
	Int64            DataType = 13
	Int64Array       DataType = 14
	Uint64           DataType = 15
	Uint64Array      DataType = 16
	Float32          DataType = 17
	Float32Array     DataType = 18
	Float64          DataType = 19
	Float64Array     DataType = 20
	String           DataType = 21
	StringArray      DataType = 22
	maxValidDataType          = StringArray
)

var dataTypeToString = map[DataType]string{
	InvalidDataType: "Invalid",
	Int8:            "Int8",
	Int8Array:       "Int8Array",
	Uint8:           "Uint8",
	Uint8Array:      "Uint8Array",
	Int16:           "Int16",
	Int16Array:      "Int16Array",
	Uint16:          "Uint16",
	Uint16Array:     "Uint16Array",
	Int32:           "Int32",
	Int32Array:      "Int32Array",
	Uint32:          "Uint32",
	Uint32Array:     "Uint32Array",
	Int64:           "Int64",
	Int64Array:      "Int64Array",
	Uint64:          "Uint64",
	Uint64Array:     "Uint64Array",
	Float32:         "Float32",
	Float32Array:    "Float32Array",
	Float64:         "Float64",
	Float64Array:    "Float64Array",
	String:          "String",
	StringArray:     "StringArray",
}

// String returns the name of the data type.
func (dt DataType) String() string {
	if s, ok := dataTypeToString[dt]; ok {
		return s
	}
	return "Unknown"
}

// IsValid returns true for data types that may be stored in a leaf.
func (dt DataType) IsValid() bool {
	return dt > InvalidDataType && dt <= maxValidDataType
}

// IsArray returns true if the data type holds a homogeneous array.
func (dt DataType) IsArray() bool {
	return dt.IsValid() && dt%2 == 0
}

// ElementSize returns the width in bytes of one element, or 0 for strings.
func (dt DataType) ElementSize() int {
	switch dt {
	case Int8, Int8Array, Uint8, Uint8Array:
		return 1
	case Int16, Int16Array, Uint16, Uint16Array:
		return 2
	case Int32, Int32Array, Uint32, Uint32Array, Float32, Float32Array:
		return 4
	case Int64, Int64Array, Uint64, Uint64Array, Float64, Float64Array:
		return 8
	default:
		return 0
	}
}

// Entry describes a single named entry of a directory.
type Entry struct {
	ID          string
	EntryType   EntryType
	DataType    DataType
	ArrayLength uint64
}

// IsArray returns true if the entry is a leaf holding an array.
func (e Entry) IsArray() bool {
	return e.EntryType == File && e.DataType.IsArray()
}

// DataTypeOf returns the leaf data type used to store |v| along with its array length. Scalars
// have an array length of 0. |v| must be one of the fixed width numeric types, string, or a
// slice of one of those.
func DataTypeOf(v any) (DataType, uint64, error) {
	switch t := v.(type) {
	case int8:
		return Int8, 0, nil
	case []int8:
		return Int8Array, uint64(len(t)), nil
	case uint8:
		return Uint8, 0, nil
	case []uint8:
		return Uint8Array, uint64(len(t)), nil
	case int16:
		return Int16, 0, nil
	case []int16:
		return Int16Array, uint64(len(t)), nil
	case uint16:
		return Uint16, 0, nil
	case []uint16:
		return Uint16Array, uint64(len(t)), nil
	case int32:
		return Int32, 0, nil
	case []int32:
		return Int32Array, uint64(len(t)), nil
	case uint32:
		return Uint32, 0, nil
	case []uint32:
		return Uint32Array, uint64(len(t)), nil
	case int64:
		return Int64, 0, nil
	case []int64:
		return Int64Array, uint64(len(t)), nil
	case uint64:
		return Uint64, 0, nil
	case []uint64:
		return Uint64Array, uint64(len(t)), nil
	case float32:
		return Float32, 0, nil
	case []float32:
		return Float32Array, uint64(len(t)), nil
	case float64:
		return Float64, 0, nil
	case []float64:
		return Float64Array, uint64(len(t)), nil
	case string:
		return String, 0, nil
	case []string:
		return StringArray, uint64(len(t)), nil
	default:
		return InvalidDataType, 0, ErrUnsupportedValue.New(v)
	}
}

// CopyValue returns a copy of a leaf value that shares no backing array with |v|.
func CopyValue(v any) any {
	switch t := v.(type) {
	case []int8:
		return slices.Clone(t)
	case []uint8:
		return slices.Clone(t)
	case []int16:
		return slices.Clone(t)
	case []uint16:
		return slices.Clone(t)
	case []int32:
		return slices.Clone(t)
	case []uint32:
		return slices.Clone(t)
	case []int64:
		return slices.Clone(t)
	case []uint64:
		return slices.Clone(t)
	case []float32:
		return slices.Clone(t)
	case []float64:
		return slices.Clone(t)
	case []string:
		return slices.Clone(t)
	default:
		return v
	}
}
