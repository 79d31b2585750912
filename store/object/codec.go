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
	"github.com/dolthub/cortex/store/hash"
)

// elem is the set of value types held by SimpleData and VectorData.
type elem interface {
	bool | int32 | uint32 | int64 | uint64 | float32 | float64 | string | V3f | V3d | Box3d | M44d
}

// elemCodec maps an element type onto IndexedIO leaves and into content hashes.
type elemCodec[T elem] struct {
	dataID   TypeID
	vectorID TypeID

	toLeaf    func(T) any
	fromLeaf  func(any) (T, bool)
	toArray   func([]T) any
	fromArray func(any) ([]T, bool)
	hashInto  func(*hash.Hasher, T)
}

type native interface {
	int32 | uint32 | int64 | uint64 | float32 | float64 | string
}

// nativeCodec is the codec for types IndexedIO stores directly.
func nativeCodec[T native](dataID, vectorID TypeID, hashInto func(*hash.Hasher, T)) *elemCodec[T] {
	return &elemCodec[T]{
		dataID:   dataID,
		vectorID: vectorID,
		toLeaf:   func(v T) any { return v },
		fromLeaf: func(v any) (T, bool) {
			t, ok := v.(T)
			return t, ok
		},
		toArray: func(vs []T) any { return vs },
		fromArray: func(v any) ([]T, bool) {
			t, ok := v.([]T)
			return t, ok
		},
		hashInto: hashInto,
	}
}

type float interface {
	float32 | float64
}

// flatCodec is the codec for fixed size compounds of floats, stored as float arrays of |width|
// components per element.
func flatCodec[T elem, F float](dataID, vectorID TypeID, width int, flatten func([]F, T) []F, unflatten func([]F) T, hashInto func(*hash.Hasher, T)) *elemCodec[T] {
	return &elemCodec[T]{
		dataID:   dataID,
		vectorID: vectorID,
		toLeaf:   func(v T) any { return flatten(make([]F, 0, width), v) },
		fromLeaf: func(v any) (T, bool) {
			f, ok := v.([]F)
			if !ok || len(f) != width {
				var zero T
				return zero, false
			}
			return unflatten(f), true
		},
		toArray: func(vs []T) any {
			f := make([]F, 0, width*len(vs))
			for _, v := range vs {
				f = flatten(f, v)
			}
			return f
		},
		fromArray: func(v any) ([]T, bool) {
			f, ok := v.([]F)
			if !ok || len(f)%width != 0 {
				return nil, false
			}
			out := make([]T, len(f)/width)
			for i := range out {
				out[i] = unflatten(f[i*width : (i+1)*width])
			}
			return out, true
		},
		hashInto: hashInto,
	}
}

var boolCodec = &elemCodec[bool]{
	dataID:   BoolDataTypeID,
	vectorID: BoolVectorDataTypeID,
	toLeaf: func(v bool) any {
		if v {
			return uint8(1)
		}
		return uint8(0)
	},
	fromLeaf: func(v any) (bool, bool) {
		u, ok := v.(uint8)
		return u != 0, ok
	},
	toArray: func(vs []bool) any {
		out := make([]uint8, len(vs))
		for i, v := range vs {
			if v {
				out[i] = 1
			}
		}
		return out
	},
	fromArray: func(v any) ([]bool, bool) {
		u, ok := v.([]uint8)
		if !ok {
			return nil, false
		}
		out := make([]bool, len(u))
		for i := range u {
			out[i] = u[i] != 0
		}
		return out, true
	},
	hashInto: (*hash.Hasher).AppendBool,
}

var (
	intCodec    = nativeCodec(IntDataTypeID, IntVectorDataTypeID, (*hash.Hasher).AppendInt32)
	uintCodec   = nativeCodec(UIntDataTypeID, UIntVectorDataTypeID, (*hash.Hasher).AppendUint32)
	int64Codec  = nativeCodec(Int64DataTypeID, Int64VectorDataTypeID, (*hash.Hasher).AppendInt64)
	uint64Codec = nativeCodec(UInt64DataTypeID, UInt64VectorDataTypeID, (*hash.Hasher).AppendUint64)
	floatCodec  = nativeCodec(FloatDataTypeID, FloatVectorDataTypeID, (*hash.Hasher).AppendFloat32)
	doubleCodec = nativeCodec(DoubleDataTypeID, DoubleVectorDataTypeID, (*hash.Hasher).AppendFloat64)
	stringCodec = nativeCodec(StringDataTypeID, StringVectorDataTypeID, (*hash.Hasher).AppendString)
)

var v3fCodec = flatCodec(V3fDataTypeID, V3fVectorDataTypeID, 3,
	func(f []float32, v V3f) []float32 { return append(f, v.X, v.Y, v.Z) },
	func(f []float32) V3f { return V3f{f[0], f[1], f[2]} },
	hashV3f)

var v3dCodec = flatCodec(V3dDataTypeID, V3dVectorDataTypeID, 3,
	appendV3d,
	func(f []float64) V3d { return V3d{f[0], f[1], f[2]} },
	hashV3d)

var box3dCodec = flatCodec(Box3dDataTypeID, InvalidTypeID, 6,
	func(f []float64, b Box3d) []float64 { return appendV3d(appendV3d(f, b.Min), b.Max) },
	func(f []float64) Box3d {
		return Box3d{Min: V3d{f[0], f[1], f[2]}, Max: V3d{f[3], f[4], f[5]}}
	},
	func(h *hash.Hasher, b Box3d) {
		hashV3d(h, b.Min)
		hashV3d(h, b.Max)
	})

var m44dCodec = flatCodec(M44dDataTypeID, InvalidTypeID, 16,
	func(f []float64, m M44d) []float64 { return append(f, m[:]...) },
	func(f []float64) M44d { return M44d(f) },
	func(h *hash.Hasher, m M44d) {
		for _, v := range m {
			h.AppendFloat64(v)
		}
	})

func appendV3d(f []float64, v V3d) []float64 {
	return append(f, v.X, v.Y, v.Z)
}

func hashV3f(h *hash.Hasher, v V3f) {
	h.AppendFloat32(v.X)
	h.AppendFloat32(v.Y)
	h.AppendFloat32(v.Z)
}

func hashV3d(h *hash.Hasher, v V3d) {
	h.AppendFloat64(v.X)
	h.AppendFloat64(v.Y)
	h.AppendFloat64(v.Z)
}

func codecFor[T elem]() *elemCodec[T] {
	var c any
	switch any(*new(T)).(type) {
	case bool:
		c = boolCodec
	case int32:
		c = intCodec
	case uint32:
		c = uintCodec
	case int64:
		c = int64Codec
	case uint64:
		c = uint64Codec
	case float32:
		c = floatCodec
	case float64:
		c = doubleCodec
	case string:
		c = stringCodec
	case V3f:
		c = v3fCodec
	case V3d:
		c = v3dCodec
	case Box3d:
		c = box3dCodec
	case M44d:
		c = m44dCodec
	}
	return c.(*elemCodec[T])
}
