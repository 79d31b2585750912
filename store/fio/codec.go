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

package fio

import (
	"encoding/binary"
	"math"

	"github.com/dolthub/cortex/store/indexedio"
)

// encodeLeaf returns the data segment encoding of a leaf value. Scalars are stored as a single
// fixed width big endian value. Arrays are stored as a uint64 element count followed by the raw
// elements. Strings are stored as a uint32 byte length followed by their UTF-8 bytes.
func encodeLeaf(v any) ([]byte, error) {
	switch t := v.(type) {
	case int8:
		return []byte{byte(t)}, nil
	case uint8:
		return []byte{t}, nil
	case int16:
		return binary.BigEndian.AppendUint16(nil, uint16(t)), nil
	case uint16:
		return binary.BigEndian.AppendUint16(nil, t), nil
	case int32:
		return binary.BigEndian.AppendUint32(nil, uint32(t)), nil
	case uint32:
		return binary.BigEndian.AppendUint32(nil, t), nil
	case int64:
		return binary.BigEndian.AppendUint64(nil, uint64(t)), nil
	case uint64:
		return binary.BigEndian.AppendUint64(nil, t), nil
	case float32:
		return binary.BigEndian.AppendUint32(nil, math.Float32bits(t)), nil
	case float64:
		return binary.BigEndian.AppendUint64(nil, math.Float64bits(t)), nil
	case string:
		return appendString(make([]byte, 0, uint32Size+len(t)), t), nil
	case []int8:
		return appendArray(t, 1, func(b []byte, e int8) []byte { return append(b, byte(e)) }), nil
	case []uint8:
		return appendArray(t, 1, func(b []byte, e uint8) []byte { return append(b, e) }), nil
	case []int16:
		return appendArray(t, 2, func(b []byte, e int16) []byte { return binary.BigEndian.AppendUint16(b, uint16(e)) }), nil
	case []uint16:
		return appendArray(t, 2, binary.BigEndian.AppendUint16), nil
	case []int32:
		return appendArray(t, 4, func(b []byte, e int32) []byte { return binary.BigEndian.AppendUint32(b, uint32(e)) }), nil
	case []uint32:
		return appendArray(t, 4, binary.BigEndian.AppendUint32), nil
	case []int64:
		return appendArray(t, 8, func(b []byte, e int64) []byte { return binary.BigEndian.AppendUint64(b, uint64(e)) }), nil
	case []uint64:
		return appendArray(t, 8, binary.BigEndian.AppendUint64), nil
	case []float32:
		return appendArray(t, 4, func(b []byte, e float32) []byte { return binary.BigEndian.AppendUint32(b, math.Float32bits(e)) }), nil
	case []float64:
		return appendArray(t, 8, func(b []byte, e float64) []byte { return binary.BigEndian.AppendUint64(b, math.Float64bits(e)) }), nil
	case []string:
		size := uint64Size
		for _, s := range t {
			size += uint32Size + len(s)
		}
		return appendArray(t, 0, appendString, size), nil
	default:
		return nil, indexedio.ErrUnsupportedValue.New(v)
	}
}

func appendString(b []byte, s string) []byte {
	b = binary.BigEndian.AppendUint32(b, uint32(len(s)))
	return append(b, s...)
}

// appendArray encodes the element count followed by each element. |capHint| overrides the
// computed buffer size for variable width elements.
func appendArray[T any](elems []T, width int, appendElem func([]byte, T) []byte, capHint ...int) []byte {
	size := uint64Size + width*len(elems)
	if len(capHint) > 0 {
		size = capHint[0]
	}
	b := make([]byte, 0, size)
	b = binary.BigEndian.AppendUint64(b, uint64(len(elems)))
	for _, e := range elems {
		b = appendElem(b, e)
	}
	return b
}

// decodeLeaf decodes a data segment encoding written by encodeLeaf. The returned value never
// aliases |b|.
func decodeLeaf(dt indexedio.DataType, arrayLength uint64, b []byte) (any, error) {
	if !dt.IsArray() {
		return decodeScalar(dt, b)
	}

	if len(b) < uint64Size {
		return nil, ErrFormat.New("truncated array leaf")
	}
	count := binary.BigEndian.Uint64(b)
	if count != arrayLength {
		return nil, ErrFormat.New("array leaf length does not match index")
	}
	b = b[uint64Size:]

	if dt == indexedio.StringArray {
		return decodeStrings(count, b)
	}

	width := uint64(dt.ElementSize())
	if count > uint64(len(b))/width || count*width != uint64(len(b)) {
		return nil, ErrFormat.New("array leaf size does not match element count")
	}

	switch dt {
	case indexedio.Int8Array:
		return decodeArray(b, count, 1, func(e []byte) int8 { return int8(e[0]) }), nil
	case indexedio.Uint8Array:
		out := make([]uint8, count)
		copy(out, b)
		return out, nil
	case indexedio.Int16Array:
		return decodeArray(b, count, 2, func(e []byte) int16 { return int16(binary.BigEndian.Uint16(e)) }), nil
	case indexedio.Uint16Array:
		return decodeArray(b, count, 2, binary.BigEndian.Uint16), nil
	case indexedio.Int32Array:
		return decodeArray(b, count, 4, func(e []byte) int32 { return int32(binary.BigEndian.Uint32(e)) }), nil
	case indexedio.Uint32Array:
		return decodeArray(b, count, 4, binary.BigEndian.Uint32), nil
	case indexedio.Int64Array:
		return decodeArray(b, count, 8, func(e []byte) int64 { return int64(binary.BigEndian.Uint64(e)) }), nil
	case indexedio.Uint64Array:
		return decodeArray(b, count, 8, binary.BigEndian.Uint64), nil
	case indexedio.Float32Array:
		return decodeArray(b, count, 4, func(e []byte) float32 { return math.Float32frombits(binary.BigEndian.Uint32(e)) }), nil
	case indexedio.Float64Array:
		return decodeArray(b, count, 8, func(e []byte) float64 { return math.Float64frombits(binary.BigEndian.Uint64(e)) }), nil
	default:
		return nil, ErrFormat.New("unknown array data type " + dt.String())
	}
}

func decodeArray[T any](b []byte, count uint64, width int, decodeElem func([]byte) T) []T {
	out := make([]T, count)
	for i := range out {
		out[i] = decodeElem(b[i*width : (i+1)*width])
	}
	return out
}

func decodeStrings(count uint64, b []byte) (any, error) {
	// every string needs at least its length prefix
	if count > uint64(len(b))/uint32Size {
		return nil, ErrFormat.New("string array element count exceeds leaf size")
	}
	out := make([]string, count)
	for i := range out {
		s, rest, err := readString(b)
		if err != nil {
			return nil, err
		}
		out[i] = s
		b = rest
	}
	if len(b) != 0 {
		return nil, ErrFormat.New("trailing bytes after string array")
	}
	return out, nil
}

func readString(b []byte) (string, []byte, error) {
	if len(b) < uint32Size {
		return "", nil, ErrFormat.New("truncated string length")
	}
	n := uint64(binary.BigEndian.Uint32(b))
	b = b[uint32Size:]
	if n > uint64(len(b)) {
		return "", nil, ErrFormat.New("truncated string")
	}
	return string(b[:n]), b[n:], nil
}

func decodeScalar(dt indexedio.DataType, b []byte) (any, error) {
	if dt == indexedio.String {
		s, rest, err := readString(b)
		if err != nil {
			return nil, err
		}
		if len(rest) != 0 {
			return nil, ErrFormat.New("trailing bytes after string")
		}
		return s, nil
	}

	if len(b) != dt.ElementSize() {
		return nil, ErrFormat.New("scalar leaf size does not match data type " + dt.String())
	}

	switch dt {
	case indexedio.Int8:
		return int8(b[0]), nil
	case indexedio.Uint8:
		return b[0], nil
	case indexedio.Int16:
		return int16(binary.BigEndian.Uint16(b)), nil
	case indexedio.Uint16:
		return binary.BigEndian.Uint16(b), nil
	case indexedio.Int32:
		return int32(binary.BigEndian.Uint32(b)), nil
	case indexedio.Uint32:
		return binary.BigEndian.Uint32(b), nil
	case indexedio.Int64:
		return int64(binary.BigEndian.Uint64(b)), nil
	case indexedio.Uint64:
		return binary.BigEndian.Uint64(b), nil
	case indexedio.Float32:
		return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
	case indexedio.Float64:
		return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
	default:
		return nil, ErrFormat.New("unknown scalar data type " + dt.String())
	}
}
