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

// Package hash provides the 128-bit content hash used to identify and compare
// stored values without decoding them.
package hash

import (
	"encoding/binary"
	"encoding/hex"
	"math"

	"github.com/zeebo/xxh3"
)

// ByteLen is the number of bytes in a Hash.
const ByteLen = 16

// Hash is a 128-bit content hash.
type Hash [ByteLen]byte

var emptyHash = Hash{}

// Of computes the Hash of |data|.
func Of(data []byte) Hash {
	return Hash(xxh3.Hash128(data).Bytes())
}

// IsEmpty determines if this Hash is equal to the empty hash (all zeroes).
func (h Hash) IsEmpty() bool {
	return h == emptyHash
}

// String returns the lower case hex encoding of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Less compares two hashes byte by byte.
func (h Hash) Less(other Hash) bool {
	for i := range h {
		if h[i] != other[i] {
			return h[i] < other[i]
		}
	}
	return false
}

// Hasher accumulates typed values into a Hash. Values are appended in a fixed
// width big endian form so the result does not depend on the host.
type Hasher struct {
	h   *xxh3.Hasher
	buf [8]byte
}

// NewHasher returns an empty Hasher.
func NewHasher() *Hasher {
	return &Hasher{h: xxh3.New()}
}

func (hr *Hasher) write(b []byte) {
	// xxh3.Hasher.Write never fails
	_, _ = hr.h.Write(b)
}

func (hr *Hasher) AppendBool(v bool) {
	if v {
		hr.AppendUint8(1)
	} else {
		hr.AppendUint8(0)
	}
}

func (hr *Hasher) AppendUint8(v uint8) {
	hr.buf[0] = v
	hr.write(hr.buf[:1])
}

func (hr *Hasher) AppendUint16(v uint16) {
	binary.BigEndian.PutUint16(hr.buf[:2], v)
	hr.write(hr.buf[:2])
}

func (hr *Hasher) AppendUint32(v uint32) {
	binary.BigEndian.PutUint32(hr.buf[:4], v)
	hr.write(hr.buf[:4])
}

func (hr *Hasher) AppendUint64(v uint64) {
	binary.BigEndian.PutUint64(hr.buf[:8], v)
	hr.write(hr.buf[:8])
}

func (hr *Hasher) AppendInt32(v int32) {
	hr.AppendUint32(uint32(v))
}

func (hr *Hasher) AppendInt64(v int64) {
	hr.AppendUint64(uint64(v))
}

func (hr *Hasher) AppendFloat32(v float32) {
	hr.AppendUint32(math.Float32bits(v))
}

func (hr *Hasher) AppendFloat64(v float64) {
	hr.AppendUint64(math.Float64bits(v))
}

// AppendString appends a length prefixed string, so that ("ab", "c") and
// ("a", "bc") hash differently.
func (hr *Hasher) AppendString(s string) {
	hr.AppendUint64(uint64(len(s)))
	hr.write([]byte(s))
}

// AppendBytes appends a length prefixed byte slice.
func (hr *Hasher) AppendBytes(b []byte) {
	hr.AppendUint64(uint64(len(b)))
	hr.write(b)
}

func (hr *Hasher) AppendHash(h Hash) {
	hr.write(h[:])
}

// Sum returns the Hash of everything appended so far. The Hasher may continue
// to be used after calling Sum.
func (hr *Hasher) Sum() Hash {
	return Hash(hr.h.Sum128().Bytes())
}
