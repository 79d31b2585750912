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
	"bytes"
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
	errors "gopkg.in/src-d/go-errors.v1"
)

/*
A container file is laid out as follows. All integers are big endian.

	+--------------------+  offset 0
	| header (16 bytes)  |  magic [8] | format version u32 | flags u32
	+--------------------+  offset 16
	| data segment       |  leaf payloads, in the order they were written
	+--------------------+  footer.indexOffset
	| index segment      |  node records, depth first
	+--------------------+  footer.indexOffset + footer.indexLength
	| footer (32 bytes)  |  index offset u64 | index length u64 | index xxhash64 u64 |
	|                    |  format version u32 | signature [4]
	+--------------------+  EOF

A node record is:

	entry type u8 | name length u16 | name bytes |
	  directory: child count u32 | child records...
	  file:      data type u8 | array length u64 | data offset u64 | data length u64

The root is stored as a directory record with an empty name.
*/

const (
	uint16Size = 2
	uint32Size = 4
	uint64Size = 8

	fileMagic     = "CORTXFIO"
	fileSignature = "CXIX"

	// sizes are untyped so they combine with int64 file sizes and uint64 offsets
	magicSize     = 8
	signatureSize = 4

	headerSize = magicSize + uint32Size + uint32Size
	footerSize = 3*uint64Size + uint32Size + signatureSize

	ftrIndexOffsetOffset = 0
	ftrIndexLengthOffset = ftrIndexOffsetOffset + uint64Size
	ftrChecksumOffset    = ftrIndexLengthOffset + uint64Size
	ftrVersionOffset     = ftrChecksumOffset + uint64Size
	ftrSigOffset         = ftrVersionOffset + uint32Size
)

const (
	// formatVersion1 is the first container layout.
	formatVersion1 uint32 = 1

	// FormatVersion is the version written by this package. Readers accept every version from
	// formatVersion1 up to and including FormatVersion.
	FormatVersion = formatVersion1
)

// ErrFormat is returned when a container is corrupt or was written in a format this package
// does not understand.
var ErrFormat = errors.NewKind("fio: invalid container: %s")

// ErrLocked is returned when opening a container for writing while another writer holds it.
var ErrLocked = errors.NewKind("fio: %s is locked by another writer")

type footer struct {
	indexOffset   uint64
	indexLength   uint64
	indexChecksum uint64
	formatVersion uint32
}

func encodeHeader(version uint32) []byte {
	b := make([]byte, 0, headerSize)
	b = append(b, fileMagic...)
	b = binary.BigEndian.AppendUint32(b, version)
	return binary.BigEndian.AppendUint32(b, 0)
}

func parseHeader(b []byte) (uint32, error) {
	if len(b) < headerSize {
		return 0, ErrFormat.New("truncated header")
	}
	if !bytes.Equal(b[:len(fileMagic)], []byte(fileMagic)) {
		return 0, ErrFormat.New("bad magic")
	}
	version := binary.BigEndian.Uint32(b[len(fileMagic):])
	if err := checkVersion(version); err != nil {
		return 0, err
	}
	return version, nil
}

func checkVersion(version uint32) error {
	if version < formatVersion1 || version > FormatVersion {
		return ErrFormat.New("unsupported format version")
	}
	return nil
}

func (f footer) encode() []byte {
	b := make([]byte, 0, footerSize)
	b = binary.BigEndian.AppendUint64(b, f.indexOffset)
	b = binary.BigEndian.AppendUint64(b, f.indexLength)
	b = binary.BigEndian.AppendUint64(b, f.indexChecksum)
	b = binary.BigEndian.AppendUint32(b, f.formatVersion)
	return append(b, fileSignature...)
}

// parseFooter reads the footer from the tail of a file of |fileSize| bytes and checks that the
// index it describes lies between the header and the footer.
func parseFooter(b []byte, fileSize uint64) (footer, error) {
	if len(b) != footerSize {
		return footer{}, ErrFormat.New("truncated footer")
	}
	if string(b[ftrSigOffset:]) != fileSignature {
		return footer{}, ErrFormat.New("bad footer signature")
	}

	f := footer{
		indexOffset:   binary.BigEndian.Uint64(b[ftrIndexOffsetOffset:]),
		indexLength:   binary.BigEndian.Uint64(b[ftrIndexLengthOffset:]),
		indexChecksum: binary.BigEndian.Uint64(b[ftrChecksumOffset:]),
		formatVersion: binary.BigEndian.Uint32(b[ftrVersionOffset:]),
	}
	if err := checkVersion(f.formatVersion); err != nil {
		return footer{}, err
	}
	if f.indexOffset < headerSize || f.indexOffset > fileSize-footerSize ||
		f.indexLength != fileSize-footerSize-f.indexOffset {
		return footer{}, ErrFormat.New("index span out of range")
	}
	return f, nil
}

// leafSpan is the payload of a file leaf: where its encoding lives in the data segment.
type leafSpan struct {
	offset uint64
	length uint64
}

func indexChecksum(idx []byte) uint64 {
	return xxhash.Sum64(idx)
}
