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

	"github.com/dolthub/cortex/store/indexedio"
)

// encodeIndex serializes the tree below |root| into node records.
func encodeIndex(root *indexedio.Node) ([]byte, error) {
	iw := &indexWriter{}
	if err := iw.writeNode(root); err != nil {
		return nil, err
	}
	return iw.buf, nil
}

type indexWriter struct {
	buf []byte
}

func (iw *indexWriter) writeNode(n *indexedio.Node) error {
	e := n.Entry()
	iw.buf = append(iw.buf, byte(e.EntryType))
	iw.buf = binary.BigEndian.AppendUint16(iw.buf, uint16(len(e.ID)))
	iw.buf = append(iw.buf, e.ID...)

	if e.EntryType == indexedio.File {
		span, ok := n.Payload.(leafSpan)
		if !ok {
			return ErrFormat.New("leaf " + n.Path().String() + " has no data")
		}
		iw.buf = append(iw.buf, byte(e.DataType))
		iw.buf = binary.BigEndian.AppendUint64(iw.buf, e.ArrayLength)
		iw.buf = binary.BigEndian.AppendUint64(iw.buf, span.offset)
		iw.buf = binary.BigEndian.AppendUint64(iw.buf, span.length)
		return nil
	}

	names := n.ChildNames()
	iw.buf = binary.BigEndian.AppendUint32(iw.buf, uint32(len(names)))
	for _, name := range names {
		if err := iw.writeNode(n.Child(name)); err != nil {
			return err
		}
	}
	return nil
}

// decodeIndex parses the node records of a container written with |version|. Every leaf span
// must lie within [headerSize, dataEnd).
func decodeIndex(version uint32, b []byte, dataEnd uint64) (*indexedio.Node, error) {
	switch version {
	case formatVersion1:
		ir := &indexReader{buf: b, dataEnd: dataEnd}
		root := indexedio.NewRoot()
		if err := ir.readRoot(root); err != nil {
			return nil, err
		}
		if ir.pos != len(ir.buf) {
			return nil, ErrFormat.New("trailing bytes after index")
		}
		return root, nil
	default:
		return nil, ErrFormat.New("unsupported format version")
	}
}

type indexReader struct {
	buf     []byte
	pos     int
	dataEnd uint64
}

func (ir *indexReader) next(n int) ([]byte, error) {
	if n > len(ir.buf)-ir.pos {
		return nil, ErrFormat.New("truncated index")
	}
	b := ir.buf[ir.pos : ir.pos+n]
	ir.pos += n
	return b, nil
}

func (ir *indexReader) readUint8() (uint8, error) {
	b, err := ir.next(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (ir *indexReader) readUint16() (uint16, error) {
	b, err := ir.next(uint16Size)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

func (ir *indexReader) readUint32() (uint32, error) {
	b, err := ir.next(uint32Size)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

func (ir *indexReader) readUint64() (uint64, error) {
	b, err := ir.next(uint64Size)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

func (ir *indexReader) readEntryHeader() (indexedio.EntryType, string, error) {
	et, err := ir.readUint8()
	if err != nil {
		return 0, "", err
	}
	nameLen, err := ir.readUint16()
	if err != nil {
		return 0, "", err
	}
	name, err := ir.next(int(nameLen))
	if err != nil {
		return 0, "", err
	}
	return indexedio.EntryType(et), string(name), nil
}

func (ir *indexReader) readRoot(root *indexedio.Node) error {
	et, name, err := ir.readEntryHeader()
	if err != nil {
		return err
	}
	if et != indexedio.Directory || name != "" {
		return ErrFormat.New("index does not start with the root directory")
	}
	return ir.readChildren(root)
}

func (ir *indexReader) readChildren(parent *indexedio.Node) error {
	count, err := ir.readUint32()
	if err != nil {
		return err
	}

	for i := uint32(0); i < count; i++ {
		et, name, err := ir.readEntryHeader()
		if err != nil {
			return err
		}

		switch et {
		case indexedio.Directory:
			child, err := parent.AddDirectory(name)
			if err != nil {
				return ErrFormat.New("bad directory record at " + parent.Path().Child(name).String())
			}
			if err := ir.readChildren(child); err != nil {
				return err
			}

		case indexedio.File:
			if err := ir.readFile(parent, name); err != nil {
				return err
			}

		default:
			return ErrFormat.New("bad entry type")
		}
	}
	return nil
}

func (ir *indexReader) readFile(parent *indexedio.Node, name string) error {
	dt, err := ir.readUint8()
	if err != nil {
		return err
	}
	arrayLength, err := ir.readUint64()
	if err != nil {
		return err
	}
	offset, err := ir.readUint64()
	if err != nil {
		return err
	}
	length, err := ir.readUint64()
	if err != nil {
		return err
	}

	if offset < headerSize || offset > ir.dataEnd || length > ir.dataEnd-offset {
		return ErrFormat.New("leaf data out of range at " + parent.Path().Child(name).String())
	}

	child, err := parent.AddFile(name, indexedio.DataType(dt), arrayLength)
	if err != nil {
		return ErrFormat.New("bad leaf record at " + parent.Path().Child(name).String())
	}
	child.Payload = leafSpan{offset: offset, length: length}
	return nil
}
