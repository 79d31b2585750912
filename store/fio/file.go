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

// Package fio implements IndexedIO over a single binary file.
//
// A container is written to a scratch file next to its target and moved into place when the
// last handle of the writing session is closed, so a reader never observes a partially written
// container and a failed session never damages an existing one. See format.go for the layout.
package fio

import (
	"os"
	"sync/atomic"

	"github.com/dustin/go-humanize"
	"github.com/edsrzf/mmap-go"
	"github.com/sirupsen/logrus"

	"github.com/dolthub/cortex/store/indexedio"
)

// Options control how containers are opened.
type Options struct {
	// LockWriters holds a file lock on <path>.lock for the lifetime of a Write or Append
	// session, so that a second writer fails with ErrLocked instead of racing the first.
	LockWriters bool

	// SyncOnCommit fsyncs the container, and its directory, before the session completes.
	SyncOnCommit bool

	// Logger receives debug output. Defaults to the logrus standard logger.
	Logger *logrus.Entry
}

// DefaultOptions returns the options used by Open.
func DefaultOptions() Options {
	return Options{LockWriters: true, SyncOnCommit: true}
}

func (opts Options) logger() *logrus.Entry {
	if opts.Logger != nil {
		return opts.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// Open opens the container at |path| with DefaultOptions and returns its root directory.
func Open(path string, mode indexedio.OpenMode) (indexedio.IndexedIO, error) {
	return OpenWithOptions(path, mode, DefaultOptions())
}

// OpenWithOptions opens the container at |path| and returns its root directory.
//
// Read maps an existing container and loads its whole index. Write starts a new, empty
// container which replaces any existing file once every handle is closed. Append starts from
// the contents of an existing container, or from an empty one if |path| does not exist.
func OpenWithOptions(path string, mode indexedio.OpenMode, opts Options) (indexedio.IndexedIO, error) {
	var fd *fileDevice
	var err error
	switch mode {
	case indexedio.Read:
		fd, err = openReader(path, opts)
	case indexedio.Write, indexedio.Append:
		fd, err = openWriter(path, mode, opts)
	default:
		return nil, indexedio.ErrInvalidMode.New("opening "+path, mode)
	}
	if err != nil {
		return nil, err
	}

	fd.log.Debug("opened container")
	return indexedio.NewHandle(fd, fd.root), nil
}

type fileDevice struct {
	path string
	mode indexedio.OpenMode
	opts Options
	log  *logrus.Entry
	root *indexedio.Node

	refs      atomic.Int32
	discarded atomic.Bool

	// Read mode
	mapped *mappedFile

	// Write and Append modes
	scratch *scratchFile
	lock    *writerLock
	dataEnd uint64
	failed  error
}

var _ indexedio.Device = (*fileDevice)(nil)

func newFileDevice(path string, mode indexedio.OpenMode, opts Options) *fileDevice {
	return &fileDevice{
		path: path,
		mode: mode,
		opts: opts,
		log:  opts.logger().WithFields(logrus.Fields{"path": path, "mode": mode.String()}),
	}
}

func openReader(path string, opts Options) (*fileDevice, error) {
	mf, err := mapFile(path)
	if err != nil {
		return nil, err
	}

	root, _, err := loadIndex(mf.data)
	if err != nil {
		_ = mf.close()
		return nil, err
	}

	fd := newFileDevice(path, indexedio.Read, opts)
	fd.mapped = mf
	fd.root = root
	return fd, nil
}

func openWriter(path string, mode indexedio.OpenMode, opts Options) (_ *fileDevice, err error) {
	fd := newFileDevice(path, mode, opts)
	fd.root = indexedio.NewRoot()
	fd.dataEnd = headerSize

	if opts.LockWriters {
		fd.lock, err = acquireWriterLock(path)
		if err != nil {
			return nil, err
		}
	}
	defer func() {
		if err != nil {
			_ = fd.lock.Unlock()
		}
	}()

	fd.scratch, err = newScratchFile(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = fd.scratch.abandon()
		}
	}()

	err = fd.scratch.writeAt(encodeHeader(FormatVersion), 0)
	if err != nil {
		return nil, err
	}

	if mode == indexedio.Append {
		err = fd.loadForAppend()
		if err != nil {
			return nil, err
		}
	}
	return fd, nil
}

// loadForAppend copies the data segment of the existing container into the scratch file and
// adopts its index. Leaf offsets stay valid because the data segment starts at the same offset
// in both files.
func (fd *fileDevice) loadForAppend() error {
	if _, err := os.Stat(fd.path); os.IsNotExist(err) {
		return nil
	}

	mf, err := mapFile(fd.path)
	if err != nil {
		return err
	}
	defer mf.close()

	root, ftr, err := loadIndex(mf.data)
	if err != nil {
		return err
	}

	err = fd.scratch.writeAt(mf.data[headerSize:ftr.indexOffset], headerSize)
	if err != nil {
		return err
	}
	fd.root = root
	fd.dataEnd = ftr.indexOffset
	return nil
}

func (fd *fileDevice) Mode() indexedio.OpenMode {
	return fd.mode
}

func (fd *fileDevice) ReadLeaf(n *indexedio.Node) (any, error) {
	span, ok := n.Payload.(leafSpan)
	if !ok {
		return nil, ErrFormat.New("leaf " + n.Path().String() + " has no data")
	}

	var b []byte
	if fd.mapped != nil {
		b = fd.mapped.data[span.offset : span.offset+span.length]
	} else {
		b = make([]byte, span.length)
		if err := fd.scratch.readAt(b, span.offset); err != nil {
			return nil, err
		}
	}

	e := n.Entry()
	return decodeLeaf(e.DataType, e.ArrayLength, b)
}

func (fd *fileDevice) WriteLeaf(n *indexedio.Node, v any) error {
	if fd.failed != nil {
		return fd.failed
	}

	b, err := encodeLeaf(v)
	if err != nil {
		return err
	}

	err = fd.scratch.writeAt(b, fd.dataEnd)
	if err != nil {
		fd.failed = err
		return err
	}

	n.Payload = leafSpan{offset: fd.dataEnd, length: uint64(len(b))}
	fd.dataEnd += uint64(len(b))
	return nil
}

func (fd *fileDevice) Retain() {
	fd.refs.Add(1)
}

func (fd *fileDevice) Release() error {
	if fd.refs.Add(-1) != 0 {
		return nil
	}

	if fd.mapped != nil {
		fd.log.Debug("closed container")
		return fd.mapped.close()
	}
	return fd.finish()
}

func (fd *fileDevice) Discard() {
	fd.discarded.Store(true)
}

// finish ends a Write or Append session, committing the scratch file over the target unless the
// session was discarded or a write failed.
func (fd *fileDevice) finish() (err error) {
	defer func() {
		uerr := fd.lock.Unlock()
		if err == nil {
			err = uerr
		}
	}()

	if fd.discarded.Load() || fd.failed != nil {
		err = fd.scratch.abandon()
		fd.log.Debug("discarded container")
		if fd.failed != nil {
			return fd.failed
		}
		return err
	}

	idx, err := encodeIndex(fd.root)
	if err != nil {
		_ = fd.scratch.abandon()
		return err
	}

	ftr := footer{
		indexOffset:   fd.dataEnd,
		indexLength:   uint64(len(idx)),
		indexChecksum: indexChecksum(idx),
		formatVersion: FormatVersion,
	}
	tail := append(idx, ftr.encode()...)
	err = fd.scratch.writeAt(tail, fd.dataEnd)
	if err != nil {
		_ = fd.scratch.abandon()
		return err
	}

	err = fd.scratch.commit(fd.path, fd.opts.SyncOnCommit)
	if err != nil {
		return err
	}

	fd.log.WithFields(logrus.Fields{
		"data":  humanize.Bytes(fd.dataEnd - headerSize),
		"index": humanize.Bytes(uint64(len(idx))),
	}).Debug("committed container")
	return nil
}

type mappedFile struct {
	f    *os.File
	data mmap.MMap
}

func mapFile(path string) (*mappedFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, indexedio.ErrIO.Wrap(err, path)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, indexedio.ErrIO.Wrap(err, path)
	}
	if st.IsDir() || st.Size() < headerSize+footerSize {
		_ = f.Close()
		return nil, ErrFormat.New(path + " is too small to be a container")
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		_ = f.Close()
		return nil, indexedio.ErrIO.Wrap(err, path)
	}
	return &mappedFile{f: f, data: data}, nil
}

func (mf *mappedFile) close() error {
	err := mf.data.Unmap()
	cerr := mf.f.Close()
	if err == nil {
		err = cerr
	}
	if err != nil {
		return indexedio.ErrIO.Wrap(err, mf.f.Name())
	}
	return nil
}

// loadIndex validates the header and footer of a complete container image and decodes its index.
func loadIndex(data []byte) (*indexedio.Node, footer, error) {
	size := uint64(len(data))
	version, err := parseHeader(data)
	if err != nil {
		return nil, footer{}, err
	}

	ftr, err := parseFooter(data[size-footerSize:], size)
	if err != nil {
		return nil, footer{}, err
	}
	if ftr.formatVersion != version {
		return nil, footer{}, ErrFormat.New("header and footer versions differ")
	}

	idx := data[ftr.indexOffset : ftr.indexOffset+ftr.indexLength]
	if indexChecksum(idx) != ftr.indexChecksum {
		return nil, footer{}, ErrFormat.New("index checksum mismatch")
	}

	root, err := decodeIndex(version, idx, ftr.indexOffset)
	if err != nil {
		return nil, footer{}, err
	}
	return root, ftr, nil
}
