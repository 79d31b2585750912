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
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/dolthub/cortex/store/indexedio"
)

const scratchSuffix = ".tmp"

// scratchFile is where a writer assembles a container before it is moved over the target.
// It lives in the target's directory so that the final rename does not cross filesystems.
type scratchFile struct {
	f    *os.File
	name string
}

func newScratchFile(target string) (*scratchFile, error) {
	dir, base := filepath.Split(target)
	name := filepath.Join(dir, "."+base+"."+uuid.NewString()+scratchSuffix)

	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, indexedio.ErrIO.Wrap(err, name)
	}
	return &scratchFile{f: f, name: name}, nil
}

// isScratchFile reports whether |name| is a scratch file for the container |target|.
func isScratchFile(name, target string) bool {
	base := filepath.Base(target)
	name = filepath.Base(name)
	return strings.HasPrefix(name, "."+base+".") && strings.HasSuffix(name, scratchSuffix)
}

func (sf *scratchFile) writeAt(b []byte, off uint64) error {
	_, err := sf.f.WriteAt(b, int64(off))
	if err != nil {
		return indexedio.ErrIO.Wrap(err, sf.name)
	}
	return nil
}

func (sf *scratchFile) readAt(b []byte, off uint64) error {
	_, err := sf.f.ReadAt(b, int64(off))
	if err != nil {
		return indexedio.ErrIO.Wrap(err, sf.name)
	}
	return nil
}

// commit closes the scratch file and renames it to |target|, replacing any existing file.
func (sf *scratchFile) commit(target string, sync bool) (err error) {
	if sync {
		err = sf.f.Sync()
		if err != nil {
			_ = sf.abandon()
			return indexedio.ErrIO.Wrap(err, sf.name)
		}
	}

	err = sf.f.Close()
	if err != nil {
		_ = os.Remove(sf.name)
		return indexedio.ErrIO.Wrap(err, sf.name)
	}

	err = os.Rename(sf.name, target)
	if err != nil {
		_ = os.Remove(sf.name)
		return indexedio.ErrIO.Wrap(err, target)
	}

	if sync {
		syncDir(filepath.Dir(target))
	}
	return nil
}

// abandon closes and deletes the scratch file.
func (sf *scratchFile) abandon() error {
	_ = sf.f.Close()
	err := os.Remove(sf.name)
	if err != nil && !os.IsNotExist(err) {
		return indexedio.ErrIO.Wrap(err, sf.name)
	}
	return nil
}

// syncDir makes a rename durable. Not every platform supports syncing a directory, so failures
// are ignored.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
