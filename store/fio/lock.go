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
	"github.com/dolthub/fslock"

	"github.com/dolthub/cortex/store/indexedio"
)

const lockSuffix = ".lock"

// writerLock guards a container path against concurrent writers, in this and other processes.
type writerLock struct {
	path string
	lck  *fslock.Lock
}

// acquireWriterLock takes the lock for the container at |path| without blocking.
func acquireWriterLock(path string) (*writerLock, error) {
	lck := fslock.New(path + lockSuffix)
	err := lck.TryLock()
	if err != nil {
		if err == fslock.ErrLocked {
			return nil, ErrLocked.New(path)
		}
		return nil, indexedio.ErrIO.Wrap(err, path+lockSuffix)
	}
	return &writerLock{path: path, lck: lck}, nil
}

// Unlock releases the lock. Unlocking a nil lock is a no-op.
func (wl *writerLock) Unlock() error {
	if wl == nil {
		return nil
	}
	err := wl.lck.Unlock()
	if err != nil {
		return indexedio.ErrIO.Wrap(err, wl.path+lockSuffix)
	}
	return nil
}
