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
	errors "gopkg.in/src-d/go-errors.v1"
)

// ErrPathNotFound is returned when navigating to, or reading, an entry that does not exist.
var ErrPathNotFound = errors.NewKind("indexedio: path not found: %s")

// ErrTypeMismatch is returned when an entry exists but is not of the requested kind, such as
// reading a directory as a leaf, or reading an int32 leaf as a float64.
var ErrTypeMismatch = errors.NewKind("indexedio: type mismatch at %s: %s")

// ErrDuplicateName is returned when creating an entry whose name is already taken by a sibling.
var ErrDuplicateName = errors.NewKind("indexedio: entry already exists: %s")

// ErrInvalidMode is returned when a mutation is attempted through a handle that does not permit it.
var ErrInvalidMode = errors.NewKind("indexedio: %s is not permitted in %s mode")

// ErrInvalidName is returned for entry names that are empty or contain a path separator.
var ErrInvalidName = errors.NewKind("indexedio: invalid entry name %q")

// ErrUnsupportedValue is returned when writing a Go value that has no leaf encoding.
var ErrUnsupportedValue = errors.NewKind("indexedio: unsupported leaf value of type %T")

// ErrHandleClosed is returned by any operation on a closed handle.
var ErrHandleClosed = errors.NewKind("indexedio: handle for %s is closed")

// ErrIO wraps failures of the underlying storage.
var ErrIO = errors.NewKind("indexedio: i/o error on %s")
