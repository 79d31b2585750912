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

package scene

import errors "gopkg.in/src-d/go-errors.v1"

// ErrUnknownFormat is returned by Create for a file extension no format is registered for.
var ErrUnknownFormat = errors.NewKind("scene: no format registered for %q")

// ErrInvalidTime is returned for sample times that have no stable key, NaN and infinities.
var ErrInvalidTime = errors.NewKind("scene: invalid sample time %v")

var ErrSchemaMismatch = errors.NewKind("scene: %s holds a %q container, not %q")

var ErrSchemaVersion = errors.NewKind("scene: %s was written by %s version %d, newer than %d")

var ErrDuplicateFormat = errors.NewKind("scene: format %q is already registered")
