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

import errors "gopkg.in/src-d/go-errors.v1"

// ErrUnknownType is returned when a type id or type name has never been registered.
var ErrUnknownType = errors.NewKind("object: unknown type %v")

// ErrUnsupportedVersion is returned for a registered type read at a version it never emitted.
var ErrUnsupportedVersion = errors.NewKind("object: %s does not support version %d")

var ErrDuplicateRegistration = errors.NewKind("object: %s version %d is already registered")

var ErrTypeNameConflict = errors.NewKind("object: cannot register %s as %q: %s")
