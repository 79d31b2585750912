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

import (
	"github.com/sirupsen/logrus"

	"github.com/dolthub/cortex/store/fio"
	"github.com/dolthub/cortex/store/object"
)

// Options configure how scene files are opened.
type Options struct {
	// File configures the underlying container.
	File fio.Options

	// Registry resolves the objects stored in the scene. Defaults to object.DefaultRegistry.
	Registry *object.Registry

	// Logger receives debug output. Defaults to the logrus standard logger.
	Logger *logrus.Entry
}

func DefaultOptions() Options {
	return Options{
		File:     fio.DefaultOptions(),
		Registry: object.DefaultRegistry(),
	}
}

func (opts Options) registry() *object.Registry {
	if opts.Registry != nil {
		return opts.Registry
	}
	return object.DefaultRegistry()
}

func (opts Options) logger() *logrus.Entry {
	if opts.Logger != nil {
		return opts.Logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

// fileOptions passes the scene logger down to the container unless one was set explicitly.
func (opts Options) fileOptions() fio.Options {
	fo := opts.File
	if fo.Logger == nil {
		fo.Logger = opts.Logger
	}
	return fo
}
