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
	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/object"
)

const (
	// SceneCacheExtension is the file extension of SceneCache files.
	SceneCacheExtension = ".scc"

	sceneCacheSchema  = "SceneCache"
	sceneCacheVersion = uint32(1)

	transformEntry = "transform"
	attrEntry      = "attr"
	objectEntry    = "object"
	boundEntry     = "bound"
	tagsEntry      = "tags"
)

/*
SceneCache stores a time sampled scene hierarchy. A file is laid out as

	/header/schema               "SceneCache"
	/header/version              u32
	/root/                       the root location

and every location as

	transform/<time>/            M44dData record
	attr/<name>/<time>/          Object record
	object/<time>/               Object record
	bound/<time>/                Box3dData record
	tags                         string array
	children/<name>/             child location

where <time> is the shortest decimal form of the float64 sample time. Reads are exact: a time
that was never written is not found.
*/
type SceneCache struct {
	loc location
}

var _ SceneInterface = (*SceneCache)(nil)

// OpenSceneCache opens the root location of the SceneCache file at |path|.
func OpenSceneCache(path string, mode indexedio.OpenMode, opts Options) (*SceneCache, error) {
	loc, err := openLocation(path, mode, sceneCacheSchema, sceneCacheVersion, opts)
	if err != nil {
		return nil, err
	}
	return &SceneCache{loc: loc}, nil
}

func (sc *SceneCache) FileName() string {
	return sc.loc.file
}

func (sc *SceneCache) Mode() indexedio.OpenMode {
	return sc.loc.mode()
}

func (sc *SceneCache) Name() string {
	return sc.loc.name()
}

func (sc *SceneCache) Path() []string {
	return sc.loc.scenePath()
}

// ChildNames returns the names of the immediate children in sorted order.
func (sc *SceneCache) ChildNames() ([]string, error) {
	return sc.loc.childNames()
}

func (sc *SceneCache) HasChild(name string) bool {
	return sc.loc.hasChild(name)
}

// Child returns the named child. With NullIfMissing a missing child is returned as nil, and with
// CreateIfMissing it is created.
func (sc *SceneCache) Child(name string, mb indexedio.MissingBehaviour) (SceneInterface, error) {
	loc, ok, err := sc.loc.child(name, mb)
	if err != nil || !ok {
		return nil, err
	}
	return &SceneCache{loc: loc}, nil
}

func (sc *SceneCache) ReadableChild(name string) (SceneInterface, error) {
	return sc.Child(name, indexedio.ThrowIfMissing)
}

// CreateChild adds a new child. It is an error for the child to exist already.
func (sc *SceneCache) CreateChild(name string) (SceneInterface, error) {
	loc, err := sc.loc.createChild(name)
	if err != nil {
		return nil, err
	}
	return &SceneCache{loc: loc}, nil
}

// Scene returns the location at |path|, relative to the root of the file.
func (sc *SceneCache) Scene(path []string, mb indexedio.MissingBehaviour) (SceneInterface, error) {
	loc, ok, err := sc.loc.descendant(path, mb)
	if err != nil || !ok {
		return nil, err
	}
	return &SceneCache{loc: loc}, nil
}

func (sc *SceneCache) WriteTransform(m object.M44d, time float64) error {
	return sc.loc.writeSample(object.NewData(m), time, transformEntry)
}

// ReadTransform returns the transform sampled at |time|. A location without any transform
// samples has the identity transform.
func (sc *SceneCache) ReadTransform(time float64) (object.M44d, error) {
	if !sc.loc.has(transformEntry) {
		return object.IdentityM44d(), nil
	}
	o, err := sc.loc.readSample(time, transformEntry)
	if err != nil {
		return object.M44d{}, err
	}
	m, ok := o.(*object.M44dData)
	if !ok {
		return object.M44d{}, indexedio.ErrTypeMismatch.New(sc.loc.dir.Path().Child(transformEntry), o.TypeName()+" is not a transform")
	}
	return m.Value, nil
}

func (sc *SceneCache) TransformSampleTimes() ([]float64, error) {
	return sc.loc.sampleTimes(transformEntry)
}

func (sc *SceneCache) WriteAttribute(name string, o object.Object, time float64) error {
	if err := indexedio.ValidateName(name); err != nil {
		return err
	}
	return sc.loc.writeSample(o, time, attrEntry, name)
}

func (sc *SceneCache) ReadAttribute(name string, time float64) (object.Object, error) {
	return sc.loc.readSample(time, attrEntry, name)
}

func (sc *SceneCache) HasAttribute(name string) bool {
	return sc.loc.has(attrEntry, name)
}

// AttributeNames returns the names of every attribute in sorted order.
func (sc *SceneCache) AttributeNames() ([]string, error) {
	return sc.loc.entries(attrEntry)
}

func (sc *SceneCache) AttributeSampleTimes(name string) ([]float64, error) {
	if !sc.HasAttribute(name) {
		return nil, indexedio.ErrPathNotFound.New(sc.loc.dir.Path().Child(attrEntry).Child(name))
	}
	return sc.loc.sampleTimes(attrEntry, name)
}

func (sc *SceneCache) WriteObject(o object.Object, time float64) error {
	return sc.loc.writeSample(o, time, objectEntry)
}

func (sc *SceneCache) ReadObject(time float64) (object.Object, error) {
	return sc.loc.readSample(time, objectEntry)
}

func (sc *SceneCache) HasObject() bool {
	return sc.loc.has(objectEntry)
}

func (sc *SceneCache) ObjectSampleTimes() ([]float64, error) {
	return sc.loc.sampleTimes(objectEntry)
}

func (sc *SceneCache) WriteBound(b object.Box3d, time float64) error {
	return sc.loc.writeSample(object.NewData(b), time, boundEntry)
}

// ReadBound returns the bound stored at |time|. Without a stored sample the bound is computed
// from the object at |time| and the bounds of the children, transformed into this location.
func (sc *SceneCache) ReadBound(time float64) (object.Box3d, error) {
	if sc.loc.hasSample(time, boundEntry) {
		o, err := sc.loc.readSample(time, boundEntry)
		if err != nil {
			return object.Box3d{}, err
		}
		b, ok := o.(*object.Box3dData)
		if !ok {
			return object.Box3d{}, indexedio.ErrTypeMismatch.New(sc.loc.dir.Path().Child(boundEntry), o.TypeName()+" is not a bound")
		}
		return b.Value, nil
	}
	return sc.computeBound(time)
}

func (sc *SceneCache) computeBound(time float64) (object.Box3d, error) {
	bound := object.EmptyBox3d()
	if sc.loc.hasSample(time, objectEntry) {
		o, err := sc.ReadObject(time)
		if err != nil {
			return object.Box3d{}, err
		}
		if b, ok := o.(object.Bounded); ok {
			bound = bound.Union(b.Bound())
		}
	}

	names, err := sc.ChildNames()
	if err != nil {
		return object.Box3d{}, err
	}
	for _, name := range names {
		cb, err := sc.childBound(name, time)
		if err != nil {
			return object.Box3d{}, err
		}
		bound = bound.Union(cb)
	}
	return bound, nil
}

// childBound returns the bound of the named child in this location's space.
func (sc *SceneCache) childBound(name string, time float64) (object.Box3d, error) {
	child, err := sc.ReadableChild(name)
	if err != nil {
		return object.Box3d{}, err
	}
	defer child.Close()

	b, err := child.ReadBound(time)
	if err != nil {
		return object.Box3d{}, err
	}
	m, err := child.ReadTransform(time)
	if err != nil {
		return object.Box3d{}, err
	}
	return m.TransformBox(b), nil
}

func (sc *SceneCache) BoundSampleTimes() ([]float64, error) {
	return sc.loc.sampleTimes(boundEntry)
}

// WriteTags adds |tags| to the tags of this location.
func (sc *SceneCache) WriteTags(tags ...string) error {
	return sc.loc.writeTags(tags)
}

// ReadTags returns the tags of this location in sorted order.
func (sc *SceneCache) ReadTags() ([]string, error) {
	return sc.loc.readTags()
}

func (sc *SceneCache) HasTag(tag string) bool {
	return sc.loc.hasTag(tag)
}

func (sc *SceneCache) Close() error {
	return sc.loc.close()
}
