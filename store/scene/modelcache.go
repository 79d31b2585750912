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
	"slices"

	"github.com/dolthub/cortex/store/indexedio"
	"github.com/dolthub/cortex/store/object"
)

const (
	// ModelCacheExtension is the file extension of ModelCache files.
	ModelCacheExtension = ".mdc"

	modelCacheSchema  = "ModelCache"
	modelCacheVersion = uint32(1)
)

// ModelCache stores a static hierarchy. It uses the SceneCache layout without time samples:
//
//	transform/          M44dData record
//	attr/<name>/        Object record
//	object/             Object record
//	bound/              Box3dData record
//	tags                string array
//	children/<name>/    child location
type ModelCache struct {
	loc location
}

func OpenModelCache(path string, mode indexedio.OpenMode, opts Options) (*ModelCache, error) {
	loc, err := openLocation(path, mode, modelCacheSchema, modelCacheVersion, opts)
	if err != nil {
		return nil, err
	}
	return &ModelCache{loc: loc}, nil
}

func (mc *ModelCache) FileName() string {
	return mc.loc.file
}

func (mc *ModelCache) Mode() indexedio.OpenMode {
	return mc.loc.mode()
}

func (mc *ModelCache) Name() string {
	return mc.loc.name()
}

func (mc *ModelCache) Path() []string {
	return mc.loc.scenePath()
}

func (mc *ModelCache) ChildNames() ([]string, error) {
	return mc.loc.childNames()
}

func (mc *ModelCache) HasChild(name string) bool {
	return mc.loc.hasChild(name)
}

// WritableChild creates the named child.
func (mc *ModelCache) WritableChild(name string) (*ModelCache, error) {
	loc, err := mc.loc.createChild(name)
	if err != nil {
		return nil, err
	}
	return &ModelCache{loc: loc}, nil
}

func (mc *ModelCache) ReadableChild(name string) (*ModelCache, error) {
	loc, _, err := mc.loc.child(name, indexedio.ThrowIfMissing)
	if err != nil {
		return nil, err
	}
	return &ModelCache{loc: loc}, nil
}

func (mc *ModelCache) WriteTransform(m object.M44d) error {
	return mc.loc.writeRecord(object.NewData(m), transformEntry)
}

// ReadTransform returns the stored transform, or the identity if there is none.
func (mc *ModelCache) ReadTransform() (object.M44d, error) {
	if !mc.loc.dir.HasEntry(transformEntry) {
		return object.IdentityM44d(), nil
	}
	o, err := mc.loc.readRecord(transformEntry)
	if err != nil {
		return object.M44d{}, err
	}
	m, ok := o.(*object.M44dData)
	if !ok {
		return object.M44d{}, indexedio.ErrTypeMismatch.New(mc.loc.dir.Path().Child(transformEntry), o.TypeName()+" is not a transform")
	}
	return m.Value, nil
}

func (mc *ModelCache) WriteObject(o object.Object) error {
	return mc.loc.writeRecord(o, objectEntry)
}

func (mc *ModelCache) ReadObject() (object.Object, error) {
	return mc.loc.readRecord(objectEntry)
}

func (mc *ModelCache) HasObject() bool {
	return mc.loc.dir.HasEntry(objectEntry)
}

func (mc *ModelCache) WriteAttribute(name string, o object.Object) error {
	if err := indexedio.ValidateName(name); err != nil {
		return err
	}
	return mc.loc.writeRecord(o, attrEntry, name)
}

func (mc *ModelCache) ReadAttribute(name string) (object.Object, error) {
	return mc.loc.readRecord(attrEntry, name)
}

func (mc *ModelCache) HasAttribute(name string) bool {
	return mc.loc.has(attrEntry, name)
}

// AttributeNames returns the names of every attribute in sorted order.
func (mc *ModelCache) AttributeNames() ([]string, error) {
	return mc.loc.entries(attrEntry)
}

// WriteTags adds |tags| to the tags of this location.
func (mc *ModelCache) WriteTags(tags ...string) error {
	return mc.loc.writeTags(tags)
}

func (mc *ModelCache) ReadTags() ([]string, error) {
	return mc.loc.readTags()
}

func (mc *ModelCache) HasTag(tag string) bool {
	return mc.loc.hasTag(tag)
}

func (mc *ModelCache) WriteBound(b object.Box3d) error {
	return mc.loc.writeRecord(object.NewData(b), boundEntry)
}

// ReadBound returns the stored bound, or computes one from the object and the transformed bounds
// of the children.
func (mc *ModelCache) ReadBound() (object.Box3d, error) {
	if mc.loc.dir.HasEntry(boundEntry) {
		o, err := mc.loc.readRecord(boundEntry)
		if err != nil {
			return object.Box3d{}, err
		}
		b, ok := o.(*object.Box3dData)
		if !ok {
			return object.Box3d{}, indexedio.ErrTypeMismatch.New(mc.loc.dir.Path().Child(boundEntry), o.TypeName()+" is not a bound")
		}
		return b.Value, nil
	}

	bound := object.EmptyBox3d()
	if mc.HasObject() {
		o, err := mc.ReadObject()
		if err != nil {
			return object.Box3d{}, err
		}
		if b, ok := o.(object.Bounded); ok {
			bound = b.Bound()
		}
	}

	names, err := mc.ChildNames()
	if err != nil {
		return object.Box3d{}, err
	}
	for _, name := range names {
		cb, err := mc.childBound(name)
		if err != nil {
			return object.Box3d{}, err
		}
		bound = bound.Union(cb)
	}
	return bound, nil
}

func (mc *ModelCache) childBound(name string) (object.Box3d, error) {
	child, err := mc.ReadableChild(name)
	if err != nil {
		return object.Box3d{}, err
	}
	defer child.Close()

	b, err := child.ReadBound()
	if err != nil {
		return object.Box3d{}, err
	}
	m, err := child.ReadTransform()
	if err != nil {
		return object.Box3d{}, err
	}
	return m.TransformBox(b), nil
}

func (mc *ModelCache) Close() error {
	return mc.loc.close()
}

// modelScene presents a ModelCache as a SceneInterface, so that Create can open .mdc files. A
// ModelCache holds one sample per record: times passed to reads and writes are ignored, and
// every stored record reports a single sample at time 0.
type modelScene struct {
	*ModelCache
}

var _ SceneInterface = modelScene{}

var staticSampleTimes = []float64{0}

func openModelScene(path string, mode indexedio.OpenMode, opts Options) (SceneInterface, error) {
	mc, err := OpenModelCache(path, mode, opts)
	if err != nil {
		return nil, err
	}
	return modelScene{mc}, nil
}

func sampleTimesIf(present bool) []float64 {
	if !present {
		return nil
	}
	return slices.Clone(staticSampleTimes)
}

func (ms modelScene) Child(name string, mb indexedio.MissingBehaviour) (SceneInterface, error) {
	loc, ok, err := ms.loc.child(name, mb)
	if err != nil || !ok {
		return nil, err
	}
	return modelScene{&ModelCache{loc: loc}}, nil
}

func (ms modelScene) ReadableChild(name string) (SceneInterface, error) {
	return ms.Child(name, indexedio.ThrowIfMissing)
}

func (ms modelScene) CreateChild(name string) (SceneInterface, error) {
	mc, err := ms.WritableChild(name)
	if err != nil {
		return nil, err
	}
	return modelScene{mc}, nil
}

func (ms modelScene) Scene(path []string, mb indexedio.MissingBehaviour) (SceneInterface, error) {
	loc, ok, err := ms.loc.descendant(path, mb)
	if err != nil || !ok {
		return nil, err
	}
	return modelScene{&ModelCache{loc: loc}}, nil
}

func (ms modelScene) WriteTransform(m object.M44d, _ float64) error {
	return ms.ModelCache.WriteTransform(m)
}

func (ms modelScene) ReadTransform(float64) (object.M44d, error) {
	return ms.ModelCache.ReadTransform()
}

func (ms modelScene) TransformSampleTimes() ([]float64, error) {
	return sampleTimesIf(ms.loc.dir.HasEntry(transformEntry)), nil
}

func (ms modelScene) WriteAttribute(name string, o object.Object, _ float64) error {
	return ms.ModelCache.WriteAttribute(name, o)
}

func (ms modelScene) ReadAttribute(name string, _ float64) (object.Object, error) {
	return ms.ModelCache.ReadAttribute(name)
}

func (ms modelScene) AttributeSampleTimes(name string) ([]float64, error) {
	if !ms.HasAttribute(name) {
		return nil, indexedio.ErrPathNotFound.New(ms.loc.dir.Path().Child(attrEntry).Child(name))
	}
	return sampleTimesIf(true), nil
}

func (ms modelScene) WriteObject(o object.Object, _ float64) error {
	return ms.ModelCache.WriteObject(o)
}

func (ms modelScene) ReadObject(float64) (object.Object, error) {
	return ms.ModelCache.ReadObject()
}

func (ms modelScene) ObjectSampleTimes() ([]float64, error) {
	return sampleTimesIf(ms.HasObject()), nil
}

func (ms modelScene) WriteBound(b object.Box3d, _ float64) error {
	return ms.ModelCache.WriteBound(b)
}

func (ms modelScene) ReadBound(float64) (object.Box3d, error) {
	return ms.ModelCache.ReadBound()
}

func (ms modelScene) BoundSampleTimes() ([]float64, error) {
	return sampleTimesIf(ms.loc.dir.HasEntry(boundEntry)), nil
}
