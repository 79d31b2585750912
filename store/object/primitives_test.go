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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dolthub/cortex/store/indexedio"
)

func TestSphereRoundTrip(t *testing.T) {
	s := &SpherePrimitive{Radius: 3, ZMin: -0.5, ZMax: 0.75, ThetaMax: 180}
	out := memoryRoundTrip(t, s)
	assert.True(t, s.IsEqualTo(out))
}

func writeSphereV1(t *testing.T, root indexedio.IndexedIO, name string, radius float32) {
	dir, err := root.CreateSubdirectory(name)
	require.NoError(t, err)
	defer dir.Close()
	require.NoError(t, dir.Write(typeEntry, uint32(SpherePrimitiveTypeID)))
	require.NoError(t, dir.Write(versionEntry, sphereVersion1))
	require.NoError(t, dir.Write("radius", radius))
}

func TestSphereMigratesVersion1(t *testing.T) {
	root := indexedio.NewMemory(indexedio.Write)
	defer root.Close()
	writeSphereV1(t, root, "s", 2)

	o, err := Load(root, "s")
	require.NoError(t, err)
	assert.True(t, NewSpherePrimitive(2).IsEqualTo(o), "%+v", o)

	// re-saving upgrades the record
	require.NoError(t, Save(o, root, "upgraded"))
	_, version, err := RecordType(root, "upgraded")
	require.NoError(t, err)
	assert.Equal(t, sphereVersion2, version)
}

func TestSphereRejectsUnknownVersion(t *testing.T) {
	root := indexedio.NewMemory(indexedio.Write)
	defer root.Close()

	dir, err := root.CreateSubdirectory("s")
	require.NoError(t, err)
	require.NoError(t, dir.Write(typeEntry, uint32(SpherePrimitiveTypeID)))
	require.NoError(t, dir.Write(versionEntry, uint32(99)))
	require.NoError(t, dir.Close())

	_, err = Load(root, "s")
	assert.True(t, ErrUnsupportedVersion.Is(err), "%v", err)
}

func TestSphereBound(t *testing.T) {
	b := NewSpherePrimitive(2).Bound()
	assert.Equal(t, Box3d{Min: V3d{-2, -2, -2}, Max: V3d{2, 2, 2}}, b)
}

func TestPointsRoundTrip(t *testing.T) {
	p := NewPointsPrimitive([]V3f{{0, 0, 0}, {1, 2, 3}})
	p.Width = 0.5
	out := memoryRoundTrip(t, p)
	assert.True(t, p.IsEqualTo(out))

	b := p.Bound()
	assert.Equal(t, Box3d{Min: V3d{-0.25, -0.25, -0.25}, Max: V3d{1.25, 2.25, 3.25}}, b)

	empty := NewPointsPrimitive(nil)
	assert.True(t, empty.IsEqualTo(memoryRoundTrip(t, empty)))
	assert.True(t, empty.Bound().IsEmpty())
}

func TestPointsCopyIsDeep(t *testing.T) {
	p := NewPointsPrimitive([]V3f{{1, 1, 1}})
	c := p.Copy().(*PointsPrimitive)
	p.Positions[0].X = 5
	assert.Equal(t, float32(1), c.Positions[0].X)
}

func TestNullObject(t *testing.T) {
	out := memoryRoundTrip(t, &NullObject{})
	assert.True(t, (&NullObject{}).IsEqualTo(out))
	assert.False(t, (&NullObject{}).IsEqualTo(NewData(int32(0))))
}
