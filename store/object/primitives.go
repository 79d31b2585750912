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
	"math"

	"github.com/dolthub/cortex/store/hash"
	"github.com/dolthub/cortex/store/indexedio"
)

// NullObject stores nothing beyond its header.
type NullObject struct{}

func (n *NullObject) TypeID() TypeID {
	return NullObjectTypeID
}

func (n *NullObject) TypeName() string {
	return n.TypeID().String()
}

func (n *NullObject) Copy() Object {
	return &NullObject{}
}

func (n *NullObject) IsEqualTo(other Object) bool {
	_, ok := other.(*NullObject)
	return ok
}

func (n *NullObject) Hash() hash.Hash {
	return hashObject(n)
}

func (n *NullObject) HashInto(*hash.Hasher) {}

func (n *NullObject) Save(*SaveContext) error {
	return nil
}

func (n *NullObject) Load(*LoadContext) error {
	return nil
}

const (
	// sphereVersion1 stored the radius only.
	sphereVersion1 uint32 = 1
	// sphereVersion2 added the z clipping range and sweep angle.
	sphereVersion2 uint32 = 2
)

// SpherePrimitive is a sphere centred on the origin, optionally clipped along z and swept
// through less than a full revolution. ZMin and ZMax are fractions of the radius in [-1, 1].
type SpherePrimitive struct {
	Radius   float32
	ZMin     float32
	ZMax     float32
	ThetaMax float32
}

// NewSpherePrimitive returns a complete sphere.
func NewSpherePrimitive(radius float32) *SpherePrimitive {
	return &SpherePrimitive{Radius: radius, ZMin: -1, ZMax: 1, ThetaMax: 360}
}

func (s *SpherePrimitive) TypeID() TypeID {
	return SpherePrimitiveTypeID
}

func (s *SpherePrimitive) TypeName() string {
	return s.TypeID().String()
}

func (s *SpherePrimitive) Copy() Object {
	c := *s
	return &c
}

func (s *SpherePrimitive) IsEqualTo(other Object) bool {
	o, ok := other.(*SpherePrimitive)
	return ok && *o == *s
}

func (s *SpherePrimitive) Hash() hash.Hash {
	return hashObject(s)
}

func (s *SpherePrimitive) HashInto(h *hash.Hasher) {
	h.AppendFloat32(s.Radius)
	h.AppendFloat32(s.ZMin)
	h.AppendFloat32(s.ZMax)
	h.AppendFloat32(s.ThetaMax)
}

func (s *SpherePrimitive) Bound() Box3d {
	r := float64(s.Radius)
	return Box3d{
		Min: V3d{-r, -r, float64(s.ZMin) * r},
		Max: V3d{r, r, float64(s.ZMax) * r},
	}
}

func (s *SpherePrimitive) Save(ctx *SaveContext) error {
	c := ctx.Container()
	if err := c.Write("radius", s.Radius); err != nil {
		return err
	}
	if err := c.Write("zMin", s.ZMin); err != nil {
		return err
	}
	if err := c.Write("zMax", s.ZMax); err != nil {
		return err
	}
	return c.Write("thetaMax", s.ThetaMax)
}

func (s *SpherePrimitive) Load(ctx *LoadContext) error {
	c := ctx.Container()
	radius, err := indexedio.ReadAs[float32](c, "radius")
	if err != nil {
		return err
	}
	*s = *NewSpherePrimitive(radius)

	if ctx.Version() < sphereVersion2 {
		return nil
	}

	s.ZMin, err = indexedio.ReadAs[float32](c, "zMin")
	if err != nil {
		return err
	}
	s.ZMax, err = indexedio.ReadAs[float32](c, "zMax")
	if err != nil {
		return err
	}
	s.ThetaMax, err = indexedio.ReadAs[float32](c, "thetaMax")
	return err
}

// PointsPrimitive is a point cloud with a shared point width.
type PointsPrimitive struct {
	Positions []V3f
	Width     float32
}

func NewPointsPrimitive(positions []V3f) *PointsPrimitive {
	return &PointsPrimitive{Positions: positions, Width: 1}
}

func (p *PointsPrimitive) TypeID() TypeID {
	return PointsPrimitiveTypeID
}

func (p *PointsPrimitive) TypeName() string {
	return p.TypeID().String()
}

func (p *PointsPrimitive) NumPoints() int {
	return len(p.Positions)
}

func (p *PointsPrimitive) Copy() Object {
	return &PointsPrimitive{Positions: append([]V3f(nil), p.Positions...), Width: p.Width}
}

func (p *PointsPrimitive) IsEqualTo(other Object) bool {
	o, ok := other.(*PointsPrimitive)
	if !ok || o.Width != p.Width || len(o.Positions) != len(p.Positions) {
		return false
	}
	for i := range p.Positions {
		if p.Positions[i] != o.Positions[i] {
			return false
		}
	}
	return true
}

func (p *PointsPrimitive) Hash() hash.Hash {
	return hashObject(p)
}

func (p *PointsPrimitive) HashInto(h *hash.Hasher) {
	h.AppendFloat32(p.Width)
	h.AppendUint64(uint64(len(p.Positions)))
	for _, v := range p.Positions {
		hashV3f(h, v)
	}
}

// Bound returns the bound of every point, padded by half the point width.
func (p *PointsPrimitive) Bound() Box3d {
	b := EmptyBox3d()
	for _, v := range p.Positions {
		b = b.ExtendBy(v.V3d())
	}
	if b.IsEmpty() {
		return b
	}
	pad := math.Abs(float64(p.Width)) / 2
	return Box3d{
		Min: b.Min.Sub(V3d{pad, pad, pad}),
		Max: b.Max.Add(V3d{pad, pad, pad}),
	}
}

func (p *PointsPrimitive) Save(ctx *SaveContext) error {
	c := ctx.Container()
	if err := c.Write("P", v3fCodec.toArray(p.Positions)); err != nil {
		return err
	}
	return c.Write("width", p.Width)
}

func (p *PointsPrimitive) Load(ctx *LoadContext) error {
	c := ctx.Container()
	v, err := c.Read("P")
	if err != nil {
		return err
	}
	positions, ok := v3fCodec.fromArray(v)
	if !ok {
		return indexedio.ErrTypeMismatch.New(c.Path().Child("P"), "expected packed float32 positions")
	}
	width, err := indexedio.ReadAs[float32](c, "width")
	if err != nil {
		return err
	}
	p.Positions = positions
	p.Width = width
	return nil
}
