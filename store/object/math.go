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

import "math"

type V3f struct {
	X, Y, Z float32
}

type V3d struct {
	X, Y, Z float64
}

func (v V3f) V3d() V3d {
	return V3d{float64(v.X), float64(v.Y), float64(v.Z)}
}

func (v V3d) Add(o V3d) V3d {
	return V3d{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v V3d) Sub(o V3d) V3d {
	return V3d{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v V3d) Scale(s float64) V3d {
	return V3d{v.X * s, v.Y * s, v.Z * s}
}

// Box3d is an axis aligned box. A box whose Min exceeds its Max on any axis is empty.
type Box3d struct {
	Min, Max V3d
}

// EmptyBox3d returns the empty box, the identity for Union.
func EmptyBox3d() Box3d {
	inf := math.Inf(1)
	return Box3d{
		Min: V3d{inf, inf, inf},
		Max: V3d{-inf, -inf, -inf},
	}
}

func (b Box3d) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExtendBy returns the smallest box containing |b| and |p|.
func (b Box3d) ExtendBy(p V3d) Box3d {
	return Box3d{
		Min: V3d{math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y), math.Min(b.Min.Z, p.Z)},
		Max: V3d{math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y), math.Max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both boxes.
func (b Box3d) Union(o Box3d) Box3d {
	if o.IsEmpty() {
		return b
	}
	if b.IsEmpty() {
		return o
	}
	return b.ExtendBy(o.Min).ExtendBy(o.Max)
}

func (b Box3d) Center() V3d {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Box3d) Size() V3d {
	if b.IsEmpty() {
		return V3d{}
	}
	return b.Max.Sub(b.Min)
}

// M44d is a 4x4 matrix stored row major. Points are row vectors multiplied on the left, so the
// translation lives in the last row and A.Mul(B) applies A first.
type M44d [16]float64

func IdentityM44d() M44d {
	return M44d{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

func TranslateM44d(t V3d) M44d {
	m := IdentityM44d()
	m[12], m[13], m[14] = t.X, t.Y, t.Z
	return m
}

func ScaleM44d(s V3d) M44d {
	m := IdentityM44d()
	m[0], m[5], m[10] = s.X, s.Y, s.Z
	return m
}

func (m M44d) At(row, col int) float64 {
	return m[row*4+col]
}

func (m M44d) Mul(o M44d) M44d {
	var r M44d
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float64
			for k := 0; k < 4; k++ {
				s += m[i*4+k] * o[k*4+j]
			}
			r[i*4+j] = s
		}
	}
	return r
}

func (m M44d) Translation() V3d {
	return V3d{m[12], m[13], m[14]}
}

func (m M44d) TransformPoint(p V3d) V3d {
	x := p.X*m[0] + p.Y*m[4] + p.Z*m[8] + m[12]
	y := p.X*m[1] + p.Y*m[5] + p.Z*m[9] + m[13]
	z := p.X*m[2] + p.Y*m[6] + p.Z*m[10] + m[14]
	w := p.X*m[3] + p.Y*m[7] + p.Z*m[11] + m[15]
	if w != 0 && w != 1 {
		return V3d{x / w, y / w, z / w}
	}
	return V3d{x, y, z}
}

// TransformBox returns the axis aligned bound of |b|'s eight corners after transformation.
func (m M44d) TransformBox(b Box3d) Box3d {
	if b.IsEmpty() {
		return b
	}
	r := EmptyBox3d()
	for i := 0; i < 8; i++ {
		c := b.Min
		if i&1 != 0 {
			c.X = b.Max.X
		}
		if i&2 != 0 {
			c.Y = b.Max.Y
		}
		if i&4 != 0 {
			c.Z = b.Max.Z
		}
		r = r.ExtendBy(m.TransformPoint(c))
	}
	return r
}
