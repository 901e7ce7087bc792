// Copyright 2025 the original author or authors.
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

package model

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Records are encoded with protobuf wire primitives but without field tags:
// signed integers as zig-zag varints, enumerations and counts as varints,
// floats as the fixed64 of their IEEE-754 bits and strings length-prefixed.
// Fields are written in declaration order.  The encoding is deterministic,
// so two records are equal exactly when their encodings are.

// ErrMalformedRecord is returned when a record cannot be decoded.
var ErrMalformedRecord = errors.New("malformed record")

const pointSize = 16

// AppendBinary appends the encoded node to b.
func (n Node) AppendBinary(b []byte) ([]byte, error) {
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(n.Layer)))
	b = appendDegrees(b, n.Lat)
	b = appendDegrees(b, n.Lon)

	return b, nil
}

// UnmarshalBinary decodes a node encoded by AppendBinary.
func (n *Node) UnmarshalBinary(data []byte) error {
	r := recordReader{buf: data}

	*n = Node{
		Layer: Layer(r.zigzag()),
		Lat:   r.degrees(),
		Lon:   r.degrees(),
	}

	return r.done("node")
}

// AppendBinary appends the encoded link to b.
func (l Link) AppendBinary(b []byte) ([]byte, error) {
	b = protowire.AppendVarint(b, uint64(l.Type))
	b = protowire.AppendFixed64(b, math.Float64bits(l.Length))
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(l.From)))
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(l.To)))

	return b, nil
}

// UnmarshalBinary decodes a link encoded by AppendBinary.
func (l *Link) UnmarshalBinary(data []byte) error {
	r := recordReader{buf: data}

	*l = Link{
		Type:   LinkType(r.enum()),
		Length: r.float(),
		From:   NodeKey(r.zigzag()),
		To:     NodeKey(r.zigzag()),
	}

	return r.done("link")
}

// AppendBinary appends the encoded area to b.
func (a Area) AppendBinary(b []byte) ([]byte, error) {
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(a.Layer)))
	b = protowire.AppendVarint(b, uint64(a.Type))
	b = protowire.AppendString(b, a.Name)
	b = protowire.AppendVarint(b, uint64(len(a.Outline)))

	for _, p := range a.Outline {
		b = appendDegrees(b, p.Lat)
		b = appendDegrees(b, p.Lon)
	}

	return b, nil
}

// UnmarshalBinary decodes an area encoded by AppendBinary.
func (a *Area) UnmarshalBinary(data []byte) error {
	r := recordReader{buf: data}

	*a = Area{
		Layer: Layer(r.zigzag()),
		Type:  AreaType(r.enum()),
		Name:  r.text(),
	}

	if n := r.count(pointSize); n > 0 {
		a.Outline = make([]Point, n)
		for i := range a.Outline {
			a.Outline[i] = Point{Lat: r.degrees(), Lon: r.degrees()}
		}
	}

	return r.done("area")
}

// AppendBinary appends the encoded place to b.
func (p Place) AppendBinary(b []byte) ([]byte, error) {
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(int64(p.Layer)))
	b = protowire.AppendVarint(b, uint64(p.Type))
	b = protowire.AppendString(b, p.Name)
	b = appendDegrees(b, p.Lat)
	b = appendDegrees(b, p.Lon)
	b = protowire.AppendVarint(b, p.Population)

	return b, nil
}

// UnmarshalBinary decodes a place encoded by AppendBinary.
func (p *Place) UnmarshalBinary(data []byte) error {
	r := recordReader{buf: data}

	*p = Place{
		Layer:      Layer(r.zigzag()),
		Type:       PlaceType(r.enum()),
		Name:       r.text(),
		Lat:        r.degrees(),
		Lon:        r.degrees(),
		Population: r.varint(),
	}

	return r.done("place")
}

func appendDegrees(b []byte, d Degrees) []byte {
	return protowire.AppendFixed64(b, math.Float64bits(float64(d)))
}

// recordReader consumes primitives from buf.  After the first failure every
// read returns a zero value and err holds the cause.
type recordReader struct {
	buf []byte
	err error
}

func (r *recordReader) fail(n int) {
	if r.err == nil {
		r.err = protowire.ParseError(n)
	}

	r.buf = nil
}

func (r *recordReader) varint() uint64 {
	if r.err != nil {
		return 0
	}

	v, n := protowire.ConsumeVarint(r.buf)
	if n < 0 {
		r.fail(n)

		return 0
	}

	r.buf = r.buf[n:]

	return v
}

func (r *recordReader) zigzag() int64 {
	return protowire.DecodeZigZag(r.varint())
}

func (r *recordReader) enum() uint8 {
	v := r.varint()
	if v > math.MaxUint8 {
		if r.err == nil {
			r.err = fmt.Errorf("enumeration value %d out of range", v)
		}

		return 0
	}

	return uint8(v)
}

func (r *recordReader) float() float64 {
	if r.err != nil {
		return 0
	}

	v, n := protowire.ConsumeFixed64(r.buf)
	if n < 0 {
		r.fail(n)

		return 0
	}

	r.buf = r.buf[n:]

	return math.Float64frombits(v)
}

func (r *recordReader) degrees() Degrees {
	return Degrees(r.float())
}

func (r *recordReader) text() string {
	if r.err != nil {
		return ""
	}

	s, n := protowire.ConsumeString(r.buf)
	if n < 0 {
		r.fail(n)

		return ""
	}

	r.buf = r.buf[n:]

	return s
}

// count reads an element count and checks that the remaining bytes can hold
// that many elements of at least size bytes each.
func (r *recordReader) count(size int) int {
	v := r.varint()
	if r.err != nil {
		return 0
	}

	if v > uint64(len(r.buf)/size) {
		r.err = fmt.Errorf("count %d exceeds remaining %d bytes", v, len(r.buf))

		return 0
	}

	return int(v)
}

func (r *recordReader) done(kind string) error {
	if r.err == nil && len(r.buf) != 0 {
		r.err = fmt.Errorf("%d trailing bytes", len(r.buf))
	}

	if r.err != nil {
		return fmt.Errorf("%w: %s: %w", ErrMalformedRecord, kind, r.err)
	}

	return nil
}
