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
	"fmt"
	"strings"
)

// BoundingBox is the smallest lat/lon rectangle enclosing a set of points.
type BoundingBox struct {
	Top    Degrees `json:"top"`
	Left   Degrees `json:"left"`
	Bottom Degrees `json:"bottom"`
	Right  Degrees `json:"right"`
}

// InitialBoundingBox creates an inverted BoundingBox that is meant to be
// expanded.  It contains no point until it has been expanded at least once.
func InitialBoundingBox() *BoundingBox {
	return &BoundingBox{
		Top:    MinLat,
		Left:   MaxLon,
		Bottom: MaxLat,
		Right:  MinLon,
	}
}

// ParseBoundingBox parses "top,left,bottom,right" in decimal degrees.
func ParseBoundingBox(s string) (*BoundingBox, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("bounding box %q: want top,left,bottom,right", s)
	}

	var (
		b   BoundingBox
		err error
	)

	if b.Top, err = ParseLatitude(parts[0]); err != nil {
		return nil, fmt.Errorf("bounding box top: %w", err)
	}

	if b.Left, err = ParseLongitude(parts[1]); err != nil {
		return nil, fmt.Errorf("bounding box left: %w", err)
	}

	if b.Bottom, err = ParseLatitude(parts[2]); err != nil {
		return nil, fmt.Errorf("bounding box bottom: %w", err)
	}

	if b.Right, err = ParseLongitude(parts[3]); err != nil {
		return nil, fmt.Errorf("bounding box right: %w", err)
	}

	if b.IsEmpty() {
		return nil, fmt.Errorf("bounding box %q is inverted", s)
	}

	return &b, nil
}

// IsEmpty reports whether the bounding box has never been expanded.
func (b *BoundingBox) IsEmpty() bool {
	return b.Top < b.Bottom || b.Right < b.Left
}

// Contains checks if the bounding box contains the point.
func (b *BoundingBox) Contains(p Point) bool {
	return b.Left <= p.Lon && p.Lon <= b.Right && b.Bottom <= p.Lat && p.Lat <= b.Top
}

// ExpandWithLatLng grows the bounding box to include lat, lon.
func (b *BoundingBox) ExpandWithLatLng(lat, lon Degrees) {
	b.Top = max(b.Top, lat)
	b.Bottom = min(b.Bottom, lat)
	b.Left = min(b.Left, lon)
	b.Right = max(b.Right, lon)
}

// ExpandWithPoint grows the bounding box to include p.
func (b *BoundingBox) ExpandWithPoint(p Point) {
	b.ExpandWithLatLng(p.Lat, p.Lon)
}

// ExpandWithBoundingBox grows the bounding box to include o.  An empty o
// leaves it unchanged.
func (b *BoundingBox) ExpandWithBoundingBox(o *BoundingBox) {
	if o.IsEmpty() {
		return
	}

	b.ExpandWithLatLng(o.Top, o.Left)
	b.ExpandWithLatLng(o.Bottom, o.Right)
}

func (b *BoundingBox) String() string {
	if b.IsEmpty() {
		return "[]"
	}

	return fmt.Sprintf("[%s %s]",
		Point{Lat: b.Top, Lon: b.Left}, Point{Lat: b.Bottom, Lon: b.Right})
}
