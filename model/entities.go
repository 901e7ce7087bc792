// Copyright 2017-25 the original author or authors.
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

// Package model contains the shared model for OpenStreetMap tile builders and
// viewers.
//
// Keys are global.  They are allocated by whatever process imports the map
// data, uniquely across every tile that will ever be viewed together, so a
// key identifies the same entity no matter which tile it was read from.  The
// four key spaces are independent: a node and a link may share a numeric key.
package model

//go:generate stringer -type=LinkType,AreaType,PlaceType -linecomment -output=types_string.go

// NodeKey is the primary key of a node.
type NodeKey int64

// LinkKey is the primary key of a link.
type LinkKey int64

// AreaKey is the primary key of an area.
type AreaKey int64

// PlaceKey is the primary key of a place.
type PlaceKey int64

// Layer partitions nodes, areas and places by semantic category, e.g. the road
// network versus administrative boundaries.  It is not part of any key.
type Layer int32

// TileID identifies a tile within a tile directory.
type TileID uint32

// Node is a point on the earth's surface.
type Node struct {
	Layer Layer   `json:"layer"`
	Lat   Degrees `json:"lat"`
	Lon   Degrees `json:"lon"`
}

// Point returns the location of the node.
func (n Node) Point() Point {
	return Point{Lat: n.Lat, Lon: n.Lon}
}

// LinkType is an enumeration of link (edge) categories.
type LinkType uint8

const (
	LinkUnknown LinkType = iota // unknown
	Motorway                    // motorway
	Trunk                       // trunk
	Primary                     // primary
	Secondary                   // secondary
	Tertiary                    // tertiary
	Residential                 // residential
	Service                     // service
	Track                       // track
	Path                        // path
	Footway                     // footway
	Cycleway                    // cycleway
	Steps                       // steps
	Railway                     // railway
	Subway                      // subway
	Tramway                     // tramway
	Ferry                       // ferry
)

// MarshalText renders the link type by name.
func (t LinkType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Link is an edge between exactly two nodes.  The endpoints are node keys that
// may belong to a different tile than the link itself; they are resolved
// against whatever nodes are loaded at query time.
type Link struct {
	Type   LinkType `json:"type"`
	Length float64  `json:"length"`
	From   NodeKey  `json:"from"`
	To     NodeKey  `json:"to"`
}

// AreaType is an enumeration of area categories.
type AreaType uint8

const (
	AreaUnknown AreaType = iota // unknown
	Landuse                     // landuse
	Water                       // water
	Park                        // park
	Building                    // building
	Boundary                    // boundary
)

// MarshalText renders the area type by name.
func (t AreaType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Area is a named polygon.  The outline is implicitly closed.
type Area struct {
	Layer   Layer    `json:"layer"`
	Type    AreaType `json:"type"`
	Name    string   `json:"name,omitempty"`
	Outline []Point  `json:"outline,omitempty"`
}

// Bounds returns the bounding box of the outline.  It is empty when the
// outline is.
func (a Area) Bounds() *BoundingBox {
	bbox := InitialBoundingBox()

	for _, p := range a.Outline {
		bbox.ExpandWithPoint(p)
	}

	return bbox
}

// PlaceType is an enumeration of place categories.
type PlaceType uint8

const (
	PlaceUnknown PlaceType = iota // unknown
	Country                       // country
	State                         // state
	City                          // city
	Town                          // town
	Village                       // village
	Hamlet                        // hamlet
	Suburb                        // suburb
	Locality                      // locality
)

// MarshalText renders the place type by name.
func (t PlaceType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Place is a named point of interest.
type Place struct {
	Layer      Layer     `json:"layer"`
	Type       PlaceType `json:"type"`
	Name       string    `json:"name,omitempty"`
	Lat        Degrees   `json:"lat"`
	Lon        Degrees   `json:"lon"`
	Population uint64    `json:"population,omitempty"`
}

// Point returns the location of the place.
func (p Place) Point() Point {
	return Point{Lat: p.Lat, Lon: p.Lon}
}
