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

package osmtile

import (
	"fmt"
	"iter"
	"maps"
	"slices"

	"m4o.io/osmtile/internal/table"
	"m4o.io/osmtile/model"
)

// Graph is an in-memory tile graph: four independent tables of nodes, links,
// areas and places.  Links refer to their endpoints by key, so an endpoint
// may be missing from the graph until the tile holding it is merged in.
type Graph struct {
	nodes  *table.Table[model.NodeKey, model.Node]
	links  *table.Table[model.LinkKey, model.Link]
	areas  *table.Table[model.AreaKey, model.Area]
	places *table.Table[model.PlaceKey, model.Place]
}

// Stats holds the number of entities of each kind in a graph.
type Stats struct {
	Nodes  int `json:"nodes"`
	Links  int `json:"links"`
	Areas  int `json:"areas"`
	Places int `json:"places"`
}

func newGraph() *Graph {
	return &Graph{
		nodes:  table.New[model.NodeKey, model.Node]("node"),
		links:  table.New[model.LinkKey, model.Link]("link"),
		areas:  table.New[model.AreaKey, model.Area]("area"),
		places: table.New[model.PlaceKey, model.Place]("place"),
	}
}

// Node returns the node stored under key.
func (g *Graph) Node(key model.NodeKey) (model.Node, error) {
	return g.nodes.Get(key)
}

// Link returns the link stored under key.
func (g *Graph) Link(key model.LinkKey) (model.Link, error) {
	return g.links.Get(key)
}

// Area returns the area stored under key.  The outline is a copy.
func (g *Graph) Area(key model.AreaKey) (model.Area, error) {
	a, err := g.areas.Get(key)
	a.Outline = slices.Clone(a.Outline)

	return a, err
}

// Place returns the place stored under key.
func (g *Graph) Place(key model.PlaceKey) (model.Place, error) {
	return g.places.Get(key)
}

// Endpoints resolves both endpoints of the link stored under key.
func (g *Graph) Endpoints(key model.LinkKey) (model.Node, model.Node, error) {
	l, err := g.links.Get(key)
	if err != nil {
		return model.Node{}, model.Node{}, err
	}

	from, err := g.nodes.Get(l.From)
	if err != nil {
		return model.Node{}, model.Node{}, fmt.Errorf("link %d: %w", key, err)
	}

	to, err := g.nodes.Get(l.To)
	if err != nil {
		return model.Node{}, model.Node{}, fmt.Errorf("link %d: %w", key, err)
	}

	return from, to, nil
}

// Nodes iterates over the nodes in ascending key order.
func (g *Graph) Nodes() iter.Seq2[model.NodeKey, model.Node] {
	return g.nodes.All()
}

// Links iterates over the links in ascending key order.
func (g *Graph) Links() iter.Seq2[model.LinkKey, model.Link] {
	return g.links.All()
}

// Areas iterates over the areas in ascending key order.
func (g *Graph) Areas() iter.Seq2[model.AreaKey, model.Area] {
	return func(yield func(model.AreaKey, model.Area) bool) {
		for k, a := range g.areas.All() {
			a.Outline = slices.Clone(a.Outline)
			if !yield(k, a) {
				return
			}
		}
	}
}

// Places iterates over the places in ascending key order.
func (g *Graph) Places() iter.Seq2[model.PlaceKey, model.Place] {
	return g.places.All()
}

// Stats returns the number of entities of each kind.
func (g *Graph) Stats() Stats {
	return Stats{
		Nodes:  g.nodes.Len(),
		Links:  g.links.Len(),
		Areas:  g.areas.Len(),
		Places: g.places.Len(),
	}
}

// IsEmpty reports whether the graph holds no entities at all.
func (g *Graph) IsEmpty() bool {
	return g.Stats() == Stats{}
}

// Bounds returns the bounding box of every node, place and area outline.
// The box is empty when the graph holds no located entity.
func (g *Graph) Bounds() *model.BoundingBox {
	bbox := model.InitialBoundingBox()

	for _, n := range g.nodes.All() {
		bbox.ExpandWithPoint(n.Point())
	}

	for _, p := range g.places.All() {
		bbox.ExpandWithPoint(p.Point())
	}

	for _, a := range g.areas.All() {
		bbox.ExpandWithBoundingBox(a.Bounds())
	}

	return bbox
}

// Within counts the entities lying inside bbox: nodes and places by location,
// links whose endpoints are both loaded and inside, and areas whose whole
// outline is inside.
func (g *Graph) Within(bbox *model.BoundingBox) Stats {
	var s Stats

	for _, n := range g.nodes.All() {
		if bbox.Contains(n.Point()) {
			s.Nodes++
		}
	}

	for _, l := range g.links.All() {
		from, errFrom := g.nodes.Get(l.From)
		to, errTo := g.nodes.Get(l.To)

		if errFrom == nil && errTo == nil && bbox.Contains(from.Point()) && bbox.Contains(to.Point()) {
			s.Links++
		}
	}

	for _, a := range g.areas.All() {
		b := a.Bounds()
		if !b.IsEmpty() && bbox.Contains(model.Point{Lat: b.Top, Lon: b.Left}) &&
			bbox.Contains(model.Point{Lat: b.Bottom, Lon: b.Right}) {
			s.Areas++
		}
	}

	for _, p := range g.places.All() {
		if bbox.Contains(p.Point()) {
			s.Places++
		}
	}

	return s
}

// DanglingEndpoints returns, in ascending order, the keys of link endpoints
// that are not in the graph's node table.  They refer to nodes held by tiles
// that have not been merged in.
func (g *Graph) DanglingEndpoints() []model.NodeKey {
	missing := make(map[model.NodeKey]struct{})

	for _, l := range g.links.All() {
		for _, k := range []model.NodeKey{l.From, l.To} {
			if !g.nodes.Has(k) {
				missing[k] = struct{}{}
			}
		}
	}

	return slices.Sorted(maps.Keys(missing))
}

// check reports whether o can be merged into g without a key collision in
// any of the four tables.
func (g *Graph) check(o *Graph) error {
	if err := g.nodes.Check(o.nodes); err != nil {
		return err
	}

	if err := g.links.Check(o.links); err != nil {
		return err
	}

	if err := g.areas.Check(o.areas); err != nil {
		return err
	}

	return g.places.Check(o.places)
}

// merge adds every entity of o missing from g.  All four tables are checked
// before any is modified, so g is unchanged on failure.
func (g *Graph) merge(o *Graph) error {
	if err := g.check(o); err != nil {
		return err
	}

	// the tables were checked above so none of these can fail
	_ = g.nodes.Merge(o.nodes)
	_ = g.links.Merge(o.links)
	_ = g.areas.Merge(o.areas)
	_ = g.places.Merge(o.places)

	return nil
}

// appendBinary appends the four tables of the graph in a fixed order: nodes,
// links, areas, places.
func (g *Graph) appendBinary(b []byte) ([]byte, error) {
	var err error

	if b, err = g.nodes.AppendBinary(b); err != nil {
		return nil, err
	}

	if b, err = g.links.AppendBinary(b); err != nil {
		return nil, err
	}

	if b, err = g.areas.AppendBinary(b); err != nil {
		return nil, err
	}

	return g.places.AppendBinary(b)
}

// decodeGraph parses the four tables of a tile body.
func decodeGraph(body []byte) (*Graph, error) {
	var (
		g   Graph
		n   int
		off int
		err error
	)

	if g.nodes, n, err = table.Decode[model.NodeKey, model.Node]("node", body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	off += n

	if g.links, n, err = table.Decode[model.LinkKey, model.Link]("link", body[off:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	off += n

	if g.areas, n, err = table.Decode[model.AreaKey, model.Area]("area", body[off:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	off += n

	if g.places, n, err = table.Decode[model.PlaceKey, model.Place]("place", body[off:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	off += n

	if off != len(body) {
		return nil, fmt.Errorf("%w: %w: %d trailing bytes", ErrFormat, ErrMalformed, len(body)-off)
	}

	return &g, nil
}
