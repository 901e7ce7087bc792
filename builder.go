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
	"io"
	"log/slog"
	"slices"

	"m4o.io/osmtile/model"
)

// Builder accumulates the graph of a single tile and writes it out.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	*Graph

	cfg options
}

// NewBuilder returns an empty builder.
func NewBuilder(opts ...Option) *Builder {
	return &Builder{
		Graph: newGraph(),
		cfg:   newOptions(opts),
	}
}

// AddNode adds a node on the given layer.
func (b *Builder) AddNode(layer model.Layer, key model.NodeKey, node model.Node) error {
	node.Layer = layer

	return b.nodes.Add(key, node)
}

// AddLink adds a link running from one node to another.  The endpoints need not be
// in the builder; they are resolved when the tile is viewed.
func (b *Builder) AddLink(key model.LinkKey, link model.Link, from, to model.NodeKey) error {
	link.From, link.To = from, to

	return b.links.Add(key, link)
}

// AddArea adds an area on the given layer.
func (b *Builder) AddArea(key model.AreaKey, layer model.Layer, area model.Area) error {
	area.Layer = layer
	area.Outline = slices.Clone(area.Outline)

	return b.areas.Add(key, area)
}

// AddPlace adds a place on the given layer.
func (b *Builder) AddPlace(key model.PlaceKey, layer model.Layer, place model.Place) error {
	place.Layer = layer

	return b.places.Add(key, place)
}

// WriteTo writes the tile to w.  It implements io.WriterTo.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	return writeTile(w, b.Graph, b.cfg)
}

// WriteFile writes the tile to path.  With CreateNew an existing file is left
// alone and ErrFileExists returned; with Overwrite it is replaced.
func (b *Builder) WriteFile(path string, mode WriteMode) error {
	if err := writeTileFile(path, mode, b.Graph, b.cfg); err != nil {
		slog.Error("could not write tile", "path", path, "mode", mode, "error", err)

		return err
	}

	slog.Debug("wrote tile", "path", path, "mode", mode, "stats", b.Stats())

	return nil
}

// ReadFrom replaces the contents of the builder with the tile read from r.
// On failure the builder is unchanged.  It implements io.ReaderFrom.
func (b *Builder) ReadFrom(r io.Reader) (int64, error) {
	g, n, err := readTile(r, b.cfg)
	if err != nil {
		return n, fmt.Errorf("could not read tile: %w", err)
	}

	b.Graph = g

	return n, nil
}

// ReadFile replaces the contents of the builder with the tile stored at path.
// On failure the builder is unchanged.
func (b *Builder) ReadFile(path string) error {
	g, err := readTileFile(path, b.cfg)
	if err != nil {
		slog.Error("could not read tile", "path", path, "error", err)

		return err
	}

	b.Graph = g

	return nil
}
