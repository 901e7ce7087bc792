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
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/destel/rill"

	"m4o.io/osmtile/model"
)

// Viewer is a read-only graph assembled from a base tile and any number of
// appended tiles.  Entities held by several tiles must be identical in each;
// the merged graph does not depend on the order tiles are appended in.
//
// A Viewer is not safe for concurrent use.
type Viewer struct {
	*Graph

	cfg     options
	sources []string
	seen    map[string]struct{}
}

// NewViewer returns an empty viewer.
func NewViewer(opts ...Option) *Viewer {
	return &Viewer{
		Graph: newGraph(),
		cfg:   newOptions(opts),
		seen:  make(map[string]struct{}),
	}
}

// Sources returns the names of the tiles merged into the viewer, in the
// order they were merged.
func (v *Viewer) Sources() []string {
	return slices.Clone(v.sources)
}

// Load reads the base tile stored at path.  It fails with ErrAlreadyLoaded
// if the viewer already holds a tile.
func (v *Viewer) Load(path string) error {
	if err := v.checkUnloaded(); err != nil {
		return err
	}

	g, err := readTileFile(path, v.cfg)
	if err != nil {
		slog.Error("could not load tile", "path", path, "error", err)

		return err
	}

	v.install(SourceName(path), g)

	return nil
}

// LoadFrom reads the base tile from r.  The name identifies the tile in
// Sources; use SourceName for a tile read from a file.
func (v *Viewer) LoadFrom(r io.Reader, name string) error {
	if err := v.checkUnloaded(); err != nil {
		return err
	}

	g, _, err := readTile(r, v.cfg)
	if err != nil {
		slog.Error("could not load tile", "source", name, "error", err)

		return fmt.Errorf("could not read tile %s: %w", name, err)
	}

	v.install(name, g)

	return nil
}

// AppendTile merges the tile stored at path into the viewer.  The tile is
// decoded and checked against the viewer before anything is merged, so on
// failure the viewer is unchanged.  Appending a tile twice is a no-op.
func (v *Viewer) AppendTile(path string) error {
	name := SourceName(path)
	if v.merged(name) {
		return nil
	}

	g, err := readTileFile(path, v.cfg)
	if err != nil {
		slog.Error("could not append tile", "path", path, "error", err)

		return err
	}

	return v.append(name, g)
}

// AppendTileID merges the tile with the given id stored under dir.
func (v *Viewer) AppendTileID(dir string, id model.TileID) error {
	return v.AppendTile(TileFileName(dir, id))
}

// AppendFrom merges the tile read from r.  The name identifies the tile in
// Sources, as for LoadFrom; a name already merged is skipped without
// reading r.
func (v *Viewer) AppendFrom(r io.Reader, name string) error {
	if v.merged(name) {
		return nil
	}

	g, _, err := readTile(r, v.cfg)
	if err != nil {
		slog.Error("could not append tile", "source", name, "error", err)

		return fmt.Errorf("could not read tile %s: %w", name, err)
	}

	return v.append(name, g)
}

// AppendTiles decodes the tiles stored at paths concurrently and merges them
// into the viewer as a unit: either every tile is merged or, on failure,
// none is.
func (v *Viewer) AppendTiles(ctx context.Context, paths ...string) error {
	var (
		pending []string
		names   []string
	)

	batch := make(map[string]struct{})

	for _, p := range paths {
		name := SourceName(p)
		if _, ok := batch[name]; ok || v.merged(name) {
			continue
		}

		batch[name] = struct{}{}
		pending = append(pending, p)
		names = append(names, name)
	}

	if len(pending) == 0 {
		return nil
	}

	decoded := rill.OrderedMap(rill.FromSlice(pending, nil), int(v.cfg.nCPU), func(p string) (*Graph, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		return readTileFile(p, v.cfg)
	})

	staged := newGraph()

	err := rill.ForEach(decoded, 1, func(g *Graph) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return staged.merge(g)
	})
	if err == nil {
		err = v.Graph.merge(staged)
	}

	if err != nil {
		slog.Error("could not append tiles", "count", len(pending), "error", err)

		return err
	}

	for _, name := range names {
		v.record(name)
	}

	slog.Debug("appended tiles", "count", len(pending), "stats", v.Stats())

	return nil
}

func (v *Viewer) checkUnloaded() error {
	if len(v.sources) > 0 || !v.IsEmpty() {
		return fmt.Errorf("%w: %d tiles", ErrAlreadyLoaded, len(v.sources))
	}

	return nil
}

func (v *Viewer) install(name string, g *Graph) {
	v.Graph = g
	v.record(name)

	slog.Debug("loaded tile", "source", name, "stats", g.Stats())
}

func (v *Viewer) append(name string, g *Graph) error {
	if err := v.Graph.merge(g); err != nil {
		slog.Error("could not merge tile", "source", name, "error", err)

		return fmt.Errorf("could not merge tile %s: %w", name, err)
	}

	v.record(name)

	slog.Debug("appended tile", "source", name, "stats", v.Stats())

	return nil
}

func (v *Viewer) merged(name string) bool {
	_, ok := v.seen[name]
	if ok {
		slog.Debug("tile already merged", "source", name)
	}

	return ok
}

func (v *Viewer) record(name string) {
	v.seen[name] = struct{}{}
	v.sources = append(v.sources, name)
}

// SourceName returns the name under which Load, AppendTile and AppendTiles
// record the tile at path: its absolute path, however the path is spelled.
func SourceName(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}

	return filepath.Clean(path)
}
