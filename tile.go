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
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"m4o.io/osmtile/internal/codec"
)

// readTile decodes a whole tile from r.
func readTile(r io.Reader, cfg options) (*Graph, int64, error) {
	body, _, n, err := codec.Read(r, cfg.magic, cfg.version)
	if err != nil {
		return nil, n, err
	}

	g, err := decodeGraph(body)
	if err != nil {
		return nil, n, err
	}

	return g, n, nil
}

// readTileFile decodes the tile stored at path.
func readTileFile(path string, cfg options) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	defer f.Close()

	g, _, err := readTile(bufio.NewReader(f), cfg)
	if err != nil {
		return nil, fmt.Errorf("could not read tile %s: %w", path, err)
	}

	return g, nil
}

// writeTile encodes g as a tile and writes it to w.
func writeTile(w io.Writer, g *Graph, cfg options) (int64, error) {
	body, err := g.appendBinary(nil)
	if err != nil {
		return 0, fmt.Errorf("could not encode tile: %w", err)
	}

	return codec.Write(w, cfg.magic, cfg.version, cfg.compression, body)
}

// WriteMode controls what happens when a tile is written to a path that
// already exists.
type WriteMode uint8

const (
	// CreateNew fails with ErrFileExists when the destination exists.
	CreateNew WriteMode = iota

	// Overwrite atomically replaces the destination.
	Overwrite
)

func (m WriteMode) String() string {
	switch m {
	case CreateNew:
		return "create-new"
	case Overwrite:
		return "overwrite"
	default:
		return fmt.Sprintf("WriteMode(%d)", uint8(m))
	}
}

// writeTileFile writes g to path according to mode.
func writeTileFile(path string, mode WriteMode, g *Graph, cfg options) error {
	switch mode {
	case CreateNew:
		return createTileFile(path, g, cfg)
	case Overwrite:
		return replaceTileFile(path, g, cfg)
	default:
		return fmt.Errorf("unknown write mode %v", mode)
	}
}

func createTileFile(path string, g *Graph, cfg options) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return fmt.Errorf("%w: %s", ErrFileExists, path)
		}

		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err = writeAndClose(f, g, cfg); err != nil {
		_ = os.Remove(path)

		return err
	}

	return nil
}

// replaceTileFile writes the tile to a temporary file in the destination's
// directory and renames it over the destination, so readers never observe a
// partially written tile.
func replaceTileFile(path string, g *Graph, cfg options) error {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	tmp := f.Name()

	if err = writeAndClose(f, g, cfg); err != nil {
		_ = os.Remove(tmp)

		return err
	}

	if err = os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)

		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

func writeAndClose(f *os.File, g *Graph, cfg options) error {
	w := bufio.NewWriter(f)

	if _, err := writeTile(w, g, cfg); err != nil {
		f.Close()

		return err
	}

	if err := w.Flush(); err != nil {
		f.Close()

		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := f.Sync(); err != nil {
		f.Close()

		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}
