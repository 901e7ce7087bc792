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
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"m4o.io/osmtile/internal/codec"
	"m4o.io/osmtile/model"
)

const (
	node1 model.NodeKey = 1
	node2 model.NodeKey = 2
	node6 model.NodeKey = 6
	node7 model.NodeKey = 7

	link3 model.LinkKey = 3
	link8 model.LinkKey = 8
	link9 model.LinkKey = 9

	area4  model.AreaKey  = 4
	place5 model.PlaceKey = 5

	roads model.Layer = 1
)

// tileA holds two nodes joined by a subway link, an empty area and an empty
// place.
func tileA(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder()
	require.NoError(t, b.AddNode(roads, node1, model.Node{Lat: 45, Lon: 14.6}))
	require.NoError(t, b.AddNode(roads, node2, model.Node{Lat: 45.1, Lon: 14.7}))
	require.NoError(t, b.AddLink(link3, model.Link{Type: model.Subway, Length: 666}, node1, node2))
	require.NoError(t, b.AddArea(area4, roads, model.Area{}))
	require.NoError(t, b.AddPlace(place5, roads, model.Place{}))

	return b
}

// tileB holds two nodes of its own and a link reaching into tileA.
func tileB(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder()
	require.NoError(t, b.AddNode(roads, node6, model.Node{Lat: 45.2, Lon: 14.8}))
	require.NoError(t, b.AddNode(roads, node7, model.Node{Lat: 45.3, Lon: 14.9}))
	require.NoError(t, b.AddLink(link8, model.Link{Type: model.Cycleway, Length: 120.5}, node6, node7))
	require.NoError(t, b.AddLink(link9, model.Link{Type: model.Tramway, Length: 42}, node7, node2))

	return b
}

func writeTileFileT(t *testing.T, b *Builder, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, b.WriteFile(path, CreateNew))

	return path
}

func encoded(t *testing.T, g *Graph) []byte {
	t.Helper()

	b, err := g.appendBinary(nil)
	require.NoError(t, err)

	return b
}

func requireSameGraph(t *testing.T, expected, actual *Graph) {
	t.Helper()

	require.True(t, bytes.Equal(encoded(t, expected), encoded(t, actual)), "graphs differ")
}

// envelope wraps an arbitrary body in a valid tile header.
func envelope(t *testing.T, body []byte) []byte {
	t.Helper()

	var buf bytes.Buffer

	_, err := codec.Write(&buf, Magic, Version, RAW, body)
	require.NoError(t, err)

	return buf.Bytes()
}
