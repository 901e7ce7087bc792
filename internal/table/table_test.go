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

package table

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmtile/model"
)

func newNodes(t *testing.T, nodes map[model.NodeKey]model.Node) *Table[model.NodeKey, model.Node] {
	t.Helper()

	tbl := New[model.NodeKey, model.Node]("node")
	for k, n := range nodes {
		require.NoError(t, tbl.Add(k, n))
	}

	return tbl
}

func TestAddGet(t *testing.T) {
	tbl := newNodes(t, map[model.NodeKey]model.Node{
		1: {Lat: 45, Lon: 14.6},
		2: {Lat: 45.1, Lon: 14.7},
	})

	assert.Equal(t, 2, tbl.Len())
	assert.True(t, tbl.Has(1))
	assert.False(t, tbl.Has(3))

	n, err := tbl.Get(2)
	require.NoError(t, err)
	assert.Equal(t, model.Node{Lat: 45.1, Lon: 14.7}, n)
}

func TestGetMissing(t *testing.T) {
	tbl := newNodes(t, nil)

	n, err := tbl.Get(42)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, model.Node{}, n)

	var keyErr *KeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, "node", keyErr.Kind)
	assert.Equal(t, int64(42), keyErr.Key)
	assert.Equal(t, "node 42: key not found", err.Error())
}

func TestAddDuplicate(t *testing.T) {
	tbl := newNodes(t, map[model.NodeKey]model.Node{1: {Lat: 45, Lon: 14.6}})

	err := tbl.Add(1, model.Node{Lat: 1, Lon: 1})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	n, err := tbl.Get(1)
	require.NoError(t, err)
	assert.Equal(t, model.Node{Lat: 45, Lon: 14.6}, n, "duplicate add must not overwrite")
}

func TestGetReturnsCopy(t *testing.T) {
	tbl := New[model.AreaKey, model.Area]("area")
	require.NoError(t, tbl.Add(1, model.Area{Name: "a"}))

	a, err := tbl.Get(1)
	require.NoError(t, err)
	a.Name = "b"

	a, err = tbl.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "a", a.Name)
}

func TestKeysAndAllAreOrdered(t *testing.T) {
	tbl := newNodes(t, map[model.NodeKey]model.Node{
		7: {}, -3: {}, 12: {}, 0: {},
	})

	assert.Equal(t, []model.NodeKey{-3, 0, 7, 12}, tbl.Keys())

	var keys []model.NodeKey
	for k := range tbl.All() {
		keys = append(keys, k)
	}

	assert.Equal(t, []model.NodeKey{-3, 0, 7, 12}, keys)

	keys = keys[:0]
	for k := range tbl.All() {
		keys = append(keys, k)
		if k == 0 {
			break
		}
	}

	assert.Equal(t, []model.NodeKey{-3, 0}, keys)
}

func TestMerge(t *testing.T) {
	a := newNodes(t, map[model.NodeKey]model.Node{
		1: {Lat: 45, Lon: 14.6},
		2: {Lat: 45.1, Lon: 14.7},
	})
	b := newNodes(t, map[model.NodeKey]model.Node{
		2: {Lat: 45.1, Lon: 14.7},
		6: {Lat: 45.2, Lon: 14.8},
	})

	require.NoError(t, a.Merge(b))
	assert.Equal(t, []model.NodeKey{1, 2, 6}, a.Keys())
	assert.Equal(t, []model.NodeKey{2, 6}, b.Keys(), "merge must not modify its argument")
}

func TestMergeCollision(t *testing.T) {
	a := newNodes(t, map[model.NodeKey]model.Node{
		1: {Lat: 45, Lon: 14.6},
		2: {Lat: 45.1, Lon: 14.7},
	})
	b := newNodes(t, map[model.NodeKey]model.Node{
		2: {Lat: 45.1, Lon: 14.70001},
		6: {Lat: 45.2, Lon: 14.8},
	})

	err := a.Merge(b)
	assert.ErrorIs(t, err, ErrKeyCollision)

	var keyErr *KeyError
	require.True(t, errors.As(err, &keyErr))
	assert.Equal(t, int64(2), keyErr.Key)

	assert.Equal(t, []model.NodeKey{1, 2}, a.Keys(), "failed merge must leave the table unchanged")
}

func TestMergeIsCommutative(t *testing.T) {
	build := func() (*Table[model.NodeKey, model.Node], *Table[model.NodeKey, model.Node]) {
		return newNodes(t, map[model.NodeKey]model.Node{1: {Lat: 1}, 2: {Lat: 2}}),
			newNodes(t, map[model.NodeKey]model.Node{2: {Lat: 2}, 3: {Lat: 3}})
	}

	a, b := build()
	require.NoError(t, a.Merge(b))

	c, d := build()
	require.NoError(t, d.Merge(c))

	ab, err := a.AppendBinary(nil)
	require.NoError(t, err)

	dc, err := d.AppendBinary(nil)
	require.NoError(t, err)

	assert.Equal(t, ab, dc)
}

func TestRoundTrip(t *testing.T) {
	links := New[model.LinkKey, model.Link]("link")
	require.NoError(t, links.Add(3, model.Link{Type: model.Subway, Length: 666, From: 1, To: 2}))
	require.NoError(t, links.Add(9, model.Link{Type: model.Cycleway, Length: 12.5, From: 7, To: 2}))
	require.NoError(t, links.Add(-8, model.Link{Type: model.Tramway, Length: 1, From: 6, To: 7}))

	b, err := links.AppendBinary([]byte{0xca, 0xfe})
	require.NoError(t, err)

	// trailing data belongs to whatever follows the table
	b = append(b, 0xbe, 0xef)

	got, n, err := Decode[model.LinkKey, model.Link]("link", b[2:])
	require.NoError(t, err)
	assert.Equal(t, len(b)-4, n)
	assert.Equal(t, links.Keys(), got.Keys())

	for k, l := range links.All() {
		g, err := got.Get(k)
		require.NoError(t, err)
		assert.Equal(t, l, g)
	}
}

func TestKeysAreDeltaCoded(t *testing.T) {
	tbl := New[model.NodeKey, model.Node]("node")
	require.NoError(t, tbl.Add(1_000_000, model.Node{}))
	require.NoError(t, tbl.Add(1_000_001, model.Node{}))

	b, err := tbl.AppendBinary(nil)
	require.NoError(t, err)

	rec, err := model.Node{}.AppendBinary(nil)
	require.NoError(t, err)

	// count, first key in full, then a delta of one
	assert.Equal(t, 1+3+1+len(rec)+1+1+len(rec), len(b))
	assert.Equal(t, byte(0x02), b[1+3+1+len(rec)])
}

func TestExtremeKeysRoundTrip(t *testing.T) {
	tbl := newNodes(t, map[model.NodeKey]model.Node{
		math.MinInt64: {Lat: -90},
		0:             {},
		math.MaxInt64: {Lat: 90},
	})

	b, err := tbl.AppendBinary(nil)
	require.NoError(t, err)

	got, _, err := Decode[model.NodeKey, model.Node]("node", b)
	require.NoError(t, err)
	assert.Equal(t, tbl.Keys(), got.Keys())
}

func TestDecodeEmpty(t *testing.T) {
	b, err := New[model.PlaceKey, model.Place]("place").AppendBinary(nil)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, b)

	got, n, err := Decode[model.PlaceKey, model.Place]("place", b)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, got.Len())
}

func TestDecodeMalformed(t *testing.T) {
	nodes := newNodes(t, map[model.NodeKey]model.Node{1: {Lat: 45, Lon: 14.6}})
	valid, err := nodes.AppendBinary(nil)
	require.NoError(t, err)

	// two entries, both keyed 1: the second key is a zero delta
	entry := valid[1:]
	duplicate := append(append(append([]byte{0x02}, entry...), 0x00), entry[1:]...)

	// two entries, keyed 1 then 0
	descending := append(append(append([]byte{0x02}, entry...), 0x01), entry[1:]...)

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"truncated", valid[:len(valid)-1]},
		{"count too large", []byte{0x7f, 0x02, 0x00}},
		{"bad record", []byte{0x01, 0x02, 0x01, 0x00}},
		{"duplicate key", duplicate},
		{"descending keys", descending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode[model.NodeKey, model.Node]("node", tt.data)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}
