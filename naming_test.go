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
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"m4o.io/osmtile/model"
)

func TestTileFileName(t *testing.T) {
	assert.Equal(t, filepath.Join("tiles", "42.osmt"), TileFileName("tiles", 42))
	assert.Equal(t, "0.osmt", TileFileName("", 0))
	assert.Equal(t, filepath.Join("/data", "4294967295.osmt"), TileFileName("/data/", 4294967295))
	assert.Equal(t, TileFileName("tiles", 7), TileFileName("tiles", 7))
}

func TestParseTileFileName(t *testing.T) {
	for _, id := range []model.TileID{0, 1, 42, 4294967295} {
		got, err := ParseTileFileName(TileFileName("some/dir", id))
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}
}

func TestParseTileFileNameInvalid(t *testing.T) {
	tests := []string{
		"42.pbf",
		".osmt",
		"tile.osmt",
		"-1.osmt",
		"+1.osmt",
		"042.osmt",
		"4294967296.osmt",
	}

	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseTileFileName(name)
			assert.ErrorIs(t, err, ErrInvalidTileName)
		})
	}
}
