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
	"path/filepath"
	"strconv"
	"strings"

	"m4o.io/osmtile/model"
)

// TileExt is the file extension of tile files.
const TileExt = ".osmt"

// TileFileName returns the path of the tile with the given id under dir.
func TileFileName(dir string, id model.TileID) string {
	return filepath.Join(dir, strconv.FormatUint(uint64(id), 10)+TileExt)
}

// ParseTileFileName returns the id of the tile stored at path.
func ParseTileFileName(path string) (model.TileID, error) {
	base := filepath.Base(path)

	digits, ok := strings.CutSuffix(base, TileExt)
	if !ok || digits == "" || digits[0] == '+' || digits[0] == '-' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTileName, base)
	}

	id, err := strconv.ParseUint(digits, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrInvalidTileName, base, err)
	}

	if TileFileName("", model.TileID(id)) != base {
		// leading zeros would map two names to one tile
		return 0, fmt.Errorf("%w: %q is not canonical", ErrInvalidTileName, base)
	}

	return model.TileID(id), nil
}
