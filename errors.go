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
	"errors"

	"m4o.io/osmtile/internal/codec"
	"m4o.io/osmtile/internal/table"
)

var (
	// ErrFormat is returned when a tile is readable but malformed: wrong magic
	// number or version, failed checksum, truncated or undecodable tables.
	ErrFormat = codec.ErrFormat

	// ErrBadMagic is returned when a tile's magic number is not the expected
	// one.  It wraps ErrFormat.
	ErrBadMagic = codec.ErrBadMagic

	// ErrBadVersion is returned when a tile's format version is not the
	// expected one.  It wraps ErrFormat.
	ErrBadVersion = codec.ErrBadVersion

	// ErrChecksum is returned when a tile body is corrupt.  It wraps ErrFormat.
	ErrChecksum = codec.ErrChecksum

	// ErrMalformed is returned when the tables of a tile cannot be decoded.
	// Errors carrying it also carry ErrFormat.
	ErrMalformed = table.ErrMalformed

	// ErrUnknownCompressionType is returned for an unsupported compression.
	ErrUnknownCompressionType = codec.ErrUnknownCompressionType

	// ErrIO is returned when a tile file or stream cannot be opened, read or
	// written.  The underlying error, e.g. fs.ErrNotExist, is also wrapped.
	ErrIO = codec.ErrIO

	// ErrNotFound is returned by lookups of keys that are not in the graph.
	ErrNotFound = table.ErrNotFound

	// ErrDuplicateKey is returned when adding a key that is already present.
	ErrDuplicateKey = table.ErrDuplicateKey

	// ErrKeyCollision is returned when two tiles hold different entities
	// under the same key.
	ErrKeyCollision = table.ErrKeyCollision

	// ErrAlreadyLoaded is returned when loading a base tile into a viewer
	// that already holds one.
	ErrAlreadyLoaded = errors.New("viewer already loaded")

	// ErrFileExists is returned when writing a tile in CreateNew mode to a
	// path that already exists.
	ErrFileExists = errors.New("tile file already exists")

	// ErrInvalidTileName is returned when a file name does not follow the
	// tile naming convention.
	ErrInvalidTileName = errors.New("invalid tile file name")
)

// KeyError reports the entity kind and key of a failed lookup, insertion or
// merge.
type KeyError = table.KeyError
