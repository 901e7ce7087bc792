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

package codec

import (
	"fmt"
	"io"

	"m4o.io/osmtile/internal/codec/packers"
)

// Compression is the algorithm used to compress the tables of a tile.
type Compression uint8

const (
	RAW Compression = iota
	ZLIB
	LZMA
	LZ4
	ZSTD
)

func (c Compression) String() string {
	switch c {
	case RAW:
		return "raw"
	case ZLIB:
		return "zlib"
	case LZMA:
		return "lzma"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("Compression(%d)", uint8(c))
	}
}

// ParseCompression returns the Compression named s.
func ParseCompression(s string) (Compression, error) {
	for c := RAW; c <= ZSTD; c++ {
		if c.String() == s {
			return c, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownCompressionType, s)
}

// Packer is the interface that groups methods for compressing the tables of a
// tile and retrieving the compressed bytes.
type Packer interface {
	// WriteCloser is used to write the contents to be packed.  Be sure to
	// call the Close method to ensure that all the contents are packed.
	io.WriteCloser

	// Bytes returns the packed contents.  It is only valid after Close.
	Bytes() []byte
}

// Pack compresses body.
func Pack(body []byte, c Compression) ([]byte, error) {
	p, err := newPacker(c)
	if err != nil {
		return nil, err
	}

	if _, err = p.Write(body); err != nil {
		return nil, fmt.Errorf("could not compress tile: %w", err)
	}

	if err = p.Close(); err != nil {
		return nil, fmt.Errorf("could not close writer: %w", err)
	}

	return p.Bytes(), nil
}

// newPacker creates the appropriate Packer for the compression.
func newPacker(c Compression) (Packer, error) {
	switch c {
	case RAW:
		return packers.NewRawPacker(), nil
	case ZLIB:
		return packers.NewZlibPacker(), nil
	case LZMA:
		return packers.NewLzmaPacker()
	case LZ4:
		return packers.NewLz4Packer(), nil
	case ZSTD:
		return packers.NewZstdPacker()
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, c)
	}
}
