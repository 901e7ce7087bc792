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
	"runtime"

	"m4o.io/osmtile/internal/codec"
)

const (
	// Magic identifies the second generation of the tile format: "OSM2".
	Magic uint32 = 0x4F534D32

	// Version is the current tile format version.
	Version uint32 = 1
)

// Compression is the algorithm used to compress the body of a tile.
type Compression = codec.Compression

const (
	RAW  = codec.RAW
	ZLIB = codec.ZLIB
	LZMA = codec.LZMA
	LZ4  = codec.LZ4
	ZSTD = codec.ZSTD
)

// ParseCompression returns the compression with the given name, e.g. "zstd".
func ParseCompression(s string) (Compression, error) {
	return codec.ParseCompression(s)
}

// DefaultNCpu provides the default number of CPUs.
func DefaultNCpu() uint16 {
	cpus := uint16(runtime.GOMAXPROCS(-1))

	return max(cpus-1, 1)
}

// options provides optional configuration parameters for builders and
// viewers.
type options struct {
	magic       uint32      // expected or written magic number
	version     uint32      // expected or written format version
	compression Compression // compression of written tiles
	nCPU        uint16      // the number of CPUs to use for decoding tiles
}

// Option configures how we set up a builder or a viewer.
type Option func(*options)

// WithMagic sets the magic number written to, and expected of, tiles.  The
// default is Magic.
func WithMagic(m uint32) Option {
	return func(o *options) {
		o.magic = m
	}
}

// WithVersion sets the format version written to, and expected of, tiles.
// The default is Version.
func WithVersion(v uint32) Option {
	return func(o *options) {
		o.version = v
	}
}

// WithCompression specifies the compression algorithm to use when writing
// tiles.  The default is ZLIB.  Reading honours whatever a tile declares.
func WithCompression(c Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithNCpus lets you set the number of CPUs to use for decoding tiles.
func WithNCpus(n uint16) Option {
	return func(o *options) {
		o.nCPU = n
	}
}

// defaultConfig provides a default configuration for builders and viewers.
var defaultConfig = options{
	magic:       Magic,
	version:     Version,
	compression: ZLIB,
	nCPU:        DefaultNCpu(),
}

func newOptions(opts []Option) options {
	cfg := defaultConfig

	for _, opt := range opts {
		opt(&cfg)
	}

	cfg.nCPU = max(cfg.nCPU, 1)

	return cfg
}
