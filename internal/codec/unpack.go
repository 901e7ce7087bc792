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
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz/lzma"
)

var ErrUnknownCompressionType = errors.New("unknown compression type")

const maxPrealloc = 64 << 20

// unpack uncompresses a tile payload that is expected to hold rawSize bytes.
// Reading stops one byte past rawSize so an oversized payload is detected
// without inflating all of it.
func unpack(c Compression, payload []byte, rawSize uint32) ([]byte, error) {
	var factory func(r io.Reader) (io.Reader, error)

	switch c {
	case RAW:
		return payload, nil
	case ZLIB:
		factory = func(r io.Reader) (io.Reader, error) {
			return zlib.NewReader(r)
		}
	case LZMA:
		factory = func(r io.Reader) (io.Reader, error) {
			return lzma.NewReader(r)
		}
	case LZ4:
		factory = func(r io.Reader) (io.Reader, error) {
			return lz4.NewReader(r), nil
		}
	case ZSTD:
		factory = func(r io.Reader) (io.Reader, error) {
			d, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}

			return d.IOReadCloser(), nil
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownCompressionType, c)
	}

	rdr, err := factory(bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("unpacker factory error: %w", err)
	}

	if closer, ok := rdr.(io.Closer); ok {
		defer closer.Close()
	}

	// the declared size is not trusted until the body has been checked
	buf := bytes.NewBuffer(make([]byte, 0, min(int64(rawSize), maxPrealloc)+bytes.MinRead))

	if _, err := buf.ReadFrom(io.LimitReader(rdr, int64(rawSize)+1)); err != nil {
		return nil, fmt.Errorf("unpacker read error: %w", err)
	}

	return buf.Bytes(), nil
}
