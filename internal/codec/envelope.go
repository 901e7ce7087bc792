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

// Package codec implements the envelope shared by every tile file: a fixed
// header identifying the format followed by the, possibly compressed, tile
// body.
//
//	[magic uint32][version uint32][compression uint8][padding 3]
//	[raw size uint32][crc32 uint32][payload]
//
// All integers are big-endian.  The checksum and raw size describe the body
// before compression.
package codec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"math"
)

var (
	// ErrFormat is returned when a tile is readable but is not a valid tile
	// of the expected format.
	ErrFormat = errors.New("invalid tile format")

	// ErrBadMagic is returned when the magic number differs from the
	// expected one.
	ErrBadMagic = fmt.Errorf("%w: magic number mismatch", ErrFormat)

	// ErrBadVersion is returned when the format version differs from the
	// expected one.
	ErrBadVersion = fmt.Errorf("%w: version mismatch", ErrFormat)

	// ErrChecksum is returned when the body does not match its checksum or
	// recorded size.
	ErrChecksum = fmt.Errorf("%w: checksum mismatch", ErrFormat)

	// ErrTruncated is returned when a tile ends before its header does.
	ErrTruncated = fmt.Errorf("%w: truncated header", ErrFormat)

	// ErrIO is returned when the underlying reader or writer fails.
	ErrIO = errors.New("tile i/o error")
)

// Header is the fixed-size prefix of a tile.
type Header struct {
	Magic       uint32
	Version     uint32
	Compression Compression
	Padding     [3]byte
	RawSize     uint32
	Checksum    uint32
}

// HeaderSize is the encoded size of a Header.
var HeaderSize = binary.Size(Header{})

// Write compresses body and writes it, preceded by a header carrying magic,
// version and c, to w.  It returns the number of bytes written.
func Write(w io.Writer, magic, version uint32, c Compression, body []byte) (int64, error) {
	if uint64(len(body)) > math.MaxUint32 {
		return 0, fmt.Errorf("tile body of %d bytes is too large", len(body))
	}

	payload, err := Pack(body, c)
	if err != nil {
		return 0, err
	}

	hdr := Header{
		Magic:       magic,
		Version:     version,
		Compression: c,
		RawSize:     uint32(len(body)),
		Checksum:    crc32.ChecksumIEEE(body),
	}

	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize+len(payload)))

	// writes to a bytes.Buffer cannot fail
	_ = binary.Write(buf, binary.BigEndian, hdr)
	buf.Write(payload)

	n, err := buf.WriteTo(w)
	if err != nil {
		return n, fmt.Errorf("%w: could not write tile: %w", ErrIO, err)
	}

	return n, nil
}

// Read reads a whole tile from r, validates its header against the expected
// magic and version and returns the uncompressed body.
func Read(r io.Reader, magic, version uint32) ([]byte, Header, int64, error) {
	raw := make([]byte, HeaderSize)

	if n, err := io.ReadFull(r, raw); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, Header{}, int64(n), fmt.Errorf("%w: got %d of %d bytes", ErrTruncated, n, HeaderSize)
		}

		return nil, Header{}, int64(n), fmt.Errorf("%w: could not read tile header: %w", ErrIO, err)
	}

	var hdr Header

	_ = binary.Read(bytes.NewReader(raw), binary.BigEndian, &hdr)

	if hdr.Magic != magic {
		return nil, hdr, int64(HeaderSize), fmt.Errorf("%w: got 0x%08x, expected 0x%08x", ErrBadMagic, hdr.Magic, magic)
	}

	if hdr.Version != version {
		return nil, hdr, int64(HeaderSize), fmt.Errorf("%w: got %d, expected %d", ErrBadVersion, hdr.Version, version)
	}

	payload, err := io.ReadAll(r)
	total := int64(HeaderSize + len(payload))

	if err != nil {
		return nil, hdr, total, fmt.Errorf("%w: could not read tile body: %w", ErrIO, err)
	}

	body, err := unpack(hdr.Compression, payload, hdr.RawSize)
	if err != nil {
		return nil, hdr, total, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	if len(body) != int(hdr.RawSize) {
		return nil, hdr, total, fmt.Errorf("%w: body is %d bytes, expected %d", ErrChecksum, len(body), hdr.RawSize)
	}

	if sum := crc32.ChecksumIEEE(body); sum != hdr.Checksum {
		return nil, hdr, total, fmt.Errorf("%w: got 0x%08x, expected 0x%08x", ErrChecksum, sum, hdr.Checksum)
	}

	return body, hdr, total, nil
}
