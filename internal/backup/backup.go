// Package backup unpacks a single-file project backup into its raw sections.
//
// The container is a magic/version header followed by framed entries:
//
//	nameLen uint8 | name | flags uint8 | length uint32 LE | payload
//
// Flag bit 0 marks a zlib-compressed payload. Entries with names other than
// the six known sections are skipped.
package backup

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/papapumpkin/asperge/internal/decodeerr"
	"github.com/papapumpkin/asperge/internal/section"
)

// Container format constants.
const (
	Magic   = "SWBK"
	Version = 1

	// FlagCompressed marks an entry whose payload is a zlib stream.
	FlagCompressed uint8 = 1 << 0

	headerSize = len(Magic) + 2
)

// Unpack reads the backup at path and returns its six raw sections.
func Unpack(path string) (section.Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading backup %s: %w", path, err)
	}
	return Read(data)
}

// Read decodes an in-memory backup container.
func Read(data []byte) (section.Raw, error) {
	if len(data) < headerSize {
		return nil, malformed("", "truncated header (%d bytes)", len(data))
	}
	if string(data[:len(Magic)]) != Magic {
		return nil, malformed("", "bad magic %q", data[:len(Magic)])
	}
	if v := binary.LittleEndian.Uint16(data[len(Magic):headerSize]); v != Version {
		return nil, malformed("", "unsupported container version %d", v)
	}

	raw := make(section.Raw, len(section.Names))
	r := &entryReader{data: data, off: headerSize}
	for r.remaining() > 0 {
		e, err := r.next()
		if err != nil {
			return nil, err
		}
		if !section.IsKnown(e.name) {
			continue
		}
		if _, dup := raw[e.name]; dup {
			return nil, malformed(e.name, "section appears more than once")
		}
		payload := e.payload
		if e.flags&FlagCompressed != 0 {
			payload, err = inflate(payload)
			if err != nil {
				return nil, malformed(e.name, "decompressing: %v", err)
			}
		}
		raw[e.name] = payload
	}

	if err := raw.Validate(); err != nil {
		return nil, err
	}
	return raw, nil
}

type entry struct {
	name    string
	flags   uint8
	payload []byte
}

// entryReader walks the framed entries of a container.
type entryReader struct {
	data []byte
	off  int
}

func (r *entryReader) remaining() int {
	return len(r.data) - r.off
}

func (r *entryReader) next() (entry, error) {
	start := r.off
	if r.remaining() < 1 {
		return entry{}, malformed("", "truncated entry name length at offset %d", start)
	}
	nameLen := int(r.data[r.off])
	r.off++
	if r.remaining() < nameLen {
		return entry{}, malformed("", "truncated entry name at offset %d", start)
	}
	name := string(r.data[r.off : r.off+nameLen])
	r.off += nameLen

	if r.remaining() < 5 {
		return entry{}, malformed(name, "truncated length prefix at offset %d", start)
	}
	flags := r.data[r.off]
	length := binary.LittleEndian.Uint32(r.data[r.off+1 : r.off+5])
	r.off += 5

	if uint64(length) > uint64(r.remaining()) {
		return entry{}, malformed(name, "length %d exceeds remaining %d bytes", length, r.remaining())
	}
	payload := r.data[r.off : r.off+int(length)]
	r.off += int(length)
	return entry{name: name, flags: flags, payload: payload}, nil
}

func inflate(payload []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

func malformed(name, format string, args ...any) error {
	return &decodeerr.Error{
		Kind:    decodeerr.KindMalformedContainer,
		Section: name,
		Err:     fmt.Errorf(format, args...),
	}
}
