// Package groupfile reads the Build engine's GRP container format: a flat
// archive of uncompressed files used to ship a game's CON/ART/demo assets.
// The launch orchestrator (C7) uses it to pull demo files out of a mod's
// group files before staging (spec §4.7 step e.3).
package groupfile

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"duke3dmm/internal/strutil"
)

const (
	magic         = "KenSilverman"
	entryNameSize = 12
)

// Entry describes one file stored inside a group file.
type Entry struct {
	Name   string
	Size   uint32
	offset int64
}

// Reader is an opened group file: the entry table plus a handle to read
// entry contents on demand.
type Reader struct {
	f       *os.File
	Entries []Entry
}

// Open reads a group file's header and entry table. The caller must Close
// the returned Reader.
func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	r, err := newReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return r, nil
}

func newReader(f *os.File) (*Reader, error) {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(f, header); err != nil {
		return nil, fmt.Errorf("groupfile: reading header: %w", err)
	}
	if string(header) != magic {
		return nil, fmt.Errorf("groupfile: not a group file (bad magic)")
	}

	var count uint32
	if err := binary.Read(f, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("groupfile: reading entry count: %w", err)
	}

	entries := make([]Entry, 0, count)
	for i := uint32(0); i < count; i++ {
		nameBuf := make([]byte, entryNameSize)
		if _, err := io.ReadFull(f, nameBuf); err != nil {
			return nil, fmt.Errorf("groupfile: reading entry %d name: %w", i, err)
		}
		var size uint32
		if err := binary.Read(f, binary.LittleEndian, &size); err != nil {
			return nil, fmt.Errorf("groupfile: reading entry %d size: %w", i, err)
		}
		entries = append(entries, Entry{
			Name: strings.TrimRight(string(nameBuf), "\x00"),
			Size: size,
		})
	}

	dataStart, err := f.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, err
	}
	offset := dataStart
	for i := range entries {
		entries[i].offset = offset
		offset += int64(entries[i].Size)
	}

	return &Reader{f: f, Entries: entries}, nil
}

// Close releases the underlying file handle.
func (r *Reader) Close() error {
	return r.f.Close()
}

// ReadEntry returns an entry's raw contents by name (case-insensitive, per
// the Build engine's DOS filename conventions).
func (r *Reader) ReadEntry(name string) ([]byte, error) {
	for _, e := range r.Entries {
		if !strutil.EqualFold(e.Name, name) {
			continue
		}
		buf := make([]byte, e.Size)
		if _, err := r.f.ReadAt(buf, e.offset); err != nil {
			return nil, fmt.Errorf("groupfile: reading entry %q: %w", name, err)
		}
		return buf, nil
	}
	return nil, fmt.Errorf("groupfile: no entry named %q", name)
}

// DemoEntries returns every entry whose name carries a .DMO extension.
func (r *Reader) DemoEntries() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if strings.EqualFold(fileExt(e.Name), ".dmo") {
			out = append(out, e)
		}
	}
	return out
}

func fileExt(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return ""
	}
	return name[i:]
}
