// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/pierrec/lz4"
	"golang.org/x/exp/mmap"
)

// Open opens the kar archived from r. It will also check
// if the file is actually a kar archive, will return an error
// when file incorrect.
func Open(r io.ReaderAt) (*Archive, error) {
	magic := make([]byte, MagicLength)
	if num, err := r.ReadAt(magic, 0); num < MagicLength || !bytes.Equal(magic, Magic[:]) {
		if err != nil && err != io.EOF {
			return nil, err
		}
		return nil, ErrFileFormat
	}

	headerSizeBytes := make([]byte, HeaderSizeNumberLength)
	if num, err := r.ReadAt(headerSizeBytes, MagicLength); num < HeaderSizeNumberLength {
		if err != nil && err != io.EOF {
			return nil, err
		}
		return nil, ErrFileFormat
	}

	size, sized := readerSize(r)
	limit := int64(MaxHeaderSize)
	if sized {
		limit = size - MagicLength - HeaderSizeNumberLength
	}

	headerSize, err := binaryToint64(headerSizeBytes)
	if err != nil || headerSize <= 0 || headerSize > limit {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); int64(num) < headerSize {
		if err != nil && err != io.EOF {
			return nil, err
		}
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}

	dataSize := int64(-1)
	if sized {
		dataSize = limit - headerSize
	}
	index := make(map[string]IndexEntry, len(header.Index))
	for _, e := range header.Index {
		if err := e.check(dataSize); err != nil {
			return nil, err
		}
		index[e.Name] = e
	}

	return &Archive{
		reader:     r,
		header:     header,
		index:      index,
		dataOffset: MagicLength + HeaderSizeNumberLength + headerSize,
	}, nil
}

// check rejects entries that do not fit in a data section of dataSize
// bytes; a negative dataSize is unknown.
func (e IndexEntry) check(dataSize int64) error {
	if e.Offset < 0 || e.Size < 0 || e.CompressedSize < 0 {
		return fmt.Errorf("%w: %s has a negative offset or size", ErrFileFormat, e.Name)
	}
	if dataSize >= 0 && (e.CompressedSize > dataSize || e.Offset > dataSize-e.CompressedSize) {
		return fmt.Errorf("%w: %s extends past the end of the archive", ErrFileFormat, e.Name)
	}
	return nil
}

// readerSize returns the length of r when r can tell it
func readerSize(r io.ReaderAt) (int64, bool) {
	switch s := r.(type) {
	case interface{ Size() int64 }:
		return s.Size(), true
	case interface{ Len() int }:
		return int64(s.Len()), true
	case interface{ Stat() (os.FileInfo, error) }:
		if fi, err := s.Stat(); err == nil {
			return fi.Size(), true
		}
	}
	return 0, false
}

// OpenFile memory maps the archive at path and opens it.
// Closing the Archive unmaps the file.
func OpenFile(path string) (*Archive, error) {
	r, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(r)
	if err != nil {
		r.Close()
		return nil, err
	}
	return ar, nil
}

// Archive provides concurrent io for a kar file, and can provide
// an io.Reader for each file separately to perform actions on.
type Archive struct {
	reader     io.ReaderAt
	header     Header
	index      map[string]IndexEntry
	dataOffset int64
}

// Header returns the archive header
func (a *Archive) Header() Header {
	return a.header
}

// Names lists the files in the order they were added
func (a *Archive) Names() []string {
	names := make([]string, len(a.header.Index))
	for i, e := range a.header.Index {
		names[i] = e.Name
	}
	return names
}

// ReadAll returns the entire contents of a file with a given name
func (a *Archive) ReadAll(name string) ([]byte, error) {
	r, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	buf := bytes.NewBuffer(make([]byte, 0, min(r.entry.Size, maxPrealloc)))
	// one byte past the indexed size is enough to detect a mismatch
	limit := r.entry.Size
	if limit < math.MaxInt64 {
		limit++
	}
	if _, err := io.Copy(buf, io.LimitReader(r, limit)); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFileFormat, name, err)
	}
	if int64(buf.Len()) != r.entry.Size {
		return nil, fmt.Errorf("%w: %s is %d bytes, index says %d", ErrFileFormat, name, buf.Len(), r.entry.Size)
	}
	return buf.Bytes(), nil
}

// Find is ReadAll, it lets an Archive serve as an asset source
func (a *Archive) Find(name string) ([]byte, error) {
	return a.ReadAll(name)
}

// Open returns a Reader for a file in the Archive
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.index[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	section := io.NewSectionReader(a.reader, a.dataOffset+entry.Offset, entry.CompressedSize)
	return &Reader{
		Reader: lz4.NewReader(section),
		entry:  entry,
	}, nil
}

// Close closes the underlying reader if it can be closed
func (a *Archive) Close() error {
	if c, ok := a.reader.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Reader is a reader for a single file in an Archive.
// Abstracts away the location that needs to be known.
// Reads return already decompressed data.
type Reader struct {
	io.Reader

	entry IndexEntry
}

// Size returns the decompressed size of the file
func (r *Reader) Size() int64 {
	return r.entry.Size
}
