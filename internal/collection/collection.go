// Package collection reads the binary frequency collection format the
// builder consumes: a documents file, a frequencies file, and a sizes
// file, each a concatenation of [n:u32][n x u32] lists, memory-mapped
// read-only via golang.org/x/exp/mmap.
package collection

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/mmap"
)

// FormatError reports a malformed binary-collection file.
type FormatError struct {
	File   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("collection: malformed %s: %s", e.File, e.Reason)
}

const listHeaderSize = 4

// readList decodes one [n:u32][n x u32] list starting at offset, returning
// its values and the offset of the next list.
func readList(r io.ReaderAt, offset int64) ([]uint32, int64, error) {
	var lenBuf [listHeaderSize]byte
	if _, err := r.ReadAt(lenBuf[:], offset); err != nil {
		return nil, 0, err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])

	buf := make([]byte, int64(n)*4)
	if n > 0 {
		if _, err := r.ReadAt(buf, offset+listHeaderSize); err != nil {
			return nil, 0, err
		}
	}
	vals := make([]uint32, n)
	for i := range vals {
		vals[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return vals, offset + listHeaderSize + int64(n)*4, nil
}

// listFile is the shared scan-once-then-random-access primitive behind
// DocumentReader, FrequencyReader, and SizeReader: it indexes every list's
// start offset on open so later access by index is O(1).
type listFile struct {
	ra      *mmap.ReaderAt
	offsets []int64 // len == numLists+1; offsets[i] is list i's start
	header  []uint32
}

func openListFile(path string, skipHeader bool) (*listFile, error) {
	adviseSequential(path)

	ra, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	offset := int64(0)
	var header []uint32
	if skipHeader {
		h, next, err := readList(ra, offset)
		if err != nil {
			ra.Close()
			return nil, &FormatError{File: path, Reason: "missing header list"}
		}
		header = h
		offset = next
	}

	size := int64(ra.Len())
	var offsets []int64
	for offset < size {
		offsets = append(offsets, offset)
		_, next, err := readList(ra, offset)
		if err != nil {
			ra.Close()
			return nil, &FormatError{File: path, Reason: "truncated list"}
		}
		offset = next
	}
	offsets = append(offsets, offset)

	return &listFile{ra: ra, offsets: offsets, header: header}, nil
}

func (f *listFile) numLists() int { return len(f.offsets) - 1 }

func (f *listFile) list(i int) ([]uint32, error) {
	if i < 0 || i >= f.numLists() {
		return nil, fmt.Errorf("collection: list index %d out of range [0,%d)", i, f.numLists())
	}
	vals, _, err := readList(f.ra, f.offsets[i])
	return vals, err
}

func (f *listFile) Close() error { return f.ra.Close() }

// DocumentReader reads the documents file: a leading single-element list
// holding the collection's document count N, followed by one docid list
// per term.
type DocumentReader struct {
	file    *listFile
	numDocs uint32
}

// OpenDocumentReader memory-maps path and indexes its per-term lists.
func OpenDocumentReader(path string) (*DocumentReader, error) {
	f, err := openListFile(path, true)
	if err != nil {
		return nil, err
	}
	if len(f.header) != 1 {
		f.Close()
		return nil, &FormatError{File: path, Reason: "header list must hold exactly one value"}
	}
	return &DocumentReader{file: f, numDocs: f.header[0]}, nil
}

// NumDocs returns N, the collection's document count.
func (r *DocumentReader) NumDocs() uint32 { return r.numDocs }

// NumTerms returns the number of per-term docid lists.
func (r *DocumentReader) NumTerms() int { return r.file.numLists() }

// DocIDs returns term t's docid list.
func (r *DocumentReader) DocIDs(t int) ([]uint32, error) { return r.file.list(t) }

// Close unmaps the underlying file.
func (r *DocumentReader) Close() error { return r.file.Close() }

// FrequencyReader reads the frequencies file: one list per term, parallel
// to DocumentReader's docid lists, with no leading header.
type FrequencyReader struct {
	file *listFile
}

// OpenFrequencyReader memory-maps path and indexes its per-term lists.
func OpenFrequencyReader(path string) (*FrequencyReader, error) {
	f, err := openListFile(path, false)
	if err != nil {
		return nil, err
	}
	return &FrequencyReader{file: f}, nil
}

// NumTerms returns the number of per-term frequency lists.
func (r *FrequencyReader) NumTerms() int { return r.file.numLists() }

// Freqs returns term t's frequency list.
func (r *FrequencyReader) Freqs(t int) ([]uint32, error) { return r.file.list(t) }

// Close unmaps the underlying file.
func (r *FrequencyReader) Close() error { return r.file.Close() }

// SizeReader reads the sizes file: a single list of per-document lengths.
// Unlike the documents file, it carries no leading N/header list — N is
// simply the single list's own length, an asymmetry the two readers don't
// otherwise share.
type SizeReader struct {
	sizes []uint32
	file  *listFile
}

// OpenSizeReader memory-maps path and reads its one list of document
// lengths.
func OpenSizeReader(path string) (*SizeReader, error) {
	f, err := openListFile(path, false)
	if err != nil {
		return nil, err
	}
	if f.numLists() != 1 {
		f.Close()
		return nil, &FormatError{File: path, Reason: "sizes file must hold exactly one list"}
	}
	sizes, err := f.list(0)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &SizeReader{sizes: sizes, file: f}, nil
}

// Len returns the number of documents.
func (r *SizeReader) Len() int { return len(r.sizes) }

// Size returns document d's length.
func (r *SizeReader) Size(d int) uint32 { return r.sizes[d] }

// Sizes returns every document length, in docid order.
func (r *SizeReader) Sizes() []uint32 { return r.sizes }

// Close unmaps the underlying file.
func (r *SizeReader) Close() error { return r.file.Close() }
