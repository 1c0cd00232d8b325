package reader

import (
	"fmt"
	"io"
	"iter"
	"os"
	"strings"
)

// Document is a parsed document: its object table, trailer and the flat
// page list built from the page tree.
type Document struct {
	Version string // version from the file header, e.g. "1.3"
	xref    xrefTable
	trailer Dict
	data    []byte
	pages   []*Page
}

// Open parses a document file from disk.
func Open(filename string) (*Document, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("reader: opening %s: %w", filename, err)
	}
	return parse(data)
}

// ReadFrom parses a document from a reader. The content is read entirely
// into memory for random access.
func ReadFrom(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reader: reading input: %w", err)
	}
	return parse(data)
}

func parse(data []byte) (*Document, error) {
	doc := &Document{data: data}
	doc.Version = parseVersion(data)

	startXRef, err := findStartXRef(data)
	if err != nil {
		return nil, err
	}
	xref, trailer, err := parseXRefTable(data, startXRef)
	if err != nil {
		return nil, err
	}
	doc.xref = xref
	doc.trailer = trailer

	if _, encrypted := trailer["Encrypt"]; encrypted {
		return nil, fmt.Errorf("reader: encrypted documents are not supported")
	}

	if err := doc.buildPageList(); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseVersion extracts the version from the "%PDF-x.y" header.
func parseVersion(data []byte) string {
	header := string(data[:min(20, len(data))])
	if idx := strings.Index(header, "%PDF-"); idx >= 0 {
		end := idx + 5
		for end < len(header) && header[end] != '\n' && header[end] != '\r' {
			end++
		}
		return header[idx+5 : end]
	}
	return ""
}

// NumPages returns the number of pages in the document.
func (d *Document) NumPages() int {
	return len(d.pages)
}

// Page returns the page at the given 1-based index.
func (d *Document) Page(n int) (*Page, error) {
	if n < 1 || n > len(d.pages) {
		return nil, fmt.Errorf("reader: page %d out of range [1, %d]", n, len(d.pages))
	}
	return d.pages[n-1], nil
}

// Pages returns an iterator over all pages with their 1-based index.
func (d *Document) Pages() iter.Seq2[int, *Page] {
	return func(yield func(int, *Page) bool) {
		for i, page := range d.pages {
			if !yield(i+1, page) {
				return
			}
		}
	}
}

// Metadata returns the document information dictionary as decoded strings.
func (d *Document) Metadata() map[string]string {
	meta := make(map[string]string)

	infoObj, ok := d.trailer["Info"]
	if !ok {
		return meta
	}
	resolved, err := d.resolveIfRef(infoObj)
	if err != nil {
		return meta
	}
	infoDict, ok := resolved.(Dict)
	if !ok {
		return meta
	}

	for _, key := range []Name{"Title", "Author", "Subject", "Keywords", "Creator", "Producer", "CreationDate"} {
		if s, ok := infoDict[key].(String); ok {
			meta[string(key)] = decodeTextString(s.Value)
		}
	}
	return meta
}

// Language returns the document language tag from the catalog, if set.
func (d *Document) Language() string {
	root, err := d.resolveIfRef(d.trailer["Root"])
	if err != nil {
		return ""
	}
	catalog, ok := root.(Dict)
	if !ok {
		return ""
	}
	if s, ok := catalog["Lang"].(String); ok {
		return decodeTextString(s.Value)
	}
	return ""
}

// resolve loads the object an indirect reference points at.
func (d *Document) resolve(ref Reference) (Object, error) {
	entry, ok := d.xref[ref.Number]
	if !ok || !entry.InUse {
		return Null{}, nil
	}
	if entry.Offset < 0 || int(entry.Offset) >= len(d.data) {
		return nil, fmt.Errorf("reader: object %d offset %d out of bounds", ref.Number, entry.Offset)
	}

	p := newParser(d.data[entry.Offset:])
	obj, err := p.ParseIndirectObject()
	if err != nil {
		return nil, fmt.Errorf("reader: parsing object %d: %w", ref.Number, err)
	}
	return obj.Value, nil
}

func (d *Document) resolveIfRef(obj Object) (Object, error) {
	if ref, ok := obj.(Reference); ok {
		return d.resolve(ref)
	}
	return obj, nil
}

// ResolveReference resolves an indirect reference to the actual object.
func (d *Document) ResolveReference(ref Reference) (Object, error) {
	return d.resolve(ref)
}
