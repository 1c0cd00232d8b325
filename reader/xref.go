package reader

import (
	"bytes"
	"fmt"
	"strconv"
)

type xrefEntry struct {
	Offset     int64
	Generation int
	InUse      bool
}

// xrefTable maps object numbers to their entries. With incremental
// updates the newest definition of an object wins.
type xrefTable map[int]xrefEntry

// findStartXRef locates the offset recorded after the final "startxref"
// keyword near the end of the file.
func findStartXRef(data []byte) (int64, error) {
	tail := data
	if len(tail) > 1024 {
		tail = tail[len(tail)-1024:]
	}
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, fmt.Errorf("reader: startxref not found")
	}

	p := newParser(tail[idx+len("startxref"):])
	tok := p.readToken()
	offset, err := strconv.ParseInt(tok, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("reader: invalid startxref offset %q: %w", tok, err)
	}
	return offset, nil
}

// parseXRefTable parses the cross-reference section at offset, following
// /Prev links, and returns the merged table with the trailer dictionary.
// Cross-reference streams are handled transparently.
func parseXRefTable(data []byte, offset int64) (xrefTable, Dict, error) {
	if offset < 0 || int(offset) >= len(data) {
		return nil, nil, fmt.Errorf("reader: xref offset %d out of bounds", offset)
	}

	p := newParser(data[offset:])
	if tok := p.readToken(); tok != "xref" {
		return parseXRefStream(data, offset)
	}

	table := make(xrefTable)
	for {
		p.skipWhitespace()
		if p.pos >= len(p.data) {
			break
		}

		savedPos := p.pos
		if p.readToken() == "trailer" {
			break
		}
		p.pos = savedPos

		// Subsection header: first object number, entry count.
		startTok := p.readToken()
		startObj, err := strconv.ParseInt(startTok, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("reader: xref start obj %q: %w", startTok, err)
		}
		countTok := p.readToken()
		count, err := strconv.ParseInt(countTok, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("reader: xref count %q: %w", countTok, err)
		}

		for i := int64(0); i < count; i++ {
			offTok := p.readToken()
			entryOffset, err := strconv.ParseInt(offTok, 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("reader: xref entry offset: %w", err)
			}
			genTok := p.readToken()
			gen, err := strconv.ParseInt(genTok, 10, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("reader: xref entry generation: %w", err)
			}
			typeTok := p.readToken()

			objNum := int(startObj + i)
			if _, exists := table[objNum]; !exists {
				table[objNum] = xrefEntry{
					Offset:     entryOffset,
					Generation: int(gen),
					InUse:      typeTok == "n",
				}
			}
		}
	}

	obj, err := p.ParseObject()
	if err != nil {
		return nil, nil, fmt.Errorf("reader: trailer dict: %w", err)
	}
	trailer, ok := obj.(Dict)
	if !ok {
		return nil, nil, fmt.Errorf("reader: trailer is not a dictionary")
	}

	if prev, ok := trailer.GetInt("Prev"); ok {
		prevTable, _, err := parseXRefTable(data, prev)
		if err != nil {
			return nil, nil, fmt.Errorf("reader: previous xref: %w", err)
		}
		for num, entry := range prevTable {
			if _, exists := table[num]; !exists {
				table[num] = entry
			}
		}
	}
	return table, trailer, nil
}

// parseXRefStream parses a cross-reference stream: a stream object whose
// decoded data packs [type offset generation] entries at the byte widths
// given by /W, over the object ranges given by /Index.
func parseXRefStream(data []byte, offset int64) (xrefTable, Dict, error) {
	p := newParser(data[offset:])
	obj, err := p.ParseIndirectObject()
	if err != nil {
		return nil, nil, fmt.Errorf("reader: xref stream object: %w", err)
	}
	stream, ok := obj.Value.(Stream)
	if !ok {
		return nil, nil, fmt.Errorf("reader: xref stream is not a stream object")
	}
	decoded, err := decodeStream(stream)
	if err != nil {
		return nil, nil, fmt.Errorf("reader: decoding xref stream: %w", err)
	}

	wArr := stream.Dict.GetArray("W")
	if len(wArr) != 3 {
		return nil, nil, fmt.Errorf("reader: xref stream /W must have 3 elements")
	}
	var widths [3]int
	for i, w := range wArr {
		if n, ok := w.(Integer); ok {
			widths[i] = int(n)
		}
	}
	entrySize := widths[0] + widths[1] + widths[2]
	if entrySize == 0 {
		return nil, nil, fmt.Errorf("reader: xref stream has zero-width entries")
	}

	var indices []int
	if idxArr := stream.Dict.GetArray("Index"); idxArr != nil {
		for _, v := range idxArr {
			if n, ok := v.(Integer); ok {
				indices = append(indices, int(n))
			}
		}
	} else {
		size, _ := stream.Dict.GetInt("Size")
		indices = []int{0, int(size)}
	}

	table := make(xrefTable)
	pos := 0
	for i := 0; i+1 < len(indices); i += 2 {
		startObj, count := indices[i], indices[i+1]
		for j := 0; j < count; j++ {
			if pos+entrySize > len(decoded) {
				break
			}
			var fields [3]int64
			for f := 0; f < 3; f++ {
				for k := 0; k < widths[f]; k++ {
					fields[f] = fields[f]<<8 | int64(decoded[pos])
					pos++
				}
			}

			entryType := fields[0]
			if widths[0] == 0 {
				entryType = 1
			}
			objNum := startObj + j
			switch entryType {
			case 0:
				table[objNum] = xrefEntry{InUse: false, Generation: int(fields[2])}
			case 1:
				table[objNum] = xrefEntry{
					Offset:     fields[1],
					Generation: int(fields[2]),
					InUse:      true,
				}
			}
			// Type 2 entries live in object streams, which no supported
			// producer emits; they resolve as absent objects.
		}
	}
	return table, stream.Dict, nil
}
