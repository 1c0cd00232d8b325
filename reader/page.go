package reader

import (
	"fmt"
)

// Rectangle is a [llx lly urx ury] rectangle in default user space.
type Rectangle struct {
	LLX, LLY, URX, URY float64
}

// Width returns the horizontal extent of the rectangle.
func (r Rectangle) Width() float64 { return r.URX - r.LLX }

// Height returns the vertical extent of the rectangle.
func (r Rectangle) Height() float64 { return r.URY - r.LLY }

// Page is a single page: its media box, resources and content streams.
// MediaBox and Resources may be inherited from the page tree.
type Page struct {
	Number    int
	MediaBox  Rectangle
	Resources Dict
	Contents  []Stream
	doc       *Document
}

// ContentStream returns the decoded content stream data for the page.
// Multiple streams are concatenated in order.
func (p *Page) ContentStream() ([]byte, error) {
	var result []byte
	for _, s := range p.Contents {
		decoded, err := decodeStream(s)
		if err != nil {
			return nil, fmt.Errorf("reader: decoding page %d content: %w", p.Number, err)
		}
		result = append(result, decoded...)
		result = append(result, '\n')
	}
	return result, nil
}

func parseRectangle(obj Object) (Rectangle, error) {
	arr, ok := obj.(Array)
	if !ok || len(arr) != 4 {
		return Rectangle{}, fmt.Errorf("reader: rectangle must be a 4-element array")
	}
	var vals [4]float64
	for i, v := range arr {
		n, ok := numValue(v)
		if !ok {
			return Rectangle{}, fmt.Errorf("reader: rectangle element %d is not numeric", i)
		}
		vals[i] = n
	}
	return Rectangle{LLX: vals[0], LLY: vals[1], URX: vals[2], URY: vals[3]}, nil
}

// buildPageList walks the page tree into a flat, 1-numbered page list.
func (d *Document) buildPageList() error {
	root, err := d.resolveIfRef(d.trailer["Root"])
	if err != nil {
		return fmt.Errorf("reader: resolving root: %w", err)
	}
	catalog, ok := root.(Dict)
	if !ok {
		return fmt.Errorf("reader: missing /Root in trailer")
	}

	pagesObj, err := d.resolveIfRef(catalog["Pages"])
	if err != nil {
		return fmt.Errorf("reader: resolving /Pages: %w", err)
	}
	pagesDict, ok := pagesObj.(Dict)
	if !ok {
		return fmt.Errorf("reader: /Pages is not a dictionary")
	}

	d.pages = nil
	return d.traversePageTree(pagesDict, nil)
}

// traversePageTree collects leaf pages, carrying inheritable attributes
// down from interior nodes.
func (d *Document) traversePageTree(node Dict, inherited Dict) error {
	merged := make(Dict)
	for k, v := range inherited {
		merged[k] = v
	}
	for _, key := range []Name{"MediaBox", "Resources"} {
		if v, ok := node[key]; ok {
			merged[key] = v
		}
	}

	if node.GetName("Type") == "Page" {
		page := &Page{
			Number: len(d.pages) + 1,
			doc:    d,
		}

		if mb, ok := merged["MediaBox"]; ok {
			if resolved, err := d.resolveIfRef(mb); err == nil {
				if rect, err := parseRectangle(resolved); err == nil {
					page.MediaBox = rect
				}
			}
		}
		if res, ok := merged["Resources"]; ok {
			if resolved, err := d.resolveIfRef(res); err == nil {
				if resDict, ok := resolved.(Dict); ok {
					page.Resources = resDict
				}
			}
		}
		if contents, ok := node["Contents"]; ok {
			resolved, err := d.resolveIfRef(contents)
			if err != nil {
				return fmt.Errorf("reader: page %d contents: %w", page.Number, err)
			}
			switch c := resolved.(type) {
			case Stream:
				page.Contents = []Stream{c}
			case Array:
				for _, item := range c {
					streamObj, err := d.resolveIfRef(item)
					if err != nil {
						continue
					}
					if s, ok := streamObj.(Stream); ok {
						page.Contents = append(page.Contents, s)
					}
				}
			}
		}

		d.pages = append(d.pages, page)
		return nil
	}

	kids := node.GetArray("Kids")
	if kids == nil {
		if kidsObj, err := d.resolveIfRef(node["Kids"]); err == nil {
			kids, _ = kidsObj.(Array)
		}
	}
	for _, kid := range kids {
		kidObj, err := d.resolveIfRef(kid)
		if err != nil {
			return fmt.Errorf("reader: resolving page tree kid: %w", err)
		}
		kidDict, ok := kidObj.(Dict)
		if !ok {
			continue
		}
		if err := d.traversePageTree(kidDict, merged); err != nil {
			return err
		}
	}
	return nil
}
