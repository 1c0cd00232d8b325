// Command octavo renders PDF documents from JSON templates or markup
// files and prints text extracted from existing PDFs.
//
// Render a JSON template:
//
//	octavo -in manual.json -out manual.pdf
//
// Render line-oriented markup:
//
//	octavo -in report.om -out report.pdf
//
// The input format is inferred from the file extension. To dump the text
// of an existing document instead:
//
//	octavo -text manual.pdf
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/octavo-go/octavo/doctpl"
	"github.com/octavo-go/octavo/dsl"
	"github.com/octavo-go/octavo/reader"
)

func main() {
	in := flag.String("in", "", "input template (.json) or markup (.om) file")
	out := flag.String("out", "", "output PDF path")
	text := flag.String("text", "", "print the text of an existing PDF and exit")
	flag.Parse()

	if err := run(*in, *out, *text); err != nil {
		fmt.Fprintf(os.Stderr, "octavo: %v\n", err)
		os.Exit(1)
	}
}

func run(in, out, text string) error {
	if text != "" {
		return dumpText(text)
	}
	if in == "" || out == "" {
		return fmt.Errorf("usage: octavo -in doc.json|doc.om -out out.pdf, or octavo -text doc.pdf")
	}
	return render(in, out)
}

func render(in, out string) error {
	src, err := os.ReadFile(in)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch ext := strings.ToLower(filepath.Ext(in)); ext {
	case ".json":
		err = doctpl.Render(&buf, src)
	case ".om":
		var tpl *doctpl.Document
		tpl, err = dsl.Parse(string(src))
		if err == nil {
			err = doctpl.RenderDocument(&buf, tpl)
		}
	default:
		return fmt.Errorf("%s: unsupported input extension %q (want .json or .om)", in, ext)
	}
	if err != nil {
		return err
	}

	return os.WriteFile(out, buf.Bytes(), 0644)
}

func dumpText(path string) error {
	doc, err := reader.Open(path)
	if err != nil {
		return err
	}

	for pageNum, page := range doc.Pages() {
		text, err := page.ExtractText()
		if err != nil {
			return fmt.Errorf("page %d: %w", pageNum, err)
		}
		if pageNum > 1 {
			fmt.Println()
		}
		fmt.Printf("--- Page %d ---\n%s\n", pageNum, text)
	}
	return nil
}
