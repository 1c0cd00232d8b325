package mcp

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/octavo-go/octavo/doctpl"
	"github.com/octavo-go/octavo/dsl"
	"github.com/octavo-go/octavo/reader"
)

// RegisterDefaultTools adds all built-in document tools to the server.
func RegisterDefaultTools(s *Server) {
	s.AddTool(renderDocumentTool())
	s.AddTool(renderMarkupTool())
	s.AddTool(documentInfoTool())
	s.AddTool(extractTextTool())
}

func renderDocumentTool() Tool {
	return Tool{
		Name:        "render_document",
		Description: "Render a PDF from a JSON document template. The template supports headings, paragraphs, code blocks, bullet lists, tables, barcodes, spacers, and page breaks, plus a running header and footer. Read the octavo://template-schema resource for the full field reference. Returns the PDF as base64 unless outputPath is given.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"template": map[string]interface{}{
					"type":        "object",
					"description": "JSON document template with title, pageSize, margins, and elements",
				},
				"outputPath": map[string]interface{}{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"template"},
		},
		Handler: handleRenderDocument,
	}
}

func handleRenderDocument(args map[string]interface{}) (ToolResult, error) {
	templateData, ok := args["template"]
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'template' argument")
	}

	jsonBytes, err := json.Marshal(templateData)
	if err != nil {
		return ToolResult{}, fmt.Errorf("encoding template: %w", err)
	}

	var buf bytes.Buffer
	if err := doctpl.Render(&buf, jsonBytes); err != nil {
		return ToolResult{}, fmt.Errorf("rendering PDF: %w", err)
	}

	return deliverPDF(&buf, args)
}

func renderMarkupTool() Tool {
	return Tool{
		Name:        "render_markup",
		Description: "Render a PDF from compact line-oriented markup. Statements are keyword first: title, footer, section, subsection, para, bullet, code (fenced), table, barcode, pagebreak. Read the octavo://markup-example resource for an example. Returns the PDF as base64 unless outputPath is given.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"source": map[string]interface{}{
					"type":        "string",
					"description": "Markup source text",
				},
				"outputPath": map[string]interface{}{
					"type":        "string",
					"description": "Optional file path to save the PDF. If omitted, returns base64.",
				},
			},
			"required": []string{"source"},
		},
		Handler: handleRenderMarkup,
	}
}

func handleRenderMarkup(args map[string]interface{}) (ToolResult, error) {
	source, ok := args["source"].(string)
	if !ok || source == "" {
		return ToolResult{}, fmt.Errorf("missing 'source' argument")
	}

	tpl, err := dsl.Parse(source)
	if err != nil {
		return ToolResult{}, fmt.Errorf("parsing markup: %w", err)
	}

	var buf bytes.Buffer
	if err := doctpl.RenderDocument(&buf, tpl); err != nil {
		return ToolResult{}, fmt.Errorf("rendering PDF: %w", err)
	}

	return deliverPDF(&buf, args)
}

// deliverPDF saves the rendered bytes to outputPath when given, otherwise
// returns them base64-encoded in the result text.
func deliverPDF(buf *bytes.Buffer, args map[string]interface{}) (ToolResult, error) {
	if outputPath, ok := args["outputPath"].(string); ok && outputPath != "" {
		if err := os.WriteFile(outputPath, buf.Bytes(), 0644); err != nil {
			return ToolResult{}, fmt.Errorf("writing file: %w", err)
		}
		return ToolResult{
			Content: []ContentBlock{{
				Type: "text",
				Text: fmt.Sprintf("PDF written to %s (%d bytes)", outputPath, buf.Len()),
			}},
		}, nil
	}

	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())
	return ToolResult{
		Content: []ContentBlock{{
			Type: "text",
			Text: fmt.Sprintf("PDF rendered (%d bytes). Base64 data:\n%s", buf.Len(), encoded),
		}},
	}, nil
}

func documentInfoTool() Tool {
	return Tool{
		Name:        "document_info",
		Description: "Read a PDF file and return its version, page count, metadata, language, and per-page dimensions as JSON.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the PDF file",
				},
			},
			"required": []string{"path"},
		},
		Handler: handleDocumentInfo,
	}
}

func handleDocumentInfo(args map[string]interface{}) (ToolResult, error) {
	path, ok := args["path"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'path' argument")
	}

	doc, err := reader.Open(path)
	if err != nil {
		return ToolResult{}, fmt.Errorf("opening PDF: %w", err)
	}

	info := map[string]interface{}{
		"version":  doc.Version,
		"numPages": doc.NumPages(),
		"metadata": doc.Metadata(),
	}
	if lang := doc.Language(); lang != "" {
		info["language"] = lang
	}

	pageInfos := make([]map[string]interface{}, 0)
	for pageNum, page := range doc.Pages() {
		mb := page.MediaBox
		pageInfos = append(pageInfos, map[string]interface{}{
			"page":   pageNum,
			"width":  mb.Width(),
			"height": mb.Height(),
		})
	}
	info["pages"] = pageInfos

	jsonBytes, _ := json.MarshalIndent(info, "", "  ")
	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: string(jsonBytes)}},
	}, nil
}

func extractTextTool() Tool {
	return Tool{
		Name:        "extract_text",
		Description: "Extract text content from a PDF file. Returns the text from all pages or specific pages.",
		InputSchema: map[string]interface{}{
			"type": "object",
			"properties": map[string]interface{}{
				"path": map[string]interface{}{
					"type":        "string",
					"description": "Path to the PDF file",
				},
				"pages": map[string]interface{}{
					"type":        "array",
					"items":       map[string]interface{}{"type": "number"},
					"description": "Specific page numbers to extract (1-based). Omit for all pages.",
				},
			},
			"required": []string{"path"},
		},
		Handler: handleExtractText,
	}
}

func handleExtractText(args map[string]interface{}) (ToolResult, error) {
	path, ok := args["path"].(string)
	if !ok {
		return ToolResult{}, fmt.Errorf("missing 'path' argument")
	}

	doc, err := reader.Open(path)
	if err != nil {
		return ToolResult{}, fmt.Errorf("opening PDF: %w", err)
	}

	pageSet := make(map[int]bool)
	if pagesArg, ok := args["pages"].([]interface{}); ok {
		for _, p := range pagesArg {
			if num, ok := p.(float64); ok {
				pageSet[int(num)] = true
			}
		}
	}

	var result strings.Builder
	for pageNum, page := range doc.Pages() {
		if len(pageSet) > 0 && !pageSet[pageNum] {
			continue
		}

		text, err := page.ExtractText()
		if err != nil {
			fmt.Fprintf(&result, "--- Page %d (error: %v) ---\n", pageNum, err)
			continue
		}

		fmt.Fprintf(&result, "--- Page %d ---\n%s\n\n", pageNum, text)
	}

	return ToolResult{
		Content: []ContentBlock{{Type: "text", Text: result.String()}},
	}, nil
}
