// Command octavo-mcp is an MCP (Model Context Protocol) server that exposes
// octavo's document rendering and inspection capabilities to AI assistants.
//
// # Installation
//
//	go install github.com/octavo-go/octavo/cmd/octavo-mcp@latest
//
// # Configuration for Claude Desktop
//
// Add to ~/.config/claude/claude_desktop_config.json:
//
//	{
//	  "mcpServers": {
//	    "octavo": {
//	      "command": "octavo-mcp"
//	    }
//	  }
//	}
//
// # Available Tools
//
//   - render_document: Render PDFs from JSON templates
//   - render_markup: Render PDFs from line-oriented markup
//   - document_info: Read PDF metadata, page count and dimensions
//   - extract_text: Extract text from PDFs
//
// # Available Resources
//
//   - octavo://template-schema : JSON template field reference
//   - octavo://template-example : A complete example template
//   - octavo://markup-example : A complete example markup document
package main

import (
	"fmt"
	"os"

	"github.com/octavo-go/octavo/mcp"
)

func main() {
	server := mcp.NewServer()

	mcp.RegisterDefaultTools(server)
	mcp.RegisterDefaultResources(server)

	if err := server.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "octavo-mcp: %v\n", err)
		os.Exit(1)
	}
}
