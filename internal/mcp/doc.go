// Package mcp implements a Model Context Protocol (MCP) server.
//
// The MCP server exposes the kusari ask pipeline via the Model Context
// Protocol, enabling integration with Genkit CLI, Cursor, Claude Code, and
// other MCP clients. External LLM tools can search the Kusama schema
// knowledge base and run full question-to-answer queries through a
// standardized protocol interface.
//
// # Architecture
//
// The MCP server follows a handler-based architecture:
//
//	MCP Client (Genkit CLI, Cursor, etc.)
//	     |
//	     | (MCP protocol over stdio)
//	     |
//	     v
//	Server (MCP SDK)
//	     |
//	     +-- search_schema handler
//	     +-- ask handler
//	     |
//	     v
//	Pipeline (retrieval, query synthesis, execution, response synthesis)
//
// # Supported Tools
//
//   - search_schema: Semantic search over the Kusama GraphQL schema
//     knowledge base. Returns the most relevant chunks with type names,
//     examples, and distance scores.
//
//   - ask: Full pipeline run. Generates a GraphQL query from retrieved
//     schema knowledge, executes it against the indexer, and returns a
//     natural-language answer plus the generated query.
//
// # Tool Handler Pattern
//
// Tool handlers follow Go's net/http.Handler pattern for simplicity and
// consistency:
//
//  1. Define input schema struct with JSON tags and descriptions
//  2. Infer JSON schema using jsonschema-go
//  3. Create mcp.Tool with name, description, and schema
//  4. Register handler using mcp.AddTool with inline logic
//  5. No conversion functions - build responses directly
//
// # Error Handling
//
// The MCP server distinguishes between two types of errors:
//
//   - System errors: Retrieval infrastructure, model, or indexer failures.
//     Returned as MCP protocol errors.
//
//   - Domain outcomes: A question matching no schema knowledge.
//     Returned as a successful response with error content and IsError=true
//     so clients can handle it gracefully.
//
// # Example Usage
//
//	import mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	server, err := mcp.NewServer(mcp.Config{
//	    Name:     "kusari",
//	    Version:  "1.0.0",
//	    Pipeline: p,
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Stdio transport is the standard for MCP servers
//	return server.Run(ctx, &mcpSdk.StdioTransport{})
//
// # Thread Safety
//
// The MCP server is safe for concurrent use. The underlying transport and
// message handling is managed by the MCP SDK.
package mcp
