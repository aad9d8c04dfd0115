// Package server implements the MCP (Model Context Protocol) server for
// floor-plan analysis tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the detection
// pipeline through the MCP protocol, so MCP-compatible clients can query
// plan geometry without linking the library.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - plan_image_info: Load a plan image and get its metadata
//   - plan_detect_room: Detect the room containing a seed pixel
//   - plan_detect_envelope: Detect the building outline and spanning walls
//   - plan_render_overlay: Write a visualization of a detection result
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded pixel buffers keyed
// by path, so repeated tool calls against the same scan skip disk I/O and
// decoding. The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
package server
