// Package timeouts defines shared timeout constants used across the forge
// commands and transports.
package timeouts

import "time"

// ToolCall caps pool retrieval and generation for one MCP tool call.
const ToolCall = 10 * time.Second

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 10 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
