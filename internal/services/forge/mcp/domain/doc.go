// Package domain defines the MCP tools and resources that expose lore
// generation, independent of the transport serving them.
package domain
