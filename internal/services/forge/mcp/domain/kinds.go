package domain

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/louisbranch/loreforge/internal/core/genre"
	"github.com/louisbranch/loreforge/internal/core/lore"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const kindsResourceURI = "lore://kinds"

// KindsResourcePayload lists the values accepted by forge_generate.
type KindsResourcePayload struct {
	Kinds    []string `json:"kinds"`
	Genres   []string `json:"genres"`
	MaxCount int      `json:"max_count"`
}

// KindsResource defines the MCP resource describing generation kinds.
func KindsResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "lore_kinds",
		Title:       "Generation kinds",
		Description: "Kinds and canonical genres accepted by forge_generate",
		MIMEType:    "application/json",
		URI:         kindsResourceURI,
	}
}

// KindsResourceHandler serves the kinds resource.
func KindsResourceHandler(maxCount int) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := kindsResourceURI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}
		if uri != kindsResourceURI {
			return nil, fmt.Errorf("invalid URI: expected %s, got %q", kindsResourceURI, uri)
		}

		payload := KindsResourcePayload{MaxCount: maxCount}
		for _, k := range lore.Kinds {
			payload.Kinds = append(payload.Kinds, string(k))
		}
		for _, code := range genre.Codes {
			payload.Genres = append(payload.Genres, string(code))
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal kinds: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}
