package domain

import (
	"context"
	"fmt"
	"strings"

	"github.com/louisbranch/loreforge/internal/core/forge"
	"github.com/louisbranch/loreforge/internal/core/lore"
	apperrors "github.com/louisbranch/loreforge/internal/platform/errors"
	"github.com/louisbranch/loreforge/internal/platform/timeouts"
	"github.com/louisbranch/loreforge/internal/services/forge/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Generator runs generation requests.
type Generator interface {
	Generate(ctx context.Context, in service.GenerateRequest) (forge.Response, error)
}

// GenerateInput represents the MCP tool input for lore generation.
type GenerateInput struct {
	Kind        string  `json:"kind,omitempty" jsonschema:"what to generate: character, location, title or concept (default character)"`
	Count       int     `json:"count,omitempty" jsonschema:"number of items, 1 to 200 (default 1)"`
	CultureID   string  `json:"culture_id,omitempty" jsonschema:"optional culture scope"`
	CategorieID string  `json:"categorie_id,omitempty" jsonschema:"optional categorie scope"`
	UniversID   string  `json:"univers_id,omitempty" jsonschema:"optional univers scope"`
	Genre       string  `json:"genre,omitempty" jsonschema:"optional genre such as M, F or NB"`
	Seed        *string `json:"seed,omitempty" jsonschema:"optional seed; reuse the returned seed to replay a result"`
	Keywords    string  `json:"keywords,omitempty" jsonschema:"optional keywords ranking matching names first"`
	Locale      string  `json:"locale,omitempty" jsonschema:"optional locale for error messages, such as fr-FR"`
}

// GenerateResult represents the MCP tool output for lore generation.
type GenerateResult struct {
	Seed    string       `json:"seed" jsonschema:"seed used; pass it back to replay"`
	Count   int          `json:"count" jsonschema:"number of generated items"`
	Filters lore.Filters `json:"filters" jsonschema:"normalized filters the items were generated for"`
	Items   []lore.Item  `json:"items" jsonschema:"generated items"`
	Warning string       `json:"warning,omitempty" jsonschema:"set when a fallback path was taken"`
	Info    string       `json:"info,omitempty" jsonschema:"explains ranking and fallbacks"`
}

// ToolError is a caller-facing tool failure with a localized message.
type ToolError struct {
	Message string
	Err     error
}

func (e *ToolError) Error() string { return e.Message }

func (e *ToolError) Unwrap() error { return e.Err }

// GenerateTool defines the MCP tool schema for lore generation.
func GenerateTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "forge_generate",
		Description: "Generates reproducible names with short biographies, locations, titles or concepts from the lore catalog",
	}
}

// GenerateHandler runs a generation request.
func GenerateHandler(gen Generator) mcp.ToolHandlerFor[GenerateInput, GenerateResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input GenerateInput) (*mcp.CallToolResult, GenerateResult, error) {
		if gen == nil {
			return nil, GenerateResult{}, fmt.Errorf("generator is not configured")
		}

		runCtx, cancel := context.WithTimeout(ctx, timeouts.ToolCall)
		defer cancel()

		resp, err := gen.Generate(runCtx, service.GenerateRequest{
			Kind:        input.Kind,
			Count:       input.Count,
			CultureID:   input.CultureID,
			CategorieID: input.CategorieID,
			UniversID:   input.UniversID,
			Genre:       input.Genre,
			Seed:        input.Seed,
			Keywords:    input.Keywords,
		})
		if err != nil {
			return nil, GenerateResult{}, toolError(err, input.Locale)
		}

		return &mcp.CallToolResult{}, GenerateResult{
			Seed:    resp.Seed,
			Count:   resp.Count,
			Filters: resp.Filters,
			Items:   resp.Items,
			Warning: resp.Warning,
			Info:    resp.Info,
		}, nil
	}
}

// toolError localizes domain errors; anything else is reported as an
// internal failure with its chain intact.
func toolError(err error, locale string) error {
	domainErr, ok := apperrors.As(err)
	if !ok {
		return fmt.Errorf("generate lore: %w", err)
	}
	message := domainErr.UserMessage(strings.TrimSpace(locale))
	return &ToolError{Message: message, Err: err}
}
