package domain

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/louisbranch/loreforge/internal/core/forge"
	"github.com/louisbranch/loreforge/internal/core/lore"
	apperrors "github.com/louisbranch/loreforge/internal/platform/errors"
	"github.com/louisbranch/loreforge/internal/services/forge/service"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type fakeGenerator struct {
	got  service.GenerateRequest
	resp forge.Response
	err  error
}

func (g *fakeGenerator) Generate(_ context.Context, in service.GenerateRequest) (forge.Response, error) {
	g.got = in
	return g.resp, g.err
}

func TestGenerateHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		gen := &fakeGenerator{resp: forge.Response{
			Seed:    "alpha",
			Count:   1,
			Filters: lore.Filters{Kind: lore.KindCharacter},
			Items:   []lore.Item{{ID: "i-1", Name: "Élodie Ventelune", Text: "Élodie Ventelune garde le gué."}},
			Info:    "items ranked by keyword relevance",
		}}
		seed := "alpha"
		handler := GenerateHandler(gen)
		toolResult, result, err := handler(context.Background(), nil, GenerateInput{
			Kind:     "character",
			Count:    1,
			Seed:     &seed,
			Keywords: "feu",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if toolResult == nil {
			t.Fatal("expected non-nil tool result")
		}
		if result.Seed != "alpha" || len(result.Items) != 1 {
			t.Fatalf("unexpected result %+v", result)
		}
		if gen.got.Keywords != "feu" || gen.got.Seed == nil || *gen.got.Seed != "alpha" {
			t.Fatalf("request not forwarded: %+v", gen.got)
		}
	})

	t.Run("domain error is localized", func(t *testing.T) {
		gen := &fakeGenerator{err: apperrors.WithMetadata(apperrors.CodeCountOutOfRange, "count 500 out of range", map[string]string{
			"Count": "500",
			"Max":   "200",
		})}
		handler := GenerateHandler(gen)
		_, _, err := handler(context.Background(), nil, GenerateInput{Count: 500, Locale: "fr-FR"})
		if err == nil {
			t.Fatal("expected error")
		}
		if !strings.Contains(err.Error(), "doit être compris entre 1 et 200") {
			t.Fatalf("expected french message, got %q", err.Error())
		}
		if apperrors.GetCode(err) != apperrors.CodeCountOutOfRange {
			t.Fatalf("expected code in chain, got %q", apperrors.GetCode(err))
		}
	})

	t.Run("internal error keeps chain", func(t *testing.T) {
		cause := errors.New("boom")
		handler := GenerateHandler(&fakeGenerator{err: cause})
		_, _, err := handler(context.Background(), nil, GenerateInput{})
		if !errors.Is(err, cause) {
			t.Fatalf("expected cause, got %v", err)
		}
	})

	t.Run("nil generator", func(t *testing.T) {
		handler := GenerateHandler(nil)
		if _, _, err := handler(context.Background(), nil, GenerateInput{}); err == nil {
			t.Fatal("expected error")
		}
	})
}

func TestGenerateTool(t *testing.T) {
	tool := GenerateTool()
	if tool.Name != "forge_generate" {
		t.Fatalf("tool name = %q", tool.Name)
	}
}

func TestKindsResourceHandler(t *testing.T) {
	handler := KindsResourceHandler(forge.MaxCount)
	result, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "lore://kinds"}})
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(result.Contents))
	}
	var payload KindsResourcePayload
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &payload); err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if strings.Join(payload.Kinds, ",") != "character,location,title,concept" {
		t.Fatalf("kinds = %v", payload.Kinds)
	}
	if strings.Join(payload.Genres, ",") != "M,F,NB" {
		t.Fatalf("genres = %v", payload.Genres)
	}
	if payload.MaxCount != 200 {
		t.Fatalf("max count = %d", payload.MaxCount)
	}

	if _, err := handler(context.Background(), &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: "lore://other"}}); err == nil {
		t.Fatal("expected invalid uri error")
	}
}
