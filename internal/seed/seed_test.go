// ABOUTME: Tests for the seed generator, store seeding and YAML catalogs.
// ABOUTME: The AI path runs against a fake OpenAI-compatible endpoint.

package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/2389/blockyard/internal/blocks"
	"github.com/2389/blockyard/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(":memory:")
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func fakeOpenAI(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if status != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test-model",
			"choices": []map[string]any{{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerate_StaticWithoutKey(t *testing.T) {
	g := NewGenerator(Options{})

	all, err := g.Generate(context.Background(), 0)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(all) != len(catalog) {
		t.Errorf("got %d definitions, want %d", len(all), len(catalog))
	}

	some, _ := g.Generate(context.Background(), 3)
	if len(some) != 3 || some[0].Title != "Hero Banner" {
		t.Errorf("Generate(3) = %+v", some)
	}

	some[0].Title = "changed"
	if catalog[0].Title != "Hero Banner" {
		t.Error("Generate() returned the catalog's backing array")
	}
}

func TestCatalog_IsValid(t *testing.T) {
	slugs := make(map[string]bool)
	for _, d := range catalog {
		if !blocks.KnownDashicon(d.Icon) {
			t.Errorf("%s: icon %q is not offered by the editor", d.Title, d.Icon)
		}
		if blocks.ParseMode(d.Mode) != blocks.Mode(d.Mode) {
			t.Errorf("%s: unknown mode %q", d.Title, d.Mode)
		}
		s := blocks.DefinitionSlug(blocks.Definition{Title: d.Title, Meta: blocks.Meta{Slug: d.Slug}})
		if slugs[s] {
			t.Errorf("duplicate slug %q", s)
		}
		slugs[s] = true
	}
}

func TestGenerate_AI(t *testing.T) {
	content := `[
		{"title":"Pull Quote","slug":"pull-quote","description":"Big quote.","category":"Text","icon":"format-quote","mode":"edit"},
		{"title":"","slug":"nameless"},
		{"title":"Map","icon":"not-an-icon","mode":"sideways","draft":true}
	]`
	srv := fakeOpenAI(t, http.StatusOK, content)
	g := NewGenerator(Options{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL + "/v1"})

	defs, err := g.Generate(context.Background(), 3)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2: %+v", len(defs), defs)
	}
	if defs[0].Slug != "pull-quote" || defs[0].Icon != "format-quote" || defs[0].Mode != "edit" {
		t.Errorf("defs[0] = %+v", defs[0])
	}
	if defs[1].Icon != "" || defs[1].Mode != "" || defs[1].Draft {
		t.Errorf("defs[1] not cleaned: %+v", defs[1])
	}
}

func TestGenerate_AIFailureFallsBack(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		content string
	}{
		{"server error", http.StatusInternalServerError, ""},
		{"not json", http.StatusOK, "here are your blocks!"},
		{"empty list", http.StatusOK, "[]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeOpenAI(t, tt.status, tt.content)
			g := NewGenerator(Options{APIKey: "test-key", Model: "test-model", BaseURL: srv.URL + "/v1"})

			defs, err := g.Generate(context.Background(), 2)
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}
			if len(defs) != 2 || defs[0].Title != catalog[0].Title {
				t.Errorf("expected static fallback, got %+v", defs)
			}
		})
	}
}

func TestSeed(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	n, err := Seed(ctx, s, []DefinitionData{
		{Title: " <b>Hero</b> ", Slug: "Hero Banner!", Category: "Marketing", Icon: "star-filled", Mode: "edit",
			IconSVG: "http://localhost/uploads/hero.svg"},
		{Title: "   "},
		{Title: "Countdown", Draft: true},
	})
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if n != 2 {
		t.Errorf("Seed() created %d, want 2", n)
	}

	published, err := s.ListPublished(ctx, blocks.PostType)
	if err != nil {
		t.Fatal(err)
	}
	if len(published) != 1 {
		t.Fatalf("got %d published, want 1", len(published))
	}
	hero := published[0]
	if hero.Title != "Hero" {
		t.Errorf("Title = %q, want sanitized %q", hero.Title, "Hero")
	}
	if hero.Meta.Slug != "hero-banner" {
		t.Errorf("Slug = %q, want normalized %q", hero.Meta.Slug, "hero-banner")
	}
	if hero.Meta.IconSVG != "http://localhost/uploads/hero.svg" || hero.Meta.IconDashicon != "star-filled" {
		t.Errorf("icons = %q / %q", hero.Meta.IconSVG, hero.Meta.IconDashicon)
	}

	counts, _ := s.CountDefinitions(ctx)
	if counts[blocks.StatusDraft] != 1 {
		t.Errorf("draft count = %d, want 1", counts[blocks.StatusDraft])
	}
}

func TestSeed_StaticCatalogRegisters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if _, err := Seed(ctx, s, staticDefinitions(0)); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}

	loader := blocks.NewLoader(s, nil, "")
	descriptors, err := loader.LoadAll(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(descriptors) != len(catalog)-1 {
		t.Errorf("got %d descriptors, want %d", len(descriptors), len(catalog)-1)
	}
	if descriptors[0].Name != "acf/hero-banner" || descriptors[0].Example == nil {
		t.Errorf("first descriptor = %+v", descriptors[0])
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	if _, err := Seed(ctx, s, staticDefinitions(4)); err != nil {
		t.Fatal(err)
	}

	defs, err := s.ListDefinitions(ctx, store.DefinitionQuery{})
	if err != nil {
		t.Fatal(err)
	}
	var data []DefinitionData
	for _, def := range defs {
		data = append(data, FromDefinition(def))
	}

	var buf bytes.Buffer
	if err := WriteYAML(&buf, data); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	if !strings.HasPrefix(buf.String(), "blocks:\n") {
		t.Errorf("unexpected document start:\n%s", buf.String())
	}
	if !strings.Contains(buf.String(), "slug: cta") {
		t.Errorf("missing slug in:\n%s", buf.String())
	}

	back, err := ReadYAML(&buf)
	if err != nil {
		t.Fatalf("ReadYAML() error = %v", err)
	}
	if len(back) != 4 || back[1].Title != "Call to Action" || back[2].Mode != "auto" {
		t.Errorf("ReadYAML() = %+v", back)
	}
}

func TestReadYAML_Empty(t *testing.T) {
	defs, err := ReadYAML(strings.NewReader(""))
	if err != nil || defs != nil {
		t.Errorf("ReadYAML(\"\") = %v, %v", defs, err)
	}
	if _, err := ReadYAML(strings.NewReader("blocks: [")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}
