// ABOUTME: Seed generator for example block definitions.
// ABOUTME: Asks an OpenAI chat model for a catalog and falls back to the static one.

package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/2389/blockyard/internal/blocks"
	"github.com/sashabaranov/go-openai"
)

// Options configures a Generator. An empty APIKey means static data only.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string // OpenAI-compatible endpoint; empty means the public API
}

// Generator produces block definitions using OpenAI or static fallback data.
type Generator struct {
	client *openai.Client
	useAI  bool
	model  string
}

// NewGenerator creates a generator from opts.
func NewGenerator(opts Options) *Generator {
	g := &Generator{model: opts.Model}
	if g.model == "" {
		g.model = "gpt-5-mini"
	}

	if opts.APIKey == "" {
		log.Println("No OPENAI_API_KEY found, using static block catalog")
		return g
	}

	cfg := openai.DefaultConfig(opts.APIKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	g.client = openai.NewClientWithConfig(cfg)
	g.useAI = true
	log.Printf("OpenAI API key found, generating block definitions with model: %s", g.model)
	return g
}

// DefinitionData is one seeded definition record with its meta values.
type DefinitionData struct {
	Title        string `json:"title" yaml:"title"`
	Slug         string `json:"slug,omitempty" yaml:"slug,omitempty"`
	Description  string `json:"description,omitempty" yaml:"description,omitempty"`
	Category     string `json:"category,omitempty" yaml:"category,omitempty"`
	Icon         string `json:"icon,omitempty" yaml:"icon,omitempty"`
	IconSVG      string `json:"icon_svg,omitempty" yaml:"icon_svg,omitempty"`
	PreviewImage string `json:"preview_image,omitempty" yaml:"preview_image,omitempty"`
	Mode         string `json:"mode,omitempty" yaml:"mode,omitempty"`
	Draft        bool   `json:"draft,omitempty" yaml:"draft,omitempty"`
}

// Status is the record status the definition is created with.
func (d DefinitionData) Status() blocks.Status {
	if d.Draft {
		return blocks.StatusDraft
	}
	return blocks.StatusPublish
}

// MetaValues maps the data onto the editable meta keys.
func (d DefinitionData) MetaValues() map[blocks.MetaKey]string {
	return map[blocks.MetaKey]string{
		blocks.MetaSlug:         d.Slug,
		blocks.MetaDescription:  d.Description,
		blocks.MetaCategory:     d.Category,
		blocks.MetaIconDashicon: d.Icon,
		blocks.MetaPreviewImage: d.PreviewImage,
		blocks.MetaMode:         d.Mode,
	}
}

// Generate returns count definitions. A count of zero or less means the whole
// static catalog. AI failures fall back to static data and never error.
func (g *Generator) Generate(ctx context.Context, count int) ([]DefinitionData, error) {
	if !g.useAI {
		return staticDefinitions(count), nil
	}
	if count <= 0 {
		count = len(catalog)
	}

	log.Printf("Generating %d block definitions via AI...", count)
	defs, err := g.generateDefinitions(ctx, count)
	if err != nil {
		log.Printf("  ✗ Failed to generate definitions: %v", err)
		log.Print("AI generation incomplete, falling back to static catalog...")
		return staticDefinitions(count), nil
	}
	defs = cleanGenerated(defs)
	if len(defs) == 0 {
		log.Print("AI returned no usable definitions, falling back to static catalog...")
		return staticDefinitions(count), nil
	}

	log.Printf("  ✓ Generated %d definitions", len(defs))
	return defs, nil
}

func (g *Generator) generateDefinitions(ctx context.Context, count int) ([]DefinitionData, error) {
	prompt := fmt.Sprintf(`Generate %d content block definitions for a marketing website's block editor. Include a mix of:
- Page sections (hero, call to action, pricing table, feature grid)
- Social proof (testimonials, logo walls, reviews)
- Media (video embeds, galleries, image comparisons)
- Utility blocks (FAQ accordion, contact form, newsletter signup)

Return as JSON array with objects containing: title, slug (lowercase words joined by hyphens), description (one sentence),
category (short human label such as "Marketing" or "Layout"), icon, mode (one of preview, edit, auto).
The icon must be one of: %s.
Titles must be unique. Use 3 to 5 distinct categories across the set.`, count, strings.Join(blocks.Dashicons, ", "))

	return callOpenAI[[]DefinitionData](ctx, g.client, g.model, prompt)
}

// cleanGenerated drops entries without a title and clears icons and modes
// the editor would not offer.
func cleanGenerated(defs []DefinitionData) []DefinitionData {
	out := defs[:0]
	for _, d := range defs {
		if strings.TrimSpace(d.Title) == "" {
			continue
		}
		if !blocks.KnownDashicon(d.Icon) {
			d.Icon = ""
		}
		if blocks.ParseMode(d.Mode) != blocks.Mode(strings.TrimSpace(d.Mode)) {
			d.Mode = ""
		}
		d.IconSVG = ""
		d.Draft = false
		out = append(out, d)
	}
	return out
}

func callOpenAI[T any](ctx context.Context, client *openai.Client, model, prompt string) (T, error) {
	var result T

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are a data generator. Always respond with valid JSON only, no markdown or explanation.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		return result, fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return result, fmt.Errorf("no response from OpenAI")
	}

	content := resp.Choices[0].Message.Content
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return result, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	return result, nil
}
