// ABOUTME: HTTP handlers the content editor calls to list, validate and render blocks.
// ABOUTME: Every request runs a fresh registration pass so definition edits apply immediately.

package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/2389/blockyard/internal/blocks"
	apierrors "github.com/2389/blockyard/internal/errors"
	"github.com/2389/blockyard/internal/registry"
	"github.com/go-chi/chi/v5"
)

const maxRequestBody = 1 << 20

type Handlers struct {
	loader         *blocks.Loader
	registrar      *blocks.Registrar
	renderer       *blocks.Renderer
	hostCategories []blocks.Category
}

// NewHandlers serves the definitions loader reads. hostCategories is the
// host taxonomy custom categories are merged into.
func NewHandlers(loader *blocks.Loader, hostCategories []blocks.Category) *Handlers {
	return &Handlers{
		loader:         loader,
		registrar:      blocks.NewRegistrar(loader),
		renderer:       blocks.NewRenderer(loader.Namespace()),
		hostCategories: hostCategories,
	}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/blocks", h.listBlocks)
		r.Get("/blocks/{slug}", h.getBlock)
		r.Get("/categories", h.listCategories)
		r.Get("/allowed", h.listAllowed)
		r.Post("/render", h.render)
		r.Post("/content/validate", h.validateContent)
	})
}

func (h *Handlers) pass(ctx context.Context) (*registry.Registry, *blocks.Pass, error) {
	return registry.Build(ctx, h.registrar, h.renderer)
}

func (h *Handlers) listBlocks(w http.ResponseWriter, r *http.Request) {
	reg, pass, err := h.pass(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}

	resp := map[string]any{
		"blocks":    reg.All(),
		"namespace": h.loader.Namespace(),
	}
	if len(pass.Duplicates) > 0 {
		resp["duplicates"] = pass.Duplicates
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) getBlock(w http.ResponseWriter, r *http.Request) {
	reg, _, err := h.pass(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}

	name := blocks.TypeName(h.loader.Namespace(), chi.URLParam(r, "slug"))
	d, ok := reg.Get(name)
	if !ok {
		apierrors.WriteError(w, http.StatusNotFound, apierrors.ErrNotFound, "Block type "+name+" is not registered")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// listCategories accepts the host's editor context token and ignores it;
// the merged list is the same for every context.
func (h *Handlers) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.registrar.Categories(r.Context(), h.hostCategories)
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *Handlers) listAllowed(w http.ResponseWriter, r *http.Request) {
	reg, _, err := h.pass(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"allowed": reg.AllowedNames()})
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request) {
	var occ blocks.Occurrence
	if !decodeBody(w, r, &occ) {
		return
	}
	occ.Name = strings.TrimSpace(occ.Name)
	if occ.Name == "" {
		apierrors.WriteErrorWithField(w, http.StatusBadRequest, apierrors.ErrMissingField, "Block name is required", "name")
		return
	}

	reg, _, err := h.pass(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}

	var sb strings.Builder
	if err := reg.Render(&sb, occ); err != nil {
		if errors.Is(err, registry.ErrNotAllowed) {
			apierrors.WriteErrorWithField(w, http.StatusUnprocessableEntity, apierrors.ErrBlockNotAllowed,
				"Block type "+occ.Name+" is not allowed", "name")
			return
		}
		apierrors.WriteErrorWithDetails(w, http.StatusInternalServerError, apierrors.ErrRenderFailed,
			"Failed to render block", err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Render-State", blocks.StateOf(occ).String())
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(sb.String()))
}

type contentRequest struct {
	Blocks []registry.ContentBlock `json:"blocks"`
}

type validationResponse struct {
	Valid      bool                 `json:"valid"`
	Violations []registry.Violation `json:"violations,omitempty"`
}

func (h *Handlers) validateContent(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	reg, _, err := h.pass(r.Context())
	if err != nil {
		storeError(w, err)
		return
	}

	err = reg.ValidateContent(req.Blocks)
	var contentErr *registry.ContentError
	if errors.As(err, &contentErr) {
		writeJSON(w, http.StatusUnprocessableEntity, validationResponse{Violations: contentErr.Violations})
		return
	}
	writeJSON(w, http.StatusOK, validationResponse{Valid: true})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	if err := dec.Decode(v); err != nil {
		apierrors.WriteErrorWithDetails(w, http.StatusBadRequest, apierrors.ErrInvalidBody,
			"Request body is not valid JSON", err.Error())
		return false
	}
	return true
}

func storeError(w http.ResponseWriter, err error) {
	log.Printf("Failed to load block definitions: %v", err)
	apierrors.WriteError(w, http.StatusInternalServerError, apierrors.ErrDatabaseError, "Failed to load block definitions")
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
