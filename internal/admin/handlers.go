// ABOUTME: HTTP handlers for admin UI pages.
// ABOUTME: Serves the dashboard, the block definition editor and the request log viewer.

package admin

import (
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/2389/blockyard/internal/blocks"
	"github.com/2389/blockyard/internal/logging"
	"github.com/2389/blockyard/internal/registry"
	"github.com/2389/blockyard/internal/slug"
	"github.com/2389/blockyard/internal/store"
	"github.com/go-chi/chi/v5"
)

// Saved-message query values carried through the post/redirect/get cycle.
const (
	savedCreated = "created"
	savedUpdated = "updated"
)

var savedMessages = map[string]string{
	savedCreated: "Block saved.",
	savedUpdated: "Block updated.",
}

type Handlers struct {
	store     *store.Store
	loader    *blocks.Loader
	registrar *blocks.Registrar
	schema    ResourceSchema
}

func NewHandlers(s *store.Store, loader *blocks.Loader) *Handlers {
	return &Handlers{
		store:     s,
		loader:    loader,
		registrar: blocks.NewRegistrar(loader),
		schema:    DefinitionSchema(),
	}
}

func (h *Handlers) RegisterRoutes(r chi.Router) {
	r.Route("/admin", func(r chi.Router) {
		r.Get("/", h.dashboard)
		r.Get("/blocks", h.blocksList)
		r.Get("/blocks/new", h.blocksNew)
		r.Post("/blocks", h.blocksCreate)
		r.Post("/blocks/preview", h.descriptionPreview)
		r.Get("/blocks/{id}", h.blocksEdit)
		r.Post("/blocks/{id}", h.blocksUpdate)
		r.Delete("/blocks/{id}", h.blocksDelete)
		r.Get("/logs", h.logsList)
	})
}

func (h *Handlers) dashboard(w http.ResponseWriter, r *http.Request) {
	counts, err := h.store.CountDefinitions(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	stats, err := h.store.GetRequestLogStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	reg, pass, err := registry.Build(r.Context(), h.registrar, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	renderPage(w, "dashboard", map[string]any{
		"Published":   counts[blocks.StatusPublish],
		"Drafts":      counts[blocks.StatusDraft],
		"Stats":       stats,
		"Descriptors": reg.All(),
		"Duplicates":  pass.Duplicates,
	})
}

func (h *Handlers) blocksList(w http.ResponseWriter, r *http.Request) {
	search := strings.TrimSpace(r.URL.Query().Get("q"))
	status := r.URL.Query().Get("status")
	q := store.DefinitionQuery{Search: search}
	if status != "" {
		q.Status = blocks.ParseStatus(status)
		status = string(q.Status)
	}

	defs, err := h.store.ListDefinitions(r.Context(), q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	rows := make([]map[string]any, 0, len(defs))
	for i := range defs {
		rows = append(rows, definitionValues(&defs[i]))
	}

	w.Header().Set("Content-Type", "text/html")
	renderPage(w, "blocks-list", map[string]any{
		"ListHTML":    template.HTML(RenderResourceList(h.schema, rows)),
		"Definitions": defs,
		"Search":      search,
		"Status":      status,
	})
}

type formPage struct {
	IsNew       bool
	Message     string
	Error       string
	TypeName    string
	Description string
	FormHTML    template.HTML
}

func (h *Handlers) renderForm(w http.ResponseWriter, status int, page formPage, values map[string]any, action string) {
	page.FormHTML = template.HTML(RenderResourceForm(h.schema, values, action))
	page.Description = formatValue(values[blocks.MetaDescription.String()])
	w.Header().Set("Content-Type", "text/html")
	w.WriteHeader(status)
	renderPage(w, "blocks-form", page)
}

func (h *Handlers) blocksNew(w http.ResponseWriter, r *http.Request) {
	values := map[string]any{
		fieldStatus:              string(blocks.StatusPublish),
		blocks.MetaMode.String(): string(blocks.ModePreview),
	}
	h.renderForm(w, http.StatusOK, formPage{IsNew: true}, values, "/admin/blocks")
}

func (h *Handlers) blocksEdit(w http.ResponseWriter, r *http.Request) {
	def, ok := h.lookup(w, r)
	if !ok {
		return
	}

	values := definitionValues(def)
	// An empty slug field shows the one the title would produce
	if def.Meta.Slug == "" {
		values[blocks.MetaSlug.String()] = slug.Normalize(def.Title)
	}

	page := formPage{
		Message:  savedMessages[r.URL.Query().Get("saved")],
		TypeName: blocks.TypeName(h.loader.Namespace(), blocks.DefinitionSlug(*def)),
	}
	h.renderForm(w, http.StatusOK, page, values, "/admin/blocks/"+def.ID)
}

func (h *Handlers) blocksCreate(w http.ResponseWriter, r *http.Request) {
	title, status, meta, ok := h.parseForm(w, r, true, "/admin/blocks")
	if !ok {
		return
	}

	def, err := h.store.CreateDefinition(r.Context(), title, status)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := blocks.SaveMeta(r.Context(), h.store, def.ID, meta); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("Created block definition %s (%s)", def.ID, title)
	http.Redirect(w, r, "/admin/blocks/"+def.ID+"?saved="+savedCreated, http.StatusSeeOther)
}

func (h *Handlers) blocksUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	title, status, meta, ok := h.parseForm(w, r, false, "/admin/blocks/"+id)
	if !ok {
		return
	}

	if err := h.store.UpdateDefinition(r.Context(), id, title, status); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Block not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := blocks.SaveMeta(r.Context(), h.store, id, meta); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/blocks/"+id+"?saved="+savedUpdated, http.StatusSeeOther)
}

func (h *Handlers) blocksDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.store.DeleteDefinition(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Block not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// htmx replaces the row with the empty body
	w.WriteHeader(http.StatusOK)
}

func (h *Handlers) descriptionPreview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	renderPartial(w, "block-description", r.PostForm.Get(blocks.MetaDescription.String()))
}

// parseForm reads the title, status and the editable meta values. An invalid
// submission re-renders the form with an error and returns ok false.
func (h *Handlers) parseForm(w http.ResponseWriter, r *http.Request, isNew bool, action string) (string, blocks.Status, map[blocks.MetaKey]string, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return "", "", nil, false
	}

	title := blocks.SanitizeText(r.PostForm.Get(fieldTitle))
	status := blocks.ParseStatus(r.PostForm.Get(fieldStatus))

	meta := make(map[blocks.MetaKey]string)
	for _, key := range blocks.SavedKeys {
		if vals, ok := r.PostForm[key.String()]; ok && len(vals) > 0 {
			meta[key] = vals[0]
		}
	}

	if title == "" {
		values := map[string]any{fieldTitle: "", fieldStatus: string(status)}
		for key, value := range meta {
			values[key.String()] = value
		}
		h.renderForm(w, http.StatusBadRequest, formPage{IsNew: isNew, Error: "Title is required."}, values, action)
		return "", "", nil, false
	}
	return title, status, meta, true
}

func (h *Handlers) lookup(w http.ResponseWriter, r *http.Request) (*blocks.Definition, bool) {
	def, err := h.store.GetDefinition(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, "Block not found", http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return nil, false
	}
	return def, true
}

func (h *Handlers) logsList(w http.ResponseWriter, r *http.Request) {
	area := r.URL.Query().Get("area")
	method := r.URL.Query().Get("method")
	pathPrefix := r.URL.Query().Get("path")
	statusCode, _ := strconv.Atoi(r.URL.Query().Get("status"))

	logs, err := h.store.GetRequestLogs(&store.RequestLogQuery{
		Limit:      100,
		Area:       area,
		Method:     method,
		PathPrefix: pathPrefix,
		StatusCode: statusCode,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	// Pretty-print JSON in request/response bodies
	for _, entry := range logs {
		entry.RequestBody = prettyJSON(entry.RequestBody)
		entry.ResponseBody = prettyJSON(entry.ResponseBody)
	}

	stats, err := h.store.GetRequestLogStats()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html")
	renderPage(w, "logs-list", map[string]any{
		"Logs":         logs,
		"Stats":        stats,
		"Areas":        []string{logging.AreaAPI, logging.AreaRender, logging.AreaAdmin, logging.AreaUploads},
		"SelectedArea": area,
		"PathPrefix":   pathPrefix,
	})
}

// prettyJSON formats JSON with indentation, or returns original string if not valid JSON
func prettyJSON(s string) string {
	if s == "" {
		return s
	}
	var obj any
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return s
	}
	formatted, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return s
	}
	return string(formatted)
}
