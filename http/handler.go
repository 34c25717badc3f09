package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"notegate"
	"notegate/stats"
)

// Service is the gateway surface the handlers delegate to.
type Service interface {
	ListNotes(ctx context.Context) ([]string, error)
	ReadNote(ctx context.Context, filename string) (notegate.Note, error)
	WriteNote(ctx context.Context, filename, content string) error
	ListCanvases(ctx context.Context) ([]string, error)
	GetCanvas(ctx context.Context, name string) (notegate.CanvasDocument, error)
	CreateCanvas(ctx context.Context, name string, content notegate.CanvasContent) (string, error)
	UpdateCanvas(ctx context.Context, name string, content notegate.CanvasContent) (string, error)
	DeleteCanvas(ctx context.Context, name string) (string, error)
}

type CORSConfig struct {
	Enabled          bool
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type HandlerConfig struct {
	// Token is the bearer secret; empty disables authentication.
	Token string
	// Bucket and Endpoint are echoed by the health endpoint.
	Bucket   string
	Endpoint string
	CORS     CORSConfig
}

// Handler provides the HTTP handlers for the gateway endpoints.
type Handler struct {
	config  HandlerConfig
	service Service
	tracker *stats.Tracker
}

// NewHandler creates a Handler with the given configuration, service,
// and bandwidth tracker.
func NewHandler(config *HandlerConfig, service Service, tracker *stats.Tracker) *Handler {
	return &Handler{
		config:  *config,
		service: service,
		tracker: tracker,
	}
}

// Router returns the configured http.Handler. Health and documentation
// are public; everything else sits behind the auth gate. The bandwidth
// middleware wraps all routes, including unmatched ones.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(Bandwidth(h.tracker))

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.Get("/health", h.handleHealth)
	r.Get("/openapi.yaml", h.handleOpenAPI)
	r.Get("/docs", h.handleDocs)

	r.Group(func(r chi.Router) {
		r.Use(BearerAuth(h.config.Token))
		r.Get("/stats", h.handleStats)
		r.Get("/listNotes", h.handleListNotes)
		r.Post("/readNote", h.handleReadNote)
		r.Post("/writeNote", h.handleWriteNote)
		r.Get("/canvas", h.handleListCanvases)
		r.Post("/canvas", h.handleCreateCanvas)
		r.Get("/canvas/{name}", h.handleGetCanvas)
		r.Put("/canvas/{name}", h.handleUpdateCanvas)
		r.Delete("/canvas/{name}", h.handleDeleteCanvas)
	})

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, _ *http.Request) {
	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"ok":       true,
		"bucket":   h.config.Bucket,
		"endpoint": h.config.Endpoint,
	})
}

func (h *Handler) handleStats(w http.ResponseWriter, _ *http.Request) {
	report := h.tracker.Snapshot().Report(time.Now())
	_ = WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) handleListNotes(w http.ResponseWriter, r *http.Request) {
	files, err := h.service.ListNotes(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{"files": files})
}

type noteRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

func (h *Handler) handleReadNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		WriteError(w, http.StatusBadRequest, "Missing filename")
		return
	}

	note, err := h.service.ReadNote(r.Context(), req.Filename)
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, note)
}

func (h *Handler) handleWriteNote(w http.ResponseWriter, r *http.Request) {
	var req noteRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		WriteError(w, http.StatusBadRequest, "Missing filename")
		return
	}

	if err := h.service.WriteNote(r.Context(), req.Filename, req.Content); err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": req.Filename + " uploaded",
	})
}

func (h *Handler) handleListCanvases(w http.ResponseWriter, r *http.Request) {
	canvases, err := h.service.ListCanvases(r.Context())
	if err != nil {
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{"canvases": canvases})
}

func (h *Handler) handleGetCanvas(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	doc, err := h.service.GetCanvas(r.Context(), name)
	if err != nil {
		if errors.Is(err, notegate.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Canvas not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, doc)
}

type canvasCreateRequest struct {
	Filename string                 `json:"filename"`
	Content  notegate.CanvasContent `json:"content"`
}

func (h *Handler) handleCreateCanvas(w http.ResponseWriter, r *http.Request) {
	var req canvasCreateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Filename == "" {
		WriteError(w, http.StatusBadRequest, "Missing filename")
		return
	}
	if req.Content.IsZero() {
		WriteError(w, http.StatusBadRequest, "Missing content")
		return
	}

	key, err := h.service.CreateCanvas(r.Context(), req.Filename, req.Content)
	if err != nil {
		if errors.Is(err, notegate.ErrConflict) {
			WriteError(w, http.StatusConflict, "Canvas already exists")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"name":    key,
	})
}

type canvasUpdateRequest struct {
	Content notegate.CanvasContent `json:"content"`
}

func (h *Handler) handleUpdateCanvas(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var req canvasUpdateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content.IsZero() {
		WriteError(w, http.StatusBadRequest, "Missing content")
		return
	}

	key, err := h.service.UpdateCanvas(r.Context(), name, req.Content)
	if err != nil {
		if errors.Is(err, notegate.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Canvas not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"name":    key,
	})
}

func (h *Handler) handleDeleteCanvas(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	key, err := h.service.DeleteCanvas(r.Context(), name)
	if err != nil {
		if errors.Is(err, notegate.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Canvas not found")
			return
		}
		HandleError(w, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"name":    key,
	})
}

// decodeBody decodes a JSON request body, writing a 400 and returning
// false when it cannot. Content validation errors carry their own message.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, notegate.ErrInvalidInput) {
			WriteError(w, http.StatusBadRequest, "Content must be an object, array, or string")
			return false
		}
		WriteError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}
