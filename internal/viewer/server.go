// Package viewer serves the token documentation surface: grouped token
// browsing, on-demand artifact downloads and viewer preferences.
package viewer

import (
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/agentic-research/lumiere/api"
	"github.com/agentic-research/lumiere/internal/blob"
	"github.com/agentic-research/lumiere/internal/emit"
	"github.com/agentic-research/lumiere/internal/prefs"
	"github.com/agentic-research/lumiere/internal/tokens"
	"go.uber.org/zap"
)

// Server renders pages and downloads from the live document in docs.
type Server struct {
	docs   *tokens.Holder
	prefs  *prefs.Preferences
	blobs  *blob.Registry
	logger *zap.Logger
	page   *template.Template
	mux    *http.ServeMux
}

// New wires the routes. A nil logger disables logging.
func New(docs *tokens.Holder, p *prefs.Preferences, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		docs:   docs,
		prefs:  p,
		blobs:  blob.NewRegistry(),
		logger: logger,
		page:   template.Must(template.New("index").Parse(indexTemplate)),
		mux:    http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /{$}", s.handleIndex)
	s.mux.HandleFunc("GET /api/tokens", s.handleTokens)
	s.mux.HandleFunc("GET /api/groups/{group}", s.handleGroup)
	s.mux.HandleFunc("GET /api/prefs/{key}", s.handleGetPref)
	s.mux.HandleFunc("PUT /api/prefs/{key}", s.handlePutPref)
	s.mux.HandleFunc("GET /download/{format}", s.handleDownload)
	s.mux.HandleFunc("GET /blob/{id}", s.handleBlob)
	return s
}

// Blobs exposes the download handle registry.
func (s *Server) Blobs() *blob.Registry { return s.blobs }

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	s.mux.ServeHTTP(w, r)
	s.logger.Debug("request",
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Duration("elapsed", time.Since(start)))
}

func (s *Server) handleTokens(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", emit.JSON.ContentType())
	_, _ = w.Write(emit.JSONDocument(s.docs.Current()))
}

func (s *Server) handleGroup(w http.ResponseWriter, r *http.Request) {
	c, ok := s.docs.Current().Category(r.PathValue("group"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	toks := c.Tokens
	if toks == nil {
		toks = []api.Token{}
	}
	writeJSON(w, http.StatusOK, toks)
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	f, err := emit.ParseFormat(r.PathValue("format"))
	if err != nil || !f.Downloadable() {
		http.NotFound(w, r)
		return
	}
	a, err := emit.RenderDownload(f, s.docs.Current())
	if err != nil {
		s.logger.Error("render download", zap.String("format", string(f)), zap.Error(err))
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := newDownloadSink(w, s.blobs).WriteArtifact(r.Context(), a); err != nil {
		// Headers are already out; the client sees a truncated body.
		s.logger.Warn("download interrupted", zap.String("name", a.Name), zap.Error(err))
	}
}

// handleBlob serves a download body while its handle is live. Released
// handles answer 404, as a revoked object URL would.
func (s *Server) handleBlob(w http.ResponseWriter, r *http.Request) {
	b, ok := s.blobs.Lookup(blob.URLPrefix + r.PathValue("id"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", b.ContentType)
	_, _ = w.Write(b.Body)
}

type prefPayload struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *Server) handleGetPref(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var value string
	switch key {
	case "theme":
		t, err := s.prefs.Theme(r.Context())
		if err != nil {
			s.prefError(w, err)
			return
		}
		value = string(t)
	case "nav-tab":
		t, err := s.prefs.NavTab(r.Context())
		if err != nil {
			s.prefError(w, err)
			return
		}
		value = string(t)
	default:
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, prefPayload{Key: key, Value: value})
}

func (s *Server) handlePutPref(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	var in prefPayload
	if err := json.NewDecoder(io.LimitReader(r.Body, 4<<10)).Decode(&in); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	var err error
	switch key {
	case "theme":
		err = s.prefs.SetTheme(r.Context(), prefs.Theme(in.Value))
	case "nav-tab":
		err = s.prefs.SetNavTab(r.Context(), prefs.NavTab(in.Value))
	default:
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.prefError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, prefPayload{Key: key, Value: in.Value})
}

func (s *Server) prefError(w http.ResponseWriter, err error) {
	if errors.Is(err, prefs.ErrInvalidValue) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	s.logger.Error("preference store", zap.Error(err))
	http.Error(w, "preference store unavailable", http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
