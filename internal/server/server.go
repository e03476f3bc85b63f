// Package server serves configured forms over HTTP: GET renders the stored
// register values, POST decodes a submission, stores it and publishes it to
// the controllers.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-formgen-ssi/pkg/orchestrator"
	"github.com/goliatone/go-formgen-ssi/pkg/render"
	"github.com/goliatone/go-formgen-ssi/pkg/renderers/vanilla"
	"github.com/goliatone/go-formgen-ssi/pkg/schema"
	"github.com/goliatone/go-formgen-ssi/pkg/store"
)

// Form is one schema served under /forms/{id}.
type Form struct {
	ID     string
	Source schema.Source
	Format string
}

// Publisher sends accepted values to the controllers.
type Publisher interface {
	Publish(ctx context.Context, formID string, values map[string]any) error
}

// Option customises a Server.
type Option func(*Server)

// WithStore persists accepted submissions. Without a store forms render
// schema defaults and submissions are only decoded.
func WithStore(s store.Store) Option {
	return func(srv *Server) {
		srv.store = s
	}
}

// WithPublisher publishes accepted submissions.
func WithPublisher(p Publisher) Option {
	return func(srv *Server) {
		srv.publisher = p
	}
}

// WithLogger sets the request logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(srv *Server) {
		if logger != nil {
			srv.logger = logger
		}
	}
}

// WithRenderer selects the renderer used for GET responses.
func WithRenderer(name string) Option {
	return func(srv *Server) {
		srv.renderer = strings.TrimSpace(name)
	}
}

// WithTheme selects the theme passed to the orchestrator.
func WithTheme(name, variant string) Option {
	return func(srv *Server) {
		srv.themeName = name
		srv.themeVariant = variant
	}
}

// Server is an http.Handler.
type Server struct {
	orch         *orchestrator.Orchestrator
	forms        map[string]Form
	store        store.Store
	publisher    Publisher
	renderer     string
	themeName    string
	themeVariant string
	logger       logrus.FieldLogger
	mux          *http.ServeMux
}

var _ http.Handler = (*Server)(nil)

// New builds a server for forms.
func New(orch *orchestrator.Orchestrator, forms []Form, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("server: orchestrator is required")
	}
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	srv := &Server{
		orch:   orch,
		forms:  make(map[string]Form, len(forms)),
		logger: discard,
		mux:    http.NewServeMux(),
	}
	for _, form := range forms {
		id := strings.TrimSpace(form.ID)
		if id == "" {
			return nil, errors.New("server: form id is required")
		}
		if _, dup := srv.forms[id]; dup {
			return nil, fmt.Errorf("server: duplicate form %q", id)
		}
		form.ID = id
		srv.forms[id] = form
	}
	for _, opt := range options {
		if opt != nil {
			opt(srv)
		}
	}
	srv.routes()
	return srv, nil
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /forms", s.handleListForms)
	s.mux.HandleFunc("GET /forms/{id}", s.handleRenderForm)
	s.mux.HandleFunc("POST /forms/{id}", s.handleSubmitForm)
	s.mux.HandleFunc("GET /api/forms/{id}/values", s.handleGetValues)
	s.mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServerFS(vanilla.AssetsFS())))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

type formSummary struct {
	ID       string `json:"id"`
	Endpoint string `json:"endpoint"`
}

func (s *Server) handleListForms(w http.ResponseWriter, _ *http.Request) {
	summaries := make([]formSummary, 0, len(s.forms))
	for id := range s.forms {
		summaries = append(summaries, formSummary{ID: id, Endpoint: endpoint(id)})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].ID < summaries[j].ID })
	s.writeJSON(w, http.StatusOK, summaries)
}

func (s *Server) handleRenderForm(w http.ResponseWriter, r *http.Request) {
	form, ok := s.lookup(w, r)
	if !ok {
		return
	}
	record, err := s.record(r.Context(), form.ID)
	if err != nil {
		s.internalError(w, "load values", form.ID, err)
		return
	}
	s.renderForm(w, r, form, http.StatusOK, render.RenderOptions{
		Values: record.Values,
		Hidden: []render.HiddenField{render.RevisionField(record.Revision)},
	})
}

func (s *Server) handleSubmitForm(w http.ResponseWriter, r *http.Request) {
	form, ok := s.lookup(w, r)
	if !ok {
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := r.ParseForm(); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid form body")
		return
	}
	revision, err := parseRevision(r.PostForm.Get(render.RevisionFieldName))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid revision")
		return
	}

	submission, err := s.orch.Decode(r.Context(), orchestrator.DecodeRequest{
		Request: s.request(form),
		Form:    r.PostForm,
	})
	if err != nil {
		s.internalError(w, "decode submission", form.ID, err)
		return
	}
	logger := s.logger.WithFields(logrus.Fields{"form": form.ID, "revision": revision})
	if !submission.Valid() {
		logger.WithField("errors", len(submission.Errors)).Info("submission rejected")
		s.respondInvalid(w, r, form, submission, revision)
		return
	}

	result := store.Record{FormID: form.ID, Revision: revision, Values: submission.Values}
	if s.store != nil {
		result, err = s.store.Put(r.Context(), form.ID, submission.Values, revision)
		if errors.Is(err, store.ErrConflict) {
			logger.Warn("stale submission")
			s.writeError(w, http.StatusConflict, "values changed since the form was loaded")
			return
		}
		if err != nil {
			s.internalError(w, "store values", form.ID, err)
			return
		}
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(r.Context(), form.ID, submission.Values); err != nil {
			logger.WithError(err).Error("publish values")
			s.writeError(w, http.StatusBadGateway, "values stored but not delivered to the controller")
			return
		}
	}
	logger.WithField("stored", result.Revision).Info("submission accepted")

	if wantsJSON(r) {
		s.writeJSON(w, http.StatusOK, result)
		return
	}
	http.Redirect(w, r, endpoint(form.ID), http.StatusSeeOther)
}

func (s *Server) handleGetValues(w http.ResponseWriter, r *http.Request) {
	form, ok := s.lookup(w, r)
	if !ok {
		return
	}
	if s.store == nil {
		s.writeError(w, http.StatusNotFound, "no value store configured")
		return
	}
	record, err := s.store.Get(r.Context(), form.ID)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "no values stored")
		return
	}
	if err != nil {
		s.internalError(w, "load values", form.ID, err)
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

func (s *Server) respondInvalid(w http.ResponseWriter, r *http.Request, form Form, submission render.Submission, revision uint64) {
	if wantsJSON(r) {
		s.writeJSON(w, http.StatusUnprocessableEntity, submission)
		return
	}
	s.renderForm(w, r, form, http.StatusUnprocessableEntity, render.RenderOptions{
		Values:     submission.Values,
		Errors:     submission.Errors,
		FormErrors: []string{"Some values are out of range."},
		Hidden:     []render.HiddenField{render.RevisionField(revision)},
	})
}

func (s *Server) renderForm(w http.ResponseWriter, r *http.Request, form Form, status int, options render.RenderOptions) {
	req := s.request(form)
	req.RenderOptions = options
	renderer, err := s.orch.Renderer(req.Renderer)
	if err != nil {
		s.internalError(w, "resolve renderer", form.ID, err)
		return
	}
	output, err := s.orch.Generate(r.Context(), req)
	if err != nil {
		s.internalError(w, "render form", form.ID, err)
		return
	}
	w.Header().Set("Content-Type", renderer.ContentType())
	w.WriteHeader(status)
	w.Write(output)
}

func (s *Server) request(form Form) orchestrator.Request {
	return orchestrator.Request{
		Source:       form.Source,
		Format:       form.Format,
		FormID:       form.ID,
		Endpoint:     endpoint(form.ID),
		Renderer:     s.renderer,
		ThemeName:    s.themeName,
		ThemeVariant: s.themeVariant,
	}
}

func (s *Server) record(ctx context.Context, formID string) (store.Record, error) {
	if s.store == nil {
		return store.Record{FormID: formID}, nil
	}
	record, err := s.store.Get(ctx, formID)
	if errors.Is(err, store.ErrNotFound) {
		return store.Record{FormID: formID}, nil
	}
	return record, err
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (Form, bool) {
	form, ok := s.forms[r.PathValue("id")]
	if !ok {
		s.writeError(w, http.StatusNotFound, "form not found")
	}
	return form, ok
}

func (s *Server) internalError(w http.ResponseWriter, action, formID string, err error) {
	s.logger.WithFields(logrus.Fields{"form": formID}).WithError(err).Error(action)
	s.writeError(w, http.StatusInternalServerError, "internal server error")
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.WithError(err).Warn("write response")
	}
}

func endpoint(id string) string {
	return "/forms/" + id
}

func parseRevision(raw string) (uint64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	return strconv.ParseUint(raw, 10, 64)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
