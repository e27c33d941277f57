// Package server exposes scorecard generation over HTTP.
//
//	POST /scorecard  {"document_content": "<base64 docx>", "form_row_id": 42}
//	             ->  {"new_document_content": "<base64 docx>"}
//	GET  /healthz
package server

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benjaminschreck/go-scorecard/internal/config"
	"github.com/benjaminschreck/go-scorecard/internal/store"
	"github.com/benjaminschreck/go-scorecard/pkg/docx"
)

// RequestIDHeader carries the id assigned to every request.
const RequestIDHeader = "X-Request-Id"

// Builder fills a scorecard template for a form.
type Builder interface {
	Build(ctx context.Context, template []byte, formID int64) ([]byte, error)
}

// Server handles scorecard requests.
type Server struct {
	builder Builder
	cfg     config.ServerConfig
	log     *zap.Logger
}

// New returns a server using builder. A nil logger disables logging.
func New(builder Builder, cfg config.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{builder: builder, cfg: cfg, log: log.Named("server")}
}

// Handler returns the request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /scorecard", s.handleScorecard)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// ListenAndServe listens on the configured address and serves until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", s.cfg.Listen)
	if err != nil {
		return fmt.Errorf("unable to listen on %s: %w", s.cfg.Listen, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down gracefully,
// giving in-flight requests the configured shutdown timeout to finish.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		ErrorLog:     zap.NewStdLog(s.log),
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("Listening", zap.String("address", ln.Addr().String()))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx := context.Background()
	if s.cfg.ShutdownTimeout > 0 {
		var cancel context.CancelFunc
		shutdownCtx, cancel = context.WithTimeout(shutdownCtx, s.cfg.ShutdownTimeout)
		defer cancel()
	}
	s.log.Info("Shutting down")
	err := srv.Shutdown(shutdownCtx)
	if serveErr := <-errc; !errors.Is(serveErr, http.ErrServerClosed) {
		err = multierr.Append(err, serveErr)
	}
	return err
}

type scorecardRequest struct {
	DocumentContent *string `json:"document_content"`
	FormRowID       *formID `json:"form_row_id"`
}

type scorecardResponse struct {
	NewDocumentContent string `json:"new_document_content"`
}

// formID accepts a JSON number or a numeric string.
type formID int64

func (id *formID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("form_row_id must be an integer")
		}
		n = json.Number(s)
	}
	v, err := strconv.ParseInt(n.String(), 10, 64)
	if err != nil {
		return fmt.Errorf("form_row_id must be an integer")
	}
	*id = formID(v)
	return nil
}

func (s *Server) handleScorecard(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	id := uuid.NewString()
	w.Header().Set(RequestIDHeader, id)
	log := s.log.With(zap.String("request", id))

	if s.cfg.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	}
	var req scorecardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, log, http.StatusRequestEntityTooLarge, "Request body too large", err)
			return
		}
		s.fail(w, log, http.StatusBadRequest, "Invalid JSON", err)
		return
	}
	if req.DocumentContent == nil || req.FormRowID == nil {
		s.fail(w, log, http.StatusBadRequest, "Missing required keys: 'form_row_id' and/or 'document_content'", nil)
		return
	}
	template, err := base64.StdEncoding.DecodeString(*req.DocumentContent)
	if err != nil {
		s.fail(w, log, http.StatusBadRequest, "document_content is not valid base64", err)
		return
	}

	out, err := s.builder.Build(r.Context(), template, int64(*req.FormRowID))
	switch {
	case errors.Is(err, docx.ErrNotDocx):
		s.fail(w, log, http.StatusBadRequest, "document_content is not a DOCX document", err)
		return
	case errors.Is(err, store.ErrFormNotFound):
		s.fail(w, log, http.StatusNotFound, fmt.Sprintf("Form %d not found", int64(*req.FormRowID)), err)
		return
	case err != nil:
		s.fail(w, log, http.StatusInternalServerError, "Unable to build scorecard", err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(scorecardResponse{
		NewDocumentContent: base64.StdEncoding.EncodeToString(out),
	}); err != nil {
		log.Warn("Unable to write response", zap.Error(err))
		return
	}
	log.Info("Scorecard request served", zap.Int64("form", int64(*req.FormRowID)),
		zap.Int("size", len(out)), zap.Duration("elapsed", time.Since(start)))
}

func (s *Server) fail(w http.ResponseWriter, log *zap.Logger, status int, msg string, err error) {
	if status >= http.StatusInternalServerError {
		log.Error(msg, zap.Int("status", status), zap.Error(err))
	} else {
		log.Warn(msg, zap.Int("status", status), zap.Error(err))
	}
	http.Error(w, msg, status)
}
