// Package server exposes table reconstruction over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/ukaji3/tblstruct-go/pkg/tblstruct"
	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/models"
	"github.com/ukaji3/tblstruct-go/pkg/tblstruct/output"
)

// RequestIDHeader carries the request id in requests and responses.
const RequestIDHeader = "X-Request-ID"

// TableErrorsHeader reports how many tables failed for non-JSON responses.
const TableErrorsHeader = "X-Table-Errors"

var contentTypes = map[string]string{
	output.FormatJSON: "application/json",
	output.FormatCSV:  "text/csv; charset=utf-8",
	output.FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	output.FormatText: "text/plain; charset=utf-8",
}

// Server handles reconstruction requests.
type Server struct {
	Options      tblstruct.Options
	Logger       *log.Logger
	Timeout      time.Duration
	MaxBodyBytes int64
}

// New creates a server from the given configuration.
func New(cfg tblstruct.Config, logger *log.Logger) (*Server, error) {
	timeout, err := cfg.Server.RequestTimeout()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	opts := cfg.Options()
	opts.Logger = logger
	return &Server{
		Options:      opts,
		Logger:       logger,
		Timeout:      timeout,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}, nil
}

// Routes returns the HTTP handler of the server.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	if s.Timeout > 0 {
		r.Use(middleware.Timeout(s.Timeout))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Post("/v1/tables", s.handleTables)

	return r
}

// tablesResponse is the JSON body returned by POST /v1/tables.
type tablesResponse struct {
	*models.TableSet
	Errors []tableError `json:"errors,omitempty"`
}

type tableError struct {
	TableID string `json:"table_id"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = output.FormatJSON
	}
	if err := output.ValidateFormat(format); err != nil {
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	body := r.Body
	if s.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.MaxBodyBytes)
	}
	doc, err := tblstruct.DecodeDocument(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.fail(w, r, http.StatusRequestEntityTooLarge, err)
			return
		}
		s.fail(w, r, http.StatusBadRequest, err)
		return
	}

	set, err := tblstruct.Reconstruct(r.Context(), doc, s.Options)
	if set == nil {
		switch {
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
			// The timeout middleware answers once the handler returns.
			return
		case errors.Is(err, tblstruct.ErrMalformedGraph):
			s.fail(w, r, http.StatusUnprocessableEntity, err)
		default:
			s.fail(w, r, http.StatusInternalServerError, err)
		}
		return
	}
	failed := tblstruct.TableErrors(err)

	if id := r.URL.Query().Get("table"); id != "" {
		s.writeTable(w, r, set, id, format)
		return
	}

	if format == output.FormatJSON {
		resp := tablesResponse{TableSet: set}
		for _, e := range failed {
			resp.Errors = append(resp.Errors, tableError{TableID: e.TableID, Message: e.Err.Error()})
		}
		writeJSON(w, http.StatusOK, resp)
		return
	}

	data, err := output.Render(set, format, false)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeBytes(w, format, len(failed), data)
}

func (s *Server) writeTable(w http.ResponseWriter, r *http.Request, set *models.TableSet, id, format string) {
	table, ok := set.Tables[id]
	if !ok {
		s.fail(w, r, http.StatusNotFound, errors.New("table not found: "+id))
		return
	}
	data, err := output.RenderTable(&table, format, false)
	if err != nil {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}
	s.writeBytes(w, format, 0, data)
}

func (s *Server) writeBytes(w http.ResponseWriter, format string, failed int, data []byte) {
	w.Header().Set("Content-Type", contentTypes[format])
	if failed > 0 {
		w.Header().Set(TableErrorsHeader, strconv.Itoa(failed))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		s.Logger.Debug("write response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorResponse{
		Error:     err.Error(),
		RequestID: RequestIDFromContext(r.Context()),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", contentTypes[output.FormatJSON])
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

const requestIDKey ctxKey = 0

// requestID assigns every request an id, reusing a valid incoming one.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequestIDFromContext returns the request id attached by the server, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Millisecond),
			"request_id", RequestIDFromContext(r.Context()))
	})
}
