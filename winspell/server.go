package winspell

import (
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/Alfex4936/winspell/internal/util"
)

// CheckSpellRequest is the HTTP request body for /v1/check-spell
type CheckSpellRequest struct {
	Text   string   `json:"text"`             // text to check (required)
	Words  []string `json:"words,omitempty"`  // inline words to accept
	Dict   *Dict    `json:"dict,omitempty"`   // user dictionary {"words":[...]}
	Locale string   `json:"locale,omitempty"` // defaults to the server locale
}

// Server exposes a Spellchecker over HTTP.
type Server struct {
	sc      *Spellchecker
	opts    []Option
	logger  *log.Logger
	timeout time.Duration
	dict    atomic.Pointer[Dict]
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the request logger.
func WithServerLogger(logger *log.Logger) ServerOption {
	return func(s *Server) { s.logger = logger }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(d time.Duration) ServerOption {
	return func(s *Server) { s.timeout = d }
}

// WithCheckerOptions are used to build short-lived checkers for requests
// asking for a locale other than the server's.
func WithCheckerOptions(opts ...Option) ServerOption {
	return func(s *Server) { s.opts = opts }
}

// NewServer serves sc. The server does not close sc.
func NewServer(sc *Spellchecker, opts ...ServerOption) *Server {
	s := &Server{
		sc:      sc,
		logger:  log.New(io.Discard),
		timeout: 8 * time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetDict replaces the server-wide dictionary applied to every request.
func (s *Server) SetDict(d *Dict) { s.dict.Store(d) }

// Handler returns the HTTP routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/check-spell", s.CheckSpellHandler)
	mux.HandleFunc("GET /v1/locales", s.LocalesHandler)
	mux.HandleFunc("GET /health", s.HealthHandler)
	mux.HandleFunc("GET /openapi.json", OpenAPIHandler)
	mux.HandleFunc("GET /{$}", DocsHandler)

	var h http.Handler = mux
	if s.timeout > 0 {
		h = http.TimeoutHandler(h, s.timeout, `{"error":"timeout"}`)
	}
	return s.withRequestID(h)
}

// withRequestID tags every request with an X-Request-ID and logs it.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Info("request", "id", id, "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

// CheckSpellHandler handles POST /v1/check-spell requests
func (s *Server) CheckSpellHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	var req CheckSpellRequest
	if err := util.JSON.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	dict := s.dict.Load().Merge(req.Dict, NewDict(req.Words...))

	sc := s.sc
	if req.Locale != "" && req.Locale != s.sc.Locale() {
		var err error
		sc, err = New(req.Locale, append([]Option{WithLogger(s.logger)}, s.opts...)...)
		if err != nil {
			status := http.StatusInternalServerError
			if isUnsupported(err) {
				status = http.StatusBadRequest
			}
			writeError(w, status, err.Error())
			return
		}
		defer sc.Close()
	}

	res, err := sc.CheckResult(req.Text, dict)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Check failed: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// LocalesHandler handles GET /v1/locales requests
func (s *Server) LocalesHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := SupportedLocales(s.opts...)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": s.sc.Locale(),
		"locales": tags,
	})
}

// HealthHandler handles GET /health requests
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "winspell",
		"locale":  s.sc.Locale(),
	})
}

// OpenAPIHandler serves the OpenAPI 3.0 spec at GET /openapi.json
func OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, openAPISpec)
}

// DocsHandler serves the Redoc UI at GET /
func DocsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, redocHTML)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	out, err := util.MarshalNoEscape(v, true)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(out)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

const openAPISpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "winspell API",
    "description": "Spell checking REST API backed by the operating system spell checker",
    "version": "1.0.0"
  },
  "paths": {
    "/v1/check-spell": {
      "post": {
        "summary": "Check Spell",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/CheckSpellRequest" },
              "example": { "text": "another one bitess the dust", "words": ["winspell"] }
            }
          }
        },
        "responses": {
          "200": {
            "description": "Check result",
            "content": { "application/json": { "schema": { "$ref": "#/components/schemas/Result" } } }
          },
          "400": { "description": "Invalid JSON or unsupported locale" },
          "500": { "description": "Spell checking service failure" },
          "503": { "description": "Timeout" }
        }
      }
    },
    "/v1/locales": {
      "get": {
        "summary": "Supported locales",
        "responses": { "200": { "description": "Default and supported locales" } }
      }
    },
    "/health": {
      "get": {
        "summary": "Health",
        "responses": { "200": { "description": "Service is up" } }
      }
    }
  },
  "components": {
    "schemas": {
      "CheckSpellRequest": {
        "type": "object",
        "required": ["text"],
        "properties": {
          "text":   { "type": "string" },
          "words":  { "type": "array", "items": { "type": "string" } },
          "dict":   { "type": "object", "properties": { "words": { "type": "array", "items": { "type": "string" } } } },
          "locale": { "type": "string", "example": "en-US" }
        }
      },
      "Correction": {
        "type": "object",
        "properties": {
          "kind":        { "type": "string", "enum": ["none", "delete", "suggestions", "replacement"] },
          "suggestions": { "type": "array", "items": { "type": "string" } },
          "replacement": { "type": "string" }
        }
      },
      "Item": {
        "type": "object",
        "properties": {
          "start":      { "type": "integer", "description": "rune offset" },
          "length":     { "type": "integer", "description": "rune count" },
          "correction": { "$ref": "#/components/schemas/Correction" },
          "origin":     { "type": "string" },
          "distances":  { "type": "array", "items": { "type": "integer" } }
        }
      },
      "Result": {
        "type": "object",
        "properties": {
          "original":     { "type": "string" },
          "corrected":    { "type": "string" },
          "editDistance": { "type": "integer" },
          "charCount":    { "type": "integer" },
          "locale":       { "type": "string" },
          "errorCount":   { "type": "integer" },
          "errors":       { "type": "array", "items": { "$ref": "#/components/schemas/Item" } }
        }
      }
    }
  }
}`

const redocHTML = `<!DOCTYPE html>
<html>
<head>
  <title>winspell API Docs</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <redoc spec-url="/openapi.json" expand-responses="200" hide-download-button></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@latest/bundles/redoc.standalone.js"></script>
</body>
</html>`
