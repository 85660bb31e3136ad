// Package httpserver serves a paste.rs-compatible API for local development
// and for exercising the client against something real.
package httpserver

import (
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"

	"github.com/tombowditch/pasters/client"
	"github.com/tombowditch/pasters/internal/config"
	"github.com/tombowditch/pasters/internal/paste"
	"github.com/tombowditch/pasters/internal/ratelimit"
	"github.com/tombowditch/pasters/internal/store"
	"github.com/tombowditch/pasters/internal/util/randutil"
)

const maxIDAttempts = 10

// Options configures the handler.
type Options struct {
	// BaseURL prefixes the identifiers returned from create.
	BaseURL        string
	// MaxPayloadSize defaults to config.MaxPayloadSize.
	MaxPayloadSize int
	TrustProxy     bool

	// CreateLimiter and FetchLimiter default to ratelimit.Unlimited.
	CreateLimiter ratelimit.Limiter
	FetchLimiter  ratelimit.Limiter

	Logger logrus.FieldLogger
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	store store.Store
	opts  Options
	log   logrus.FieldLogger
}

// NewHandler creates an HTTP handler with all routes configured.
func NewHandler(s store.Store, opts Options) http.Handler {
	if opts.MaxPayloadSize <= 0 {
		opts.MaxPayloadSize = config.MaxPayloadSize
	}
	if opts.CreateLimiter == nil {
		opts.CreateLimiter = ratelimit.Unlimited{}
	}
	if opts.FetchLimiter == nil {
		opts.FetchLimiter = ratelimit.Unlimited{}
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	opts.BaseURL = strings.TrimSuffix(opts.BaseURL, "/") + "/"

	srv := &Server{store: s, opts: opts, log: opts.Logger}

	r := httprouter.New()
	r.GET("/", srv.indexPage)
	r.POST("/", srv.createPaste)
	r.GET("/:identifier", srv.getIdentifier)

	return r
}

func (s *Server) indexPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	writeText(w, http.StatusOK, `pasters - local paste.rs emulator

POST / with the paste as the body, GET /<id> to read it back.
Bodies over the size limit are truncated and answered with 206.

~> curl --data-binary @file.txt `+s.opts.BaseURL+`
`+s.opts.BaseURL+`abc
`)
}

func (s *Server) getIdentifier(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if !s.opts.FetchLimiter.Allow(s.clientIP(r)) {
		writeText(w, http.StatusTooManyRequests, "rate limit exceeded (1 request per second)")
		return
	}

	identifier := ps.ByName("identifier")

	val, err := s.store.Get(identifier)
	if err != nil {
		if err != store.ErrNotFound {
			s.log.WithError(err).WithField("identifier", identifier).Error("store get failed")
		}
		writeText(w, http.StatusNotFound, "not found")
		return
	}

	writeText(w, http.StatusOK, val)
}

func (s *Server) createPaste(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	defer r.Body.Close()

	cip := s.clientIP(r)
	if !s.opts.CreateLimiter.Allow(cip) {
		writeText(w, http.StatusTooManyRequests, "rate limit exceeded (1 paste per 5 seconds)")
		return
	}

	// Read one byte past the limit so truncation can be detected.
	body, err := io.ReadAll(io.LimitReader(r.Body, int64(s.opts.MaxPayloadSize)+1))
	if err != nil {
		writeText(w, http.StatusBadRequest, "error reading body")
		return
	}

	body, truncated, err := paste.Accept(body, s.opts.MaxPayloadSize)
	if err != nil {
		if ve, ok := err.(*paste.ValidationError); ok {
			writeText(w, ve.StatusCode, ve.Message)
		} else {
			writeText(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	for tried := 0; tried < maxIDAttempts; tried++ {
		identifier := randutil.RandString(client.IDLength)
		ok, err := s.store.Create(identifier, body)
		if err != nil {
			s.log.WithError(err).Error("store create failed")
			writeText(w, http.StatusInternalServerError, "error")
			return
		}
		if !ok {
			s.log.WithField("identifier", identifier).Debug("identifier collision, retrying")
			continue
		}

		s.log.WithFields(logrus.Fields{
			"identifier": identifier,
			"remote":     cip,
			"bytes":      len(body),
			"truncated":  truncated,
		}).Info("created paste")
		writeText(w, paste.StatusFor(truncated), s.opts.BaseURL+identifier)
		return
	}

	s.log.Error("could not generate unique identifier after retries")
	writeText(w, http.StatusInternalServerError, "could not generate identifier")
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// clientIP extracts the client IP, consulting proxy headers only when trusted.
func (s *Server) clientIP(r *http.Request) string {
	if s.opts.TrustProxy {
		// X-Forwarded-For can be comma-separated list: client, proxy1, proxy2
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-IP"); xri != "" {
			return strings.TrimSpace(xri)
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
