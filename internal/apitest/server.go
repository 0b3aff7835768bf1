// Package apitest runs an in-process fake of the LaunchLens service for
// tests.
package apitest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Token is the credential the fake accepts by default.
const Token = "test-token"

// Server is a fake LaunchLens backend. Every endpoint answers with an
// empty but valid response until a test replaces it. Requests without the
// current bearer token get 401.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	token     string
	requests  []Recorded
	analyze   http.HandlerFunc
	history   http.HandlerFunc
	countries http.HandlerFunc
	records   map[string]http.HandlerFunc
	states    map[string]string
}

// Recorded is one request the fake received.
type Recorded struct {
	Method string
	Path   string
	Body   string
}

// New starts a fake with empty but valid responses. It is closed when the
// test ends.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{
		token:     Token,
		analyze:   JSON(http.StatusOK, `{"cities":[]}`),
		history:   JSON(http.StatusOK, `{"history":[]}`),
		countries: JSON(http.StatusOK, `{"countries":[]}`),
		records:   map[string]http.HandlerFunc{},
		states:    map[string]string{},
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.record)
	r.Post("/login", s.login)
	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Get("/me", s.me)
		r.Post("/analyze", s.handle(func() http.HandlerFunc { return s.analyze }))
		r.Get("/history", s.handle(func() http.HandlerFunc { return s.history }))
		r.Get("/history/select/{id}", s.selectRecord)
		r.Get("/countries", s.handle(func() http.HandlerFunc { return s.countries }))
		r.Get("/states/{code}", s.stateList)
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// JSON returns a handler that writes body with the given status.
func JSON(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// HandleAnalyze replaces the POST /analyze handler.
func (s *Server) HandleAnalyze(h http.HandlerFunc) {
	s.mu.Lock()
	s.analyze = h
	s.mu.Unlock()
}

// HandleHistory replaces the GET /history handler.
func (s *Server) HandleHistory(h http.HandlerFunc) {
	s.mu.Lock()
	s.history = h
	s.mu.Unlock()
}

// HandleCountries replaces the GET /countries handler.
func (s *Server) HandleCountries(h http.HandlerFunc) {
	s.mu.Lock()
	s.countries = h
	s.mu.Unlock()
}

// HandleRecord sets the GET /history/select/{id} handler for id. Unknown
// ids get 404.
func (s *Server) HandleRecord(id string, h http.HandlerFunc) {
	s.mu.Lock()
	s.records[id] = h
	s.mu.Unlock()
}

// SetStates sets the GET /states/{code} body for a country.
func (s *Server) SetStates(code, body string) {
	s.mu.Lock()
	s.states[code] = body
	s.mu.Unlock()
}

// Revoke makes every authenticated endpoint answer 401.
func (s *Server) Revoke() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Requests returns the requests received so far.
func (s *Server) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Recorded(nil), s.requests...)
}

// Count returns how many requests hit path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, r := range s.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		s.mu.Lock()
		s.requests = append(s.requests, Recorded{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		token := s.token
		s.mu.Unlock()
		if token == "" || r.Header.Get("Authorization") != "Bearer "+token {
			JSON(http.StatusUnauthorized, `{"detail":"Could not validate credentials"}`)(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// handle resolves the handler at request time so tests may swap it after
// New.
func (s *Server) handle(get func() http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		h := get()
		s.mu.Unlock()
		h(w, r)
	}
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil || r.PostForm.Get("password") != "secret" {
		JSON(http.StatusUnauthorized, `{"detail":"Incorrect username or password"}`)(w, r)
		return
	}
	s.mu.Lock()
	s.token = Token
	s.mu.Unlock()
	out, _ := json.Marshal(map[string]string{"access_token": Token, "token_type": "bearer"})
	JSON(http.StatusOK, string(out))(w, r)
}

func (s *Server) me(w http.ResponseWriter, r *http.Request) {
	JSON(http.StatusOK, `{"username":"ada"}`)(w, r)
}

func (s *Server) selectRecord(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	h, ok := s.records[chi.URLParam(r, "id")]
	s.mu.Unlock()
	if !ok {
		JSON(http.StatusNotFound, `{"detail":"History not found"}`)(w, r)
		return
	}
	h(w, r)
}

func (s *Server) stateList(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body, ok := s.states[chi.URLParam(r, "code")]
	s.mu.Unlock()
	if !ok {
		body = `{"states":[]}`
	}
	JSON(http.StatusOK, body)(w, r)
}
