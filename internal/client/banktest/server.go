// Package banktest runs an in-process fake of the coin bank HTTP API for
// tests. Every route answers with a canned response (200 {} by default) and
// every request is recorded for later inspection.
package banktest

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/dmitrijs2005/coinbank/internal/common"
	"github.com/gorilla/mux"
)

// Route names, "METHOD path-template".
const (
	RouteLogin        = "POST /api/login"
	RouteRegister     = "POST /api/register"
	RouteLogout       = "POST /api/logout"
	RouteBalance      = "GET /api/user/{userId}/balance"
	RouteCard         = "POST /api/card"
	RouteCardReset    = "POST /api/card/reset"
	RouteTransactions = "GET /api/transactions"
	RouteTransfer     = "POST /api/transfer"
	RouteBillPay      = "POST /api/bill/pay"
	RouteBillCreate   = "POST /api/bill/create"
)

var routes = []struct {
	name, method, path string
}{
	{RouteLogin, http.MethodPost, "/api/login"},
	{RouteRegister, http.MethodPost, "/api/register"},
	{RouteLogout, http.MethodPost, "/api/logout"},
	{RouteBalance, http.MethodGet, "/api/user/{userId}/balance"},
	{RouteCard, http.MethodPost, "/api/card"},
	{RouteCardReset, http.MethodPost, "/api/card/reset"},
	{RouteTransactions, http.MethodGet, "/api/transactions"},
	{RouteTransfer, http.MethodPost, "/api/transfer"},
	{RouteBillPay, http.MethodPost, "/api/bill/pay"},
	{RouteBillCreate, http.MethodPost, "/api/bill/create"},
}

// Request is one recorded call.
type Request struct {
	Route         string
	Path          string
	Query         string
	Vars          map[string]string
	Authorization string
	ContentType   string
	RequestID     string
	Body          map[string]any
}

type response struct {
	status int
	raw    []byte
}

type Server struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]response
	requests  []Request
}

// NewServer starts the fake. Callers must Close it.
func NewServer() *Server {
	s := &Server{responses: make(map[string]response)}

	r := mux.NewRouter()
	for _, rt := range routes {
		r.HandleFunc(rt.path, s.handler(rt.name)).Methods(rt.method)
	}

	s.Server = httptest.NewServer(r)
	return s
}

// Respond sets the JSON body and status returned by route.
func (s *Server) Respond(route string, status int, body any) {
	b, err := json.Marshal(body)
	if err != nil {
		panic(err)
	}
	s.RespondRaw(route, status, string(b))
}

// RespondRaw sets a verbatim body, which need not be JSON.
func (s *Server) RespondRaw(route string, status int, raw string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.responses[route] = response{status: status, raw: []byte(raw)}
}

// Requests returns a copy of everything received so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// RequestsTo returns the recorded calls of one route.
func (s *Server) RequestsTo(route string) []Request {
	var out []Request
	for _, r := range s.Requests() {
		if r.Route == route {
			out = append(out, r)
		}
	}
	return out
}

// Count is len(RequestsTo(route)).
func (s *Server) Count(route string) int {
	return len(s.RequestsTo(route))
}

func (s *Server) handler(route string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route:         route,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Vars:          mux.Vars(r),
			Authorization: r.Header.Get(common.AuthorizationHeader),
			ContentType:   r.Header.Get("Content-Type"),
			RequestID:     r.Header.Get(common.RequestIDHeader),
			Body:          body,
		})
		resp, ok := s.responses[route]
		s.mu.Unlock()

		if !ok {
			resp = response{status: http.StatusOK, raw: []byte("{}")}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write(resp.raw)
	}
}
