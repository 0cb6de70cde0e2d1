package testsupport

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// GraphQLRequest is one request received by a GraphQLServer.
type GraphQLRequest struct {
	Operation string
	Query     string
	Variables map[string]any
	APIKey    string
	Cookies   []*http.Cookie
}

// GraphQLHandler returns the data document for one operation.
type GraphQLHandler func(req GraphQLRequest) any

// GraphQLServer is a scripted GraphQL endpoint. Responses are keyed by the
// operation name declared in the query, e.g. "FindGalleries".
type GraphQLServer struct {
	*httptest.Server

	mu       sync.Mutex
	handlers map[string]GraphQLHandler
	requests []GraphQLRequest
}

// NewGraphQLServer starts a server whose unknown operations answer with a
// GraphQL error. It is closed when the test ends.
func NewGraphQLServer(t testing.TB) *GraphQLServer {
	t.Helper()
	s := &GraphQLServer{handlers: make(map[string]GraphQLHandler)}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Handle registers the response for operation.
func (s *GraphQLServer) Handle(operation string, handler GraphQLHandler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[operation] = handler
}

// Requests returns a copy of every request received so far.
func (s *GraphQLServer) Requests() []GraphQLRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]GraphQLRequest(nil), s.requests...)
}

// Count returns how many requests named operation were received.
func (s *GraphQLServer) Count(operation string) int {
	n := 0
	for _, req := range s.Requests() {
		if req.Operation == operation {
			n++
		}
	}
	return n
}

func (s *GraphQLServer) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	var payload struct {
		Query     string         `json:"query"`
		Variables map[string]any `json:"variables"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	req := GraphQLRequest{
		Operation: operationName(payload.Query),
		Query:     payload.Query,
		Variables: payload.Variables,
		APIKey:    r.Header.Get("ApiKey"),
		Cookies:   r.Cookies(),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	handler := s.handlers[req.Operation]
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if handler == nil {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"errors": []map[string]any{{"message": "unhandled operation " + req.Operation}},
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"data": handler(req)})
}

// operationName extracts Name from "query Name(" or "mutation Name {".
func operationName(query string) string {
	fields := strings.FieldsFunc(strings.TrimSpace(query), func(r rune) bool {
		return r == ' ' || r == '(' || r == '{' || r == '\n'
	})
	if len(fields) < 2 || (fields[0] != "query" && fields[0] != "mutation") {
		return ""
	}
	return fields[1]
}
