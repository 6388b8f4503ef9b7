package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"folio/internal/guard"
	"folio/internal/logger"

	"github.com/gin-gonic/gin"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("request_id"))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
	generated := w.Header().Get(requestIDHeader)
	if generated == "" || w.Body.String() != generated {
		t.Errorf("Expected generated id in header and context, got %q / %q", generated, w.Body.String())
	}

	const incoming = "6f1c2a52-8d7e-4c55-9a43-0c6f0b2f9f10"
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(requestIDHeader, incoming)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(requestIDHeader) != incoming {
		t.Errorf("Expected incoming id to be kept, got %q", w.Header().Get(requestIDHeader))
	}

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(requestIDHeader, "not a uuid\nwith newline")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get(requestIDHeader) == "not a uuid\nwith newline" {
		t.Error("Expected malformed id to be replaced")
	}
}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(logger.NewWithWriter("debug", "json", &buf))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func lastLogLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]any
	if err := json.Unmarshal(lines[len(lines)-1], &entry); err != nil {
		t.Fatalf("Failed to parse log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestLoggingMiddleware_Levels(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggingMiddleware())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	tests := []struct {
		path  string
		level string
	}{
		{"/ok", "INFO"},
		{"/bad", "WARN"},
		{"/boom", "ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf := captureLogs(t)
			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, tt.path+"?q=1", nil))

			entry := lastLogLine(t, buf)
			if entry["level"] != tt.level {
				t.Errorf("Expected level %s, got %v", tt.level, entry["level"])
			}
			if entry["path"] != tt.path || entry["query"] != "q=1" {
				t.Errorf("Unexpected path/query: %v %v", entry["path"], entry["query"])
			}
			if entry["request_id"] == "" || entry["request_id"] == nil {
				t.Error("Expected request_id attribute")
			}
		})
	}
}

func TestLoggingMiddleware_RecordsSizeAndGuardDecision(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LoggingMiddleware())
	r.Use(func(c *gin.Context) {
		c.Set(guard.ContextDecision, guard.Decision{Action: guard.Redirect, Location: guard.LoginPath, Reason: guard.ReasonNoToken})
		c.Next()
	})
	r.GET("/admin", func(c *gin.Context) { c.String(http.StatusOK, "12345") })

	buf := captureLogs(t)
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/admin", nil))

	entry := lastLogLine(t, buf)
	if entry["response_size"] != float64(5) {
		t.Errorf("Expected response_size 5, got %v", entry["response_size"])
	}
	if entry["guard_action"] != guard.Redirect.String() || entry["guard_reason"] != string(guard.ReasonNoToken) {
		t.Errorf("Expected guard attributes, got %v %v", entry["guard_action"], entry["guard_reason"])
	}
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://localhost:3000"}))
	r.GET("/api/posts", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/api/posts", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") != "http://localhost:3000" {
		t.Errorf("Expected allowed origin, got %q", w.Header().Get("Access-Control-Allow-Origin"))
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Expected credentials to be allowed")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("Unknown origins must not be allowed")
	}
}

func TestLoggingMiddleware_StatusComesFromWrappedWriter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(LoggingMiddleware())
	r.POST("/api/posts/hello/comments", func(c *gin.Context) { c.String(http.StatusCreated, "ok") })
	r.GET("/empty", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	tests := []struct {
		method string
		path   string
		status int
		size   int
	}{
		{http.MethodPost, "/api/posts/hello/comments", http.StatusCreated, 2},
		{http.MethodGet, "/empty", http.StatusNoContent, 0},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			buf := captureLogs(t)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))

			if w.Code != tt.status {
				t.Errorf("Expected response code %d, got %d", tt.status, w.Code)
			}
			entry := lastLogLine(t, buf)
			if entry["status"] != float64(tt.status) {
				t.Errorf("Expected logged status %d, got %v", tt.status, entry["status"])
			}
			if entry["response_size"] != float64(tt.size) {
				t.Errorf("Expected response_size %d, got %v", tt.size, entry["response_size"])
			}
		})
	}
}
