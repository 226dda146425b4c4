package core

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
)

func TestMountRoutes_RegistersV1AndHealth(t *testing.T) {
	srv := newTestServer(t)
	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars, func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			JSON(w, r, http.StatusOK, APIResponse{Data: "pong"})
		})
	})
	srv.MountRoutes()

	tests := []struct {
		path string
		want int
	}{
		{"/v1/ping", http.StatusOK},
		{"/health", http.StatusOK},
		{"/v1/missing", http.StatusNotFound},
	}
	for _, tt := range tests {
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
		if rec.Code != tt.want {
			t.Errorf("GET %s: expected %d, got %d", tt.path, tt.want, rec.Code)
		}
		if rec.Header().Get("X-Request-Id") == "" {
			t.Errorf("GET %s: expected X-Request-Id header", tt.path)
		}
	}
}

func TestMountRoutes_RecoversPanics(t *testing.T) {
	srv := newTestServer(t)
	srv.V1RouteRegistrars = append(srv.V1RouteRegistrars, func(r chi.Router) {
		r.Get("/panic", func(http.ResponseWriter, *http.Request) { panic("boom") })
	})
	srv.MountRoutes()

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

func TestRequestTimeout(t *testing.T) {
	srv := newTestServer(t)
	if got := srv.requestTimeout(); got != defaultRequestTimeout {
		t.Errorf("expected default timeout, got %v", got)
	}

	srv.Config.Server.RequestTimeout = 3 * time.Second
	if got := srv.requestTimeout(); got != 3*time.Second {
		t.Errorf("expected configured timeout, got %v", got)
	}
}
