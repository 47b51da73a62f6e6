package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestSetupRouterMethodNotAllowed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := setupRouter()

	tests := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"wrong method on follow toggle", http.MethodGet, "/api/v1/social/follow/1", http.StatusMethodNotAllowed},
		{"wrong method on register", http.MethodPut, "/api/v1/auth/register", http.StatusMethodNotAllowed},
		{"unknown path stays 404", http.MethodGet, "/api/v1/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			if w.Code != tt.want {
				t.Errorf("%s %s = %d, want %d", tt.method, tt.path, w.Code, tt.want)
			}
		})
	}
}
