package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

// Staff creation only accepts the two staff roles; alumni accounts go through
// self-registration.
func TestCreateStaffUserRejectsBadInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name string
		body string
	}{
		{
			"alumni role rejected",
			`{"first_name":"Sam","last_name":"Okafor","email":"sam@example.com","password":"password123","role":"alumni"}`,
		},
		{
			"unknown role rejected",
			`{"first_name":"Sam","last_name":"Okafor","email":"sam@example.com","password":"password123","role":"owner"}`,
		},
		{
			"short password rejected",
			`{"first_name":"Sam","last_name":"Okafor","email":"sam@example.com","password":"short","role":"admin"}`,
		},
		{
			"missing email rejected",
			`{"first_name":"Sam","last_name":"Okafor","password":"password123","role":"coordinator"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			CreateStaffUser(c)

			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}
		})
	}
}
