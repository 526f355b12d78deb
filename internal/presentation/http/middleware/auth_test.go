package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRoleTestRouter(role string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("user_role", role)
		}
	})
	router.GET("/reports", RequireRole("admin", "manager"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name string
		role string
		want int
	}{
		{name: "admin allowed", role: "admin", want: http.StatusOK},
		{name: "manager allowed", role: "manager", want: http.StatusOK},
		{name: "staff rejected", role: "staff", want: http.StatusForbidden},
		{name: "missing role rejected", role: "", want: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newRoleTestRouter(tt.role)

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/reports", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.want, w.Code)
		})
	}
}
