package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCacheRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		name   string
		router CacheRouter
		want   string
	}{
		{"no cache", CacheRouter{}, "no-cache"},
		{"private", CacheRouter{CacheTime: 60}, "private, max-age=60"},
		{"public", CacheRouter{CacheTime: 3600, Public: true}, "public, max-age=3600"},
		{"custom", CacheRouter{CacheTime: CacheCustom}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(tt.router.Handler())
			router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
			assert.Equal(t, tt.want, w.Header().Get("cache-control"))
		})
	}
}
