package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	CacheNoCache = 0
	CacheCustom  = -1
)

// CacheRouter sets cache-control on every response it handles. Handlers can still override it
type CacheRouter struct {
	CacheTime int // seconds, defaults to CacheNoCache = 0
	Public    bool
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	header := "no-cache"
	if cr.CacheTime > 0 {
		scope := "private"
		if cr.Public {
			scope = "public"
		}
		header = scope + ", max-age=" + strconv.Itoa(cr.CacheTime)
	}
	return func(c *gin.Context) {
		if cr.CacheTime != CacheCustom {
			c.Header("cache-control", header)
		}
		c.Next()
	}
}
