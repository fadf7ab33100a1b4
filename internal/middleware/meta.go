package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
)

const (
	responseMetaKey = "response_meta"
	requestStartKey = "request_start"
)

// Response meta keys written by handlers.
const (
	MetaCacheHit  = "cache_hit"
	MetaResetPage = "reset_page"
)

// WithResponseMeta initialises response metadata storage on the request
// context and stamps the request start time.
func WithResponseMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(requestStartKey, time.Now())
		c.Set(responseMetaKey, map[string]interface{}{})
		c.Next()
	}
}

// SetMeta records a metadata value for the current response.
func SetMeta(c *gin.Context, key string, value interface{}) {
	ensureMeta(c)[key] = value
}

// SetCacheHit records whether the response was served from cache.
func SetCacheHit(c *gin.Context, hit bool) {
	SetMeta(c, MetaCacheHit, hit)
}

// SetResetPage flags that the requested page was out of range and page 1
// was served instead.
func SetResetPage(c *gin.Context, reset bool) {
	if reset {
		SetMeta(c, MetaResetPage, true)
	}
}

// ExtractMeta returns the metadata collected so far with the elapsed
// processing time filled in. It returns nil when nothing was recorded and
// WithResponseMeta is not installed.
func ExtractMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return nil
	}
	meta, _ := c.Get(responseMetaKey)
	typed, _ := meta.(map[string]interface{})
	if start, ok := c.Get(requestStartKey); ok {
		if t, ok := start.(time.Time); ok {
			if typed == nil {
				typed = ensureMeta(c)
			}
			typed["processing_time_ms"] = time.Since(t).Milliseconds()
		}
	}
	if len(typed) == 0 {
		return nil
	}
	return typed
}

func ensureMeta(c *gin.Context) map[string]interface{} {
	if c == nil {
		return map[string]interface{}{}
	}
	if meta, exists := c.Get(responseMetaKey); exists {
		if typed, ok := meta.(map[string]interface{}); ok {
			return typed
		}
	}
	newMeta := make(map[string]interface{})
	c.Set(responseMetaKey, newMeta)
	return newMeta
}
