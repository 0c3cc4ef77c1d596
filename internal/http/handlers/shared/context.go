package shared

import (
	"github.com/techgear-vn/techgear-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint reads a uint value from the request context. The value is
// set by the auth middleware; a missing key responds 401 and returns false.
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, "Authentication required")
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			response.BadRequest(c, "Invalid identity")
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			response.BadRequest(c, "Invalid identity")
			return 0, false
		}
		return uint(v), true
	default:
		response.Internal(c)
		return 0, false
	}
}

// GetContextString reads a string value from the request context.
func GetContextString(c *gin.Context, key string) string {
	value, exists := c.Get(key)
	if !exists {
		return ""
	}
	s, _ := value.(string)
	return s
}
