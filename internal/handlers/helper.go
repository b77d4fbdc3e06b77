package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const dateLayout = "2006-01-02"

func ParseStringIDParam(c *gin.Context, param string) string {
	idStr := strings.TrimSpace(c.Param(param))
	if idStr == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid " + param,
			Details: "ID cannot be empty",
		})
		return ""
	}
	return idStr
}

// ParseTimeQuery reads an optional RFC3339 timestamp or YYYY-MM-DD date.
// With endOfDay a bare date covers the whole day. Answers 400 and returns
// false when the value cannot be parsed.
func ParseTimeQuery(c *gin.Context, key string, endOfDay bool) (*time.Time, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}

	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	if t, err := time.Parse(dateLayout, raw); err == nil {
		if endOfDay {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		return &t, true
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Message: "Invalid " + key,
		Details: "expected RFC3339 timestamp or YYYY-MM-DD date",
	})
	return nil, false
}
