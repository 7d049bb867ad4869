package httputil

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads the offset (default 0) and limit (default 50, at most 100)
// query parameters.
func ParsePagination(c *gin.Context) (offset, limit int, err error) {
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		return 0, 0, fmt.Errorf("invalid offset parameter: must be a non-negative integer")
	}

	limit, err = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if err != nil || limit < 1 || limit > 100 {
		return 0, 0, fmt.Errorf("invalid limit parameter: must be between 1 and 100")
	}

	return offset, limit, nil
}

// Page returns the window [offset, offset+limit) of items, clamped to its bounds.
func Page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

// ParseID parses the named path parameter as a positive integer id.
func ParseID(c *gin.Context, name string) (int, error) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s parameter: must be a positive integer", name)
	}
	return id, nil
}
