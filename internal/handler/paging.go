package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// listParams reads the optional limit/offset query params for the
// unbounded list endpoints. Missing, non-numeric or negative values
// collapse to 0, which means "full list" for limit and "from the
// start" for offset.
func listParams(c *gin.Context) (limit, offset int) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil || limit < 0 {
		limit = 0
	}
	offset, err = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
