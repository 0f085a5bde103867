package api

import (
	"net/http"
	"strconv"

	"rsv-catalog/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

// versionParam parses a positive version number from the path.
func versionParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil || v < 1 {
		if err == nil {
			err = strconv.ErrRange
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid version", nil)
		return 0, false
	}
	return v, true
}

func queryInt(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		if err == nil {
			err = strconv.ErrRange
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return 0, false
	}
	return v, true
}

// attachJSON sends v as a downloadable JSON file.
func attachJSON(c *gin.Context, filename string, v any) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.JSON(http.StatusOK, v)
}
