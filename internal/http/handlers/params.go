package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/motodiag-backend/internal/platform/apierr"
)

func uintParam(c *gin.Context, name string) (uint, error) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return 0, apierr.BadRequest("invalid_request", fmt.Sprintf("invalid %s %q", name, raw))
	}
	return uint(v), nil
}

func bindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		return apierr.New(http.StatusBadRequest, "invalid_request", err)
	}
	return nil
}
