package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return false
	}
	return true
}

func uintParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Path parameter "+name+" must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}

func uintQuery(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Query parameter "+name+" must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}
