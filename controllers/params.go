package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/quickbite/backend/utils"
)

// paramID parses a numeric path parameter, failing as a validation error.
func paramID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, utils.ValidationError("invalid " + name)
	}
	return uint(id), nil
}
