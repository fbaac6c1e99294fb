package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

var errInvalidUserID = errors.New("user_id must be a positive integer")

// parseUserID 解析路径或查询参数中的用户 ID
func parseUserID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidUserID
	}
	return id, nil
}

func userIDParam(c *gin.Context) (int64, error) {
	return parseUserID(c.Param("user_id"))
}
