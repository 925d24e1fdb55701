package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// JSON writes the standard response envelope. err may be nil.
func JSON(c *gin.Context, message string, status int, data interface{}, err error) {
	var errMessage string
	if err != nil {
		errMessage = err.Error()
	}

	c.JSON(status, gin.H{
		"message": message,
		"status":  http.StatusText(status),
		"data":    data,
		"errors":  errMessage,
	})
}
