package rest

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mimihimesama/item-simulator/internal/errors"
)

type errorResponse struct {
	ErrorMessage string `json:"errorMessage"`
}

// ErrorHandler converts errors attached to the context into the JSON
// error body. Internal failures are logged and replaced with a generic
// message so store details never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		status := errors.GetCode(err).HTTPStatus()
		message := errors.GetMessage(err)
		if status >= http.StatusInternalServerError {
			slog.ErrorContext(c.Request.Context(), "request failed",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err.Error())
			message = "an unexpected server error occurred"
		}

		c.JSON(status, errorResponse{ErrorMessage: message})
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
