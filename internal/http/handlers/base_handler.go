// README: Base handler utilities (JSON helpers, error-kind to status mapping).
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"enkai/internal/modules/recommend"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

// writePipelineError renders a classified pipeline failure with its user-safe
// message. Raw error text never reaches the response body.
func writePipelineError(c *gin.Context, err error) {
	var perr *recommend.Error
	if !errors.As(err, &perr) {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	status := http.StatusInternalServerError
	switch perr.Kind {
	case recommend.KindValidationError, recommend.KindInvalidLocation:
		status = http.StatusBadRequest
	case recommend.KindNoQualifiedRestaurants:
		status = http.StatusNotFound
	case recommend.KindAPILimitExceeded:
		status = http.StatusTooManyRequests
	case recommend.KindSearchFailed, recommend.KindAPIUnavailable,
		recommend.KindAIAnalysisFailed, recommend.KindAITimeout:
		status = http.StatusServiceUnavailable
	case recommend.KindInvalidAPIResponse, recommend.KindCacheError, recommend.KindDataFetchError:
		status = http.StatusBadGateway
	}
	writeError(c, status, perr.UserMessage())
}
