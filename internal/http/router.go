// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"enkai/internal/http/handlers"
	"enkai/internal/http/middleware"
	"enkai/internal/modules/choice"
	"enkai/internal/modules/recommend"
)

func NewRouter(
	recommendService *recommend.Service,
	choiceService *choice.Service,
	logger zerolog.Logger,
) http.Handler {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(logger))
	r.Use(middleware.Recovery(logger))

	suggestionHandler := handlers.NewSuggestionHandler(recommendService)
	r.POST("/api/suggestions", suggestionHandler.Suggest)

	choiceHandler := handlers.NewChoiceHandler(choiceService)
	r.POST("/api/choices", choiceHandler.Record)
	r.GET("/api/choices/popular", choiceHandler.Popular)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
