// README: Suggestion handler (runs the recommendation pipeline per request).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"enkai/internal/modules/recommend"
)

type SuggestionHandler struct {
	recommend *recommend.Service
}

func NewSuggestionHandler(svc *recommend.Service) *SuggestionHandler {
	return &SuggestionHandler{recommend: svc}
}

type suggestionResponse struct {
	Data []recommend.Recommendation `json:"data"`
}

// Suggest handles POST /api/suggestions. Structurally invalid criteria are
// rejected at binding, before the pipeline starts.
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	var criteria recommend.Criteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		writeError(c, http.StatusBadRequest, "入力内容に誤りがあります。内容を確認してください。")
		return
	}

	recs, err := h.recommend.GetRestaurantSuggestion(c.Request.Context(), criteria)
	if err != nil {
		writePipelineError(c, err)
		return
	}
	if recs == nil {
		recs = []recommend.Recommendation{}
	}
	writeJSON(c, http.StatusOK, suggestionResponse{Data: recs})
}
