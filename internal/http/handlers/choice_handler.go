// README: Choice handler (records picks, serves the popularity ranking).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"enkai/internal/modules/choice"
	"enkai/internal/types"
)

type ChoiceHandler struct {
	choice *choice.Service
}

func NewChoiceHandler(svc *choice.Service) *ChoiceHandler {
	return &ChoiceHandler{choice: svc}
}

type recordChoiceReq struct {
	PlaceID string `json:"placeId" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

// Record handles POST /api/choices.
func (h *ChoiceHandler) Record(c *gin.Context) {
	var req recordChoiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}

	err := h.choice.Record(c.Request.Context(), choice.RecordCommand{
		PlaceID: types.ID(req.PlaceID),
		Name:    req.Name,
	})
	if err != nil {
		if err == choice.ErrBadRequest {
			writeError(c, http.StatusBadRequest, err.Error())
			return
		}
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	c.Status(http.StatusNoContent)
}

// Popular handles GET /api/choices/popular.
func (h *ChoiceHandler) Popular(c *gin.Context) {
	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	top, err := h.choice.TopPopular(c.Request.Context(), limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	if top == nil {
		top = []choice.PopularPlace{}
	}
	writeJSON(c, http.StatusOK, map[string]any{"data": top})
}
