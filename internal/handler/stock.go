package handler

import (
	"net/http"

	"github.com/pedroluizchagas/thv/internal/apierror"
	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/service"

	"github.com/gin-gonic/gin"
)

type StockHandler struct{ svc service.StockService }

func NewStockHandler(svc service.StockService) *StockHandler {
	return &StockHandler{svc: svc}
}

// Movements godoc
// @Summary Trilha de movimentações de estoque
// @Tags estoque
// @Produce json
// @Security BearerAuth
// @Param product_id query string false "Filtra por produto"
// @Param limit query int false "Máximo de registros (default 100)"
// @Success 200 {array} dto.MovementResponse
// @Router /v1/stock/movements [get]
func (h *StockHandler) Movements(c *gin.Context) {
	var filter dto.MovementFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListMovements(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar movimentações"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
