package handler

import (
	"net/http"

	"github.com/pedroluizchagas/thv/internal/apierror"
	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/middleware"
	"github.com/pedroluizchagas/thv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type FinanceHandler struct{ svc service.FinanceService }

func NewFinanceHandler(svc service.FinanceService) *FinanceHandler {
	return &FinanceHandler{svc: svc}
}

// Create godoc
// @Summary Lançamento financeiro manual
// @Tags financeiro
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateTransactionRequest true "Dados do lançamento"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/transactions [post]
func (h *FinanceHandler) Create(c *gin.Context) {
	var req dto.CreateTransactionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	resp, err := h.svc.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Listar lançamentos com resumo do período
// @Tags financeiro
// @Produce json
// @Security BearerAuth
// @Param period query string false "today | week | month | year | all (default month)"
// @Param type query string false "income | expense | all"
// @Param search query string false "Busca em descrição e categoria"
// @Success 200 {object} dto.TransactionListResponse
// @Router /v1/transactions [get]
func (h *FinanceHandler) List(c *gin.Context) {
	var filter dto.TransactionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListTransactions(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar lançamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete removes a MANUAL ledger entry. Sale- and purchase-linked entries
// are refused with 400.
func (h *FinanceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DeleteTransaction(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Categories returns the closed category lists per type, so the UI renders
// exactly the values the API will accept.
func (h *FinanceHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Categories())
}
