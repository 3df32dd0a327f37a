package handler

import (
	"net/http"

	"github.com/pedroluizchagas/thv/internal/apierror"
	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type QuotesHandler struct{ svc service.QuoteService }

func NewQuotesHandler(svc service.QuoteService) *QuotesHandler {
	return &QuotesHandler{svc: svc}
}

// Submit godoc
// @Summary Enviar solicitação de orçamento (público)
// @Description Intake público do site e do catálogo. O status é sempre gravado como "pending".
// @Tags orcamentos
// @Accept json
// @Produce json
// @Param body body dto.SubmitQuoteRequest true "Dados do contato"
// @Success 201 {object} dto.QuoteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/quotes [post]
func (h *QuotesHandler) Submit(c *gin.Context) {
	var req dto.SubmitQuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Submit(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *QuotesHandler) List(c *gin.Context) {
	var filter dto.QuoteFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListQuotes(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar orçamentos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.GetQuote(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Triage godoc
// @Summary Triagem de orçamento
// @Description Atualiza status e observações. Qualquer transição de status é aceita.
// @Tags orcamentos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID do orçamento"
// @Param body body dto.TriageQuoteRequest true "Novo status e observações"
// @Success 200 {object} dto.QuoteResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/quotes/{id} [patch]
func (h *QuotesHandler) Triage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.TriageQuoteRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Triage(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuotesHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	if err := h.svc.DeleteQuote(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
