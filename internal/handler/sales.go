package handler

import (
	"fmt"
	"net/http"

	"github.com/pedroluizchagas/thv/internal/apierror"
	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/infra"
	"github.com/pedroluizchagas/thv/internal/middleware"
	"github.com/pedroluizchagas/thv/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SalesHandler struct {
	svc         service.SaleService
	companyName string
}

func NewSalesHandler(svc service.SaleService, companyName string) *SalesHandler {
	return &SalesHandler{svc: svc, companyName: companyName}
}

// List godoc
// @Summary Histórico de vendas
// @Tags vendas
// @Produce json
// @Security BearerAuth
// @Param date query string false "Data YYYY-MM-DD"
// @Param status query string false "pending | completed | cancelled | all (default completed)"
// @Success 200 {object} dto.SaleListResponse
// @Router /v1/sales [get]
func (h *SalesHandler) List(c *gin.Context) {
	var filter dto.SaleFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListSales(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SalesHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.GetSale(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary Cancelar venda
// @Description Restaura o estoque vendido e registra o estorno financeiro. A venda permanece no histórico como cancelada.
// @Tags vendas
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "UUID da venda"
// @Param body body dto.CancelSaleRequest true "Motivo do cancelamento"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/sales/{id} [delete]
func (h *SalesHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	userID, _ := uuid.Parse(claims.UserID)

	if err := h.svc.CancelSale(c.Request.Context(), id, userID, req.Reason); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Receipt streams the sale receipt as a PDF download.
func (h *SalesHandler) Receipt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	sale, err := h.svc.ReceiptData(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="venda_%d.pdf"`, sale.SaleNumber))
	if err := infra.GenerateReceiptPDF(sale, h.companyName, c.Writer); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao gerar o comprovante"))
		return
	}
}
