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

// POSHandler serves the point-of-sale flow: the per-user cart plus checkout.
type POSHandler struct {
	cart  service.CartService
	sales service.SaleService
}

func NewPOSHandler(cart service.CartService, sales service.SaleService) *POSHandler {
	return &POSHandler{cart: cart, sales: sales}
}

func currentUserID(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	return id
}

func (h *POSHandler) GetCart(c *gin.Context) {
	resp, err := h.cart.GetCart(c.Request.Context(), currentUserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao carregar o carrinho"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddItem godoc
// @Summary Adicionar produto ao carrinho
// @Description Nova linha com quantidade 1, ou incremento de 1 na linha existente (limitado ao estoque capturado).
// @Tags pdv
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.AddCartItemRequest true "Produto"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pos/cart/items [post]
func (h *POSHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cart.AddItem(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) ChangeItem(c *gin.Context) {
	var req dto.ChangeCartItemRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.cart.ChangeItem(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) RemoveItem(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.cart.RemoveItem(c.Request.Context(), currentUserID(c), productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao atualizar o carrinho"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *POSHandler) ClearCart(c *gin.Context) {
	if err := h.cart.ClearCart(c.Request.Context(), currentUserID(c)); err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao limpar o carrinho"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Checkout godoc
// @Summary Finalizar venda
// @Description Converte o carrinho em uma venda atômica: numeração sequencial, baixa de estoque, movimentação e lançamento financeiro.
// @Tags pdv
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CheckoutRequest true "Pagamento e desconto"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pos/checkout [post]
func (h *POSHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.sales.Checkout(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}
