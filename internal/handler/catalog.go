package handler

import (
	"net/http"

	"github.com/pedroluizchagas/thv/internal/apierror"
	"github.com/pedroluizchagas/thv/internal/dto"
	"github.com/pedroluizchagas/thv/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the public (unauthenticated) catalog.
type CatalogHandler struct{ svc service.CatalogService }

func NewCatalogHandler(svc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{svc: svc}
}

// Products godoc
// @Summary Catálogo público de produtos
// @Description Projeção pública: sem preço de custo e sem quantidade de estoque, apenas o indicador de disponibilidade.
// @Tags catalogo
// @Produce json
// @Param search query string false "Busca"
// @Param category query string false "Slug da categoria"
// @Success 200 {object} dto.CatalogListResponse
// @Router /v1/catalog/products [get]
func (h *CatalogHandler) Products(c *gin.Context) {
	var filter dto.CatalogFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.ListProducts(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao carregar o catálogo"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *CatalogHandler) Categories(c *gin.Context) {
	resp, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao carregar as categorias"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
