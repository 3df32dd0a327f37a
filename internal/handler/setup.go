package handler

import (
	"net/http"

	"github.com/pedroluizchagas/thv/internal/apierror"
	"github.com/pedroluizchagas/thv/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupHandler exposes the one-time bootstrap endpoints used when standing
// up a fresh installation. Both are idempotent and safe to call again.
type SetupHandler struct{ svc service.SetupService }

func NewSetupHandler(svc service.SetupService) *SetupHandler {
	return &SetupHandler{svc: svc}
}

// Admin godoc
// @Summary Criar o administrador inicial
// @Description Cria o usuário admin a partir de ADMIN_EMAIL / ADMIN_PASSWORD. Idempotente.
// @Tags setup
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} apierror.APIError
// @Router /v1/setup/admin [post]
func (h *SetupHandler) Admin(c *gin.Context) {
	created, email, err := h.svc.EnsureAdmin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	msg := "Administrador já existe"
	if created {
		msg = "Administrador criado"
	}
	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"email":   email,
		"message": msg,
	})
}

// Bucket godoc
// @Summary Criar o bucket de imagens de produtos
// @Tags setup
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} apierror.APIError
// @Router /v1/setup/bucket [post]
func (h *SetupHandler) Bucket(c *gin.Context) {
	created, err := h.svc.EnsureBucket(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	msg := "Bucket já existe"
	if created {
		msg = "Bucket criado"
	}
	c.JSON(http.StatusOK, gin.H{
		"created": created,
		"message": msg,
	})
}
