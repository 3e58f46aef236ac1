package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/dcd-pricer/internal/dto"
	"github.com/anyulbade/dcd-pricer/internal/service"
)

type ConventionHandler struct {
	svc *service.QuoteService
}

func NewConventionHandler(svc *service.QuoteService) *ConventionHandler {
	return &ConventionHandler{svc: svc}
}

func (h *ConventionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, dto.ConventionListResponse{Data: h.svc.Conventions()})
}
