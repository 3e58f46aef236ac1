package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/anyulbade/dcd-pricer/internal/dto"
	"github.com/anyulbade/dcd-pricer/internal/service"
)

type TermSheetHandler struct {
	svc *service.TermSheetService
}

func NewTermSheetHandler(svc *service.TermSheetService) *TermSheetHandler {
	return &TermSheetHandler{svc: svc}
}

// Create renders HTML unless the caller asks for JSON via ?format=json or
// an Accept header without text/html.
func (h *TermSheetHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	sheet, err := h.svc.Generate(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	accept := c.GetHeader("Accept")
	wantsJSON := c.Query("format") == "json" ||
		(strings.Contains(accept, "application/json") && !strings.Contains(accept, "text/html"))
	if wantsJSON {
		c.JSON(http.StatusOK, sheet)
		return
	}

	html, err := h.svc.RenderHTML(sheet)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render term sheet: " + err.Error()})
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}
