package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anyulbade/dcd-pricer/internal/dto"
	"github.com/anyulbade/dcd-pricer/internal/service"
)

type QuoteHandler struct {
	svc *service.QuoteService
}

func NewQuoteHandler(svc *service.QuoteService) *QuoteHandler {
	return &QuoteHandler{svc: svc}
}

func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	resp, err := h.svc.Quote(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}

	status := http.StatusOK
	if resp.QuoteID != nil {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (h *QuoteHandler) Matrix(c *gin.Context) {
	var req dto.MatrixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	resp, err := h.svc.Matrix(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuoteHandler) Payoff(c *gin.Context) {
	var req dto.PayoffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{
			Error: "validation failed: " + err.Error(),
		})
		return
	}

	resp, err := h.svc.Payoff(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *QuoteHandler) List(c *gin.Context) {
	page, err := dto.ParsePageQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorListResponse{Error: err.Error()})
		return
	}

	quotes, total, err := h.svc.ListQuotes(c.Request.Context(), page.PageSize, page.Offset)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteListResponse{
		Data:       quotes,
		Pagination: page.Pagination(total),
	})
}

func (h *QuoteHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quote id"})
		return
	}

	quote, err := h.svc.GetQuote(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	c.JSON(http.StatusOK, quote)
}
