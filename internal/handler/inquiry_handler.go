package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/photographer-catalog-api/internal/dto"
	"github.com/noah-isme/photographer-catalog-api/internal/models"
	"github.com/noah-isme/photographer-catalog-api/pkg/response"
)

type inquiryService interface {
	Submit(ctx context.Context, photographerID int64, req dto.CreateInquiryRequest) (*models.Inquiry, error)
	Get(ctx context.Context, id string) (*models.Inquiry, error)
}

// InquiryHandler accepts booking inquiries.
type InquiryHandler struct {
	inquiries inquiryService
}

// NewInquiryHandler constructs the handler.
func NewInquiryHandler(inquiries inquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

// Create godoc
// @Summary Send a booking inquiry
// @Description The inquiry is stored as queued and delivered in the background.
// @Tags Inquiries
// @Accept json
// @Produce json
// @Param id path int true "Photographer ID"
// @Param payload body dto.CreateInquiryRequest true "Inquiry"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /photographers/{id}/inquiries [post]
func (h *InquiryHandler) Create(c *gin.Context) {
	id, err := photographerID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.CreateInquiryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	inquiry, err := h.inquiries.Submit(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, inquiry)
}

// Get godoc
// @Summary Inquiry delivery status
// @Tags Inquiries
// @Produce json
// @Param id path string true "Inquiry ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /inquiries/{id} [get]
func (h *InquiryHandler) Get(c *gin.Context) {
	inquiry, err := h.inquiries.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, inquiry, nil)
}
