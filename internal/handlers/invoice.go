package handlers

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/studio-ops-api/internal/dto"
	apierrors "github.com/yukikurage/studio-ops-api/internal/errors"
	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/pdf"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

type InvoiceHandler struct {
	invoices *services.InvoiceService
	renderer *pdf.Renderer
	now      func() time.Time
}

func NewInvoiceHandler(invoices *services.InvoiceService, renderer *pdf.Renderer) *InvoiceHandler {
	return &InvoiceHandler{invoices: invoices, renderer: renderer, now: time.Now}
}

// ListInvoices returns invoices with paid and pending revenue
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	var status *models.InvoiceStatus
	if s := c.Query("status"); s != "" {
		st := models.InvoiceStatus(s)
		status = &st
	}

	view, err := h.invoices.ListInvoices(c.Request.Context(), sess, status)
	if err != nil {
		if isAny(err, validationErrors) {
			apierrors.BadRequest(c, err.Error())
			return
		}
		log.Printf("[invoices] read failed: %v", err)
		view = &services.InvoiceListView{Invoices: []models.Invoice{}}
	}
	c.JSON(http.StatusOK, dto.ToInvoiceListDTO(*view, h.now()))
}

// ListClients returns the users an invoice can be addressed to
func (h *InvoiceHandler) ListClients(c *gin.Context) {
	clients, err := h.invoices.ListClients(c.Request.Context())
	respondList(c, "invoices", "clients", dto.ToUserDTOs(clients), err)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	invoice, err := h.invoices.GetInvoice(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, "invoices", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice, h.now()))
}

// CreateInvoice issues a draft invoice with its line items
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type InvoiceItemRequest struct {
		Description string  `json:"description"`
		Quantity    float64 `json:"quantity"`
		Rate        float64 `json:"rate"`
		TaskID      *string `json:"task_id"`
	}
	type CreateInvoiceRequest struct {
		ProjectID *string              `json:"project_id"`
		ClientID  string               `json:"client_id" binding:"required"`
		IssueDate time.Time            `json:"issue_date" binding:"required"`
		DueDate   time.Time            `json:"due_date" binding:"required"`
		Subtotal  float64              `json:"subtotal"`
		Tax       float64              `json:"tax"`
		Notes     *string              `json:"notes"`
		Items     []InvoiceItemRequest `json:"items"`
	}

	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateInvoiceInput{
		ProjectID: req.ProjectID,
		ClientID:  req.ClientID,
		IssueDate: req.IssueDate,
		DueDate:   req.DueDate,
		Subtotal:  req.Subtotal,
		Tax:       req.Tax,
		Notes:     req.Notes,
	}
	for _, it := range req.Items {
		input.Items = append(input.Items, services.InvoiceItemInput{
			Description: it.Description,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			TaskID:      it.TaskID,
		})
	}

	invoice, err := h.invoices.CreateInvoice(c.Request.Context(), sess, input)
	if err != nil {
		respondError(c, "invoices", err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToInvoiceDTO(*invoice, h.now()))
}

// UpdateInvoiceStatus moves an invoice to any valid status
func (h *InvoiceHandler) UpdateInvoiceStatus(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	type UpdateStatusRequest struct {
		Status string `json:"status" binding:"required"`
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	invoice, err := h.invoices.UpdateInvoiceStatus(c.Request.Context(), sess, c.Param("id"), models.InvoiceStatus(req.Status))
	if err != nil {
		respondError(c, "invoices", err)
		return
	}
	c.JSON(http.StatusOK, dto.ToInvoiceDTO(*invoice, h.now()))
}

// DownloadPDF renders the invoice as a PDF attachment
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	sess, ok := currentSession(c)
	if !ok {
		return
	}

	data, err := h.invoices.PDFData(c.Request.Context(), sess, c.Param("id"))
	if err != nil {
		respondError(c, "invoices", err)
		return
	}

	var buf bytes.Buffer
	if err := h.renderer.RenderInvoice(&buf, data); err != nil {
		respondError(c, "invoices", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", data.FileName()))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
