package dto

import (
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/services"
)

// InvoiceDTO represents an invoice in API responses
type InvoiceDTO struct {
	ID            string               `json:"id"`
	InvoiceNumber string               `json:"invoice_number"`
	Status        models.InvoiceStatus `json:"status"`
	PastDue       bool                 `json:"past_due"`
	ProjectID     *string              `json:"project_id,omitempty"`
	ProjectName   string               `json:"project_name,omitempty"`
	ClientID      string               `json:"client_id"`
	ClientName    string               `json:"client_name"`
	ClientEmail   string               `json:"client_email"`
	IssueDate     time.Time            `json:"issue_date"`
	DueDate       time.Time            `json:"due_date"`
	Subtotal      float64              `json:"subtotal"`
	Tax           float64              `json:"tax"`
	Total         float64              `json:"total"`
	Notes         *string              `json:"notes,omitempty"`
	Items         []models.InvoiceItem `json:"items,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

// InvoiceListDTO is the invoices page
type InvoiceListDTO struct {
	Invoices    []InvoiceDTO `json:"invoices"`
	PaidRevenue float64      `json:"paid_revenue"`
	Pending     float64      `json:"pending"`
}

// ToInvoiceDTO converts an invoice; now decides the informational past-due flag
func ToInvoiceDTO(inv models.Invoice, now time.Time) InvoiceDTO {
	dto := InvoiceDTO{
		ID:            inv.ID,
		InvoiceNumber: inv.InvoiceNumber,
		Status:        inv.Status,
		PastDue:       inv.PastDue(now),
		ProjectID:     inv.ProjectID,
		ClientID:      inv.ClientID,
		ClientName:    inv.Client.FullName,
		ClientEmail:   inv.Client.Email,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Subtotal:      inv.Subtotal,
		Tax:           inv.Tax,
		Total:         inv.Total,
		Notes:         inv.Notes,
		Items:         inv.Items,
		CreatedAt:     inv.CreatedAt,
	}
	if inv.Project != nil {
		dto.ProjectName = inv.Project.Name
	}
	return dto
}

func ToInvoiceListDTO(view services.InvoiceListView, now time.Time) InvoiceListDTO {
	invoices := make([]InvoiceDTO, len(view.Invoices))
	for i, inv := range view.Invoices {
		invoices[i] = ToInvoiceDTO(inv, now)
	}
	return InvoiceListDTO{Invoices: invoices, PaidRevenue: view.PaidRevenue, Pending: view.Pending}
}
