package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"github.com/yukikurage/studio-ops-api/internal/pdf"
	"github.com/yukikurage/studio-ops-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound       = errors.New("invoice not found")
	ErrInvalidInvoiceStatus  = errors.New("invalid invoice status")
	ErrNegativeAmount        = errors.New("subtotal and tax cannot be negative")
	ErrDueBeforeIssue        = errors.New("due date cannot be before issue date")
	ErrItemDescriptionNeeded = errors.New("invoice item description is required")
)

// InvoiceNumberGenerator hands out unique invoice numbers
type InvoiceNumberGenerator interface {
	Next(ctx context.Context, issued time.Time) (string, error)
}

// SequenceNumberGenerator numbers invoices INV-<year>-<nnnn> from a counter
// kept per calendar year.
type SequenceNumberGenerator struct {
	invoiceRepo repository.InvoiceRepository
}

func NewSequenceNumberGenerator(invoiceRepo repository.InvoiceRepository) *SequenceNumberGenerator {
	return &SequenceNumberGenerator{invoiceRepo: invoiceRepo}
}

func (g *SequenceNumberGenerator) Next(ctx context.Context, issued time.Time) (string, error) {
	year := issued.Year()
	n, err := g.invoiceRepo.NextSequence(ctx, year)
	if err != nil {
		return "", fmt.Errorf("failed to reserve invoice number: %w", err)
	}
	return fmt.Sprintf("INV-%d-%04d", year, n), nil
}

// InvoiceService handles invoices and revenue figures
type InvoiceService struct {
	invoiceRepo repository.InvoiceRepository
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	numbers     InvoiceNumberGenerator
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo repository.InvoiceRepository, userRepo repository.UserRepository, projectRepo repository.ProjectRepository, numbers InvoiceNumberGenerator) *InvoiceService {
	return &InvoiceService{
		invoiceRepo: invoiceRepo,
		userRepo:    userRepo,
		projectRepo: projectRepo,
		numbers:     numbers,
	}
}

// InvoiceItemInput represents one line on a new invoice
type InvoiceItemInput struct {
	Description string
	Quantity    float64
	Rate        float64
	TaskID      *string
}

// CreateInvoiceInput represents input for creating an invoice
type CreateInvoiceInput struct {
	ProjectID *string
	ClientID  string
	IssueDate time.Time
	DueDate   time.Time
	Subtotal  float64
	Tax       float64
	Notes     *string
	Items     []InvoiceItemInput
}

// InvoiceListView is the invoice page: the rows plus revenue totals
type InvoiceListView struct {
	Invoices    []models.Invoice `json:"invoices"`
	PaidRevenue float64          `json:"paid_revenue"`
	Pending     float64          `json:"pending"`
}

var outstandingStatuses = []models.InvoiceStatus{models.InvoiceStatusSent, models.InvoiceStatusOverdue}

// ListInvoices returns invoices newest first. Clients only see their own.
func (s *InvoiceService) ListInvoices(ctx context.Context, sess Session, status *models.InvoiceStatus) (*InvoiceListView, error) {
	if status != nil && !status.Valid() {
		return nil, ErrInvalidInvoiceStatus
	}

	var clientID *string
	if sess.IsClient() {
		clientID = &sess.UserID
	}

	invoices, err := s.invoiceRepo.List(ctx, repository.InvoiceFilter{Status: status, ClientID: clientID})
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	paid, err := s.invoiceRepo.SumTotal(ctx, []models.InvoiceStatus{models.InvoiceStatusPaid}, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum paid revenue: %w", err)
	}
	pending, err := s.invoiceRepo.SumTotal(ctx, outstandingStatuses, clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum pending revenue: %w", err)
	}

	return &InvoiceListView{Invoices: invoices, PaidRevenue: paid, Pending: pending}, nil
}

// GetInvoice finds an invoice visible to the session
func (s *InvoiceService) GetInvoice(ctx context.Context, sess Session, id string) (*models.Invoice, error) {
	invoice, err := s.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to find invoice: %w", err)
	}
	if sess.IsClient() && invoice.ClientID != sess.UserID {
		return nil, ErrInvoiceNotFound
	}
	return invoice, nil
}

// CreateInvoice issues a draft invoice with a freshly generated number
func (s *InvoiceService) CreateInvoice(ctx context.Context, sess Session, input CreateInvoiceInput) (*models.Invoice, error) {
	if !sess.CanManageInvoices() {
		return nil, ErrForbidden
	}
	if input.Subtotal < 0 || input.Tax < 0 {
		return nil, ErrNegativeAmount
	}
	if input.DueDate.Before(input.IssueDate) {
		return nil, ErrDueBeforeIssue
	}

	items := make([]models.InvoiceItem, 0, len(input.Items))
	for _, it := range input.Items {
		desc := strings.TrimSpace(it.Description)
		if desc == "" {
			return nil, ErrItemDescriptionNeeded
		}
		if it.Quantity < 0 || it.Rate < 0 {
			return nil, ErrNegativeAmount
		}
		items = append(items, models.InvoiceItem{
			Description: desc,
			Quantity:    it.Quantity,
			Rate:        it.Rate,
			Amount:      it.Quantity * it.Rate,
			TaskID:      it.TaskID,
		})
	}

	client, err := s.userRepo.FindByID(ctx, input.ClientID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAClient
		}
		return nil, fmt.Errorf("failed to find client: %w", err)
	}
	if client.Role != models.UserRoleClient {
		return nil, ErrNotAClient
	}
	if input.ProjectID != nil {
		if _, err := s.projectRepo.FindByID(ctx, *input.ProjectID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProjectNotFound
			}
			return nil, fmt.Errorf("failed to find project: %w", err)
		}
	}

	number, err := s.numbers.Next(ctx, input.IssueDate)
	if err != nil {
		return nil, err
	}

	invoice := &models.Invoice{
		ProjectID:     input.ProjectID,
		ClientID:      input.ClientID,
		InvoiceNumber: number,
		Status:        models.InvoiceStatusDraft,
		IssueDate:     input.IssueDate,
		DueDate:       input.DueDate,
		Subtotal:      input.Subtotal,
		Tax:           input.Tax,
		Total:         models.InvoiceTotal(input.Subtotal, input.Tax),
		Notes:         input.Notes,
		CreatedBy:     sess.UserID,
		Items:         items,
	}
	if err := s.invoiceRepo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("failed to create invoice: %w", err)
	}

	log.Printf("[invoices] issued %s for client %s", invoice.InvoiceNumber, invoice.ClientID)
	return invoice, nil
}

// UpdateInvoiceStatus sets any status directly. There is no transition graph.
func (s *InvoiceService) UpdateInvoiceStatus(ctx context.Context, sess Session, id string, status models.InvoiceStatus) (*models.Invoice, error) {
	if !sess.CanManageInvoices() {
		return nil, ErrForbidden
	}
	if !status.Valid() {
		return nil, ErrInvalidInvoiceStatus
	}

	if err := s.invoiceRepo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}
	return s.GetInvoice(ctx, sess, id)
}

// PDFData returns the fields printed on an invoice's PDF
func (s *InvoiceService) PDFData(ctx context.Context, sess Session, id string) (pdf.InvoiceData, error) {
	invoice, err := s.GetInvoice(ctx, sess, id)
	if err != nil {
		return pdf.InvoiceData{}, err
	}
	return pdf.InvoiceData{
		InvoiceNumber: invoice.InvoiceNumber,
		IssueDate:     invoice.IssueDate,
		DueDate:       invoice.DueDate,
		ClientName:    invoice.Client.FullName,
		ClientEmail:   invoice.Client.Email,
		Total:         invoice.Total,
		Status:        string(invoice.Status),
	}, nil
}

// ListClients returns the users an invoice can be addressed to, by name
func (s *InvoiceService) ListClients(ctx context.Context) ([]models.User, error) {
	clients, err := s.userRepo.ListByRole(ctx, models.UserRoleClient)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	return clients, nil
}
