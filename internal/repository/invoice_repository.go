package repository

import (
	"context"

	"github.com/yukikurage/studio-ops-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository is a GORM implementation of InvoiceRepository
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates a new InvoiceRepository
func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// Create inserts an invoice and its line items
func (r *GormInvoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	items := invoice.Items

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(invoice).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}

		for i := range items {
			items[i].InvoiceID = invoice.ID
		}
		return tx.Omit(clause.Associations).Create(&items).Error
	})
}

// FindByID finds an invoice with client, project and items
func (r *GormInvoiceRepository) FindByID(ctx context.Context, id string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Project").
		Preload("Items").
		Where("id = ?", id).
		First(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}

// List retrieves invoices newest first
func (r *GormInvoiceRepository) List(ctx context.Context, filter InvoiceFilter) ([]models.Invoice, error) {
	var invoices []models.Invoice

	query := r.db.WithContext(ctx).Model(&models.Invoice{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}

	err := query.
		Preload("Project").
		Preload("Client").
		Order("created_at DESC").
		Find(&invoices).Error
	return invoices, err
}

// UpdateStatus sets an invoice status directly
func (r *GormInvoiceRepository) UpdateStatus(ctx context.Context, id string, status models.InvoiceStatus) error {
	result := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SumTotal sums invoice totals for the given statuses
func (r *GormInvoiceRepository) SumTotal(ctx context.Context, statuses []models.InvoiceStatus, clientID *string) (float64, error) {
	var sum float64

	query := r.db.WithContext(ctx).Model(&models.Invoice{}).Where("status IN ?", statuses)
	if clientID != nil {
		query = query.Where("client_id = ?", *clientID)
	}

	err := query.Select("COALESCE(SUM(total), 0)").Scan(&sum).Error
	return sum, err
}

// NextSequence reserves the next invoice counter for a year. The counter row
// is created on first use.
func (r *GormInvoiceRepository) NextSequence(ctx context.Context, year int) (int, error) {
	var seq models.InvoiceSequence

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.InvoiceSequence{Year: year, Value: 0}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.InvoiceSequence{}).
			Where("year = ?", year).
			UpdateColumn("value", gorm.Expr("value + ?", 1)).Error; err != nil {
			return err
		}

		return tx.Where("year = ?", year).First(&seq).Error
	})
	if err != nil {
		return 0, err
	}

	return seq.Value, nil
}
