package repository

import (
	"context"
	"errors"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("repository: not found")

// ConsignmentRepository lists and records consignments.
type ConsignmentRepository interface {
	GetAllConsignment(ctx context.Context, page, pageSize int) ([]models.ConsignmentRecord, error)
	CreateConsignment(ctx context.Context, c *models.ConsignmentRecord) error
}

// PaymentRepository lists and records ABL payments.
type PaymentRepository interface {
	GetAllPaymentABL(ctx context.Context, page, pageSize int) ([]models.PaymentRecord, error)
	CreatePayment(ctx context.Context, p *models.PaymentRecord) error
}

// offset converts a 1-based page into a row offset.
func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
