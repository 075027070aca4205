package repository

import (
	"context"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// InitialRepository stores the company profile printed on exports.
type InitialRepository interface {
	SaveInitial(ctx context.Context, initial *models.InitialSetup) error
	GetInitial(ctx context.Context) (*models.InitialSetup, error)
}
