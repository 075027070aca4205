package repository

import (
	"context"
	"sync"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// MemoryInitialRepo keeps the company profile in memory. It backs the REST
// data source mode, where no database is configured.
type MemoryInitialRepo struct {
	mu      sync.RWMutex
	initial *models.InitialSetup
}

func NewMemoryInitialRepo() *MemoryInitialRepo {
	return &MemoryInitialRepo{}
}

func (r *MemoryInitialRepo) SaveInitial(_ context.Context, initial *models.InitialSetup) error {
	if initial.CreatedAt.IsZero() {
		initial.CreatedAt = time.Now().UTC()
	}
	if initial.ID == 0 {
		initial.ID = 1
	}
	cp := *initial
	cp.Mobile = append([]models.MobileEntry(nil), initial.Mobile...)
	r.mu.Lock()
	r.initial = &cp
	r.mu.Unlock()
	return nil
}

func (r *MemoryInitialRepo) GetInitial(_ context.Context) (*models.InitialSetup, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.initial == nil {
		return nil, nil
	}
	cp := *r.initial
	return &cp, nil
}
