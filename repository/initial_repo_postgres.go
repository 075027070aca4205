package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

type PostgresInitialRepo struct {
	DB *sql.DB
}

func NewPostgresInitialRepo(db *sql.DB) *PostgresInitialRepo {
	return &PostgresInitialRepo{DB: db}
}

// SaveInitial inserts a new profile, or updates it when ID is set.
func (r *PostgresInitialRepo) SaveInitial(ctx context.Context, initial *models.InitialSetup) error {
	if initial.CreatedAt.IsZero() {
		initial.CreatedAt = time.Now().UTC()
	}

	mobileJSON, err := json.Marshal(initial.Mobile)
	if err != nil {
		return err
	}

	if initial.ID > 0 {
		_, err = r.DB.ExecContext(ctx, `
			UPDATE initial_setup
			SET company_name=$1, ntn=$2, address=$3, city=$4, province=$5,
				postcode=$6, mobile=$7, footnote=$8
			WHERE id=$9
		`, initial.CompanyName, initial.NTN, initial.Address, initial.City, initial.Province,
			initial.Postcode, string(mobileJSON), initial.Footnote, initial.ID)
		return err
	}

	return r.DB.QueryRowContext(ctx, `
		INSERT INTO initial_setup
		(company_name, ntn, address, city, province, postcode, mobile, footnote, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		RETURNING id
	`, initial.CompanyName, initial.NTN, initial.Address, initial.City, initial.Province,
		initial.Postcode, string(mobileJSON), initial.Footnote, initial.CreatedAt).Scan(&initial.ID)
}

// GetInitial fetches the latest profile, or nil when none is saved.
func (r *PostgresInitialRepo) GetInitial(ctx context.Context) (*models.InitialSetup, error) {
	initial := &models.InitialSetup{}
	var mobileJSON []byte

	err := r.DB.QueryRowContext(ctx, `
		SELECT id, company_name, address, city, province, postcode, ntn, footnote, mobile, created_at
		FROM initial_setup
		ORDER BY id DESC LIMIT 1
	`).Scan(&initial.ID, &initial.CompanyName, &initial.Address, &initial.City, &initial.Province,
		&initial.Postcode, &initial.NTN, &initial.Footnote, &mobileJSON, &initial.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	if len(mobileJSON) > 0 {
		if err := json.Unmarshal(mobileJSON, &initial.Mobile); err != nil {
			return nil, err
		}
	}
	return initial, nil
}
