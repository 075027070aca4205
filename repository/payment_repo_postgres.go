package repository

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

type PostgresPaymentRepo struct {
	DB *sql.DB
}

func NewPostgresPaymentRepo(db *sql.DB) *PostgresPaymentRepo {
	return &PostgresPaymentRepo{DB: db}
}

func (r *PostgresPaymentRepo) CreatePayment(ctx context.Context, p *models.PaymentRecord) error {
	var id int64
	err := r.DB.QueryRowContext(ctx, `
		INSERT INTO payment_abl(order_no, advanced, pdc, created_at)
		VALUES($1,$2,$3,$4)
		RETURNING id
	`, p.OrderNo, p.Advanced, p.PDC, time.Now().UTC()).Scan(&id)
	if err != nil {
		return err
	}
	p.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *PostgresPaymentRepo) GetAllPaymentABL(ctx context.Context, page, pageSize int) ([]models.PaymentRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, order_no, advanced, pdc
		FROM payment_abl
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.PaymentRecord
	for rows.Next() {
		var (
			id int64
			p  models.PaymentRecord
		)
		if err := rows.Scan(&id, &p.OrderNo, &p.Advanced, &p.PDC); err != nil {
			return nil, err
		}
		p.ID = strconv.FormatInt(id, 10)
		out = append(out, p)
	}
	return out, rows.Err()
}
