package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/lib/pq"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

type PostgresConsignmentRepo struct {
	DB *sql.DB
}

func NewPostgresConsignmentRepo(db *sql.DB) *PostgresConsignmentRepo {
	return &PostgresConsignmentRepo{DB: db}
}

// ------------------------ Create ------------------------

// CreateConsignment inserts the consignment and its items in one transaction.
func (r *PostgresConsignmentRepo) CreateConsignment(ctx context.Context, c *models.ConsignmentRecord) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO consignment(bilty_no, order_no, date, consignee, consignor, credit_allowed, created_at)
		VALUES($1,$2,$3,$4,$5,$6,$7)
		RETURNING id
	`, c.BiltyNo, c.OrderNo, c.Date, c.Consignee, c.Consignor, c.CreditAllowed, time.Now().UTC()).Scan(&id)
	if err != nil {
		return fmt.Errorf("insert consignment: %w", err)
	}

	if err := r.insertItems(ctx, tx, id, c.Items); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.ID = strconv.FormatInt(id, 10)
	return nil
}

func (r *PostgresConsignmentRepo) insertItems(ctx context.Context, tx *sql.Tx, consignmentID int64, items []models.ConsignmentItem) error {
	for i, item := range items {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO consignment_item(consignment_id, line_no, qty, rate)
			VALUES($1,$2,$3,$4)
		`, consignmentID, i+1, item.Qty, item.Rate)
		if err != nil {
			return fmt.Errorf("insert consignment item: %w", err)
		}
	}
	return nil
}

// ------------------------ List ------------------------

// GetAllConsignment returns one page of consignments with their items,
// oldest first.
func (r *PostgresConsignmentRepo) GetAllConsignment(ctx context.Context, page, pageSize int) ([]models.ConsignmentRecord, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT id, bilty_no, order_no, date, consignee, consignor, credit_allowed
		FROM consignment
		ORDER BY id
		LIMIT $1 OFFSET $2
	`, pageSize, offset(page, pageSize))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		out   []models.ConsignmentRecord
		ids   []int64
		index = make(map[int64]int)
	)
	for rows.Next() {
		var (
			id int64
			c  models.ConsignmentRecord
		)
		if err := rows.Scan(&id, &c.BiltyNo, &c.OrderNo, &c.Date, &c.Consignee, &c.Consignor, &c.CreditAllowed); err != nil {
			return nil, err
		}
		c.ID = strconv.FormatInt(id, 10)
		index[id] = len(out)
		ids = append(ids, id)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return out, nil
	}

	itemRows, err := r.DB.QueryContext(ctx, `
		SELECT consignment_id, qty, rate
		FROM consignment_item
		WHERE consignment_id = ANY($1)
		ORDER BY consignment_id, line_no
	`, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var (
			consignmentID int64
			item          models.ConsignmentItem
		)
		if err := itemRows.Scan(&consignmentID, &item.Qty, &item.Rate); err != nil {
			return nil, err
		}
		if i, ok := index[consignmentID]; ok {
			out[i].Items = append(out[i].Items, item)
		}
	}
	return out, itemRows.Err()
}
