package db

import "context"

type DBType string

const (
	Postgres DBType = "postgres"
	Mongo    DBType = "mongo"
	// HTTP reads consignments and payments from the upstream REST API.
	HTTP DBType = "http"
)

type DB interface {
	Connect(ctx context.Context) error
	Disconnect(ctx context.Context) error
}
