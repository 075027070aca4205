package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// Upstream REST resources.
const (
	ConsignmentPath = "/Consignment"
	PaymentABLPath  = "/PaymentABL"
)

// RemoteRepo reads consignments and payments from the booking system's REST
// API. Responses are wrapped as {"data": ...}.
type RemoteRepo struct {
	BaseURL string
	Token   string
	Client  *http.Client
}

func NewRemoteRepo(baseURL, token string, client *http.Client) *RemoteRepo {
	if client == nil {
		client = http.DefaultClient
	}
	return &RemoteRepo{BaseURL: strings.TrimRight(baseURL, "/"), Token: token, Client: client}
}

type listEnvelope[T any] struct {
	Data []T `json:"data"`
}

func (r *RemoteRepo) GetAllConsignment(ctx context.Context, page, pageSize int) ([]models.ConsignmentRecord, error) {
	var env listEnvelope[models.ConsignmentRecord]
	if err := r.list(ctx, ConsignmentPath, page, pageSize, &env); err != nil {
		return nil, fmt.Errorf("consignments: %w", err)
	}
	return env.Data, nil
}

func (r *RemoteRepo) GetAllPaymentABL(ctx context.Context, page, pageSize int) ([]models.PaymentRecord, error) {
	var env listEnvelope[models.PaymentRecord]
	if err := r.list(ctx, PaymentABLPath, page, pageSize, &env); err != nil {
		return nil, fmt.Errorf("payments: %w", err)
	}
	return env.Data, nil
}

func (r *RemoteRepo) CreateConsignment(ctx context.Context, c *models.ConsignmentRecord) error {
	return postRecord(ctx, r, ConsignmentPath, c)
}

func (r *RemoteRepo) CreatePayment(ctx context.Context, p *models.PaymentRecord) error {
	return postRecord(ctx, r, PaymentABLPath, p)
}

func (r *RemoteRepo) list(ctx context.Context, path string, page, pageSize int, out any) error {
	q := url.Values{}
	q.Set("pageIndex", strconv.Itoa(page))
	q.Set("pageSize", strconv.Itoa(pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.BaseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return err
	}
	return r.do(req, out)
}

type recordEnvelope[T any] struct {
	Data *T `json:"data"`
}

// postRecord creates rec upstream. When the reply carries the stored record
// as {"data": {...}} it replaces rec; replies without data leave rec as sent.
func postRecord[T any](ctx context.Context, r *RemoteRepo, path string, rec *T) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	var env recordEnvelope[T]
	if err := r.do(req, &env); err != nil {
		return err
	}
	if env.Data != nil {
		*rec = *env.Data
	}
	return nil
}

func (r *RemoteRepo) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	resp, err := r.Client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("upstream %s %s: status %d: %s", req.Method, req.URL.Path, resp.StatusCode, strings.TrimSpace(string(data)))
	}
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && err != io.EOF {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
