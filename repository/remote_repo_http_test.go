package repository

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

func TestRemoteRepoListsConsignments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, ConsignmentPath, r.URL.Path)
		assert.Equal(t, "1", r.URL.Query().Get("pageIndex"))
		assert.Equal(t, "10000", r.URL.Query().Get("pageSize"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"data":[{"biltyNo":"B-1","orderNo":"O-1","date":"2024-01-10",
			"consignor":"Lahore Mills","consignee":"Karachi Traders","creditAllowed":"30",
			"items":[{"qty":"1,000","rate":12.5}]}]}`))
	}))
	defer srv.Close()

	repo := NewRemoteRepo(srv.URL+"/", "secret", srv.Client())
	got, err := repo.GetAllConsignment(context.Background(), 1, 10000)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "B-1", got[0].BiltyNo)
	assert.Equal(t, models.Amount(30), got[0].CreditAllowed)
	require.Len(t, got[0].Items, 1)
	assert.Equal(t, models.Amount(1000), got[0].Items[0].Qty)
	assert.Equal(t, models.Amount(12.5), got[0].Items[0].Rate)
}

func TestRemoteRepoListsPayments(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PaymentABLPath, r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[{"orderNo":"O-1","advanced":"500","pdc":250}]}`))
	}))
	defer srv.Close()

	got, err := NewRemoteRepo(srv.URL, "", nil).GetAllPaymentABL(context.Background(), 1, 50)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, models.Amount(500), got[0].Advanced)
	assert.Equal(t, models.Amount(250), got[0].PDC)
}

func TestRemoteRepoUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := NewRemoteRepo(srv.URL, "", nil).GetAllPaymentABL(context.Background(), 1, 50)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 502")
	assert.Contains(t, err.Error(), "boom")
}

func TestRemoteRepoCreatePayment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var p models.PaymentRecord
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		p.ID = "p-1"
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "message": "created", "data": p})
	}))
	defer srv.Close()

	p := &models.PaymentRecord{OrderNo: "O-9", Advanced: 100}
	require.NoError(t, NewRemoteRepo(srv.URL, "", nil).CreatePayment(context.Background(), p))
	assert.Equal(t, "p-1", p.ID)
	assert.Equal(t, "O-9", p.OrderNo)
}

func TestRemoteRepoCreateIgnoresReplyWithoutData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"created","biltyNo":"OTHER"}`))
	}))
	defer srv.Close()

	c := &models.ConsignmentRecord{BiltyNo: "B-7", OrderNo: "O-7"}
	require.NoError(t, NewRemoteRepo(srv.URL, "", nil).CreateConsignment(context.Background(), c))
	assert.Equal(t, "B-7", c.BiltyNo)
	assert.Equal(t, "O-7", c.OrderNo)
	assert.Empty(t, c.ID)
}
