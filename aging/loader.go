package aging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// DefaultPageSize is large enough to pull every record in one page.
const DefaultPageSize = 10000

// ErrStaleRefresh is returned when a newer refresh was issued while this
// one was in flight. Its result is discarded.
var ErrStaleRefresh = errors.New("aging: stale refresh discarded")

// ErrFetch wraps a failure to load either source.
var ErrFetch = errors.New("aging: fetch failed")

// ConsignmentSource lists consignments page by page.
type ConsignmentSource interface {
	GetAllConsignment(ctx context.Context, page, pageSize int) ([]models.ConsignmentRecord, error)
}

// PaymentSource lists payments page by page.
type PaymentSource interface {
	GetAllPaymentABL(ctx context.Context, page, pageSize int) ([]models.PaymentRecord, error)
}

// RefreshObserver is told about every refresh outcome.
type RefreshObserver interface {
	ObserveRefresh(outcome string, rows int, elapsed time.Duration)
}

// Refresh outcomes reported to a RefreshObserver.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
	OutcomeStale = "stale"
)

// Snapshot is a published, fully computed row set.
type Snapshot struct {
	Rows       []models.AgingRow
	Params     Params
	ComputedAt time.Time
	Token      uint64
}

// Loader fetches both sources, computes rows and publishes the newest result.
type Loader struct {
	consignments ConsignmentSource
	payments     PaymentSource
	pageSize     int
	logger       *slog.Logger
	now          func() time.Time
	observer     RefreshObserver

	mu       sync.Mutex
	issued   uint64
	snapshot Snapshot
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

func WithPageSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.pageSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) LoaderOption {
	return func(l *Loader) {
		if now != nil {
			l.now = now
		}
	}
}

func WithObserver(o RefreshObserver) LoaderOption {
	return func(l *Loader) { l.observer = o }
}

func NewLoader(consignments ConsignmentSource, payments PaymentSource, opts ...LoaderOption) *Loader {
	l := &Loader{
		consignments: consignments,
		payments:     payments,
		pageSize:     DefaultPageSize,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Snapshot returns the last published result.
func (l *Loader) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot
}

// Issue reserves the next refresh token. Callers that change the inputs of a
// refresh take the token while holding the lock guarding those inputs, so the
// token order matches the order of the changes.
func (l *Loader) Issue() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.issued++
	return l.issued
}

// Refresh issues a token and runs RefreshToken with it.
func (l *Loader) Refresh(ctx context.Context, p Params) (Snapshot, error) {
	return l.RefreshToken(ctx, l.Issue(), p)
}

// RefreshToken fetches consignments and payments concurrently and recomputes
// the rows. If either fetch fails nothing is published and the previous
// snapshot is returned with the error. If a token newer than token was issued
// meanwhile the result is dropped and ErrStaleRefresh is returned.
func (l *Loader) RefreshToken(ctx context.Context, token uint64, p Params) (Snapshot, error) {
	start := time.Now()
	var (
		consignments []models.ConsignmentRecord
		payments     []models.PaymentRecord
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		consignments, err = l.consignments.GetAllConsignment(gctx, 1, l.pageSize)
		if err != nil {
			return fmt.Errorf("fetch consignments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		payments, err = l.payments.GetAllPaymentABL(gctx, 1, l.pageSize)
		if err != nil {
			return fmt.Errorf("fetch payments: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		l.logger.Error("aging refresh failed", slog.Uint64("token", token), slog.Any("error", err))
		l.observe(OutcomeError, 0, start)
		return l.Snapshot(), fmt.Errorf("%w: %w", ErrFetch, err)
	}

	now := l.now()
	rows := ComputeRows(consignments, payments, p, now)

	l.mu.Lock()
	defer l.mu.Unlock()
	if token < l.issued {
		l.logger.Warn("aging refresh superseded",
			slog.Uint64("token", token), slog.Uint64("latest", l.issued))
		l.observe(OutcomeStale, len(rows), start)
		return l.snapshot, ErrStaleRefresh
	}
	l.snapshot = Snapshot{Rows: rows, Params: p, ComputedAt: now, Token: token}
	l.logger.Info("aging refresh done",
		slog.Uint64("token", token),
		slog.Int("consignments", len(consignments)),
		slog.Int("payments", len(payments)),
		slog.Float64("wht_percent", p.WHTPercent),
		slog.String("match_key", string(p.MatchKey)))
	l.observe(OutcomeOK, len(rows), start)
	return l.snapshot, nil
}

func (l *Loader) observe(outcome string, rows int, start time.Time) {
	if l.observer != nil {
		l.observer.ObserveRefresh(outcome, rows, time.Since(start))
	}
}
