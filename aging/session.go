package aging

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/Rabi-developer/ZMS-sub002/models"
)

// Summary describes the active row filters for export headers.
type Summary struct {
	DateFrom string
	DateTo   string
	Status   Status
}

// DateRange renders the date filter, e.g. "From 2024-01-01 To 2024-01-31".
func (s Summary) DateRange() string {
	switch {
	case s.DateFrom != "" && s.DateTo != "":
		return "From " + s.DateFrom + " To " + s.DateTo
	case s.DateFrom != "":
		return "From " + s.DateFrom
	case s.DateTo != "":
		return "Up To " + s.DateTo
	}
	return "All Dates"
}

// StatusLabel is the filter label shown on exports, empty for Both.
func (s Summary) StatusLabel() string {
	if s.Status == "" || s.Status == StatusBoth {
		return ""
	}
	return "Filter: " + string(s.Status)
}

// View is what the report renders: the visible columns and filtered rows.
type View struct {
	State      ViewState          `json:"state"`
	FocusMode  bool               `json:"focusMode"`
	Columns    []Column           `json:"columns"`
	Rows       []models.AgingRow  `json:"rows"`
	Totals     map[string]float64 `json:"totals"`
	TotalRows  int                `json:"totalRows"`
	ComputedAt time.Time          `json:"computedAt"`
	Summary    Summary            `json:"-"`
}

// ErrPreferences wraps a failure to load or save stored preferences.
var ErrPreferences = errors.New("aging: preferences unavailable")

// Session owns one user's report: its state, preferences and loader.
type Session struct {
	ID string

	loader *Loader
	prefs  *Preferences

	mu     sync.Mutex
	state  ViewState
	loaded bool

	// lastUsed is guarded by the owning Sessions.
	lastUsed time.Time
}

// NewSession builds a session with default state. Call Open before use.
func NewSession(id string, loader *Loader, prefs *Preferences) *Session {
	return &Session{ID: id, loader: loader, prefs: prefs, state: NewViewState()}
}

// NewSessionWithState is NewSession with a different initial state, such as
// a configured default WHT percentage. Stored preferences still override the
// column layout and column filters.
func NewSessionWithState(id string, loader *Loader, prefs *Preferences, initial ViewState) *Session {
	return &Session{ID: id, loader: loader, prefs: prefs, state: initial.clone()}
}

// Open restores stored preferences and performs the first fetch once.
func (s *Session) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.loaded {
		s.mu.Unlock()
		return nil
	}
	state, err := s.prefs.Load(ctx, s.state)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrPreferences, err)
	}
	s.state = state
	s.loaded = true
	params := s.state.Params()
	token := s.loader.Issue()
	s.mu.Unlock()

	return s.refresh(ctx, token, params)
}

// State returns a copy of the current state.
func (s *Session) State() ViewState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Update applies a transition, persists the preferences and refetches when
// the computation inputs changed. The new state is kept even if saving or the
// refetch fails; the previous rows stay published in that case. Both errors
// are returned joined.
func (s *Session) Update(ctx context.Context, transition func(ViewState) ViewState) (ViewState, error) {
	return s.update(ctx, transition, false)
}

// Reload is Update followed by a refetch whether or not the inputs changed.
func (s *Session) Reload(ctx context.Context, transition func(ViewState) ViewState) (ViewState, error) {
	return s.update(ctx, transition, true)
}

func (s *Session) update(ctx context.Context, transition func(ViewState) ViewState, force bool) (ViewState, error) {
	s.mu.Lock()
	prev := s.state
	next := transition(prev)
	s.state = next
	refetch := force || next.NeedsRefetch(prev)
	var token uint64
	if refetch {
		token = s.loader.Issue()
	}
	s.mu.Unlock()

	var saveErr, fetchErr error
	if err := s.prefs.Save(ctx, next); err != nil {
		saveErr = fmt.Errorf("%w: %w", ErrPreferences, err)
	}
	if refetch {
		fetchErr = s.refresh(ctx, token, next.Params())
	}
	return next.clone(), errors.Join(fetchErr, saveErr)
}

func (s *Session) refresh(ctx context.Context, token uint64, p Params) error {
	_, err := s.loader.RefreshToken(ctx, token, p)
	if errors.Is(err, ErrStaleRefresh) {
		return nil
	}
	return err
}

// View filters the published rows as of now.
func (s *Session) View(now time.Time) View {
	state := s.State()
	snap := s.loader.Snapshot()
	rows := Apply(snap.Rows, state.Filter(), now)
	columns := ResolveColumns(state.VisibleColumns())
	if rows == nil {
		rows = []models.AgingRow{}
	}
	return View{
		State:      state,
		FocusMode:  state.FocusMode(),
		Columns:    columns,
		Rows:       rows,
		Totals:     Totals(rows, columns),
		TotalRows:  len(snap.Rows),
		ComputedAt: snap.ComputedAt,
		Summary:    Summary{DateFrom: state.DateFrom, DateTo: state.DateTo, Status: state.Status},
	}
}

// DistinctValues lists the sorted non-empty values of a column over every
// loaded row, ignoring filters.
func (s *Session) DistinctValues(key string) []string {
	col, ok := ColumnByKey(key)
	if !ok {
		return nil
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, row := range s.loader.Snapshot().Rows {
		v := col.Text(row)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Totals sums every amount column over rows.
func Totals(rows []models.AgingRow, columns []Column) map[string]float64 {
	totals := make(map[string]float64)
	for _, c := range columns {
		if !c.Numeric() {
			continue
		}
		var sum float64
		for _, r := range rows {
			sum += c.Amount(r)
		}
		totals[c.Key] = sum
	}
	return totals
}

// SessionFactory builds a fresh session for an id.
type SessionFactory func(id string) *Session

// DefaultIdleTTL is how long an unused session keeps its rows in memory.
const DefaultIdleTTL = 30 * time.Minute

// Sessions keeps one Session per session id and drops sessions that were not
// used for longer than the idle TTL.
type Sessions struct {
	mu       sync.Mutex
	factory  SessionFactory
	sessions map[string]*Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
	swept    time.Time
}

// SessionsOption configures a Sessions registry.
type SessionsOption func(*Sessions)

// WithIdleTTL sets the idle TTL. Zero or less keeps sessions forever.
func WithIdleTTL(ttl time.Duration) SessionsOption {
	return func(r *Sessions) { r.ttl = ttl }
}

// WithSessionClock replaces time.Now, mainly for tests.
func WithSessionClock(now func() time.Time) SessionsOption {
	return func(r *Sessions) {
		if now != nil {
			r.now = now
		}
	}
}

func WithSessionLogger(logger *slog.Logger) SessionsOption {
	return func(r *Sessions) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewSessions(factory SessionFactory, opts ...SessionsOption) *Sessions {
	r := &Sessions{
		factory:  factory,
		sessions: make(map[string]*Session),
		ttl:      DefaultIdleTTL,
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Get returns the session for id, creating and opening it on first use.
// Idle sessions are evicted on the way.
func (r *Sessions) Get(ctx context.Context, id string) (*Session, error) {
	r.mu.Lock()
	now := r.now()
	r.evictLocked(now)
	sess, ok := r.sessions[id]
	if !ok {
		sess = r.factory(id)
		r.sessions[id] = sess
	}
	sess.lastUsed = now
	r.mu.Unlock()

	if err := sess.Open(ctx); err != nil {
		return sess, err
	}
	return sess, nil
}

// Len reports how many sessions are held.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Sessions) evictLocked(now time.Time) {
	if r.ttl <= 0 || now.Sub(r.swept) < r.ttl/4 {
		return
	}
	r.swept = now
	for id, sess := range r.sessions {
		if now.Sub(sess.lastUsed) > r.ttl {
			delete(r.sessions, id)
			r.logger.Debug("aging session evicted", slog.String("session", id))
		}
	}
}
