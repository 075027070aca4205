package aging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Preference keys. Values are JSON, compatible with the browser storage the
// report used before.
const (
	KeyVisibleColumns = "agingVisibleColumns"
	KeyColumnFilters  = "agingColumnFilters"
)

// Settings is a durable string key-value store.
type Settings interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// MemorySettings keeps settings in process memory.
type MemorySettings struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySettings() *MemorySettings {
	return &MemorySettings{values: make(map[string]string)}
}

func (m *MemorySettings) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemorySettings) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// ScopedSettings namespaces every key with a scope such as a session id.
type ScopedSettings struct {
	Inner Settings
	Scope string
}

func (s ScopedSettings) key(k string) string {
	if s.Scope == "" {
		return k
	}
	return s.Scope + ":" + k
}

func (s ScopedSettings) Get(ctx context.Context, key string) (string, bool, error) {
	return s.Inner.Get(ctx, s.key(key))
}

func (s ScopedSettings) Set(ctx context.Context, key, value string) error {
	return s.Inner.Set(ctx, s.key(key), value)
}

// Preferences persists the column layout and column filters of a ViewState.
type Preferences struct {
	Settings Settings
}

// Load overlays the stored layout and filters onto state. Missing or
// unreadable values leave the defaults in place; unknown column keys and
// duplicates are dropped.
func (p *Preferences) Load(ctx context.Context, state ViewState) (ViewState, error) {
	state = state.clone()

	raw, ok, err := p.Settings.Get(ctx, KeyVisibleColumns)
	if err != nil {
		return state, fmt.Errorf("aging: load %s: %w", KeyVisibleColumns, err)
	}
	if ok {
		var keys []string
		if json.Unmarshal([]byte(raw), &keys) == nil {
			state.SavedColumns = sanitizeColumns(keys)
		}
	}

	raw, ok, err = p.Settings.Get(ctx, KeyColumnFilters)
	if err != nil {
		return state, fmt.Errorf("aging: load %s: %w", KeyColumnFilters, err)
	}
	if ok {
		var filters map[string]string
		if json.Unmarshal([]byte(raw), &filters) == nil {
			state.ColumnFilters = map[string]string{}
			for k, v := range filters {
				if _, known := ColumnByKey(k); known {
					state.ColumnFilters[k] = v
				}
			}
		}
	}
	return state, nil
}

// Save writes both preference keys.
func (p *Preferences) Save(ctx context.Context, state ViewState) error {
	columns := state.SavedColumns
	if columns == nil {
		columns = []string{}
	}
	filters := state.ColumnFilters
	if filters == nil {
		filters = map[string]string{}
	}

	colJSON, err := json.Marshal(columns)
	if err != nil {
		return err
	}
	filterJSON, err := json.Marshal(filters)
	if err != nil {
		return err
	}
	if err := p.Settings.Set(ctx, KeyVisibleColumns, string(colJSON)); err != nil {
		return fmt.Errorf("aging: save %s: %w", KeyVisibleColumns, err)
	}
	if err := p.Settings.Set(ctx, KeyColumnFilters, string(filterJSON)); err != nil {
		return fmt.Errorf("aging: save %s: %w", KeyColumnFilters, err)
	}
	return nil
}

func sanitizeColumns(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if _, ok := ColumnByKey(k); !ok || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
