package aging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferencesRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettings()
	prefs := &Preferences{Settings: store}

	state := NewViewState().
		ToggleColumn("qty").
		ToggleColumn("rateTotal").
		MoveColumnUp("consignee").
		SetColumnFilter("consignor", "Lahore Mills,Sialkot Sports")
	require.NoError(t, prefs.Save(ctx, state))

	reloaded, err := prefs.Load(ctx, NewViewState())
	require.NoError(t, err)
	assert.Equal(t, state.SavedColumns, reloaded.SavedColumns)
	assert.Equal(t, state.VisibleColumns(), reloaded.VisibleColumns())
	assert.Equal(t, state.ColumnFilters, reloaded.ColumnFilters)

	raw, ok, err := store.Get(ctx, KeyColumnFilters)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"consignor":"Lahore Mills,Sialkot Sports"}`, raw)
}

func TestPreferencesLoadDefaultsAndSanitizes(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettings()
	prefs := &Preferences{Settings: store}

	state, err := prefs.Load(ctx, NewViewState())
	require.NoError(t, err)
	assert.Equal(t, DefaultColumns(), state.SavedColumns)

	require.NoError(t, store.Set(ctx, KeyVisibleColumns, `["orderNo","bogus","orderNo","biltyNo"]`))
	require.NoError(t, store.Set(ctx, KeyColumnFilters, `{not json`))
	state, err = prefs.Load(ctx, NewViewState())
	require.NoError(t, err)
	assert.Equal(t, []string{"orderNo", "biltyNo"}, state.SavedColumns)
	assert.Empty(t, state.ColumnFilters)
}

func TestScopedSettingsIsolatesSessions(t *testing.T) {
	ctx := context.Background()
	store := NewMemorySettings()
	a := ScopedSettings{Inner: store, Scope: "a"}
	b := ScopedSettings{Inner: store, Scope: "b"}

	require.NoError(t, a.Set(ctx, KeyVisibleColumns, `["biltyNo"]`))
	_, ok, err := b.Get(ctx, KeyVisibleColumns)
	require.NoError(t, err)
	assert.False(t, ok)

	v, ok, err := store.Get(ctx, "a:"+KeyVisibleColumns)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `["biltyNo"]`, v)
}

type failingSettings struct{}

func (failingSettings) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("store down")
}
func (failingSettings) Set(context.Context, string, string) error { return errors.New("store down") }

func TestPreferencesSurfaceStoreErrors(t *testing.T) {
	prefs := &Preferences{Settings: failingSettings{}}
	_, err := prefs.Load(context.Background(), NewViewState())
	assert.ErrorContains(t, err, "store down")
	assert.ErrorContains(t, prefs.Save(context.Background(), NewViewState()), "store down")
}
