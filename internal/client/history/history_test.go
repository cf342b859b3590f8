package history

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/storage"
	"github.com/qiwen5/dressup/internal/common"
)

func newService(t *testing.T) *Service {
	t.Helper()
	return NewService(storage.NewMemoryMedium())
}

func TestAdd_PrependsNewestFirst(t *testing.T) {
	s := newService(t)

	first, err := s.Add(NewItem{UserID: "u1", Prompt: "summer look"})
	require.NoError(t, err)
	second, err := s.Add(NewItem{UserID: "u1", Prompt: "office look"})
	require.NoError(t, err)

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)

	ledger, err := s.List("u1")
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, second.ID, ledger[0].ID)
	assert.Equal(t, first.ID, ledger[1].ID)
}

func TestAdd_RequiresUserID(t *testing.T) {
	s := newService(t)

	_, err := s.Add(NewItem{Prompt: "p"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestAdd_CapEvictsOldest(t *testing.T) {
	s := newService(t)

	var oldest string
	for i := 0; i < MaxItems; i++ {
		item, err := s.Add(NewItem{UserID: "u1", Prompt: fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
		if i == 0 {
			oldest = item.ID
		}
	}

	newest, err := s.Add(NewItem{UserID: "u1", Prompt: "the 101st"})
	require.NoError(t, err)

	ledger, err := s.List("u1")
	require.NoError(t, err)
	require.Len(t, ledger, MaxItems, "ledger never exceeds the cap")
	assert.Equal(t, newest.ID, ledger[0].ID)
	for _, item := range ledger {
		assert.NotEqual(t, oldest, item.ID, "the evicted item is the oldest")
	}
}

func TestAdd_LedgersArePerUser(t *testing.T) {
	s := newService(t)

	_, err := s.Add(NewItem{UserID: "u1", Prompt: "a"})
	require.NoError(t, err)
	_, err = s.Add(NewItem{UserID: "u2", Prompt: "b"})
	require.NoError(t, err)

	l1, err := s.List("u1")
	require.NoError(t, err)
	l2, err := s.List("u2")
	require.NoError(t, err)
	assert.Len(t, l1, 1)
	assert.Len(t, l2, 1)
	assert.Equal(t, "a", l1[0].Prompt)
	assert.Equal(t, "b", l2[0].Prompt)
}

func TestGetPage_Scenario25Items(t *testing.T) {
	s := newService(t)

	for i := 0; i < 25; i++ {
		_, err := s.Add(NewItem{UserID: "u1", Prompt: fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
	}

	p, err := s.GetPage("u1", 1, 20)
	require.NoError(t, err)
	assert.Len(t, p.Items, 20)
	assert.True(t, p.HasMore)
	assert.Equal(t, 25, p.Total)

	p, err = s.GetPage("u1", 2, 20)
	require.NoError(t, err)
	assert.Len(t, p.Items, 5)
	assert.False(t, p.HasMore)
	assert.Equal(t, 25, p.Total)

	p, err = s.GetPage("u1", 3, 20)
	require.NoError(t, err)
	assert.Empty(t, p.Items)
	assert.False(t, p.HasMore)
	assert.Equal(t, 25, p.Total)
}

func TestGetPage_Defaults(t *testing.T) {
	s := newService(t)

	_, err := s.Add(NewItem{UserID: "u1", Prompt: "p"})
	require.NoError(t, err)

	p, err := s.GetPage("u1", 0, 0)
	require.NoError(t, err)
	assert.Len(t, p.Items, 1)
	assert.Equal(t, 1, p.Total)
}

func TestDelete(t *testing.T) {
	s := newService(t)

	item, err := s.Add(NewItem{UserID: "u1", Prompt: "p"})
	require.NoError(t, err)

	ok, err := s.Delete("u1", item.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.Delete("u1", item.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := s.ByID("u1", item.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClear(t *testing.T) {
	s := newService(t)

	_, err := s.Add(NewItem{UserID: "u1", Prompt: "p"})
	require.NoError(t, err)
	require.NoError(t, s.Clear("u1"))

	ledger, err := s.List("u1")
	require.NoError(t, err)
	assert.Empty(t, ledger)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	s := newService(t)

	_, err := s.Add(NewItem{UserID: "u1", Prompt: "Summer Beach Outfit"})
	require.NoError(t, err)
	_, err = s.Add(NewItem{UserID: "u1", Prompt: "office", CharacterName: "Sakura"})
	require.NoError(t, err)

	got, err := s.Search("u1", "beach")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Summer Beach Outfit", got[0].Prompt)

	got, err = s.Search("u1", "SAKURA")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "office", got[0].Prompt)

	got, err = s.Search("u1", "nothing")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestImport_IntoEmptyLedger(t *testing.T) {
	s := newService(t)

	items := []models.HistoryItem{
		{ID: "a", UserID: "u1", Prompt: "old", CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "b", UserID: "u1", Prompt: "new", CreatedAt: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "a", UserID: "u1", Prompt: "dup", CreatedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	raw, err := json.Marshal(items)
	require.NoError(t, err)

	require.NoError(t, s.Import("u1", raw))

	ledger, err := s.List("u1")
	require.NoError(t, err)
	require.Len(t, ledger, 2, "deduped by id")
	// sorted by creation time descending
	assert.Equal(t, "b", ledger[0].ID)
	assert.Equal(t, "a", ledger[1].ID)
	// first occurrence in concatenation order won
	assert.Equal(t, "old", ledger[1].Prompt)
}

func TestImport_ImportedShadowsExisting(t *testing.T) {
	s := newService(t)

	existing, err := s.Add(NewItem{UserID: "u1", Prompt: "existing"})
	require.NoError(t, err)

	imported := []models.HistoryItem{{
		ID:        existing.ID,
		UserID:    "u1",
		Prompt:    "imported",
		CreatedAt: existing.CreatedAt.Add(-time.Hour),
	}}
	raw, err := json.Marshal(imported)
	require.NoError(t, err)

	require.NoError(t, s.Import("u1", raw))

	ledger, err := s.List("u1")
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, "imported", ledger[0].Prompt, "imported item takes precedence")
}

func TestImport_BadPayloadLeavesLedgerUntouched(t *testing.T) {
	s := newService(t)

	item, err := s.Add(NewItem{UserID: "u1", Prompt: "keep me"})
	require.NoError(t, err)

	for _, payload := range []string{
		`{"not":"an array"}`,
		`[{"id":""}]`,
		`garbage`,
	} {
		err := s.Import("u1", []byte(payload))
		assert.ErrorIs(t, err, common.ErrValidation, payload)
	}

	ledger, err := s.List("u1")
	require.NoError(t, err)
	require.Len(t, ledger, 1)
	assert.Equal(t, item.ID, ledger[0].ID)
}

func TestImport_TruncatesToCap(t *testing.T) {
	s := newService(t)

	items := make([]models.HistoryItem, MaxItems+20)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range items {
		items[i] = models.HistoryItem{
			ID:        fmt.Sprintf("id%d", i),
			UserID:    "u1",
			Prompt:    "p",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
	}
	raw, err := json.Marshal(items)
	require.NoError(t, err)

	require.NoError(t, s.Import("u1", raw))

	ledger, err := s.List("u1")
	require.NoError(t, err)
	require.Len(t, ledger, MaxItems)
	// the newest items survive truncation
	assert.Equal(t, fmt.Sprintf("id%d", len(items)-1), ledger[0].ID)
}

func TestExportImport_RoundTrip(t *testing.T) {
	s := newService(t)

	for i := 0; i < 5; i++ {
		_, err := s.Add(NewItem{UserID: "u1", Prompt: fmt.Sprintf("p%d", i)})
		require.NoError(t, err)
	}

	exported, err := s.Export("u1")
	require.NoError(t, err)

	fresh := newService(t)
	require.NoError(t, fresh.Import("u1", exported))

	want, err := s.List("u1")
	require.NoError(t, err)
	got, err := fresh.List("u1")
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExport_EmptyLedger(t *testing.T) {
	s := newService(t)

	raw, err := s.Export("u1")
	require.NoError(t, err)

	var items []models.HistoryItem
	require.NoError(t, json.Unmarshal(raw, &items))
	assert.Empty(t, items)
}

func TestGetStats(t *testing.T) {
	s := newService(t)

	old := []models.HistoryItem{
		{ID: "ancient", UserID: "u1", Prompt: "p", CreatedAt: time.Now().AddDate(0, -6, 0)},
		{ID: "lastmonth", UserID: "u1", Prompt: "p", CreatedAt: time.Now().AddDate(0, 0, -20)},
	}
	raw, err := json.Marshal(old)
	require.NoError(t, err)
	require.NoError(t, s.Import("u1", raw))

	_, err = s.Add(NewItem{UserID: "u1", Prompt: "today"})
	require.NoError(t, err)

	st, err := s.GetStats("u1")
	require.NoError(t, err)
	assert.Equal(t, 3, st.Total)
	assert.Equal(t, 1, st.ThisWeek)
	assert.Equal(t, 2, st.ThisMonth)
}
