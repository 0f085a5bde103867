//go:build unit

package versions_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rsv-catalog/internal/domain/catalog"
	"rsv-catalog/internal/domain/quotation"
	"rsv-catalog/internal/pkg/clock"
	"rsv-catalog/internal/pkg/errs"
	"rsv-catalog/internal/usecase/versions"
	"rsv-catalog/tests/common/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC)

func newManager(t *testing.T) (versions.Manager, *clock.MockClock) {
	t.Helper()
	clk := clock.NewMockClock(baseTime)
	return versions.NewManager(testutil.NewMemoryPersistence(t), clk, testutil.DiscardLogger()), clk
}

func entry(id, name string, prices ...float64) catalog.Entry {
	e := catalog.Entry{
		ID:           id,
		Name:         name,
		Type:         quotation.TypeHotel,
		MainCategory: catalog.MainCategoryHotels,
		Title:        name,
		Tags:         []string{"hotel"},
		Discount:     quotation.Fixed(0),
		Tax:          quotation.Fixed(0),
		CreatedAt:    baseTime,
		UpdatedAt:    baseTime,
	}
	for i, p := range prices {
		e.Items = append(e.Items, quotation.Item{
			ID:        id + "-item-" + string(rune('a'+i)),
			Name:      "Diária",
			Quantity:  1,
			UnitPrice: p,
		})
	}
	return e
}

func TestSaveVersion(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t)

	v1, err := m.SaveVersion(ctx, entry("hotel-a", "Hotel A", 100), nil, "inicial", "")
	require.NoError(t, err)
	assert.Equal(t, 1, v1.Version)
	assert.Equal(t, "default_user", v1.CreatedBy)
	assert.True(t, v1.IsActive)
	assert.NotEmpty(t, v1.Checksum)

	clk.Add(time.Hour)
	v2, err := m.SaveVersion(ctx, entry("hotel-a", "Hotel A Plus", 120), nil, "preço", "user_vendas")
	require.NoError(t, err)
	assert.Equal(t, 2, v2.Version)

	list := m.Versions(ctx, "hotel-a")
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Version)
	assert.False(t, list[1].IsActive)

	active, ok := m.ActiveVersion(ctx, "hotel-a")
	require.True(t, ok)
	assert.Equal(t, v2.ID, active.ID)

	_, err = m.SaveVersion(ctx, catalog.Entry{Name: "sem id"}, nil, "", "")
	assert.True(t, errs.Is(err, errs.ErrInvalidTemplate))
}

func TestSnapshotIsIsolated(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	e := entry("hotel-a", "Hotel A", 100)
	_, err := m.SaveVersion(ctx, e, nil, "", "")
	require.NoError(t, err)

	e.Items[0].UnitPrice = 999
	e.Tags[0] = "changed"

	v, ok := m.Version(ctx, "hotel-a", 1)
	require.True(t, ok)
	assert.Equal(t, 100.0, v.Snapshot.Items[0].UnitPrice)
	assert.Equal(t, []string{"hotel"}, v.Snapshot.Tags)
}

func TestNumberingSurvivesCleanup(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t)

	for i := 0; i < 4; i++ {
		clk.Add(time.Minute)
		_, err := m.SaveVersion(ctx, entry("hotel-a", "Hotel A", float64(100+i)), nil, "", "")
		require.NoError(t, err)
	}
	_, err := m.SaveVersion(ctx, entry("hotel-b", "Hotel B", 50), nil, "", "")
	require.NoError(t, err)

	removed, err := m.Cleanup(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	list := m.Versions(ctx, "hotel-a")
	require.Len(t, list, 2)
	assert.Equal(t, []int{4, 3}, []int{list[0].Version, list[1].Version})
	assert.Len(t, m.Versions(ctx, "hotel-b"), 1)

	v, err := m.SaveVersion(ctx, entry("hotel-a", "Hotel A", 200), nil, "", "")
	require.NoError(t, err)
	assert.Equal(t, 5, v.Version)

	removed, err = m.Cleanup(ctx, 10)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestRestore(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t)

	_, err := m.SaveVersion(ctx, entry("hotel-a", "Hotel A", 100), nil, "", "")
	require.NoError(t, err)
	clk.Add(time.Hour)
	_, err = m.SaveVersion(ctx, entry("hotel-a", "Hotel A Plus", 150), nil, "", "")
	require.NoError(t, err)

	clk.Add(time.Hour)
	restored, err := m.Restore(ctx, "hotel-a", 1, "user_marketing")
	require.NoError(t, err)
	assert.Equal(t, "Hotel A", restored.Name)
	assert.Equal(t, clk.Now(), restored.UpdatedAt)

	active, ok := m.ActiveVersion(ctx, "hotel-a")
	require.True(t, ok)
	assert.Equal(t, 3, active.Version)
	assert.Equal(t, "Restaurado para versão 1", active.ChangeDescription)
	assert.Equal(t, "user_marketing", active.CreatedBy)

	history := m.ChangeHistory(ctx, "hotel-a")
	require.Len(t, history, 3)
	assert.Equal(t, 3, history[0].Version)

	_, err = m.Restore(ctx, "hotel-a", 9, "")
	assert.True(t, errs.Is(err, errs.ErrVersionNotFound))
}

func TestCompare(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	old := entry("hotel-a", "Hotel A", 100, 200)
	next := entry("hotel-a", "Hotel A Premium", 100, 250)
	next.Items = append(next.Items, quotation.Item{ID: "extra", Name: "Traslado", Quantity: 1, UnitPrice: 80})
	next.Tags = append(next.Tags, "premium")

	_, err := m.SaveVersion(ctx, old, nil, "", "")
	require.NoError(t, err)
	_, err = m.SaveVersion(ctx, next, versions.DetectChanges(old, next), "", "")
	require.NoError(t, err)

	res, err := m.Compare(ctx, "hotel-a", 1, 2)
	require.NoError(t, err)

	fields := map[string]int{}
	for _, d := range res.Differences {
		fields[d.Field]++
	}
	assert.Equal(t, map[string]int{"name": 1, "title": 1, "tags": 1, "items": 2}, fields)
	// extra added, item-b price changed, item-a untouched
	assert.Equal(t, versions.Summary{Added: 1, Modified: 4}, res.Summary)

	_, err = m.Compare(ctx, "hotel-a", 1, 7)
	assert.True(t, errs.Is(err, errs.ErrVersionNotFound))
}

func TestDetectChanges(t *testing.T) {
	old := entry("hotel-a", "Hotel A", 100)
	next := entry("hotel-a", "Hotel A", 100, 50)
	next.Tags = []string{"premium"}

	changes := versions.DetectChanges(old, next)

	require.Len(t, changes, 3)
	assert.Equal(t, versions.Change{
		Field:       "tags",
		NewValue:    "premium",
		ChangeType:  versions.ChangeAdded,
		Description: `Tag "premium" adicionada`,
	}, changes[0])
	assert.Equal(t, versions.ChangeRemoved, changes[1].ChangeType)
	assert.Equal(t, "items", changes[2].Field)
	assert.Equal(t, 2, changes[2].NewValue)

	assert.Empty(t, versions.DetectChanges(old, old))
}

func TestChecksumIsStable(t *testing.T) {
	e := entry("hotel-a", "Hotel A", 100)
	a, err := versions.Checksum(e)
	require.NoError(t, err)
	b, err := versions.Checksum(e.Clone())
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64)

	e.Name = "Outro"
	c, err := versions.Checksum(e)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestSnapshotChecksumMatchesSource(t *testing.T) {
	ctx := context.Background()
	m, _ := newManager(t)

	// generated entries leave highlights, benefits and notes nil
	e := entry("hotel-b", "Hotel B", 150)
	want, err := versions.Checksum(e)
	require.NoError(t, err)

	v, err := m.SaveVersion(ctx, e, nil, "Template criado", "")
	require.NoError(t, err)
	assert.Equal(t, want, v.Checksum)
	assert.Nil(t, v.Snapshot.Highlights)

	stored, ok := m.Version(ctx, "hotel-b", v.Version)
	require.True(t, ok)
	got, err := versions.Checksum(stored.Snapshot)
	require.NoError(t, err)
	assert.Equal(t, stored.Checksum, got)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	m, clk := newManager(t)

	assert.Nil(t, m.Stats(ctx).MostVersionedTemplate)

	for i := 0; i < 3; i++ {
		clk.Add(time.Minute)
		_, err := m.SaveVersion(ctx, entry("hotel-a", "Hotel A", 100), nil, "", "")
		require.NoError(t, err)
	}
	clk.Add(time.Minute)
	_, err := m.SaveVersion(ctx, entry("hotel-b", "Hotel B", 100), nil, "", "")
	require.NoError(t, err)

	st := m.Stats(ctx)
	assert.Equal(t, 4, st.TotalVersions)
	assert.Equal(t, 2, st.TemplatesWithVersions)
	assert.InDelta(t, 2.0, st.AverageVersionsPerTemplate, 1e-9)
	require.NotNil(t, st.MostVersionedTemplate)
	assert.Equal(t, versions.VersionCount{TemplateID: "hotel-a", Versions: 3}, *st.MostVersionedTemplate)
	assert.Equal(t, "hotel-b", st.RecentVersions[0].TemplateID)
}

func TestExportImport(t *testing.T) {
	ctx := context.Background()
	src, _ := newManager(t)

	_, err := src.SaveVersion(ctx, entry("hotel-a", "Hotel A", 100), nil, "", "")
	require.NoError(t, err)
	_, err = src.SaveVersion(ctx, entry("hotel-a", "Hotel A", 120), nil, "", "")
	require.NoError(t, err)
	_, err = src.SaveVersion(ctx, entry("hotel-b", "Hotel B", 90), nil, "", "")
	require.NoError(t, err)

	doc, err := src.Export(ctx, "hotel-a")
	require.NoError(t, err)
	assert.Equal(t, "hotel-a", doc.TemplateID)
	assert.Equal(t, "1.0", doc.Version)
	assert.Len(t, doc.Versions, 2)

	all, err := src.Export(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "all", all.TemplateID)
	assert.Len(t, all.Versions, 3)

	data, err := json.Marshal(all)
	require.NoError(t, err)

	t.Run("round trip into an empty store", func(t *testing.T) {
		dst, _ := newManager(t)
		n, err := dst.Import(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, 3, n)

		active, ok := dst.ActiveVersion(ctx, "hotel-a")
		require.True(t, ok)
		assert.Equal(t, 2, active.Version)
	})

	t.Run("malformed payload applies nothing", func(t *testing.T) {
		dst, _ := newManager(t)
		_, err := dst.SaveVersion(ctx, entry("hotel-c", "Hotel C", 10), nil, "", "")
		require.NoError(t, err)

		var tampered versions.ExportDocument
		require.NoError(t, json.Unmarshal(data, &tampered))
		tampered.Versions[2].Snapshot.Name = "alterado"
		bad, err := json.Marshal(tampered)
		require.NoError(t, err)

		for _, payload := range [][]byte{[]byte(`{"versions":`), []byte(`{"versions":[],"version":"9"}`), bad} {
			_, err := dst.Import(ctx, payload)
			assert.True(t, errs.Is(err, errs.ErrInvalidImport))
		}
		assert.Equal(t, 1, dst.Stats(ctx).TotalVersions)
	})
}
