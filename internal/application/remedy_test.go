package app

import (
	"testing"

	"github.com/stretchr/testify/require"

	"crop-doctor/internal/domain/entity"
	"crop-doctor/internal/infrastructure/storage"
)

func defaultResolver(t *testing.T) (*RemedyResolver, *entity.RemedyTable) {
	t.Helper()
	table, err := storage.DefaultRemedyTable()
	require.NoError(t, err)
	return NewRemedyResolver(storage.NewStaticRemedySource(table)), table
}

func TestRemedyResolver_ExactMatchForEveryEntry(t *testing.T) {
	r, table := defaultResolver(t)

	for e := range table.Entries() {
		for _, label := range []string{e.Name, "  " + e.Name + " ", e.Key} {
			res := r.Resolve(label)
			require.Equal(t, entity.StageExact, res.Stage, label)
			require.Equal(t, e.Remedy, res.Remedy, label)
		}
	}

	late, _ := table.Lookup("late blight")
	require.Equal(t, late.Remedy, r.ResolveRemedy("Late Blight"))
	require.Equal(t, late.Remedy, r.ResolveRemedy("LATE_BLIGHT"))
}

func TestRemedyResolver_SubstringMatch(t *testing.T) {
	r, table := defaultResolver(t)
	late, _ := table.Lookup("late blight")

	res := r.Resolve("Tomato Late blight")
	require.Equal(t, entity.StageSubstring, res.Stage)
	require.Equal(t, "late blight", res.Key)
	require.Equal(t, late.Remedy, res.Remedy)

	require.Equal(t, late.Remedy, r.ResolveRemedy("Tomato___Late_blight"))
}

func TestRemedyResolver_SubstringTieBreakIsTableOrder(t *testing.T) {
	table, err := entity.NewRemedyTable([]entity.RemedyEntry{
		{Name: "Spot", Remedy: "generic spot"},
		{Name: "Leaf spot", Remedy: "leaf spot"},
	}, nil)
	require.NoError(t, err)
	r := NewRemedyResolver(storage.NewStaticRemedySource(table))

	// Побеждает первый ключ таблицы, хотя "leaf spot" длиннее.
	res := r.Resolve("Bacterial leaf spot")
	require.Equal(t, entity.StageSubstring, res.Stage)
	require.Equal(t, "spot", res.Key)
	require.Equal(t, "generic spot", res.Remedy)
}

func TestRemedyResolver_CategoryFallback(t *testing.T) {
	r, table := defaultResolver(t)

	want := map[string]string{}
	for c := range table.Categories() {
		want[c.Name] = c.Remedy
	}

	cases := map[string]string{
		"unknown fungal infection": "fungal",
		"Fungi damage":             "fungal",
		"bacteria on stem":         "bacterial",
		"Aphid colony":             "pest",
		"winter MOTH larvae":       "pest",
		"insect bites":             "pest",
	}
	for label, category := range cases {
		res := r.Resolve(label)
		require.Equal(t, entity.StageCategory, res.Stage, label)
		require.Equal(t, category, res.Key, label)
		require.Equal(t, want[category], res.Remedy, label)
	}
}

func TestRemedyResolver_CuratedKeyBeatsCategory(t *testing.T) {
	r, table := defaultResolver(t)
	wilt, _ := table.Lookup("bacterial wilt")

	res := r.Resolve("Severe bacterial wilt")
	require.Equal(t, entity.StageSubstring, res.Stage)
	require.Equal(t, wilt.Remedy, res.Remedy)
}

func TestRemedyResolver_Sentinel(t *testing.T) {
	r, _ := defaultResolver(t)

	for _, label := range []string{"xyzzy", "", "   ", "___", "\x00\xff"} {
		res := r.Resolve(label)
		require.Equal(t, entity.StageNone, res.Stage, "%q", label)
		require.Equal(t, entity.NoRemedy, res.Remedy, "%q", label)
		require.False(t, res.Found())
	}
}

func TestRemedyResolver_NilSource(t *testing.T) {
	require.Equal(t, entity.NoRemedy, NewRemedyResolver(nil).ResolveRemedy("Rust"))
	require.Equal(t, entity.NoRemedy, NewRemedyResolver(storage.NewStaticRemedySource(nil)).ResolveRemedy("Rust"))
}

func TestRemedyResolver_Idempotent(t *testing.T) {
	r, _ := defaultResolver(t)
	for _, label := range []string{"Rust", "Tomato Late blight", "fungal thing", "xyzzy"} {
		require.Equal(t, r.Resolve(label), r.Resolve(label))
	}
}
