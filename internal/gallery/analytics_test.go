package gallery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/lookbook/internal/domain"
)

type testCatalog struct {
	images []domain.Image
	styles []domain.StyleInfo
}

func (c testCatalog) Images() []domain.Image     { return c.images }
func (c testCatalog) Styles() []domain.StyleInfo { return c.styles }

var testStyles = []domain.StyleInfo{
	{Style: domain.StyleConservative, Label: "Conservative", Color: "#111111"},
	{Style: domain.StyleClean, Label: "Clean", Color: "#222222"},
	{Style: domain.StyleBusiness, Label: "Business", Color: "#333333"},
	{Style: domain.StyleElegant, Label: "Elegant", Color: "#444444"},
	{Style: domain.StyleHot, Label: "Hot", Color: "#555555"},
}

func testImages() []domain.Image {
	return []domain.Image{
		{ID: "a", Style: domain.StyleElegant, Setting: domain.SettingStudioGrey, Hotness: 3},
		{ID: "b", Style: domain.StyleBusiness, Setting: domain.SettingLuxuryInterior, Hotness: 3},
		{ID: "c", Style: domain.StyleElegant, Setting: domain.SettingStudioGrey, Hotness: 5},
		{ID: "d", Style: domain.StyleHot, Setting: domain.SettingStudioGrey, Hotness: 3},
		{ID: "e", Style: domain.StyleClean, Setting: domain.SettingLuxuryInterior, Hotness: 1},
	}
}

func ids(images []domain.Image) []string {
	out := make([]string, 0, len(images))
	for _, img := range images {
		out = append(out, img.ID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	images := testImages()

	tests := []struct {
		name    string
		setting string
		hotness string
		want    []string
	}{
		{name: "all", setting: "all", hotness: "all", want: []string{"a", "b", "c", "d", "e"}},
		{name: "empty values mean all", want: []string{"a", "b", "c", "d", "e"}},
		{name: "setting only", setting: "luxury-interior", hotness: "all", want: []string{"b", "e"}},
		{name: "hotness only", setting: "all", hotness: "3", want: []string{"a", "b", "d"}},
		{name: "both", setting: "studio-grey", hotness: "3", want: []string{"a", "d"}},
		{name: "no match", setting: "luxury-interior", hotness: "5", want: []string{}},
		{name: "unknown setting", setting: "beach", hotness: "all", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := ParseFilter(tt.setting, tt.hotness)
			require.NoError(t, err)
			got := f.Apply(images)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterPreservesInputOrder(t *testing.T) {
	images := testImages()
	reversed := make([]domain.Image, len(images))
	for i, img := range images {
		reversed[len(images)-1-i] = img
	}

	got := Filter{Setting: domain.SettingStudioGrey}.Apply(reversed)
	assert.Equal(t, []string{"d", "c", "a"}, ids(got))
}

func TestParseFilterRejectsBadHotness(t *testing.T) {
	for _, h := range []string{"0", "6", "hot", "-1"} {
		_, err := ParseFilter("all", h)
		assert.Error(t, err, h)
	}
}

func TestFilterValues(t *testing.T) {
	f := Filter{}
	assert.True(t, f.IsAll())
	assert.Equal(t, "all", f.SettingValue())
	assert.Equal(t, "all", f.HotnessValue())

	f = Filter{Setting: domain.SettingStudioGrey, Hotness: 2}
	assert.False(t, f.IsAll())
	assert.Equal(t, "studio-grey", f.SettingValue())
	assert.Equal(t, "2", f.HotnessValue())
}

func TestCountImages(t *testing.T) {
	c := CountImages(testImages())
	assert.Equal(t, 5, c.All)
	assert.Equal(t, 3, c.BySetting[domain.SettingStudioGrey])
	assert.Equal(t, 2, c.BySetting[domain.SettingLuxuryInterior])
	assert.Equal(t, 1, c.ByHotness[1])
	assert.Equal(t, 0, c.ByHotness[2])
	assert.Equal(t, 3, c.ByHotness[3])
	assert.Len(t, c.ByHotness, 5)
}

func TestProgress(t *testing.T) {
	assert.Equal(t, 0, Progress(0, 0))
	assert.Equal(t, 0, Progress(3, 0))
	assert.Equal(t, 0, Progress(0, 10))
	assert.Equal(t, 33, Progress(1, 3))
	assert.Equal(t, 67, Progress(2, 3))
	assert.Equal(t, 50, Progress(1, 2))
	assert.Equal(t, 100, Progress(10, 10))
}

func TestTopRatedBreaksTiesByCatalogOrder(t *testing.T) {
	images := []domain.Image{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	snap := NewSnapshot(map[string]int{"a": 5, "b": 3, "c": 5, "d": 4}, nil)

	top := TopRated(images, snap, 3)
	require.Len(t, top, 3)
	assert.Equal(t, "a", top[0].ID)
	assert.Equal(t, "c", top[1].ID)
	assert.Equal(t, "d", top[2].ID)
	assert.Equal(t, 4, top[2].Rating)
}

func TestTopRatedFewerThanN(t *testing.T) {
	images := []domain.Image{{ID: "a"}, {ID: "b"}}
	snap := NewSnapshot(map[string]int{"b": 2}, nil)

	top := TopRated(images, snap, 3)
	require.Len(t, top, 1)
	assert.Equal(t, "b", top[0].ID)

	assert.Empty(t, TopRated(images, NewSnapshot(nil, nil), 3))
}

func TestStyleBreakdown(t *testing.T) {
	images := testImages()
	snap := NewSnapshot(map[string]int{"a": 5, "c": 2, "b": 4, "d": 4, "e": 1}, nil)

	got := StyleBreakdown(testStyles, images, snap)
	require.Len(t, got, 4)

	// Elegant 1/2, Business 1/1, Hot 1/1 tie on one high rating and keep table
	// order; Clean has none.
	assert.Equal(t, domain.StyleBusiness, got[0].Style)
	assert.Equal(t, domain.StyleElegant, got[1].Style)
	assert.Equal(t, domain.StyleHot, got[2].Style)
	assert.Equal(t, domain.StyleClean, got[3].Style)

	assert.Equal(t, 1, got[1].HighRatings)
	assert.Equal(t, 2, got[1].TotalRated)
	assert.InDelta(t, 0.5, got[1].Ratio(), 1e-9)
	assert.Equal(t, 50, got[1].Percent())
	assert.Equal(t, 0, got[3].HighRatings)
	assert.Equal(t, 0, got[3].Percent())
}

func TestStyleBreakdownExcludesUnratedStyles(t *testing.T) {
	snap := NewSnapshot(map[string]int{"a": 4}, nil)

	got := StyleBreakdown(testStyles, testImages(), snap)
	require.Len(t, got, 1)
	assert.Equal(t, domain.StyleElegant, got[0].Style)

	assert.Empty(t, StyleBreakdown(testStyles, testImages(), NewSnapshot(nil, nil)))
	assert.Zero(t, StyleStat{}.Ratio())
}

func TestChartDataByRating(t *testing.T) {
	snap := NewSnapshot(map[string]int{"a": 5, "b": 5, "c": 1}, nil)

	points := ChartData(ChartByRating, testStyles, testImages(), snap)
	require.Len(t, points, 5)
	assert.Equal(t, "1★", points[0].Label)
	assert.Equal(t, 1, points[0].Count)
	assert.Equal(t, 0, points[2].Count)
	assert.Equal(t, 2, points[4].Count)
}

func TestChartDataByStyle(t *testing.T) {
	snap := NewSnapshot(map[string]int{"a": 5, "c": 2, "b": 4}, nil)

	points := ChartData(ChartByStyle, testStyles, testImages(), snap)
	require.Len(t, points, 5)
	assert.Equal(t, "conservative", points[0].Key)
	assert.Equal(t, 0, points[0].Count)
	assert.Zero(t, points[0].Average)

	elegant := points[3]
	assert.Equal(t, "Elegant", elegant.Label)
	assert.Equal(t, 2, elegant.Count)
	assert.InDelta(t, 3.5, elegant.Average, 1e-9)
	assert.Equal(t, "#444444", elegant.Color)
}

func TestParseChartMode(t *testing.T) {
	m, err := ParseChartMode("")
	require.NoError(t, err)
	assert.Equal(t, ChartByRating, m)

	m, err = ParseChartMode("style")
	require.NoError(t, err)
	assert.Equal(t, ChartByStyle, m)

	_, err = ParseChartMode("pie")
	assert.Error(t, err)
}

func TestCompute(t *testing.T) {
	cat := testCatalog{images: testImages(), styles: testStyles}

	locked := Compute(cat, NewSnapshot(nil, nil), ChartByRating)
	assert.False(t, locked.Unlocked)
	assert.False(t, locked.AllRated)
	assert.Equal(t, 0, locked.Progress)
	assert.Equal(t, 3, locked.RemainingForInsights)
	assert.Empty(t, locked.TopRated)

	some := Compute(cat, NewSnapshot(map[string]int{"a": 5, "b": 2}, nil), ChartByRating)
	assert.True(t, some.Unlocked)
	assert.False(t, some.InsightsReady)
	assert.Equal(t, 1, some.RemainingForInsights)
	assert.Equal(t, 40, some.Progress)

	all := Compute(cat, NewSnapshot(map[string]int{"a": 5, "b": 2, "c": 3, "d": 4, "e": 1}, nil), ChartByStyle)
	assert.True(t, all.AllRated)
	assert.True(t, all.InsightsReady)
	assert.Equal(t, 0, all.RemainingForInsights)
	assert.Equal(t, 100, all.Progress)
	assert.Len(t, all.TopRated, 3)
	assert.Len(t, all.Chart, 5)

	empty := Compute(testCatalog{styles: testStyles}, NewSnapshot(nil, nil), ChartByRating)
	assert.Equal(t, 0, empty.Progress)
	assert.False(t, empty.AllRated)
}

func TestComputeTracksSourceAfterMutation(t *testing.T) {
	cat := testCatalog{images: testImages(), styles: testStyles}
	s := NewSession("s1")

	before := Compute(cat, s.Snapshot(), ChartByRating)
	require.True(t, s.Rate("a", 4))
	after := Compute(cat, s.Snapshot(), ChartByRating)

	assert.Equal(t, 0, before.TotalRatings)
	assert.Equal(t, 1, after.TotalRatings)
	assert.Equal(t, 20, after.Progress)
	require.Len(t, after.StyleBreakdown, 1)
	assert.Equal(t, 1, after.StyleBreakdown[0].HighRatings)
}

func TestComputeIgnoresRatingsOutsideCatalog(t *testing.T) {
	cat := testCatalog{images: testImages()[:1], styles: testStyles}
	s := restoreSession("s1", State{Ratings: map[string]int{"a": 5, "gone1": 4, "gone2": 3}})

	a := Compute(cat, s.Snapshot(), ChartByRating)
	assert.Equal(t, 1, a.TotalRatings)
	assert.Equal(t, 100, a.Progress)
	assert.True(t, a.AllRated)
	assert.True(t, a.Unlocked)
	assert.False(t, a.InsightsReady)
	assert.Equal(t, 2, a.RemainingForInsights)
	require.Len(t, a.TopRated, 1)
	assert.Equal(t, "a", a.TopRated[0].ID)
}
