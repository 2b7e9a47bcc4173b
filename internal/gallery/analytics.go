package gallery

import (
	"fmt"
	"math"
	"sort"

	"github.com/vbonduro/lookbook/internal/domain"
)

const (
	// TopRatedCount is how many images the top-rated panel lists.
	TopRatedCount = 3
	// HighRating is the smallest rating counted as a high rating.
	HighRating = 4
	// InsightsThreshold is the number of ratings that unlocks the detail panels.
	InsightsThreshold = 3
)

// Catalog is what the aggregations need to know about the image collection.
type Catalog interface {
	Images() []domain.Image
	Styles() []domain.StyleInfo
}

// Progress returns the rated share of the catalog as a whole percentage.
func Progress(totalRatings, totalImages int) int {
	if totalImages <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(totalRatings) / float64(totalImages)))
}

type RatedImage struct {
	domain.Image
	Rating int `json:"rating"`
}

// TopRated returns up to n rated images ordered by rating, highest first. Equal
// ratings keep catalog order.
func TopRated(images []domain.Image, snap Snapshot, n int) []RatedImage {
	rated := make([]RatedImage, 0, snap.TotalRatings())
	for _, img := range images {
		if v, ok := snap.Rating(img.ID); ok {
			rated = append(rated, RatedImage{Image: img, Rating: v})
		}
	}
	sort.SliceStable(rated, func(i, j int) bool {
		return rated[i].Rating > rated[j].Rating
	})
	if n >= 0 && len(rated) > n {
		rated = rated[:n]
	}
	return rated
}

type StyleStat struct {
	domain.StyleInfo
	HighRatings int `json:"highRatings"`
	TotalRated  int `json:"totalRated"`
}

// Ratio is HighRatings/TotalRated, or 0 when nothing is rated.
func (s StyleStat) Ratio() float64 {
	if s.TotalRated == 0 {
		return 0
	}
	return float64(s.HighRatings) / float64(s.TotalRated)
}

// Percent is Ratio as a whole percentage.
func (s StyleStat) Percent() int {
	return int(math.Round(100 * s.Ratio()))
}

// StyleBreakdown counts rated and highly rated images per style. Styles without
// any rated image are left out. The result is ordered by HighRatings, highest
// first, with ties in style table order.
func StyleBreakdown(styles []domain.StyleInfo, images []domain.Image, snap Snapshot) []StyleStat {
	out := make([]StyleStat, 0, len(styles))
	for _, style := range styles {
		stat := StyleStat{StyleInfo: style}
		for _, img := range images {
			if img.Style != style.Style {
				continue
			}
			v, ok := snap.Rating(img.ID)
			if !ok {
				continue
			}
			stat.TotalRated++
			if v >= HighRating {
				stat.HighRatings++
			}
		}
		if stat.TotalRated > 0 {
			out = append(out, stat)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].HighRatings > out[j].HighRatings
	})
	return out
}

type ChartMode string

const (
	ChartByRating ChartMode = "rating"
	ChartByStyle  ChartMode = "style"
)

func ParseChartMode(s string) (ChartMode, error) {
	switch ChartMode(s) {
	case "", ChartByRating:
		return ChartByRating, nil
	case ChartByStyle:
		return ChartByStyle, nil
	default:
		return "", fmt.Errorf("unknown chart mode %q", s)
	}
}

// ChartPoint is one bar of the results chart.
type ChartPoint struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Average float64 `json:"average"`
	Color   string  `json:"color"`
}

const ratingColor = "#F59E0B"

// ChartData aggregates ratings for the results chart. By rating it yields one
// point per star value; by style one point per style in table order, with the
// number of rated images and their mean rating.
func ChartData(mode ChartMode, styles []domain.StyleInfo, images []domain.Image, snap Snapshot) []ChartPoint {
	if mode == ChartByStyle {
		points := make([]ChartPoint, 0, len(styles))
		for _, style := range styles {
			p := ChartPoint{Key: string(style.Style), Label: style.Label, Color: style.Color}
			sum := 0
			for _, img := range images {
				if img.Style != style.Style {
					continue
				}
				if v, ok := snap.Rating(img.ID); ok {
					p.Count++
					sum += v
				}
			}
			if p.Count > 0 {
				p.Average = math.Round(10*float64(sum)/float64(p.Count)) / 10
			}
			points = append(points, p)
		}
		return points
	}

	points := make([]ChartPoint, 0, domain.MaxRating)
	for v := domain.MinRating; v <= domain.MaxRating; v++ {
		points = append(points, ChartPoint{
			Key:     fmt.Sprintf("%d", v),
			Label:   fmt.Sprintf("%d★", v),
			Average: float64(v),
			Color:   ratingColor,
		})
	}
	for _, img := range images {
		if v, ok := snap.Rating(img.ID); ok {
			points[v-domain.MinRating].Count++
		}
	}
	return points
}

// Analytics bundles every derived view of one snapshot.
type Analytics struct {
	TotalRatings         int          `json:"totalRatings"`
	TotalImages          int          `json:"totalImages"`
	Progress             int          `json:"progress"`
	Unlocked             bool         `json:"unlocked"`
	AllRated             bool         `json:"allRated"`
	InsightsReady        bool         `json:"insightsReady"`
	RemainingForInsights int          `json:"remainingForInsights"`
	TopRated             []RatedImage `json:"topRated"`
	StyleBreakdown       []StyleStat  `json:"styleBreakdown"`
	Chart                []ChartPoint `json:"chart"`
}

// Compute derives the analytics of snap. Nothing is cached: every call starts
// from the snapshot and the catalog. Ratings of images no longer in the catalog
// are not counted.
func Compute(c Catalog, snap Snapshot, mode ChartMode) Analytics {
	images := c.Images()
	total := 0
	for _, img := range images {
		if snap.IsRated(img.ID) {
			total++
		}
	}
	a := Analytics{
		TotalRatings:   total,
		TotalImages:    len(images),
		Progress:       Progress(total, len(images)),
		Unlocked:       total > 0,
		AllRated:       len(images) > 0 && total == len(images),
		InsightsReady:  total >= InsightsThreshold,
		TopRated:       TopRated(images, snap, TopRatedCount),
		StyleBreakdown: StyleBreakdown(c.Styles(), images, snap),
		Chart:          ChartData(mode, c.Styles(), images, snap),
	}
	if !a.InsightsReady {
		a.RemainingForInsights = InsightsThreshold - total
	}
	return a
}
