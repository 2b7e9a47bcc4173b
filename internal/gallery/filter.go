package gallery

import (
	"fmt"
	"strconv"

	"github.com/vbonduro/lookbook/internal/domain"
)

// All is the filter value that disables a predicate.
const All = "all"

// Filter selects images by setting and hotness. The zero value matches every
// image: an empty Setting or a zero Hotness means "all".
type Filter struct {
	Setting domain.Setting
	Hotness int
}

// ParseFilter reads filter values as they arrive from a query string. Empty
// strings and "all" disable the corresponding predicate.
func ParseFilter(setting, hotness string) (Filter, error) {
	var f Filter
	if setting != "" && setting != All {
		f.Setting = domain.Setting(setting)
	}
	if hotness != "" && hotness != All {
		h, err := strconv.Atoi(hotness)
		if err != nil || h < domain.MinHotness || h > domain.MaxHotness {
			return Filter{}, fmt.Errorf("invalid hotness filter %q", hotness)
		}
		f.Hotness = h
	}
	return f, nil
}

// Apply returns the images matching both predicates in their input order. The
// result is never nil so an empty match is distinguishable from "not computed".
func (f Filter) Apply(images []domain.Image) []domain.Image {
	out := make([]domain.Image, 0, len(images))
	for _, img := range images {
		if f.Setting != "" && img.Setting != f.Setting {
			continue
		}
		if f.Hotness != 0 && img.Hotness != f.Hotness {
			continue
		}
		out = append(out, img)
	}
	return out
}

func (f Filter) IsAll() bool {
	return f.Setting == "" && f.Hotness == 0
}

// SettingValue is the query-string form of the setting predicate.
func (f Filter) SettingValue() string {
	if f.Setting == "" {
		return All
	}
	return string(f.Setting)
}

// HotnessValue is the query-string form of the hotness predicate.
func (f Filter) HotnessValue() string {
	if f.Hotness == 0 {
		return All
	}
	return strconv.Itoa(f.Hotness)
}

// Counts holds per-option image counts shown next to the filter buttons. They
// are taken over the whole catalog, not the filtered result.
type Counts struct {
	All       int
	BySetting map[domain.Setting]int
	ByHotness map[int]int
}

func CountImages(images []domain.Image) Counts {
	c := Counts{
		All:       len(images),
		BySetting: make(map[domain.Setting]int),
		ByHotness: make(map[int]int, domain.MaxHotness),
	}
	for h := domain.MinHotness; h <= domain.MaxHotness; h++ {
		c.ByHotness[h] = 0
	}
	for _, img := range images {
		c.BySetting[img.Setting]++
		c.ByHotness[img.Hotness]++
	}
	return c
}
