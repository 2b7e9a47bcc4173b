package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vbonduro/lookbook/internal/domain"
)

//go:embed default.yaml
var defaultCatalog []byte

type styleEntry struct {
	Key     string `yaml:"key"`
	Label   string `yaml:"label"`
	LabelDE string `yaml:"label_de"`
	Color   string `yaml:"color"`
}

type settingEntry struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

type imageEntry struct {
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title"`
	Src     string   `yaml:"src"`
	Style   string   `yaml:"style"`
	Setting string   `yaml:"setting"`
	Hotness int      `yaml:"hotness"`
	Tags    []string `yaml:"tags"`
}

type file struct {
	Styles   []styleEntry   `yaml:"styles"`
	Settings []settingEntry `yaml:"settings"`
	Images   []imageEntry   `yaml:"images"`
}

// Catalog is the read-only image collection plus the style and setting lookup
// tables. Slice order in the source file is significant: image order is the
// catalog order used to break ties, style order is the order of the breakdown.
type Catalog struct {
	images   []domain.Image
	byID     map[string]int
	styles   []domain.StyleInfo
	styleIdx map[domain.Style]int
	settings []domain.SettingInfo
}

// Load reads a catalog from path. An empty path selects the embedded default.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Parse(defaultCatalog)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	return Parse(data)
}

// Default returns the embedded catalog. It panics if the embedded file is invalid.
func Default() *Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		byID:     make(map[string]int, len(f.Images)),
		styleIdx: make(map[domain.Style]int, len(f.Styles)),
	}

	for _, s := range f.Styles {
		style := domain.Style(s.Key)
		if s.Key == "" {
			return nil, fmt.Errorf("style without key")
		}
		if _, dup := c.styleIdx[style]; dup {
			return nil, fmt.Errorf("duplicate style %q", s.Key)
		}
		c.styleIdx[style] = len(c.styles)
		c.styles = append(c.styles, domain.StyleInfo{
			Style:   style,
			Label:   s.Label,
			LabelDE: s.LabelDE,
			Color:   s.Color,
		})
	}

	knownSettings := make(map[domain.Setting]bool, len(f.Settings))
	for _, s := range f.Settings {
		setting := domain.Setting(s.Key)
		if s.Key == "" || s.Key == "all" {
			return nil, fmt.Errorf("invalid setting key %q", s.Key)
		}
		if knownSettings[setting] {
			return nil, fmt.Errorf("duplicate setting %q", s.Key)
		}
		knownSettings[setting] = true
		c.settings = append(c.settings, domain.SettingInfo{Setting: setting, Label: s.Label})
	}

	for _, e := range f.Images {
		if e.ID == "" {
			return nil, fmt.Errorf("image without id")
		}
		if _, dup := c.byID[e.ID]; dup {
			return nil, fmt.Errorf("duplicate image id %q", e.ID)
		}
		if _, ok := c.styleIdx[domain.Style(e.Style)]; !ok {
			return nil, fmt.Errorf("image %q: unknown style %q", e.ID, e.Style)
		}
		if !knownSettings[domain.Setting(e.Setting)] {
			return nil, fmt.Errorf("image %q: unknown setting %q", e.ID, e.Setting)
		}
		if e.Hotness < domain.MinHotness || e.Hotness > domain.MaxHotness {
			return nil, fmt.Errorf("image %q: hotness %d out of range", e.ID, e.Hotness)
		}
		c.byID[e.ID] = len(c.images)
		c.images = append(c.images, domain.Image{
			ID:      e.ID,
			Title:   e.Title,
			Src:     e.Src,
			Style:   domain.Style(e.Style),
			Setting: domain.Setting(e.Setting),
			Hotness: e.Hotness,
			Tags:    append([]string(nil), e.Tags...),
		})
	}

	return c, nil
}

// Images returns the catalog in catalog order. Callers may not modify the result.
func (c *Catalog) Images() []domain.Image {
	return c.images
}

func (c *Catalog) Len() int {
	return len(c.images)
}

func (c *Catalog) Image(id string) (domain.Image, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Image{}, false
	}
	return c.images[i], true
}

func (c *Catalog) Contains(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Styles returns the style table in catalog style order.
func (c *Catalog) Styles() []domain.StyleInfo {
	return c.styles
}

func (c *Catalog) Style(s domain.Style) domain.StyleInfo {
	if i, ok := c.styleIdx[s]; ok {
		return c.styles[i]
	}
	return domain.StyleInfo{Style: s, Label: string(s), LabelDE: string(s), Color: "#64748B"}
}

func (c *Catalog) Settings() []domain.SettingInfo {
	return c.settings
}

// HasSetting reports whether s is one of the catalog's settings.
func (c *Catalog) HasSetting(s domain.Setting) bool {
	for _, info := range c.settings {
		if info.Setting == s {
			return true
		}
	}
	return false
}
