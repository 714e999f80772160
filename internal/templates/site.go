package templates

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"
)

// Site is injected into every template as "site".
type Site struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	RSSCount    int    `json:"rss_count"`
	RSSLength   int    `json:"rss_length"`
	Priority    string `json:"priority"`
	Keywords    string `json:"keywords"`
	Description string `json:"description"`
	Author      string `json:"author"`
	Menus       []Menu `json:"menus"`
	Year        int    `json:"year"`
}

// Menu is one navigation entry from [[menu.main]].
type Menu struct {
	URL        string `toml:"url" json:"url"`
	Name       string `toml:"name" json:"name"`
	Weight     int    `toml:"weight" json:"weight"`
	Identifier string `toml:"identifier" json:"identifier"`
}

type siteFile struct {
	Menu struct {
		Main []Menu `toml:"main"`
	} `toml:"menu"`
}

// LoadMenus reads the main menu from a TOML file, ordered by weight.
// A missing file yields no menus. Entries without a url or name are skipped.
func LoadMenus(path string) ([]Menu, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read menu config %s: %w", path, err)
	}

	var cfg siteFile
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode menu config %s: %w", path, err)
	}

	menus := slices.DeleteFunc(cfg.Menu.Main, func(m Menu) bool {
		return m.URL == "" || m.Name == ""
	})
	slices.SortStableFunc(menus, func(a, b Menu) int { return a.Weight - b.Weight })
	return menus, nil
}
