// Package friends reads the friend-link list shown on /friends/.
package friends

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// Link is one friend site.
type Link struct {
	Name   string `yaml:"name" json:"name"`
	URL    string `yaml:"url" json:"url"`
	Avatar string `yaml:"avatar" json:"avatar"`
	Desc   string `yaml:"desc" json:"desc"`
}

// Load decodes a YAML list of links. A missing file is an empty list.
func Load(path string) ([]Link, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read friends %s: %w", path, err)
	}

	var links []Link
	if err := yaml.Unmarshal(data, &links); err != nil {
		return nil, fmt.Errorf("decode friends %s: %w", path, err)
	}
	return links, nil
}
