package winspell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/Alfex4936/winspell/internal/util"
)

// Dict is a user dictionary for protecting specific terms from spell-check.
// Entries may hold several words ("Cogent Core"); each word counts.
type Dict struct {
	Words []string `json:"words" yaml:"words" toml:"words"`
}

// NewDict creates a Dict from the given words.
func NewDict(words ...string) *Dict {
	return &Dict{Words: words}
}

// LoadDict reads a dictionary file of the form {"words": [...]}. The format
// follows the extension: .json, .yaml/.yml or .toml.
func LoadDict(path string) (*Dict, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Dict
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = util.JSON.Unmarshal(data, &d)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &d)
	case ".toml":
		err = toml.Unmarshal(data, &d)
	default:
		return nil, fmt.Errorf("winspell: unknown dictionary format %q", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("winspell: parse %s: %w", path, err)
	}
	return &d, nil
}

// Len returns the number of entries. A nil Dict is empty.
func (d *Dict) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Words)
}

// Merge returns a Dict holding the entries of d and others.
func (d *Dict) Merge(others ...*Dict) *Dict {
	out := &Dict{}
	for _, x := range append([]*Dict{d}, others...) {
		if x != nil {
			out.Words = append(out.Words, x.Words...)
		}
	}
	return out
}

// Contains reports whether word matches an entry, or one word of a
// multi-word entry, ignoring case.
func (d *Dict) Contains(word string) bool {
	if d == nil || word == "" {
		return false
	}
	for _, entry := range d.Words {
		entry = strings.TrimSpace(entry)
		if strings.EqualFold(entry, word) {
			return true
		}
		for _, w := range strings.Fields(entry) {
			if strings.EqualFold(w, word) {
				return true
			}
		}
	}
	return false
}
