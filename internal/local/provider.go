package local

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"

	"golang.org/x/text/language"

	"github.com/Alfex4936/winspell/internal/service"
)

// SystemDictDirs are searched, after $DICPATH, when no dictionary
// directory is configured.
var SystemDictDirs = []string{
	"/usr/share/hunspell",
	"/usr/local/share/hunspell",
	"/usr/share/myspell",
	"/usr/share/myspell/dicts",
	"/Library/Spelling",
}

// Provider is the hunspell checker factory. It implements service.Provider.
type Provider struct {
	dirs []string
}

var _ service.Provider = (*Provider)(nil)

// NewProvider returns a Provider reading dictionaries from dictDir, or from
// $DICPATH and SystemDictDirs when dictDir is empty.
func NewProvider(dictDir string) *Provider {
	if dictDir != "" {
		return &Provider{dirs: []string{dictDir}}
	}
	var dirs []string
	if env := os.Getenv("DICPATH"); env != "" {
		dirs = append(dirs, filepath.SplitList(env)...)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, "Library", "Spelling"))
	}
	return &Provider{dirs: append(dirs, SystemDictDirs...)}
}

// dictionaryName maps a locale tag to a hunspell dictionary name:
// "en-US" → "en_US".
func dictionaryName(locale string) string {
	return strings.ReplaceAll(locale, "-", "_")
}

// dictionaryTag maps a dictionary name back to a BCP 47 tag, or returns
// the name unchanged when it is not a valid tag.
func dictionaryTag(name string) string {
	tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
	if err != nil {
		return name
	}
	return tag.String()
}

func (p *Provider) find(locale string) (dir, name string, ok bool) {
	name = dictionaryName(locale)
	for _, d := range p.dirs {
		aff := filepath.Join(d, name+".aff")
		dic := filepath.Join(d, name+".dic")
		if fileExists(aff) && fileExists(dic) {
			return d, name, true
		}
	}
	return "", "", false
}

func (p *Provider) SupportedLanguages() ([]string, error) {
	var tags []string
	for _, d := range p.dirs {
		matches, err := filepath.Glob(filepath.Join(d, "*.dic"))
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			name := strings.TrimSuffix(filepath.Base(m), ".dic")
			if !fileExists(filepath.Join(d, name+".aff")) {
				continue
			}
			tags = append(tags, dictionaryTag(name))
		}
	}
	slices.Sort(tags)
	return slices.Compact(tags), nil
}

// IsSupported reports whether a dictionary for locale exists. It fails when
// the hunspell binary is not installed at all.
func (p *Provider) IsSupported(locale string) (bool, error) {
	if _, err := exec.LookPath("hunspell"); err != nil {
		return false, fmt.Errorf("local: %w", err)
	}
	_, _, ok := p.find(locale)
	return ok, nil
}

func (p *Provider) CreateSpellChecker(locale string) (service.Checker, error) {
	dir, name, ok := p.find(locale)
	if !ok {
		return nil, fmt.Errorf("local: no hunspell dictionary for %q", locale)
	}
	h, err := New(dir, name)
	if err != nil {
		return nil, err
	}
	h.tag = locale
	return h, nil
}

func (p *Provider) Release() {}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
