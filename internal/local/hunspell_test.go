package local

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/winspell/internal/service"
)

func TestTokenize_UTF16Offsets(t *testing.T) {
	toks := tokenize("😀 don't 'quoted' 한글")
	require.Len(t, toks, 3)

	assert.Equal(t, wordToken{word: "don't", start: 3, end: 8}, toks[0])
	assert.Equal(t, wordToken{word: "quoted", start: 10, end: 16}, toks[1])
	assert.Equal(t, wordToken{word: "한글", start: 18, end: 20}, toks[2])
}

func TestTokenize_Empty(t *testing.T) {
	assert.Empty(t, tokenize(""))
	assert.Empty(t, tokenize(" ... ' "))
}

func TestDictionaryNames(t *testing.T) {
	assert.Equal(t, "en_US", dictionaryName("en-US"))
	assert.Equal(t, "en-US", dictionaryTag("en_US"))
	assert.Equal(t, "de-DE", dictionaryTag("de_DE"))
	assert.Equal(t, "not a tag", dictionaryTag("not a tag"))
}

func writeDict(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".aff"), []byte("SET UTF-8\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".dic"), []byte("1\nhello\n"), 0o644))
}

func TestProvider_SupportedLanguages(t *testing.T) {
	dir := t.TempDir()
	writeDict(t, dir, "en_US")
	writeDict(t, dir, "ko_KR")
	// .dic without .aff is ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "fr_FR.dic"), []byte("0\n"), 0o644))

	p := NewProvider(dir)
	tags, err := p.SupportedLanguages()
	require.NoError(t, err)
	assert.Equal(t, []string{"en-US", "ko-KR"}, tags)

	_, name, ok := p.find("ko-KR")
	assert.True(t, ok)
	assert.Equal(t, "ko_KR", name)

	_, _, ok = p.find("fr-FR")
	assert.False(t, ok)
}

func TestProvider_CreateUnknownLocale(t *testing.T) {
	_, err := NewProvider(t.TempDir()).CreateSpellChecker("xx-XX")
	assert.Error(t, err)
}

// requireHunspell returns a provider for the system en_US dictionary or
// skips the test.
func requireHunspell(t *testing.T) *Provider {
	t.Helper()
	if _, err := exec.LookPath("hunspell"); err != nil {
		t.Skip("hunspell not installed")
	}
	p := NewProvider("")
	if ok, err := p.IsSupported("en-US"); err != nil || !ok {
		t.Skip("no en_US hunspell dictionary")
	}
	return p
}

func TestHunspell_ComprehensiveCheck(t *testing.T) {
	p := requireHunspell(t)
	c, err := p.CreateSpellChecker("en-US")
	require.NoError(t, err)
	defer c.Release()

	enum, err := c.ComprehensiveCheck("the the dust bitess")
	require.NoError(t, err)
	defer enum.Release()

	var got []entry
	for {
		e, ok := enum.Next()
		if !ok {
			break
		}
		got = append(got, *e.(*entry))
	}
	assert.Equal(t, []entry{
		{start: 3, length: 4, action: service.ActionDelete},
		{start: 13, length: 6, action: service.ActionGetSuggestions},
	}, got)

	strs, err := c.Suggest("bitess")
	require.NoError(t, err)
	s, ok := strs.Next()
	require.True(t, ok)
	v, err := service.Take(s)
	require.NoError(t, err)
	assert.NotEmpty(t, v)
}

func TestHunspell_IgnoreAndRelease(t *testing.T) {
	p := requireHunspell(t)
	c, err := p.CreateSpellChecker("en-US")
	require.NoError(t, err)

	require.NoError(t, c.Ignore("bitess"))
	enum, err := c.ComprehensiveCheck("bitess")
	require.NoError(t, err)
	_, ok := enum.Next()
	assert.False(t, ok)

	c.Release()
	c.Release()
	_, err = c.ComprehensiveCheck("x")
	assert.ErrorIs(t, err, ErrClosed)
}
