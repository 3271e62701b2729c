package local

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alfex4936/winspell/internal/service"
)

// stubHunspell speaks the ispell -a protocol: "bitess" has suggestions,
// "zzxq" has none, "@word" accepts word and everything else is correct.
// Every "^" request is appended to requests.log next to the script.
const stubHunspell = `#!/bin/sh
log="$(dirname "$0")/requests.log"
ignored=" "
echo "@(#) International Ispell Version 3.2.06 (but really Hunspell 1.7.2)"
while IFS= read -r line; do
  case "$line" in
    @*) ignored="$ignored${line#@} " ;;
    ^*)
      w="${line#^}"
      echo "$w" >> "$log"
      case "$ignored" in
        *" $w "*) printf '*\n\n'; continue ;;
      esac
      case "$w" in
        bitess) printf '& bitess 2 0: bites, bitesize\n\n' ;;
        zzxq) printf '# zzxq 0\n\n' ;;
        *) printf '*\n\n' ;;
      esac
      ;;
  esac
done
`

// withStubHunspell puts the stub first on PATH and returns the request
// log path.
func withStubHunspell(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("stub hunspell is a shell script")
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hunspell"), []byte(stubHunspell), 0o755))
	t.Setenv("PATH", dir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return filepath.Join(dir, "requests.log")
}

func requests(t *testing.T, log string) []string {
	t.Helper()
	data, err := os.ReadFile(log)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Fields(string(data))
}

func collect(t *testing.T, enum service.ErrorEnum) []entry {
	t.Helper()
	defer enum.Release()
	var got []entry
	for {
		e, ok := enum.Next()
		if !ok {
			return got
		}
		got = append(got, *e.(*entry))
	}
}

func drain(t *testing.T, strs service.StringEnum) []string {
	t.Helper()
	defer strs.Release()
	var out []string
	for {
		s, ok := strs.Next()
		if !ok {
			return out
		}
		v, err := service.Take(s)
		require.NoError(t, err)
		out = append(out, v)
	}
}

func TestHunspellPipe_CheckAndSuggest(t *testing.T) {
	log := withStubHunspell(t)
	h, err := New("", "en_US")
	require.NoError(t, err)
	defer h.Release()

	got := collect(t, mustCheck(t, h, "the the dust bitess zzxq"))
	assert.Equal(t, []entry{
		{start: 3, length: 4, action: service.ActionDelete},
		{start: 13, length: 6, action: service.ActionGetSuggestions},
		{start: 20, length: 4, action: service.ActionGetSuggestions},
	}, got)

	strs, err := h.Suggest("bitess")
	require.NoError(t, err)
	assert.Equal(t, []string{"bites", "bitesize"}, drain(t, strs))

	strs, err = h.Suggest("zzxq")
	require.NoError(t, err)
	assert.Empty(t, drain(t, strs))

	// flagged words are answered from the check, not asked again
	assert.Equal(t, []string{"the", "dust", "bitess", "zzxq"}, requests(t, log))

	strs, err = h.Suggest("dust")
	require.NoError(t, err)
	assert.Empty(t, drain(t, strs))
	assert.Len(t, requests(t, log), 5)
}

func TestHunspellPipe_Ignore(t *testing.T) {
	withStubHunspell(t)
	h, err := New("", "en_US")
	require.NoError(t, err)
	defer h.Release()

	require.NoError(t, h.Ignore("bitess"))
	assert.Empty(t, collect(t, mustCheck(t, h, "bitess")))
}

func TestHunspellPipe_IgnoreRejectsNonWords(t *testing.T) {
	withStubHunspell(t)
	h, err := New("", "en_US")
	require.NoError(t, err)
	defer h.Release()

	for _, w := range []string{"", "ok\nbitess", "x\n*foo\n#", "two words", "tab\tword", "cr\r", "'quoted'", "dust!"} {
		assert.ErrorIs(t, h.Ignore(w), ErrInvalidWord, "%q", w)
		_, err := h.Suggest(w)
		assert.ErrorIs(t, err, ErrInvalidWord, "%q", w)
	}

	// the pipe stays in step after rejected input
	assert.Empty(t, collect(t, mustCheck(t, h, "hello world")))
	assert.Len(t, collect(t, mustCheck(t, h, "hello bitess")), 1)
}

func TestHunspellPipe_Release(t *testing.T) {
	withStubHunspell(t)
	h, err := New("", "en_US")
	require.NoError(t, err)

	h.Release()
	h.Release()
	_, err = h.ComprehensiveCheck("x")
	assert.ErrorIs(t, err, ErrClosed)
	_, err = h.Suggest("x")
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, h.Ignore("x"), ErrClosed)
}

func mustCheck(t *testing.T, h *Hunspell, text string) service.ErrorEnum {
	t.Helper()
	enum, err := h.ComprehensiveCheck(text)
	require.NoError(t, err)
	return enum
}
