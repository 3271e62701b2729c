// Package local provides the spell-checking service on hosts without the
// Windows Spell Checking API, backed by the hunspell binary.
// It communicates via the ispell-compatible pipe protocol (-a flag) and
// reports findings with the same UTF-16 offsets the Windows service uses.
package local

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"unicode"
	"unicode/utf16"

	"github.com/Alfex4936/winspell/internal/service"
)

var (
	// ErrClosed is returned by a Hunspell whose process has been released.
	ErrClosed = errors.New("local: hunspell process released")

	// ErrInvalidWord is returned for a word that is not a single token,
	// e.g. one containing whitespace or a line break.
	ErrInvalidWord = errors.New("local: not a single word")
)

// Hunspell wraps a running hunspell process in ispell-compatible pipe mode.
// It implements service.Checker.
type Hunspell struct {
	tag   string
	cmd   *exec.Cmd
	stdin io.WriteCloser
	out   *bufio.Reader

	mu     sync.Mutex
	closed bool
	// suggestions of the words flagged by the last ComprehensiveCheck
	suggestions map[string][]string
}

var _ service.Checker = (*Hunspell)(nil)

// New starts a hunspell subprocess.
// dictDir: directory containing <lang>.aff / <lang>.dic (pass "" to use the system dictionary).
// lang:    dictionary name, e.g. "en_US".
func New(dictDir, lang string) (*Hunspell, error) {
	dictArg := lang
	if dictDir != "" {
		aff := filepath.Join(dictDir, lang+".aff")
		dic := filepath.Join(dictDir, lang+".dic")
		if _, err := os.Stat(aff); err != nil {
			return nil, fmt.Errorf("local: hunspell dict missing: %s", aff)
		}
		if _, err := os.Stat(dic); err != nil {
			return nil, fmt.Errorf("local: hunspell dict missing: %s", dic)
		}
		dictArg = filepath.Join(dictDir, lang)
	}

	cmd := exec.Command("hunspell", "-d", dictArg, "-a", "-i", "UTF-8")

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("local: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("local: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("local: hunspell start (is hunspell installed?): %w", err)
	}

	h := &Hunspell{
		tag:   dictionaryTag(lang),
		cmd:   cmd,
		stdin: stdin,
		out:   bufio.NewReader(stdout),
	}
	// Discard the initial banner: "Hunspell x.y.z\n"
	if _, err := h.out.ReadString('\n'); err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return nil, fmt.Errorf("local: hunspell init failed: %w", err)
	}

	return h, nil
}

func (h *Hunspell) LanguageTag() (string, error) { return h.tag, nil }

// ComprehensiveCheck tokenizes text and checks every word. Misspelled words
// are reported as suggestion requests; an immediately repeated word is
// reported as a deletion covering the separator and the repeat.
func (h *Hunspell) ComprehensiveCheck(text string) (service.ErrorEnum, error) {
	tokens := tokenize(text)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}

	h.suggestions = make(map[string][]string)
	var out []entry
	var prev *wordToken
	for i := range tokens {
		tok := &tokens[i]
		if prev != nil && strings.EqualFold(prev.word, tok.word) && isBlank(text, prev, tok) {
			out = append(out, entry{
				start:  prev.end,
				length: tok.end - prev.end,
				action: service.ActionDelete,
			})
			prev = tok
			continue
		}
		prev = tok

		correct, suggest, err := h.checkWord(tok.word)
		if err != nil {
			return nil, err
		}
		if correct {
			continue
		}
		h.suggestions[tok.word] = suggest
		out = append(out, entry{
			start:  tok.start,
			length: tok.end - tok.start,
			action: service.ActionGetSuggestions,
		})
	}
	return &errorEnum{entries: out}, nil
}

// Suggest returns hunspell's suggestions for word, in hunspell's order.
// Words flagged by the last ComprehensiveCheck are answered without
// another round trip.
func (h *Hunspell) Suggest(word string) (service.StringEnum, error) {
	if err := validWord(word); err != nil {
		return nil, err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	if suggest, ok := h.suggestions[word]; ok {
		return &stringEnum{items: suggest}, nil
	}

	correct, suggest, err := h.checkWord(word)
	if err != nil {
		return nil, err
	}
	if correct {
		suggest = nil
	}
	return &stringEnum{items: suggest}, nil
}

// Ignore accepts word for the lifetime of the process. Only a single word
// is accepted, so nothing else reaches the pipe.
func (h *Hunspell) Ignore(word string) error {
	if err := validWord(word); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	// "@word" produces no output line.
	if _, err := fmt.Fprintf(h.stdin, "@%s\n", word); err != nil {
		return err
	}
	delete(h.suggestions, word)
	return nil
}

// validWord reports ErrInvalidWord unless word tokenizes to itself.
// Anything else could inject extra protocol lines.
func validWord(word string) error {
	toks := tokenize(word)
	if len(toks) != 1 || toks[0].word != word {
		return fmt.Errorf("%w: %q", ErrInvalidWord, word)
	}
	return nil
}

// Release terminates the hunspell process.
func (h *Hunspell) Release() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	_ = h.stdin.Close()
	_ = h.cmd.Wait()
}

// checkWord sends one word to hunspell and parses the response.
// Ispell pipe protocol:
//
//   - *, +, -        → correct (root, affixed, compound)
//   - & w n o: s1, s2 → misspelled, suggestions
//   - # w o           → misspelled, no suggestions
func (h *Hunspell) checkWord(word string) (correct bool, suggest []string, err error) {
	if _, err = fmt.Fprintf(h.stdin, "^%s\n", word); err != nil {
		return false, nil, err
	}

	correct = true
	for {
		line, e := h.out.ReadString('\n')
		if e != nil && e != io.EOF {
			return false, nil, e
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if e == io.EOF {
				return false, nil, io.ErrUnexpectedEOF
			}
			break // blank line = end of result for this word
		}

		switch line[0] {
		case '&':
			correct = false
			if idx := strings.Index(line, ": "); idx != -1 {
				for _, s := range strings.Split(line[idx+2:], ", ") {
					if s = strings.TrimSpace(s); s != "" {
						suggest = append(suggest, s)
					}
				}
			}
		case '#':
			correct = false
		}
	}
	return correct, suggest, nil
}

// wordToken is a word with its UTF-16 offsets in the original text.
type wordToken struct {
	word  string
	start uint32 // inclusive
	end   uint32 // exclusive
}

// tokenize splits text into word tokens (letter/digit runs, inner
// apostrophes allowed), tracking UTF-16 offsets.
func tokenize(text string) []wordToken {
	var tokens []wordToken
	var cur []rune
	var start, pos uint32
	flush := func() {
		// trim quotes around the word
		lead := 0
		for lead < len(cur) && cur[lead] == '\'' {
			lead++
		}
		trail := len(cur)
		for trail > lead && cur[trail-1] == '\'' {
			trail--
		}
		if trail > lead {
			tokens = append(tokens, wordToken{
				word:  string(cur[lead:trail]),
				start: start + uint32(lead),
				end:   pos - uint32(len(cur)-trail),
			})
		}
		cur = cur[:0]
	}
	for _, r := range text {
		if isWordChar(r) {
			if len(cur) == 0 {
				start = pos
			}
			cur = append(cur, r)
		} else if len(cur) > 0 {
			flush()
		}
		pos += uint32(utf16.RuneLen(r))
	}
	if len(cur) > 0 {
		flush()
	}
	return tokens
}

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '\''
}

// isBlank reports whether only whitespace separates a and b.
func isBlank(text string, a, b *wordToken) bool {
	units := utf16.Encode([]rune(text))
	for _, u := range units[a.end:b.start] {
		if !unicode.IsSpace(rune(u)) {
			return false
		}
	}
	return true
}

type entry struct {
	start  uint32
	length uint32
	action service.Action
}

func (e *entry) StartIndex() (uint32, error)               { return e.start, nil }
func (e *entry) Length() (uint32, error)                   { return e.length, nil }
func (e *entry) CorrectiveAction() (service.Action, error) { return e.action, nil }
func (e *entry) Replacement() (service.String, error)      { return goString(""), nil }
func (e *entry) Release()                                  {}

type errorEnum struct {
	entries []entry
	pos     int
}

func (e *errorEnum) Next() (service.ErrorEntry, bool) {
	if e.pos >= len(e.entries) {
		return nil, false
	}
	e.pos++
	return &e.entries[e.pos-1], true
}

func (e *errorEnum) Release() {}

type stringEnum struct {
	items []string
	pos   int
}

func (s *stringEnum) Next() (service.String, bool) {
	if s.pos >= len(s.items) {
		return nil, false
	}
	s.pos++
	return goString(s.items[s.pos-1]), true
}

func (s *stringEnum) Release() {}

// goString is already owned by Go; there is nothing to free.
type goString string

func (s goString) Value() (string, error) { return string(s), nil }
func (s goString) Release()               {}
