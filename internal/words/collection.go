// Package words collects free-form words submitted by participants for the
// word cloud shown next to the song generator. It is independent of the job
// pipeline and shares only the HTTP layer with it.
package words

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// MaxSubmissionLength bounds a single submission, before splitting.
const MaxSubmissionLength = 500

var (
	ErrEmptyWord       = errors.New("word cannot be empty")
	ErrTooLong         = errors.New("submission too long (max 500 characters)")
	ErrNoWords         = errors.New("no valid words found in submission")
	ErrIndexOutOfRange = errors.New("word index out of range")
)

// Frequency is one entry of the word cloud.
type Frequency struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Collection is an ordered, process-local list of words.
type Collection struct {
	mu    sync.RWMutex
	words []string
}

func NewCollection() *Collection {
	return &Collection{}
}

// Submit splits raw on commas and appends every non-empty word. It returns
// how many words were added and the new total.
func (c *Collection) Submit(raw string) (int, int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, 0, ErrEmptyWord
	}
	if utf8.RuneCountInString(raw) > MaxSubmissionLength {
		return 0, 0, ErrTooLong
	}
	var added []string
	for _, part := range strings.Split(raw, ",") {
		if w := strings.TrimSpace(part); w != "" {
			added = append(added, norm.NFC.String(w))
		}
	}
	if len(added) == 0 {
		return 0, 0, ErrNoWords
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.words = append(c.words, added...)
	return len(added), len(c.words), nil
}

// List returns a copy of the collected words in submission order.
func (c *Collection) List() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, len(c.words))
	copy(out, c.words)
	return out
}

func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.words)
}

// Remove deletes the word at index and returns it with the remaining count.
func (c *Collection) Remove(index int) (string, int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.words) {
		return "", len(c.words), ErrIndexOutOfRange
	}
	removed := c.words[index]
	c.words = append(c.words[:index], c.words[index+1:]...)
	return removed, len(c.words), nil
}

func (c *Collection) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.words = nil
}

// Frequencies counts words case-insensitively. Each entry keeps the first
// spelling seen; ties are ordered by first appearance.
func (c *Collection) Frequencies() []Frequency {
	c.mu.RLock()
	defer c.mu.RUnlock()

	fold := cases.Fold()
	index := make(map[string]int)
	out := make([]Frequency, 0, len(c.words))
	for _, w := range c.words {
		key := fold.String(w)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, Frequency{Word: w, Count: 1})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}
