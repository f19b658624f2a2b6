package words

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitSplitsOnCommas(t *testing.T) {
	c := NewCollection()
	added, total, err := c.Submit("  sun, moon ,, stars ")
	require.NoError(t, err)
	assert.Equal(t, 3, added)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"sun", "moon", "stars"}, c.List())

	added, total, err = c.Submit("ocean")
	require.NoError(t, err)
	assert.Equal(t, 1, added)
	assert.Equal(t, 4, total)
}

func TestSubmitRejectsBadInput(t *testing.T) {
	c := NewCollection()

	_, _, err := c.Submit("   ")
	assert.ErrorIs(t, err, ErrEmptyWord)

	_, _, err = c.Submit(" , ,, ")
	assert.ErrorIs(t, err, ErrNoWords)

	_, _, err = c.Submit(strings.Repeat("a", MaxSubmissionLength+1))
	assert.ErrorIs(t, err, ErrTooLong)

	_, _, err = c.Submit(strings.Repeat("ü", MaxSubmissionLength))
	assert.NoError(t, err)
}

func TestSubmitNormalizesToNFC(t *testing.T) {
	c := NewCollection()
	_, _, err := c.Submit("café")
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, c.List())
}

func TestRemoveAndClear(t *testing.T) {
	c := NewCollection()
	_, _, err := c.Submit("a,b,c")
	require.NoError(t, err)

	removed, remaining, err := c.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "b", removed)
	assert.Equal(t, 2, remaining)
	assert.Equal(t, []string{"a", "c"}, c.List())

	_, _, err = c.Remove(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	_, _, err = c.Remove(-1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	c.Clear()
	assert.Equal(t, 0, c.Count())
	assert.Empty(t, c.List())
}

func TestListReturnsCopy(t *testing.T) {
	c := NewCollection()
	_, _, _ = c.Submit("a")
	list := c.List()
	list[0] = "changed"
	assert.Equal(t, []string{"a"}, c.List())
}

func TestFrequenciesFoldCase(t *testing.T) {
	c := NewCollection()
	_, _, err := c.Submit("Love, rain, love, LOVE, Rain, sky")
	require.NoError(t, err)

	assert.Equal(t, []Frequency{
		{Word: "Love", Count: 3},
		{Word: "rain", Count: 2},
		{Word: "sky", Count: 1},
	}, c.Frequencies())
}

func TestConcurrentSubmissions(t *testing.T) {
	c := NewCollection()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = c.Submit("x,y")
			_ = c.Frequencies()
		}()
	}
	wg.Wait()
	assert.Equal(t, 40, c.Count())
}
