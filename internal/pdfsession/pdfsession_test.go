package pdfsession

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSessionIsEmpty(t *testing.T) {
	s := New()
	ref, ok := s.Current()
	assert.False(t, ok)
	assert.Empty(t, ref)
	assert.Empty(t, s.Title())
}

func TestOpenReplacesAndCloseClears(t *testing.T) {
	s := New()

	s.Open("https://x.test/a.pdf")
	ref, ok := s.Current()
	assert.True(t, ok)
	assert.Equal(t, "https://x.test/a.pdf", ref)

	s.Open("/tmp/papers/Report.pdf")
	ref, _ = s.Current()
	assert.Equal(t, "/tmp/papers/Report.pdf", ref)
	assert.Equal(t, "Report.pdf", s.Title())

	s.Close()
	_, ok = s.Current()
	assert.False(t, ok)

	// closing twice is fine
	s.Close()
	_, ok = s.Current()
	assert.False(t, ok)
}

func TestTitleOf(t *testing.T) {
	assert.Equal(t, "a.pdf", TitleOf("https://x.test/docs/a.pdf"))
	assert.Equal(t, "Manual.pdf", TitleOf("Manual.pdf"))
	assert.Equal(t, "", TitleOf("https://x.test/docs/"))
}

func TestConcurrentOpen(t *testing.T) {
	s := New()
	refs := []string{"/a.pdf", "/b.pdf", "/c.pdf"}
	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(ref string) {
			defer wg.Done()
			s.Open(ref)
			s.Current()
		}(refs[i%len(refs)])
	}
	wg.Wait()
	ref, ok := s.Current()
	assert.True(t, ok)
	assert.Contains(t, refs, ref)
}
