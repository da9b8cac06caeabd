// Package pdfsession tracks which PDF the in-page viewer shows. The value lives in memory only and
// is empty after a restart.
package pdfsession

import (
	"strings"
	"sync"
)

type Session struct {
	mu      sync.Mutex
	current string
}

func New() *Session {
	return &Session{}
}

// Open makes ref the PDF being viewed, replacing any previous one. An empty ref closes the viewer.
func (s *Session) Open(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ref
}

func (s *Session) Close() {
	s.Open("")
}

func (s *Session) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, s.current != ""
}

// Title is the last path segment of the current reference, or "" when no PDF is open.
func (s *Session) Title() string {
	ref, ok := s.Current()
	if !ok {
		return ""
	}
	return TitleOf(ref)
}

func TitleOf(ref string) string {
	return ref[strings.LastIndex(ref, "/")+1:]
}
