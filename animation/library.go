package animation

import "github.com/sasha-s/go-deadlock"

// Library holds the montages available to agents, keyed by name.
type Library struct {
	mu       deadlock.RWMutex
	montages map[string]*Montage
}

func NewLibrary() *Library {
	return &Library{montages: make(map[string]*Montage)}
}

// Register adds a montage to the library, replacing any montage with the same name.
func (l *Library) Register(m *Montage) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.montages[m.Name] = m
}

// Get returns the montage with the given name.
func (l *Library) Get(name string) (*Montage, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	m, ok := l.montages[name]
	return m, ok
}
