package chat

import "sync"

// conversationLocks serializes chat turns per conversation id so concurrent
// turns on the same conversation cannot lose each other's appends. Entries
// are reference counted and dropped once no request holds or waits on them.
type conversationLocks struct {
	mu      sync.Mutex
	entries map[uint]*lockEntry
}

type lockEntry struct {
	mu   sync.Mutex
	refs int
}

func newConversationLocks() *conversationLocks {
	return &conversationLocks{entries: make(map[uint]*lockEntry)}
}

func (l *conversationLocks) Lock(id uint) {
	l.mu.Lock()
	entry, ok := l.entries[id]
	if !ok {
		entry = &lockEntry{}
		l.entries[id] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.mu.Lock()
}

func (l *conversationLocks) Unlock(id uint) {
	l.mu.Lock()
	entry := l.entries[id]
	entry.refs--
	if entry.refs == 0 {
		delete(l.entries, id)
	}
	l.mu.Unlock()

	entry.mu.Unlock()
}
