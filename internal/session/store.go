package session

import "sync"

// Store provides keyed access to conversation sessions. Mutation happens
// inside Update so concurrent events for the same conversation are serialized
// and different conversations cannot corrupt each other.
type Store interface {
	// Update runs fn against the session for chatID, creating it on first
	// contact. fn runs under the key's lock.
	Update(chatID int64, fn func(*Session))
	// Peek returns a copy-safe snapshot accessor for read-only paths.
	// The callback runs under the same lock as Update.
	Peek(chatID int64, fn func(*Session))
}

const shardCount = 16

type shard struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

type shardedStore struct {
	shards [shardCount]*shard
}

// NewStore constructs the in-memory sharded session store.
func NewStore() Store {
	st := &shardedStore{}
	for i := range st.shards {
		st.shards[i] = &shard{sessions: make(map[int64]*Session)}
	}
	return st
}

func (s *shardedStore) shardFor(chatID int64) *shard {
	idx := uint64(chatID) % shardCount
	return s.shards[idx]
}

func (s *shardedStore) Update(chatID int64, fn func(*Session)) {
	sh := s.shardFor(chatID)
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sess, ok := sh.sessions[chatID]
	if !ok {
		sess = NewSession()
		sh.sessions[chatID] = sess
	}
	fn(sess)
}

func (s *shardedStore) Peek(chatID int64, fn func(*Session)) {
	s.Update(chatID, fn)
}
