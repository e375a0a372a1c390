package session

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession()
	assert.Equal(t, AwaitingRoom, s.Awaiting)
	assert.Empty(t, s.Room)
	assert.Empty(t, s.Note)
	require.NotNil(t, s.Cart)
	assert.True(t, s.Cart.IsEmpty())
}

func TestResetOrderKeepsRoom(t *testing.T) {
	s := NewSession()
	s.Room = "429Г"
	s.Cart.Add("energy")
	s.Note = "позвонить"
	s.Awaiting = AwaitingComment

	s.ResetOrder()

	assert.Equal(t, "429Г", s.Room)
	assert.True(t, s.Cart.IsEmpty())
	assert.Empty(t, s.Note)
	assert.Equal(t, AwaitingNone, s.Awaiting)
}

func TestNormalizeRoom(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"429г", "429Г", true},
		{"429Г", "429Г", true},
		{"12b", "12B", true},
		{"  7a  ", "7A", true},
		{"429", "", false},
		{"abc", "", false},
		{"г429", "", false},
		{"429гг", "", false},
		{"", "", false},
		{"4 29г", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := NormalizeRoom(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLooksLikeRoom(t *testing.T) {
	assert.True(t, LooksLikeRoom("455U"))
	assert.True(t, LooksLikeRoom("455u"))
	assert.False(t, LooksLikeRoom("{}"))
	assert.False(t, LooksLikeRoom(`{"energy":1}`))
	assert.False(t, LooksLikeRoom("455"))
}

func TestStoreCreatesOnFirstContact(t *testing.T) {
	st := NewStore()
	st.Update(1, func(s *Session) {
		assert.Equal(t, AwaitingRoom, s.Awaiting)
		s.Room = "100A"
	})
	st.Peek(1, func(s *Session) {
		assert.Equal(t, "100A", s.Room)
	})
}

func TestStoreIsolatesChats(t *testing.T) {
	st := NewStore()
	st.Update(1, func(s *Session) { s.Cart.Add("cola") })
	st.Update(2, func(s *Session) {
		assert.True(t, s.Cart.IsEmpty())
	})
}

func TestStoreConcurrentUpdates(t *testing.T) {
	st := NewStore()
	const chats = 32
	const perChat = 50

	var wg sync.WaitGroup
	for chat := int64(0); chat < chats; chat++ {
		for i := 0; i < perChat; i++ {
			wg.Add(1)
			go func(id int64) {
				defer wg.Done()
				st.Update(id, func(s *Session) { s.Cart.Add("energy") })
			}(chat)
		}
	}
	wg.Wait()

	for chat := int64(0); chat < chats; chat++ {
		st.Peek(chat, func(s *Session) {
			assert.Equal(t, perChat, s.Cart.Quantity("energy"), "chat %d", chat)
		})
	}
}
