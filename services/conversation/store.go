package conversation

import "interviewcoach/models"

// Store holds conversation state. All mutation goes through this interface
// so a persistent implementation can be swapped in without touching the
// state machine.
type Store interface {
	Get(id string) (*models.Conversation, bool)
	Put(conv *models.Conversation)
	Delete(id string)
}

// memoryStore is a plain map. Access is expected to be serialized per
// conversation by the caller; there is no internal locking.
type memoryStore struct {
	conversations map[string]*models.Conversation
}

func NewMemoryStore() Store {
	return &memoryStore{conversations: make(map[string]*models.Conversation)}
}

func (m *memoryStore) Get(id string) (*models.Conversation, bool) {
	conv, ok := m.conversations[id]
	return conv, ok
}

func (m *memoryStore) Put(conv *models.Conversation) {
	m.conversations[conv.ID] = conv
}

func (m *memoryStore) Delete(id string) {
	delete(m.conversations, id)
}
