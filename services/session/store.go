package session

import "interviewcoach/models"

// Store holds active interview sessions. Mutation stays behind this
// interface so a persistent store can replace the in-memory one without
// touching the session manager.
type Store interface {
	Get(id string) (*models.InterviewSession, bool)
	Put(session *models.InterviewSession)
	Delete(id string)
	All() []*models.InterviewSession
}

// memoryStore is a plain map; callers serialize access per session id.
type memoryStore struct {
	sessions map[string]*models.InterviewSession
}

func NewMemoryStore() Store {
	return &memoryStore{sessions: make(map[string]*models.InterviewSession)}
}

func (m *memoryStore) Get(id string) (*models.InterviewSession, bool) {
	session, ok := m.sessions[id]
	return session, ok
}

func (m *memoryStore) Put(session *models.InterviewSession) {
	m.sessions[session.ID] = session
}

func (m *memoryStore) Delete(id string) {
	delete(m.sessions, id)
}

func (m *memoryStore) All() []*models.InterviewSession {
	out := make([]*models.InterviewSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		out = append(out, session)
	}
	return out
}
