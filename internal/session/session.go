package session

import (
	"errors"
	"sync"

	"github.com/spigell/hr-screener/internal/completion"
)

// MaxResumes is the hard cap on stored resumes per user.
const MaxResumes = 5

// ErrCapacityExceeded is returned by AddResume when the user already holds
// MaxResumes resumes. The session is left unchanged.
var ErrCapacityExceeded = errors.New("resume capacity exceeded")

// Store holds per-user screening state: uploaded resume texts, the job
// description and the chat transcript. State lives in process memory only
// and is lost on restart.
//
// Different users proceed fully in parallel. Mutations for a single user are
// serialized by a per-user mutex, so a request/reply pair appended via
// AppendExchange can never be split by a concurrent append for the same user.
type Store struct {
	mu    sync.RWMutex
	users map[int64]*userSession
}

type userSession struct {
	mu         sync.Mutex
	resumes    []string
	job        string
	transcript []completion.Message
}

func NewStore() *Store {
	return &Store{users: make(map[int64]*userSession)}
}

// get returns the user's session or nil when the user never interacted.
func (s *Store) get(user int64) *userSession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.users[user]
}

// getOrCreate lazily creates the session on first write.
func (s *Store) getOrCreate(user int64) *userSession {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, ok := s.users[user]
	if !ok {
		us = &userSession{}
		s.users[user] = us
	}
	return us
}

// AddResume appends an extracted resume text in upload order. It fails with
// ErrCapacityExceeded once MaxResumes is reached, without mutating state.
func (s *Store) AddResume(user int64, text string) error {
	us := s.getOrCreate(user)
	us.mu.Lock()
	defer us.mu.Unlock()

	if len(us.resumes) >= MaxResumes {
		return ErrCapacityExceeded
	}

	us.resumes = append(us.resumes, text)
	return nil
}

// Resumes returns a copy of the user's resume texts in upload order.
func (s *Store) Resumes(user int64) []string {
	us := s.get(user)
	if us == nil {
		return nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()

	out := make([]string, len(us.resumes))
	copy(out, us.resumes)
	return out
}

// SetJobDescription stores the job description with overwrite semantics.
func (s *Store) SetJobDescription(user int64, text string) {
	us := s.getOrCreate(user)
	us.mu.Lock()
	defer us.mu.Unlock()
	us.job = text
}

// JobDescription returns the stored job description, empty when absent.
func (s *Store) JobDescription(user int64) string {
	us := s.get(user)
	if us == nil {
		return ""
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	return us.job
}

// AppendTranscript appends one message to the user's chat transcript,
// creating an empty transcript on first use.
func (s *Store) AppendTranscript(user int64, msg completion.Message) {
	us := s.getOrCreate(user)
	us.mu.Lock()
	defer us.mu.Unlock()
	us.transcript = append(us.transcript, msg)
}

// AppendExchange appends a request/reply pair as one atomic step. The two
// messages are always adjacent in the transcript.
func (s *Store) AppendExchange(user int64, request, reply completion.Message) {
	us := s.getOrCreate(user)
	us.mu.Lock()
	defer us.mu.Unlock()
	us.transcript = append(us.transcript, request, reply)
}

// Transcript returns a copy of the user's chat transcript in append order.
func (s *Store) Transcript(user int64) []completion.Message {
	us := s.get(user)
	if us == nil {
		return nil
	}

	us.mu.Lock()
	defer us.mu.Unlock()

	out := make([]completion.Message, len(us.transcript))
	copy(out, us.transcript)
	return out
}

// Clear empties the user's resumes and job description. The chat transcript
// is kept so a follow-up conversation survives re-collection.
func (s *Store) Clear(user int64) {
	us := s.get(user)
	if us == nil {
		return
	}

	us.mu.Lock()
	defer us.mu.Unlock()
	us.resumes = nil
	us.job = ""
}

// Reset removes the user's whole session, transcript included. The user is
// back to the never-interacted state.
func (s *Store) Reset(user int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, user)
}
