package tgbot

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// subscriptions tracks which game each chat plays and which chats follow a
// game. A chat follows one game at a time.
type subscriptions struct {
	mu        sync.Mutex
	current   map[int64]string
	followers map[string]mapset.Set[int64]
}

func newSubs() *subscriptions {
	return &subscriptions{
		current:   make(map[int64]string),
		followers: make(map[string]mapset.Set[int64]),
	}
}

func (s *subscriptions) Follow(chatID int64, gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.current[chatID]; ok && s.followers[old] != nil {
		s.followers[old].Remove(chatID)
	}
	s.current[chatID] = gameID
	if s.followers[gameID] == nil {
		s.followers[gameID] = mapset.NewSet[int64]()
	}
	s.followers[gameID].Add(chatID)
}

func (s *subscriptions) Current(chatID int64) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.current[chatID]
	return id, ok
}

func (s *subscriptions) Followers(gameID string) []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.followers[gameID] == nil {
		return nil
	}
	return s.followers[gameID].ToSlice()
}

// Forget drops deleted games.
func (s *subscriptions) Forget(gameIDs ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range gameIDs {
		if s.followers[id] == nil {
			continue
		}
		for _, chatID := range s.followers[id].ToSlice() {
			delete(s.current, chatID)
		}
		delete(s.followers, id)
	}
}
