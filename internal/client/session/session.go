// Package session tracks the logged-in user on the persisted medium. The
// store treats its record as authoritative for the user projection at init
// time.
package session

import (
	"encoding/json"
	"fmt"

	"github.com/qiwen5/dressup/internal/client/models"
	"github.com/qiwen5/dressup/internal/client/storage"
)

type Service struct {
	medium storage.Medium
}

func NewService(medium storage.Medium) *Service {
	return &Service{medium: medium}
}

// Current returns the logged-in user, or (nil, nil) when nobody is.
func (s *Service) Current() (*models.SessionUser, error) {
	raw, ok, err := s.medium.Get(storage.KeyCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("reading current user: %w", err)
	}
	if !ok {
		return nil, nil
	}
	var u models.SessionUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("corrupt current user record: %w", err)
	}
	return &u, nil
}

// SetCurrent records u as the logged-in user.
func (s *Service) SetCurrent(u models.SessionUser) error {
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.medium.Set(storage.KeyCurrentUser, raw); err != nil {
		return fmt.Errorf("saving current user: %w", err)
	}
	return nil
}

// Clear logs the current user out.
func (s *Service) Clear() error {
	return s.medium.Remove(storage.KeyCurrentUser)
}

// LoggedIn reports whether a current user record exists.
func (s *Service) LoggedIn() bool {
	u, err := s.Current()
	return err == nil && u != nil
}
