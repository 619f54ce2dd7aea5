package query

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rajendra1296/OMF-Consumer/internal/store"
	"github.com/Rajendra1296/OMF-Consumer/pkg/models"
)

var (
	// ErrInvalidInput means a required query argument was empty.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound means the lookup matched no user.
	ErrNotFound = errors.New("user not found")
)

// Service exposes the two read operations served over HTTP. Errors are
// typed so the transport layer can translate them with errors.Is.
type Service struct {
	Store *store.UserStore
}

// NewService creates a new query Service.
func NewService(s *store.UserStore) *Service {
	return &Service{Store: s}
}

// GetUserStatus resolves a user's (id, status) pair from the (email,
// dob) secondary key.
func (s *Service) GetUserStatus(ctx context.Context, email, dob string) (models.UserStatus, error) {
	if email == "" || dob == "" {
		return models.UserStatus{}, fmt.Errorf("%w: email and dob are required", ErrInvalidInput)
	}

	user, err := s.Store.GetByEmailDOB(ctx, email, dob)
	if errors.Is(err, store.ErrNotFound) {
		return models.UserStatus{}, fmt.Errorf("%w for email=%s dob=%s", ErrNotFound, email, dob)
	}
	if err != nil {
		return models.UserStatus{}, fmt.Errorf("user status lookup failed: %w", err)
	}

	return models.UserStatus{ID: user.ID, Status: user.Status}, nil
}

// GetUserDetails resolves the full user record by primary key.
func (s *Service) GetUserDetails(ctx context.Context, id string) (models.User, error) {
	if id == "" {
		return models.User{}, fmt.Errorf("%w: id is required", ErrInvalidInput)
	}

	user, err := s.Store.GetByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return models.User{}, fmt.Errorf("%w for id=%s", ErrNotFound, id)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user details lookup failed: %w", err)
	}

	return user, nil
}
