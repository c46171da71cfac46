// internal/store/users.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	swipeerrors "swipeshop-backend/internal/common/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"swipeshop-backend/internal/models"
)

// CreateUser registers a new user. The username claim is a SETNX on the
// reverse index, so under concurrent creation exactly one caller wins and
// the rest get a ConflictError.
func (s *Store) CreateUser(ctx context.Context, name, username string) (*models.UserProfile, error) {
	id := uuid.NewString()

	claimed, err := s.db.SetNX(ctx, usernameKey(username), id, 0)
	if err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}
	if !claimed {
		return nil, swipeerrors.NewConflictError("username already taken")
	}

	now := time.Now().UTC()
	user := &models.UserProfile{
		ID:        id,
		Name:      name,
		Username:  username,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.writeUser(ctx, user); err != nil {
		// Release the claim so the username is not orphaned.
		_ = s.db.Del(ctx, usernameKey(username))
		return nil, err
	}

	s.logger.Info("user created", map[string]interface{}{"userId": id, "username": username})
	return user, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (*models.UserProfile, error) {
	raw, err := s.db.Get(ctx, userKey(id))
	if errors.Is(err, redis.Nil) {
		return nil, swipeerrors.NewNotFoundError("user")
	}
	if err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}

	var user models.UserProfile
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}
	return &user, nil
}

// UpdateUser renames a user and, when the username changed, moves the
// reverse-index claim: claim the new name first, then write the user, then
// release the old claim. A failed claim that already maps to this user
// (a case-only change) is not a conflict.
func (s *Store) UpdateUser(ctx context.Context, id, name, username string) (*models.UserProfile, error) {
	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := usernameKey(user.Username)
	newKey := usernameKey(username)

	if newKey != oldKey {
		claimed, err := s.db.SetNX(ctx, newKey, id, 0)
		if err != nil {
			return nil, swipeerrors.NewInternalError(err)
		}
		if !claimed {
			owner, err := s.db.Get(ctx, newKey)
			if err != nil || owner != id {
				return nil, swipeerrors.NewConflictError("username already taken")
			}
		}
	}

	user.Name = name
	user.Username = username
	user.UpdatedAt = time.Now().UTC()

	if err := s.writeUser(ctx, user); err != nil {
		if newKey != oldKey {
			_ = s.db.Del(ctx, newKey)
		}
		return nil, err
	}

	if newKey != oldKey {
		if err := s.db.Del(ctx, oldKey); err != nil {
			s.logger.Warn("stale username claim not released", map[string]interface{}{
				"userId": id,
				"error":  err.Error(),
			})
		}
	}

	s.logger.Info("user updated", map[string]interface{}{"userId": id, "username": username})
	return user, nil
}

// CheckUsername reports whether the username is free to claim.
func (s *Store) CheckUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.db.Get(ctx, usernameKey(username))
	if errors.Is(err, redis.Nil) {
		return true, nil
	}
	if err != nil {
		return false, swipeerrors.NewInternalError(err)
	}
	return false, nil
}

// LookupByUsername resolves a username to its user record (login path).
func (s *Store) LookupByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	id, err := s.db.Get(ctx, usernameKey(username))
	if errors.Is(err, redis.Nil) {
		return nil, swipeerrors.NewNotFoundError("user")
	}
	if err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}
	return s.GetUser(ctx, id)
}

func (s *Store) writeUser(ctx context.Context, user *models.UserProfile) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return swipeerrors.NewInternalError(err)
	}
	if err := s.db.Set(ctx, userKey(user.ID), payload, 0); err != nil {
		return swipeerrors.NewInternalError(err)
	}
	return nil
}
