// Package store persists users, username claims and survey profiles in
// Redis. All values are JSON. Keys: user:{id}, username:{lowercased},
// survey:{userId}.
package store

import (
	"strings"

	"swipeshop-backend/internal/common/database"
	"swipeshop-backend/internal/common/logger"

	"github.com/xeipuuv/gojsonschema"
)

type Store struct {
	db           *database.RedisClient
	logger       logger.Logger
	surveySchema *gojsonschema.Schema
}

func New(db *database.RedisClient, log logger.Logger) (*Store, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(surveySchemaJSON))
	if err != nil {
		return nil, err
	}
	return &Store{
		db:           db,
		logger:       log.With(map[string]interface{}{"component": "store"}),
		surveySchema: schema,
	}, nil
}

func userKey(id string) string {
	return "user:" + id
}

// usernameKey builds the reverse-index key. Usernames are claimed and looked
// up case-insensitively.
func usernameKey(username string) string {
	return "username:" + strings.ToLower(strings.TrimSpace(username))
}

func surveyKey(userID string) string {
	return "survey:" + userID
}
