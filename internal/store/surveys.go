// internal/store/surveys.go
package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	swipeerrors "swipeshop-backend/internal/common/errors"

	"github.com/redis/go-redis/v9"
	"github.com/xeipuuv/gojsonschema"

	"swipeshop-backend/internal/models"
)

// SaveSurvey validates the profile against the survey schema and stores it
// for the user, bumping the version on re-survey. The user must exist.
func (s *Store) SaveSurvey(ctx context.Context, userID string, profile *models.PersonalizationProfile) (*models.SurveyRecord, error) {
	if _, err := s.GetUser(ctx, userID); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}

	result, err := s.surveySchema.Validate(gojsonschema.NewBytesLoader(payload))
	if err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return nil, swipeerrors.NewValidationError("invalid survey: " + strings.Join(details, "; "))
	}

	version := 1
	if prev, err := s.GetSurvey(ctx, userID); err == nil {
		version = prev.Version + 1
	}

	record := &models.SurveyRecord{
		UserID:      userID,
		Profile:     *profile,
		Version:     version,
		CompletedAt: time.Now().UTC(),
	}

	encoded, err := json.Marshal(record)
	if err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}
	if err := s.db.Set(ctx, surveyKey(userID), encoded, 0); err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}

	s.logger.Info("survey saved", map[string]interface{}{"userId": userID, "version": version})
	return record, nil
}

func (s *Store) GetSurvey(ctx context.Context, userID string) (*models.SurveyRecord, error) {
	raw, err := s.db.Get(ctx, surveyKey(userID))
	if errors.Is(err, redis.Nil) {
		return nil, swipeerrors.NewNotFoundError("survey")
	}
	if err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}

	var record models.SurveyRecord
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		return nil, swipeerrors.NewInternalError(err)
	}
	return &record, nil
}
