package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matelog-backend/internal/model"
	"matelog-backend/internal/repository"
)

func newTestTrackingService() TrackingService {
	return NewTrackingService(repository.NewTrackingRepository())
}

func TestStudySessionLifecycle(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)
	svc := newTestTrackingService()

	session, err := svc.StartSession(user.ID)
	require.NoError(t, err)
	assert.NotZero(t, session.ID)
	_, parseErr := uuid.Parse(session.Token)
	assert.NoError(t, parseErr)
	assert.Nil(t, session.EndedAt)

	ended, err := svc.EndSession(user.ID, session.ID)
	require.NoError(t, err)
	assert.NotNil(t, ended.EndedAt)
	assert.GreaterOrEqual(t, ended.DurationMinutes, 0)
}

func TestEndSessionForeignUser(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)
	svc := newTestTrackingService()

	session, err := svc.StartSession(user.ID)
	require.NoError(t, err)

	// A session can only be closed by its owner.
	_, err = svc.EndSession(user.ID+1, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestScreenActivityLifecycle(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)
	svc := newTestTrackingService()

	activity, err := svc.StartActivity(&user.ID, StartActivityInput{Screen: model.ScreenExercises})
	require.NoError(t, err)
	assert.Equal(t, model.ScreenExercises, activity.Screen)
	require.NotNil(t, activity.UserID)
	assert.Equal(t, user.ID, *activity.UserID)

	ended, err := svc.EndActivity(activity.ID)
	require.NoError(t, err)
	assert.NotNil(t, ended.EndedAt)
	assert.GreaterOrEqual(t, ended.Seconds, 0)
}

func TestStartActivityAnonymous(t *testing.T) {
	setupTestDB(t)
	svc := newTestTrackingService()

	activity, err := svc.StartActivity(nil, StartActivityInput{Screen: model.ScreenLogin})
	require.NoError(t, err)
	assert.Nil(t, activity.UserID)
	assert.Equal(t, model.ScreenLogin, activity.Screen)
}

func TestStartActivityUnknownScreenFallsBack(t *testing.T) {
	setupTestDB(t)
	svc := newTestTrackingService()

	activity, err := svc.StartActivity(nil, StartActivityInput{Screen: "PANTALLA_RARA"})
	require.NoError(t, err)
	assert.Equal(t, model.ScreenOther, activity.Screen)
}

func TestRegisterReturnToContent(t *testing.T) {
	setupTestDB(t)
	user := seedUser(t)
	svc := newTestTrackingService()

	activity, err := svc.StartActivity(&user.ID, StartActivityInput{Screen: model.ScreenTopicContent})
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		activity, err = svc.RegisterReturnToContent(activity.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, uint(3), activity.ReturnsToContent)

	_, err = svc.RegisterReturnToContent(9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
