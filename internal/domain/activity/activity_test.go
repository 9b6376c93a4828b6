package activity

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/example/startup-analytics/internal/infrastructure/kafka"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingPublisher struct {
	keys   []string
	events []any
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, key string, event any) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, key)
	p.events = append(p.events, event)
	return nil
}

// ============================================
// Type parsing
// ============================================

func TestParseType_Known(t *testing.T) {
	got, err := ParseType(" pitch_generated ")

	require.NoError(t, err)
	assert.Equal(t, TypePitchGenerated, got)
}

func TestParseType_Unknown(t *testing.T) {
	_, err := ParseType("LOGOUT")

	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestValidate_TruncatesDescription(t *testing.T) {
	a := Activity{UserID: "u-1", Type: TypeLogin, Description: strings.Repeat("é", MaxDescriptionLength+20)}

	require.NoError(t, a.Validate())
	assert.Len(t, []rune(a.Description), MaxDescriptionLength)
}

func TestValidate_MissingUser(t *testing.T) {
	a := Activity{Type: TypeLogin}

	assert.ErrorIs(t, a.Validate(), ErrInvalidUserID)
}

// ============================================
// Service.Log
// ============================================

func TestService_Log_PublishesEvent(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(pub)

	a, err := svc.Log(context.Background(), "u-1", "milestone_completed", "Seed round closed", `{"round":"seed"}`)

	require.NoError(t, err)
	assert.NotEmpty(t, a.ID)
	assert.Equal(t, TypeMilestoneCompleted, a.Type)
	require.Len(t, pub.events, 1)
	assert.Equal(t, "u-1", pub.keys[0])

	event, ok := pub.events[0].(kafka.Event)
	require.True(t, ok)
	assert.Equal(t, AggregateType, event.AggregateType)
	assert.Equal(t, EventActivityLogged, event.EventType)

	var payload ActivityLogged
	require.NoError(t, json.Unmarshal(event.Data, &payload))
	assert.Equal(t, a.ID, payload.ActivityID)
	assert.Equal(t, "Seed round closed", payload.Description)
}

func TestService_Log_InvalidType(t *testing.T) {
	pub := &recordingPublisher{}
	svc := NewService(pub)

	a, err := svc.Log(context.Background(), "u-1", "BOGUS", "", "")

	assert.ErrorIs(t, err, ErrInvalidType)
	assert.Nil(t, a)
	assert.Empty(t, pub.events)
}

func TestService_Log_PublishError(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := NewService(pub)

	a, err := svc.Log(context.Background(), "u-1", TypeLogin, "", "")

	assert.EqualError(t, err, "broker down")
	assert.Nil(t, a)
}
