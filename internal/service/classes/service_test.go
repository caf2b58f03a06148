package classes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/pkg/types"
)

type fakeClassRepo struct {
	sessions []*domain.ClassSession
	err      error
}

func (f *fakeClassRepo) GetByDate(_ context.Context, _ time.Time) ([]*domain.ClassSession, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var testDate = time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)

func TestGetByDate(t *testing.T) {
	t.Run("lists the day including cancelled sessions", func(t *testing.T) {
		repo := &fakeClassRepo{sessions: []*domain.ClassSession{
			{
				ID:           1,
				InstructorID: 7,
				Title:        "Breathe & Move",
				Date:         testDate,
				StartTime:    types.TimeString("09:00"),
				DurationMin:  60,
				Capacity:     10,
				Enrolled:     4,
			},
			{
				ID:           2,
				InstructorID: 7,
				Title:        "Breathe & Move",
				Date:         testDate,
				StartTime:    types.TimeString("17:00"),
				DurationMin:  60,
				Capacity:     10,
				Enrolled:     0,
				Cancelled:    true,
			},
		}}
		svc := NewService(repo, nopLogger{})

		resp, err := svc.GetByDate(context.Background(), testDate)

		require.NoError(t, err)
		require.Len(t, resp.Sessions, 2)
		assert.Equal(t, 6, resp.Sessions[0].SpotsLeft)
		assert.False(t, resp.Sessions[0].Cancelled)
		assert.True(t, resp.Sessions[1].Cancelled)
	})

	t.Run("empty day", func(t *testing.T) {
		svc := NewService(&fakeClassRepo{}, nopLogger{})

		resp, err := svc.GetByDate(context.Background(), testDate)

		require.NoError(t, err)
		assert.Empty(t, resp.Sessions)
	})

	t.Run("zero date is rejected", func(t *testing.T) {
		svc := NewService(&fakeClassRepo{}, nopLogger{})

		_, err := svc.GetByDate(context.Background(), time.Time{})

		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("repository error is wrapped", func(t *testing.T) {
		svc := NewService(&fakeClassRepo{err: assert.AnError}, nopLogger{})

		_, err := svc.GetByDate(context.Background(), testDate)

		assert.ErrorIs(t, err, ErrInternal)
	})
}
