//go:build integration

package integration

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gourmetgo/gourmetgo-backend/internal/models"
	"github.com/gourmetgo/gourmetgo-backend/internal/repository"
	"github.com/gourmetgo/gourmetgo-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRatingService() service.RatingService {
	return service.NewRatingService(
		repository.NewRatingRepository(testDB),
		repository.NewReservationRepository(testDB),
		repository.NewExperienceRepository(testDB),
	)
}

// pastReservation seeds a finished experience with one confirmed
// reservation, the precondition for rating.
func pastReservation(t *testing.T, user string) *models.Reservation {
	t.Helper()
	exp := &models.Experience{
		OwnerID:       "chef-1",
		Name:          "Last Week's Dinner",
		Price:         40,
		Capacity:      8,
		ReservedSeats: 2,
		DateTime:      time.Now().Add(-72 * time.Hour),
		Status:        models.ExperienceActive,
	}
	require.NoError(t, testDB.Create(exp).Error)

	res := &models.Reservation{
		ExperienceID:  exp.ID,
		UserID:        user,
		UserName:      "Guest",
		UserEmail:     user + "@example.com",
		Seats:         2,
		PaymentMethod: "card",
		Status:        models.ReservationConfirmed,
	}
	require.NoError(t, testDB.Create(res).Error)
	return res
}

// Test: two concurrent submissions for one reservation -> exactly one
// rating row, the loser gets a duplicate error.
func TestConcurrentRatingSubmission(t *testing.T) {
	cleanTables()
	res := pastReservation(t, "guest-1")
	svc := newRatingService()

	var wg sync.WaitGroup
	errs := make(chan error, 2)

	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func() {
			defer wg.Done()
			_, err := svc.SubmitRating(context.Background(), res.ID, "guest-1", 5, "Absolutely wonderful evening")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var okCount, dupCount int
	for err := range errs {
		if err == nil {
			okCount++
		} else {
			assert.ErrorIs(t, err, service.ErrDuplicateRating)
			dupCount++
		}
	}
	assert.Equal(t, 1, okCount)
	assert.Equal(t, 1, dupCount)

	var count int64
	testDB.Model(&models.Rating{}).Where("reservation_id = ?", res.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

// Test: eligibility requires a confirmed reservation on a past experience
// with no prior rating.
func TestRatingEligibility(t *testing.T) {
	cleanTables()
	res := pastReservation(t, "guest-1")
	svc := newRatingService()

	eligible, err := svc.CanRate(context.Background(), res.ID)
	require.NoError(t, err)
	assert.True(t, eligible)

	_, err = svc.SubmitRating(context.Background(), res.ID, "guest-1", 4, "Great food and lovely host")
	require.NoError(t, err)

	eligible, err = svc.CanRate(context.Background(), res.ID)
	require.NoError(t, err)
	assert.False(t, eligible, "a rated reservation is no longer eligible")

	_, err = svc.SubmitRating(context.Background(), res.ID, "guest-1", 4, "Trying to rate a second time")
	assert.ErrorIs(t, err, service.ErrDuplicateRating)

	// Upcoming experience: not eligible yet
	future := createTestExperience(t, "Next Month's Dinner", 6)
	futureRes := &models.Reservation{
		ExperienceID:  future.ID,
		UserID:        "guest-2",
		UserName:      "Guest",
		UserEmail:     "guest-2@example.com",
		Seats:         1,
		PaymentMethod: "card",
		Status:        models.ReservationConfirmed,
	}
	require.NoError(t, testDB.Create(futureRes).Error)

	eligible, err = svc.CanRate(context.Background(), futureRes.ID)
	require.NoError(t, err)
	assert.False(t, eligible, "experience has not happened yet")

	_, err = svc.SubmitRating(context.Background(), futureRes.ID, "guest-2", 5, "Rating before the event happens")
	assert.ErrorIs(t, err, service.ErrNotEligible)
}
