package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

// ActivityService implements business logic for itinerary activities.
type ActivityService struct {
	trips      repo.TripRepo
	activities repo.ActivityRepo
}

// NewActivityService constructs an ActivityService.
func NewActivityService(trips repo.TripRepo, activities repo.ActivityRepo) *ActivityService {
	return &ActivityService{trips: trips, activities: activities}
}

// Create validates and persists a new activity. The activity must occur
// within the owning trip's date window, inclusive on both ends.
func (s *ActivityService) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	trip, err := s.trips.GetByID(ctx, a.TripID)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}

	if strings.TrimSpace(a.Title) == "" {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w: title is required", domain.ErrValidation)
	}
	if a.OccursAt.Before(trip.StartsAt) || a.OccursAt.After(trip.EndsAt) {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w: activity date is outside the trip dates", domain.ErrValidation)
	}

	return s.activities.Create(ctx, a)
}

// ListByTrip returns the trip's itinerary grouped by calendar day: one entry
// per day from the trip's start to its end (inclusive), each holding that
// day's activities ordered ascending by occurrence time. Days without
// activities appear with an empty slice.
func (s *ActivityService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error) {
	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}

	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByTrip: %w", err)
	}

	return groupByDay(trip, activities), nil
}

// groupByDay buckets the (already-sorted) activities into one entry per trip
// day. Bucketing is by UTC calendar date.
func groupByDay(trip domain.Trip, activities []domain.Activity) []domain.ActivityDay {
	var days []domain.ActivityDay
	last := dateOf(trip.EndsAt)

	for d := dateOf(trip.StartsAt); !d.After(last); d = d.AddDate(0, 0, 1) {
		day := domain.ActivityDay{Date: d, Activities: []domain.Activity{}}
		for _, a := range activities {
			if dateOf(a.OccursAt).Equal(d) {
				day.Activities = append(day.Activities, a)
			}
		}
		days = append(days, day)
	}
	return days
}

// dateOf truncates a timestamp to midnight UTC.
func dateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
