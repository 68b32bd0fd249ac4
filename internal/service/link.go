package service

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/repo"
)

// LinkService implements business logic for trip links.
type LinkService struct {
	trips repo.TripRepo
	links repo.LinkRepo
}

// NewLinkService constructs a LinkService.
func NewLinkService(trips repo.TripRepo, links repo.LinkRepo) *LinkService {
	return &LinkService{trips: trips, links: links}
}

// Create validates and persists a new link on an existing trip.
func (s *LinkService) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, l.TripID); err != nil {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w", err)
	}

	if strings.TrimSpace(l.Title) == "" {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w: title is required", domain.ErrValidation)
	}
	u, err := url.Parse(l.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return domain.Link{}, fmt.Errorf("service.LinkService.Create: %w: url must be a valid http(s) URL", domain.ErrValidation)
	}

	return s.links.Create(ctx, l)
}

// ListByTrip returns all links for the trip.
// Returns domain.ErrNotFound if the trip itself does not exist.
func (s *LinkService) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTrip: %w", err)
	}

	links, err := s.links.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.LinkService.ListByTrip: %w", err)
	}
	if links == nil {
		links = []domain.Link{}
	}
	return links, nil
}
