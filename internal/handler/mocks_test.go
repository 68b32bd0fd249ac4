package handler_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner-api/internal/domain"
	"github.com/plannerhq/planner-api/internal/handler"
	"github.com/plannerhq/planner-api/internal/service"
)

// Hand-written test doubles for the servicer interfaces, function-field style.
// Set only the methods a test exercises; calling an unset one panics, which
// means the handler took an unexpected path.

type mockTripServicer struct {
	create  func(ctx context.Context, in service.CreateTripInput) (domain.Trip, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
	update  func(ctx context.Context, trip domain.Trip) (domain.Trip, error)
	confirm func(ctx context.Context, id uuid.UUID) (domain.Trip, error)
}

func (m *mockTripServicer) Create(ctx context.Context, in service.CreateTripInput) (domain.Trip, error) {
	return m.create(ctx, in)
}
func (m *mockTripServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.getByID(ctx, id)
}
func (m *mockTripServicer) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	return m.update(ctx, trip)
}
func (m *mockTripServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	return m.confirm(ctx, id)
}

var _ handler.TripServicer = (*mockTripServicer)(nil)

type mockInviteServicer struct {
	createInvite func(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error)
}

func (m *mockInviteServicer) CreateInvite(ctx context.Context, tripID uuid.UUID, email string) (domain.Participant, error) {
	return m.createInvite(ctx, tripID, email)
}

var _ handler.InviteServicer = (*mockInviteServicer)(nil)

type mockParticipantServicer struct {
	getByID    func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	confirm    func(ctx context.Context, id uuid.UUID) (domain.Participant, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error)
}

func (m *mockParticipantServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.getByID(ctx, id)
}
func (m *mockParticipantServicer) Confirm(ctx context.Context, id uuid.UUID) (domain.Participant, error) {
	return m.confirm(ctx, id)
}
func (m *mockParticipantServicer) ListByTrip(ctx context.Context, tripID uuid.UUID, params domain.PaginationParams) ([]domain.Participant, int64, error) {
	return m.listByTrip(ctx, tripID, params)
}

var _ handler.ParticipantServicer = (*mockParticipantServicer)(nil)

type mockActivityServicer struct {
	create     func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error)
}

func (m *mockActivityServicer) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.ActivityDay, error) {
	return m.listByTrip(ctx, tripID)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

type mockLinkServicer struct {
	create     func(ctx context.Context, l domain.Link) (domain.Link, error)
	listByTrip func(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error)
}

func (m *mockLinkServicer) Create(ctx context.Context, l domain.Link) (domain.Link, error) {
	return m.create(ctx, l)
}
func (m *mockLinkServicer) ListByTrip(ctx context.Context, tripID uuid.UUID) ([]domain.Link, error) {
	return m.listByTrip(ctx, tripID)
}

var _ handler.LinkServicer = (*mockLinkServicer)(nil)

// serverMocks bundles one mock per servicer so tests only fill in what they use.
type serverMocks struct {
	trips        *mockTripServicer
	invites      *mockInviteServicer
	participants *mockParticipantServicer
	activities   *mockActivityServicer
	links        *mockLinkServicer
}

const testWebBaseURL = "https://plann.er"

// newTestRouter builds a chi router with all routes registered against the
// given mocks, exactly as cmd/api does in production.
func newTestRouter(m serverMocks) http.Handler {
	if m.trips == nil {
		m.trips = &mockTripServicer{}
	}
	if m.invites == nil {
		m.invites = &mockInviteServicer{}
	}
	if m.participants == nil {
		m.participants = &mockParticipantServicer{}
	}
	if m.activities == nil {
		m.activities = &mockActivityServicer{}
	}
	if m.links == nil {
		m.links = &mockLinkServicer{}
	}

	r := chi.NewRouter()
	srv := handler.NewServer(m.trips, m.invites, m.participants, m.activities, m.links, testWebBaseURL)
	srv.RegisterRoutes(r)
	return r
}

// doJSON performs a request with an optional JSON body and returns the recorder.
func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rdr io.Reader
	if body != "" {
		rdr = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rdr)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON response body into a map.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// errorCode digs the error.code field out of an error response body.
func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	body := decodeBody(t, rec)
	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "response has no error object: %s", rec.Body.String())
	code, _ := errObj["code"].(string)
	return code
}
