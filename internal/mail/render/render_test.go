package render_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plannerhq/planner-api/internal/mail/render"
)

func mustRenderer(t *testing.T, locale string) *render.Renderer {
	t.Helper()
	r, err := render.New(locale)
	require.NoError(t, err)
	return r
}

func TestNew_UnsupportedLocale(t *testing.T) {
	_, err := render.New("fr-FR")
	assert.Error(t, err)
}

func TestLongDate(t *testing.T) {
	date := time.Date(2024, 8, 4, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "4 de agosto de 2024", mustRenderer(t, "pt-BR").LongDate(date))
	assert.Equal(t, "August 4, 2024", mustRenderer(t, "en-US").LongDate(date))
}

func TestInviteEmail_PortugueseCopy(t *testing.T) {
	r := mustRenderer(t, "pt-BR")

	starts := time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC)
	ends := time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC)
	email, err := r.InviteEmail("Florianópolis, SC", starts, ends, "https://api.plann.er/participants/abc/confirm")

	require.NoError(t, err)
	assert.Equal(t, "Confirme sua presença na viagem para Florianópolis, SC em 4 de agosto de 2024", email.Subject)
	assert.Contains(t, email.BodyHTML, "<strong>Florianópolis, SC</strong>")
	assert.Contains(t, email.BodyHTML, "4 de agosto de 2024")
	assert.Contains(t, email.BodyHTML, "11 de agosto de 2024")
	assert.Contains(t, email.BodyHTML, `<a href="https://api.plann.er/participants/abc/confirm">Confirmar presença</a>`)
}

func TestInviteEmail_EnglishCopy(t *testing.T) {
	r := mustRenderer(t, "en-US")

	starts := time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC)
	ends := time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC)
	email, err := r.InviteEmail("Lisbon", starts, ends, "https://api.plann.er/participants/abc/confirm")

	require.NoError(t, err)
	assert.Equal(t, "Confirm your spot on the trip to Lisbon on August 4, 2024", email.Subject)
	assert.Contains(t, email.BodyHTML, "<strong>Lisbon</strong>")
	assert.Contains(t, email.BodyHTML, "Confirm attendance")
}

func TestTripConfirmationEmail_PortugueseCopy(t *testing.T) {
	r := mustRenderer(t, "pt-BR")

	starts := time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC)
	ends := time.Date(2024, 8, 11, 0, 0, 0, 0, time.UTC)
	email, err := r.TripConfirmationEmail("Florianópolis, SC", starts, ends, "https://api.plann.er/trips/xyz/confirm")

	require.NoError(t, err)
	assert.Equal(t, "Confirme sua viagem para Florianópolis, SC em 4 de agosto de 2024", email.Subject)
	assert.Contains(t, email.BodyHTML, "Confirmar viagem")
	assert.Contains(t, email.BodyHTML, `href="https://api.plann.er/trips/xyz/confirm"`)
}

func TestInviteEmail_EscapesDestinationInBody(t *testing.T) {
	r := mustRenderer(t, "en-US")

	starts := time.Date(2024, 8, 4, 0, 0, 0, 0, time.UTC)
	email, err := r.InviteEmail("<script>alert(1)</script>", starts, starts, "https://api.plann.er/x")

	require.NoError(t, err)
	assert.NotContains(t, email.BodyHTML, "<script>")
}
