// Package render produces localized email copy for the trip planner.
// Subjects and body sentences come from golang.org/x/text message catalogs
// (one file per locale); long-form dates are formatted with monday, the
// locale-aware layout equivalent of the frontend's long-date format.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/goodsign/monday"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Email is a rendered subject and HTML body, ready to enqueue.
type Email struct {
	Subject  string
	BodyHTML string
}

// Renderer produces localized email copy for a fixed locale.
// Construct one per process; it is safe for concurrent use.
type Renderer struct {
	printer    *message.Printer
	dateLocale monday.Locale
	dateLayout string
}

// localeConfig pairs the monday date locale with the layout producing that
// locale's long-date form ("4 de agosto de 2024", "August 4, 2024").
type localeConfig struct {
	tag        language.Tag
	dateLocale monday.Locale
	dateLayout string
}

var locales = map[string]localeConfig{
	"pt-BR": {language.MustParse("pt-BR"), monday.LocalePtBR, "2 de January de 2006"},
	"en-US": {language.MustParse("en-US"), monday.LocaleEnUS, "January 2, 2006"},
}

// New constructs a Renderer for the given BCP 47 locale string.
// Supported locales: "pt-BR" and "en-US".
func New(locale string) (*Renderer, error) {
	cfg, ok := locales[locale]
	if !ok {
		return nil, fmt.Errorf("render.New: unsupported locale %q", locale)
	}
	return &Renderer{
		printer:    message.NewPrinter(cfg.tag),
		dateLocale: cfg.dateLocale,
		dateLayout: cfg.dateLayout,
	}, nil
}

// LongDate formats a timestamp as the locale's long-form date.
// Pure function of its input for a fixed locale: same timestamp, same string.
func (r *Renderer) LongDate(t time.Time) string {
	return monday.Format(t, r.dateLayout, r.dateLocale)
}

// bodyTemplate mirrors the HTML shell the product team ships in the web app's
// transactional emails. Sentences are localized before insertion; Intro
// carries <strong> markup and is inserted unescaped.
var bodyTemplate = template.Must(template.New("body").Parse(`<div style="font-family: sans-serif; font-size: 16px; line-height: 1.6;">
  <p>{{.Intro}}</p>
  <p></p>
  <p>{{.CTA}}</p>
  <p></p>
  <p><a href="{{.Link}}">{{.LinkText}}</a></p>
  <p></p>
  <p>{{.Ignore}}</p>
</div>`))

type bodyData struct {
	Intro    template.HTML
	CTA      string
	Link     string
	LinkText string
	Ignore   string
}

// InviteEmail renders the email sent to a newly invited participant.
// The subject embeds the destination and formatted start date; the body
// embeds the destination, both formatted dates, and the confirmation link.
func (r *Renderer) InviteEmail(destination string, startsAt, endsAt time.Time, confirmationURL string) (Email, error) {
	start := r.LongDate(startsAt)
	end := r.LongDate(endsAt)
	dest := template.HTMLEscapeString(destination)

	body, err := r.renderBody(bodyData{
		Intro:    template.HTML(r.printer.Sprintf("mail.invite.intro", dest, start, end)),
		CTA:      r.printer.Sprintf("mail.invite.cta"),
		Link:     confirmationURL,
		LinkText: r.printer.Sprintf("mail.invite.link_text"),
		Ignore:   r.printer.Sprintf("mail.ignore"),
	})
	if err != nil {
		return Email{}, fmt.Errorf("render.InviteEmail: %w", err)
	}

	return Email{
		Subject:  r.printer.Sprintf("mail.invite.subject", destination, start),
		BodyHTML: body,
	}, nil
}

// TripConfirmationEmail renders the email sent to the trip owner after
// creating a trip, asking them to confirm it.
func (r *Renderer) TripConfirmationEmail(destination string, startsAt, endsAt time.Time, confirmationURL string) (Email, error) {
	start := r.LongDate(startsAt)
	end := r.LongDate(endsAt)
	dest := template.HTMLEscapeString(destination)

	body, err := r.renderBody(bodyData{
		Intro:    template.HTML(r.printer.Sprintf("mail.trip_confirm.intro", dest, start, end)),
		CTA:      r.printer.Sprintf("mail.trip_confirm.cta"),
		Link:     confirmationURL,
		LinkText: r.printer.Sprintf("mail.trip_confirm.link_text"),
		Ignore:   r.printer.Sprintf("mail.ignore"),
	})
	if err != nil {
		return Email{}, fmt.Errorf("render.TripConfirmationEmail: %w", err)
	}

	return Email{
		Subject:  r.printer.Sprintf("mail.trip_confirm.subject", destination, start),
		BodyHTML: body,
	}, nil
}

func (r *Renderer) renderBody(data bodyData) (string, error) {
	var buf bytes.Buffer
	if err := bodyTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
