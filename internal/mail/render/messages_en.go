package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("en-US")

	message.SetString(lang, "mail.invite.subject", "Confirm your spot on the trip to %s on %s")
	message.SetString(lang, "mail.invite.intro", "You have been invited to join a trip to <strong>%s</strong> from <strong>%s</strong> to <strong>%s</strong>.")
	message.SetString(lang, "mail.invite.cta", "To confirm your spot on the trip, click the link below:")
	message.SetString(lang, "mail.invite.link_text", "Confirm attendance")
	message.SetString(lang, "mail.trip_confirm.subject", "Confirm your trip to %s on %s")
	message.SetString(lang, "mail.trip_confirm.intro", "You requested the creation of a trip to <strong>%s</strong> from <strong>%s</strong> to <strong>%s</strong>.")
	message.SetString(lang, "mail.trip_confirm.cta", "To confirm your trip, click the link below:")
	message.SetString(lang, "mail.trip_confirm.link_text", "Confirm trip")
	message.SetString(lang, "mail.ignore", "If you were not expecting this email, you can safely ignore it.")
}
