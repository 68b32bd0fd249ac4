package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	lang := language.MustParse("pt-BR")

	message.SetString(lang, "mail.invite.subject", "Confirme sua presença na viagem para %s em %s")
	message.SetString(lang, "mail.invite.intro", "Você foi convidado(a) para participar de uma viagem para <strong>%s</strong> nas datas de <strong>%s</strong> até <strong>%s</strong>.")
	message.SetString(lang, "mail.invite.cta", "Para confirmar sua presença na viagem, clique no link abaixo:")
	message.SetString(lang, "mail.invite.link_text", "Confirmar presença")
	message.SetString(lang, "mail.trip_confirm.subject", "Confirme sua viagem para %s em %s")
	message.SetString(lang, "mail.trip_confirm.intro", "Você solicitou a criação de uma viagem para <strong>%s</strong> nas datas de <strong>%s</strong> até <strong>%s</strong>.")
	message.SetString(lang, "mail.trip_confirm.cta", "Para confirmar sua viagem, clique no link abaixo:")
	message.SetString(lang, "mail.trip_confirm.link_text", "Confirmar viagem")
	message.SetString(lang, "mail.ignore", "Caso você não saiba do que se trata esse e-mail, apenas ignore.")
}
