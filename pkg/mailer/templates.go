package mailer

import (
	"bytes"
	"fmt"
	"html/template"
)

// TemplateVerifyEmail is the confirmation-code email sent after registration
// and on resend.
const TemplateVerifyEmail = "verify_email"

var verifyEmailHTML = template.Must(template.New(TemplateVerifyEmail).Parse(`<!doctype html>
<html lang="pt-BR">
  <body style="font-family:Arial,sans-serif;color:#333">
    <h2>Confirme seu e-mail</h2>
    <p>Olá,</p>
    <p>Use o código abaixo para ativar sua conta no Caça-Preço:</p>
    <p style="font-size:28px;letter-spacing:6px;font-weight:bold">{{.Codigo}}</p>
    <p>O código expira em {{.ExpiraEm}}.</p>
    <p>Se você não criou esta conta, ignore esta mensagem.</p>
  </body>
</html>`))

// Render produces the subject, text and HTML bodies for a template job.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	switch name {
	case TemplateVerifyEmail:
		var buf bytes.Buffer
		if err = verifyEmailHTML.Execute(&buf, data); err != nil {
			return "", "", "", err
		}
		subject = "Caça-Preço: confirme seu e-mail"
		text = fmt.Sprintf("Seu código de verificação é %v. Ele expira em %v.", data["Codigo"], data["ExpiraEm"])
		return subject, text, buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("template desconhecido: %q", name)
	}
}
