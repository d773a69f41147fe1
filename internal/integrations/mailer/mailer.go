// Package mailer отправляет письма с вложениями через SMTP.
// Отправка для бизнес-операций всегда best-effort: вызывающий код
// логирует ошибку и не откатывает операцию.
package mailer

import (
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

var ErrSendFailed = errors.New("mailer: failed to send message")

// SMTPSender отправитель писем поверх net/smtp без аутентификации
// (релей во внутренней сети) либо с PLAIN-аутентификацией
type SMTPSender struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPSender создает отправителя; auth может быть nil для открытого релея
func NewSMTPSender(host string, port int, from string, auth smtp.Auth) *SMTPSender {
	return &SMTPSender{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
		auth: auth,
	}
}

// SendWithAttachment отправляет письмо с одним вложением (multipart/mixed)
func (s *SMTPSender) SendWithAttachment(to, subject, body string, attachment []byte, filename, mimeType string) error {
	msg := buildMIMEMessage(s.from, to, subject, body, attachment, filename, mimeType)

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, msg); err != nil {
		return fmt.Errorf("%w: to=%s: %v", ErrSendFailed, to, err)
	}

	return nil
}

func buildMIMEMessage(from, to, subject, body string, attachment []byte, filename, mimeType string) []byte {
	boundary := fmt.Sprintf("appointme-%d", time.Now().UnixNano())

	var b strings.Builder
	b.WriteString(fmt.Sprintf("From: %s\r\n", from))
	b.WriteString(fmt.Sprintf("To: %s\r\n", to))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: multipart/mixed; boundary=%q\r\n", boundary))
	b.WriteString("\r\n")

	// Текстовая часть
	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")

	// Вложение
	if len(attachment) > 0 {
		b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
		b.WriteString(fmt.Sprintf("Content-Type: %s; name=%q\r\n", mimeType, filename))
		b.WriteString("Content-Transfer-Encoding: base64\r\n")
		b.WriteString(fmt.Sprintf("Content-Disposition: attachment; filename=%q\r\n", filename))
		b.WriteString("\r\n")
		b.WriteString(wrapBase64(base64.StdEncoding.EncodeToString(attachment)))
		b.WriteString("\r\n")
	}

	b.WriteString(fmt.Sprintf("--%s--\r\n", boundary))

	return []byte(b.String())
}

// wrapBase64 переносит base64 по 76 символов (RFC 2045)
func wrapBase64(s string) string {
	const lineLen = 76

	var b strings.Builder
	for len(s) > lineLen {
		b.WriteString(s[:lineLen])
		b.WriteString("\r\n")
		s = s[lineLen:]
	}
	b.WriteString(s)

	return b.String()
}

// NoopSender заглушка для окружений без SMTP (отправка отключена в конфиге)
type NoopSender struct {
	log Logger
}

// NewNoopSender создает отправителя-заглушку
func NewNoopSender(log Logger) *NoopSender {
	return &NoopSender{log: log}
}

// SendWithAttachment логирует факт вызова и ничего не отправляет
func (s *NoopSender) SendWithAttachment(to, subject, _ string, _ []byte, filename, _ string) error {
	s.log.Info("mailer disabled, skipping message to=%s subject=%q attachment=%s", to, subject, filename)
	return nil
}
