package mail

import (
	"fmt"
	"strconv"

	gomail "gopkg.in/gomail.v2"

	"github.com/Skotchmaster/laptop_shop/internal/config"
)

// Sender delivers password-reset mail. Implemented over SMTP in production
// and by fakes in tests.
type Sender interface {
	SendResetPasswordEmail(to, otpCode string) error
}

type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	port, err := strconv.Atoi(cfg.SMTP_PORT)
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT %q: %w", cfg.SMTP_PORT, err)
	}
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.SMTP_HOST, port, cfg.SMTP_USER, cfg.SMTP_PASSWORD),
		from:   cfg.MAIL_FROM,
	}, nil
}

func (s *SMTPSender) SendResetPasswordEmail(to, otpCode string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Password reset code")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your password reset code is %s. It expires in 15 minutes.", otpCode))

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}
	return nil
}
