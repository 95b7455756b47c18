package mailer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wneessen/go-mail"
)

const (
	resultSubject  = "TOPSIS Result"
	resultBody     = "Please find the TOPSIS result attached."
	attachmentName = "result.csv"
)

// ErrInvalidAddress is returned for a malformed recipient address.
var ErrInvalidAddress = errors.New("mailer: invalid email format")

var validate = validator.New()

// ValidateAddress reports whether addr is a usable recipient.
func ValidateAddress(addr string) error {
	if err := validate.Var(addr, "required,email"); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidAddress, addr)
	}
	return nil
}

// Sender delivers a stored result file to a recipient.
type Sender interface {
	SendResult(ctx context.Context, to, resultPath string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	SSL      bool
	Timeout  time.Duration
}

// SMTPSender sends results over SMTP with PLAIN auth.
type SMTPSender struct {
	cfg    Config
	logger *slog.Logger
}

func NewSMTPSender(cfg Config, logger *slog.Logger) *SMTPSender {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMTPSender{cfg: cfg, logger: logger}
}

func (s *SMTPSender) SendResult(ctx context.Context, to, resultPath string) error {
	msg, err := s.message(to, resultPath)
	if err != nil {
		return err
	}

	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
		mail.WithTimeout(s.cfg.Timeout),
	}
	if s.cfg.SSL {
		opts = append(opts, mail.WithSSL())
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}
	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp client: %w", err)
	}

	start := time.Now()
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("email sending failed: %w", err)
	}
	s.logger.Info("result emailed", "to", to, "duration_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *SMTPSender) message(to, resultPath string) (*mail.Msg, error) {
	if err := ValidateAddress(to); err != nil {
		return nil, err
	}
	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return nil, fmt.Errorf("sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("recipient address: %w", err)
	}
	msg.Subject(resultSubject)
	msg.SetBodyString(mail.TypeTextPlain, resultBody)
	msg.AttachFile(resultPath, mail.WithFileName(attachmentName))
	return msg, nil
}
