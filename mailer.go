package pressroom

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	mail "github.com/wneessen/go-mail"
)

// ShareMail is a rendered recommend-this-post email.
type ShareMail struct {
	To      string
	Subject string
	Body    string
}

// BuildShareMail formats the recommendation email for a post. postURL must
// be the absolute detail URL.
func BuildShareMail(form ShareForm, post Post, postURL string) ShareMail {
	return ShareMail{
		To:      form.To,
		Subject: fmt.Sprintf("%s (%s) recommends you read %s", form.Name, form.Email, post.Title),
		Body: fmt.Sprintf("Read %s at %s\n\n%s's comments: %s",
			post.Title, postURL, form.Name, form.Comments),
	}
}

// Mailer delivers share emails.
type Mailer interface {
	Send(ctx context.Context, m ShareMail) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	client *mail.Client
	from   string
}

// NewSMTPMailer builds an SMTP mailer from config. Auth is used only when
// a username is configured.
func NewSMTPMailer(cfg SiteConfig) (*SMTPMailer, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.SMTPUser != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.SMTPUser),
			mail.WithPassword(cfg.SMTPPassword),
		)
	}
	client, err := mail.NewClient(cfg.SMTPHost, opts...)
	if err != nil {
		return nil, fmt.Errorf("pressroom: smtp client: %w", err)
	}
	return &SMTPMailer{client: client, from: cfg.MailFrom}, nil
}

func (s *SMTPMailer) Send(ctx context.Context, m ShareMail) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("pressroom: mail from: %w", err)
	}
	if err := msg.To(m.To); err != nil {
		return fmt.Errorf("pressroom: mail to: %w", err)
	}
	msg.Subject(m.Subject)
	msg.SetBodyString(mail.TypeTextPlain, m.Body)
	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("pressroom: send mail: %w", err)
	}
	return nil
}

// LogMailer writes the message to the log instead of sending it. Used when
// no SMTP host is configured, so share forms keep working in development.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, m ShareMail) error {
	log.Info().
		Str("to", m.To).
		Str("subject", m.Subject).
		Str("body", m.Body).
		Msg("share email (smtp not configured)")
	return nil
}
