package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"github.com/google/uuid"

	"portfolio/backend/internal/contact/domain"
	"portfolio/backend/internal/contact/mailer"
	"portfolio/backend/internal/contact/repository"
)

// Mailer delivers the owner notification. Implemented by *mailer.ResendClient.
type Mailer interface {
	Send(ctx context.Context, e mailer.Email) error
}

// ContactService emails the site owner and records the message. The message
// is only stored once the email was accepted.
type ContactService struct {
	mailer Mailer
	repo   repository.Repository
	now    func() time.Time
}

func NewContactService(m Mailer, repo repository.Repository) *ContactService {
	return &ContactService{mailer: m, repo: repo, now: func() time.Time { return time.Now().UTC() }}
}

// Send validates in, emails it and stores it.
func (s *ContactService) Send(ctx context.Context, in domain.Input) error {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return err
	}
	if err := s.mailer.Send(ctx, notification(in)); err != nil {
		return err
	}
	return s.repo.Create(ctx, &domain.Message{
		ID:        uuid.NewString(),
		Sender:    in.Name,
		Email:     in.Email,
		Content:   in.Message,
		CreatedAt: s.now(),
	})
}

func notification(in domain.Input) mailer.Email {
	return mailer.Email{
		Subject: "New Portfolio Contact: " + in.Name,
		ReplyTo: in.Email,
		HTML: fmt.Sprintf(`<h3>New Message from Portfolio</h3>
<p><strong>From:</strong> %s (%s)</p>
<p><strong>Message:</strong></p>
<blockquote style="background: #f9f9f9; padding: 10px; border-left: 5px solid #00f3ff;">%s</blockquote>`,
			html.EscapeString(in.Name), html.EscapeString(in.Email), html.EscapeString(in.Message)),
	}
}
