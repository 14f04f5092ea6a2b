package domain

import (
	"strings"
	"time"

	"portfolio/backend/internal/platform/validate"
)

// Message is a contact form submission, stored after the notification email is sent.
type Message struct {
	ID        string
	Sender    string
	Email     string
	Content   string
	CreatedAt time.Time
}

// Input is the body of POST /contact.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Normalize trims the input fields.
func (in Input) Normalize() Input {
	return Input{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Message: strings.TrimSpace(in.Message),
	}
}

func (in Input) Validate() error {
	return validate.First(
		validate.MinLen("name", in.Name, 1, "Name is required"),
		validate.Email("email", in.Email, 5),
		validate.MinLen("message", in.Message, 1, "Message is required"),
	)
}
