package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"portfolio/backend/internal/platform/validate"
)

const (
	DefaultRole   = "Developer"
	DefaultClient = "Self"
)

// ErrNotFound is returned when no project has the requested id.
var ErrNotFound = errors.New("project not found")

// Project is a portfolio entry.
type Project struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl"`
	LiveLink    string    `json:"liveLink"`
	GithubLink  string    `json:"githubLink"`
	TechStack   []string  `json:"techStack"`
	Role        string    `json:"role"`
	Year        string    `json:"year"`
	Client      string    `json:"client"`
	IsFeatured  bool      `json:"isFeatured"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the body of a create request.
type Input struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	ImageURL    string   `json:"imageUrl"`
	LiveLink    string   `json:"liveLink"`
	GithubLink  string   `json:"githubLink"`
	TechStack   []string `json:"techStack"`
	Role        string   `json:"role"`
	Year        string   `json:"year"`
	Client      string   `json:"client"`
	IsFeatured  bool     `json:"isFeatured"`
}

// Patch is the body of an update request; nil fields are left unchanged.
type Patch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	LiveLink    *string   `json:"liveLink"`
	GithubLink  *string   `json:"githubLink"`
	TechStack   *[]string `json:"techStack"`
	Role        *string   `json:"role"`
	Year        *string   `json:"year"`
	Client      *string   `json:"client"`
	IsFeatured  *bool     `json:"isFeatured"`
}

// New builds a project from in. Role, year and client default to
// "Developer", the year of now and "Self".
func New(id string, in Input, now time.Time) *Project {
	p := &Project{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		LiveLink:    strings.TrimSpace(in.LiveLink),
		GithubLink:  strings.TrimSpace(in.GithubLink),
		TechStack:   in.TechStack,
		Role:        strings.TrimSpace(in.Role),
		Year:        strings.TrimSpace(in.Year),
		Client:      strings.TrimSpace(in.Client),
		IsFeatured:  in.IsFeatured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.applyDefaults(now)
	return p
}

// Apply copies the set fields of patch onto p.
func (p *Project) Apply(patch Patch, now time.Time) {
	setString := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	setString(&p.Title, patch.Title)
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	setString(&p.ImageURL, patch.ImageURL)
	setString(&p.LiveLink, patch.LiveLink)
	setString(&p.GithubLink, patch.GithubLink)
	setString(&p.Role, patch.Role)
	setString(&p.Year, patch.Year)
	setString(&p.Client, patch.Client)
	if patch.TechStack != nil {
		p.TechStack = *patch.TechStack
	}
	if patch.IsFeatured != nil {
		p.IsFeatured = *patch.IsFeatured
	}
	p.applyDefaults(p.CreatedAt)
	p.UpdatedAt = now
}

func (p *Project) applyDefaults(now time.Time) {
	if p.Role == "" {
		p.Role = DefaultRole
	}
	if p.Year == "" {
		p.Year = strconv.Itoa(now.Year())
	}
	if p.Client == "" {
		p.Client = DefaultClient
	}
	if p.TechStack == nil {
		p.TechStack = []string{}
	}
}

// Validate returns the first failed field check as a *validate.Error.
func (p *Project) Validate() error {
	var stack error
	if len(p.TechStack) == 0 {
		stack = validate.Fail("techStack", "Add at least one tech")
	}
	return validate.First(
		validate.MinLen("title", p.Title, 3, "Title required"),
		validate.MinLen("description", p.Description, 10, "Description too short"),
		validate.URL("imageUrl", p.ImageURL, "Must be a valid URL"),
		stack,
		validate.OptionalURL("liveLink", p.LiveLink, "Must be a valid URL"),
		validate.OptionalURL("githubLink", p.GithubLink, "Must be a valid URL"),
	)
}
