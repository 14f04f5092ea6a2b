package domain

import (
	"errors"
	"strings"
	"time"

	"portfolio/backend/internal/platform/validate"
)

const (
	DefaultAuthorName  = "AnaMdTech"
	DefaultAuthorImage = "https://github.com/shadcn.png"
)

// ErrNotFound is returned when no post has the requested id.
var ErrNotFound = errors.New("post not found")

// Post is a blog post.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	ImageURL    string    `json:"imageUrl"`
	AuthorName  string    `json:"authorName"`
	AuthorImage string    `json:"authorImage"`
	Tags        []string  `json:"tags"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// Input is the body of a create request. Author fields and tags are optional.
type Input struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl"`
	AuthorName  string   `json:"authorName"`
	AuthorImage string   `json:"authorImage"`
	Tags        []string `json:"tags"`
}

// Patch is the body of an update request; nil fields are left unchanged.
type Patch struct {
	Title       *string   `json:"title"`
	Content     *string   `json:"content"`
	ImageURL    *string   `json:"imageUrl"`
	AuthorName  *string   `json:"authorName"`
	AuthorImage *string   `json:"authorImage"`
	Tags        *[]string `json:"tags"`
}

// New builds a post from in, filling defaults for the optional fields.
func New(id string, in Input, now time.Time) *Post {
	p := &Post{
		ID:          id,
		Title:       strings.TrimSpace(in.Title),
		Content:     in.Content,
		ImageURL:    strings.TrimSpace(in.ImageURL),
		AuthorName:  strings.TrimSpace(in.AuthorName),
		AuthorImage: strings.TrimSpace(in.AuthorImage),
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	p.applyDefaults()
	return p
}

// Apply copies the set fields of patch onto p.
func (p *Post) Apply(patch Patch, now time.Time) {
	if patch.Title != nil {
		p.Title = strings.TrimSpace(*patch.Title)
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*patch.ImageURL)
	}
	if patch.AuthorName != nil {
		p.AuthorName = strings.TrimSpace(*patch.AuthorName)
	}
	if patch.AuthorImage != nil {
		p.AuthorImage = strings.TrimSpace(*patch.AuthorImage)
	}
	if patch.Tags != nil {
		p.Tags = *patch.Tags
	}
	p.applyDefaults()
	p.UpdatedAt = now
}

func (p *Post) applyDefaults() {
	if p.AuthorName == "" {
		p.AuthorName = DefaultAuthorName
	}
	if p.AuthorImage == "" {
		p.AuthorImage = DefaultAuthorImage
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// Validate returns the first failed field check as a *validate.Error.
func (p *Post) Validate() error {
	return validate.First(
		validate.MinLen("title", p.Title, 5, "Title too short"),
		validate.MinLen("content", p.Content, 20, "Content too short"),
		validate.URL("imageUrl", p.ImageURL, "Invalid Cover Image"),
	)
}
