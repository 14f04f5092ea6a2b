package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio/backend/internal/account/domain"
	"portfolio/backend/internal/platform/validate"
	"portfolio/backend/internal/security"
)

// Sentinel errors for the auth service; the HTTP handler maps them to status codes.
var (
	// ErrValidation matches malformed login or registration input.
	ErrValidation = validate.ErrInvalid
	// ErrInvalidCredentials is returned for an unknown email and for a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAlreadyExists is returned by Register when the email is taken.
	ErrAlreadyExists = errors.New("account already exists")
	// ErrAccountNotFound is returned by Profile when the token's account no longer exists.
	ErrAccountNotFound = errors.New("account not found")
)

const (
	minEmailLen    = 5
	minPasswordLen = 6
)

// AccountRepo is the minimal credential store needed by the auth service.
type AccountRepo interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	Create(ctx context.Context, a *domain.Account) error
}

// LoginResult is the outcome of a successful Login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Account   domain.PublicProfile
}

// RegisterInput carries the fields of a new account.
type RegisterInput struct {
	Email        string
	Password     string
	Name         string
	ProfileImage string
}

// AuthService verifies credentials and issues session tokens.
type AuthService struct {
	accounts AccountRepo
	hasher   *security.Hasher
	tokens   *security.TokenCodec
	// dummyDigest is compared against when the email is unknown so both
	// failure paths pay for one bcrypt comparison.
	dummyDigest string
}

// NewAuthService returns an AuthService with the given dependencies.
func NewAuthService(accounts AccountRepo, hasher *security.Hasher, tokens *security.TokenCodec) (*AuthService, error) {
	dummy, err := hasher.Hash(uuid.NewString())
	if err != nil {
		return nil, err
	}
	return &AuthService{
		accounts:    accounts,
		hasher:      hasher,
		tokens:      tokens,
		dummyDigest: dummy,
	}, nil
}

// TokenTTL is the lifetime of tokens issued by Login.
func (s *AuthService) TokenTTL() time.Duration {
	return s.tokens.TTL()
}

// Login authenticates with email and password and returns a signed session token.
// Input is validated before the store is touched. Login never mutates the store.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		s.hasher.Compare(s.dummyDigest, password)
		return nil, ErrInvalidCredentials
	}
	if !s.hasher.Compare(account.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}
	token, expiresAt, err := s.tokens.Sign(account.ID)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Account:   account.Public(),
	}, nil
}

// Register creates an account and returns its id. It is an administrative
// operation; the password hash is never returned.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	email := domain.NormalizeEmail(in.Email)
	if err := validateCredentials(email, in.Password); err != nil {
		return "", err
	}
	profileImage := strings.TrimSpace(in.ProfileImage)
	if err := validate.OptionalURL("profileImage", profileImage, "Invalid profile image URL"); err != nil {
		return "", err
	}
	existing, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", ErrAlreadyExists
	}
	hashed, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		Name:         strings.TrimSpace(in.Name),
		ProfileImage: profileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := account.Validate(); err != nil {
		return "", err
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", ErrAlreadyExists
		}
		return "", err
	}
	return account.ID, nil
}

// Profile returns the public profile of the account a verified token was issued to.
func (s *AuthService) Profile(ctx context.Context, accountID string) (domain.PublicProfile, error) {
	account, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return domain.PublicProfile{}, err
	}
	if account == nil {
		return domain.PublicProfile{}, ErrAccountNotFound
	}
	return account.Public(), nil
}

func validateCredentials(email, password string) error {
	return validate.First(
		validate.Email("email", email, minEmailLen),
		validate.MinLen("password", password, minPasswordLen, "Password must be at least 6 characters"),
	)
}
