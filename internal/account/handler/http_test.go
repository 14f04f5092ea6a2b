package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/steinfletcher/apitest"

	"portfolio/backend/internal/account/domain"
	"portfolio/backend/internal/account/service"
	"portfolio/backend/internal/security"
	"portfolio/backend/internal/server/middleware"
)

type memAccountRepo struct {
	mu      sync.Mutex
	byEmail map[string]*domain.Account
	err     error
}

func (r *memAccountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.byEmail[email], nil
}

func (r *memAccountRepo) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, a := range r.byEmail {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (r *memAccountRepo) Create(ctx context.Context, a *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byEmail[a.Email]; ok {
		return domain.ErrEmailTaken
	}
	r.byEmail[a.Email] = a
	return nil
}

func newTestHandler(t *testing.T, opts Options) (*AuthHandler, *memAccountRepo, *security.TokenCodec) {
	t.Helper()
	repo := &memAccountRepo{byEmail: map[string]*domain.Account{}}
	codec := security.NewTestTokenCodec()
	svc, err := service.NewAuthService(repo, security.NewHasher(4), codec)
	if err != nil {
		t.Fatal(err)
	}
	return NewAuthHandler(svc, opts), repo, codec
}

const registerBody = `{"email":"owner@example.com","password":"correct-horse","username":"Ana","profileImage":"https://img.example/ana.png"}`

func TestRegisterThenLogin(t *testing.T) {
	h, _, codec := newTestHandler(t, Options{RegistrationEnabled: true})

	var userID string
	apitest.New().
		HandlerFunc(h.Register).
		Post("/api/auth/register").
		JSON(registerBody).
		Expect(t).
		Status(http.StatusCreated).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body registerResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.Message != "Account created" || body.UserID == "" {
				return fmt.Errorf("unexpected body %+v", body)
			}
			userID = body.UserID
			return nil
		}).
		End()

	apitest.New().
		HandlerFunc(h.Login).
		Post("/api/auth/login").
		JSON(`{"email":"Owner@Example.com","password":"correct-horse"}`).
		Expect(t).
		Status(http.StatusOK).
		Cookies(apitest.NewCookie("token").Path("/").HttpOnly(true).Secure(false).MaxAge(604800)).
		Assert(func(res *http.Response, _ *http.Request) error {
			var body loginResponse
			if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
				return err
			}
			if body.Message != "Login successful" {
				return fmt.Errorf("message = %q", body.Message)
			}
			want := domain.PublicProfile{ID: userID, Name: "Ana", Email: "owner@example.com", ProfileImage: "https://img.example/ana.png"}
			if body.User != want {
				return fmt.Errorf("user = %+v, want %+v", body.User, want)
			}
			claims, err := codec.Verify(body.Token)
			if err != nil {
				return err
			}
			if claims.AccountID != userID {
				return fmt.Errorf("token accountId = %q, want %q", claims.AccountID, userID)
			}
			for _, c := range res.Cookies() {
				if c.Name == "token" {
					if c.Value != body.Token {
						return errors.New("cookie and body token differ")
					}
					if c.SameSite != http.SameSiteStrictMode {
						return fmt.Errorf("SameSite = %v, want Strict", c.SameSite)
					}
				}
			}
			return nil
		}).
		End()
}

func TestLogin_SecureCookieInProduction(t *testing.T) {
	h, _, _ := newTestHandler(t, Options{RegistrationEnabled: true, SecureCookie: true})
	apitest.New().HandlerFunc(h.Register).Post("/register").JSON(registerBody).
		Expect(t).Status(http.StatusCreated).End()

	apitest.New().
		HandlerFunc(h.Login).
		Post("/login").
		JSON(`{"email":"owner@example.com","password":"correct-horse"}`).
		Expect(t).
		Status(http.StatusOK).
		Cookies(apitest.NewCookie("token").Secure(true).HttpOnly(true)).
		End()
}

func TestLogin_Failures(t *testing.T) {
	h, _, _ := newTestHandler(t, Options{RegistrationEnabled: true})
	apitest.New().HandlerFunc(h.Register).Post("/register").JSON(registerBody).
		Expect(t).Status(http.StatusCreated).End()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown email", `{"email":"nobody@example.com","password":"correct-horse"}`, `{"error":"Invalid credentials"}`},
		{"wrong password", `{"email":"owner@example.com","password":"wrong-horse"}`, `{"error":"Invalid credentials"}`},
		{"short email", `{"email":"own","password":"correct-horse"}`, `{"error":"Email too short"}`},
		{"malformed email", `{"email":"owner","password":"correct-horse"}`, `{"error":"Invalid email format"}`},
		{"short password", `{"email":"owner@example.com","password":"123"}`, `{"error":"Password must be at least 6 characters"}`},
		{"not json", `email=owner`, `{"error":"Invalid input"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apitest.New().
				HandlerFunc(h.Login).
				Post("/login").
				Body(tt.body).
				Header("Content-Type", "application/json").
				Expect(t).
				Status(http.StatusBadRequest).
				Body(tt.want).
				CookieNotPresent("token").
				End()
		})
	}
}

func TestLogin_StoreFailureIs500(t *testing.T) {
	h, repo, _ := newTestHandler(t, Options{})
	repo.err = errors.New("connection refused")

	apitest.New().
		HandlerFunc(h.Login).
		Post("/login").
		JSON(`{"email":"owner@example.com","password":"correct-horse"}`).
		Expect(t).
		Status(http.StatusInternalServerError).
		Body(`{"error":"Server error during login"}`).
		End()
}

func TestRegister_Failures(t *testing.T) {
	h, _, _ := newTestHandler(t, Options{RegistrationEnabled: true})
	apitest.New().HandlerFunc(h.Register).Post("/register").JSON(registerBody).
		Expect(t).Status(http.StatusCreated).End()

	apitest.New().HandlerFunc(h.Register).Post("/register").JSON(registerBody).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"User already exists"}`).
		End()

	apitest.New().HandlerFunc(h.Register).Post("/register").
		JSON(`{"email":"second@example.com","password":"abc"}`).
		Expect(t).
		Status(http.StatusBadRequest).
		Body(`{"error":"Password must be at least 6 characters"}`).
		End()
}

func TestRegister_Disabled(t *testing.T) {
	h, repo, _ := newTestHandler(t, Options{RegistrationEnabled: false})

	apitest.New().HandlerFunc(h.Register).Post("/register").JSON(registerBody).
		Expect(t).
		Status(http.StatusNotFound).
		End()

	if len(repo.byEmail) != 0 {
		t.Fatal("disabled registration must not create accounts")
	}
}

func meAs(h *AuthHandler, accountID string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.Me(w, r, middleware.Identity{AccountID: accountID})
	}
}

func TestMe(t *testing.T) {
	h, repo, _ := newTestHandler(t, Options{RegistrationEnabled: true})
	apitest.New().HandlerFunc(h.Register).Post("/register").JSON(registerBody).
		Expect(t).Status(http.StatusCreated).End()
	owner := repo.byEmail["owner@example.com"]

	apitest.New().
		HandlerFunc(meAs(h, owner.ID)).
		Get("/me").
		Expect(t).
		Status(http.StatusOK).
		Body(fmt.Sprintf(`{"user":{"id":%q,"name":"Ana","email":"owner@example.com","profileImage":"https://img.example/ana.png"}}`, owner.ID)).
		End()

	apitest.New().
		HandlerFunc(meAs(h, "0f8fad5b-d9cb-469f-a165-70867728950e")).
		Get("/me").
		Expect(t).
		Status(http.StatusNotFound).
		Body(`{"error":"User not found"}`).
		End()

	repo.err = errors.New("connection refused")
	apitest.New().
		HandlerFunc(meAs(h, owner.ID)).
		Get("/me").
		Expect(t).
		Status(http.StatusInternalServerError).
		Body(`{"error":"Server error"}`).
		End()
}
