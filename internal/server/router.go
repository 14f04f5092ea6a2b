package server

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"

	accounthandler "portfolio/backend/internal/account/handler"
	"portfolio/backend/internal/chat/assistant"
	chathandler "portfolio/backend/internal/chat/handler"
	contacthandler "portfolio/backend/internal/contact/handler"
	healthhandler "portfolio/backend/internal/health/handler"
	"portfolio/backend/internal/platform/httpx"
	posthandler "portfolio/backend/internal/post/handler"
	projecthandler "portfolio/backend/internal/project/handler"
	"portfolio/backend/internal/server/middleware"
)

// Deps holds the services behind the HTTP handlers.
type Deps struct {
	// Auth backs /auth/login, /auth/register and /auth/me.
	Auth accounthandler.AuthService
	// Tokens verifies session tokens for the protected routes.
	Tokens   middleware.TokenVerifier
	Posts    posthandler.PostService
	Projects projecthandler.ProjectService
	Contact  contacthandler.ContactService
	// Chat answers /chat. Nil runs the chat in demo mode.
	Chat assistant.Responder
	// HealthPinger is used by the health check (e.g. *pgxpool.Pool). If nil, the check skips the DB ping.
	HealthPinger healthhandler.Pinger
}

// Options configures routing and the middleware stack.
type Options struct {
	// APIPrefix is prepended to every API route; the health check stays at "/".
	APIPrefix           string
	Production          bool
	SecureCookie        bool
	RegistrationEnabled bool
	AllowedOrigins      []string
	Logger              zerolog.Logger
}

// NewRouter mounts every route and wraps the router in the middleware stack.
//
// Route → handler mapping:
//   - GET  /                       → internal/health/handler
//   - *    {prefix}/auth/*         → internal/account/handler (/auth/me behind the Gate)
//   - *    {prefix}/posts[/:id]    → internal/post/handler (writes behind the Gate)
//   - *    {prefix}/projects[/:id] → internal/project/handler (writes behind the Gate)
//   - POST {prefix}/contact        → internal/contact/handler
//   - POST {prefix}/chat           → internal/chat/handler
func NewRouter(deps Deps, opts Options) http.Handler {
	gate := middleware.NewGate(deps.Tokens)
	p := opts.APIPrefix

	chat := deps.Chat
	if chat == nil {
		chat = assistant.Demo{}
	}

	auth := accounthandler.NewAuthHandler(deps.Auth, accounthandler.Options{
		SecureCookie:        opts.SecureCookie,
		RegistrationEnabled: opts.RegistrationEnabled,
	})
	posts := posthandler.NewPostHandler(deps.Posts)
	projects := projecthandler.NewProjectHandler(deps.Projects)
	contact := contacthandler.NewContactHandler(deps.Contact)
	health := healthhandler.NewServer(deps.HealthPinger)

	r := httprouter.New()
	r.NotFound = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	handle := func(method, pattern string, h http.Handler) {
		r.Handler(method, pattern, middleware.Route(pattern, h))
	}

	handle(http.MethodGet, "/", http.HandlerFunc(health.HealthCheck))

	handle(http.MethodPost, p+"/auth/login", http.HandlerFunc(auth.Login))
	handle(http.MethodPost, p+"/auth/register", http.HandlerFunc(auth.Register))
	handle(http.MethodGet, p+"/auth/me", gate.Protect(auth.Me))

	handle(http.MethodGet, p+"/posts", http.HandlerFunc(posts.List))
	handle(http.MethodGet, p+"/posts/:id", http.HandlerFunc(posts.Get))
	handle(http.MethodPost, p+"/posts", gate.Protect(posts.Create))
	handle(http.MethodPut, p+"/posts/:id", gate.Protect(posts.Update))
	handle(http.MethodDelete, p+"/posts/:id", gate.Protect(posts.Delete))

	handle(http.MethodGet, p+"/projects", http.HandlerFunc(projects.List))
	handle(http.MethodGet, p+"/projects/:id", http.HandlerFunc(projects.Get))
	handle(http.MethodPost, p+"/projects", gate.Protect(projects.Create))
	handle(http.MethodPut, p+"/projects/:id", gate.Protect(projects.Update))
	handle(http.MethodDelete, p+"/projects/:id", gate.Protect(projects.Delete))

	handle(http.MethodPost, p+"/contact", http.HandlerFunc(contact.Send))
	handle(http.MethodPost, p+"/chat", http.HandlerFunc(chathandler.NewChatHandler(chat).Chat))

	return middleware.Chain(r,
		middleware.RequestLogger(opts.Logger),
		middleware.Telemetry("/"),
		middleware.SecureHeaders(opts.Production),
		middleware.CORS(opts.AllowedOrigins),
	)
}
