package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ayush931/stackskills/internal/auth"
	"github.com/ayush931/stackskills/internal/cache"
	"github.com/ayush931/stackskills/internal/config"
	"github.com/ayush931/stackskills/internal/crypto"
	"github.com/ayush931/stackskills/internal/mail"
	"github.com/ayush931/stackskills/internal/model"
)

const sessionCookieName = "token"

// Store is the persistence surface the handlers consume.
// *repository.Store implements it.
type Store interface {
	GetUserByPhone(ctx context.Context, phone string) (model.User, error)
	GetUserByID(ctx context.Context, userID string) (model.User, error)
	CreateUser(ctx context.Context, user model.User) error
	PhoneExists(ctx context.Context, phone string) (bool, error)
	PhoneTakenByOther(ctx context.Context, phone, userID string) (bool, error)
	StackIDExists(ctx context.Context, stackID string) (bool, error)
	ClaimSession(ctx context.Context, userID, token string, now time.Time) (bool, error)
	ClearSessionIfSet(ctx context.Context, userID string, now time.Time) (bool, error)
	ClearSession(ctx context.Context, userID string, now time.Time) error
	WithTx(ctx context.Context, fn func(pgx.Tx) error) error
	GetPasswordHashForUpdate(ctx context.Context, tx pgx.Tx, userID string) (string, error)
	UpdatePassword(ctx context.Context, tx pgx.Tx, userID, passwordHash string, now time.Time) error
	UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate, now time.Time) (model.User, error)
	ListUsers(ctx context.Context, limit int) ([]model.User, error)
	ListUsersByRole(ctx context.Context, role auth.Role, limit int) ([]model.User, error)

	CreateSchoolRegistration(ctx context.Context, reg model.SchoolRegistration) error
	ListSchoolRegistrations(ctx context.Context, limit, offset int) ([]model.SchoolRegistration, error)
	CountSchoolRegistrations(ctx context.Context) (int, error)
	CreateStudentRegistration(ctx context.Context, reg model.StudentRegistration) error
	ListStudentRegistrations(ctx context.Context, limit, offset int) ([]model.StudentRegistration, error)
	CountStudentRegistrations(ctx context.Context) (int, error)
	CreateOrganizationRegistration(ctx context.Context, reg model.OrganizationRegistration) error
	ListOrganizationRegistrations(ctx context.Context, limit, offset int) ([]model.OrganizationRegistration, error)
	CountOrganizationRegistrations(ctx context.Context) (int, error)
	CreateContactMessage(ctx context.Context, msg model.ContactMessage) error
}

type Server struct {
	cfg    config.Config
	store  Store
	tokens *auth.TokenService
	hasher *crypto.Hasher
	cache  *cache.Cache
	mailer *mail.Notifier
}

func NewServer(cfg config.Config, store Store, cacheClient *cache.Cache, mailer *mail.Notifier) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTL)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		store:  store,
		tokens: tokens,
		hasher: crypto.NewHasher(cfg.PasswordPepper, crypto.DefaultHashCost),
		cache:  cacheClient,
		mailer: mailer,
	}, nil
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/register", s.handleRegister)
		r.Post("/auth/login", s.handleLogin)
		r.Get("/auth/logout", s.handleLogout)
		r.Get("/auth/verify", s.handleVerify)

		r.With(s.authenticate, s.requireRoles(auth.UserOnly...)).Get("/user/me", s.handleGetUser)
		r.With(s.authenticate, s.requireRoles(auth.UserOnly...)).Post("/user/change-password", s.handleChangePassword)
		r.With(s.authenticate, s.requireRoles(auth.AllAuthenticated...)).Put("/profile", s.handleUpdateProfile)

		r.Post("/register/school", s.handleSchoolRegister)
		r.Post("/register/student", s.handleStudentRegister)
		r.Post("/register/organization", s.handleOrganizationRegister)
		r.Post("/contact", s.handleContact)

		r.Route("/admin", func(r chi.Router) {
			r.Use(s.authenticate, s.requireRoles(auth.AdminOnly...))
			r.Get("/me", s.handleGetAdmin)
			r.Get("/users", s.handleListUsers)
			r.Get("/admins", s.handleListAdmins)
			r.Get("/schools", s.handleListSchools)
			r.Get("/students", s.handleListStudents)
			r.Get("/organizations", s.handleListOrganizations)
		})
	})

	return r
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.cfg.TokenTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.cfg.Production(),
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		Secure:   s.cfg.Production(),
	})
}

func sessionToken(r *http.Request) string {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}
