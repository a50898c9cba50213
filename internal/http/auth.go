package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ayush931/stackskills/internal/auth"
	"github.com/ayush931/stackskills/internal/crypto"
	"github.com/ayush931/stackskills/internal/model"
)

const stackIDAttempts = 10

type registerRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	SchoolName      string `json:"schoolName"`
	ClassName       string `json:"className"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type userSummary struct {
	ID         string    `json:"id"`
	StackID    string    `json:"stackId"`
	Name       string    `json:"name"`
	Phone      string    `json:"phone"`
	SchoolName string    `json:"schoolName"`
	ClassName  string    `json:"className"`
	Role       auth.Role `json:"role"`
}

func summarize(user model.User) userSummary {
	return userSummary{
		ID:         user.ID,
		StackID:    user.StackID,
		Name:       user.Name,
		Phone:      user.Phone,
		SchoolName: user.SchoolName,
		ClassName:  user.ClassName,
		Role:       user.Role,
	}
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Phone = strings.TrimSpace(req.Phone)
	req.SchoolName = strings.TrimSpace(req.SchoolName)
	req.ClassName = strings.TrimSpace(req.ClassName)

	missing := missingFields(map[string]string{
		"name":            req.Name,
		"phone":           req.Phone,
		"schoolName":      req.SchoolName,
		"className":       req.ClassName,
		"password":        req.Password,
		"confirmPassword": req.ConfirmPassword,
	}, []string{"name", "phone", "schoolName", "className", "password", "confirmPassword"})
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "Missing fields required: "+strings.Join(missing, ", "))
		return
	}

	for _, err := range []error{
		validateName(req.Name),
		validatePhone(req.Phone),
		validateSchoolName(req.SchoolName),
		validateClassName(req.ClassName),
		validatePassword(req.Password),
	} {
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	if req.Password != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "Password and Confirm Password should be same")
		return
	}

	taken, err := s.store.PhoneExists(r.Context(), req.Phone)
	if err != nil {
		writeFailure(w, err)
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, "User already exists, Please login!!!")
		return
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, crypto.ErrWeakPassword), errors.Is(err, crypto.ErrInvalidInput), errors.Is(err, crypto.ErrPasswordTooLong):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeFailure(w, err)
		}
		return
	}

	stackID, err := s.newUniqueStackID(r)
	if err != nil {
		writeFailure(w, err)
		return
	}

	now := time.Now().UTC()
	userID := uuid.NewString()

	token, err := s.tokens.Issue(userID, req.Phone, auth.RoleUser, req.Name)
	if err != nil {
		writeFailure(w, err)
		return
	}

	// Registration auto-logs-in: the freshly issued token is stored as the
	// session marker in the same insert.
	user := model.User{
		ID:           userID,
		StackID:      stackID,
		Name:         req.Name,
		Phone:        req.Phone,
		SchoolName:   req.SchoolName,
		ClassName:    req.ClassName,
		PasswordHash: hash,
		Role:         auth.RoleUser,
		Session:      &token,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.CreateUser(r.Context(), user); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			writeError(w, http.StatusBadRequest, "User already exists, Please login!!!")
			return
		}
		writeFailure(w, err)
		return
	}

	s.setSessionCookie(w, token)
	writeSuccess(w, "Registration successfull", summarize(user))
}

// newUniqueStackID retries random generation until a free id is found.
func (s *Server) newUniqueStackID(r *http.Request) (string, error) {
	for attempt := 0; attempt < stackIDAttempts; attempt++ {
		id, err := crypto.NewStackID(crypto.DefaultStackIDLength)
		if err != nil {
			return "", err
		}
		taken, err := s.store.StackIDExists(r.Context(), id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique stack id after %d attempts", stackIDAttempts)
}

type loginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Phone = strings.TrimSpace(req.Phone)
	if req.Phone == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Missing fields required: phone, password")
		return
	}
	if err := validatePhone(req.Phone); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if utf8.RuneCountInString(req.Password) > crypto.MaxPasswordLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Password cannot exceed more than %d characters", crypto.MaxPasswordLength))
		return
	}

	user, err := s.store.GetUserByPhone(r.Context(), req.Phone)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "User not found, Please register!!!")
			return
		}
		writeFailure(w, err)
		return
	}

	// Single-session rule: a live marker rejects this attempt and kicks the
	// other device. The user logs in again and the retry succeeds.
	if user.Session != nil {
		if _, err := s.store.ClearSessionIfSet(r.Context(), user.ID, time.Now().UTC()); err != nil {
			writeFailure(w, err)
			return
		}
		s.clearSessionCookie(w)
		writeError(w, http.StatusBadRequest, "Log out from another device, Please login again!!!")
		return
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Authentication failed. Please try again.")
		return
	}
	if !match {
		writeError(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := s.tokens.Issue(user.ID, user.Phone, user.Role, user.Name)
	if err != nil {
		writeFailure(w, err)
		return
	}

	claimed, err := s.store.ClaimSession(r.Context(), user.ID, token, time.Now().UTC())
	if err != nil {
		writeFailure(w, err)
		return
	}
	if !claimed {
		// A concurrent login claimed the marker between our read and write.
		s.clearSessionCookie(w)
		writeError(w, http.StatusBadRequest, "Log out from another device, Please login again!!!")
		return
	}

	s.setSessionCookie(w, token)
	writeSuccess(w, "Logged in successful", summarize(user))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if token == "" {
		writeError(w, http.StatusBadRequest, "Unauthorized - token is not available")
		return
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unauthorized - Login with correct credentials")
		return
	}

	if err := s.store.ClearSession(r.Context(), claims.UserID, time.Now().UTC()); err != nil {
		writeFailure(w, err)
		return
	}

	s.clearSessionCookie(w)
	writeSuccess(w, "Logged out successfully", nil)
}

type verifySummary struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Role  auth.Role `json:"role"`
	Phone string    `json:"phone"`
}

// handleVerify re-validates a session on client reload. This is the one flow
// that requires the presented token to equal the stored session marker.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	token := sessionToken(r)
	if token == "" {
		writeError(w, http.StatusBadRequest, "Login first!!!")
		return
	}

	claims, err := s.tokens.Verify(token)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Login with correct credentials")
		return
	}

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "Invalid session")
			return
		}
		writeFailure(w, err)
		return
	}
	if user.Session == nil || *user.Session != token {
		writeError(w, http.StatusBadRequest, "Invalid session")
		return
	}

	writeSuccess(w, "", verifySummary{
		ID:    user.ID,
		Name:  user.Name,
		Role:  user.Role,
		Phone: user.Phone,
	})
}
