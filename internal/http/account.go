package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ayush931/stackskills/internal/crypto"
	"github.com/ayush931/stackskills/internal/model"
)

type changePasswordRequest struct {
	Password        string `json:"password"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No token provided")
		return
	}

	var req changePasswordRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.Password == "" || req.NewPassword == "" || req.ConfirmPassword == "" {
		writeError(w, http.StatusBadRequest, "Missing fields required: password, newPassword, confirmPassword")
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		writeError(w, http.StatusBadRequest, "New password and confirm password should be same")
		return
	}
	if req.Password == req.NewPassword {
		writeError(w, http.StatusBadRequest, "New password cannot be same as current password")
		return
	}
	if err := validatePassword(req.NewPassword); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Verify-then-update runs under one transaction with the account row
	// locked, so two concurrent changes cannot interleave.
	err := s.store.WithTx(r.Context(), func(tx pgx.Tx) error {
		currentHash, err := s.store.GetPasswordHashForUpdate(r.Context(), tx, claims.UserID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return newAPIError(http.StatusBadRequest, "User not found")
			}
			return err
		}

		match, err := s.hasher.Verify(req.Password, currentHash)
		if err != nil || !match {
			return newAPIError(http.StatusBadRequest, "Current password is incorrect")
		}

		newHash, err := s.hasher.Hash(req.NewPassword)
		if err != nil {
			if errors.Is(err, crypto.ErrWeakPassword) {
				return newAPIError(http.StatusBadRequest, err.Error())
			}
			return err
		}

		return s.store.UpdatePassword(r.Context(), tx, claims.UserID, newHash, time.Now().UTC())
	})
	if err != nil {
		writeFailure(w, err)
		return
	}

	writeSuccess(w, "Password changed successfully", nil)
}

type updateProfileRequest struct {
	Name       *string `json:"name,omitempty"`
	SchoolName *string `json:"schoolName,omitempty"`
	ClassName  *string `json:"className,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No token provided")
		return
	}

	var req updateProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update := model.ProfileUpdate{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		update.Name = &name
	}
	if req.SchoolName != nil {
		school := strings.TrimSpace(*req.SchoolName)
		if err := validateSchoolName(school); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		update.SchoolName = &school
	}
	if req.ClassName != nil {
		class := strings.TrimSpace(*req.ClassName)
		if err := validateClassName(class); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		update.ClassName = &class
	}
	if req.Phone != nil {
		phone := strings.TrimSpace(*req.Phone)
		if err := validatePhone(phone); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		update.Phone = &phone
	}

	if update.Empty() {
		writeError(w, http.StatusBadRequest, "No fields to update")
		return
	}

	if update.Phone != nil && *update.Phone != claims.Phone {
		taken, err := s.store.PhoneTakenByOther(r.Context(), *update.Phone, claims.UserID)
		if err != nil {
			writeFailure(w, err)
			return
		}
		if taken {
			writeError(w, http.StatusBadRequest, "Phone number is already registered")
			return
		}
	}

	user, err := s.store.UpdateProfile(r.Context(), claims.UserID, update, time.Now().UTC())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "User not found")
			return
		}
		writeFailure(w, err)
		return
	}

	writeSuccess(w, "Profile updated successfully", summarize(user))
}

func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	s.writeProfile(w, r, "Fetched user profile")
}

func (s *Server) handleGetAdmin(w http.ResponseWriter, r *http.Request) {
	s.writeProfile(w, r, "User details fetched")
}

func (s *Server) writeProfile(w http.ResponseWriter, r *http.Request, message string) {
	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized - No token provided")
		return
	}

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			writeError(w, http.StatusBadRequest, "Unable to find the profile")
			return
		}
		writeFailure(w, err)
		return
	}

	writeSuccess(w, message, summarize(user))
}
