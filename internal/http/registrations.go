package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayush931/stackskills/internal/model"
)

type schoolRegisterRequest struct {
	SchoolName            string `json:"schoolName"`
	SchoolEmail           string `json:"schoolEmail"`
	District              string `json:"district"`
	Street                string `json:"street"`
	City                  string `json:"city"`
	State                 string `json:"state"`
	Pincode               string `json:"pincode"`
	Board                 string `json:"board"`
	AuthorizedPersonName  string `json:"authorizedPersonName"`
	AuthorizedPersonEmail string `json:"authorizedPersonEmail"`
	Designation           string `json:"designation"`
	PhoneNo               string `json:"phoneNo"`
}

func (s *Server) handleSchoolRegister(w http.ResponseWriter, r *http.Request) {
	var req schoolRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	missing := missingFields(map[string]string{
		"School Name":             req.SchoolName,
		"School Email":            req.SchoolEmail,
		"District":                req.District,
		"Street Address":          req.Street,
		"City":                    req.City,
		"State":                   req.State,
		"Pincode":                 req.Pincode,
		"Board":                   req.Board,
		"Authorized Person Name":  req.AuthorizedPersonName,
		"Authorized Person Email": req.AuthorizedPersonEmail,
		"Designation":             req.Designation,
		"Phone Number":            req.PhoneNo,
	}, []string{
		"School Name", "School Email", "District", "Street Address", "City", "State",
		"Pincode", "Board", "Authorized Person Name", "Authorized Person Email",
		"Designation", "Phone Number",
	})
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	for _, err := range []error{
		validateEmail(strings.ToLower(strings.TrimSpace(req.SchoolEmail))),
		validateEmail(strings.ToLower(strings.TrimSpace(req.AuthorizedPersonEmail))),
		validatePincode(strings.TrimSpace(req.Pincode)),
		validatePhone(strings.TrimSpace(req.PhoneNo)),
	} {
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	reg := model.SchoolRegistration{
		ID:                    uuid.NewString(),
		SchoolName:            strings.TrimSpace(req.SchoolName),
		SchoolEmail:           strings.ToLower(strings.TrimSpace(req.SchoolEmail)),
		District:              strings.TrimSpace(req.District),
		Street:                strings.TrimSpace(req.Street),
		City:                  strings.TrimSpace(req.City),
		State:                 strings.TrimSpace(req.State),
		Pincode:               strings.TrimSpace(req.Pincode),
		Board:                 strings.TrimSpace(req.Board),
		AuthorizedPersonName:  strings.TrimSpace(req.AuthorizedPersonName),
		AuthorizedPersonEmail: strings.ToLower(strings.TrimSpace(req.AuthorizedPersonEmail)),
		Designation:           strings.TrimSpace(req.Designation),
		PhoneNo:               strings.TrimSpace(req.PhoneNo),
		CreatedAt:             time.Now().UTC(),
	}
	if err := s.store.CreateSchoolRegistration(r.Context(), reg); err != nil {
		writeFailure(w, err)
		return
	}

	go s.mailer.RegistrationReceived(s.cfg.AdminEmail, "school", reg.SchoolName, reg.SchoolEmail)
	writeSuccess(w, "School registration submitted successfully", map[string]string{"id": reg.ID})
}

type studentRegisterRequest struct {
	FullName    string `json:"fullName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	DateOfBirth string `json:"dateOfBirth"`
	School      string `json:"school"`
	Grade       string `json:"grade"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	Pincode     string `json:"pincode"`
}

func (s *Server) handleStudentRegister(w http.ResponseWriter, r *http.Request) {
	var req studentRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	missing := missingFields(map[string]string{
		"Full Name":     req.FullName,
		"Phone Number":  req.Phone,
		"Date of Birth": req.DateOfBirth,
		"School":        req.School,
		"Grade":         req.Grade,
		"Address":       req.Address,
		"City":          req.City,
		"State":         req.State,
		"Pincode":       req.Pincode,
	}, []string{
		"Full Name", "Phone Number", "Date of Birth", "School", "Grade",
		"Address", "City", "State", "Pincode",
	})
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	if err := validatePhone(strings.TrimSpace(req.Phone)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validatePincode(strings.TrimSpace(req.Pincode)); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" {
		if err := validateEmail(email); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	dob, err := time.Parse("2006-01-02", strings.TrimSpace(req.DateOfBirth))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Date of birth must be in YYYY-MM-DD format")
		return
	}

	reg := model.StudentRegistration{
		ID:          uuid.NewString(),
		FullName:    strings.TrimSpace(req.FullName),
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		DateOfBirth: dob,
		School:      strings.TrimSpace(req.School),
		Grade:       strings.TrimSpace(req.Grade),
		Address:     strings.TrimSpace(req.Address),
		City:        strings.TrimSpace(req.City),
		State:       strings.TrimSpace(req.State),
		Pincode:     strings.TrimSpace(req.Pincode),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateStudentRegistration(r.Context(), reg); err != nil {
		writeFailure(w, err)
		return
	}

	go s.mailer.RegistrationReceived(s.cfg.AdminEmail, "student", reg.FullName, reg.Email)
	writeSuccess(w, "Student registration submitted successfully", map[string]string{"id": reg.ID})
}

type organizationRegisterRequest struct {
	OrganizationName         string `json:"organizationName"`
	Email                    string `json:"email"`
	Phone                    string `json:"phone"`
	Website                  string `json:"website"`
	Address                  string `json:"address"`
	City                     string `json:"city"`
	State                    string `json:"state"`
	Pincode                  string `json:"pincode"`
	ContactPersonName        string `json:"contactPersonName"`
	ContactPersonDesignation string `json:"contactPersonDesignation"`
	ContactPersonEmail       string `json:"contactPersonEmail"`
	ContactPersonPhone       string `json:"contactPersonPhone"`
}

func (s *Server) handleOrganizationRegister(w http.ResponseWriter, r *http.Request) {
	var req organizationRegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	missing := missingFields(map[string]string{
		"Organization Name":          req.OrganizationName,
		"Email":                      req.Email,
		"Phone Number":               req.Phone,
		"Address":                    req.Address,
		"City":                       req.City,
		"State":                      req.State,
		"Pincode":                    req.Pincode,
		"Contact Person Name":        req.ContactPersonName,
		"Contact Person Designation": req.ContactPersonDesignation,
		"Contact Person Email":       req.ContactPersonEmail,
		"Contact Person Phone":       req.ContactPersonPhone,
	}, []string{
		"Organization Name", "Email", "Phone Number", "Address", "City", "State",
		"Pincode", "Contact Person Name", "Contact Person Designation",
		"Contact Person Email", "Contact Person Phone",
	})
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "Missing required fields: "+strings.Join(missing, ", "))
		return
	}

	for _, err := range []error{
		validateEmail(strings.ToLower(strings.TrimSpace(req.Email))),
		validateEmail(strings.ToLower(strings.TrimSpace(req.ContactPersonEmail))),
		validatePhone(strings.TrimSpace(req.Phone)),
		validatePhone(strings.TrimSpace(req.ContactPersonPhone)),
		validatePincode(strings.TrimSpace(req.Pincode)),
	} {
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	reg := model.OrganizationRegistration{
		ID:                       uuid.NewString(),
		OrganizationName:         strings.TrimSpace(req.OrganizationName),
		Email:                    strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:                    strings.TrimSpace(req.Phone),
		Website:                  strings.TrimSpace(req.Website),
		Address:                  strings.TrimSpace(req.Address),
		City:                     strings.TrimSpace(req.City),
		State:                    strings.TrimSpace(req.State),
		Pincode:                  strings.TrimSpace(req.Pincode),
		ContactPersonName:        strings.TrimSpace(req.ContactPersonName),
		ContactPersonDesignation: strings.TrimSpace(req.ContactPersonDesignation),
		ContactPersonEmail:       strings.ToLower(strings.TrimSpace(req.ContactPersonEmail)),
		ContactPersonPhone:       strings.TrimSpace(req.ContactPersonPhone),
		CreatedAt:                time.Now().UTC(),
	}
	if err := s.store.CreateOrganizationRegistration(r.Context(), reg); err != nil {
		writeFailure(w, err)
		return
	}

	go s.mailer.RegistrationReceived(s.cfg.AdminEmail, "organization", reg.OrganizationName, reg.Email)
	writeSuccess(w, "Organization registration submitted successfully", map[string]string{"id": reg.ID})
}

type contactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	InquiryType string `json:"inquiryType"`
	Message     string `json:"message"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	missing := missingFields(map[string]string{
		"name":        req.Name,
		"email":       req.Email,
		"subject":     req.Subject,
		"inquiryType": req.InquiryType,
		"message":     req.Message,
	}, []string{"name", "email", "subject", "inquiryType", "message"})
	if len(missing) > 0 {
		writeError(w, http.StatusBadRequest, "Required fields are missing: "+strings.Join(missing, ", "))
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := validateEmail(email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	phone := strings.TrimSpace(req.Phone)
	if phone == "" {
		phone = "Not provided"
	}

	msg := model.ContactMessage{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Email:       email,
		Phone:       phone,
		Subject:     strings.TrimSpace(req.Subject),
		InquiryType: strings.TrimSpace(req.InquiryType),
		Message:     strings.TrimSpace(req.Message),
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.store.CreateContactMessage(r.Context(), msg); err != nil {
		writeFailure(w, err)
		return
	}

	go s.mailer.ContactReceived(s.cfg.AdminEmail, msg.Email, msg.Name, msg.Subject, msg.InquiryType, msg.Message)
	writeSuccess(w, "Message received, we will get back to you within 24 hours", nil)
}
