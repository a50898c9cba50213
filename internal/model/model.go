package model

import (
	"time"

	"github.com/ayush931/stackskills/internal/auth"
)

// User is a registered account. Session holds the currently valid session
// token; nil means no active session. PasswordHash never leaves the server.
type User struct {
	ID           string
	StackID      string
	Name         string
	Phone        string
	SchoolName   string
	ClassName    string
	PasswordHash string
	Role         auth.Role
	Session      *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProfileUpdate enumerates the mutable profile fields. A nil field is left
// untouched.
type ProfileUpdate struct {
	Name       *string
	SchoolName *string
	ClassName  *string
	Phone      *string
}

func (u ProfileUpdate) Empty() bool {
	return u.Name == nil && u.SchoolName == nil && u.ClassName == nil && u.Phone == nil
}

// SchoolRegistration is a partnership enquiry submitted by a school.
type SchoolRegistration struct {
	ID                    string
	SchoolName            string
	SchoolEmail           string
	District              string
	Street                string
	City                  string
	State                 string
	Pincode               string
	Board                 string
	AuthorizedPersonName  string
	AuthorizedPersonEmail string
	Designation           string
	PhoneNo               string
	CreatedAt             time.Time
}

// StudentRegistration is an enrollment enquiry for a single student.
type StudentRegistration struct {
	ID          string
	FullName    string
	Email       string
	Phone       string
	DateOfBirth time.Time
	School      string
	Grade       string
	Address     string
	City        string
	State       string
	Pincode     string
	CreatedAt   time.Time
}

// OrganizationRegistration is a partnership enquiry from an organization.
type OrganizationRegistration struct {
	ID                       string
	OrganizationName         string
	Email                    string
	Phone                    string
	Website                  string
	Address                  string
	City                     string
	State                    string
	Pincode                  string
	ContactPersonName        string
	ContactPersonDesignation string
	ContactPersonEmail       string
	ContactPersonPhone       string
	CreatedAt                time.Time
}

type ContactMessage struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	Subject     string
	InquiryType string
	Message     string
	CreatedAt   time.Time
}
