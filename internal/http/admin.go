package http

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/ayush931/stackskills/internal/auth"
	"github.com/ayush931/stackskills/internal/model"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
	listingCacheTTL  = 60 * time.Second
)

type pageQuery struct {
	page   int
	limit  int
	offset int
}

func parsePageQuery(r *http.Request) pageQuery {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return pageQuery{page: page, limit: limit, offset: (page - 1) * limit}
}

type pagination struct {
	CurrentPage     int  `json:"currentPage"`
	TotalPages      int  `json:"totalPages"`
	TotalRecords    int  `json:"totalRecords"`
	RecordsPerPage  int  `json:"recordsPerPage"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

func paginate(q pageQuery, total int) pagination {
	totalPages := (total + q.limit - 1) / q.limit
	return pagination{
		CurrentPage:     q.page,
		TotalPages:      totalPages,
		TotalRecords:    total,
		RecordsPerPage:  q.limit,
		HasNextPage:     q.page < totalPages,
		HasPreviousPage: q.page > 1,
	}
}

func parseListLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > maxPageLimit {
		return maxPageLimit
	}
	return limit
}

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context(), parseListLimit(r))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeSuccess(w, "Users fetched successfully", summarizeAll(users))
}

func (s *Server) handleListAdmins(w http.ResponseWriter, r *http.Request) {
	admins, err := s.store.ListUsersByRole(r.Context(), auth.RoleAdmin, parseListLimit(r))
	if err != nil {
		writeFailure(w, err)
		return
	}
	writeSuccess(w, "Admins fetched successfully", summarizeAll(admins))
}

func summarizeAll(users []model.User) []userSummary {
	summaries := make([]userSummary, 0, len(users))
	for _, user := range users {
		summaries = append(summaries, summarize(user))
	}
	return summaries
}

type schoolListing struct {
	ID                    string    `json:"id"`
	SchoolName            string    `json:"schoolName"`
	SchoolEmail           string    `json:"schoolEmail"`
	District              string    `json:"district"`
	Street                string    `json:"street"`
	City                  string    `json:"city"`
	State                 string    `json:"state"`
	Pincode               string    `json:"pincode"`
	Board                 string    `json:"board"`
	AuthorizedPersonName  string    `json:"authorizedPersonName"`
	AuthorizedPersonEmail string    `json:"authorizedPersonEmail"`
	Designation           string    `json:"designation"`
	PhoneNo               string    `json:"phoneNo"`
	CreatedAt             time.Time `json:"createdAt"`
}

type schoolListPage struct {
	Records    []schoolListing `json:"records"`
	Pagination pagination      `json:"pagination"`
}

func (s *Server) handleListSchools(w http.ResponseWriter, r *http.Request) {
	q := parsePageQuery(r)
	key := fmt.Sprintf("schools:page:%d:limit:%d", q.page, q.limit)

	var cached schoolListPage
	if err := s.cache.GetJSON(r.Context(), key, &cached); err == nil {
		writeSuccess(w, "School registrations fetched successfully", cached)
		return
	}

	total, err := s.store.CountSchoolRegistrations(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	regs, err := s.store.ListSchoolRegistrations(r.Context(), q.limit, q.offset)
	if err != nil {
		writeFailure(w, err)
		return
	}

	records := make([]schoolListing, 0, len(regs))
	for _, reg := range regs {
		records = append(records, schoolListing(reg))
	}
	payload := schoolListPage{Records: records, Pagination: paginate(q, total)}

	s.cacheListing(r.Context(), key, payload)
	writeSuccess(w, "School registrations fetched successfully", payload)
}

type studentListing struct {
	ID          string    `json:"id"`
	FullName    string    `json:"fullName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	School      string    `json:"school"`
	Grade       string    `json:"grade"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Pincode     string    `json:"pincode"`
	CreatedAt   time.Time `json:"createdAt"`
}

type studentListPage struct {
	Records    []studentListing `json:"records"`
	Pagination pagination       `json:"pagination"`
}

func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	q := parsePageQuery(r)
	key := fmt.Sprintf("students:page:%d:limit:%d", q.page, q.limit)

	var cached studentListPage
	if err := s.cache.GetJSON(r.Context(), key, &cached); err == nil {
		writeSuccess(w, "Student registrations fetched successfully", cached)
		return
	}

	total, err := s.store.CountStudentRegistrations(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	regs, err := s.store.ListStudentRegistrations(r.Context(), q.limit, q.offset)
	if err != nil {
		writeFailure(w, err)
		return
	}

	records := make([]studentListing, 0, len(regs))
	for _, reg := range regs {
		records = append(records, studentListing(reg))
	}
	payload := studentListPage{Records: records, Pagination: paginate(q, total)}

	s.cacheListing(r.Context(), key, payload)
	writeSuccess(w, "Student registrations fetched successfully", payload)
}

type organizationListing struct {
	ID                       string    `json:"id"`
	OrganizationName         string    `json:"organizationName"`
	Email                    string    `json:"email"`
	Phone                    string    `json:"phone"`
	Website                  string    `json:"website"`
	Address                  string    `json:"address"`
	City                     string    `json:"city"`
	State                    string    `json:"state"`
	Pincode                  string    `json:"pincode"`
	ContactPersonName        string    `json:"contactPersonName"`
	ContactPersonDesignation string    `json:"contactPersonDesignation"`
	ContactPersonEmail       string    `json:"contactPersonEmail"`
	ContactPersonPhone       string    `json:"contactPersonPhone"`
	CreatedAt                time.Time `json:"createdAt"`
}

type organizationListPage struct {
	Records    []organizationListing `json:"records"`
	Pagination pagination            `json:"pagination"`
}

func (s *Server) handleListOrganizations(w http.ResponseWriter, r *http.Request) {
	q := parsePageQuery(r)
	key := fmt.Sprintf("organizations:page:%d:limit:%d", q.page, q.limit)

	var cached organizationListPage
	if err := s.cache.GetJSON(r.Context(), key, &cached); err == nil {
		writeSuccess(w, "Organization registrations fetched successfully", cached)
		return
	}

	total, err := s.store.CountOrganizationRegistrations(r.Context())
	if err != nil {
		writeFailure(w, err)
		return
	}
	regs, err := s.store.ListOrganizationRegistrations(r.Context(), q.limit, q.offset)
	if err != nil {
		writeFailure(w, err)
		return
	}

	records := make([]organizationListing, 0, len(regs))
	for _, reg := range regs {
		records = append(records, organizationListing(reg))
	}
	payload := organizationListPage{Records: records, Pagination: paginate(q, total)}

	s.cacheListing(r.Context(), key, payload)
	writeSuccess(w, "Organization registrations fetched successfully", payload)
}

// cacheListing is best effort. A Redis outage never fails an admin request.
func (s *Server) cacheListing(ctx context.Context, key string, payload interface{}) {
	_ = s.cache.SetJSON(ctx, key, payload, listingCacheTTL)
}
