package repository

import (
	"context"

	"github.com/ayush931/stackskills/internal/model"
)

func (s *Store) CreateSchoolRegistration(ctx context.Context, reg model.SchoolRegistration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO school_registrations (
			id, school_name, school_email, district, street, city, state, pincode, board,
			authorized_person_name, authorized_person_email, designation, phone_no, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, reg.ID, reg.SchoolName, reg.SchoolEmail, reg.District, reg.Street, reg.City, reg.State,
		reg.Pincode, reg.Board, reg.AuthorizedPersonName, reg.AuthorizedPersonEmail, reg.Designation,
		reg.PhoneNo, reg.CreatedAt)
	return err
}

func (s *Store) ListSchoolRegistrations(ctx context.Context, limit, offset int) ([]model.SchoolRegistration, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, school_name, school_email, district, street, city, state, pincode, board,
			authorized_person_name, authorized_person_email, designation, phone_no, created_at
		FROM school_registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.SchoolRegistration
	for rows.Next() {
		var reg model.SchoolRegistration
		if err := rows.Scan(
			&reg.ID, &reg.SchoolName, &reg.SchoolEmail, &reg.District, &reg.Street, &reg.City,
			&reg.State, &reg.Pincode, &reg.Board, &reg.AuthorizedPersonName, &reg.AuthorizedPersonEmail,
			&reg.Designation, &reg.PhoneNo, &reg.CreatedAt,
		); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (s *Store) CountSchoolRegistrations(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM school_registrations`).Scan(&count)
	return count, err
}

func (s *Store) CreateStudentRegistration(ctx context.Context, reg model.StudentRegistration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO student_registrations (
			id, full_name, email, phone, date_of_birth, school, grade, address, city, state, pincode, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, reg.ID, reg.FullName, reg.Email, reg.Phone, reg.DateOfBirth, reg.School, reg.Grade,
		reg.Address, reg.City, reg.State, reg.Pincode, reg.CreatedAt)
	return err
}

func (s *Store) ListStudentRegistrations(ctx context.Context, limit, offset int) ([]model.StudentRegistration, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, full_name, email, phone, date_of_birth, school, grade, address, city, state, pincode, created_at
		FROM student_registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.StudentRegistration
	for rows.Next() {
		var reg model.StudentRegistration
		if err := rows.Scan(
			&reg.ID, &reg.FullName, &reg.Email, &reg.Phone, &reg.DateOfBirth, &reg.School,
			&reg.Grade, &reg.Address, &reg.City, &reg.State, &reg.Pincode, &reg.CreatedAt,
		); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (s *Store) CountStudentRegistrations(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM student_registrations`).Scan(&count)
	return count, err
}

func (s *Store) CreateOrganizationRegistration(ctx context.Context, reg model.OrganizationRegistration) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO organization_registrations (
			id, organization_name, email, phone, website, address, city, state, pincode,
			contact_person_name, contact_person_designation, contact_person_email, contact_person_phone, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`, reg.ID, reg.OrganizationName, reg.Email, reg.Phone, reg.Website, reg.Address, reg.City,
		reg.State, reg.Pincode, reg.ContactPersonName, reg.ContactPersonDesignation,
		reg.ContactPersonEmail, reg.ContactPersonPhone, reg.CreatedAt)
	return err
}

func (s *Store) ListOrganizationRegistrations(ctx context.Context, limit, offset int) ([]model.OrganizationRegistration, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, organization_name, email, phone, website, address, city, state, pincode,
			contact_person_name, contact_person_designation, contact_person_email, contact_person_phone, created_at
		FROM organization_registrations
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var regs []model.OrganizationRegistration
	for rows.Next() {
		var reg model.OrganizationRegistration
		if err := rows.Scan(
			&reg.ID, &reg.OrganizationName, &reg.Email, &reg.Phone, &reg.Website, &reg.Address,
			&reg.City, &reg.State, &reg.Pincode, &reg.ContactPersonName, &reg.ContactPersonDesignation,
			&reg.ContactPersonEmail, &reg.ContactPersonPhone, &reg.CreatedAt,
		); err != nil {
			return nil, err
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (s *Store) CountOrganizationRegistrations(ctx context.Context) (int, error) {
	var count int
	err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM organization_registrations`).Scan(&count)
	return count, err
}

func (s *Store) CreateContactMessage(ctx context.Context, msg model.ContactMessage) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO contact_messages (id, name, email, phone, subject, inquiry_type, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, msg.ID, msg.Name, msg.Email, msg.Phone, msg.Subject, msg.InquiryType, msg.Message, msg.CreatedAt)
	return err
}
