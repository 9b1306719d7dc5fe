// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// Role represents a user's permission level on the platform.
type Role string

const (
	RoleStudent    Role = "student"
	RoleInstructor Role = "instructor"
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleMarketing  Role = "marketing"
	RoleContent    Role = "content"
	RoleStaff      Role = "staff"
)

// Valid reports whether the role is one the platform knows about.
func (r Role) Valid() bool {
	switch r {
	case RoleStudent, RoleInstructor, RoleAdmin, RoleManager,
		RoleMarketing, RoleContent, RoleStaff:
		return true
	}
	return false
}

// User is a platform account as returned by /user endpoints.
type User struct {
	ID        string `json:"_id"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	Avatar    string `json:"avatar,omitempty"`
	Age       int    `json:"age,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	Gender    string `json:"gender,omitempty"`
	DOB       string `json:"dob,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// SessionUser is the profile slice persisted alongside the access token.
// The login response uses "id" where list endpoints use "_id"; both are kept
// so either shape round-trips.
type SessionUser struct {
	ID       string `json:"id,omitempty"`
	MongoID  string `json:"_id,omitempty"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Role     Role   `json:"role"`
}

// Key returns whichever identifier the server populated.
func (u *SessionUser) Key() string {
	if u.ID != "" {
		return u.ID
	}
	return u.MongoID
}

// InstructorStatus is the review state of an instructor application.
type InstructorStatus string

const (
	InstructorPending  InstructorStatus = "pending"
	InstructorApproved InstructorStatus = "approved"
	InstructorRejected InstructorStatus = "rejected"
)

// Instructor is an instructor record, including the application state used by
// the approval workflow.
type Instructor struct {
	ID             string           `json:"_id"`
	FullName       string           `json:"fullName"`
	Email          string           `json:"email"`
	Specialization string           `json:"specialization,omitempty"`
	Status         InstructorStatus `json:"status"`
	CreatedAt      string           `json:"createdAt,omitempty"`
}
