// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles recognized across the portal.
const (
	RoleStudent  = "student"
	RoleAlumni   = "alumni"
	RoleEmployer = "employer"
	RoleFaculty  = "faculty"
	RoleAdmin    = "admin"
)

// User is a portal account. Students and alumni carry academic profile
// fields; employers carry a company name. Career-office staff use the
// admin role.
type User struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FullName   string             `bson:"full_name" json:"fullName"`
	FullNameCI string             `bson:"full_name_ci" json:"-"`
	Email      string             `bson:"email" json:"email"`
	EmailCI    string             `bson:"email_ci" json:"-"`

	// PasswordHash is empty for accounts that only sign in with Google.
	PasswordHash string `bson:"password_hash,omitempty" json:"-"`

	Role   string `bson:"role" json:"role"`
	Status string `bson:"status" json:"status"`

	// Academic profile (students/alumni).
	Major     string `bson:"major,omitempty" json:"major,omitempty"`
	YearLevel string `bson:"year_level,omitempty" json:"yearLevel,omitempty"`

	// Employer profile.
	Company  string `bson:"company,omitempty" json:"company,omitempty"`
	Headline string `bson:"headline,omitempty" json:"headline,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt time.Time `bson:"updated_at" json:"updatedAt"`
}
