// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/dalemusser/careerhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateUser creates a test user with the given role.
func (f *Fixtures) CreateUser(ctx context.Context, fullName, email, role string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		EmailCI:    text.Fold(email),
		Role:       role,
		Status:     "active",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if role == models.RoleStudent {
		user.Major = "Computer Science"
		user.YearLevel = "Junior"
	}

	if _, err := f.db.Collection("users").InsertOne(ctx, user); err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateStudent creates a test student account.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleStudent)
}

// CreateAlumni creates a test alumni account.
func (f *Fixtures) CreateAlumni(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.CreateUser(ctx, fullName, email, models.RoleAlumni)
}

// CreateGroup creates an active mentorship group owned by the given
// alumni.
func (f *Fixtures) CreateGroup(ctx context.Context, owner models.User, title string, maxMembers int) models.Group {
	f.t.Helper()

	now := time.Now().UTC()
	group := models.Group{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "A test mentorship group",
		Category:    "general",
		OwnerID:     owner.ID,
		OwnerName:   owner.FullName,
		OwnerEmail:  owner.Email,
		MaxMembers:  maxMembers,
		Status:      models.GroupStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("mentorship_groups").InsertOne(ctx, group); err != nil {
		f.t.Fatalf("failed to create test group: %v", err)
	}
	return group
}

// CreateApplication creates a group application with the given status.
func (f *Fixtures) CreateApplication(ctx context.Context, group models.Group, student models.User, status string) models.GroupApplication {
	f.t.Helper()

	app := models.GroupApplication{
		ID:           primitive.NewObjectID(),
		GroupID:      group.ID,
		GroupTitle:   group.Title,
		StudentID:    student.ID,
		StudentName:  student.FullName,
		StudentEmail: student.Email,
		Major:        student.Major,
		YearLevel:    student.YearLevel,
		Status:       status,
		AppliedAt:    time.Now().UTC(),
	}
	if status != models.ApplicationPending {
		now := time.Now().UTC()
		app.RespondedAt = &now
	}

	if _, err := f.db.Collection("group_applications").InsertOne(ctx, app); err != nil {
		f.t.Fatalf("failed to create test application: %v", err)
	}
	return app
}

// CreateMembership creates an active membership for a student in a
// group.
func (f *Fixtures) CreateMembership(ctx context.Context, group models.Group, student models.User) models.GroupMembership {
	f.t.Helper()

	m := models.GroupMembership{
		ID:           primitive.NewObjectID(),
		GroupID:      group.ID,
		GroupTitle:   group.Title,
		StudentID:    student.ID,
		StudentName:  student.FullName,
		StudentEmail: student.Email,
		Major:        student.Major,
		YearLevel:    student.YearLevel,
		Status:       models.MembershipActive,
		JoinedAt:     time.Now().UTC(),
	}

	if _, err := f.db.Collection("group_memberships").InsertOne(ctx, m); err != nil {
		f.t.Fatalf("failed to create test membership: %v", err)
	}
	return m
}

// CreateEvent creates an upcoming active event with the given capacity
// (0 = unlimited).
func (f *Fixtures) CreateEvent(ctx context.Context, createdBy models.User, title string, capacity int) models.Event {
	f.t.Helper()

	now := time.Now().UTC()
	event := models.Event{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "A test event",
		Location:    "Main Hall",
		StartsAt:    now.Add(24 * time.Hour),
		Capacity:    capacity,
		CreatedBy:   createdBy.ID,
		Status:      models.EventStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("events").InsertOne(ctx, event); err != nil {
		f.t.Fatalf("failed to create test event: %v", err)
	}
	return event
}

// CreateJob creates an active job posting owned by the given employer.
func (f *Fixtures) CreateJob(ctx context.Context, employer models.User, title string) models.Job {
	f.t.Helper()

	now := time.Now().UTC()
	job := models.Job{
		ID:          primitive.NewObjectID(),
		Title:       title,
		TitleCI:     text.Fold(title),
		Description: "A test job posting",
		EmployerID:  employer.ID,
		Company:     employer.Company,
		Status:      models.JobStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := f.db.Collection("jobs").InsertOne(ctx, job); err != nil {
		f.t.Fatalf("failed to create test job: %v", err)
	}
	return job
}
