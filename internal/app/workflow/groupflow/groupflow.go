// internal/app/workflow/groupflow/groupflow.go

// Package groupflow orchestrates the mentorship-group application
// workflow: students apply to a group, the owning alumni accepts or
// declines, and acceptance creates a membership and refreshes the
// group's cached member count.
//
// Invariants enforced here:
//   - a closed group accepts no applications
//   - a full group accepts no applications (capacity counts active
//     members, not pending applications)
//   - at most one pending-or-accepted application per (group, student);
//     re-application is allowed after a decline
//   - group.current_members always equals the active-membership count
//     immediately after an acceptance (full recount, never an
//     increment, so prior drift self-heals)
package groupflow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	applicationstore "github.com/dalemusser/careerhub/internal/app/store/groupapplications"
	groupstore "github.com/dalemusser/careerhub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/careerhub/internal/app/store/memberships"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/app/system/txn"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

// Profile fallbacks applied when the applicant's profile is missing
// fields at apply time.
const (
	fallbackName  = "Student"
	fallbackValue = "N/A"
)

// GroupStore is the slice of the group store the engine needs.
type GroupStore interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (models.Group, error)
	List(ctx context.Context, f groupstore.Filter) ([]models.Group, error)
	SetMemberCount(ctx context.Context, id primitive.ObjectID, n int) error
}

// ApplicationStore is the slice of the application store the engine needs.
type ApplicationStore interface {
	Create(ctx context.Context, in applicationstore.CreateInput) (models.GroupApplication, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (models.GroupApplication, error)
	ListByGroup(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupApplication, error)
	ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.GroupApplication, error)
	FindActive(ctx context.Context, groupID, studentID primitive.ObjectID) (*models.GroupApplication, error)
	SetStatus(ctx context.Context, id primitive.ObjectID, status string) error
	CountPendingForGroups(ctx context.Context, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error)
}

// MembershipStore is the slice of the membership store the engine needs.
type MembershipStore interface {
	Create(ctx context.Context, in membershipstore.CreateInput) (models.GroupMembership, error)
	CountActive(ctx context.Context, groupID primitive.ObjectID) (int, error)
	ListActive(ctx context.Context, groupID primitive.ObjectID) ([]models.GroupMembership, error)
	CountActiveForGroups(ctx context.Context, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error)
}

// TxRunner wraps multi-write sequences. The Mongo-backed runner uses a
// session transaction when the deployment supports one.
type TxRunner interface {
	Run(ctx context.Context, fn func(ctx context.Context) error) error
}

type mongoTx struct {
	db  *mongo.Database
	log *zap.Logger
}

func (t mongoTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return txn.Run(ctx, t.db, t.log, fn)
}

// passthroughTx runs fn directly; used when no database is involved.
type passthroughTx struct{}

func (passthroughTx) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Config tunes workflow policy.
type Config struct {
	// RecheckCapacityOnAccept re-validates capacity at decision time,
	// rejecting an accept that would push the group past max_members.
	// When false, an accept always lands even if concurrent accepts
	// overshoot capacity, matching the portal's original behavior.
	RecheckCapacityOnAccept bool
}

// Engine coordinates the three stores behind the group workflow.
type Engine struct {
	groups      GroupStore
	apps        ApplicationStore
	memberships MembershipStore
	tx          TxRunner
	cfg         Config
	log         *zap.Logger
}

// New builds the Mongo-backed engine.
func New(db *mongo.Database, cfg Config, log *zap.Logger) *Engine {
	return &Engine{
		groups:      groupstore.New(db),
		apps:        applicationstore.New(db),
		memberships: membershipstore.New(db),
		tx:          mongoTx{db: db, log: log},
		cfg:         cfg,
		log:         log,
	}
}

// NewWithStores builds an engine over explicit store implementations.
// Tests use this with in-memory fakes.
func NewWithStores(g GroupStore, a ApplicationStore, m MembershipStore, cfg Config, log *zap.Logger) *Engine {
	return &Engine{groups: g, apps: a, memberships: m, tx: passthroughTx{}, cfg: cfg, log: log}
}

// Apply files a student's application to a group. Preconditions are
// checked in order; the first failure wins:
//
//  1. the group exists
//  2. the group is active
//  3. the group has room (active members, not pending applications)
//  4. the student has no pending or accepted application for it
//
// On success one pending application is written; group and membership
// state are untouched.
func (e *Engine) Apply(ctx context.Context, groupID primitive.ObjectID, student models.User, message string) (models.GroupApplication, error) {
	g, err := e.groups.GetByID(ctx, groupID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.GroupApplication{}, apperr.NotFound("group")
		}
		return models.GroupApplication{}, err
	}

	if g.Status != models.GroupStatusActive {
		return models.GroupApplication{}, apperr.Conflict("Group is not accepting applications")
	}

	count, err := e.memberships.CountActive(ctx, groupID)
	if err != nil {
		return models.GroupApplication{}, err
	}
	if count >= g.MaxMembers {
		return models.GroupApplication{}, apperr.Conflict("Group is full")
	}

	existing, err := e.apps.FindActive(ctx, groupID, student.ID)
	if err != nil {
		return models.GroupApplication{}, err
	}
	if existing != nil {
		return models.GroupApplication{}, apperr.Conflict("You have already applied to this group")
	}

	name := student.FullName
	if name == "" {
		name = fallbackName
	}
	major := student.Major
	if major == "" {
		major = fallbackValue
	}
	yearLevel := student.YearLevel
	if yearLevel == "" {
		yearLevel = fallbackValue
	}

	return e.apps.Create(ctx, applicationstore.CreateInput{
		GroupID:      groupID,
		GroupTitle:   g.Title,
		StudentID:    student.ID,
		StudentName:  name,
		StudentEmail: student.Email,
		Major:        major,
		YearLevel:    yearLevel,
		Message:      message,
	})
}

// Decide records the owner's accept/decline decision on an application.
// Acceptance creates a membership from the application's student
// snapshot and then recomputes the group's member count from the
// memberships collection.
func (e *Engine) Decide(ctx context.Context, groupID, applicationID, deciderID primitive.ObjectID, decision string) error {
	if decision != models.ApplicationAccepted && decision != models.ApplicationDeclined {
		return apperr.Validation("status must be accepted or declined")
	}

	g, err := e.groups.GetByID(ctx, groupID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.Authorization("only the group owner can decide applications")
		}
		return err
	}
	if g.OwnerID != deciderID {
		return apperr.Authorization("only the group owner can decide applications")
	}

	a, err := e.apps.GetByID(ctx, applicationID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("application")
		}
		return err
	}
	if a.GroupID != groupID {
		return apperr.NotFound("application")
	}
	if a.Status != models.ApplicationPending {
		return apperr.Conflict("application has already been decided")
	}

	if decision == models.ApplicationDeclined {
		return e.apps.SetStatus(ctx, applicationID, models.ApplicationDeclined)
	}

	if e.cfg.RecheckCapacityOnAccept {
		count, err := e.memberships.CountActive(ctx, groupID)
		if err != nil {
			return err
		}
		if count >= g.MaxMembers {
			return apperr.Conflict("Group is full")
		}
	}

	return e.tx.Run(ctx, func(ctx context.Context) error {
		if err := e.apps.SetStatus(ctx, applicationID, models.ApplicationAccepted); err != nil {
			return err
		}

		if _, err := e.memberships.Create(ctx, membershipstore.CreateInput{
			GroupID:      a.GroupID,
			GroupTitle:   a.GroupTitle,
			StudentID:    a.StudentID,
			StudentName:  a.StudentName,
			StudentEmail: a.StudentEmail,
			Major:        a.Major,
			YearLevel:    a.YearLevel,
		}); err != nil {
			if err == membershipstore.ErrDuplicateMembership {
				return apperr.Conflict("student is already a member of this group")
			}
			return err
		}

		// Full recount rather than +1 so any earlier drift heals here.
		count, err := e.memberships.CountActive(ctx, a.GroupID)
		if err != nil {
			return err
		}
		return e.groups.SetMemberCount(ctx, a.GroupID, count)
	})
}

// RecomputeCount recounts a group's active memberships and persists the
// result, repairing any drift in the cached counter. Returns the fresh
// count.
func (e *Engine) RecomputeCount(ctx context.Context, groupID primitive.ObjectID) (int, error) {
	count, err := e.memberships.CountActive(ctx, groupID)
	if err != nil {
		return 0, err
	}
	if err := e.groups.SetMemberCount(ctx, groupID, count); err != nil {
		return 0, err
	}
	return count, nil
}
