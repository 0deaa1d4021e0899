package groupstore_test

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	groupstore "github.com/dalemusser/careerhub/internal/app/store/groups"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/domain/models"
	"github.com/dalemusser/careerhub/internal/testutil"
)

func TestStore_Create(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@example.com")

	created, err := store.Create(ctx, owner, groupstore.CreateInput{
		Title:       "Backend Careers",
		Description: "Weekly discussions about backend engineering careers",
		Category:    "engineering",
		MaxMembers:  8,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.ID == primitive.NilObjectID {
		t.Error("expected ID to be assigned")
	}
	if created.TitleCI == "" {
		t.Error("expected TitleCI to be set")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
	if created.Status != models.GroupStatusActive {
		t.Errorf("status: got %q, want %q", created.Status, models.GroupStatusActive)
	}
	if created.CurrentMembers != 0 {
		t.Errorf("CurrentMembers: got %d, want 0", created.CurrentMembers)
	}

	// Owner snapshot is denormalized onto the document.
	if created.OwnerID != owner.ID {
		t.Errorf("OwnerID: got %v, want %v", created.OwnerID, owner.ID)
	}
	if created.OwnerName != "Dana Mentor" {
		t.Errorf("OwnerName: got %q, want %q", created.OwnerName, "Dana Mentor")
	}
	if created.OwnerEmail != "dana@example.com" {
		t.Errorf("OwnerEmail: got %q", created.OwnerEmail)
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@example.com")

	if _, err := store.Create(ctx, owner, groupstore.CreateInput{Description: "d"}); !apperr.IsValidation(err) {
		t.Errorf("missing title: got %v, want validation error", err)
	}
	if _, err := store.Create(ctx, owner, groupstore.CreateInput{Title: "t"}); !apperr.IsValidation(err) {
		t.Errorf("missing description: got %v, want validation error", err)
	}
}

func TestStore_Create_DefaultMaxMembers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@example.com")

	created, err := store.Create(ctx, owner, groupstore.CreateInput{
		Title:       "No Capacity Given",
		Description: "Group created without an explicit capacity",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.MaxMembers != models.DefaultMaxMembers {
		t.Errorf("MaxMembers: got %d, want %d", created.MaxMembers, models.DefaultMaxMembers)
	}
}

func TestStore_List_Filters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	dana := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@example.com")
	raj := fixtures.CreateAlumni(ctx, "Raj Mentor", "raj@example.com")

	fixtures.CreateGroup(ctx, dana, "Active One", 5)
	fixtures.CreateGroup(ctx, raj, "Active Two", 5)
	closed := fixtures.CreateGroup(ctx, dana, "Closed One", 5)
	if err := store.Close(ctx, closed.ID, dana.ID); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	// Default view: only active groups.
	groups, err := store.List(ctx, groupstore.Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("default list: got %d groups, want 2", len(groups))
	}

	// Owner filter includes closed groups unless a status is given.
	groups, err = store.List(ctx, groupstore.Filter{OwnerID: &dana.ID})
	if err != nil {
		t.Fatalf("List by owner failed: %v", err)
	}
	if len(groups) != 2 {
		t.Errorf("owner list: got %d groups, want 2", len(groups))
	}

	groups, err = store.List(ctx, groupstore.Filter{OwnerID: &dana.ID, Status: models.GroupStatusClosed})
	if err != nil {
		t.Fatalf("List by owner+status failed: %v", err)
	}
	if len(groups) != 1 || groups[0].ID != closed.ID {
		t.Errorf("owner+closed list: got %d groups", len(groups))
	}
}

func TestStore_UpdateInfo(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@example.com")
	other := fixtures.CreateAlumni(ctx, "Raj Mentor", "raj@example.com")
	group := fixtures.CreateGroup(ctx, owner, "Original Title", 5)

	// Non-owner is rejected.
	err := store.UpdateInfo(ctx, group.ID, other.ID, groupstore.UpdateInput{Title: "Hijacked"})
	if !apperr.IsAuthorization(err) {
		t.Errorf("non-owner update: got %v, want authorization error", err)
	}

	// Missing group.
	err = store.UpdateInfo(ctx, primitive.NewObjectID(), owner.ID, groupstore.UpdateInput{Title: "x"})
	if !apperr.IsNotFound(err) {
		t.Errorf("missing group: got %v, want not-found error", err)
	}

	// Invalid status value.
	err = store.UpdateInfo(ctx, group.ID, owner.ID, groupstore.UpdateInput{Status: "archived"})
	if !apperr.IsValidation(err) {
		t.Errorf("bad status: got %v, want validation error", err)
	}

	// Partial patch: only the supplied fields change.
	err = store.UpdateInfo(ctx, group.ID, owner.ID, groupstore.UpdateInput{Title: "New Title", MaxMembers: 9})
	if err != nil {
		t.Fatalf("UpdateInfo failed: %v", err)
	}
	got, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != "New Title" {
		t.Errorf("Title: got %q", got.Title)
	}
	if got.MaxMembers != 9 {
		t.Errorf("MaxMembers: got %d, want 9", got.MaxMembers)
	}
	if got.Description != group.Description {
		t.Errorf("Description changed unexpectedly: %q", got.Description)
	}
}

func TestStore_Close_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@example.com")
	group := fixtures.CreateGroup(ctx, owner, "Closable", 5)

	if err := store.Close(ctx, group.ID, owner.ID); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := store.Close(ctx, group.ID, owner.ID); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}

	got, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Status != models.GroupStatusClosed {
		t.Errorf("status: got %q, want %q", got.Status, models.GroupStatusClosed)
	}
}

func TestStore_SetMemberCount(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateAlumni(ctx, "Dana Mentor", "dana@example.com")
	group := fixtures.CreateGroup(ctx, owner, "Counted", 5)

	if err := store.SetMemberCount(ctx, group.ID, 3); err != nil {
		t.Fatalf("SetMemberCount failed: %v", err)
	}
	got, err := store.GetByID(ctx, group.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.CurrentMembers != 3 {
		t.Errorf("CurrentMembers: got %d, want 3", got.CurrentMembers)
	}
}

func TestStore_GetByID_Missing(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := groupstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if _, err := store.GetByID(ctx, primitive.NewObjectID()); err != mongo.ErrNoDocuments {
		t.Errorf("got %v, want mongo.ErrNoDocuments", err)
	}
}
