// internal/app/workflow/groupflow/groupflow_test.go
package groupflow

import (
	"context"
	"sort"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	applicationstore "github.com/dalemusser/careerhub/internal/app/store/groupapplications"
	groupstore "github.com/dalemusser/careerhub/internal/app/store/groups"
	membershipstore "github.com/dalemusser/careerhub/internal/app/store/memberships"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

// In-memory store fakes. They implement the same contracts the Mongo
// stores do, including ErrNoDocuments on missing lookups and the
// duplicate-membership guard, so the engine cannot tell the difference.

type fakeGroups struct {
	byID map[primitive.ObjectID]models.Group
}

func newFakeGroups() *fakeGroups {
	return &fakeGroups{byID: make(map[primitive.ObjectID]models.Group)}
}

func (f *fakeGroups) GetByID(_ context.Context, id primitive.ObjectID) (models.Group, error) {
	g, ok := f.byID[id]
	if !ok {
		return models.Group{}, mongo.ErrNoDocuments
	}
	return g, nil
}

func (f *fakeGroups) List(_ context.Context, filter groupstore.Filter) ([]models.Group, error) {
	var out []models.Group
	for _, g := range f.byID {
		if filter.OwnerID != nil && g.OwnerID != *filter.OwnerID {
			continue
		}
		status := filter.Status
		if filter.OwnerID == nil && status == "" {
			status = models.GroupStatusActive
		}
		if status != "" && g.Status != status {
			continue
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeGroups) SetMemberCount(_ context.Context, id primitive.ObjectID, n int) error {
	g, ok := f.byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	g.CurrentMembers = n
	f.byID[id] = g
	return nil
}

type fakeApps struct {
	byID map[primitive.ObjectID]models.GroupApplication
}

func newFakeApps() *fakeApps {
	return &fakeApps{byID: make(map[primitive.ObjectID]models.GroupApplication)}
}

func (f *fakeApps) Create(_ context.Context, in applicationstore.CreateInput) (models.GroupApplication, error) {
	a := models.GroupApplication{
		ID:           primitive.NewObjectID(),
		GroupID:      in.GroupID,
		GroupTitle:   in.GroupTitle,
		StudentID:    in.StudentID,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		Major:        in.Major,
		YearLevel:    in.YearLevel,
		Message:      in.Message,
		Status:       models.ApplicationPending,
		AppliedAt:    time.Now().UTC(),
	}
	f.byID[a.ID] = a
	return a, nil
}

func (f *fakeApps) GetByID(_ context.Context, id primitive.ObjectID) (models.GroupApplication, error) {
	a, ok := f.byID[id]
	if !ok {
		return models.GroupApplication{}, mongo.ErrNoDocuments
	}
	return a, nil
}

func (f *fakeApps) ListByGroup(_ context.Context, groupID primitive.ObjectID) ([]models.GroupApplication, error) {
	var out []models.GroupApplication
	for _, a := range f.byID {
		if a.GroupID == groupID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (f *fakeApps) ListByStudent(_ context.Context, studentID primitive.ObjectID) ([]models.GroupApplication, error) {
	var out []models.GroupApplication
	for _, a := range f.byID {
		if a.StudentID == studentID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AppliedAt.After(out[j].AppliedAt) })
	return out, nil
}

func (f *fakeApps) FindActive(_ context.Context, groupID, studentID primitive.ObjectID) (*models.GroupApplication, error) {
	for _, a := range f.byID {
		if a.GroupID == groupID && a.StudentID == studentID &&
			(a.Status == models.ApplicationPending || a.Status == models.ApplicationAccepted) {
			found := a
			return &found, nil
		}
	}
	return nil, nil
}

func (f *fakeApps) SetStatus(_ context.Context, id primitive.ObjectID, status string) error {
	a, ok := f.byID[id]
	if !ok {
		return mongo.ErrNoDocuments
	}
	a.Status = status
	if status != models.ApplicationPending {
		now := time.Now().UTC()
		a.RespondedAt = &now
	}
	f.byID[id] = a
	return nil
}

func (f *fakeApps) CountPendingForGroups(_ context.Context, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	out := make(map[primitive.ObjectID]int)
	for _, a := range f.byID {
		if a.Status != models.ApplicationPending {
			continue
		}
		for _, id := range groupIDs {
			if a.GroupID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

type fakeMemberships struct {
	byID map[primitive.ObjectID]models.GroupMembership
}

func newFakeMemberships() *fakeMemberships {
	return &fakeMemberships{byID: make(map[primitive.ObjectID]models.GroupMembership)}
}

func (f *fakeMemberships) Create(_ context.Context, in membershipstore.CreateInput) (models.GroupMembership, error) {
	for _, m := range f.byID {
		if m.GroupID == in.GroupID && m.StudentID == in.StudentID {
			return models.GroupMembership{}, membershipstore.ErrDuplicateMembership
		}
	}
	m := models.GroupMembership{
		ID:           primitive.NewObjectID(),
		GroupID:      in.GroupID,
		GroupTitle:   in.GroupTitle,
		StudentID:    in.StudentID,
		StudentName:  in.StudentName,
		StudentEmail: in.StudentEmail,
		Major:        in.Major,
		YearLevel:    in.YearLevel,
		Status:       models.MembershipActive,
		JoinedAt:     time.Now().UTC(),
	}
	f.byID[m.ID] = m
	return m, nil
}

func (f *fakeMemberships) CountActive(_ context.Context, groupID primitive.ObjectID) (int, error) {
	n := 0
	for _, m := range f.byID {
		if m.GroupID == groupID && m.Status == models.MembershipActive {
			n++
		}
	}
	return n, nil
}

func (f *fakeMemberships) ListActive(_ context.Context, groupID primitive.ObjectID) ([]models.GroupMembership, error) {
	var out []models.GroupMembership
	for _, m := range f.byID {
		if m.GroupID == groupID && m.Status == models.MembershipActive {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].JoinedAt.Before(out[j].JoinedAt) })
	return out, nil
}

func (f *fakeMemberships) CountActiveForGroups(_ context.Context, groupIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	out := make(map[primitive.ObjectID]int)
	for _, m := range f.byID {
		if m.Status != models.MembershipActive {
			continue
		}
		for _, id := range groupIDs {
			if m.GroupID == id {
				out[id]++
			}
		}
	}
	return out, nil
}

type fixture struct {
	engine      *Engine
	groups      *fakeGroups
	apps        *fakeApps
	memberships *fakeMemberships
	owner       models.User
	student     models.User
	group       models.Group
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()

	g := newFakeGroups()
	a := newFakeApps()
	m := newFakeMemberships()

	owner := models.User{
		ID:       primitive.NewObjectID(),
		FullName: "Dana Mentor",
		Email:    "dana@example.edu",
		Role:     models.RoleAlumni,
	}
	student := models.User{
		ID:        primitive.NewObjectID(),
		FullName:  "Sam Student",
		Email:     "sam@example.edu",
		Role:      models.RoleStudent,
		Major:     "Computer Science",
		YearLevel: "Junior",
	}
	group := models.Group{
		ID:         primitive.NewObjectID(),
		Title:      "Systems Mentoring",
		Category:   "engineering",
		OwnerID:    owner.ID,
		OwnerName:  owner.FullName,
		OwnerEmail: owner.Email,
		MaxMembers: 2,
		Status:     models.GroupStatusActive,
		CreatedAt:  time.Now().UTC(),
	}
	g.byID[group.ID] = group

	return &fixture{
		engine:      NewWithStores(g, a, m, cfg, zap.NewNop()),
		groups:      g,
		apps:        a,
		memberships: m,
		owner:       owner,
		student:     student,
		group:       group,
	}
}

func (f *fixture) addMember(t *testing.T, studentID primitive.ObjectID) {
	t.Helper()
	_, err := f.memberships.Create(context.Background(), membershipstore.CreateInput{
		GroupID:   f.group.ID,
		StudentID: studentID,
	})
	if err != nil {
		t.Fatalf("seed membership: %v", err)
	}
}

func wantKind(t *testing.T, err error, kind apperr.Kind, msg string) {
	t.Helper()
	if err == nil {
		t.Fatalf("want %v error %q, got nil", kind, msg)
	}
	if got := apperr.KindOf(err); got != kind {
		t.Fatalf("error kind = %v, want %v (err: %v)", got, kind, err)
	}
	if msg != "" && err.Error() != msg {
		t.Fatalf("error message = %q, want %q", err.Error(), msg)
	}
}

func TestApplyCreatesPendingApplication(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "I want to learn systems design")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if a.Status != models.ApplicationPending {
		t.Errorf("status = %q, want pending", a.Status)
	}
	if a.GroupTitle != f.group.Title {
		t.Errorf("group title snapshot = %q, want %q", a.GroupTitle, f.group.Title)
	}
	if a.StudentName != "Sam Student" || a.Major != "Computer Science" || a.YearLevel != "Junior" {
		t.Errorf("student snapshot = %q/%q/%q", a.StudentName, a.Major, a.YearLevel)
	}
	if a.AppliedAt.IsZero() {
		t.Error("appliedAt not stamped")
	}

	// Applying never touches group state or memberships.
	g, _ := f.groups.GetByID(ctx, f.group.ID)
	if g.CurrentMembers != 0 {
		t.Errorf("currentMembers = %d after apply, want 0", g.CurrentMembers)
	}
	if n, _ := f.memberships.CountActive(ctx, f.group.ID); n != 0 {
		t.Errorf("memberships = %d after apply, want 0", n)
	}
}

func TestApplyProfileFallbacks(t *testing.T) {
	f := newFixture(t, Config{})

	bare := models.User{ID: primitive.NewObjectID(), Email: "bare@example.edu", Role: models.RoleStudent}
	a, err := f.engine.Apply(context.Background(), f.group.ID, bare, "")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if a.StudentName != "Student" {
		t.Errorf("name fallback = %q, want Student", a.StudentName)
	}
	if a.Major != "N/A" || a.YearLevel != "N/A" {
		t.Errorf("major/year fallback = %q/%q, want N/A", a.Major, a.YearLevel)
	}
}

func TestApplyGroupNotFound(t *testing.T) {
	f := newFixture(t, Config{})
	_, err := f.engine.Apply(context.Background(), primitive.NewObjectID(), f.student, "")
	wantKind(t, err, apperr.KindNotFound, "group not found")
}

func TestApplyClosedGroup(t *testing.T) {
	f := newFixture(t, Config{})
	g := f.group
	g.Status = models.GroupStatusClosed
	f.groups.byID[g.ID] = g

	_, err := f.engine.Apply(context.Background(), g.ID, f.student, "")
	wantKind(t, err, apperr.KindConflict, "Group is not accepting applications")
}

func TestApplyFullGroup(t *testing.T) {
	f := newFixture(t, Config{})
	f.addMember(t, primitive.NewObjectID())
	f.addMember(t, primitive.NewObjectID())

	_, err := f.engine.Apply(context.Background(), f.group.ID, f.student, "")
	wantKind(t, err, apperr.KindConflict, "Group is full")
}

// Capacity counts active members only. A stack of pending applications
// on a group with free seats must not block a new applicant.
func TestApplyPendingApplicationsDoNotConsumeCapacity(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		other := models.User{ID: primitive.NewObjectID(), FullName: "Other", Email: "o@example.edu"}
		if _, err := f.engine.Apply(ctx, f.group.ID, other, ""); err != nil {
			t.Fatalf("seed apply %d: %v", i, err)
		}
	}

	if _, err := f.engine.Apply(ctx, f.group.ID, f.student, ""); err != nil {
		t.Fatalf("Apply with 5 pending and 0 members: %v", err)
	}
}

func TestApplyDuplicate(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	if _, err := f.engine.Apply(ctx, f.group.ID, f.student, ""); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	_, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	wantKind(t, err, apperr.KindConflict, "You have already applied to this group")
}

// A closed group wins over a duplicate: the checks run in order and the
// first failure is the one reported.
func TestApplyClosedBeatsDuplicate(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	if _, err := f.engine.Apply(ctx, f.group.ID, f.student, ""); err != nil {
		t.Fatalf("first apply: %v", err)
	}
	g := f.group
	g.Status = models.GroupStatusClosed
	f.groups.byID[g.ID] = g

	_, err := f.engine.Apply(ctx, g.ID, f.student, "")
	wantKind(t, err, apperr.KindConflict, "Group is not accepting applications")
}

func TestApplyAgainAfterDecline(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationDeclined); err != nil {
		t.Fatalf("decline: %v", err)
	}

	if _, err := f.engine.Apply(ctx, f.group.ID, f.student, "second try"); err != nil {
		t.Fatalf("re-apply after decline: %v", err)
	}
}

func TestDecideAcceptCreatesMembershipAndRecounts(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	got, _ := f.apps.GetByID(ctx, a.ID)
	if got.Status != models.ApplicationAccepted {
		t.Errorf("application status = %q, want accepted", got.Status)
	}
	if got.RespondedAt == nil {
		t.Error("respondedAt not stamped")
	}

	members, _ := f.memberships.ListActive(ctx, f.group.ID)
	if len(members) != 1 {
		t.Fatalf("memberships = %d, want 1", len(members))
	}
	m := members[0]
	if m.StudentID != f.student.ID || m.StudentName != "Sam Student" || m.Major != "Computer Science" {
		t.Errorf("membership snapshot = %+v", m)
	}

	g, _ := f.groups.GetByID(ctx, f.group.ID)
	if g.CurrentMembers != 1 {
		t.Errorf("currentMembers = %d, want 1", g.CurrentMembers)
	}
}

// current_members is recomputed from the memberships collection, not
// incremented, so a drifted cache is corrected by the next acceptance.
func TestDecideAcceptHealsDriftedCount(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	g := f.group
	g.CurrentMembers = 7 // drifted
	f.groups.byID[g.ID] = g

	a, err := f.engine.Apply(ctx, g.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := f.engine.Decide(ctx, g.ID, a.ID, f.owner.ID, models.ApplicationAccepted); err != nil {
		t.Fatalf("accept: %v", err)
	}

	fresh, _ := f.groups.GetByID(ctx, g.ID)
	if fresh.CurrentMembers != 1 {
		t.Errorf("currentMembers = %d after accept, want recount of 1", fresh.CurrentMembers)
	}
}

func TestDecideDeclineOnlyFlipsStatus(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationDeclined); err != nil {
		t.Fatalf("decline: %v", err)
	}

	got, _ := f.apps.GetByID(ctx, a.ID)
	if got.Status != models.ApplicationDeclined {
		t.Errorf("status = %q, want declined", got.Status)
	}
	if n, _ := f.memberships.CountActive(ctx, f.group.ID); n != 0 {
		t.Errorf("memberships = %d after decline, want 0", n)
	}
	g, _ := f.groups.GetByID(ctx, f.group.ID)
	if g.CurrentMembers != 0 {
		t.Errorf("currentMembers = %d after decline, want 0", g.CurrentMembers)
	}
}

func TestDecideInvalidStatus(t *testing.T) {
	f := newFixture(t, Config{})
	err := f.engine.Decide(context.Background(), f.group.ID, primitive.NewObjectID(), f.owner.ID, "maybe")
	wantKind(t, err, apperr.KindValidation, "status must be accepted or declined")
}

func TestDecideNonOwner(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	err = f.engine.Decide(ctx, f.group.ID, a.ID, primitive.NewObjectID(), models.ApplicationAccepted)
	wantKind(t, err, apperr.KindAuthorization, "")

	got, _ := f.apps.GetByID(ctx, a.ID)
	if got.Status != models.ApplicationPending {
		t.Errorf("status = %q after rejected decision, want pending", got.Status)
	}
}

func TestDecideMissingGroup(t *testing.T) {
	f := newFixture(t, Config{})
	err := f.engine.Decide(context.Background(), primitive.NewObjectID(), primitive.NewObjectID(), f.owner.ID, models.ApplicationAccepted)
	wantKind(t, err, apperr.KindAuthorization, "")
}

func TestDecideMissingApplication(t *testing.T) {
	f := newFixture(t, Config{})
	err := f.engine.Decide(context.Background(), f.group.ID, primitive.NewObjectID(), f.owner.ID, models.ApplicationAccepted)
	wantKind(t, err, apperr.KindNotFound, "application not found")
}

func TestDecideApplicationFromOtherGroup(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	other := models.Group{
		ID:         primitive.NewObjectID(),
		Title:      "Other Group",
		OwnerID:    f.owner.ID,
		MaxMembers: 5,
		Status:     models.GroupStatusActive,
	}
	f.groups.byID[other.ID] = other

	a, err := f.engine.Apply(ctx, other.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	err = f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationAccepted)
	wantKind(t, err, apperr.KindNotFound, "application not found")
}

func TestDecideTwice(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationDeclined); err != nil {
		t.Fatalf("first decision: %v", err)
	}
	err = f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationAccepted)
	wantKind(t, err, apperr.KindConflict, "application has already been decided")
}

func TestDecideAcceptRechecksCapacity(t *testing.T) {
	f := newFixture(t, Config{RecheckCapacityOnAccept: true})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Group fills up between apply and accept.
	f.addMember(t, primitive.NewObjectID())
	f.addMember(t, primitive.NewObjectID())

	err = f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationAccepted)
	wantKind(t, err, apperr.KindConflict, "Group is full")

	got, _ := f.apps.GetByID(ctx, a.ID)
	if got.Status != models.ApplicationPending {
		t.Errorf("status = %q after refused accept, want pending", got.Status)
	}
}

// With the recheck disabled an accept lands even past capacity,
// matching the lenient legacy behavior.
func TestDecideAcceptWithoutRecheckOvershoots(t *testing.T) {
	f := newFixture(t, Config{RecheckCapacityOnAccept: false})
	ctx := context.Background()

	a, err := f.engine.Apply(ctx, f.group.ID, f.student, "")
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	f.addMember(t, primitive.NewObjectID())
	f.addMember(t, primitive.NewObjectID())

	if err := f.engine.Decide(ctx, f.group.ID, a.ID, f.owner.ID, models.ApplicationAccepted); err != nil {
		t.Fatalf("accept without recheck: %v", err)
	}
	g, _ := f.groups.GetByID(ctx, f.group.ID)
	if g.CurrentMembers != 3 {
		t.Errorf("currentMembers = %d, want 3", g.CurrentMembers)
	}
}

func TestRecomputeCount(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	f.addMember(t, primitive.NewObjectID())
	f.addMember(t, primitive.NewObjectID())

	n, err := f.engine.RecomputeCount(ctx, f.group.ID)
	if err != nil {
		t.Fatalf("RecomputeCount: %v", err)
	}
	if n != 2 {
		t.Errorf("count = %d, want 2", n)
	}
	g, _ := f.groups.GetByID(ctx, f.group.ID)
	if g.CurrentMembers != 2 {
		t.Errorf("currentMembers = %d, want 2", g.CurrentMembers)
	}
}

func TestListGroupsUsesFreshCounts(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	g := f.group
	g.CurrentMembers = 9 // stale cache
	f.groups.byID[g.ID] = g

	f.addMember(t, primitive.NewObjectID())
	if _, err := f.engine.Apply(ctx, g.ID, f.student, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	views, err := f.engine.ListGroups(ctx, groupstore.Filter{})
	if err != nil {
		t.Fatalf("ListGroups: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if views[0].CurrentMembers != 1 {
		t.Errorf("currentMembers = %d, want fresh count 1", views[0].CurrentMembers)
	}
	if views[0].PendingApplications != 1 {
		t.Errorf("pendingApplications = %d, want 1", views[0].PendingApplications)
	}
}

func TestListGroupApplicationsAccess(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	if _, err := f.engine.Apply(ctx, f.group.ID, f.student, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	apps, err := f.engine.ListGroupApplications(ctx, f.group.ID, f.owner.ID, false)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(apps) != 1 {
		t.Errorf("owner sees %d applications, want 1", len(apps))
	}

	if _, err := f.engine.ListGroupApplications(ctx, f.group.ID, primitive.NewObjectID(), true); err != nil {
		t.Errorf("admin list: %v", err)
	}

	_, err = f.engine.ListGroupApplications(ctx, f.group.ID, primitive.NewObjectID(), false)
	wantKind(t, err, apperr.KindAuthorization, "")
}

func TestListMyApplicationsEnrichment(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	if _, err := f.engine.Apply(ctx, f.group.ID, f.student, ""); err != nil {
		t.Fatalf("apply: %v", err)
	}

	views, err := f.engine.ListMyApplications(ctx, f.student.ID)
	if err != nil {
		t.Fatalf("ListMyApplications: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	v := views[0]
	if v.GroupTitle != "Systems Mentoring" || v.GroupCategory != "engineering" {
		t.Errorf("group enrichment = %q/%q", v.GroupTitle, v.GroupCategory)
	}
	if v.OwnerName != "Dana Mentor" {
		t.Errorf("ownerName = %q", v.OwnerName)
	}
	if v.GroupStatus != models.GroupStatusActive {
		t.Errorf("groupStatus = %q", v.GroupStatus)
	}
}

func TestGroupDetailFreshCount(t *testing.T) {
	f := newFixture(t, Config{})
	ctx := context.Background()

	g := f.group
	g.CurrentMembers = 5 // stale
	f.groups.byID[g.ID] = g
	f.addMember(t, f.student.ID)

	got, members, err := f.engine.GroupDetail(ctx, g.ID)
	if err != nil {
		t.Fatalf("GroupDetail: %v", err)
	}
	if got.CurrentMembers != 1 {
		t.Errorf("currentMembers = %d, want 1", got.CurrentMembers)
	}
	if len(members) != 1 {
		t.Errorf("members = %d, want 1", len(members))
	}
}
