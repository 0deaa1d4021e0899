// internal/app/workflow/groupflow/views.go
package groupflow

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	groupstore "github.com/dalemusser/careerhub/internal/app/store/groups"
	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

// GroupView is a group enriched with live counts for list pages. The
// member count comes from the memberships collection, not the cached
// current_members field, so a stale cache never reaches a list view.
type GroupView struct {
	models.Group
	PendingApplications int `json:"pendingApplications"`
}

// ApplicationView is an application enriched with current group details
// for the student's "my applications" page. The snapshot fields on the
// application show what was true at apply time; Group* fields here show
// the group as it is now.
type ApplicationView struct {
	models.GroupApplication
	GroupCategory string `json:"groupCategory"`
	OwnerName     string `json:"ownerName"`
	GroupStatus   string `json:"groupStatus"`
}

// ListGroups returns groups matching the filter with fresh member and
// pending-application counts, one aggregation per counter.
func (e *Engine) ListGroups(ctx context.Context, f groupstore.Filter) ([]GroupView, error) {
	groups, err := e.groups.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]primitive.ObjectID, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}

	memberCounts, err := e.memberships.CountActiveForGroups(ctx, ids)
	if err != nil {
		return nil, err
	}
	pendingCounts, err := e.apps.CountPendingForGroups(ctx, ids)
	if err != nil {
		return nil, err
	}

	views := make([]GroupView, len(groups))
	for i, g := range groups {
		g.CurrentMembers = memberCounts[g.ID]
		views[i] = GroupView{Group: g, PendingApplications: pendingCounts[g.ID]}
	}
	return views, nil
}

// GroupDetail returns a group with a fresh member count plus its active
// member roster.
func (e *Engine) GroupDetail(ctx context.Context, groupID primitive.ObjectID) (models.Group, []models.GroupMembership, error) {
	g, err := e.groups.GetByID(ctx, groupID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Group{}, nil, apperr.NotFound("group")
		}
		return models.Group{}, nil, err
	}

	members, err := e.memberships.ListActive(ctx, groupID)
	if err != nil {
		return models.Group{}, nil, err
	}
	g.CurrentMembers = len(members)
	return g, members, nil
}

// ListGroupApplications returns a group's review queue after verifying
// the caller may see it (owner or admin).
func (e *Engine) ListGroupApplications(ctx context.Context, groupID, callerID primitive.ObjectID, isAdmin bool) ([]models.GroupApplication, error) {
	g, err := e.groups.GetByID(ctx, groupID)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, apperr.NotFound("group")
		}
		return nil, err
	}
	if !isAdmin && g.OwnerID != callerID {
		return nil, apperr.Authorization("only the group owner can view applications")
	}
	return e.apps.ListByGroup(ctx, groupID)
}

// ListMyApplications returns the student's applications enriched with
// the current state of each group. A group deleted out from under an
// application leaves the enrichment fields empty rather than failing
// the whole listing.
func (e *Engine) ListMyApplications(ctx context.Context, studentID primitive.ObjectID) ([]ApplicationView, error) {
	apps, err := e.apps.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	cache := make(map[primitive.ObjectID]models.Group)
	views := make([]ApplicationView, len(apps))
	for i, a := range apps {
		v := ApplicationView{GroupApplication: a}
		g, ok := cache[a.GroupID]
		if !ok {
			g, err = e.groups.GetByID(ctx, a.GroupID)
			if err == mongo.ErrNoDocuments {
				views[i] = v
				continue
			}
			if err != nil {
				return nil, err
			}
			cache[a.GroupID] = g
		}
		v.GroupTitle = g.Title
		v.GroupCategory = g.Category
		v.OwnerName = g.OwnerName
		v.GroupStatus = g.Status
		views[i] = v
	}
	return views, nil
}
