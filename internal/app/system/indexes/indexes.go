// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent
(CreateIndexes is a no-op for an identical existing index). Errors are
aggregated so every problem is visible and startup can fail fast.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "mentorship_groups: "+err.Error())
	}
	if err := ensureGroupApplications(ctx, db); err != nil {
		problems = append(problems, "group_applications: "+err.Error())
	}
	if err := ensureGroupMemberships(ctx, db); err != nil {
		problems = append(problems, "group_memberships: "+err.Error())
	}
	if err := ensureJobs(ctx, db); err != nil {
		problems = append(problems, "jobs: "+err.Error())
	}
	if err := ensureJobApplications(ctx, db); err != nil {
		problems = append(problems, "job_applications: "+err.Error())
	}
	if err := ensureMentorshipRequests(ctx, db); err != nil {
		problems = append(problems, "mentorship_requests: "+err.Error())
	}
	if err := ensureEvents(ctx, db); err != nil {
		problems = append(problems, "events: "+err.Error())
	}
	if err := ensureInterviews(ctx, db); err != nil {
		problems = append(problems, "interviews: "+err.Error())
	}
	if err := ensureMessages(ctx, db); err != nil {
		problems = append(problems, "messages: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_email_ci"),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("role_status"),
		},
	})
	return err
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("mentorship_groups").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("owner"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created"),
		},
	})
	return err
}

func ensureGroupApplications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("group_applications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			// Backstop for the "one pending-or-accepted application per
			// (group, student)" rule. The engine checks first; this index
			// closes the race between two concurrent applies.
			Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "student_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_active_application").
				SetPartialFilterExpression(bson.M{
					"status": bson.M{"$in": bson.A{"pending", "accepted"}},
				}),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "applied_at", Value: -1}},
			Options: options.Index().SetName("group_applied"),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "applied_at", Value: -1}},
			Options: options.Index().SetName("student_applied"),
		},
	})
	return err
}

func ensureGroupMemberships(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("group_memberships").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "student_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_member"),
		},
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("group_status"),
		},
	})
	return err
}

func ensureJobs(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("jobs").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "employer_id", Value: 1}},
			Options: options.Index().SetName("employer"),
		},
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("status_created"),
		},
	})
	return err
}

func ensureJobApplications(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("job_applications").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "job_id", Value: 1}, {Key: "student_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_job_application"),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "applied_at", Value: -1}},
			Options: options.Index().SetName("student_applied"),
		},
	})
	return err
}

func ensureMentorshipRequests(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("mentorship_requests").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "mentor_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("mentor_status"),
		},
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "requested_at", Value: -1}},
			Options: options.Index().SetName("student_requested"),
		},
	})
	return err
}

func ensureEvents(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("events").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "starts_at", Value: 1}},
			Options: options.Index().SetName("status_starts"),
		},
	})
	if err != nil {
		return err
	}
	_, err = db.Collection("event_registrations").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "event_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_registration"),
		},
	})
	return err
}

func ensureInterviews(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("interviews").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "student_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("student_scheduled"),
		},
		{
			Keys:    bson.D{{Key: "employer_id", Value: 1}, {Key: "scheduled_at", Value: 1}},
			Options: options.Index().SetName("employer_scheduled"),
		},
	})
	return err
}

func ensureMessages(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("messages").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sender_id", Value: 1}, {Key: "receiver_id", Value: 1}, {Key: "sent_at", Value: -1}},
			Options: options.Index().SetName("conversation"),
		},
		{
			Keys:    bson.D{{Key: "receiver_id", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index().SetName("unread"),
		},
	})
	return err
}
