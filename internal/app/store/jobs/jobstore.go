// internal/app/store/jobs/jobstore.go
package jobstore

import (
	"context"
	"time"

	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dalemusser/careerhub/internal/app/system/apperr"
	"github.com/dalemusser/careerhub/internal/domain/models"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("jobs")}
}

type CreateInput struct {
	Title       string
	Description string
	Location    string
	JobType     string
	Salary      string
}

// Create inserts an active posting owned by the employer. Company is
// snapshotted from the employer's profile.
func (s *Store) Create(ctx context.Context, employer models.User, in CreateInput) (models.Job, error) {
	if in.Title == "" {
		return models.Job{}, apperr.Validation("Title is required.")
	}
	if in.Description == "" {
		return models.Job{}, apperr.Validation("Description is required.")
	}

	now := time.Now().UTC()
	j := models.Job{
		ID:          primitive.NewObjectID(),
		Title:       in.Title,
		TitleCI:     text.Fold(in.Title),
		Description: in.Description,
		Location:    in.Location,
		JobType:     in.JobType,
		Salary:      in.Salary,
		EmployerID:  employer.ID,
		Company:     employer.Company,
		Status:      models.JobStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := s.c.InsertOne(ctx, j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Job, error) {
	var j models.Job
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&j); err != nil {
		return models.Job{}, err
	}
	return j, nil
}

// Filter narrows List. Zero value lists all active postings.
type Filter struct {
	EmployerID *primitive.ObjectID
	JobType    string
	Status     string
}

func (s *Store) List(ctx context.Context, f Filter) ([]models.Job, error) {
	q := bson.M{}
	if f.EmployerID != nil {
		q["employer_id"] = *f.EmployerID
		if f.Status != "" {
			q["status"] = f.Status
		}
	} else if f.Status != "" {
		q["status"] = f.Status
	} else {
		q["status"] = models.JobStatusActive
	}
	if f.JobType != "" {
		q["job_type"] = f.JobType
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, q, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var jobs []models.Job
	if err := cur.All(ctx, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

type UpdateInput struct {
	Title       string
	Description string
	Location    string
	JobType     string
	Salary      string
	Status      string
}

// UpdateInfo patches a posting after verifying ownership.
func (s *Store) UpdateInfo(ctx context.Context, id, employerID primitive.ObjectID, in UpdateInput) error {
	j, err := s.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("job")
		}
		return err
	}
	if j.EmployerID != employerID {
		return apperr.Authorization("only the posting employer can update this job")
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if in.Title != "" {
		set["title"] = in.Title
		set["title_ci"] = text.Fold(in.Title)
	}
	if in.Description != "" {
		set["description"] = in.Description
	}
	if in.Location != "" {
		set["location"] = in.Location
	}
	if in.JobType != "" {
		set["job_type"] = in.JobType
	}
	if in.Salary != "" {
		set["salary"] = in.Salary
	}
	if in.Status != "" {
		if in.Status != models.JobStatusActive && in.Status != models.JobStatusClosed {
			return apperr.Validation("status must be active or closed")
		}
		set["status"] = in.Status
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

// Close soft-closes a posting. Idempotent.
func (s *Store) Close(ctx context.Context, id, employerID primitive.ObjectID) error {
	j, err := s.GetByID(ctx, id)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return apperr.NotFound("job")
		}
		return err
	}
	if j.EmployerID != employerID {
		return apperr.Authorization("only the posting employer can close this job")
	}

	_, err = s.c.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"status":     models.JobStatusClosed,
		"updated_at": time.Now().UTC(),
	}})
	return err
}
