package bulkjobmodel

import (
	"context"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "bulk_jobs"

	StatusRunning   = "running"
	StatusDone      = "done"
	StatusFailed    = "failed"
)

// BulkJob is the history record of one bulk generation request.
type BulkJob struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TemplateID string             `bson:"template_id" json:"template_id"`
	UserID     string             `bson:"user_id" json:"user_id"`
	Status     string             `bson:"status" json:"status"`
	Total      int                `bson:"total" json:"total"`
	Generated  int                `bson:"generated" json:"generated"`
	ZipPath    string             `bson:"zip_path,omitempty" json:"zip_path,omitempty"`
	Error      string             `bson:"error,omitempty" json:"error,omitempty"`
	StartedAt  time.Time          `bson:"started_at" json:"started_at"`
	FinishedAt *time.Time         `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
}

type BulkJobRepository struct {
	collection *mongo.Collection
}

func NewBulkJobRepository(db *mongo.Database) *BulkJobRepository {
	return &BulkJobRepository{collection: db.Collection(CollectionName)}
}

func (r *BulkJobRepository) Start(ctx context.Context, templateId string, userId string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	job := BulkJob{
		TemplateID: templateId,
		UserID:     userId,
		Status:     StatusRunning,
		StartedAt:  time.Now(),
	}
	result, err := r.collection.InsertOne(ctx, job)
	if err != nil {
		slog.Error("BulkJobModel Start failed", "error", err, "template_id", templateId, "user_id", userId)
		return "", err
	}

	id, _ := result.InsertedID.(primitive.ObjectID)
	return id.Hex(), nil
}

func (r *BulkJobRepository) finish(ctx context.Context, jobId string, set bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	id, err := primitive.ObjectIDFromHex(jobId)
	if err != nil {
		return err
	}
	set["finished_at"] = time.Now()

	if _, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
		slog.Error("BulkJobModel update failed", "error", err, "job_id", jobId)
		return err
	}
	return nil
}

func (r *BulkJobRepository) Complete(ctx context.Context, jobId string, total int, zipPath string) error {
	return r.finish(ctx, jobId, bson.M{
		"status":    StatusDone,
		"total":     total,
		"generated": total,
		"zip_path":  zipPath,
	})
}

func (r *BulkJobRepository) Fail(ctx context.Context, jobId string, total int, generated int, reason string) error {
	return r.finish(ctx, jobId, bson.M{
		"status":    StatusFailed,
		"total":     total,
		"generated": generated,
		"error":     reason,
	})
}

// GetByUser returns the caller's most recent jobs, newest first.
func (r *BulkJobRepository) GetByUser(ctx context.Context, userId string, limit int64) ([]*BulkJob, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "started_at", Value: -1}}).SetLimit(limit)
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userId}, opts)
	if err != nil {
		slog.Error("BulkJobModel GetByUser find failed", "error", err, "user_id", userId)
		return nil, err
	}
	defer cursor.Close(ctx)

	jobs := []*BulkJob{}
	if err := cursor.All(ctx, &jobs); err != nil {
		slog.Error("BulkJobModel GetByUser cursor failed", "error", err, "user_id", userId)
		return nil, err
	}
	return jobs, nil
}
