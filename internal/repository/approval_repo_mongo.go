package repository

import (
	"context"
	"errors"

	"storeflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ApprovalCollection = "approval_requests"

type mongoApprovalRepository struct {
	coll *mongo.Collection
}

func NewMongoApprovalRepository(db *mongo.Database) ApprovalRepository {
	return &mongoApprovalRepository{coll: db.Collection(ApprovalCollection)}
}

// ids are UUIDv7 strings, so _id descending follows insertion order on equal dates
var newestFirst = options.Find().SetSort(bson.D{{Key: "submissionDate", Value: -1}, {Key: "_id", Value: -1}})

func (r *mongoApprovalRepository) Create(ctx context.Context, req *model.ApprovalRequest) error {
	if req.ApprovalComments == nil {
		// $push needs an existing array
		req.ApprovalComments = []model.ApprovalComment{}
	}
	_, err := r.coll.InsertOne(ctx, req)
	return err
}

func (r *mongoApprovalRepository) FindByID(ctx context.Context, id string) (*model.ApprovalRequest, error) {
	var req model.ApprovalRequest
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&req)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *mongoApprovalRepository) find(ctx context.Context, filter bson.M) ([]model.ApprovalRequest, error) {
	cursor, err := r.coll.Find(ctx, filter, newestFirst)
	if err != nil {
		return nil, err
	}

	requests := make([]model.ApprovalRequest, 0)
	if err := cursor.All(ctx, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *mongoApprovalRepository) FindByApprover(ctx context.Context, email, status string) ([]model.ApprovalRequest, error) {
	filter := bson.M{"approverEmail": email}
	if status != "" {
		filter["status"] = status
	}
	return r.find(ctx, filter)
}

func (r *mongoApprovalRepository) FindByRequestor(ctx context.Context, email string) ([]model.ApprovalRequest, error) {
	return r.find(ctx, bson.M{"requestorEmail": email})
}

func (r *mongoApprovalRepository) UpdateStatus(ctx context.Context, req *model.ApprovalRequest, expectedStatus string, comment *model.ApprovalComment) error {
	update := bson.M{"$set": bson.M{
		"status":         req.Status,
		"lastUpdateDate": req.LastUpdateDate,
	}}
	if comment != nil {
		update["$push"] = bson.M{"approvalComments": comment}
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": req.ID, "status": expectedStatus}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount > 0 {
		return nil
	}

	n, err := r.coll.CountDocuments(ctx, bson.M{"_id": req.ID})
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrStatusConflict
}

func (r *mongoApprovalRepository) Count(ctx context.Context) (int64, error) {
	return r.coll.CountDocuments(ctx, bson.M{})
}
