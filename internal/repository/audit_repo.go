package repository

//go:generate mockgen -source=audit_repo.go -destination=mock/audit_repo_mock.go -package=mock

import (
	"context"
	"sync"

	"storeflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditLog) error
	List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	return GetDB(ctx, r.db).Create(entry).Error
}

func (r *auditRepository) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	var logs []model.AuditLog
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at desc").Offset(offset).Limit(limit).Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}

// --- in-memory ---

type memoryAuditRepository struct {
	mu   sync.RWMutex
	logs []model.AuditLog // newest first
}

func NewMemoryAuditRepository() AuditRepository {
	return &memoryAuditRepository{}
}

func (r *memoryAuditRepository) Log(_ context.Context, entry *model.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append([]model.AuditLog{*entry}, r.logs...)
	return nil
}

func (r *memoryAuditRepository) List(_ context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.logs))
	offset := (page - 1) * limit
	if offset >= len(r.logs) {
		return []model.AuditLog{}, total, nil
	}
	end := offset + limit
	if end > len(r.logs) {
		end = len(r.logs)
	}

	result := make([]model.AuditLog, end-offset)
	copy(result, r.logs[offset:end])
	return result, total, nil
}

// --- MongoDB ---

const AuditCollection = "audit_logs"

type mongoAuditRepository struct {
	coll *mongo.Collection
}

func NewMongoAuditRepository(db *mongo.Database) AuditRepository {
	return &mongoAuditRepository{coll: db.Collection(AuditCollection)}
}

func (r *mongoAuditRepository) Log(ctx context.Context, entry *model.AuditLog) error {
	_, err := r.coll.InsertOne(ctx, entry)
	return err
}

func (r *mongoAuditRepository) List(ctx context.Context, page, limit int) ([]model.AuditLog, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	logs := make([]model.AuditLog, 0)
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, err
	}
	return logs, total, nil
}
