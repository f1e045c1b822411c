package repository

import (
	"context"
	"errors"
	"sort"
	"sync"

	"storeflow/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"
)

type ProjectRepository interface {
	Create(ctx context.Context, project *model.Project) error
	FindByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, page, limit int) ([]model.Project, int64, error)
}

type projectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) Create(ctx context.Context, project *model.Project) error {
	return GetDB(ctx, r.db).Create(project).Error
}

func (r *projectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := GetDB(ctx, r.db).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) List(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	db := GetDB(ctx, r.db)
	if err := db.Model(&model.Project{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&projects).Error; err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}

// --- in-memory ---

type memoryProjectRepository struct {
	mu       sync.RWMutex
	projects []model.Project
}

func NewMemoryProjectRepository() ProjectRepository {
	return &memoryProjectRepository{}
}

func (r *memoryProjectRepository) Create(_ context.Context, project *model.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.projects = append(r.projects, *project)
	sort.SliceStable(r.projects, func(i, j int) bool {
		return r.projects[i].CreatedAt.After(r.projects[j].CreatedAt)
	})
	return nil
}

func (r *memoryProjectRepository) FindByID(_ context.Context, id string) (*model.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.projects {
		if p.ID == id {
			found := p
			return &found, nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryProjectRepository) List(_ context.Context, page, limit int) ([]model.Project, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := int64(len(r.projects))
	offset := (page - 1) * limit
	if offset >= len(r.projects) {
		return []model.Project{}, total, nil
	}
	end := offset + limit
	if end > len(r.projects) {
		end = len(r.projects)
	}

	result := make([]model.Project, end-offset)
	copy(result, r.projects[offset:end])
	return result, total, nil
}

// --- MongoDB ---

const ProjectCollection = "projects"

type mongoProjectRepository struct {
	coll *mongo.Collection
}

func NewMongoProjectRepository(db *mongo.Database) ProjectRepository {
	return &mongoProjectRepository{coll: db.Collection(ProjectCollection)}
}

func (r *mongoProjectRepository) Create(ctx context.Context, project *model.Project) error {
	_, err := r.coll.InsertOne(ctx, project)
	return err
}

func (r *mongoProjectRepository) FindByID(ctx context.Context, id string) (*model.Project, error) {
	var project model.Project
	err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *mongoProjectRepository) List(ctx context.Context, page, limit int) ([]model.Project, int64, error) {
	total, err := r.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}

	projects := make([]model.Project, 0)
	if err := cursor.All(ctx, &projects); err != nil {
		return nil, 0, err
	}
	return projects, total, nil
}
