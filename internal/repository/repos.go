package repository

import (
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// Repos bundles the repositories of one storage backend.
type Repos struct {
	Approval ApprovalRepository
	User     UserRepository
	Project  ProjectRepository
	Audit    AuditRepository
	Tx       TransactionManager
}

func NewPostgresRepos(db *gorm.DB) *Repos {
	return &Repos{
		Approval: NewApprovalRepository(db),
		User:     NewUserRepository(db),
		Project:  NewProjectRepository(db),
		Audit:    NewAuditRepository(db),
		Tx:       NewTransactionManager(db),
	}
}

func NewMongoRepos(db *mongo.Database) *Repos {
	return &Repos{
		Approval: NewMongoApprovalRepository(db),
		User:     NewMongoUserRepository(db),
		Project:  NewMongoProjectRepository(db),
		Audit:    NewMongoAuditRepository(db),
		Tx:       NewDirectTransactionManager(),
	}
}

func NewMemoryRepos() *Repos {
	return &Repos{
		Approval: NewMemoryApprovalRepository(),
		User:     NewMemoryUserRepository(),
		Project:  NewMemoryProjectRepository(),
		Audit:    NewMemoryAuditRepository(),
		Tx:       NewDirectTransactionManager(),
	}
}
