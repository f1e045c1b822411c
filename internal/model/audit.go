package model

import (
	"time"
)

const (
	ActionCreateApprovalRequest = "CREATE_APPROVAL_REQUEST"
	ActionApproveRequest        = "APPROVE_REQUEST"
	ActionRejectRequest         = "REJECT_REQUEST"
)

// AuditLog tracks Who, What, and When for approval workflow changes
type AuditLog struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	UserID     string    `gorm:"type:varchar(64);index" json:"userId" bson:"userId"`
	UserName   string    `gorm:"type:varchar(255)" json:"userName" bson:"userName"`
	Action     string    `gorm:"type:varchar(50);not null;index" json:"action" bson:"action"`
	EntityID   string    `gorm:"type:varchar(64);index" json:"entityId" bson:"entityId"`          // approval request id
	EntityName string    `gorm:"type:varchar(255)" json:"entityName,omitempty" bson:"entityName"` // request title
	Details    string    `gorm:"type:jsonb" json:"details" bson:"details"`                        // serialized JSON payload of the action
	CreatedAt  time.Time `gorm:"index" json:"createdAt" bson:"createdAt"`
}
