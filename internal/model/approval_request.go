package model

import (
	"time"
)

// ApprovalStatus values
const (
	ApprovalPending   = "Pending"
	ApprovalApproved  = "Approved"
	ApprovalRejected  = "Rejected"
	ApprovalWithdrawn = "Withdrawn"
)

// ApprovalRequest is a request submitted by a requestor that a single designated approver
// decides on. Status leaves Pending at most once.
type ApprovalRequest struct {
	ID                   string            `gorm:"type:uuid;primaryKey" json:"id" bson:"_id"`
	Title                string            `gorm:"type:varchar(255);not null" json:"title" bson:"title"`
	Details              string            `gorm:"type:text;not null" json:"details" bson:"details"`
	Status               string            `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status" bson:"status"`
	RequestorName        string            `gorm:"type:varchar(255);not null" json:"requestorName" bson:"requestorName"`
	RequestorEmail       string            `gorm:"type:varchar(255);not null;index" json:"requestorEmail" bson:"requestorEmail"`
	ApproverName         string            `gorm:"type:varchar(255);not null" json:"approverName" bson:"approverName"`
	ApproverEmail        string            `gorm:"type:varchar(255);not null;index" json:"approverEmail" bson:"approverEmail"`
	RequestingDepartment string            `gorm:"type:varchar(100);not null" json:"requestingDepartment" bson:"requestingDepartment"`
	ProjectID            string            `gorm:"type:varchar(64)" json:"projectId,omitempty" bson:"projectId"`
	ProjectName          string            `gorm:"type:varchar(255)" json:"projectName,omitempty" bson:"projectName"`
	SubmissionDate       time.Time         `gorm:"not null;index" json:"submissionDate" bson:"submissionDate"`
	LastUpdateDate       *time.Time        `json:"lastUpdateDate,omitempty" bson:"lastUpdateDate,omitempty"`
	ApprovalComments     []ApprovalComment `gorm:"foreignKey:ApprovalRequestID;constraint:OnDelete:CASCADE" json:"approvalComments" bson:"approvalComments"`
}

// ApprovalComment is appended to a request when the approver decides with a comment.
type ApprovalComment struct {
	ID                string    `gorm:"type:uuid;primaryKey" json:"id" bson:"id"`
	ApprovalRequestID string    `gorm:"type:uuid;not null;index" json:"-" bson:"-"`
	Text              string    `gorm:"type:text;not null" json:"text" bson:"text"`
	Author            string    `gorm:"type:varchar(255);not null" json:"author" bson:"author"`
	AuthorID          string    `gorm:"type:varchar(64)" json:"authorId,omitempty" bson:"authorId"`
	Timestamp         time.Time `gorm:"not null" json:"timestamp" bson:"timestamp"`
}

// IsFinal reports whether the request can no longer change status.
func (a *ApprovalRequest) IsFinal() bool {
	return a.Status != ApprovalPending
}
