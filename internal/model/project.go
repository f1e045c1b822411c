package model

import "time"

// Project status values
const (
	ProjectPlanning   = "Planning"
	ProjectInProgress = "In Progress"
	ProjectCompleted  = "Completed"
	ProjectOnHold     = "On Hold"
)

// Project is a store-launch project an approval request may be associated with
type Project struct {
	ID        string    `gorm:"type:varchar(64);primaryKey" json:"id" bson:"_id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name" bson:"name"`
	StoreName string    `gorm:"type:varchar(255)" json:"storeName" bson:"storeName"`
	Status    string    `gorm:"type:varchar(30);not null;index" json:"status" bson:"status"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
}
