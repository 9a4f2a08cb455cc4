package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	VisitorStatusPending   = "pending"
	VisitorStatusApproved  = "approved"
	VisitorStatusRejected  = "rejected"
	VisitorStatusCancelled = "cancelled"
)

func ValidVisitorStatus(s string) bool {
	switch s {
	case VisitorStatusPending, VisitorStatusApproved, VisitorStatusRejected, VisitorStatusCancelled:
		return true
	}
	return false
}

// VisitorModel: pengajuan kunjungan tamu ke area organization.
type VisitorModel struct {
	VisitorID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:visitor_id" json:"visitor_id"`
	VisitorOrganizationID string    `gorm:"not null;index;column:visitor_organization_id" json:"visitor_organization_id"`

	// User yang mengajukan (host), bukan si tamu.
	VisitorCreatedBy string `gorm:"not null;index;column:visitor_created_by" json:"visitor_created_by"`

	VisitorName    string `gorm:"not null;column:visitor_name" json:"visitor_name"`
	VisitorPhone   string `gorm:"column:visitor_phone" json:"visitor_phone"`
	VisitorPurpose string `gorm:"not null;column:visitor_purpose" json:"visitor_purpose"`

	VisitorVisitDate time.Time `gorm:"not null;column:visitor_visit_date" json:"visitor_visit_date"`

	VisitorAccessAreas pq.StringArray `gorm:"type:text[];column:visitor_access_areas" json:"visitor_access_areas"`

	VisitorStatus     string  `gorm:"not null;default:pending;column:visitor_status" json:"visitor_status"`
	VisitorApprovedBy *string `gorm:"column:visitor_approved_by" json:"visitor_approved_by,omitempty"`

	VisitorCreatedAt time.Time      `gorm:"column:visitor_created_at;autoCreateTime" json:"visitor_created_at"`
	VisitorUpdatedAt *time.Time     `gorm:"column:visitor_updated_at;autoUpdateTime" json:"visitor_updated_at,omitempty"`
	VisitorDeletedAt gorm.DeletedAt `gorm:"column:visitor_deleted_at;index" json:"visitor_deleted_at,omitempty"`
}

func (VisitorModel) TableName() string { return "visitor" }
