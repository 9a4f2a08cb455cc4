package model

import (
	"time"

	"gorm.io/gorm"
)

// OrganizationModel: tenant. ID bertipe text mengikuti provider auth
// (bukan UUID) — provider yang menerbitkan id organization.
type OrganizationModel struct {
	OrganizationID   string  `gorm:"primaryKey;column:organization_id" json:"organization_id"`
	OrganizationName string  `gorm:"not null;column:organization_name" json:"organization_name"`
	OrganizationSlug *string `gorm:"uniqueIndex;column:organization_slug" json:"organization_slug,omitempty"`
	OrganizationLogo *string `gorm:"column:organization_logo" json:"organization_logo,omitempty"`

	OrganizationIsActive bool `gorm:"not null;default:true;column:organization_is_active" json:"organization_is_active"`

	// Collection face-recognition milik tenant ini (satu collection per org).
	// Diisi lazily saat pertama kali dibutuhkan.
	OrganizationFaceCollectionID *string `gorm:"column:organization_face_collection_id" json:"organization_face_collection_id,omitempty"`

	OrganizationCreatedAt time.Time      `gorm:"column:organization_created_at;autoCreateTime" json:"organization_created_at"`
	OrganizationUpdatedAt *time.Time     `gorm:"column:organization_updated_at;autoUpdateTime" json:"organization_updated_at,omitempty"`
	OrganizationDeletedAt gorm.DeletedAt `gorm:"column:organization_deleted_at;index" json:"organization_deleted_at,omitempty"`
}

func (OrganizationModel) TableName() string { return "organization" }
