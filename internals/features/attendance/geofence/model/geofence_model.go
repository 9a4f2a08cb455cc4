package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const GeofenceTypeCircular = "circular"

// GeofenceModel: region melingkar yang membatasi lokasi check-in.
// Koordinat disimpan sebagai text supaya presisi desimal tidak berubah
// di perjalanan (parsing float dilakukan di evaluator).
type GeofenceModel struct {
	GeofenceID             uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:geofence_id" json:"geofence_id"`
	GeofenceOrganizationID string    `gorm:"not null;index;column:geofence_organization_id" json:"geofence_organization_id"`

	GeofenceName string `gorm:"not null;column:geofence_name" json:"geofence_name"`
	GeofenceType string `gorm:"not null;default:circular;column:geofence_type" json:"geofence_type"`

	GeofenceCenterLatitude  string `gorm:"not null;column:geofence_center_latitude" json:"geofence_center_latitude"`
	GeofenceCenterLongitude string `gorm:"not null;column:geofence_center_longitude" json:"geofence_center_longitude"`
	GeofenceRadiusM         int    `gorm:"not null;column:geofence_radius_m" json:"geofence_radius_m"`

	// Dicadangkan untuk tipe polygon; belum dievaluasi.
	GeofenceCoordinates datatypes.JSON `gorm:"column:geofence_coordinates" json:"geofence_coordinates,omitempty"`

	GeofenceActive bool `gorm:"not null;default:true;column:geofence_active" json:"geofence_active"`

	GeofenceCreatedAt time.Time      `gorm:"column:geofence_created_at;autoCreateTime" json:"geofence_created_at"`
	GeofenceUpdatedAt *time.Time     `gorm:"column:geofence_updated_at;autoUpdateTime" json:"geofence_updated_at,omitempty"`
	GeofenceDeletedAt gorm.DeletedAt `gorm:"column:geofence_deleted_at;index" json:"geofence_deleted_at,omitempty"`
}

func (GeofenceModel) TableName() string { return "geofence" }
