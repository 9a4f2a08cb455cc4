package dto

import (
	"time"

	"github.com/google/uuid"

	m "skyhr_backend/internals/features/attendance/geofence/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON) — hanya circular yang didukung
type CreateGeofenceRequest struct {
	GeofenceName            string `json:"geofence_name" validate:"required,max=120"`
	GeofenceCenterLatitude  string `json:"geofence_center_latitude" validate:"required,latitude"`
	GeofenceCenterLongitude string `json:"geofence_center_longitude" validate:"required,longitude"`
	GeofenceRadiusM         int    `json:"geofence_radius_m" validate:"required,gt=0"`
}

// Update (partial JSON)
type UpdateGeofenceRequest struct {
	GeofenceName            *string `json:"geofence_name" validate:"omitempty,max=120"`
	GeofenceCenterLatitude  *string `json:"geofence_center_latitude" validate:"omitempty,latitude"`
	GeofenceCenterLongitude *string `json:"geofence_center_longitude" validate:"omitempty,longitude"`
	GeofenceRadiusM         *int    `json:"geofence_radius_m" validate:"omitempty,gt=0"`
	GeofenceActive          *bool   `json:"geofence_active" validate:"omitempty"`
}

// Containment probe (JSON)
type CheckGeofenceRequest struct {
	GeofenceID string `json:"geofence_id" validate:"required,uuid4"`
	Latitude   string `json:"latitude" validate:"required,latitude"`
	Longitude  string `json:"longitude" validate:"required,longitude"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type GeofenceResponse struct {
	GeofenceID              uuid.UUID  `json:"geofence_id"`
	GeofenceOrganizationID  string     `json:"geofence_organization_id"`
	GeofenceName            string     `json:"geofence_name"`
	GeofenceType            string     `json:"geofence_type"`
	GeofenceCenterLatitude  string     `json:"geofence_center_latitude"`
	GeofenceCenterLongitude string     `json:"geofence_center_longitude"`
	GeofenceRadiusM         int        `json:"geofence_radius_m"`
	GeofenceActive          bool       `json:"geofence_active"`
	GeofenceCreatedAt       time.Time  `json:"geofence_created_at"`
	GeofenceUpdatedAt       *time.Time `json:"geofence_updated_at,omitempty"`
}

type CheckGeofenceResponse struct {
	IsWithinGeofence bool `json:"is_within_geofence"`
	DistanceMeters   int  `json:"distance_m"`
}

/* =========================================================
 * HELPERS
 * ========================================================= */

func (r CreateGeofenceRequest) ToModel(organizationID string) m.GeofenceModel {
	return m.GeofenceModel{
		GeofenceOrganizationID:  organizationID,
		GeofenceName:            r.GeofenceName,
		GeofenceType:            m.GeofenceTypeCircular,
		GeofenceCenterLatitude:  r.GeofenceCenterLatitude,
		GeofenceCenterLongitude: r.GeofenceCenterLongitude,
		GeofenceRadiusM:         r.GeofenceRadiusM,
		GeofenceActive:          true,
	}
}

func NewGeofenceResponse(mdl m.GeofenceModel) GeofenceResponse {
	return GeofenceResponse{
		GeofenceID:              mdl.GeofenceID,
		GeofenceOrganizationID:  mdl.GeofenceOrganizationID,
		GeofenceName:            mdl.GeofenceName,
		GeofenceType:            mdl.GeofenceType,
		GeofenceCenterLatitude:  mdl.GeofenceCenterLatitude,
		GeofenceCenterLongitude: mdl.GeofenceCenterLongitude,
		GeofenceRadiusM:         mdl.GeofenceRadiusM,
		GeofenceActive:          mdl.GeofenceActive,
		GeofenceCreatedAt:       mdl.GeofenceCreatedAt,
		GeofenceUpdatedAt:       mdl.GeofenceUpdatedAt,
	}
}
