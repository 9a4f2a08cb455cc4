package dto

import (
	"time"

	m "skyhr_backend/internals/features/organizations/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Sync (JSON) — menyalin profil organization dari provider auth
type SyncOrganizationRequest struct {
	OrganizationID   string  `json:"organization_id" validate:"required,max=64"`
	OrganizationName string  `json:"organization_name" validate:"required,max=120"`
	OrganizationSlug *string `json:"organization_slug" validate:"omitempty,max=120"`
	OrganizationLogo *string `json:"organization_logo" validate:"omitempty,url"`
}

type SetOrganizationActiveRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type OrganizationResponse struct {
	OrganizationID               string     `json:"organization_id"`
	OrganizationName             string     `json:"organization_name"`
	OrganizationSlug             *string    `json:"organization_slug,omitempty"`
	OrganizationLogo             *string    `json:"organization_logo,omitempty"`
	OrganizationIsActive         bool       `json:"organization_is_active"`
	OrganizationFaceCollectionID *string    `json:"organization_face_collection_id,omitempty"`
	OrganizationCreatedAt        time.Time  `json:"organization_created_at"`
	OrganizationUpdatedAt        *time.Time `json:"organization_updated_at,omitempty"`
}

func (r SyncOrganizationRequest) ToModel() m.OrganizationModel {
	return m.OrganizationModel{
		OrganizationID:   r.OrganizationID,
		OrganizationName: r.OrganizationName,
		OrganizationSlug: r.OrganizationSlug,
		OrganizationLogo: r.OrganizationLogo,
		OrganizationIsActive: true,
	}
}

func NewOrganizationResponse(mdl m.OrganizationModel) OrganizationResponse {
	return OrganizationResponse{
		OrganizationID:               mdl.OrganizationID,
		OrganizationName:             mdl.OrganizationName,
		OrganizationSlug:             mdl.OrganizationSlug,
		OrganizationLogo:             mdl.OrganizationLogo,
		OrganizationIsActive:         mdl.OrganizationIsActive,
		OrganizationFaceCollectionID: mdl.OrganizationFaceCollectionID,
		OrganizationCreatedAt:        mdl.OrganizationCreatedAt,
		OrganizationUpdatedAt:        mdl.OrganizationUpdatedAt,
	}
}
