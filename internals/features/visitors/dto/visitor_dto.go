package dto

import (
	"time"

	"github.com/lib/pq"

	"skyhr_backend/internals/features/visitors/model"
)

type CreateVisitorRequest struct {
	Name        string   `json:"name" validate:"required,min=2,max=120"`
	Phone       string   `json:"phone" validate:"omitempty,max=32"`
	Purpose     string   `json:"purpose" validate:"required,min=3,max=500"`
	VisitDate   string   `json:"visit_date" validate:"required"` // RFC3339 atau YYYY-MM-DD
	AccessAreas []string `json:"access_areas" validate:"omitempty,dive,min=1,max=120"`
}

type UpdateVisitorRequest struct {
	Name        *string   `json:"name" validate:"omitempty,min=2,max=120"`
	Phone       *string   `json:"phone" validate:"omitempty,max=32"`
	Purpose     *string   `json:"purpose" validate:"omitempty,min=3,max=500"`
	VisitDate   *string   `json:"visit_date"`
	AccessAreas *[]string `json:"access_areas" validate:"omitempty,dive,min=1,max=120"`
}

type VisitorResponse struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	CreatedBy      string    `json:"created_by"`
	Name           string    `json:"name"`
	Phone          string    `json:"phone,omitempty"`
	Purpose        string    `json:"purpose"`
	VisitDate      time.Time `json:"visit_date"`
	AccessAreas    []string  `json:"access_areas"`
	Status         string    `json:"status"`
	ApprovedBy     *string   `json:"approved_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewVisitorResponse(v model.VisitorModel) VisitorResponse {
	return VisitorResponse{
		ID:             v.VisitorID.String(),
		OrganizationID: v.VisitorOrganizationID,
		CreatedBy:      v.VisitorCreatedBy,
		Name:           v.VisitorName,
		Phone:          v.VisitorPhone,
		Purpose:        v.VisitorPurpose,
		VisitDate:      v.VisitorVisitDate,
		AccessAreas:    v.VisitorAccessAreas,
		Status:         v.VisitorStatus,
		ApprovedBy:     v.VisitorApprovedBy,
		CreatedAt:      v.VisitorCreatedAt,
	}
}

// ParseVisitDate menerima RFC3339 penuh atau tanggal saja.
func ParseVisitDate(raw string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func AccessAreasToArray(areas []string) pq.StringArray {
	if len(areas) == 0 {
		return pq.StringArray{}
	}
	return pq.StringArray(areas)
}
