package dto

type RegisterLocationRequest struct {
	LocationID string `json:"location_id" validate:"required,uuid4"`
}

type RegisterLocationResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

type DeobfuscateRequest struct {
	Payload string `json:"payload" validate:"required"`
}

type DeobfuscateResponse struct {
	OrganizationID string `json:"organization_id"`
	LocationID     string `json:"location_id"`
}
