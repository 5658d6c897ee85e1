package models

type Diamond struct {
	ID             string  `json:"id" db:"id"`
	Name           string  `json:"name" db:"name"`
	OrganizationID string  `json:"organization_id" db:"organization_id"`
	Address        *string `json:"address,omitempty" db:"address"`
}
