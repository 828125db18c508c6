package advisor

import "time"

// clientView is the client block returned by the lookup endpoint.
type clientView struct {
	ID             uint64  `json:"id"`
	DocumentNumber string  `json:"document_number"`
	DocumentType   string  `json:"document_type,omitempty"`
	FullName       string  `json:"full_name"`
	BirthDate      string  `json:"birth_date,omitempty"`
	Gender         string  `json:"gender,omitempty"`
	Nationality    string  `json:"nationality,omitempty"`
	MaritalStatus  string  `json:"marital_status,omitempty"`
	Contact        *fields `json:"contact,omitempty"`
	Economic       *work   `json:"economic_activity,omitempty"`
}

type fields struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

type work struct {
	Occupation string `json:"occupation,omitempty"`
	Profession string `json:"profession,omitempty"`
}

// requestView is an advisor-side listing entry.
type requestView struct {
	ID          uint64     `json:"id"`
	Reference   string     `json:"reference"`
	ClientName  string     `json:"client_name"`
	ProductType string     `json:"product_type"`
	Status      string     `json:"status"`
	Comment     string     `json:"comment,omitempty"`
	HasDocument bool       `json:"has_document"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}
