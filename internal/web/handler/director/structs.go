package director

import "time"

// resolvePayload is the body of an approve or reject call. The comment is
// mandatory for rejections and ignored-if-empty for approvals.
type resolvePayload struct {
	Comment string `json:"comment"`
}

// listEntry is a worklist row: the request joined with client and creator
// identity for display.
type listEntry struct {
	ID          uint64     `json:"id"`
	Reference   string     `json:"reference"`
	ClientName  string     `json:"client_name"`
	Document    string     `json:"client_document"`
	ProductType string     `json:"product_type"`
	Status      string     `json:"status"`
	AdvisorName string     `json:"advisor_name"`
	CreatedAt   time.Time  `json:"created_at"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// detailView extends a listEntry with the comments and document flag.
type detailView struct {
	listEntry
	AdvisorComment  string `json:"advisor_comment,omitempty"`
	DirectorComment string `json:"director_comment,omitempty"`
	HasDocument     bool   `json:"has_document"`
}

// fullView is the review-screen payload: the request detail plus the
// client's side tables.
type fullView struct {
	detailView
	DocumentType string        `json:"document_type,omitempty"`
	Contact      *contactView  `json:"contact,omitempty"`
	Economic     *activityView `json:"economic_activity,omitempty"`
}

type contactView struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Region  string `json:"region,omitempty"`
	Country string `json:"country,omitempty"`
}

type activityView struct {
	Occupation string `json:"occupation,omitempty"`
	Profession string `json:"profession,omitempty"`
}
