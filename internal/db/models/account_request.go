// Package models contains database model definitions.
package models

import "time"

// RequestStatus enumerates the account request lifecycle states.
type RequestStatus string

const (
	// StatusPending is the initial state of every request.
	StatusPending RequestStatus = "Pending"
	// StatusApproved is a terminal state set by a director approval.
	StatusApproved RequestStatus = "Approved"
	// StatusRejected is a terminal state set by a director rejection.
	StatusRejected RequestStatus = "Rejected"
	// StatusReturned is modeled in storage but reserved: no transition
	// leads to it in the current workflow.
	StatusReturned RequestStatus = "Returned"
)

// DefaultProductType is the only account product currently offered.
const DefaultProductType = "Savings"

// AccountRequest is an account-opening request. Created by an advisor
// acting through a UserRole binding, resolved by a director action.
// Resolution is monotonic: once Approved or Rejected a request never
// changes state again.
type AccountRequest struct {
	// ID is the unique identifier for the request.
	ID uint64 `gorm:"primaryKey"`
	// Reference is a short random code used when referring to the
	// request outside the service.
	Reference string `gorm:"unique;size:32;not null"`
	// ClientID references the client the account is opened for.
	ClientID uint64 `gorm:"not null"`
	// Client is the associated client record.
	Client Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:RESTRICT"`
	// UserRoleID is the binding of the advisor that created the request.
	// The resolving director's binding is intentionally not recorded.
	UserRoleID uint64 `gorm:"not null"`
	// UserRole is the creator binding.
	UserRole UserRole `gorm:"foreignKey:UserRoleID;references:ID;constraint:OnDelete:RESTRICT"`
	// ProductType is the requested account product.
	ProductType string `gorm:"size:50;not null;default:'Savings'"`
	// Status is the lifecycle state.
	Status RequestStatus `gorm:"type:varchar(20);not null;default:'Pending'"`
	// AdvisorComment is the optional note left at creation.
	AdvisorComment string `gorm:"size:1000"`
	// DirectorComment is the note left on rejection (approvals carry none).
	DirectorComment string `gorm:"size:1000"`
	// Artifact is the opaque supporting document, attached at creation only.
	Artifact []byte `gorm:"type:blob"`
	// ArtifactType is the content-type tag of the artifact.
	ArtifactType string `gorm:"size:100"`
	// CreatedAt is the timestamp when the request was submitted (managed by GORM).
	CreatedAt time.Time
	// ResolvedAt is the timestamp of the approve/reject decision, nil while pending.
	ResolvedAt *time.Time
}

// TableName specifies the database table name for the AccountRequest model.
func (AccountRequest) TableName() string {
	return "account_requests"
}

// Resolved reports whether the request reached a terminal state.
func (r *AccountRequest) Resolved() bool {
	return r.Status == StatusApproved || r.Status == StatusRejected
}
