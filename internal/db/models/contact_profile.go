package models

// ContactProfile holds a client's contact details.
// Joined only for read-side detail views, never part of the workflow
// invariants.
type ContactProfile struct {
	ID       uint64 `gorm:"primaryKey"`
	ClientID uint64 `gorm:"not null;uniqueIndex"`
	Client   Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
	Email    string `gorm:"size:255"`
	Phone    string `gorm:"size:50"`
	Address  string `gorm:"size:255"`
	City     string `gorm:"size:100"`
	Region   string `gorm:"size:100"`
	Country  string `gorm:"size:100"`
}

// TableName specifies the database table name for the ContactProfile model.
func (ContactProfile) TableName() string {
	return "contact_profiles"
}
