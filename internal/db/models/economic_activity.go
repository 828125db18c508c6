package models

// EconomicActivity holds a client's occupation details.
// Read-side only, like ContactProfile.
type EconomicActivity struct {
	ID         uint64 `gorm:"primaryKey"`
	ClientID   uint64 `gorm:"not null;uniqueIndex"`
	Client     Client `gorm:"foreignKey:ClientID;references:ID;constraint:OnDelete:CASCADE"`
	Occupation string `gorm:"size:100"`
	Profession string `gorm:"size:100"`
}

// TableName specifies the database table name for the EconomicActivity model.
func (EconomicActivity) TableName() string {
	return "economic_activities"
}
