package db_models

// Vendor is owned by the marketplace CRUD side; the settlement
// pipeline only reads the identity fields coupon scoping matches on.
type Vendor struct {
	BaseModel
	PublicCode string `gorm:"uniqueIndex"`
	Name       string
	Email      string `gorm:"index"`
}

func (Vendor) TableName() string { return "vendors" }
