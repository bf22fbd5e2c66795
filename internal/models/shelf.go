package models

import "time"

// Shelf represents one physical shelf unit inside a branch.
// RowCount is the declared capacity from the shelf template; rows beyond it
// may still appear in the assignment data and must be rendered.
type Shelf struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	BranchCode string    `gorm:"type:varchar(20);uniqueIndex:idx_branch_shelf;not null" json:"branchCode"`
	Code       string    `gorm:"type:varchar(20);uniqueIndex:idx_branch_shelf;not null" json:"shelfCode"`
	Name       string    `gorm:"type:varchar(100)" json:"name,omitempty"`
	RowCount   int       `gorm:"not null;default:1" json:"rowCount"`
	SortOrder  int       `gorm:"default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	Branch *Branch `gorm:"foreignKey:BranchCode;references:Code" json:"branch,omitempty"`
}

func (Shelf) TableName() string { return "shelves" }
