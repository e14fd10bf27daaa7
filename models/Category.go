package models

// Category is one of the two classification axes of a listing
// (e.g. for sale / for rent). PropertyType is the other one.
type Category struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	Name         string `json:"name" gorm:"size:100;not null"`
	Description  string `json:"description" gorm:"size:500"`
	IconClass    string `json:"iconClass" gorm:"size:100"`
	IsActive     bool   `json:"isActive" gorm:"default:true"`
	DisplayOrder int    `json:"displayOrder" gorm:"default:0"`
}
