package models

type PropertyType struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	Name         string `json:"name" gorm:"size:100;not null"`
	Description  string `json:"description" gorm:"size:500"`
	IconClass    string `json:"iconClass" gorm:"size:100"`
	IsActive     bool   `json:"isActive" gorm:"default:true"`
	DisplayOrder int    `json:"displayOrder" gorm:"default:0"`
}
