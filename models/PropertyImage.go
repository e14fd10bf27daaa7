package models

import "time"

type PropertyImage struct {
	ID           uint      `json:"id" gorm:"primarykey"`
	ImagePath    string    `json:"imagePath" gorm:"size:500;not null"`
	AltText      string    `json:"altText" gorm:"size:200"`
	IsMainImage  bool      `json:"isMainImage" gorm:"default:false"`
	DisplayOrder int       `json:"displayOrder" gorm:"default:0"`
	CreatedDate  time.Time `json:"createdDate"`
	PropertyID   uint      `json:"propertyId" gorm:"not null;index"`
}
