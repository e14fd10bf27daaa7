package models

import "time"

// ContactMessage is an inbound message from the public contact form,
// optionally tied to the listing it was sent about.
type ContactMessage struct {
	ID          uint      `json:"id" gorm:"primarykey"`
	FullName    string    `json:"fullName" gorm:"size:100;not null"`
	Email       string    `json:"email" gorm:"size:200;not null"`
	Phone       string    `json:"phone" gorm:"size:20"`
	Subject     string    `json:"subject" gorm:"size:200"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	IsRead      bool      `json:"isRead" gorm:"default:false;index"`
	CreatedDate time.Time `json:"createdDate"`
	PropertyID  *uint     `json:"propertyId"`
	Property    *Property `json:"property,omitempty" gorm:"constraint:OnDelete:SET NULL"`
}
