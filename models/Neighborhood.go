package models

type Neighborhood struct {
	ID         uint      `json:"id" gorm:"primarykey"`
	Name       string    `json:"name" gorm:"size:100;not null"`
	IsActive   bool      `json:"isActive" gorm:"default:true"`
	DistrictID uint      `json:"districtId" gorm:"not null;index"`
	District   *District `json:"district,omitempty"`
}
