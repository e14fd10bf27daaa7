package models

type City struct {
	ID        uint       `json:"id" gorm:"primarykey"`
	Name      string     `json:"name" gorm:"size:100;not null;uniqueIndex"`
	PlateCode string     `json:"plateCode" gorm:"size:10"`
	IsActive  bool       `json:"isActive" gorm:"default:true"`
	Districts []District `json:"districts,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}
