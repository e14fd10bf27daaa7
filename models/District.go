package models

type District struct {
	ID            uint           `json:"id" gorm:"primarykey"`
	Name          string         `json:"name" gorm:"size:100;not null"`
	IsActive      bool           `json:"isActive" gorm:"default:true"`
	CityID        uint           `json:"cityId" gorm:"not null;index"`
	City          *City          `json:"city,omitempty"`
	Neighborhoods []Neighborhood `json:"neighborhoods,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
}
