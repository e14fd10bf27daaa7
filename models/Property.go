package models

import "time"

// Property is a single listing. Category, PropertyType, City and
// District are mandatory references; Neighborhood is optional and is
// cleared when its row is removed. Images are owned and ordered by
// DisplayOrder.
type Property struct {
	ID          uint    `json:"id" gorm:"primarykey"`
	Title       string  `json:"title" gorm:"size:200;not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	Price       float64 `json:"price" gorm:"type:numeric(14,2);not null"`

	Area          *int `json:"area"` // m2
	RoomCount     *int `json:"roomCount"`
	BathroomCount *int `json:"bathroomCount"`
	FloorNumber   *int `json:"floorNumber"`
	TotalFloors   *int `json:"totalFloors"`
	BuildingAge   *int `json:"buildingAge"`

	Address   string   `json:"address" gorm:"size:500"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	IsActive   bool `json:"isActive" gorm:"default:true;index"`
	IsFeatured bool `json:"isFeatured" gorm:"default:false"`

	CreatedDate time.Time  `json:"createdDate" gorm:"index"`
	UpdatedDate *time.Time `json:"updatedDate"`

	CategoryID     uint  `json:"categoryId" gorm:"not null;index"`
	PropertyTypeID uint  `json:"propertyTypeId" gorm:"not null;index"`
	CityID         uint  `json:"cityId" gorm:"not null;index"`
	DistrictID     uint  `json:"districtId" gorm:"not null;index"`
	NeighborhoodID *uint `json:"neighborhoodId"`

	Category     *Category     `json:"category,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	PropertyType *PropertyType `json:"propertyType,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	City         *City         `json:"city,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	District     *District     `json:"district,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	Neighborhood *Neighborhood `json:"neighborhood,omitempty" gorm:"constraint:OnDelete:SET NULL"`

	Images []PropertyImage `json:"images,omitempty" gorm:"constraint:OnDelete:CASCADE"`
}
