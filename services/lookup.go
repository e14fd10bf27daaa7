package services

import (
	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
)

// LocationOption is the lightweight (id, name) pair the dependent
// dropdowns are built from.
type LocationOption struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ListDistricts returns the active districts of a city, ordered by
// name. An unknown or deleted city simply yields an empty list.
func ListDistricts(cityID uint) ([]LocationOption, error) {
	options := make([]LocationOption, 0)
	err := storage.DB.Model(&models.District{}).
		Where("city_id = ? AND is_active = ?", cityID, true).
		Order("name ASC").
		Select("id", "name").
		Scan(&options).Error
	return options, err
}

// ListNeighborhoods is the same lookup one level down.
func ListNeighborhoods(districtID uint) ([]LocationOption, error) {
	options := make([]LocationOption, 0)
	err := storage.DB.Model(&models.Neighborhood{}).
		Where("district_id = ? AND is_active = ?", districtID, true).
		Order("name ASC").
		Select("id", "name").
		Scan(&options).Error
	return options, err
}
