package routes

import (
	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/services"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

const lookupCachePrefix = "lookup:"

// GetCities returns the active cities for the public search form,
// cached for the dropdown TTL.
func GetCities(ctx iris.Context) {
	cities := make([]models.City, 0)
	if !storage.CacheGet(lookupCachePrefix+"cities", &cities) {
		if err := storage.DB.
			Where("is_active = ?", true).
			Order("name ASC").
			Find(&cities).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		storage.CacheSet(lookupCachePrefix+"cities", cities, storage.DefaultCacheTTL)
	}
	ctx.JSON(cities)
}

// GetDistricts repopulates the district dropdown after a city is
// picked. An unknown city yields an empty list, not an error.
func GetDistricts(ctx iris.Context) {
	cityID := uint(ctx.URLParamIntDefault("cityId", 0))
	districts, err := services.ListDistricts(cityID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(districts)
}

// GetNeighborhoods is the same lookup one level down.
func GetNeighborhoods(ctx iris.Context) {
	districtID := uint(ctx.URLParamIntDefault("districtId", 0))
	neighborhoods, err := services.ListNeighborhoods(districtID)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(neighborhoods)
}

// AdminLocationTree returns the full city → district → neighborhood
// hierarchy for the back-office location screen.
func AdminLocationTree(ctx iris.Context) {
	cities := make([]models.City, 0)
	err := storage.DB.
		Preload("Districts", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Districts.Neighborhoods", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Order("name ASC").
		Find(&cities).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": cities})
}

type createCityInput struct {
	Name      string `json:"name" validate:"required"`
	PlateCode string `json:"plateCode"`
}

func CreateCity(ctx iris.Context) {
	var input createCityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var count int64
	storage.DB.Model(&models.City{}).Where("name = ?", input.Name).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "a city with this name already exists")
		return
	}

	city := models.City{
		Name:      input.Name,
		PlateCode: input.PlateCode,
		IsActive:  true,
	}
	if err := storage.DB.Create(&city).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONResult(ctx, true, "city created", iris.Map{"cityId": city.ID})
}

func EditCity(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input createCityInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var city models.City
	if err := storage.DB.First(&city, id).Error; err != nil {
		utils.JSONFail(ctx, "city not found")
		return
	}

	city.Name = input.Name
	city.PlateCode = input.PlateCode
	if err := storage.DB.Save(&city).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "city updated")
}

func ToggleCity(ctx iris.Context) {
	toggleLocationActive(ctx, &models.City{}, "city")
}

// DeleteCity rejects the delete while districts or listings still
// reference the city; nothing is cascaded.
func DeleteCity(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var city models.City
	if err := storage.DB.First(&city, id).Error; err != nil {
		utils.JSONFail(ctx, "city not found")
		return
	}

	var count int64
	storage.DB.Model(&models.District{}).Where("city_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "districts exist for this city")
		return
	}
	storage.DB.Model(&models.Property{}).Where("city_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "properties exist in this city")
		return
	}

	if err := storage.DB.Delete(&city).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "city deleted")
}

type createDistrictInput struct {
	Name   string `json:"name" validate:"required"`
	CityID uint   `json:"cityId" validate:"required"`
}

func CreateDistrict(ctx iris.Context) {
	var input createDistrictInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var count int64
	storage.DB.Model(&models.City{}).Where("id = ?", input.CityID).Count(&count)
	if count == 0 {
		utils.JSONFail(ctx, "city not found")
		return
	}
	storage.DB.Model(&models.District{}).
		Where("city_id = ? AND name = ?", input.CityID, input.Name).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "a district with this name already exists in this city")
		return
	}

	district := models.District{
		Name:     input.Name,
		CityID:   input.CityID,
		IsActive: true,
	}
	if err := storage.DB.Create(&district).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONResult(ctx, true, "district created", iris.Map{"districtId": district.ID})
}

type renameInput struct {
	Name string `json:"name" validate:"required"`
}

func EditDistrict(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input renameInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var district models.District
	if err := storage.DB.First(&district, id).Error; err != nil {
		utils.JSONFail(ctx, "district not found")
		return
	}

	district.Name = input.Name
	if err := storage.DB.Save(&district).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "district updated")
}

func ToggleDistrict(ctx iris.Context) {
	toggleLocationActive(ctx, &models.District{}, "district")
}

func DeleteDistrict(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var district models.District
	if err := storage.DB.First(&district, id).Error; err != nil {
		utils.JSONFail(ctx, "district not found")
		return
	}

	var count int64
	storage.DB.Model(&models.Neighborhood{}).Where("district_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "neighborhoods exist for this district")
		return
	}
	storage.DB.Model(&models.Property{}).Where("district_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "properties exist in this district")
		return
	}

	if err := storage.DB.Delete(&district).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "district deleted")
}

type createNeighborhoodInput struct {
	Name       string `json:"name" validate:"required"`
	DistrictID uint   `json:"districtId" validate:"required"`
}

func CreateNeighborhood(ctx iris.Context) {
	var input createNeighborhoodInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var count int64
	storage.DB.Model(&models.District{}).Where("id = ?", input.DistrictID).Count(&count)
	if count == 0 {
		utils.JSONFail(ctx, "district not found")
		return
	}
	storage.DB.Model(&models.Neighborhood{}).
		Where("district_id = ? AND name = ?", input.DistrictID, input.Name).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "a neighborhood with this name already exists in this district")
		return
	}

	neighborhood := models.Neighborhood{
		Name:       input.Name,
		DistrictID: input.DistrictID,
		IsActive:   true,
	}
	if err := storage.DB.Create(&neighborhood).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONResult(ctx, true, "neighborhood created", iris.Map{"neighborhoodId": neighborhood.ID})
}

func EditNeighborhood(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input renameInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var neighborhood models.Neighborhood
	if err := storage.DB.First(&neighborhood, id).Error; err != nil {
		utils.JSONFail(ctx, "neighborhood not found")
		return
	}

	neighborhood.Name = input.Name
	if err := storage.DB.Save(&neighborhood).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "neighborhood updated")
}

func ToggleNeighborhood(ctx iris.Context) {
	toggleLocationActive(ctx, &models.Neighborhood{}, "neighborhood")
}

// DeleteNeighborhood only guards against referencing listings; a
// neighborhood has no child locations.
func DeleteNeighborhood(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var neighborhood models.Neighborhood
	if err := storage.DB.First(&neighborhood, id).Error; err != nil {
		utils.JSONFail(ctx, "neighborhood not found")
		return
	}

	var count int64
	storage.DB.Model(&models.Property{}).Where("neighborhood_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "properties exist in this neighborhood")
		return
	}

	if err := storage.DB.Delete(&neighborhood).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "neighborhood deleted")
}

// toggleLocationActive flips the active flag of one location row. It
// never touches children or listings; inactive rows just disappear
// from the public dropdowns.
func toggleLocationActive(ctx iris.Context, model interface{}, kind string) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	res := storage.DB.Model(model).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONFail(ctx, kind+" not found")
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, kind+" status toggled")
}
