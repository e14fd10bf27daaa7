package routes

import (
	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
)

// SearchProperties is the public catalog query: active listings only,
// filtered, sorted and paginated in pages of 12.
func SearchProperties(ctx iris.Context) {
	filter := readPropertyFilter(ctx)
	page := utils.ClampPage(ctx.URLParamIntDefault("page", 1))

	q := filter.apply(storage.DB.Model(&models.Property{}).Where("is_active = ?", true))

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	properties := make([]models.Property, 0)
	err := preloadPropertyRelations(filter.order(q)).
		Offset(utils.Offset(page, publicPageSize)).
		Limit(publicPageSize).
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, utils.NewPageMeta(total, page, publicPageSize))
}

// GetProperty returns one active listing with its references, ordered
// images and up to four similar listings.
func GetProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var property models.Property
	if err := preloadPropertyRelations(storage.DB).
		Where("is_active = ?", true).
		First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}

	similar := make([]models.Property, 0)
	if err := preloadPropertyRelations(storage.DB).
		Where("is_active = ? AND id <> ?", true, property.ID).
		Where("category_id = ? OR property_type_id = ? OR district_id = ?",
			property.CategoryID, property.PropertyTypeID, property.DistrictID).
		Order("created_date DESC").
		Limit(4).
		Find(&similar).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{"data": property, "similar": similar})
}

// GetFeaturedProperties feeds the home page highlight strip.
func GetFeaturedProperties(ctx iris.Context) {
	properties := make([]models.Property, 0)
	err := preloadPropertyRelations(storage.DB).
		Where("is_active = ? AND is_featured = ?", true, true).
		Order("created_date DESC").
		Limit(6).
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": properties})
}

func GetLatestProperties(ctx iris.Context) {
	properties := make([]models.Property, 0)
	err := preloadPropertyRelations(storage.DB).
		Where("is_active = ?", true).
		Order("created_date DESC").
		Limit(8).
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": properties})
}
