package routes

import (
	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Property types mirror categories: an independent flat taxonomy with
// its own display order.

func GetPropertyTypes(ctx iris.Context) {
	types := make([]models.PropertyType, 0)
	if !storage.CacheGet(lookupCachePrefix+"property_types", &types) {
		err := storage.DB.
			Where("is_active = ?", true).
			Order("display_order ASC, id ASC").
			Find(&types).Error
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		storage.CacheSet(lookupCachePrefix+"property_types", types, storage.DefaultCacheTTL)
	}
	ctx.JSON(iris.Map{"data": types, "count": len(types)})
}

func AdminListPropertyTypes(ctx iris.Context) {
	types := make([]models.PropertyType, 0)
	err := storage.DB.Order("display_order ASC, id ASC").Find(&types).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": types})
}

func CreatePropertyType(ctx iris.Context) {
	var input taxonomyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	icon := input.IconClass
	if icon == "" {
		icon = "fas fa-tag"
	}

	var count int64
	storage.DB.Model(&models.PropertyType{}).Count(&count)

	propertyType := models.PropertyType{
		Name:         input.Name,
		Description:  input.Description,
		IconClass:    icon,
		IsActive:     true,
		DisplayOrder: int(count) + 1,
	}
	if err := storage.DB.Create(&propertyType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONResult(ctx, true, "property type created", iris.Map{"propertyTypeId": propertyType.ID})
}

func EditPropertyType(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input taxonomyInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var propertyType models.PropertyType
	if err := storage.DB.First(&propertyType, id).Error; err != nil {
		utils.JSONFail(ctx, "property type not found")
		return
	}

	propertyType.Name = input.Name
	propertyType.Description = input.Description
	propertyType.IconClass = input.IconClass
	if err := storage.DB.Save(&propertyType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "property type updated")
}

func TogglePropertyType(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	res := storage.DB.Model(&models.PropertyType{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONFail(ctx, "property type not found")
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "property type status toggled")
}

func DeletePropertyType(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var propertyType models.PropertyType
	if err := storage.DB.First(&propertyType, id).Error; err != nil {
		utils.JSONFail(ctx, "property type not found")
		return
	}

	var count int64
	storage.DB.Model(&models.Property{}).Where("property_type_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "properties exist with this property type")
		return
	}

	if err := storage.DB.Delete(&propertyType).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "property type deleted")
}

func ReorderPropertyTypes(ctx iris.Context) {
	var input reorderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range input.IDs {
			if err := tx.Model(&models.PropertyType{}).
				Where("id = ?", id).
				Update("display_order", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "property types reordered")
}
