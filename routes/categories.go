package routes

import (
	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// GetCategories returns active categories for the public filter bar,
// sorted by display order (ties break on id).
func GetCategories(ctx iris.Context) {
	categories := make([]models.Category, 0)
	if !storage.CacheGet(lookupCachePrefix+"categories", &categories) {
		err := storage.DB.
			Where("is_active = ?", true).
			Order("display_order ASC, id ASC").
			Find(&categories).Error
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		storage.CacheSet(lookupCachePrefix+"categories", categories, storage.DefaultCacheTTL)
	}
	ctx.JSON(iris.Map{"data": categories, "count": len(categories)})
}

// AdminListCategories includes inactive rows for the back-office.
func AdminListCategories(ctx iris.Context) {
	categories := make([]models.Category, 0)
	err := storage.DB.Order("display_order ASC, id ASC").Find(&categories).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": categories})
}

type taxonomyInput struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	IconClass   string `json:"iconClass"`
}

func CreateCategory(ctx iris.Context) {
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
	storage.DB.Model(&models.Category{}).Count(&count)

	category := models.Category{
		Name:         input.Name,
		Description:  input.Description,
		IconClass:    icon,
		IsActive:     true,
		DisplayOrder: int(count) + 1,
	}
	if err := storage.DB.Create(&category).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONResult(ctx, true, "category created", iris.Map{"categoryId": category.ID})
}

func EditCategory(ctx iris.Context) {
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

	var category models.Category
	if err := storage.DB.First(&category, id).Error; err != nil {
		utils.JSONFail(ctx, "category not found")
		return
	}

	category.Name = input.Name
	category.Description = input.Description
	category.IconClass = input.IconClass
	if err := storage.DB.Save(&category).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "category updated")
}

func ToggleCategory(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	res := storage.DB.Model(&models.Category{}).
		Where("id = ?", id).
		Update("is_active", gorm.Expr("NOT is_active"))
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONFail(ctx, "category not found")
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "category status toggled")
}

// DeleteCategory is rejected while any listing references the row.
func DeleteCategory(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var category models.Category
	if err := storage.DB.First(&category, id).Error; err != nil {
		utils.JSONFail(ctx, "category not found")
		return
	}

	var count int64
	storage.DB.Model(&models.Property{}).Where("category_id = ?", id).Count(&count)
	if count > 0 {
		utils.JSONFail(ctx, "properties exist in this category")
		return
	}

	if err := storage.DB.Delete(&category).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	storage.CacheRemovePrefix(lookupCachePrefix)
	utils.JSONOK(ctx, "category deleted")
}

type reorderInput struct {
	IDs []uint `json:"ids" validate:"required,min=1"`
}

// ReorderCategories assigns a fresh one-based display order following
// the supplied id list, in one transaction.
func ReorderCategories(ctx iris.Context) {
	var input reorderInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	err := storage.DB.Transaction(func(tx *gorm.DB) error {
		for i, id := range input.IDs {
			if err := tx.Model(&models.Category{}).
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
	utils.JSONOK(ctx, "categories reordered")
}
