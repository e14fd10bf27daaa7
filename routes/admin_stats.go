package routes

import (
	"time"

	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
)

type categoryStat struct {
	CategoryName string `json:"categoryName"`
	Count        int64  `json:"count"`
}

type cityStat struct {
	CityName string `json:"cityName"`
	Count    int64  `json:"count"`
}

// AdminStats backs the dashboard: headline counters plus per-category
// and top-city breakdowns of active listings.
func AdminStats(ctx iris.Context) {
	var totalProperties, activeProperties, featuredProperties, unreadMessages, propertiesThisMonth int64

	storage.DB.Model(&models.Property{}).Count(&totalProperties)
	storage.DB.Model(&models.Property{}).Where("is_active = ?", true).Count(&activeProperties)
	storage.DB.Model(&models.Property{}).Where("is_active = ? AND is_featured = ?", true, true).Count(&featuredProperties)
	storage.DB.Model(&models.ContactMessage{}).Where("is_read = ?", false).Count(&unreadMessages)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	storage.DB.Model(&models.Property{}).Where("created_date >= ?", monthStart).Count(&propertiesThisMonth)

	categoryStats := make([]categoryStat, 0)
	if err := storage.DB.Model(&models.Property{}).
		Select("categories.name AS category_name, COUNT(properties.id) AS count").
		Joins("JOIN categories ON categories.id = properties.category_id").
		Where("properties.is_active = ?", true).
		Group("categories.name").
		Order("count DESC").
		Scan(&categoryStats).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	cityStats := make([]cityStat, 0)
	if err := storage.DB.Model(&models.Property{}).
		Select("cities.name AS city_name, COUNT(properties.id) AS count").
		Joins("JOIN cities ON cities.id = properties.city_id").
		Where("properties.is_active = ?", true).
		Group("cities.name").
		Order("count DESC").
		Limit(5).
		Scan(&cityStats).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"totalProperties":     totalProperties,
		"activeProperties":    activeProperties,
		"featuredProperties":  featuredProperties,
		"unreadMessages":      unreadMessages,
		"propertiesThisMonth": propertiesThisMonth,
		"categoryStats":       categoryStats,
		"cityStats":           cityStats,
	})
}
