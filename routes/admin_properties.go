package routes

import (
	"fmt"
	"log"
	"mime/multipart"
	"strconv"
	"strings"
	"time"

	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// AdminListProperties lists all listings regardless of active state,
// in pages of 20, with optional search/category/city/isActive filters.
func AdminListProperties(ctx iris.Context) {
	page := utils.ClampPage(ctx.URLParamIntDefault("page", 1))
	search := strings.TrimSpace(ctx.URLParam("search"))

	q := storage.DB.Model(&models.Property{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(address) LIKE ?", like, like, like)
	}
	if categoryID := ctx.URLParamIntDefault("categoryId", 0); categoryID > 0 {
		q = q.Where("category_id = ?", categoryID)
	}
	if cityID := ctx.URLParamIntDefault("cityId", 0); cityID > 0 {
		q = q.Where("city_id = ?", cityID)
	}
	if v := ctx.URLParam("isActive"); v != "" {
		if active, err := strconv.ParseBool(v); err == nil {
			q = q.Where("is_active = ?", active)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	properties := make([]models.Property, 0)
	err := preloadPropertyRelations(q).
		Order("created_date DESC").Order("id DESC").
		Offset(utils.Offset(page, adminPageSize)).
		Limit(adminPageSize).
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, properties, utils.NewPageMeta(total, page, adminPageSize))
}

// AdminGetProperty returns one listing with all references, active or not.
func AdminGetProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var property models.Property
	if err := preloadPropertyRelations(storage.DB).First(&property, id).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": property})
}

// CreateProperty creates a listing from a multipart form: validated
// fields plus zero or more image uploads. New listings are active,
// not featured, with the created timestamp set now.
func CreateProperty(ctx iris.Context) {
	property, errMsg := readPropertyForm(ctx)
	if errMsg != "" {
		utils.JSONFail(ctx, errMsg)
		return
	}
	property.IsActive = true
	property.CreatedDate = time.Now()

	if err := storage.DB.Create(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	_, files, _ := ctx.FormFiles("images")
	saved := savePropertyImages(property.ID, files)

	utils.JSONResult(ctx, true, "property created", iris.Map{
		"propertyId":  property.ID,
		"imagesSaved": saved,
	})
}

// EditProperty updates all mutable fields, stamps the updated
// timestamp and appends any newly uploaded images after the existing
// ones.
func EditProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.JSONFail(ctx, "property not found")
		return
	}

	updated, errMsg := readPropertyForm(ctx)
	if errMsg != "" {
		utils.JSONFail(ctx, errMsg)
		return
	}

	now := time.Now()
	property.Title = updated.Title
	property.Description = updated.Description
	property.Price = updated.Price
	property.Area = updated.Area
	property.RoomCount = updated.RoomCount
	property.BathroomCount = updated.BathroomCount
	property.FloorNumber = updated.FloorNumber
	property.TotalFloors = updated.TotalFloors
	property.BuildingAge = updated.BuildingAge
	property.Address = updated.Address
	property.Latitude = updated.Latitude
	property.Longitude = updated.Longitude
	property.IsFeatured = updated.IsFeatured
	property.CategoryID = updated.CategoryID
	property.PropertyTypeID = updated.PropertyTypeID
	property.CityID = updated.CityID
	property.DistrictID = updated.DistrictID
	property.NeighborhoodID = updated.NeighborhoodID
	property.UpdatedDate = &now

	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	_, files, _ := ctx.FormFiles("images")
	saved := savePropertyImages(property.ID, files)

	utils.JSONResult(ctx, true, "property updated", iris.Map{"imagesSaved": saved})
}

// DeleteProperty removes the image files first (best effort, a
// missing file is already deleted), then the listing row and its
// image rows in one transaction.
func DeleteProperty(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var property models.Property
	if err := storage.DB.Preload("Images").First(&property, id).Error; err != nil {
		utils.JSONFail(ctx, "property not found")
		return
	}

	removePropertyFiles(property.Images)

	err = storage.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("property_id = ?", property.ID).Delete(&models.PropertyImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&property).Error
	})
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONOK(ctx, "property deleted")
}

type toggleStatusInput struct {
	IsActive bool `json:"isActive"`
}

func TogglePropertyStatus(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input toggleStatusInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.JSONFail(ctx, "property not found")
		return
	}

	now := time.Now()
	property.IsActive = input.IsActive
	property.UpdatedDate = &now
	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	if input.IsActive {
		utils.JSONOK(ctx, "property activated")
	} else {
		utils.JSONOK(ctx, "property deactivated")
	}
}

type toggleFeaturedInput struct {
	IsFeatured bool `json:"isFeatured"`
}

func TogglePropertyFeatured(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var input toggleFeaturedInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	var property models.Property
	if err := storage.DB.First(&property, id).Error; err != nil {
		utils.JSONFail(ctx, "property not found")
		return
	}

	now := time.Now()
	property.IsFeatured = input.IsFeatured
	property.UpdatedDate = &now
	if err := storage.DB.Save(&property).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	utils.JSONOK(ctx, "property featured flag updated")
}

type bulkActionInput struct {
	Action string `json:"action" validate:"required"`
	IDs    []uint `json:"ids" validate:"required,min=1"`
}

// BulkPropertyAction applies activate/deactivate/delete to every
// matching row in one batch. Ids that match nothing are silently
// skipped; the response carries the count of affected rows.
func BulkPropertyAction(ctx iris.Context) {
	var input bulkActionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	switch strings.ToLower(input.Action) {
	case "activate", "deactivate":
		active := strings.ToLower(input.Action) == "activate"
		res := storage.DB.Model(&models.Property{}).
			Where("id IN ?", input.IDs).
			Updates(map[string]interface{}{"is_active": active, "updated_date": time.Now()})
		if res.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		utils.JSONResult(ctx, true, fmt.Sprintf("%d properties updated", res.RowsAffected), iris.Map{
			"affected": res.RowsAffected,
		})

	case "delete":
		properties := make([]models.Property, 0)
		if err := storage.DB.Preload("Images").Where("id IN ?", input.IDs).Find(&properties).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		for _, property := range properties {
			removePropertyFiles(property.Images)
		}
		err := storage.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("property_id IN ?", input.IDs).Delete(&models.PropertyImage{}).Error; err != nil {
				return err
			}
			return tx.Where("id IN ?", input.IDs).Delete(&models.Property{}).Error
		})
		if err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		utils.JSONResult(ctx, true, fmt.Sprintf("%d properties deleted", len(properties)), iris.Map{
			"affected": len(properties),
		})

	default:
		utils.JSONFail(ctx, "unknown bulk action")
	}
}

// DeletePropertyImage removes a single stored image: the file first,
// then the row.
func DeletePropertyImage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("imageId")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var image models.PropertyImage
	if err := storage.DB.First(&image, id).Error; err != nil {
		utils.JSONFail(ctx, "image not found")
		return
	}

	if err := storage.RemoveFile(image.ImagePath); err != nil {
		utils.JSONFail(ctx, "could not delete image file")
		return
	}
	if err := storage.DB.Delete(&image).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONOK(ctx, "image deleted")
}

// AdminRecentProperties feeds the dashboard's latest-listings widget.
func AdminRecentProperties(ctx iris.Context) {
	properties := make([]models.Property, 0)
	err := storage.DB.
		Preload("Category").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		}).
		Order("created_date DESC").
		Limit(10).
		Find(&properties).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": properties})
}

// readPropertyForm parses and validates the multipart create/edit
// fields. It returns a human-readable reason on the first failed
// check, before any row is touched.
func readPropertyForm(ctx iris.Context) (models.Property, string) {
	title := strings.TrimSpace(ctx.FormValue("title"))
	if title == "" {
		return models.Property{}, "title is required"
	}
	description := strings.TrimSpace(ctx.FormValue("description"))
	if description == "" {
		return models.Property{}, "description is required"
	}
	price, err := strconv.ParseFloat(ctx.FormValue("price"), 64)
	if err != nil || price < 0 {
		return models.Property{}, "price must be a non-negative number"
	}

	property := models.Property{
		Title:          title,
		Description:    description,
		Price:          price,
		Area:           formOptInt(ctx, "area"),
		RoomCount:      formOptInt(ctx, "roomCount"),
		BathroomCount:  formOptInt(ctx, "bathroomCount"),
		FloorNumber:    formOptInt(ctx, "floorNumber"),
		TotalFloors:    formOptInt(ctx, "totalFloors"),
		BuildingAge:    formOptInt(ctx, "buildingAge"),
		Address:        strings.TrimSpace(ctx.FormValue("address")),
		Latitude:       formOptFloat(ctx, "latitude"),
		Longitude:      formOptFloat(ctx, "longitude"),
		IsFeatured:     ctx.FormValue("isFeatured") == "true",
		CategoryID:     formUint(ctx, "categoryId"),
		PropertyTypeID: formUint(ctx, "propertyTypeId"),
		CityID:         formUint(ctx, "cityId"),
		DistrictID:     formUint(ctx, "districtId"),
	}
	if n := formUint(ctx, "neighborhoodId"); n > 0 {
		property.NeighborhoodID = &n
	}

	if property.CategoryID == 0 || property.PropertyTypeID == 0 || property.CityID == 0 || property.DistrictID == 0 {
		return models.Property{}, "category, property type, city and district are required"
	}
	if msg := checkPropertyRefs(property); msg != "" {
		return models.Property{}, msg
	}
	return property, ""
}

func checkPropertyRefs(property models.Property) string {
	var count int64
	storage.DB.Model(&models.Category{}).Where("id = ?", property.CategoryID).Count(&count)
	if count == 0 {
		return "category not found"
	}
	storage.DB.Model(&models.PropertyType{}).Where("id = ?", property.PropertyTypeID).Count(&count)
	if count == 0 {
		return "property type not found"
	}
	storage.DB.Model(&models.City{}).Where("id = ?", property.CityID).Count(&count)
	if count == 0 {
		return "city not found"
	}
	storage.DB.Model(&models.District{}).Where("id = ?", property.DistrictID).Count(&count)
	if count == 0 {
		return "district not found"
	}
	if property.NeighborhoodID != nil {
		storage.DB.Model(&models.Neighborhood{}).Where("id = ?", *property.NeighborhoodID).Count(&count)
		if count == 0 {
			return "neighborhood not found"
		}
	}
	return ""
}

func formUint(ctx iris.Context, name string) uint {
	v, err := strconv.ParseUint(ctx.FormValue(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

func formOptInt(ctx iris.Context, name string) *int {
	raw := strings.TrimSpace(ctx.FormValue(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return nil
	}
	return &v
}

func formOptFloat(ctx iris.Context, name string) *float64 {
	raw := strings.TrimSpace(ctx.FormValue(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

type uploadKey struct {
	name        string
	size        int64
	contentType string
}

// dedupeUploads drops repeated files inside one upload batch, keyed by
// lowercased filename + byte length + content type, keeping the first
// occurrence of each group.
func dedupeUploads(files []*multipart.FileHeader) []*multipart.FileHeader {
	seen := make(map[uploadKey]bool, len(files))
	unique := make([]*multipart.FileHeader, 0, len(files))
	for _, fh := range files {
		key := uploadKey{
			name:        strings.ToLower(fh.Filename),
			size:        fh.Size,
			contentType: fh.Header.Get("Content-Type"),
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, fh)
	}
	return unique
}

// savePropertyImages stores an upload batch for a listing. Display
// order continues from the images already stored, so the very first
// image of a listing becomes its main image. Each file is independent:
// a failed write or insert is logged and skipped without rolling back
// the rest.
func savePropertyImages(propertyID uint, files []*multipart.FileHeader) int {
	if len(files) == 0 {
		return 0
	}
	files = dedupeUploads(files)

	var existing int64
	storage.DB.Model(&models.PropertyImage{}).Where("property_id = ?", propertyID).Count(&existing)
	order := int(existing)

	saved := 0
	for _, fh := range files {
		name, err := storage.SaveUpload(fh)
		if err != nil {
			log.Printf("image upload for property %d: %v", propertyID, err)
			continue
		}
		image := models.PropertyImage{
			ImagePath:    name,
			AltText:      fmt.Sprintf("Property %d image %d", propertyID, order+1),
			IsMainImage:  order == 0,
			DisplayOrder: order,
			CreatedDate:  time.Now(),
			PropertyID:   propertyID,
		}
		if err := storage.DB.Create(&image).Error; err != nil {
			log.Printf("image row for property %d: %v", propertyID, err)
			storage.RemoveFile(name)
			continue
		}
		order++
		saved++
	}
	return saved
}

func removePropertyFiles(images []models.PropertyImage) {
	for _, image := range images {
		if err := storage.RemoveFile(image.ImagePath); err != nil {
			log.Printf("image file %s: %v", image.ImagePath, err)
		}
	}
}
