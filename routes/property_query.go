package routes

import (
	"strings"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// Page sizes are fixed per call site.
const (
	publicPageSize = 12
	adminPageSize  = 20
)

// propertyFilter is the optional predicate set of a listing search.
// Zero values mean "not populated".
type propertyFilter struct {
	CategoryID     uint
	PropertyTypeID uint
	CityID         uint
	DistrictID     uint
	NeighborhoodID uint
	MinPrice       float64
	MaxPrice       float64
	MinArea        int
	MaxArea        int
	RoomCount      int
	Keywords       string
	SortBy         string
}

func readPropertyFilter(ctx iris.Context) propertyFilter {
	return propertyFilter{
		CategoryID:     uint(ctx.URLParamIntDefault("categoryId", 0)),
		PropertyTypeID: uint(ctx.URLParamIntDefault("propertyTypeId", 0)),
		CityID:         uint(ctx.URLParamIntDefault("cityId", 0)),
		DistrictID:     uint(ctx.URLParamIntDefault("districtId", 0)),
		NeighborhoodID: uint(ctx.URLParamIntDefault("neighborhoodId", 0)),
		MinPrice:       ctx.URLParamFloat64Default("minPrice", 0),
		MaxPrice:       ctx.URLParamFloat64Default("maxPrice", 0),
		MinArea:        ctx.URLParamIntDefault("minArea", 0),
		MaxArea:        ctx.URLParamIntDefault("maxArea", 0),
		RoomCount:      ctx.URLParamIntDefault("roomCount", 0),
		Keywords:       strings.TrimSpace(ctx.URLParam("keywords")),
		SortBy:         ctx.URLParam("sortBy"),
	}
}

// apply narrows the candidate set: exact equality for ids and room
// count, inclusive ranges for price and area, and a case-insensitive
// keyword match ORed across title/description/address but ANDed with
// everything else.
func (f propertyFilter) apply(q *gorm.DB) *gorm.DB {
	if f.CategoryID > 0 {
		q = q.Where("category_id = ?", f.CategoryID)
	}
	if f.PropertyTypeID > 0 {
		q = q.Where("property_type_id = ?", f.PropertyTypeID)
	}
	if f.CityID > 0 {
		q = q.Where("city_id = ?", f.CityID)
	}
	if f.DistrictID > 0 {
		q = q.Where("district_id = ?", f.DistrictID)
	}
	if f.NeighborhoodID > 0 {
		q = q.Where("neighborhood_id = ?", f.NeighborhoodID)
	}
	if f.MinPrice > 0 {
		q = q.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	if f.MinArea > 0 {
		q = q.Where("area >= ?", f.MinArea)
	}
	if f.MaxArea > 0 {
		q = q.Where("area <= ?", f.MaxArea)
	}
	if f.RoomCount > 0 {
		q = q.Where("room_count = ?", f.RoomCount)
	}
	if f.Keywords != "" {
		like := "%" + strings.ToLower(f.Keywords) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(address) LIKE ?", like, like, like)
	}
	return q
}

// order applies exactly one of the five sort keys; anything
// unrecognized falls back to newest-first. Ties break on primary key.
func (f propertyFilter) order(q *gorm.DB) *gorm.DB {
	switch strings.ToLower(f.SortBy) {
	case "price_asc":
		return q.Order("price ASC").Order("id ASC")
	case "price_desc":
		return q.Order("price DESC").Order("id ASC")
	case "date_asc":
		return q.Order("created_date ASC").Order("id ASC")
	case "area_desc":
		return q.Order("area DESC").Order("id ASC")
	default: // date_desc
		return q.Order("created_date DESC").Order("id DESC")
	}
}

// preloadPropertyRelations resolves the display references and the
// ordered image set for listing responses.
func preloadPropertyRelations(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Category").
		Preload("PropertyType").
		Preload("City").
		Preload("District").
		Preload("Neighborhood").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order ASC, id ASC")
		})
}
