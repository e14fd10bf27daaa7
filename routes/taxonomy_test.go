package routes

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
)

func TestCreateCategoryAppendsDisplayOrder(t *testing.T) {
	app := newTestApp(t)

	for i, name := range []string{"For Sale", "For Rent", "Daily Rental"} {
		res := decodeResult(t, doJSON(t, app, http.MethodPost, "/api/admin/categories", map[string]interface{}{
			"name": name,
		}))
		if !res.Success {
			t.Fatalf("create %q failed: %s", name, res.Message)
		}

		var category models.Category
		if err := storage.DB.Where("name = ?", name).First(&category).Error; err != nil {
			t.Fatalf("reload %q: %v", name, err)
		}
		if category.DisplayOrder != i+1 {
			t.Errorf("%q display order = %d, want %d", name, category.DisplayOrder, i+1)
		}
		if !category.IsActive {
			t.Errorf("%q created inactive", name)
		}
		if category.IconClass != "fas fa-tag" {
			t.Errorf("%q icon = %q, want the default", name, category.IconClass)
		}
	}
}

func TestReorderCategories(t *testing.T) {
	app := newTestApp(t)

	ids := make([]uint, 0, 3)
	for i, name := range []string{"A", "B", "C"} {
		c := models.Category{Name: name, IsActive: true, DisplayOrder: i + 1}
		if err := storage.DB.Create(&c).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
		ids = append(ids, c.ID)
	}

	// reverse the order
	res := decodeResult(t, doJSON(t, app, http.MethodPost, "/api/admin/categories/reorder", map[string]interface{}{
		"ids": []uint{ids[2], ids[0], ids[1]},
	}))
	if !res.Success {
		t.Fatalf("reorder failed: %s", res.Message)
	}

	wantOrder := map[uint]int{ids[2]: 1, ids[0]: 2, ids[1]: 3}
	categories := make([]models.Category, 0)
	if err := storage.DB.Find(&categories).Error; err != nil {
		t.Fatalf("reload categories: %v", err)
	}
	for _, c := range categories {
		if c.DisplayOrder != wantOrder[c.ID] {
			t.Errorf("category %d display order = %d, want %d", c.ID, c.DisplayOrder, wantOrder[c.ID])
		}
	}
}

func TestDeleteCategoryGuardedByProperties(t *testing.T) {
	app := newTestApp(t)
	category, propertyType, city, district := seedTaxonomy(t)

	property := seedProperty(t, models.Property{
		Title:          "Listing",
		Description:    "d",
		Price:          100,
		IsActive:       true,
		CreatedDate:    time.Now(),
		CategoryID:     category.ID,
		PropertyTypeID: propertyType.ID,
		CityID:         city.ID,
		DistrictID:     district.ID,
	})

	res := decodeResult(t, doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/admin/categories/%d", category.ID), nil))
	if res.Success || res.Message != "properties exist in this category" {
		t.Fatalf("guarded delete result = %+v", res)
	}

	res = decodeResult(t, doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/admin/properties/%d", property.ID), nil))
	if !res.Success {
		t.Fatalf("property delete failed: %s", res.Message)
	}

	res = decodeResult(t, doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/admin/categories/%d", category.ID), nil))
	if !res.Success {
		t.Fatalf("category delete failed after removing listings: %s", res.Message)
	}
}

func TestPublicCategoriesOrderedAndActiveOnly(t *testing.T) {
	app := newTestApp(t)

	for _, c := range []models.Category{
		{Name: "Second", IsActive: true, DisplayOrder: 2},
		{Name: "First", IsActive: true, DisplayOrder: 1},
		{Name: "Disabled", IsActive: false, DisplayOrder: 3},
	} {
		if err := storage.DB.Create(&c).Error; err != nil {
			t.Fatalf("seed category: %v", err)
		}
	}

	resp := doJSON(t, app, http.MethodGet, "/api/categories", nil)
	var body struct {
		Data  []models.Category `json:"data"`
		Count int               `json:"count"`
	}
	decodeBody(t, resp, &body)

	if body.Count != 2 || len(body.Data) != 2 {
		t.Fatalf("got %d categories, want 2", len(body.Data))
	}
	if body.Data[0].Name != "First" || body.Data[1].Name != "Second" {
		t.Fatalf("order = [%s, %s], want [First, Second]", body.Data[0].Name, body.Data[1].Name)
	}
}

func TestPropertyTypeLifecycle(t *testing.T) {
	app := newTestApp(t)

	res := decodeResult(t, doJSON(t, app, http.MethodPost, "/api/admin/property-types", map[string]interface{}{
		"name": "Villa", "iconClass": "fas fa-home",
	}))
	if !res.Success {
		t.Fatalf("create failed: %s", res.Message)
	}

	var propertyType models.PropertyType
	if err := storage.DB.Where("name = ?", "Villa").First(&propertyType).Error; err != nil {
		t.Fatalf("reload property type: %v", err)
	}
	if propertyType.DisplayOrder != 1 || propertyType.IconClass != "fas fa-home" {
		t.Fatalf("created row = %+v", propertyType)
	}

	res = decodeResult(t, doJSON(t, app, http.MethodPatch,
		fmt.Sprintf("/api/admin/property-types/%d/toggle", propertyType.ID), nil))
	if !res.Success {
		t.Fatalf("toggle failed: %s", res.Message)
	}

	res = decodeResult(t, doJSON(t, app, http.MethodDelete,
		fmt.Sprintf("/api/admin/property-types/%d", propertyType.ID), nil))
	if !res.Success {
		t.Fatalf("delete failed: %s", res.Message)
	}

	var count int64
	storage.DB.Model(&models.PropertyType{}).Count(&count)
	if count != 0 {
		t.Fatalf("%d property type rows remain", count)
	}
}
