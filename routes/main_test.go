package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the global handle at a fresh in-memory database.
// Redis stays nil so the cache layer transparently no-ops.
func setupTestDB(t *testing.T) {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.City{},
		&models.District{},
		&models.Neighborhood{},
		&models.Category{},
		&models.PropertyType{},
		&models.Property{},
		&models.PropertyImage{},
		&models.ContactMessage{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	storage.DB = db
	storage.Redis = nil
	storage.UploadDir = t.TempDir()
}

// newTestApp mounts the API without the admin token guard; RBAC has
// its own test.
func newTestApp(t *testing.T) *iris.Application {
	t.Helper()
	setupTestDB(t)

	app := iris.New()
	app.Validator = validator.New()

	api := app.Party("/api")
	{
		api.Get("/properties", SearchProperties)
		api.Get("/properties/featured", GetFeaturedProperties)
		api.Get("/properties/latest", GetLatestProperties)
		api.Get("/properties/{id:uint}", GetProperty)
		api.Get("/categories", GetCategories)
		api.Get("/property-types", GetPropertyTypes)
		api.Get("/locations/cities", GetCities)
		api.Get("/locations/districts", GetDistricts)
		api.Get("/locations/neighborhoods", GetNeighborhoods)
		api.Post("/contact", CreateContactMessage)
	}

	admin := app.Party("/api/admin")
	{
		admin.Get("/stats", AdminStats)
		admin.Get("/properties", AdminListProperties)
		admin.Post("/properties", CreateProperty)
		admin.Get("/properties/recent", AdminRecentProperties)
		admin.Get("/properties/{id:uint}", AdminGetProperty)
		admin.Put("/properties/{id:uint}", EditProperty)
		admin.Delete("/properties/{id:uint}", DeleteProperty)
		admin.Patch("/properties/{id:uint}/status", TogglePropertyStatus)
		admin.Patch("/properties/{id:uint}/featured", TogglePropertyFeatured)
		admin.Post("/properties/bulk", BulkPropertyAction)
		admin.Delete("/properties/images/{imageId:uint}", DeletePropertyImage)
		admin.Get("/categories", AdminListCategories)
		admin.Post("/categories", CreateCategory)
		admin.Put("/categories/{id:uint}", EditCategory)
		admin.Patch("/categories/{id:uint}/toggle", ToggleCategory)
		admin.Delete("/categories/{id:uint}", DeleteCategory)
		admin.Post("/categories/reorder", ReorderCategories)
		admin.Get("/property-types", AdminListPropertyTypes)
		admin.Post("/property-types", CreatePropertyType)
		admin.Put("/property-types/{id:uint}", EditPropertyType)
		admin.Patch("/property-types/{id:uint}/toggle", TogglePropertyType)
		admin.Delete("/property-types/{id:uint}", DeletePropertyType)
		admin.Post("/property-types/reorder", ReorderPropertyTypes)
		admin.Get("/locations", AdminLocationTree)
		admin.Post("/locations/cities", CreateCity)
		admin.Put("/locations/cities/{id:uint}", EditCity)
		admin.Patch("/locations/cities/{id:uint}/toggle", ToggleCity)
		admin.Delete("/locations/cities/{id:uint}", DeleteCity)
		admin.Post("/locations/districts", CreateDistrict)
		admin.Put("/locations/districts/{id:uint}", EditDistrict)
		admin.Patch("/locations/districts/{id:uint}/toggle", ToggleDistrict)
		admin.Delete("/locations/districts/{id:uint}", DeleteDistrict)
		admin.Post("/locations/neighborhoods", CreateNeighborhood)
		admin.Put("/locations/neighborhoods/{id:uint}", EditNeighborhood)
		admin.Patch("/locations/neighborhoods/{id:uint}/toggle", ToggleNeighborhood)
		admin.Delete("/locations/neighborhoods/{id:uint}", DeleteNeighborhood)
		admin.Get("/messages", AdminListMessages)
		admin.Get("/messages/unread-count", GetUnreadCount)
		admin.Get("/messages/recent", GetRecentMessages)
		admin.Get("/messages/{id:uint}", GetMessage)
		admin.Patch("/messages/{id:uint}/read", MarkMessageRead)
		admin.Patch("/messages/{id:uint}/unread", MarkMessageUnread)
		admin.Delete("/messages/{id:uint}", DeleteMessage)
		admin.Post("/messages/bulk", BulkMessageAction)
	}

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}
	return app
}

func doJSON(t *testing.T, app *iris.Application, method, url string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.ServeHTTP(resp, req)
	return resp
}

func decodeBody(t *testing.T, resp *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	if err := json.Unmarshal(resp.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", resp.Body.String(), err)
	}
}

type resultBody struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Affected int64  `json:"affected"`
}

func decodeResult(t *testing.T, resp *httptest.ResponseRecorder) resultBody {
	t.Helper()
	var out resultBody
	decodeBody(t, resp, &out)
	return out
}

type testFile struct {
	name string
	data []byte
}

// multipartRequest builds a listing create/edit request body with
// optional image parts under the "images" field.
func multipartRequest(t *testing.T, method, url string, fields map[string]string, files []testFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("write field %s: %v", k, err)
		}
	}
	for _, f := range files {
		part, err := w.CreateFormFile("images", f.name)
		if err != nil {
			t.Fatalf("create file part %s: %v", f.name, err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write file part %s: %v", f.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

// seedProperty inserts a listing directly, bypassing the handlers.
func seedProperty(t *testing.T, p models.Property) models.Property {
	t.Helper()
	if err := storage.DB.Create(&p).Error; err != nil {
		t.Fatalf("seed property %q: %v", p.Title, err)
	}
	return p
}

// seedTaxonomy inserts the minimum reference rows a listing needs.
func seedTaxonomy(t *testing.T) (models.Category, models.PropertyType, models.City, models.District) {
	t.Helper()

	category := models.Category{Name: "For Sale", IsActive: true, DisplayOrder: 1}
	if err := storage.DB.Create(&category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	propertyType := models.PropertyType{Name: "Apartment", IsActive: true, DisplayOrder: 1}
	if err := storage.DB.Create(&propertyType).Error; err != nil {
		t.Fatalf("seed property type: %v", err)
	}
	city := models.City{Name: "TestCity", PlateCode: "01", IsActive: true}
	if err := storage.DB.Create(&city).Error; err != nil {
		t.Fatalf("seed city: %v", err)
	}
	district := models.District{Name: "TestDistrict", CityID: city.ID, IsActive: true}
	if err := storage.DB.Create(&district).Error; err != nil {
		t.Fatalf("seed district: %v", err)
	}
	return category, propertyType, city, district
}
