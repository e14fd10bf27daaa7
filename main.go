package main

import (
	"os"

	"github.com/DevrimSalis/HasatEmlak/routes"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

func main() {
	godotenv.Load()
	storage.InitializeDB()
	storage.InitializeRedis()
	storage.InitializeUploads()

	app := iris.New()
	app.Validator = validator.New()

	app.AllowMethods(iris.MethodOptions)
	app.UseRouter(func(ctx iris.Context) {
		ctx.Header("Access-Control-Allow-Origin", ctx.GetHeader("Origin"))
		ctx.Header("Vary", "Origin")
		ctx.Header("Access-Control-Allow-Credentials", "true")
		ctx.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Requested-With")
		ctx.Header("Access-Control-Allow-Methods", "GET,POST,PATCH,PUT,DELETE,OPTIONS")
		if ctx.Method() == iris.MethodOptions {
			ctx.StatusCode(iris.StatusNoContent)
			return
		}
		ctx.Next()
	})

	app.Use(iris.Compression)

	accessTokenVerifier := jwt.NewVerifier(jwt.HS256, []byte(os.Getenv("ACCESS_TOKEN_SECRET")))
	accessTokenVerifier.WithDefaultBlocklist()
	accessTokenVerifierMiddleware := accessTokenVerifier.Verify(func() interface{} {
		return new(utils.AccessToken)
	})

	api := app.Party("/api")
	{
		api.Get("/properties", routes.SearchProperties)
		api.Get("/properties/featured", routes.GetFeaturedProperties)
		api.Get("/properties/latest", routes.GetLatestProperties)
		api.Get("/properties/{id:uint}", routes.GetProperty)

		api.Get("/categories", routes.GetCategories)
		api.Get("/property-types", routes.GetPropertyTypes)

		api.Get("/locations/cities", routes.GetCities)
		api.Get("/locations/districts", routes.GetDistricts)
		api.Get("/locations/neighborhoods", routes.GetNeighborhoods)

		api.Post("/contact", routes.CreateContactMessage)
	}

	app.Post("/api/admin/login", routes.AdminLogin)

	admin := app.Party("/api/admin", accessTokenVerifierMiddleware, utils.AdminOnlyMiddleware)
	{
		admin.Get("/stats", routes.AdminStats)

		admin.Get("/properties", routes.AdminListProperties)
		admin.Post("/properties", routes.CreateProperty)
		admin.Get("/properties/recent", routes.AdminRecentProperties)
		admin.Get("/properties/{id:uint}", routes.AdminGetProperty)
		admin.Put("/properties/{id:uint}", routes.EditProperty)
		admin.Delete("/properties/{id:uint}", routes.DeleteProperty)
		admin.Patch("/properties/{id:uint}/status", routes.TogglePropertyStatus)
		admin.Patch("/properties/{id:uint}/featured", routes.TogglePropertyFeatured)
		admin.Post("/properties/bulk", routes.BulkPropertyAction)
		admin.Delete("/properties/images/{imageId:uint}", routes.DeletePropertyImage)

		admin.Get("/categories", routes.AdminListCategories)
		admin.Post("/categories", routes.CreateCategory)
		admin.Put("/categories/{id:uint}", routes.EditCategory)
		admin.Patch("/categories/{id:uint}/toggle", routes.ToggleCategory)
		admin.Delete("/categories/{id:uint}", routes.DeleteCategory)
		admin.Post("/categories/reorder", routes.ReorderCategories)

		admin.Get("/property-types", routes.AdminListPropertyTypes)
		admin.Post("/property-types", routes.CreatePropertyType)
		admin.Put("/property-types/{id:uint}", routes.EditPropertyType)
		admin.Patch("/property-types/{id:uint}/toggle", routes.TogglePropertyType)
		admin.Delete("/property-types/{id:uint}", routes.DeletePropertyType)
		admin.Post("/property-types/reorder", routes.ReorderPropertyTypes)

		admin.Get("/locations", routes.AdminLocationTree)
		admin.Post("/locations/cities", routes.CreateCity)
		admin.Put("/locations/cities/{id:uint}", routes.EditCity)
		admin.Patch("/locations/cities/{id:uint}/toggle", routes.ToggleCity)
		admin.Delete("/locations/cities/{id:uint}", routes.DeleteCity)
		admin.Post("/locations/districts", routes.CreateDistrict)
		admin.Put("/locations/districts/{id:uint}", routes.EditDistrict)
		admin.Patch("/locations/districts/{id:uint}/toggle", routes.ToggleDistrict)
		admin.Delete("/locations/districts/{id:uint}", routes.DeleteDistrict)
		admin.Post("/locations/neighborhoods", routes.CreateNeighborhood)
		admin.Put("/locations/neighborhoods/{id:uint}", routes.EditNeighborhood)
		admin.Patch("/locations/neighborhoods/{id:uint}/toggle", routes.ToggleNeighborhood)
		admin.Delete("/locations/neighborhoods/{id:uint}", routes.DeleteNeighborhood)

		admin.Get("/messages", routes.AdminListMessages)
		admin.Get("/messages/unread-count", routes.GetUnreadCount)
		admin.Get("/messages/recent", routes.GetRecentMessages)
		admin.Get("/messages/{id:uint}", routes.GetMessage)
		admin.Patch("/messages/{id:uint}/read", routes.MarkMessageRead)
		admin.Patch("/messages/{id:uint}/unread", routes.MarkMessageUnread)
		admin.Delete("/messages/{id:uint}", routes.DeleteMessage)
		admin.Post("/messages/bulk", routes.BulkMessageAction)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	app.Listen(":" + port)
}
