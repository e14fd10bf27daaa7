package utils

import (
	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	CurrentPage     int   `json:"currentPage"`
	TotalPages      int   `json:"totalPages"`
	TotalCount      int64 `json:"totalCount"`
	HasPreviousPage bool  `json:"hasPreviousPage"`
	HasNextPage     bool  `json:"hasNextPage"`
}

func JSONPage(ctx iris.Context, data interface{}, meta PageMeta) {
	ctx.JSON(iris.Map{
		"data": data,
		"meta": meta,
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}

// JSONResult is the uniform outcome body of admin mutations: a flag, a
// human-readable message and optional extra fields.
func JSONResult(ctx iris.Context, success bool, message string, extra iris.Map) {
	body := iris.Map{"success": success, "message": message}
	for k, v := range extra {
		body[k] = v
	}
	ctx.JSON(body)
}

func JSONOK(ctx iris.Context, message string) {
	JSONResult(ctx, true, message, nil)
}

func JSONFail(ctx iris.Context, message string) {
	JSONResult(ctx, false, message, nil)
}
