package routes

import (
	"fmt"
	"strings"
	"time"

	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
	"github.com/DevrimSalis/HasatEmlak/utils"

	"github.com/kataras/iris/v12"
)

type contactInput struct {
	FullName   string `json:"fullName" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email,max=200"`
	Phone      string `json:"phone" validate:"max=20"`
	Subject    string `json:"subject" validate:"max=200"`
	Message    string `json:"message" validate:"required"`
	PropertyID *uint  `json:"propertyId"`
}

// CreateContactMessage stores a public contact form submission,
// unread, optionally tied to a listing.
func CreateContactMessage(ctx iris.Context) {
	var input contactInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	if input.PropertyID != nil {
		var count int64
		storage.DB.Model(&models.Property{}).Where("id = ?", *input.PropertyID).Count(&count)
		if count == 0 {
			utils.JSONFail(ctx, "property not found")
			return
		}
	}

	message := models.ContactMessage{
		FullName:    input.FullName,
		Email:       input.Email,
		Phone:       input.Phone,
		Subject:     input.Subject,
		Message:     input.Message,
		IsRead:      false,
		CreatedDate: time.Now(),
		PropertyID:  input.PropertyID,
	}
	if err := storage.DB.Create(&message).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONOK(ctx, "your message has been sent")
}

// AdminListMessages pages the inbox, newest first, with optional
// search and read-state filters.
func AdminListMessages(ctx iris.Context) {
	page := utils.ClampPage(ctx.URLParamIntDefault("page", 1))
	search := strings.TrimSpace(ctx.URLParam("search"))

	q := storage.DB.Model(&models.ContactMessage{})
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(full_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(subject) LIKE ? OR LOWER(message) LIKE ?",
			like, like, like, like)
	}
	if v := ctx.URLParam("isRead"); v != "" {
		q = q.Where("is_read = ?", v == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	messages := make([]models.ContactMessage, 0)
	err := q.Preload("Property").
		Order("created_date DESC").Order("id DESC").
		Offset(utils.Offset(page, adminPageSize)).
		Limit(adminPageSize).
		Find(&messages).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.JSONPage(ctx, messages, utils.NewPageMeta(total, page, adminPageSize))
}

// GetMessage returns one message and marks it read as a side effect of
// being viewed. Re-viewing an already-read message changes nothing.
func GetMessage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	var message models.ContactMessage
	if err := storage.DB.Preload("Property").First(&message, id).Error; err != nil {
		utils.JSONFail(ctx, "message not found")
		return
	}

	if !message.IsRead {
		message.IsRead = true
		if err := storage.DB.Model(&message).Update("is_read", true).Error; err != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
	}

	ctx.JSON(iris.Map{"data": message})
}

func MarkMessageRead(ctx iris.Context) {
	setMessageRead(ctx, true)
}

func MarkMessageUnread(ctx iris.Context) {
	setMessageRead(ctx, false)
}

func setMessageRead(ctx iris.Context, read bool) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	res := storage.DB.Model(&models.ContactMessage{}).
		Where("id = ?", id).
		Update("is_read", read)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONFail(ctx, "message not found")
		return
	}

	if read {
		utils.JSONOK(ctx, "message marked as read")
	} else {
		utils.JSONOK(ctx, "message marked as unread")
	}
}

func DeleteMessage(ctx iris.Context) {
	id, err := ctx.Params().GetUint("id")
	if err != nil {
		utils.JSONError(ctx, iris.StatusBadRequest, "invalid_id", "invalid id")
		return
	}

	res := storage.DB.Delete(&models.ContactMessage{}, id)
	if res.Error != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	if res.RowsAffected == 0 {
		utils.JSONFail(ctx, "message not found")
		return
	}

	utils.JSONOK(ctx, "message deleted")
}

// BulkMessageAction applies read/unread/delete over an id list;
// unmatched ids are silently skipped.
func BulkMessageAction(ctx iris.Context) {
	var input bulkActionInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	switch strings.ToLower(input.Action) {
	case "read", "unread":
		read := strings.ToLower(input.Action) == "read"
		res := storage.DB.Model(&models.ContactMessage{}).
			Where("id IN ?", input.IDs).
			Update("is_read", read)
		if res.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		utils.JSONResult(ctx, true, fmt.Sprintf("%d messages updated", res.RowsAffected), iris.Map{
			"affected": res.RowsAffected,
		})

	case "delete":
		res := storage.DB.Where("id IN ?", input.IDs).Delete(&models.ContactMessage{})
		if res.Error != nil {
			utils.CreateInternalServerError(ctx)
			return
		}
		utils.JSONResult(ctx, true, fmt.Sprintf("%d messages deleted", res.RowsAffected), iris.Map{
			"affected": res.RowsAffected,
		})

	default:
		utils.JSONFail(ctx, "unknown bulk action")
	}
}

func GetUnreadCount(ctx iris.Context) {
	var count int64
	if err := storage.DB.Model(&models.ContactMessage{}).
		Where("is_read = ?", false).
		Count(&count).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"count": count})
}

// GetRecentMessages returns the five newest inbox entries with a
// truncated preview of the body.
func GetRecentMessages(ctx iris.Context) {
	messages := make([]models.ContactMessage, 0)
	err := storage.DB.Preload("Property").
		Order("created_date DESC").
		Limit(5).
		Find(&messages).Error
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	recent := make([]iris.Map, 0, len(messages))
	for _, m := range messages {
		preview := m.Message
		if len(preview) > 100 {
			preview = preview[:100] + "..."
		}
		entry := iris.Map{
			"id":          m.ID,
			"fullName":    m.FullName,
			"email":       m.Email,
			"subject":     m.Subject,
			"message":     preview,
			"isRead":      m.IsRead,
			"createdDate": m.CreatedDate,
		}
		if m.Property != nil {
			entry["propertyTitle"] = m.Property.Title
		}
		recent = append(recent, entry)
	}
	ctx.JSON(iris.Map{"data": recent})
}
