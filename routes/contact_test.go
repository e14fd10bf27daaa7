package routes

import (
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/DevrimSalis/HasatEmlak/models"
	"github.com/DevrimSalis/HasatEmlak/storage"
)

func seedMessage(t *testing.T, m models.ContactMessage) models.ContactMessage {
	t.Helper()
	if m.CreatedDate.IsZero() {
		m.CreatedDate = time.Now()
	}
	if err := storage.DB.Create(&m).Error; err != nil {
		t.Fatalf("seed message: %v", err)
	}
	return m
}

func TestCreateContactMessage(t *testing.T) {
	app := newTestApp(t)

	res := decodeResult(t, doJSON(t, app, http.MethodPost, "/api/contact", map[string]interface{}{
		"fullName": "Ayşe Yılmaz",
		"email":    "ayse@example.com",
		"message":  "Is the garden flat still available?",
	}))
	if !res.Success {
		t.Fatalf("submit failed: %s", res.Message)
	}

	var message models.ContactMessage
	if err := storage.DB.First(&message).Error; err != nil {
		t.Fatalf("reload message: %v", err)
	}
	if message.IsRead {
		t.Fatal("new message arrived read")
	}
	if message.PropertyID != nil {
		t.Fatal("message linked to a listing that was never given")
	}
}

func TestCreateContactMessageRejectsUnknownProperty(t *testing.T) {
	app := newTestApp(t)

	res := decodeResult(t, doJSON(t, app, http.MethodPost, "/api/contact", map[string]interface{}{
		"fullName":   "Ali",
		"email":      "ali@example.com",
		"message":    "hello",
		"propertyId": 424242,
	}))
	if res.Success || res.Message != "property not found" {
		t.Fatalf("result = %+v", res)
	}
}

func TestCreateContactMessageValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/contact", map[string]interface{}{
		"fullName": "Ali",
		"email":    "not-an-email",
		"message":  "hello",
	})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Code)
	}

	var count int64
	storage.DB.Model(&models.ContactMessage{}).Count(&count)
	if count != 0 {
		t.Fatalf("%d rows created from an invalid submission", count)
	}
}

func TestGetMessageMarksReadOnce(t *testing.T) {
	app := newTestApp(t)
	message := seedMessage(t, models.ContactMessage{
		FullName: "Ali", Email: "ali@example.com", Message: "hello",
	})

	url := fmt.Sprintf("/api/admin/messages/%d", message.ID)
	resp := doJSON(t, app, http.MethodGet, url, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Code)
	}

	var reloaded models.ContactMessage
	if err := storage.DB.First(&reloaded, message.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsRead {
		t.Fatal("viewing did not mark the message read")
	}

	// second view and an explicit mark are both no-ops
	doJSON(t, app, http.MethodGet, url, nil)
	res := decodeResult(t, doJSON(t, app, http.MethodPatch, url+"/read", nil))
	if !res.Success {
		t.Fatalf("mark read failed: %s", res.Message)
	}

	if err := storage.DB.First(&reloaded, message.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsRead {
		t.Fatal("message lost its read state")
	}

	res = decodeResult(t, doJSON(t, app, http.MethodPatch, url+"/unread", nil))
	if !res.Success {
		t.Fatalf("mark unread failed: %s", res.Message)
	}
	storage.DB.First(&reloaded, message.ID)
	if reloaded.IsRead {
		t.Fatal("message still read after mark unread")
	}
}

func TestMessageNotFoundResults(t *testing.T) {
	app := newTestApp(t)

	for _, tc := range []struct {
		method, url string
	}{
		{http.MethodPatch, "/api/admin/messages/7/read"},
		{http.MethodPatch, "/api/admin/messages/7/unread"},
		{http.MethodDelete, "/api/admin/messages/7"},
	} {
		res := decodeResult(t, doJSON(t, app, tc.method, tc.url, nil))
		if res.Success || res.Message != "message not found" {
			t.Errorf("%s %s = %+v", tc.method, tc.url, res)
		}
	}
}

func TestBulkMessageAction(t *testing.T) {
	app := newTestApp(t)

	first := seedMessage(t, models.ContactMessage{FullName: "A", Email: "a@example.com", Message: "1"})
	second := seedMessage(t, models.ContactMessage{FullName: "B", Email: "b@example.com", Message: "2"})

	res := decodeResult(t, doJSON(t, app, http.MethodPost, "/api/admin/messages/bulk", map[string]interface{}{
		"action": "read",
		"ids":    []uint{first.ID, second.ID, 777},
	}))
	if !res.Success || res.Affected != 2 {
		t.Fatalf("bulk read = %+v, want 2 affected", res)
	}

	res = decodeResult(t, doJSON(t, app, http.MethodPost, "/api/admin/messages/bulk", map[string]interface{}{
		"action": "delete",
		"ids":    []uint{first.ID},
	}))
	if !res.Success || res.Affected != 1 {
		t.Fatalf("bulk delete = %+v, want 1 affected", res)
	}

	var count int64
	storage.DB.Model(&models.ContactMessage{}).Count(&count)
	if count != 1 {
		t.Fatalf("%d messages remain, want 1", count)
	}
}

func TestUnreadCount(t *testing.T) {
	app := newTestApp(t)

	seedMessage(t, models.ContactMessage{FullName: "A", Email: "a@example.com", Message: "1"})
	seedMessage(t, models.ContactMessage{FullName: "B", Email: "b@example.com", Message: "2", IsRead: true})
	seedMessage(t, models.ContactMessage{FullName: "C", Email: "c@example.com", Message: "3"})

	resp := doJSON(t, app, http.MethodGet, "/api/admin/messages/unread-count", nil)
	var body struct {
		Count int64 `json:"count"`
	}
	decodeBody(t, resp, &body)
	if body.Count != 2 {
		t.Fatalf("unread count = %d, want 2", body.Count)
	}
}

func TestRecentMessagesPreview(t *testing.T) {
	app := newTestApp(t)

	long := strings.Repeat("x", 150)
	seedMessage(t, models.ContactMessage{FullName: "A", Email: "a@example.com", Message: long})

	resp := doJSON(t, app, http.MethodGet, "/api/admin/messages/recent", nil)
	var body struct {
		Data []struct {
			Message string `json:"message"`
		} `json:"data"`
	}
	decodeBody(t, resp, &body)

	if len(body.Data) != 1 {
		t.Fatalf("got %d recent messages, want 1", len(body.Data))
	}
	if want := strings.Repeat("x", 100) + "..."; body.Data[0].Message != want {
		t.Fatalf("preview = %q, want a 100 character prefix with ellipsis", body.Data[0].Message)
	}
}
