package services

import (
	"context"
	"testing"

	"nanotasks/internal/models"
)

func TestNotifyAndMarkRead(t *testing.T) {
	db := setupTestDB(t)
	notifier := NewNotificationService(db)

	ctx := context.Background()
	notifier.Notify(ctx, "worker@test.com", "You earned 10 coins", "/dashboard/worker-home")
	notifier.Notify(ctx, "worker@test.com", "Your submission was rejected", "/dashboard/worker-home")
	notifier.Notify(ctx, "other@test.com", "not yours", "/")

	list, err := notifier.ListByUser(ctx, "worker@test.com")
	if err != nil {
		t.Fatalf("ListByUser failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(list))
	}
	for _, n := range list {
		if n.Read {
			t.Errorf("fresh notification already read: %+v", n)
		}
	}

	if err := notifier.MarkAllRead(ctx, "worker@test.com"); err != nil {
		t.Fatalf("MarkAllRead failed: %v", err)
	}

	var unread int64
	db.Model(&models.Notification{}).Where("to_email = ? AND read = ?", "worker@test.com", false).Count(&unread)
	if unread != 0 {
		t.Errorf("expected 0 unread, got %d", unread)
	}
}
