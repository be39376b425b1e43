package handlers

import (
	"log"

	"github.com/google/uuid"
	"p9e.in/homepro/config"
	"p9e.in/homepro/models"
)

// notifyUser writes an in-app notification row. meta carries the ids of the
// triggering entities so clients can deep-link without re-querying. Best
// effort: a failed insert is logged and never fails the operation that
// triggered it.
func notifyUser(userID uuid.UUID, notifType models.NotificationType, title, body string, jobID *uuid.UUID, meta map[string]string) {
	n := models.Notification{
		UserID:       userID,
		Type:         notifType,
		Title:        title,
		Body:         body,
		JobRequestID: jobID,
		Metadata:     models.MetadataJSON(meta),
	}
	if err := config.DB.Create(&n).Error; err != nil {
		log.Printf("⚠️ Failed to create %s notification for user %s: %v", notifType, userID, err)
	}
}

// ListNotifications returns the user's notifications, newest first.
func ListNotifications(userID uuid.UUID, unreadOnly bool) ([]models.Notification, error) {
	q := config.DB.Where("user_id = ?", userID)
	if unreadOnly {
		q = q.Where("is_read = ?", false)
	}
	var notifications []models.Notification
	if err := q.Order("created_at DESC").Limit(100).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

// CountUnreadNotifications returns the badge count.
func CountUnreadNotifications(userID uuid.UUID) (int64, error) {
	var count int64
	err := config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// MarkNotificationRead flips one of the user's notifications to read.
// Query-filtered by owner so one user cannot touch another's rows.
func MarkNotificationRead(userID, notificationID uuid.UUID) error {
	result := config.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkAllNotificationsRead clears the user's unread set.
func MarkAllNotificationsRead(userID uuid.UUID) error {
	return config.DB.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
