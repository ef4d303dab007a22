package http

import (
	"net/http"

	"github.com/MKhiriev/mentor-hub/models"
)

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "list notifications")
		return
	}

	list, err := h.services.NotificationService.List(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "list notifications failed")
		return
	}

	writeOK(w, r, "Notifications fetched successfully", nonNil(list))
}

func (h *Handler) unreadCount(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "unread count")
		return
	}

	count, err := h.services.NotificationService.UnreadCount(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "unread count failed")
		return
	}

	writeOK(w, r, "Unread count fetched successfully", models.UnreadCount{UnreadCount: count})
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "mark read")
		return
	}

	notificationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "mark read")
		return
	}

	if err = h.services.NotificationService.MarkRead(r.Context(), userID, notificationID); err != nil {
		writeError(w, r, err, "mark read failed")
		return
	}

	writeOK(w, r, "Notification marked as read", nil)
}

func (h *Handler) markAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "mark all read")
		return
	}

	updated, err := h.services.NotificationService.MarkAllRead(r.Context(), userID)
	if err != nil {
		writeError(w, r, err, "mark all read failed")
		return
	}

	writeOK(w, r, "All notifications marked as read", map[string]int64{"updated": updated})
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, err := currentUserID(r)
	if err != nil {
		writeError(w, r, err, "delete notification")
		return
	}

	notificationID, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err, "delete notification")
		return
	}

	if err = h.services.NotificationService.Delete(r.Context(), userID, notificationID); err != nil {
		writeError(w, r, err, "delete notification failed")
		return
	}

	writeOK(w, r, "Notification deleted", nil)
}
