package constant

// NotificationType identifies which email flow a send belongs to.
type NotificationType string

const (
	// NotificationConfirmation is sent once right after a booking is created.
	NotificationConfirmation NotificationType = "confirmation"
	// NotificationReminder is sent once shortly before the reservation starts.
	NotificationReminder NotificationType = "reminder"
)

func (t NotificationType) String() string {
	return string(t)
}
