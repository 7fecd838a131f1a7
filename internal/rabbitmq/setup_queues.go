package rabbitmq

// QueueConfig описывает очередь и её ключ маршрутизации в обменнике notifications.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// Ключи маршрутизации уведомлений.
const (
	RoutingKeyPayment  = "payment"
	RoutingKeyReminder = "reminder"
	RoutingKeySupport  = "support"
)

// Имена очередей уведомлений.
const (
	QueuePayment  = "notifications.payment"
	QueueReminder = "notifications.reminder"
	QueueSupport  = "notifications.support"
)

// GetNotificationQueues возвращает очереди почтовых уведомлений платформы.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueuePayment, RoutingKey: RoutingKeyPayment},
		{QueueName: QueueReminder, RoutingKey: RoutingKeyReminder},
		{QueueName: QueueSupport, RoutingKey: RoutingKeySupport},
	}
}
