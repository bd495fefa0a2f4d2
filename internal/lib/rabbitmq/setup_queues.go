package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.moderation", RoutingKey: "moderation"},
		// при необходимости дополнительные очереди для других воркеров
	}
}
