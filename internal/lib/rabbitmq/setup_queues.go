package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetEventQueues возвращает очереди доменных событий и их ключи маршрутизации.
func GetEventQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "events.content", RoutingKey: "content.created"},
		{QueueName: "events.campaign", RoutingKey: "campaign.status_changed"},
		{QueueName: "events.planner", RoutingKey: "post.scheduled"},
	}
}
