package ports

// AnyTopic subscribes a client to every event published by the daemon.
const AnyTopic = "*"

// Subscription is the info of a client registered for a topic.
type Subscription interface {
	Topic() string
	Id() string
	IsSecured() bool
	NotifyAt() string
}

// SecurePubSub defines the methods of the pubsub service used to notify
// external observers of vault state changes. Subscriptions survive daemon
// restarts, so the service needs its own storage.
type SecurePubSub interface {
	// Subscribe adds a new subscription for the requested topic.
	Subscribe(topic, endpoint, secret string) (string, error)
	// Unsubscribe removes the client with the given id.
	Unsubscribe(topic, id string) error
	// ListSubscriptionsForTopic returns the info of all clients
	// subscribed for a certain topic.
	ListSubscriptionsForTopic(topic string) []Subscription
	// Publish publishes a message for a certain topic. All clients
	// subscribed for such topic will receive the message.
	Publish(topic string, message string) error
	// Close gracefully closes the connection with the internal store.
	Close() error
}
