package mqtt

// Message records one fake publish.
type Message struct {
	Topic   string
	Payload []byte
}

// FakePublisher records publishes for tests.
type FakePublisher struct {
	Messages     []Message
	PublishError error
	Closed       bool
}

func NewFakePublisher() *FakePublisher { return &FakePublisher{} }

func (p *FakePublisher) Publish(topic string, payload []byte) error {
	if p.PublishError != nil {
		return p.PublishError
	}
	p.Messages = append(p.Messages, Message{Topic: topic, Payload: payload})
	return nil
}

func (p *FakePublisher) Close() {
	p.Closed = true
}
