package mqtt

import "sync"

// MockPublisher is a simple publisher used in tests.
type MockPublisher struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{messages: make(map[string][][]byte)}
}

// Publish records the payload under its topic.
func (m *MockPublisher) Publish(topic string, payload []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(payload))
	copy(cp, payload)
	m.messages[topic] = append(m.messages[topic], cp)
	return nil
}

// Messages returns the payloads published to a topic.
func (m *MockPublisher) Messages(topic string) [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.messages[topic]...)
}

// Topics lists the topics that received at least one payload.
func (m *MockPublisher) Topics() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []string
	for t := range m.messages {
		out = append(out, t)
	}
	return out
}

// Disconnect is a no-op.
func (m *MockPublisher) Disconnect() {}
