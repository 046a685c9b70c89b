package mocks

import (
	"context"
	"io"
	"strings"
	"sync"
)

// MockPublisher records published events
type MockPublisher struct {
	mu     sync.Mutex
	Events []PublishCall
	Err    error
}

// PublishCall records parameters passed to Publish
type PublishCall struct {
	Key   string
	Event any
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

func (m *MockPublisher) Publish(_ context.Context, key string, event any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, PublishCall{Key: key, Event: event})
	return m.Err
}

// MockImageStore records uploaded objects
type MockImageStore struct {
	mu      sync.Mutex
	BaseURL string
	Objects map[string]string
	Err     error
}

func NewMockImageStore() *MockImageStore {
	return &MockImageStore{BaseURL: "https://cdn.test", Objects: make(map[string]string)}
}

func (m *MockImageStore) Put(_ context.Context, key, contentType string, body io.Reader, _ int64) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	var b strings.Builder
	if _, err := io.Copy(&b, body); err != nil {
		return "", err
	}
	m.Objects[key] = contentType
	return m.BaseURL + "/" + key, nil
}
