package blinddate_test

import "sync"

// mockNotifier records notifications synchronously for assertions.
type mockNotifier struct {
	mu    sync.Mutex
	calls []notification
}

type notification struct {
	UserID string
	Title  string
	Body   string
}

func (m *mockNotifier) Notify(userID, title, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, notification{UserID: userID, Title: title, Body: body})
}

func (m *mockNotifier) notified(userID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, n := range m.calls {
		if n.UserID == userID {
			return true
		}
	}
	return false
}

func (m *mockNotifier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
