package clients_test

import (
	"context"
	"sync"

	"storefront-service/clients"
)

// ---- mock requester ----

type call struct {
	method string
	path   string
	body   interface{}
}

type mockRequester struct {
	mu    sync.Mutex
	calls []call
	resp  *clients.Response
	err   error
}

func (m *mockRequester) Do(_ context.Context, method, path string, body interface{}) (*clients.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call{method: method, path: path, body: body})
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockRequester) only() call {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) != 1 {
		panic("expected exactly one call")
	}
	return m.calls[0]
}
