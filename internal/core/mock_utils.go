package core

import "context"

// MockLLMClient replays a scripted sequence of responses, one per call.
// Once the script is exhausted the last response repeats.
type MockLLMClient struct {
	Responses []string
	Err       error
	Calls     int
}

func (m *MockLLMClient) Generate(ctx context.Context, prompt string) (string, error) {
	m.Calls++
	if m.Err != nil {
		return "", m.Err
	}
	if len(m.Responses) == 0 {
		return "", nil
	}
	idx := m.Calls - 1
	if idx >= len(m.Responses) {
		idx = len(m.Responses) - 1
	}
	return m.Responses[idx], nil
}
