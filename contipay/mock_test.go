package contipay

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

type mockProcessor struct {
	mock.Mock
}

func (m *mockProcessor) Process(ctx context.Context, target Target, payload any) (json.RawMessage, error) {
	args := m.Called(ctx, target, payload)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

// lastPayload returns the payload of the most recent Process call.
func (m *mockProcessor) lastPayload() any {
	calls := m.Calls
	if len(calls) == 0 {
		return nil
	}
	return calls[len(calls)-1].Arguments.Get(2)
}

func okProcessor() *mockProcessor {
	p := new(mockProcessor)
	p.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(json.RawMessage(`{"status":"Success"}`), nil)
	return p
}

func payloadMap(v any) map[string]any {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		panic(err)
	}
	return m
}
