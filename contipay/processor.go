package contipay

import (
	"context"
	"encoding/json"

	"github.com/contipay/contipay-go/contipay/core"
)

// Target tells a Processor where and how to send a payload.
type Target struct {
	Mode    Mode
	Method  Method
	DevURL  string
	LiveURL string
}

// Processor sends a built payload to ContiPay and returns its JSON response.
type Processor interface {
	Process(ctx context.Context, target Target, payload any) (json.RawMessage, error)
}

// CoreProcessor adapts a core.Client to the Processor interface.
type CoreProcessor struct {
	client *core.Client
}

// NewCoreProcessor wraps client.
func NewCoreProcessor(client *core.Client) *CoreProcessor {
	return &CoreProcessor{client: client}
}

// Process configures the client for target and sends payload.
func (p *CoreProcessor) Process(ctx context.Context, target Target, payload any) (json.RawMessage, error) {
	return p.client.
		UpdateURL(target.DevURL, target.LiveURL).
		SetAppMode(string(target.Mode)).
		SetPaymentMethod(string(target.Method)).
		Process(ctx, payload)
}
