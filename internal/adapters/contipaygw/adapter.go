// Package contipaygw implements the PaymentGateway interface using the contipay SDK façades.
package contipaygw

import (
	"context"
	"fmt"

	"github.com/contipay/contipay-go/contipay"
	"github.com/contipay/contipay-go/internal/domain"
)

// Adapter implements domain.PaymentGateway on top of a Mobile and a Card façade.
type Adapter struct {
	mobile *contipay.Mobile
	card   *contipay.Card
}

// NewAdapter creates a new ContiPay adapter.
func NewAdapter(mobile *contipay.Mobile, card *contipay.Card) *Adapter {
	return &Adapter{
		mobile: mobile,
		card:   card,
	}
}

// Pay dispatches the order to the façade of its rail. SDK errors are
// returned unchanged so the service can classify them.
func (a *Adapter) Pay(ctx context.Context, order domain.PaymentOrder) (*domain.PaymentResult, error) {
	fields := contipay.Fields(order.Fields)

	var (
		resp *contipay.Response
		err  error
	)
	switch order.Rail {
	case domain.RailMobile:
		resp, err = a.mobile.Invoke(ctx, order.Provider, fields)
	case domain.RailCard:
		resp, err = a.card.Invoke(ctx, order.Provider, fields)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedRail, order.Rail)
	}
	if err != nil {
		return nil, err
	}

	return &domain.PaymentResult{
		Provider:  resp.Provider,
		Reference: resp.Reference,
		Body:      resp.Body,
	}, nil
}

// Providers lists mobile providers first, then card providers.
func (a *Adapter) Providers() []domain.ProviderInfo {
	var out []domain.ProviderInfo
	for _, p := range a.mobile.Providers() {
		out = append(out, toInfo(domain.RailMobile, p))
	}
	for _, p := range a.card.Providers() {
		out = append(out, toInfo(domain.RailCard, p))
	}
	return out
}

func toInfo(rail domain.Rail, p contipay.Provider) domain.ProviderInfo {
	return domain.ProviderInfo{
		Rail:        rail,
		Key:         p.Key,
		DisplayName: p.DisplayName,
		ShortCode:   p.ShortCode,
		Required:    p.Required,
	}
}
