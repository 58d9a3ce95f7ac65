package contipay

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/contipay/contipay-go/contipay/core"
)

// Mode selects the sandbox or live endpoint.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeLive Mode = "live"
)

// Method selects server-to-server or hosted-page processing.
type Method string

const (
	MethodDirect   Method = "direct"
	MethodRedirect Method = "redirect"
)

// IsDirect reports whether m is the direct method. Every other value is
// processed as a redirect.
func (m Method) IsDirect() bool {
	return m == MethodDirect
}

// ErrInvalidConfig is returned by Config.Validate.
var ErrInvalidConfig = errors.New("invalid contipay config")

var validate = validator.New()

// Config is the immutable configuration of a façade.
type Config struct {
	APIKey     string `validate:"required"`
	APISecret  string `validate:"required"`
	Mode       Mode   `validate:"oneof=dev live"`
	Method     Method `validate:"required"`
	MerchantID int    `validate:"gte=0"`
	WebhookURL string `validate:"omitempty,url"`
	SuccessURL string `validate:"omitempty,url"`
	ErrorURL   string `validate:"omitempty,url"`
	DevURL     string `validate:"required,url"`
	LiveURL    string `validate:"required,url"`
}

func defaultConfig(apiKey, apiSecret string) Config {
	return Config{
		APIKey:    apiKey,
		APISecret: apiSecret,
		Mode:      ModeDev,
		Method:    MethodDirect,
		DevURL:    core.DefaultDevURL,
		LiveURL:   core.DefaultLiveURL,
	}
}

// Validate checks credentials, mode and URL syntax.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, ", "))
}
