package cli

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/contipay/contipay-go/contipay"
)

func newPayCommand(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pay",
		Short: "Send a single payment",
		Long:  `Send a single payment and print ContiPay's JSON answer, or the error envelope when processing fails.`,
	}

	cmd.AddCommand(
		newPayMobileCommand(opts),
		newPayCardCommand(opts),
	)

	return cmd
}

// flagFields maps CLI flag names to field names.
type flagFields map[string]*string

// collect copies every non-empty flag into a field bag.
func (ff flagFields) collect() contipay.Fields {
	fields := contipay.Fields{}
	for name, value := range ff {
		if *value != "" {
			fields[name] = *value
		}
	}
	return fields
}

func newPayMobileCommand(opts *globalOptions) *cobra.Command {
	var amount, currency, phone, reference, description, providerName, providerCode string

	cmd := &cobra.Command{
		Use:   "mobile <provider>",
		Short: "Charge a mobile-money wallet",
		Long:  `Charge a mobile-money wallet. Providers: ecocash, onemoney, omari, innbucks, mobile.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reference == "" {
				reference = uuid.New().String()
			}
			facadeOpts, err := opts.facadeOptions(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			mobile, err := contipay.NewMobile(opts.apiKey, opts.apiSecret, facadeOpts...)
			if err != nil {
				return err
			}

			fields := flagFields{
				contipay.FieldAmount:      &amount,
				contipay.FieldCurrency:    &currency,
				contipay.FieldPhone:       &phone,
				contipay.FieldReference:   &reference,
				contipay.FieldDescription: &description,
				contipay.FieldProvider:    &providerName,
				contipay.FieldCode:        &providerCode,
			}.collect()

			out, err := mobile.InvokeJSON(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&amount, "amount", "", "Amount to charge")
	f.StringVar(&currency, "currency", contipay.DefaultCurrency, "Currency code")
	f.StringVar(&phone, "phone", "", "Wallet phone number")
	f.StringVar(&reference, "reference", "", "Merchant reference (default: a new UUID)")
	f.StringVar(&description, "description", "", "Payment description")
	f.StringVar(&providerName, "provider-name", "", "Display name for the generic mobile provider")
	f.StringVar(&providerCode, "provider-code", "", "Short code for the generic mobile provider")

	return cmd
}

func newPayCardCommand(opts *globalOptions) *cobra.Command {
	var (
		firstName, lastName, email, phone          string
		accountNumber, expiry, cvv                 string
		amount, currency, country, reference, desc string
	)

	cmd := &cobra.Command{
		Use:   "card <provider>",
		Short: "Charge a card",
		Long:  `Charge a card. Providers: visa, mastercard, zimswitch.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if reference == "" {
				reference = uuid.New().String()
			}
			facadeOpts, err := opts.facadeOptions(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			card, err := contipay.NewCard(opts.apiKey, opts.apiSecret, facadeOpts...)
			if err != nil {
				return err
			}

			fields := flagFields{
				contipay.FieldFirstName:     &firstName,
				contipay.FieldLastName:      &lastName,
				contipay.FieldEmail:         &email,
				contipay.FieldPhone:         &phone,
				contipay.FieldAccountNumber: &accountNumber,
				contipay.FieldAccountExpiry: &expiry,
				contipay.FieldCVV:           &cvv,
				contipay.FieldAmount:        &amount,
				contipay.FieldCurrency:      &currency,
				contipay.FieldCountry:       &country,
				contipay.FieldReference:     &reference,
				contipay.FieldDescription:   &desc,
			}.collect()

			out, err := card.InvokeJSON(cmd.Context(), args[0], fields)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&firstName, "first-name", "", "Card holder first name")
	f.StringVar(&lastName, "last-name", "", "Card holder last name")
	f.StringVar(&email, "email", "", "Card holder email")
	f.StringVar(&phone, "phone", "", "Card holder phone number")
	f.StringVar(&accountNumber, "account-number", "", "Card number")
	f.StringVar(&expiry, "expiry", "", "Card expiry (MM/YY)")
	f.StringVar(&cvv, "cvv", "", "Card CVV")
	f.StringVar(&amount, "amount", "", "Amount to charge")
	f.StringVar(&currency, "currency", contipay.DefaultCurrency, "Currency code")
	f.StringVar(&country, "country", "", "Country code")
	f.StringVar(&reference, "reference", "", "Merchant reference (default: a new UUID)")
	f.StringVar(&desc, "description", "", "Payment description")

	return cmd
}
