package usecases

import (
	"encoding/json"
	"fmt"

	"github.com/volatiletech/null/v8"
	"rampsync.backend/internal/domain/entities"
	domainerrors "rampsync.backend/internal/domain/errors"
	"rampsync.backend/internal/infrastructure/provider"
)

// decodeObject decodes a webhook event_object into v and requires a resource id
func decodeObject(object json.RawMessage, v interface{}, id func() string) error {
	if len(object) == 0 {
		return fmt.Errorf("%w: empty event_object", domainerrors.ErrInvalidPayload)
	}
	if err := json.Unmarshal(object, v); err != nil {
		return fmt.Errorf("%w: %v", domainerrors.ErrInvalidPayload, err)
	}
	if id() == "" {
		return fmt.Errorf("%w: event_object has no id", domainerrors.ErrInvalidPayload)
	}
	return nil
}

func rejectionReasons(in []provider.RejectionReason) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r.Reason != "" {
			out = append(out, r.Reason)
		}
	}
	return out
}

func customerFromProvider(c *provider.Customer) *entities.Customer {
	out := &entities.Customer{
		ExternalID:       c.ID,
		FirstName:        c.FirstName,
		LastName:         c.LastName,
		Email:            c.Email,
		Type:             c.Type,
		Status:           c.Status,
		HasAcceptedTOS:   null.BoolFromPtr(c.HasAcceptedTermsOfService),
		RejectionReasons: rejectionReasons(c.RejectionReasons),
	}
	for _, e := range c.Endorsements {
		endorsement := entities.Endorsement{Name: e.Name, Status: e.Status}
		if e.Requirements != nil {
			endorsement.Requirements = e.Requirements.Pending
		}
		out.Endorsements = append(out.Endorsements, endorsement)
	}
	if c.Capabilities != nil {
		out.Capabilities = entities.CustomerCapabilities{
			PayinCrypto:  c.Capabilities.PayinCrypto,
			PayoutCrypto: c.Capabilities.PayoutCrypto,
			PayinFiat:    c.Capabilities.PayinFiat,
			PayoutFiat:   c.Capabilities.PayoutFiat,
		}
	}
	return out
}

func kycLinkFromProvider(k *provider.KYCLink) *entities.KYCLink {
	return &entities.KYCLink{
		ExternalID:       k.ID,
		CustomerID:       k.CustomerID,
		FullName:         k.FullName,
		Email:            k.Email,
		Type:             k.Type,
		KYCLink:          k.KYCLink,
		TOSLink:          k.TOSLink,
		KYCStatus:        k.KYCStatus,
		TOSStatus:        k.TOSStatus,
		RejectionReasons: rejectionReasons(k.RejectionReasons),
	}
}

func walletFromProvider(w *provider.Wallet, customerID string) *entities.Wallet {
	if w.CustomerID != "" {
		customerID = w.CustomerID
	}
	return &entities.Wallet{
		ExternalID: w.ID,
		CustomerID: customerID,
		Chain:      w.Chain,
		Address:    w.Address,
	}
}

func endpointFromProvider(e *provider.Endpoint) *entities.Endpoint {
	if e == nil {
		return nil
	}
	toAddress := e.ToAddress
	if toAddress == "" {
		toAddress = e.Address
	}
	return &entities.Endpoint{
		PaymentRail:       e.PaymentRail,
		Currency:          e.Currency,
		ExternalAccountID: e.ExternalAccountID,
		WalletID:          e.BridgeWalletID,
		FromAddress:       e.FromAddress,
		ToAddress:         toAddress,
		Description:       e.Description,
		SenderName:        e.SenderName,
		RoutingNumber:     e.SenderBankRoutingNumber,
		TraceNumber:       e.TraceNumber,
		WireMessage:       e.WireMessage,
	}
}

func receiptFromProvider(r *provider.Receipt) *entities.Receipt {
	if r == nil {
		return nil
	}
	return &entities.Receipt{
		InitialAmount:     r.InitialAmount.String(),
		DeveloperFee:      r.DeveloperFee.String(),
		ExchangeFee:       r.ExchangeFee.String(),
		SubtotalAmount:    r.SubtotalAmount.String(),
		GasFee:            r.GasFee.String(),
		FinalAmount:       r.FinalAmount.String(),
		ExchangeRate:      r.ExchangeRate.String(),
		SourceTxHash:      r.SourceTxHash,
		DestinationTxHash: r.DestinationTxHash,
		URL:               r.URL,
	}
}

func depositInstructionsFromProvider(d *provider.DepositInstructions) *entities.DepositInstructions {
	if d == nil {
		return nil
	}
	return &entities.DepositInstructions{
		PaymentRail:         d.PaymentRail,
		PaymentRails:        d.PaymentRails,
		Currency:            d.Currency,
		Amount:              d.Amount.String(),
		DepositMessage:      d.DepositMessage,
		BankName:            d.BankName,
		BankAddress:         d.BankAddress,
		BankRoutingNumber:   d.BankRoutingNumber,
		BankAccountNumber:   d.BankAccountNumber,
		BankBeneficiaryName: d.BankBeneficiaryName,
		IBAN:                d.IBAN,
		BIC:                 d.BIC,
		ToAddress:           d.ToAddress,
		FromAddress:         d.FromAddress,
	}
}

func virtualAccountFromProvider(v *provider.VirtualAccount, customerID string) *entities.VirtualAccount {
	if v.CustomerID != "" {
		customerID = v.CustomerID
	}
	return &entities.VirtualAccount{
		ExternalID:                v.ID,
		CustomerID:                customerID,
		Status:                    v.Status,
		DeveloperFeePercent:       v.DeveloperFeePercent.String(),
		SourceDepositInstructions: depositInstructionsFromProvider(v.SourceDepositInstructions),
		Destination:               endpointFromProvider(v.Destination),
	}
}

func activityFromProvider(a *provider.VirtualAccountActivity) *entities.VirtualAccountEvent {
	out := &entities.VirtualAccountEvent{
		ExternalID:         a.ID,
		VirtualAccountID:   a.VirtualAccountID,
		CustomerID:         a.CustomerID,
		Type:               a.Type,
		Amount:             a.Amount.String(),
		Currency:           a.Currency,
		DeveloperFeeAmount: a.DeveloperFeeAmount.String(),
		ExchangeFeeAmount:  a.ExchangeFeeAmount.String(),
		SubtotalAmount:     a.SubtotalAmount.String(),
		GasFee:             a.GasFee.String(),
		DepositID:          a.DepositID,
		Source:             endpointFromProvider(a.Source),
		Receipt:            receiptFromProvider(a.Receipt),
		AccountUpdate:      a.AccountUpdate,
		ProviderCreatedAt:  a.CreatedAt,
	}
	if a.Refund != nil {
		out.Refund = &entities.Refund{
			Reason:       a.Refund.Reason,
			Amount:       a.Refund.Amount.String(),
			Currency:     a.Refund.Currency,
			RefundedAt:   a.Refund.RefundedAt,
			TraceNumber:  a.Refund.TraceNumber,
			ReturnStatus: a.Refund.ReturnStatus,
		}
	}
	return out
}

func externalAccountFromProvider(e *provider.ExternalAccount, customerID string) *entities.ExternalAccount {
	if e.CustomerID != "" {
		customerID = e.CustomerID
	}
	return &entities.ExternalAccount{
		ExternalID:       e.ID,
		CustomerID:       customerID,
		BankName:         e.BankName,
		AccountOwnerName: e.AccountOwnerName,
		AccountOwnerType: e.AccountOwnerType,
		AccountType:      e.AccountType,
		Currency:         e.Currency,
		Last4:            e.Last4,
		Active:           e.Active,
	}
}

func transferFromProvider(t *provider.Transfer) *entities.Transfer {
	out := &entities.Transfer{
		ExternalID:                t.ID,
		CustomerID:                t.OnBehalfOf,
		State:                     t.State,
		Amount:                    t.Amount.String(),
		Currency:                  t.Currency,
		DeveloperFee:              t.DeveloperFee.String(),
		ClientReferenceID:         t.ClientReferenceID,
		Source:                    endpointFromProvider(t.Source),
		Destination:               endpointFromProvider(t.Destination),
		SourceDepositInstructions: depositInstructionsFromProvider(t.SourceDepositInstructions),
		Receipt:                   receiptFromProvider(t.Receipt),
		ProviderCreatedAt:         t.CreatedAt,
	}
	if t.Features != nil {
		out.Features = &entities.TransferFeatures{
			FlexibleAmount:      t.Features.FlexibleAmount,
			StaticTemplate:      t.Features.StaticTemplate,
			AllowAnyFromAddress: t.Features.AllowAnyFromAddress,
		}
	}
	return out
}

func liquidationAddressFromProvider(l *provider.LiquidationAddress, customerID string) *entities.LiquidationAddress {
	if l.CustomerID != "" {
		customerID = l.CustomerID
	}
	return &entities.LiquidationAddress{
		ExternalID:             l.ID,
		CustomerID:             customerID,
		Chain:                  l.Chain,
		Address:                l.Address,
		Currency:               l.Currency,
		State:                  l.State,
		ExternalAccountID:      l.ExternalAccountID,
		DestinationPaymentRail: l.DestinationPaymentRail,
		DestinationCurrency:    l.DestinationCurrency,
		DestinationAddress:     l.DestinationAddress,
	}
}

func drainFromProvider(d *provider.Drain) *entities.Drain {
	return &entities.Drain{
		ExternalID:           d.ID,
		LiquidationAddressID: d.LiquidationAddressID,
		CustomerID:           d.CustomerID,
		Amount:               d.Amount.String(),
		Currency:             d.Currency,
		State:                d.State,
		SourcePaymentRail:    d.SourcePaymentRail,
		FromAddress:          d.FromAddress,
		Destination:          endpointFromProvider(d.Destination),
		DepositTxHash:        d.DepositTxHash,
		DestinationTxHash:    d.DestinationTxHash,
		Receipt:              receiptFromProvider(d.Receipt),
		ProviderCreatedAt:    d.CreatedAt,
	}
}
