package provider

import (
	"bytes"
	"encoding/json"
)

// FlexString decodes a JSON string or number into a string. The provider
// sends amounts as decimal strings but older payloads used bare numbers.
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*s = ""
		return nil
	}
	if data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = FlexString(str)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	*s = FlexString(num.String())
	return nil
}

func (s FlexString) String() string {
	return string(s)
}

// WebhookEvent is the notification envelope POSTed to the webhook endpoint
type WebhookEvent struct {
	EventID            string          `json:"event_id"`
	EventCategory      string          `json:"event_category"`
	EventType          string          `json:"event_type"`
	EventObjectID      string          `json:"event_object_id"`
	EventObjectStatus  *string         `json:"event_object_status,omitempty"`
	EventObject        json.RawMessage `json:"event_object"`
	EventObjectChanges json.RawMessage `json:"event_object_changes,omitempty"`
	EventCreatedAt     string          `json:"event_created_at"`
}

type RejectionReason struct {
	Reason          string `json:"reason"`
	DeveloperReason string `json:"developer_reason,omitempty"`
}

type EndorsementRequirements struct {
	Complete []string `json:"complete,omitempty"`
	Pending  []string `json:"pending,omitempty"`
}

type Endorsement struct {
	Name         string                   `json:"name"`
	Status       string                   `json:"status"`
	Requirements *EndorsementRequirements `json:"requirements,omitempty"`
}

type Capabilities struct {
	PayinCrypto  string `json:"payin_crypto,omitempty"`
	PayoutCrypto string `json:"payout_crypto,omitempty"`
	PayinFiat    string `json:"payin_fiat,omitempty"`
	PayoutFiat   string `json:"payout_fiat,omitempty"`
}

type Customer struct {
	ID                        string            `json:"id"`
	FirstName                 string            `json:"first_name,omitempty"`
	LastName                  string            `json:"last_name,omitempty"`
	Email                     string            `json:"email,omitempty"`
	Status                    string            `json:"status,omitempty"`
	Type                      string            `json:"type,omitempty"`
	HasAcceptedTermsOfService *bool             `json:"has_accepted_terms_of_service,omitempty"`
	Endorsements              []Endorsement     `json:"endorsements,omitempty"`
	Capabilities              *Capabilities     `json:"capabilities,omitempty"`
	RejectionReasons          []RejectionReason `json:"rejection_reasons,omitempty"`
	CreatedAt                 string            `json:"created_at,omitempty"`
}

type KYCLink struct {
	ID               string            `json:"id"`
	FullName         string            `json:"full_name,omitempty"`
	Email            string            `json:"email,omitempty"`
	Type             string            `json:"type,omitempty"`
	KYCLink          string            `json:"kyc_link,omitempty"`
	TOSLink          string            `json:"tos_link,omitempty"`
	KYCStatus        string            `json:"kyc_status,omitempty"`
	TOSStatus        string            `json:"tos_status,omitempty"`
	CustomerID       string            `json:"customer_id,omitempty"`
	RejectionReasons []RejectionReason `json:"rejection_reasons,omitempty"`
	CreatedAt        string            `json:"created_at,omitempty"`
}

type CreateKYCLinkRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Type     string `json:"type"`
}

type Wallet struct {
	ID         string `json:"id"`
	Chain      string `json:"chain,omitempty"`
	Address    string `json:"address,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	CreatedAt  string `json:"created_at,omitempty"`
}

type CreateWalletRequest struct {
	Chain string `json:"chain"`
}

type DepositInstructions struct {
	PaymentRail         string     `json:"payment_rail,omitempty"`
	PaymentRails        []string   `json:"payment_rails,omitempty"`
	Currency            string     `json:"currency,omitempty"`
	Amount              FlexString `json:"amount,omitempty"`
	DepositMessage      string     `json:"deposit_message,omitempty"`
	BankName            string     `json:"bank_name,omitempty"`
	BankAddress         string     `json:"bank_address,omitempty"`
	BankRoutingNumber   string     `json:"bank_routing_number,omitempty"`
	BankAccountNumber   string     `json:"bank_account_number,omitempty"`
	BankBeneficiaryName string     `json:"bank_beneficiary_name,omitempty"`
	IBAN                string     `json:"iban,omitempty"`
	BIC                 string     `json:"bic,omitempty"`
	ToAddress           string     `json:"to_address,omitempty"`
	FromAddress         string     `json:"from_address,omitempty"`
}

// Endpoint is the source or destination side of a money movement
type Endpoint struct {
	PaymentRail             string `json:"payment_rail,omitempty"`
	Currency                string `json:"currency,omitempty"`
	ExternalAccountID       string `json:"external_account_id,omitempty"`
	BridgeWalletID          string `json:"bridge_wallet_id,omitempty"`
	FromAddress             string `json:"from_address,omitempty"`
	ToAddress               string `json:"to_address,omitempty"`
	Address                 string `json:"address,omitempty"`
	Description             string `json:"description,omitempty"`
	SenderName              string `json:"sender_name,omitempty"`
	SenderBankRoutingNumber string `json:"sender_bank_routing_number,omitempty"`
	TraceNumber             string `json:"trace_number,omitempty"`
	WireMessage             string `json:"wire_message,omitempty"`
}

type Receipt struct {
	InitialAmount     FlexString `json:"initial_amount,omitempty"`
	DeveloperFee      FlexString `json:"developer_fee,omitempty"`
	ExchangeFee       FlexString `json:"exchange_fee,omitempty"`
	SubtotalAmount    FlexString `json:"subtotal_amount,omitempty"`
	GasFee            FlexString `json:"gas_fee,omitempty"`
	FinalAmount       FlexString `json:"final_amount,omitempty"`
	ExchangeRate      FlexString `json:"exchange_rate,omitempty"`
	SourceTxHash      string     `json:"source_tx_hash,omitempty"`
	DestinationTxHash string     `json:"destination_tx_hash,omitempty"`
	URL               string     `json:"url,omitempty"`
}

type VirtualAccount struct {
	ID                        string               `json:"id"`
	Status                    string               `json:"status,omitempty"`
	CustomerID                string               `json:"customer_id,omitempty"`
	DeveloperFeePercent       FlexString           `json:"developer_fee_percent,omitempty"`
	SourceDepositInstructions *DepositInstructions `json:"source_deposit_instructions,omitempty"`
	Destination               *Endpoint            `json:"destination,omitempty"`
	CreatedAt                 string               `json:"created_at,omitempty"`
}

type CreateVirtualAccountRequest struct {
	Source      VirtualAccountSource      `json:"source"`
	Destination VirtualAccountDestination `json:"destination"`
}

type VirtualAccountSource struct {
	Currency string `json:"currency"`
}

type VirtualAccountDestination struct {
	PaymentRail string `json:"payment_rail"`
	Currency    string `json:"currency"`
	Address     string `json:"address"`
}

type Refund struct {
	Reason       string     `json:"reason,omitempty"`
	Amount       FlexString `json:"amount,omitempty"`
	Currency     string     `json:"currency,omitempty"`
	RefundedAt   string     `json:"refunded_at,omitempty"`
	TraceNumber  string     `json:"trace_number,omitempty"`
	ReturnStatus string     `json:"return_status,omitempty"`
}

type VirtualAccountActivity struct {
	ID                 string          `json:"id"`
	Type               string          `json:"type"`
	CustomerID         string          `json:"customer_id,omitempty"`
	VirtualAccountID   string          `json:"virtual_account_id,omitempty"`
	Amount             FlexString      `json:"amount,omitempty"`
	Currency           string          `json:"currency,omitempty"`
	DeveloperFeeAmount FlexString      `json:"developer_fee_amount,omitempty"`
	ExchangeFeeAmount  FlexString      `json:"exchange_fee_amount,omitempty"`
	SubtotalAmount     FlexString      `json:"subtotal_amount,omitempty"`
	GasFee             FlexString      `json:"gas_fee,omitempty"`
	DepositID          string          `json:"deposit_id,omitempty"`
	Source             *Endpoint       `json:"source,omitempty"`
	Receipt            *Receipt        `json:"receipt,omitempty"`
	Refund             *Refund         `json:"refund,omitempty"`
	AccountUpdate      json.RawMessage `json:"account_update,omitempty"`
	CreatedAt          string          `json:"created_at,omitempty"`
}

type ExternalAccount struct {
	ID               string `json:"id"`
	CustomerID       string `json:"customer_id,omitempty"`
	BankName         string `json:"bank_name,omitempty"`
	AccountOwnerName string `json:"account_owner_name,omitempty"`
	AccountOwnerType string `json:"account_owner_type,omitempty"`
	AccountType      string `json:"account_type,omitempty"`
	Currency         string `json:"currency,omitempty"`
	Last4            string `json:"last_4,omitempty"`
	Active           bool   `json:"active,omitempty"`
}

type TransferFeatures struct {
	FlexibleAmount      bool `json:"flexible_amount,omitempty"`
	StaticTemplate      bool `json:"static_template,omitempty"`
	AllowAnyFromAddress bool `json:"allow_any_from_address,omitempty"`
}

type Transfer struct {
	ID                        string               `json:"id"`
	ClientReferenceID         string               `json:"client_reference_id,omitempty"`
	State                     string               `json:"state,omitempty"`
	OnBehalfOf                string               `json:"on_behalf_of,omitempty"`
	Amount                    FlexString           `json:"amount,omitempty"`
	Currency                  string               `json:"currency,omitempty"`
	DeveloperFee              FlexString           `json:"developer_fee,omitempty"`
	Source                    *Endpoint            `json:"source,omitempty"`
	Destination               *Endpoint            `json:"destination,omitempty"`
	SourceDepositInstructions *DepositInstructions `json:"source_deposit_instructions,omitempty"`
	Receipt                   *Receipt             `json:"receipt,omitempty"`
	Features                  *TransferFeatures    `json:"features,omitempty"`
	CreatedAt                 string               `json:"created_at,omitempty"`
}

type LiquidationAddress struct {
	ID                     string `json:"id"`
	CustomerID             string `json:"customer_id,omitempty"`
	Chain                  string `json:"chain,omitempty"`
	Address                string `json:"address,omitempty"`
	Currency               string `json:"currency,omitempty"`
	State                  string `json:"state,omitempty"`
	ExternalAccountID      string `json:"external_account_id,omitempty"`
	DestinationPaymentRail string `json:"destination_payment_rail,omitempty"`
	DestinationCurrency    string `json:"destination_currency,omitempty"`
	DestinationAddress     string `json:"destination_address,omitempty"`
}

type Drain struct {
	ID                   string     `json:"id"`
	LiquidationAddressID string     `json:"liquidation_address_id,omitempty"`
	CustomerID           string     `json:"customer_id,omitempty"`
	Amount               FlexString `json:"amount,omitempty"`
	Currency             string     `json:"currency,omitempty"`
	State                string     `json:"state,omitempty"`
	SourcePaymentRail    string     `json:"source_payment_rail,omitempty"`
	FromAddress          string     `json:"from_address,omitempty"`
	Destination          *Endpoint  `json:"destination,omitempty"`
	DepositTxHash        string     `json:"deposit_tx_hash,omitempty"`
	DestinationTxHash    string     `json:"destination_tx_hash,omitempty"`
	Receipt              *Receipt   `json:"receipt,omitempty"`
	CreatedAt            string     `json:"created_at,omitempty"`
}

// ListResponse is the provider's paginated list envelope
type ListResponse[T any] struct {
	Count int `json:"count"`
	Data  []T `json:"data"`
}
