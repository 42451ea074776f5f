package entities

// Receipt is the settlement breakdown the provider attaches once funds move.
// Amounts are decimal strings exactly as the provider sends them.
type Receipt struct {
	InitialAmount     string `json:"initialAmount,omitempty"`
	DeveloperFee      string `json:"developerFee,omitempty"`
	ExchangeFee       string `json:"exchangeFee,omitempty"`
	SubtotalAmount    string `json:"subtotalAmount,omitempty"`
	GasFee            string `json:"gasFee,omitempty"`
	FinalAmount       string `json:"finalAmount,omitempty"`
	ExchangeRate      string `json:"exchangeRate,omitempty"`
	SourceTxHash      string `json:"sourceTxHash,omitempty"`
	DestinationTxHash string `json:"destinationTxHash,omitempty"`
	URL               string `json:"url,omitempty"`
}

// DepositInstructions tells the payer where to send funds
type DepositInstructions struct {
	PaymentRail         string   `json:"paymentRail,omitempty"`
	PaymentRails        []string `json:"paymentRails,omitempty"`
	Currency            string   `json:"currency,omitempty"`
	Amount              string   `json:"amount,omitempty"`
	DepositMessage      string   `json:"depositMessage,omitempty"`
	BankName            string   `json:"bankName,omitempty"`
	BankAddress         string   `json:"bankAddress,omitempty"`
	BankRoutingNumber   string   `json:"bankRoutingNumber,omitempty"`
	BankAccountNumber   string   `json:"bankAccountNumber,omitempty"`
	BankBeneficiaryName string   `json:"bankBeneficiaryName,omitempty"`
	IBAN                string   `json:"iban,omitempty"`
	BIC                 string   `json:"bic,omitempty"`
	ToAddress           string   `json:"toAddress,omitempty"`
	FromAddress         string   `json:"fromAddress,omitempty"`
}

// Endpoint describes one side of a money movement
type Endpoint struct {
	PaymentRail       string `json:"paymentRail,omitempty"`
	Currency          string `json:"currency,omitempty"`
	ExternalAccountID string `json:"externalAccountId,omitempty"`
	WalletID          string `json:"walletId,omitempty"`
	FromAddress       string `json:"fromAddress,omitempty"`
	ToAddress         string `json:"toAddress,omitempty"`
	Description       string `json:"description,omitempty"`
	SenderName        string `json:"senderName,omitempty"`
	RoutingNumber     string `json:"routingNumber,omitempty"`
	TraceNumber       string `json:"traceNumber,omitempty"`
	WireMessage       string `json:"wireMessage,omitempty"`
}
