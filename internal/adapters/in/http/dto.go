package http

import "time"

// Error is the JSON error envelope returned by every endpoint.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// WebhookOrder is the shop's order payload. Field names follow the
// webhook wire format, which is why they differ from the domain's.
type WebhookOrder struct {
	ID              string             `json:"id"`
	Name            string             `json:"name"`
	Email           string             `json:"email"`
	Phone           string             `json:"phone"`
	Customer        *WebhookCustomer   `json:"customer"`
	ShippingAddress *WebhookAddress    `json:"shipping_address"`
	LineItems       []WebhookLineItem  `json:"line_items"`
}

// WebhookCustomer is the customer block inside an order webhook.
type WebhookCustomer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// WebhookAddress is the shipping address block inside an order webhook.
type WebhookAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province_code"`
	Zip      string `json:"zip"`
	Country  string `json:"country_code"`
	Phone    string `json:"phone"`
}

// WebhookLineItem is one line inside an order webhook. Grams is the unit
// weight; Price is the unit price as the shop sends it, a decimal string.
type WebhookLineItem struct {
	SKU              string  `json:"sku"`
	Title            string  `json:"title"`
	Quantity         int     `json:"quantity"`
	Price            string  `json:"price"`
	Grams            float64 `json:"grams"`
	RequiresShipping bool    `json:"requires_shipping"`
}

// ImportOrderResponse confirms a webhook ingest.
type ImportOrderResponse struct {
	OrderID string `json:"order_id"`
}

// FailedOrder is one row in the failed orders listing.
type FailedOrder struct {
	ID            string `json:"id"`
	ShopOrderID   string `json:"shop_order_id"`
	Name          string `json:"name"`
	FailureKind   string `json:"failure_kind"`
	FailureDetail string `json:"failure_detail"`
}

// ImportedOrder is one row in the import backlog listing.
type ImportedOrder struct {
	ID          string `json:"id"`
	ShopOrderID string `json:"shop_order_id"`
	Name        string `json:"name"`
	LineCount   int    `json:"line_count"`
}

// PrintJobView is one row in the print queue listing.
type PrintJobView struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"order_id"`
	State       string    `json:"state"`
	ClaimedBy   string    `json:"claimed_by,omitempty"`
	Attempts    int       `json:"attempts"`
	ErrorDetail string    `json:"error_detail,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// AgentJob is one claimed job handed to a polling print agent. LabelData
// is base64 in transit.
type AgentJob struct {
	JobID       string `json:"job_id"`
	OrderID     string `json:"order_id"`
	LabelData   []byte `json:"label_data"`
	LabelFormat string `json:"label_format"`
	Attempt     int    `json:"attempt"`
}

// AgentPollResponse is the poll envelope for the print agent.
type AgentPollResponse struct {
	Jobs []AgentJob `json:"jobs"`
}

// AgentCompleteRequest is a print agent's completion report.
type AgentCompleteRequest struct {
	JobID   string `json:"job_id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
