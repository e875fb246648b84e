// Package shippo implements the rate and label ports against the Shippo
// REST API. Rates come from POST /shipments; labels from POST /transactions
// with the ZPLII file type, followed by a download of the label payload.
package shippo

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const (
	// DefaultBaseURL is the production Shippo endpoint.
	DefaultBaseURL = "https://api.goshippo.com"

	defaultTimeout      = 20 * time.Second
	defaultEmail        = "no-reply@example.com"
	defaultShipperPhone = "555-555-5555"
)

// SenderAddress is the warehouse address every shipment originates from.
type SenderAddress struct {
	Name    string
	Phone   string
	Email   string
	Address kernel.Address
}

// Config carries the client's connection settings. BaseURL, HTTPClient,
// and Logger are optional.
type Config struct {
	BaseURL    string
	APIKey     string
	Sender     SenderAddress
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client talks to the Shippo API. It implements both ports.RateProvider
// and ports.LabelRenderer.
type Client struct {
	baseURL    string
	apiKey     string
	sender     SenderAddress
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a Shippo API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errs.NewValueIsRequiredError("apiKey")
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     cfg.APIKey,
		sender:     cfg.Sender,
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

var (
	extensionPattern = regexp.MustCompile(`(?i)\s*(ext\.?|extension|x)\s*\d+.*$`)
	phoneCharPattern = regexp.MustCompile(`[^\d\s\-\(\)\+]`)
)

// SanitizePhone strips extensions ("ext. 123", "x123") and any characters
// carriers reject from a phone number.
func SanitizePhone(phone string) string {
	if phone == "" {
		return ""
	}

	phone = extensionPattern.ReplaceAllString(phone, "")
	phone = phoneCharPattern.ReplaceAllString(phone, "")
	return strings.Join(strings.Fields(phone), " ")
}

type addressPayload struct {
	Name    string `json:"name"`
	Street1 string `json:"street1"`
	Street2 string `json:"street2"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

type parcelPayload struct {
	Length       float64 `json:"length"`
	Width        float64 `json:"width"`
	Height       float64 `json:"height"`
	DistanceUnit string  `json:"distance_unit"`
	Weight       float64 `json:"weight"`
	MassUnit     string  `json:"mass_unit"`
}

type shipmentRequest struct {
	AddressFrom addressPayload  `json:"address_from"`
	AddressTo   addressPayload  `json:"address_to"`
	Parcels     []parcelPayload `json:"parcels"`
	Async       bool            `json:"async"`
}

type apiMessage struct {
	Text   string `json:"text"`
	Code   string `json:"code"`
	Source string `json:"source"`
}

type rateObject struct {
	ObjectID     string `json:"object_id"`
	Provider     string `json:"provider"`
	ServiceLevel struct {
		Name string `json:"name"`
	} `json:"servicelevel"`
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

type shipmentResponse struct {
	Rates    []rateObject `json:"rates"`
	Messages []apiMessage `json:"messages"`
}

// GetRates quotes rates for one parcel. Quotes with a malformed amount are
// skipped rather than failing the whole fetch; an empty result is a valid
// answer handled downstream.
func (c *Client) GetRates(ctx context.Context, req ports.RateRequest) ([]shipment.Rate, error) {
	toName := req.ToName
	if toName == "" {
		toName = "Customer"
	}

	payload := shipmentRequest{
		AddressFrom: c.senderAddress(),
		AddressTo: addressPayload{
			Name:    toName,
			Street1: req.ToAddress.Line1,
			Street2: req.ToAddress.Line2,
			City:    req.ToAddress.City,
			State:   req.ToAddress.State,
			Zip:     req.ToAddress.Zip,
			Country: req.ToAddress.CountryOrDefault(),
			Phone:   SanitizePhone(req.ToPhone),
			Email:   defaultEmail,
		},
		Parcels: []parcelPayload{{
			Length:       req.LengthIn,
			Width:        req.WidthIn,
			Height:       req.HeightIn,
			DistanceUnit: "in",
			Weight:       req.Weight.Grams(),
			MassUnit:     "g",
		}},
		Async: false,
	}

	c.logger.Info("requesting rates",
		"to_city", payload.AddressTo.City,
		"to_zip", payload.AddressTo.Zip,
		"weight_grams", payload.Parcels[0].Weight,
	)

	var resp shipmentResponse
	if err := c.post(ctx, "/shipments", payload, &resp); err != nil {
		return nil, err
	}

	for _, msg := range resp.Messages {
		c.logger.Warn("rate message from carrier", "source", msg.Source, "text", msg.Text)
	}

	rates := make([]shipment.Rate, 0, len(resp.Rates))
	for _, r := range resp.Rates {
		amount, err := strconv.ParseFloat(r.Amount, 64)
		if err != nil {
			c.logger.Warn("skipping rate with malformed amount",
				"carrier", r.Provider, "amount", r.Amount)
			continue
		}

		rate, err := shipment.NewRate(r.Provider, r.ServiceLevel.Name, amount, r.Currency, r.ObjectID)
		if err != nil {
			c.logger.Warn("skipping malformed rate", "carrier", r.Provider, "error", err)
			continue
		}
		rates = append(rates, rate)
	}

	c.logger.Info("received rates", "count", len(rates))
	return rates, nil
}

type transactionRequest struct {
	Rate          string `json:"rate"`
	LabelFileType string `json:"label_file_type"`
	Async         bool   `json:"async"`
}

type transactionResponse struct {
	Status         string       `json:"status"`
	LabelURL       string       `json:"label_url"`
	TrackingNumber string       `json:"tracking_number"`
	TrackingURL    string       `json:"tracking_url_provider"`
	Messages       []apiMessage `json:"messages"`
}

// PurchaseLabel buys a ZPLII label for the quoted rate and downloads its
// payload.
func (c *Client) PurchaseLabel(ctx context.Context, rate shipment.Rate) (shipment.Label, error) {
	if rate.PayloadRef() == "" {
		return shipment.Label{}, errs.NewValueIsRequiredError("rate payload reference")
	}

	c.logger.Info("purchasing label",
		"carrier", rate.Carrier(), "service", rate.Service(), "rate", rate.PayloadRef())

	var resp transactionResponse
	err := c.post(ctx, "/transactions", transactionRequest{
		Rate:          rate.PayloadRef(),
		LabelFileType: "ZPLII",
		Async:         false,
	}, &resp)
	if err != nil {
		return shipment.Label{}, err
	}

	if resp.Status != "SUCCESS" {
		return shipment.Label{}, fmt.Errorf("label transaction status %q: %s",
			resp.Status, joinMessages(resp.Messages))
	}

	if resp.LabelURL == "" {
		return shipment.Label{}, errors.New("label transaction succeeded without a label URL")
	}

	payload, err := c.download(ctx, resp.LabelURL)
	if err != nil {
		return shipment.Label{}, fmt.Errorf("download label: %w", err)
	}

	c.logger.Info("label purchased",
		"tracking_number", resp.TrackingNumber, "bytes", len(payload))

	return shipment.Label{
		Payload:        payload,
		TrackingNumber: resp.TrackingNumber,
		TrackingURL:    resp.TrackingURL,
	}, nil
}

func (c *Client) senderAddress() addressPayload {
	phone := c.sender.Phone
	if phone == "" {
		phone = defaultShipperPhone
	}

	email := c.sender.Email
	if email == "" {
		email = defaultEmail
	}

	return addressPayload{
		Name:    c.sender.Name,
		Street1: c.sender.Address.Line1,
		Street2: c.sender.Address.Line2,
		City:    c.sender.Address.City,
		State:   c.sender.Address.State,
		Zip:     c.sender.Address.Zip,
		Country: c.sender.Address.CountryOrDefault(),
		Phone:   phone,
		Email:   email,
	}
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "ShippoToken "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("shippo %s returned %d: %s", path, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

func joinMessages(messages []apiMessage) string {
	if len(messages) == 0 {
		return "unknown error"
	}

	parts := make([]string, 0, len(messages))
	for _, m := range messages {
		text := m.Text
		if m.Source != "" {
			text = m.Source + ": " + text
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "; ")
}
