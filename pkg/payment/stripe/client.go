package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client is a minimal Stripe API client covering the checkout flow.
// The API is form-encoded on the way in and JSON on the way out.
type Client struct {
	config     Config
	httpClient *http.Client
}

// NewClient creates a new Stripe client with the given configuration
func NewClient(config Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: 30 * time.Second,
	}

	return &Client{
		config:     config,
		httpClient: httpClient,
	}, nil
}

// GetConfig returns the client configuration
func (c *Client) GetConfig() Config {
	return c.config
}

// CreateCheckoutSession creates a hosted checkout session and returns its
// id and redirect URL. Failure is terminal; the caller does not retry.
func (c *Client) CreateCheckoutSession(ctx context.Context, params CheckoutSessionParams) (*CheckoutSession, error) {
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("payment_method_types[0]", "card")

	successURL := params.SuccessURL
	if successURL == "" {
		successURL = c.config.SuccessURL
	}
	cancelURL := params.CancelURL
	if cancelURL == "" {
		cancelURL = c.config.CancelURL
	}
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)

	if params.CustomerEmail != "" {
		form.Set("customer_email", params.CustomerEmail)
	}
	if params.ClientUserID != "" {
		form.Set("metadata[userId]", params.ClientUserID)
	}

	for i, item := range params.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		form.Set(prefix+"[price_data][currency]", "usd")
		form.Set(prefix+"[price_data][product_data][name]", item.Name)
		if item.Description != "" {
			form.Set(prefix+"[price_data][product_data][description]", item.Description)
		}
		if item.ImageURL != "" {
			form.Set(prefix+"[price_data][product_data][images][0]", item.ImageURL)
		}
		form.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(item.UnitAmount, 10))
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		form.Set(prefix+"[quantity]", strconv.Itoa(quantity))
	}

	for i, country := range params.AllowedCountries {
		form.Set(fmt.Sprintf("shipping_address_collection[allowed_countries][%d]", i), country)
	}

	for i, opt := range params.ShippingOptions {
		prefix := fmt.Sprintf("shipping_options[%d][shipping_rate_data]", i)
		form.Set(prefix+"[type]", "fixed_amount")
		form.Set(prefix+"[fixed_amount][amount]", strconv.FormatInt(opt.AmountCents, 10))
		form.Set(prefix+"[fixed_amount][currency]", "usd")
		form.Set(prefix+"[display_name]", opt.DisplayName)
		form.Set(prefix+"[delivery_estimate][minimum][unit]", "business_day")
		form.Set(prefix+"[delivery_estimate][minimum][value]", strconv.Itoa(opt.MinDays))
		form.Set(prefix+"[delivery_estimate][maximum][unit]", "business_day")
		form.Set(prefix+"[delivery_estimate][maximum][value]", strconv.Itoa(opt.MaxDays))
	}

	body, err := c.doRequest(ctx, http.MethodPost, "/v1/checkout/sessions", form)
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	var session CheckoutSession
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session response: %w", err)
	}

	return &session, nil
}

// ListLineItems fetches the line items recorded on a checkout session
func (c *Client) ListLineItems(ctx context.Context, sessionID string) (*LineItemList, error) {
	path := fmt.Sprintf("/v1/checkout/sessions/%s/line_items", url.PathEscape(sessionID))

	body, err := c.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list line items: %w", err)
	}

	var list LineItemList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal line item list: %w", err)
	}

	return &list, nil
}

// doRequest performs an HTTP request against the Stripe API
func (c *Client) doRequest(ctx context.Context, method, path string, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, c.config.BaseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.config.SecretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
		}

		errorMsg := fmt.Sprintf("Stripe API error - Status: %d, Type: %s, Code: %s, Message: %s",
			resp.StatusCode, errResp.Error.Type, errResp.Error.Code, errResp.Error.Message)

		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return nil, fmt.Errorf("%w: %s", ErrUnauthorized, errorMsg)
		case http.StatusBadRequest:
			return nil, fmt.Errorf("%w: %s", ErrInvalidRequest, errorMsg)
		default:
			return nil, fmt.Errorf("%w: %s", ErrSessionFailed, errorMsg)
		}
	}

	return body, nil
}
