package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// PayPalGateway speaks the classic payments API: one POST creates the
// payment and the response links carry the buyer approval redirect.
type PayPalGateway struct {
	baseURL    string
	clientID   string
	secret     string
	httpClient *http.Client
}

func NewPayPalGateway(baseURL, clientID, secret string, timeout time.Duration) *PayPalGateway {
	return &PayPalGateway{
		baseURL:    baseURL,
		clientID:   clientID,
		secret:     secret,
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (g *PayPalGateway) CreatePaymentIntent(ctx context.Context, intent PaymentIntent) (*Approval, error) {
	items := make([]map[string]any, 0, len(intent.Items))
	for _, it := range intent.Items {
		items = append(items, map[string]any{
			"name":     it.Name,
			"sku":      it.SKU,
			"price":    it.Price.StringFixed(2),
			"currency": it.Currency,
			"quantity": it.Quantity,
		})
	}

	payload := map[string]any{
		"intent": "sale",
		"payer":  map[string]any{"payment_method": "paypal"},
		"redirect_urls": map[string]any{
			"return_url": intent.ReturnURL,
			"cancel_url": intent.CancelURL,
		},
		"transactions": []map[string]any{
			{
				"item_list": map[string]any{"items": items},
				"amount": map[string]any{
					"currency": intent.Currency,
					"total":    intent.Total.StringFixed(2),
				},
				"description": intent.Description,
			},
		},
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/payments/payment", bytes.NewReader(payloadJSON))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(g.clientID, g.secret)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	var result struct {
		Links []struct {
			Href string `json:"href"`
			Rel  string `json:"rel"`
		} `json:"links"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	for _, link := range result.Links {
		if link.Rel == "approval_url" {
			return &Approval{ApprovalURL: link.Href}, nil
		}
	}
	return nil, ErrMissingApprovalLink
}
