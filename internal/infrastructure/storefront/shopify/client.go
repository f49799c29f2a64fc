// Package shopify implements the outbound client for the Shopify admin API:
// order listings and fulfillment creation. Credentials are per shop and
// passed on every call.
package shopify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

const (
	apiVersion     = "2024-01"
	defaultTimeout = 15 * time.Second
)

// Client talks to the Shopify admin REST API.
type Client struct {
	http *http.Client
	log  zerolog.Logger
}

func NewClient(timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// ListOrders implements ports.StorefrontClient.
func (c *Client) ListOrders(ctx context.Context, settings domain.ShopSettings, q ports.OrderQuery) ([]domain.Order, error) {
	params := url.Values{}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.FinancialStatus != "" {
		params.Set("financial_status", q.FinancialStatus)
	}
	if q.FulfillmentStatus != "" {
		params.Set("fulfillment_status", q.FulfillmentStatus)
	}
	if q.Limit > 0 {
		params.Set("limit", strconv.Itoa(q.Limit))
	}

	endpoint := adminURL(settings.Shop, "/orders.json")
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var resp ordersResponse
	if err := c.do(ctx, settings, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	orders := make([]domain.Order, len(resp.Orders))
	for i, o := range resp.Orders {
		orders[i] = toOrder(o)
	}
	return orders, nil
}

// CreateFulfillment implements ports.StorefrontClient.
func (c *Client) CreateFulfillment(ctx context.Context, settings domain.ShopSettings, orderID, trackingNumber string) error {
	endpoint := adminURL(settings.Shop, "/orders/"+url.PathEscape(orderID)+"/fulfillments.json")
	body := fulfillmentRequest{}
	body.Fulfillment.TrackingNumber = trackingNumber
	body.Fulfillment.NotifyCustomer = true
	return c.do(ctx, settings, http.MethodPost, endpoint, body, nil)
}

func (c *Client) do(ctx context.Context, settings domain.ShopSettings, method, endpoint string, body, out any) error {
	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("shopify: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("shopify: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", settings.AccessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("shopify: %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn().Int("status", resp.StatusCode).Str("shop", settings.Shop).Bytes("body", msg).Msg("shopify request rejected")
		return fmt.Errorf("shopify: %s %s: %s", method, endpoint, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("shopify: decode response: %w", err)
		}
	}
	return nil
}

// adminURL builds the admin API endpoint for a shop domain. The shop value
// may or may not carry the .myshopify.com suffix.
func adminURL(shop, path string) string {
	host := shop
	if !strings.Contains(host, ".") {
		host += ".myshopify.com"
	}
	return "https://" + host + "/admin/api/" + apiVersion + path
}

// --- wire types ---

type ordersResponse struct {
	Orders []orderResponse `json:"orders"`
}

type orderResponse struct {
	ID              int64               `json:"id"`
	Name            string              `json:"name"`
	TotalPrice      string              `json:"total_price"`
	Currency        string              `json:"currency"`
	CreatedAt       time.Time           `json:"created_at"`
	Customer        customerResponse    `json:"customer"`
	ShippingAddress shipAddressResponse `json:"shipping_address"`
	LineItems       []lineItemResponse  `json:"line_items"`
}

type customerResponse struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

type shipAddressResponse struct {
	Address1 string `json:"address1"`
	Address2 string `json:"address2"`
	City     string `json:"city"`
	Province string `json:"province"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
}

type lineItemResponse struct {
	Title    string `json:"title"`
	Quantity int    `json:"quantity"`
}

type fulfillmentRequest struct {
	Fulfillment struct {
		TrackingNumber string `json:"tracking_number"`
		NotifyCustomer bool   `json:"notify_customer"`
	} `json:"fulfillment"`
}

func toOrder(o orderResponse) domain.Order {
	items := make([]domain.LineItem, len(o.LineItems))
	for i, li := range o.LineItems {
		items[i] = domain.LineItem{Title: li.Title, Quantity: li.Quantity}
	}
	return domain.Order{
		ID:         strconv.FormatInt(o.ID, 10),
		Name:       o.Name,
		TotalPrice: o.TotalPrice,
		Currency:   o.Currency,
		CreatedAt:  o.CreatedAt,
		Customer: domain.Customer{
			ID:    strconv.FormatInt(o.Customer.ID, 10),
			Name:  strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName),
			Email: o.Customer.Email,
		},
		ShippingAddress: domain.OrderAddress{
			Address1: o.ShippingAddress.Address1,
			Address2: o.ShippingAddress.Address2,
			City:     o.ShippingAddress.City,
			Province: o.ShippingAddress.Province,
			Phone:    o.ShippingAddress.Phone,
			Company:  o.ShippingAddress.Company,
		},
		LineItems: items,
	}
}
