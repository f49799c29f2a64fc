// Package mng implements the outbound client for the MNG Kargo API: the
// CBS city/district directory, shipment creation, and shipment status
// queries.
package mng

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

const defaultTimeout = 15 * time.Second

// tokenSlack renews the carrier token this long before its reported expiry.
const tokenSlack = 30 * time.Second

// Config captures the MNG API gateway settings.
type Config struct {
	BaseURL        string
	APIKey         string
	APISecret      string
	CustomerNumber string
	Password       string
	Timeout        time.Duration
}

// Client talks to the MNG Kargo API gateway. Safe for concurrent use; the
// bearer token is cached until shortly before expiry.
type Client struct {
	cfg  Config
	http *http.Client
	log  zerolog.Logger

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: timeout},
		log:  log,
	}
}

// ListCities implements ports.GeoDirectory.
func (c *Client) ListCities(ctx context.Context) ([]domain.GeoEntry, error) {
	var entries []geoEntryResponse
	if err := c.do(ctx, http.MethodGet, "/cbsinfoapi/getcities", nil, &entries); err != nil {
		return nil, err
	}
	return toGeoEntries(entries), nil
}

// ListDistricts implements ports.GeoDirectory. The list is scoped to the
// given city code.
func (c *Client) ListDistricts(ctx context.Context, cityCode string) ([]domain.GeoEntry, error) {
	var entries []geoEntryResponse
	path := "/cbsinfoapi/getdistricts/" + url.PathEscape(cityCode)
	if err := c.do(ctx, http.MethodGet, path, nil, &entries); err != nil {
		return nil, err
	}
	return toGeoEntries(entries), nil
}

// CreateShipment implements ports.CarrierClient.
func (c *Client) CreateShipment(ctx context.Context, req domain.ShipmentRequest) (*domain.ShipmentResult, error) {
	var resp createOrderResponse
	if err := c.do(ctx, http.MethodPost, "/standardcmdapi/createOrder", createOrderRequest{Order: req}, &resp); err != nil {
		return nil, err
	}
	return &domain.ShipmentResult{
		TrackingNumber: resp.TrackingNumber,
		LabelURL:       resp.LabelURL,
		Barcode:        resp.Barcode,
	}, nil
}

// Track implements ports.CarrierClient.
func (c *Client) Track(ctx context.Context, q ports.TrackQuery) (*ports.TrackInfo, error) {
	params := url.Values{}
	switch {
	case q.ReferenceID != "":
		params.Set("referenceId", q.ReferenceID)
	case q.ShipmentID != "":
		params.Set("shipmentId", q.ShipmentID)
	case q.InvoiceNumber != "":
		params.Set("invoiceNumber", q.InvoiceNumber)
	case q.Barcode != "":
		params.Set("barcode", q.Barcode)
	}

	var resp trackResponse
	if err := c.do(ctx, http.MethodGet, "/standardqueryapi/getshipmentstatus?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return &ports.TrackInfo{
		TrackingNumber:    resp.TrackingNumber,
		StatusCode:        resp.StatusCode,
		StatusDescription: resp.StatusDescription,
	}, nil
}

// do performs one authenticated request. Transport failures and non-2xx
// responses are wrapped in domain.ErrCarrierUnavailable so callers can treat
// the carrier as a degraded, retryable dependency.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	token, err := c.bearerToken(ctx)
	if err != nil {
		return err
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mng: encode request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.cfg.BaseURL+path, payload)
	if err != nil {
		return fmt.Errorf("mng: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-IBM-Client-Id", c.cfg.APIKey)
	req.Header.Set("X-IBM-Client-Secret", c.cfg.APISecret)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Warn().Int("status", resp.StatusCode).Str("path", path).Bytes("body", msg).Msg("carrier request rejected")
		return fmt.Errorf("%w: %s %s: %s", domain.ErrCarrierUnavailable, method, path, resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("%w: decode response: %v", domain.ErrCarrierUnavailable, err)
		}
	}
	return nil
}

// bearerToken returns the cached gateway token, renewing it when expired.
func (c *Client) bearerToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp.Add(-tokenSlack)) {
		return c.token, nil
	}

	raw, err := json.Marshal(tokenRequest{
		CustomerNumber: c.cfg.CustomerNumber,
		Password:       c.cfg.Password,
		IdentityType:   1,
	})
	if err != nil {
		return "", fmt.Errorf("mng: encode token request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/token", bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("mng: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-IBM-Client-Id", c.cfg.APIKey)
	req.Header.Set("X-IBM-Client-Secret", c.cfg.APISecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: token: %v", domain.ErrCarrierUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: token: %s", domain.ErrCarrierUnavailable, resp.Status)
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", fmt.Errorf("%w: decode token: %v", domain.ErrCarrierUnavailable, err)
	}

	c.token = tok.JWT
	c.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	c.log.Debug().Time("expires", c.tokenExp).Msg("carrier token renewed")
	return c.token, nil
}

// --- wire types ---

type tokenRequest struct {
	CustomerNumber string `json:"customerNumber"`
	Password       string `json:"password"`
	IdentityType   int    `json:"identityType"`
}

type tokenResponse struct {
	JWT       string `json:"jwt"`
	ExpiresIn int    `json:"expiresIn"`
}

type geoEntryResponse struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

func toGeoEntries(in []geoEntryResponse) []domain.GeoEntry {
	out := make([]domain.GeoEntry, len(in))
	for i, e := range in {
		out[i] = domain.GeoEntry{Code: e.Code, Name: e.Name}
	}
	return out
}

type createOrderRequest struct {
	Order domain.ShipmentRequest `json:"order"`
}

type createOrderResponse struct {
	TrackingNumber string `json:"trackingNumber"`
	LabelURL       string `json:"labelUrl"`
	Barcode        string `json:"barcode"`
}

type trackResponse struct {
	TrackingNumber    string `json:"trackingNumber"`
	StatusCode        string `json:"statusCode"`
	StatusDescription string `json:"statusDescription"`
}
