package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

type stubReturnService struct {
	lastQuery ports.TrackQuery
	info      *ports.TrackInfo
	checkErr  error
}

func (s *stubReturnService) Create(_ context.Context, input ports.CreateReturnInput) (*domain.Return, error) {
	return &domain.Return{OrderID: input.OrderID, Reason: input.Reason, Status: domain.ReturnRequested}, nil
}

func (s *stubReturnService) List(_ context.Context) ([]*domain.Return, error) {
	return nil, nil
}

func (s *stubReturnService) UpdateStatus(_ context.Context, id string, status domain.ReturnStatus) (*domain.Return, error) {
	return &domain.Return{ID: id, Status: status}, nil
}

func (s *stubReturnService) Check(_ context.Context, q ports.TrackQuery) (*ports.TrackInfo, error) {
	s.lastQuery = q
	if s.checkErr != nil {
		return nil, s.checkErr
	}
	return s.info, nil
}

func TestReturnHandler_CheckReadsCriteriaFromBody(t *testing.T) {
	svc := &stubReturnService{info: &ports.TrackInfo{
		TrackingNumber:    "88001122",
		StatusCode:        "DLV",
		StatusDescription: "Teslim edildi",
	}}
	h := NewReturnHandler(svc)

	c, rec := newTestContext(http.MethodPost, "/returns/check",
		`{"referenceId":"BRYSL0001","invoiceNumber":"INV-42"}`)

	if err := h.Check(c); err != nil {
		t.Fatalf("check: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if svc.lastQuery.ReferenceID != "BRYSL0001" || svc.lastQuery.InvoiceNumber != "INV-42" {
		t.Errorf("criteria not mapped from body: %+v", svc.lastQuery)
	}

	var resp returnCheckResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.StatusCode != "DLV" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestReturnHandler_CheckPropagatesDomainErrors(t *testing.T) {
	svc := &stubReturnService{checkErr: domain.ErrCarrierUnavailable}
	h := NewReturnHandler(svc)

	c, _ := newTestContext(http.MethodPost, "/returns/check", `{"barcode":"450789469_1"}`)
	if err := h.Check(c); err != domain.ErrCarrierUnavailable {
		t.Fatalf("domain errors must reach the central error handler, got %v", err)
	}
}
