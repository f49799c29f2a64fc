package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

func TestOrderService_ListOrders(t *testing.T) {
	settings := newStubSettingsRepo()
	settings.byShop["demo"] = &domain.ShopSettings{Shop: "demo", AccessToken: "tok"}
	store := &stubStorefront{orders: []domain.Order{{ID: "1", Name: "#1001"}}}
	svc := NewOrderService(settings, store, zerolog.Nop())

	orders, err := svc.ListOrders(context.Background(), "demo", ports.OrderQuery{Status: "open"})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if len(orders) != 1 || orders[0].Name != "#1001" {
		t.Fatalf("unexpected orders: %+v", orders)
	}
}

func TestOrderService_RequiresShop(t *testing.T) {
	svc := NewOrderService(newStubSettingsRepo(), &stubStorefront{}, zerolog.Nop())

	_, err := svc.ListOrders(context.Background(), "", ports.OrderQuery{})
	var mf *domain.MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "shop" {
		t.Fatalf("expected shop error, got %v", err)
	}
}

func TestOrderService_UnknownShop(t *testing.T) {
	svc := NewOrderService(newStubSettingsRepo(), &stubStorefront{}, zerolog.Nop())

	_, err := svc.ListOrders(context.Background(), "missing", ports.OrderQuery{})
	if !errors.Is(err, domain.ErrShopNotConfigured) {
		t.Fatalf("expected shop not configured, got %v", err)
	}
}
