package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
)

func TestSettingsService_SaveAndGet(t *testing.T) {
	repo := newStubSettingsRepo()
	svc := NewSettingsService(repo, zerolog.Nop())

	saved, err := svc.Save(context.Background(), domain.ShopSettings{
		Shop:        "demo",
		APIKey:      "key",
		APISecret:   "secret",
		AccessToken: "tok",
		AutoFulfill: true,
	})
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if saved.UpdatedAt.IsZero() {
		t.Errorf("updated_at must be stamped")
	}

	got, err := svc.Get(context.Background(), "demo")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.AutoFulfill || got.APIKey != "key" {
		t.Errorf("unexpected settings: %+v", got)
	}
}

func TestSettingsService_SaveValidatesFields(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo(), zerolog.Nop())

	cases := []struct {
		name     string
		settings domain.ShopSettings
		field    string
	}{
		{"no shop", domain.ShopSettings{APIKey: "k", APISecret: "s"}, "shop"},
		{"no api key", domain.ShopSettings{Shop: "demo", APISecret: "s"}, "api key"},
		{"no api secret", domain.ShopSettings{Shop: "demo", APIKey: "k"}, "api secret"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Save(context.Background(), tc.settings)
			var mf *domain.MissingFieldError
			if !errors.As(err, &mf) || mf.Field != tc.field {
				t.Fatalf("expected %q error, got %v", tc.field, err)
			}
		})
	}
}

func TestSettingsService_GetUnknownShop(t *testing.T) {
	svc := NewSettingsService(newStubSettingsRepo(), zerolog.Nop())

	_, err := svc.Get(context.Background(), "missing")
	if !errors.Is(err, domain.ErrShopNotConfigured) {
		t.Fatalf("expected shop not configured, got %v", err)
	}
}
