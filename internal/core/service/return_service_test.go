package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/kargopanel/mng-bridge/internal/core/domain"
	"github.com/kargopanel/mng-bridge/internal/core/ports"
)

type stubReturnRepo struct {
	byID map[string]*domain.Return
	seq  int
}

func newStubReturnRepo() *stubReturnRepo {
	return &stubReturnRepo{byID: make(map[string]*domain.Return)}
}

func (r *stubReturnRepo) Create(_ context.Context, ret *domain.Return) error {
	r.seq++
	ret.ID = "ret_" + strconv.Itoa(r.seq)
	clone := *ret
	r.byID[ret.ID] = &clone
	return nil
}

func (r *stubReturnRepo) List(_ context.Context) ([]*domain.Return, error) {
	out := make([]*domain.Return, 0, len(r.byID))
	for _, ret := range r.byID {
		clone := *ret
		out = append(out, &clone)
	}
	return out, nil
}

func (r *stubReturnRepo) FindByID(_ context.Context, id string) (*domain.Return, error) {
	ret, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrReturnNotFound
	}
	clone := *ret
	return &clone, nil
}

func (r *stubReturnRepo) UpdateStatus(_ context.Context, id string, status domain.ReturnStatus) error {
	ret, ok := r.byID[id]
	if !ok {
		return domain.ErrReturnNotFound
	}
	ret.Status = status
	return nil
}

func (r *stubReturnRepo) AttachShipment(_ context.Context, id string, ref domain.ShipmentRef) error {
	ret, ok := r.byID[id]
	if !ok {
		return domain.ErrReturnNotFound
	}
	ret.Shipment = &ref
	return nil
}

func TestReturnService_Create(t *testing.T) {
	repo := newStubReturnRepo()
	svc := NewReturnService(repo, &stubCarrier{}, zerolog.Nop())

	ret, err := svc.Create(context.Background(), ports.CreateReturnInput{
		OrderID: "450789469",
		Reason:  "beden uymadı",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if ret.Status != domain.ReturnRequested {
		t.Errorf("new returns start as requested, got %s", ret.Status)
	}
	if ret.ID == "" {
		t.Errorf("id must be assigned")
	}
}

func TestReturnService_CreateRequiresOrderAndReason(t *testing.T) {
	svc := NewReturnService(newStubReturnRepo(), &stubCarrier{}, zerolog.Nop())

	_, err := svc.Create(context.Background(), ports.CreateReturnInput{Reason: "x"})
	var mf *domain.MissingFieldError
	if !errors.As(err, &mf) || mf.Field != "order" {
		t.Fatalf("expected order error, got %v", err)
	}

	_, err = svc.Create(context.Background(), ports.CreateReturnInput{OrderID: "1"})
	if !errors.As(err, &mf) || mf.Field != "reason" {
		t.Fatalf("expected reason error, got %v", err)
	}
}

func TestReturnService_UpdateStatusFollowsLifecycle(t *testing.T) {
	repo := newStubReturnRepo()
	svc := NewReturnService(repo, &stubCarrier{}, zerolog.Nop())

	ret, err := svc.Create(context.Background(), ports.CreateReturnInput{OrderID: "1", Reason: "r"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for _, status := range []domain.ReturnStatus{domain.ReturnApproved, domain.ReturnShipped, domain.ReturnReceived} {
		ret, err = svc.UpdateStatus(context.Background(), ret.ID, status)
		if err != nil {
			t.Fatalf("transition to %s: %v", status, err)
		}
		if ret.Status != status {
			t.Fatalf("expected %s, got %s", status, ret.Status)
		}
	}
}

func TestReturnService_InvalidTransitionRejected(t *testing.T) {
	repo := newStubReturnRepo()
	svc := NewReturnService(repo, &stubCarrier{}, zerolog.Nop())

	ret, err := svc.Create(context.Background(), ports.CreateReturnInput{OrderID: "1", Reason: "r"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// requested → received skips the lifecycle.
	_, err = svc.UpdateStatus(context.Background(), ret.ID, domain.ReturnReceived)
	if !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	if stored, _ := repo.FindByID(context.Background(), ret.ID); stored.Status != domain.ReturnRequested {
		t.Errorf("status must stay unchanged after a rejected transition, got %s", stored.Status)
	}
}

func TestReturnService_RejectedIsTerminal(t *testing.T) {
	repo := newStubReturnRepo()
	svc := NewReturnService(repo, &stubCarrier{}, zerolog.Nop())

	ret, _ := svc.Create(context.Background(), ports.CreateReturnInput{OrderID: "1", Reason: "r"})
	if _, err := svc.UpdateStatus(context.Background(), ret.ID, domain.ReturnRejected); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if _, err := svc.UpdateStatus(context.Background(), ret.ID, domain.ReturnApproved); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("rejected is terminal, got %v", err)
	}
}

func TestReturnService_UpdateStatusUnknownID(t *testing.T) {
	svc := NewReturnService(newStubReturnRepo(), &stubCarrier{}, zerolog.Nop())

	_, err := svc.UpdateStatus(context.Background(), "missing", domain.ReturnApproved)
	if !errors.Is(err, domain.ErrReturnNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestReturnService_CheckRequiresCriteria(t *testing.T) {
	svc := NewReturnService(newStubReturnRepo(), &stubCarrier{}, zerolog.Nop())

	_, err := svc.Check(context.Background(), ports.TrackQuery{})
	var mf *domain.MissingFieldError
	if !errors.As(err, &mf) {
		t.Fatalf("expected missing criteria error, got %v", err)
	}
}

func TestReturnService_CheckQueriesCarrier(t *testing.T) {
	carrier := &stubCarrier{trackInfo: &ports.TrackInfo{
		TrackingNumber:    "88001122",
		StatusCode:        "DLV",
		StatusDescription: "Teslim edildi",
	}}
	svc := NewReturnService(newStubReturnRepo(), carrier, zerolog.Nop())

	info, err := svc.Check(context.Background(), ports.TrackQuery{ReferenceID: "450789469"})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if info.StatusCode != "DLV" {
		t.Errorf("unexpected info: %+v", info)
	}
}
