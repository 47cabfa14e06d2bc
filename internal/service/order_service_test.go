package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/events"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	apperrors "github.com/spec-kit/lifecycle-service/pkg/util"
)

type orderFixture struct {
	service       *OrderService
	orders        *fakeOrderRepo
	campaigns     *fakeCampaignRepo
	providers     *fakeProviderRepo
	stateChanges  *fakeStateChangeRepo
	notifications *fakeNotificationRepo
	dispatcher    *fakeDispatcher
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		orders:        newFakeOrderRepo(),
		campaigns:     newFakeCampaignRepo(),
		providers:     newFakeProviderRepo(),
		stateChanges:  &fakeStateChangeRepo{},
		notifications: &fakeNotificationRepo{},
		dispatcher:    &fakeDispatcher{},
	}
	f.service = NewOrderService(OrderDependencies{
		OrderRepo:        f.orders,
		CampaignRepo:     f.campaigns,
		ProviderRepo:     f.providers,
		StateChangeRepo:  f.stateChanges,
		NotificationRepo: f.notifications,
		Dispatcher:       f.dispatcher,
		Clock:            fixedClock{now: testNow},
	})
	return f
}

func TestCreateOrderGeneratesExternalKey(t *testing.T) {
	f := newOrderFixture()
	f.campaigns.campaigns["campaign-1"] = &domain.Campaign{ID: "campaign-1", Name: "Lanzamiento"}

	order, err := f.service.CreateOrder(context.Background(), OrderCreateInput{
		CampaignID:  "campaign-1",
		Description: "Impresion de vallas",
	})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.State != domain.OrderStateRequested {
		t.Fatalf("expected solicitada, got %s", order.State)
	}
	if !strings.HasPrefix(order.ExternalKey, "ORD-") || len(order.ExternalKey) != 12 {
		t.Fatalf("unexpected external key %q", order.ExternalKey)
	}
}

func TestCreateOrderRejectsInactiveProvider(t *testing.T) {
	f := newOrderFixture()
	f.campaigns.campaigns["campaign-1"] = &domain.Campaign{ID: "campaign-1", Name: "Lanzamiento"}
	f.providers.providers["provider-1"] = &domain.Provider{ID: "provider-1", Name: "Imprenta", IsActive: false}
	providerID := "provider-1"

	_, err := f.service.CreateOrder(context.Background(), OrderCreateInput{
		CampaignID:  "campaign-1",
		ProviderID:  &providerID,
		Description: "Impresion de vallas",
	})
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListOrdersPersistsOverdueTransition(t *testing.T) {
	f := newOrderFixture()
	pastDue := testNow.AddDate(0, 0, -2)
	f.orders.listRows = []domain.Order{{
		ID:                    "order-1",
		ExternalKey:           "ORD-AAAA0001",
		State:                 domain.OrderStateShipping,
		StateEnteredAt:        testNow.AddDate(0, 0, -1),
		EstimatedDeliveryDate: &pastDue,
	}}

	rows, results, err := f.service.ListOrders(context.Background(), repository.OrderFilter{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if rows[0].State != domain.OrderStateOverdue {
		t.Fatalf("expected atrasada, got %s", rows[0].State)
	}
	if len(results) != 1 || results[0].From != "envio" || results[0].To != "atrasada" {
		t.Fatalf("unexpected results: %+v", results)
	}

	if len(f.orders.patches["order-1"]) != 1 {
		t.Fatalf("expected one state patch")
	}
	if len(f.stateChanges.records) != 1 || f.stateChanges.records[0].Comment != "auto" {
		t.Fatalf("expected an automatic audit record")
	}
	if len(f.notifications.notifications) != 1 || f.notifications.notifications[0].Severity != domain.SeverityCritical {
		t.Fatalf("overdue notification must be critical")
	}
	if len(f.dispatcher.published) != 1 || f.dispatcher.published[0].Type != events.EventOrderOverdue {
		t.Fatalf("expected an overdue event")
	}
}

func TestListOrdersDurationAdvancementPublishesStateChange(t *testing.T) {
	f := newOrderFixture()
	f.orders.listRows = []domain.Order{{
		ID:             "order-1",
		ExternalKey:    "ORD-AAAA0002",
		State:          domain.OrderStateQuality,
		StateEnteredAt: testNow.AddDate(0, 0, -2),
	}}

	rows, _, err := f.service.ListOrders(context.Background(), repository.OrderFilter{})
	if err != nil {
		t.Fatalf("list orders: %v", err)
	}
	if rows[0].State != domain.OrderStateShipping {
		t.Fatalf("expected envio, got %s", rows[0].State)
	}
	if len(f.dispatcher.published) != 1 || f.dispatcher.published[0].Type != events.EventOrderStateChanged {
		t.Fatalf("expected a state changed event")
	}
}

func TestListOrdersCollectsPersistenceFailures(t *testing.T) {
	f := newOrderFixture()
	dbErr := errors.New("connection reset")
	f.orders.updateErrs["order-1"] = dbErr
	pastDue := testNow.AddDate(0, 0, -1)
	f.orders.listRows = []domain.Order{{
		ID:                    "order-1",
		ExternalKey:           "ORD-AAAA0003",
		State:                 domain.OrderStateProduction,
		StateEnteredAt:        testNow,
		EstimatedDeliveryDate: &pastDue,
	}}

	rows, results, err := f.service.ListOrders(context.Background(), repository.OrderFilter{})
	if err != nil {
		t.Fatalf("per-entity failures must not fail the pass: %v", err)
	}
	if rows[0].State != domain.OrderStateOverdue {
		t.Fatalf("returned row must carry the intended state")
	}
	if len(results) != 1 || !errors.Is(results[0].Err, dbErr) {
		t.Fatalf("result must carry the write error, got %+v", results)
	}
}

// A failed write leaves the stored row stale, so the next pass re-evaluates
// and re-records the same transition. The design accepts this duplicate audit
// rather than coordinating passes.
func TestListOrdersRepeatedPassDuplicatesAudit(t *testing.T) {
	f := newOrderFixture()
	pastDue := testNow.AddDate(0, 0, -2)
	stale := domain.Order{
		ID:                    "order-1",
		ExternalKey:           "ORD-AAAA0004",
		State:                 domain.OrderStateShipping,
		StateEnteredAt:        testNow.AddDate(0, 0, -1),
		EstimatedDeliveryDate: &pastDue,
	}
	f.orders.listRows = []domain.Order{stale}

	for pass := 0; pass < 2; pass++ {
		rows, _, err := f.service.ListOrders(context.Background(), repository.OrderFilter{})
		if err != nil {
			t.Fatalf("pass %d: %v", pass, err)
		}
		if rows[0].State != domain.OrderStateOverdue {
			t.Fatalf("pass %d: expected atrasada", pass)
		}
	}

	if len(f.orders.patches["order-1"]) != 2 {
		t.Fatalf("expected both passes to write, got %d", len(f.orders.patches["order-1"]))
	}
	if len(f.stateChanges.records) != 2 {
		t.Fatalf("expected duplicated audit records, got %d", len(f.stateChanges.records))
	}
	for _, record := range f.stateChanges.records {
		if record.NewState != "atrasada" {
			t.Fatalf("both records must converge on atrasada, got %s", record.NewState)
		}
	}
}

func TestOrderChangeStateDeliveredStampsTimestamp(t *testing.T) {
	f := newOrderFixture()
	f.orders.orders["order-1"] = &domain.Order{
		ID:          "order-1",
		ExternalKey: "ORD-AAAA0005",
		State:       domain.OrderStateShipping,
	}

	order, err := f.service.ChangeState(context.Background(), nil, "order-1", domain.OrderStateDelivered, "recibido conforme")
	if err != nil {
		t.Fatalf("deliver order: %v", err)
	}
	if order.DeliveredAt == nil || !order.DeliveredAt.Equal(testNow) {
		t.Fatalf("delivery must stamp the delivered timestamp")
	}
}

func TestOrderChangeStateClosedStampsTimestamp(t *testing.T) {
	f := newOrderFixture()
	f.orders.orders["order-1"] = &domain.Order{
		ID:          "order-1",
		ExternalKey: "ORD-AAAA0006",
		State:       domain.OrderStateBilling,
	}

	order, err := f.service.ChangeState(context.Background(), nil, "order-1", domain.OrderStateClosed, "")
	if err != nil {
		t.Fatalf("close order: %v", err)
	}
	if order.ClosedAt == nil || !order.ClosedAt.Equal(testNow) {
		t.Fatalf("closing must stamp the closed timestamp")
	}
}

func TestOrderChangeStateOffPathCancel(t *testing.T) {
	f := newOrderFixture()
	f.orders.orders["order-1"] = &domain.Order{
		ID:          "order-1",
		ExternalKey: "ORD-AAAA0007",
		State:       domain.OrderStateQuality,
	}

	order, err := f.service.ChangeState(context.Background(), nil, "order-1", domain.OrderStateCancelled, "cliente desistio")
	if err != nil {
		t.Fatalf("cancel order: %v", err)
	}
	if order.State != domain.OrderStateCancelled {
		t.Fatalf("expected cancelada, got %s", order.State)
	}
}

func TestOrderChangeStateValidatesPreconditions(t *testing.T) {
	f := newOrderFixture()
	f.orders.orders["order-1"] = &domain.Order{
		ID:          "order-1",
		ExternalKey: "ORD-AAAA0008",
		State:       domain.OrderStateApproved,
	}

	_, err := f.service.ChangeState(context.Background(), nil, "order-1", domain.OrderStateProduction, "")
	if !apperrors.IsValidation(err) {
		t.Fatalf("expected validation error without materiales_listos, got %v", err)
	}
	if len(f.orders.patches["order-1"]) != 0 {
		t.Fatalf("validation failure must precede the write")
	}
}

func TestOrderChangeStateSurfacesPersistenceError(t *testing.T) {
	f := newOrderFixture()
	f.orders.orders["order-1"] = &domain.Order{
		ID:          "order-1",
		ExternalKey: "ORD-AAAA0009",
		State:       domain.OrderStateShipping,
	}
	f.orders.updateErrs["order-1"] = errors.New("timeout")

	_, err := f.service.ChangeState(context.Background(), nil, "order-1", domain.OrderStateDelivered, "")
	if !apperrors.IsPersistence(err) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}

func TestGetOrderByKey(t *testing.T) {
	f := newOrderFixture()
	f.orders.orders["order-1"] = &domain.Order{
		ID:          "order-1",
		ExternalKey: "ORD-AAAA0010",
		State:       domain.OrderStateRequested,
	}

	order, err := f.service.GetOrderByKey(context.Background(), "ORD-AAAA0010")
	if err != nil {
		t.Fatalf("get by key: %v", err)
	}
	if order.ID != "order-1" {
		t.Fatalf("expected order-1, got %s", order.ID)
	}
}
