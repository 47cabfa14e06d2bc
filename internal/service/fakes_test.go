package service

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/events"
	"github.com/spec-kit/lifecycle-service/internal/repository"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeCampaignRepo struct {
	campaigns   map[string]*domain.Campaign
	listRows    []domain.Campaign
	patches     map[string][]repository.StatePatch
	updateErrs  map[string]error
	createCalls int
}

func newFakeCampaignRepo() *fakeCampaignRepo {
	return &fakeCampaignRepo{
		campaigns:  make(map[string]*domain.Campaign),
		patches:    make(map[string][]repository.StatePatch),
		updateErrs: make(map[string]error),
	}
}

func (r *fakeCampaignRepo) Create(_ context.Context, campaign *domain.Campaign) error {
	r.createCalls++
	if campaign.ID == "" {
		campaign.ID = "campaign-created"
	}
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) Update(_ context.Context, campaign *domain.Campaign) error {
	r.campaigns[campaign.ID] = campaign
	return nil
}

func (r *fakeCampaignRepo) UpdateState(_ context.Context, id string, patch repository.StatePatch) error {
	if err := r.updateErrs[id]; err != nil {
		return err
	}
	r.patches[id] = append(r.patches[id], patch)
	return nil
}

func (r *fakeCampaignRepo) GetByID(_ context.Context, id string) (*domain.Campaign, error) {
	campaign, ok := r.campaigns[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *campaign
	return &copied, nil
}

func (r *fakeCampaignRepo) ListWithFilter(_ context.Context, _ repository.CampaignFilter) ([]domain.Campaign, error) {
	rows := make([]domain.Campaign, len(r.listRows))
	copy(rows, r.listRows)
	return rows, nil
}

type fakeOrderRepo struct {
	orders     map[string]*domain.Order
	listRows   []domain.Order
	patches    map[string][]repository.StatePatch
	updateErrs map[string]error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:     make(map[string]*domain.Order),
		patches:    make(map[string][]repository.StatePatch),
		updateErrs: make(map[string]error),
	}
}

func (r *fakeOrderRepo) Create(_ context.Context, order *domain.Order) error {
	if order.ID == "" {
		order.ID = "order-created"
	}
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Update(_ context.Context, order *domain.Order) error {
	r.orders[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) UpdateState(_ context.Context, id string, patch repository.StatePatch) error {
	if err := r.updateErrs[id]; err != nil {
		return err
	}
	r.patches[id] = append(r.patches[id], patch)
	return nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	order, ok := r.orders[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) GetByExternalKey(_ context.Context, key string) (*domain.Order, error) {
	for _, order := range r.orders {
		if order.ExternalKey == key {
			copied := *order
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeOrderRepo) ListWithFilter(_ context.Context, _ repository.OrderFilter) ([]domain.Order, error) {
	rows := make([]domain.Order, len(r.listRows))
	copy(rows, r.listRows)
	return rows, nil
}

type fakeClientRepo struct {
	clients map[string]*domain.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{clients: make(map[string]*domain.Client)}
}

func (r *fakeClientRepo) Create(_ context.Context, client *domain.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) Update(_ context.Context, client *domain.Client) error {
	r.clients[client.ID] = client
	return nil
}

func (r *fakeClientRepo) GetByID(_ context.Context, id string) (*domain.Client, error) {
	client, ok := r.clients[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return client, nil
}

func (r *fakeClientRepo) List(_ context.Context, _ bool, _, _ int) ([]domain.Client, error) {
	return nil, nil
}

type fakeProviderRepo struct {
	providers map[string]*domain.Provider
}

func newFakeProviderRepo() *fakeProviderRepo {
	return &fakeProviderRepo{providers: make(map[string]*domain.Provider)}
}

func (r *fakeProviderRepo) Create(_ context.Context, provider *domain.Provider) error {
	r.providers[provider.ID] = provider
	return nil
}

func (r *fakeProviderRepo) Update(_ context.Context, provider *domain.Provider) error {
	r.providers[provider.ID] = provider
	return nil
}

func (r *fakeProviderRepo) GetByID(_ context.Context, id string) (*domain.Provider, error) {
	provider, ok := r.providers[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return provider, nil
}

func (r *fakeProviderRepo) List(_ context.Context, _ bool, _, _ int) ([]domain.Provider, error) {
	return nil, nil
}

type fakeStateChangeRepo struct {
	records []domain.StateChangeRecord
}

func (r *fakeStateChangeRepo) Create(_ context.Context, record *domain.StateChangeRecord) error {
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeStateChangeRepo) ListByEntity(_ context.Context, entityType domain.EntityType, entityID string, _, _ int) ([]domain.StateChangeRecord, error) {
	var out []domain.StateChangeRecord
	for _, record := range r.records {
		if record.EntityType == entityType && record.EntityID == entityID {
			out = append(out, record)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []domain.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, notification *domain.Notification) error {
	r.notifications = append(r.notifications, *notification)
	return nil
}

func (r *fakeNotificationRepo) ListRecent(_ context.Context, _, _ int) ([]domain.Notification, error) {
	return r.notifications, nil
}

func (r *fakeNotificationRepo) ListByEntity(_ context.Context, _ domain.EntityType, _ string, _ int) ([]domain.Notification, error) {
	return r.notifications, nil
}

type fakeDispatcher struct {
	published []events.Event
}

func (d *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	d.published = append(d.published, event)
	return nil
}

func (d *fakeDispatcher) Subscribe(_ events.EventType, _ events.EventHandler) {}
