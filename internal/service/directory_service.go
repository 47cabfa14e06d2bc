package service

import (
	"context"
	"strings"

	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	apperrors "github.com/spec-kit/lifecycle-service/pkg/util"
)

// DirectoryService manages the agency's client and provider directory.
type DirectoryService struct {
	clients   repository.ClientRepository
	providers repository.ProviderRepository
}

// NewDirectoryService constructs the service.
func NewDirectoryService(clients repository.ClientRepository, providers repository.ProviderRepository) *DirectoryService {
	return &DirectoryService{clients: clients, providers: providers}
}

// CreateClient registers an advertising client.
func (s *DirectoryService) CreateClient(ctx context.Context, client *domain.Client) error {
	if strings.TrimSpace(client.Name) == "" {
		return apperrors.NewValidationError("client name required", nil)
	}
	client.IsActive = true
	if err := s.clients.Create(ctx, client); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// UpdateClient patches client fields.
func (s *DirectoryService) UpdateClient(ctx context.Context, client *domain.Client) error {
	if err := s.clients.Update(ctx, client); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetClient fetches a client by id.
func (s *DirectoryService) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	client, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return client, nil
}

// ListClients returns directory clients.
func (s *DirectoryService) ListClients(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Client, error) {
	clients, err := s.clients.List(ctx, activeOnly, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return clients, nil
}

// CreateProvider registers a production provider.
func (s *DirectoryService) CreateProvider(ctx context.Context, provider *domain.Provider) error {
	if strings.TrimSpace(provider.Name) == "" {
		return apperrors.NewValidationError("provider name required", nil)
	}
	provider.IsActive = true
	if err := s.providers.Create(ctx, provider); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// UpdateProvider patches provider fields.
func (s *DirectoryService) UpdateProvider(ctx context.Context, provider *domain.Provider) error {
	if err := s.providers.Update(ctx, provider); err != nil {
		return apperrors.MapError(err)
	}
	return nil
}

// GetProvider fetches a provider by id.
func (s *DirectoryService) GetProvider(ctx context.Context, id string) (*domain.Provider, error) {
	provider, err := s.providers.GetByID(ctx, id)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return provider, nil
}

// ListProviders returns directory providers.
func (s *DirectoryService) ListProviders(ctx context.Context, activeOnly bool, limit, offset int) ([]domain.Provider, error) {
	providers, err := s.providers.List(ctx, activeOnly, limit, offset)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return providers, nil
}
