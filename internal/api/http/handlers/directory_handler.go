package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifecycle-service/internal/api/dto"
	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/service"
)

// DirectoryHandler exposes client and provider CRUD.
type DirectoryHandler struct {
	directory *service.DirectoryService
}

// NewDirectoryHandler constructs handler.
func NewDirectoryHandler(directory *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directory: directory}
}

// CreateClient handles POST /clients.
func (h *DirectoryHandler) CreateClient(c *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	client := &domain.Client{
		Name:         req.Name,
		ContactName:  req.ContactName,
		ContactEmail: req.ContactEmail,
		Industry:     req.Industry,
	}
	if err := h.directory.CreateClient(c.UserContext(), client); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": client})
}

// ListClients handles GET /clients.
func (h *DirectoryHandler) ListClients(c *fiber.Ctx) error {
	clients, err := h.directory.ListClients(c.UserContext(), c.QueryBool("active_only", false), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": clients})
}

// GetClient handles GET /clients/:id.
func (h *DirectoryHandler) GetClient(c *fiber.Ctx) error {
	client, err := h.directory.GetClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": client})
}

// UpdateClient handles PATCH /clients/:id.
func (h *DirectoryHandler) UpdateClient(c *fiber.Ctx) error {
	var req dto.ClientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	client, err := h.directory.GetClient(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.Name != "" {
		client.Name = req.Name
	}
	if req.ContactName != "" {
		client.ContactName = req.ContactName
	}
	if req.ContactEmail != "" {
		client.ContactEmail = req.ContactEmail
	}
	if req.Industry != "" {
		client.Industry = req.Industry
	}
	if req.IsActive != nil {
		client.IsActive = *req.IsActive
	}
	if err := h.directory.UpdateClient(c.UserContext(), client); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": client})
}

// CreateProvider handles POST /providers.
func (h *DirectoryHandler) CreateProvider(c *fiber.Ctx) error {
	var req dto.ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	provider := &domain.Provider{
		Name:         req.Name,
		ServiceType:  req.ServiceType,
		ContactEmail: req.ContactEmail,
	}
	if err := h.directory.CreateProvider(c.UserContext(), provider); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": provider})
}

// ListProviders handles GET /providers.
func (h *DirectoryHandler) ListProviders(c *fiber.Ctx) error {
	providers, err := h.directory.ListProviders(c.UserContext(), c.QueryBool("active_only", false), c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": providers})
}

// GetProvider handles GET /providers/:id.
func (h *DirectoryHandler) GetProvider(c *fiber.Ctx) error {
	provider, err := h.directory.GetProvider(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": provider})
}

// UpdateProvider handles PATCH /providers/:id.
func (h *DirectoryHandler) UpdateProvider(c *fiber.Ctx) error {
	var req dto.ProviderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	provider, err := h.directory.GetProvider(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.Name != "" {
		provider.Name = req.Name
	}
	if req.ServiceType != "" {
		provider.ServiceType = req.ServiceType
	}
	if req.ContactEmail != "" {
		provider.ContactEmail = req.ContactEmail
	}
	if req.IsActive != nil {
		provider.IsActive = *req.IsActive
	}
	if err := h.directory.UpdateProvider(c.UserContext(), provider); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": provider})
}
