package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifecycle-service/internal/api/dto"
	"github.com/spec-kit/lifecycle-service/internal/auth"
	"github.com/spec-kit/lifecycle-service/internal/domain"
	"github.com/spec-kit/lifecycle-service/internal/lifecycle"
	"github.com/spec-kit/lifecycle-service/internal/repository"
	"github.com/spec-kit/lifecycle-service/internal/service"
)

// CampaignsHandler exposes campaign endpoints.
type CampaignsHandler struct {
	campaigns *service.CampaignService
}

// NewCampaignsHandler constructs handler.
func NewCampaignsHandler(campaigns *service.CampaignService) *CampaignsHandler {
	return &CampaignsHandler{campaigns: campaigns}
}

// Create handles POST /campaigns.
func (h *CampaignsHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	campaign, err := h.campaigns.CreateCampaign(c.UserContext(), service.CampaignCreateInput{
		Name:        req.Name,
		ClientID:    req.ClientID,
		Description: req.Description,
		Budget:      req.Budget,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Conditions:  req.Conditions,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewCampaignResponse(campaign)})
}

// List handles GET /campaigns. Listing runs the automatic advancement pass.
func (h *CampaignsHandler) List(c *fiber.Ctx) error {
	filter := repository.CampaignFilter{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
	if clientID := c.Query("client_id"); clientID != "" {
		filter.ClientID = &clientID
	}
	if states := c.Query("state"); states != "" {
		for _, state := range strings.Split(states, ",") {
			filter.States = append(filter.States, domain.CampaignState(state))
		}
	}
	if from := c.Query("created_from"); from != "" {
		if t, err := time.Parse(time.RFC3339, from); err == nil {
			filter.CreatedFrom = &t
		}
	}
	if to := c.Query("created_to"); to != "" {
		if t, err := time.Parse(time.RFC3339, to); err == nil {
			filter.CreatedTo = &t
		}
	}

	campaigns, _, err := h.campaigns.ListCampaigns(c.UserContext(), filter)
	if err != nil {
		return err
	}
	out := make([]dto.CampaignResponse, 0, len(campaigns))
	for i := range campaigns {
		out = append(out, dto.NewCampaignResponse(&campaigns[i]))
	}
	return c.JSON(fiber.Map{"data": out})
}

// Get handles GET /campaigns/:id.
func (h *CampaignsHandler) Get(c *fiber.Ctx) error {
	campaign, err := h.campaigns.GetCampaign(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCampaignResponse(campaign)})
}

// Update handles PATCH /campaigns/:id.
func (h *CampaignsHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateCampaignRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	campaign, err := h.campaigns.GetCampaign(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if req.Name != nil {
		campaign.Name = *req.Name
	}
	if req.Description != nil {
		campaign.Description = *req.Description
	}
	if req.Budget != nil {
		campaign.Budget = req.Budget
	}
	if req.StartDate != nil {
		campaign.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		campaign.EndDate = req.EndDate
	}
	if req.Conditions != nil {
		campaign.Conditions = req.Conditions
	}
	if err := h.campaigns.UpdateCampaign(c.UserContext(), campaign); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCampaignResponse(campaign)})
}

// ChangeState handles POST /campaigns/:id/state.
func (h *CampaignsHandler) ChangeState(c *fiber.Ctx) error {
	var req dto.ChangeStateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	principal, _ := auth.PrincipalFromContext(c)
	var actor *domain.User
	if principal != nil {
		actor = principal.User
	}
	campaign, err := h.campaigns.ChangeState(c.UserContext(), actor, c.Params("id"), domain.CampaignState(req.State), req.Comment)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewCampaignResponse(campaign)})
}

// History handles GET /campaigns/:id/history.
func (h *CampaignsHandler) History(c *fiber.Ctx) error {
	records, err := h.campaigns.History(c.UserContext(), c.Params("id"), c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewStateChangeResponses(records)})
}

// States handles GET /campaigns/states.
func (h *CampaignsHandler) States(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"data": stateDefinitions(lifecycle.CampaignStates)})
}

func stateDefinitions[S ~string](table *lifecycle.Table[S]) []dto.StateDefinitionResponse {
	defs := table.States()
	out := make([]dto.StateDefinitionResponse, 0, len(defs))
	for _, def := range defs {
		targets := make([]string, 0, len(def.NotificationTargets))
		for _, target := range def.NotificationTargets {
			targets = append(targets, string(target))
		}
		out = append(out, dto.StateDefinitionResponse{
			Name:                  string(def.Name),
			Next:                  string(def.Next),
			AutoTransition:        def.AutoTransition,
			EstimatedDurationDays: def.EstimatedDurationDays,
			NotificationTargets:   targets,
			RequiredPreconditions: def.RequiredPreconditions,
			Checklist:             def.Checklist,
		})
	}
	return out
}
