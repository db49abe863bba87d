package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/complaintbox/backend/internal/config"
	"github.com/complaintbox/backend/internal/dto"
	"github.com/complaintbox/backend/internal/middleware"
	"github.com/complaintbox/backend/internal/ratelimit"
	"github.com/complaintbox/backend/internal/services"
	"github.com/complaintbox/backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ComplaintHandler struct {
	cfg     *config.Config
	service *services.ComplaintService
	limiter ratelimit.Limiter
}

func NewComplaintHandler(cfg *config.Config, service *services.ComplaintService, limiter ratelimit.Limiter) *ComplaintHandler {
	return &ComplaintHandler{cfg: cfg, service: service, limiter: limiter}
}

// Submit is the public intake endpoint. Order matters: gate, rate limit,
// validation, persist.
func (h *ComplaintHandler) Submit(c *fiber.Ctx) error {
	if !middleware.GatePassed(c, h.cfg) {
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Error: "Forbidden. Valid access token required.",
		})
	}

	ip := middleware.ClientIP(c)

	allowed, err := h.limiter.Allow(c.UserContext(), ip)
	if err != nil {
		// Admission control failing must not take the intake down.
		slog.Warn("rate limiter store unavailable, admitting request", "error", err)
		allowed = true
	}
	if !allowed {
		return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
			Error: "Too many complaints submitted. Please wait 15 minutes before submitting again.",
		})
	}

	var req dto.SubmitComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	complaint, err := h.service.Submit(&req, ip)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) ||
			errors.Is(err, services.ErrComplaintLength) ||
			errors.Is(err, services.ErrUnknownPerson) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: err.Error(),
			})
		}
		slog.Error("failed to submit complaint", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SubmitComplaintResponse{
		Message: "Complaint submitted successfully",
		ID:      complaint.ID,
	})
}

// List is the admin query endpoint: equality filters, free-text search,
// newest-first pagination. IP addresses are never serialized.
func (h *ComplaintHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	var filter storage.ComplaintFilter
	if v := c.Query("againstPersonId"); v != "" {
		filter.AgainstPersonID = &v
	}
	if v := c.Query("isRead"); v != "" {
		isRead := v == "true"
		filter.IsRead = &isRead
	}
	filter.Search = c.Query("search")
	filter.Category = c.Query("category")
	filter.Priority = c.Query("priority")

	resp, err := h.service.List(filter, page, limit)
	if err != nil {
		slog.Error("failed to fetch complaints", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(resp)
}

func (h *ComplaintHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Complaint not found",
		})
	}

	complaint, err := h.service.Get(id)
	if err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Complaint not found",
			})
		}
		slog.Error("failed to fetch complaint", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(complaint)
}

// MarkRead toggles the read flag and returns the updated record.
func (h *ComplaintHandler) MarkRead(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Complaint not found",
		})
	}

	var req dto.MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "Invalid request body",
		})
	}

	complaint, err := h.service.SetRead(id, req.IsRead)
	if err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Complaint not found",
			})
		}
		slog.Error("failed to update complaint", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(complaint)
}

// Delete permanently removes a complaint. Route-level RequireRole restricts
// this to super-admins.
func (h *ComplaintHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "Complaint not found",
		})
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, services.ErrComplaintNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: "Complaint not found",
			})
		}
		slog.Error("failed to delete complaint", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "Internal server error",
		})
	}

	return c.JSON(dto.MessageResponse{Message: "Complaint deleted successfully"})
}
