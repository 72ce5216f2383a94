package integrity

import (
	"errors"

	"drill-eda/core/config"
	"drill-eda/core/logger"
	"drill-eda/core/reconcile"
	"drill-eda/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.HoleReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Post("/", h.HandleIntegrityCheck)
	group.Get("/sources", h.HandleSourcesCheck)
	group.Get("/holes", h.HandleHolesCheck)
	group.Get("/intervals", h.HandleIntervalsCheck)
}

// job returns the job from a POST body, or the configured job file.
func (h *Handler) job(c *fiber.Ctx) (*config.Job, error) {
	if c.Method() == fiber.MethodPost && len(c.Body()) > 0 {
		job, err := config.ParseJob(c.Body())
		if err != nil {
			return nil, err
		}
		if err := h.service.sources.Confine(job); err != nil {
			return nil, err
		}
		return job, nil
	}
	return h.service.DefaultJob()
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	l := logger.WithRayID(h.service.logger, c)
	var ce *reconcile.ConfigurationError
	if errors.As(err, &ce) {
		l.Warn(msg, zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Checks source availability, hole id agreement and interval quality of the configured job, or of the job posted in the body.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} Report "Combined Report"
// @Failure 400 {object} map[string]string "Invalid job"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
// @Router /integrity [post]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	job, err := h.job(c)
	if err != nil {
		return h.fail(c, "Failed to load job", err)
	}
	return c.JSON(h.service.CheckAll(c.Context(), job))
}

// HandleSourcesCheck checks the job sources.
// @Summary Check Sources
// @Description Checks that the lithology and assay sources exist and carry the mapped columns.
// @Tags integrity
// @Produce json
// @Success 200 {array} checks.SourceReport "Source Reports"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/sources [get]
func (h *Handler) HandleSourcesCheck(c *fiber.Ctx) error {
	job, err := h.job(c)
	if err != nil {
		return h.fail(c, "Failed to load job", err)
	}
	reports, err := h.service.CheckSources(c.Context(), job)
	if err != nil {
		return h.fail(c, "Source check failed", err)
	}
	return c.JSON(reports)
}

// HandleHolesCheck compares hole ids.
// @Summary Check Hole IDs
// @Description Lists hole ids present in the lithology table but not the assay table, and vice versa.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.HoleReport "Hole Report"
// @Failure 400 {object} map[string]string "Invalid mapping"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/holes [get]
func (h *Handler) HandleHolesCheck(c *fiber.Ctx) error {
	job, err := h.job(c)
	if err != nil {
		return h.fail(c, "Failed to load job", err)
	}
	report, err := h.service.CheckHoles(c.Context(), job)
	if err != nil {
		return h.fail(c, "Hole check failed", err)
	}
	return c.JSON(report)
}

// HandleIntervalsCheck scans interval quality.
// @Summary Check Intervals
// @Description Reports rows that reconciliation would drop or treat as missing, plus overlapping and gapped coverage.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.IntervalReport "Interval Report"
// @Failure 400 {object} map[string]string "Invalid mapping"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/intervals [get]
func (h *Handler) HandleIntervalsCheck(c *fiber.Ctx) error {
	job, err := h.job(c)
	if err != nil {
		return h.fail(c, "Failed to load job", err)
	}
	report, err := h.service.CheckIntervals(c.Context(), job)
	if err != nil {
		return h.fail(c, "Interval check failed", err)
	}
	return c.JSON(report)
}
