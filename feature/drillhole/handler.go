package drillhole

import (
	"bytes"
	"errors"
	"strconv"

	"drill-eda/core/config"
	"drill-eda/core/logger"
	"drill-eda/core/reconcile"
	"drill-eda/core/table"
	"drill-eda/feature/drillhole/analysis"
	"drill-eda/feature/drillhole/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for drillhole reconciliation and analysis.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the drillhole routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/drillhole")
	group.Post("/reconcile", h.HandleReconcile)
	group.Get("/table", h.HandleTable)
	group.Get("/lithology", h.HandleLithology)
	group.Get("/orewaste", h.HandleOreWaste)
	group.Post("/filter", h.HandleFilter)
	group.Get("/stats/:rock", h.HandleStats)
	group.Get("/histogram/:column", h.HandleHistogram)
	group.Post("/export", h.HandleExport)
}

// statusFor maps service errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case reconcile.IsConfigurationError(err), reconcile.IsDataQualityError(err):
		return fiber.StatusBadRequest
	case errors.Is(err, reconcile.ErrStateNotReady):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status == fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Warn(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

// HandleReconcile runs a reconciliation job.
// @Summary Run Reconciliation
// @Description Loads the lithology and assay sources of the job, reconciles them and keeps the merged table as the latest result.
// @Tags drillhole
// @Accept json
// @Produce json
// @Param job body config.Job true "Reconciliation job"
// @Success 200 {object} models.RunSummary "Run Summary"
// @Failure 400 {object} map[string]string "Invalid job or rejected data"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /drillhole/reconcile [post]
func (h *Handler) HandleReconcile(c *fiber.Ctx) error {
	job, err := config.ParseJob(c.Body())
	if err != nil {
		return h.fail(c, "Invalid reconciliation job", err)
	}
	if err := h.service.Confine(job); err != nil {
		return h.fail(c, "Invalid reconciliation job", err)
	}

	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting reconciliation",
		zap.String("lithology", job.Lithology.String()),
		zap.String("assay", job.Assay.String()),
	)

	summary, err := h.service.Run(c.Context(), job)
	if err != nil {
		return h.fail(c, "Reconciliation failed", err)
	}
	return c.JSON(summary)
}

// HandleTable returns the latest merged table.
// @Summary Get Merged Table
// @Description Returns the latest merged interval table as JSON, or as CSV with format=csv.
// @Tags drillhole
// @Produce json
// @Produce text/csv
// @Param format query string false "json or csv"
// @Success 200 {object} map[string]interface{} "Merged Table"
// @Failure 409 {object} map[string]string "No reconciliation has run"
// @Router /drillhole/table [get]
func (h *Handler) HandleTable(c *fiber.Ctx) error {
	t, err := h.service.Table()
	if err != nil {
		return h.fail(c, "Merged table requested", err)
	}
	if c.Query("format") == "csv" {
		var buf bytes.Buffer
		if err := table.WriteCSV(&buf, t.Columns(), t.Records()); err != nil {
			return h.fail(c, "Failed to render csv", err)
		}
		c.Set(fiber.HeaderContentType, "text/csv")
		return c.Send(buf.Bytes())
	}
	return c.JSON(t)
}

// HandleLithology returns the lithology intervals used by the latest run.
// @Summary Get Joined Lithology
// @Description Returns the lithology intervals joined in the latest run, after common-hole filtering and optional combining.
// @Tags drillhole
// @Produce json
// @Success 200 {array} models.LithologyInterval "Lithology Intervals"
// @Failure 409 {object} map[string]string "No reconciliation has run"
// @Router /drillhole/lithology [get]
func (h *Handler) HandleLithology(c *fiber.Ctx) error {
	res, err := h.service.Latest()
	if err != nil {
		return h.fail(c, "Lithology requested", err)
	}
	return c.JSON(models.FromLithology(res.Lithology))
}

// HandleOreWaste splits rock classes into ore and waste.
// @Summary Ore/Waste Split
// @Description Classifies each rock class as ore when its mean grade is at or above the cutoff.
// @Tags drillhole
// @Produce json
// @Param grade query string true "Grade column"
// @Param cutoff query number true "Cutoff grade"
// @Success 200 {object} analysis.OreWasteSplit "Ore/Waste Split"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 409 {object} map[string]string "No reconciliation has run"
// @Router /drillhole/orewaste [get]
func (h *Handler) HandleOreWaste(c *fiber.Ctx) error {
	grade := c.Query("grade")
	if grade == "" {
		return h.fail(c, "Invalid ore/waste request", &reconcile.ConfigurationError{Key: "grade", Reason: "is required"})
	}
	cutoff, err := strconv.ParseFloat(c.Query("cutoff"), 64)
	if err != nil {
		return h.fail(c, "Invalid ore/waste request", &reconcile.ConfigurationError{Key: "cutoff", Reason: "must be a number"})
	}

	split, err := h.service.OreWaste(grade, cutoff)
	if err != nil {
		return h.fail(c, "Ore/waste split failed", err)
	}
	return c.JSON(split)
}

// HandleFilter filters the latest merged table.
// @Summary Filter Merged Table
// @Description Keeps rows matching every categorical allow-list and inclusive numeric range. Missing values never match.
// @Tags drillhole
// @Accept json
// @Produce json
// @Param filters body analysis.Filters true "Filters"
// @Success 200 {object} map[string]interface{} "Filtered Table"
// @Failure 400 {object} map[string]string "Invalid filters"
// @Failure 409 {object} map[string]string "No reconciliation has run"
// @Router /drillhole/filter [post]
func (h *Handler) HandleFilter(c *fiber.Ctx) error {
	var f analysis.Filters
	if err := c.BodyParser(&f); err != nil {
		return h.fail(c, "Invalid filters", &reconcile.ConfigurationError{Key: "filters", Reason: "invalid JSON: " + err.Error()})
	}

	out, err := h.service.Filter(f)
	if err != nil {
		return h.fail(c, "Filter failed", err)
	}
	return c.JSON(out)
}

// HandleStats returns descriptive statistics for one rock class.
// @Summary Describe Rock Class
// @Description Count, mean, std, min, quartiles and max of FROM, TO and every assay column over the rows of a rock class.
// @Tags drillhole
// @Produce json
// @Param rock path string true "Rock code"
// @Success 200 {object} analysis.Description "Descriptive Statistics"
// @Failure 409 {object} map[string]string "No reconciliation has run"
// @Router /drillhole/stats/{rock} [get]
func (h *Handler) HandleStats(c *fiber.Ctx) error {
	desc, err := h.service.Describe(c.Params("rock"))
	if err != nil {
		return h.fail(c, "Describe failed", err)
	}
	return c.JSON(desc)
}

// HandleHistogram bins one numeric column.
// @Summary Column Histogram
// @Description Bins the present values of a numeric column into equal-width classes.
// @Tags drillhole
// @Produce json
// @Param column path string true "Numeric column"
// @Param bins query int false "Number of bins (default 20, at most 1000)"
// @Param cap query number false "Clamp values above this"
// @Success 200 {object} analysis.HistogramResult "Histogram"
// @Failure 400 {object} map[string]string "Invalid parameters"
// @Failure 409 {object} map[string]string "No reconciliation has run"
// @Router /drillhole/histogram/{column} [get]
func (h *Handler) HandleHistogram(c *fiber.Ctx) error {
	opts := analysis.HistogramOptions{Bins: c.QueryInt("bins", 0)}
	if raw := c.Query("cap"); raw != "" {
		limit, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return h.fail(c, "Invalid histogram request", &reconcile.ConfigurationError{Key: "cap", Reason: "must be a number"})
		}
		opts.Cap = &limit
	}

	res, err := h.service.Histogram(c.Params("column"), opts)
	if err != nil {
		return h.fail(c, "Histogram failed", err)
	}
	return c.JSON(res)
}

// HandleExport writes the latest merged table to a target.
// @Summary Export Merged Table
// @Description Writes the latest merged table as CSV to a file under the data directory or a storage object, or into a database table. An existing table is only replaced with "replace": true; source tables and the run log are refused.
// @Tags drillhole
// @Accept json
// @Produce json
// @Param target body config.Location true "Export target"
// @Success 200 {object} models.ExportResult "Export Result"
// @Failure 400 {object} map[string]string "Invalid target"
// @Failure 409 {object} map[string]string "No reconciliation has run"
// @Router /drillhole/export [post]
func (h *Handler) HandleExport(c *fiber.Ctx) error {
	var loc config.Location
	if err := c.BodyParser(&loc); err != nil {
		return h.fail(c, "Invalid export target", &reconcile.ConfigurationError{Key: "export", Reason: "invalid JSON: " + err.Error()})
	}
	loc, err := h.service.ConfineLocation(loc)
	if err != nil {
		return h.fail(c, "Invalid export target", err)
	}

	res, err := h.service.ExportLatest(c.Context(), loc)
	if err != nil {
		return h.fail(c, "Export failed", err)
	}
	return c.JSON(res)
}
