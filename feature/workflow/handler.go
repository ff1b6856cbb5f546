package workflow

import (
	"bytes"
	"errors"
	"net/url"

	"storage-probe/core/logger"
	"storage-probe/core/storage"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// Handler handles HTTP requests for the storage workflow.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the workflow routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/workflow")
	group.Post("/bucket", h.HandleEnsureBucket)
	group.Get("/objects", h.HandleList)
	group.Put("/objects/*", h.HandleUpload)
	group.Post("/run", h.HandleRun)
	group.Get("/runs", h.HandleRuns)
}

// HandleEnsureBucket creates the configured bucket.
// @Summary Ensure Bucket
// @Description Creates the configured bucket. An existing bucket is reported, not treated as an error.
// @Tags workflow
// @Produce json
// @Success 200 {object} map[string]interface{} "Bucket"
// @Failure 502 {object} map[string]string "Storage Error"
// @Router /workflow/bucket [post]
func (h *Handler) HandleEnsureBucket(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	attrs, existed, err := h.service.EnsureBucket(c.Context())
	if err != nil {
		l.Error("Bucket provisioning failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"bucket": attrs, "existed": existed})
}

// HandleUpload stores the raw request body under the given key.
// @Summary Upload Object
// @Description Writes the request body to the object key and returns its metadata once committed.
// @Tags workflow
// @Accept octet-stream
// @Produce json
// @Param key path string true "Object key"
// @Success 201 {object} storage.ObjectAttrs
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} map[string]string "Storage Error"
// @Router /workflow/objects/{key} [put]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	key, err := url.PathUnescape(c.Params("*"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid object key", "details": err.Error()})
	}
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "object key is required"})
	}

	// The body buffer is reused by fasthttp once the handler returns.
	body := bytes.Clone(c.Body())
	attrs, err := h.service.Upload(c.Context(), key, bytes.NewReader(body))
	if err != nil {
		l.Error("Upload failed", zap.String("key", key), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(attrs)
}

// HandleList lists objects in the bucket.
// @Summary List Objects
// @Description Enumerates the bucket. Entries that failed carry an error message instead of object data.
// @Tags workflow
// @Produce json
// @Param prefix query string false "Key prefix"
// @Param limit query int false "Maximum number of entries"
// @Success 200 {object} ListResult
// @Router /workflow/objects [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	result := h.service.List(c.Context(), storage.ListOptions{
		Prefix:     c.Query("prefix"),
		MaxResults: c.QueryInt("limit", 0),
	})
	return c.JSON(result)
}

// HandleRun executes the full workflow.
// @Summary Run Workflow
// @Description Provisions the bucket, uploads the payload, and verifies that the key is listed exactly once.
// @Tags workflow
// @Accept json
// @Produce json
// @Param plan body Plan true "Run plan"
// @Success 200 {object} Report
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 502 {object} Report "Failed Run"
// @Router /workflow/run [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var plan Plan
	if err := c.BodyParser(&plan); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body", "details": err.Error()})
	}
	if err := validate.Struct(plan); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid plan", "details": err.Error()})
	}

	report, err := h.service.Run(c.Context(), plan)
	if err != nil {
		l.Warn("Workflow run failed", zap.String("run_id", report.RunID), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(report)
	}
	return c.JSON(report)
}

// HandleRuns returns the recorded run history.
// @Summary Run History
// @Description Lists the most recent workflow runs. Requires a database connection.
// @Tags workflow
// @Produce json
// @Param limit query int false "Maximum number of runs"
// @Success 200 {array} RunRecord
// @Failure 503 {object} map[string]string "History Disabled"
// @Router /workflow/runs [get]
func (h *Handler) HandleRuns(c *fiber.Ctx) error {
	runs, err := h.service.RecentRuns(c.Context(), c.QueryInt("limit", 20))
	if errors.Is(err, ErrNoHistory) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(runs)
}
