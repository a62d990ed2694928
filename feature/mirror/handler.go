package mirror

import (
	"errors"

	"s3lib/core/logger"
	"s3lib/core/pathfs"
	"s3lib/core/s3path"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ApplyRequest is the body of POST /reconcile/apply.
type ApplyRequest struct {
	Src    string `json:"src"`
	Dst    string `json:"dst"`
	Purge  bool   `json:"purge"`
	DryRun bool   `json:"dry_run"`
}

// RegisterRoutes registers the mirror routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/reconcile")
	group.Get("/", h.HandleCheck)
	group.Post("/apply", h.HandleApply)
}

// HandleCheck reports the differences between two trees.
// @Summary Check Reconciliation
// @Description Compares every object under src with dst by relative key and size, and lists the actions that would make dst match.
// @Tags reconcile
// @Produce json
// @Param src query string true "Source URI"
// @Param dst query string true "Destination URI"
// @Param purge query boolean false "Plan deletes for objects missing in src"
// @Success 200 {object} map[string]interface{} "Plan"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile [get]
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	src, dst, err := parsePair(c.Query("src"), c.Query("dst"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := h.service.Check(c.Context(), src, dst, c.QueryBool("purge"))
	if errors.Is(err, pathfs.ErrInvalidArgument) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Reconcile check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(plan.Actions) > 0 {
		l.Warn("Differences detected", zap.Int("actions", len(plan.Actions)))
	}
	return c.JSON(fiber.Map{
		"status": "checked",
		"plan":   plan,
	})
}

// HandleApply makes dst match src.
// @Summary Apply Reconciliation
// @Description Copies missing and mismatched objects from src to dst. With purge, deletes objects in dst that src does not have.
// @Tags reconcile
// @Accept json
// @Produce json
// @Param request body ApplyRequest true "Source, destination and options"
// @Success 200 {object} map[string]interface{} "Applied"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /reconcile/apply [post]
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	src, dst, err := parsePair(req.Src, req.Dst)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	l.Info("Applying reconciliation", zap.Stringer("src", src), zap.Stringer("dst", dst), zap.Bool("purge", req.Purge))
	plan, executed, err := h.service.Fix(c.Context(), src, dst, req.Purge, req.DryRun)
	if errors.Is(err, pathfs.ErrInvalidArgument) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	if err != nil {
		l.Error("Reconcile apply failed", zap.Int("executed", executed), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":    "Failed to apply reconciliation",
			"details":  err.Error(),
			"executed": executed,
		})
	}

	status := "fixed"
	if req.DryRun {
		status = "dry-run"
	}
	return c.JSON(fiber.Map{
		"status":   status,
		"executed": executed,
		"plan":     plan,
	})
}

func parsePair(srcURI, dstURI string) (s3path.Path, s3path.Path, error) {
	src, srcErr := s3path.Parse(srcURI)
	dst, dstErr := s3path.Parse(dstURI)
	return src, dst, errors.Join(srcErr, dstErr)
}
