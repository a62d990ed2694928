package browse

import (
	"errors"

	"s3lib/core/logger"
	"s3lib/core/pathfs"
	"s3lib/core/s3path"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for path operations.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CopyRequest is the body of POST /paths/copy.
type CopyRequest struct {
	Src string `json:"src"`
	Dst string `json:"dst"`
}

// RegisterRoutes registers the browse routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/paths")
	group.Get("/", h.HandleList)
	group.Delete("/", h.HandleDelete)
	group.Get("/stat", h.HandleStat)
	group.Get("/content", h.HandleRead)
	group.Put("/content", h.HandleWrite)
	group.Post("/copy", h.HandleCopy)
}

// HandleList lists the children of a path.
// @Summary List Path
// @Description Lists the immediate children of a directory-like path. With a pattern, lists every object at any depth below the path whose trailing segments match it.
// @Tags paths
// @Produce json
// @Param uri query string true "Path URI, e.g. s3://bucket/dir"
// @Param pattern query string false "Glob pattern, e.g. *.txt"
// @Success 200 {object} map[string]interface{} "Entries"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /paths [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	p, err := s3path.Parse(c.Query("uri"))
	if err != nil {
		return h.fail(c, err)
	}

	entries, err := h.service.List(c.Context(), p, c.Query("pattern"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"uri":     p,
		"entries": entries,
	})
}

// HandleStat describes a path.
// @Summary Stat Path
// @Description Reports the bucket, key, existence and file status of a path.
// @Tags paths
// @Produce json
// @Param uri query string true "Path URI"
// @Success 200 {object} map[string]interface{} "Info"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /paths/stat [get]
func (h *Handler) HandleStat(c *fiber.Ctx) error {
	p, err := s3path.Parse(c.Query("uri"))
	if err != nil {
		return h.fail(c, err)
	}

	info, err := h.service.Stat(c.Context(), p)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(info)
}

// HandleRead returns the object content.
// @Summary Read Object
// @Tags paths
// @Produce octet-stream
// @Param uri query string true "Path URI"
// @Success 200 {file} file "Object content"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /paths/content [get]
func (h *Handler) HandleRead(c *fiber.Ctx) error {
	p, err := s3path.Parse(c.Query("uri"))
	if err != nil {
		return h.fail(c, err)
	}

	data, err := h.service.Read(c.Context(), p)
	if err != nil {
		return h.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEOctetStream)
	return c.Send(data)
}

// HandleWrite replaces the object with the request body.
// @Summary Write Object
// @Tags paths
// @Accept octet-stream
// @Produce json
// @Param uri query string true "Path URI"
// @Param text query boolean false "Require UTF-8 text"
// @Success 201 {object} map[string]interface{} "Written"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /paths/content [put]
func (h *Handler) HandleWrite(c *fiber.Ctx) error {
	p, err := s3path.Parse(c.Query("uri"))
	if err != nil {
		return h.fail(c, err)
	}

	body := c.Body()
	if err := h.service.Write(c.Context(), p, body, c.QueryBool("text")); err != nil {
		return h.fail(c, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Object written", zap.Stringer("path", p), zap.Int("size", len(body)))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"uri":  p,
		"size": len(body),
	})
}

// HandleDelete removes a file or a directory.
// @Summary Delete Path
// @Description Unlinks a file. Removes a directory, which must only hold folder markers unless contents=true.
// @Tags paths
// @Produce json
// @Param uri query string true "Path URI"
// @Param contents query boolean false "Remove directory contents"
// @Success 200 {object} map[string]interface{} "Deleted"
// @Failure 409 {object} map[string]string "Precondition Failed"
// @Router /paths [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	p, err := s3path.Parse(c.Query("uri"))
	if err != nil {
		return h.fail(c, err)
	}

	if err := h.service.Delete(c.Context(), p, c.QueryBool("contents")); err != nil {
		return h.fail(c, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Path deleted", zap.Stringer("path", p))
	return c.JSON(fiber.Map{"deleted": p})
}

// HandleCopy copies a path.
// @Summary Copy Path
// @Description Server-side copy of every object under src to dst. Objects whose name starts with "_" are skipped.
// @Tags paths
// @Accept json
// @Produce json
// @Param request body CopyRequest true "Source and destination URIs"
// @Success 200 {object} map[string]interface{} "Copied"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /paths/copy [post]
func (h *Handler) HandleCopy(c *fiber.Ctx) error {
	var req CopyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	src, err := s3path.Parse(req.Src)
	if err != nil {
		return h.fail(c, err)
	}
	dst, err := s3path.Parse(req.Dst)
	if err != nil {
		return h.fail(c, err)
	}

	n, err := h.service.Copy(c.Context(), src, dst)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Copy failed", zap.Int("copied", n), zap.Error(err))
		return c.Status(statusFor(err)).JSON(fiber.Map{
			"error":  err.Error(),
			"copied": n,
		})
	}
	return c.JSON(fiber.Map{"copied": n})
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status >= fiber.StatusInternalServerError {
		logger.WithRayID(h.service.logger, c).Error("Request failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, pathfs.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, pathfs.ErrInvalidArgument), errors.Is(err, s3path.ErrInvalidPath), errors.Is(err, errors.ErrUnsupported):
		return fiber.StatusBadRequest
	case errors.Is(err, pathfs.ErrPreconditionFailed):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
