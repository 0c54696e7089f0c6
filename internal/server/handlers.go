package server

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"cardvault/internal/common"
	"cardvault/internal/export"
	"cardvault/internal/ingest"
	"cardvault/internal/pipeline"
	"cardvault/internal/repository"
)

// Handlers wires the HTTP surface: upload intake, records table, employee
// CRUD, and the XLSX export. Handlers stay thin; the pipeline and
// repositories own the behavior.
type Handlers struct {
	intake    *ingest.Intake
	processor *pipeline.Processor
	cards     repository.CardRepository
	employees repository.EmployeeRepository
	exporter  *export.Service
	logger    *zap.Logger
}

func NewHandlers(
	intake *ingest.Intake,
	proc *pipeline.Processor,
	cards repository.CardRepository,
	employees repository.EmployeeRepository,
	exporter *export.Service,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		intake:    intake,
		processor: proc,
		cards:     cards,
		employees: employees,
		exporter:  exporter,
		logger:    logger,
	}
}

// Register attaches all routes to the provided Fiber app.
func (h *Handlers) Register(app *fiber.App, db *sql.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	})

	api := app.Group("/api")
	api.Post("/upload", h.uploadCards)
	api.Get("/cards", h.listCards)
	api.Get("/employees", h.listEmployees)
	api.Post("/employees", h.createEmployee)
	api.Delete("/employees/:id", h.deleteEmployee)
	api.Post("/export-cards", h.exportCards)
}

// uploadCards accepts multipart images plus an employee id, stages the files,
// runs the batch pipeline, and returns the aggregate count. Any top-level
// failure becomes a generic error response; per-file failures only reach the
// logs.
func (h *Handlers) uploadCards(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FORM_REQUIRED", "multipart form is required")
	}
	files := form.File["images"]
	if len(files) == 0 {
		return writeError(c, fiber.StatusBadRequest, "IMAGES_REQUIRED", "at least one image is required")
	}

	var employeeID *uuid.UUID
	if raw := c.FormValue("employee_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_EMPLOYEE_ID", "employee_id must be a UUID")
		}
		employeeID = &id
	}

	staged, err := h.intake.Stage(files, employeeID)
	if err != nil {
		h.logger.Error("upload staging failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to process uploaded images")
	}
	defer ingest.Cleanup(staged, nil)

	res, err := h.processor.ProcessUploadedImages(c.UserContext(), staged)
	if err != nil {
		h.logger.Error("upload batch failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "failed to process uploaded images")
	}
	return c.JSON(res)
}

func (h *Handlers) listCards(c *fiber.Ctx) error {
	cards, err := h.cards.ListWithUploader(c.UserContext())
	if err != nil {
		h.logger.Warn("list cards failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return c.JSON(fiber.Map{"cards": cards})
}

func (h *Handlers) listEmployees(c *fiber.Ctx) error {
	employees, err := h.employees.List(c.UserContext())
	if err != nil {
		h.logger.Warn("list employees failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return c.JSON(fiber.Map{"employees": employees})
}

func (h *Handlers) createEmployee(c *fiber.Ctx) error {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&body); err != nil || body.Name == "" {
		return writeError(c, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required")
	}

	e, err := h.employees.Create(c.UserContext(), body.Name)
	if err != nil {
		h.logger.Warn("create employee failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return c.Status(fiber.StatusCreated).JSON(e)
}

func (h *Handlers) deleteEmployee(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
	}

	if err := h.employees.Delete(c.UserContext(), id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "employee not found")
		}
		h.logger.Warn("delete employee failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handlers) exportCards(c *fiber.Ctx) error {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := c.BodyParser(&body); err != nil || len(body.IDs) == 0 {
		return writeError(c, fiber.StatusBadRequest, "IDS_REQUIRED", "ids are required")
	}

	ids := make([]uuid.UUID, 0, len(body.IDs))
	for _, raw := range body.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		ids = append(ids, id)
	}

	b, err := h.exporter.ExportCardsXLSX(c.UserContext(), ids)
	if err != nil {
		h.logger.Warn("export cards failed", zap.Error(err))
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}

	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="business-cards.xlsx"`)
	return c.Send(b)
}

func writeError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"code":    code,
		"message": message,
	})
}
