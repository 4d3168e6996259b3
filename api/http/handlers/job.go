package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobtrack/api/http/presenter"
	"github.com/artem13815/jobtrack/pkg/job"
)

type JobHandler struct {
	uc job.UseCase
}

func NewJobHandler(uc job.UseCase) *JobHandler { return &JobHandler{uc: uc} }

type createJobRequest struct {
	CompanyName   string `json:"companyName"`
	PositionTitle string `json:"positionTitle"`
	Link          string `json:"link"`
	Status        string `json:"status"`
}

// Create adds a job entry; when a link is present the enrichment pipeline
// fills the AI fields best-effort before the record is stored.
// @Summary Create job entry
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   input body createJobRequest true "job payload"
// @Security BearerAuth
// @Success 201 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	ownerID, err := ownerFromLocals(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthorized, "could not identify user")
	}
	var req createJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	created, err := h.uc.Create(c.Context(), ownerID, job.CreateRequest{
		CompanyName:   req.CompanyName,
		PositionTitle: req.PositionTitle,
		Link:          req.Link,
		Status:        req.Status,
	})
	if err != nil {
		var verr job.ValidationError
		if errors.As(err, &verr) {
			return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, verr.Error())
		}
		return presenter.Error(c, http.StatusInternalServerError, presenter.KindInternal, "failed to create job")
	}
	return presenter.JSON(c, http.StatusCreated, created)
}

// List returns the caller's jobs, newest first.
// @Summary List job entries
// @Tags    jobs
// @Produce json
// @Param   limit query int false "page size (max 200)"
// @Param   offset query int false "page offset"
// @Security BearerAuth
// @Success 200 {array} job.Job
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	ownerID, err := ownerFromLocals(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthorized, "could not identify user")
	}
	limit, offset := parseLimitOffset(c, 50)
	jobs, err := h.uc.List(c.Context(), ownerID, limit, offset)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, presenter.KindInternal, "failed to fetch jobs")
	}
	if jobs == nil {
		jobs = []job.Job{}
	}
	return presenter.JSON(c, http.StatusOK, jobs)
}

// GetByID returns one of the caller's jobs.
// @Summary Get job entry
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) GetByID(c *fiber.Ctx) error {
	ownerID, err := ownerFromLocals(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid job id")
	}
	j, err := h.uc.Get(c.Context(), ownerID, id)
	if err != nil {
		return jobError(c, err, "failed to fetch job")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

type updateJobRequest struct {
	CompanyName   *string `json:"companyName"`
	PositionTitle *string `json:"positionTitle"`
	Link          *string `json:"link"`
	Status        *string `json:"status"`
	CVUrl         *string `json:"cvUrl"`
}

// Update partially mutates a job entry (status change, cvUrl attach, field
// edits). AI-derived fields are write-once and not updatable here.
// @Summary Update job entry
// @Tags    jobs
// @Accept  json
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Param   input body updateJobRequest true "fields to update"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [patch]
func (h *JobHandler) Update(c *fiber.Ctx) error {
	ownerID, err := ownerFromLocals(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid job id")
	}
	var req updateJobRequest
	if err := c.BodyParser(&req); err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid JSON payload")
	}
	upd := job.Update{
		CompanyName:   req.CompanyName,
		PositionTitle: req.PositionTitle,
		Link:          req.Link,
		CVUrl:         req.CVUrl,
	}
	if req.Status != nil {
		status, ok := job.ParseStatus(*req.Status)
		if !ok {
			return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "status must be one of Applied, Interview, Offer, Rejected")
		}
		upd.Status = &status
	}
	j, err := h.uc.Update(c.Context(), ownerID, id, upd)
	if err != nil {
		return jobError(c, err, "failed to update job")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

// Delete removes a job entry.
// @Summary Delete job entry
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Security BearerAuth
// @Success 204 {object} nil
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [delete]
func (h *JobHandler) Delete(c *fiber.Ctx) error {
	ownerID, err := ownerFromLocals(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid job id")
	}
	if err := h.uc.Delete(c.Context(), ownerID, id); err != nil {
		return jobError(c, err, "failed to delete job")
	}
	return c.SendStatus(http.StatusNoContent)
}

func ownerFromLocals(c *fiber.Ctx) (uuid.UUID, error) {
	idStr, _ := c.Locals("userId").(string)
	return uuid.Parse(idStr)
}

// jobError maps domain errors to responses. A record that exists but is
// owned by someone else answers exactly like a missing one.
func jobError(c *fiber.Ctx, err error, fallback string) error {
	if errors.Is(err, job.ErrNotFound) {
		return presenter.Error(c, http.StatusNotFound, presenter.KindNotFound, "job not found")
	}
	return presenter.Error(c, http.StatusInternalServerError, presenter.KindInternal, fallback)
}
