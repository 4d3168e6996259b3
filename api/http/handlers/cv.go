package handlers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pdf "github.com/ledongthuc/pdf"

	"github.com/artem13815/jobtrack/api/http/presenter"
	"github.com/artem13815/jobtrack/pkg/job"
	"github.com/artem13815/jobtrack/pkg/storage/files"
)

// CVHandler attaches an uploaded CV to a job entry.
type CVHandler struct {
	uc    job.UseCase
	store files.Store
	// Limit uploaded file size read into memory (bytes)
	maxBytes int64
}

func NewCVHandler(uc job.UseCase, store files.Store) *CVHandler {
	return &CVHandler{uc: uc, store: store, maxBytes: 15 << 20} // 15MB
}

// Upload stores the CV file and writes its public URL onto the job record.
// @Summary Attach CV to job entry
// @Tags    jobs
// @Accept  multipart/form-data
// @Produce json
// @Param   id path string true "job id (UUID)"
// @Param   file formData file true "CV file (PDF or DOCX)"
// @Security BearerAuth
// @Success 200 {object} job.Job
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id}/cv [post]
func (h *CVHandler) Upload(c *fiber.Ctx) error {
	ownerID, err := ownerFromLocals(c)
	if err != nil {
		return presenter.Error(c, http.StatusUnauthorized, presenter.KindUnauthorized, "could not identify user")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "invalid job id")
	}
	// Resolve the job before touching storage, so an upload against a
	// missing or foreign id leaves no orphan file behind.
	if _, err := h.uc.Get(c.Context(), ownerID, id); err != nil {
		return jobError(c, err, "failed to attach cv")
	}
	fh, err := c.FormFile("file")
	if err != nil || fh == nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "file is required (pdf or docx)")
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if ext != ".pdf" && ext != ".docx" {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "unsupported file format: only pdf and docx are allowed")
	}
	file, err := fh.Open()
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "failed to open uploaded file")
	}
	defer file.Close()

	data, err := readAtMost(file, h.maxBytes)
	if err != nil {
		return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, err.Error())
	}
	if ext == ".pdf" {
		// Reject files that merely claim to be PDFs.
		if _, err := pdf.NewReader(bytes.NewReader(data), int64(len(data))); err != nil {
			return presenter.Error(c, http.StatusBadRequest, presenter.KindValidation, "file is not a valid PDF")
		}
	}

	cvURL, err := h.store.Save(c.Context(), fh.Filename, data)
	if err != nil {
		return presenter.Error(c, http.StatusInternalServerError, presenter.KindInternal, "failed to store file")
	}
	j, err := h.uc.AttachCV(c.Context(), ownerID, id, cvURL)
	if err != nil {
		return jobError(c, err, "failed to attach cv")
	}
	return presenter.JSON(c, http.StatusOK, j)
}

func readAtMost(f multipart.File, max int64) ([]byte, error) {
	limited := io.LimitReader(f, max+1)
	b, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(b)) > max {
		return nil, fmt.Errorf("file too large: limit is %d bytes", max)
	}
	return b, nil
}
