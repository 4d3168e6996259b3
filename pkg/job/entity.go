package job

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/artem13815/jobtrack/pkg/enrich"
)

// Status is the application stage of a tracked job.
type Status string

const (
	StatusApplied   Status = "Applied"
	StatusInterview Status = "Interview"
	StatusOffer     Status = "Offer"
	StatusRejected  Status = "Rejected"
)

// ParseStatus maps a user-supplied string to a Status. Empty input falls
// back to the default stage, Applied.
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case "":
		return StatusApplied, true
	case StatusApplied, StatusInterview, StatusOffer, StatusRejected:
		return Status(s), true
	}
	return "", false
}

// Job is a persisted job application. Optional fields use the empty string
// as absence; JSON encoding drops them. Enrichment fields are set at most
// once, at creation time; there is no re-enrich path.
type Job struct {
	ID            uuid.UUID `json:"id"`
	OwnerID       uuid.UUID `json:"-"`
	CompanyName   string    `json:"companyName"`
	PositionTitle string    `json:"positionTitle"`
	Link          string    `json:"link,omitempty"`
	Status        Status    `json:"status"`
	CVUrl         string    `json:"cvUrl,omitempty"`
	Description   string    `json:"description,omitempty"`
	AILevel       string    `json:"aiLevel,omitempty"`
	AIJobType     string    `json:"aiJobType,omitempty"`
	AISummaryRole string    `json:"aiSummaryRole,omitempty"`
	AISummaryTech string    `json:"aiSummaryTech,omitempty"`
	AITags        []string  `json:"aiTags,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreateRequest is the user-supplied part of a new job entry.
type CreateRequest struct {
	CompanyName   string
	PositionTitle string
	Link          string
	Status        string
}

// Update is a partial mutation of a stored job; nil fields are left alone.
type Update struct {
	CompanyName   *string
	PositionTitle *string
	Link          *string
	Status        *Status
	CVUrl         *string
}

// Empty reports whether the update touches nothing.
func (u Update) Empty() bool {
	return u.CompanyName == nil && u.PositionTitle == nil && u.Link == nil &&
		u.Status == nil && u.CVUrl == nil
}

// ErrNotFound covers both a missing record and one owned by another user;
// the two cases are intentionally indistinguishable to callers.
var ErrNotFound = errors.New("job not found")

// ValidationError rejects a request before any enrichment or persistence.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }

// Repository is the persistence port for job records. Every read and write
// is scoped by the owning user at the query level — a job id alone is never
// trusted.
type Repository interface {
	Create(ctx context.Context, j Job) (Job, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error)
	GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (Job, error)
	UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, upd Update) error
	DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error
}

// Enricher produces optional enrichment for a job link. Implementations
// must degrade to an empty Result rather than fail.
type Enricher interface {
	Enrich(ctx context.Context, link string) enrich.Result
}
