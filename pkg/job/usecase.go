package job

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobtrack/pkg/enrich"
)

// PlaceholderTitle is stored when neither the user nor the extraction
// produced a position title.
const PlaceholderTitle = "Untitled Job"

// UseCase covers the job application scenarios.
type UseCase interface {
	Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (Job, error)
	List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Job, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, upd Update) (Job, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	AttachCV(ctx context.Context, ownerID, id uuid.UUID, cvURL string) (Job, error)
}

type service struct {
	repo     Repository
	enricher Enricher
}

// NewService wires the job use case. enricher may be nil, in which case
// jobs are created exactly as submitted.
func NewService(repo Repository, enricher Enricher) UseCase {
	return &service{repo: repo, enricher: enricher}
}

// Create validates the request, runs the optional enrichment pipeline and
// persists the merged record. Enrichment failures never fail the call: job
// creation succeeds whenever the store accepts the write.
func (s *service) Create(ctx context.Context, ownerID uuid.UUID, req CreateRequest) (Job, error) {
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	req.PositionTitle = strings.TrimSpace(req.PositionTitle)
	req.Link = strings.TrimSpace(req.Link)
	if req.CompanyName == "" {
		return Job{}, ValidationError("companyName is required")
	}
	status, ok := ParseStatus(req.Status)
	if !ok {
		return Job{}, ValidationError("status must be one of Applied, Interview, Offer, Rejected")
	}
	req.Status = string(status)

	var res enrich.Result
	if s.enricher != nil && req.Link != "" {
		res = s.enricher.Enrich(ctx, req.Link)
	}

	j := merge(ownerID, req, res)
	return s.repo.Create(ctx, j)
}

// merge builds the create payload from the user request and whatever the
// pipeline produced. Pure function: equal inputs yield identical payloads.
func merge(ownerID uuid.UUID, req CreateRequest, res enrich.Result) Job {
	j := Job{
		OwnerID:     ownerID,
		CompanyName: req.CompanyName,
		Link:        req.Link,
		Status:      Status(req.Status),
	}

	ext := res.Extraction
	switch {
	case ext != nil && ext.PositionTitle != "":
		j.PositionTitle = ext.PositionTitle
	case req.PositionTitle != "":
		j.PositionTitle = req.PositionTitle
	default:
		j.PositionTitle = PlaceholderTitle
	}

	if ext != nil {
		j.Description = ext.Description
		j.AILevel = ext.AILevel
		j.AIJobType = ext.AIJobType
		j.AISummaryRole = ext.AISummaryRole
		j.AISummaryTech = ext.AISummaryTech
		j.AITags = ext.AITags
	} else {
		// Partial value: the scrape may have succeeded even though
		// extraction did not.
		j.Description = res.Description
	}
	return j
}

func (s *service) List(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]Job, error) {
	return s.repo.ListByOwner(ctx, ownerID, limit, offset)
}

func (s *service) Get(ctx context.Context, ownerID, id uuid.UUID) (Job, error) {
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

// Update applies a partial mutation. An empty update returns the stored
// record unchanged; zero affected rows surface as ErrNotFound.
func (s *service) Update(ctx context.Context, ownerID, id uuid.UUID, upd Update) (Job, error) {
	if upd.Empty() {
		return s.repo.GetByIDForOwner(ctx, ownerID, id)
	}
	if err := s.repo.UpdateForOwner(ctx, ownerID, id, upd); err != nil {
		return Job{}, err
	}
	return s.repo.GetByIDForOwner(ctx, ownerID, id)
}

func (s *service) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return s.repo.DeleteForOwner(ctx, ownerID, id)
}

func (s *service) AttachCV(ctx context.Context, ownerID, id uuid.UUID, cvURL string) (Job, error) {
	return s.Update(ctx, ownerID, id, Update{CVUrl: &cvURL})
}
