package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/artem13815/jobtrack/pkg/job"
)

// JobRepository stores job applications. Optional text columns keep the
// empty string for absence; JSON encoding of the domain entity drops them.
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) (*JobRepository, error) {
	r := &JobRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *JobRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS jobs (
	id UUID PRIMARY KEY,
	owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	company_name TEXT NOT NULL,
	position_title TEXT NOT NULL,
	link TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	cv_url TEXT NOT NULL DEFAULT '',
	description TEXT NOT NULL DEFAULT '',
	ai_level TEXT NOT NULL DEFAULT '',
	ai_job_type TEXT NOT NULL DEFAULT '',
	ai_summary_role TEXT NOT NULL DEFAULT '',
	ai_summary_tech TEXT NOT NULL DEFAULT '',
	ai_tags JSONB NOT NULL DEFAULT '[]',
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_owner_created ON jobs(owner_id, created_at DESC);
`)
	return err
}

const jobColumns = `id, owner_id, company_name, position_title, link, status, cv_url,
	description, ai_level, ai_job_type, ai_summary_role, ai_summary_tech, ai_tags, created_at`

// Create persists j, assigning id and creation timestamp when unset, and
// returns the stored record.
func (r *JobRepository) Create(ctx context.Context, j job.Job) (job.Job, error) {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now().UTC()
	}
	tags, err := json.Marshal(tagsOrEmpty(j.AITags))
	if err != nil {
		return job.Job{}, fmt.Errorf("marshal tags: %w", err)
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO jobs (`+jobColumns+`)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
`, j.ID, j.OwnerID, j.CompanyName, j.PositionTitle, j.Link, string(j.Status), j.CVUrl,
		j.Description, j.AILevel, j.AIJobType, j.AISummaryRole, j.AISummaryTech, tags, j.CreatedAt)
	if err != nil {
		return job.Job{}, err
	}
	return j, nil
}

func (r *JobRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int) ([]job.Job, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+jobColumns+`
FROM jobs
WHERE owner_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3
`, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var res []job.Job
	for rows.Next() {
		j, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, j)
	}
	return res, rows.Err()
}

func (r *JobRepository) GetByIDForOwner(ctx context.Context, ownerID, id uuid.UUID) (job.Job, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+jobColumns+`
FROM jobs WHERE id = $1 AND owner_id = $2
`, id, ownerID)
	j, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Job{}, job.ErrNotFound
		}
		return job.Job{}, err
	}
	return j, nil
}

// UpdateForOwner applies the non-nil fields of upd. Zero affected rows mean
// the job does not exist or belongs to someone else; both map to ErrNotFound.
func (r *JobRepository) UpdateForOwner(ctx context.Context, ownerID, id uuid.UUID, upd job.Update) error {
	set := make([]string, 0, 5)
	args := []any{id, ownerID}
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if upd.CompanyName != nil {
		add("company_name", *upd.CompanyName)
	}
	if upd.PositionTitle != nil {
		add("position_title", *upd.PositionTitle)
	}
	if upd.Link != nil {
		add("link", *upd.Link)
	}
	if upd.Status != nil {
		add("status", string(*upd.Status))
	}
	if upd.CVUrl != nil {
		add("cv_url", *upd.CVUrl)
	}
	if len(set) == 0 {
		return nil
	}
	q := "UPDATE jobs SET " + strings.Join(set, ", ") + " WHERE id = $1 AND owner_id = $2"
	cmd, err := r.pool.Exec(ctx, q, args...)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func (r *JobRepository) DeleteForOwner(ctx context.Context, ownerID, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return job.ErrNotFound
	}
	return nil
}

func scanJob(row pgx.Row) (job.Job, error) {
	var j job.Job
	var status string
	var tagsJSON []byte
	var created time.Time
	if err := row.Scan(&j.ID, &j.OwnerID, &j.CompanyName, &j.PositionTitle, &j.Link, &status, &j.CVUrl,
		&j.Description, &j.AILevel, &j.AIJobType, &j.AISummaryRole, &j.AISummaryTech, &tagsJSON, &created); err != nil {
		return job.Job{}, err
	}
	j.Status = job.Status(status)
	j.CreatedAt = created.UTC()
	var tags []string
	if err := json.Unmarshal(tagsJSON, &tags); err != nil {
		return job.Job{}, fmt.Errorf("unmarshal tags: %w", err)
	}
	if len(tags) > 0 {
		j.AITags = tags
	}
	return j, nil
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
