package files

import "context"

// Store persists an uploaded file and returns a publicly resolvable URL.
// The job domain only ever consumes the resulting URL string.
type Store interface {
	Save(ctx context.Context, filename string, data []byte) (string, error)
}
