package mistakes

import (
	"context"
	"fmt"

	clog "github.com/charmbracelet/log"

	"github.com/abhisek/mathdrill/internal/logging"
)

// Key is the name of the persisted entry holding the mistake array.
const Key = "mistakes"

// KV is the subset of the key/value store the repo needs.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string) error
}

// Repo reads and writes the mistake collection. Every operation goes
// straight to the backing store; nothing is cached between calls.
type Repo struct {
	kv     KV
	logger *clog.Logger
}

// NewRepo returns a Repo over kv. A nil logger discards warnings.
func NewRepo(kv KV, logger *clog.Logger) *Repo {
	return &Repo{kv: kv, logger: logging.OrDiscard(logger)}
}

// Load returns the persisted records in insertion order, exactly as
// stored. A missing or corrupt entry loads as empty. Records are not
// checked against their question; callers that rebuild problems use
// Record.Problem and skip what fails.
func (r *Repo) Load(ctx context.Context) ([]Record, error) {
	raw, ok, err := r.kv.Get(ctx, Key)
	if err != nil {
		return nil, fmt.Errorf("load mistakes: %w", err)
	}
	if !ok {
		return nil, nil
	}

	recs, err := Decode([]byte(raw))
	if err != nil {
		r.logger.Warn("discarding unreadable mistake store", "err", err)
		return nil, nil
	}
	return recs, nil
}

// Count returns the number of stored records.
func (r *Repo) Count(ctx context.Context) (int, error) {
	recs, err := r.Load(ctx)
	if err != nil {
		return 0, err
	}
	return len(recs), nil
}

// Append adds rec to the end of the collection. The current collection is
// re-read first so writes made elsewhere are not lost.
func (r *Repo) Append(ctx context.Context, rec Record) error {
	recs, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return r.write(ctx, append(recs, rec))
}

// AppendAll adds recs to the end of the collection in one write.
func (r *Repo) AppendAll(ctx context.Context, recs []Record) error {
	current, err := r.Load(ctx)
	if err != nil {
		return err
	}
	return r.write(ctx, append(current, recs...))
}

// Clear empties the collection.
func (r *Repo) Clear(ctx context.Context) error {
	return r.write(ctx, nil)
}

// ReplaceAll overwrites the collection with recs.
func (r *Repo) ReplaceAll(ctx context.Context, recs []Record) error {
	return r.write(ctx, recs)
}

// Export returns the persisted array exactly as stored by Encode.
func (r *Repo) Export(ctx context.Context) ([]byte, error) {
	recs, err := r.Load(ctx)
	if err != nil {
		return nil, err
	}
	return Encode(recs)
}

func (r *Repo) write(ctx context.Context, recs []Record) error {
	data, err := Encode(recs)
	if err != nil {
		return fmt.Errorf("encode mistakes: %w", err)
	}
	if err := r.kv.Put(ctx, Key, string(data)); err != nil {
		return fmt.Errorf("save mistakes: %w", err)
	}
	return nil
}
