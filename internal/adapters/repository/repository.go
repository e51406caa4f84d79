package repository

import (
	"context"

	"github.com/lifedesk/core/internal/infrastructure/database"
)

// withSchema runs op and, when SQLite reports the backing table missing,
// creates the schema and retries once. Every store self-initializes this way
// in addition to the eager bootstrap at process startup.
func withSchema(ctx context.Context, ensure func(context.Context) error, op func() error) error {
	err := op()
	if !database.IsMissingTable(err) {
		return err
	}
	if serr := ensure(ctx); serr != nil {
		return serr
	}
	return op()
}
