// Package store implements the relational storage backend for quizimport.
// SQLite (modernc.org/sqlite) is the default driver; PostgreSQL is reached
// through lib/pq. Both share the same quoted-identifier SQL, with "?"
// placeholders rebound for PostgreSQL.
package store

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	logger "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/quizimport/pkg/types"
)

var _ types.QuestionStore = (*Backend)(nil)

// timestampLayout matches the ISO-8601 strings the quiz application writes.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// driverNames maps backend names to database/sql driver names.
var driverNames = map[string]string{
	types.BackendSQLite:   "sqlite",
	types.BackendPostgres: "postgres",
}

// Backend implements types.QuestionStore on database/sql.
type Backend struct {
	mu       sync.Mutex
	attached bool
	config   types.Config
	style    types.CategoryStyle
	db       *sql.DB

	// now is the clock used for timestamps; tests replace it.
	now func() time.Time
}

// NewBackend creates a new backend instance.
// The backend is not attached; call Attach with a Config to connect.
func NewBackend() *Backend {
	return &Backend{now: time.Now}
}

// Attach opens and pings the database described by config. A ping failure is
// returned as is, so an unreachable database fails before any prompt.
// Returns ErrAlreadyAttached if already attached.
func (b *Backend) Attach(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.attached {
		return types.ErrAlreadyAttached
	}
	if err := config.Validate(); err != nil {
		return err
	}

	db, err := sql.Open(driverNames[config.Backend], config.Database)
	if err != nil {
		return fmt.Errorf("opening %s database: %w", config.Backend, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("connecting to %s database: %w", config.Backend, err)
	}

	b.db = db
	b.config = config
	b.style = config.Category.WithDefaults()
	b.attached = true

	logger.WithFields(logger.Fields{
		"driver":   config.Backend,
		"database": config.Database,
	}).Debug("attached")
	return nil
}

// Detach closes the database. Detach is idempotent.
func (b *Backend) Detach() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil
	}
	b.attached = false
	err := b.db.Close()
	b.db = nil
	return err
}

// conn returns the open database or ErrDetached.
func (b *Backend) conn() (*sql.DB, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.attached {
		return nil, types.ErrDetached
	}
	return b.db, nil
}

// rebind rewrites "?" placeholders to "$n" for PostgreSQL.
func (b *Backend) rebind(query string) string {
	if b.config.Backend != types.BackendPostgres {
		return query
	}
	var sb strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			sb.WriteByte('$')
			sb.WriteString(strconv.Itoa(n))
			continue
		}
		sb.WriteRune(r)
	}
	return sb.String()
}

// timestamp returns the current time truncated to the stored precision.
func (b *Backend) timestamp() time.Time {
	return b.now().UTC().Truncate(time.Millisecond)
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// parseTime accepts the stored layout and the zone-less ISO form older
// imports wrote. Unparseable values yield the zero time.
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999999"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// generateUUID generates a new UUID v7 for entity IDs.
func generateUUID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
