package dashboard

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/finboard/finboard/internal/database"
	log "github.com/sirupsen/logrus"
)

var (
	ErrLayoutNotFound = errors.New("dashboard layout not found")
	// ErrLayoutConflict means the stored layout changed since it was read.
	ErrLayoutConflict = errors.New("dashboard layout was changed concurrently")
)

// LayoutRepository persists one layout per user. Store writes only when the
// stored revision still equals layout.Revision, and bumps it.
type LayoutRepository interface {
	Get(ctx context.Context, userUid string) (StoredLayout, error)
	Store(ctx context.Context, userUid string, layout StoredLayout) error
	Delete(ctx context.Context, userUid string) (bool, error)
}

// LayoutRepositoryImpl stores layouts in the dashboard_layout table. Widget
// lists are JSON encoded so the schema is identical on Postgres and SQLite.
type LayoutRepositoryImpl struct {
	db     *sql.DB
	driver string
}

// NewLayoutRepository builds a repository for the given database driver.
func NewLayoutRepository(db *sql.DB, driver string) *LayoutRepositoryImpl {
	return &LayoutRepositoryImpl{db: db, driver: driver}
}

// Get returns ErrLayoutNotFound when the user never saved a layout.
func (r *LayoutRepositoryImpl) Get(ctx context.Context, userUid string) (StoredLayout, error) {
	query := database.Rebind(r.driver,
		`SELECT widget_order, visible_widgets, pinned_accounts, updated_at, revision FROM dashboard_layout WHERE user_uid = ?`)

	var (
		order, visible, pinned string
		updatedAt              database.Timestamp
		revision               int64
	)
	err := r.db.QueryRowContext(ctx, query, userUid).Scan(&order, &visible, &pinned, &updatedAt, &revision)
	if errors.Is(err, sql.ErrNoRows) {
		return StoredLayout{}, ErrLayoutNotFound
	}
	if err != nil {
		log.Errorf("failed to read dashboard layout of %s: %v", userUid, err)
		return StoredLayout{}, fmt.Errorf("failed to read dashboard layout: %w", err)
	}

	layout := StoredLayout{UpdatedAt: updatedAt.Time, Revision: revision}
	if err := decodeList(order, &layout.Order); err != nil {
		return StoredLayout{}, err
	}
	if err := decodeList(visible, &layout.Visible); err != nil {
		return StoredLayout{}, err
	}
	if err := decodeList(pinned, &layout.PinnedAccounts); err != nil {
		return StoredLayout{}, err
	}
	return layout, nil
}

// Store inserts the first layout of a user or updates it when layout.Revision
// is still current. Otherwise it returns ErrLayoutConflict.
func (r *LayoutRepositoryImpl) Store(ctx context.Context, userUid string, layout StoredLayout) error {
	order, err := encodeList(layout.Order)
	if err != nil {
		return err
	}
	visible, err := encodeList(layout.Visible)
	if err != nil {
		return err
	}
	pinned, err := encodeList(layout.PinnedAccounts)
	if err != nil {
		return err
	}
	updatedAt := layout.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	var res sql.Result
	if layout.Revision == 0 {
		query := database.Rebind(r.driver, `
			INSERT INTO dashboard_layout (user_uid, widget_order, visible_widgets, pinned_accounts, updated_at, revision)
			VALUES (?, ?, ?, ?, ?, 1)
			ON CONFLICT (user_uid) DO NOTHING`)
		res, err = r.db.ExecContext(ctx, query, userUid, order, visible, pinned, updatedAt.UTC())
	} else {
		query := database.Rebind(r.driver, `
			UPDATE dashboard_layout SET
				widget_order = ?,
				visible_widgets = ?,
				pinned_accounts = ?,
				updated_at = ?,
				revision = revision + 1
			WHERE user_uid = ? AND revision = ?`)
		res, err = r.db.ExecContext(ctx, query, order, visible, pinned, updatedAt.UTC(), userUid, layout.Revision)
	}
	if err != nil {
		log.Errorf("failed to store dashboard layout of %s: %v", userUid, err)
		return fmt.Errorf("failed to store dashboard layout: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to store dashboard layout: %w", err)
	}
	if affected == 0 {
		return ErrLayoutConflict
	}
	return nil
}

// Delete reports whether a layout was stored.
func (r *LayoutRepositoryImpl) Delete(ctx context.Context, userUid string) (bool, error) {
	query := database.Rebind(r.driver, `DELETE FROM dashboard_layout WHERE user_uid = ?`)
	res, err := r.db.ExecContext(ctx, query, userUid)
	if err != nil {
		return false, fmt.Errorf("failed to delete dashboard layout: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete dashboard layout: %w", err)
	}
	return affected > 0, nil
}

func encodeList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}
	encoded, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode layout list: %w", err)
	}
	return string(encoded), nil
}

func decodeList[T any](encoded string, dst *[]T) error {
	if err := json.Unmarshal([]byte(encoded), dst); err != nil {
		return fmt.Errorf("failed to decode layout list: %w", err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}
