package credit

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/pkg/psqlbuilder"
	"github.com/holistia/booking-service/pkg/txmanager"
)

var entryColumns = []string{
	"id",
	"patient_id",
	"reference",
	"amount",
	"reason",
	"description",
	"expires_at",
	"created_at",
}

// Repository persists the append-only credit ledger in Postgres.
type Repository struct {
	db txmanager.Executor
}

// NewRepository creates a credit ledger repository over db.
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// CreateEntry appends a ledger entry and returns it with generated fields set.
func (r *Repository) CreateEntry(ctx context.Context, entry *domain.CreditEntry) (*domain.CreditEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("credit_entries").
		Columns(
			"patient_id",
			"reference",
			"amount",
			"reason",
			"description",
			"expires_at",
		).
		Values(
			entry.PatientID,
			entry.Reference,
			entry.Amount,
			entry.Reason,
			entry.Description,
			entry.ExpiresAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateEntry - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&entry.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateEntry - execute insert: %v", ErrExecQuery, err)
	}

	entry.CreatedAt = createdAt.Time
	return entry, nil
}

// GetByPatient lists a patient's ledger entries, newest first. Balance
// derivation (expiry, floors) belongs to the credits service, not the store.
func (r *Repository) GetByPatient(ctx context.Context, patientID int64) ([]*domain.CreditEntry, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(entryColumns...).
		From("credit_entries").
		Where(squirrel.Eq{"patient_id": patientID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPatient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]*domain.CreditEntry, 0)
	for rows.Next() {
		var entry domain.CreditEntry
		var createdAt sql.NullTime
		err := rows.Scan(
			&entry.ID,
			&entry.PatientID,
			&entry.Reference,
			&entry.Amount,
			&entry.Reason,
			&entry.Description,
			&entry.ExpiresAt,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByPatient - scan entry: %v", ErrScanRow, err)
		}
		entry.CreatedAt = createdAt.Time
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPatient - iterate rows: %v", ErrExecQuery, err)
	}
	return entries, nil
}

// HasEntryWithReason reports whether the patient already has an entry with
// the given reason. Used to keep the welcome bonus idempotent.
func (r *Repository) HasEntryWithReason(ctx context.Context, patientID int64, reason domain.CreditReason) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("credit_entries").
		Where(squirrel.Eq{"patient_id": patientID, "reason": reason}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasEntryWithReason - build query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasEntryWithReason - scan count: %v", ErrScanRow, err)
	}
	return count > 0, nil
}
