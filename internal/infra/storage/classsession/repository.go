package classsession

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/pkg/psqlbuilder"
	"github.com/holistia/booking-service/pkg/txmanager"
)

// enrolledCount is a correlated subquery so listings carry the live count.
const enrolledCount = "(SELECT COUNT(*) FROM class_enrollments e WHERE e.session_id = class_sessions.id) AS enrolled"

const uniqueViolation = "23505"

var sessionColumns = []string{
	"id",
	"instructor_id",
	"title",
	"session_date",
	"start_time",
	"duration_minutes",
	"capacity",
	enrolledCount,
	"cancelled",
	"created_at",
	"updated_at",
}

// Repository persists Breathe & Move sessions and enrollments in Postgres.
type Repository struct {
	db txmanager.Executor
}

// NewRepository creates a class session repository over db.
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new class session.
func (r *Repository) Create(ctx context.Context, session *domain.ClassSession) (*domain.ClassSession, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("class_sessions").
		Columns(
			"instructor_id",
			"title",
			"session_date",
			"start_time",
			"duration_minutes",
			"capacity",
		).
		Values(
			session.InstructorID,
			session.Title,
			session.Date,
			session.StartTime,
			session.DurationMin,
			session.Capacity,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&session.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time
	return session, nil
}

// GetByID fetches a session with its live enrollment count. Inside a
// transaction the session row is locked, serializing concurrent enrollments.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ClassSession, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("class_sessions").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF class_sessions")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	session, err := scanSession(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}
	return session, nil
}

// GetByDate lists active sessions on a date, earliest first.
func (r *Repository) GetByDate(ctx context.Context, date time.Time) ([]*domain.ClassSession, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(sessionColumns...).
		From("class_sessions").
		Where(squirrel.Eq{"session_date": date, "cancelled": false}).
		OrderBy("start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	sessions := make([]*domain.ClassSession, 0)
	for rows.Next() {
		session, err := scanSession(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByDate - scan session: %v", ErrScanRow, err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByDate - iterate rows: %v", ErrExecQuery, err)
	}
	return sessions, nil
}

// CreateEnrollment inserts an enrollment. A unique constraint on
// (session_id, patient_id) turns duplicates into ErrAlreadyEnrolled.
func (r *Repository) CreateEnrollment(ctx context.Context, enrollment *domain.Enrollment) (*domain.Enrollment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("class_enrollments").
		Columns("session_id", "patient_id", "purchase_id").
		Values(enrollment.SessionID, enrollment.PatientID, enrollment.PurchaseID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateEnrollment - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&enrollment.ID, &createdAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrAlreadyEnrolled
		}
		return nil, fmt.Errorf("%w: CreateEnrollment - execute insert: %v", ErrExecQuery, err)
	}

	enrollment.CreatedAt = createdAt.Time
	return enrollment, nil
}

// HasEnrollment reports whether the patient already holds a spot.
func (r *Repository) HasEnrollment(ctx context.Context, sessionID, patientID int64) (bool, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("class_enrollments").
		Where(squirrel.Eq{"session_id": sessionID, "patient_id": patientID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasEnrollment - build query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, fmt.Errorf("%w: HasEnrollment - scan count: %v", ErrScanRow, err)
	}
	return count > 0, nil
}

func scanSession(scan func(dest ...interface{}) error) (*domain.ClassSession, error) {
	var session domain.ClassSession
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&session.ID,
		&session.InstructorID,
		&session.Title,
		&session.Date,
		&session.StartTime,
		&session.DurationMin,
		&session.Capacity,
		&session.Enrolled,
		&session.Cancelled,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.CreatedAt = createdAt.Time
	session.UpdatedAt = updatedAt.Time
	return &session, nil
}
