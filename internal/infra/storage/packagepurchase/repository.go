package packagepurchase

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/holistia/booking-service/internal/domain"
	"github.com/holistia/booking-service/internal/rules"
	"github.com/holistia/booking-service/pkg/psqlbuilder"
	"github.com/holistia/booking-service/pkg/txmanager"
)

var purchaseColumns = []string{
	"id",
	"patient_id",
	"tier",
	"classes_left",
	"price_paid",
	"payment_method",
	"credit_applied",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository persists Breathe & Move package purchases in Postgres.
type Repository struct {
	db txmanager.Executor
}

// NewRepository creates a package purchase repository over db.
func NewRepository(db txmanager.Executor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new package purchase.
func (r *Repository) Create(ctx context.Context, purchase *domain.PackagePurchase) (*domain.PackagePurchase, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("package_purchases").
		Columns(
			"patient_id",
			"tier",
			"classes_left",
			"price_paid",
			"payment_method",
			"credit_applied",
			"expires_at",
		).
		Values(
			purchase.PatientID,
			purchase.Tier,
			purchase.ClassesLeft,
			purchase.PricePaid,
			purchase.PaymentMethod,
			purchase.CreditApplied,
			purchase.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&purchase.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	purchase.CreatedAt = createdAt.Time
	purchase.UpdatedAt = updatedAt.Time
	return purchase, nil
}

// GetUsableByPatient lists the patient's unexpired packages that still have
// classes left (or are unlimited), oldest expiry first so those about to
// expire get consumed first. Inside a transaction the rows are locked.
func (r *Repository) GetUsableByPatient(ctx context.Context, patientID int64, now time.Time) ([]*domain.PackagePurchase, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(purchaseColumns...).
		From("package_purchases").
		Where(squirrel.Eq{"patient_id": patientID}).
		Where(squirrel.Gt{"expires_at": now}).
		Where(squirrel.Or{
			squirrel.Gt{"classes_left": 0},
			squirrel.Eq{"classes_left": rules.UnlimitedClasses},
		}).
		OrderBy("expires_at ASC")

	if txmanager.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetUsableByPatient - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetUsableByPatient - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	purchases := make([]*domain.PackagePurchase, 0)
	for rows.Next() {
		var p domain.PackagePurchase
		var createdAt, updatedAt sql.NullTime
		err := rows.Scan(
			&p.ID,
			&p.PatientID,
			&p.Tier,
			&p.ClassesLeft,
			&p.PricePaid,
			&p.PaymentMethod,
			&p.CreditApplied,
			&p.ExpiresAt,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetUsableByPatient - scan purchase: %v", ErrScanRow, err)
		}
		p.CreatedAt = createdAt.Time
		p.UpdatedAt = updatedAt.Time
		purchases = append(purchases, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetUsableByPatient - iterate rows: %v", ErrExecQuery, err)
	}
	return purchases, nil
}

// ConsumeClass decrements a finite package by one class. Callers must not
// invoke it for unlimited packages. The guard in the WHERE clause keeps a
// concurrent decrement from driving the count negative.
func (r *Repository) ConsumeClass(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("package_purchases").
		Set("classes_left", squirrel.Expr("classes_left - 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Gt{"classes_left": 0}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: ConsumeClass - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: ConsumeClass - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: ConsumeClass - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrNoClassesLeft
	}
	return nil
}
