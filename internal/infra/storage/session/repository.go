package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SessionsService/internal/domain"
	"github.com/m04kA/SMC-SessionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionsService/pkg/psqlbuilder"
)

// sessionColumns общий список колонок таблицы sessions
var sessionColumns = []string{
	"id",
	"booking_id",
	"client_id",
	"provider_id",
	"service_id",
	"start_time",
	"end_time",
	"status",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с сессиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает сессию из принятой заявки.
// Вызывается внутри той же транзакции, что и переход статуса заявки
func (r *Repository) Create(ctx context.Context, s *domain.Session) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("sessions").
		Columns(
			"booking_id",
			"client_id",
			"provider_id",
			"service_id",
			"start_time",
			"end_time",
			"status",
		).
		Values(
			s.BookingID,
			s.ClientID,
			s.ProviderID,
			s.ServiceID,
			s.StartTime,
			s.EndTime,
			s.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

// GetByID получает сессию по ID.
// Внутри транзакции блокирует строку (FOR UPDATE)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	s, err := scanSession(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan session: %v", ErrScanRow, err)
	}

	return s, nil
}

// GetByParticipant получает сессии, где пользователь - клиент или провайдер
// Опционально фильтрует по статусу
func (r *Repository) GetByParticipant(ctx context.Context, userID int64, status *domain.SessionStatus) ([]*domain.Session, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(sessionColumns...).
		From("sessions").
		Where(squirrel.Or{
			squirrel.Eq{"client_id": userID},
			squirrel.Eq{"provider_id": userID},
		}).
		OrderBy("start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanSessions(rows)
}

// Reschedule атомарно заменяет start_time/end_time сессии.
// Предикат окна повторяется в SQL (NOW() транзакции), а не только
// в предварительной проверке usecase'а: перенос после открытия
// 15-минутного окна подключения не пройдёт даже при устаревшем чтении
func (r *Repository) Reschedule(ctx context.Context, id int64, newStart, newEnd time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("sessions").
		Set("start_time", newStart).
		Set("end_time", newEnd).
		Where(squirrel.Eq{"id": id, "status": domain.SessionScheduled}).
		Where(squirrel.Expr("start_time > NOW() + interval '15 minutes'")).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRescheduleConflict
	}

	return nil
}

// UpdateStatus условный переход статуса сессии.
// allowedFrom задает статусы, из которых переход разрешён
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.SessionStatus, allowedFrom []domain.SessionStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	fromStrings := make([]string, len(allowedFrom))
	for i, s := range allowedFrom {
		fromStrings[i] = string(s)
	}

	query, args, err := psqlbuilder.Update("sessions").
		Set("status", status).
		Where(squirrel.Eq{"id": id, "status": fromStrings}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSession сканирует одну строку в сессию
func scanSession(row rowScanner) (*domain.Session, error) {
	var s domain.Session
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&s.ID,
		&s.BookingID,
		&s.ClientID,
		&s.ProviderID,
		&s.ServiceID,
		&s.StartTime,
		&s.EndTime,
		&s.Status,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// scanSessions сканирует результаты запроса в слайс сессий
func scanSessions(rows *sql.Rows) ([]*domain.Session, error) {
	sessions := make([]*domain.Session, 0)

	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSessions - scan row: %v", ErrScanRow, err)
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSessions - rows error: %v", ErrScanRow, err)
	}

	return sessions, nil
}
