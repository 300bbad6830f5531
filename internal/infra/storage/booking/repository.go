package booking

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

// bookingColumns общий список колонок таблицы booking_requests
var bookingColumns = []string{
	"id",
	"client_id",
	"provider_id",
	"service_id",
	"is_instant",
	"requested_time",
	"duration_minutes",
	"price",
	"status",
	"service_name",
	"notes",
	"responded_at",
	"expires_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на сессии
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку.
// Если в контексте передана активная транзакция, использует её.
// Price записывается неокруглённым - котировка фиксируется ровно в том виде,
// в каком её вернул калькулятор
func (r *Repository) Create(ctx context.Context, booking *domain.BookingRequest) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("booking_requests").
		Columns(
			"client_id",
			"provider_id",
			"service_id",
			"is_instant",
			"requested_time",
			"duration_minutes",
			"price",
			"status",
			"service_name",
			"notes",
			"expires_at",
		).
		Values(
			booking.ClientID,
			booking.ProviderID,
			booking.ServiceID,
			booking.IsInstant,
			booking.RequestedTime,
			booking.DurationMinutes,
			booking.Price,
			booking.Status,
			booking.ServiceName,
			booking.Notes,
			booking.ExpiresAt,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает заявку по ID.
// Внутри транзакции блокирует строку (FOR UPDATE) - используется
// usecase'ом ответа на заявку, чтобы проверка окна и переход статуса
// происходили над одной и той же версией строки
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список заявок клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("created_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByProviderWithFilter получает заявки провайдера с гибкой фильтрацией.
// Поддерживает фильтрацию по услуге, периоду создания, статусу,
// только ожидающим ответа и включению неактивных заявок
func (r *Repository) GetByProviderWithFilter(ctx context.Context, filter domain.ProviderBookingsFilter) ([]*domain.BookingRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("booking_requests").
		Where(squirrel.Eq{"provider_id": filter.ProviderID})

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"created_at": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"created_at": *filter.EndDate})
	}

	switch {
	case filter.OnlyPending:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": domain.StatusPending})
	case filter.Status != nil:
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	case !filter.IncludeInactive:
		// Без явного статуса и без неактивных - скрываем отклонённые и истёкшие
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": []string{
			string(domain.StatusDeclined),
			string(domain.StatusExpired),
		}})
	}

	selectBuilder = selectBuilder.OrderBy("created_at DESC")

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatusIfPending условный переход pending -> accepted/declined.
// Предикат по статусу входит в сам UPDATE, поэтому при гонке
// accept/decline выигрывает ровно один вызов - проигравший получает
// ErrStatusConflict и не должен слепо повторять запись
func (r *Repository) UpdateStatusIfPending(ctx context.Context, id int64, status domain.BookingStatus, respondedAt time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", status).
		Set("responded_at", respondedAt).
		Where(squirrel.Eq{"id": id, "status": domain.StatusPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfPending - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfPending - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatusIfPending - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrStatusConflict
	}

	return nil
}

// MarkExpired лениво фиксирует производное истечение мгновенной заявки.
// Окно проверяется прямо в SQL предикате (NOW() транзакции), поэтому запись
// безопасна при конкурентных читателях: сработает ровно у одного,
// остальные получат ErrNothingToExpire
func (r *Repository) MarkExpired(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", domain.StatusExpired).
		Where(squirrel.Eq{"id": id, "is_instant": true}).
		Where(squirrel.Expr(
			"((status = 'pending' AND expires_at < NOW()) OR " +
				"(status = 'accepted' AND responded_at + GREATEST(responded_at - created_at, interval '5 minutes') < NOW()))",
		)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkExpired - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkExpired - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkExpired - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrNothingToExpire
	}

	return nil
}

// MarkCompleted помечает принятую заявку завершённой
func (r *Repository) MarkCompleted(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_requests").
		Set("status", domain.StatusCompleted).
		Where(squirrel.Eq{"id": id, "status": domain.StatusAccepted}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - get rows affected: %v", ErrExecQuery, err)
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

// scanBooking сканирует одну строку в заявку
func scanBooking(row rowScanner) (*domain.BookingRequest, error) {
	var booking domain.BookingRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.ClientID,
		&booking.ProviderID,
		&booking.ServiceID,
		&booking.IsInstant,
		&booking.RequestedTime,
		&booking.DurationMinutes,
		&booking.Price,
		&booking.Status,
		&booking.ServiceName,
		&booking.Notes,
		&booking.RespondedAt,
		&booking.ExpiresAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс заявок
func scanBookings(rows *sql.Rows) ([]*domain.BookingRequest, error) {
	bookings := make([]*domain.BookingRequest, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
