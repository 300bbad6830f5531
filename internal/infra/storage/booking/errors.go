package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда заявка не найдена
	ErrBookingNotFound = errors.New("booking.repository: booking request not found")

	// ErrStatusConflict возвращается, когда условный переход статуса не прошёл:
	// заявка уже не в статусе pending (гонка accept/decline или истечение)
	ErrStatusConflict = errors.New("booking.repository: status precondition failed")

	// ErrNothingToExpire возвращается, когда ленивое истечение не нашло
	// заявку с истёкшим окном (уже истекла или окно ещё открыто)
	ErrNothingToExpire = errors.New("booking.repository: nothing to expire")

	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("booking.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
