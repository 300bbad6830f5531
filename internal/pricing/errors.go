package pricing

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных расчёта:
	// отрицательная базовая цена или неположительная длительность.
	// Это ошибка вызывающего кода, не повторяется
	ErrInvalidInput = errors.New("pricing: invalid input")
)
