package catalogservice

// Service модель услуги из каталога.
// BasePrice задана за BaseDurationMinutes; поминутную ставку
// из них выводит калькулятор цены
type Service struct {
	ID                  int64   `json:"id"`
	ProviderID          int64   `json:"provider_id"`
	Name                string  `json:"name"`
	BasePrice           float64 `json:"base_price"`
	BaseDurationMinutes int     `json:"base_duration_minutes"`
	IsActive            bool    `json:"is_active"`
}

// ErrorResponse модель ошибки от каталога
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
