package pricingrules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/m04kA/SMC-SessionsService/internal/domain"
	"github.com/m04kA/SMC-SessionsService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SessionsService/pkg/psqlbuilder"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
type DBExecutor = dbmetrics.DBExecutor

// ruleColumns общий список колонок таблицы pricing_rules
var ruleColumns = []string{
	"id",
	"provider_id",
	"service_id",
	"peak_multiplier",
	"peak_start_hour",
	"peak_end_hour",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с правилами ценообразования
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил ценообразования
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByProviderAndService получает правило для провайдера и услуги.
// serviceID = nil означает правило провайдера целиком
func (r *Repository) GetByProviderAndService(ctx context.Context, providerID int64, serviceID *int64) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("pricing_rules").
		Where(squirrel.Eq{"provider_id": providerID})

	if serviceID == nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": nil})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *serviceID})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndService - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByProviderAndService - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetRuleWithHierarchy получает правило с учетом иерархии приоритетов.
// Приоритет применения:
// 1. Правило для конкретной услуги (providerID, serviceID)
// 2. Правило провайдера целиком (providerID, NULL)
//
// Если правило не найдено ни на одном уровне, возвращает ErrRuleNotFound -
// вызывающий код трактует это как отсутствие динамической корректировки
func (r *Repository) GetRuleWithHierarchy(ctx context.Context, providerID int64, serviceID int64) (*domain.PricingRule, error) {
	rule, err := r.GetByProviderAndService(ctx, providerID, &serviceID)
	if err == nil {
		return rule, nil
	}
	if err != ErrRuleNotFound {
		return nil, fmt.Errorf("%w: GetRuleWithHierarchy - level 1 (service): %v", ErrExecQuery, err)
	}

	rule, err = r.GetByProviderAndService(ctx, providerID, nil)
	if err == nil {
		return rule, nil
	}
	if err != ErrRuleNotFound {
		return nil, fmt.Errorf("%w: GetRuleWithHierarchy - level 2 (provider): %v", ErrExecQuery, err)
	}

	return nil, ErrRuleNotFound
}

// GetAllByProvider получает все правила провайдера
func (r *Repository) GetAllByProvider(ctx context.Context, providerID int64) ([]*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("pricing_rules").
		Where(squirrel.Eq{"provider_id": providerID}).
		OrderBy("service_id ASC NULLS FIRST").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByProvider - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAllByProvider - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules := make([]*domain.PricingRule, 0)
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetAllByProvider - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAllByProvider - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRule сканирует одну строку в правило
func scanRule(row rowScanner) (*domain.PricingRule, error) {
	var rule domain.PricingRule
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.ProviderID,
		&rule.ServiceID,
		&rule.PeakMultiplier,
		&rule.PeakStartHour,
		&rule.PeakEndHour,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}
