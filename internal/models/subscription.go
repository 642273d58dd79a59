// Package models содержит доменные структуры тарифных планов и подписок,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

import "time"

// Статусы подписки. Переход inactive -> active не существует:
// повторная активация моделируется новой строкой active.
const (
	SubscriptionStatusActive   = "active"
	SubscriptionStatusInactive = "inactive"
)

// Plan описывает тарифный план из справочника.
// Справочник только для чтения, пользовательскими операциями не изменяется.
type Plan struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	ArtsCount    int     `json:"arts_count"`    // Квота контента на период
	HasAds       bool    `json:"has_ads"`       // Доступ к модулю рекламы
	HasDashboard bool    `json:"has_dashboard"` // Доступ к дашборду аналитики
}

// Subscription связывает пользователя с тарифным планом на период действия.
// В любой момент у пользователя не более одной строки со статусом active.
type Subscription struct {
	ID                 int64     `json:"id"`
	UserID             int64     `json:"user_id"`
	PlanID             int64     `json:"plan_id"`
	Status             string    `json:"status"`
	CurrentPeriodStart time.Time `json:"current_period_start"`
	CurrentPeriodEnd   time.Time `json:"current_period_end"`
	CreatedAt          time.Time `json:"created_at"`
}

// SubscriptionWithPlan объединяет активную подписку с данными её плана.
// Используется шлюзом авторизации для вычисления прав доступа.
type SubscriptionWithPlan struct {
	Subscription
	Plan Plan `json:"plan"`
}
