// Package models содержит доменные структуры контента, рекламных кампаний,
// записей планировщика и входящих сообщений.
package models

import "time"

// Content представляет единицу контента пользователя (арт, публикацию).
// Создание контента расходует квоту arts_count текущего плана.
type Content struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// DummyContent принимает данные контента из JSON-запроса до конвертации в Content.
type DummyContent struct {
	Title       string `json:"title" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
}

// Статусы рекламной кампании.
const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
)

// AdCampaign представляет рекламную кампанию пользователя.
type AdCampaign struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Name      string    `json:"name"`
	Platform  string    `json:"platform"`
	Budget    float64   `json:"budget"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status"`
	Metrics   []byte    `json:"-"` // Сырые метрики площадки, jsonb
	CreatedAt time.Time `json:"created_at"`
}

// DummyCampaign принимает данные новой кампании из JSON-запроса.
// Даты приходят строками в формате 2006-01-02 и парсятся вручную.
type DummyCampaign struct {
	Name      string  `json:"name" validate:"required,min=1,max=200"`
	Platform  string  `json:"platform" validate:"required"`
	Budget    float64 `json:"budget" validate:"required,gt=0"`
	StartDate string  `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string  `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// PlannerEvent представляет запланированную публикацию в календаре.
type PlannerEvent struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Platform  string    `json:"platform"`
	StartDate time.Time `json:"start_date"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyPlannerEvent принимает данные новой публикации из JSON-запроса.
type DummyPlannerEvent struct {
	Title     string `json:"title" validate:"required,min=1,max=200"`
	Content   string `json:"content" validate:"required"`
	Platform  string `json:"platform" validate:"required"`
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
}

// Message представляет входящее сообщение в ящике пользователя.
type Message struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	Sender     string    `json:"sender"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	IsRead     bool      `json:"is_read"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
}

// NotificationSettings хранит настройки уведомлений пользователя.
type NotificationSettings struct {
	UserID             int64 `json:"-"`
	EmailNotifications bool  `json:"email_notifications"`
	PushNotifications  bool  `json:"push_notifications"`
	MarketingEmails    bool  `json:"marketing_emails"`
	NewMessages        bool  `json:"new_messages"`
	ScheduledPosts     bool  `json:"scheduled_posts"`
	CampaignUpdates    bool  `json:"campaign_updates"`
}
