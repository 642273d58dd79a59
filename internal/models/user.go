// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и ссылку на сегмент рынка.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
// Хэш пароля наружу не отдаётся.
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	SegmentID    *int64    `json:"segment_id,omitempty"` // Сегмент рынка, на авторизацию не влияет
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"-"`
}

// Segment представляет сегмент рынка из справочника.
type Segment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
