// Package repository реализует хранилище данных на основе PostgreSQL
// для пользователей, тарифных планов, подписок и пользовательских
// ресурсов (контент, кампании, планировщик, сообщения). Все запросы
// параметризованы; отсутствие записи — обычное значение ErrNotFound,
// а не исключительная ситуация.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrNotFound возвращается, когда запрошенная запись отсутствует.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken возвращается при попытке создать пользователя с занятым email.
var ErrEmailTaken = errors.New("email already taken")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, планами и подписками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckReady проверяет, что схема базы данных готова к работе:
// миграции применены и ключевая таблица подписок существует.
func (s *Storage) CheckReady(ctx context.Context) error {
	const op = "storage.CheckReady"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'subscriptions'
    )`).Scan(&exists)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !exists {
		return fmt.Errorf("%s: required table subscriptions is missing", op)
	}
	return nil
}
