package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// CreateContent вставляет новую единицу контента и возвращает её ID.
func (s *Storage) CreateContent(ctx context.Context, content models.Content) (int64, error) {
	const op = "storage.CreateContent"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO contents (user_id, title, description, image_url, status)
			  VALUES ($1, $2, $3, $4, $5)
			  RETURNING id`
	var newID int64
	err := s.DB.QueryRowContext(ctx, query,
		content.UserID, content.Title, content.Description, content.ImageURL,
		content.Status).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListContents возвращает контент пользователя от новых к старым.
func (s *Storage) ListContents(ctx context.Context, userID int64) ([]*models.Content, error) {
	const op = "storage.ListContents"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, title, description, image_url, status, created_at
			  FROM contents
			  WHERE user_id = $1
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Content
	for rows.Next() {
		var c models.Content
		if err = rows.Scan(&c.ID, &c.UserID, &c.Title, &c.Description,
			&c.ImageURL, &c.Status, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountContents подсчитывает число единиц контента пользователя.
// Используется шлюзом авторизации при проверке квоты плана.
func (s *Storage) CountContents(ctx context.Context, userID int64) (int, error) {
	const op = "storage.CountContents"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT COUNT(*) FROM contents WHERE user_id = $1`
	var count int
	if err := s.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return count, nil
}
