package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/marketing-hub/internal/models"
)

// ListMessages возвращает неархивированные сообщения пользователя
// от новых к старым.
func (s *Storage) ListMessages(ctx context.Context, userID int64) ([]*models.Message, error) {
	const op = "storage.ListMessages"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, user_id, sender, subject, body, is_read, is_archived, created_at
			  FROM messages
			  WHERE user_id = $1 AND is_archived = FALSE
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Message
	for rows.Next() {
		var m models.Message
		if err = rows.Scan(&m.ID, &m.UserID, &m.Sender, &m.Subject, &m.Body,
			&m.IsRead, &m.IsArchived, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ArchiveMessage помечает сообщение пользователя архивированным.
func (s *Storage) ArchiveMessage(ctx context.Context, id, userID int64) error {
	const op = "storage.ArchiveMessage"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE messages SET is_archived = TRUE WHERE id = $1 AND user_id = $2`
	result, err := s.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// UpsertNotificationSettings сохраняет настройки уведомлений пользователя,
// создавая строку при первом сохранении.
func (s *Storage) UpsertNotificationSettings(ctx context.Context, settings models.NotificationSettings) error {
	const op = "storage.UpsertNotificationSettings"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO notification_settings
			      (user_id, email_notifications, push_notifications, marketing_emails,
			       new_messages, scheduled_posts, campaign_updates)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  ON CONFLICT (user_id) DO UPDATE SET
			      email_notifications = EXCLUDED.email_notifications,
			      push_notifications = EXCLUDED.push_notifications,
			      marketing_emails = EXCLUDED.marketing_emails,
			      new_messages = EXCLUDED.new_messages,
			      scheduled_posts = EXCLUDED.scheduled_posts,
			      campaign_updates = EXCLUDED.campaign_updates`
	_, err := s.DB.ExecContext(ctx, query,
		settings.UserID, settings.EmailNotifications, settings.PushNotifications,
		settings.MarketingEmails, settings.NewMessages, settings.ScheduledPosts,
		settings.CampaignUpdates)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
