// Package jwt реализует кодек сессионного токена на основе JWT.
//
// Токен несёт идентификатор пользователя и абсолютный срок действия
// и подписывается HMAC (HS256) серверным секретом, поэтому любое
// изменение полезной нагрузки обнаруживается при парсинге.
package jwt

import (
	"time"
)

// Maker описывает интерфейс для выпуска и разбора сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен для пользователя с настроенным TTL.
	GenerateToken(userID int64) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает *SessionClaims.
	ParseToken(tokenStr string) (*SessionClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием секретного ключа
// и времени жизни токена (TTL).
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов.
	tokenTTL  time.Duration // Время жизни токена.
}

// NewMaker создаёт новый экземпляр MakerImpl на основе секретного ключа и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
