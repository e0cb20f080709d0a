// Package initdata проверяет подписанные данные запуска мини-приложения Telegram.
package initdata

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// MaxAge максимальный возраст auth_date, включительно.
	MaxAge = 3600 * time.Second

	hashKey     = "hash"
	authDateKey = "auth_date"
	userKey     = "user"
)

// Secret ключ HMAC, производный от токена бота.
type Secret []byte

// DeriveSecret вычисляет SHA-256 от токена бота.
func DeriveSecret(botToken string) Secret {
	sum := sha256.Sum256([]byte(botToken))
	return sum[:]
}

type User struct {
	ID           int64   `json:"id"`
	Username     *string `json:"username,omitempty"`
	FirstName    *string `json:"first_name,omitempty"`
	LastName     *string `json:"last_name,omitempty"`
	LanguageCode *string `json:"language_code,omitempty"`
	IsPremium    bool    `json:"is_premium,omitempty"`
}

// Data проверенные данные запуска.
type Data struct {
	AuthDate     *time.Time
	QueryID      string
	StartParam   string
	ChatType     string
	ChatInstance string
	User         *User
}

type Verifier struct {
	secret Secret
	now    func() time.Time
	maxAge time.Duration
}

func NewVerifier(botToken string) *Verifier {
	return &Verifier{
		secret: DeriveSecret(botToken),
		now:    time.Now,
		maxAge: MaxAge,
	}
}

// WithClock подменяет источник текущего времени.
func (v *Verifier) WithClock(now func() time.Time) *Verifier {
	v.now = now
	return v
}

func (v *Verifier) WithMaxAge(maxAge time.Duration) *Verifier {
	v.maxAge = maxAge
	return v
}

// Verify проверяет подпись и свежесть raw и возвращает разобранные данные. Все ошибки имеют тип *domain.AuthError.
func (v *Verifier) Verify(raw string) (*Data, error) {
	values, parseErr := url.ParseQuery(raw)
	if parseErr != nil {
		return nil, domain.NewAuthError(domain.AuthMalformedPayload, parseErr)
	}
	fields := make(map[string]string, len(values))
	for k, vals := range values {
		if len(vals) != 1 {
			return nil, domain.NewAuthError(domain.AuthMalformedPayload, fmt.Errorf("duplicated key `%s`", k))
		}
		fields[k] = vals[0]
	}

	hash := fields[hashKey]
	if hash == "" {
		return nil, domain.NewAuthError(domain.AuthMissingSignature, nil)
	}
	delete(fields, hashKey)

	sig, hexErr := hex.DecodeString(hash)
	if hexErr != nil {
		return nil, domain.NewAuthError(domain.AuthInvalidSignature, hexErr)
	}
	if err := jwt.SigningMethodHS256.Verify(DataCheckString(fields), sig, []byte(v.secret)); err != nil {
		return nil, domain.NewAuthError(domain.AuthInvalidSignature, err)
	}

	authDate, freshErr := CheckFreshness(fields[authDateKey], v.now(), v.maxAge)
	if freshErr != nil {
		return nil, freshErr
	}

	data := Data{
		AuthDate:     authDate,
		QueryID:      fields["query_id"],
		StartParam:   fields["start_param"],
		ChatType:     fields["chat_type"],
		ChatInstance: fields["chat_instance"],
	}
	if rawUser, ok := fields[userKey]; ok {
		var u User
		if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
			return nil, domain.NewAuthError(domain.AuthMalformedPayload, err)
		}
		data.User = &u
	}
	return &data, nil
}

// CheckFreshness проверяет auth_date относительно now. Пустое значение считается допустимым и дает nil.
func CheckFreshness(rawAuthDate string, now time.Time, maxAge time.Duration) (*time.Time, error) {
	if rawAuthDate == "" {
		return nil, nil //nolint:nilnil
	}
	ts, err := strconv.ParseInt(rawAuthDate, 10, 64)
	if err != nil {
		return nil, domain.NewAuthError(domain.AuthInvalidTimestamp, err)
	}
	age := now.Unix() - ts
	if age > int64(maxAge/time.Second) {
		return nil, domain.NewAuthError(domain.AuthExpired, fmt.Errorf("auth_date is %d seconds old", age))
	}
	authDate := time.Unix(ts, 0).UTC()
	return &authDate, nil
}

// DataCheckString склеивает пары key=value, отсортированные по ключу, через перевод строки.
func DataCheckString(fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == hashKey {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(fields[k])
	}
	return sb.String()
}

// Sign вычисляет hash для набора полей. Поле hash в values игнорируется.
func Sign(values url.Values, secret Secret) (string, error) {
	fields := make(map[string]string, len(values))
	for k := range values {
		fields[k] = values.Get(k)
	}
	sig, err := jwt.SigningMethodHS256.Sign(DataCheckString(fields), []byte(secret))
	if err != nil {
		return "", errors.Join(domain.ErrUnknown, err)
	}
	return hex.EncodeToString(sig), nil
}
