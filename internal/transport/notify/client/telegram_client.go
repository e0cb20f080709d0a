package client

import (
	"context"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

const defaultHTTPTimeout = 10 * time.Second

// TelegramClient отправляет сообщения через Bot API. Клиент не делает запросов при создании.
type TelegramClient struct {
	bot        *tgbotapi.BotAPI
	httpClient *http.Client
}

// New создает клиент. endpoint - формат URL вида https://api.telegram.org/bot%s/%s,
// пустая строка означает tgbotapi.APIEndpoint.
func New(token, endpoint string) *TelegramClient {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	httpClient := &http.Client{Timeout: defaultHTTPTimeout}
	bot := &tgbotapi.BotAPI{
		Token:  token,
		Client: httpClient,
		Buffer: 100, //nolint:mnd
	}
	bot.SetAPIEndpoint(endpoint)

	return &TelegramClient{
		bot:        bot,
		httpClient: httpClient,
	}
}

// SendMessage отправляет HTML сообщение в чат chatID и возвращает id сообщения.
// Если Bot API просит подождать, возвращается *TooManyRequestError, прочие отказы API - *APIError.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, html string) (int, error) {
	msg := tgbotapi.NewMessage(chatID, html)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.DisableWebPagePreview = true

	// копия бота с клиентом, привязанным к ctx запроса
	bot := *c.bot
	bot.Client = ctxHTTPClient{ctx: ctx, client: c.httpClient}

	sent, err := bot.Send(msg)
	if err != nil {
		var apiErr *tgbotapi.Error
		if errors.As(err, &apiErr) {
			if apiErr.RetryAfter > 0 {
				return 0, NewTooManyRequestError(time.Duration(apiErr.RetryAfter) * time.Second)
			}
			return 0, NewAPIError(apiErr.Code, apiErr.Message)
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return 0, errors.Wrap(ctxErr, "send message")
		}
		return 0, errors.Wrapf(err, "send message to chat %d", chatID)
	}
	return sent.MessageID, nil
}

type ctxHTTPClient struct {
	ctx    context.Context //nolint:containedctx
	client *http.Client
}

func (c ctxHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return c.client.Do(req.WithContext(c.ctx)) //nolint:wrapcheck
}
