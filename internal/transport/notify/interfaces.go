package notify

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
)

type Sender interface {
	SendMessage(ctx context.Context, chatID int64, html string) (int, error)
}
