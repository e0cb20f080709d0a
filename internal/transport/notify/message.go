package notify

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/fsdevblog/botshop/internal/domain"
)

const createdAtLayout = "02.01.2006 15:04"

// FormatNewOrder формирует HTML сообщение менеджеру о новом заказе. Пользовательский текст экранируется.
func FormatNewOrder(order domain.Order, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🛒 <b>Новый заказ #%d</b>\n\n", order.ID)
	fmt.Fprintf(&sb, "👤 <b>Покупатель:</b> <a href=\"tg://user?id=%d\">ID %d</a>\n\n", order.UserID, order.UserID)

	sb.WriteString("📦 <b>Состав заказа:</b>\n")
	for _, item := range order.Items {
		fmt.Fprintf(&sb, "• %s × %d = %s ₽\n",
			html.EscapeString(item.ProductName), item.Quantity, item.LineTotal().StringFixed(2))
	}

	fmt.Fprintf(&sb, "\n💰 <b>Итого:</b> %s ₽\n", order.TotalAmount.StringFixed(2))

	if order.DeliveryAddress != nil && *order.DeliveryAddress != "" {
		fmt.Fprintf(&sb, "\n📍 <b>Адрес:</b> %s", html.EscapeString(*order.DeliveryAddress))
	}
	if order.Phone != nil && *order.Phone != "" {
		fmt.Fprintf(&sb, "\n📞 <b>Телефон:</b> %s", html.EscapeString(*order.Phone))
	}
	if order.Comment != nil && *order.Comment != "" {
		fmt.Fprintf(&sb, "\n💬 <b>Комментарий:</b> %s", html.EscapeString(*order.Comment))
	}

	fmt.Fprintf(&sb, "\n\n🕐 <b>Создан:</b> %s", order.CreatedAt.In(loc).Format(createdAtLayout))
	return sb.String()
}
