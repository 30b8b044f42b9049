package telegram

import (
	"fmt"
	"strconv"
	"strings"

	tg "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type Telegram struct {
	// ApiHost may include a scheme, plain hosts are reached over https.
	ApiHost string
	ChatID  string
	Token   string
}

func (t *Telegram) Webhook(title string, content string) error {
	chatID, err := strconv.ParseInt(t.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("[telegram] invalid chat id %q: %w", t.ChatID, err)
	}

	bot, err := tg.NewBotAPIWithAPIEndpoint(t.Token, t.endpoint())
	if err != nil {
		return fmt.Errorf("[telegram] %w", err)
	}

	msg := tg.NewMessage(chatID, fmt.Sprintf("#GandiDDNS\nDomain: %s\n%s", title, content))
	if _, err := bot.Send(msg); err != nil {
		return fmt.Errorf("[telegram] %w", err)
	}
	return nil
}

// endpoint returns the bot API URL template expected by tg, with the token
// and the method left as verbs.
func (t *Telegram) endpoint() string {
	host := t.ApiHost
	switch {
	case host == "":
		return tg.APIEndpoint
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return host + "/bot%s/%s"
	default:
		return "https://" + host + "/bot%s/%s"
	}
}
