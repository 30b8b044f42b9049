package notify

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Septrum101/gandiDDNS/common/notify/pushplus"
	"github.com/Septrum101/gandiDDNS/common/notify/telegram"
)

var (
	_ Notify = (*pushplus.PushPlus)(nil)
	_ Notify = (*telegram.Telegram)(nil)
)

func TestTelegram_Webhook(t *testing.T) {
	var sent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/botYOUR_TOKEN/getMe":
			io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"ddns","username":"ddns_bot"}}`)
		case "/botYOUR_TOKEN/sendMessage":
			if err := r.ParseForm(); err != nil {
				t.Error(err)
			}
			if r.PostForm.Get("chat_id") != "123" {
				t.Errorf("unexpected chat id %q", r.PostForm.Get("chat_id"))
			}
			sent = r.PostForm.Get("text")
			io.WriteString(w, `{"ok":true,"result":{"message_id":1,"date":0,"chat":{"id":123,"type":"private"}}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
			io.WriteString(w, `{"ok":false,"error_code":404,"description":"Not Found"}`)
		}
	}))
	defer srv.Close()

	tg := telegram.Telegram{
		ApiHost: srv.URL,
		ChatID:  "123",
		Token:   "YOUR_TOKEN",
	}
	if err := tg.Webhook("example.com", "IP changed: 1.2.3.4"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(sent, "example.com") || !strings.Contains(sent, "IP changed: 1.2.3.4") {
		t.Errorf("unexpected message %q", sent)
	}
}

func TestTelegram_InvalidChatID(t *testing.T) {
	tg := telegram.Telegram{ChatID: "abc", Token: "YOUR_TOKEN"}
	if err := tg.Webhook("example.com", "content"); err == nil {
		t.Error("expected an error")
	}
}

func TestPushPlus_Webhook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Error(err)
		}
		if body["token"] == "YOUR_TOKEN" {
			io.WriteString(w, `{"code":200,"msg":"请求成功"}`)
			return
		}
		io.WriteString(w, `{"code":999,"msg":"invalid token"}`)
	}))
	defer srv.Close()

	pp := pushplus.PushPlus{Token: "YOUR_TOKEN", API: srv.URL}
	if err := pp.Webhook("example.com", "IP changed: 1.2.3.4"); err != nil {
		t.Fatal(err)
	}

	pp.Token = "wrong"
	if err := pp.Webhook("example.com", "IP changed: 1.2.3.4"); err == nil || !strings.Contains(err.Error(), "invalid token") {
		t.Errorf("expected invalid token error, got %v", err)
	}
}
