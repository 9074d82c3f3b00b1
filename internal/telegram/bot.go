// Package telegram is a thin bot front-end over the scanner API: a photo
// message is pushed through /extract_text/ and /search_wine/ and the
// matches are sent back to the chat.
package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Bot struct {
	api     *tgbotapi.BotAPI
	apiBase string
	httpc   *http.Client
	log     *logrus.Entry
}

func NewBot(api *tgbotapi.BotAPI, apiBase string) *Bot {
	return &Bot{
		api:     api,
		apiBase: strings.TrimRight(apiBase, "/"),
		httpc:   &http.Client{Timeout: 120 * time.Second},
		log:     logrus.WithField("component", "bot"),
	}
}

// Start long-polls for updates until the update channel closes.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	for upd := range b.api.GetUpdatesChan(u) {
		if upd.Message == nil {
			continue
		}
		b.handleMessage(upd.Message)
	}
	return nil
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	cid := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.send(cid, "Send me a photo of a wine label and I will look it up.")
		default:
			b.send(cid, "Unknown command")
		}
		return
	}

	if len(msg.Photo) == 0 {
		b.send(cid, "I can only read photos. Send a picture of a wine label.")
		return
	}

	b.send(cid, "Scanning the label…")

	// Largest resolution is last.
	ph := msg.Photo[len(msg.Photo)-1]
	tf, err := b.api.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		b.send(cid, "Could not fetch the photo: "+err.Error())
		return
	}
	fileURL := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", b.api.Token, tf.FilePath)

	text, err := b.extractText(fileURL)
	if err != nil {
		b.log.WithError(err).Warn("extract_text call failed")
		b.send(cid, "Could not read the label: "+err.Error())
		return
	}
	if strings.TrimSpace(text) == "" {
		b.send(cid, "I could not find any text on that label.")
		return
	}

	reply, err := b.searchWine(text)
	if err != nil {
		b.log.WithError(err).Warn("search_wine call failed")
		b.send(cid, "Read: "+text+"\n\nBut the catalog lookup failed: "+err.Error())
		return
	}
	b.send(cid, "Read: "+text+"\n\n"+reply)
}

func (b *Bot) extractText(imageURL string) (string, error) {
	var out struct {
		RecognizedText string `json:"recognized_text"`
		Detail         string `json:"detail"`
	}
	if err := b.postJSON("/extract_text/", map[string]string{"image_url": imageURL}, &out); err != nil {
		return "", err
	}
	if out.Detail != "" {
		return "", fmt.Errorf("%s", out.Detail)
	}
	return out.RecognizedText, nil
}

func (b *Bot) searchWine(name string) (string, error) {
	var out struct {
		Results []struct {
			Name    string `json:"Name"`
			Details struct {
				Producer string `json:"Producer"`
				Vintage  string `json:"Vintage"`
				Region   string `json:"Region"`
				Price    string `json:"Price"`
			} `json:"Details"`
		} `json:"results"`
		Name   string `json:"name"`
		Score  int    `json:"score"`
		Detail string `json:"detail"`
	}
	if err := b.postJSON("/search_wine/", map[string]string{"name": name}, &out); err != nil {
		return "", err
	}

	switch {
	case len(out.Results) > 0:
		var sb strings.Builder
		sb.WriteString("Closest matches:\n")
		for i, r := range out.Results {
			fmt.Fprintf(&sb, "%d. %s", i+1, r.Name)
			if r.Details.Vintage != "" {
				fmt.Fprintf(&sb, " (%s)", r.Details.Vintage)
			}
			if r.Details.Region != "" {
				fmt.Fprintf(&sb, ", %s", r.Details.Region)
			}
			sb.WriteString("\n")
		}
		return sb.String(), nil
	case out.Name != "":
		return fmt.Sprintf("Best guess: %s (match %d%%)", out.Name, out.Score), nil
	case out.Detail != "":
		return out.Detail, nil
	default:
		return "No matching wine found!", nil
	}
}

func (b *Bot) postJSON(path string, body any, out any) error {
	payload, _ := json.Marshal(body)
	resp, err := b.httpc.Post(b.apiBase+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("bad response (%d): %s", resp.StatusCode, strings.TrimSpace(string(data)))
	}
	return nil
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.log.WithError(err).Warn("send failed")
	}
}
