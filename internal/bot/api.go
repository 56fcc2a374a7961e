// internal/bot/api.go
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Telegram Bot API wire types. Only the fields this bot reads are mapped.

type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

type Message struct {
	MessageID int64  `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
}

type Chat struct {
	ID int64 `json:"id"`
}

type CallbackQuery struct {
	ID      string   `json:"id"`
	Data    string   `json:"data"`
	Message *Message `json:"message,omitempty"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineKeyboardButton `json:"inline_keyboard"`
}

type InlineKeyboardButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data,omitempty"`
}

type sendMessageRequest struct {
	ChatID                int64                 `json:"chat_id"`
	Text                  string                `json:"text"`
	ParseMode             string                `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type editMessageTextRequest struct {
	ChatID                int64                 `json:"chat_id"`
	MessageID             int64                 `json:"message_id"`
	Text                  string                `json:"text"`
	ParseMode             string                `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool                  `json:"disable_web_page_preview,omitempty"`
	ReplyMarkup           *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
}

type answerCallbackQueryRequest struct {
	CallbackQueryID string `json:"callback_query_id"`
}

type getUpdatesRequest struct {
	Offset  int64 `json:"offset,omitempty"`
	Timeout int   `json:"timeout,omitempty"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result,omitempty"`
	ErrorCode   int             `json:"error_code,omitempty"`
	Description string          `json:"description,omitempty"`
}

// APIClient is the raw HTTP client for the Bot API. Every method is a single
// POST to {base}/bot{token}/{method} with a JSON body.
type APIClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

func NewAPIClient(baseURL, token string, timeout time.Duration) *APIClient {
	return &APIClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		token:      token,
	}
}

func (c *APIClient) GetUpdates(ctx context.Context, offset int64, timeoutSeconds int) ([]Update, error) {
	raw, err := c.call(ctx, "getUpdates", getUpdatesRequest{Offset: offset, Timeout: timeoutSeconds})
	if err != nil {
		return nil, err
	}
	var updates []Update
	if err := json.Unmarshal(raw, &updates); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	return updates, nil
}

func (c *APIClient) SendMessage(ctx context.Context, chatID int64, text string, opts ...MessageOption) error {
	req := sendMessageRequest{ChatID: chatID, Text: text}
	for _, opt := range opts {
		opt(&req.ParseMode, &req.DisableWebPagePreview, &req.ReplyMarkup)
	}
	_, err := c.call(ctx, "sendMessage", req)
	return err
}

func (c *APIClient) EditMessageText(ctx context.Context, chatID, messageID int64, text string, opts ...MessageOption) error {
	req := editMessageTextRequest{ChatID: chatID, MessageID: messageID, Text: text}
	for _, opt := range opts {
		opt(&req.ParseMode, &req.DisableWebPagePreview, &req.ReplyMarkup)
	}
	_, err := c.call(ctx, "editMessageText", req)
	return err
}

func (c *APIClient) AnswerCallbackQuery(ctx context.Context, callbackID string) error {
	_, err := c.call(ctx, "answerCallbackQuery", answerCallbackQueryRequest{CallbackQueryID: callbackID})
	return err
}

// MessageOption tweaks the optional fields shared by sendMessage and
// editMessageText.
type MessageOption func(parseMode *string, disablePreview *bool, markup **InlineKeyboardMarkup)

func WithMarkdown() MessageOption {
	return func(parseMode *string, disablePreview *bool, _ **InlineKeyboardMarkup) {
		*parseMode = "Markdown"
		*disablePreview = true
	}
}

func WithKeyboard(markup *InlineKeyboardMarkup) MessageOption {
	return func(_ *string, _ *bool, m **InlineKeyboardMarkup) {
		*m = markup
	}
}

func (c *APIClient) call(ctx context.Context, method string, payload interface{}) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", method, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", method, err)
	}

	var apiResp apiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return nil, fmt.Errorf("parse %s response: %w", method, err)
	}
	if !apiResp.OK {
		return nil, fmt.Errorf("%s rejected: %d %s", method, apiResp.ErrorCode, apiResp.Description)
	}
	return apiResp.Result, nil
}
