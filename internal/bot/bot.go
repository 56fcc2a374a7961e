// internal/bot/bot.go
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cookmate-backend/internal/common/logger"
	"cookmate-backend/internal/models"
	generatesuggestions "cookmate-backend/internal/workers/meal/generate-suggestions"
)

const (
	commandStart    = "/start"
	commandGenerate = "/generate"

	callbackGenerateRecipe = "generate_recipe"

	eventTelegramVerified = "TELEGRAM_VERIFIED"

	welcomeMessage = "Welcome to COOKMATE APP 🧑‍🍳\n\nClick the button below to generate personalized meal suggestions!"
	waitingMessage = "🍳 Generating your personalized meal suggestions... Please wait!"
	failureMessage = "❌ Sorry, I couldn't generate meal suggestions at the moment. Please try again later."
)

// SuggestionGenerator produces meal plans for a preference profile.
type SuggestionGenerator interface {
	Execute(ctx context.Context, input *generatesuggestions.Input) (*generatesuggestions.Output, error)
}

// Broadcaster pushes events to connected frontends.
type Broadcaster interface {
	Broadcast(eventType string, data map[string]interface{})
}

// Bot long-polls the Telegram Bot API and serves the chat commands.
type Bot struct {
	config    *Config
	api       *APIClient
	generator SuggestionGenerator
	hub       Broadcaster
	logger    logger.Logger
}

func New(cfg *Config, generator SuggestionGenerator, hub Broadcaster, log logger.Logger) *Bot {
	return &Bot{
		config:    cfg,
		api:       NewAPIClient(cfg.APIBaseURL, cfg.BotToken, cfg.RequestTimeout),
		generator: generator,
		hub:       hub,
		logger:    log,
	}
}

// Run polls for updates until the context is cancelled. Poll failures are
// logged and retried after the configured interval.
func (b *Bot) Run(ctx context.Context) {
	b.logger.Info("Bot has been started", map[string]interface{}{
		"pollTimeout": b.config.PollTimeout,
	})

	var offset int64
	for {
		updates, err := b.api.GetUpdates(ctx, offset, b.config.PollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				b.logger.Info("Bot stopped", nil)
				return
			}
			b.logger.Warn("Polling for updates failed", map[string]interface{}{
				"error": err.Error(),
			})
			select {
			case <-ctx.Done():
				b.logger.Info("Bot stopped", nil)
				return
			case <-time.After(b.config.PollInterval):
			}
			continue
		}

		for i := range updates {
			if updates[i].UpdateID >= offset {
				offset = updates[i].UpdateID + 1
			}
			b.handleUpdate(ctx, &updates[i])
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update *Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *Message) {
	switch {
	case strings.HasPrefix(msg.Text, commandStart):
		b.handleStart(ctx, msg.Chat.ID)
	case strings.HasPrefix(msg.Text, commandGenerate):
		b.handleGenerate(ctx, msg.Chat.ID)
	}
}

func (b *Bot) handleStart(ctx context.Context, chatID int64) {
	b.hub.Broadcast(eventTelegramVerified, map[string]interface{}{
		"chatId": chatID,
	})

	keyboard := &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{{
			{Text: "🍳 Generate Recipe Suggestions", CallbackData: callbackGenerateRecipe},
		}},
	}
	if err := b.api.SendMessage(ctx, chatID, welcomeMessage, WithKeyboard(keyboard)); err != nil {
		b.logger.Error("Failed to send welcome message", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
	}
}

func (b *Bot) handleGenerate(ctx context.Context, chatID int64) {
	if err := b.api.SendMessage(ctx, chatID, waitingMessage); err != nil {
		b.logger.Error("Failed to send progress message", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
		return
	}

	digest, err := b.generate(ctx)
	if err != nil {
		b.logger.Error("Suggestion generation failed", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
		b.reply(ctx, chatID, failureMessage)
		return
	}

	if err := b.api.SendMessage(ctx, chatID, digest, WithMarkdown()); err != nil {
		b.logger.Error("Failed to send suggestions", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *CallbackQuery) {
	// Clear the client-side loading spinner regardless of the outcome.
	if err := b.api.AnswerCallbackQuery(ctx, cb.ID); err != nil {
		b.logger.Warn("Failed to answer callback query", map[string]interface{}{
			"callbackId": cb.ID,
			"error":      err.Error(),
		})
	}

	if cb.Data != callbackGenerateRecipe || cb.Message == nil {
		return
	}
	chatID := cb.Message.Chat.ID
	messageID := cb.Message.MessageID

	if err := b.api.EditMessageText(ctx, chatID, messageID, waitingMessage); err != nil {
		b.logger.Error("Failed to edit message", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
		return
	}

	digest, err := b.generate(ctx)
	if err != nil {
		b.logger.Error("Suggestion generation failed", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
		if editErr := b.api.EditMessageText(ctx, chatID, messageID, failureMessage); editErr != nil {
			b.logger.Error("Failed to edit message", map[string]interface{}{
				"chatId": chatID,
				"error":  editErr.Error(),
			})
		}
		return
	}

	keyboard := &InlineKeyboardMarkup{
		InlineKeyboard: [][]InlineKeyboardButton{{
			{Text: "🔄 Generate More Suggestions", CallbackData: callbackGenerateRecipe},
		}},
	}
	if err := b.api.EditMessageText(ctx, chatID, messageID, digest, WithMarkdown(), WithKeyboard(keyboard)); err != nil {
		b.logger.Error("Failed to edit message", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
	}
}

func (b *Bot) generate(ctx context.Context) (string, error) {
	genCtx, cancel := context.WithTimeout(ctx, b.config.RequestTimeout)
	defer cancel()

	output, err := b.generator.Execute(genCtx, &generatesuggestions.Input{
		Preferences: defaultPreferences(),
	})
	if err != nil {
		return "", err
	}
	return formatDigest(output), nil
}

func (b *Bot) reply(ctx context.Context, chatID int64, text string) {
	if err := b.api.SendMessage(ctx, chatID, text); err != nil {
		b.logger.Error("Failed to send message", map[string]interface{}{
			"chatId": chatID,
			"error":  err.Error(),
		})
	}
}

// formatDigest renders the generated plans as a Telegram Markdown message,
// one block per meal type in breakfast, lunch, dinner order.
func formatDigest(output *generatesuggestions.Output) string {
	var sb strings.Builder
	sb.WriteString("🍽️ *Your Personalized Meal Suggestions:*\n\n")

	for _, mealType := range []string{models.MealTypeBreakfast, models.MealTypeLunch, models.MealTypeDinner} {
		plan, ok := output.Plans[mealType]
		if !ok || len(plan.Suggestions) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "*%s* 🍳\n", strings.ToUpper(mealType))
		for i, suggestion := range plan.Suggestions {
			fmt.Fprintf(&sb, "%d. *%s*\n", i+1, suggestion.Name)
			fmt.Fprintf(&sb, "   📝 %s\n", suggestion.Description)
			fmt.Fprintf(&sb, "   ⏱️ Prep: %s, Cook: %s\n", suggestion.Recipe.PrepTime, suggestion.Recipe.CookTime)
			fmt.Fprintf(&sb, "   👥 Serves: %d\n", suggestion.Recipe.Servings)
			if suggestion.Media.Video.URL != "" {
				fmt.Fprintf(&sb, "   📺 [Watch Recipe](%s)\n", suggestion.Media.Video.URL)
			}
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// defaultPreferences is the demo profile used for chats that have not linked
// an account.
func defaultPreferences() models.UserPreferences {
	return models.UserPreferences{
		Name:               "User",
		Age:                25,
		Gender:             "Not specified",
		DietaryPreference:  "Vegetarian",
		SpicinessLevel:     5,
		CuisinePreferences: "Indian,Italian,Chinese",
		IngredientDislikes: "none",
		CookName:           "Chef",
		CookWhatsApp:       "+1234567890",
		PreferredLanguage:  "English",
		UserWhatsApp:       "+0987654321",
		MealsPerDay:        3,
		Breakfast:          true,
		Lunch:              true,
		Dinner:             true,
	}
}
