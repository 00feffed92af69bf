package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"meal-planner/internal/config"
	"meal-planner/internal/metrics"
	"meal-planner/internal/recipe"
	"meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const toggleAction = "toggle"

// API is the part of the Telegram client the bot uses.
type API interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot exposes the shopping list through Telegram.
type Bot struct {
	api     API
	engine  *shopping.Engine
	catalog recipe.Catalog
	allowed map[int64]bool
	dataDir string
	logger  *zap.Logger
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, engine *shopping.Engine, catalog recipe.Catalog, logger *zap.Logger) (*Bot, error) {
	if err := cfg.ValidateTelegram(); err != nil {
		return nil, err
	}

	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}
	logger.Info("telegram bot authorized", zap.String("account", api.Self.UserName))

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url %s: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	logger.Info("webhook set", zap.String("response", resp.Description))

	return newBot(api, engine, catalog, cfg.TelegramAllowedUserIDs, cfg.DataDir, logger), nil
}

func newBot(api API, engine *shopping.Engine, catalog recipe.Catalog, allowedIDs []int64, dataDir string, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	allowed := make(map[int64]bool, len(allowedIDs))
	for _, id := range allowedIDs {
		allowed[id] = true
	}
	return &Bot{
		api:     api,
		engine:  engine,
		catalog: catalog,
		allowed: allowed,
		dataDir: dataDir,
		logger:  logger,
	}
}

// WebhookHandler returns the handler Telegram posts updates to.
func (b *Bot) WebhookHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var update tgbotapi.Update
		if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
			b.logger.Warn("error parsing update", zap.Error(err))
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		b.HandleUpdate(r.Context(), update)
		w.WriteHeader(http.StatusOK)
	})
}

// HandleUpdate dispatches a single update. Updates from users outside the
// allow-list are dropped.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		if !b.isAllowed(update.CallbackQuery.From) {
			return
		}
		b.handleCallbackQuery(update.CallbackQuery)
	case update.Message != nil:
		if !b.isAllowed(update.Message.From) {
			return
		}
		b.processMessage(ctx, update.Message)
	}
}

func (b *Bot) isAllowed(user *tgbotapi.User) bool {
	if user == nil {
		return false
	}
	if !b.allowed[user.ID] {
		b.logger.Warn("unauthorized access attempt",
			zap.Int64("user_id", user.ID),
			zap.String("username", user.UserName),
		)
		return false
	}
	return true
}

func (b *Bot) processMessage(ctx context.Context, msg *tgbotapi.Message) {
	command, args := parseCommand(msg.Text)
	chatID := msg.Chat.ID

	switch command {
	case "start", "list":
		b.sendList(chatID)
	case "add":
		b.handleAdd(chatID, args)
	case "clear":
		n := b.engine.ClearCheckedItems()
		b.sendText(chatID, fmt.Sprintf("🧹 Removed %d checked item(s).", n))
	case "cart":
		b.sendText(chatID, formatCartMarkdown(b.engine.ShoppingRecipes()))
	case "recipe":
		b.handleRecipe(ctx, chatID, args)
	case "ingredients":
		b.handleIngredients(chatID, args)
	case "health":
		b.sendText(chatID, formatHealthMarkdown(metrics.GetSysHealth(b.dataDir)))
	default:
		b.sendText(chatID, helpText)
	}
}

const helpText = "🛒 *Shopping List Bot*\n\n" +
	"/list - show the list\n" +
	"/add <name> [quantity] [unit] - add an item\n" +
	"/clear - remove checked items\n" +
	"/cart - show recipes in the cart\n" +
	"/recipe <id> - put a recipe in the cart\n" +
	"/ingredients <id> - add a cart recipe's ingredients to the list\n" +
	"/health - system health"

// parseCommand splits "/add@MyBot Milch 1 l" into "add" and its arguments.
func parseCommand(text string) (string, []string) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return "", fields
	}
	command, _, _ := strings.Cut(strings.TrimPrefix(fields[0], "/"), "@")
	return strings.ToLower(command), fields[1:]
}

// parseAddArgs reads "<name...> [quantity] [unit]". The quantity is the first
// numeric token after the name; without one the quantity defaults to "1".
func parseAddArgs(args []string) (shopping.ItemInput, bool) {
	if len(args) == 0 {
		return shopping.ItemInput{}, false
	}
	in := shopping.ItemInput{Quantity: "1"}
	n := len(args)
	switch {
	case n >= 3 && isNumeric(args[n-2]):
		in.Name = strings.Join(args[:n-2], " ")
		in.Quantity = args[n-2]
		in.Unit = args[n-1]
	case n >= 2 && isNumeric(args[n-1]):
		in.Name = strings.Join(args[:n-1], " ")
		in.Quantity = args[n-1]
	default:
		in.Name = strings.Join(args, " ")
	}
	return in, true
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	return err == nil
}

func (b *Bot) handleAdd(chatID int64, args []string) {
	in, ok := parseAddArgs(args)
	if !ok {
		b.sendText(chatID, "Usage: /add <name> [quantity] [unit]")
		return
	}
	item := b.engine.AddItem(in)
	b.sendText(chatID, fmt.Sprintf("✅ Added *%s* (%s) to %s",
		escapeMarkdown(item.Name), escapeMarkdown(formatAmount(item)), item.Category.Label()))
}

func (b *Bot) handleRecipe(ctx context.Context, chatID int64, args []string) {
	id, ok := recipeIDArg(args)
	if !ok {
		b.sendText(chatID, "Usage: /recipe <id>")
		return
	}
	rec, err := b.catalog.Get(ctx, id)
	if err != nil {
		b.logger.Info("recipe lookup failed", zap.Int("recipe_id", id), zap.Error(err))
		b.sendText(chatID, fmt.Sprintf("❌ Recipe %d not found.", id))
		return
	}
	if err := recipe.NewDetail(*rec, b.engine, 0).AddToCart(); err != nil {
		b.logger.Error("failed to add recipe to cart", zap.Int("recipe_id", id), zap.Error(err))
		b.sendText(chatID, "❌ The cart is not available.")
		return
	}
	b.sendText(chatID, fmt.Sprintf("🧺 *%s* is in the cart. Send /ingredients %d to add its ingredients.", escapeMarkdown(rec.Title), rec.ID))
}

func (b *Bot) handleIngredients(chatID int64, args []string) {
	id, ok := recipeIDArg(args)
	if !ok {
		b.sendText(chatID, "Usage: /ingredients <id>")
		return
	}
	if !b.engine.InCart(id) {
		b.sendText(chatID, fmt.Sprintf("❌ Recipe %d is not in the cart.", id))
		return
	}
	n := b.engine.AddIndividualIngredients(id)
	b.sendText(chatID, fmt.Sprintf("✅ Added %d ingredient(s) to the list.", n))
}

func recipeIDArg(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	id, err := strconv.Atoi(args[0])
	return id, err == nil && id > 0
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	action, id, ok := strings.Cut(query.Data, "|")
	if !ok || action != toggleAction {
		return
	}

	answer := ""
	if !b.engine.ToggleItem(id) {
		answer = "Item no longer exists"
	}
	// Answer callback to remove spinner
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, answer)); err != nil {
		b.logger.Warn("failed to answer callback", zap.Error(err))
	}

	if query.Message == nil {
		return
	}
	text, keyboard := b.renderList()
	edit := tgbotapi.NewEditMessageTextAndMarkup(query.Message.Chat.ID, query.Message.MessageID, text, keyboard)
	edit.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(edit); err != nil {
		b.logger.Warn("failed to update list message", zap.Error(err))
	}
}

func (b *Bot) sendList(chatID int64) {
	text, keyboard := b.renderList()
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if len(keyboard.InlineKeyboard) > 0 {
		msg.ReplyMarkup = keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send list", zap.Error(err))
	}
}

func (b *Bot) renderList() (string, tgbotapi.InlineKeyboardMarkup) {
	manual := b.engine.ManualItems()
	groups := b.engine.RecipeGroups()
	return formatShoppingListMarkdown(manual, groups), toggleKeyboard(manual, groups)
}

func (b *Bot) sendText(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Warn("failed to send message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}
