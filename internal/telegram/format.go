package telegram

import (
	"fmt"
	"strings"

	"meal-planner/internal/metrics"
	"meal-planner/internal/shopping"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// escapeMarkdown protects user-supplied text such as item names and recipe
// titles inside ModeMarkdown messages.
func escapeMarkdown(text string) string {
	return tgbotapi.EscapeText(tgbotapi.ModeMarkdown, text)
}

// formatShoppingListMarkdown renders manual items first, then one block per
// recipe group. Collapsed groups only show how many items they hold.
func formatShoppingListMarkdown(manual []shopping.ShoppingItem, groups []shopping.RecipeGroup) string {
	var sb strings.Builder
	sb.WriteString("🛒 *Shopping List*\n\n")

	if len(manual) == 0 && len(groups) == 0 {
		sb.WriteString("_Your list is empty_\n")
		return sb.String()
	}

	for _, item := range manual {
		sb.WriteString(formatItemLine(item))
	}

	for i, g := range groups {
		if len(manual) > 0 || i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("🍽 *%s* (%d items)\n", escapeMarkdown(g.RecipeName), len(g.Items)))
		if !g.Expanded {
			continue
		}
		for _, item := range g.Items {
			sb.WriteString(formatItemLine(item))
		}
	}
	return sb.String()
}

func formatItemLine(item shopping.ShoppingItem) string {
	mark := "⬜"
	if item.Checked {
		mark = "✅"
	}
	if amount := formatAmount(item); amount != "" {
		return fmt.Sprintf("%s %s (%s)\n", mark, escapeMarkdown(item.Name), escapeMarkdown(amount))
	}
	return fmt.Sprintf("%s %s\n", mark, escapeMarkdown(item.Name))
}

func formatAmount(item shopping.ShoppingItem) string {
	return strings.TrimSpace(item.Quantity + " " + item.Unit)
}

// toggleKeyboard has one button per visible item; items of collapsed groups
// get none.
func toggleKeyboard(manual []shopping.ShoppingItem, groups []shopping.RecipeGroup) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	add := func(item shopping.ShoppingItem) {
		label := "⬜ " + item.Name
		if item.Checked {
			label = "✅ " + item.Name
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, toggleAction+"|"+item.ID),
		))
	}
	for _, item := range manual {
		add(item)
	}
	for _, g := range groups {
		if !g.Expanded {
			continue
		}
		for _, item := range g.Items {
			add(item)
		}
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func formatCartMarkdown(recipes []shopping.ShoppingRecipe) string {
	var sb strings.Builder
	sb.WriteString("🧺 *Cart*\n\n")
	if len(recipes) == 0 {
		sb.WriteString("_The cart is empty_\n")
		return sb.String()
	}
	for _, r := range recipes {
		sb.WriteString(fmt.Sprintf("• *%s* (id %d, %d ingredients)\n", escapeMarkdown(r.Title), r.ID, len(r.Ingredients)))
	}
	return sb.String()
}

func formatHealthMarkdown(health metrics.SysHealth) string {
	var sb strings.Builder
	sb.WriteString("🧠 *System Health*\n")
	sb.WriteString(fmt.Sprintf("• Uptime: %s\n", health.Uptime))
	sb.WriteString(fmt.Sprintf("• RAM: %dMB (Alloc) / %dMB (Sys)\n", health.AllocMB, health.SysMB))
	sb.WriteString(fmt.Sprintf("• Goroutines: %d\n", health.Goroutines))
	sb.WriteString(fmt.Sprintf("• Disk Data: %s\n", health.DataDiskSize))
	return sb.String()
}
