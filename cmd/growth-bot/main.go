package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"growth-dashboard/internal/logger"
	"growth-dashboard/internal/manager"
	"growth-dashboard/internal/models"
)

type Bot struct {
	api   *tgbotapi.BotAPI
	board *manager.BoardManager
}

func NewBot(token string, bm *manager.BoardManager) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	logger.Info(context.Background(), "authorized", "user", api.Self.UserName)

	return &Bot{api: api, board: bm}, nil
}

func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates, err := b.api.GetUpdatesChan(u)
	if err != nil {
		return fmt.Errorf("getting updates channel: %w", err)
	}

	logger.Info(context.Background(), "bot listening")

	for update := range updates {
		if update.Message == nil {
			continue
		}
		go b.handleMessage(update.Message)
	}
	return nil
}

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	ctx := context.Background()
	logger.Debug(ctx, "message received",
		"user", msg.From.UserName,
		"text", msg.Text,
	)

	if !msg.IsCommand() {
		b.sendMessage(msg.Chat.ID, "I only understand commands. Try /help.")
		return
	}

	switch msg.Command() {
	case "start":
		b.sendWelcome(msg.Chat.ID)
	case "list":
		b.listWeeks(msg.Chat.ID)
	case "done":
		b.markTask(msg, true)
	case "undo":
		b.markTask(msg, false)
	case "progress":
		b.sendProgress(msg.Chat.ID)
	case "reset":
		b.board.Reset()
		b.sendMessage(msg.Chat.ID, "🔄 Plan reset, everything is back on the list.")
	case "help":
		b.sendWelcome(msg.Chat.ID)
	default:
		b.sendMessage(msg.Chat.ID, "Unknown command. Use /help for the command list.")
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	text := `*Growth Dashboard bot*

*Commands:*
/list - Show the 4-week checklist
/done N - Mark task N completed
/undo N - Mark task N not completed
/progress - Progress per week and overall
/reset - Clear every completion mark
/help - This message`

	b.sendMessage(chatID, text)
}

func (b *Bot) listWeeks(chatID int64) {
	weeks := b.board.Weeks()
	if len(weeks) == 0 {
		b.sendMessage(chatID, "The plan is empty.")
		return
	}

	var response strings.Builder
	for _, week := range weeks {
		fmt.Fprintf(&response, "*%s*\n", week.Title)
		if len(week.Tasks) == 0 {
			response.WriteString("_nothing scheduled_\n")
		}
		for _, task := range week.Tasks {
			mark := "▫️"
			if task.Completed {
				mark = "✅"
			}
			fmt.Fprintf(&response, "%s #%d %s\n", mark, task.ID, task.Description)
		}
		response.WriteString("\n")
	}

	b.sendMessage(chatID, response.String())
}

func (b *Bot) markTask(msg *tgbotapi.Message, completed bool) {
	args := strings.TrimSpace(msg.CommandArguments())
	id, err := strconv.Atoi(args)
	if err != nil {
		b.sendMessage(msg.Chat.ID, "Give me a task number: /done 3")
		return
	}

	task, err := b.board.SetCompleted(id, completed)
	if err != nil {
		b.sendMessage(msg.Chat.ID, "❌ "+err.Error())
		return
	}

	if completed {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("✅ Done: %s", task.Description))
	} else {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf("↩️ Back on the list: %s", task.Description))
	}
}

func (b *Bot) sendProgress(chatID int64) {
	p := b.board.Progress()

	var response strings.Builder
	fmt.Fprintf(&response, "📊 *%d of %d tasks completed*\n", p.Completed, p.Total)
	for _, wp := range p.Weeks {
		fmt.Fprintf(&response, "%s: %d/%d\n", wp.Week, wp.Completed, wp.Total)
	}

	b.sendMessage(chatID, response.String())
}

func (b *Bot) sendMessage(chatID int64, text string) {
	m := tgbotapi.NewMessage(chatID, text)
	m.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.api.Send(m); err != nil {
		logger.Error(context.Background(), err, "sending message")
	}
}

func main() {
	planPath := flag.String("plan", "", "Plan file (.json or .yaml); built-in plan when empty")
	flag.Parse()

	token := os.Getenv("GROWTH_BOT_TOKEN")
	if token == "" {
		fmt.Fprintln(os.Stderr, "GROWTH_BOT_TOKEN is not set")
		os.Exit(1)
	}

	ctx := context.Background()

	weeks := models.DefaultPlan()
	if *planPath != "" {
		loaded, err := models.LoadPlan(*planPath)
		if err != nil {
			logger.Error(ctx, err, "loading plan")
			os.Exit(1)
		}
		weeks = loaded
	}

	bot, err := NewBot(token, manager.NewBoardManager(weeks))
	if err != nil {
		logger.Error(ctx, err, "starting bot")
		os.Exit(1)
	}

	if err := bot.Start(); err != nil {
		logger.Error(ctx, err, "bot stopped")
		os.Exit(1)
	}
}
