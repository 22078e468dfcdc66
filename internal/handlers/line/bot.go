package line

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/eventline-bot/eventline/internal/common/clock"
	"github.com/eventline-bot/eventline/internal/models"
	"github.com/eventline-bot/eventline/internal/services/flow"
	"github.com/eventline-bot/eventline/internal/services/query"
	"github.com/eventline-bot/eventline/internal/services/reminder"
)

// Bot is the LINE webhook handler. It parses inbound events into service
// calls and renders the service results back into LINE messages.
type Bot struct {
	client          *linebot.Client
	flowService     flow.Service
	queryService    query.Service
	reminderService reminder.Service
	clock           clock.Clock
}

// Config holds the configuration for the bot
type Config struct {
	// ChannelSecret verifies webhook signatures
	ChannelSecret string

	// ChannelToken authorizes outbound API calls
	ChannelToken string

	FlowService     flow.Service
	QueryService    query.Service
	ReminderService reminder.Service
	Clock           clock.Clock
}

// New creates a new LINE bot handler
func New(cfg *Config) (*Bot, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.ChannelSecret == "" {
		return nil, errors.New("channel secret cannot be empty")
	}
	if cfg.ChannelToken == "" {
		return nil, errors.New("channel token cannot be empty")
	}
	if cfg.FlowService == nil {
		return nil, errors.New("flow service cannot be nil")
	}
	if cfg.QueryService == nil {
		return nil, errors.New("query service cannot be nil")
	}
	if cfg.ReminderService == nil {
		return nil, errors.New("reminder service cannot be nil")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}

	client, err := linebot.New(cfg.ChannelSecret, cfg.ChannelToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create LINE client: %w", err)
	}

	return &Bot{
		client:          client,
		flowService:     cfg.FlowService,
		queryService:    cfg.QueryService,
		reminderService: cfg.ReminderService,
		clock:           cfg.Clock,
	}, nil
}

// Client exposes the underlying LINE client for the push notifier.
func (b *Bot) Client() *linebot.Client {
	return b.client
}

// Callback is the webhook endpoint. Signature failures get a 400 so LINE
// retries nothing; per-event handling errors are logged and acknowledged.
func (b *Bot) Callback(w http.ResponseWriter, r *http.Request) {
	events, err := b.client.ParseRequest(r)
	if err != nil {
		if errors.Is(err, linebot.ErrInvalidSignature) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		log.Printf("failed to parse webhook request: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	ctx := r.Context()
	for _, event := range events {
		if err := b.handleEvent(ctx, event); err != nil {
			log.Printf("failed to handle %s event: %v", event.Type, err)
		}
	}

	w.WriteHeader(http.StatusOK)
}

func (b *Bot) handleEvent(ctx context.Context, event *linebot.Event) error {
	if event.Source == nil || event.Source.UserID == "" {
		return nil
	}
	userID := event.Source.UserID

	switch event.Type {
	case linebot.EventTypeMessage:
		text, ok := event.Message.(*linebot.TextMessage)
		if !ok {
			return nil
		}
		return b.reply(ctx, event.ReplyToken, b.routeText(ctx, userID, strings.TrimSpace(text.Text)))
	case linebot.EventTypePostback:
		if event.Postback == nil {
			return nil
		}
		return b.reply(ctx, event.ReplyToken, b.routePostback(ctx, userID, event.Postback))
	}

	return nil
}

func (b *Bot) reply(ctx context.Context, replyToken string, messages []linebot.SendingMessage) error {
	if len(messages) == 0 {
		return nil
	}
	if _, err := b.client.ReplyMessage(replyToken, messages...).WithContext(ctx).Do(); err != nil {
		return fmt.Errorf("failed to reply: %w", err)
	}
	return nil
}

// routeText maps an inbound text message onto service calls and returns the
// reply messages.
func (b *Bot) routeText(ctx context.Context, userID, text string) []linebot.SendingMessage {
	switch {
	case text == CommandCreateEvent:
		return b.startGuidedFlow(ctx, userID)
	case text == CommandQueryEvents:
		return queryMenu()
	case text == CommandCancelCreate:
		return b.cancelFlow(ctx, userID, models.FlowNone)
	case text == CommandManualRemind:
		return b.manualRemind(ctx, userID)
	case text == CommandHelp, strings.EqualFold(text, "help"):
		return []linebot.SendingMessage{helpMessage()}
	case strings.HasPrefix(text, PrefixQuery):
		return b.queryCommand(ctx, strings.TrimPrefix(text, PrefixQuery))
	case strings.HasPrefix(text, PrefixCreate):
		return b.directAdd(ctx, strings.TrimPrefix(text, PrefixCreate))
	case strings.HasPrefix(text, PrefixPickTime):
		return b.advance(ctx, userID, flow.Intent{
			Kind: flow.IntentFreeText,
			Text: strings.TrimPrefix(text, PrefixPickTime),
		})
	case strings.HasPrefix(text, PrefixImportance):
		return b.advance(ctx, userID, flow.Intent{
			Kind:  flow.IntentSetImportance,
			Label: strings.TrimPrefix(text, PrefixImportance),
		})
	case strings.HasPrefix(text, PrefixCategory):
		return b.advance(ctx, userID, flow.Intent{
			Kind:  flow.IntentSetCategory,
			Label: strings.TrimPrefix(text, PrefixCategory),
		})
	}

	// A bare one-line add command creates directly, but only when the grammar
	// matches; a flow answer that merely starts with 新增 must reach the flow.
	if input, ok := parseDirectAdd(text); ok {
		return b.createEvent(ctx, input)
	}

	// Anything else feeds the active flow as free text; without a flow the
	// user gets the help message.
	out, err := b.flowService.Advance(ctx, &flow.AdvanceInput{
		UserID: userID,
		Intent: flow.Intent{Kind: flow.IntentFreeText, Text: text},
	})
	if err != nil {
		if errors.Is(err, flow.ErrNoActiveFlow) {
			return []linebot.SendingMessage{helpMessage()}
		}
		log.Printf("failed to advance flow for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("處理請求時發生錯誤，請稍後再試")}
	}
	return renderPrompt(out.Prompt, b.clock.Now())
}

// routePostback maps a postback event onto service calls and returns the
// reply messages.
func (b *Bot) routePostback(ctx context.Context, userID string, postback *linebot.Postback) []linebot.SendingMessage {
	action, value := parsePostbackData(postback.Data)

	switch action {
	case ActionConfirmEvent:
		return b.confirmFlow(ctx, userID, models.FlowGuided)
	case ActionConfirmEventFlex:
		return b.confirmFlow(ctx, userID, models.FlowForm)
	case ActionCancelEvent:
		return b.cancelFlow(ctx, userID, models.FlowGuided)
	case ActionCancelEventFlex:
		return b.cancelFlow(ctx, userID, models.FlowForm)
	case ActionOpenEventFormFlex:
		return b.startFormFlow(ctx, userID)
	case ActionSelectCustomTime, ActionSelectDatetimeFlex:
		if postback.Params == nil || postback.Params.Datetime == "" {
			return []linebot.SendingMessage{linebot.NewTextMessage("時間格式不正確，請重新選擇")}
		}
		when, err := parsePickerDatetime(postback.Params.Datetime)
		if err != nil {
			return []linebot.SendingMessage{linebot.NewTextMessage("時間格式不正確，請重新選擇")}
		}
		return b.advance(ctx, userID, flow.Intent{Kind: flow.IntentPickTime, When: &when})
	case ActionSelectImportance, ActionSetImportance:
		if value == "" {
			value = string(models.ImportanceMedium)
		}
		return b.advance(ctx, userID, flow.Intent{Kind: flow.IntentSetImportance, Label: value})
	case ActionSelectCategory:
		if value == "" {
			value = models.CategoryEvent
		}
		return b.advance(ctx, userID, flow.Intent{Kind: flow.IntentSetCategory, Label: value})
	case ActionNeedNotesFlex:
		return b.advance(ctx, userID, flow.Intent{Kind: flow.IntentNeedNotes, WantNotes: value == "yes"})
	case ActionOpenQueryForm:
		return queryMenu()
	case ActionSelectDateRange:
		return []linebot.SendingMessage{startDatePicker()}
	case ActionSelectStartDate:
		return b.beginRange(ctx, userID, postback.Params)
	case ActionSelectEndDate:
		return b.completeRange(ctx, userID, postback.Params)
	case ActionQueryDate:
		return b.queryDay(ctx, postback.Params)
	case ActionQueryToday:
		return b.queryRelative(ctx, query.RangeToday)
	case ActionQueryNext7Days:
		return b.queryRelative(ctx, query.RangeNext7Days)
	case ActionQueryMonth:
		return b.queryRelative(ctx, query.RangeMonth)
	case ActionQueryYear:
		return b.queryRelative(ctx, query.RangeYear)
	}

	return []linebot.SendingMessage{linebot.NewTextMessage("未知的查詢操作")}
}

func (b *Bot) startGuidedFlow(ctx context.Context, userID string) []linebot.SendingMessage {
	_, err := b.flowService.StartFlow(ctx, &flow.StartFlowInput{UserID: userID, Kind: models.FlowGuided})
	if err != nil {
		log.Printf("failed to start guided flow for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("處理請求時發生錯誤，請稍後再試")}
	}
	return guidedTimePrompt(b.clock.Now())
}

func (b *Bot) startFormFlow(ctx context.Context, userID string) []linebot.SendingMessage {
	_, err := b.flowService.StartFlow(ctx, &flow.StartFlowInput{UserID: userID, Kind: models.FlowForm})
	if err != nil {
		log.Printf("failed to start form flow for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("處理請求時發生錯誤，請稍後再試")}
	}
	return []linebot.SendingMessage{formFlexMessage(b.clock.Now())}
}

func (b *Bot) advance(ctx context.Context, userID string, intent flow.Intent) []linebot.SendingMessage {
	out, err := b.flowService.Advance(ctx, &flow.AdvanceInput{UserID: userID, Intent: intent})
	if err != nil {
		if errors.Is(err, flow.ErrNoActiveFlow) {
			return []linebot.SendingMessage{linebot.NewTextMessage("請先開始設定活動")}
		}
		log.Printf("failed to advance flow for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("處理請求時發生錯誤，請稍後再試")}
	}
	return renderPrompt(out.Prompt, b.clock.Now())
}

func (b *Bot) confirmFlow(ctx context.Context, userID string, kind models.FlowKind) []linebot.SendingMessage {
	out, err := b.flowService.Confirm(ctx, &flow.ConfirmInput{UserID: userID, Kind: kind})
	if err != nil {
		switch {
		case errors.Is(err, flow.ErrNoActiveFlow):
			return []linebot.SendingMessage{linebot.NewTextMessage("無法確認活動，請重新設定")}
		case errors.Is(err, flow.ErrMissingName):
			return []linebot.SendingMessage{linebot.NewTextMessage("請先輸入活動名稱")}
		}
		log.Printf("failed to confirm flow for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("活動設定失敗，請稍後再試")}
	}
	return []linebot.SendingMessage{successMessage(out.Event)}
}

func (b *Bot) cancelFlow(ctx context.Context, userID string, kind models.FlowKind) []linebot.SendingMessage {
	if _, err := b.flowService.Cancel(ctx, &flow.CancelInput{UserID: userID, Kind: kind}); err != nil {
		log.Printf("failed to cancel flow for %s: %v", userID, err)
	}
	return []linebot.SendingMessage{linebot.NewTextMessage("已取消活動設定")}
}

func (b *Bot) manualRemind(ctx context.Context, userID string) []linebot.SendingMessage {
	out, err := b.reminderService.ManualRemind(ctx, &reminder.ManualRemindInput{UserID: userID})
	if err != nil {
		log.Printf("failed to trigger manual reminder for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("提醒發送過程中出錯，請稍後再試")}
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(out.Message)}
}

func (b *Bot) directAdd(ctx context.Context, text string) []linebot.SendingMessage {
	input, ok := parseDirectAdd(text)
	if !ok {
		help := "請使用以下格式新增活動：\n\n新增活動 活動名稱 YYYY/MM/DD HH:MM [分類] [重要性] [備註]\n\n例如：\n新增活動 開會 2025/01/01 14:30 [會議] [高] [準備簡報]"
		return []linebot.SendingMessage{linebot.NewTextMessage(help)}
	}
	return b.createEvent(ctx, input)
}

func (b *Bot) createEvent(ctx context.Context, input *flow.CreateEventInput) []linebot.SendingMessage {
	out, err := b.flowService.CreateEvent(ctx, input)
	if err != nil {
		if errors.Is(err, flow.ErrInvalidImportance) {
			return []linebot.SendingMessage{linebot.NewTextMessage(
				fmt.Sprintf("無效的重要性: %s。請使用「高」、「中」或「低」。", input.Importance))}
		}
		log.Printf("failed to create event directly: %v", err)
		return []linebot.SendingMessage{linebot.NewTextMessage("活動設定失敗，請稍後再試")}
	}
	return []linebot.SendingMessage{successMessage(out.Event)}
}

func (b *Bot) queryCommand(ctx context.Context, payload string) []linebot.SendingMessage {
	start, end, err := parseQueryArgs(payload)
	if err != nil {
		return []linebot.SendingMessage{linebot.NewTextMessage(err.Error())}
	}

	if end == nil {
		out, err := b.queryService.QueryDay(ctx, &query.QueryDayInput{Day: start})
		if err != nil {
			log.Printf("failed to query events: %v", err)
			return []linebot.SendingMessage{linebot.NewTextMessage("查詢活動時發生錯誤，請稍後再試")}
		}
		return []linebot.SendingMessage{linebot.NewTextMessage(out.Result.Message)}
	}

	out, err := b.queryService.QueryRange(ctx, &query.QueryRangeInput{Start: start, End: endOfDay(*end)})
	if err != nil {
		if errors.Is(err, query.ErrInvalidInput) {
			return []linebot.SendingMessage{linebot.NewTextMessage("結束日期不能早於開始日期，請重新選擇")}
		}
		log.Printf("failed to query events: %v", err)
		return []linebot.SendingMessage{linebot.NewTextMessage("查詢活動時發生錯誤，請稍後再試")}
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(out.Result.Message)}
}

func (b *Bot) queryDay(ctx context.Context, params *linebot.Params) []linebot.SendingMessage {
	day, ok := pickedDate(params)
	if !ok {
		return []linebot.SendingMessage{linebot.NewTextMessage("日期格式不正確，請重新選擇")}
	}

	out, err := b.queryService.QueryDay(ctx, &query.QueryDayInput{Day: day})
	if err != nil {
		log.Printf("failed to query day: %v", err)
		return []linebot.SendingMessage{linebot.NewTextMessage("查詢活動時發生錯誤，請稍後再試")}
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(out.Result.Message)}
}

func (b *Bot) queryRelative(ctx context.Context, r query.RelativeRange) []linebot.SendingMessage {
	out, err := b.queryService.QueryRelative(ctx, &query.QueryRelativeInput{Range: r})
	if err != nil {
		log.Printf("failed to query %s: %v", r, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("查詢活動時發生錯誤，請稍後再試")}
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(out.Result.Message)}
}

func (b *Bot) beginRange(ctx context.Context, userID string, params *linebot.Params) []linebot.SendingMessage {
	start, ok := pickedDate(params)
	if !ok {
		return []linebot.SendingMessage{linebot.NewTextMessage("日期格式不正確，請重新選擇")}
	}

	out, err := b.queryService.BeginRangeSelection(ctx, &query.BeginRangeSelectionInput{
		UserID: userID,
		Start:  start,
	})
	if err != nil {
		log.Printf("failed to begin range selection for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("查詢活動時發生錯誤，請稍後再試")}
	}
	return []linebot.SendingMessage{endDatePicker(out.Start)}
}

func (b *Bot) completeRange(ctx context.Context, userID string, params *linebot.Params) []linebot.SendingMessage {
	end, ok := pickedDate(params)
	if !ok {
		return []linebot.SendingMessage{linebot.NewTextMessage("日期格式不正確，請重新選擇")}
	}

	out, err := b.queryService.CompleteRangeSelection(ctx, &query.CompleteRangeSelectionInput{
		UserID: userID,
		End:    end,
	})
	if err != nil {
		log.Printf("failed to complete range selection for %s: %v", userID, err)
		return []linebot.SendingMessage{linebot.NewTextMessage("查詢活動時發生錯誤，請稍後再試")}
	}
	if out.Reject != "" {
		return []linebot.SendingMessage{linebot.NewTextMessage(out.Reject)}
	}
	return []linebot.SendingMessage{linebot.NewTextMessage(out.Result.Message)}
}

func pickedDate(params *linebot.Params) (time.Time, bool) {
	if params == nil || params.Date == "" {
		return time.Time{}, false
	}
	day, err := parsePickerDate(params.Date)
	if err != nil {
		return time.Time{}, false
	}
	return day, true
}
