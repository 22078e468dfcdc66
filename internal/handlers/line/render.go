package line

import (
	"fmt"
	"strings"
	"time"

	"github.com/line/line-bot-sdk-go/v7/linebot"

	"github.com/eventline-bot/eventline/internal/models"
	"github.com/eventline-bot/eventline/internal/services/flow"
)

const helpText = `📅 活動管理 Bot 使用說明

1️⃣ 設定活動:
   發送「設定活動」開始逐步設定
   或使用單行指令:
   新增活動 活動名稱 YYYY/MM/DD HH:MM [分類] [重要性] [備註]

2️⃣ 查詢活動:
   發送「查詢活動」開啟查詢選單
   或使用指令: 查詢活動:開始日期,結束日期
   範例: 查詢活動:2025/01/01,2025/12/31

   也可以只指定一天:
   範例: 查詢活動:2025/12/25

3️⃣ 手動提醒:
   直接發送「手動提醒」，Bot 將立即檢查並發送活動提醒

🔔 自動提醒功能會在每天早上 6 點自動檢查未來活動並發送提醒。`

func helpMessage() linebot.SendingMessage {
	return linebot.NewTextMessage(helpText).WithQuickReplies(linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "設定活動", Text: CommandCreateEvent}),
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "查詢活動", Text: CommandQueryEvents}),
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "手動提醒", Text: CommandManualRemind}),
	))
}

// guidedTimePrompt opens the sequential flow: preset time slots for today and
// tomorrow plus a free datetime picker.
func guidedTimePrompt(now time.Time) []linebot.SendingMessage {
	today := now.UTC().Format("2006/01/02")
	tomorrow := now.UTC().AddDate(0, 0, 1).Format("2006/01/02")

	preset := func(label, day, hhmm string) *linebot.QuickReplyButton {
		return linebot.NewQuickReplyButton("", &linebot.MessageAction{
			Label: label,
			Text:  PrefixPickTime + day + " " + hhmm,
		})
	}

	items := linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", &linebot.DatetimePickerAction{
			Label: "自訂時間",
			Data:  "action=" + ActionSelectCustomTime,
			Mode:  "datetime",
		}),
		preset("今天8點", today, "08:00"),
		preset("今天10點", today, "10:00"),
		preset("今天12點", today, "12:00"),
		preset("今天14點", today, "14:00"),
		preset("今天17點", today, "17:00"),
		preset("明天8點", tomorrow, "08:00"),
		preset("明天12點", tomorrow, "12:00"),
		preset("明天14點", tomorrow, "14:00"),
		preset("明天16點", tomorrow, "16:00"),
	)

	return []linebot.SendingMessage{
		linebot.NewTextMessage("請按照以下步驟設定活動：\n1. 選擇日期和時間\n2. 選擇活動重要性\n3. 選擇活動分類\n4. 輸入活動名稱和備註"),
		linebot.NewTextMessage("📅 設定活動 (步驟 1/4)\n請選擇活動的日期和時間：").WithQuickReplies(items),
	}
}

func importancePrompt(draft models.Draft) linebot.SendingMessage {
	items := linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "高重要性", Text: PrefixImportance + "高"}),
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "中重要性", Text: PrefixImportance + "中"}),
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "低重要性", Text: PrefixImportance + "低"}),
	)

	text := "📅 設定活動 (步驟 2/4)\n"
	if draft.When != nil {
		text += fmt.Sprintf("您選擇的時間是: %s\n\n", flow.FormatDisplayTime(*draft.When))
	}
	text += "請選擇活動的重要性等級："
	return linebot.NewTextMessage(text).WithQuickReplies(items)
}

func categoryPrompt(draft models.Draft) linebot.SendingMessage {
	buttons := make([]*linebot.QuickReplyButton, 0, len(models.Categories))
	for _, cat := range models.Categories {
		buttons = append(buttons, linebot.NewQuickReplyButton("", &linebot.MessageAction{
			Label: cat,
			Text:  PrefixCategory + cat,
		}))
	}

	text := fmt.Sprintf("您已設定：\n時間: %s\n重要性: %s\n\n", displayWhen(draft), draft.Importance)
	text += "📅 設定活動 (步驟 3/4)\n請選擇活動分類"
	return linebot.NewTextMessage(text).WithQuickReplies(linebot.NewQuickReplyItems(buttons...))
}

func namePrompt(draft models.Draft) linebot.SendingMessage {
	text := fmt.Sprintf("您已設定：\n時間: %s\n重要性: %s\n分類: %s\n\n請輸入活動名稱：",
		displayWhen(draft), draft.Importance, draft.Category)
	return linebot.NewTextMessage(text).WithQuickReplies(linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "取消", Text: CommandCancelCreate}),
	))
}

func notesPrompt() linebot.SendingMessage {
	return linebot.NewTextMessage("請直接輸入備註，或選擇「取消備註」跳過：").WithQuickReplies(linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "取消備註", Text: "無"}),
	))
}

func notesChoicePrompt() linebot.SendingMessage {
	template := &linebot.ButtonsTemplate{
		Title: "📝 備註",
		Text:  "需要為這個活動添加備註嗎？",
		Actions: []linebot.TemplateAction{
			&linebot.PostbackAction{Label: "是", Data: "action=" + ActionNeedNotesFlex + "&value=yes"},
			&linebot.PostbackAction{Label: "否", Data: "action=" + ActionNeedNotesFlex + "&value=no"},
		},
	}
	return linebot.NewTemplateMessage("是否需要備註", template)
}

// confirmationPrompt summarizes the draft with 確認/取消 quick replies. The
// postback actions carry the flow variant so the right state is committed.
func confirmationPrompt(kind models.FlowKind, draft models.Draft) linebot.SendingMessage {
	suffix := ""
	if kind == models.FlowForm {
		suffix = "_flex"
	}

	var b strings.Builder
	b.WriteString("請確認活動資訊:\n\n")
	fmt.Fprintf(&b, "時間: %s\n", displayWhen(draft))
	fmt.Fprintf(&b, "重要性: %s\n", draft.Importance)
	fmt.Fprintf(&b, "分類: %s\n", draft.Category)
	fmt.Fprintf(&b, "活動名稱: %s\n", draft.Name)
	if draft.Notes != nil && *draft.Notes != "" {
		fmt.Fprintf(&b, "備註: %s\n", *draft.Notes)
	} else {
		b.WriteString("備註: (無備註)\n")
	}

	return linebot.NewTextMessage(b.String()).WithQuickReplies(linebot.NewQuickReplyItems(
		linebot.NewQuickReplyButton("", &linebot.PostbackAction{Label: "取消", Data: "action=cancel_event" + suffix}),
		linebot.NewQuickReplyButton("", &linebot.PostbackAction{Label: "確認", Data: "action=confirm_event" + suffix}),
	))
}

// formFlexMessage renders the single-screen creation form: a datetime picker
// plus importance and category buttons, all tappable in any order.
func formFlexMessage(now time.Time) linebot.SendingMessage {
	initial := now.UTC().Format(pickerDatetimeLayout)
	max := now.UTC().AddDate(1, 0, 0).Format(pickerDatetimeLayout)

	importanceRow := &linebot.BoxComponent{
		Type:   linebot.FlexComponentTypeBox,
		Layout: linebot.FlexBoxLayoutTypeHorizontal,
		Margin: linebot.FlexComponentMarginTypeMd,
		Contents: []linebot.FlexComponent{
			importanceButton("高", "#FF5551"),
			importanceButton("中", "#FFA500"),
			importanceButton("低", "#00CC00"),
		},
	}

	categoryButtons := make([]linebot.FlexComponent, 0, len(models.Categories))
	for _, cat := range models.Categories {
		categoryButtons = append(categoryButtons, &linebot.ButtonComponent{
			Type:   linebot.FlexComponentTypeButton,
			Style:  linebot.FlexButtonStyleTypeSecondary,
			Height: linebot.FlexButtonHeightTypeSm,
			Margin: linebot.FlexComponentMarginTypeSm,
			Action: &linebot.PostbackAction{
				Label: cat,
				Data:  "action=" + ActionSelectCategory + "&value=" + cat,
			},
		})
	}

	bubble := &linebot.BubbleContainer{
		Type: linebot.FlexContainerTypeBubble,
		Header: &linebot.BoxComponent{
			Type:   linebot.FlexComponentTypeBox,
			Layout: linebot.FlexBoxLayoutTypeVertical,
			Contents: []linebot.FlexComponent{
				&linebot.TextComponent{
					Type:   linebot.FlexComponentTypeText,
					Text:   "📅 活動設定",
					Size:   linebot.FlexTextSizeTypeXl,
					Weight: linebot.FlexTextWeightTypeBold,
					Color:  "#1DB446",
				},
			},
		},
		Body: &linebot.BoxComponent{
			Type:   linebot.FlexComponentTypeBox,
			Layout: linebot.FlexBoxLayoutTypeVertical,
			Contents: []linebot.FlexComponent{
				&linebot.TextComponent{
					Type:  linebot.FlexComponentTypeText,
					Text:  "日期時間",
					Size:  linebot.FlexTextSizeTypeSm,
					Color: "#555555",
				},
				&linebot.TextComponent{
					Type:   linebot.FlexComponentTypeText,
					Text:   "點擊選擇",
					Size:   linebot.FlexTextSizeTypeSm,
					Color:  "#111111",
					Margin: linebot.FlexComponentMarginTypeMd,
					Action: &linebot.DatetimePickerAction{
						Label:   "選擇日期時間",
						Data:    "action=" + ActionSelectDatetimeFlex,
						Mode:    "datetime",
						Initial: initial,
						Max:     max,
						Min:     initial,
					},
				},
				&linebot.SeparatorComponent{
					Type:   linebot.FlexComponentTypeSeparator,
					Margin: linebot.FlexComponentMarginTypeLg,
				},
				&linebot.TextComponent{
					Type:   linebot.FlexComponentTypeText,
					Text:   "重要性",
					Size:   linebot.FlexTextSizeTypeSm,
					Color:  "#555555",
					Margin: linebot.FlexComponentMarginTypeLg,
				},
				importanceRow,
				&linebot.SeparatorComponent{
					Type:   linebot.FlexComponentTypeSeparator,
					Margin: linebot.FlexComponentMarginTypeLg,
				},
				&linebot.TextComponent{
					Type:   linebot.FlexComponentTypeText,
					Text:   "分類",
					Size:   linebot.FlexTextSizeTypeSm,
					Color:  "#555555",
					Margin: linebot.FlexComponentMarginTypeLg,
				},
				&linebot.BoxComponent{
					Type:     linebot.FlexComponentTypeBox,
					Layout:   linebot.FlexBoxLayoutTypeVertical,
					Margin:   linebot.FlexComponentMarginTypeMd,
					Contents: categoryButtons,
				},
			},
		},
	}

	return linebot.NewFlexMessage("活動設定表單", bubble)
}

func importanceButton(label, color string) *linebot.ButtonComponent {
	return &linebot.ButtonComponent{
		Type:   linebot.FlexComponentTypeButton,
		Style:  linebot.FlexButtonStyleTypePrimary,
		Color:  color,
		Height: linebot.FlexButtonHeightTypeSm,
		Margin: linebot.FlexComponentMarginTypeMd,
		Action: &linebot.PostbackAction{
			Label: label,
			Data:  "action=" + ActionSelectImportance + "&value=" + label,
		},
	}
}

// queryMenu offers the date pickers and the quick relative-range queries.
func queryMenu() []linebot.SendingMessage {
	first := &linebot.ButtonsTemplate{
		Title: "📆 活動查詢 (1/2)",
		Text:  "請選擇查詢方式",
		Actions: []linebot.TemplateAction{
			&linebot.DatetimePickerAction{Label: "選擇單一日期", Data: "action=" + ActionQueryDate, Mode: "date"},
			&linebot.PostbackAction{Label: "選擇日期範圍", Data: "action=" + ActionSelectDateRange},
			&linebot.PostbackAction{Label: "查詢今天", Data: "action=" + ActionQueryToday},
		},
	}
	second := &linebot.ButtonsTemplate{
		Title: "📆 活動查詢 (2/2)",
		Text:  "快速查詢範圍",
		Actions: []linebot.TemplateAction{
			&linebot.PostbackAction{Label: "查詢後7天", Data: "action=" + ActionQueryNext7Days},
			&linebot.PostbackAction{Label: "查詢本月", Data: "action=" + ActionQueryMonth},
			&linebot.PostbackAction{Label: "查詢本年", Data: "action=" + ActionQueryYear},
		},
	}

	return []linebot.SendingMessage{
		linebot.NewTemplateMessage("活動查詢", first),
		linebot.NewTemplateMessage("活動查詢", second),
	}
}

func startDatePicker() linebot.SendingMessage {
	template := &linebot.ButtonsTemplate{
		Title: "📆 選擇日期範圍",
		Text:  "請先選擇開始日期",
		Actions: []linebot.TemplateAction{
			&linebot.DatetimePickerAction{Label: "選擇開始日期", Data: "action=" + ActionSelectStartDate, Mode: "date"},
		},
	}
	return linebot.NewTemplateMessage("選擇開始日期", template)
}

func endDatePicker(start time.Time) linebot.SendingMessage {
	template := &linebot.ButtonsTemplate{
		Title: "📆 選擇日期範圍",
		Text:  fmt.Sprintf("開始日期: %s\n請選擇結束日期", start.UTC().Format(pickerDateLayout)),
		Actions: []linebot.TemplateAction{
			&linebot.DatetimePickerAction{Label: "選擇結束日期", Data: "action=" + ActionSelectEndDate, Mode: "date"},
		},
	}
	return linebot.NewTemplateMessage("選擇結束日期", template)
}

func successMessage(event *models.Event) linebot.SendingMessage {
	text := fmt.Sprintf("✅ 活動已設定成功！\n\n活動名稱: %s\n時間: %s\n分類: %s\n重要性: %s",
		event.Name, flow.FormatDisplayTime(event.Time), event.Category, event.Importance)
	if event.Notes != "" {
		text += fmt.Sprintf("\n備註: %s", event.Notes)
	}
	return linebot.NewTextMessage(text)
}

// renderPrompt maps a flow prompt onto the outgoing messages for its step.
func renderPrompt(p flow.Prompt, now time.Time) []linebot.SendingMessage {
	if p.Reject != "" {
		return []linebot.SendingMessage{linebot.NewTextMessage(p.Reject)}
	}

	// The form variant stays on its bubble; a plain acknowledgement is enough
	// until the name and notes phases.
	if p.Flow == models.FlowForm {
		switch {
		case p.AskNotesChoice:
			return []linebot.SendingMessage{notesChoicePrompt()}
		case p.Step == models.StepWaitingForNotes:
			return []linebot.SendingMessage{notesPrompt()}
		case p.Step == models.StepWaitingForConfirmation:
			return []linebot.SendingMessage{confirmationPrompt(p.Flow, p.Draft)}
		case p.Ack != "":
			msg := linebot.NewTextMessage(p.Ack)
			if p.Step == models.StepWaitingForName {
				return []linebot.SendingMessage{
					linebot.NewTextMessage(p.Ack + "\n\n請直接輸入活動名稱：").WithQuickReplies(linebot.NewQuickReplyItems(
						linebot.NewQuickReplyButton("", &linebot.MessageAction{Label: "取消", Text: CommandCancelCreate}),
					)),
				}
			}
			return []linebot.SendingMessage{msg}
		}
		return []linebot.SendingMessage{linebot.NewTextMessage("請繼續填寫活動表單")}
	}

	switch p.Step {
	case models.StepSelectingDateTime:
		return guidedTimePrompt(now)
	case models.StepSelectingImportance:
		return []linebot.SendingMessage{importancePrompt(p.Draft)}
	case models.StepSelectingCategory:
		return []linebot.SendingMessage{categoryPrompt(p.Draft)}
	case models.StepWaitingForName:
		return []linebot.SendingMessage{namePrompt(p.Draft)}
	case models.StepWaitingForNotes:
		return []linebot.SendingMessage{notesPrompt()}
	case models.StepWaitingForConfirmation:
		return []linebot.SendingMessage{confirmationPrompt(p.Flow, p.Draft)}
	}
	return []linebot.SendingMessage{helpMessage()}
}

func displayWhen(draft models.Draft) string {
	if draft.When == nil {
		return "(未設定)"
	}
	return flow.FormatDisplayTime(*draft.When)
}
