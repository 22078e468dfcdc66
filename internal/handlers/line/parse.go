package line

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/eventline-bot/eventline/internal/services/flow"
)

// Text commands
const (
	CommandCreateEvent  = "設定活動"
	CommandQueryEvents  = "查詢活動"
	CommandManualRemind = "手動提醒"
	CommandHelp         = "幫助"
	CommandCancelCreate = "取消設定活動"
)

// Text prefixes used by quick-reply buttons
const (
	PrefixPickTime   = "選擇時間:"
	PrefixImportance = "重要性:"
	PrefixCategory   = "分類:"
	PrefixCreate     = "設定活動:"
	PrefixQuery      = "查詢活動:"
)

// Postback actions
const (
	ActionConfirmEvent       = "confirm_event"
	ActionConfirmEventFlex   = "confirm_event_flex"
	ActionCancelEvent        = "cancel_event"
	ActionCancelEventFlex    = "cancel_event_flex"
	ActionOpenEventFormFlex  = "open_event_form_flex"
	ActionSelectCustomTime   = "select_custom_time"
	ActionSelectDatetimeFlex = "select_datetime_flex"
	ActionSelectImportance   = "select_importance_flex"
	ActionSelectCategory     = "select_category_flex"
	ActionNeedNotesFlex      = "need_notes_flex"
	ActionSetImportance      = "set_importance"
	ActionOpenQueryForm      = "open_query_form"
	ActionSelectDateRange    = "select_date_range"
	ActionSelectStartDate    = "select_start_date"
	ActionSelectEndDate      = "select_end_date"
	ActionQueryDate          = "query_date"
	ActionQueryToday         = "query_today"
	ActionQueryNext7Days     = "query_next7days"
	ActionQueryMonth         = "query_month"
	ActionQueryYear          = "query_year"
)

// Picker payload layouts
const (
	pickerDatetimeLayout = "2006-01-02T15:04"
	pickerDateLayout     = "2006-01-02"
)

// directAddRe matches the one-line grammar:
// 新增[活動] 名稱 YYYY/MM/DD [HH:MM] [分類] [重要性] [備註]
var directAddRe = regexp.MustCompile(`^新增(?:活動)?\s+(.+?)\s+(\d{4}/\d{1,2}/\d{1,2}(?:\s+\d{1,2}:\d{1,2})?)\s*(?:\[([^\]]+)\])?\s*(?:\[([^\]]+)\])?\s*(?:\[([^\]]*)\])?$`)

// parseDirectAdd parses the one-line creation grammar. A date without a time
// defaults to 09:00.
func parseDirectAdd(text string) (*flow.CreateEventInput, bool) {
	m := directAddRe.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return nil, false
	}

	dateStr := strings.TrimSpace(m[2])
	var when time.Time
	var err error
	if strings.Contains(dateStr, " ") {
		when, err = time.ParseInLocation("2006/1/2 15:4", dateStr, time.UTC)
	} else {
		when, err = time.ParseInLocation("2006/1/2", dateStr, time.UTC)
		when = when.Add(9 * time.Hour)
	}
	if err != nil {
		return nil, false
	}

	return &flow.CreateEventInput{
		Name:       strings.TrimSpace(m[1]),
		When:       when,
		Category:   strings.TrimSpace(m[3]),
		Importance: strings.TrimSpace(m[4]),
		Notes:      strings.TrimSpace(m[5]),
	}, true
}

// parseQueryArgs parses "開始日期[,結束日期]" from the 查詢活動: command.
// A nil end means a single-day query.
func parseQueryArgs(payload string) (time.Time, *time.Time, error) {
	parts := strings.Split(payload, ",")
	if strings.TrimSpace(parts[0]) == "" {
		return time.Time{}, nil, errors.New("請提供開始日期")
	}

	start, err := time.ParseInLocation("2006/01/02", strings.TrimSpace(parts[0]), time.UTC)
	if err != nil {
		return time.Time{}, nil, errors.New("開始日期格式不正確，請使用 YYYY/MM/DD 格式")
	}

	if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
		return start, nil, nil
	}

	end, err := time.ParseInLocation("2006/01/02", strings.TrimSpace(parts[1]), time.UTC)
	if err != nil {
		return time.Time{}, nil, errors.New("結束日期格式不正確，請使用 YYYY/MM/DD 格式")
	}

	return start, &end, nil
}

// parsePostbackData splits "action=x&value=y" into its pieces.
func parsePostbackData(data string) (action string, value string) {
	values, err := url.ParseQuery(data)
	if err != nil {
		return "", ""
	}
	return values.Get("action"), values.Get("value")
}

func parsePickerDatetime(s string) (time.Time, error) {
	return time.ParseInLocation(pickerDatetimeLayout, s, time.UTC)
}

func parsePickerDate(s string) (time.Time, error) {
	return time.ParseInLocation(pickerDateLayout, s, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 23, 59, 59, 0, time.UTC)
}
