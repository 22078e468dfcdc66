package flow

import (
	"fmt"
	"strings"
	"time"

	"github.com/eventline-bot/eventline/internal/models"
)

// DisplayTimeLayout is the user-facing time format at minute precision.
const DisplayTimeLayout = "2006/01/02 15:04"

// ParseDisplayTime parses user-entered time text as UTC.
func ParseDisplayTime(s string) (time.Time, error) {
	return time.ParseInLocation(DisplayTimeLayout, strings.TrimSpace(s), time.UTC)
}

// FormatDisplayTime renders an instant in the user-facing format.
func FormatDisplayTime(t time.Time) string {
	return t.UTC().Format(DisplayTimeLayout)
}

type transitionKey struct {
	flow models.FlowKind
	step models.Step
	kind IntentKind
}

type transition func(fs *models.FlowState, in Intent, now time.Time) Prompt

// transitions is the single state-transition table shared by both flow
// variants. Anything not listed here is a refused input: the engine re-prompts
// without advancing or dropping collected fields.
var transitions = map[transitionKey]transition{
	// Guided flow: strict order, one field per turn.
	{models.FlowGuided, models.StepSelectingDateTime, IntentPickTime}:        setTimeAdvance,
	{models.FlowGuided, models.StepSelectingDateTime, IntentFreeText}:        parseTimeAdvance,
	{models.FlowGuided, models.StepSelectingImportance, IntentSetImportance}: setImportanceAdvance,
	{models.FlowGuided, models.StepSelectingCategory, IntentSetCategory}:     setCategoryAdvance,
	{models.FlowGuided, models.StepWaitingForName, IntentFreeText}:           setName,
	{models.FlowGuided, models.StepWaitingForNotes, IntentFreeText}:          setNotes,

	// Form flow: selectable fields arrive in any order while the form is open,
	// including after the name prompt (the rendered form stays tappable).
	{models.FlowForm, models.StepSelectingDateTime, IntentPickTime}:      setTimeStay,
	{models.FlowForm, models.StepSelectingDateTime, IntentFreeText}:      parseTimeStay,
	{models.FlowForm, models.StepSelectingDateTime, IntentSetImportance}: setImportanceStay,
	{models.FlowForm, models.StepSelectingDateTime, IntentSetCategory}:   setCategoryToName,
	{models.FlowForm, models.StepWaitingForName, IntentPickTime}:         setTimeStay,
	{models.FlowForm, models.StepWaitingForName, IntentSetImportance}:    setImportanceStay,
	{models.FlowForm, models.StepWaitingForName, IntentSetCategory}:      setCategoryStay,
	{models.FlowForm, models.StepWaitingForName, IntentFreeText}:         setNameAskNotes,
	{models.FlowForm, models.StepWaitingForNotes, IntentNeedNotes}:       chooseNotes,
	{models.FlowForm, models.StepWaitingForNotes, IntentFreeText}:        setNotes,
}

func applyIntent(fs *models.FlowState, in Intent, now time.Time) Prompt {
	fn, ok := transitions[transitionKey{flow: fs.Kind, step: fs.Step, kind: in.Kind}]
	if !ok {
		return rejectPrompt(fs, stepExpectation(fs.Step))
	}
	return fn(fs, in, now)
}

// fillDefaults backfills any still-unset selectable field. Applying it twice
// never overwrites a user-supplied value.
func fillDefaults(d *models.Draft, now time.Time) {
	if d.When == nil {
		when := now.UTC().Truncate(time.Minute)
		d.When = &when
	}
	if d.Importance == "" {
		d.Importance = models.ImportanceMedium
	}
	if d.Category == "" {
		d.Category = models.CategoryEvent
	}
}

// normalizeNotes maps the "no notes" literals to an empty note.
func normalizeNotes(text string) string {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "無", "none", "n/a", "", "n":
		return ""
	}
	return strings.TrimSpace(text)
}

func promptFor(fs *models.FlowState) Prompt {
	return Prompt{Flow: fs.Kind, Step: fs.Step, Draft: snapshotDraft(fs.Draft)}
}

func rejectPrompt(fs *models.FlowState, reason string) Prompt {
	p := promptFor(fs)
	p.Reject = reason
	return p
}

// snapshotDraft copies the draft so prompts never alias the live session.
func snapshotDraft(d models.Draft) models.Draft {
	out := d
	if d.When != nil {
		when := *d.When
		out.When = &when
	}
	if d.Notes != nil {
		notes := *d.Notes
		out.Notes = &notes
	}
	return out
}

func stepExpectation(step models.Step) string {
	switch step {
	case models.StepSelectingDateTime:
		return "請先選擇活動的日期和時間"
	case models.StepSelectingImportance:
		return "請選擇活動的重要性（高／中／低）"
	case models.StepSelectingCategory:
		return "請選擇活動分類"
	case models.StepWaitingForName:
		return "請輸入活動名稱"
	case models.StepWaitingForNotes:
		return "請輸入備註，或輸入「無」跳過"
	case models.StepWaitingForConfirmation:
		return "請點選「確認」或「取消」完成活動設定"
	default:
		return "請先開始設定活動"
	}
}

func invalidImportance(label string) string {
	return fmt.Sprintf("無效的重要性: %s。請使用「高」、「中」或「低」。", label)
}

func invalidCategory(label string) string {
	return fmt.Sprintf("無效的分類: %s。請使用「%s」。", label, strings.Join(models.Categories, "」、「"))
}

const invalidTimeText = "時間格式不正確，請使用 YYYY/MM/DD HH:MM 格式重新輸入"

func setWhen(fs *models.FlowState, t time.Time) {
	when := t.UTC().Truncate(time.Minute)
	fs.Draft.When = &when
}

func setTimeAdvance(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	if in.When == nil {
		return rejectPrompt(fs, invalidTimeText)
	}
	setWhen(fs, *in.When)
	fs.Step = models.StepSelectingImportance
	return promptFor(fs)
}

func parseTimeAdvance(fs *models.FlowState, in Intent, now time.Time) Prompt {
	t, err := ParseDisplayTime(in.Text)
	if err != nil {
		return rejectPrompt(fs, invalidTimeText)
	}
	return setTimeAdvance(fs, Intent{Kind: IntentPickTime, When: &t}, now)
}

func setImportanceAdvance(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	imp := models.Importance(strings.TrimSpace(in.Label))
	if !imp.Valid() {
		return rejectPrompt(fs, invalidImportance(in.Label))
	}
	fs.Draft.Importance = imp
	fs.Step = models.StepSelectingCategory
	return promptFor(fs)
}

func setCategoryAdvance(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	cat := strings.TrimSpace(in.Label)
	if !models.ValidCategory(cat) {
		return rejectPrompt(fs, invalidCategory(in.Label))
	}
	fs.Draft.Category = cat
	fs.Step = models.StepWaitingForName
	return promptFor(fs)
}

func setName(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	name := strings.TrimSpace(in.Text)
	if name == "" {
		return rejectPrompt(fs, "活動名稱不能為空，請重新輸入")
	}
	fs.Draft.Name = name
	fs.Step = models.StepWaitingForNotes
	return promptFor(fs)
}

func setNotes(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	notes := normalizeNotes(in.Text)
	fs.Draft.Notes = &notes
	fs.Step = models.StepWaitingForConfirmation
	return promptFor(fs)
}

func setTimeStay(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	if in.When == nil {
		return rejectPrompt(fs, invalidTimeText)
	}
	setWhen(fs, *in.When)
	p := promptFor(fs)
	p.Ack = fmt.Sprintf("已選擇時間: %s\n請繼續選擇重要性和分類", FormatDisplayTime(*fs.Draft.When))
	return p
}

func parseTimeStay(fs *models.FlowState, in Intent, now time.Time) Prompt {
	t, err := ParseDisplayTime(in.Text)
	if err != nil {
		return rejectPrompt(fs, invalidTimeText)
	}
	return setTimeStay(fs, Intent{Kind: IntentPickTime, When: &t}, now)
}

func setImportanceStay(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	imp := models.Importance(strings.TrimSpace(in.Label))
	if !imp.Valid() {
		return rejectPrompt(fs, invalidImportance(in.Label))
	}
	fs.Draft.Importance = imp
	p := promptFor(fs)
	p.Ack = fmt.Sprintf("已選擇重要性: %s\n請繼續選擇分類", imp)
	return p
}

func setCategoryStay(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	cat := strings.TrimSpace(in.Label)
	if !models.ValidCategory(cat) {
		return rejectPrompt(fs, invalidCategory(in.Label))
	}
	fs.Draft.Category = cat
	p := promptFor(fs)
	p.Ack = fmt.Sprintf("已選擇分類: %s", cat)
	return p
}

// setCategoryToName is the form variant's gate into the name phase: picking a
// category default-fills whatever selectable fields are still unset.
func setCategoryToName(fs *models.FlowState, in Intent, now time.Time) Prompt {
	cat := strings.TrimSpace(in.Label)
	if !models.ValidCategory(cat) {
		return rejectPrompt(fs, invalidCategory(in.Label))
	}
	fs.Draft.Category = cat
	fillDefaults(&fs.Draft, now)
	fs.Step = models.StepWaitingForName
	p := promptFor(fs)
	p.Ack = fmt.Sprintf("已選擇分類: %s", cat)
	return p
}

func setNameAskNotes(fs *models.FlowState, in Intent, now time.Time) Prompt {
	p := setName(fs, in, now)
	if p.Reject != "" {
		return p
	}
	p.AskNotesChoice = true
	return p
}

func chooseNotes(fs *models.FlowState, in Intent, _ time.Time) Prompt {
	if in.WantNotes {
		return promptFor(fs)
	}
	empty := ""
	fs.Draft.Notes = &empty
	fs.Step = models.StepWaitingForConfirmation
	return promptFor(fs)
}
