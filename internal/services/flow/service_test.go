package flow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	clockMocks "github.com/eventline-bot/eventline/internal/common/clock/mocks"
	"github.com/eventline-bot/eventline/internal/models"
	eventRepo "github.com/eventline-bot/eventline/internal/repositories/event"
	eventMocks "github.com/eventline-bot/eventline/internal/repositories/event/mocks"
	sessionRepo "github.com/eventline-bot/eventline/internal/repositories/session"
)

type FlowServiceTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockEvent *eventMocks.MockRepository
	mockClock *clockMocks.MockClock
	sessions  sessionRepo.Repository
	service   *serviceImpl
	ctx       context.Context
	testTime  time.Time
}

func (s *FlowServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockEvent = eventMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = clockMocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()
	s.testTime = time.Date(2025, 6, 1, 10, 30, 45, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	sessions, err := sessionRepo.NewMemory(&sessionRepo.Config{
		TTL:             30 * time.Minute,
		JanitorInterval: time.Hour,
		Clock:           s.mockClock,
	})
	s.Require().NoError(err)
	s.sessions = sessions

	svc, err := New(&Config{
		SessionRepo: s.sessions,
		EventRepo:   s.mockEvent,
		Clock:       s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *FlowServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestFlowServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FlowServiceTestSuite))
}

func (s *FlowServiceTestSuite) advance(userID string, intent Intent) Prompt {
	out, err := s.service.Advance(s.ctx, &AdvanceInput{UserID: userID, Intent: intent})
	s.Require().NoError(err)
	return out.Prompt
}

func (s *FlowServiceTestSuite) TestNewValidation() {
	testCases := []struct {
		name        string
		cfg         *Config
		expectedErr error
	}{
		{name: "nil config", cfg: nil, expectedErr: ErrNilConfig},
		{name: "nil session repo", cfg: &Config{EventRepo: s.mockEvent, Clock: s.mockClock}, expectedErr: ErrNilSessionRepo},
		{name: "nil event repo", cfg: &Config{SessionRepo: s.sessions, Clock: s.mockClock}, expectedErr: ErrNilEventRepo},
		{name: "nil clock", cfg: &Config{SessionRepo: s.sessions, EventRepo: s.mockEvent}, expectedErr: ErrNilClock},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := New(tc.cfg)
			s.ErrorIs(err, tc.expectedErr)
		})
	}
}

func (s *FlowServiceTestSuite) TestStartFlowResetsOtherVariant() {
	out, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)
	s.Equal(models.StepSelectingDateTime, out.Prompt.Step)

	when := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	s.advance("user-1", Intent{Kind: IntentPickTime, When: &when})

	// Starting the form variant discards the guided draft entirely
	out, err = s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)
	s.Equal(models.FlowForm, out.Prompt.Flow)
	s.Equal(models.StepSelectingDateTime, out.Prompt.Step)
	s.Nil(out.Prompt.Draft.When)
}

func (s *FlowServiceTestSuite) TestGuidedFlowHappyPath() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)

	when := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	p := s.advance("user-1", Intent{Kind: IntentPickTime, When: &when})
	s.Equal(models.StepSelectingImportance, p.Step)

	p = s.advance("user-1", Intent{Kind: IntentSetImportance, Label: "高"})
	s.Equal(models.StepSelectingCategory, p.Step)

	p = s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "會議"})
	s.Equal(models.StepWaitingForName, p.Step)

	p = s.advance("user-1", Intent{Kind: IntentFreeText, Text: "季度檢討"})
	s.Equal(models.StepWaitingForNotes, p.Step)

	p = s.advance("user-1", Intent{Kind: IntentFreeText, Text: "帶投影片"})
	s.Equal(models.StepWaitingForConfirmation, p.Step)

	s.mockEvent.EXPECT().
		CreateEvent(gomock.Any(), &eventRepo.CreateEventInput{
			Name:       "季度檢討",
			Time:       when,
			Category:   models.CategoryMeeting,
			Importance: models.ImportanceHigh,
			Notes:      "帶投影片",
		}).
		Return(&eventRepo.CreateEventOutput{Event: &models.Event{ID: "evt-1", Name: "季度檢討"}}, nil)

	out, err := s.service.Confirm(s.ctx, &ConfirmInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)
	s.Equal("evt-1", out.Event.ID)

	// Flow is gone; a second confirm cannot commit again
	_, err = s.service.Confirm(s.ctx, &ConfirmInput{UserID: "user-1", Kind: models.FlowGuided})
	s.ErrorIs(err, ErrNoActiveFlow)
}

func (s *FlowServiceTestSuite) TestGuidedFlowRejectsOutOfOrderInput() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)

	// Importance before time is refused without advancing
	p := s.advance("user-1", Intent{Kind: IntentSetImportance, Label: "高"})
	s.NotEmpty(p.Reject)
	s.Equal(models.StepSelectingDateTime, p.Step)
	s.Equal("", string(p.Draft.Importance))
}

func (s *FlowServiceTestSuite) TestGuidedFlowRejectKeepsCollectedFields() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)

	when := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	s.advance("user-1", Intent{Kind: IntentPickTime, When: &when})

	p := s.advance("user-1", Intent{Kind: IntentSetImportance, Label: "超高"})
	s.Contains(p.Reject, "無效的重要性")
	s.Equal(models.StepSelectingImportance, p.Step)
	s.Require().NotNil(p.Draft.When)
	s.True(p.Draft.When.Equal(when))
}

func (s *FlowServiceTestSuite) TestFormFlowOutOfOrderFields() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)

	// Importance first, then time, both acknowledged without leaving the step
	p := s.advance("user-1", Intent{Kind: IntentSetImportance, Label: "低"})
	s.Equal(models.StepSelectingDateTime, p.Step)
	s.Contains(p.Ack, "已選擇重要性: 低")

	when := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	p = s.advance("user-1", Intent{Kind: IntentPickTime, When: &when})
	s.Equal(models.StepSelectingDateTime, p.Step)
	s.Contains(p.Ack, "已選擇時間: 2025/06/10 14:00")

	// Category closes the selection phase
	p = s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "任務"})
	s.Equal(models.StepWaitingForName, p.Step)
	s.Equal(models.ImportanceLow, p.Draft.Importance)
	s.True(p.Draft.When.Equal(when))
}

func (s *FlowServiceTestSuite) TestFormFlowDefaultsOnCategorySelect() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)

	// Only the category was chosen; time and importance fall back to defaults
	p := s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "提醒"})
	s.Equal(models.StepWaitingForName, p.Step)
	s.Equal(models.ImportanceMedium, p.Draft.Importance)
	s.Require().NotNil(p.Draft.When)
	s.True(p.Draft.When.Equal(s.testTime.Truncate(time.Minute)))
}

func (s *FlowServiceTestSuite) TestFormFlowReselectAfterNamePrompt() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)

	s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "活動"})

	// The form stays tappable: changing importance at the name step keeps it
	p := s.advance("user-1", Intent{Kind: IntentSetImportance, Label: "高"})
	s.Equal(models.StepWaitingForName, p.Step)
	s.Equal(models.ImportanceHigh, p.Draft.Importance)
}

func (s *FlowServiceTestSuite) TestFormFlowNotesChoice() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)

	s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "活動"})

	p := s.advance("user-1", Intent{Kind: IntentFreeText, Text: "聚餐"})
	s.Equal(models.StepWaitingForNotes, p.Step)
	s.True(p.AskNotesChoice)

	// Declining notes records an explicit empty note and moves to confirmation
	p = s.advance("user-1", Intent{Kind: IntentNeedNotes, WantNotes: false})
	s.Equal(models.StepWaitingForConfirmation, p.Step)
	s.Require().NotNil(p.Draft.Notes)
	s.Equal("", *p.Draft.Notes)
}

func (s *FlowServiceTestSuite) TestNotesLiteralsNormalize() {
	for _, literal := range []string{"無", "none", "N/A", "n", "  "} {
		_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
		s.Require().NoError(err)

		when := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
		s.advance("user-1", Intent{Kind: IntentPickTime, When: &when})
		s.advance("user-1", Intent{Kind: IntentSetImportance, Label: "中"})
		s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "活動"})
		s.advance("user-1", Intent{Kind: IntentFreeText, Text: "名稱"})

		p := s.advance("user-1", Intent{Kind: IntentFreeText, Text: literal})
		s.Require().NotNil(p.Draft.Notes)
		s.Equal("", *p.Draft.Notes, "literal %q", literal)
	}
}

func (s *FlowServiceTestSuite) TestFreeTextTimeParsing() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)

	p := s.advance("user-1", Intent{Kind: IntentFreeText, Text: "not a time"})
	s.Contains(p.Reject, "時間格式不正確")
	s.Equal(models.StepSelectingDateTime, p.Step)

	p = s.advance("user-1", Intent{Kind: IntentFreeText, Text: "2025/06/10 14:00"})
	s.Equal(models.StepSelectingImportance, p.Step)
	s.Equal("2025/06/10 14:00", FormatDisplayTime(*p.Draft.When))
}

func (s *FlowServiceTestSuite) TestAdvanceWithoutFlow() {
	_, err := s.service.Advance(s.ctx, &AdvanceInput{
		UserID: "user-1",
		Intent: Intent{Kind: IntentFreeText, Text: "hello"},
	})
	s.ErrorIs(err, ErrNoActiveFlow)
}

func (s *FlowServiceTestSuite) TestConfirmMissingNamePreservesFlow() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)

	when := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	s.advance("user-1", Intent{Kind: IntentPickTime, When: &when})

	_, err = s.service.Confirm(s.ctx, &ConfirmInput{UserID: "user-1", Kind: models.FlowForm})
	s.ErrorIs(err, ErrMissingName)

	// The draft survives so the user can still provide a name
	p := s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "活動"})
	s.True(p.Draft.When.Equal(when))
}

func (s *FlowServiceTestSuite) TestConfirmStoreFailureRestoresDraft() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)

	when := time.Date(2025, 6, 10, 14, 0, 0, 0, time.UTC)
	s.advance("user-1", Intent{Kind: IntentPickTime, When: &when})
	s.advance("user-1", Intent{Kind: IntentSetImportance, Label: "高"})
	s.advance("user-1", Intent{Kind: IntentSetCategory, Label: "會議"})
	s.advance("user-1", Intent{Kind: IntentFreeText, Text: "季度檢討"})
	s.advance("user-1", Intent{Kind: IntentFreeText, Text: "無"})

	storeErr := errors.New("redis down")
	s.mockEvent.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		Return(nil, storeErr)

	_, err = s.service.Confirm(s.ctx, &ConfirmInput{UserID: "user-1", Kind: models.FlowGuided})
	s.ErrorIs(err, storeErr)

	// Draft came back; a retry commits cleanly
	s.mockEvent.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		Return(&eventRepo.CreateEventOutput{Event: &models.Event{ID: "evt-1"}}, nil)

	out, err := s.service.Confirm(s.ctx, &ConfirmInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)
	s.Equal("evt-1", out.Event.ID)
}

func (s *FlowServiceTestSuite) TestConfirmWrongVariant() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowGuided})
	s.Require().NoError(err)

	_, err = s.service.Confirm(s.ctx, &ConfirmInput{UserID: "user-1", Kind: models.FlowForm})
	s.ErrorIs(err, ErrNoActiveFlow)
}

func (s *FlowServiceTestSuite) TestCancel() {
	_, err := s.service.StartFlow(s.ctx, &StartFlowInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)

	out, err := s.service.Cancel(s.ctx, &CancelInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)
	s.True(out.Cancelled)

	out, err = s.service.Cancel(s.ctx, &CancelInput{UserID: "user-1", Kind: models.FlowForm})
	s.Require().NoError(err)
	s.False(out.Cancelled)
}

func (s *FlowServiceTestSuite) TestCreateEventDirect() {
	when := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	s.mockEvent.EXPECT().
		CreateEvent(gomock.Any(), &eventRepo.CreateEventInput{
			Name:       "團隊聚餐",
			Time:       when,
			Category:   models.CategoryEvent,
			Importance: models.ImportanceMedium,
			Notes:      "",
		}).
		Return(&eventRepo.CreateEventOutput{Event: &models.Event{ID: "evt-1"}}, nil)

	out, err := s.service.CreateEvent(s.ctx, &CreateEventInput{
		Name:  "團隊聚餐",
		When:  when,
		Notes: "無",
	})
	s.Require().NoError(err)
	s.Equal("evt-1", out.Event.ID)
}

func (s *FlowServiceTestSuite) TestCreateEventInvalidImportance() {
	_, err := s.service.CreateEvent(s.ctx, &CreateEventInput{
		Name:       "團隊聚餐",
		When:       s.testTime,
		Importance: "緊急",
	})
	s.ErrorIs(err, ErrInvalidImportance)
}

func (s *FlowServiceTestSuite) TestCreateEventUnknownCategoryFallsBack() {
	s.mockEvent.EXPECT().
		CreateEvent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, in *eventRepo.CreateEventInput) (*eventRepo.CreateEventOutput, error) {
			s.Equal(models.CategoryOther, in.Category)
			return &eventRepo.CreateEventOutput{Event: &models.Event{ID: "evt-1"}}, nil
		})

	_, err := s.service.CreateEvent(s.ctx, &CreateEventInput{
		Name:     "團隊聚餐",
		When:     s.testTime,
		Category: "隨便",
	})
	s.Require().NoError(err)
}
