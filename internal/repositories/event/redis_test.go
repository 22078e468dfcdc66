package event

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/eventline-bot/eventline/internal/models"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	testDay time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	// Create a new miniredis server for each test
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	// Create a Redis client connected to the miniredis server
	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	// Create the repository
	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.testDay = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestCreateEvent() {
	out, err := s.repo.CreateEvent(context.Background(), &CreateEventInput{
		Name:       "團隊會議",
		Time:       s.testDay.Add(14 * time.Hour),
		Category:   models.CategoryMeeting,
		Importance: models.ImportanceHigh,
		Notes:      "討論年度計劃",
	})
	s.Require().NoError(err)
	s.Require().NotNil(out)
	s.Require().NotNil(out.Event)

	s.NotEmpty(out.Event.ID)
	s.Equal("團隊會議", out.Event.Name)
	s.Equal(s.testDay.Add(14*time.Hour), out.Event.Time)
	s.Equal(models.CategoryMeeting, out.Event.Category)
	s.Equal(models.ImportanceHigh, out.Event.Importance)
	s.Equal("討論年度計劃", out.Event.Notes)
	s.Equal(models.ReminderStatusPending, out.Event.ReminderStatus)
}

func (s *RedisRepositoryTestSuite) TestCreateEventDefaults() {
	out, err := s.repo.CreateEvent(context.Background(), &CreateEventInput{
		Name: "未分類的事",
		Time: s.testDay.Add(10 * time.Hour),
	})
	s.Require().NoError(err)

	s.Equal(models.CategoryEvent, out.Event.Category)
	s.Equal(models.ImportanceMedium, out.Event.Importance)
}

func (s *RedisRepositoryTestSuite) TestCreateEventRejectsEmptyName() {
	_, err := s.repo.CreateEvent(context.Background(), &CreateEventInput{
		Name: "",
		Time: s.testDay,
	})
	s.Require().Error(err)
}

func (s *RedisRepositoryTestSuite) TestQueryRangeAscendingOrder() {
	ctx := context.Background()

	// Insert out of chronological order
	times := []time.Time{
		s.testDay.Add(48 * time.Hour),
		s.testDay.Add(2 * time.Hour),
		s.testDay.Add(26 * time.Hour),
	}
	names := []string{"最晚", "最早", "中間"}
	for i, t := range times {
		_, err := s.repo.CreateEvent(ctx, &CreateEventInput{
			Name: names[i],
			Time: t,
		})
		s.Require().NoError(err)
	}

	out, err := s.repo.QueryRange(ctx, &QueryRangeInput{
		Start: s.testDay,
		End:   s.testDay.Add(72 * time.Hour),
	})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 3)

	s.Equal("最早", out.Events[0].Name)
	s.Equal("中間", out.Events[1].Name)
	s.Equal("最晚", out.Events[2].Name)
}

func (s *RedisRepositoryTestSuite) TestQueryRangeBounds() {
	ctx := context.Background()

	_, err := s.repo.CreateEvent(ctx, &CreateEventInput{
		Name: "範圍內",
		Time: s.testDay.Add(24 * time.Hour),
	})
	s.Require().NoError(err)

	_, err = s.repo.CreateEvent(ctx, &CreateEventInput{
		Name: "範圍外",
		Time: s.testDay.Add(96 * time.Hour),
	})
	s.Require().NoError(err)

	out, err := s.repo.QueryRange(ctx, &QueryRangeInput{
		Start: s.testDay,
		End:   s.testDay.Add(48 * time.Hour),
	})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 1)
	s.Equal("範圍內", out.Events[0].Name)
}

func (s *RedisRepositoryTestSuite) TestQueryRangeEmpty() {
	out, err := s.repo.QueryRange(context.Background(), &QueryRangeInput{
		Start: s.testDay,
		End:   s.testDay.Add(24 * time.Hour),
	})
	s.Require().NoError(err)
	s.Empty(out.Events)
}

func (s *RedisRepositoryTestSuite) TestUpdateReminderStatus() {
	ctx := context.Background()

	created, err := s.repo.CreateEvent(ctx, &CreateEventInput{
		Name: "要提醒的事",
		Time: s.testDay.Add(9 * time.Hour),
	})
	s.Require().NoError(err)

	err = s.repo.UpdateReminderStatus(ctx, &UpdateReminderStatusInput{
		EventID: created.Event.ID,
		Status:  models.ReminderStatusSent,
	})
	s.Require().NoError(err)

	out, err := s.repo.QueryRange(ctx, &QueryRangeInput{
		Start: s.testDay,
		End:   s.testDay.Add(24 * time.Hour),
	})
	s.Require().NoError(err)
	s.Require().Len(out.Events, 1)
	s.Equal(models.ReminderStatusSent, out.Events[0].ReminderStatus)
}

func (s *RedisRepositoryTestSuite) TestUpdateReminderStatusNotFound() {
	err := s.repo.UpdateReminderStatus(context.Background(), &UpdateReminderStatusInput{
		EventID: "no-such-event",
		Status:  models.ReminderStatusSent,
	})
	s.Require().Error(err)
	s.ErrorIs(err, ErrEventNotFound)
}
