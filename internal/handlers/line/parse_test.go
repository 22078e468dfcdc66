package line

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirectAdd(t *testing.T) {
	testCases := []struct {
		name               string
		text               string
		expectOK           bool
		expectedName       string
		expectedWhen       time.Time
		expectedCategory   string
		expectedImportance string
		expectedNotes      string
	}{
		{
			name:               "full form",
			text:               "新增活動 開會 2025/01/01 14:30 [會議] [高] [準備簡報]",
			expectOK:           true,
			expectedName:       "開會",
			expectedWhen:       time.Date(2025, 1, 1, 14, 30, 0, 0, time.UTC),
			expectedCategory:   "會議",
			expectedImportance: "高",
			expectedNotes:      "準備簡報",
		},
		{
			name:         "short verb",
			text:         "新增 聚餐 2025/06/10 18:00",
			expectOK:     true,
			expectedName: "聚餐",
			expectedWhen: time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC),
		},
		{
			name:         "date only defaults to nine",
			text:         "新增活動 看牙醫 2025/06/10",
			expectOK:     true,
			expectedName: "看牙醫",
			expectedWhen: time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC),
		},
		{
			name:         "single digit date parts",
			text:         "新增活動 晨跑 2025/6/1 7:5",
			expectOK:     true,
			expectedName: "晨跑",
			expectedWhen: time.Date(2025, 6, 1, 7, 5, 0, 0, time.UTC),
		},
		{
			name:             "category only",
			text:             "新增活動 讀書會 2025/06/10 19:00 [活動]",
			expectOK:         true,
			expectedName:     "讀書會",
			expectedWhen:     time.Date(2025, 6, 10, 19, 0, 0, 0, time.UTC),
			expectedCategory: "活動",
		},
		{
			name:          "empty notes bracket",
			text:          "新增活動 開會 2025/06/10 10:00 [會議] [中] []",
			expectOK:      true,
			expectedName:  "開會",
			expectedWhen:  time.Date(2025, 6, 10, 10, 0, 0, 0, time.UTC),
			expectedNotes: "",

			expectedCategory:   "會議",
			expectedImportance: "中",
		},
		{name: "missing date", text: "新增活動 開會", expectOK: false},
		{name: "not a command", text: "今天天氣真好", expectOK: false},
		{name: "bad month", text: "新增活動 開會 2025/13/01 10:00", expectOK: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			input, ok := parseDirectAdd(tc.text)
			require.Equal(t, tc.expectOK, ok)
			if !tc.expectOK {
				return
			}

			assert.Equal(t, tc.expectedName, input.Name)
			assert.True(t, input.When.Equal(tc.expectedWhen), "got %v", input.When)
			assert.Equal(t, tc.expectedCategory, input.Category)
			assert.Equal(t, tc.expectedImportance, input.Importance)
			assert.Equal(t, tc.expectedNotes, input.Notes)
		})
	}
}

func TestParseQueryArgs(t *testing.T) {
	t.Run("range", func(t *testing.T) {
		start, end, err := parseQueryArgs("2025/01/01,2025/12/31")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
		require.NotNil(t, end)
		assert.Equal(t, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), *end)
	})

	t.Run("single day", func(t *testing.T) {
		start, end, err := parseQueryArgs("2025/12/25")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 12, 25, 0, 0, 0, 0, time.UTC), start)
		assert.Nil(t, end)
	})

	t.Run("missing start", func(t *testing.T) {
		_, _, err := parseQueryArgs("")
		require.Error(t, err)
		assert.Equal(t, "請提供開始日期", err.Error())
	})

	t.Run("bad start", func(t *testing.T) {
		_, _, err := parseQueryArgs("2025-01-01")
		require.Error(t, err)
		assert.Equal(t, "開始日期格式不正確，請使用 YYYY/MM/DD 格式", err.Error())
	})

	t.Run("bad end", func(t *testing.T) {
		_, _, err := parseQueryArgs("2025/01/01,nope")
		require.Error(t, err)
		assert.Equal(t, "結束日期格式不正確，請使用 YYYY/MM/DD 格式", err.Error())
	})
}

func TestParsePostbackData(t *testing.T) {
	action, value := parsePostbackData("action=select_importance_flex&value=高")
	assert.Equal(t, ActionSelectImportance, action)
	assert.Equal(t, "高", value)

	action, value = parsePostbackData("action=query_today")
	assert.Equal(t, ActionQueryToday, action)
	assert.Empty(t, value)
}
