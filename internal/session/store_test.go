package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/siteflow/orderbot/internal/domain"
)

func TestHistoryEmptyForUnknownSender(t *testing.T) {
	s := NewStore()
	require.Empty(t, s.History("+33600000001"))
	require.Equal(t, 0, s.ActiveCount())
}

func TestAppendAndHistory(t *testing.T) {
	s := NewStore()
	s.Append("+33600000001", domain.Turn{Role: domain.RoleUser, Content: "hello"})
	s.Append("+33600000001", domain.Turn{Role: domain.RoleAssistant, Content: "hi"})

	h := s.History("+33600000001")
	require.Len(t, h, 2)
	require.Equal(t, domain.RoleUser, h[0].Role)
	require.Equal(t, "hello", h[0].Content)
	require.Equal(t, "hi", h[1].Content)
	require.Equal(t, 1, s.ActiveCount())
}

func TestHistoryReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append("+33600000001", domain.Turn{Role: domain.RoleUser, Content: "original"})

	h := s.History("+33600000001")
	h[0].Content = "mutated"

	require.Equal(t, "original", s.History("+33600000001")[0].Content)
}

func TestTruncatesToMostRecentTurns(t *testing.T) {
	s := NewStore()
	for i := 0; i < 40; i++ {
		s.Append("+33600000001", domain.Turn{Role: domain.RoleUser, Content: fmt.Sprintf("msg %d", i)})
	}

	h := s.History("+33600000001")
	require.Len(t, h, 15)
	require.Equal(t, "msg 25", h[0].Content)
	require.Equal(t, "msg 39", h[14].Content)
}

func TestReset(t *testing.T) {
	s := NewStore()
	s.Append("+33600000001", domain.Turn{Role: domain.RoleUser, Content: "hello"})
	s.Reset("+33600000001")

	require.Empty(t, s.History("+33600000001"))
	require.Equal(t, 0, s.ActiveCount())
}

func TestExpiredSessionsAreSwept(t *testing.T) {
	s := NewStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Append("+33600000001", domain.Turn{Role: domain.RoleUser, Content: "hello"})
	s.Append("+33600000002", domain.Turn{Role: domain.RoleUser, Content: "hi"})
	require.Equal(t, 2, s.ActiveCount())

	// Keep one session alive past the other's expiry.
	now = now.Add(time.Hour)
	s.Append("+33600000002", domain.Turn{Role: domain.RoleUser, Content: "still here"})

	// TTL is two hours from last activity.
	now = now.Add(time.Hour + time.Minute)
	require.Empty(t, s.History("+33600000001"))
	require.Len(t, s.History("+33600000002"), 2)
	require.Equal(t, 1, s.ActiveCount())
}
