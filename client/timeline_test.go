package client

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"chat-relay/domain"
)

func TestAgo_Unit_Ladder(t *testing.T) {
	req := require.New(t)

	req.Equal("0 s", Ago(0))
	req.Equal("30 s", Ago(30*time.Second))
	req.Equal("1 min", Ago(90*time.Second))
	req.Equal("45 min", Ago(45*time.Minute))
	req.Equal("3 h", Ago(3*time.Hour))
	req.Equal("2 day(s)", Ago(48*time.Hour))
	req.Equal("2 year(s)", Ago(2*365*24*time.Hour))
}

func TestAgo_Negative_Clamps_To_Zero(t *testing.T) {
	req := require.New(t)

	req.Equal("0 s", Ago(-5*time.Second))
}

func TestTimeline_Preserves_Order(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()

	// When messages arrive
	timeline.Append(domain.NewChatMessage("a", "Alice", "1"))
	timeline.Append(domain.NewChatMessage("b", "Bob", "2"))
	timeline.Append(domain.NewChatMessage("a", "Alice", "3"))

	// Then the snapshot preserves arrival order
	entries := timeline.Snapshot()
	req.Len(entries, 3)
	req.Equal("1", entries[0].Message.Body)
	req.Equal("2", entries[1].Message.Body)
	req.Equal("3", entries[2].Message.Body)
	req.Equal(3, timeline.Len())
}

func TestTimeline_Snapshot_Is_A_Copy(t *testing.T) {
	req := require.New(t)
	timeline := NewTimeline()
	timeline.Append(domain.NewChatMessage("a", "Alice", "1"))

	snapshot := timeline.Snapshot()
	timeline.Append(domain.NewChatMessage("b", "Bob", "2"))

	// The earlier snapshot is unaffected by later appends
	req.Len(snapshot, 1)
	req.Equal(2, timeline.Len())
}

func TestEntry_Metadata(t *testing.T) {
	req := require.New(t)
	now := time.Now()
	entry := Entry{
		Message:    domain.NewChatMessage("a", "Alice", "hi"),
		ReceivedAt: now.Add(-30 * time.Second),
	}

	req.Equal("Alice, 30 s ago", entry.Metadata(now))
}
