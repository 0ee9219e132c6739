package session

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riyan-hx/Lumid.ai/internal/domain"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(t *testing.T) (*Store, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	n := 0
	s := NewStore(
		WithClock(clock.Now),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("s%d", n)
		}),
	)
	return s, clock
}

func msg(id string, sender domain.Sender, content string) domain.Message {
	return domain.Message{ID: id, Sender: sender, Content: content}
}

func TestCreateSessionThenCurrent(t *testing.T) {
	s, clock := newTestStore(t)

	created := s.CreateSession()
	cur, ok := s.Current()
	require.True(t, ok)

	assert.Equal(t, created.ID, cur.ID)
	assert.Equal(t, domain.DefaultSessionTitle, cur.Title)
	assert.Empty(t, cur.Messages)
	assert.Equal(t, clock.Now(), cur.CreatedAt)
	assert.Equal(t, clock.Now(), cur.UpdatedAt)
}

func TestCreateSessionPrependsNewest(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreateSession()
	s.CreateSession()
	s.CreateSession()

	list := s.List()
	require.Len(t, list, 3)
	assert.Equal(t, []string{"s3", "s2", "s1"}, []string{list[0].ID, list[1].ID, list[2].ID})
	assert.Equal(t, "s3", s.CurrentID())
}

func TestCurrentNone(t *testing.T) {
	s, _ := newTestStore(t)
	_, ok := s.Current()
	assert.False(t, ok)
}

func TestAppendMessageUpdatesOnlyTarget(t *testing.T) {
	s, clock := newTestStore(t)
	a := s.CreateSession()
	b := s.CreateSession()

	before, _ := s.Get(b.ID)
	clock.Advance(time.Minute)

	require.True(t, s.AppendMessage(a.ID, msg("m1", domain.SenderUser, "hello")))
	require.True(t, s.AppendMessage(a.ID, msg("m2", domain.SenderAssistant, "hi")))

	gotA, _ := s.Get(a.ID)
	require.Len(t, gotA.Messages, 2)
	assert.Equal(t, "m1", gotA.Messages[0].ID)
	assert.Equal(t, "m2", gotA.Messages[1].ID)
	assert.Equal(t, clock.Now(), gotA.UpdatedAt)

	gotB, _ := s.Get(b.ID)
	assert.Equal(t, before, gotB)
}

func TestAppendMessageStaleIDIsNoop(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession()
	require.True(t, s.AppendMessage(a.ID, msg("m1", domain.SenderUser, "hello")))
	before := s.List()

	assert.False(t, s.AppendMessage("missing", msg("m2", domain.SenderUser, "ghost")))
	assert.False(t, s.AppendMessage("", msg("m3", domain.SenderUser, "ghost")))

	assert.Equal(t, before, s.List())
}

func TestAppendMessageDoesNotChangeEarlierReads(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession()
	s.AppendMessage(a.ID, msg("m1", domain.SenderUser, "hello"))

	snapshot, _ := s.Get(a.ID)
	s.AppendMessage(a.ID, msg("m2", domain.SenderAssistant, "hi"))

	assert.Len(t, snapshot.Messages, 1)
}

func TestReadsReturnCopies(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession()
	s.AppendMessage(a.ID, msg("m1", domain.SenderUser, "hello"))

	got, _ := s.Get(a.ID)
	got.Messages[0].Content = "mutated"
	got.Title = "mutated"

	again, _ := s.Get(a.ID)
	assert.Equal(t, "hello", again.Messages[0].Content)
	assert.Equal(t, domain.DefaultSessionTitle, again.Title)
}

func TestSetTitleFromFirstMessage(t *testing.T) {
	s, clock := newTestStore(t)
	a := s.CreateSession()
	text := "I feel anxious about my exam tomorrow and don't know what to do"

	clock.Advance(time.Second)
	require.True(t, s.SetTitleFromFirstMessage(a.ID, text))
	s.AppendMessage(a.ID, msg("m1", domain.SenderUser, text))

	got, _ := s.Get(a.ID)
	assert.Equal(t, text[:30]+"...", got.Title)
	assert.Equal(t, clock.Now(), got.UpdatedAt)

	assert.False(t, s.SetTitleFromFirstMessage(a.ID, "a second message"))
	got, _ = s.Get(a.ID)
	assert.Equal(t, text[:30]+"...", got.Title)

	assert.False(t, s.SetTitleFromFirstMessage("missing", "x"))
}

func TestDeleteSession(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession()
	b := s.CreateSession()

	require.True(t, s.DeleteSession(b.ID))
	_, ok := s.Current()
	assert.False(t, ok)
	assert.Equal(t, "", s.CurrentID())

	list := s.List()
	require.Len(t, list, 1)
	assert.Equal(t, a.ID, list[0].ID)

	assert.False(t, s.DeleteSession(b.ID))
}

func TestDeleteNonCurrentKeepsSelection(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession()
	b := s.CreateSession()

	require.True(t, s.DeleteSession(a.ID))
	assert.Equal(t, b.ID, s.CurrentID())
}

func TestSelectSession(t *testing.T) {
	s, clock := newTestStore(t)
	a := s.CreateSession()
	s.CreateSession()
	before, _ := s.Get(a.ID)

	clock.Advance(time.Hour)
	require.NoError(t, s.SelectSession(a.ID))

	cur, ok := s.Current()
	require.True(t, ok)
	assert.Equal(t, a.ID, cur.ID)
	assert.Equal(t, before.UpdatedAt, cur.UpdatedAt)

	assert.ErrorIs(t, s.SelectSession("missing"), ErrSessionNotFound)
	assert.Equal(t, a.ID, s.CurrentID())
}

func TestSelectDoesNotReorder(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession()
	s.CreateSession()

	require.NoError(t, s.SelectSession(a.ID))
	s.AppendMessage(a.ID, msg("m1", domain.SenderUser, "hello"))

	list := s.List()
	assert.Equal(t, "s2", list[0].ID)
	assert.Equal(t, "s1", list[1].ID)
}

func TestLastUserMessage(t *testing.T) {
	s, _ := newTestStore(t)
	a := s.CreateSession()

	_, ok := s.LastUserMessage(a.ID)
	assert.False(t, ok)

	s.AppendMessage(a.ID, msg("m1", domain.SenderUser, "first"))
	s.AppendMessage(a.ID, msg("m2", domain.SenderAssistant, "reply"))
	s.AppendMessage(a.ID, msg("m3", domain.SenderUser, "second"))
	s.AppendMessage(a.ID, msg("m4", domain.SenderAssistant, "reply"))

	last, ok := s.LastUserMessage(a.ID)
	require.True(t, ok)
	assert.Equal(t, "second", last.Content)

	_, ok = s.LastUserMessage("missing")
	assert.False(t, ok)
}
