package assistant

import (
	"testing"
	"time"

	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
)

func TestReplyPolicy(t *testing.T) {
	a := New(0)
	if got := a.Reply(AskAboutTask("Draft essay")); got != TaskReply {
		t.Fatalf("expected task reply, got %q", got)
	}
	if got := a.Reply("what should I do next?"); got != FocusReply {
		t.Fatalf("expected focus reply, got %q", got)
	}
}

func TestAskAboutTaskFormat(t *testing.T) {
	want := `Need help completing task: "Mock interview". Any ideas? [task:Mock interview]`
	if got := AskAboutTask("Mock interview"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}

	title, ok := TaskRef(AskAboutTask("Mock interview"))
	if !ok || title != "Mock interview" {
		t.Fatalf("expected task ref round trip, got %q (%v)", title, ok)
	}
	if _, ok := TaskRef("no tag here"); ok {
		t.Fatal("expected no task ref")
	}
}

func TestSendAndDeliver(t *testing.T) {
	s := planner.New("u1")
	a := New(0)

	cmd := a.Send(s, "hello")
	if len(s.Chat()) != 1 {
		t.Fatal("expected user message recorded immediately")
	}

	msg, ok := cmd().(ReplyMsg)
	if !ok {
		t.Fatal("expected ReplyMsg")
	}
	Deliver(s, msg)

	chat := s.Chat()
	if len(chat) != 2 {
		t.Fatalf("expected two messages, got %d", len(chat))
	}
	if chat[0].Role != model.ChatRoleUser || chat[1].Role != model.ChatRoleAssistant {
		t.Fatalf("unexpected roles %s, %s", chat[0].Role, chat[1].Role)
	}
	if chat[1].Content != FocusReply {
		t.Fatalf("unexpected reply %q", chat[1].Content)
	}
}

func TestThinkWaitsForDelay(t *testing.T) {
	a := New(20 * time.Millisecond)

	start := time.Now()
	msg := a.Think("task: x")()
	if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
		t.Fatalf("expected reply after delay, got %v", elapsed)
	}
	if reply, ok := msg.(ReplyMsg); !ok || reply.Content != TaskReply {
		t.Fatalf("unexpected message %#v", msg)
	}
}
