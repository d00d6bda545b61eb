// Package assistant is the scripted chat helper. It answers from a fixed
// reply policy after a short artificial delay.
package assistant

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
)

// DefaultThinkDelay is how long the assistant appears to think.
const DefaultThinkDelay = 700 * time.Millisecond

// Canned replies.
const (
	TaskReply  = "Break the task into a 15-minute research block, a draft, and a polish pass. Share progress with an accountability partner to stay on track."
	FocusReply = "Focus the next block on your number-one priority, then summarize what you accomplished so I can suggest your next move."
)

// taskMarker tags prompts that ask about a specific task.
const taskMarker = "task:"

// ReplyMsg is delivered when the assistant has finished thinking.
type ReplyMsg struct {
	Prompt  string
	Content string
}

// Assistant produces scripted replies.
type Assistant struct {
	delay time.Duration
}

// New creates an assistant that replies after delay. A non-positive delay
// replies immediately.
func New(delay time.Duration) *Assistant {
	return &Assistant{delay: delay}
}

// Reply returns the canned answer for prompt.
func (a *Assistant) Reply(prompt string) string {
	if strings.Contains(prompt, taskMarker) {
		return TaskReply
	}
	return FocusReply
}

// Send records prompt as a user message and returns a command that
// delivers the reply after the think delay. Replies are never cancelled,
// so rapid prompts may be answered out of order.
func (a *Assistant) Send(s *planner.Store, prompt string) tea.Cmd {
	s.AppendChat(model.ChatRoleUser, prompt)
	return a.Think(prompt)
}

// Think returns a command that yields a ReplyMsg for prompt.
func (a *Assistant) Think(prompt string) tea.Cmd {
	reply := ReplyMsg{Prompt: prompt, Content: a.Reply(prompt)}
	if a.delay <= 0 {
		return func() tea.Msg { return reply }
	}
	return tea.Tick(a.delay, func(time.Time) tea.Msg { return reply })
}

// Deliver appends a reply to the transcript.
func Deliver(s *planner.Store, msg ReplyMsg) model.ChatMessage {
	return s.AppendChat(model.ChatRoleAssistant, msg.Content)
}

// AskAboutTask builds the prompt sent when the user asks for help with a
// task.
func AskAboutTask(title string) string {
	return fmt.Sprintf("Need help completing task: \"%s\". Any ideas? [task:%s]", title, title)
}

// TaskRef extracts the task title from a "[task:<title>]" tag.
func TaskRef(prompt string) (string, bool) {
	start := strings.Index(prompt, "["+taskMarker)
	if start < 0 {
		return "", false
	}
	rest := prompt[start+len(taskMarker)+1:]
	end := strings.LastIndex(rest, "]")
	if end < 0 {
		return "", false
	}
	return rest[:end], true
}
