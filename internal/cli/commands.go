package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/nhle/daily-planner/internal/mailbox"
	"github.com/nhle/daily-planner/internal/model"
	appsync "github.com/nhle/daily-planner/internal/sync"
	"github.com/nhle/daily-planner/internal/theme"
	"github.com/nhle/daily-planner/internal/ui/recommendations"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List the tasks for a date",
	Args:  cobra.NoArgs,
	RunE:  runTasks,
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file.pdf>",
	Short: "Upload a PDF and turn it into tasks",
	Args:  cobra.ExactArgs(1),
	RunE:  runUpload,
}

var carryForwardCmd = &cobra.Command{
	Use:   "carry-forward",
	Short: "Move unfinished tasks to another day",
	Args:  cobra.NoArgs,
	RunE:  runCarryForward,
}

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Ask for learning suggestions for a date",
	Args:  cobra.NoArgs,
	RunE:  runRecommend,
}

var briefCmd = &cobra.Command{
	Use:   "brief",
	Short: "Summarize the plan for a date",
	Args:  cobra.NoArgs,
	RunE:  runBrief,
}

var importMailCmd = &cobra.Command{
	Use:   "import-mail",
	Short: "Upload new PDF attachments from the configured mailbox",
	Args:  cobra.NoArgs,
	RunE:  runImportMail,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "planner", rootCmd.Version)
	},
}

func init() {
	for _, c := range []*cobra.Command{tasksCmd, uploadCmd, recommendCmd, briefCmd} {
		c.Flags().String("date", "", "date as YYYY-MM-DD (default today)")
	}
	carryForwardCmd.Flags().String("from", "", "date to move tasks from (default today)")
	carryForwardCmd.Flags().String("to", "", "date to move tasks to (default the next day)")
}

// dateFlag reads a date flag, defaulting to fallback.
func dateFlag(cmd *cobra.Command, name, fallback string) (string, error) {
	date, _ := cmd.Flags().GetString(name)
	if date == "" {
		return fallback, nil
	}
	if _, err := model.ParseDate(date); err != nil {
		return "", fmt.Errorf("--%s: %w", name, err)
	}
	return date, nil
}

func runTasks(cmd *cobra.Command, args []string) error {
	e, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	date, err := dateFlag(cmd, "date", e.planner.Today())
	if err != nil {
		return err
	}

	if userID := e.planner.UserID(); userID != "" {
		msg := e.gateway.FetchTasks(userID, date)().(appsync.TasksFetchedMsg)
		if msg.Err != nil {
			return fmt.Errorf("fetching tasks: %w", msg.Err)
		}
		if out, _ := e.gateway.Apply(e.planner, msg); out.Changed {
			if err := e.save(); err != nil {
				return err
			}
		}
	}

	printTasks(cmd.OutOrStdout(), date, e.planner.TasksForDate(date))
	if remaining, ok := e.planner.RemainingMinutes(date); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%d minutes left today\n", remaining)
	}
	return nil
}

func printTasks(w io.Writer, date string, tasks []model.Task) {
	fmt.Fprintln(w, theme.TitleStyle.Render(date))
	if len(tasks) == 0 {
		fmt.Fprintln(w, theme.MutedStyle.Render("No tasks."))
		return
	}
	for _, t := range tasks {
		line := fmt.Sprintf("%s %s", checkbox(t.Status), t.Title)
		if t.EstimatedMinutes != nil {
			line += fmt.Sprintf(" (%d min)", *t.EstimatedMinutes)
		}
		if t.Source == model.TaskSourcePDF {
			line += " " + theme.SourceLabelStyle(t.Source).Render("PDF")
		}
		fmt.Fprintln(w, theme.StatusStyle(t.Status).Render(line))
	}
}

func checkbox(status model.TaskStatus) string {
	switch status {
	case model.TaskStatusComplete:
		return "[x]"
	case model.TaskStatusDeferred:
		return "[~]"
	default:
		return "[ ]"
	}
}

func runUpload(cmd *cobra.Command, args []string) error {
	e, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	userID, err := e.requireUser()
	if err != nil {
		return err
	}
	date, err := dateFlag(cmd, "date", e.planner.Today())
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	msg := e.gateway.UploadPDF(userID, date, filepath.Base(args[0]), content)().(appsync.UploadedMsg)
	if msg.Err != nil {
		return fmt.Errorf("uploading %s: %s", args[0], appsync.Message(msg.Err))
	}
	out, _ := e.gateway.Apply(e.planner, msg)
	fmt.Fprintln(cmd.OutOrStdout(), out.Status)

	return e.refresh(userID, out.Refresh)
}

func runCarryForward(cmd *cobra.Command, args []string) error {
	e, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	userID, err := e.requireUser()
	if err != nil {
		return err
	}
	from, err := dateFlag(cmd, "from", e.planner.Today())
	if err != nil {
		return err
	}
	to, err := dateFlag(cmd, "to", "")
	if err != nil {
		return err
	}

	msg := e.gateway.CarryForward(userID, from, to)().(appsync.CarriedForwardMsg)
	if msg.Err != nil {
		return fmt.Errorf("carrying tasks forward: %s", appsync.Message(msg.Err))
	}
	out, _ := e.gateway.Apply(e.planner, msg)
	fmt.Fprintln(cmd.OutOrStdout(), out.Status)

	return e.refresh(userID, out.Refresh)
}

// refresh fetches date so the local copy reflects a server-side change,
// then saves.
func (e *env) refresh(userID, date string) error {
	if date == "" {
		return nil
	}
	msg := e.gateway.FetchTasks(userID, date)().(appsync.TasksFetchedMsg)
	if msg.Err != nil {
		e.log.Warnw("refreshing tasks failed", "date", date, "error", msg.Err)
		return nil
	}
	e.gateway.Apply(e.planner, msg)
	return e.save()
}

func runRecommend(cmd *cobra.Command, args []string) error {
	e, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	userID, err := e.requireUser()
	if err != nil {
		return err
	}
	goal := e.planner.Goal()
	if goal.IsZero() {
		return fmt.Errorf("no goal set: add a primary goal from the settings screen")
	}
	date, err := dateFlag(cmd, "date", e.planner.Today())
	if err != nil {
		return err
	}

	msg := e.gateway.FetchRecommendations(userID, date, goal)().(appsync.RecommendationsMsg)
	if msg.Err != nil {
		return fmt.Errorf("fetching recommendations: %s", appsync.Message(msg.Err))
	}
	e.gateway.Apply(e.planner, msg)
	if err := e.save(); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), recommendations.Render(recommendations.Markdown(msg.Set, -1), 80))
	return nil
}

func runBrief(cmd *cobra.Command, args []string) error {
	e, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	date, err := dateFlag(cmd, "date", e.planner.Today())
	if err != nil {
		return err
	}

	remaining, ok := e.planner.RemainingMinutes(date)
	md := recommendations.BriefMarkdown(e.planner.Brief(date), remaining, ok)
	fmt.Fprintln(cmd.OutOrStdout(), recommendations.Render(md, 80))
	return nil
}

func runImportMail(cmd *cobra.Command, args []string) error {
	e, err := setup(os.Stderr)
	if err != nil {
		return err
	}
	defer e.close()

	userID, err := e.requireUser()
	if err != nil {
		return err
	}
	mail, err := e.mailSource()
	if err != nil {
		return err
	}
	if mail == nil {
		return mailbox.ErrNotConfigured
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	atts, err := mail.FetchPDFAttachments(ctx)
	if err != nil {
		return fmt.Errorf("fetching mail: %w", err)
	}
	atts, err = mailbox.Unimported(ctx, e.db, atts)
	if err != nil {
		return err
	}
	if len(atts) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No new PDF attachments.")
		return nil
	}

	date := e.planner.Today()
	failed := 0
	for _, att := range atts {
		msg := e.gateway.UploadPDF(userID, date, att.Filename, att.Content)().(appsync.UploadedMsg)
		out, _ := e.gateway.Apply(e.planner, msg)
		if msg.Err != nil {
			failed++
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", att.Filename, out.Status)
			continue
		}
		if err := e.db.MarkImported(ctx, att.MessageID, att.Filename); err != nil {
			e.log.Warnw("recording mail import failed", "file", att.Filename, "error", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out.Status)
	}

	if err := e.refresh(userID, date); err != nil {
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d attachments failed to upload", failed, len(atts))
	}
	return nil
}
