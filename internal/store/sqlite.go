package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/planner"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// A single connection keeps ":memory:" databases intact across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

type profileRow struct {
	UserID                 string        `db:"user_id"`
	Email                  string        `db:"email"`
	FullName               string        `db:"full_name"`
	Timezone               string        `db:"timezone"`
	PrimaryGoal            string        `db:"primary_goal"`
	SecondaryGoals         string        `db:"secondary_goals"`
	Industry               string        `db:"industry"`
	SkillsFocus            string        `db:"skills_focus"`
	DefaultLearningMinutes sql.NullInt64 `db:"default_learning_minutes"`
}

type taskRow struct {
	ID               string         `db:"id"`
	Position         int            `db:"position"`
	Title            string         `db:"title"`
	Notes            string         `db:"notes"`
	ScheduledDate    string         `db:"scheduled_date"`
	EstimatedMinutes sql.NullInt64  `db:"estimated_minutes"`
	Status           string         `db:"status"`
	Source           string         `db:"source"`
	PDFIngestionID   sql.NullString `db:"pdf_ingestion_id"`
	Confirmed        int            `db:"confirmed"`
}

type chatRow struct {
	ID        string `db:"id"`
	Position  int    `db:"position"`
	Role      string `db:"role"`
	Content   string `db:"content"`
	CreatedAt string `db:"created_at"`
}

type recommendationTodoRow struct {
	Position         int    `db:"position"`
	Title            string `db:"title"`
	Description      string `db:"description"`
	Category         string `db:"category"`
	EstimatedMinutes int    `db:"estimated_minutes"`
	ResourceURL      string `db:"resource_url"`
}

// SaveSnapshot replaces all persisted planner state in one transaction.
func (s *SQLiteStore) SaveSnapshot(ctx context.Context, snap planner.Snapshot) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{
		"profile", "availability", "tasks", "chat_messages",
		"recommendation_sets", "recommendation_todos",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	profile := profileRow{
		UserID:                 snap.UserID,
		Email:                  snap.Profile.Email,
		FullName:               snap.Profile.FullName,
		Timezone:               snap.Profile.Timezone,
		PrimaryGoal:            snap.Goal.PrimaryGoal,
		SecondaryGoals:         snap.Goal.SecondaryGoals,
		Industry:               snap.Goal.Industry,
		SkillsFocus:            snap.Goal.SkillsFocus,
		DefaultLearningMinutes: nullInt(snap.Goal.DefaultLearningMinutes),
	}
	_, err = tx.NamedExecContext(ctx, `
		INSERT INTO profile (
			id, user_id, email, full_name, timezone,
			primary_goal, secondary_goals, industry, skills_focus,
			default_learning_minutes
		) VALUES (
			1, :user_id, :email, :full_name, :timezone,
			:primary_goal, :secondary_goals, :industry, :skills_focus,
			:default_learning_minutes
		)`, profile)
	if err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}

	if a := snap.Availability; a != nil {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO availability (id, day, minutes_available) VALUES (1, ?, ?)",
			a.Date, a.MinutesAvailable,
		)
		if err != nil {
			return fmt.Errorf("saving availability: %w", err)
		}
	}

	for i, t := range snap.Tasks {
		row := taskRow{
			ID:               t.ID,
			Position:         i,
			Title:            t.Title,
			Notes:            t.Notes,
			ScheduledDate:    t.ScheduledDate,
			EstimatedMinutes: nullInt(t.EstimatedMinutes),
			Status:           string(t.Status),
			Source:           string(t.Source),
			PDFIngestionID:   nullString(t.PDFIngestionID),
			Confirmed:        boolToInt(snap.Confirmed[t.ID]),
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO tasks (
				id, position, title, notes, scheduled_date,
				estimated_minutes, status, source, pdf_ingestion_id, confirmed
			) VALUES (
				:id, :position, :title, :notes, :scheduled_date,
				:estimated_minutes, :status, :source, :pdf_ingestion_id, :confirmed
			)`, row)
		if err != nil {
			return fmt.Errorf("saving task %s: %w", t.ID, err)
		}
	}

	for i, m := range snap.Chat {
		row := chatRow{
			ID:        m.ID,
			Position:  i,
			Role:      string(m.Role),
			Content:   m.Content,
			CreatedAt: m.Timestamp.UTC().Format(time.RFC3339Nano),
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO chat_messages (id, position, role, content, created_at)
			VALUES (:id, :position, :role, :content, :created_at)`, row)
		if err != nil {
			return fmt.Errorf("saving chat message %s: %w", m.ID, err)
		}
	}

	if r := snap.Recommendations; r != nil {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO recommendation_sets (id, scheduled_date, goal_statement) VALUES (1, ?, ?)",
			r.ScheduledDate, r.GoalStatement,
		)
		if err != nil {
			return fmt.Errorf("saving recommendations: %w", err)
		}
		for i, td := range r.Todos {
			row := recommendationTodoRow{
				Position:         i,
				Title:            td.Title,
				Description:      td.Description,
				Category:         td.Category,
				EstimatedMinutes: td.EstimatedMinutes,
				ResourceURL:      td.ResourceURL,
			}
			_, err = tx.NamedExecContext(ctx, `
				INSERT INTO recommendation_todos (
					position, title, description, category, estimated_minutes, resource_url
				) VALUES (
					:position, :title, :description, :category, :estimated_minutes, :resource_url
				)`, row)
			if err != nil {
				return fmt.Errorf("saving recommendation %d: %w", i, err)
			}
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the persisted planner state.
func (s *SQLiteStore) LoadSnapshot(ctx context.Context) (planner.Snapshot, bool, error) {
	var snap planner.Snapshot

	var profile profileRow
	err := s.db.GetContext(ctx, &profile, `
		SELECT user_id, email, full_name, timezone,
			primary_goal, secondary_goals, industry, skills_focus,
			default_learning_minutes
		FROM profile WHERE id = 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return snap, false, nil
	}
	if err != nil {
		return snap, false, fmt.Errorf("loading profile: %w", err)
	}

	snap.UserID = profile.UserID
	snap.Profile = model.Profile{
		Email:    profile.Email,
		FullName: profile.FullName,
		Timezone: profile.Timezone,
	}
	snap.Goal = model.Goal{
		PrimaryGoal:            profile.PrimaryGoal,
		SecondaryGoals:         profile.SecondaryGoals,
		Industry:               profile.Industry,
		SkillsFocus:            profile.SkillsFocus,
		DefaultLearningMinutes: intPtr(profile.DefaultLearningMinutes),
	}

	var avail model.Availability
	err = s.db.QueryRowxContext(ctx,
		"SELECT day, minutes_available FROM availability WHERE id = 1",
	).Scan(&avail.Date, &avail.MinutesAvailable)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return snap, false, fmt.Errorf("loading availability: %w", err)
	default:
		snap.Availability = &avail
	}

	var tasks []taskRow
	err = s.db.SelectContext(ctx, &tasks, `
		SELECT id, position, title, notes, scheduled_date,
			estimated_minutes, status, source, pdf_ingestion_id, confirmed
		FROM tasks ORDER BY position`)
	if err != nil {
		return snap, false, fmt.Errorf("loading tasks: %w", err)
	}
	snap.Confirmed = make(map[string]bool)
	for _, r := range tasks {
		snap.Tasks = append(snap.Tasks, model.Task{
			ID:               r.ID,
			Title:            r.Title,
			Notes:            r.Notes,
			ScheduledDate:    r.ScheduledDate,
			EstimatedMinutes: intPtr(r.EstimatedMinutes),
			Status:           model.TaskStatus(r.Status),
			Source:           model.TaskSource(r.Source),
			PDFIngestionID:   stringPtr(r.PDFIngestionID),
		})
		if r.Confirmed == 1 {
			snap.Confirmed[r.ID] = true
		}
	}

	var chat []chatRow
	err = s.db.SelectContext(ctx, &chat,
		"SELECT id, position, role, content, created_at FROM chat_messages ORDER BY position")
	if err != nil {
		return snap, false, fmt.Errorf("loading chat: %w", err)
	}
	for _, r := range chat {
		ts, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
		if err != nil {
			return snap, false, fmt.Errorf("parsing chat timestamp %q: %w", r.CreatedAt, err)
		}
		snap.Chat = append(snap.Chat, model.ChatMessage{
			ID:        r.ID,
			Role:      model.ChatRole(r.Role),
			Content:   r.Content,
			Timestamp: ts,
		})
	}

	var rec model.RecommendationSet
	err = s.db.QueryRowxContext(ctx,
		"SELECT scheduled_date, goal_statement FROM recommendation_sets WHERE id = 1",
	).Scan(&rec.ScheduledDate, &rec.GoalStatement)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return snap, false, fmt.Errorf("loading recommendations: %w", err)
	default:
		var todos []recommendationTodoRow
		err = s.db.SelectContext(ctx, &todos, `
			SELECT position, title, description, category, estimated_minutes, resource_url
			FROM recommendation_todos ORDER BY position`)
		if err != nil {
			return snap, false, fmt.Errorf("loading recommendation todos: %w", err)
		}
		for _, r := range todos {
			rec.Todos = append(rec.Todos, model.RecommendationTodo{
				Title:            r.Title,
				Description:      r.Description,
				Category:         r.Category,
				EstimatedMinutes: r.EstimatedMinutes,
				ResourceURL:      r.ResourceURL,
			})
		}
		snap.Recommendations = &rec
	}

	return snap, true, nil
}

// HasImported reports whether a mail attachment was already uploaded.
func (s *SQLiteStore) HasImported(ctx context.Context, messageID, filename string) (bool, error) {
	var n int
	err := s.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM imported_attachments WHERE message_id = ? AND filename = ?",
		messageID, filename,
	)
	if err != nil {
		return false, fmt.Errorf("checking import of %s: %w", filename, err)
	}
	return n > 0, nil
}

// MarkImported records a mail attachment as uploaded.
func (s *SQLiteStore) MarkImported(ctx context.Context, messageID, filename string) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO imported_attachments (message_id, filename, imported_at) VALUES (?, ?, ?)",
		messageID, filename, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("recording import of %s: %w", filename, err)
	}
	return nil
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func intPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func stringPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
