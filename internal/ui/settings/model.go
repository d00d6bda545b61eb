package settings

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/daily-planner/internal/model"
	"github.com/nhle/daily-planner/internal/theme"
)

// SavedMsg carries the submitted settings. Secrets are empty when the
// user left the field blank, meaning "keep the stored value".
type SavedMsg struct {
	Email               string
	Profile             model.ProfileUpdate
	Goal                model.Goal
	AvailabilityMinutes int

	APIToken     string
	MailPassword string
}

// CancelMsg is dispatched when the user leaves the form without saving.
type CancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	email    string
	fullName string
	timezone string

	primaryGoal     string
	secondaryGoals  string
	industry        string
	skillsFocus     string
	learningMinutes string

	availability string

	apiToken     string
	mailPassword string
}

// Model is the settings form: profile, goal, today's availability and
// credentials.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	mailUser string
	width    int
	height   int
}

// New creates a settings model. mailUser names the IMAP account whose
// password the form can store; empty hides that field.
func New(mailUser string, width, height int) Model {
	return Model{
		fb:       &formBindings{},
		mailUser: mailUser,
		width:    width,
		height:   height,
	}
}

// Start seeds the form from the current planner state.
func (m *Model) Start(profile model.Profile, goal model.Goal, availability int) tea.Cmd {
	*m.fb = formBindings{
		email:          profile.Email,
		fullName:       profile.FullName,
		timezone:       profile.Timezone,
		primaryGoal:    goal.PrimaryGoal,
		secondaryGoals: goal.SecondaryGoals,
		industry:       goal.Industry,
		skillsFocus:    goal.SkillsFocus,
	}
	if goal.DefaultLearningMinutes != nil {
		m.fb.learningMinutes = strconv.Itoa(*goal.DefaultLearningMinutes)
	}
	if availability > 0 {
		m.fb.availability = strconv.Itoa(availability)
	}

	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.form = nil
		saved, err := m.Result()
		if err != nil {
			return m, func() tea.Msg { return CancelMsg{} }
		}
		return m, func() tea.Msg { return saved }
	case huh.StateAborted:
		m.form = nil
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// Result converts the field values into a SavedMsg.
func (m Model) Result() (SavedMsg, error) {
	fb := m.fb

	minutes, err := parseAvailability(fb.availability)
	if err != nil {
		return SavedMsg{}, err
	}

	goal := model.Goal{
		PrimaryGoal:    strings.TrimSpace(fb.primaryGoal),
		SecondaryGoals: strings.TrimSpace(fb.secondaryGoals),
		Industry:       strings.TrimSpace(fb.industry),
		SkillsFocus:    strings.TrimSpace(fb.skillsFocus),
	}
	if s := strings.TrimSpace(fb.learningMinutes); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return SavedMsg{}, fmt.Errorf("parsing learning minutes: %w", err)
		}
		goal.DefaultLearningMinutes = &n
	}

	fullName := strings.TrimSpace(fb.fullName)
	timezone := strings.TrimSpace(fb.timezone)

	return SavedMsg{
		Email: strings.TrimSpace(fb.email),
		Profile: model.ProfileUpdate{
			FullName: &fullName,
			Timezone: &timezone,
		},
		Goal:                goal,
		AvailabilityMinutes: minutes,
		APIToken:            strings.TrimSpace(fb.apiToken),
		MailPassword:        fb.mailPassword,
	}, nil
}

// View renders the form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	content := theme.TitleStyle.Render("Settings") + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	credentials := []huh.Field{
		huh.NewInput().
			Title("API Token").
			Description("Bearer token for the planning service; blank keeps the stored one").
			EchoMode(huh.EchoModePassword).
			Value(&m.fb.apiToken),
	}
	if m.mailUser != "" {
		credentials = append(credentials,
			huh.NewInput().
				Title("IMAP Password").
				Description("Password for "+m.mailUser+"; blank keeps the stored one").
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.mailPassword),
		)
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Email").
				Placeholder("you@example.com").
				Value(&m.fb.email).
				Validate(validateRequired("Email")),
			huh.NewInput().
				Title("Full Name").
				Value(&m.fb.fullName),
			huh.NewInput().
				Title("Timezone").
				Description("IANA zone, e.g. America/Los_Angeles").
				Value(&m.fb.timezone).
				Validate(validateTimezone),
		).Title("Profile"),
		huh.NewGroup(
			huh.NewInput().
				Title("Primary Goal").
				Placeholder("Land a senior role at ...").
				Value(&m.fb.primaryGoal).
				Validate(validateRequired("Primary goal")),
			huh.NewText().
				Title("Secondary Goals").
				Value(&m.fb.secondaryGoals),
			huh.NewInput().
				Title("Industry").
				Value(&m.fb.industry),
			huh.NewInput().
				Title("Skills Focus").
				Value(&m.fb.skillsFocus),
			huh.NewInput().
				Title("Default Learning Minutes").
				Placeholder("optional").
				Value(&m.fb.learningMinutes).
				Validate(validateOptionalInt),
		).Title("Goal"),
		huh.NewGroup(
			huh.NewInput().
				Title("Minutes Available Today").
				Description(fmt.Sprintf("Between %d and %d", model.MinAvailabilityMinutes, model.MaxAvailabilityMinutes)).
				Value(&m.fb.availability).
				Validate(func(s string) error {
					_, err := parseAvailability(s)
					return err
				}),
		).Title("Availability"),
		huh.NewGroup(credentials...).Title("Credentials"),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

// parseAvailability accepts whole minutes within the allowed bounds.
func parseAvailability(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("enter a number of minutes")
	}
	if n < model.MinAvailabilityMinutes || n > model.MaxAvailabilityMinutes {
		return 0, fmt.Errorf("must be between %d and %d minutes",
			model.MinAvailabilityMinutes, model.MaxAvailabilityMinutes)
	}
	return n, nil
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateOptionalInt(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if n, err := strconv.Atoi(s); err != nil || n < 0 {
		return fmt.Errorf("enter a whole number of minutes")
	}
	return nil
}

func validateTimezone(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, err := time.LoadLocation(s); err != nil {
		return fmt.Errorf("unknown timezone %q", s)
	}
	return nil
}
