package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/cwarden/calmate/internal/calendar"
)

type formField struct {
	label string
	get   func(*calendar.Form) *string
	// period fields toggle between AM and PM instead of taking text
	period bool
}

var formFields = []formField{
	{label: "Title", get: func(f *calendar.Form) *string { return &f.Title }},
	{label: "Description", get: func(f *calendar.Form) *string { return &f.Description }},
	{label: "Color", get: func(f *calendar.Form) *string { return &f.Color }},
	{label: "Start hour", get: func(f *calendar.Form) *string { return &f.StartHours }},
	{label: "Start minute", get: func(f *calendar.Form) *string { return &f.StartMinutes }},
	{label: "Start AM/PM", get: func(f *calendar.Form) *string { return &f.StartPeriod }, period: true},
	{label: "End hour", get: func(f *calendar.Form) *string { return &f.EndHours }},
	{label: "End minute", get: func(f *calendar.Form) *string { return &f.EndMinutes }},
	{label: "End AM/PM", get: func(f *calendar.Form) *string { return &f.EndPeriod }, period: true},
}

// openEditor starts a new event on date, or edits existing when non-nil.
func (m *Model) openEditor(date calendar.DateKey, existing *calendar.Event) {
	if existing != nil {
		m.form = calendar.FormFor(*existing)
		m.editingID = existing.ID
	} else {
		m.form = calendar.NewForm()
		m.form.Color = m.config.DefaultColor
		m.editingID = 0
	}
	m.formDate = date
	m.formField = 0
	m.formErr = ""
	m.prevMode = m.mode
	m.mode = ViewEditor
}

func (m *Model) handleEditorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	field := formFields[m.formField]
	value := field.get(&m.form)

	switch msg.Type {
	case tea.KeyEscape:
		m.mode = m.prevMode
		m.formErr = ""
		return m, nil

	case tea.KeyEnter:
		return m, m.submitForm()

	case tea.KeyTab, tea.KeyDown:
		m.formField = (m.formField + 1) % len(formFields)

	case tea.KeyShiftTab, tea.KeyUp:
		m.formField = (m.formField + len(formFields) - 1) % len(formFields)

	case tea.KeyBackspace:
		if field.period {
			break
		}
		if r := []rune(*value); len(r) > 0 {
			*value = string(r[:len(r)-1])
		}

	case tea.KeyRunes, tea.KeySpace:
		if field.period {
			*value = togglePeriod(*value, msg.Runes)
			break
		}
		*value += string(msg.Runes)
	}

	return m, nil
}

func togglePeriod(current string, typed []rune) string {
	for _, r := range typed {
		switch r {
		case 'a', 'A':
			return string(calendar.AM)
		case 'p', 'P':
			return string(calendar.PM)
		}
	}
	if strings.EqualFold(current, string(calendar.AM)) {
		return string(calendar.PM)
	}
	return string(calendar.AM)
}

// submitForm saves the form through the store. On failure the editor stays
// open with the message inline.
func (m *Model) submitForm() tea.Cmd {
	saved, err := calendar.Submit(m.store, m.form, m.formDate, m.editingID)
	if err != nil {
		m.notices.Drain()
		m.formErr = calendar.UserMessage(err)
		return nil
	}

	verb := "added"
	if m.editingID != 0 {
		verb = "updated"
	}
	m.formErr = ""
	m.mode = m.prevMode
	if m.mode == ViewDay {
		m.selectEvent(saved)
	}
	return m.showMessage("Event " + verb + ": " + saved.Title)
}

// selectEvent points the day view at e.
func (m *Model) selectEvent(e calendar.Event) {
	for i, other := range m.store.QueryByDate(e.Date) {
		if other.ID == e.ID {
			m.dayIndex = i
			return
		}
	}
}

func (m *Model) viewEditor() string {
	title := "New Event"
	if m.editingID != 0 {
		title = "Edit Event"
	}

	sections := []string{
		m.styles.Header.Render(title),
		m.styles.Help.Render(string(m.formDate)),
		"",
	}

	for i, field := range formFields {
		value := *field.get(&m.form)
		label := m.styles.Normal.Render(padRight(field.label+":", 14))
		if i == m.formField {
			if !field.period {
				value += "█"
			}
			value = m.styles.Input.Render(value)
		}
		if field.label == "Color" {
			value += " " + lipgloss.NewStyle().Foreground(lipgloss.Color(m.form.Color)).Render("■")
		}
		sections = append(sections, label+value)
	}

	sections = append(sections, "")
	if m.formErr != "" {
		sections = append(sections, m.styles.Notice.Render(m.formErr), "")
	}
	sections = append(sections, m.styles.Help.Render("Tab to move, Enter to save, Esc to cancel"))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
