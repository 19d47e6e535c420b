// Package tui is the interactive full-screen mode: a list widget over
// the visible tasks with inline add/edit forms. Every mutation goes
// through the store and is persisted immediately.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/Makepad-fr/taskpad/internal/model"
	"github.com/Makepad-fr/taskpad/internal/store"
	"github.com/Makepad-fr/taskpad/internal/ui"
	"github.com/Makepad-fr/taskpad/internal/view"
)

// listItem adapts a task to bubbles/list.Item.
type listItem struct {
	task model.Task
}

func (i listItem) Title() string       { return i.task.Text }
func (i listItem) Description() string { return "" }
func (i listItem) FilterValue() string { return i.task.Text }

// itemDelegate renders one task per line.
type itemDelegate struct {
	today model.Date
}

func (d itemDelegate) Height() int                               { return 1 }
func (d itemDelegate) Spacing() int                              { return 0 }
func (d itemDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(listItem)
	if !ok {
		return
	}
	t := it.task

	box := ui.MutedStyle.Render("☐")
	text := t.Text
	if t.Completed {
		box = ui.SuccessStyle.Render("☑")
		text = ui.DoneStyle.Render(text)
	}
	pri := t.Priority
	if pri == "" {
		pri = model.DefaultPriority
	}
	badge := ui.PriorityStyle(string(pri)).Render("[" + string(pri)[:1] + "]")

	line := fmt.Sprintf("%s %s %s", box, badge, text)
	if !t.Due.IsZero() {
		due := t.Due.String()
		if t.Overdue(d.today) {
			line += " " + ui.OverdueStyle.Render(due+" !")
		} else {
			line += " " + ui.MutedStyle.Render(due)
		}
	}

	width := m.Width() - 4
	if width > 0 {
		line = truncate.StringWithTail(line, uint(width), "...")
	}

	prefix := "  "
	if index == m.Index() {
		prefix = ui.SelectedStyle.Render("> ")
	}
	fmt.Fprintln(w, prefix+line)
}

type formMode int

const (
	modeBrowse formMode = iota
	modeAdd
	modeEdit
)

type tuiModel struct {
	list  list.Model
	st    *store.Store
	today model.Date

	mode     formMode
	ti       textinput.Model // task text
	dueInput textinput.Model // due date, YYYY-MM-DD
	pri      model.Priority
	editID   int64
	onDue    bool // which form field has focus
	formErr  string
	status   string

	width  int
	height int
}

// Run starts the interactive list over the given store.
func Run(st *store.Store) error {
	today := model.DateOf(time.Now())

	l := list.New(nil, itemDelegate{today: today}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.TitleStyle
	l.Styles.HelpStyle = ui.HelpStyle
	l.Styles.PaginationStyle = ui.HelpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("task", "tasks")

	addBind := key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind := key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit"))
	doneBind := key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	rmBind := key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	extra := func() []key.Binding { return []key.Binding{addBind, editBind, doneBind, rmBind} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	m := tuiModel{list: l, st: st, today: today}

	m.ti = textinput.New()
	m.ti.Prompt = "> "
	m.ti.Placeholder = "Task text..."
	m.ti.CharLimit = model.MaxTextLength

	m.dueInput = textinput.New()
	m.dueInput.Prompt = "due: "
	m.dueInput.Placeholder = "YYYY-MM-DD (optional)"
	m.dueInput.CharLimit = len(model.DateLayout)

	m.reload()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// reload rebuilds the list items from the store through the view model,
// keeping the cursor near its previous position.
func (m *tuiModel) reload() {
	visible := view.Visible(m.st.Tasks(), view.Query{})
	items := make([]list.Item, 0, len(visible))
	for _, t := range visible {
		items = append(items, listItem{task: t})
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}

	stats := view.Count(m.st.Tasks())
	m.list.Title = fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		ui.TitleStyle.Render("Tasks"),
		ui.SuccessStyle.Render("✔"), stats.Completed,
		ui.PendingStyle.Render("•"), stats.Pending,
		ui.AccentStyle.Render("Total"), stats.Total,
	)
}

func (m *tuiModel) selected() (model.Task, bool) {
	it, ok := m.list.SelectedItem().(listItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m *tuiModel) openForm(mode formMode, t *model.Task) {
	m.mode = mode
	m.formErr = ""
	m.onDue = false
	m.pri = model.DefaultPriority
	m.ti.SetValue("")
	m.dueInput.SetValue("")
	if t != nil {
		m.pri = t.Priority
		m.ti.SetValue(t.Text)
		m.dueInput.SetValue(t.Due.String())
		m.editID = t.ID
	}
	m.ti.CursorEnd()
	m.ti.Focus()
	m.dueInput.Blur()
}

func (m *tuiModel) closeForm() {
	m.mode = modeBrowse
	m.formErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
	m.dueInput.SetValue("")
	m.dueInput.Blur()
}

// submitForm validates the form and applies it through the store.
func (m *tuiModel) submitForm() {
	text := strings.TrimSpace(m.ti.Value())
	if text == "" {
		m.formErr = "Text cannot be empty"
		return
	}
	var due model.Date
	if raw := strings.TrimSpace(m.dueInput.Value()); raw != "" {
		parsed, err := model.ParseDate(raw)
		if err != nil {
			m.formErr = "Invalid date, want YYYY-MM-DD"
			return
		}
		due = parsed
	}

	var err error
	if m.mode == modeAdd {
		_, err = m.st.Add(text, m.pri, due)
	} else {
		pri := m.pri
		_, err = m.st.Edit(m.editID, store.Changes{Text: &text, Priority: &pri, Due: &due})
	}
	if err != nil {
		m.formErr = err.Error()
		return
	}
	m.closeForm()
	m.reload()
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.mode != modeBrowse {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		// Don't steal keys while the list's own filter input is open.
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return m, tea.Quit
		case " ":
			if t, ok := m.selected(); ok {
				if _, err := m.st.ToggleComplete(t.ID); err != nil {
					m.status = err.Error()
				}
				m.reload()
			}
			return m, nil
		case "d":
			if t, ok := m.selected(); ok {
				if err := m.st.Delete(t.ID); err != nil {
					m.status = err.Error()
				}
				m.reload()
			}
			return m, nil
		case "a":
			m.openForm(modeAdd, nil)
			return m, nil
		case "e":
			if t, ok := m.selected(); ok {
				m.openForm(modeEdit, &t)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m tuiModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch x := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = x.Width, x.Height
	case tea.KeyMsg:
		switch x.String() {
		case "enter":
			m.submitForm()
			return m, nil
		case "esc":
			m.closeForm()
			return m, nil
		case "tab":
			m.onDue = !m.onDue
			if m.onDue {
				m.ti.Blur()
				m.dueInput.Focus()
			} else {
				m.dueInput.Blur()
				m.ti.Focus()
			}
			return m, nil
		case "ctrl+p":
			m.pri = nextPriority(m.pri)
			return m, nil
		}
	}
	var cmd tea.Cmd
	if m.onDue {
		m.dueInput, cmd = m.dueInput.Update(msg)
	} else {
		m.ti, cmd = m.ti.Update(msg)
	}
	return m, cmd
}

func nextPriority(p model.Priority) model.Priority {
	order := model.Priorities()
	for i, cur := range order {
		if cur == p {
			return order[(i+1)%len(order)]
		}
	}
	return model.DefaultPriority
}

func (m tuiModel) View() string {
	w, h := m.width, m.height
	if w == 0 || h == 0 {
		w, h = 80, 24
	}
	listHeight := h - 4
	if m.mode != modeBrowse {
		listHeight = h - 8
	}
	m.list.SetSize(w-2, listHeight)

	content := m.list.View()
	if m.mode != modeBrowse {
		title := "Add task"
		if m.mode == modeEdit {
			title = "Edit task"
		}
		title += "  " + ui.PriorityStyle(string(m.pri)).Render("["+string(m.pri)+"]") +
			ui.HelpStyle.Render("  ctrl+p priority · tab due date · enter save · esc cancel")
		if m.formErr != "" {
			title += "  " + ui.ErrorStyle.Render(m.formErr)
		}
		bar := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
		content += "\n" + bar.Render(title+"\n"+m.ti.View()+"\n"+m.dueInput.View())
	} else if m.status != "" {
		content += "\n" + ui.ErrorStyle.Render(m.status)
	}
	return panelString(content)
}

func panelString(inner string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("8")).
		Padding(0, 1)
	return border.Render(inner)
}

