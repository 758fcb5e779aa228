// Package tui is an interactive Bubble Tea browser over a todo.Store.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Makepad-fr/tada-lists/internal/todo"
	"github.com/Makepad-fr/tada-lists/internal/ui"
)

type screen int

const (
	screenLists screen = iota
	screenTodos
)

type inputMode int

const (
	inputNone inputMode = iota
	inputAddList
	inputRenameList
	inputAddTodo
)

var (
	addBind      = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	renameBind   = key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rename list"))
	deleteBind   = key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete"))
	toggleBind   = key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle"))
	completeBind = key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete all"))
	openBind     = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open"))
	backBind     = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
)

// Model is the Bubble Tea model. It mutates the store it was given.
type Model struct {
	store  *todo.Store
	screen screen
	listID int // open list on screenTodos

	list list.Model
	ti   textinput.Model
	mode inputMode

	inputErr string
	status   string
	changed  bool
	quitting bool
}

// New builds a model over s, starting on the lists overview.
func New(s *todo.Store) Model {
	l := list.New(nil, rowDelegate{}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowPagination(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = ui.Current().Title
	l.FilterInput.Prompt = "/ "

	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = todo.MaxNameLength * 2

	m := Model{store: s, list: l, ti: ti}
	m.refresh()
	return m
}

// Changed reports whether the store was modified.
func (m Model) Changed() bool { return m.changed }

// Run starts the program on s and reports whether s changed.
func Run(s *todo.Store) (bool, error) {
	final, err := tea.NewProgram(New(s), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	if !ok {
		return false, nil
	}
	return fm.changed, nil
}

// refresh rebuilds rows from the store in display order.
func (m *Model) refresh() {
	idx := m.list.Index()
	t := ui.Current()
	switch m.screen {
	case screenLists:
		lists := m.store.Lists
		done := 0
		for _, l := range lists {
			if todo.AllDone(l) {
				done++
			}
		}
		m.list.Title = fmt.Sprintf("%s   %s %d  %s %d",
			"Lists", t.SymDone, done, t.SymPending, len(lists)-done)
		m.list.SetItems(listRows(lists))
		m.list.SetStatusBarItemName("list", "lists")
		m.list.AdditionalShortHelpKeys = func() []key.Binding {
			return []key.Binding{openBind, addBind, renameBind, deleteBind}
		}
	case screenTodos:
		l, err := m.store.FindList(m.listID)
		if err != nil {
			m.screen = screenLists
			m.refresh()
			return
		}
		pending := todo.UncheckedCount(*l)
		m.list.Title = fmt.Sprintf("%s   %s %d  %s %d",
			l.Name, t.SymDone, todo.TodosCount(*l)-pending, t.SymPending, pending)
		m.list.SetItems(todoRows(l.Todos))
		m.list.SetStatusBarItemName("todo", "todos")
		m.list.AdditionalShortHelpKeys = func() []key.Binding {
			return []key.Binding{toggleBind, addBind, deleteBind, completeBind, renameBind, backBind}
		}
	}
	m.list.AdditionalFullHelpKeys = m.list.AdditionalShortHelpKeys
	if n := len(m.list.Items()); idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.list.Select(idx)
}

func (m *Model) startInput(mode inputMode, value, placeholder string) tea.Cmd {
	m.mode = mode
	m.inputErr = ""
	m.ti.SetValue(value)
	m.ti.CursorEnd()
	m.ti.Placeholder = placeholder
	return m.ti.Focus()
}

func (m *Model) stopInput() {
	m.mode = inputNone
	m.inputErr = ""
	m.ti.SetValue("")
	m.ti.Blur()
}

// selectedListID is the list under the cursor on the overview.
func (m Model) selectedListID() (int, bool) {
	r, ok := m.list.SelectedItem().(listRow)
	return r.List.ID, ok
}

func (m Model) selectedTodo() (todoRow, bool) {
	r, ok := m.list.SelectedItem().(todoRow)
	return r, ok
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		listHeight := ws.Height - 4
		if m.mode != inputNone {
			listHeight = ws.Height - 6
		}
		m.list.SetSize(ws.Width-4, listHeight)
		return m, nil
	}
	if m.mode != inputNone {
		return m.updateInput(msg)
	}
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}
	m.status = ""

	switch km.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "a":
		if m.screen == screenLists {
			return m, m.startInput(inputAddList, "", "New list name...")
		}
		return m, m.startInput(inputAddTodo, "", "New todo...")
	case "r":
		id := m.listID
		if m.screen == screenLists {
			var ok bool
			if id, ok = m.selectedListID(); !ok {
				return m, nil
			}
		}
		l, err := m.store.FindList(id)
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.listID = id
		return m, m.startInput(inputRenameList, l.Name, "List name...")
	}

	if m.screen == screenLists {
		return m.updateLists(km)
	}
	return m.updateTodos(km)
}

func (m Model) updateLists(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch km.String() {
	case "esc":
		if m.list.FilterState() == list.FilterApplied {
			break
		}
		m.quitting = true
		return m, tea.Quit
	case "enter":
		if id, ok := m.selectedListID(); ok {
			m.screen = screenTodos
			m.listID = id
			m.list.ResetFilter()
			m.list.Select(0)
			m.refresh()
		}
		return m, nil
	case "d":
		if id, ok := m.selectedListID(); ok {
			if _, err := m.store.DeleteList(id); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.changed = true
			m.status = "The list has been deleted."
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(km)
	return m, cmd
}

func (m Model) updateTodos(km tea.KeyMsg) (tea.Model, tea.Cmd) {
	l, err := m.store.FindList(m.listID)
	if err != nil {
		m.screen = screenLists
		m.refresh()
		return m, nil
	}
	switch km.String() {
	case "esc":
		if m.list.FilterState() == list.FilterApplied {
			break
		}
		m.screen = screenLists
		m.list.Select(0)
		m.refresh()
		return m, nil
	case " ":
		if r, ok := m.selectedTodo(); ok {
			if err := todo.SetCompleted(l, r.Todo.ID, !r.Todo.Completed); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.changed = true
			m.refresh()
		}
		return m, nil
	case "d":
		if r, ok := m.selectedTodo(); ok && todo.RemoveTodo(l, r.Todo.ID) {
			m.changed = true
			m.status = "The todo has been deleted."
			m.refresh()
		}
		return m, nil
	case "c":
		todo.CompleteAll(l)
		m.changed = true
		m.status = "All todos have been completed."
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(km)
	return m, cmd
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.String() {
		case "esc":
			m.stopInput()
			return m, nil
		case "enter":
			name := strings.TrimSpace(m.ti.Value())
			if err := m.apply(name); err != nil {
				m.inputErr = err.Error()
				return m, nil
			}
			m.changed = true
			m.stopInput()
			m.refresh()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

// apply runs the engine operation behind the active input.
func (m *Model) apply(name string) error {
	switch m.mode {
	case inputAddList:
		if _, err := m.store.CreateList(name); err != nil {
			return err
		}
		m.status = "The list has been created."
	case inputRenameList:
		if err := m.store.RenameList(m.listID, name); err != nil {
			return err
		}
		m.status = "The list has been updated."
	case inputAddTodo:
		l, err := m.store.FindList(m.listID)
		if err != nil {
			return err
		}
		if _, err := todo.AddTodo(l, name); err != nil {
			return err
		}
		m.status = "The todo was added."
	}
	return nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	t := ui.Current()
	content := m.list.View()
	if m.status != "" {
		content += "\n" + t.Success.Render(m.status)
	}
	if m.mode != inputNone {
		title := map[inputMode]string{
			inputAddList:    "Add new list",
			inputRenameList: "Rename list",
			inputAddTodo:    "Add new todo",
		}[m.mode]
		if m.inputErr != "" {
			title += " - " + t.Error.Render(m.inputErr)
		}
		content += "\n" + ui.Panel([]string{title, m.ti.View()})
	}
	return ui.Panel([]string{content})
}
