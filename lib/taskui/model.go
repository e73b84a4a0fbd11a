// Copyright 2026 The TaskFlow Authors
// SPDX-License-Identifier: Apache-2.0

package taskui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/taskflow-project/taskflow/lib/apierror"
	"github.com/taskflow-project/taskflow/lib/config"
	"github.com/taskflow-project/taskflow/lib/schema/category"
	"github.com/taskflow-project/taskflow/lib/schema/task"
	"github.com/taskflow-project/taskflow/lib/session"
	"github.com/taskflow-project/taskflow/lib/snapshot"
	"github.com/taskflow-project/taskflow/lib/store"
	"github.com/taskflow-project/taskflow/lib/tui"
)

// Tab identifies the visible dashboard tab.
type Tab int

const (
	// TabTasks shows the task list with the detail pane.
	TabTasks Tab = iota
	// TabCategories shows the category list.
	TabCategories
	// TabOverview shows aggregate statistics.
	TabOverview
)

// FocusRegion identifies which pane receives navigation keys.
type FocusRegion int

const (
	// FocusList routes navigation to the list pane.
	FocusList FocusRegion = iota
	// FocusDetail routes navigation to the detail pane.
	FocusDetail
)

// Split ratio bounds for the list/detail divider.
const (
	splitRatioMin  = 0.20
	splitRatioMax  = 0.80
	splitRatioStep = 0.05
)

// Messages.

type sessionResolvedMsg struct{}

type snapshotLoadedMsg struct {
	snap *snapshot.Snapshot
}

type tasksChangedMsg struct {
	event store.Event
}

type categoriesChangedMsg struct {
	event store.Event
}

type heatTickMsg time.Time

type mutationResultMsg struct {
	err error
}

type statusExpireMsg struct {
	seq int
}

// Model is the root dashboard model. It owns the stores, the session
// gate, and all overlay state; sub-views (list, detail, overview,
// forms) are pure renderers it drives.
type Model struct {
	config     *config.Config
	session    *session.Session
	tasks      *store.TaskStore
	categories *store.CategoryStore
	logger     *slog.Logger

	theme tui.Theme
	keys  KeyMap

	width  int
	height int

	tab        Tab
	focus      FocusRegion
	splitRatio float64

	// Cursor and scroll state per list.
	taskCursor     int
	taskScroll     int
	categoryCursor int
	categoryScroll int

	// Visible entries after the client-side fuzzy filter.
	taskMatches     []TaskMatch
	categoryMatches []CategoryMatch

	filter   FilterModel
	detail   DetailPane
	overview OverviewPane
	heat     *tui.HeatTracker
	ticking  bool

	// Warm-start data shown until the first live fetch lands.
	warmTasks      []task.Task
	warmCategories []category.Category
	warm           bool

	// Overlays. At most one is active at a time.
	login        *LoginModel
	taskForm     *TaskForm
	categoryForm *CategoryForm
	descModal    *tui.TextModal
	descTaskID   string
	dropdown     *tui.DropdownOverlay

	// Pending delete confirmation: the ID and which list it is in.
	confirmID  string
	confirmTab Tab

	statusText string
	statusSeq  int

	taskEvents     <-chan store.Event
	categoryEvents <-chan store.Event
}

// New creates the dashboard model. The session may be unresolved; Init
// resolves it and the model shows the login screen when it comes back
// anonymous.
func New(cfg *config.Config, sess *session.Session, tasks *store.TaskStore, categories *store.CategoryStore, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	theme := tui.DefaultTheme
	return &Model{
		config:     cfg,
		session:    sess,
		tasks:      tasks,
		categories: categories,
		logger:     logger,
		theme:      theme,
		keys:       DefaultKeyMap,
		splitRatio: 0.45,
		filter:     NewFilterModel(),
		detail:     NewDetailPane(theme),
		overview:   NewOverviewPane(theme),
		heat:       tui.NewHeatTracker(),
		login:      NewLoginModel(sess, theme),
	}
}

// Init resolves the session and starts the store event listeners.
func (m *Model) Init() tea.Cmd {
	m.taskEvents = m.tasks.Subscribe()
	m.categoryEvents = m.categories.Subscribe()

	sess := m.session
	resolve := func() tea.Msg {
		ctx, cancel := m.requestContext()
		defer cancel()
		sess.Init(ctx)
		return sessionResolvedMsg{}
	}

	return tea.Batch(
		resolve,
		listenForStoreEvent(m.taskEvents, func(event store.Event) tea.Msg { return tasksChangedMsg{event} }),
		listenForStoreEvent(m.categoryEvents, func(event store.Event) tea.Msg { return categoriesChangedMsg{event} }),
	)
}

// listenForStoreEvent blocks on a store's event channel and converts
// the next event into a message. Re-issued after each delivery.
func listenForStoreEvent(events <-chan store.Event, wrap func(store.Event) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return wrap(event)
	}
}

func (m *Model) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), m.config.RequestTimeout())
}

// fetchAll kicks off both store fetches.
func (m *Model) fetchAll() tea.Cmd {
	tasks, categories := m.tasks, m.categories
	timeout := m.config.RequestTimeout()
	return tea.Batch(
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			tasks.Fetch(ctx)
			return nil
		},
		func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			categories.Fetch(ctx)
			return nil
		},
	)
}

// loadSnapshot reads the warm-start cache for the signed-in user.
func (m *Model) loadSnapshot() tea.Cmd {
	if !m.config.Snapshot.Enabled {
		return nil
	}
	current, ok := m.session.User()
	if !ok {
		return nil
	}
	path := m.config.Snapshot.Path
	userID := current.ID
	logger := m.logger
	return func() tea.Msg {
		snap, err := snapshot.LoadFor(path, userID)
		if err != nil {
			logger.Warn("snapshot unreadable, starting cold", "path", path, "error", err)
			return nil
		}
		if snap == nil {
			return nil
		}
		return snapshotLoadedMsg{snap: snap}
	}
}

// saveSnapshot writes the warm-start cache synchronously. Called on
// the way out; failures only cost the next start its warm data.
func (m *Model) saveSnapshot() {
	if !m.config.Snapshot.Enabled {
		return
	}
	current, ok := m.session.User()
	if !ok {
		return
	}
	snap := &snapshot.Snapshot{
		SavedAt:    time.Now(),
		User:       current,
		Tasks:      m.tasks.Tasks(),
		Categories: m.categories.Categories(),
	}
	if err := snapshot.Save(m.config.Snapshot.Path, snap); err != nil {
		m.logger.Warn("snapshot save failed", "path", m.config.Snapshot.Path, "error", err)
	}
}

// currentTasks returns the task list backing the view: live store data
// once the first fetch landed, warm snapshot data before that.
func (m *Model) currentTasks() []task.Task {
	live := m.tasks.Tasks()
	if len(live) == 0 && m.warm && m.tasks.Loading() {
		return m.warmTasks
	}
	return live
}

func (m *Model) currentCategories() []category.Category {
	live := m.categories.Categories()
	if len(live) == 0 && m.warm && m.categories.Loading() {
		return m.warmCategories
	}
	return live
}

// categoryNameFor resolves a category ID to its name, checking the
// live store first and the warm snapshot as a fallback.
func (m *Model) categoryNameFor(id string) string {
	if id == "" {
		return ""
	}
	if entry, ok := m.categories.Lookup(id); ok {
		return entry.Name
	}
	for _, entry := range m.warmCategories {
		if entry.ID == id {
			return entry.Name
		}
	}
	return ""
}

// refreshLists recomputes the filtered views and clamps the cursors.
func (m *Model) refreshLists() {
	m.taskMatches = m.filter.ApplyTasks(m.currentTasks(), m.categoryNameFor)
	m.categoryMatches = m.filter.ApplyCategories(m.currentCategories())

	if m.taskCursor >= len(m.taskMatches) {
		m.taskCursor = len(m.taskMatches) - 1
	}
	if m.taskCursor < 0 {
		m.taskCursor = 0
	}
	if m.categoryCursor >= len(m.categoryMatches) {
		m.categoryCursor = len(m.categoryMatches) - 1
	}
	if m.categoryCursor < 0 {
		m.categoryCursor = 0
	}
	m.ensureCursorVisible()
	m.syncDetail()
}

// syncDetail points the detail pane at the selected task.
func (m *Model) syncDetail() {
	if len(m.taskMatches) == 0 {
		m.detail.Clear()
		return
	}
	entry := m.taskMatches[m.taskCursor].Task
	m.detail.SetTask(entry, m.categoryNameFor(entry.CategoryID))
}

// setStatus shows a transient message in the status line.
func (m *Model) setStatus(text string) tea.Cmd {
	m.statusText = text
	m.statusSeq++
	seq := m.statusSeq
	return tea.Tick(4*time.Second, func(time.Time) tea.Msg {
		return statusExpireMsg{seq: seq}
	})
}

// igniteHeat starts the glow animation for a changed row and returns
// the tick command if the animation loop is not already running.
func (m *Model) igniteHeat(id string, kind tui.HeatKind) tea.Cmd {
	if id == "" {
		return nil
	}
	m.heat.Ignite(id, kind, time.Now())
	if m.ticking {
		return nil
	}
	m.ticking = true
	return heatTick()
}

func heatTick() tea.Cmd {
	return tea.Tick(tui.HeatTickInterval, func(t time.Time) tea.Msg {
		return heatTickMsg(t)
	})
}

// Update is the single message dispatcher.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.refreshLists()
		return m, nil

	case sessionResolvedMsg:
		if m.session.Gate() == session.GateAllow {
			return m, tea.Batch(m.loadSnapshot(), m.fetchAll())
		}
		return m, nil

	case authResultMsg:
		m.login.HandleResult(msg)
		if m.session.Gate() == session.GateAllow {
			return m, tea.Batch(m.loadSnapshot(), m.fetchAll())
		}
		return m, nil

	case snapshotLoadedMsg:
		m.warmTasks = msg.snap.Tasks
		m.warmCategories = msg.snap.Categories
		m.warm = true
		m.refreshLists()
		return m, nil

	case tasksChangedMsg:
		var cmd tea.Cmd
		switch msg.event.Kind {
		case store.EventPut:
			cmd = m.igniteHeat(msg.event.ID, tui.HeatPut)
		case store.EventRemove:
			cmd = m.igniteHeat(msg.event.ID, tui.HeatRemove)
		}
		m.refreshLists()
		return m, tea.Batch(cmd,
			listenForStoreEvent(m.taskEvents, func(event store.Event) tea.Msg { return tasksChangedMsg{event} }))

	case categoriesChangedMsg:
		var cmd tea.Cmd
		switch msg.event.Kind {
		case store.EventPut:
			cmd = m.igniteHeat(msg.event.ID, tui.HeatPut)
		case store.EventRemove:
			cmd = m.igniteHeat(msg.event.ID, tui.HeatRemove)
		}
		m.refreshLists()
		return m, tea.Batch(cmd,
			listenForStoreEvent(m.categoryEvents, func(event store.Event) tea.Msg { return categoriesChangedMsg{event} }))

	case heatTickMsg:
		if m.heat.HasHot(time.Time(msg)) {
			return m, heatTick()
		}
		m.ticking = false
		return m, nil

	case mutationResultMsg:
		if msg.err != nil {
			return m, m.setStatus(apierror.Format(msg.err))
		}
		return m, nil

	case statusExpireMsg:
		if msg.seq == m.statusSeq {
			m.statusText = ""
		}
		return m, nil

	case dropdownSelectMsg:
		return m, m.dispatchDropdownSelection(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// layout pushes the current dimensions into the panes.
func (m *Model) layout() {
	contentHeight := m.contentHeight()
	_, detailWidth := m.paneWidths()
	m.detail.SetSize(detailWidth, contentHeight)
	m.overview.SetSize(m.width, contentHeight)
}

// contentHeight is the rows available to the panes: total minus the
// header, the filter line, and the help line.
func (m *Model) contentHeight() int {
	height := m.height - 3
	if height < 1 {
		height = 1
	}
	return height
}

func (m *Model) paneWidths() (listWidth, detailWidth int) {
	listWidth = int(float64(m.width) * m.splitRatio)
	if listWidth < 20 {
		listWidth = 20
	}
	if listWidth > m.width-20 {
		listWidth = m.width - 20
	}
	if listWidth < 1 {
		listWidth = 1
	}
	detailWidth = m.width - listWidth
	if detailWidth < 1 {
		detailWidth = 1
	}
	return listWidth, detailWidth
}

// handleKey routes a key press by overlay priority: login screen,
// description modal, dropdown, forms, delete confirmation, filter
// input, then the main key map.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, regardless of overlay state.
	if msg.Type == tea.KeyCtrlC {
		m.saveSnapshot()
		return m, tea.Quit
	}

	if m.session.Gate() != session.GateAllow {
		if m.session.Gate() == session.GateRedirectLogin {
			return m, m.login.Update(msg)
		}
		return m, nil
	}

	if m.descModal != nil {
		return m.handleDescModalKey(msg)
	}
	if m.dropdown != nil {
		return m.handleDropdownKey(msg)
	}
	if m.taskForm != nil {
		return m.handleTaskFormKey(msg)
	}
	if m.categoryForm != nil {
		return m.handleCategoryFormKey(msg)
	}
	if m.confirmID != "" {
		return m.handleConfirmKey(msg)
	}
	if m.filter.Active {
		return m.handleFilterKey(msg)
	}
	return m.handleMainKey(msg)
}

func (m *Model) handleDescModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlD:
		text := m.descModal.Value()
		taskID := m.descTaskID
		m.descModal = nil
		m.descTaskID = ""
		return m, m.mutateTask(taskID, task.UpdateDto{Description: &text})
	case tea.KeyEsc:
		m.descModal = nil
		m.descTaskID = ""
		return m, nil
	}
	m.descModal.Update(msg)
	return m, nil
}

func (m *Model) handleDropdownKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.dropdown.MoveUp()
	case "down", "j":
		m.dropdown.MoveDown()
	case "enter":
		selected := m.dropdown.Selected()
		message := dropdownSelectMsg{
			field:  m.dropdown.Field,
			taskID: m.dropdown.ItemID,
			value:  selected.Value,
		}
		m.dropdown = nil
		return m, func() tea.Msg { return message }
	case "esc":
		m.dropdown = nil
	}
	return m, nil
}

func (m *Model) handleTaskFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.taskForm.Update(msg) {
	case formSubmit:
		form := m.taskForm
		if form.EditID == "" {
			dto := form.CreateDto()
			if err := dto.Validate(); err != nil {
				form.SetError(err.Error())
				return m, nil
			}
			m.taskForm = nil
			return m, m.createTask(dto)
		}
		dto := form.UpdateDto()
		if err := dto.Validate(); err != nil {
			form.SetError(err.Error())
			return m, nil
		}
		m.taskForm = nil
		return m, m.mutateTask(form.EditID, dto)
	case formCancel:
		m.taskForm = nil
	}
	return m, nil
}

func (m *Model) handleCategoryFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.categoryForm.Update(msg) {
	case formSubmit:
		form := m.categoryForm
		if form.EditID == "" {
			dto := form.CreateDto()
			if err := dto.Validate(); err != nil {
				form.SetError(err.Error())
				return m, nil
			}
			m.categoryForm = nil
			return m, m.createCategory(dto)
		}
		dto := form.UpdateDto()
		if err := dto.Validate(); err != nil {
			form.SetError(err.Error())
			return m, nil
		}
		m.categoryForm = nil
		return m, m.mutateCategory(form.EditID, dto)
	case formCancel:
		m.categoryForm = nil
	}
	return m, nil
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id := m.confirmID
	confirmTab := m.confirmTab
	m.confirmID = ""

	if msg.String() != "y" && msg.Type != tea.KeyEnter {
		return m, nil
	}
	if confirmTab == TabCategories {
		return m, m.removeCategory(id)
	}
	return m, m.removeTask(id)
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.filter.Clear()
		m.refreshLists()
		return m, nil
	case tea.KeyEnter:
		// Keep the query, return focus to the list.
		m.filter.Active = false
		return m, nil
	case tea.KeyBackspace:
		if m.filter.HandleBackspace() {
			m.refreshLists()
		}
		return m, nil
	case tea.KeyRunes, tea.KeySpace:
		for _, character := range msg.Runes {
			m.filter.HandleRune(character)
		}
		m.refreshLists()
		return m, nil
	}
	return m, nil
}

func (m *Model) handleMainKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	switch {
	case key.Matches(msg, keys.Quit):
		m.saveSnapshot()
		return m, tea.Quit

	case key.Matches(msg, keys.Logout):
		m.session.Logout()
		m.login = NewLoginModel(m.session, m.theme)
		m.warm = false
		m.warmTasks = nil
		m.warmCategories = nil
		return m, nil

	case key.Matches(msg, keys.TabTasks):
		m.tab = TabTasks
		return m, nil
	case key.Matches(msg, keys.TabCategories):
		m.tab = TabCategories
		return m, nil
	case key.Matches(msg, keys.TabOverview):
		m.tab = TabOverview
		return m, nil

	case key.Matches(msg, keys.FilterActivate):
		m.filter.Active = true
		return m, nil
	case key.Matches(msg, keys.FilterClear):
		if m.filter.Input != "" {
			m.filter.Clear()
			m.refreshLists()
		}
		return m, nil

	case key.Matches(msg, keys.Refresh):
		return m, m.fetchAll()

	case key.Matches(msg, keys.FocusToggle):
		if m.tab == TabTasks {
			if m.focus == FocusList {
				m.focus = FocusDetail
			} else {
				m.focus = FocusList
			}
		}
		return m, nil

	case key.Matches(msg, keys.SplitGrow):
		m.splitRatio += splitRatioStep
		if m.splitRatio > splitRatioMax {
			m.splitRatio = splitRatioMax
		}
		m.layout()
		return m, nil
	case key.Matches(msg, keys.SplitShrink):
		m.splitRatio -= splitRatioStep
		if m.splitRatio < splitRatioMin {
			m.splitRatio = splitRatioMin
		}
		m.layout()
		return m, nil

	case key.Matches(msg, keys.CycleStatus):
		return m, m.cycleStatusFilter()
	case key.Matches(msg, keys.CycleLevel):
		return m, m.cycleLevelFilter()
	case key.Matches(msg, keys.CycleSort):
		return m, m.cycleSort()
	}

	// Navigation goes to the focused pane.
	if m.tab == TabTasks && m.focus == FocusDetail {
		if handled := m.handleDetailNavKey(msg); handled {
			return m, nil
		}
	} else if handled := m.handleListNavKey(msg); handled {
		return m, nil
	}

	return m.handleMutationKey(msg)
}

func (m *Model) handleDetailNavKey(msg tea.KeyMsg) bool {
	keys := m.keys
	page := m.contentHeight() / 2
	switch {
	case key.Matches(msg, keys.Up):
		m.detail.ScrollUp(1)
	case key.Matches(msg, keys.Down):
		m.detail.ScrollDown(1)
	case key.Matches(msg, keys.PageUp):
		m.detail.ScrollUp(page)
	case key.Matches(msg, keys.PageDown):
		m.detail.ScrollDown(page)
	case key.Matches(msg, keys.Home):
		m.detail.ScrollToTop()
	case key.Matches(msg, keys.End):
		m.detail.ScrollToBottom()
	default:
		return false
	}
	return true
}

func (m *Model) handleListNavKey(msg tea.KeyMsg) bool {
	keys := m.keys
	page := m.contentHeight() / 2

	move := 0
	switch {
	case key.Matches(msg, keys.Up):
		move = -1
	case key.Matches(msg, keys.Down):
		move = 1
	case key.Matches(msg, keys.PageUp):
		move = -page
	case key.Matches(msg, keys.PageDown):
		move = page
	case key.Matches(msg, keys.Home):
		move = -1 << 30
	case key.Matches(msg, keys.End):
		move = 1 << 30
	default:
		return false
	}

	if m.tab == TabCategories {
		m.categoryCursor = clampInt(m.categoryCursor+move, 0, len(m.categoryMatches)-1)
	} else {
		m.taskCursor = clampInt(m.taskCursor+move, 0, len(m.taskMatches)-1)
		m.syncDetail()
	}
	m.ensureCursorVisible()
	return true
}

func (m *Model) handleMutationKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys

	if m.tab == TabCategories {
		switch {
		case key.Matches(msg, keys.New):
			m.categoryForm = NewCategoryForm(m.theme)
		case key.Matches(msg, keys.Edit):
			if entry, ok := m.selectedCategory(); ok {
				m.categoryForm = EditCategoryForm(m.theme, entry)
			}
		case key.Matches(msg, keys.Delete):
			if entry, ok := m.selectedCategory(); ok {
				m.confirmID = entry.ID
				m.confirmTab = TabCategories
			}
		}
		return m, nil
	}

	if m.tab != TabTasks {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.New):
		m.taskForm = NewTaskForm(m.theme, m.currentCategories())

	case key.Matches(msg, keys.Edit):
		if entry, ok := m.selectedTask(); ok {
			m.taskForm = EditTaskForm(m.theme, entry, m.currentCategories())
		}

	case key.Matches(msg, keys.Delete):
		if entry, ok := m.selectedTask(); ok {
			m.confirmID = entry.ID
			m.confirmTab = TabTasks
		}

	case key.Matches(msg, keys.Status):
		if entry, ok := m.selectedTask(); ok {
			m.openDropdown(dropdownFieldStatus, entry.ID, statusOptions(entry.Status))
		}

	case key.Matches(msg, keys.Level):
		if entry, ok := m.selectedTask(); ok {
			m.openDropdown(dropdownFieldLevel, entry.ID, levelOptions(entry.Level))
		}

	case key.Matches(msg, keys.ToggleDone):
		if entry, ok := m.selectedTask(); ok {
			next := task.StatusCompleted
			if entry.Status == task.StatusCompleted {
				next = task.StatusNotStarted
			}
			return m, m.mutateTask(entry.ID, task.UpdateDto{Status: &next})
		}

	case key.Matches(msg, keys.Description):
		if entry, ok := m.selectedTask(); ok {
			initial := ""
			if entry.Description != nil {
				initial = *entry.Description
			}
			modal := tui.NewTextModal("Description: "+entry.Title, initial, m.theme)
			m.descModal = &modal
			m.descTaskID = entry.ID
		}
	}

	return m, nil
}

func (m *Model) selectedTask() (task.Task, bool) {
	if len(m.taskMatches) == 0 {
		return task.Task{}, false
	}
	return m.taskMatches[m.taskCursor].Task, true
}

func (m *Model) selectedCategory() (category.Category, bool) {
	if len(m.categoryMatches) == 0 {
		return category.Category{}, false
	}
	return m.categoryMatches[m.categoryCursor].Category, true
}

// openDropdown anchors a dropdown next to the selected row.
func (m *Model) openDropdown(field, itemID string, options []tui.DropdownOption) {
	if len(options) == 0 {
		return
	}
	anchorY := 1 + (m.taskCursor - m.taskScroll) + 1 // Header row + row below cursor.
	anchorX := maxLeftWidth + 1
	m.dropdown = &tui.DropdownOverlay{
		Options: options,
		AnchorX: anchorX,
		AnchorY: anchorY,
		Field:   field,
		ItemID:  itemID,
	}
}

func (m *Model) dispatchDropdownSelection(msg dropdownSelectMsg) tea.Cmd {
	switch msg.field {
	case dropdownFieldStatus:
		status := task.Status(msg.value)
		return m.mutateTask(msg.taskID, task.UpdateDto{Status: &status})
	case dropdownFieldLevel:
		level := task.Level(msg.value)
		return m.mutateTask(msg.taskID, task.UpdateDto{Level: &level})
	case dropdownFieldCategory:
		value := msg.value
		return m.mutateTask(msg.taskID, task.UpdateDto{CategoryID: &value})
	}
	return nil
}

// Mutation commands. Store events drive the UI refresh; the result
// message only carries errors to the status line.

func (m *Model) createTask(dto task.CreateDto) tea.Cmd {
	tasks := m.tasks
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := tasks.Add(ctx, dto)
		return mutationResultMsg{err: err}
	}
}

func (m *Model) mutateTask(id string, dto task.UpdateDto) tea.Cmd {
	tasks := m.tasks
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := tasks.Modify(ctx, id, dto)
		return mutationResultMsg{err: err}
	}
}

func (m *Model) removeTask(id string) tea.Cmd {
	tasks := m.tasks
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return mutationResultMsg{err: tasks.Remove(ctx, id)}
	}
}

func (m *Model) createCategory(dto category.CreateDto) tea.Cmd {
	categories := m.categories
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := categories.Add(ctx, dto)
		return mutationResultMsg{err: err}
	}
}

func (m *Model) mutateCategory(id string, dto category.UpdateDto) tea.Cmd {
	categories := m.categories
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		_, err := categories.Modify(ctx, id, dto)
		return mutationResultMsg{err: err}
	}
}

func (m *Model) removeCategory(id string) tea.Cmd {
	categories := m.categories
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return mutationResultMsg{err: categories.Remove(ctx, id)}
	}
}

// Server-side filter cycling.

func (m *Model) cycleStatusFilter() tea.Cmd {
	filter := m.tasks.Filter()
	switch filter.Status {
	case "":
		filter.Status = task.StatusNotStarted
	case task.StatusNotStarted:
		filter.Status = task.StatusInProgress
	case task.StatusInProgress:
		filter.Status = task.StatusCompleted
	default:
		filter.Status = ""
	}
	return m.applyFilter(filter)
}

func (m *Model) cycleLevelFilter() tea.Cmd {
	filter := m.tasks.Filter()
	switch filter.Level {
	case "":
		filter.Level = task.LevelHigh
	case task.LevelHigh:
		filter.Level = task.LevelMedium
	case task.LevelMedium:
		filter.Level = task.LevelLow
	default:
		filter.Level = ""
	}
	return m.applyFilter(filter)
}

// cycleSort walks newest-created, newest-updated, oldest-created,
// then back to the server default.
func (m *Model) cycleSort() tea.Cmd {
	filter := m.tasks.Filter()
	switch {
	case filter.Sort == "":
		filter.Sort, filter.Order = task.SortCreatedAt, task.OrderDesc
	case filter.Sort == task.SortCreatedAt && filter.Order == task.OrderDesc:
		filter.Sort, filter.Order = task.SortUpdatedAt, task.OrderDesc
	case filter.Sort == task.SortUpdatedAt && filter.Order == task.OrderDesc:
		filter.Sort, filter.Order = task.SortCreatedAt, task.OrderAsc
	default:
		filter.Sort, filter.Order = "", ""
	}
	return m.applyFilter(filter)
}

func (m *Model) applyFilter(filter task.Filter) tea.Cmd {
	tasks := m.tasks
	timeout := m.config.RequestTimeout()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		tasks.SetFilter(ctx, filter)
		return nil
	}
}

// ensureCursorVisible scrolls each list so its cursor stays on screen.
func (m *Model) ensureCursorVisible() {
	visible := m.contentHeight()
	if visible < 1 {
		visible = 1
	}

	if m.taskCursor < m.taskScroll {
		m.taskScroll = m.taskCursor
	}
	if m.taskCursor >= m.taskScroll+visible {
		m.taskScroll = m.taskCursor - visible + 1
	}
	if m.taskScroll < 0 {
		m.taskScroll = 0
	}

	if m.categoryCursor < m.categoryScroll {
		m.categoryScroll = m.categoryCursor
	}
	if m.categoryCursor >= m.categoryScroll+visible {
		m.categoryScroll = m.categoryCursor - visible + 1
	}
	if m.categoryScroll < 0 {
		m.categoryScroll = 0
	}
}

func clampInt(value, low, high int) int {
	if high < low {
		return low
	}
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// View renders the whole screen.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	switch m.session.Gate() {
	case session.GatePending:
		connecting := lipgloss.NewStyle().
			Foreground(m.theme.FaintText).
			Render("Connecting…")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, connecting)
	case session.GateRedirectLogin:
		return m.login.View(m.width, m.height)
	}

	var rows []string
	rows = append(rows, m.renderHeader())

	switch m.tab {
	case TabTasks:
		rows = append(rows, m.renderTasksTab())
	case TabCategories:
		rows = append(rows, m.renderCategoriesTab())
	case TabOverview:
		rows = append(rows, m.overview.View(m.tasks.Stats(), m.currentCategories(), m.currentTasks()))
	}

	rows = append(rows, m.renderStatusLine())
	rows = append(rows, m.renderHelp())

	view := strings.Join(rows, "\n")

	// Overlays, painted over the composed view.
	switch {
	case m.descModal != nil:
		lines, anchorX, anchorY := m.descModal.Render(m.width, m.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	case m.taskForm != nil:
		lines, anchorX, anchorY := m.taskForm.Render(m.width, m.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	case m.categoryForm != nil:
		lines, anchorX, anchorY := m.categoryForm.Render(m.width, m.height)
		view = tui.SpliceOverlay(view, lines, anchorX, anchorY)
	case m.dropdown != nil:
		view = tui.SpliceOverlay(view, m.dropdown.Render(m.theme), m.dropdown.AnchorX, m.dropdown.AnchorY)
	}

	return view
}

// renderHeader draws the tab bar embedded in a horizontal rule, with
// the task aggregates right-aligned:
//
//	─┤ 1 Tasks ├─┤ 2 Categories ├─┤ 3 Overview ├──── 12 tasks · 45% ─
func (m *Model) renderHeader() string {
	theme := m.theme
	rule := lipgloss.NewStyle().Foreground(theme.BorderColor)
	active := lipgloss.NewStyle().Bold(true).Foreground(theme.HeaderForeground)
	inactive := lipgloss.NewStyle().Foreground(theme.FaintText)

	tabs := []struct {
		label string
		tab   Tab
	}{
		{"1 Tasks", TabTasks},
		{"2 Categories", TabCategories},
		{"3 Overview", TabOverview},
	}

	var left strings.Builder
	left.WriteString(rule.Render("─"))
	for _, entry := range tabs {
		style := inactive
		if entry.tab == m.tab {
			style = active
		}
		left.WriteString(rule.Render("┤ "))
		left.WriteString(style.Render(entry.label))
		left.WriteString(rule.Render(" ├─"))
	}

	stats := m.tasks.Stats()
	right := ""
	if stats.Total > 0 {
		right = inactive.Render(fmt.Sprintf(" %d tasks · %d%% done ", stats.Total, stats.CompletionPercent())) +
			rule.Render("─")
	}
	if filter := m.tasks.Filter(); filter.Status != "" || filter.Level != "" || filter.Sort != "" {
		var parts []string
		if filter.Status != "" {
			parts = append(parts, filter.Status.Label())
		}
		if filter.Level != "" {
			parts = append(parts, filter.Level.Label())
		}
		if filter.Sort != "" {
			parts = append(parts, filter.Sort+" "+filter.Order)
		}
		right = inactive.Render(" ["+strings.Join(parts, " · ")+"] ") + right
	}

	used := ansi.StringWidth(left.String()) + ansi.StringWidth(right)
	fill := m.width - used
	if fill < 0 {
		fill = 0
	}
	return left.String() + rule.Render(strings.Repeat("─", fill)) + right
}

// renderTasksTab draws the split list/detail layout.
func (m *Model) renderTasksTab() string {
	contentHeight := m.contentHeight()
	listWidth, _ := m.paneWidths()

	listView := m.renderTaskList(listWidth-1, contentHeight)
	scrollbar := tui.RenderScrollbar(
		m.theme, contentHeight,
		len(m.taskMatches), contentHeight, m.taskScroll,
		m.focus == FocusList,
	)
	left := lipgloss.JoinHorizontal(lipgloss.Top, listView, scrollbar)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.detail.View(m.focus == FocusDetail))
}

func (m *Model) renderTaskList(width, height int) string {
	renderer := NewListRenderer(m.theme, width)
	now := time.Now()

	var lines []string
	if len(m.taskMatches) == 0 {
		lines = append(lines, m.emptyListLine(width))
	}
	for index := m.taskScroll; index < m.taskScroll+height && index < len(m.taskMatches); index++ {
		match := m.taskMatches[index]
		row := renderer.RenderTaskRow(
			match.Task,
			m.categoryNameFor(match.Task.CategoryID),
			index == m.taskCursor,
			match.TitlePositions,
		)
		lines = append(lines, m.applyHeat(row, match.Task.ID, now))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		MaxWidth(width).
		Render(strings.Join(lines, "\n"))
}

func (m *Model) renderCategoriesTab() string {
	contentHeight := m.contentHeight()
	width := m.width - 1

	counts := make(map[string]int)
	for _, entry := range m.currentTasks() {
		if entry.CategoryID != "" {
			counts[entry.CategoryID]++
		}
	}

	renderer := NewListRenderer(m.theme, width)
	now := time.Now()

	var lines []string
	if len(m.categoryMatches) == 0 {
		lines = append(lines, m.emptyListLine(width))
	}
	for index := m.categoryScroll; index < m.categoryScroll+contentHeight && index < len(m.categoryMatches); index++ {
		match := m.categoryMatches[index]
		row := renderer.RenderCategoryRow(
			match.Category,
			counts[match.Category.ID],
			index == m.categoryCursor,
			match.NamePositions,
		)
		lines = append(lines, m.applyHeat(row, match.Category.ID, now))
	}
	for len(lines) < contentHeight {
		lines = append(lines, "")
	}

	list := lipgloss.NewStyle().
		Width(width).
		Height(contentHeight).
		MaxWidth(width).
		Render(strings.Join(lines, "\n"))

	scrollbar := tui.RenderScrollbar(
		m.theme, contentHeight,
		len(m.categoryMatches), contentHeight, m.categoryScroll,
		true,
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, list, scrollbar)
}

func (m *Model) emptyListLine(width int) string {
	text := "No results."
	switch {
	case m.tasks.Loading() && m.tab == TabTasks:
		text = "Loading…"
	case m.categories.Loading() && m.tab == TabCategories:
		text = "Loading…"
	case m.filter.Input != "":
		text = "No matches for the current filter."
	}
	return lipgloss.NewStyle().
		Foreground(m.theme.FaintText).
		Width(width).
		Render(" " + text)
}

// applyHeat replaces a row's leading column with a glow bar while the
// row's change animation is active.
func (m *Model) applyHeat(row, id string, now time.Time) string {
	if m.heat.Heat(id, now) <= 0 {
		return row
	}
	accent := m.theme.HotAccentPut
	if m.heat.Kind(id) == tui.HeatRemove {
		accent = m.theme.HotAccentRemove
	}
	bar := lipgloss.NewStyle().Foreground(accent).Render("▌")
	return bar + ansi.TruncateLeft(row, 1, "")
}

// renderStatusLine draws the line between content and help: a pending
// delete confirmation, a transient error, the filter bar, or blank.
func (m *Model) renderStatusLine() string {
	theme := m.theme

	if m.confirmID != "" {
		noun := "task"
		if m.confirmTab == TabCategories {
			noun = "category"
		}
		return lipgloss.NewStyle().
			Foreground(theme.ErrorText).
			Bold(true).
			Width(m.width).
			Render(fmt.Sprintf(" Delete this %s? y confirm · any other key cancels", noun))
	}

	if m.statusText != "" {
		return lipgloss.NewStyle().
			Foreground(theme.ErrorText).
			Width(m.width).
			MaxHeight(1).
			Render(" " + strings.ReplaceAll(m.statusText, "\n", " "))
	}

	if bar := m.filter.View(theme, m.width); bar != "" {
		return bar
	}

	if errText := m.tasks.Err(); errText != "" && m.tab == TabTasks {
		return lipgloss.NewStyle().
			Foreground(theme.ErrorText).
			Width(m.width).
			MaxHeight(1).
			Render(" " + errText)
	}
	if errText := m.categories.Err(); errText != "" && m.tab == TabCategories {
		return lipgloss.NewStyle().
			Foreground(theme.ErrorText).
			Width(m.width).
			MaxHeight(1).
			Render(" " + errText)
	}

	return ""
}

func (m *Model) renderHelp() string {
	var entries []string
	switch {
	case m.filter.Active:
		entries = []string{"type to filter", "Enter keep", "Esc clear"}
	case m.tab == TabCategories:
		entries = []string{"j/k move", "n new", "e edit", "d delete", "/ filter", "r refresh", "q quit"}
	case m.tab == TabOverview:
		entries = []string{"1/2/3 tabs", "r refresh", "C-l logout", "q quit"}
	case m.focus == FocusDetail:
		entries = []string{"j/k scroll", "C-d/C-u page", "Tab back to list", "q quit"}
	default:
		entries = []string{"j/k move", "Tab detail", "n new", "e edit", "x done", "s status", "p level", "D description", "d delete", "/ filter", "S/P/o refine", "q quit"}
	}

	help := lipgloss.NewStyle().
		Foreground(m.theme.HelpText).
		Width(m.width).
		MaxHeight(1).
		Render(" " + strings.Join(entries, "  ·  "))
	return help
}
