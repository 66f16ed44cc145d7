package tui

import (
	"context"
	"slices"

	"chardash/internal/chart"
	"chardash/internal/config"
	"chardash/internal/export"
	"chardash/internal/loader"
	"chardash/internal/log"
	"chardash/internal/selectors"
	"chardash/internal/store"
	"chardash/internal/tui/common"
	"chardash/internal/tui/components"
	"chardash/internal/tui/messages"
	"chardash/internal/tui/styles"
	"chardash/internal/tui/views"
	"chardash/internal/watch"
	"chardash/pkg/types"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// reservedRows is the vertical space taken by everything except the table.
const reservedRows = 12

type Model struct {
	ctx      context.Context
	cfg      *config.Config
	store    *store.Store
	sel      *selectors.Selectors
	ctrl     *loader.Controller
	exporter *export.Exporter
	reloads  <-chan watch.Reload

	keys      types.KeyMap
	help      help.Model
	search    textinput.Model
	table     *components.CharacterTable
	statusBar *components.StatusBar

	mode      common.Mode
	showHelp  bool
	showChart bool
	statusMsg string
	width     int
	height    int
}

// Option configures a Model.
type Option func(*Model)

// WithContext bounds every fetch the model starts.
func WithContext(ctx context.Context) Option {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithReloads feeds config file changes into the model.
func WithReloads(ch <-chan watch.Reload) Option {
	return func(m *Model) {
		m.reloads = ch
	}
}

func New(cfg *config.Config, s *store.Store, ctrl *loader.Controller, opts ...Option) *Model {
	styles.Apply(cfg.Display.Theme)

	search := textinput.New()
	search.Placeholder = "Search by name"
	search.Prompt = "/ "
	search.CharLimit = 64

	m := &Model{
		ctx:       context.Background(),
		cfg:       cfg,
		store:     s,
		sel:       selectors.New(cfg.Language()),
		ctrl:      ctrl,
		exporter:  export.NewExporter(cfg.Export.Directory),
		keys:      types.DefaultKeyMap(),
		help:      help.New(),
		search:    search,
		table:     components.NewCharacterTable(),
		statusBar: components.NewStatusBar(),
		mode:      common.Normal,
		showChart: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.refreshTable()
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadFirstPage(), m.waitForReload())
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table.SetSize(msg.Width-4, msg.Height-reservedRows)
		return m, nil

	case messages.FirstPageMsg:
		m.refreshTable()
		if msg.Err != nil {
			return m, nil
		}
		if m.ctrl.ShouldLoadRemaining() {
			m.statusBar.SetLoading(true)
			m.statusBar.SetText("Loading all characters in the background...")
			return m, tea.Batch(m.statusBar.Tick, m.loadRemaining())
		}
		return m, nil

	case messages.BackgroundDoneMsg:
		m.statusBar.SetLoading(false)
		m.statusBar.SetText("")
		if msg.Err != nil {
			m.statusMsg = styles.Theme.Warning.Render("Showing the first page only: " + msg.Err.Error())
		}
		m.refreshTable()
		return m, nil

	case messages.ExportDoneMsg:
		if msg.Err != nil {
			m.statusMsg = styles.Theme.Error.Render("Export failed: " + msg.Err.Error())
		} else {
			m.statusMsg = styles.Theme.Success.Render("Exported " + msg.Path)
		}
		return m, nil

	case messages.ConfigUpdateMsg:
		m.applyConfig(msg)
		return m, m.waitForReload()

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	return m, m.statusBar.Update(msg)
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case common.Search:
		return m.handleSearchKeys(msg)
	case common.Detail:
		return m.handleDetailKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.store.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		if !st.Phase.Settled() {
			return m, nil
		}
		m.statusMsg = ""
		return m, m.reload()
	}

	// everything below needs data
	if st.HasError() || (st.Loading() && len(st.Characters) == 0) {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = common.Search
		m.search.SetValue(st.SearchTerm)
		m.search.CursorEnd()
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.ShowFilter):
		m.store.SetTVShowFilter(m.nextShow(st))
		m.afterFilterChange()

	case key.Matches(msg, m.keys.ClearFilter):
		m.store.SetSearchTerm("")
		m.store.SetTVShowFilter("")
		m.afterFilterChange()

	case key.Matches(msg, m.keys.Sort):
		m.store.ToggleSort(types.SortByName)
		m.refreshTable()

	case key.Matches(msg, m.keys.ClearSort):
		m.store.ToggleSort(types.SortNone)
		m.refreshTable()

	case key.Matches(msg, m.keys.NextPage):
		if st.CurrentPage < m.sel.TotalPages(st) {
			m.store.SetCurrentPage(st.CurrentPage + 1)
			m.afterPageChange()
		}

	case key.Matches(msg, m.keys.PrevPage):
		if st.CurrentPage > 1 {
			m.store.SetCurrentPage(st.CurrentPage - 1)
			m.afterPageChange()
		}

	case key.Matches(msg, m.keys.PageSize):
		m.setPageSize(m.cfg.NextPageSize(st.PageSize, 1))

	case key.Matches(msg, m.keys.Smaller):
		m.setPageSize(m.cfg.NextPageSize(st.PageSize, -1))

	case key.Matches(msg, m.keys.Open):
		if c, ok := m.table.Selected(); ok {
			m.store.SetSelectedCharacter(&c)
			m.mode = common.Detail
		}

	case key.Matches(msg, m.keys.ToggleChart):
		m.showChart = !m.showChart

	case key.Matches(msg, m.keys.Export):
		return m, m.exportChart()

	default:
		return m, m.table.Update(msg)
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.mode = common.Normal
		m.search.Blur()
		return m, nil

	case key.Matches(msg, m.keys.Back):
		m.mode = common.Normal
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearchTerm("")
		m.afterFilterChange()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.store.State().SearchTerm {
		m.store.SetSearchTerm(m.search.Value())
		m.afterFilterChange()
	}
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Open), key.Matches(msg, m.keys.Quit):
		m.store.SetSelectedCharacter(nil)
		m.mode = common.Normal
	}
	return m, nil
}

// nextShow cycles through "all" and every show left in the filtered set.
func (m *Model) nextShow(st store.State) string {
	options := append([]string{""}, m.sel.UniqueTVShows(st)...)
	i := slices.Index(options, st.TVShowFilter)
	return options[(i+1)%len(options)]
}

func (m *Model) setPageSize(n int) {
	if err := m.store.SetPageSize(n); err != nil {
		m.statusMsg = styles.Theme.Error.Render(err.Error())
		return
	}
	m.afterPageChange()
}

func (m *Model) afterFilterChange() {
	m.table.ResetCursor()
	m.refreshTable()
}

func (m *Model) afterPageChange() {
	m.table.ResetCursor()
	m.refreshTable()
}

func (m *Model) refreshTable() {
	m.table.SetCharacters(m.sel.PaginatedCharacters(m.store.State()))
}

func (m *Model) applyConfig(msg messages.ConfigUpdateMsg) {
	if msg.Err != nil {
		m.statusMsg = styles.Theme.Warning.Render("Config not reloaded: " + msg.Err.Error())
		return
	}
	cfg := msg.Config
	if cfg.Display.Theme != m.cfg.Display.Theme {
		styles.Apply(cfg.Display.Theme)
		m.table = components.NewCharacterTable()
		if m.width > 0 {
			m.table.SetSize(m.width-4, m.height-reservedRows)
		}
	}
	if cfg.Display.Locale != m.cfg.Display.Locale {
		m.sel = selectors.New(cfg.Language())
	}
	m.exporter = export.NewExporter(cfg.Export.Directory)
	log.SetDebug(cfg.Logging.Debug)
	pageSizeChanged := cfg.Display.PageSize != m.cfg.Display.PageSize
	m.cfg = cfg
	if pageSizeChanged {
		m.setPageSize(cfg.Display.PageSize)
	}
	m.refreshTable()
	m.statusMsg = styles.Theme.Success.Render("Config reloaded")
}

// Commands

func (m *Model) loadFirstPage() tea.Cmd {
	return func() tea.Msg {
		return messages.FirstPageMsg{Err: m.ctrl.EnsureFirstPage(m.ctx)}
	}
}

func (m *Model) reload() tea.Cmd {
	return func() tea.Msg {
		return messages.FirstPageMsg{Err: m.ctrl.Reload(m.ctx)}
	}
}

func (m *Model) loadRemaining() tea.Cmd {
	return func() tea.Msg {
		return messages.BackgroundDoneMsg{Err: m.ctrl.LoadRemaining(m.ctx)}
	}
}

func (m *Model) exportChart() tea.Cmd {
	ds := m.Chart()
	exporter := m.exporter
	return func() tea.Msg {
		path, err := exporter.Export(ds)
		return messages.ExportDoneMsg{Path: path, Err: err}
	}
}

func (m *Model) waitForReload() tea.Cmd {
	if m.reloads == nil {
		return nil
	}
	ch := m.reloads
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return messages.ConfigUpdateMsg{Config: r.Config, Err: r.Err}
	}
}

// Getters

func (m *Model) State() store.State {
	return m.store.State()
}

func (m *Model) Rows() []types.Character {
	return m.sel.PaginatedCharacters(m.store.State())
}

func (m *Model) FilteredCount() int {
	return m.sel.FilteredCount(m.store.State())
}

func (m *Model) TotalPages() int {
	return m.sel.TotalPages(m.store.State())
}

func (m *Model) Chart() chart.Dataset {
	return m.sel.FilmsChart(m.store.State())
}

func (m *Model) Mode() common.Mode {
	return m.mode
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}

func (m *Model) ShowChart() bool {
	return m.showChart
}

func (m *Model) TableView() string {
	return m.table.View()
}

func (m *Model) SearchView() string {
	return m.search.View()
}

func (m *Model) StatusView() string {
	return m.statusBar.View()
}

func (m *Model) HelpView() string {
	return m.help.View(m.keys)
}

func (m *Model) StatusMsg() string {
	return m.statusMsg
}

func (m *Model) Width() int {
	return m.width
}

// Cursor returns the table cursor within the current page.
func (m *Model) Cursor() int {
	return m.table.Cursor()
}
