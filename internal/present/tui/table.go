package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/blogtech/internal/listing"
	"github.com/mithrel/blogtech/internal/theme"
	"github.com/mithrel/blogtech/pkg/api"
)

// Options configures the browser.
type Options struct {
	Headers bool
	PerPage int
	Page    int
	Term    string
	// Theme picks the glamour style of the preview; t toggles it.
	Theme string
	Date  func(string) string
}

// RenderTable opens an interactive Bubble Tea table to browse articles.
func RenderTable(ctx context.Context, list []api.Article, opts Options) error {
	m := newModel(list, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type model struct {
	table     table.Model
	search    textinput.Model
	searching bool
	modal     *articleModal

	all     []api.Article
	view    []api.Article
	page    listing.Page
	perPage int

	headers   bool
	themeName string
	date      func(string) string
	width     int
	height    int
	titleW    int
	tagsW     int
}

func newModel(list []api.Article, opts Options) model {
	m := model{
		all:       list,
		perPage:   opts.PerPage,
		headers:   opts.Headers,
		themeName: opts.Theme,
		date:      opts.Date,
		titleW:    40,
		tagsW:     20,
	}
	if m.perPage <= 0 {
		m.perPage = listing.DefaultPerPage
	}
	if m.themeName == "" {
		m.themeName = theme.Dark
	}
	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.search.Placeholder = "título ou tag"
	m.search.SetValue(opts.Term)
	m.table = table.New(table.WithColumns(m.columnsFor(6, 12, m.titleW, m.tagsW)), table.WithFocused(true))
	m.applyStyles()
	m.applyFilter()
	if opts.Page > 1 {
		m.gotoPage(opts.Page)
	}
	return m
}

func (m *model) applyFilter() {
	m.view = listing.Filter(m.all, listing.Query{Term: m.search.Value()})
	m.gotoPage(1)
}

func (m *model) gotoPage(n int) {
	m.page = listing.Paginate(m.view, n, m.perPage)
	m.updateRows()
	m.table.SetCursor(0)
}

func (m *model) updateRows() {
	rows := make([]table.Row, 0, len(m.page.Items))
	for _, a := range m.page.Items {
		d := a.Date
		if m.date != nil && d != "" {
			d = m.date(d)
		}
		rows = append(rows, table.Row{
			fmt.Sprint(a.ID),
			d,
			a.Title,
			strings.Join(a.Tags, ", "),
		})
	}
	m.table.SetRows(rows)
}

func (m model) selected() (api.Article, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.page.Items) {
		return api.Article{}, false
	}
	return m.page.Items[idx], true
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.applyLayout()
		if m.modal != nil {
			m.modal.resizeForTerm(ws.Width, ws.Height)
		}
		return m, nil
	}

	if m.modal != nil {
		return m.updateModal(msg)
	}
	if m.searching {
		return m.updateSearch(msg)
	}

	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "/":
			m.searching = true
			return m, m.search.Focus()
		case "right", "n":
			if m.page.HasNext() {
				m.gotoPage(m.page.Number + 1)
			}
			return m, nil
		case "left", "p":
			if m.page.HasPrev() {
				m.gotoPage(m.page.Number - 1)
			}
			return m, nil
		case "t":
			m.themeName = theme.Toggle(m.themeName)
			return m, nil
		case "enter":
			if a, ok := m.selected(); ok {
				m.modal = newArticleModal(a, m.themeName, m.date, m.width, m.height)
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		case "esc":
			m.searching = false
			m.search.Blur()
			m.search.SetValue("")
			m.applyFilter()
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

func (m model) updateModal(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q":
			m.modal = nil
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		case "t":
			m.themeName = theme.Toggle(m.themeName)
			m.modal.setTheme(m.themeName)
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.modal, cmd = m.modal.update(msg)
	return m, cmd
}

func (m model) renderFooter() string {
	left := "↑/↓ navegar • ←/→ página • / buscar • enter abrir • t tema • q sair"
	if m.searching {
		left = m.search.View()
	} else if q := m.search.Value(); q != "" {
		left = fmt.Sprintf("busca: %q • esc limpa • ", q) + left
	}
	right := fmt.Sprintf("página %d/%d • %d artigos ", m.page.Number, m.page.TotalPages, m.page.Total)

	width := max(m.table.Width(), m.width)
	space := width - lipgloss.Width(left) - lipgloss.Width(right)
	if space < 1 {
		space = 1
	}
	return left + strings.Repeat(" ", space) + right
}

func (m model) View() string {
	if m.modal != nil {
		w, h := m.width, m.height
		if w <= 0 || h <= 0 {
			w, h = 80, 24
		}
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, m.modal.View())
	}
	if len(m.page.Items) == 0 {
		return "(nenhum artigo)\n" + m.renderFooter() + "\n"
	}
	return m.table.View() + "\n" + m.renderFooter() + "\n"
}

func (m *model) applyLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	m.table.SetHeight(max(4, m.height-2))
	m.table.SetWidth(m.width)
	avail := m.width - 4
	if avail < 40 {
		return
	}
	idW, dateW := 6, 22
	rem := max(20, avail-idW-dateW)
	m.tagsW = max(8, rem/3)
	m.titleW = max(8, rem-m.tagsW)
	m.table.SetColumns(m.columnsFor(idW, dateW, m.titleW, m.tagsW))
}

func (m *model) applyStyles() {
	s := table.DefaultStyles()
	if m.headers {
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
	} else {
		s.Header = s.Header.
			BorderBottom(false).
			Bold(false)
	}
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	m.table.SetStyles(s)
}

// columnsFor returns columns with or without titles based on the headers flag.
func (m *model) columnsFor(idW, dateW, titleW, tagsW int) []table.Column {
	titles := []string{"ID", "Data", "Título", "Tags"}
	if !m.headers {
		titles = []string{"", "", "", ""}
	}
	return []table.Column{
		{Title: titles[0], Width: idW},
		{Title: titles[1], Width: dateW},
		{Title: titles[2], Width: titleW},
		{Title: titles[3], Width: tagsW},
	}
}
