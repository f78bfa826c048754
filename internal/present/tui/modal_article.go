package tui

import (
	"bytes"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mithrel/blogtech/internal/present/format"
	"github.com/mithrel/blogtech/internal/theme"
	"github.com/mithrel/blogtech/pkg/api"
)

// articleModal shows the rendered article in a scrollable viewport.
type articleModal struct {
	a         api.Article
	vp        viewport.Model
	box       lipgloss.Style
	themeName string
	date      func(string) string
	padX      int
	padY      int
}

func newArticleModal(a api.Article, themeName string, date func(string) string, termW, termH int) *articleModal {
	m := &articleModal{a: a, themeName: themeName, date: date, padX: 2, padY: 1}
	m.resizeForTerm(termW, termH)
	return m
}

func (m *articleModal) resizeForTerm(termW, termH int) {
	if termW <= 0 || termH <= 0 {
		termW, termH = 80, 24
	}
	// 70% width, or nearly full width on small terminals
	w := termW * 7 / 10
	if termW < 80 {
		w = termW - 4
	}
	w = max(w, 32)
	h := max(termH*8/10, 8)
	m.box = lipgloss.NewStyle().
		Width(w).
		Height(h).
		Padding(m.padY, m.padX).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63"))

	innerW := max(10, w-2-m.padX*2)
	innerH := max(5, h-2-m.padY*2)
	if m.vp.Width == 0 {
		m.vp = viewport.New(innerW, innerH)
	} else {
		m.vp.Width = innerW
		m.vp.Height = innerH
	}
	m.render()
}

func (m *articleModal) setTheme(name string) {
	m.themeName = name
	m.render()
}

func (m *articleModal) render() {
	var buf bytes.Buffer
	err := format.WritePrettyArticle(&buf, m.a, format.PrettyOptions{
		Style: theme.GlamourStyle(m.themeName),
		Width: m.vp.Width,
		Date:  m.date,
	})
	if err != nil {
		m.vp.SetContent(err.Error())
		return
	}
	m.vp.SetContent(buf.String())
}

func (m *articleModal) update(msg tea.Msg) (*articleModal, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *articleModal) View() string { return m.box.Render(m.vp.View()) }
