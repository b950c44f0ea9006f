package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/wippyai/nbt"
	"github.com/wippyai/nbt/tag"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

func newBrowseCommand(global *cliOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "browse FILE",
		Short: "Explore a document interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tagOpts, err := global.tagOptions()
			if err != nil {
				return err
			}
			m := newBrowseModel(args[0], nbt.WithTagOptions(tagOpts...))
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

// node is one visible line of the tree.
type node struct {
	t     tag.Tag
	label string
	path  string
	depth int
}

func (n node) container() bool {
	switch n.t.(type) {
	case *tag.Compound, *tag.List:
		return true
	}
	return false
}

type browseState int

const (
	stateTree browseState = iota
	stateJump
)

type browseModel struct {
	err      error
	root     *tag.Compound
	opts     []nbt.Option
	filename string
	format   string
	expanded map[string]bool
	nodes    []node
	jump     textinput.Model
	selected int
	offset   int
	height   int
	state    browseState
}

type loadedMsg struct {
	err    error
	root   *tag.Compound
	format string
}

func newBrowseModel(filename string, opts ...nbt.Option) *browseModel {
	ti := textinput.New()
	ti.Prompt = "path: "
	ti.Placeholder = "level/players/0"
	ti.Width = 40

	return &browseModel{
		filename: filename,
		opts:     opts,
		expanded: map[string]bool{"": true},
		jump:     ti,
		height:   20,
		state:    stateTree,
	}
}

func (m *browseModel) Init() tea.Cmd {
	return m.loadDocument
}

func (m *browseModel) loadDocument() tea.Msg {
	doc, err := nbt.ReadFile(m.filename, m.opts...)
	if err != nil {
		return loadedMsg{err: err}
	}
	return loadedMsg{root: doc.Root, format: doc.Compression.String()}
}

func (m *browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-6, 1)
		m.scroll()

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.root = msg.root
		m.format = msg.format
		m.rebuild()

	case tea.KeyMsg:
		if m.state == stateJump {
			return m.updateJump(msg)
		}
		return m.updateTree(msg)
	}
	return m, nil
}

func (m *browseModel) updateTree(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.selected > 0 {
			m.selected--
		}

	case "down", "j":
		if m.selected < len(m.nodes)-1 {
			m.selected++
		}

	case "enter", "right", "l", " ":
		if n, ok := m.current(); ok && n.container() {
			m.expanded[n.path] = !m.expanded[n.path]
			m.rebuild()
		}

	case "left", "h":
		n, ok := m.current()
		if !ok {
			break
		}
		if n.container() && m.expanded[n.path] && n.path != "" {
			m.expanded[n.path] = false
			m.rebuild()
			break
		}
		m.selectPath(parentPath(n.path))

	case "/":
		if m.root != nil {
			m.err = nil
			m.state = stateJump
			m.jump.SetValue("")
			return m, m.jump.Focus()
		}
	}
	m.scroll()
	return m, nil
}

func (m *browseModel) updateJump(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "esc":
		m.state = stateTree
		m.jump.Blur()
		return m, nil

	case "enter":
		m.state = stateTree
		m.jump.Blur()
		m.jumpTo(m.jump.Value())
		m.scroll()
		return m, nil
	}

	var cmd tea.Cmd
	m.jump, cmd = m.jump.Update(msg)
	return m, cmd
}

// jumpTo expands every container on the way to path and selects it.
func (m *browseModel) jumpTo(path string) {
	segs := splitPath(path)
	if _, err := tag.At(m.root).Path(segs...).Tag(); err != nil {
		m.err = err
		return
	}
	for i := range segs {
		m.expanded[strings.Join(segs[:i], "/")] = true
	}
	m.rebuild()
	m.selectPath(strings.Join(segs, "/"))
}

func (m *browseModel) selectPath(path string) {
	for i, n := range m.nodes {
		if n.path == path {
			m.selected = i
			return
		}
	}
}

func (m *browseModel) current() (node, bool) {
	if m.selected < 0 || m.selected >= len(m.nodes) {
		return node{}, false
	}
	return m.nodes[m.selected], true
}

// rebuild flattens the expanded part of the tree into visible lines.
func (m *browseModel) rebuild() {
	m.nodes = m.nodes[:0]
	if m.root != nil {
		m.walk(m.root, strconv.Quote(m.root.Name()), "", 0)
	}
	m.selected = min(m.selected, max(len(m.nodes)-1, 0))
}

func (m *browseModel) walk(t tag.Tag, label, path string, depth int) {
	m.nodes = append(m.nodes, node{t: t, label: label, path: path, depth: depth})
	if !m.expanded[path] {
		return
	}
	switch v := t.(type) {
	case *tag.Compound:
		for name, child := range v.All() {
			m.walk(child, strconv.Quote(name), joinPath(path, name), depth+1)
		}
	case *tag.List:
		for i, child := range v.All() {
			idx := strconv.Itoa(i)
			m.walk(child, "["+idx+"]", joinPath(path, idx), depth+1)
		}
	}
}

func (m *browseModel) scroll() {
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+m.height {
		m.offset = m.selected - m.height + 1
	}
}

func (m *browseModel) View() string {
	if m.root == nil {
		if m.err != nil {
			return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
		}
		return "Loading document..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("NBT Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString(helpStyle.Render(" (" + m.format + ")"))
	b.WriteString("\n\n")

	end := min(m.offset+m.height, len(m.nodes))
	for i := m.offset; i < end; i++ {
		line := m.formatNode(m.nodes[i])
		if i == m.selected {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.state == stateJump:
		b.WriteString(m.jump.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("enter jump • esc back"))
	case m.err != nil:
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("/ path • q quit"))
	default:
		if n, ok := m.current(); ok {
			b.WriteString(helpStyle.Render("/" + n.path))
			b.WriteString("\n")
		}
		b.WriteString(helpStyle.Render("↑/↓ move • enter expand • ← parent • / path • q quit"))
	}

	return b.String()
}

func (m *browseModel) formatNode(n node) string {
	marker := "  "
	if n.container() {
		marker = "▸ "
		if m.expanded[n.path] {
			marker = "▾ "
		}
	}
	return strings.Repeat("  ", n.depth) + marker +
		typeStyle.Render(n.t.ID().String()) + " " +
		nameStyle.Render(n.label) + ": " + summary(n.t)
}

// summary is the one-line value shown next to a tag.
func summary(t tag.Tag) string {
	switch v := t.(type) {
	case *tag.Compound:
		return countString(v.Len())
	case *tag.List:
		return countString(v.Len()) + " of " + v.ElemType().String()
	case *tag.String:
		return strconv.Quote(v.Value)
	case *tag.ByteArray:
		return countString(len(v.Value))
	case *tag.UByteArray:
		return countString(len(v.Value))
	case *tag.IntArray:
		return countString(len(v.Value))
	case *tag.UIntArray:
		return countString(len(v.Value))
	case *tag.LongArray:
		return countString(len(v.Value))
	case *tag.ULongArray:
		return countString(len(v.Value))
	}
	return formatValue(t)
}

func countString(n int) string {
	if n == 1 {
		return "1 entry"
	}
	return strconv.Itoa(n) + " entries"
}

func joinPath(parent, seg string) string {
	if parent == "" {
		return seg
	}
	return parent + "/" + seg
}

func parentPath(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return ""
	}
	return path[:i]
}
