package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/bep/debounce"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/kosirm/mindmap-writer-sub008/pkg/doc"
	"github.com/kosirm/mindmap-writer-sub008/pkg/drag"
	"github.com/kosirm/mindmap-writer-sub008/pkg/geom"
	"github.com/kosirm/mindmap-writer-sub008/pkg/layout"
	"github.com/kosirm/mindmap-writer-sub008/pkg/tree"
)

// grabStep is how far one arrow key press moves a grabbed node, in
// document units.
const grabStep = 20.0

// relayoutDebounce batches rapid terminal resizes into one layout pass.
const relayoutDebounce = 150 * time.Millisecond

// tuiCommand creates the interactive browser command.
func (c *CLI) tuiCommand() *cobra.Command {
	var (
		orientation string
		configPath  string
	)

	cmd := &cobra.Command{
		Use:   "tui [map.json]",
		Short: "Browse and rearrange a mindmap interactively",
		Long: `Browse and rearrange a mindmap interactively.

Navigate the tree with arrow keys, collapse branches with space, and cycle
the orientation mode with o. Press g to grab the node under the cursor,
move it with the arrow keys, and drop it on a new parent with enter; esc
cancels the grab and restores every position. Press s to save.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(args[0], orientation, configPath)
		},
	}

	cmd.Flags().StringVarP(&orientation, "orientation", "O", "clockwise", "layout mode: clockwise, anticlockwise, ltr, rtl")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML file with spacing settings")

	return cmd
}

// runTUI loads the document and runs the bubbletea program.
func (c *CLI) runTUI(input, orientation, configPath string) error {
	o, err := layout.ParseOrientation(orientation)
	if err != nil {
		return err
	}
	cfg, err := loadLayoutConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}
	t, err := doc.ReadFile(input)
	if err != nil {
		return fmt.Errorf("load document %s: %w", input, err)
	}

	m, err := newTUIModel(input, t, o, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	if fm, ok := final.(*tuiModel); ok && fm.dirty {
		printWarning("Unsaved changes discarded")
	}
	return nil
}

// =============================================================================
// Model
// =============================================================================

// visibleRow is one displayed tree row.
type visibleRow struct {
	id    string
	depth int
}

// relayoutMsg asks the model to recompute the layout.
type relayoutMsg struct{}

// tuiModel is the bubbletea model for the interactive browser.
type tuiModel struct {
	path        string
	t           *tree.Tree
	cfg         layout.Config
	orientation layout.Orientation

	res   *layout.Result
	index *layout.Index
	rows  []visibleRow

	cursor int
	offset int
	height int
	dirty  bool
	status string

	// Grab mode state. ctrl is the drag session; grabPos tracks the
	// virtual pointer while a node is grabbed.
	ctrl    *drag.Controller
	grabbed bool
	grabPos geom.Point
	hover   drag.Hover

	// debounced coalesces resize bursts; relayoutCh wakes the program
	// back up on the bubbletea side once the quiet period passes.
	debounced  func(func())
	relayoutCh chan struct{}
}

// newTUIModel computes the initial layout and spatial index.
func newTUIModel(path string, t *tree.Tree, o layout.Orientation, cfg layout.Config) (*tuiModel, error) {
	res, err := layout.Layout(t, o, cfg)
	if err != nil {
		return nil, fmt.Errorf("compute layout: %w", err)
	}
	m := &tuiModel{
		path:        path,
		t:           t,
		cfg:         cfg,
		orientation: o,
		res:         res,
		index:       layout.NewIndex(t, res),
		height:      20,
		debounced:   debounce.New(relayoutDebounce),
		relayoutCh:  make(chan struct{}, 1),
	}
	m.ctrl = drag.NewController(t, m.index, cfg)
	m.rebuildRows()
	return m, nil
}

// rebuildRows flattens the visible part of the tree into display order.
func (m *tuiModel) rebuildRows() {
	m.rows = m.rows[:0]
	var walk func(id string, depth int)
	walk = func(id string, depth int) {
		m.rows = append(m.rows, visibleRow{id: id, depth: depth})
		for _, childID := range m.t.VisibleChildren(id) {
			walk(childID, depth+1)
		}
	}
	if root := m.t.Root(); root != nil {
		walk(root.ID, 0)
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// relayout recomputes positions and the spatial index after a change.
func (m *tuiModel) relayout() {
	res, err := layout.Layout(m.t, m.orientation, m.cfg)
	if err != nil {
		m.status = "layout failed: " + err.Error()
		return
	}
	m.res = res
	m.index = layout.NewIndex(m.t, res)
	m.ctrl = drag.NewController(m.t, m.index, m.cfg)
	m.rebuildRows()
	m.status = ""
}

// waitForRelayout blocks until the debouncer fires.
func (m *tuiModel) waitForRelayout() tea.Cmd {
	return func() tea.Msg {
		<-m.relayoutCh
		return relayoutMsg{}
	}
}

func (m *tuiModel) Init() tea.Cmd {
	return m.waitForRelayout()
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case relayoutMsg:
		m.relayout()
		return m, m.waitForRelayout()

	case tea.WindowSizeMsg:
		m.height = msg.Height - 6
		if m.height < 5 {
			m.height = 5
		}
		m.debounced(func() {
			select {
			case m.relayoutCh <- struct{}{}:
			default:
			}
		})

	case tea.KeyMsg:
		if m.grabbed {
			return m.updateGrab(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

// updateBrowse handles keys outside of grab mode.
func (m *tuiModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}

	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}

	case " ":
		id := m.currentID()
		if n := m.t.Node(id); n != nil && len(m.t.Children(id)) > 0 {
			_ = m.t.SetCollapsed(id, !n.Collapsed)
			m.relayout()
		}

	case "o":
		all := layout.Orientations()
		for i, o := range all {
			if o == m.orientation {
				m.orientation = all[(i+1)%len(all)]
				break
			}
		}
		m.relayout()
		m.status = "orientation: " + m.orientation.String()

	case "r":
		m.relayout()

	case "g":
		id := m.currentID()
		if err := m.ctrl.Start([]string{id}, m.res, true); err != nil {
			m.status = "cannot grab: " + err.Error()
			break
		}
		m.grabbed = true
		m.grabPos = m.res.Positions[id]
		m.hover = drag.Hover{}
		m.status = "grabbed " + id

	case "s":
		if err := doc.WriteFile(m.t, m.path); err != nil {
			m.status = "save failed: " + err.Error()
		} else {
			m.dirty = false
			m.status = "saved " + m.path
		}
	}
	return m, nil
}

// updateGrab handles keys while a node is grabbed.
func (m *tuiModel) updateGrab(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	step := func(dx, dy float64) {
		m.grabPos = geom.Point{X: m.grabPos.X + dx, Y: m.grabPos.Y + dy}
		m.hover = m.ctrl.Move(m.grabPos, true)
		if m.hover.Valid() {
			m.status = fmt.Sprintf("over %s", hoverLabel(m.hover))
		} else {
			m.status = "invalid drop target"
		}
	}

	switch msg.String() {
	case "up", "k":
		step(0, -grabStep)
	case "down", "j":
		step(0, grabStep)
	case "left", "h":
		step(-grabStep, 0)
	case "right", "l":
		step(grabStep, 0)

	case "enter":
		edit, err := m.ctrl.Drop(-1)
		m.grabbed = false
		if err != nil {
			m.status = "drop rejected: " + err.Error()
			m.relayout()
			break
		}
		if edit != nil && !edit.IsNoop() {
			m.dirty = true
			m.status = fmt.Sprintf("moved, %d records", len(edit.Records))
		} else {
			m.status = "no structural change"
		}
		m.relayout()

	case "esc", "q", "ctrl+c":
		if _, err := m.ctrl.Cancel(); err == nil {
			m.status = "cancelled, positions restored"
		}
		m.grabbed = false
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// currentID returns the node ID under the cursor.
func (m *tuiModel) currentID() string {
	if m.cursor < len(m.rows) {
		return m.rows[m.cursor].id
	}
	return ""
}

// hoverLabel renders a drop target for the status line.
func hoverLabel(h drag.Hover) string {
	switch h.Kind {
	case drag.TargetCanvas:
		return "canvas"
	case drag.TargetContainer:
		return h.TargetID + " (container)"
	case drag.TargetLeaf:
		return h.TargetID + " (leaf)"
	}
	return "nothing"
}

// =============================================================================
// View
// =============================================================================

var (
	rowSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	rowNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	rowDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	rowGrabbedStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
)

func (m *tuiModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Mindmap · " + m.path))
	b.WriteString("  ")
	b.WriteString(rowDimStyle.Render(m.orientation.String()))
	if m.dirty {
		b.WriteString(" " + StyleWarning.Render("*"))
	}
	b.WriteString("\n")
	if m.grabbed {
		b.WriteString(rowDimStyle.Render("↑/↓/←/→ move  ⏎ drop  esc cancel"))
	} else {
		b.WriteString(rowDimStyle.Render("↑/↓ navigate  ␣ collapse  g grab  o orientation  s save  q quit"))
	}
	b.WriteString("\n\n")

	end := m.offset + m.height
	if end > len(m.rows) {
		end = len(m.rows)
	}

	grabbedID := ""
	if m.grabbed && len(m.ctrl.Selection()) > 0 {
		grabbedID = m.ctrl.Selection()[0]
	}

	for i := m.offset; i < end; i++ {
		row := m.rows[i]
		n := m.t.Node(row.id)
		if n == nil {
			continue
		}

		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}

		marker := " "
		if len(m.t.Children(row.id)) > 0 {
			marker = "−"
			if n.Collapsed {
				marker = "+"
			}
		}

		pos := m.res.Positions[row.id]
		side := ""
		if s, ok := m.res.Sides[row.id]; ok && s != tree.SideNone {
			side = " " + s.String()
		}

		line := fmt.Sprintf("%s%s%s %s", cursor, strings.Repeat("  ", row.depth), marker, shortID(row.id))
		detail := fmt.Sprintf("  (%.0f, %.0f)%s", pos.X, pos.Y, side)

		style := rowNormalStyle
		switch {
		case row.id == grabbedID:
			style = rowGrabbedStyle
		case i == m.cursor:
			style = rowSelectedStyle
		}
		b.WriteString(style.Render(line))
		b.WriteString(rowDimStyle.Render(detail))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, w := range m.res.Warnings {
		b.WriteString(StyleWarning.Render(iconWarning+" "+w.Message) + "\n")
	}
	if m.status != "" {
		b.WriteString(rowDimStyle.Render(m.status))
		b.WriteString("\n")
	}

	return b.String()
}

// shortID truncates UUID-length IDs for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
