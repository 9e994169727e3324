package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/beadgraph/pkg/bead"
	"github.com/matzehuels/beadgraph/pkg/dag"
)

var listDimStyle = lipgloss.NewStyle().Foreground(colorDim)

func (c *CLI) browseCommand() *cobra.Command {
	var in inputOpts

	cmd := &cobra.Command{
		Use:     "browse [file]",
		Short:   "Interactively browse execution waves and slack",
		GroupID: groupTools,
		Args:    in.inputArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			raw, _, err := c.load(ctx, &in, args)
			if err != nil {
				return err
			}
			items, err := bead.Decode(raw)
			if err != nil {
				return err
			}
			model, err := NewWaveModel(items)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(model, tea.WithContext(ctx), tea.WithOutput(cmd.OutOrStdout())).Run()
			return err
		},
	}

	cmd.Flags().StringVar(&in.format, "input-format", "json", "stdin encoding: json or toml")
	cmd.Flags().BoolVar(&in.mongo, "mongo", false, "read beads from the configured MongoDB collection")
	return cmd
}

// =============================================================================
// WaveModel - execution waves with per-bead slack
// =============================================================================

// waveRow is one bead in the browser.
type waveRow struct {
	wave     int
	id       string
	status   string
	duration uint32
	slack    uint32
	critical bool
}

// WaveModel is the bubbletea model behind `beadgraph browse`.
type WaveModel struct {
	Rows   []waveRow
	Waves  int
	Total  uint32
	Cursor int
	Height int
	Offset int
}

// NewWaveModel analyses items and lays them out wave by wave. It fails on
// cyclic input.
func NewWaveModel(items []bead.Item) (WaveModel, error) {
	snap := dag.Build(items)
	waves, err := snap.Waves()
	if err != nil {
		return WaveModel{}, err
	}
	cp, err := snap.CriticalPath()
	if err != nil {
		return WaveModel{}, err
	}

	byID := make(map[string]bead.Item, len(items))
	for _, it := range items {
		if _, ok := byID[it.ID]; !ok {
			byID[it.ID] = it
		}
	}

	m := WaveModel{Waves: len(waves), Total: cp.TotalDuration, Height: 15}
	for w, wave := range waves {
		for _, id := range wave {
			it := byID[id]
			m.Rows = append(m.Rows, waveRow{
				wave:     w,
				id:       id,
				status:   it.Status,
				duration: it.EffectiveDuration(),
				slack:    cp.Slack[id],
				critical: cp.IsCritical(id),
			})
		}
	}
	return m, nil
}

func (m WaveModel) Init() tea.Cmd {
	return nil
}

func (m WaveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.move(-1)
		case "down", "j":
			m = m.move(1)
		case "left", "h":
			m = m.jumpWave(-1)
		case "right", "l":
			m = m.jumpWave(1)
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
		m = m.scroll()
	}
	return m, nil
}

func (m WaveModel) move(delta int) WaveModel {
	m.Cursor = min(max(m.Cursor+delta, 0), max(len(m.Rows)-1, 0))
	return m.scroll()
}

// jumpWave moves the cursor to the first bead of the previous or next wave.
func (m WaveModel) jumpWave(dir int) WaveModel {
	if len(m.Rows) == 0 {
		return m
	}
	target := m.Rows[m.Cursor].wave + dir
	for i, r := range m.Rows {
		if r.wave == target {
			m.Cursor = i
			return m.scroll()
		}
	}
	return m
}

func (m WaveModel) scroll() WaveModel {
	if m.Cursor < m.Offset {
		m.Offset = m.Cursor
	}
	if m.Cursor >= m.Offset+m.Height {
		m.Offset = m.Cursor - m.Height + 1
	}
	return m
}

func (m WaveModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Execution Waves"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d waves · critical path %d", m.Waves, m.Total)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ bead  ←/→ wave  q quit"))
	b.WriteString("\n\n")

	if len(m.Rows) == 0 {
		b.WriteString(listDimStyle.Render("  no beads"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(m.Rows))
	rows := make([][]string, 0, end-m.Offset)
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		slack := fmt.Sprint(r.slack)
		if r.critical {
			slack = "critical"
		}
		rows = append(rows, []string{cursor, fmt.Sprint(r.wave), r.id, r.status, fmt.Sprint(r.duration), slack})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Wave", "Bead", "Status", "Duration", "Slack").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[idx]
			base := lipgloss.NewStyle()
			switch {
			case r.critical:
				base = base.Foreground(colorRed)
			case r.status == bead.StatusClosed:
				base = base.Foreground(colorDim)
			}
			if idx == m.Cursor {
				return base.Bold(true).Foreground(colorCyan)
			}
			return base
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))
	return b.String()
}
