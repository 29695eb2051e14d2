package controller

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "antiseptic.dev/pkg/antiseptic/internal/model"
)

var (
	pathStyle       = lipgloss.NewStyle().Bold(true)
	positionStyle   = lipgloss.NewStyle().Faint(true)
	wordStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warningStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	addedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	hunkStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	footerStyle     = lipgloss.NewStyle().Faint(true)
)

// pagerReservedLines is the space kept below the viewport for the footer.
const pagerReservedLines = 2

// TUI styles output for a terminal and pages long output with Bubble Tea.
type TUI struct {
	output io.Writer
	errOut io.Writer
	config StartConfig
}

// NewTUI creates a new TUI.
func NewTUI(streams Streams) *TUI {
	return &TUI{output: streams.OutOrStdout(), errOut: streams.ErrOrStderr()}
}

// Start initializes the UI.
func (p *TUI) Start(ctx context.Context, options ...StartOption) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.config = newStartConfig(options)

	return nil
}

// Close finalizes the UI.
func (p *TUI) Close(ctx context.Context) {
	if err := ctx.Err(); err != nil {
		return
	}
}

// DisplayWarnings prints warnings highlighted.
func (p *TUI) DisplayWarnings(ctx context.Context, warnings []string) {
	if ctx.Err() != nil || p.config.quiet {
		return
	}

	for _, warning := range warnings {
		_, _ = fmt.Fprintln(p.errOut, warningStyle.Render("warning: "+warning))
	}
}

// DisplayReport highlights text findings and pages them when they do not
// fit on the screen. Other formats are shown unchanged.
func (p *TUI) DisplayReport(ctx context.Context, report string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.show(styleReport(report), "findings")
}

// DisplayDiff shows the correction preview with colored hunks.
func (p *TUI) DisplayDiff(ctx context.Context, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return p.show(styleDiff(diff), "suggested corrections")
}

// DisplaySummary prints the run counters as a table.
func (p *TUI) DisplaySummary(ctx context.Context, result m.ScanResult) {
	if ctx.Err() != nil || p.config.quiet {
		return
	}

	status := addedStyle.Render("✓ no spelling problems")
	if result.Failed() {
		status = removedStyle.Render(fmt.Sprintf("✗ %d unknown word(s), %d unreadable file(s)",
			result.Count(m.FindingUnknownWord), result.Count(m.FindingUnreadable)))
	}

	_, _ = fmt.Fprintf(p.errOut, "\n%s\n%s\n", renderSummaryTable(result), status)
}

// DisplayWords prints styled verdicts.
func (p *TUI) DisplayWords(ctx context.Context, verdicts []m.WordVerdict) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var b strings.Builder

	for _, verdict := range verdicts {
		switch {
		case verdict.Known:
			fmt.Fprintf(&b, "%s %s\n", addedStyle.Render("✓"), verdict.Word)
		case verdict.Suggestion != "":
			fmt.Fprintf(&b, "%s %s (did you mean %s?)\n", removedStyle.Render("✗"),
				wordStyle.Render(verdict.Word), suggestionStyle.Render(verdict.Suggestion))
		default:
			fmt.Fprintf(&b, "%s %s\n", removedStyle.Render("✗"), wordStyle.Render(verdict.Word))
		}
	}

	_, err := io.WriteString(p.output, b.String())

	return err
}

// show prints content directly, or runs the pager when paging is enabled and
// the content is taller than the terminal.
func (p *TUI) show(content, title string) error {
	width, height := terminalSize(p.output)

	model := newPagerModel(content, title, width, height)
	if !p.config.pager || !model.needsPagination() {
		_, err := io.WriteString(p.output, content)
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func styleReport(report string) string {
	lines := strings.SplitAfter(report, "\n")

	var b strings.Builder

	for _, line := range lines {
		b.WriteString(styleFindingLine(line))
	}

	return b.String()
}

// styleFindingLine highlights a path:line:column: message line. Lines of any
// other shape are returned unchanged.
func styleFindingLine(line string) string {
	body, newline := strings.CutSuffix(line, "\n")

	parts := strings.SplitN(body, ": ", 2)
	if len(parts) != 2 {
		return line
	}

	location, message := parts[0], parts[1]

	colon := strings.Index(location, ":")
	if colon < 0 {
		return line
	}

	styled := pathStyle.Render(location[:colon]) + positionStyle.Render(location[colon:]) + ": " + styleMessage(message)
	if newline {
		styled += "\n"
	}

	return styled
}

func styleMessage(message string) string {
	if strings.HasPrefix(message, "warning:") {
		return warningStyle.Render(message)
	}

	word, rest, found := strings.Cut(message, " (did you mean ")
	if !found {
		return wordStyle.Render(message)
	}

	suggestion := strings.TrimSuffix(rest, "?)")

	return wordStyle.Render(word) + " (did you mean " + suggestionStyle.Render(suggestion) + "?)"
}

func styleDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")

	var b strings.Builder

	for _, line := range lines {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(pathStyle.Render(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(hunkStyle.Render(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "+"):
			b.WriteString(addedStyle.Render(strings.TrimSuffix(line, "\n")))
		case strings.HasPrefix(line, "-"):
			b.WriteString(removedStyle.Render(strings.TrimSuffix(line, "\n")))
		default:
			b.WriteString(strings.TrimSuffix(line, "\n"))
		}

		if strings.HasSuffix(line, "\n") {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// pagerModel is the Bubble Tea model scrolling long output.
type pagerModel struct {
	title    string
	content  string
	lines    int
	width    int
	height   int
	viewport viewport.Model
	quitting bool
}

func newPagerModel(content, title string, width, height int) pagerModel {
	vp := viewport.New(width, max(1, height-pagerReservedLines))
	vp.SetContent(content)

	return pagerModel{
		title:    title,
		content:  content,
		lines:    strings.Count(content, "\n"),
		width:    width,
		height:   height,
		viewport: vp,
	}
}

// needsPagination returns true if the content is too tall for the screen.
func (pm pagerModel) needsPagination() bool {
	return pm.height > 0 && pm.lines > pm.height-pagerReservedLines
}

func (pm pagerModel) Init() tea.Cmd {
	return nil
}

func (pm pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		pm.width = msg.Width
		pm.height = msg.Height
		pm.viewport.Width = msg.Width
		pm.viewport.Height = max(1, msg.Height-pagerReservedLines)

		return pm, nil

	case tea.KeyMsg:
		return pm.handleKeyPress(msg)
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	//nolint:exhaustive // We only handle specific navigation keys
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		pm.quitting = true
		return pm, tea.Quit
	default:
		// Handle other key types in the string switch below
	}

	switch msg.String() {
	case "q":
		pm.quitting = true
		return pm, tea.Quit

	case "g", "home":
		pm.viewport.GotoTop()
		return pm, nil

	case "G", "end":
		pm.viewport.GotoBottom()
		return pm, nil
	}

	var cmd tea.Cmd
	pm.viewport, cmd = pm.viewport.Update(msg)

	return pm, cmd
}

func (pm pagerModel) View() string {
	if pm.quitting {
		return ""
	}

	footer := fmt.Sprintf("  %s | %3.f%% of %d lines | ↑/k: up | ↓/j: down | g: top | G: bottom | q: quit",
		pm.title, pm.viewport.ScrollPercent()*100, pm.lines)

	return pm.viewport.View() + "\n" + footerStyle.Render(footer)
}
