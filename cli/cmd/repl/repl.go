// Package repl implements an interactive session for editing a strux
// document one statement at a time. Every accepted statement re-parses the
// accumulated source, so the rendered document always reflects the full
// permissive-grammar semantics, including constant substitution.
package repl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"strux/lang"
	"strux/log"
)

const (
	stmtPrompt = "➜ "
	ctrlPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help         Print this cruft
  list         List document entries with their types
  show         Render the document as JSON
  yaml         Render the document as YAML
  save <path>  Write the accumulated source to a file
  clear        Discard the document and start over
  quit         Exit

Usage:
  Type a statement (name = value, name := value, ...) to add it
  Completions appear automatically as you type
  Press Tab / Shift-Tab to cycle through candidates
  Press Esc to toggle between statement and command modes
  Use Up/Down arrows for history navigation
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeStmt inputMode = iota
	modeCtrl
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	ctrlPromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("5")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	selectedStyle   = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
)

// formatStatement formats the statement echo line with prompt and input
// styled.
func formatStatement(input string) string {
	return promptStyle.Render(stmtPrompt) + inputStyle.Render(input)
}

// formatCommand formats the control command echo line.
func formatCommand(input string) string {
	return ctrlPromptStyle.Render(ctrlPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the session.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	lines        []string // accepted source statements
	doc          *lang.Document
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	candidates   []string      // backing candidate list
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
}

// Run starts the session. The initial source may be empty; when it is not,
// it must parse cleanly before the prompt appears.
func Run(
	ctx context.Context,
	initial string,
	cacheDir string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("initial_length", len(initial)),
	)

	var lines []string

	doc := lang.NewDocument()

	if strings.TrimSpace(initial) != "" {
		doc, err = lang.ParseText(ctx, initial, lang.WithLogger(logger))
		if err != nil {
			return err
		}

		lines = strings.Split(strings.TrimRight(initial, "\n"), "\n")
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory))
	if err := history.Load(); err != nil {
		fmt.Printf("Warning: could not load history: %v\n", err)
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	m := newModel(ctx, doc, lines, history, logger)

	p := tea.NewProgram(m, tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	doc *lang.Document,
	lines []string,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(stmtPrompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		lines:      lines,
		doc:        doc,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		width:      defaultWidth,
		mode:       modeStmt,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(stmtPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	// Input line.
	b.WriteString(m.input.View())
	b.WriteString("\n")

	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		// Show history position indicator.
		pos := m.historyIdx + 1
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(pos)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case strings.TrimSpace(input) == "":
		var hint string
		if m.mode == modeStmt {
			hint = "Type a statement or press Esc for commands"
		} else {
			hint = "Type: help, list, show, yaml, save, clear, quit " +
				"(press Esc to return)"
		}

		b.WriteString(hintStyle.Render(hint))
		b.WriteString("\n")

	case len(m.matches) > 0:
		bar := renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)
		b.WriteString(bar)
		b.WriteString("\n")

	default:
		b.WriteString("\n")
	}

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.handleTab(1)

	case tea.KeyShiftTab:
		return m.handleTab(-1)

	case tea.KeyUp:
		return m.historyPrev()

	case tea.KeyDown:
		return m.historyNext()

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		return m.toggleMode()

	case tea.KeyRunes:
		// Space breaks tab-cycling.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Any other key (backspace, delete, arrows): update input and recompute
	// matches without auto-confirm.
	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// handleTab cycles through completion candidates in the given direction.
func (m model) handleTab(dir int) (model, tea.Cmd) {
	if len(m.matches) == 0 {
		return m, nil
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m, nil
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if dir < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m, nil
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also auto-confirms the completion when exactly
// one candidate remains and the typed word already equals that candidate.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	word := m.input.Value()[m.wordStart:m.wordEnd]

	if word == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

func (m model) toggleMode() (model, tea.Cmd) {
	if m.mode == modeStmt {
		m.mode = modeCtrl
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	} else {
		m.mode = modeStmt
		m.input.Prompt = promptStyle.Render(stmtPrompt)
	}

	m.input.SetValue("")
	m.tabActive = false
	m.historyIdx = m.history.Len()
	refreshMatches(&m, false)

	return m, nil
}

func (m model) historyPrev() (model, tea.Cmd) {
	if m.historyIdx <= 0 {
		return m, nil
	}

	m.historyIdx--
	if line, ok := m.history.Get(m.historyIdx); ok {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}

	m.tabActive = false
	m.matches = nil

	return m, nil
}

func (m model) historyNext() (model, tea.Cmd) {
	if m.historyIdx >= m.history.Len() {
		return m, nil
	}

	m.historyIdx++

	if m.historyIdx == m.history.Len() {
		m.input.SetValue("")
	} else if line, ok := m.history.Get(m.historyIdx); ok {
		m.input.SetValue(line)
		m.input.CursorEnd()
	}

	m.tabActive = false
	m.matches = nil

	return m, nil
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	_ = m.history.Write(input)
	m.historyIdx = m.history.Len()

	if m.mode == modeCtrl {
		m.logger.TraceContext(m.ctxFunc(), "repl command",
			slog.String("input", input))

		return m.executeCommand(input)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl statement",
		slog.String("input", input))

	echoCmd := tea.Println(formatStatement(input))

	// Re-parse the whole accumulated source so constant substitution and
	// re-assignment semantics hold across statements.
	lines := append(m.lines[:len(m.lines):len(m.lines)], input)
	src := strings.Join(lines, "\n")

	doc, err := lang.ParseText(m.ctxFunc(), src, lang.WithLogger(m.logger))
	if err != nil {
		out := "error: " + err.Error()

		var synErr *lang.SyntaxError
		if errors.As(err, &synErr) {
			if snippet := synErr.Snippet(src); snippet != "" {
				out += "\n" + snippet
			}
		}

		return m, tea.Sequence(echoCmd, tea.Println(errorStyle.Render(out)))
	}

	m.lines = lines
	m.doc = doc

	return m, tea.Sequence(
		echoCmd,
		tea.Println(resultStyle.Render(
			fmt.Sprintf("✔ %d entries", doc.Len()))),
	)
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}

	echoCmd := tea.Println(formatCommand(input))

	cmd, args := parts[0], parts[1:]

	switch cmd {
	case "help":
		return m, tea.Sequence(echoCmd, tea.Println(helpMessage()))

	case "list":
		if m.doc.Len() == 0 {
			return m, tea.Sequence(echoCmd,
				tea.Println(hintStyle.Render("(empty document)")))
		}

		var b strings.Builder

		for name, v := range m.doc.All() {
			fmt.Fprintf(&b, "  %-20s %s\n",
				name, hintStyle.Render(v.Type.String()))
		}

		return m, tea.Sequence(echoCmd,
			tea.Println(strings.TrimRight(b.String(), "\n")))

	case "show":
		var buf bytes.Buffer
		if err := lang.EncodeJSON(&buf, m.doc, 4); err != nil {
			return m, tea.Sequence(echoCmd,
				tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echoCmd,
			tea.Println(strings.TrimRight(buf.String(), "\n")))

	case "yaml":
		var buf bytes.Buffer
		if err := lang.EncodeYAML(m.ctxFunc(), &buf, m.doc, 2); err != nil {
			return m, tea.Sequence(echoCmd,
				tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echoCmd,
			tea.Println(strings.TrimRight(buf.String(), "\n")))

	case "save":
		if len(args) != 1 {
			return m, tea.Sequence(echoCmd,
				tea.Println(errorStyle.Render("usage: save <path>")))
		}

		src := strings.Join(m.lines, "\n") + "\n"
		if err := os.WriteFile(args[0], []byte(src), 0o600); err != nil {
			return m, tea.Sequence(echoCmd,
				tea.Println(errorStyle.Render("error: "+err.Error())))
		}

		return m, tea.Sequence(echoCmd,
			tea.Println(resultStyle.Render("✔ saved "+args[0])))

	case "clear":
		m.lines = nil
		m.doc = lang.NewDocument()

		return m, tea.Sequence(echoCmd,
			tea.Println(hintStyle.Render("document cleared")))

	case "quit", "exit":
		m.quitting = true

		return m, tea.Quit

	default:
		return m, tea.Sequence(echoCmd,
			tea.Println(errorStyle.Render("unknown command: "+cmd)))
	}
}
