package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/logrusorgru/aurora"
	"golang.org/x/term"
)

const (
	sectionWidth = 50
	promptPrefix = "> "
)

// TerminalUI writes coloured output to a terminal and reads answers from stdin.
type TerminalUI struct {
	out         io.Writer
	in          *bufio.Reader
	au          aurora.Aurora
	interactive bool
}

// NewTerminalUI uses os.Stdout and os.Stdin. Colours and the spinner are
// enabled only when stdout is a terminal.
func NewTerminalUI() *TerminalUI {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	return &TerminalUI{
		out:         os.Stdout,
		in:          bufio.NewReader(os.Stdin),
		au:          aurora.NewAurora(isTTY),
		interactive: isTTY,
	}
}

// NewPlainUI writes uncoloured output to out and reads from in.
func NewPlainUI(out io.Writer, in io.Reader) *TerminalUI {
	return &TerminalUI{
		out: out,
		in:  bufio.NewReader(in),
		au:  aurora.NewAurora(false),
	}
}

func (u *TerminalUI) writeLine(line string) {
	fmt.Fprintln(u.out, line)
}

func (u *TerminalUI) Info(format string, args ...any) {
	u.writeLine(fmt.Sprintf(format, args...))
}

func (u *TerminalUI) Success(format string, args ...any) {
	u.writeLine(u.au.Green(fmt.Sprintf(format, args...)).String())
}

func (u *TerminalUI) Error(format string, args ...any) {
	u.writeLine(u.au.Red(fmt.Sprintf(format, args...)).String())
}

// Section prints
//
//	========== Result ==========
func (u *TerminalUI) Section(title string) {
	titled := " " + title + " "
	bars := sectionWidth - len(titled)
	if bars < 6 {
		bars = 6
	}
	left := bars / 2
	fmt.Fprintf(u.out, "\n%s%s%s\n\n", strings.Repeat("=", left), titled, strings.Repeat("=", bars-left))
}

func (u *TerminalUI) KeyValue(rows [][2]string) {
	maxLabel := 0
	for _, r := range rows {
		if len(r[0]) > maxLabel {
			maxLabel = len(r[0])
		}
	}
	for _, r := range rows {
		fmt.Fprintf(u.out, "%-*s  %s\n", maxLabel, r[0], r[1])
	}
}

// Toast draws a rounded box, red for errors and green for successes.
func (u *TerminalUI) Toast(success bool, title, description string) {
	if !u.interactive {
		u.writeLine(title + ": " + description)
		return
	}
	color := lipgloss.Color("9")
	if success {
		color = lipgloss.Color("10")
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color).
		Padding(0, 1)
	heading := lipgloss.NewStyle().Bold(true).Foreground(color).Render(title)
	u.writeLine(box.Render(heading + "\n" + description))
}

// Spinner prints msg once when the output is not a terminal.
func (u *TerminalUI) Spinner(msg string) func() {
	if !u.interactive {
		u.writeLine(msg)
		return func() {}
	}
	s := spinner.New(spinner.CharSets[14], 80*time.Millisecond, spinner.WithWriter(u.out))
	s.Suffix = " " + msg
	s.Start()
	return func() {
		s.Stop()
		fmt.Fprintf(u.out, "\n")
	}
}

func (u *TerminalUI) Ask(validate func(string) error) string {
	for {
		fmt.Fprint(u.out, promptPrefix)
		text, err := u.in.ReadString('\n')
		input := strings.TrimRight(text, "\r\n")
		if validate == nil {
			return input
		}
		verr := validate(input)
		if verr == nil {
			return input
		}
		u.Error("%s", verr.Error())
		if err != nil {
			// input is exhausted, nothing more will come
			return input
		}
	}
}

func (u *TerminalUI) Choose(prompt string, options []string) int {
	for i, opt := range options {
		u.Info("%d. %s", i+1, opt)
	}
	u.Info("%s [1-%d]", prompt, len(options))
	input := u.Ask(func(s string) error {
		idx, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil || idx < 1 || idx > len(options) {
			return fmt.Errorf("please enter a number between 1 and %d", len(options))
		}
		return nil
	})
	idx, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || idx < 1 || idx > len(options) {
		return -1
	}
	return idx - 1
}
