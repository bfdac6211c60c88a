package ui

import (
	"fmt"
	"strconv"
	"strings"
)

// Entry records a single UI call.
type Entry struct {
	Method string
	Value  string
}

// RecordingUI implements UI for tests. Ask and Choose serve the scripted
// inputs in order and panic once they run out, so a wrong script fails loudly.
type RecordingUI struct {
	entries []Entry
	inputs  []string
	nextIdx int
}

func NewRecordingUI(scriptedInputs ...string) *RecordingUI {
	return &RecordingUI{inputs: scriptedInputs}
}

func (r *RecordingUI) record(method, value string) {
	r.entries = append(r.entries, Entry{Method: method, Value: value})
}

func (r *RecordingUI) nextInput(caller string) string {
	if r.nextIdx >= len(r.inputs) {
		panic(fmt.Sprintf("RecordingUI: no scripted input left for %s (consumed %d so far)", caller, r.nextIdx))
	}
	input := r.inputs[r.nextIdx]
	r.nextIdx++
	return input
}

func (r *RecordingUI) Info(format string, args ...any) {
	r.record("Info", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Success(format string, args ...any) {
	r.record("Success", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Error(format string, args ...any) {
	r.record("Error", fmt.Sprintf(format, args...))
}

func (r *RecordingUI) Section(title string) {
	r.record("Section", title)
}

func (r *RecordingUI) KeyValue(rows [][2]string) {
	for _, row := range rows {
		r.record("KeyValue", row[0]+" "+row[1])
	}
}

func (r *RecordingUI) Toast(success bool, title, description string) {
	method := "ToastError"
	if success {
		method = "ToastSuccess"
	}
	r.record(method, title+": "+description)
}

func (r *RecordingUI) Spinner(msg string) func() {
	r.record("Spinner", msg)
	return func() { r.record("SpinnerStop", msg) }
}

// Ask panics if the scripted input fails validation; there is no user to
// correct it.
func (r *RecordingUI) Ask(validate func(string) error) string {
	input := r.nextInput("Ask")
	r.record("Ask", input)
	if validate != nil {
		if err := validate(input); err != nil {
			panic(fmt.Sprintf("RecordingUI: scripted input %q failed validation in Ask: %s", input, err))
		}
	}
	return input
}

// Choose accepts a 1-based index or the option text (case-insensitive).
func (r *RecordingUI) Choose(prompt string, options []string) int {
	r.record("Choose", prompt)
	input := r.nextInput("Choose")
	if idx, err := strconv.Atoi(strings.TrimSpace(input)); err == nil && idx >= 1 && idx <= len(options) {
		return idx - 1
	}
	for i, opt := range options {
		if strings.EqualFold(input, opt) {
			return i
		}
	}
	panic(fmt.Sprintf("RecordingUI: scripted input %q does not match any option in Choose(%q, %v)", input, prompt, options))
}

// Entries returns all recorded calls in order.
func (r *RecordingUI) Entries() []Entry {
	return r.entries
}

// Values returns the values recorded for one method.
func (r *RecordingUI) Values(method string) []string {
	var out []string
	for _, e := range r.entries {
		if e.Method == method {
			out = append(out, e.Value)
		}
	}
	return out
}

// HasMessage reports whether any recorded value contains substr (case-insensitive).
func (r *RecordingUI) HasMessage(substr string) bool {
	lower := strings.ToLower(substr)
	for _, e := range r.entries {
		if strings.Contains(strings.ToLower(e.Value), lower) {
			return true
		}
	}
	return false
}
