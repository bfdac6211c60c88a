package ui

// UI is everything the terminal form needs from a console.
//
// Production code uses TerminalUI (stdout/stdin); tests use RecordingUI,
// which captures output and serves scripted inputs.
type UI interface {
	// Info writes a neutral status line.
	Info(format string, args ...any)
	// Success writes a positive outcome in green.
	Success(format string, args ...any)
	// Error writes a failure in red. It does not exit.
	Error(format string, args ...any)

	// Section writes a separator centred around title.
	Section(title string)

	// KeyValue renders an aligned two-column block.
	KeyValue(rows [][2]string)

	// Toast renders a notification box: a title line and a description.
	Toast(success bool, title, description string)

	// Spinner starts a spinner and returns the function that stops it.
	Spinner(msg string) func()

	// Ask prints a "> " prompt and reads one line. It loops until validate
	// returns nil; a nil validate accepts anything.
	Ask(validate func(string) error) string

	// Choose prints numbered options and returns the 0-based pick.
	Choose(prompt string, options []string) int
}
