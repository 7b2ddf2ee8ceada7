// Package clipboard writes the saved screenshot path to the system
// clipboard so it can be pasted straight into the assistant prompt.
package clipboard

// CopyText places the given text on the clipboard.
func CopyText(text string) error {
	return copyText(text)
}
