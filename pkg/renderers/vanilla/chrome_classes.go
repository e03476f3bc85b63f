package vanilla

// ChromeClass is a semantic CSS class applied to form chrome.
type ChromeClass string

const (
	ClassForm     ChromeClass = "ssiform-form"
	ClassHeader   ChromeClass = "ssiform-header"
	ClassField    ChromeClass = "ssiform-field"
	ClassMessages ChromeClass = "ssiform-messages"
	ClassErrors   ChromeClass = "ssiform-errors"
	ClassActions  ChromeClass = "ssiform-actions"
	ClassHelp     ChromeClass = "ssiform-help"
)

func (c ChromeClass) String() string { return string(c) }
