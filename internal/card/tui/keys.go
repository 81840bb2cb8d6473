package tui

import "github.com/charmbracelet/bubbles/key"

// loadingKeyMap defines key bindings for the loading screen
type loadingKeyMap struct {
	Quit key.Binding
}

func newLoadingKeyMap() loadingKeyMap {
	return loadingKeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k loadingKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k loadingKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

// nameKeyMap defines key bindings for the name screen. Letters go to the
// text input, so quitting is esc only.
type nameKeyMap struct {
	Submit key.Binding
	Quit   key.Binding
}

func newNameKeyMap() nameKeyMap {
	return nameKeyMap{
		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "give rose")),
		Quit:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k nameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k nameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Submit, k.Quit}}
}

// choiceKeyMap defines key bindings for the choice screen
type choiceKeyMap struct {
	Left  key.Binding
	Right key.Binding
	Yes   key.Binding
	No    key.Binding
	Quit  key.Binding
}

func newChoiceKeyMap() choiceKeyMap {
	return choiceKeyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev style")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next style")),
		Yes:   key.NewBinding(key.WithKeys("enter", "y"), key.WithHelp("enter", "yes, I will!")),
		No:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		Quit:  key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k choiceKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Yes, k.No, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k choiceKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right}, {k.Yes, k.No, k.Quit}}
}

// resultKeyMap defines key bindings for the result screen
type resultKeyMap struct {
	Left    key.Binding
	Right   key.Binding
	Sparkle key.Binding
	Bloom   key.Binding
	Reset   key.Binding
	Quit    key.Binding
}

func newResultKeyMap() resultKeyMap {
	return resultKeyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev word")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next word")),
		Sparkle: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "sparkle")),
		Bloom:   key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bloom")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "another rose")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k resultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Sparkle, k.Bloom, k.Reset, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k resultKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Sparkle}, {k.Bloom, k.Reset, k.Quit}}
}
