package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Month    key.Binding
	Week     key.Binding
	Day      key.Binding
	Prev     key.Binding
	Next     key.Binding
	PrevDay  key.Binding
	NextDay  key.Binding
	Today    key.Binding
	Open     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Month:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "month")),
		Week:    key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "week")),
		Day:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "day")),
		Prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev")),
		Next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		PrevDay: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "highlight prev day")),
		NextDay: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "highlight next day")),
		Today:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open day")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Month, k.Week, k.Day, k.Prev, k.Next, k.Today, k.Open, k.Quit}
}
