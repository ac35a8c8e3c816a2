// Package menu holds the arena's menu pages as plain data: which items each
// page shows, which option is selected, and what choosing it does. Front ends
// render a Graph and feed it navigation keys; nothing here draws.
package menu

// Kind tags the variant an Item holds.
type Kind int

const (
	KindLabel Kind = iota
	KindSeparator
	KindOption
)

// Style picks how a label is drawn.
type Style int

const (
	StyleTitle Style = iota
	StyleHeading
	StyleBlue
	StyleYellow
	StylePrompt
)

// Item is one line on a page. Labels and separators are decoration; only
// options can be selected.
type Item struct {
	Kind  Kind
	Text  string
	Style Style // labels only

	// Options only.
	Action Action
	Target PageID // page to show after choosing; NoPage stays put
	Group  string // radio group; empty for plain options
	Player int    // player index for steering groups and key-binding edits
	Arg    int    // action argument: mode, speed tier, steering mode or control
}

// Label returns a decorative text item.
func Label(text string, style Style) Item {
	return Item{Kind: KindLabel, Text: text, Style: style}
}

// Separator returns a horizontal rule.
func Separator() Item {
	return Item{Kind: KindSeparator}
}

// Option returns a selectable item.
func Option(text string, action Action, target PageID) Item {
	return Item{Kind: KindOption, Text: text, Action: action, Target: target}
}

// Selectable reports whether the item can hold the cursor.
func (it Item) Selectable() bool { return it.Kind == KindOption }
