package tags

// Listener names registered per tag
const (
	listenerTagClose   = "tags.close.click"
	listenerTagKeyDown = "tags.tag.keydown"
)

// Label is how a tag reads on screen; the close control comes first
func Label(text string) string {
	return "x " + text
}

// Gap is the horizontal space between two tags
const Gap = 1
