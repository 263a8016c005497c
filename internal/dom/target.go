package dom

import "fmt"

// Kind identifies an element of a dropdown's element tree
type Kind int

const (
	KindNone Kind = iota
	KindDocument
	KindOutside // anything on the page that is not part of the dropdown
	KindWrapper
	KindRoot
	KindDisplay
	KindTagList
	KindTag
	KindTagClose
	KindSearch
	KindPanel
	KindOption
	KindNative
)

var kindNames = map[Kind]string{
	KindNone:     "none",
	KindDocument: "document",
	KindOutside:  "outside",
	KindWrapper:  "wrapper",
	KindRoot:     "root",
	KindDisplay:  "display",
	KindTagList:  "taglist",
	KindTag:      "tag",
	KindTagClose: "tagclose",
	KindSearch:   "search",
	KindPanel:    "panel",
	KindOption:   "option",
	KindNative:   "native",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Target addresses one element. Index is the option index for options,
// tags and tag close controls and is ignored for everything else.
type Target struct {
	Kind  Kind
	Index int
}

func (t Target) String() string {
	switch t.Kind {
	case KindOption, KindTag, KindTagClose:
		return fmt.Sprintf("%s[%d]", t.Kind, t.Index)
	default:
		return t.Kind.String()
	}
}

// Element constructors
func None() Target          { return Target{Kind: KindNone} }
func Document() Target      { return Target{Kind: KindDocument} }
func Outside() Target       { return Target{Kind: KindOutside} }
func Wrapper() Target       { return Target{Kind: KindWrapper} }
func Root() Target          { return Target{Kind: KindRoot} }
func Display() Target       { return Target{Kind: KindDisplay} }
func TagList() Target       { return Target{Kind: KindTagList} }
func Search() Target        { return Target{Kind: KindSearch} }
func Panel() Target         { return Target{Kind: KindPanel} }
func Native() Target        { return Target{Kind: KindNative} }
func Option(i int) Target   { return Target{Kind: KindOption, Index: i} }
func Tag(i int) Target      { return Target{Kind: KindTag, Index: i} }
func TagClose(i int) Target { return Target{Kind: KindTagClose, Index: i} }

// Parent returns the element that events bubble to from t
func (t Target) Parent() (Target, bool) {
	switch t.Kind {
	case KindOption:
		return Panel(), true
	case KindTagClose:
		return Tag(t.Index), true
	case KindTag:
		return TagList(), true
	case KindPanel, KindDisplay, KindTagList, KindSearch:
		return Root(), true
	case KindRoot, KindNative:
		return Wrapper(), true
	case KindWrapper, KindOutside:
		return Document(), true
	default:
		return None(), false
	}
}

// Path returns t followed by all of its ancestors up to the document
func (t Target) Path() []Target {
	path := []Target{t}
	for cur := t; ; {
		parent, ok := cur.Parent()
		if !ok {
			return path
		}
		path = append(path, parent)
		cur = parent
	}
}

// Within reports whether t is ancestor itself or sits below it
func (t Target) Within(ancestor Target) bool {
	for _, node := range t.Path() {
		if node == ancestor {
			return true
		}
	}
	return false
}
