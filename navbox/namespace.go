package navbox

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// PageLister lists the pages directly contained in a namespace.
// A namespace that does not exist has no pages and is not an error.
type PageLister interface {
	ListPages(ctx context.Context, namespace string) ([]string, error)
}

// PageContext describes the page being rendered.
type PageContext interface {
	Namespace() string
}

// Parameters of the namespace automation
const (
	paramNamespace      = "+n"
	paramTitle          = "+t"
	paramNamespaceTitle = "+nt"
)

// NamespaceExpander resolves '!ns' directives into link lists.
type NamespaceExpander struct {
	Lister PageLister
	Page   PageContext
}

// Listing is the result of expanding a namespace.
type Listing struct {
	Namespace string
	Title     string
	Links     LinkList
}

// Expand lists the namespace selected by the arguments of a '!ns' directive.
// It always returns a Listing. Problems with the arguments or with the lister are
// reported in the second return value and never stop the expansion.
func (e *NamespaceExpander) Expand(ctx context.Context, args []string) (*Listing, []string) {
	var problems []string
	var namespace, title string
	var hasNamespace, hasTitle bool

	for i := 0; i < len(args); i++ {
		param := args[i]

		switch param {
		case paramNamespace, paramTitle, paramNamespaceTitle:
		default:
			problems = append(problems, fmt.Sprintf("unknown parameter %q for !ns", param))
			continue
		}

		if i+1 >= len(args) {
			problems = append(problems, fmt.Sprintf("missing value for %s", param))
			continue
		}
		i++
		value := args[i]

		switch param {
		case paramNamespace:
			namespace, hasNamespace = value, true
		case paramTitle:
			title, hasTitle = value, true
		case paramNamespaceTitle:
			// The value looks like [[namespace|title]]
			inner := strings.TrimSuffix(strings.TrimPrefix(value, linkOpen), "]]")
			ns, t, found := strings.Cut(inner, "|")
			namespace, hasNamespace = ns, true
			if found {
				title, hasTitle = t, true
			}
		}
	}

	if !hasNamespace && e.Page != nil {
		namespace = e.Page.Namespace()
	}
	namespace = cleanNamespace(namespace)

	if !hasTitle {
		title = lastSegment(namespace)
	}

	listing := &Listing{
		Namespace: namespace,
		Title:     strings.TrimSpace(title),
		Links:     LinkList{},
	}

	if e.Lister == nil {
		return listing, problems
	}

	pages, err := e.Lister.ListPages(ctx, namespace)
	if err != nil {
		problems = append(problems, fmt.Sprintf("listing namespace %q: %v", namespace, err))
		return listing, problems
	}

	// The lister does not guarantee any order
	pages = append([]string(nil), pages...)
	sort.Strings(pages)

	for _, page := range pages {
		listing.Links = append(listing.Links, "[["+namespace+":"+page+"]]")
	}

	return listing, problems
}

// cleanNamespace removes blanks and the leading or trailing separators of a namespace.
func cleanNamespace(ns string) string {
	return strings.Trim(strings.TrimSpace(ns), ":")
}

// lastSegment returns the final component of a namespace path like 'wiki:projects'.
func lastSegment(ns string) string {
	return ns[strings.LastIndexByte(ns, ':')+1:]
}
