package analysis

import (
	"sort"
	"strings"
)

// Utilities whose names alone identify the CSS property they set. Families
// whose prefix is shared by several properties (text-, bg-, border-,
// rounded-, font-, shadow-) only appear through exact names.
var exactGroups = map[string][]string{
	"display": {
		"block", "inline-block", "inline", "flex", "inline-flex", "grid", "inline-grid",
		"table", "inline-table", "table-caption", "table-cell", "table-column",
		"table-column-group", "table-footer-group", "table-header-group",
		"table-row-group", "table-row", "flow-root", "contents", "list-item", "hidden",
	},
	"position":        {"static", "fixed", "absolute", "relative", "sticky"},
	"visibility":      {"visible", "invisible", "collapse"},
	"text-align":      {"text-left", "text-center", "text-right", "text-justify", "text-start", "text-end"},
	"font-style":      {"italic", "not-italic"},
	"text-transform":  {"uppercase", "lowercase", "capitalize", "normal-case"},
	"text-decoration": {"underline", "overline", "line-through", "no-underline"},
	"font-size": {
		"text-xs", "text-sm", "text-base", "text-lg", "text-xl", "text-2xl", "text-3xl",
		"text-4xl", "text-5xl", "text-6xl", "text-7xl", "text-8xl", "text-9xl",
	},
	"font-weight": {
		"font-thin", "font-extralight", "font-light", "font-normal", "font-medium",
		"font-semibold", "font-bold", "font-extrabold", "font-black",
	},
	"font-family":     {"font-sans", "font-serif", "font-mono"},
	"flex-direction":  {"flex-row", "flex-row-reverse", "flex-col", "flex-col-reverse"},
	"flex-wrap":       {"flex-wrap", "flex-wrap-reverse", "flex-nowrap"},
	"flex":            {"flex-1", "flex-auto", "flex-initial", "flex-none"},
	"flex-grow":       {"grow", "grow-0"},
	"flex-shrink":     {"shrink", "shrink-0"},
	"overflow":        {"overflow-auto", "overflow-hidden", "overflow-clip", "overflow-visible", "overflow-scroll"},
	"word-break":      {"break-normal", "break-words", "break-all", "break-keep"},
	"object-fit":      {"object-contain", "object-cover", "object-fill", "object-none", "object-scale-down"},
	"box-sizing":      {"box-border", "box-content"},
	"table-layout":    {"table-auto", "table-fixed"},
	"isolation":       {"isolate", "isolation-auto"},
	"list-style-type": {"list-none", "list-disc", "list-decimal"},
	"align-content": {
		"content-normal", "content-center", "content-start", "content-end", "content-between",
		"content-around", "content-evenly", "content-baseline", "content-stretch",
	},
	"transition-property": {
		"transition", "transition-none", "transition-all", "transition-colors",
		"transition-opacity", "transition-shadow", "transition-transform",
	},
}

// Utility families identified by prefix. The part after the prefix is the
// value: p-4, p-px, p-[3px].
var prefixGroups = map[string]string{
	"p-": "padding", "px-": "padding-inline", "py-": "padding-block",
	"pt-": "padding-top", "pr-": "padding-right", "pb-": "padding-bottom", "pl-": "padding-left",
	"ps-": "padding-inline-start", "pe-": "padding-inline-end",

	"m-": "margin", "mx-": "margin-inline", "my-": "margin-block",
	"mt-": "margin-top", "mr-": "margin-right", "mb-": "margin-bottom", "ml-": "margin-left",
	"ms-": "margin-inline-start", "me-": "margin-inline-end",

	"w-": "width", "min-w-": "min-width", "max-w-": "max-width",
	"h-": "height", "min-h-": "min-height", "max-h-": "max-height",
	"size-": "size",

	"inset-": "inset", "inset-x-": "inset-inline", "inset-y-": "inset-block",
	"top-": "top", "right-": "right", "bottom-": "bottom", "left-": "left",
	"start-": "inset-inline-start", "end-": "inset-inline-end",

	"z-":       "z-index",
	"order-":   "order",
	"opacity-": "opacity",
	"basis-":   "flex-basis",
	"aspect-":  "aspect-ratio",
	"columns-": "columns",

	"gap-": "gap", "gap-x-": "column-gap", "gap-y-": "row-gap",
	"space-x-": "space-x", "space-y-": "space-y",

	"grid-cols-": "grid-template-columns", "grid-rows-": "grid-template-rows",
	"col-span-": "grid-column", "row-span-": "grid-row",
	"col-start-": "grid-column-start", "col-end-": "grid-column-end",
	"row-start-": "grid-row-start", "row-end-": "grid-row-end",
	"grid-flow-": "grid-auto-flow", "auto-cols-": "grid-auto-columns", "auto-rows-": "grid-auto-rows",

	"justify-": "justify-content", "justify-items-": "justify-items", "justify-self-": "justify-self",
	"items-": "align-items", "self-": "align-self",
	"place-content-": "place-content", "place-items-": "place-items", "place-self-": "place-self",

	"leading-": "line-height", "tracking-": "letter-spacing",
	"line-clamp-": "line-clamp", "indent-": "text-indent",
	"align-":      "vertical-align", "whitespace-": "white-space",

	"overflow-x-": "overflow-x", "overflow-y-": "overflow-y",
	"break-before-": "break-before", "break-after-": "break-after", "break-inside-": "break-inside",

	"cursor-": "cursor", "select-": "user-select", "pointer-events-": "pointer-events",
	"float-": "float", "clear-": "clear",

	"duration-": "transition-duration", "delay-": "transition-delay", "ease-": "transition-timing-function",
	"origin-": "transform-origin", "rotate-": "rotate",
	"will-change-": "will-change",
}

var (
	exactIndex     map[string]string
	sortedPrefixes []string
)

func init() {
	exactIndex = make(map[string]string)
	for property, names := range exactGroups {
		for _, name := range names {
			exactIndex[name] = property
		}
	}

	sortedPrefixes = make([]string, 0, len(prefixGroups))
	for prefix := range prefixGroups {
		sortedPrefixes = append(sortedPrefixes, prefix)
	}
	// Longest first so gap-x- wins over gap-.
	sort.Slice(sortedPrefixes, func(i, j int) bool {
		if len(sortedPrefixes[i]) != len(sortedPrefixes[j]) {
			return len(sortedPrefixes[i]) > len(sortedPrefixes[j])
		}
		return sortedPrefixes[i] < sortedPrefixes[j]
	})
}

// PropertyOf returns the CSS property a base utility sets. The utility must
// already be stripped of its variant chain and modifiers.
func PropertyOf(utility string) (string, bool) {
	if property, ok := exactIndex[utility]; ok {
		return property, true
	}
	for _, prefix := range sortedPrefixes {
		if len(utility) > len(prefix) && strings.HasPrefix(utility, prefix) {
			return prefixGroups[prefix], true
		}
	}
	return "", false
}

// SplitVariants splits "sm:hover:p-4" into the variant chain "sm:hover:"
// and the utility "p-4". Colons inside brackets belong to arbitrary
// values and selectors, not to the chain.
func SplitVariants(class string) (chain, utility string) {
	depth := 0
	last := -1
	for i := 0; i < len(class); i++ {
		switch class[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case ':':
			if depth == 0 {
				last = i
			}
		}
	}
	return class[:last+1], class[last+1:]
}

// BaseUtility strips the important marker and the negative sign, leaving
// the name the conflict table is keyed by.
func BaseUtility(utility string) string {
	utility = strings.TrimPrefix(utility, "!")
	utility = strings.TrimSuffix(utility, "!")
	return strings.TrimPrefix(utility, "-")
}
