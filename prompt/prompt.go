// Package prompt composes the final instruction text sent to a model.
//
// Composition is pure template selection: the boolean shape of the request
// (reference present, mask present, colour vs depth mode) picks one of a
// fixed set of bodies and the user's literal text is appended verbatim.
// Same inputs always produce byte-identical output.
package prompt

import "strings"

// FinalizeSentinel is the distinguished edit prompt value that selects the
// composite-finalizing template instead of a regular edit template.
const FinalizeSentinel = "[FINALIZE_COMPOSITE]"

// Generate builds the instruction text for a generate call.
func Generate(userText string, hasReference, colorMode bool) string {
	var base string
	switch {
	case colorMode && hasReference:
		base = generateColorWithReference
	case colorMode:
		base = generateColor
	case hasReference:
		base = generateDepthWithReference
	default:
		base = generateDepth
	}
	return appendUserText(base, userText)
}

// Edit builds the instruction text for an edit call. Passing the
// FinalizeSentinel as userText selects the finalize template and appends
// nothing.
func Edit(userText string, hasMask, hasReference bool) string {
	if strings.TrimSpace(userText) == FinalizeSentinel {
		return editFinalize
	}

	var base string
	switch {
	case hasMask && hasReference:
		base = editWithMaskAndReference
	case hasMask:
		base = editWithMask
	case hasReference:
		base = editWithReference
	default:
		base = editPlain
	}
	return appendUserText(base, userText)
}

// appendUserText attaches the user's literal text after the template body.
// The text is never truncated or rewritten.
func appendUserText(base, userText string) string {
	trimmed := strings.TrimSpace(userText)
	if trimmed == "" {
		return base
	}
	return base + "\n\nUser instructions: " + trimmed
}
