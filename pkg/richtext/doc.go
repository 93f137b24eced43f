// Package richtext holds sanitized markup for localized content.
//
// A Node is an opaque leaf: the merge engine never descends into it, so a
// localized rich text block replaces the default block whole instead of
// mixing fragments of two languages.
//
// # Usage
//
//	n, err := richtext.Markdown("Read the **terms** before [signing](/sign).")
//	if err != nil {
//		return err
//	}
//	n.HTML()      // <p>Read the <strong>terms</strong> before <a href="/sign" rel="nofollow">signing</a>.</p>
//	n.PlainText() // Read the terms before signing.
//
// Nodes implement templ.Component and can be rendered directly:
//
//	@node
//
// HTML sanitizes raw markup with the same policy Markdown output goes
// through, and Text strips all markup.
package richtext
