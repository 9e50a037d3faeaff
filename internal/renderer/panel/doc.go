// Package panel displays command output, such as pydoc text, in a
// named read-only panel.
//
// Two implementations exist:
//
//   - Writer prints the text to an io.Writer; used when stdout is not a
//     terminal or plain mode is configured.
//   - Terminal is a full-screen tcell pager. The text cannot be edited;
//     arrows, PgUp/PgDn, j/k, g/G scroll and q or Esc closes it.
//
// Every Show replaces the previous contents. A panel is created once
// and reused for later lookups under the same name.
//
// Panels are not safe for concurrent use; the application only touches
// them from its UI loop.
package panel
