// Package output renders command results.
//
// Results can be printed as styled text, JSON or YAML. Text output goes
// through Go templates (templates/*.tmpl) whose "style" function applies
// the lipgloss styles of the styles package; styling is dropped when the
// writer is not a color capable terminal.
package output
