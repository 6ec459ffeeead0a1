// Package report renders a model.Report.
//
// Three writers are provided:
//   - TextWriter: the fixed section layout consumed by existing tooling
//   - MarkdownWriter: tables, a length pie chart and HVT alerts for sharing
//   - JSONWriter: structured output for tool integration
//
// Writers only format numbers; every value they print is already computed
// by the aggregate package. WriteFile renders a report in memory and then
// replaces the destination atomically, so a failed run never leaves a
// partial report behind.
package report
