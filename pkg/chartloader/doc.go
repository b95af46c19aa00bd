// Package chartloader fetches a chart definition over HTTP, revives encoded
// dates, and hands successful payloads to a renderer. Failures reach the user
// through a single notification and the caller through a chart.Result.
package chartloader
