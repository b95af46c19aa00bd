// Package chart holds the data model shared by the chart loading pipeline: the
// request describing where a chart definition lives, the decoded payload handed
// to renderers, the date-revival rule applied while decoding, and the result and
// error types callers inspect once a load completes. The HTTP implementation of
// the Fetcher contract lives under internal/chart to keep transport details out
// of the public surface.
package chart
