// Package progress defines the hook interface through which the fetch engine
// reports download progress, plus the default logging sink and a throttling
// wrapper for rate-limited consumers.
package progress
