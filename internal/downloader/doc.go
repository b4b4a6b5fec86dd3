// Package downloader implements the download orchestration core: the fetch
// engine abstraction backed by yt-dlp, the format-selection profiles, the
// three-step artifact path resolution, the post-fetch size ceiling check,
// and the mapping of engine error text onto a stable error taxonomy.
package downloader
