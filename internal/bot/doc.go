// Package bot implements the Telegram front end: command and button
// handlers, the per-user pending-request flow, and the delivery pipeline
// that uploads finished artifacts and manages status-message transitions.
package bot
