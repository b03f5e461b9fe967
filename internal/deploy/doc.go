// Package deploy dispatches staging operations and maps their failures to
// process exit statuses and user-facing messages.
package deploy
