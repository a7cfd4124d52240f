// Package connector adapts external services: document storage on local disk or
// Amazon S3, and outbound mail through Amazon SES or the application log.
package connector
