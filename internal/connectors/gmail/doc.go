// Package gmail wraps the Gmail API behind a typed client: messages,
// threads, labels, drafts, filters, sending (with RFC 2822 assembly),
// bulk label/trash/delete operations, and mbox/eml export.
package gmail
