package platform

// Package platform contains OS/platform integration glue: filesystem
// helpers, Apple driver detection, and OS open/reveal.
