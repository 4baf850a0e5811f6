// Package main provides the entry point of the whyideas service.
// It serves the single page Why Ideas website with a persisted light/dark
// theme, stores contact submissions through a JSON API backed by gorm and
// relays the page contact form to a transactional email service.
package main
