// Package app wires the referral dashboard together: configuration,
// logging, the report and health services, the chi router with its
// middleware chain, and the HTTP server lifecycle including graceful
// shutdown.
package app
