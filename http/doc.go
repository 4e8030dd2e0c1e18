// Package http assembles the quell static layer into a servable HTTP stack:
// a chi router with health and fallthrough routes, optional CORS handling
// for non-static requests, and request logging.
package http
