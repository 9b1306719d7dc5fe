// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import "net/http"

// SecureHeaders sets the browser protections every console response carries.
// The console is an internal tool: nothing it serves should be framed,
// sniffed, or indexed.
func SecureHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()

		// Never MIME-sniff; the console declares its Content-Types.
		h.Set("X-Content-Type-Options", "nosniff")

		// Admin pages must not be embeddable from other origins.
		h.Set("X-Frame-Options", "SAMEORIGIN")

		// The legacy XSS filter does more harm than good.
		h.Set("X-XSS-Protection", "0")

		// Do not leak admin URLs to the platform or CDNs via Referer.
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")

		h.Set("Permissions-Policy", "interest-cohort=()")

		// An operator console has no business in a search index.
		h.Set("X-Robots-Tag", "noindex, nofollow")

		next.ServeHTTP(w, r)
	})
}
