package middleware

import "net/http"

// Chain применяет middleware к handler в порядке объявления.
// Первый middleware внешний: Chain(h, logging, cors) == logging(cors(h)).
func Chain(h http.Handler, middlewares ...func(http.Handler) http.Handler) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
