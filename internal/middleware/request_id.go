package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestIDHeader es el header que chimw.RequestID lee del request entrante.
var RequestIDHeader = chimw.RequestIDHeader

// EchoRequestID devuelve en la respuesta el id que dejó chimw.RequestID.
// Tiene que ir después de chimw.RequestID en la cadena.
func EchoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := chimw.GetReqID(r.Context()); id != "" {
			w.Header().Set(RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}
