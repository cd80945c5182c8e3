package rest

import (
	"net/http"
)

// NewRouter serves the static client bundle and a health endpoint. The
// websocket endpoint is mounted on the same mux by the application.
func NewRouter(staticDir string) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", pingHandler)
	mux.Handle("/", http.FileServer(http.Dir(staticDir)))

	return mux
}

func pingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
