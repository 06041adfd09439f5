package httpapi

import "net/http"

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/status", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) { handleStatus(d, w, r) },
	}))

	mux.HandleFunc("/search", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  func(w http.ResponseWriter, r *http.Request) { handleSearch(d, w, r) },
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) { handleSearch(d, w, r) },
	}))
	mux.HandleFunc("/search.csv", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) { handleExportCSV(d, w, r) },
	}))

	mux.HandleFunc("/prospects/saved", methodMux(map[string]http.HandlerFunc{
		http.MethodGet:  func(w http.ResponseWriter, r *http.Request) { handleListSaved(d, w, r) },
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) { handleSaveProspect(d, w, r) },
	}))
	mux.HandleFunc("/prospects/saved/", methodMux(map[string]http.HandlerFunc{
		http.MethodDelete: func(w http.ResponseWriter, r *http.Request) { handleDeleteSaved(d, w, r) },
	}))

	mux.HandleFunc("/templates", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) { handleListTemplates(d, w, r) },
	}))

	mux.HandleFunc("/config", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) { handleGetConfig(d, w, r) },
		http.MethodPut: func(w http.ResponseWriter, r *http.Request) { handlePutConfig(d, w, r) },
	}))
	mux.HandleFunc("/config/path", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: func(w http.ResponseWriter, r *http.Request) { handleConfigPath(d, w, r) },
	}))

	mux.HandleFunc("/secrets/key", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) { handleSetKey(d, w, r) },
	}))
	mux.HandleFunc("/secrets/imap", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) { handleSetIMAPPassword(d, w, r) },
	}))

	mux.HandleFunc("/tasks/warm", methodMux(map[string]http.HandlerFunc{
		http.MethodPost: func(w http.ResponseWriter, r *http.Request) { handleWarm(d, w, r) },
	}))

	mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) { handleEvents(d, w, r) })

	return mux
}
