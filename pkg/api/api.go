// Package api exposes a Tagger as a JSON REST API.
//
// Endpoints:
//
//	GET  /api/pos?word=<word>
//	POST /api/pos     body: {"words":["...", ...]}
//	GET  /api/stats
package api

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/kittclouds/postag/pkg/lexicon"
	"github.com/kittclouds/postag/pkg/tagger"
)

const (
	// maxWords bounds a single batch request.
	maxWords = 10000
	// maxBodyBytes bounds the batch request body.
	maxBodyBytes = 1 << 20
)

// ---- JSON response types ------------------------------------------------

type posResponse struct {
	Word  string      `json:"word"`
	Tag   lexicon.Tag `json:"tag"`
	Found bool        `json:"found"`
}

type batchResponse struct {
	Results []posResponse `json:"results"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// ---- helpers ------------------------------------------------------------

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[postag] encode error: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func toResponse(word string, tag lexicon.Tag) posResponse {
	return posResponse{Word: word, Tag: tag, Found: !tag.IsEmpty()}
}

// ---- handlers -----------------------------------------------------------

func handleGetPos(t *tagger.Tagger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := r.URL.Query().Get("word")
		if word == "" {
			writeError(w, http.StatusBadRequest, "missing 'word' query parameter")
			return
		}
		res := toResponse(word, t.GetPos(word))
		status := http.StatusOK
		if !res.Found {
			status = http.StatusNotFound
		}
		writeJSON(w, status, res)
	}
}

func handleBatch(t *tagger.Tagger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
		var body struct {
			Words []string `json:"words"`
		}
		err := json.NewDecoder(r.Body).Decode(&body)
		if tooLarge := new(http.MaxBytesError); errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		if err != nil || len(body.Words) == 0 {
			writeError(w, http.StatusBadRequest, "body must be JSON with a non-empty 'words' array")
			return
		}
		if len(body.Words) > maxWords {
			writeError(w, http.StatusRequestEntityTooLarge, "too many words")
			return
		}

		tags := t.GetPosAll(body.Words)
		out := make([]posResponse, len(tags))
		for i, tag := range tags {
			out[i] = toResponse(body.Words[i], tag)
		}
		writeJSON(w, http.StatusOK, batchResponse{Results: out})
	}
}

func handleStats(t *tagger.Tagger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, t.Stats())
	}
}

// ---- router -------------------------------------------------------------

// NewRouter registers the API routes for t. Requests with the wrong
// method get 405 from the router.
func NewRouter(t *tagger.Tagger) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/pos", handleGetPos(t)).Methods(http.MethodGet)
	api.HandleFunc("/pos", handleBatch(t)).Methods(http.MethodPost)
	api.HandleFunc("/stats", handleStats(t)).Methods(http.MethodGet)
	return r
}

// Handler returns the router wrapped with CORS handling. An empty
// origins list allows every origin.
func Handler(t *tagger.Tagger, origins ...string) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(NewRouter(t))
}
