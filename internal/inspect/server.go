// Package inspect serves a computed LALR(1) automaton's states as JSON and
// the computed table as rendered text for interactive inspection, an
// optional companion to the lalrgen CLI (its --serve flag), grounded
// on server/api's chi routing conventions in the teacher.
package inspect

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/dekarrin/lalrgen/lalr"
	"github.com/dekarrin/lalrgen/parse"
	"github.com/go-chi/chi/v5"
)

// Server exposes a computed merged collection and its synthesized table
// over HTTP for interactive debugging. It never mutates either.
type Server struct {
	Collection *lalr.Collection
	Table      *parse.Table
}

// Router builds the chi router backing Server's endpoints:
//
//	GET /states             -> summary of every merged state
//	GET /states/{id}        -> one state's items, transitions and expected set
//	GET /table              -> the full rendered ACTION/GOTO table (text)
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Get("/states", s.listStates)
	r.Get("/states/{id}", s.getState)
	r.Get("/table", s.getTable)
	return r
}

type stateSummary struct {
	ID          int            `json:"id"`
	ItemCount   int            `json:"item_count"`
	Transitions map[string]int `json:"transitions"`
}

func (s *Server) listStates(w http.ResponseWriter, r *http.Request) {
	out := make([]stateSummary, 0, len(s.Collection.States))
	for _, st := range s.Collection.States {
		out = append(out, stateSummary{
			ID:          st.ID,
			ItemCount:   len(st.Items),
			Transitions: s.Collection.Transitions(st.ID),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

type stateDetail struct {
	ID                int            `json:"id"`
	Items             []string       `json:"items"`
	Transitions       map[string]int `json:"transitions"`
	ExpectedTerminals []string       `json:"expected_terminals"`
}

func (s *Server) getState(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id < 0 || id >= len(s.Collection.States) {
		http.Error(w, "unknown state id", http.StatusNotFound)
		return
	}

	g := s.Collection.Grammar
	st := s.Collection.States[id]
	items := make([]string, 0, len(st.Items))
	for it := range st.Items {
		items = append(items, it.String(g))
	}

	writeJSON(w, http.StatusOK, stateDetail{
		ID:                id,
		Items:             items,
		Transitions:       s.Collection.Transitions(id),
		ExpectedTerminals: s.Table.ExpectedTerminals(id),
	})
}

func (s *Server) getTable(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(s.Table.String()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
