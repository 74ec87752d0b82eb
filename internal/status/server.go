package status

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"

	"IrCar/internal/model"
)

var upgrader = websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}

// Server serves the receiver's status over HTTP and pushes live updates
// to websocket clients. Publish and Record are safe to call from the
// control loop goroutine while handlers run on the HTTP goroutines.
type Server struct {
	Addr    string
	journal *Journal

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
	last    model.Status
	hasLast bool

	server *http.Server
}

// NewServer constructs a Server listening on addr. journal may be nil
// when event persistence is disabled.
func NewServer(addr string, journal *Journal) *Server {
	return &Server{Addr: addr, journal: journal, clients: map[*websocket.Conn]bool{}}
}

// Start launches the HTTP server. This call blocks until the server
// stops or fails.
func (s *Server) Start() {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", s.handleStatus)
	mux.HandleFunc("/api/events", s.handleEvents)
	mux.HandleFunc("/ws", s.handleWS)
	s.server = &http.Server{Addr: s.Addr, Handler: mux}
	log.Printf("status: listening on %s", s.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Printf("status: server err: %v", err)
	}
}

// Stop shuts down the HTTP server and the journal.
func (s *Server) Stop() {
	if s.server != nil {
		_ = s.server.Close()
	}
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			log.Printf("status: close journal err: %v", err)
		}
	}
}

// Publish stores the latest snapshot and broadcasts it to websocket
// clients.
func (s *Server) Publish(st model.Status) {
	b, err := json.Marshal(st)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.last = st
	s.hasLast = true
	for c := range s.clients {
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			delete(s.clients, c)
			_ = c.Close()
		}
	}
	s.mu.Unlock()
}

// Record journals one edge event and forwards it to websocket clients.
func (s *Server) Record(e model.Event) {
	if s.journal != nil {
		if err := s.journal.Append(e); err != nil {
			log.Printf("status: journal append err: %v", err)
		}
	}
	b, err := json.Marshal(e)
	if err != nil {
		return
	}
	s.mu.Lock()
	for c := range s.clients {
		if err := c.WriteMessage(websocket.TextMessage, b); err != nil {
			delete(s.clients, c)
			_ = c.Close()
		}
	}
	s.mu.Unlock()
}

// handleStatus returns the latest snapshot, or 404 before the first
// publish.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	st, ok := s.last, s.hasLast
	s.mu.Unlock()
	if !ok {
		http.Error(w, "no status yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(st)
}

// handleEvents returns recent journal entries, newest first. ?n= caps
// the count (default 50).
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	if s.journal == nil {
		http.Error(w, "journal disabled", http.StatusNotFound)
		return
	}
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	events, err := s.journal.Recent(n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []model.Event{}
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

// handleWS upgrades to websocket and registers the client for
// broadcasts. The read loop exists only to notice disconnects.
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	go func() {
		defer func() {
			s.mu.Lock()
			delete(s.clients, conn)
			s.mu.Unlock()
			_ = conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
	}()
}
