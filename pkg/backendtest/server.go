// Package backendtest runs an in-process stand-in for the classifier
// backend. It answers with canned payloads and records what it was sent;
// it does not classify anything.
package backendtest

import (
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

type (
	//Server is a fake backend listening on a local port
	Server struct {
		*httptest.Server

		mu       sync.Mutex
		predict  cannedResponse
		batch    cannedResponse
		health   cannedResponse
		model    cannedResponse
		predicts [][]byte
		batches  [][]byte
		accepted int

		upgrader  websocket.Upgrader
		live      chan []byte
		drop      chan struct{}
		connected chan struct{}
		done      chan struct{}
		closeOnce sync.Once
	}

	cannedResponse struct {
		status int
		body   string
	}
)

//New starts a fake backend answering every endpoint with a benign default
func New() *Server {
	s := &Server{
		predict: cannedResponse{http.StatusOK, `{"prediction":"Normal","is_intrusion":false,"confidence":98.5,"attack_probability":1.5,"normal_probability":98.5}`},
		batch:   cannedResponse{http.StatusOK, `{"results":[],"total_count":0,"intrusion_count":0,"normal_count":0}`},
		health:  cannedResponse{http.StatusOK, `{"status":"healthy","model_loaded":true}`},
		model:   cannedResponse{http.StatusOK, `{"model_type":"XGBoost Classifier","features_count":41,"is_loaded":true,"classes":["Normal","Attack"]}`},
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		live:      make(chan []byte, 256),
		drop:      make(chan struct{}),
		connected: make(chan struct{}, 16),
		done:      make(chan struct{}),
	}

	r := mux.NewRouter()
	r.HandleFunc("/predict", s.handlePredict).Methods("POST")
	r.HandleFunc("/predict/batch", s.handleBatch).Methods("POST")
	r.HandleFunc("/health", s.canned(&s.health)).Methods("GET")
	r.HandleFunc("/model/info", s.canned(&s.model)).Methods("GET")
	r.HandleFunc("/live", s.handleLive)

	s.Server = httptest.NewServer(r)
	return s
}

//Close stops the live handlers and shuts the server down
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.Server.Close()
}

//SetPredictResponse changes the answer to POST /predict
func (s *Server) SetPredictResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.predict = cannedResponse{status, body}
}

//SetBatchResponse changes the answer to POST /predict/batch
func (s *Server) SetBatchResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batch = cannedResponse{status, body}
}

//SetHealthResponse changes the answer to GET /health
func (s *Server) SetHealthResponse(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.health = cannedResponse{status, body}
}

//PredictBodies returns every body received on /predict
func (s *Server) PredictBodies() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.predicts...)
}

//BatchBodies returns every body received on /predict/batch
func (s *Server) BatchBodies() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([][]byte(nil), s.batches...)
}

//LiveConnections returns how many live connections were accepted
func (s *Server) LiveConnections() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accepted
}

//WaitLive blocks until a live client connects or the timeout expires
func (s *Server) WaitLive(timeout time.Duration) bool {
	select {
	case <-s.connected:
		return true
	case <-time.After(timeout):
		return false
	}
}

//Push queues a message for the connected live client
func (s *Server) Push(msg string) {
	s.live <- []byte(msg)
}

//DropLive closes the live connection from the server side
func (s *Server) DropLive(timeout time.Duration) bool {
	select {
	case s.drop <- struct{}{}:
		return true
	case <-time.After(timeout):
		return false
	}
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	body, _ := ioutil.ReadAll(r.Body)
	s.mu.Lock()
	s.predicts = append(s.predicts, body)
	resp := s.predict
	s.mu.Unlock()
	write(w, resp)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	body, _ := ioutil.ReadAll(r.Body)
	s.mu.Lock()
	s.batches = append(s.batches, body)
	resp := s.batch
	s.mu.Unlock()
	write(w, resp)
}

func (s *Server) canned(resp *cannedResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		out := *resp
		s.mu.Unlock()
		write(w, out)
	}
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	s.mu.Lock()
	s.accepted++
	s.mu.Unlock()
	select {
	case s.connected <- struct{}{}:
	default:
	}

	// the client never sends data, reading only notices it leaving
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case msg := <-s.live:
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-s.drop:
			conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
				time.Now().Add(time.Second),
			)
			return
		case <-gone:
			return
		case <-s.done:
			return
		}
	}
}

func write(w http.ResponseWriter, resp cannedResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	w.Write([]byte(resp.body))
}
