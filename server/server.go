// Package server exposes simulation-by-request over HTTP: assembly source
// in, per-cycle JSON trace out.
package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/risclab/risc16/cpu"
	"github.com/risclab/risc16/emulator"
)

const (
	API_NAME    = "RISC16 CPU Simulator API"
	API_VERSION = "1.0.0"
)

// Server handles simulation requests for one encoding variant.
type Server struct {
	Verbose   bool        // If set, logs each request.
	Variant   cpu.Variant // Encoding variant simulated by this service.
	MaxCycles int         // Cycle cap per simulation; 0 selects the emulator default.
}

type simulateRequest struct {
	Assembly string `json:"assembly"`
}

type simulateResponse struct {
	Success    bool           `json:"success"`
	Trace      []cpu.Snapshot `json:"trace"`
	Program    []cpu.Word     `json:"program,omitempty"`
	ProgramHex []string       `json:"programHex,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// Handler returns the HTTP handler for the service endpoints.
func (srv *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /simulate", srv.handleSimulate)
	mux.HandleFunc("GET /health", srv.handleHealth)
	mux.HandleFunc("GET /{$}", srv.handleIndex)

	return mux
}

// ListenAndServe runs the service on the given address.
func (srv *Server) ListenAndServe(addr string) error {
	if srv.Verbose {
		log.Printf("server: listening on %v (%v variant)", addr, srv.Variant)
	}

	return http.ListenAndServe(addr, srv.Handler())
}

func (srv *Server) fail(w http.ResponseWriter, status int, err error) {
	if srv.Verbose {
		log.Printf("server: %v", err)
	}

	writeJson(w, status, simulateResponse{
		Trace: []cpu.Snapshot{},
		Error: err.Error(),
	})
}

func (srv *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	err := json.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		srv.fail(w, http.StatusBadRequest, err)
		return
	}

	emu, err := emulator.New(srv.Variant, &cpu.Program{Variant: srv.Variant})
	if err != nil {
		srv.fail(w, http.StatusInternalServerError, err)
		return
	}

	asm := emu.Assembler()
	prog, err := asm.Parse(strings.NewReader(req.Assembly))
	if err != nil {
		srv.fail(w, http.StatusBadRequest, err)
		return
	}
	if len(prog.Opcodes) == 0 {
		srv.fail(w, http.StatusBadRequest, cpu.ErrProgramEmpty)
		return
	}

	err = emu.Load(srv.Variant, prog)
	if err != nil {
		srv.fail(w, http.StatusBadRequest, err)
		return
	}

	err = emu.Run(srv.MaxCycles)
	if err != nil {
		srv.fail(w, http.StatusInternalServerError, err)
		return
	}

	writeJson(w, http.StatusOK, simulateResponse{
		Success:    true,
		Trace:      emu.Trace,
		Program:    prog.Binary(),
		ProgramHex: strings.Split(prog.Hex(), "\n"),
	})
}

func (srv *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"variant": srv.Variant.String(),
	})
}

func (srv *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJson(w, http.StatusOK, map[string]any{
		"name":    API_NAME,
		"version": API_VERSION,
		"endpoints": map[string]string{
			"POST /simulate": "Run simulation with assembly code",
			"GET /health":    "Health check",
		},
	})
}

func writeJson(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	err := json.NewEncoder(w).Encode(body)
	if err != nil && !errors.Is(err, http.ErrBodyNotAllowed) {
		log.Printf("server: encode: %v", err)
	}
}
