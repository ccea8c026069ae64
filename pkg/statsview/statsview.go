// Package statsview serves live runtime statistics of the
// emulator process over HTTP.
//
// Once started, charts are available at
//
//	http://<addr>/debug/statsview
//
// and the standard pprof endpoints at /debug/pprof/.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/thelolagemann/dmgcore/pkg/log"
)

// DefaultAddr is the address served when none is given.
const DefaultAddr = "localhost:12600"

// Path is the path of the charts page.
const Path = "/debug/statsview"

// Server runs a statsview manager in the background.
type Server struct {
	addr string
	mgr  *statsview.ViewManager
	log  log.Logger
}

// New returns a Server listening on addr, or DefaultAddr when
// addr is empty.
func New(addr string, logger log.Logger) *Server {
	if addr == "" {
		addr = DefaultAddr
	}
	if logger == nil {
		logger = log.NewNullLogger()
	}
	return &Server{addr: addr, log: logger}
}

// Addr returns the address the server listens on.
func (s *Server) Addr() string {
	return s.addr
}

// URL returns the address of the charts page.
func (s *Server) URL() string {
	return "http://" + s.addr + Path
}

// Start launches the server in a new goroutine.
func (s *Server) Start() {
	viewer.SetConfiguration(viewer.WithAddr(s.addr))
	s.mgr = statsview.New()
	go s.mgr.Start()

	s.log.Infof("stats server available at %s", s.URL())
}

// Stop shuts the server down.
func (s *Server) Stop() {
	if s.mgr != nil {
		s.mgr.Stop()
	}
}
