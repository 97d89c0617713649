package profiling

import (
	"net"
	"net/http"
	"net/http/pprof"
	"strconv"

	"github.com/keypears/keypears/infrastructure/logger"
	"github.com/keypears/keypears/util/panics"
	"github.com/pkg/errors"
)

// ValidatePort returns an error unless port is a non-privileged TCP port
func ValidatePort(port string) error {
	profilePort, err := strconv.Atoi(port)
	if err != nil || profilePort < 1024 || profilePort > 65535 {
		return errors.Errorf("the profile port must be between 1024 and 65535, got '%s'", port)
	}
	return nil
}

// NewHandler returns the handler of the profiling server. Every path other than
// /debug/pprof/ and its sub-paths redirects to /debug/pprof/.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	mux.Handle("/", http.RedirectHandler("/debug/pprof/", http.StatusSeeOther))
	return mux
}

// Start starts the profiling server
func Start(port string, log *logger.Logger) {
	spawn := panics.GoroutineWrapperFunc(log)
	spawn("profiling.Start", func() {
		listenAddr := net.JoinHostPort("", port)
		log.Infof("Profile server listening on %s", listenAddr)
		log.Error(http.ListenAndServe(listenAddr, NewHandler()))
	})
}
