package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/knight-arena/internal/config"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

// Mutex and block profiles are collected outside prod only.
func profileTypes(env string) []pyroscope.ProfileType {
	types := []pyroscope.ProfileType{
		pyroscope.ProfileCPU,
		pyroscope.ProfileAllocSpace,
		pyroscope.ProfileInuseSpace,
		pyroscope.ProfileGoroutines,
	}
	if env != config.EnvProd {
		types = append(types, pyroscope.ProfileMutexDuration, pyroscope.ProfileBlockDuration)
	}
	return types
}

func startProfiler(cfg config.Config, logger *logging.Logger) (stopper, error) {
	if !cfg.PyroscopeEnabled {
		logger.Info("continuous profiling disabled", "reason", "PYROSCOPE_ENABLED=false")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags: map[string]string{
			"env":     cfg.AppEnv,
			"service": cfg.ServiceName,
			"version": cfg.ServiceVersion,
		},
		ProfileTypes: profileTypes(cfg.AppEnv),
	})
	if err != nil {
		return nil, err
	}

	logger.Info("continuous profiling enabled", "server", cfg.PyroscopeServerAddress, "app", cfg.PyroscopeAppName)
	return profiler, nil
}

type debugServer struct {
	addr   string
	srv    *http.Server
	logger *logging.Logger
}

// startDebugServer binds before returning so a taken port fails startup
// instead of a background goroutine.
func startDebugServer(enabled bool, addr string, logger *logging.Logger) (*debugServer, error) {
	if !enabled {
		return nil, nil
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /debug/pprof/", pprof.Index)
	mux.HandleFunc("GET /debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("GET /debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("GET /debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("GET /debug/pprof/trace", pprof.Trace)

	d := &debugServer{
		addr:   ln.Addr().String(),
		srv:    &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second},
		logger: logger,
	}
	go func() {
		if err := d.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()

	logger.Info("pprof listening", "addr", d.addr)
	return d, nil
}

func (d *debugServer) stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := d.srv.Shutdown(ctx); err != nil {
		return err
	}
	d.logger.Info("pprof stopped")
	return nil
}
