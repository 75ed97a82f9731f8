// Command adcp-ingestd is the unattended ingest service: it wires transport, the
// binary-mode detector, the store and file exporter, and the producer/consumer pipeline
// together behind the start/stop/health control-plane contract of spec §6, following the
// teacher's cmd/n2kreader flag-and-signal style but exposed as a cobra command tree so
// `serve`/`health` can be added as siblings without a second main.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	nmea "github.com/aldas/adcp-ingest"
	"github.com/aldas/adcp-ingest/binarydetector"
	"github.com/aldas/adcp-ingest/config"
	"github.com/aldas/adcp-ingest/fileexport"
	"github.com/aldas/adcp-ingest/health"
	"github.com/aldas/adcp-ingest/parser"
	"github.com/aldas/adcp-ingest/pipeline"
	"github.com/aldas/adcp-ingest/store"
	"github.com/aldas/adcp-ingest/transport"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		log.Fatalf("# adcp-ingestd: %v\n", err)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}
	var metricsAddr string

	root := &cobra.Command{
		Use:   "adcp-ingestd",
		Short: "Ingest ADCP/NMEA-0183 telemetry from a serial instrument into an embedded store.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), cfg, metricsAddr)
		},
	}

	flags := root.Flags()
	flags.StringVar(&cfg.SerialPort, "serial-port", "", "serial device path (required)")
	flags.IntVar(&cfg.BaudRate, "baud-rate", 9600, "serial baud rate")
	flags.IntVar(&cfg.ReadTimeoutMS, "read-timeout-ms", 1000, "single serial read deadline, in milliseconds")
	flags.StringVar(&cfg.OutputDir, "output-dir", ".", "directory for store.db and the per-family export files")
	flags.IntVar(&cfg.QueueCapacity, "queue-capacity", 1000, "producer/consumer queue capacity")
	flags.IntVar(&cfg.BatchSize, "batch-size", 100, "rows buffered before a store commit")
	flags.IntVar(&cfg.BatchIntervalMS, "batch-interval-ms", 500, "max age of a buffered row before a store commit")
	flags.IntVar(&cfg.MaxNonNMEAPerLine, "max-non-nmea-per-line", 10, "non-NMEA byte threshold that triggers binary mode")
	flags.Int64Var(&cfg.BinaryBlobMaxBytes, "binary-blob-max-bytes", 10_485_760, "binary blob file size cap")
	flags.Float64Var(&cfg.ReconnectBaseSeconds, "reconnect-base-s", 1.0, "base serial reconnect backoff, in seconds")
	flags.Float64Var(&cfg.ReconnectCapSeconds, "reconnect-cap-s", 60.0, "max serial reconnect backoff, in seconds")
	flags.StringVar((*string)(&cfg.LogLevel), "log-level", "info", "one of debug, info, warn, error")
	flags.BoolVar(&cfg.StrictCellCountBound, "strict-cell-count-bound", false, "use the legacy 128-cell bound instead of the normative 1000")
	flags.StringVar(&metricsAddr, "metrics-addr", "", "if set, serve Prometheus metrics on this address (e.g. :9090)")

	return root
}

func run(ctx context.Context, cfg *config.Config, metricsAddr string) error {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	core, err := newCore(*cfg)
	if err != nil {
		return fmt.Errorf("build core: %w", err)
	}

	if metricsAddr != "" {
		registry := health.NewRegistry(supervisorProbe{core.supervisor})
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry.Gatherer(), promhttp.HandlerOpts{}))
		server := &http.Server{Addr: metricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("# adcp-ingestd: metrics server: %v\n", err)
			}
		}()
		defer server.Close()
	}

	core.supervisor.Start(ctx)
	fmt.Printf("# adcp-ingestd: started, serial_port=%s output_dir=%s\n", cfg.SerialPort, cfg.OutputDir)

	<-ctx.Done()
	fmt.Println("# adcp-ingestd: shutting down")

	stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer stopCancel()
	if err := core.supervisor.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop: %w", err)
	}
	return nil
}

// core bundles everything newCore wires together, kept alive for the lifetime of run so
// its Close-like resources (store, exporter) are reachable from the supervisor's own
// shutdown path via the pipeline.Consumer it was handed.
type core struct {
	supervisor *pipeline.Supervisor
}

func newCore(cfg config.Config) (*core, error) {
	st, err := store.New(store.Config{
		Path:       cfg.OutputDir + "/store.db",
		LedgerPath: cfg.OutputDir + "/resume.db",
	})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	exporter, err := fileexport.New(fileexport.Config{OutputDir: cfg.OutputDir})
	if err != nil {
		return nil, fmt.Errorf("open exporter: %w", err)
	}

	router := parser.NewRouter(parser.Options{StrictCellCountBound: cfg.StrictCellCountBound})
	queue := pipeline.NewQueue(cfg.QueueCapacity)

	transportCfg := transport.Config{
		BaudRate:           cfg.BaudRate,
		ReadTimeout:        cfg.ReadTimeout(),
		ReconnectBaseDelay: cfg.ReconnectBase(),
		ReconnectMaxDelay:  cfg.ReconnectCap(),
		LogFunc:            logf,
	}
	open := func() (nmea.LineReader, error) {
		return transport.Open(cfg.SerialPort, transportCfg)
	}

	producer := pipeline.NewProducer(open, queue, pipeline.ProducerConfig{
		ReconnectBaseDelay: cfg.ReconnectBase(),
		ReconnectMaxDelay:  cfg.ReconnectCap(),
		LogFunc:            logf,
	})

	detectorCfg := binarydetector.Config{
		MaxNonNMEAPerLine: cfg.MaxNonNMEAPerLine,
		BlobMaxBytes:      cfg.BinaryBlobMaxBytes,
		LogFunc:           logf,
	}
	consumer := pipeline.NewConsumer(queue, router, st, exporter, detectorCfg, pipeline.ConsumerConfig{
		BatchSize:     cfg.BatchSize,
		BatchInterval: cfg.BatchInterval(),
		LogFunc:       logf,
	})

	return &core{supervisor: pipeline.NewSupervisor(producer, consumer, queue)}, nil
}

func logf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format, a...)
}

// supervisorProbe adapts pipeline.Supervisor's Health() to health.Probe without either
// package importing the other.
type supervisorProbe struct {
	sup *pipeline.Supervisor
}

func (p supervisorProbe) Health() health.Snapshot {
	h := p.sup.Health()
	return health.Snapshot{
		ProducerHeartbeat: h.ProducerHeartbeat,
		ConsumerHeartbeat: h.ConsumerHeartbeat,
		QueueDepth:        h.QueueDepth,
		DroppedFrames:     h.DroppedFrames,
		Mode:              h.Mode,
	}
}
