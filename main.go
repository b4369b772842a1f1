package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/osized/strategies/agent"
	"github.com/osized/strategies/ipc"
	"github.com/osized/strategies/rules"
)

const banner = `
  /\
 /__\   lane wizard
 |  |   tick-driven tactical sidecar
`

func main() {
	socketPath := flag.String("socket", "/tmp/wizard.sock", "unix socket the simulator runner connects to")
	configPath := flag.String("config", "", "YAML tuning file (built-in defaults when empty)")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		fmt.Fprintf(os.Stderr, "invalid -log-level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	tuning, err := rules.LoadTuning(*configPath)
	if err != nil {
		slog.Error("failed to load tuning", "path", *configPath, "error", err)
		os.Exit(1)
	}
	// Compile once up front so a bad rule set fails here rather than per connection.
	if _, err := rules.NewEngine(rules.CompileTuning(tuning)); err != nil {
		slog.Error("failed to compile rules", "error", err)
		os.Exit(1)
	}
	slog.Info("starting", "tuning", tuning.Name, "strafeTicks", tuning.StrafeTicks, "lowHPFactor", tuning.LowHPFactor)

	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(*socketPath); err != nil {
		slog.Error("failed to clean up socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}

	listener, err := net.Listen("unix", *socketPath)
	if err != nil {
		slog.Error("failed to listen on socket", "path", *socketPath, "error", err)
		os.Exit(1)
	}
	defer os.Remove(*socketPath)

	slog.Info("listening on domain socket", "path", *socketPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		<-ctx.Done()
		return listener.Close()
	})
	g.Go(func() error {
		for {
			conn, err := listener.Accept()
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
					return nil
				}
				slog.Error("failed to accept connection", "error", err)
				continue
			}
			go handleConn(ctx, conn, tuning)
		}
	})

	if err := g.Wait(); err != nil {
		slog.Error("listener stopped", "error", err)
	}
	slog.Info("shutting down")
}

// handleConn gives every connection its own agent and engine; nothing is
// shared between wizards. The connection is dropped when ctx ends.
func handleConn(ctx context.Context, conn net.Conn, tuning rules.Tuning) {
	engine, err := rules.NewEngine(rules.CompileTuning(tuning))
	if err != nil {
		slog.Error("failed to build rule engine", "error", err)
		conn.Close()
		return
	}

	c := ipc.NewConnection(conn, nil)
	a := agent.New(engine, tuning)
	slog.Info("new connection accepted", "conn", c.ID)

	c.RegisterHandler(ipc.TypeHello, func(env ipc.Envelope) (*ipc.Envelope, error) {
		resp, err := a.HandleHello(env)
		c.Player = a.Player
		return resp, err
	})
	c.RegisterHandler(ipc.TypeTick, a.HandleTick)

	stop := context.AfterFunc(ctx, func() { c.Close() })
	defer stop()
	c.ReadLoop()
}
