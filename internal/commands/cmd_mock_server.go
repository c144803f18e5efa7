package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/docgrid/internal/core/record"
	"github.com/colonyops/docgrid/internal/mockapi"
	"github.com/colonyops/docgrid/pkg/logutils"
)

const shutdownTimeout = 5 * time.Second

type MockServerCmd struct {
	flags *Flags

	// flags
	addr     string
	password string
	seed     int
}

// NewMockServerCmd creates a new mock-server command
func NewMockServerCmd(flags *Flags) *MockServerCmd {
	return &MockServerCmd{flags: flags}
}

// Register adds the mock-server command to the application
func (cmd *MockServerCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "mock-server",
		Usage:     "Run an in-memory document API for development",
		UsageText: "docgrid mock-server [--addr host:port] [--seed n]",
		Description: `Serves the document API endpoints from memory. Any username is accepted
with the configured password. Point docgrid at it with:

  DOCGRID_API_URL=http://127.0.0.1:8080/ docgrid login -u demo -p password`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "addr",
				Usage:       "listen address",
				Sources:     cli.EnvVars("DOCGRID_MOCK_ADDR"),
				Value:       "127.0.0.1:8080",
				Destination: &cmd.addr,
			},
			&cli.StringFlag{
				Name:        "password",
				Usage:       "password accepted for every user",
				Value:       mockapi.DefaultPassword,
				Destination: &cmd.password,
			},
			&cli.IntFlag{
				Name:        "seed",
				Usage:       "number of sample records to start with",
				Value:       5,
				Destination: &cmd.seed,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *MockServerCmd) run(ctx context.Context, c *cli.Command) error {
	logger, err := logutils.NewConsole(cmd.flags.LogLevel, os.Stderr)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	log.Logger = logger

	srv := mockapi.New(mockapi.Config{Password: cmd.password})
	srv.Seed(sampleRecords(cmd.seed)...)

	ln, err := net.Listen("tcp", cmd.addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return serve(ctx, ln, srv.Handler())
}

// serve runs handler on ln until ctx is cancelled, then shuts down
// gracefully.
func serve(ctx context.Context, ln net.Listener, handler http.Handler) error {
	httpSrv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("addr", ln.Addr().String()).Msg("mock API listening")
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info().Msg("shutting down mock API")
		return httpSrv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func sampleRecords(n int) []record.Record {
	statuses := []string{"pending", "signed", "approved", "rejected"}
	types := []string{"contract", "nda", "policy"}

	recs := make([]record.Record, 0, n)
	for i := range n {
		day := time.Date(2024, time.January, 1+i, 0, 0, 0, 0, time.UTC).Format(time.RFC3339)
		recs = append(recs, record.Record{
			CompanySigDate:        day,
			CompanySignatureName:  "Acme Corp",
			DocumentName:          fmt.Sprintf("%s-%02d.pdf", types[i%len(types)], i+1),
			DocumentStatus:        statuses[i%len(statuses)],
			DocumentType:          types[i%len(types)],
			EmployeeNumber:        fmt.Sprintf("E-%04d", 1000+i),
			EmployeeSigDate:       day,
			EmployeeSignatureName: fmt.Sprintf("Employee %d", i+1),
		})
	}
	return recs
}
