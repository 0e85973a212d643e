package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/gabapcia/localhistory/internal/historysync"
	"github.com/gabapcia/localhistory/internal/localhistory"

	"github.com/urfave/cli/v3"
)

// Run initializes and executes the localhistory CLI application.
//
// It registers all available commands, including:
//
//   - `pending list|save`: Reads or extends the pending list of an account.
//   - `confirmed list|save|set-status`: Reads or edits the confirmed list of an account.
//   - `get`: Looks up one record by history id.
//   - `nonce`: Prints the pending nonces of an account.
//   - `reconcile`: Applies a stream of reconcile batches.
//   - `clear-pending` and `clear`: Maintenance resets.
//
// load is only called once a command that reads or writes the history is
// about to run, so help and usage output never open the storage.
func Run(ctx context.Context, load Loader) error {
	return newApp(&services{load: load}).Run(ctx, os.Args)
}

// Services are the dependencies of the commands.
type Services struct {
	History localhistory.Service
	Sync    historysync.Service

	// Close releases whatever backs the services. May be nil.
	Close func()
}

// Loader opens the Services.
type Loader func(ctx context.Context) (Services, error)

// services opens the Services on first use and releases them when the root
// command exits.
type services struct {
	load    Loader
	history localhistory.Service
	sync    historysync.Service
	release func()
}

// open is installed as the Before hook of every command touching the history.
func (s *services) open(ctx context.Context, _ *cli.Command) (context.Context, error) {
	if s.history != nil {
		return ctx, nil
	}

	loaded, err := s.load(ctx)
	if err != nil {
		return ctx, err
	}

	s.history, s.sync, s.release = loaded.History, loaded.Sync, loaded.Close
	return ctx, nil
}

func (s *services) close(context.Context, *cli.Command) error {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	return nil
}

// newApp builds the root command.
func newApp(svc *services) *cli.Command {
	return &cli.Command{
		EnableShellCompletion: true,
		Name:                  "localhistory",
		Description:           "Inspect and maintain the local transaction history of wallet accounts.",
		Usage:                 "localhistory [command] [flags]",
		After:                 svc.close,
		Commands: []*cli.Command{
			pendingCommand(svc),
			confirmedCommand(svc),
			getCommand(svc),
			nonceCommand(svc),
			reconcileCommand(svc),
			clearPendingCommand(svc),
			clearCommand(svc),
		},
	}
}

// accountFlags are the flags identifying one account.
func accountFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:     "network",
			Usage:    "Network id of the account (e.g., evm--1)",
			Required: true,
		},
		&cli.StringFlag{
			Name:  "address",
			Usage: "Account address",
		},
		&cli.StringFlag{
			Name:  "xpub",
			Usage: "Extended public key, for UTXO accounts",
		},
	}
}

// accountFrom reads the account flags of c.
func accountFrom(c *cli.Command) localhistory.AccountIdentifier {
	return localhistory.AccountIdentifier{
		NetworkID:      c.String("network"),
		AccountAddress: c.String("address"),
		Xpub:           c.String("xpub"),
	}
}

// fileFlag is the input flag of commands reading JSON.
func fileFlag(usage string) cli.Flag {
	return &cli.StringFlag{
		Name:     "file",
		Usage:    usage + ` ("-" reads stdin)`,
		Required: true,
	}
}

// openInput opens the file named by --file, or the command reader for "-".
func openInput(c *cli.Command) (io.ReadCloser, error) {
	path := c.String("file")
	if path == "-" {
		return io.NopCloser(c.Root().Reader), nil
	}
	return os.Open(path)
}

// writeJSON prints v as indented JSON on the command writer.
func writeJSON(c *cli.Command, v any) error {
	enc := json.NewEncoder(c.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
