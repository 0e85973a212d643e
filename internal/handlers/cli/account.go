package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gabapcia/localhistory/internal/localhistory"
	"github.com/gabapcia/localhistory/internal/pkg/logger"

	"github.com/urfave/cli/v3"
)

// listFlags are the flags of the list subcommands.
func listFlags() []cli.Flag {
	return append(accountFlags(), &cli.StringFlag{
		Name:  "token",
		Usage: "Only show records involving this token id (empty for the native coin)",
	})
}

// tokenFilter returns the --token value, or nil when the flag was not given.
func tokenFilter(c *cli.Command) *string {
	if !c.IsSet("token") {
		return nil
	}

	token := c.String("token")
	return &token
}

// readAccountTxs decodes a JSON array of records from the command input and
// drops the ones that do not belong to the account.
func readAccountTxs(ctx context.Context, c *cli.Command, account localhistory.AccountIdentifier) ([]localhistory.HistoryTx, error) {
	in, err := openInput(c)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var txs []localhistory.HistoryTx
	if err := json.NewDecoder(in).Decode(&txs); err != nil {
		return nil, fmt.Errorf("decode transactions: %w", err)
	}

	owned := localhistory.FilterAccountTxs(account, txs)
	if skipped := len(txs) - len(owned); skipped > 0 {
		logger.Warn(ctx, "skipping transactions of other accounts",
			"account.network", account.NetworkID,
			"txs.skipped", skipped,
		)
	}

	return owned, nil
}

// pendingCommand groups the pending list subcommands.
//
// Usage example:
//
//	localhistory pending list --network evm--1 --address 0xABC...
//	localhistory pending save --network evm--1 --address 0xABC... --file txs.json
func pendingCommand(svc *services) *cli.Command {
	return &cli.Command{
		Name:  "pending",
		Usage: "Read or extend the pending transactions of an account.",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Prints the pending transactions, most recent first.",
				Flags:  listFlags(),
				Before: svc.open,
				Action: func(ctx context.Context, c *cli.Command) error {
					txs, err := svc.history.ListPending(ctx, localhistory.AccountQuery{
						AccountIdentifier: accountFrom(c),
						TokenIDOnNetwork:  tokenFilter(c),
					})
					if err != nil {
						return err
					}
					return writeJSON(c, txs)
				},
			},
			{
				Name:   "save",
				Usage:  "Saves freshly submitted transactions read from a JSON array.",
				Flags:  append(accountFlags(), fileFlag("JSON file with the transactions")),
				Before: svc.open,
				Action: func(ctx context.Context, c *cli.Command) error {
					account := accountFrom(c)

					txs, err := readAccountTxs(ctx, c, account)
					if err != nil {
						return err
					}
					return svc.history.SavePending(ctx, account, txs)
				},
			},
		},
	}
}

// confirmedCommand groups the confirmed list subcommands.
//
// Usage example:
//
//	localhistory confirmed set-status --network evm--1 --address 0xABC... --txid 0x01 --status Failed
func confirmedCommand(svc *services) *cli.Command {
	return &cli.Command{
		Name:  "confirmed",
		Usage: "Read or edit the confirmed transactions of an account.",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Prints the confirmed transactions, most recent first.",
				Flags:  listFlags(),
				Before: svc.open,
				Action: func(ctx context.Context, c *cli.Command) error {
					txs, err := svc.history.ListConfirmed(ctx, localhistory.AccountQuery{
						AccountIdentifier: accountFrom(c),
						TokenIDOnNetwork:  tokenFilter(c),
					})
					if err != nil {
						return err
					}
					return writeJSON(c, txs)
				},
			},
			{
				Name:   "save",
				Usage:  "Saves settled transactions read from a JSON array.",
				Flags:  append(accountFlags(), fileFlag("JSON file with the transactions")),
				Before: svc.open,
				Action: func(ctx context.Context, c *cli.Command) error {
					account := accountFrom(c)

					txs, err := readAccountTxs(ctx, c, account)
					if err != nil {
						return err
					}
					return svc.history.SaveConfirmed(ctx, account, txs)
				},
			},
			{
				Name:  "set-status",
				Usage: "Changes the status of a confirmed transaction.",
				Flags: append(accountFlags(),
					&cli.StringFlag{
						Name:     "txid",
						Usage:    "Transaction hash",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "status",
						Usage:    "New status (Confirmed, Failed, Dropped or Removed)",
						Required: true,
					},
				),
				Before: svc.open,
				Action: func(ctx context.Context, c *cli.Command) error {
					return svc.history.UpdateConfirmedStatus(ctx, accountFrom(c), c.String("txid"), localhistory.Status(c.String("status")))
				},
			},
		},
	}
}
