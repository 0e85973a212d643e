package cli

import (
	"context"

	"github.com/urfave/cli/v3"
)

// getCommand prints one record by history id, pending list first.
//
// Usage example:
//
//	localhistory get --network evm--1 --address 0xABC... --id tx1
func getCommand(svc *services) *cli.Command {
	return &cli.Command{
		Name:  "get",
		Usage: "Prints a transaction by history id.",
		Flags: append(accountFlags(), &cli.StringFlag{
			Name:     "id",
			Usage:    "History id",
			Required: true,
		}),
		Before: svc.open,
		Action: func(ctx context.Context, c *cli.Command) error {
			tx, err := svc.history.GetByID(ctx, accountFrom(c), c.String("id"))
			if err != nil {
				return err
			}
			return writeJSON(c, tx)
		},
	}
}

// nonceReport is the output of the nonce command. Max and Min are null when
// the pending nonces cannot be trusted.
type nonceReport struct {
	Nonces []int64 `json:"nonces"`
	Max    *int64  `json:"max"`
	Min    *int64  `json:"min"`
}

// nonceCommand prints the pending nonces of an account.
func nonceCommand(svc *services) *cli.Command {
	return &cli.Command{
		Name:   "nonce",
		Usage:  "Prints the pending nonces of an account with their max and min.",
		Flags:  accountFlags(),
		Before: svc.open,
		Action: func(ctx context.Context, c *cli.Command) error {
			account := accountFrom(c)

			nonces, err := svc.history.PendingNonces(ctx, account)
			if err != nil {
				return err
			}
			report := nonceReport{Nonces: nonces}

			if n, ok, err := svc.history.MaxPendingNonce(ctx, account); err != nil {
				return err
			} else if ok {
				report.Max = &n
			}

			if n, ok, err := svc.history.MinPendingNonce(ctx, account); err != nil {
				return err
			} else if ok {
				report.Min = &n
			}

			return writeJSON(c, report)
		},
	}
}
