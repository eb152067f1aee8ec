package main

import (
	"net/http"

	"github.com/urfave/cli/v2"

	"github.com/heirvault/heirvault-daemon/pkg/amount"
)

var (
	assetFlag = cli.StringFlag{
		Name:  "asset",
		Usage: "the token asset to move; omit for native units",
		Value: "",
	}

	amountFlag = cli.StringFlag{
		Name:  "amount",
		Usage: "the amount to move, in whole units (eg. 0.5)",
	}

	precisionFlag = cli.UintFlag{
		Name:  "precision",
		Usage: "the asset precision used to convert the amount to base units",
		Value: 8,
	}
)

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "deposit native units or tokens into a vault",
	Flags: []cli.Flag{
		&vaultIDFlag,
		&assetFlag,
		&amountFlag,
		&precisionFlag,
	},
	Action: depositAction,
}

var withdraw = cli.Command{
	Name:  "withdraw",
	Usage: "withdraw native units or tokens from an owned vault",
	Flags: []cli.Flag{
		&vaultIDFlag,
		&assetFlag,
		&amountFlag,
		&precisionFlag,
	},
	Action: withdrawAction,
}

func depositAction(ctx *cli.Context) error {
	return moveFunds(ctx, "/deposits")
}

func withdrawAction(ctx *cli.Context) error {
	return moveFunds(ctx, "/withdrawals")
}

func moveFunds(ctx *cli.Context, endpoint string) error {
	baseUnits, err := amount.Parse(ctx.String("amount"), ctx.Uint("precision"))
	if err != nil {
		return err
	}

	if _, err := sendRequest(
		http.MethodPost, "/v1/vaults/"+ctx.String("vault_id")+endpoint,
		map[string]interface{}{
			"asset":  ctx.String("asset"),
			"amount": baseUnits,
		},
	); err != nil {
		return err
	}

	printRespJSON(nil)
	return nil
}
