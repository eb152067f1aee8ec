package main

import (
	"fmt"
	"net/http"

	"github.com/urfave/cli/v2"
)

var (
	pageFlag = cli.IntFlag{
		Name:  "page",
		Usage: "the page of records to fetch",
		Value: 1,
	}

	pageSizeFlag = cli.IntFlag{
		Name:  "page_size",
		Usage: "the number of records per page",
		Value: 10,
	}
)

var listdeposits = cli.Command{
	Name:   "listdeposits",
	Usage:  "list the deposits made into a vault",
	Flags:  []cli.Flag{&vaultIDFlag, &pageFlag, &pageSizeFlag},
	Action: listDepositsAction,
}

var listwithdrawals = cli.Command{
	Name:   "listwithdrawals",
	Usage:  "list the withdrawals made from a vault",
	Flags:  []cli.Flag{&vaultIDFlag, &pageFlag, &pageSizeFlag},
	Action: listWithdrawalsAction,
}

var listsettlements = cli.Command{
	Name:   "listsettlements",
	Usage:  "list the settlements paid out of a vault",
	Flags:  []cli.Flag{&vaultIDFlag, &pageFlag, &pageSizeFlag},
	Action: listSettlementsAction,
}

func listDepositsAction(ctx *cli.Context) error {
	return listHistory(ctx, "/deposits")
}

func listWithdrawalsAction(ctx *cli.Context) error {
	return listHistory(ctx, "/withdrawals")
}

func listSettlementsAction(ctx *cli.Context) error {
	return listHistory(ctx, "/settlements")
}

func listHistory(ctx *cli.Context, endpoint string) error {
	resp, err := sendRequest(
		http.MethodGet,
		fmt.Sprintf(
			"/v1/vaults/%s%s?page=%d&page_size=%d",
			ctx.String("vault_id"), endpoint,
			ctx.Int("page"), ctx.Int("page_size"),
		),
		nil,
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
