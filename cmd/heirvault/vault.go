package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var createvault = cli.Command{
	Name:  "createvault",
	Usage: "create a new vault owned by the calling account",
	Flags: []cli.Flag{
		&cli.Uint64Flag{
			Name:  "timelock",
			Usage: "seconds of owner silence after which the vault unlocks",
		},
	},
	Action: createVaultAction,
}

var vaultstatus = cli.Command{
	Name:   "status",
	Usage:  "print the status of a vault, remaining lock time included",
	Flags:  []cli.Flag{&vaultIDFlag},
	Action: vaultStatusAction,
}

var listvaults = cli.Command{
	Name:   "listvaults",
	Usage:  "list all vaults known to the daemon",
	Action: listVaultsAction,
}

var heartbeat = cli.Command{
	Name:   "heartbeat",
	Usage:  "check in as owner to refresh the vault's liveness clock",
	Flags:  []cli.Flag{&vaultIDFlag},
	Action: heartbeatAction,
}

var vaultIDFlag = cli.StringFlag{
	Name:  "vault_id",
	Usage: "the id of the vault to operate on",
}

func createVaultAction(ctx *cli.Context) error {
	resp, err := sendRequest(http.MethodPost, "/v1/vaults", map[string]interface{}{
		"timelock": ctx.Uint64("timelock"),
	})
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func vaultStatusAction(ctx *cli.Context) error {
	resp, err := sendRequest(
		http.MethodGet, "/v1/vaults/"+ctx.String("vault_id"), nil,
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func listVaultsAction(ctx *cli.Context) error {
	resp, err := sendRequest(http.MethodGet, "/v1/vaults", nil)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}

func heartbeatAction(ctx *cli.Context) error {
	if _, err := sendRequest(
		http.MethodPost, "/v1/vaults/"+ctx.String("vault_id")+"/heartbeat", nil,
	); err != nil {
		return err
	}

	printRespJSON(nil)
	return nil
}
