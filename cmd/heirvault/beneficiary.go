package main

import (
	"net/http"

	"github.com/urfave/cli/v2"
)

var beneficiaryFlag = cli.StringFlag{
	Name:  "beneficiary",
	Usage: "the account to register or deregister as beneficiary",
}

var addbeneficiary = cli.Command{
	Name:   "addbeneficiary",
	Usage:  "register an account as beneficiary of an owned vault",
	Flags:  []cli.Flag{&vaultIDFlag, &beneficiaryFlag},
	Action: addBeneficiaryAction,
}

var removebeneficiary = cli.Command{
	Name:   "removebeneficiary",
	Usage:  "deregister a beneficiary from an owned vault",
	Flags:  []cli.Flag{&vaultIDFlag, &beneficiaryFlag},
	Action: removeBeneficiaryAction,
}

var resign = cli.Command{
	Name:   "resign",
	Usage:  "step down as beneficiary of a vault",
	Flags:  []cli.Flag{&vaultIDFlag},
	Action: resignAction,
}

var settle = cli.Command{
	Name:   "settle",
	Usage:  "claim the calling beneficiary's share of an unlocked vault",
	Flags:  []cli.Flag{&vaultIDFlag},
	Action: settleAction,
}

func addBeneficiaryAction(ctx *cli.Context) error {
	if _, err := sendRequest(
		http.MethodPost, "/v1/vaults/"+ctx.String("vault_id")+"/beneficiaries",
		map[string]interface{}{"beneficiary": ctx.String("beneficiary")},
	); err != nil {
		return err
	}

	printRespJSON(nil)
	return nil
}

func removeBeneficiaryAction(ctx *cli.Context) error {
	if _, err := sendRequest(
		http.MethodDelete,
		"/v1/vaults/"+ctx.String("vault_id")+"/beneficiaries/"+
			ctx.String("beneficiary"),
		nil,
	); err != nil {
		return err
	}

	printRespJSON(nil)
	return nil
}

func resignAction(ctx *cli.Context) error {
	if _, err := sendRequest(
		http.MethodPost, "/v1/vaults/"+ctx.String("vault_id")+"/resign", nil,
	); err != nil {
		return err
	}

	printRespJSON(nil)
	return nil
}

func settleAction(ctx *cli.Context) error {
	resp, err := sendRequest(
		http.MethodPost, "/v1/vaults/"+ctx.String("vault_id")+"/settlements", nil,
	)
	if err != nil {
		return err
	}

	printRespJSON(resp)
	return nil
}
