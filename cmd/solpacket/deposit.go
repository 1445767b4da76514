package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/NikhilRaikwar/solpacket-daemon/pkg/tokenutil"
)

var deposit = cli.Command{
	Name:  "deposit",
	Usage: "fund the account of the configured keypair",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "amount",
			Usage: "human-readable amount, ie. 10.00",
		},
	},
	Action: depositAction,
}

var balance = cli.Command{
	Name:   "balance",
	Usage:  "print the balance of the configured keypair",
	Action: balanceAction,
}

func depositAction(ctx *cli.Context) error {
	if ctx.String("amount") == "" {
		return fmt.Errorf("amount is required")
	}

	amount, err := tokenutil.ToBaseUnits(ctx.String("amount"), assetDecimals)
	if err != nil {
		return err
	}

	privateKey, err := getPrivateKey()
	if err != nil {
		return err
	}
	owner := privateKey.PublicKey().String()

	reply, err := doSignedPost(
		"/v1/accounts/"+owner+"/deposit",
		map[string]interface{}{"amount": amount},
	)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func balanceAction(ctx *cli.Context) error {
	privateKey, err := getPrivateKey()
	if err != nil {
		return err
	}
	owner := privateKey.PublicKey().String()

	reply, err := doGet("/v1/accounts/" + owner + "/balance")
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
