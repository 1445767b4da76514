package main

import (
	"net/url"

	"github.com/urfave/cli/v2"
)

var list = cli.Command{
	Name:  "list",
	Usage: "list gifts, optionally filtered by sender or recipient",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "sender",
			Usage: "filter by base58 sender public key",
		},
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "filter by base58 recipient public key",
		},
	},
	Action: listAction,
}

func listAction(ctx *cli.Context) error {
	query := url.Values{}
	if sender := ctx.String("sender"); sender != "" {
		query.Set("sender", sender)
	}
	if recipient := ctx.String("recipient"); recipient != "" {
		query.Set("recipient", recipient)
	}

	urlPath := "/v1/gifts"
	if encoded := query.Encode(); encoded != "" {
		urlPath += "?" + encoded
	}

	reply, err := doGet(urlPath)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
