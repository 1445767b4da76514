package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var info = cli.Command{
	Name:  "info",
	Usage: "print the current state of a gift",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "gift_id",
			Usage: "id of the gift",
		},
	},
	Action: infoAction,
}

func infoAction(ctx *cli.Context) error {
	giftId := ctx.String("gift_id")
	if giftId == "" {
		return fmt.Errorf("gift_id is required")
	}

	reply, err := doGet("/v1/gifts/" + giftId)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
