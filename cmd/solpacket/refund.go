package main

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

var refund = cli.Command{
	Name:  "refund",
	Usage: "reclaim an expired unclaimed gift as its sender",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "gift_id",
			Usage: "id of the gift to refund",
		},
	},
	Action: refundAction,
}

func refundAction(ctx *cli.Context) error {
	giftId := ctx.String("gift_id")
	if giftId == "" {
		return fmt.Errorf("gift_id is required")
	}

	reply, err := doSignedPost("/v1/gifts/"+giftId+"/refund", nil)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
