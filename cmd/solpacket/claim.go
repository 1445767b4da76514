package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/NikhilRaikwar/solpacket-daemon/pkg/giftlink"
)

var claim = cli.Command{
	Name:  "claim",
	Usage: "claim a gift as its designated recipient",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "gift_id",
			Usage: "id of the gift to claim",
		},
		&cli.StringFlag{
			Name:  "link",
			Usage: "claim link embedding the gift id, alternative to gift_id",
		},
	},
	Action: claimAction,
}

func claimAction(ctx *cli.Context) error {
	giftId, err := giftIdFromArgs(ctx)
	if err != nil {
		return err
	}

	reply, err := doSignedPost("/v1/gifts/"+giftId+"/claim", nil)
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}

func giftIdFromArgs(ctx *cli.Context) (string, error) {
	if giftId := ctx.String("gift_id"); giftId != "" {
		return giftId, nil
	}
	if link := ctx.String("link"); link != "" {
		return giftlink.Decode(link)
	}
	return "", fmt.Errorf("either gift_id or link is required")
}
