package main

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/NikhilRaikwar/solpacket-daemon/pkg/giftlink"
)

var link = cli.Command{
	Name:  "link",
	Usage: "extract the gift id embedded in a claim link",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "claim link to decode",
		},
	},
	Action: linkAction,
}

func linkAction(ctx *cli.Context) error {
	if ctx.String("url") == "" {
		return fmt.Errorf("url is required")
	}

	giftId, err := giftlink.Decode(ctx.String("url"))
	if err != nil {
		return err
	}

	fmt.Println(giftId)
	return nil
}
