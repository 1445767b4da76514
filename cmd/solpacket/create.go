package main

import (
	"fmt"

	"github.com/thanhpk/randstr"
	"github.com/urfave/cli/v2"

	"github.com/NikhilRaikwar/solpacket-daemon/pkg/tokenutil"
)

// assetDecimals matches the decimals of the escrowed asset configured on the
// daemon (USDC).
const assetDecimals = 6

var create = cli.Command{
	Name:  "create",
	Usage: "lock an amount in escrow for a recipient and print the claim link",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "recipient",
			Usage: "base58 public key of the recipient",
		},
		&cli.StringFlag{
			Name:  "amount",
			Usage: "human-readable amount, ie. 10.00",
		},
		&cli.StringFlag{
			Name:  "gift_id",
			Usage: "optional gift id, random if omitted",
		},
		&cli.StringFlag{
			Name:  "message",
			Usage: "optional message attached to the gift",
		},
	},
	Action: createAction,
}

func createAction(ctx *cli.Context) error {
	if ctx.String("recipient") == "" || ctx.String("amount") == "" {
		return fmt.Errorf("recipient and amount are both required")
	}

	amount, err := tokenutil.ToBaseUnits(ctx.String("amount"), assetDecimals)
	if err != nil {
		return err
	}

	giftId := ctx.String("gift_id")
	if giftId == "" {
		giftId = randstr.Hex(10)
	}

	reply, err := doSignedPost("/v1/gifts", map[string]interface{}{
		"gift_id":   giftId,
		"recipient": ctx.String("recipient"),
		"amount":    amount,
		"message":   ctx.String("message"),
	})
	if err != nil {
		return err
	}

	printRespJSON(reply)
	return nil
}
