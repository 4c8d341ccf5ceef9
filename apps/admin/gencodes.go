package main

import (
	"context"
	"fmt"

	"github.com/heliumhq/dashboard-api/core/invite"
)

// genCodes mints a batch of invite codes and prints them, one per line.
func (cli *commandLine) genCodes(count, maxUses, expiresDays int) error {
	codes, err := cli.inviteSvc.Generate(context.Background(), invite.GenerateCodes{
		Count:         count,
		MaxUses:       maxUses,
		ExpiresInDays: expiresDays,
	})
	if err != nil {
		return err
	}
	for _, c := range codes {
		fmt.Println(c.Code)
	}
	return nil
}
