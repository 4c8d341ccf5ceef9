package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/heliumhq/dashboard-api/core/invite"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db        *sqlx.DB
	inviteSvc *invite.Service
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migrate [up|down|status|version ...] - run database migrations (default: up)")
	fmt.Println("  gencodes -count N [-max-uses N] [-expires-days N] - mint invite codes")
	fmt.Println("  hashpassword - hash the admin password for the ADMIN_PASSWORD_HASH setting")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	genCodesCmd := flag.NewFlagSet("gencodes", flag.ExitOnError)
	genCodesCount := genCodesCmd.Int("count", 0, "How many codes to mint (1-100).")
	genCodesMaxUses := genCodesCmd.Int("max-uses", 1, "How many times each code can be redeemed.")
	genCodesExpiresDays := genCodesCmd.Int("expires-days", 30, "Days until the codes expire (max 365).")

	switch args[1] {
	case "migrate":
		return cli.migrate(args[2:])
	case "gencodes":
		if err := genCodesCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *genCodesCount < 1 {
			genCodesCmd.Usage()
			return errHelp
		}
		return cli.genCodes(*genCodesCount, *genCodesMaxUses, *genCodesExpiresDays)
	case "hashpassword":
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			cli.printUsage()
			return errHelp
		}
		return cli.hashPassword(string(pwd))
	default:
		cli.printUsage()
		return errHelp
	}
}
