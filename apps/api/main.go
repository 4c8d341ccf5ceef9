package main

import (
	"log"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/heliumhq/dashboard-api/apps/api/echo"
	"github.com/heliumhq/dashboard-api/core"
	"github.com/heliumhq/dashboard-api/core/activity"
	"github.com/heliumhq/dashboard-api/core/campaign"
	"github.com/heliumhq/dashboard-api/core/credit"
	"github.com/heliumhq/dashboard-api/core/invite"
	"github.com/heliumhq/dashboard-api/core/profile"
	"github.com/heliumhq/dashboard-api/core/waitlist"
	emailsvc "github.com/heliumhq/dashboard-api/services/email"
	logsvc "github.com/heliumhq/dashboard-api/services/logger"
	"github.com/heliumhq/dashboard-api/storage/database"
	sqlxrepos "github.com/heliumhq/dashboard-api/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std)
	}

	// set up DB
	db, err := database.Open(&core.Conf)
	errAndDie(std, err)
	defer func() { _ = db.Close() }()
	if core.Conf.Debug {
		// auto-migrate locally; deployments migrate via the admin CLI
		errAndDie(std, database.Migrate(db))
	}

	// set up validation
	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	translator, _ := uni.GetTranslator("en")
	validate := validator.New()
	core.InitValidators(validate, translator)

	// set up services
	var mailSvc interface {
		core.EmailService
		core.EmailDeliverer
	}
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	profileSvc := profile.NewService(sqlxrepos.NewProfileRepository(db))
	creditSvc := credit.NewService(sqlxrepos.NewCreditRepository(db), profileSvc, mailSvc, logger)
	inviteSvc := invite.NewService(sqlxrepos.NewInviteRepository(db))
	waitlistSvc := waitlist.NewService(sqlxrepos.NewWaitlistRepository(db))
	campaignSvc := campaign.NewService(profileSvc, mailSvc)
	usageSvc := activity.NewService(sqlxrepos.NewUsageRepository(db), profileSvc)

	// start API server
	app := echoapi.NewServer(
		&echoapi.Options{
			Addr:        core.Conf.Server.Addr,
			Logger:      logger,
			Validate:    validate,
			Translator:  translator,
			ProfileSvc:  profileSvc,
			CreditSvc:   creditSvc,
			InviteSvc:   inviteSvc,
			WaitlistSvc: waitlistSvc,
			CampaignSvc: campaignSvc,
			UsageSvc:    usageSvc,
		},
	)
	app.Start()
}

func errAndDie(std *log.Logger, err error) {
	if err != nil {
		std.Fatal(err)
	}
}
