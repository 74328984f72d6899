package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jessevdk/go-flags"

	"fundbackend/clients"
	"fundbackend/clients/email"
	"fundbackend/config"
	"fundbackend/db"
	"fundbackend/services/notifications"
)

type Options struct {
	NotificationID string `long:"notification" required:"true" description:"ID of the notification to render"`
	UserID         string `long:"user"         required:"true" description:"ID of the recipient user"`
	Send           bool   `long:"send"                         description:"Deliver the email through Resend instead of only printing it"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run(opts Options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	dbConn, err := db.NewConnection(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	usersRepo := db.NewPostgresUsersRepository(dbConn, cfg.DatabaseSchema)
	notificationsRepo := db.NewPostgresNotificationsRepository(dbConn, cfg.DatabaseSchema)

	var emailSender clients.EmailSender = email.NewOptionalEmailSender()
	if cfg.ResendConfig.IsConfigured() {
		emailSender = email.NewResendEmailSender(cfg.ResendConfig.APIKey, cfg.ResendConfig.FromAddress)
	}

	notificationsService := notifications.NewNotificationsService(notifications.Repositories{
		Notifications: notificationsRepo,
		Issues:        db.NewPostgresIssuesRepository(dbConn, cfg.DatabaseSchema),
		Pledges:       db.NewPostgresPledgesRepository(dbConn, cfg.DatabaseSchema),
		PullRequests:  db.NewPostgresPullRequestsRepository(dbConn, cfg.DatabaseSchema),
		Organizations: db.NewPostgresOrganizationsRepository(dbConn, cfg.DatabaseSchema),
		Users:         usersRepo,
	}, emailSender)

	ctx := context.Background()

	maybeUser, err := usersRepo.GetUserByID(ctx, opts.UserID)
	if err != nil {
		return err
	}
	user, ok := maybeUser.Get()
	if !ok {
		return fmt.Errorf("user %s not found", opts.UserID)
	}

	if opts.Send {
		sent, err := notificationsService.SendEmail(ctx, user, opts.NotificationID)
		if err != nil {
			return err
		}
		log.Printf("📋 Completed successfully - email sent: %t", sent)
		return nil
	}

	maybeNotification, err := notificationsRepo.GetNotificationByID(ctx, opts.NotificationID)
	if err != nil {
		return err
	}
	notification, ok := maybeNotification.Get()
	if !ok {
		return fmt.Errorf("notification %s not found", opts.NotificationID)
	}

	maybeMetadata, err := notificationsService.EmailMetadata(ctx, user, notification)
	if err != nil {
		return err
	}
	metadata, ok := maybeMetadata.Get()
	if !ok {
		log.Printf("⚠️ Notification %s has nothing to render", opts.NotificationID)
		return nil
	}

	body, err := notificationsService.RenderEmail(metadata)
	if err != nil {
		return err
	}

	fmt.Printf("Subject: %s\n\n%s\n", notificationsService.Subject(metadata), body)
	return nil
}
