package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/shopfloor/shopfloor/cmd/app/commands"
	"github.com/shopfloor/shopfloor/internal/app"
	"github.com/shopfloor/shopfloor/internal/config"
)

// withContainer runs fn against a container built from the environment and shuts
// it down afterwards.
func withContainer(ctx context.Context, fn func(container *app.Container) error) error {
	container := app.NewContainer(config.Load())
	defer func() { _ = container.Shutdown(ctx) }()
	return fn(container)
}

func addressFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "street", Usage: "Street name"},
		&cli.IntFlag{Name: "number", Usage: "House number"},
		&cli.IntFlag{Name: "postal-code", Usage: "Postal code"},
		&cli.StringFlag{Name: "city", Usage: "City"},
	}
}

func addressParams(cmd *cli.Command) commands.AddressParams {
	return commands.AddressParams{
		Street:     cmd.String("street"),
		Number:     int(cmd.Int("number")),
		PostalCode: int(cmd.Int("postal-code")),
		City:       cmd.String("city"),
	}
}

func maintenanceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "machine-id", Aliases: []string{"m"}, Required: true, Usage: "Machine ID"},
		&cli.IntFlag{Name: "technician-id", Aliases: []string{"t"}, Required: true, Usage: "Technician user ID"},
		&cli.StringFlag{Name: "execution-date", Usage: "Planned day in YYYY-MM-DD format"},
		&cli.StringFlag{Name: "start", Usage: "Start in RFC 3339 or YYYY-MM-DD HH:MM format"},
		&cli.StringFlag{Name: "end", Usage: "End in RFC 3339 or YYYY-MM-DD HH:MM format"},
		&cli.StringFlag{Name: "reason", Aliases: []string{"r"}, Usage: "Reason for the maintenance"},
		&cli.StringFlag{Name: "comments", Usage: "Free-form comments"},
		&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "PLANNED, IN_PROGRESS or COMPLETED"},
		formatFlag(),
	}
}

func maintenanceParams(cmd *cli.Command) commands.MaintenanceParams {
	return commands.MaintenanceParams{
		MachineID:     int(cmd.Int("machine-id")),
		TechnicianID:  int(cmd.Int("technician-id")),
		ExecutionDate: cmd.String("execution-date"),
		StartDate:     cmd.String("start"),
		EndDate:       cmd.String("end"),
		Reason:        cmd.String("reason"),
		Comments:      cmd.String("comments"),
		Status:        cmd.String("status"),
	}
}

func getShopfloorCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-user",
			Usage: "Create a user and print its generated password",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "first-name", Required: true, Usage: "First name"},
				&cli.StringFlag{Name: "last-name", Required: true, Usage: "Last name"},
				&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true, Usage: "Email address"},
				&cli.StringFlag{Name: "phone", Usage: "Phone number"},
				&cli.StringFlag{Name: "birthdate", Usage: "Birth date in YYYY-MM-DD format"},
				&cli.StringFlag{
					Name:    "role",
					Aliases: []string{"r"},
					Usage:   "ADMINISTRATOR, SITE_MANAGER, TECHNICIAN or MANAGER",
				},
				formatFlag(),
			}, addressFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					userUseCase, err := container.UserUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateUser(ctx, userUseCase, container.Logger(), commands.UserParams{
						FirstName:   cmd.String("first-name"),
						LastName:    cmd.String("last-name"),
						Email:       cmd.String("email"),
						PhoneNumber: cmd.String("phone"),
						Birthdate:   cmd.String("birthdate"),
						Role:        cmd.String("role"),
						Address:     addressParams(cmd),
					}, cmd.String("format"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "create-site",
			Usage: "Create an active site",
			Flags: append([]cli.Flag{
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Site name"},
				&cli.IntFlag{Name: "responsible-id", Required: true, Usage: "Responsible user ID"},
				formatFlag(),
			}, addressFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					siteUseCase, err := container.SiteUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateSite(ctx, siteUseCase, container.Logger(), commands.SiteParams{
						Name:          cmd.String("name"),
						ResponsibleID: int(cmd.Int("responsible-id")),
						Address:       addressParams(cmd),
					}, cmd.String("format"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "create-machine",
			Usage: "Register a machine on a site",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "site-id", Required: true, Usage: "Site ID"},
				&cli.IntFlag{Name: "technician-id", Required: true, Usage: "Technician user ID"},
				&cli.StringFlag{Name: "code", Aliases: []string{"c"}, Required: true, Usage: "Unique machine code"},
				&cli.StringFlag{Name: "location", Usage: "Location within the site"},
				&cli.StringFlag{Name: "product-info", Usage: "Product description"},
				&cli.StringFlag{Name: "machine-status", Usage: "Operating state, e.g. RUNNING"},
				&cli.StringFlag{Name: "production-status", Usage: "HEALTHY, FAILING or NEEDS_MAINTENANCE"},
				&cli.StringFlag{Name: "last-maintenance", Usage: "Last maintenance day in YYYY-MM-DD format"},
				&cli.StringFlag{Name: "future-maintenance", Usage: "Next maintenance day in YYYY-MM-DD format"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					machineUseCase, err := container.MachineUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateMachine(ctx, machineUseCase, container.Logger(), commands.MachineParams{
						SiteID:            int(cmd.Int("site-id")),
						TechnicianID:      int(cmd.Int("technician-id")),
						Code:              cmd.String("code"),
						Location:          cmd.String("location"),
						ProductInfo:       cmd.String("product-info"),
						MachineStatus:     cmd.String("machine-status"),
						ProductionStatus:  cmd.String("production-status"),
						LastMaintenance:   cmd.String("last-maintenance"),
						FutureMaintenance: cmd.String("future-maintenance"),
					}, cmd.String("format"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "create-maintenance",
			Usage: "Plan a maintenance on a machine",
			Flags: maintenanceFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					maintenanceUseCase, err := container.MaintenanceUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateMaintenance(
						ctx,
						maintenanceUseCase,
						container.Logger(),
						maintenanceParams(cmd),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "update-maintenance",
			Usage: "Update a maintenance; COMPLETED advances the machine's last maintenance",
			Flags: append([]cli.Flag{
				&cli.IntFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Maintenance ID"},
			}, maintenanceFlags()...),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					maintenanceUseCase, err := container.MaintenanceUseCase()
					if err != nil {
						return err
					}
					return commands.RunUpdateMaintenance(
						ctx,
						maintenanceUseCase,
						container.Logger(),
						int(cmd.Int("id")),
						maintenanceParams(cmd),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "create-report",
			Usage: "File a technician report for a maintenance",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "site-id", Required: true, Usage: "Site ID"},
				&cli.IntFlag{Name: "maintenance-id", Required: true, Usage: "Maintenance ID"},
				&cli.IntFlag{Name: "technician-id", Required: true, Usage: "Technician user ID"},
				&cli.StringFlag{Name: "start-date", Usage: "Start day in YYYY-MM-DD format"},
				&cli.StringFlag{Name: "start-time", Usage: "Start time in HH:MM[:SS] format"},
				&cli.StringFlag{Name: "end-date", Usage: "End day in YYYY-MM-DD format"},
				&cli.StringFlag{Name: "end-time", Usage: "End time in HH:MM[:SS] format"},
				&cli.StringFlag{Name: "reason", Aliases: []string{"r"}, Usage: "Reason"},
				&cli.StringFlag{Name: "remarks", Usage: "Remarks"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					reportUseCase, err := container.ReportUseCase()
					if err != nil {
						return err
					}
					return commands.RunCreateReport(ctx, reportUseCase, container.Logger(), commands.ReportParams{
						SiteID:        int(cmd.Int("site-id")),
						MaintenanceID: int(cmd.Int("maintenance-id")),
						TechnicianID:  int(cmd.Int("technician-id")),
						StartDate:     cmd.String("start-date"),
						StartTime:     cmd.String("start-time"),
						EndDate:       cmd.String("end-date"),
						EndTime:       cmd.String("end-time"),
						Reason:        cmd.String("reason"),
						Remarks:       cmd.String("remarks"),
					}, cmd.String("format"), commands.DefaultIO())
				})
			},
		},
		{
			Name:  "list-notifications",
			Usage: "List unread notifications, newest first",
			Flags: []cli.Flag{
				&cli.BoolFlag{Name: "read", Usage: "List read notifications instead"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					notificationUseCase, err := container.NotificationUseCase()
					if err != nil {
						return err
					}
					return commands.RunListNotifications(
						ctx,
						notificationUseCase,
						container.Logger(),
						cmd.Bool("read"),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
		{
			Name:  "mark-notification-read",
			Usage: "Mark a notification as read",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "id", Aliases: []string{"i"}, Required: true, Usage: "Notification ID"},
				formatFlag(),
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return withContainer(ctx, func(container *app.Container) error {
					notificationUseCase, err := container.NotificationUseCase()
					if err != nil {
						return err
					}
					return commands.RunMarkNotificationRead(
						ctx,
						notificationUseCase,
						container.Logger(),
						int(cmd.Int("id")),
						cmd.String("format"),
						commands.DefaultIO(),
					)
				})
			},
		},
	}
}
