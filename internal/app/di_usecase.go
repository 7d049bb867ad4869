package app

import (
	"fmt"

	"github.com/shopfloor/shopfloor/internal/notification"
	"github.com/shopfloor/shopfloor/internal/repository"
	"github.com/shopfloor/shopfloor/internal/usecase"
)

// observed bundles what every publishing use case is built with.
type observed struct {
	persistence notification.Observer
	opts        []usecase.Option
}

func (c *Container) observed() (observed, error) {
	persistence, err := c.PersistenceObserver()
	if err != nil {
		return observed{}, err
	}

	var opts []usecase.Option
	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return observed{}, err
		}
		opts = append(opts, usecase.WithDeliveryMetrics(businessMetrics))
	}

	return observed{persistence: persistence, opts: opts}, nil
}

// UserUseCase returns the user use case.
func (c *Container) UserUseCase() (usecase.UserUseCase, error) {
	return lazy(c, &c.userUseCaseInit, "userUseCase", &c.userUseCase, c.initUserUseCase)
}

// SiteUseCase returns the site use case.
func (c *Container) SiteUseCase() (usecase.SiteUseCase, error) {
	return lazy(c, &c.siteUseCaseInit, "siteUseCase", &c.siteUseCase, c.initSiteUseCase)
}

// MachineUseCase returns the machine use case, wrapped with metrics when enabled.
func (c *Container) MachineUseCase() (usecase.MachineUseCase, error) {
	return lazy(c, &c.machineUseCaseInit, "machineUseCase", &c.machineUseCase, c.initMachineUseCase)
}

// MaintenanceUseCase returns the maintenance use case, wrapped with metrics when enabled.
func (c *Container) MaintenanceUseCase() (usecase.MaintenanceUseCase, error) {
	return lazy(c, &c.maintenanceUseCaseInit, "maintenanceUseCase", &c.maintenanceUseCase,
		c.initMaintenanceUseCase)
}

// ReportUseCase returns the report use case.
func (c *Container) ReportUseCase() (usecase.ReportUseCase, error) {
	return lazy(c, &c.reportUseCaseInit, "reportUseCase", &c.reportUseCase, c.initReportUseCase)
}

// NotificationUseCase returns the notification use case.
func (c *Container) NotificationUseCase() (usecase.NotificationUseCase, error) {
	return lazy(c, &c.notificationUseCaseInit, "notificationUseCase", &c.notificationUseCase,
		c.initNotificationUseCase)
}

// KPIUseCase returns the KPI use case.
func (c *Container) KPIUseCase() (usecase.KPIUseCase, error) {
	return lazy(c, &c.kpiUseCaseInit, "kpiUseCase", &c.kpiUseCase, c.initKPIUseCase)
}

func (c *Container) initUserUseCase() (usecase.UserUseCase, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for user use case: %w", err)
	}
	o, err := c.observed()
	if err != nil {
		return nil, fmt.Errorf("failed to get observers for user use case: %w", err)
	}

	useCase := usecase.NewUserUseCase(
		repository.NewUserRepository(session),
		c.PasswordService(),
		o.persistence,
		c.Logger(),
		o.opts...,
	)
	if err := c.subscribe(useCase); err != nil {
		return nil, err
	}
	return useCase, nil
}

func (c *Container) initSiteUseCase() (usecase.SiteUseCase, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for site use case: %w", err)
	}
	o, err := c.observed()
	if err != nil {
		return nil, fmt.Errorf("failed to get observers for site use case: %w", err)
	}

	useCase := usecase.NewSiteUseCase(
		repository.NewSiteRepository(session),
		repository.NewUserRepository(session),
		repository.NewMachineRepository(session),
		o.persistence,
		c.Logger(),
		o.opts...,
	)
	if err := c.subscribe(useCase); err != nil {
		return nil, err
	}
	return useCase, nil
}

func (c *Container) initMachineUseCase() (usecase.MachineUseCase, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for machine use case: %w", err)
	}
	o, err := c.observed()
	if err != nil {
		return nil, fmt.Errorf("failed to get observers for machine use case: %w", err)
	}

	var useCase usecase.MachineUseCase = usecase.NewMachineUseCase(
		repository.NewMachineRepository(session),
		repository.NewSiteRepository(session),
		repository.NewUserRepository(session),
		o.persistence,
		c.Logger(),
		o.opts...,
	)
	if err := c.subscribe(useCase); err != nil {
		return nil, err
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for machine use case: %w", err)
		}
		useCase = usecase.NewMachineUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}

func (c *Container) initMaintenanceUseCase() (usecase.MaintenanceUseCase, error) {
	machineUseCase, err := c.MachineUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get machine use case for maintenance use case: %w", err)
	}
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for maintenance use case: %w", err)
	}
	o, err := c.observed()
	if err != nil {
		return nil, fmt.Errorf("failed to get observers for maintenance use case: %w", err)
	}

	var useCase usecase.MaintenanceUseCase = usecase.NewMaintenanceUseCase(
		repository.NewMaintenanceRepository(session),
		repository.NewMachineRepository(session),
		repository.NewUserRepository(session),
		machineUseCase,
		o.persistence,
		c.Logger(),
		o.opts...,
	)
	if err := c.subscribe(useCase); err != nil {
		return nil, err
	}

	if c.config.MetricsEnabled {
		businessMetrics, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for maintenance use case: %w", err)
		}
		useCase = usecase.NewMaintenanceUseCaseWithMetrics(useCase, businessMetrics)
	}
	return useCase, nil
}

func (c *Container) initReportUseCase() (usecase.ReportUseCase, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for report use case: %w", err)
	}
	o, err := c.observed()
	if err != nil {
		return nil, fmt.Errorf("failed to get observers for report use case: %w", err)
	}

	useCase := usecase.NewReportUseCase(
		repository.NewReportRepository(session),
		repository.NewSiteRepository(session),
		repository.NewMaintenanceRepository(session),
		repository.NewUserRepository(session),
		o.persistence,
		c.Logger(),
		o.opts...,
	)
	if err := c.subscribe(useCase); err != nil {
		return nil, err
	}
	return useCase, nil
}

func (c *Container) initNotificationUseCase() (usecase.NotificationUseCase, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for notification use case: %w", err)
	}
	return usecase.NewNotificationUseCase(repository.NewNotificationRepository(session)), nil
}

func (c *Container) initKPIUseCase() (usecase.KPIUseCase, error) {
	session, err := c.NewSession()
	if err != nil {
		return nil, fmt.Errorf("failed to get session for kpi use case: %w", err)
	}
	return usecase.NewKPIUseCase(
		repository.NewKPIRepository(session),
		repository.NewKPIValueRepository(session),
	), nil
}
