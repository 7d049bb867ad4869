package domain

import (
	"github.com/shopfloor/shopfloor/internal/errors"
	"github.com/shopfloor/shopfloor/internal/validation"
)

// Lookup and uniqueness errors.
var (
	ErrUserNotFound         = errors.Wrap(errors.ErrNotFound, "user not found")
	ErrSiteNotFound         = errors.Wrap(errors.ErrNotFound, "site not found")
	ErrMachineNotFound      = errors.Wrap(errors.ErrNotFound, "machine not found")
	ErrMaintenanceNotFound  = errors.Wrap(errors.ErrNotFound, "maintenance not found")
	ErrReportNotFound       = errors.Wrap(errors.ErrNotFound, "report not found")
	ErrNotificationNotFound = errors.Wrap(errors.ErrNotFound, "notification not found")
	ErrKPINotFound          = errors.Wrap(errors.ErrNotFound, "kpi not found")

	// ErrUserAlreadyExists indicates the email address is taken by another user.
	ErrUserAlreadyExists = errors.Wrap(errors.ErrConflict, "user with this email already exists")

	// ErrInvalidCredentials is returned by authentication for an unknown email,
	// a wrong password or an inactive account alike.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")
)

func element(code, message string) validation.RequiredElement {
	return validation.RequiredElement{Code: code, Message: message}
}

// Address violations.
var (
	AddressStreetRequired     = element("STREET_REQUIRED", "Street is required")
	AddressNumberRequired     = element("NUMBER_REQUIRED", "House number is required")
	AddressPostalCodeRequired = element("POSTAL_CODE_REQUIRED", "Postal code is required")
	AddressCityRequired       = element("CITY_REQUIRED", "City is required")
)

// User violations.
var (
	UserFirstNameRequired = element("FIRST_NAME_REQUIRED", "First name is required")
	UserLastNameRequired  = element("LAST_NAME_REQUIRED", "Last name is required")
	UserEmailRequired     = element("EMAIL_REQUIRED", "A valid email address is required")
	UserBirthDateRequired = element("BIRTH_DATE_REQUIRED", "Birth date is required")
	UserRoleRequired      = element("ROLE_REQUIRED", "Role is required")
	UserStatusRequired    = element("STATUS_REQUIRED", "Status is required")
)

// Site violations.
var (
	SiteNameRequired        = element("SITE_NAME_REQUIRED", "Site name is required")
	SiteResponsibleRequired = element("EMPLOYEE_REQUIRED", "A responsible employee is required")
	SiteAddressRequired     = element("ADDRESS_REQUIRED", "Address is required")
	SiteStatusRequired      = element("STATUS_REQUIRED", "Status is required")
)

// Machine violations.
var (
	MachineSiteRequired              = element("SITE_REQUIRED", "Site is required")
	MachineTechnicianRequired        = element("TECHNICIAN_REQUIRED", "Technician is required")
	MachineCodeRequired              = element("CODE_REQUIRED", "Code is required")
	MachineStatusRequired            = element("MACHINESTATUS_REQUIRED", "Machine status is required")
	MachineProductionStatusRequired  = element("PRODUCTIONSTATUS_REQUIRED", "Production status is required")
	MachineLocationRequired          = element("LOCATION_REQUIRED", "Location is required")
	MachineProductInfoRequired       = element("PRODUCTINFO_REQUIRED", "Product information is required")
	MachineFutureMaintenanceRequired = element("FUTURE_MAINTENANCE_REQUIRED", "Next maintenance date is required")
)

// Maintenance violations.
var (
	MaintenanceExecutionDateRequired = element("EXECUTION_DATE_REQUIRED", "Execution date is required")
	MaintenanceStartDateRequired     = element("START_DATE_REQUIRED", "Start date is required")
	MaintenanceEndDateRequired       = element("END_DATE_REQUIRED", "End date is required")
	MaintenanceTechnicianRequired    = element("TECHNICIAN_REQUIRED", "Technician is required")
	MaintenanceReasonRequired        = element("REASON_REQUIRED", "Reason is required")
	MaintenanceStatusRequired        = element("MAINTENANCESTATUS_REQUIRED", "Status is required")
	MaintenanceMachineRequired       = element("MACHINE_REQUIRED", "Machine is required")
	MaintenanceEndDateBeforeStart    = element("END_DATE_BEFORE_START", "End date must not be before the start date")
)

// Report violations.
var (
	ReportMaintenanceRequired = element("MAINTENANCE_REQUIRED", "Maintenance is required")
	ReportSiteRequired        = element("SITE_REQUIRED", "Site is required")
	ReportTechnicianRequired  = element("TECHNICIAN_REQUIRED", "Technician is required")
	ReportStartDateRequired   = element("STARTDATE_REQUIRED", "Start date is required")
	ReportStartTimeRequired   = element("STARTTIME_REQUIRED", "Start time is required")
	ReportEndDateRequired     = element("ENDDATE_REQUIRED", "End date is required")
	ReportEndTimeRequired     = element("ENDTIME_REQUIRED", "End time is required")
	ReportReasonRequired      = element("REASON_REQUIRED", "Reason is required")
	ReportEndDateBeforeStart  = element("END_DATE_BEFORE_START", "End date must not be before the start date")
	ReportEndTimeBeforeStart  = element("END_TIME_BEFORE_START", "End time must not be before the start time")
)
