package domain

import (
	"time"

	"github.com/shopfloor/shopfloor/internal/validation"
)

// Report is the technician's account of a maintenance on a site.
type Report struct {
	ID          int
	Site        *Site
	Maintenance *Maintenance
	Technician  *User
	StartDate   time.Time
	StartTime   TimeOfDay
	EndDate     time.Time
	EndTime     TimeOfDay
	Reason      string
	Remarks     string
}

// ReportBuilder accumulates report fields; only Build validates.
type ReportBuilder struct {
	site        *Site
	maintenance *Maintenance
	technician  *User
	startDate   time.Time
	startTime   *TimeOfDay
	endDate     time.Time
	endTime     *TimeOfDay
	reason      string
	remarks     string
}

// NewReportBuilder returns an empty builder.
func NewReportBuilder() *ReportBuilder {
	return &ReportBuilder{}
}

func (b *ReportBuilder) WithSite(site *Site) *ReportBuilder {
	b.site = site
	return b
}

func (b *ReportBuilder) WithMaintenance(maintenance *Maintenance) *ReportBuilder {
	b.maintenance = maintenance
	return b
}

func (b *ReportBuilder) WithTechnician(technician *User) *ReportBuilder {
	b.technician = technician
	return b
}

func (b *ReportBuilder) WithStartDate(day time.Time) *ReportBuilder {
	b.startDate = day
	return b
}

func (b *ReportBuilder) WithStartTime(t TimeOfDay) *ReportBuilder {
	b.startTime = &t
	return b
}

func (b *ReportBuilder) WithEndDate(day time.Time) *ReportBuilder {
	b.endDate = day
	return b
}

func (b *ReportBuilder) WithEndTime(t TimeOfDay) *ReportBuilder {
	b.endTime = &t
	return b
}

func (b *ReportBuilder) WithReason(reason string) *ReportBuilder {
	b.reason = reason
	return b
}

func (b *ReportBuilder) WithRemarks(remarks string) *ReportBuilder {
	b.remarks = remarks
	return b
}

// Build returns the report, or an *validation.InformationRequiredError. An end date
// before the start date is reported on "endDate"; on the same day an end time before
// the start time is reported on "endTime".
func (b *ReportBuilder) Build() (*Report, error) {
	v := validation.NewViolations()

	v.Require("maintenance", b.maintenance, ReportMaintenanceRequired)
	v.Require("site", b.site, ReportSiteRequired)
	v.Require("technician", b.technician, ReportTechnicianRequired)
	startDateSet := v.Require("startDate", b.startDate, ReportStartDateRequired)
	if b.startTime == nil {
		v.Add("startTime", ReportStartTimeRequired)
	}
	endDateSet := v.Require("endDate", b.endDate, ReportEndDateRequired)
	if b.endTime == nil {
		v.Add("endTime", ReportEndTimeRequired)
	}
	v.Require("reason", b.reason, ReportReasonRequired, validation.NotBlank)

	if startDateSet && endDateSet {
		start, end := DateOf(b.startDate), DateOf(b.endDate)
		switch {
		case end.Before(start):
			v.Add("endDate", ReportEndDateBeforeStart)
		case end.Equal(start) && b.startTime != nil && b.endTime != nil && b.endTime.Before(*b.startTime):
			v.Add("endTime", ReportEndTimeBeforeStart)
		}
	}

	if !v.Empty() {
		return nil, validation.NewInformationRequiredError("report", v)
	}

	return &Report{
		Site:        b.site,
		Maintenance: b.maintenance,
		Technician:  b.technician,
		StartDate:   DateOf(b.startDate),
		StartTime:   *b.startTime,
		EndDate:     DateOf(b.endDate),
		EndTime:     *b.endTime,
		Reason:      b.reason,
		Remarks:     b.remarks,
	}, nil
}
