package get_dashboard

import (
	apptmodels "github.com/m04kA/SMC-SalonConsole/internal/service/appointments/models"
	getDashboard "github.com/m04kA/SMC-SalonConsole/internal/usecase/get_dashboard"
)

// DashboardResponse HTTP response model
type DashboardResponse struct {
	SalonID           int64                            `json:"salonId"`
	Scope             string                           `json:"scope"`
	Timezone          string                           `json:"timezone"`
	TotalAppointments int                              `json:"totalAppointments"`
	Scheduled         int                              `json:"scheduled"`
	Completed         int                              `json:"completed"`
	Cancelled         int                              `json:"cancelled"`
	Upcoming          int                              `json:"upcoming"`
	Revenue           float64                          `json:"revenue"`
	PaidRevenue       float64                          `json:"paidRevenue"`
	UnpaidRevenue     float64                          `json:"unpaidRevenue"`
	Daily             []DayCount                       `json:"daily"`
	Monthly           []MonthRevenue                   `json:"monthly"`
	TopServices       []ServiceCount                   `json:"topServices"`
	Stylists          []StylistPerformance             `json:"stylists"`
	Retention         []RetentionBucket                `json:"retention"`
	Latest            []apptmodels.AppointmentResponse `json:"latest"`
}

type DayCount struct {
	Date  string `json:"date"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

type MonthRevenue struct {
	Label     string  `json:"label"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Total     float64 `json:"total"`
	Completed float64 `json:"completed"`
}

type ServiceCount struct {
	Service string `json:"service"`
	Count   int    `json:"count"`
}

type StylistPerformance struct {
	StylistID      int64   `json:"stylistId"`
	StylistName    string  `json:"stylistName"`
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	Cancelled      int     `json:"cancelled"`
	Revenue        float64 `json:"revenue"`
	CompletionRate float64 `json:"completionRate"`
}

type RetentionBucket struct {
	Label     string `json:"label"`
	MinVisits int    `json:"minVisits"`
	MaxVisits int    `json:"maxVisits,omitempty"`
	Customers int    `json:"customers"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getDashboard.Response) *DashboardResponse {
	d := resp.Dashboard
	out := &DashboardResponse{
		SalonID:           resp.SalonID,
		Scope:             string(resp.Scope),
		Timezone:          resp.Timezone,
		TotalAppointments: d.TotalAppointments,
		Scheduled:         d.Scheduled,
		Completed:         d.Completed,
		Cancelled:         d.Cancelled,
		Upcoming:          d.Upcoming,
		Revenue:           d.Revenue,
		PaidRevenue:       d.PaidRevenue,
		UnpaidRevenue:     d.UnpaidRevenue,
		Daily:             make([]DayCount, len(d.Daily)),
		Monthly:           make([]MonthRevenue, len(d.Monthly)),
		TopServices:       make([]ServiceCount, len(d.TopServices)),
		Stylists:          make([]StylistPerformance, len(d.Stylists)),
		Retention:         make([]RetentionBucket, len(d.Retention)),
		Latest:            make([]apptmodels.AppointmentResponse, 0, len(d.Latest)),
	}

	for i, b := range d.Daily {
		out.Daily[i] = DayCount{Date: b.Date.String(), Label: b.Label, Count: b.Count}
	}
	for i, m := range d.Monthly {
		out.Monthly[i] = MonthRevenue{Label: m.Label, Year: m.Year, Month: int(m.Month), Total: m.Total, Completed: m.Completed}
	}
	for i, s := range d.TopServices {
		out.TopServices[i] = ServiceCount{Service: s.Service, Count: s.Count}
	}
	for i, s := range d.Stylists {
		out.Stylists[i] = StylistPerformance{
			StylistID:      s.StylistID,
			StylistName:    s.StylistName,
			Total:          s.Total,
			Completed:      s.Completed,
			Cancelled:      s.Cancelled,
			Revenue:        s.Revenue,
			CompletionRate: s.CompletionRate,
		}
	}
	for i, b := range d.Retention {
		out.Retention[i] = RetentionBucket{Label: b.Label, MinVisits: b.MinVisits, MaxVisits: b.MaxVisits, Customers: b.Customers}
	}
	for _, app := range d.Latest {
		out.Latest = append(out.Latest, *apptmodels.FromDomainAppointment(app))
	}

	return out
}
