package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/medibook/medibook/internal/platform/api"
)

// slotDateLayouts are the formats the backend has been seen delivering
// slot dates in; the underscore layout is the booking widget's native
// one.
var slotDateLayouts = []string{
	"2_1_2006",
	"2006-01-02",
	time.RFC3339,
}

// formatSlotDate renders a slot date long-form ("January 2, 2006"),
// falling back to the raw string when it cannot be parsed.
func formatSlotDate(raw string) string {
	for _, layout := range slotDateLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.Format("January 2, 2006")
		}
	}
	return raw
}

func appointmentStatus(a api.Appointment) string {
	switch {
	case a.Cancelled:
		return "Cancelled"
	case a.Completed:
		return "Completed"
	default:
		return "Upcoming"
	}
}

func renderDoctors(w io.Writer, doctors []api.Doctor, currency string) {
	if len(doctors) == 0 {
		fmt.Fprintln(w, "No doctors found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tSPECIALITY\tFEES\tEXPERIENCE\tAVAILABLE")
	for _, d := range doctors {
		available := "no"
		if d.Available {
			available = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s%.0f\t%s\t%s\n",
			d.ID, d.Name, d.Speciality, currency, d.Fees, d.Experience, available)
	}
	tw.Flush()
}

func renderDoctorProfile(w io.Writer, d *api.Doctor, currency string) {
	fmt.Fprintf(w, "%s (%s)\n", d.Name, d.Degree)
	fmt.Fprintf(w, "Speciality:  %s\n", d.Speciality)
	fmt.Fprintf(w, "Experience:  %s\n", d.Experience)
	fmt.Fprintf(w, "Fees:        %s%.0f\n", currency, d.Fees)
	if d.Address.Line1 != "" || d.Address.Line2 != "" {
		fmt.Fprintf(w, "Address:     %s\n", strings.TrimSpace(d.Address.Line1+" "+d.Address.Line2))
	}
	if d.About != "" {
		fmt.Fprintf(w, "About:       %s\n", d.About)
	}
}

func renderAppointments(w io.Writer, appointments []api.Appointment) {
	if len(appointments) == 0 {
		fmt.Fprintln(w, "No appointments.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPATIENT\tDATE\tTIME\tSTATUS")
	for _, a := range appointments {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			a.ID, a.UserData.Name, formatSlotDate(a.SlotDate), a.SlotTime, appointmentStatus(a))
	}
	tw.Flush()
}

func renderDashboard(w io.Writer, d *api.DashboardData, currency string) {
	fmt.Fprintf(w, "Earnings:      %s%.0f\n", currency, d.Earnings)
	fmt.Fprintf(w, "Appointments:  %d\n", d.Appointments)
	fmt.Fprintf(w, "Patients:      %d\n", d.Patients)

	latest := d.LatestForDisplay()
	if len(latest) == 0 {
		return
	}
	fmt.Fprintln(w, "\nLatest bookings:")
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, a := range latest {
		fmt.Fprintf(tw, "  %s\t%s %s\t%s\n",
			a.UserData.Name, formatSlotDate(a.SlotDate), a.SlotTime, appointmentStatus(a))
	}
	tw.Flush()
}
