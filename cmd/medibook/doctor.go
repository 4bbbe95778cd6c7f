package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/medibook/medibook/internal/doctor"
	"github.com/medibook/medibook/internal/forms"
	"github.com/medibook/medibook/internal/platform/api"
	"github.com/medibook/medibook/internal/session"
)

func doctorCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Doctor-side commands",
	}
	cmd.AddCommand(doctorLoginCmd())
	cmd.AddCommand(doctorJoinCmd())
	cmd.AddCommand(doctorProfileCmd())
	cmd.AddCommand(doctorAppointmentsCmd())
	cmd.AddCommand(doctorDashboardCmd())
	cmd.AddCommand(doctorCancelCmd())
	cmd.AddCommand(doctorCompleteCmd())
	return cmd
}

// doctorSession builds the doctor context bound to the stored token.
// Operations on it are no-ops when the token is missing, so commands
// check first and tell the user to log in.
func doctorSession(a *app) (*doctor.Session, error) {
	token := a.sessions.Token(session.RoleDoctor)
	if token == "" {
		return nil, fmt.Errorf("no doctor session; run `medibook doctor login` first")
	}
	return doctor.NewSession(token, a.api, a.notifier, a.log), nil
}

func doctorLoginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a doctor",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if err := forms.Check(forms.LoginForm{Email: email, Password: password}); err != nil {
				return err
			}

			ctx := cmd.Context()
			token, err := a.api.LoginDoctor(ctx, email, password)
			if err != nil {
				return userFacing(err, "doctor login failed")
			}
			a.sessions.SetToken(ctx, session.RoleDoctor, token)
			a.notifier.Successf("Doctor login successful")
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func doctorJoinCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "join",
		Short: "Register a new doctor (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			form := forms.DoctorJoinForm{}
			form.Name, _ = cmd.Flags().GetString("name")
			form.Email, _ = cmd.Flags().GetString("email")
			form.Password, _ = cmd.Flags().GetString("password")
			form.Speciality, _ = cmd.Flags().GetString("speciality")
			form.Degree, _ = cmd.Flags().GetString("degree")
			form.Experience, _ = cmd.Flags().GetString("experience")
			form.About, _ = cmd.Flags().GetString("about")
			form.Fees, _ = cmd.Flags().GetString("fees")
			form.Address1, _ = cmd.Flags().GetString("address1")
			form.Address2, _ = cmd.Flags().GetString("address2")
			form.ImagePath, _ = cmd.Flags().GetString("image")
			adminToken, _ := cmd.Flags().GetString("admin-token")

			if err := forms.Check(form); err != nil {
				return err
			}

			image, err := os.ReadFile(form.ImagePath)
			if err != nil {
				return fmt.Errorf("read image: %w", err)
			}

			err = a.api.AddDoctor(cmd.Context(), adminToken, api.DoctorJoinRequest{
				Name:       form.Name,
				Email:      form.Email,
				Password:   form.Password,
				Speciality: form.Speciality,
				Degree:     form.Degree,
				Experience: form.Experience,
				About:      form.About,
				Fees:       form.Fees,
				Address:    api.Address{Line1: form.Address1, Line2: form.Address2},
				ImageName:  filepath.Base(form.ImagePath),
				Image:      image,
			})
			if err != nil {
				return userFacing(err, "doctor registration failed")
			}
			a.notifier.Successf("Doctor registered successfully!")
			return nil
		},
	}
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.Flags().String("speciality", "General physician", "Speciality")
	cmd.Flags().String("degree", "", "Degree")
	cmd.Flags().String("experience", "1 Year", "Experience")
	cmd.Flags().String("about", "", "About the doctor")
	cmd.Flags().String("fees", "", "Consultation fees")
	cmd.Flags().String("address1", "", "Address line 1")
	cmd.Flags().String("address2", "", "Address line 2")
	cmd.Flags().String("image", "", "Path to the doctor's picture")
	cmd.Flags().String("admin-token", "", "Admin token")
	cmd.MarkFlagRequired("admin-token")
	return cmd
}

func doctorProfileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "profile",
		Short: "Show the doctor's own profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ds, err := doctorSession(a)
			if err != nil {
				return err
			}
			ds.LoadProfile(cmd.Context())
			p := ds.Profile()
			if p == nil {
				return nil
			}
			renderDoctorProfile(cmd.OutOrStdout(), p, a.cfg.Currency)
			return nil
		},
	}
}

func doctorAppointmentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "appointments",
		Short: "List the doctor's appointments, most recent first",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ds, err := doctorSession(a)
			if err != nil {
				return err
			}
			ds.LoadAppointments(cmd.Context())
			renderAppointments(cmd.OutOrStdout(), ds.Appointments())
			return nil
		},
	}
}

func doctorDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show earnings, appointment and patient counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ds, err := doctorSession(a)
			if err != nil {
				return err
			}
			ds.LoadDashboard(cmd.Context())
			d := ds.Dashboard()
			if d == nil {
				return nil
			}
			renderDashboard(cmd.OutOrStdout(), d, a.cfg.Currency)
			return nil
		},
	}
}

func doctorCancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <appointment-id>",
		Short: "Cancel an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ds, err := doctorSession(a)
			if err != nil {
				return err
			}
			ds.Cancel(cmd.Context(), args[0])
			return nil
		},
	}
}

func doctorCompleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "complete <appointment-id>",
		Short: "Mark an appointment completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ds, err := doctorSession(a)
			if err != nil {
				return err
			}
			ds.Complete(cmd.Context(), args[0])
			return nil
		},
	}
}
