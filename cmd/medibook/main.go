package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medibook/medibook/internal/chat"
	"github.com/medibook/medibook/internal/config"
	"github.com/medibook/medibook/internal/directory"
	"github.com/medibook/medibook/internal/forms"
	"github.com/medibook/medibook/internal/highlight"
	"github.com/medibook/medibook/internal/platform/api"
	"github.com/medibook/medibook/internal/platform/notify"
	"github.com/medibook/medibook/internal/platform/storage"
	"github.com/medibook/medibook/internal/platform/telemetry"
	"github.com/medibook/medibook/internal/session"
	"github.com/medibook/medibook/internal/video"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "medibook",
		Short:         "Client for the medibook appointment platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(loginCmd())
	rootCmd.AddCommand(registerCmd())
	rootCmd.AddCommand(logoutCmd())
	rootCmd.AddCommand(whoamiCmd())
	rootCmd.AddCommand(doctorsCmd())
	rootCmd.AddCommand(doctorCmd())
	rootCmd.AddCommand(chatCmd())
	rootCmd.AddCommand(callCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// App bootstrap
// ---------------------------------------------------------------------------

// app wires the shared client state the way the original mounts its two
// context providers around every page.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	api       *api.Client
	notifier  notify.Notifier
	sessions  *session.Store
	directory *directory.Cache
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger := telemetry.NewLogger(cfg.Env)

	store, err := storage.Open(cfg.StateDir)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(cfg.BackendURL, cfg.ChatURL, cfg.HTTPTimeout, logger)
	notifier := notify.NewTerminal(os.Stderr)

	return &app{
		cfg:       cfg,
		log:       logger,
		api:       client,
		notifier:  notifier,
		sessions:  session.NewStore(store, client, notifier, logger),
		directory: directory.NewCache(client, notifier, logger),
	}, nil
}

// ---------------------------------------------------------------------------
// Patient session commands
// ---------------------------------------------------------------------------

func loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in as a patient",
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
			token, err := a.api.LoginUser(ctx, email, password)
			if err != nil {
				return userFacing(err, "login failed")
			}
			a.sessions.SetToken(ctx, session.RolePatient, token)
			a.notifier.Successf("Login successful")
			return nil
		},
	}
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a patient account",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			if err := forms.Check(forms.RegisterForm{Name: name, Email: email, Password: password}); err != nil {
				return err
			}

			ctx := cmd.Context()
			token, err := a.api.RegisterUser(ctx, name, email, password)
			if err != nil {
				return userFacing(err, "registration failed")
			}
			a.sessions.SetToken(ctx, session.RolePatient, token)
			a.notifier.Successf("Sign Up successful")
			return nil
		},
	}
	cmd.Flags().String("name", "", "Full name")
	cmd.Flags().String("email", "", "Account email")
	cmd.Flags().String("password", "", "Account password")
	cmd.MarkFlagRequired("name")
	cmd.MarkFlagRequired("email")
	cmd.MarkFlagRequired("password")
	return cmd
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the stored patient and doctor sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.sessions.Logout()
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			out := cmd.OutOrStdout()
			for _, role := range []session.Role{session.RolePatient, session.RoleDoctor} {
				if a.sessions.Token(role) == "" {
					fmt.Fprintf(out, "%s: not logged in\n", role)
					continue
				}
				line := fmt.Sprintf("%s: logged in", role)
				if info, err := a.sessions.TokenInfo(role); err == nil {
					if info.Subject != "" {
						line += " as " + info.Subject
					}
					if info.Expired() {
						line += " (token expired)"
					}
				}
				fmt.Fprintln(out, line)
			}

			a.sessions.LoadUserProfile(ctx)
			if p := a.sessions.UserProfile(); p != nil {
				fmt.Fprintf(out, "profile: %s <%s>\n", p.Name, p.Email)
			}
			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// Directory command
// ---------------------------------------------------------------------------

func doctorsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctors",
		Short: "List the doctor directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			a.directory.Refresh(cmd.Context())

			speciality, _ := cmd.Flags().GetString("speciality")
			doctors := a.directory.Doctors()
			if speciality != "" {
				doctors = a.directory.BySpeciality(speciality)
			}
			renderDoctors(cmd.OutOrStdout(), doctors, a.cfg.Currency)
			return nil
		},
	}
	cmd.Flags().String("speciality", "", "Filter by speciality")
	return cmd
}

// ---------------------------------------------------------------------------
// Chat and video commands
// ---------------------------------------------------------------------------

func chatCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Talk to the medical assistant",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			conv := chat.NewConversation(a.api, a.log)
			emphasis := highlight.New("\x1b[1m", "\x1b[0m")

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Medical assistant. Type a message, empty line to quit.")
			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					return nil
				}
				reply, ok := conv.Send(cmd.Context(), line)
				if !ok {
					continue
				}
				fmt.Fprintln(out, emphasis.Apply(reply.Content))
			}
		},
	}
}

func callCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "call",
		Short: "Open a video consultation room",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			room, _ := cmd.Flags().GetString("room")
			name, _ := cmd.Flags().GetString("name")
			if name == "" {
				a.sessions.LoadUserProfile(cmd.Context())
				if p := a.sessions.UserProfile(); p != nil {
					name = p.Name
				}
			}

			consult := video.NewConsult(a.cfg.VideoDomain, room, name)
			url, err := consult.Start(a.cfg.CallAddr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Room:  %s\n", consult.Room())
			fmt.Fprintf(out, "Join:  %s\n", url)
			fmt.Fprintln(out, "Press Ctrl+C to leave the consultation.")

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
			<-stop

			ctx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTPTimeout)
			defer cancel()
			return consult.Close(ctx)
		},
	}
	cmd.Flags().String("room", "", "Room name (generated when empty)")
	cmd.Flags().String("name", "", "Display name in the call")
	return cmd
}

// userFacing prefers the backend's own message when one exists.
func userFacing(err error, fallback string) error {
	if be, ok := api.AsBackendError(err); ok && be.UserMessage() != "" {
		return fmt.Errorf("%s", be.UserMessage())
	}
	return fmt.Errorf("%s: %w", fallback, err)
}
