package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"busbooking/internal/client"
	intconfig "busbooking/internal/config"
	"busbooking/internal/domain"
	"busbooking/internal/store"
	"busbooking/internal/validation"

	"github.com/spf13/cobra"
)

type app struct {
	apiURL    string
	tokenFile string
	api       *client.Client
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".busbooking-session.yaml"
	}
	return filepath.Join(dir, "busbooking", "session.yaml")
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseIDArg(s string) (domain.ID, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return domain.ID(id), nil
}

func rootCmd() *cobra.Command {
	a := &app{}
	env := intconfig.LoadEnv()

	cmd := &cobra.Command{
		Use:          "busctl",
		Short:        "Command line client for the bus booking API",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.api = client.New(a.apiURL, client.NewFileTokens(a.tokenFile))
		},
	}
	cmd.PersistentFlags().StringVar(&a.apiURL, "api", env.APIBaseURL, "API base URL")
	cmd.PersistentFlags().StringVar(&a.tokenFile, "token-file", defaultTokenFile(), "where the access token is kept")

	cmd.AddCommand(a.loginCmd(), a.logoutCmd(), a.meCmd(), a.searchCmd(), a.seatsCmd(), a.listCmd())
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	var in validation.SignIn
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fields := validation.Validate(in); fields != nil {
				return printJSON(cmd.ErrOrStderr(), fields)
			}
			res, err := a.api.Login(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "signed in as %s (%s)\n", res.User.Email, res.User.Roles.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&in.Email, "email", "", "account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "account password")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.api.Logout()
		},
	}
}

func (a *app) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.api.Me(cmd.Context())
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), u)
		},
	}
}

func (a *app) searchCmd() *cobra.Command {
	var in validation.TripSearch
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search scheduled trips between two cities on a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fields := validation.Validate(in); fields != nil {
				return printJSON(cmd.ErrOrStderr(), fields)
			}
			page, err := a.api.SearchTrips(cmd.Context(), in)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, t := range page.Items {
				fmt.Fprintf(out, "#%d  %s %s -> %s  %s  %d chỗ trống\n",
					t.ID, t.DepartureDate, t.DepartureLabel, t.ArrivalLabel, t.PriceLabel, t.AvailableSeats)
			}
			fmt.Fprintf(out, "trang %d/%d, %d chuyến\n", page.CurrentPage, page.TotalPage, page.TotalItems)
			return nil
		},
	}
	cmd.Flags().UintVar(&in.FromCityID, "from", 0, "departure city id")
	cmd.Flags().UintVar(&in.ToCityID, "to", 0, "arrival city id")
	cmd.Flags().StringVar(&in.DepartureDate, "date", "", "departure date (yyyy-mm-dd)")
	cmd.Flags().IntVar(&in.Seats, "seats", 1, "seats needed")
	return cmd
}

func (a *app) seatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seats <trip-id>",
		Short: "Show the seat map of a trip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseIDArg(args[0])
			if err != nil {
				return err
			}
			m, err := a.api.TripSeats(cmd.Context(), id)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, s := range m.Seats {
				mark := "[ ]"
				if s.Booked {
					mark = "[x]"
				}
				fmt.Fprintf(out, "%s %2d  ", mark, s.Number)
				if (i+1)%4 == 0 {
					fmt.Fprintln(out)
				}
			}
			fmt.Fprintf(out, "\n%d/%d chỗ trống\n", m.AvailableSeats, m.TotalSeats)
			return nil
		},
	}
}

// listCmd fetches through a store slice so errors surface the same way
// they do in the interactive client.
func (a *app) listCmd() *cobra.Command {
	var f domain.ListFilter
	var active string
	cmd := &cobra.Command{
		Use:   "list <resource>",
		Short: "List a resource, e.g. locations or points",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if active != "" {
				v, err := strconv.ParseBool(active)
				if err != nil {
					return fmt.Errorf("invalid --active %q", active)
				}
				f.IsActive = &v
			}

			st := store.New()
			defer st.Close()
			slice := store.NewSlice[map[string]any](st, args[0])
			res := client.NewResource[map[string]any](a.api, args[0])

			_, _ = store.RunList[map[string]any](cmd.Context(), slice, res, f)

			snap := slice.Snapshot()
			if snap.Error != "" {
				return errors.New(snap.Error)
			}
			return printJSON(cmd.OutOrStdout(), snap.List)
		},
	}
	cmd.Flags().StringVar(&f.Search, "search", "", "search text")
	cmd.Flags().StringVar(&f.TypeOrCityID, "type-or-city", "", "type or city id filter")
	cmd.Flags().StringVar(&active, "active", "", "true or false")
	cmd.Flags().IntVar(&f.PageSize, "size", domain.DefaultPageSize, "page size")
	cmd.Flags().IntVar(&f.PageNumber, "page", 1, "page number")
	return cmd
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
