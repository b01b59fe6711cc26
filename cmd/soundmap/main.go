// Command soundmap is the terminal client for the artist relation
// explorer: log in, wander the graph, save the networks you find.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"soundmap/application/ports"
	"soundmap/application/services"
	"soundmap/infrastructure/config"
	"soundmap/infrastructure/di"
	"soundmap/interfaces/tui"
	apperrors "soundmap/pkg/errors"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "soundmap",
		Short:         "Explore artist relation graphs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newSignupCmd())
	root.AddCommand(newLoginCmd())
	root.AddCommand(newLogoutCmd())
	root.AddCommand(newWhoamiCmd())
	root.AddCommand(newExploreCmd())
	root.AddCommand(newLibraryCmd())
	return root
}

func loadContainer() (*di.Container, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	container, err := di.InitializeContainer(cfg)
	if err != nil {
		return nil, err
	}
	container.Hooks.SetHandler(func() {
		fmt.Fprintln(os.Stderr, "session expired, please log in again")
	})
	return container, nil
}

// promptPassword reads a password line from stdin. The prompt goes to
// stderr so piped stdout stays clean.
func promptPassword() (string, error) {
	fmt.Fprint(os.Stderr, "password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func newSignupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "signup <username>",
		Short: "Create an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			password, err := promptPassword()
			if err != nil {
				return err
			}
			if err := container.Account.Signup(cmd.Context(), args[0], password); err != nil {
				return err
			}
			fmt.Println("account created, you can log in now")
			return nil
		},
	}
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Log in and store the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			password, err := promptPassword()
			if err != nil {
				return err
			}
			if err := container.Account.Login(cmd.Context(), args[0], password); err != nil {
				return err
			}
			cred, _ := container.Store.Current()
			fmt.Printf("logged in as %s\n", cred.Identity)
			return nil
		},
	}
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Discard the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			container.Account.Logout()
			fmt.Println("logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			cred, ok := container.Store.Current()
			if !ok {
				fmt.Println("not logged in")
				return nil
			}
			fmt.Println(cred.Identity)
			return nil
		},
	}
}

func newExploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore [artist]",
		Short: "Interactively explore the relation graph",
		Long: `Explore the artist relation graph. Type an artist name to search,
or the exact name of a visible node to re-center on it.

Commands inside the session:
  /save [memo]   save the current network
  /links         toggle showing all links
  /path          print the visited path
  /quit          leave`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			explorer := container.Explorer

			if len(args) == 1 {
				if err := explorer.Search(cmd.Context(), args[0]); err != nil {
					fmt.Fprintln(os.Stderr, explorer.State().LastError)
				}
			}
			fmt.Print(tui.RenderState(explorer.State()))

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Fprint(os.Stderr, "> ")
				if !scanner.Scan() {
					return scanner.Err()
				}
				line := strings.TrimSpace(scanner.Text())
				if line == "" {
					continue
				}
				if strings.HasPrefix(line, "/") {
					if quit := runExploreCommand(cmd.Context(), container, line); quit {
						return nil
					}
					continue
				}

				if err := step(cmd.Context(), explorer, line); err != nil {
					fmt.Fprintln(os.Stderr, explorer.State().LastError)
				}
				fmt.Print(tui.RenderState(explorer.State()))
			}
		},
	}
}

// step treats input matching a visible node as a click on it, anything
// else as a fresh search.
func step(ctx context.Context, explorer *services.Explorer, input string) error {
	for id := range explorer.State().Graph.NodeIDs() {
		if strings.EqualFold(id, input) {
			return explorer.SelectNode(ctx, id)
		}
	}
	return explorer.Search(ctx, input)
}

func runExploreCommand(ctx context.Context, container *di.Container, line string) (quit bool) {
	cmd, rest, _ := strings.Cut(line, " ")
	switch cmd {
	case "/quit", "/q":
		return true
	case "/save":
		created, err := container.Explorer.SaveSnapshot(ctx, strings.TrimSpace(rest), "")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
		fmt.Printf("saved as #%d\n", created.ID)
	case "/links":
		container.Explorer.ToggleAllLinksVisible()
		fmt.Print(tui.RenderState(container.Explorer.State()))
	case "/path":
		fmt.Println(strings.Join(container.Explorer.State().Path, " > "))
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
	}
	return false
}

func newLibraryCmd() *cobra.Command {
	library := &cobra.Command{
		Use:   "library",
		Short: "Manage saved networks",
	}

	library.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved networks, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			rows, err := container.Gateway.List(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Print(tui.RenderSnapshots(rows))
			return nil
		},
	})

	library.AddCommand(&cobra.Command{
		Use:   "memo <id> <memo>",
		Short: "Replace a saved network's memo",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid network id %q", args[0])
			}
			return container.Gateway.Update(cmd.Context(), id, strings.Join(args[1:], " "))
		},
	})

	library.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a saved network",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			container, err := loadContainer()
			if err != nil {
				return err
			}
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid network id %q", args[0])
			}
			return deleteNetwork(cmd.Context(), container.Gateway, id)
		},
	})

	return library
}

// deleteNetwork removes a saved network. A network that is already gone
// counts as deleted, so repeating the command never fails.
func deleteNetwork(ctx context.Context, gateway ports.SnapshotGateway, id int64) error {
	if err := gateway.Delete(ctx, id); err != nil {
		if !apperrors.IsNotFound(err) {
			return err
		}
	}
	fmt.Printf("deleted #%d\n", id)
	return nil
}
