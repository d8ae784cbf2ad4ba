package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"golang.org/x/term"

	apiclient "github.com/umoja/portal/api"
	"github.com/umoja/portal/core"
	"github.com/umoja/portal/core/nav"
	"github.com/umoja/portal/core/notify"
	"github.com/umoja/portal/core/session"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp       = errors.New("help provided")
	errNotAllowed = errors.New("access denied: your role does not include this screen")
)

type commandLine struct {
	conf  *core.Config
	api   *apiclient.Client
	ctrl  *session.Controller
	log   core.Logger
	notes *notify.Notifier
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  login -phone PHONE                          - log in; the password is prompted next")
	fmt.Println("  logout                                      - clear the stored session")
	fmt.Println("  whoami                                      - show the authenticated identity")
	fmt.Println("  menu                                        - show the screens your role can open")
	fmt.Println("  list -route ROUTE [-filters k=v,...]        - list a resource")
	fmt.Println("  create -route ROUTE -data JSON              - create a record")
	fmt.Println("  update -route ROUTE -id ID -data JSON       - update a record")
	fmt.Println("  delete -route ROUTE -id ID                  - delete a record (asks to confirm)")
	fmt.Println("  stats -route ROUTE [-filters k=v,...]       - show resource statistics")
	fmt.Println("  finalize -date DATE -photo FILE -data JSON  - finalize attendance with photo proof")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	ctx := context.Background()

	switch args[1] {
	case "login":
		loginCmd := flag.NewFlagSet("login", flag.ExitOnError)
		phone := loginCmd.String("phone", "", "The phone number registered with your account.")
		if err := loginCmd.Parse(args[2:]); err != nil {
			return err
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		return cli.login(ctx, *phone, string(pwd))

	case "logout":
		cli.ctrl.Logout()
		cli.notes.Push(notify.Success, "logged out")
		return nil

	case "whoami":
		sess, ok := cli.ctrl.Current()
		if !ok {
			fmt.Println("not logged in")
			return nil
		}
		fmt.Printf("%s (%s)\n", sess.User.Name, sess.User.Role)
		return nil

	case "menu":
		return cli.menu()

	case "list":
		listCmd := flag.NewFlagSet("list", flag.ExitOnError)
		route := listCmd.String("route", "", "The screen route, e.g. /students.")
		filters := listCmd.String("filters", "", "Comma-separated k=v filters.")
		page := listCmd.Int("page", 1, "Page number.")
		limit := listCmd.Int("limit", 20, "Page size.")
		if err := listCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.list(ctx, *route, *filters, *page, *limit)

	case "create", "update":
		cmd := flag.NewFlagSet(args[1], flag.ExitOnError)
		route := cmd.String("route", "", "The screen route.")
		id := cmd.String("id", "", "The record identifier (update only).")
		data := cmd.String("data", "", "The record as JSON.")
		if err := cmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.submit(ctx, args[1], *route, *id, *data)

	case "delete":
		delCmd := flag.NewFlagSet("delete", flag.ExitOnError)
		route := delCmd.String("route", "", "The screen route.")
		id := delCmd.String("id", "", "The record identifier.")
		if err := delCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.remove(ctx, *route, *id)

	case "stats":
		statsCmd := flag.NewFlagSet("stats", flag.ExitOnError)
		route := statsCmd.String("route", "", "The screen route.")
		filters := statsCmd.String("filters", "", "Comma-separated k=v filters.")
		if err := statsCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.stats(ctx, *route, *filters)

	case "finalize":
		finCmd := flag.NewFlagSet("finalize", flag.ExitOnError)
		date := finCmd.String("date", "", "The attendance date, YYYY-MM-DD.")
		photo := finCmd.String("photo", "", "Path to the group photo.")
		data := finCmd.String("data", "", "The attendance entries as JSON.")
		if err := finCmd.Parse(args[2:]); err != nil {
			return err
		}
		return cli.finalizeAttendance(ctx, *date, *photo, *data)

	default:
		cli.printUsage()
		return errHelp
	}
}

// login authenticates and performs the role-based redirect exactly once:
// the landing screen is resolved and announced, then the menu is rendered.
func (cli *commandLine) login(ctx context.Context, phone, password string) error {
	sess, err := cli.ctrl.Login(ctx, phone, password)
	if err != nil {
		return err
	}

	landing := nav.ResolveLandingRoute(sess.User.Role)
	fmt.Printf("welcome %s\n", sess.User.Name)
	if landing == nav.RouteAccessDenied {
		fmt.Println("your account has no portal access; contact an administrator")
		return nil
	}
	fmt.Printf("opening %s\n", landing)
	return cli.menu()
}

func (cli *commandLine) menu() error {
	sess, ok := cli.ctrl.Current()
	if !ok {
		fmt.Println("not logged in")
		return nil
	}
	entries := nav.MenuFor(sess.User.Role)
	if len(entries) == 0 {
		fmt.Println("access denied")
		return nil
	}
	for _, entry := range entries {
		fmt.Printf("  %-20s %s\n", entry.Route, entry.Label)
	}
	return nil
}

// guard applies the same table the menu renders: a route absent from the
// role's menu is denied even when addressed directly.
func (cli *commandLine) guard(route string) error {
	sess, ok := cli.ctrl.Current()
	if !ok {
		return errors.New("not logged in")
	}
	if !nav.Authorize(route, sess.User.Role) {
		return errNotAllowed
	}
	return nil
}

func parseFilters(s string) apiclient.Params {
	params := apiclient.Params{}
	for _, pair := range strings.Split(s, ",") {
		if pair == "" {
			continue
		}
		kv := strings.SplitN(pair, "=", 2)
		if len(kv) == 2 {
			params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
		}
	}
	return params
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(out))
}
