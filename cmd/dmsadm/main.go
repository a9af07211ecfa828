// Command dmsadm is the terminal administration client for the document
// service. Resource commands navigate the client-side route table before
// calling the API, so the same guards that gated pages in the browser
// client gate commands here.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/docustore/admin-console/internal/auth/session"
	"github.com/docustore/admin-console/internal/auth/tokenstore"
	"github.com/docustore/admin-console/internal/config"
	"github.com/docustore/admin-console/internal/core/domain"
	"github.com/docustore/admin-console/internal/gateway"
	"github.com/docustore/admin-console/internal/guard"
	"github.com/docustore/admin-console/internal/notify"
	"github.com/docustore/admin-console/internal/transport"
	"github.com/docustore/admin-console/pkg/logger"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	session *session.Manager
	router  *guard.Router
	api     *gateway.Client
	pending *transport.PendingCounter
}

// newApp wires the whole client: token store, session, interceptor chain,
// gateway and route table, then rebuilds the session from disk.
func newApp() *app {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.LogPretty, os.Stderr)
	notes := notify.Console{Log: log}

	store := tokenstore.New(cfg.ConfigDir)
	sess := session.NewManager(store, log)
	redirect := func(path string) {
		log.Info().Str("path", path).Msg("navigating")
	}
	sess.SetRedirect(redirect)

	pending := &transport.PendingCounter{}
	httpClient := transport.NewClient(cfg.Timeout, transport.Options{
		Tokens:   sess,
		Session:  sess,
		Notifier: notes,
		Pending:  pending,
		Redirect: redirect,
		Log:      log,
	})
	api := gateway.New(cfg.APIBaseURL, httpClient, sess, log)

	r := guard.NewRouter(log)
	r.Handle("/login", guard.GuestOnly(sess))
	r.Handle("/", guard.Authenticated(sess, notes))
	r.Handle("/documents", guard.Authenticated(sess, notes))
	r.Handle("/documents/:id",
		guard.Authenticated(sess, notes),
		guard.ResourceAccess(func(ctx context.Context, id string) error {
			docID, err := strconv.ParseInt(id, 10, 64)
			if err != nil {
				return err
			}
			_, err = api.GetDocument(ctx, docID)
			return err
		}, notes, "id"),
	)
	r.Handle("/users", guard.Role(sess, notes, domain.RoleSysAdmin))
	r.Handle("/companies", guard.Authenticated(sess, notes))
	r.Handle("/resource-types", guard.Authenticated(sess, notes))
	r.Handle("/acl", guard.Role(sess, notes, domain.RoleSysAdmin))

	sess.Initialize()

	return &app{cfg: cfg, log: log, session: sess, router: r, api: api, pending: pending}
}

// navigate runs the guard chain for path. A denied navigation has already
// surfaced its notification; the caller only needs to stop.
func (a *app) navigate(ctx context.Context, path string) bool {
	out := a.router.Navigate(ctx, path)
	if !out.Activated {
		fmt.Fprintf(os.Stderr, "redirected to %s\n", out.Path)
		return false
	}
	return true
}

func usage() {
	fmt.Fprintf(os.Stderr, `dmsadm - document service admin client

Usage:
  dmsadm <cmd> [args]

Commands:
  version
  login      -u <username> -p <password>
  logout
  whoami
  docs                                   list documents
  doc        -id <id>                    show one document
  rm         -id <id>                    delete a document
  users                                  list accounts (SYS_ADMIN)
  companies                              list companies
  types                                  list resource types
  acl        -resource <id>              list access entries (SYS_ADMIN)

Configuration via environment: DMS_API_URL, DMS_TIMEOUT, DMS_CONFIG_DIR,
DMS_LOG_LEVEL, DMS_LOG_PRETTY.
`)
	os.Exit(2)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 1 {
		usage()
	}
	cmd := flag.Arg(0)
	args := flag.Args()[1:]

	if cmd == "version" {
		fmt.Printf("dmsadm %s (%s)\n", version, buildDate)
		return
	}

	a := newApp()
	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Timeout+5*time.Second)
	defer cancel()

	switch cmd {

	case "login":
		fs := flag.NewFlagSet("login", flag.ExitOnError)
		u := fs.String("u", "", "username")
		p := fs.String("p", "", "password")
		_ = fs.Parse(args)
		if !a.navigate(ctx, session.LoginPath) {
			os.Exit(1)
		}
		cred, err := a.api.Login(ctx, *u, *p)
		if err != nil {
			fail(err)
		}
		if cred.User != nil {
			fmt.Printf("signed in as %s\n", cred.User.Username)
		} else {
			fmt.Println("signed in")
		}

	case "logout":
		a.api.Logout()
		fmt.Println("signed out")

	case "whoami":
		if !a.navigate(ctx, "/") {
			os.Exit(1)
		}
		user, ok := a.session.User()
		if !ok {
			fail(fmt.Errorf("no active session"))
		}
		printJSON(user)

	case "docs":
		if !a.navigate(ctx, "/documents") {
			os.Exit(1)
		}
		docs, err := a.api.ListDocuments(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(docs)

	case "doc":
		fs := flag.NewFlagSet("doc", flag.ExitOnError)
		id := fs.Int64("id", 0, "document id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		if !a.navigate(ctx, fmt.Sprintf("/documents/%d", *id)) {
			os.Exit(1)
		}
		doc, err := a.api.GetDocument(ctx, *id)
		if err != nil {
			fail(err)
		}
		printJSON(doc)

	case "rm":
		fs := flag.NewFlagSet("rm", flag.ExitOnError)
		id := fs.Int64("id", 0, "document id")
		_ = fs.Parse(args)
		if *id == 0 {
			fmt.Fprintln(os.Stderr, "need -id")
			os.Exit(1)
		}
		if !a.navigate(ctx, fmt.Sprintf("/documents/%d", *id)) {
			os.Exit(1)
		}
		if err := a.api.DeleteDocument(ctx, *id); err != nil {
			fail(err)
		}
		fmt.Println("deleted")

	case "users":
		if !a.navigate(ctx, "/users") {
			os.Exit(1)
		}
		users, err := a.api.ListUsers(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(users)

	case "companies":
		if !a.navigate(ctx, "/companies") {
			os.Exit(1)
		}
		companies, err := a.api.ListCompanies(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(companies)

	case "types":
		if !a.navigate(ctx, "/resource-types") {
			os.Exit(1)
		}
		types, err := a.api.ListResourceTypes(ctx)
		if err != nil {
			fail(err)
		}
		printJSON(types)

	case "acl":
		fs := flag.NewFlagSet("acl", flag.ExitOnError)
		resource := fs.Int64("resource", 0, "resource id")
		_ = fs.Parse(args)
		if !a.navigate(ctx, "/acl") {
			os.Exit(1)
		}
		entries, err := a.api.ListACL(ctx, *resource)
		if err != nil {
			fail(err)
		}
		printJSON(entries)

	default:
		usage()
	}
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
