package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jessevdk/go-flags"
	"github.com/jrsteele09/clinic-admin-client/auth"
	"github.com/jrsteele09/clinic-admin-client/internal/config"
	ierrors "github.com/jrsteele09/clinic-admin-client/internal/errors"
	"github.com/jrsteele09/clinic-admin-client/internal/rest"
	"github.com/jrsteele09/clinic-admin-client/products"
	"github.com/rs/zerolog"
)

type Options struct {
	Profile string `long:"profile" default:"default" description:"Session profile, used as the Redis key suffix"`

	Login     LoginCommand     `command:"login" description:"Log in and store the session"`
	Logout    LogoutCommand    `command:"logout" description:"End the current session"`
	WhoAmI    WhoAmICommand    `command:"whoami" description:"Show the logged-in user"`
	Get       GetCommand       `command:"get" description:"GET an API path and print the JSON response"`
	Customers CustomersCommand `command:"customers" description:"List customers"`
	Products  ProductsCommand  `command:"products" description:"List products"`
}

type ListFlags struct {
	Page   int    `long:"page" default:"1" description:"Page number"`
	Limit  int    `long:"limit" default:"20" description:"Page size"`
	Search string `short:"s" long:"search" description:"Search term"`
}

func (f ListFlags) params() rest.ListParams {
	return rest.ListParams{Page: f.Page, Limit: f.Limit, Search: f.Search}
}

// execute parses args and runs the selected command
func execute(ctx context.Context, c config.Config, logger zerolog.Logger, args []string, out, errOut io.Writer) error {
	a := &app{ctx: ctx, cfg: c, logger: logger, out: out, errOut: errOut}
	opts := &Options{}
	opts.Login.app = a
	opts.Logout.app = a
	opts.WhoAmI.app = a
	opts.Get.app = a
	opts.Customers.app = a
	opts.Products.app = a

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	parser.Name = "clinicctl"
	parser.CommandHandler = func(command flags.Commander, args []string) error {
		if command == nil {
			return nil
		}
		err := a.init(opts.Profile)
		if err == nil {
			err = command.Execute(args)
		}
		return ierrors.Join(err, a.close())
	}

	_, err := parser.ParseArgs(args)
	var flagsErr *flags.Error
	if ierrors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
		fmt.Fprintln(out, flagsErr.Message)
		return nil
	}
	if err != nil {
		fmt.Fprintln(errOut, "error:", err)
	}
	return err
}

type LoginCommand struct {
	Email    string `short:"e" long:"email" required:"true" description:"Account email"`
	Password string `short:"p" long:"password" env:"CLINIC_PASSWORD" description:"Account password"`

	app *app
}

func (c *LoginCommand) Execute([]string) error {
	displayAppname(c.app.errOut, c.app.cfg.GetAppName())
	sess, err := c.app.auth.Login(c.app.ctx, auth.Credentials{Email: c.Email, Password: c.Password})
	if err != nil {
		return err
	}
	fmt.Fprintf(c.app.out, "Logged in as %s (%s)\n", c.Email, sess.Role)
	return nil
}

type LogoutCommand struct {
	app *app
}

func (c *LogoutCommand) Execute([]string) error {
	if err := c.app.auth.Logout(c.app.ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.app.out, "Logged out")
	return nil
}

type WhoAmICommand struct {
	app *app
}

func (c *WhoAmICommand) Execute([]string) error {
	sess, err := c.app.auth.CurrentSession(c.app.ctx)
	if ierrors.Is(err, ierrors.ErrNoSession) {
		fmt.Fprintln(c.app.out, "Not logged in")
		return nil
	}
	if err != nil {
		return err
	}

	var profile struct {
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	}
	if err := sess.DecodeUser(&profile); err != nil {
		c.app.logger.Debug().Err(err).Msg("Stored user profile is unreadable, name and email left blank")
	}

	w := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "name:\t%s\n", profile.FullName)
	fmt.Fprintf(w, "email:\t%s\n", profile.Email)
	fmt.Fprintf(w, "role:\t%s\n", sess.Role)
	if id, err := c.app.auth.CurrentUserID(c.app.ctx); err == nil {
		fmt.Fprintf(w, "user id:\t%d\n", id)
	} else {
		fmt.Fprintf(w, "user id:\tunknown (%v)\n", err)
	}
	switch claims, err := c.app.auth.Claims(c.app.ctx); {
	case err != nil:
		c.app.logger.Debug().Err(err).Msg("Access token claims unreadable, expiry not shown")
	case !claims.ExpiresAt.IsZero():
		expired, err := c.app.auth.TokenExpired(c.app.ctx)
		if err != nil {
			c.app.logger.Debug().Err(err).Msg("Token expiry check failed")
		}
		fmt.Fprintf(w, "token expires:\t%s (expired: %t)\n", claims.ExpiresAt.Local().Format("2006-01-02 15:04"), expired)
	}
	return w.Flush()
}

type GetCommand struct {
	Args struct {
		Path string `positional-arg-name:"path" required:"yes"`
	} `positional-args:"yes"`

	app *app
}

func (c *GetCommand) Execute([]string) error {
	var raw json.RawMessage
	if err := c.app.client.Get(c.app.ctx, c.Args.Path, &raw); err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(c.app.out)
	return err
}

type CustomersCommand struct {
	ListFlags

	app *app
}

func (c *CustomersCommand) Execute([]string) error {
	page, err := c.app.customers.List(c.app.ctx, c.params())
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPHONE\tEMAIL\tSKIN TYPE")
	for _, cu := range page.Data {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", cu.ID, cu.FullName, cu.Phone, cu.Email, cu.SkinType)
	}
	fmt.Fprintf(w, "\npage %d, %d of %d\n", page.Page, len(page.Data), page.Total)
	return w.Flush()
}

type ProductsCommand struct {
	ListFlags
	LowStock int `long:"low-stock" default:"-1" description:"Only list products at or below this stock level"`

	app *app
}

func (c *ProductsCommand) Execute([]string) error {
	if c.LowStock >= 0 {
		items, err := c.app.products.LowStock(c.app.ctx, c.LowStock)
		if err != nil {
			return err
		}
		return c.print(items, fmt.Sprintf("%d at or below %d", len(items), c.LowStock))
	}

	page, err := c.app.products.List(c.app.ctx, c.params())
	if err != nil {
		return err
	}
	return c.print(page.Data, fmt.Sprintf("page %d, %d of %d", page.Page, len(page.Data), page.Total))
}

func (c *ProductsCommand) print(items []products.Product, footer string) error {
	w := tabwriter.NewWriter(c.app.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSKU\tNAME\tSTOCK\tPRICE")
	for _, p := range items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d %s\t%.2f\n", p.ID, p.SKU, p.Name, p.Stock, p.Unit, p.Price)
	}
	fmt.Fprintf(w, "\n%s\n", footer)
	return w.Flush()
}
