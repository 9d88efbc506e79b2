// Command devtoken prints a signed session token for local testing of the
// dashboard API. It signs with the same secret the API would use for the
// current environment.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/nyumbani/property-dashboard/app"
	"github.com/nyumbani/property-dashboard/config"
	"github.com/nyumbani/property-dashboard/rbac"
	"github.com/nyumbani/property-dashboard/tokens"
	"github.com/nyumbani/property-dashboard/utils"
)

// Options holds the command line flags
type Options struct {
	Role    string        `json:"role" validate:"required,role"`
	Subject string        `json:"sub" validate:"required,max=128"`
	Email   string        `json:"email" validate:"omitempty,email"`
	Name    string        `json:"name" validate:"max=128"`
	TTL     time.Duration `json:"ttl"`
}

func main() {
	fs := flag.NewFlagSet("devtoken", flag.ContinueOnError)
	opts, err := ParseOptions(fs, os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := config.New(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}

	if err := Run(cfg, opts, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "devtoken: %v\n", err)
		os.Exit(1)
	}
}

// ParseOptions parses flags into Options
func ParseOptions(fs *flag.FlagSet, args []string) (Options, error) {
	var opts Options
	fs.StringVar(&opts.Role, "role", string(rbac.RoleTenant), "role claim (landlord, caretaker, tenant)")
	fs.StringVar(&opts.Subject, "sub", "dev-user", "subject claim")
	fs.StringVar(&opts.Email, "email", "", "email claim")
	fs.StringVar(&opts.Name, "name", "", "display name claim")
	fs.DurationVar(&opts.TTL, "ttl", 0, "token lifetime (default: AUTH_TOKEN_TTL)")
	if err := fs.Parse(args); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// Run validates opts and writes a signed token to out
func Run(cfg *config.Config, opts Options, out io.Writer) error {
	if err := utils.ValidateStruct(&opts); err != nil {
		if fields := utils.GetValidationFields(err); len(fields) > 0 {
			return fmt.Errorf("invalid flags: %v", fields)
		}
		return err
	}

	role, err := rbac.ParseRole(opts.Role)
	if err != nil {
		return err
	}

	secret, err := app.SigningSecret(cfg)
	if err != nil {
		return err
	}

	ttl := cfg.Auth.TokenTTL
	if opts.TTL > 0 {
		ttl = opts.TTL
	}

	issuer, err := tokens.NewIssuer(tokens.Config{
		Secret: []byte(secret),
		Issuer: cfg.Auth.Issuer,
		TTL:    ttl,
	})
	if err != nil {
		return err
	}

	token, err := issuer.Issue(opts.Subject, opts.Email, opts.Name, role)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(out, token)
	return err
}
