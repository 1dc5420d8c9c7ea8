package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/pflag"

	tokenauth "github.com/MrEthical07/tokenauth"
	"github.com/MrEthical07/tokenauth/config"
)

const usage = `usage: tokenctl <command> [flags] [token]

commands:
  issue      issue an access/refresh pair (--subject, --ip)
  validate   validate a token (--ip)
  refresh    exchange a refresh token for a new pair (--ip)
  revoke     add a token to the denylist
  inspect    decode a token without verifying it
  keygen     write an RSA key pair (--out-dir, --bits)
`

type command struct {
	name string
	run  func(ctx context.Context, env *cmdEnv, args []string) error
}

var commands = []command{
	{"issue", runIssue},
	{"validate", runValidate},
	{"refresh", runRefresh},
	{"revoke", runRevoke},
	{"inspect", runInspect},
	{"keygen", runKeygen},
}

// cmdEnv carries what every command shares after flag parsing.
type cmdEnv struct {
	flags *pflag.FlagSet
	out   io.Writer
	errw  io.Writer

	configPath string
	redisAddr  string
	secret     string
	algorithm  string
	debug      bool
}

func run(args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(stdout, usage)
		return nil
	}

	name := args[0]
	for _, c := range commands {
		if c.name != name {
			continue
		}
		env := &cmdEnv{
			flags: pflag.NewFlagSet("tokenctl "+name, pflag.ContinueOnError),
			out:   stdout,
			errw:  stderr,
		}
		env.flags.SetOutput(stderr)
		env.flags.StringVar(&env.configPath, "config", "", "YAML configuration file")
		env.flags.StringVar(&env.redisAddr, "redis-addr", "", "redis address for the shared denylist and rate limit")
		env.flags.StringVar(&env.secret, "secret", "", "HMAC secret (overrides configuration)")
		env.flags.StringVar(&env.algorithm, "algorithm", "", "signing algorithm (overrides configuration)")
		env.flags.BoolVar(&env.debug, "debug", false, "log engine decisions to stderr")
		return c.run(context.Background(), env, args[1:])
	}
	return fmt.Errorf("unknown command %q\n%s", name, usage)
}

// parse parses args and returns the positional arguments.
func (env *cmdEnv) parse(args []string, positional int) ([]string, error) {
	if err := env.flags.Parse(args); err != nil {
		return nil, err
	}
	rest := env.flags.Args()
	if len(rest) != positional {
		return nil, fmt.Errorf("%s: expected %d argument(s), got %d", env.flags.Name(), positional, len(rest))
	}
	return rest, nil
}

func (env *cmdEnv) provider() (config.Provider, error) {
	overrides := config.Map{}
	if env.secret != "" {
		overrides[config.KeySecret] = env.secret
	}
	if env.algorithm != "" {
		overrides[config.KeyAlgorithm] = env.algorithm
	}
	if env.debug {
		overrides[config.KeyDebugLogging] = "true"
	}

	chain := config.Chain{overrides, config.Env{Prefix: "TOKENAUTH"}}
	if env.configPath != "" {
		file, err := config.LoadYAMLFile(env.configPath)
		if err != nil {
			return nil, err
		}
		chain = append(chain, file)
	}
	return chain, nil
}

// engine builds an engine from the layered configuration. The returned func
// releases it.
func (env *cmdEnv) engine() (*tokenauth.Engine, func(), error) {
	p, err := env.provider()
	if err != nil {
		return nil, nil, err
	}

	level := slog.LevelWarn
	if env.debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(env.errw, &slog.HandlerOptions{Level: level}))

	b := tokenauth.New().WithConfigProvider(p).WithLogger(logger)
	var client *redis.Client
	if env.redisAddr != "" {
		client = redis.NewClient(&redis.Options{Addr: env.redisAddr})
		b = b.WithRedis(client)
	}

	engine, err := b.Build()
	if err != nil {
		if client != nil {
			_ = client.Close()
		}
		return nil, nil, err
	}
	return engine, func() {
		engine.Close()
		if client != nil {
			_ = client.Close()
		}
	}, nil
}

func (env *cmdEnv) print(v any) error {
	enc := json.NewEncoder(env.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runIssue(ctx context.Context, env *cmdEnv, args []string) error {
	var subject, ip string
	env.flags.StringVar(&subject, "subject", "", "token subject")
	env.flags.StringVar(&ip, "ip", "", "client IP to bind the pair to")
	if _, err := env.parse(args, 0); err != nil {
		return err
	}

	engine, done, err := env.engine()
	if err != nil {
		return err
	}
	defer done()

	pair, err := engine.Issue(ctx, subject, ip)
	if err != nil {
		return err
	}
	return env.print(pair)
}

type validateOutput struct {
	Valid   bool   `json:"valid"`
	Subject string `json:"subject,omitempty"`
	Reason  string `json:"reason"`
}

func runValidate(ctx context.Context, env *cmdEnv, args []string) error {
	var ip string
	env.flags.StringVar(&ip, "ip", "", "client IP presenting the token")
	rest, err := env.parse(args, 1)
	if err != nil {
		return err
	}

	engine, done, err := env.engine()
	if err != nil {
		return err
	}
	defer done()

	res, err := engine.Validate(ctx, rest[0], ip)
	if err != nil {
		return err
	}
	if err := env.print(validateOutput{Valid: res.Valid, Subject: res.Subject, Reason: res.Reason}); err != nil {
		return err
	}
	if !res.Valid {
		return errors.New("token rejected: " + res.Reason)
	}
	return nil
}

func runRefresh(ctx context.Context, env *cmdEnv, args []string) error {
	var ip string
	env.flags.StringVar(&ip, "ip", "", "client IP presenting the token")
	rest, err := env.parse(args, 1)
	if err != nil {
		return err
	}

	engine, done, err := env.engine()
	if err != nil {
		return err
	}
	defer done()

	pair, err := engine.Refresh(ctx, rest[0], ip)
	if err != nil {
		return err
	}
	return env.print(pair)
}

func runRevoke(ctx context.Context, env *cmdEnv, args []string) error {
	rest, err := env.parse(args, 1)
	if err != nil {
		return err
	}

	engine, done, err := env.engine()
	if err != nil {
		return err
	}
	defer done()

	revoked, err := engine.Revoke(ctx, rest[0])
	if err != nil {
		return err
	}
	return env.print(map[string]bool{"revoked": revoked})
}

type inspectOutput struct {
	Subject          string `json:"subject"`
	Expired          bool   `json:"expired"`
	RemainingSeconds int64  `json:"remaining_seconds"`
	Algorithm        string `json:"algorithm"`
}

func runInspect(_ context.Context, env *cmdEnv, args []string) error {
	rest, err := env.parse(args, 1)
	if err != nil {
		return err
	}

	engine, done, err := env.engine()
	if err != nil {
		return err
	}
	defer done()

	token := strings.TrimSpace(rest[0])
	return env.print(inspectOutput{
		Subject:          engine.SubjectOf(token),
		Expired:          engine.IsExpired(token),
		RemainingSeconds: engine.RemainingSeconds(token),
		Algorithm:        engine.AlgorithmInfo(),
	})
}
