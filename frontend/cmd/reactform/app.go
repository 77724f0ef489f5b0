package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/varlopecar/react-form/frontend/apiclient"
	"github.com/varlopecar/react-form/frontend/internal/storage"
	"github.com/varlopecar/react-form/shared/api"
	"github.com/varlopecar/react-form/shared/config"
	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/logger"
	"github.com/varlopecar/react-form/shared/validation"
)

const usage = `usage: reactform [global flags] <command> [flags]

commands:
  register      validate a registration form and submit it
  login         log in and keep the token
  logout        forget the token
  users         list users (sends the token when there is one)
  public-users  list first names of users
  me            show the logged-in user
  delete <id>   delete a user (admin)
  health        backend health
  info          backend info
  posts         list blog posts
  post-create   create a blog post
  post-update <id>
  post-delete <id>

global flags:
`

type app struct {
	client *apiclient.APIClient
	schema *validation.Schema
	stdout io.Writer
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("reactform", flag.ContinueOnError)
	global.SetOutput(stderr)
	apiURL := global.String("api", "", "backend base URL")
	blogURL := global.String("blog-api", "", "blog service base URL")
	runtimePath := global.String("runtime", "", "runtime config YAML (VITE_API_URL, VITE_BLOG_API_URL)")
	documentPath := global.String("html", "", "HTML page whose <meta name=\"api-url\"> tags are honoured")
	storePath := global.String("store", "", "token store file (default: user config dir)")
	logLevel := global.String("log-level", "warn", "log level")
	global.Usage = func() {
		fmt.Fprint(stderr, usage)
		global.PrintDefaults()
	}
	if err := global.Parse(args); err != nil {
		return 2
	}
	if global.NArg() == 0 {
		global.Usage()
		return 2
	}

	logger.InitializeWriter(stderr, *logLevel, false)

	a, err := newApp(*apiURL, *blogURL, *runtimePath, *documentPath, *storePath, stdout)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	if err := a.dispatch(ctx, global.Arg(0), global.Args()[1:]); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			fmt.Fprintln(stderr, "invalid registration:")
			for field, msg := range fieldErrs {
				fmt.Fprintf(stderr, "  %s: %s\n", field, msg)
			}
			return 1
		}
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
	return 0
}

func newApp(apiURL, blogURL, runtimePath, documentPath, storePath string, stdout io.Writer) (*app, error) {
	env := apiclient.DefaultEnvironment()
	runtime, err := config.LoadRuntime(runtimePath)
	if err != nil {
		return nil, err
	}
	env.Runtime = runtime
	if documentPath != "" {
		doc, err := os.ReadFile(documentPath)
		if err != nil {
			return nil, fmt.Errorf("read html document: %w", err)
		}
		env.Document = string(doc)
	}

	if storePath == "" {
		if storePath, err = storage.DefaultPath(); err != nil {
			return nil, err
		}
	}
	store, err := storage.NewFile(storePath)
	if err != nil {
		return nil, err
	}

	return &app{
		client: apiclient.New(apiURL, store, env, apiclient.WithBlogURL(blogURL)),
		schema: validation.NewRegistrationSchema(),
		stdout: stdout,
	}, nil
}

func (a *app) dispatch(ctx context.Context, command string, args []string) error {
	switch command {
	case "register":
		return a.register(ctx, args)
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.client.Logout()
	case "users":
		return a.print(a.client.GetUsers(ctx))
	case "public-users":
		return a.print(a.client.GetPublicUsers(ctx))
	case "me":
		return a.print(a.client.GetCurrentUser(ctx))
	case "delete":
		id, err := userIdArg(args)
		if err != nil {
			return err
		}
		return a.printMessage(a.client.DeleteUser(ctx, id))
	case "health":
		return a.print(a.client.Health(ctx))
	case "info":
		return a.print(a.client.Info(ctx))
	case "posts":
		return a.print(a.client.GetBlogPosts(ctx))
	case "post-create":
		post, _, err := postArgs("post-create", args, false)
		if err != nil {
			return err
		}
		return a.print(a.client.CreateBlogPost(ctx, post))
	case "post-update":
		post, id, err := postArgs("post-update", args, true)
		if err != nil {
			return err
		}
		return a.print(a.client.UpdateBlogPost(ctx, id, post))
	case "post-delete":
		if len(args) != 1 {
			return errors.New("post-delete needs exactly one post id")
		}
		return a.printMessage(a.client.DeleteBlogPost(ctx, args[0]))
	}
	return fmt.Errorf("unknown command %q", command)
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	var in domain.RegistrationInput
	fs.StringVar(&in.FirstName, "first-name", "", "first name")
	fs.StringVar(&in.LastName, "last-name", "", "last name")
	fs.StringVar(&in.Email, "email", "", "email")
	fs.StringVar(&in.BirthDate, "birth-date", "", "birth date, YYYY-MM-DD")
	fs.StringVar(&in.City, "city", "", "city")
	fs.StringVar(&in.PostalCode, "postal-code", "", "postal code, 5 digits")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	record, fieldErrs := a.schema.Validate(in)
	if fieldErrs != nil {
		return fieldErrs
	}
	user, err := a.client.RegisterUser(ctx, record, *password)
	if errors.Is(err, apiclient.ErrDuplicateResource) {
		return fmt.Errorf("%s is already registered", record.Email)
	}
	return a.print(user, err)
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	res, err := a.client.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	out := struct {
		TokenType string    `json:"token_type"`
		User      *api.User `json:"user,omitempty"`
	}{res.TokenType, res.User}
	return a.print(out, nil)
}

func (a *app) print(v any, err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printMessage(msg string, err error) error {
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.stdout, msg)
	return err
}

func userIdArg(args []string) (domain.UserId, error) {
	if len(args) != 1 {
		return 0, errors.New("delete needs exactly one user id")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid user id %q", args[0])
	}
	return id, nil
}

func postArgs(name string, args []string, withId bool) (api.BlogPostRequest, domain.PostId, error) {
	var id domain.PostId
	if withId {
		if len(args) == 0 {
			return api.BlogPostRequest{}, "", fmt.Errorf("%s needs a post id", name)
		}
		id, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	var post api.BlogPostRequest
	fs.StringVar(&post.Title, "title", "", "title")
	fs.StringVar(&post.Content, "content", "", "content")
	fs.StringVar(&post.Author, "author", "", "author")
	if err := fs.Parse(args); err != nil {
		return api.BlogPostRequest{}, "", err
	}
	return post, id, nil
}
