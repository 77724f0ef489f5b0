package apiclient

import (
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/net/html"
)

const (
	APIURLEnv      = "VITE_API_URL"
	BlogAPIURLEnv  = "VITE_BLOG_API_URL"
	APIURLMeta     = "api-url"
	BlogAPIURLMeta = "blog-api-url"

	LocalAPIURL      = "http://localhost:8000"
	ProductionAPIURL = "https://backend-omega-khaki.vercel.app"

	LocalBlogAPIURL      = "http://localhost:3000"
	ProductionBlogAPIURL = "https://express-mongodb-app-blush.vercel.app"
)

// Environment holds every configuration input the base URL resolution may consult.
type Environment struct {
	// Runtime is configuration injected at startup, keyed like the build-time variables.
	Runtime map[string]string
	// Document is the HTML page the client was served with, if any.
	Document string
	// Getenv reads build-time variables. Nil means none are set.
	Getenv func(string) string
	// Hostname is the host the client is served from.
	Hostname   string
	Production bool
}

// DefaultEnvironment reads the process environment, loading .env first if it exists.
func DefaultEnvironment() Environment {
	// a missing .env is normal outside local development
	_ = godotenv.Load()
	return Environment{
		Runtime:    map[string]string{},
		Getenv:     os.Getenv,
		Hostname:   "localhost",
		Production: os.Getenv("MODE") == "production",
	}
}

// Provider yields a base URL candidate, or "" when it has none.
type Provider func() string

// Resolve returns the first non-empty candidate.
func Resolve(providers ...Provider) string {
	for _, p := range providers {
		if v := strings.TrimSpace(p()); v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return ""
}

func Explicit(url string) Provider {
	return func() string { return url }
}

func RuntimeConfig(runtime map[string]string, key string) Provider {
	return func() string { return runtime[key] }
}

// MetaTag reads the content of <meta name="..."> from an HTML document.
func MetaTag(document, name string) Provider {
	return func() string {
		if document == "" {
			return ""
		}
		return metaContent(strings.NewReader(document), name)
	}
}

func EnvVar(getenv func(string) string, key string) Provider {
	return func() string {
		if getenv == nil {
			return ""
		}
		return getenv(key)
	}
}

// Default picks the local URL when served from localhost outside production.
func Default(env Environment, local, production string) Provider {
	return func() string {
		if env.Production || env.Hostname != "localhost" {
			return production
		}
		return local
	}
}

// APIURL resolves the main backend origin.
func APIURL(explicit string, env Environment) string {
	return Resolve(
		Explicit(explicit),
		RuntimeConfig(env.Runtime, APIURLEnv),
		MetaTag(env.Document, APIURLMeta),
		EnvVar(env.Getenv, APIURLEnv),
		Default(env, LocalAPIURL, ProductionAPIURL),
	)
}

// BlogAPIURL resolves the blog service origin, independently of the main backend.
func BlogAPIURL(explicit string, env Environment) string {
	return Resolve(
		Explicit(explicit),
		RuntimeConfig(env.Runtime, BlogAPIURLEnv),
		MetaTag(env.Document, BlogAPIURLMeta),
		EnvVar(env.Getenv, BlogAPIURLEnv),
		Default(env, LocalBlogAPIURL, ProductionBlogAPIURL),
	)
}

func metaContent(r io.Reader, name string) string {
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			return ""
		case html.StartTagToken, html.SelfClosingTagToken:
			t := z.Token()
			if t.Data != "meta" {
				continue
			}
			var metaName, content string
			for _, attr := range t.Attr {
				switch attr.Key {
				case "name":
					metaName = attr.Val
				case "content":
					content = attr.Val
				}
			}
			if metaName == name {
				return content
			}
		}
	}
}
