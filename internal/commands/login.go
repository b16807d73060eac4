package commands

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"golang.org/x/oauth2"

	"mdtodo/internal/backend/googletasks"
	"mdtodo/internal/config"
	"mdtodo/internal/exitcode"
	"mdtodo/internal/service"
)

const (
	// OAuth callback timeout
	oauthCallbackTimeout = 5 * time.Minute

	// Token exchange timeout
	tokenExchangeTimeout = 30 * time.Second

	// Starting port for OAuth callback server
	oauthStartPort = 8085

	// Max port attempts
	oauthMaxPortAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
type LoginCmd struct{}

func (c *LoginCmd) Name() string       { return "login" }
func (c *LoginCmd) Aliases() []string  { return nil }
func (c *LoginCmd) Synopsis() string   { return "Authenticate with Google for push" }
func (c *LoginCmd) Usage() string      { return "mdtodo login [common flags]" }
func (c *LoginCmd) NeedsService() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if !cfg.HasOAuthClient() {
		printOAuthSetup(errOut, cfg)
		return exitcode.AuthError
	}

	if cfg.HasToken() && isTokenValid(ctx, cfg) {
		if !cfg.Quiet {
			fmt.Fprintln(out, "already logged in")
		}
		return exitcode.Success
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	port, listener, err := findAvailablePort()
	if err != nil {
		fmt.Fprintf(errOut, "error: could not bind to local port for OAuth callback\n")
		return exitcode.AuthError
	}
	defer listener.Close()

	oauthConfig.RedirectURL = fmt.Sprintf("http://localhost:%d/callback", port)
	verifier := oauth2.GenerateVerifier()
	authURL := oauthConfig.AuthCodeURL("state",
		oauth2.AccessTypeOffline,
		oauth2.S256ChallengeOption(verifier),
	)

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	code, err := waitForCode(ctx, listener, oauthCallbackTimeout)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.AuthError
	}

	exchangeCtx, cancel := context.WithTimeout(ctx, tokenExchangeTimeout)
	defer cancel()

	token, err := oauthConfig.Exchange(exchangeCtx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		fmt.Fprintf(errOut, "error: failed to exchange code for token: %v\n", err)
		return exitcode.AuthError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.AuthError
	}
	if err := saveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.AuthError
	}

	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
	}
	return exitcode.Success
}

func printOAuthSetup(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "error: oauth_client.json not found in %s\n\n", cfg.Dir)
	fmt.Fprintln(w, "push publishes your tasks to Google Tasks and needs OAuth credentials:")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "1. Go to https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(w, "2. Enable the Google Tasks API for your project")
	fmt.Fprintln(w, "3. Create an OAuth client ID of type 'Desktop app' and download the JSON")
	fmt.Fprintf(w, "4. Save it as %s\n", cfg.OAuthClientPath())
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Then run 'mdtodo login' again.")
}

// waitForCode serves the OAuth redirect on listener and returns the
// authorization code it carries.
func waitForCode(ctx context.Context, listener net.Listener, timeout time.Duration) (string, error) {
	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "No code in callback", http.StatusBadRequest)
			select {
			case errCh <- errors.New("no code in callback"):
			default:
			}
			return
		}
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprint(w, "<html><body><h1>Authentication successful</h1><p>You may close this window.</p></body></html>")
		select {
		case codeCh <- code:
		default:
		}
	})

	server := &http.Server{Handler: mux}
	go func() {
		if err := server.Serve(listener); err != nil && err != http.ErrServerClosed {
			select {
			case errCh <- err:
			default:
			}
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	select {
	case code := <-codeCh:
		return code, nil
	case err := <-errCh:
		return "", err
	case <-time.After(timeout):
		return "", errors.New("oauth callback timed out")
	case <-ctx.Done():
		return "", errors.New("cancelled")
	}
}

// findAvailablePort tries to find an available port starting from oauthStartPort.
func findAvailablePort() (int, net.Listener, error) {
	for i := 0; i < oauthMaxPortAttempts; i++ {
		port := oauthStartPort + i
		listener, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			return port, listener, nil
		}
	}
	return 0, nil, fmt.Errorf("no available port found")
}

// isTokenValid reports whether the stored token has a refresh token and can
// still be exchanged for an access token.
func isTokenValid(ctx context.Context, cfg *config.Config) bool {
	data, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return false
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return false
	}
	if token.RefreshToken == "" {
		return false
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err = oauthConfig.TokenSource(ctx, &token).Token()
	return err == nil
}

// saveToken saves an OAuth token to a file with mode 0600.
func saveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
