//go:build e2e

package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/govjobs/apiserver/config"
	"github.com/govjobs/apiserver/internal/server"
	_ "github.com/lib/pq"
)

const serverPort = 18080

func TestMain(m *testing.M) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	root, err := repoRoot()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to locate repo root: %v\n", err)
		os.Exit(1)
	}

	if err := dockerCompose(ctx, root, "up", "-d"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start docker compose: %v\n", err)
		os.Exit(1)
	}

	if err := waitForPostgres(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "postgres not ready: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	if err := runMigrations(root); err != nil {
		fmt.Fprintf(os.Stderr, "failed to run migrations: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	srv, err := startServer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start server: %v\n", err)
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	if err := waitForHealth(ctx, baseURL+"/healthz"); err != nil {
		fmt.Fprintf(os.Stderr, "server not healthy: %v\n", err)
		_ = srv.Shutdown()
		_ = dockerCompose(context.Background(), root, "down")
		os.Exit(1)
	}

	code := m.Run()

	_ = srv.Shutdown()
	_ = dockerCompose(context.Background(), root, "down")
	os.Exit(code)
}

func TestUserLifecycle(t *testing.T) {
	baseURL := fmt.Sprintf("http://localhost:%d", serverPort)
	email := fmt.Sprintf("user_%d@example.gov", time.Now().UnixNano())
	password := "testpass123!"

	created, err := registerUser(t, baseURL, email, password)
	if err != nil {
		t.Fatalf("register user: %v", err)
	}
	if created.ID == 0 {
		t.Fatal("expected user ID to be set")
	}
	if created.Email != email {
		t.Fatalf("unexpected email %q", created.Email)
	}
	if created.SearchCredits != 3 {
		t.Fatalf("expected 3 initial credits, got %d", created.SearchCredits)
	}

	// A case/whitespace variant of the same address must conflict.
	if status, err := registerStatus(t, baseURL, " "+strings.ToUpper(email)+" ", password); err != nil {
		t.Fatalf("duplicate register: %v", err)
	} else if status != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", status)
	}

	token, err := loginUser(t, baseURL, email, password)
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if status, err := loginStatus(t, baseURL, email, "wrong-password"); err != nil {
		t.Fatalf("bad login: %v", err)
	} else if status != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", status)
	}

	me, err := getMe(t, baseURL, token)
	if err != nil {
		t.Fatalf("get me: %v", err)
	}
	if me.ID != created.ID {
		t.Fatalf("me returned id %d, expected %d", me.ID, created.ID)
	}

	byID, err := getUser(t, baseURL, created.ID)
	if err != nil {
		t.Fatalf("get user by id: %v", err)
	}
	if byID.Email != email {
		t.Fatalf("unexpected email from get by id: %q", byID.Email)
	}

	// Age the credit grant past the reset window; the next login replenishes.
	if err := ageLastReset(created.ID, 31*24*time.Hour); err != nil {
		t.Fatalf("age last reset: %v", err)
	}
	if _, err := loginUser(t, baseURL, email, password); err != nil {
		t.Fatalf("second login: %v", err)
	}
	refreshed, err := getUser(t, baseURL, created.ID)
	if err != nil {
		t.Fatalf("get refreshed user: %v", err)
	}
	if refreshed.SearchCredits != 3 {
		t.Fatalf("expected credits reset to 3, got %d", refreshed.SearchCredits)
	}
}

type userResponse struct {
	ID            int       `json:"id"`
	Email         string    `json:"email"`
	SearchCredits int       `json:"searchCredits"`
	LastReset     time.Time `json:"lastReset"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func registerUser(t *testing.T, baseURL, email, password string) (userResponse, error) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return userResponse{}, err
	}

	resp, err := http.Post(baseURL+"/users/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return userResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(resp.Body)
		return userResponse{}, fmt.Errorf("register status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed userResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return userResponse{}, err
	}
	return parsed, nil
}

func registerStatus(t *testing.T, baseURL, email, password string) (int, error) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return 0, err
	}
	resp, err := http.Post(baseURL+"/users/register", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func loginUser(t *testing.T, baseURL, email, password string) (string, error) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(baseURL+"/users/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("login status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", err
	}
	if parsed.Token == "" {
		return "", fmt.Errorf("missing token in login response")
	}
	return parsed.Token, nil
}

func loginStatus(t *testing.T, baseURL, email, password string) (int, error) {
	t.Helper()

	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return 0, err
	}
	resp, err := http.Post(baseURL+"/users/login", "application/json", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.StatusCode, nil
}

func getMe(t *testing.T, baseURL, token string) (userResponse, error) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+"/users/me", nil)
	if err != nil {
		return userResponse{}, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return userResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return userResponse{}, fmt.Errorf("me status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed userResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return userResponse{}, err
	}
	return parsed, nil
}

func getUser(t *testing.T, baseURL string, id int) (userResponse, error) {
	t.Helper()

	resp, err := http.Get(fmt.Sprintf("%s/users/%d", baseURL, id))
	if err != nil {
		return userResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return userResponse{}, fmt.Errorf("get user status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var parsed userResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return userResponse{}, err
	}
	return parsed, nil
}

func ageLastReset(id int, by time.Duration) error {
	cfg := config.LoadConfig()
	dsn := buildPostgresURL(cfg)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = db.ExecContext(ctx,
		"UPDATE users SET last_reset = NOW() - $1::interval, search_credits = 0 WHERE id = $2",
		fmt.Sprintf("%d seconds", int(by.Seconds())), id)
	return err
}

func waitForPostgres(ctx context.Context) error {
	cfg := config.LoadConfig()
	dsn := buildPostgresURL(cfg)
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		err := db.PingContext(pingCtx)
		cancel()
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("postgres ping timeout: %w", err)
		case <-ticker.C:
		}
	}
}

func waitForHealth(ctx context.Context, url string) error {
	client := &http.Client{Timeout: 2 * time.Second}
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err == nil {
			_ = resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		select {
		case <-ctx.Done():
			if err != nil {
				return fmt.Errorf("health check failed: %w", err)
			}
			return fmt.Errorf("health check failed with status")
		case <-ticker.C:
		}
	}
}

func runMigrations(root string) error {
	cfg := config.LoadConfig()
	dsn := buildPostgresURL(cfg)
	migrationsPath := filepath.Join(root, "internal", "db", "migrations")
	migrationsURL := "file://" + migrationsPath

	migrator, err := migrate.New(migrationsURL, dsn)
	if err != nil {
		return err
	}
	defer func() {
		_, _ = migrator.Close()
	}()

	if err := migrator.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}

func buildPostgresURL(cfg config.Config) string {
	sslmode := "disable"
	if cfg.Database.UseSSL {
		sslmode = "require"
	}
	host := fmt.Sprintf("%s:%d", cfg.Database.Host, cfg.Database.Port)
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		cfg.Database.User,
		cfg.Database.Password,
		host,
		cfg.Database.DBName,
		sslmode,
	)
}

func startServer() (*server.Server, error) {
	_ = os.Setenv("JWT_SECRET", "test-secret")
	_ = os.Setenv("SERVER_PORT", fmt.Sprintf("%d", serverPort))
	_ = os.Setenv("DB_HOST", "localhost")
	_ = os.Setenv("DB_PORT", "5432")
	_ = os.Setenv("DB_USER", "govjobs")
	_ = os.Setenv("DB_PASSWORD", "govjobs")
	_ = os.Setenv("DB_NAME", "govjobs")
	_ = os.Setenv("DB_USE_SSL", "false")
	_ = os.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := config.LoadConfig()
	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return nil, err
	}

	go func() {
		_ = srv.Start()
	}()

	return srv, nil
}

func dockerCompose(ctx context.Context, root string, args ...string) error {
	composeFile := filepath.Join(root, "development", "docker-compose.yml")
	baseArgs := append([]string{"compose", "-f", composeFile}, args...)
	cmd := exec.CommandContext(ctx, "docker", baseArgs...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func repoRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("go.mod not found")
		}
		dir = parent
	}
}
