// The agent is the desktop-side half of the screen time estimator. It reads
// visibility events as newline-delimited JSON on stdin (emitted by the
// platform shell), keeps the tracker counter, and reconciles it with the API.
package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/worklane-hq/worklane-backend-go/internal/config"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/clock"
	"github.com/worklane-hq/worklane-backend-go/internal/service/tracker"
)

// visibilityEvent is one stdin line, e.g. {"visible":false}
type visibilityEvent struct {
	Visible bool `json:"visible"`
}

type currentSessionEnvelope struct {
	Success bool `json:"success"`
	Data    struct {
		HasSession bool `json:"has_session"`
		Session    *struct {
			Status string `json:"status"`
		} `json:"session"`
	} `json:"data"`
}

// apiReconciler pushes the tracker counter to the backend.
type apiReconciler struct {
	baseURL string
	token   string
	client  *http.Client
}

func (r *apiReconciler) Report(ctx context.Context, seconds int64) error {
	body, err := json.Marshal(map[string]int64{"screen_active_seconds": seconds})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/api/v1/attendance/screen-active-time", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+r.token)

	resp, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("screen-active report rejected: %s", resp.Status)
	}
	return nil
}

// sessionOpen asks the API whether an active session exists. Breaks and
// completed sessions both close the accumulation gate.
func (r *apiReconciler) sessionOpen(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+"/api/v1/attendance/current", nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Authorization", "Bearer "+r.token)

	resp, err := r.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return false, fmt.Errorf("current session request rejected: %s", resp.Status)
	}

	var envelope currentSessionEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return false, err
	}

	if !envelope.Data.HasSession || envelope.Data.Session == nil {
		return false, nil
	}
	return envelope.Data.Session.Status == "active", nil
}

func main() {
	cfg, err := config.LoadAgent()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil)).With(
		slog.String("app", "worklane-agent"),
	)

	if cfg.Agent.APIToken == "" {
		logger.Error("AGENT_API_TOKEN is required")
		return
	}

	reconciler := &apiReconciler{
		baseURL: cfg.Agent.APIBaseURL,
		token:   cfg.Agent.APIToken,
		client:  &http.Client{Timeout: 10 * time.Second},
	}

	t := tracker.New(tracker.Config{}, clock.New(cfg.App.Timezone), logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Poll the session gate; the tracker must stop crediting the moment a
	// break starts or the session completes.
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()

		refresh := func() {
			pollCtx, pollCancel := context.WithTimeout(ctx, 10*time.Second)
			defer pollCancel()

			open, err := reconciler.sessionOpen(pollCtx)
			if err != nil {
				logger.Warn("failed to poll current session", "error", err)
				return
			}
			t.SetSessionStatus(open)
		}

		refresh()
		for {
			select {
			case <-ticker.C:
				refresh()
			case <-ctx.Done():
				return
			}
		}
	}()

	// Visibility events from the platform shell, one JSON object per line.
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var event visibilityEvent
			if err := json.Unmarshal(line, &event); err != nil {
				logger.Warn("skipping malformed visibility event", "error", err)
				continue
			}
			t.SetVisible(event.Visible)
		}
		cancel()
	}()

	logger.Info("agent started", "api", cfg.Agent.APIBaseURL)
	t.Run(ctx, reconciler)
	logger.Info("agent stopped")
}
