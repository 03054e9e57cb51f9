//go:build e2e

package e2e

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"
)

func TestRemoteAPI_MainEndpoints(t *testing.T) {
	baseURL := strings.TrimRight(envOr("E2E_BASE_URL", "http://localhost:8080"), "/")
	client := &http.Client{Timeout: 20 * time.Second}

	t.Run("unsupported command is a bad request", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/command", map[string]any{"type": "teleport"})
		if status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d body=%s", status, string(body))
		}
	})

	t.Run("unknown node is rejected with a suggestion", func(t *testing.T) {
		status, body := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/command", map[string]any{
			"type":    "select_node",
			"node_id": "tree.oka",
		})
		if status != http.StatusConflict {
			t.Fatalf("expected 409, got %d body=%s", status, string(body))
		}
		var rejected map[string]any
		if err := json.Unmarshal(body, &rejected); err != nil {
			t.Fatalf("unmarshal rejection: %v body=%s", err, string(body))
		}
		if rejected["result_code"] != "REJECTED" {
			t.Fatalf("expected REJECTED, got %v", rejected["result_code"])
		}
		details := asMap(asMap(rejected["error"])["details"])
		if details["did_you_mean"] != "tree.oak" {
			t.Fatalf("expected did_you_mean tree.oak, got %v", details)
		}
	})

	t.Run("select gather observe ops", func(t *testing.T) {
		status, selectBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/command", map[string]any{
			"type":    "select_node",
			"node_id": "tree.oak",
		})
		if status != http.StatusOK {
			t.Fatalf("select status=%d body=%s", status, string(selectBody))
		}

		// one oak cycle is three seconds
		time.Sleep(3500 * time.Millisecond)

		status, stateBody, err := doRequest(client, http.MethodGet, baseURL+"/api/game/state?category=woodcutting", nil)
		if err != nil {
			t.Fatalf("state request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("state status=%d body=%s", status, string(stateBody))
		}
		var state map[string]any
		if err := json.Unmarshal(stateBody, &state); err != nil {
			t.Fatalf("unmarshal state: %v body=%s", err, string(stateBody))
		}
		if asMap(state["gather"])["active_node_id"] != "tree.oak" {
			t.Fatalf("expected active tree.oak, got %v", state["gather"])
		}
		var oak float64
		for _, r := range asSlice(state["resources"]) {
			if asMap(r)["id"] == "oak" {
				oak, _ = asMap(r)["amount"].(float64)
			}
		}
		if oak < 1 {
			t.Fatalf("expected at least one oak after a full cycle, state=%s", string(stateBody))
		}

		status, statBody, err := doRequest(client, http.MethodGet, baseURL+"/api/game/stats/prod.oak.speed", nil)
		if err != nil {
			t.Fatalf("stat request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("stat status=%d body=%s", status, string(statBody))
		}

		status, stopBody := mustJSON(t, client, http.MethodPost, baseURL+"/api/game/command", map[string]any{"type": "stop"})
		if status != http.StatusOK {
			t.Fatalf("stop status=%d body=%s", status, string(stopBody))
		}

		status, kpiBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/kpi", nil)
		if err != nil {
			t.Fatalf("kpi request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("kpi status=%d body=%s", status, string(kpiBody))
		}
		var kpi map[string]any
		if err := json.Unmarshal(kpiBody, &kpi); err != nil {
			t.Fatalf("unmarshal kpi: %v body=%s", err, string(kpiBody))
		}
		if _, ok := kpi["command_total"]; !ok {
			t.Fatalf("expected command_total in kpi response")
		}
		if n, _ := kpi["tick_completions"].(float64); n < 1 {
			t.Fatalf("expected tick completions, got %v", kpi["tick_completions"])
		}

		status, catBody, err := doRequest(client, http.MethodGet, baseURL+"/ops/catalog", nil)
		if err != nil {
			t.Fatalf("catalog request: %v", err)
		}
		if status != http.StatusOK {
			t.Fatalf("catalog status=%d body=%s", status, string(catBody))
		}
		var cat map[string]any
		if err := json.Unmarshal(catBody, &cat); err != nil {
			t.Fatalf("unmarshal catalog: %v body=%s", err, string(catBody))
		}
		if len(asSlice(cat["nodes"])) == 0 {
			t.Fatalf("expected catalog nodes, got %s", string(catBody))
		}
	})
}

func mustJSON(t *testing.T, client *http.Client, method, url string, body map[string]any) (int, []byte) {
	t.Helper()
	status, respBody, err := doRequest(client, method, url, body)
	if err != nil {
		t.Fatalf("%s %s request failed: %v", method, url, err)
	}
	return status, respBody
}

func doRequest(client *http.Client, method, url string, body map[string]any) (int, []byte, error) {
	var payloadBytes []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		payloadBytes = b
	}

	var lastStatus int
	var lastBody []byte
	var lastErr error
	for attempt := 0; attempt < 3; attempt++ {
		var payload io.Reader
		if len(payloadBytes) > 0 {
			payload = bytes.NewReader(payloadBytes)
		}
		req, err := http.NewRequest(method, url, payload)
		if err != nil {
			return 0, nil, err
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		resp, err := client.Do(req)
		if err != nil {
			lastErr = err
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		respBody, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		lastStatus, lastBody, lastErr = resp.StatusCode, respBody, nil
		if resp.StatusCode >= 500 {
			time.Sleep(time.Duration(attempt+1) * 200 * time.Millisecond)
			continue
		}
		return resp.StatusCode, respBody, nil
	}
	if lastErr != nil {
		return 0, nil, lastErr
	}
	return lastStatus, lastBody, nil
}

func envOr(k, def string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	return v
}

func asMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

func asSlice(v any) []any {
	if s, ok := v.([]any); ok {
		return s
	}
	return nil
}
