package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/mmynk/homeshare/internal/auth"
	"github.com/mmynk/homeshare/internal/models"
	"github.com/mmynk/homeshare/internal/service"
	"github.com/mmynk/homeshare/internal/storage/sqlite"
)

// setupTestServer boots the full API against a temp SQLite database.
func setupTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "homeshare-api-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()
	t.Cleanup(func() { os.Remove(tmpFile.Name()) })

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	jwtManager := auth.NewJWTManager("test-secret-key-at-least-16", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	server := New(store,
		service.NewAuthService(authenticator, jwtManager),
		service.NewExpenseService(store),
		service.NewBalanceService(store),
		service.NewRecurrenceService(store, nil),
		jwtManager,
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

type testClient struct {
	t     *testing.T
	base  string
	token string
}

func (c *testClient) do(method, path string, body any) (*http.Response, []byte) {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			c.t.Fatalf("failed to encode body: %v", err)
		}
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	if err != nil {
		c.t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		c.t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		c.t.Fatalf("failed to read response: %v", err)
	}
	return resp, data
}

func (c *testClient) doJSON(method, path string, body, out any) int {
	c.t.Helper()
	resp, data := c.do(method, path, body)
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			c.t.Fatalf("failed to decode %s %s response %q: %v", method, path, data, err)
		}
	}
	return resp.StatusCode
}

// register creates an account and returns an authenticated client.
func register(t *testing.T, ts *httptest.Server, email string) *testClient {
	t.Helper()
	c := &testClient{t: t, base: ts.URL}

	var out authResponse
	status := c.doJSON(http.MethodPost, "/v1/auth/register", registerRequest{
		Email:    email,
		Name:     "Test User",
		Password: "correct horse",
	}, &out)
	if status != http.StatusCreated {
		t.Fatalf("register returned %d", status)
	}
	if out.Token == "" {
		t.Fatal("register returned empty token")
	}
	c.token = out.Token
	return c
}

func TestAuthFlow(t *testing.T) {
	ts := setupTestServer(t)
	c := &testClient{t: t, base: ts.URL}

	t.Run("register then login", func(t *testing.T) {
		var reg authResponse
		status := c.doJSON(http.MethodPost, "/v1/auth/register", registerRequest{
			Email:    "alice@example.com",
			Name:     "Alice",
			Password: "correct horse",
		}, &reg)
		if status != http.StatusCreated {
			t.Fatalf("register returned %d", status)
		}

		var login authResponse
		status = c.doJSON(http.MethodPost, "/v1/auth/login", loginRequest{
			Email:    "alice@example.com",
			Password: "correct horse",
		}, &login)
		if status != http.StatusOK {
			t.Fatalf("login returned %d", status)
		}
		if login.User.ID != reg.User.ID {
			t.Errorf("login user %s, want %s", login.User.ID, reg.User.ID)
		}
	})

	t.Run("wrong password rejected", func(t *testing.T) {
		status := c.doJSON(http.MethodPost, "/v1/auth/login", loginRequest{
			Email:    "alice@example.com",
			Password: "wrong",
		}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("login returned %d, want 401", status)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		status := c.doJSON(http.MethodPost, "/v1/auth/register", registerRequest{
			Email:    "alice@example.com",
			Name:     "Imposter",
			Password: "correct horse",
		}, nil)
		if status != http.StatusConflict {
			t.Errorf("register returned %d, want 409", status)
		}
	})

	t.Run("short password rejected", func(t *testing.T) {
		status := c.doJSON(http.MethodPost, "/v1/auth/register", registerRequest{
			Email:    "bob@example.com",
			Name:     "Bob",
			Password: "short",
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("register returned %d, want 400", status)
		}
	})

	t.Run("protected route requires token", func(t *testing.T) {
		bare := &testClient{t: t, base: ts.URL}
		status := bare.doJSON(http.MethodPost, "/v1/households", householdRequest{Name: "Flat"}, nil)
		if status != http.StatusUnauthorized {
			t.Errorf("households returned %d, want 401", status)
		}
	})
}

func TestExpenseAndBalanceFlow(t *testing.T) {
	ts := setupTestServer(t)
	c := register(t, ts, "flatmate@example.com")

	var household householdDTO
	if status := c.doJSON(http.MethodPost, "/v1/households", householdRequest{Name: "Maple St"}, &household); status != http.StatusCreated {
		t.Fatalf("create household returned %d", status)
	}

	memberIDs := map[string]string{}
	for _, name := range []string{"Alice", "Bob"} {
		var m memberDTO
		path := fmt.Sprintf("/v1/households/%s/members", household.ID)
		if status := c.doJSON(http.MethodPost, path, memberRequest{DisplayName: name}, &m); status != http.StatusCreated {
			t.Fatalf("add member returned %d", status)
		}
		memberIDs[name] = m.ID
	}

	t.Run("create equal-split expense", func(t *testing.T) {
		var expense expenseDTO
		path := fmt.Sprintf("/v1/households/%s/expenses", household.ID)
		status := c.doJSON(http.MethodPost, path, expenseRequest{
			Description: "Pizza",
			PayerID:     memberIDs["Alice"],
			Amount:      1000,
			Split: models.SplitSpec{
				Method:         models.SplitEqual,
				ParticipantIDs: []string{memberIDs["Alice"], memberIDs["Bob"]},
			},
		}, &expense)
		if status != http.StatusCreated {
			t.Fatalf("create expense returned %d", status)
		}
		if len(expense.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(expense.Lines))
		}
	})

	t.Run("invalid split is a 400", func(t *testing.T) {
		path := fmt.Sprintf("/v1/households/%s/expenses", household.ID)
		status := c.doJSON(http.MethodPost, path, expenseRequest{
			Description: "Ghost",
			PayerID:     memberIDs["Alice"],
			Amount:      1000,
			Split: models.SplitSpec{
				Method:         models.SplitEqual,
				ParticipantIDs: []string{"not-a-member"},
			},
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("create expense returned %d, want 400", status)
		}
	})

	t.Run("settlement and net balances", func(t *testing.T) {
		path := fmt.Sprintf("/v1/households/%s/settlements", household.ID)
		status := c.doJSON(http.MethodPost, path, settlementRequest{
			FromMemberID: memberIDs["Bob"],
			ToMemberID:   memberIDs["Alice"],
			Amount:       200,
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("create settlement returned %d", status)
		}

		var rows []balanceRowDTO
		path = fmt.Sprintf("/v1/households/%s/balances", household.ID)
		if status := c.doJSON(http.MethodGet, path, nil, &rows); status != http.StatusOK {
			t.Fatalf("balances returned %d", status)
		}

		nets := map[string]int64{}
		var total int64
		for _, r := range rows {
			nets[r.MemberID] = r.Net
			total += r.Net
		}
		if total != 0 {
			t.Errorf("nets sum to %d, want 0", total)
		}
		if nets[memberIDs["Alice"]] != 300 {
			t.Errorf("Alice's net is %d, want 300", nets[memberIDs["Alice"]])
		}
	})

	t.Run("pairwise balances", func(t *testing.T) {
		var rows []balanceRowDTO
		path := fmt.Sprintf("/v1/households/%s/balances/%s", household.ID, memberIDs["Bob"])
		if status := c.doJSON(http.MethodGet, path, nil, &rows); status != http.StatusOK {
			t.Fatalf("pairwise balances returned %d", status)
		}
		if len(rows) != 1 {
			t.Fatalf("expected 1 pairwise row, got %d", len(rows))
		}
		if rows[0].MemberID != memberIDs["Alice"] || rows[0].Net != -300 {
			t.Errorf("got pairwise row %+v, want Bob owing Alice 300", rows[0])
		}
	})

	t.Run("unknown expense is a 404", func(t *testing.T) {
		if status := c.doJSON(http.MethodGet, "/v1/expenses/no-such-id", nil, nil); status != http.StatusNotFound {
			t.Errorf("get expense returned %d, want 404", status)
		}
	})
}

func TestTaskEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	c := register(t, ts, "chores@example.com")

	var household householdDTO
	if status := c.doJSON(http.MethodPost, "/v1/households", householdRequest{Name: "Flat"}, &household); status != http.StatusCreated {
		t.Fatalf("create household returned %d", status)
	}

	var task taskDTO
	path := fmt.Sprintf("/v1/households/%s/tasks", household.ID)
	status := c.doJSON(http.MethodPost, path, taskRequest{
		Title:   "Take out recycling",
		DueDate: "2026-09-01",
	}, &task)
	if status != http.StatusCreated {
		t.Fatalf("create task returned %d", status)
	}
	if task.Done {
		t.Error("new task should not be done")
	}

	t.Run("mark done", func(t *testing.T) {
		var updated taskDTO
		path := fmt.Sprintf("/v1/tasks/%s/done", task.ID)
		if status := c.doJSON(http.MethodPatch, path, nil, &updated); status != http.StatusOK {
			t.Fatalf("mark done returned %d", status)
		}
		if !updated.Done {
			t.Error("expected task to be done")
		}
	})

	t.Run("delete", func(t *testing.T) {
		path := fmt.Sprintf("/v1/tasks/%s", task.ID)
		if status := c.doJSON(http.MethodDelete, path, nil, nil); status != http.StatusNoContent {
			t.Fatalf("delete returned %d", status)
		}
		if status := c.doJSON(http.MethodGet, path, nil, nil); status != http.StatusNotFound {
			t.Errorf("get after delete returned %d, want 404", status)
		}
	})
}

func TestTemplateEndpoints(t *testing.T) {
	ts := setupTestServer(t)
	c := register(t, ts, "scheduler@example.com")

	var household householdDTO
	if status := c.doJSON(http.MethodPost, "/v1/households", householdRequest{Name: "Ski Trip"}, &household); status != http.StatusCreated {
		t.Fatalf("create household returned %d", status)
	}
	var member memberDTO
	path := fmt.Sprintf("/v1/households/%s/members", household.ID)
	if status := c.doJSON(http.MethodPost, path, memberRequest{DisplayName: "Alice"}, &member); status != http.StatusCreated {
		t.Fatalf("add member returned %d", status)
	}

	var tmpl templateDTO
	path = fmt.Sprintf("/v1/households/%s/templates", household.ID)
	status := c.doJSON(http.MethodPost, path, templateRequest{
		Kind:           "task",
		Frequency:      "weekly",
		Interval:       1,
		NextOccurrence: "2026-08-03",
		TaskTitle:      "Clean kitchen",
		TaskAssigneeID: member.ID,
	}, &tmpl)
	if status != http.StatusCreated {
		t.Fatalf("create template returned %d", status)
	}
	if !tmpl.Active {
		t.Error("new template should be active")
	}

	t.Run("bad frequency rejected", func(t *testing.T) {
		status := c.doJSON(http.MethodPost, path, templateRequest{
			Kind:           "task",
			Frequency:      "fortnightly",
			Interval:       1,
			NextOccurrence: "2026-08-03",
			TaskTitle:      "Nope",
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("create template returned %d, want 400", status)
		}
	})

	t.Run("run generates due tasks", func(t *testing.T) {
		var out runTemplatesResponse
		status := c.doJSON(http.MethodPost, "/v1/templates/run", runTemplatesRequest{Today: "2026-08-20"}, &out)
		if status != http.StatusOK {
			t.Fatalf("run returned %d", status)
		}
		if out.Generated != 3 {
			t.Errorf("generated %d occurrences, want 3", out.Generated)
		}

		var tasks []taskDTO
		tasksPath := fmt.Sprintf("/v1/households/%s/tasks", household.ID)
		if status := c.doJSON(http.MethodGet, tasksPath, nil, &tasks); status != http.StatusOK {
			t.Fatalf("list tasks returned %d", status)
		}
		if len(tasks) != 3 {
			t.Errorf("expected 3 tasks, got %d", len(tasks))
		}
	})
}
