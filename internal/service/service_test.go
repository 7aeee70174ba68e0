package service

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkamau/chamapool/internal/auth"
	"github.com/mkamau/chamapool/internal/storage/sqlite"
)

const testSecret = "test-secret-key-0123456789abcdef"

// testServer bundles the running API with a controllable clock.
type testServer struct {
	url   string
	now   int64
	token string // treasurer session token
}

func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "chamapool-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	capManager := auth.NewCapabilityManager(testSecret)
	authenticator := auth.NewPasswordAuthenticator(store)

	authSvc := NewAuthService(authenticator, jwtManager, logger)
	clubSvc := NewClubService(store, capManager, logger)

	ts := &testServer{now: 1_700_000_000_000}
	clubSvc.now = func() int64 { return ts.now }

	mux := http.NewServeMux()
	RegisterRoutes(mux, authSvc, clubSvc, jwtManager)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	ts.url = server.URL

	// Register a treasurer for the session-gated endpoints.
	var session sessionResponse
	status := ts.do(t, "POST", "/api/v1/auth/register", "", map[string]any{
		"email":        "treasurer@example.com",
		"display_name": "Treasurer",
		"password":     "correct-horse",
	}, &session)
	if status != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", status)
	}
	ts.token = session.Token

	return ts
}

// do issues a JSON request and decodes the response into out (when non-nil),
// returning the HTTP status.
func (ts *testServer) do(t *testing.T, method, path, bearer string, body, out any) int {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
	}

	req, err := http.NewRequest(method, ts.url+path, &buf)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
	}
	return resp.StatusCode
}

func (ts *testServer) createClub(t *testing.T, name string) createClubResponse {
	t.Helper()
	var resp createClubResponse
	status := ts.do(t, "POST", "/api/v1/clubs", ts.token, map[string]any{
		"name":      name,
		"club_type": "merry-go-round",
		"active":    true,
	}, &resp)
	if status != http.StatusCreated {
		t.Fatalf("create club: expected 201, got %d", status)
	}
	return resp
}

func (ts *testServer) addMember(t *testing.T, clubID, name string, shares uint64) memberResponse {
	t.Helper()
	var resp memberResponse
	status := ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/members", ts.token, map[string]any{
		"name":    name,
		"gender":  "female",
		"contact": name + "@example.com",
		"shares":  shares,
	}, &resp)
	if status != http.StatusCreated {
		t.Fatalf("add member: expected 201, got %d", status)
	}
	return resp
}

func TestCreateClubRequiresSession(t *testing.T) {
	ts := setupTestServer(t)

	status := ts.do(t, "POST", "/api/v1/clubs", "", map[string]any{"name": "X"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("no session: expected 401, got %d", status)
	}

	status = ts.do(t, "POST", "/api/v1/clubs", "garbage-token", map[string]any{"name": "X"}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("bad session: expected 401, got %d", status)
	}
}

func TestAddMemberValidation(t *testing.T) {
	ts := setupTestServer(t)
	club := ts.createClub(t, "Acme Invest")

	status := ts.do(t, "POST", "/api/v1/clubs/"+club.Club.ID+"/members", ts.token, map[string]any{
		"name": "Alice", "gender": "other", "shares": 1,
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("unknown gender: expected 400, got %d", status)
	}

	status = ts.do(t, "POST", "/api/v1/clubs/"+club.Club.ID+"/members", ts.token, map[string]any{
		"name": "Alice", "gender": "female", "shares": 0,
	}, nil)
	if status != http.StatusBadRequest {
		t.Errorf("zero shares: expected 400, got %d", status)
	}
}

func TestInvestmentLifecycleOverHTTP(t *testing.T) {
	ts := setupTestServer(t)
	T := ts.now

	club := ts.createClub(t, "Acme Invest")
	if club.Club.Balance != 0 {
		t.Fatalf("fresh club balance: expected 0, got %d", club.Club.Balance)
	}
	if club.Capability == "" {
		t.Fatal("expected capability credential")
	}
	clubID := club.Club.ID

	alice := ts.addMember(t, clubID, "Alice", 3)
	if alice.Paid {
		t.Fatal("new member must start unpaid")
	}

	// Scheduling without the capability is rejected.
	status := ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/investments", "", map[string]any{
		"member_id": alice.ID, "base_amount": 100, "offset_ms": 1000,
	}, nil)
	if status != http.StatusUnauthorized {
		t.Fatalf("no capability: expected 401, got %d", status)
	}

	// A capability for a different club fails the core's check.
	other := ts.createClub(t, "Other Club")
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/investments", other.Capability, map[string]any{
		"member_id": alice.ID, "base_amount": 100, "offset_ms": 1000,
	}, nil)
	if status != http.StatusForbidden {
		t.Fatalf("foreign capability: expected 403, got %d", status)
	}

	var inv investmentResponse
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/investments", club.Capability, map[string]any{
		"member_id": alice.ID, "base_amount": 100, "offset_ms": 1000,
	}, &inv)
	if status != http.StatusCreated {
		t.Fatalf("schedule: expected 201, got %d", status)
	}
	if inv.AmountPayable != 300 {
		t.Errorf("amount_payable: expected 300, got %d", inv.AmountPayable)
	}
	if inv.DueAt != T+1000 {
		t.Errorf("due_at: expected %d, got %d", T+1000, inv.DueAt)
	}

	// Early payment is rejected and nothing changes.
	ts.now = T + 500
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/payments", "", map[string]any{
		"payer_id": alice.ID, "amount": 300,
	}, nil)
	if status != http.StatusUnprocessableEntity {
		t.Fatalf("early payment: expected 422, got %d", status)
	}

	var balance balanceResponse
	if s := ts.do(t, "GET", "/api/v1/clubs/"+clubID+"/balance", "", nil, &balance); s != http.StatusOK {
		t.Fatalf("balance: expected 200, got %d", s)
	}
	if balance.Balance != 0 {
		t.Fatalf("balance after rejected payment: expected 0, got %d", balance.Balance)
	}

	// Wrong amounts are rejected at the due date.
	ts.now = T + 1000
	for _, amount := range []uint64{299, 301} {
		status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/payments", "", map[string]any{
			"payer_id": alice.ID, "amount": amount,
		}, nil)
		if status != http.StatusUnprocessableEntity {
			t.Fatalf("amount %d: expected 422, got %d", amount, status)
		}
	}

	var pay payResponse
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/payments", "", map[string]any{
		"payer_id": alice.ID, "amount": 300,
	}, &pay)
	if status != http.StatusOK {
		t.Fatalf("payment: expected 200, got %d", status)
	}
	if pay.Balance != 300 {
		t.Errorf("balance after settlement: expected 300, got %d", pay.Balance)
	}
	if !pay.MemberPaid {
		t.Error("expected member marked paid")
	}

	// The obligation is gone; paying again finds nothing.
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/payments", "", map[string]any{
		"payer_id": alice.ID, "amount": 300,
	}, nil)
	if status != http.StatusNotFound {
		t.Fatalf("repeat payment: expected 404, got %d", status)
	}

	// Withdrawal needs the matching capability.
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/withdraw", other.Capability, nil, nil)
	if status != http.StatusForbidden {
		t.Fatalf("foreign withdrawal: expected 403, got %d", status)
	}
	if s := ts.do(t, "GET", "/api/v1/clubs/"+clubID+"/balance", "", nil, &balance); s != http.StatusOK || balance.Balance != 300 {
		t.Fatalf("denied withdrawal must not change balance (status %d, balance %d)", s, balance.Balance)
	}

	var withdrawal withdrawResponse
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/withdraw", club.Capability, nil, &withdrawal)
	if status != http.StatusOK {
		t.Fatalf("withdrawal: expected 200, got %d", status)
	}
	if withdrawal.Funds != 300 || withdrawal.Balance != 0 {
		t.Errorf("withdrawal: expected funds=300 balance=0, got funds=%d balance=%d", withdrawal.Funds, withdrawal.Balance)
	}

	// A second withdrawal returns zero.
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/withdraw", club.Capability, nil, &withdrawal)
	if status != http.StatusOK || withdrawal.Funds != 0 {
		t.Errorf("second withdrawal: expected funds=0, got %d (status %d)", withdrawal.Funds, status)
	}
}

func TestOverdueSweepOverHTTP(t *testing.T) {
	ts := setupTestServer(t)
	T := ts.now

	club := ts.createClub(t, "Acme Invest")
	clubID := club.Club.ID
	alice := ts.addMember(t, clubID, "Alice", 2)

	var inv investmentResponse
	status := ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/investments", club.Capability, map[string]any{
		"member_id": alice.ID, "base_amount": 100, "offset_ms": 1000,
	}, &inv)
	if status != http.StatusCreated {
		t.Fatalf("schedule: expected 201, got %d", status)
	}

	// Before the due date nothing flips.
	var sweep markOverdueResponse
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/investments/overdue", club.Capability, nil, &sweep)
	if status != http.StatusOK || len(sweep.Flipped) != 0 {
		t.Fatalf("early sweep: expected nothing flipped, got %v (status %d)", sweep.Flipped, status)
	}

	ts.now = T + 2000
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/investments/overdue", club.Capability, nil, &sweep)
	if status != http.StatusOK || len(sweep.Flipped) != 1 {
		t.Fatalf("sweep: expected 1 flipped, got %v (status %d)", sweep.Flipped, status)
	}

	var st statusResponse
	status = ts.do(t, "GET", "/api/v1/clubs/"+clubID+"/status?member_id="+alice.ID, "", nil, &st)
	if status != http.StatusOK {
		t.Fatalf("status: expected 200, got %d", status)
	}
	if st.MemberPaid {
		t.Error("expected member_paid == false")
	}
	if st.InvestmentStatus != "Overdue" {
		t.Errorf("investment_status: expected Overdue, got %q", st.InvestmentStatus)
	}

	// Overdue obligations remain payable.
	var pay payResponse
	status = ts.do(t, "POST", "/api/v1/clubs/"+clubID+"/payments", "", map[string]any{
		"payer_id": alice.ID, "amount": 200,
	}, &pay)
	if status != http.StatusOK || pay.Balance != 200 {
		t.Fatalf("overdue payment: expected 200 with balance 200, got status %d balance %d", status, pay.Balance)
	}
}

func TestLoginFlow(t *testing.T) {
	ts := setupTestServer(t)

	var session sessionResponse
	status := ts.do(t, "POST", "/api/v1/auth/login", "", map[string]any{
		"email": "treasurer@example.com", "password": "correct-horse",
	}, &session)
	if status != http.StatusOK {
		t.Fatalf("login: expected 200, got %d", status)
	}
	if session.Token == "" {
		t.Error("expected session token")
	}

	status = ts.do(t, "POST", "/api/v1/auth/login", "", map[string]any{
		"email": "treasurer@example.com", "password": "wrong-password",
	}, nil)
	if status != http.StatusUnauthorized {
		t.Errorf("bad password: expected 401, got %d", status)
	}

	status = ts.do(t, "POST", "/api/v1/auth/register", "", map[string]any{
		"email": "treasurer@example.com", "display_name": "Dup", "password": "long-enough",
	}, nil)
	if status != http.StatusConflict {
		t.Errorf("duplicate email: expected 409, got %d", status)
	}
}
