package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mkamau/chamapool/internal/auth"
	"github.com/mkamau/chamapool/internal/ledger"
	"github.com/mkamau/chamapool/internal/metrics"
	"github.com/mkamau/chamapool/internal/middleware"
	"github.com/mkamau/chamapool/internal/models"
	"github.com/mkamau/chamapool/internal/storage"
)

// ClubService exposes the club lifecycle over HTTP: creation, membership,
// obligation scheduling, settlement, and treasury access. It is the
// serializing host for the accounting core: every mutating request holds the
// club's lock from aggregate load to persistence, and the core's validation
// runs before anything is written, so a rejected operation persists nothing.
type ClubService struct {
	store  storage.Store
	caps   *auth.CapabilityManager
	locks  *clubLocks
	logger *slog.Logger

	// now supplies timestamps (unix ms). Swappable in tests; the core
	// itself never reads a clock.
	now func() int64
}

// NewClubService creates a ClubService backed by the given store.
func NewClubService(store storage.Store, caps *auth.CapabilityManager, logger *slog.Logger) *ClubService {
	return &ClubService{
		store:  store,
		caps:   caps,
		locks:  newClubLocks(),
		logger: logger,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

type createClubRequest struct {
	Name        string `json:"name"`
	ClubType    string `json:"club_type"`
	Rules       string `json:"rules"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
}

type clubResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ClubType    string `json:"club_type"`
	Rules       string `json:"rules"`
	Description string `json:"description"`
	Active      bool   `json:"active"`
	FoundedAt   int64  `json:"founded_at"`
	Balance     uint64 `json:"balance"`
}

type createClubResponse struct {
	Club clubResponse `json:"club"`
	// Capability is the club's admin credential, shown exactly once.
	Capability string `json:"capability"`
}

// CreateClub creates a club with a zero balance and mints its capability
// credential. Requires a treasurer session.
func (s *ClubService) CreateClub(w http.ResponseWriter, r *http.Request) {
	var req createClubRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name is required"})
		return
	}

	club, token := ledger.NewClub(req.Name, req.ClubType, req.Rules, req.Description, req.Active, s.now())
	if err := s.store.CreateClub(r.Context(), club, token); err != nil {
		s.logger.Error("CreateClub failed", "error", err)
		writeError(w, err)
		return
	}

	capability, err := s.caps.Issue(token)
	if err != nil {
		s.logger.Error("Failed to issue capability", "club_id", club.ID, "error", err)
		writeError(w, err)
		return
	}

	metrics.ClubsCreated.Inc()
	s.logger.Info("Club created",
		"club_id", club.ID,
		"name", club.Name,
		"created_by", middleware.GetUserID(r.Context()),
	)
	writeJSON(w, http.StatusCreated, createClubResponse{
		Club:       toClubResponse(club),
		Capability: capability,
	})
}

func toClubResponse(c *models.Club) clubResponse {
	return clubResponse{
		ID:          c.ID,
		Name:        c.Name,
		ClubType:    c.ClubType,
		Rules:       c.Rules,
		Description: c.Description,
		Active:      c.Active,
		FoundedAt:   c.FoundedAt,
		Balance:     c.Balance,
	}
}

type addMemberRequest struct {
	Name    string `json:"name"`
	Gender  string `json:"gender"`
	Contact string `json:"contact"`
	Shares  uint64 `json:"shares"`
}

type memberResponse struct {
	ID       string `json:"id"`
	ClubID   string `json:"club_id"`
	Name     string `json:"name"`
	Gender   string `json:"gender"`
	Contact  string `json:"contact"`
	Shares   uint64 `json:"shares"`
	Paid     bool   `json:"paid"`
	JoinedAt int64  `json:"joined_at"`
}

// AddMember registers a member with the club. Requires a treasurer session.
func (s *ClubService) AddMember(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")

	var req addMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	gender := models.Gender(req.Gender)
	if !gender.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "gender must be \"female\" or \"male\""})
		return
	}
	if req.Shares == 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "shares must be positive"})
		return
	}

	unlock := s.locks.acquire(clubID)
	defer unlock()

	club, err := s.store.GetClub(r.Context(), clubID)
	if err != nil {
		writeError(w, err)
		return
	}

	member := ledger.AddMember(club, req.Name, gender, req.Contact, req.Shares, s.now())
	if err := s.store.CreateMember(r.Context(), member); err != nil {
		s.logger.Error("AddMember failed", "club_id", clubID, "error", err)
		writeError(w, err)
		return
	}

	s.logger.Info("Member added", "club_id", clubID, "member_id", member.ID)
	writeJSON(w, http.StatusCreated, memberResponse{
		ID:       member.ID,
		ClubID:   member.ClubID,
		Name:     member.Name,
		Gender:   string(member.Gender),
		Contact:  member.Contact,
		Shares:   member.Shares,
		Paid:     member.Paid,
		JoinedAt: member.JoinedAt,
	})
}

type generateInvestmentRequest struct {
	MemberID   string `json:"member_id"`
	PayerID    string `json:"payer_id"`
	BaseAmount uint64 `json:"base_amount"`
	OffsetMS   int64  `json:"offset_ms"`
	Status     string `json:"status"`
}

type investmentResponse struct {
	PayerID       string `json:"payer_id"`
	MemberID      string `json:"member_id"`
	AmountPayable uint64 `json:"amount_payable"`
	DueAt         int64  `json:"due_at"`
	Status        string `json:"status"`
}

// GenerateInvestment schedules an obligation for a member. Requires the
// club's capability credential. The payer identity defaults to the member.
func (s *ClubService) GenerateInvestment(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")

	token, err := s.verifyCapability(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	var req generateInvestmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	status := models.InvestmentStatus(req.Status)
	if req.Status == "" {
		status = models.StatusPending
	}
	if !status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "unknown investment status"})
		return
	}
	payerID := req.PayerID
	if payerID == "" {
		payerID = req.MemberID
	}

	unlock := s.locks.acquire(clubID)
	defer unlock()

	club, err := s.store.GetClub(r.Context(), clubID)
	if err != nil {
		writeError(w, err)
		return
	}
	member, ok := club.Members[req.MemberID]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
		return
	}

	if err := ledger.GenerateInvestment(token, club, member, payerID, req.BaseAmount, status, req.OffsetMS, s.now()); err != nil {
		s.logger.Warn("GenerateInvestment rejected", "club_id", clubID, "error", err)
		writeError(w, err)
		return
	}

	inv := club.Investments[payerID]
	if err := s.store.PutInvestment(r.Context(), clubID, payerID, inv); err != nil {
		s.logger.Error("Failed to persist investment", "club_id", clubID, "error", err)
		writeError(w, err)
		return
	}

	metrics.InvestmentsScheduled.Inc()
	s.logger.Info("Investment scheduled",
		"club_id", clubID,
		"payer_id", payerID,
		"amount_payable", inv.AmountPayable,
		"due_at", inv.DueAt,
	)
	writeJSON(w, http.StatusCreated, investmentResponse{
		PayerID:       payerID,
		MemberID:      inv.MemberID,
		AmountPayable: inv.AmountPayable,
		DueAt:         inv.DueAt,
		Status:        string(inv.Status),
	})
}

type markOverdueResponse struct {
	Flipped []string `json:"flipped"`
}

// MarkOverdue flips past-due Pending obligations to Overdue. Requires the
// club's capability credential.
func (s *ClubService) MarkOverdue(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")

	token, err := s.verifyCapability(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	unlock := s.locks.acquire(clubID)
	defer unlock()

	club, err := s.store.GetClub(r.Context(), clubID)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := ledger.Authorize(token, club); err != nil {
		writeError(w, err)
		return
	}

	flipped := ledger.MarkOverdue(club, s.now())
	for _, payerID := range flipped {
		if err := s.store.UpdateInvestmentStatus(r.Context(), clubID, payerID, models.StatusOverdue); err != nil {
			s.logger.Error("Failed to persist overdue status", "club_id", clubID, "payer_id", payerID, "error", err)
			writeError(w, err)
			return
		}
	}

	s.logger.Info("Overdue sweep", "club_id", clubID, "flipped", len(flipped))
	writeJSON(w, http.StatusOK, markOverdueResponse{Flipped: flipped})
}

type payRequest struct {
	PayerID string `json:"payer_id"`
	Amount  uint64 `json:"amount"`
}

type payResponse struct {
	Balance    uint64 `json:"balance"`
	MemberID   string `json:"member_id"`
	MemberPaid bool   `json:"member_paid"`
}

// Pay settles the obligation keyed under the payer identity. Open to anyone
// holding a matching obligation and the exact funds; no credential required.
func (s *ClubService) Pay(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")

	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	unlock := s.locks.acquire(clubID)
	defer unlock()

	club, err := s.store.GetClub(r.Context(), clubID)
	if err != nil {
		writeError(w, err)
		return
	}
	inv, ok := club.Investments[req.PayerID]
	if !ok {
		metrics.PaymentFailures.WithLabelValues("not_found").Inc()
		writeError(w, ledger.ErrInvestmentNotFound)
		return
	}
	member, ok := club.Members[inv.MemberID]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
		return
	}

	if err := ledger.PayInvestment(club, req.PayerID, member, req.Amount, s.now()); err != nil {
		metrics.PaymentFailures.WithLabelValues(failureReason(err)).Inc()
		s.logger.Warn("Payment rejected", "club_id", clubID, "payer_id", req.PayerID, "error", err)
		writeError(w, err)
		return
	}

	if err := s.store.SettleInvestment(r.Context(), clubID, req.PayerID, member.ID, req.Amount); err != nil {
		s.logger.Error("Failed to persist settlement", "club_id", clubID, "payer_id", req.PayerID, "error", err)
		writeError(w, err)
		return
	}

	metrics.PaymentsSettled.Inc()
	s.logger.Info("Payment settled",
		"club_id", clubID,
		"payer_id", req.PayerID,
		"amount", req.Amount,
		"balance", club.Balance,
	)
	writeJSON(w, http.StatusOK, payResponse{
		Balance:    club.Balance,
		MemberID:   member.ID,
		MemberPaid: member.Paid,
	})
}

type withdrawResponse struct {
	Funds   uint64 `json:"funds"`
	Balance uint64 `json:"balance"`
}

// Withdraw empties the club's treasury and returns the full prior balance.
// Requires the club's capability credential.
func (s *ClubService) Withdraw(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")

	token, err := s.verifyCapability(r)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
		return
	}

	unlock := s.locks.acquire(clubID)
	defer unlock()

	club, err := s.store.GetClub(r.Context(), clubID)
	if err != nil {
		writeError(w, err)
		return
	}

	funds, err := ledger.WithdrawFunds(token, club)
	if err != nil {
		s.logger.Warn("Withdrawal rejected", "club_id", clubID, "error", err)
		writeError(w, err)
		return
	}

	if _, err := s.store.WithdrawBalance(r.Context(), clubID); err != nil {
		s.logger.Error("Failed to persist withdrawal", "club_id", clubID, "error", err)
		writeError(w, err)
		return
	}

	metrics.Withdrawals.Inc()
	s.logger.Info("Treasury withdrawn", "club_id", clubID, "funds", funds)
	writeJSON(w, http.StatusOK, withdrawResponse{Funds: funds, Balance: club.Balance})
}

type balanceResponse struct {
	Balance uint64 `json:"balance"`
}

// Balance reads the treasury balance. No credential required.
func (s *ClubService) Balance(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")

	balance, err := s.store.GetBalance(r.Context(), clubID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, balanceResponse{Balance: balance})
}

type statusResponse struct {
	MemberPaid       bool   `json:"member_paid"`
	InvestmentStatus string `json:"investment_status"`
}

// Status reports a member's paid flag together with an obligation's status.
// No credential required.
func (s *ClubService) Status(w http.ResponseWriter, r *http.Request) {
	clubID := r.PathValue("id")
	memberID := r.URL.Query().Get("member_id")
	payerID := r.URL.Query().Get("payer_id")
	if payerID == "" {
		payerID = memberID
	}

	club, err := s.store.GetClub(r.Context(), clubID)
	if err != nil {
		writeError(w, err)
		return
	}
	member, ok := club.Members[memberID]
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "member not found"})
		return
	}
	inv, ok := club.Investments[payerID]
	if !ok {
		writeError(w, ledger.ErrInvestmentNotFound)
		return
	}

	paid, status := ledger.CheckStatus(member, inv)
	writeJSON(w, http.StatusOK, statusResponse{
		MemberPaid:       paid,
		InvestmentStatus: string(status),
	})
}

// verifyCapability extracts and verifies the capability credential from the
// Authorization header. The core's own club check still runs afterwards.
func (s *ClubService) verifyCapability(r *http.Request) (*models.ClubToken, error) {
	credential := middleware.BearerToken(r)
	if credential == "" {
		return nil, auth.ErrMissingToken
	}
	return s.caps.Verify(credential)
}

func failureReason(err error) string {
	switch {
	case err == nil:
		return "none"
	case err == ledger.ErrAlreadySettled:
		return "already_settled"
	case err == ledger.ErrPaymentWindowClosed:
		return "window_closed"
	case err == ledger.ErrAmountMismatch:
		return "amount_mismatch"
	case err == ledger.ErrInvestmentNotFound:
		return "not_found"
	default:
		return "other"
	}
}
