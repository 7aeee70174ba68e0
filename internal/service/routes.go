package service

import (
	"net/http"

	"github.com/mkamau/chamapool/internal/auth"
	"github.com/mkamau/chamapool/internal/middleware"
)

// RegisterRoutes wires the API onto mux. Club creation and membership need a
// treasurer session; scheduling, overdue sweeps, and withdrawal need the
// club's capability credential (checked inside the handlers, then again by
// the core); payment, balance, and status are open.
func RegisterRoutes(mux *http.ServeMux, authSvc *AuthService, clubSvc *ClubService, jwtManager *auth.JWTManager) {
	mux.HandleFunc("POST /api/v1/auth/register", authSvc.Register)
	mux.HandleFunc("POST /api/v1/auth/login", authSvc.Login)

	mux.HandleFunc("POST /api/v1/clubs", middleware.RequireAuth(jwtManager, clubSvc.CreateClub))
	mux.HandleFunc("POST /api/v1/clubs/{id}/members", middleware.RequireAuth(jwtManager, clubSvc.AddMember))

	mux.HandleFunc("POST /api/v1/clubs/{id}/investments", clubSvc.GenerateInvestment)
	mux.HandleFunc("POST /api/v1/clubs/{id}/investments/overdue", clubSvc.MarkOverdue)

	mux.HandleFunc("POST /api/v1/clubs/{id}/payments", clubSvc.Pay)
	mux.HandleFunc("POST /api/v1/clubs/{id}/withdraw", clubSvc.Withdraw)
	mux.HandleFunc("GET /api/v1/clubs/{id}/balance", clubSvc.Balance)
	mux.HandleFunc("GET /api/v1/clubs/{id}/status", clubSvc.Status)
}
