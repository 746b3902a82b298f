package rpc

import "net/http"

type createPaymentParams struct {
	ToParticipantID string `json:"toParticipantId"`
	Amount          string `json:"amount"`
	ProductID       string `json:"productId"`
}

type completePaymentParams struct {
	ID string `json:"id"`
}

type completePaymentResult struct {
	OK bool `json:"ok"`
}

type recentPaymentsParams struct {
	Limit int `json:"limit"`
}

type balanceResult struct {
	Balance string `json:"balance"`
}

func (s *Server) handleCreatePayment(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params createPaymentParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	payment, err := s.ledger.CreatePayment(requestContext(r), params.ToParticipantID, params.Amount, params.ProductID)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, payment)
}

func (s *Server) handleCompletePayment(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params completePaymentParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	if err := s.ledger.CompletePayment(requestContext(r), params.ID); err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, completePaymentResult{OK: true})
}

func (s *Server) handleRecentPayments(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	params := recentPaymentsParams{}
	if len(req.Params) > 0 {
		if err := decodeSingleParam(req, &params); err != nil {
			writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
			return
		}
	}
	writeResult(w, req.ID, s.ledger.RecentTransactions(params.Limit))
}

func (s *Server) handleListPayments(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	writeResult(w, req.ID, s.ledger.Payments())
}

func (s *Server) handleGetBalance(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	balance, err := s.ledger.GetBalance(requestContext(r))
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, balanceResult{Balance: balance})
}
