package rpc

import (
	"net/http"

	"blocktrack/chain"
)

type chainProductParams struct {
	ProductID string `json:"productId"`
}

type verifyProductResult struct {
	Exists bool `json:"exists"`
}

type chainParticipantParams struct {
	Address string `json:"address"`
}

type registerProductParams struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	RFIDTag      string `json:"rfidTag"`
	Manufacturer string `json:"manufacturer"`
}

type chainUpdateProductParams struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Location string `json:"location"`
}

type registerParticipantParams struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type createTransactionParams struct {
	To        string `json:"to"`
	ProductID string `json:"productId"`
}

type txResult struct {
	TxHash string `json:"txHash"`
}

type chainProductResult struct {
	Found   bool                 `json:"found"`
	Product *chain.RemoteProduct `json:"product,omitempty"`
}

type chainParticipantResult struct {
	Found       bool                     `json:"found"`
	Participant *chain.RemoteParticipant `json:"participant,omitempty"`
}

func (s *Server) handleVerifyProduct(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params chainProductParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	exists, err := s.adapter.VerifyProduct(requestContext(r), params.ProductID)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, verifyProductResult{Exists: exists})
}

func (s *Server) handleChainGetProduct(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params chainProductParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	product, err := s.adapter.GetProduct(requestContext(r), params.ProductID)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, chainProductResult{Found: product != nil, Product: product})
}

func (s *Server) handleChainGetParticipant(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params chainParticipantParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	participant, err := s.adapter.GetParticipant(requestContext(r), params.Address)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, chainParticipantResult{Found: participant != nil, Participant: participant})
}

func (s *Server) handleTransactionHistory(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params chainProductParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	writeResult(w, req.ID, s.adapter.GetTransactionHistory(requestContext(r), params.ProductID))
}

func (s *Server) handleRegisterProduct(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params registerProductParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	hash, err := s.adapter.RegisterProduct(requestContext(r), params.ID, params.Name, params.RFIDTag, params.Manufacturer)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, txResult{TxHash: hash})
}

func (s *Server) handleChainUpdateProduct(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params chainUpdateProductParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	hash, err := s.adapter.UpdateProduct(requestContext(r), params.ID, params.Status, params.Location)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, txResult{TxHash: hash})
}

func (s *Server) handleRegisterParticipant(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params registerParticipantParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	hash, err := s.adapter.RegisterParticipant(requestContext(r), params.ID, params.Name, params.Role)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, txResult{TxHash: hash})
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	var params createTransactionParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	hash, err := s.adapter.CreateTransaction(requestContext(r), params.To, params.ProductID)
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, txResult{TxHash: hash})
}
