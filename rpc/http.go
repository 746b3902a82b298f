package rpc

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"blocktrack/chain"
	"blocktrack/native/payments"
	"blocktrack/native/supply"
	"blocktrack/wallet"
)

const (
	jsonRPCVersion  = "2.0"
	maxRequestBytes = 1 << 20 // 1 MiB
)

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
	codeUnauthorized   = -32001
	codeServerError    = -32000

	codeNotFound            = -32050
	codeNoWallet            = -32051
	codeRecipientInvalid    = -32052
	codeInsufficientBalance = -32053
	codeWrongNetwork        = -32054
	codeConnectionRejected  = -32055
	codeConnectionInFlight  = -32056
	codeNotInitialized      = -32057
	codeContractCall        = -32058
)

// Server exposes the core over JSON-RPC 2.0. Mutating methods require the
// configured bearer token when one is set.
type Server struct {
	supply    *supply.Engine
	ledger    *payments.Ledger
	bridge    *wallet.Bridge
	adapter   *chain.Adapter
	authToken string
	logger    *slog.Logger
}

// NewServer wires the RPC server over the core services.
func NewServer(engine *supply.Engine, ledger *payments.Ledger, bridge *wallet.Bridge, adapter *chain.Adapter, authToken string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		supply:    engine,
		ledger:    ledger,
		bridge:    bridge,
		adapter:   adapter,
		authToken: strings.TrimSpace(authToken),
		logger:    logger,
	}
}

// Router mounts the RPC endpoint next to the health and metrics handlers.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	r.Post("/rpc", s.handle)
	return r
}

type RPCRequest struct {
	JSONRPC string            `json:"jsonrpc"`
	Method  string            `json:"method"`
	Params  []json.RawMessage `json:"params"`
	ID      int               `json:"id"`
}

type RPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *RPCError   `json:"error,omitempty"`
}

type RPCError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func writeError(w http.ResponseWriter, status int, id interface{}, code int, message string, data interface{}) {
	if status <= 0 {
		status = http.StatusBadRequest
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	errObj := &RPCError{Code: code, Message: message}
	if data != nil {
		errObj.Data = data
	}
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Error: errObj}
	_ = json.NewEncoder(w).Encode(resp)
}

func writeResult(w http.ResponseWriter, id interface{}, result interface{}) {
	resp := RPCResponse{JSONRPC: jsonRPCVersion, ID: id, Result: result}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeServiceError maps typed core errors onto RPC error codes.
func writeServiceError(w http.ResponseWriter, id interface{}, err error) {
	var callErr *chain.CallError
	switch {
	case errors.Is(err, supply.ErrNotFound), errors.Is(err, payments.ErrNotFound):
		writeError(w, http.StatusNotFound, id, codeNotFound, "not_found", err.Error())
	case errors.Is(err, payments.ErrNoWallet), errors.Is(err, wallet.ErrNotConnected):
		writeError(w, http.StatusConflict, id, codeNoWallet, "wallet_not_connected", err.Error())
	case errors.Is(err, payments.ErrRecipientInvalid):
		writeError(w, http.StatusBadRequest, id, codeRecipientInvalid, "recipient_invalid", err.Error())
	case errors.Is(err, payments.ErrInsufficientBalance):
		writeError(w, http.StatusConflict, id, codeInsufficientBalance, "insufficient_balance", err.Error())
	case errors.Is(err, payments.ErrInvalidAmount):
		writeError(w, http.StatusBadRequest, id, codeInvalidParams, "invalid_params", err.Error())
	case errors.Is(err, wallet.ErrWrongNetwork), errors.Is(err, wallet.ErrUnsupportedChain):
		writeError(w, http.StatusConflict, id, codeWrongNetwork, "wrong_network", err.Error())
	case errors.Is(err, wallet.ErrConnectionRejected), errors.Is(err, wallet.ErrNoAccounts):
		writeError(w, http.StatusConflict, id, codeConnectionRejected, "connection_rejected", err.Error())
	case errors.Is(err, wallet.ErrConnectionInProgress):
		writeError(w, http.StatusConflict, id, codeConnectionInFlight, "connection_in_progress", err.Error())
	case errors.Is(err, chain.ErrNotInitialized):
		writeError(w, http.StatusConflict, id, codeNotInitialized, "not_initialized", err.Error())
	case errors.As(err, &callErr):
		writeError(w, http.StatusBadGateway, id, codeContractCall, "contract_call_failed", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, id, codeServerError, "internal_error", err.Error())
	}
}

type authError struct {
	Code    int
	Message string
	Data    interface{}
}

func (s *Server) requireAuth(r *http.Request) *authError {
	if s.authToken == "" {
		return nil
	}
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return &authError{Code: codeUnauthorized, Message: "unauthorized", Data: "missing bearer token"}
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if subtle.ConstantTimeCompare([]byte(token), []byte(s.authToken)) != 1 {
		return &authError{Code: codeUnauthorized, Message: "unauthorized", Data: "invalid token"}
	}
	return nil
}

// handle is the main request handler that routes to specific handlers.
func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	reader := http.MaxBytesReader(w, r.Body, maxRequestBytes)
	defer func() {
		_ = reader.Close()
	}()

	w.Header().Set("Content-Type", "application/json")
	requestID := uuid.NewString()

	body, err := io.ReadAll(reader)
	if err != nil {
		status := http.StatusBadRequest
		message := "failed to read request body"
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			status = http.StatusRequestEntityTooLarge
			message = fmt.Sprintf("request body exceeds %d bytes", maxRequestBytes)
		}
		writeError(w, status, nil, codeInvalidRequest, message, err.Error())
		return
	}
	if len(bytes.TrimSpace(body)) == 0 {
		writeError(w, http.StatusBadRequest, nil, codeInvalidRequest, "request body required", nil)
		return
	}

	req := &RPCRequest{}
	if err := json.Unmarshal(body, req); err != nil {
		writeError(w, http.StatusBadRequest, nil, codeParseError, "invalid JSON payload", err.Error())
		return
	}
	if req.JSONRPC != "" && req.JSONRPC != jsonRPCVersion {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "unsupported jsonrpc version", req.JSONRPC)
		return
	}
	if req.Method == "" {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidRequest, "method required", nil)
		return
	}

	s.logger.Debug("rpc request", "requestId", requestID, "method", req.Method)

	switch req.Method {
	case "supply_listProducts":
		s.handleListProducts(w, r, req)
	case "supply_listParticipants":
		s.handleListParticipants(w, r, req)
	case "supply_getProduct":
		s.handleGetProduct(w, r, req)
	case "supply_getParticipant":
		s.handleGetParticipant(w, r, req)
	case "supply_lookup":
		s.handleLookup(w, r, req)
	case "supply_trackProduct":
		s.handleTrackProduct(w, r, req)
	case "supply_stats":
		s.handleStats(w, r, req)
	case "supply_addProduct":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleAddProduct(w, r, req)
	case "supply_addParticipant":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleAddParticipant(w, r, req)
	case "supply_updateProductStatus":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleUpdateProductStatus(w, r, req)
	case "supply_transferProduct":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleTransferProduct(w, r, req)
	case "payments_create":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleCreatePayment(w, r, req)
	case "payments_complete":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleCompletePayment(w, r, req)
	case "payments_recent":
		s.handleRecentPayments(w, r, req)
	case "payments_list":
		s.handleListPayments(w, r, req)
	case "payments_balance":
		s.handleGetBalance(w, r, req)
	case "wallet_connect":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleWalletConnect(w, r, req)
	case "wallet_disconnect":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleWalletDisconnect(w, r, req)
	case "wallet_session":
		s.handleWalletSession(w, r, req)
	case "chain_verifyProduct":
		s.handleVerifyProduct(w, r, req)
	case "chain_getProduct":
		s.handleChainGetProduct(w, r, req)
	case "chain_getParticipant":
		s.handleChainGetParticipant(w, r, req)
	case "chain_history":
		s.handleTransactionHistory(w, r, req)
	case "chain_registerProduct":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleRegisterProduct(w, r, req)
	case "chain_updateProduct":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleChainUpdateProduct(w, r, req)
	case "chain_registerParticipant":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleRegisterParticipant(w, r, req)
	case "chain_createTransaction":
		if authErr := s.requireAuth(r); authErr != nil {
			writeError(w, http.StatusUnauthorized, req.ID, authErr.Code, authErr.Message, authErr.Data)
			return
		}
		s.handleCreateTransaction(w, r, req)
	default:
		writeError(w, http.StatusNotFound, req.ID, codeMethodNotFound, "method not found", req.Method)
	}
}

// decodeSingleParam unmarshals the single parameter object RPC methods take.
func decodeSingleParam(req *RPCRequest, out any) error {
	if len(req.Params) != 1 {
		return fmt.Errorf("exactly one parameter object expected")
	}
	return json.Unmarshal(req.Params[0], out)
}

func requestContext(r *http.Request) context.Context {
	return r.Context()
}
