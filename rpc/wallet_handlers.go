package rpc

import "net/http"

type walletConnectResult struct {
	Account string `json:"account"`
}

type walletDisconnectResult struct {
	OK bool `json:"ok"`
}

func (s *Server) handleWalletConnect(w http.ResponseWriter, r *http.Request, req *RPCRequest) {
	account, err := s.bridge.Connect(requestContext(r))
	if err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, walletConnectResult{Account: account})
}

func (s *Server) handleWalletDisconnect(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	s.bridge.Disconnect()
	writeResult(w, req.ID, walletDisconnectResult{OK: true})
}

func (s *Server) handleWalletSession(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	writeResult(w, req.ID, s.bridge.Session())
}
