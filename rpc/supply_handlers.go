package rpc

import (
	"net/http"

	"blocktrack/core/types"
)

type productIDParams struct {
	ID string `json:"id"`
}

type participantIDParams struct {
	ID string `json:"id"`
}

type trackParams struct {
	RFIDTag string `json:"rfidTag"`
}

type addProductParams struct {
	Name            string         `json:"name"`
	RFIDTag         string         `json:"rfidTag"`
	Manufacturer    string         `json:"manufacturer"`
	CurrentLocation types.GeoPoint `json:"currentLocation"`
	Status          string         `json:"status"`
	Temperature     *float64       `json:"temperature,omitempty"`
	Humidity        *float64       `json:"humidity,omitempty"`
}

type addParticipantParams struct {
	Name          string        `json:"name"`
	Role          string        `json:"role"`
	Location      types.Address `json:"location"`
	WalletAddress string        `json:"walletAddress"`
	WalletBalance float64       `json:"walletBalance"`
}

type updateStatusParams struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type transferParams struct {
	ProductID string `json:"productId"`
	FromID    string `json:"fromId"`
	ToID      string `json:"toId"`
}

type transferResult struct {
	OK bool `json:"ok"`
}

type trackResult struct {
	Found   bool           `json:"found"`
	Product *types.Product `json:"product,omitempty"`
}

func (s *Server) handleListProducts(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	writeResult(w, req.ID, s.supply.Products())
}

func (s *Server) handleListParticipants(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	writeResult(w, req.ID, s.supply.Participants())
}

func (s *Server) handleGetProduct(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params productIDParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	product, ok := s.supply.GetProduct(params.ID)
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeNotFound, "not_found", params.ID)
		return
	}
	writeResult(w, req.ID, product)
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params participantIDParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	participant, ok := s.supply.GetParticipant(params.ID)
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeNotFound, "not_found", params.ID)
		return
	}
	writeResult(w, req.ID, participant)
}

func (s *Server) handleLookup(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params productIDParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	entity, ok := s.supply.Lookup(params.ID)
	if !ok {
		writeError(w, http.StatusNotFound, req.ID, codeNotFound, "not_found", params.ID)
		return
	}
	writeResult(w, req.ID, entity)
}

func (s *Server) handleTrackProduct(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params trackParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	product, found := s.supply.TrackProduct(params.RFIDTag)
	writeResult(w, req.ID, trackResult{Found: found, Product: product})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	writeResult(w, req.ID, s.supply.Stats())
}

func (s *Server) handleAddProduct(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params addProductParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	draft := &types.Product{
		Name:            params.Name,
		RFIDTag:         params.RFIDTag,
		Manufacturer:    params.Manufacturer,
		CurrentLocation: params.CurrentLocation,
		Status:          types.ProductStatus(params.Status),
		Temperature:     params.Temperature,
		Humidity:        params.Humidity,
	}
	product, err := s.supply.AddProduct(draft)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	writeResult(w, req.ID, product)
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params addParticipantParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	draft := &types.Participant{
		Name:          params.Name,
		Role:          types.ParticipantRole(params.Role),
		Location:      params.Location,
		WalletAddress: params.WalletAddress,
		WalletBalance: params.WalletBalance,
	}
	participant, err := s.supply.AddParticipant(draft)
	if err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	writeResult(w, req.ID, participant)
}

func (s *Server) handleUpdateProductStatus(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params updateStatusParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	if err := s.supply.UpdateProductStatus(params.ID, params.Status); err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	product, _ := s.supply.GetProduct(params.ID)
	writeResult(w, req.ID, product)
}

func (s *Server) handleTransferProduct(w http.ResponseWriter, _ *http.Request, req *RPCRequest) {
	var params transferParams
	if err := decodeSingleParam(req, &params); err != nil {
		writeError(w, http.StatusBadRequest, req.ID, codeInvalidParams, "invalid_params", err.Error())
		return
	}
	if err := s.supply.TransferProduct(params.ProductID, params.FromID, params.ToID); err != nil {
		writeServiceError(w, req.ID, err)
		return
	}
	writeResult(w, req.ID, transferResult{OK: true})
}
