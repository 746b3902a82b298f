package chain

// Minimal ABI fragments for the two registry contracts consumed by the
// adapter. Only the methods and events the core calls are declared.

const productRegistryABI = `[
  {
    "type": "function",
    "name": "registerProduct",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "id", "type": "string"},
      {"name": "name", "type": "string"},
      {"name": "rfidTag", "type": "string"},
      {"name": "manufacturer", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "updateProduct",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "id", "type": "string"},
      {"name": "status", "type": "string"},
      {"name": "location", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getProduct",
    "stateMutability": "view",
    "inputs": [{"name": "id", "type": "string"}],
    "outputs": [
      {"name": "id", "type": "string"},
      {"name": "name", "type": "string"},
      {"name": "rfidTag", "type": "string"},
      {"name": "manufacturer", "type": "string"},
      {"name": "manufacturerAddress", "type": "address"},
      {"name": "location", "type": "string"},
      {"name": "status", "type": "string"},
      {"name": "timestamp", "type": "uint256"},
      {"name": "temperature", "type": "uint256"},
      {"name": "humidity", "type": "uint256"}
    ]
  },
  {
    "type": "event",
    "name": "ProductUpdated",
    "anonymous": false,
    "inputs": [
      {"name": "id", "type": "string", "indexed": true},
      {"name": "status", "type": "string", "indexed": false},
      {"name": "location", "type": "string", "indexed": false}
    ]
  }
]`

const participantRegistryABI = `[
  {
    "type": "function",
    "name": "registerParticipant",
    "stateMutability": "nonpayable",
    "inputs": [
      {"name": "id", "type": "string"},
      {"name": "name", "type": "string"},
      {"name": "role", "type": "string"}
    ],
    "outputs": []
  },
  {
    "type": "function",
    "name": "getParticipant",
    "stateMutability": "view",
    "inputs": [{"name": "wallet", "type": "address"}],
    "outputs": [
      {"name": "id", "type": "string"},
      {"name": "name", "type": "string"},
      {"name": "role", "type": "string"},
      {"name": "walletAddress", "type": "address"},
      {"name": "isActive", "type": "bool"},
      {"name": "registeredAt", "type": "uint256"}
    ]
  }
]`
